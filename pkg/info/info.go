// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package info holds the immutable descriptors of the external endpoints a
// traced unit of work talks to.
//
// Constructors never validate: empty and unknown vendor, destination and
// endpoint values are accepted and forwarded as they are. All getters are
// safe to call on a nil descriptor.
package info

import "strconv"

// ChannelType is the kind of channel used to reach an endpoint.
type ChannelType int

const (
	ChannelTypeOther ChannelType = iota
	ChannelTypeTCPIP
	ChannelTypeUnixDomainSocket
	ChannelTypeNamedPipe
	ChannelTypeInProcess
)

func (c ChannelType) String() string {
	switch c {
	case ChannelTypeOther:
		return "OTHER"
	case ChannelTypeTCPIP:
		return "TCP_IP"
	case ChannelTypeUnixDomainSocket:
		return "UNIX_DOMAIN_SOCKET"
	case ChannelTypeNamedPipe:
		return "NAMED_PIPE"
	case ChannelTypeInProcess:
		return "IN_PROCESS"
	}
	return "ChannelType(" + strconv.Itoa(int(c)) + ")"
}

// DestinationType is the kind of messaging destination.
type DestinationType int

const (
	DestinationTypeNone DestinationType = iota
	DestinationTypeQueue
	DestinationTypeTopic
)

func (d DestinationType) String() string {
	switch d {
	case DestinationTypeNone:
		return "NONE"
	case DestinationTypeQueue:
		return "QUEUE"
	case DestinationTypeTopic:
		return "TOPIC"
	}
	return "DestinationType(" + strconv.Itoa(int(d)) + ")"
}

// Channel is the transport used to reach an endpoint. Endpoint is free form,
// for example "host:port", a socket path or a pipe name, and may be empty.
type Channel struct {
	Type     ChannelType
	Endpoint string
}

// MessagingSystem describes a queue or topic of a messaging system.
type MessagingSystem struct {
	vendor          string
	destination     string
	destinationType DestinationType
	channel         Channel
}

// NewMessagingSystem creates a descriptor for one destination of a
// messaging system. It is meant to be created once and reused for every
// message sent to or received from that destination.
func NewMessagingSystem(vendor, destination string, destinationType DestinationType, channelType ChannelType, channelEndpoint string) *MessagingSystem {
	return &MessagingSystem{
		vendor:          vendor,
		destination:     destination,
		destinationType: destinationType,
		channel:         Channel{Type: channelType, Endpoint: channelEndpoint},
	}
}

func (m *MessagingSystem) Vendor() string {
	if m == nil {
		return ""
	}
	return m.vendor
}

func (m *MessagingSystem) Destination() string {
	if m == nil {
		return ""
	}
	return m.destination
}

func (m *MessagingSystem) DestinationType() DestinationType {
	if m == nil {
		return DestinationTypeNone
	}
	return m.destinationType
}

func (m *MessagingSystem) Channel() Channel {
	if m == nil {
		return Channel{}
	}
	return m.channel
}

// Database describes a database instance.
type Database struct {
	name    string
	vendor  string
	channel Channel
}

// NewDatabase creates a database descriptor. The name is the logical name
// of the database, not of a table or schema.
func NewDatabase(name, vendor string, channelType ChannelType, channelEndpoint string) *Database {
	return &Database{
		name:    name,
		vendor:  vendor,
		channel: Channel{Type: channelType, Endpoint: channelEndpoint},
	}
}

func (d *Database) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

func (d *Database) Vendor() string {
	if d == nil {
		return ""
	}
	return d.vendor
}

func (d *Database) Channel() Channel {
	if d == nil {
		return Channel{}
	}
	return d.channel
}

// RemoteCall describes a remotely called service method. ServiceEndpoint
// is the logical deployment endpoint of the service, for example a URL,
// while the channel endpoint is the network address actually used.
type RemoteCall struct {
	method          string
	service         string
	serviceEndpoint string
	channel         Channel
}

// NewRemoteCall creates a remote call descriptor.
func NewRemoteCall(method, service, serviceEndpoint string, channelType ChannelType, channelEndpoint string) *RemoteCall {
	return &RemoteCall{
		method:          method,
		service:         service,
		serviceEndpoint: serviceEndpoint,
		channel:         Channel{Type: channelType, Endpoint: channelEndpoint},
	}
}

func (r *RemoteCall) Method() string {
	if r == nil {
		return ""
	}
	return r.method
}

func (r *RemoteCall) Service() string {
	if r == nil {
		return ""
	}
	return r.service
}

func (r *RemoteCall) ServiceEndpoint() string {
	if r == nil {
		return ""
	}
	return r.serviceEndpoint
}

func (r *RemoteCall) Channel() Channel {
	if r == nil {
		return Channel{}
	}
	return r.channel
}
