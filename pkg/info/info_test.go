// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info_test

import (
	"testing"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/google/go-cmp/cmp"
)

func TestNewMessagingSystem(t *testing.T) {
	t.Parallel()

	m := info.NewMessagingSystem(info.MessageSystemVendorKafka, "my-topic", info.DestinationTypeTopic, info.ChannelTypeTCPIP, "messageserver.example.com:1234")

	if got, want := m.Vendor(), "Apache Kafka"; got != want {
		t.Errorf("got vendor %q, want %q", got, want)
	}
	if got, want := m.Destination(), "my-topic"; got != want {
		t.Errorf("got destination %q, want %q", got, want)
	}
	if got, want := m.DestinationType(), info.DestinationTypeTopic; got != want {
		t.Errorf("got destination type %v, want %v", got, want)
	}
	want := info.Channel{Type: info.ChannelTypeTCPIP, Endpoint: "messageserver.example.com:1234"}
	if diff := cmp.Diff(want, m.Channel()); diff != "" {
		t.Errorf("channel mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyDescriptors(t *testing.T) {
	t.Parallel()

	m := info.NewMessagingSystem("", "", info.DestinationTypeQueue, info.ChannelTypeOther, "")
	if m == nil {
		t.Fatal("got nil messaging system")
	}
	if m.Vendor() != "" || m.Destination() != "" || m.Channel().Endpoint != "" {
		t.Errorf("empty values not kept: %+v", m)
	}

	d := info.NewDatabase("", "", info.ChannelType(42), "")
	if d == nil {
		t.Fatal("got nil database")
	}
	if got, want := d.Channel().Type.String(), "ChannelType(42)"; got != want {
		t.Errorf("got channel type %q, want %q", got, want)
	}
}

func TestNilDescriptors(t *testing.T) {
	t.Parallel()

	var (
		m *info.MessagingSystem
		d *info.Database
		r *info.RemoteCall
	)
	if m.Vendor() != "" || m.Destination() != "" || m.DestinationType() != info.DestinationTypeNone || m.Channel() != (info.Channel{}) {
		t.Error("nil messaging system is not empty")
	}
	if d.Name() != "" || d.Vendor() != "" || d.Channel() != (info.Channel{}) {
		t.Error("nil database is not empty")
	}
	if r.Method() != "" || r.Service() != "" || r.ServiceEndpoint() != "" || r.Channel() != (info.Channel{}) {
		t.Error("nil remote call is not empty")
	}
}

func TestNewRemoteCall(t *testing.T) {
	t.Parallel()

	r := info.NewRemoteCall("GetUser", "UserService", "https://users.example.com", info.ChannelTypeUnixDomainSocket, "/var/run/users.sock")
	if r.Method() != "GetUser" || r.Service() != "UserService" || r.ServiceEndpoint() != "https://users.example.com" {
		t.Errorf("unexpected remote call %+v", r)
	}
	if got, want := r.Channel().Type.String(), "UNIX_DOMAIN_SOCKET"; got != want {
		t.Errorf("got channel type %q, want %q", got, want)
	}
}

func TestKnownVendors(t *testing.T) {
	t.Parallel()

	if !info.IsKnownMessageSystemVendor(info.MessageSystemVendorKafka) {
		t.Error("kafka is not a known vendor")
	}
	if info.IsKnownMessageSystemVendor("MyCustomMessagingSystem") {
		t.Error("custom vendor is known")
	}
	if !info.IsKnownDatabaseVendor(info.DatabaseVendorPostgreSQL) {
		t.Error("postgres is not a known vendor")
	}
	if info.IsKnownDatabaseVendor("") {
		t.Error("empty vendor is known")
	}
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		got, want string
	}{
		{info.ChannelTypeTCPIP.String(), "TCP_IP"},
		{info.ChannelTypeInProcess.String(), "IN_PROCESS"},
		{info.ChannelTypeNamedPipe.String(), "NAMED_PIPE"},
		{info.DestinationTypeQueue.String(), "QUEUE"},
		{info.DestinationTypeTopic.String(), "TOPIC"},
		{info.DestinationType(7).String(), "DestinationType(7)"},
	} {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}
