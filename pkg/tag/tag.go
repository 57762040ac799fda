// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tag provides the propagation tag that carries trace identity
// across process and transport boundaries, together with its binary and
// string encodings.
//
// The binary form is authoritative. The string form is the unpadded
// base64url encoding of the binary form and is safe to use in HTTP headers,
// gRPC metadata and text-only message properties.
package tag

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
)

const (
	// Magic is the first byte of every encoded tag.
	Magic byte = 0xA7
	// Version1 is the only format version produced by this package.
	Version1 byte = 0x01

	// Size is the number of bytes in the version 1 serialisation of a tag:
	// magic[1]|version[1]|flags[1]|traceID[16]|spanID[8].
	Size = 3 + TraceIDSize + SpanIDSize

	TraceIDSize = 16
	SpanIDSize  = 8
)

// FlagSampled marks a tag whose trace was sampled by the producing side.
const FlagSampled Flags = 0x01

// None is the "no tag" sentinel. It is returned by every fail-open decoding
// function when the input can not be used.
var None Tag

var encoding = base64.RawURLEncoding

// TraceID identifies a whole distributed trace.
type TraceID [TraceIDSize]byte

// SpanID identifies a single unit of work inside a trace.
type SpanID [SpanIDSize]byte

// Flags are trace level options carried along with the identity.
type Flags byte

// Tag is an immutable trace identity: the trace, the parent span on the
// producing side and the trace flags.
type Tag struct {
	TraceID TraceID
	SpanID  SpanID
	Flags   Flags
}

// New returns a tag with random trace and span ids and the sampled flag set.
func New() Tag {
	t := Tag{Flags: FlagSampled}
	for t.TraceID.IsZero() {
		_, _ = rand.Read(t.TraceID[:])
	}
	t.SpanID = newSpanID()
	return t
}

// Child returns a tag in the same trace as t, with a new span id.
func (t Tag) Child() Tag {
	t.SpanID = newSpanID()
	return t
}

func newSpanID() (id SpanID) {
	for id.IsZero() {
		_, _ = rand.Read(id[:])
	}
	return id
}

// IsZero reports whether t is the None sentinel.
func (t Tag) IsZero() bool {
	return t == None
}

// IsValid reports whether both ids of the tag are set.
func (t Tag) IsValid() bool {
	return !t.TraceID.IsZero() && !t.SpanID.IsZero()
}

// Sampled reports whether the sampled flag is set.
func (t Tag) Sampled() bool {
	return t.Flags&FlagSampled != 0
}

// MarshalBinary returns the binary serialisation of the tag. The None tag
// and tags with zero ids are encoded to an empty slice.
func (t Tag) MarshalBinary() ([]byte, error) {
	return t.Bytes(), nil
}

// UnmarshalBinary decodes a binary tag. Trailing bytes beyond the version 1
// layout are ignored.
func (t *Tag) UnmarshalBinary(b []byte) error {
	v, err := Decode(b)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText returns the string form of the tag.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes the string form of a tag.
func (t *Tag) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Bytes returns the binary form of the tag, or nil for invalid tags.
func (t Tag) Bytes() []byte {
	if !t.IsValid() {
		return nil
	}
	b := make([]byte, Size)
	b[0] = Magic
	b[1] = Version1
	b[2] = byte(t.Flags)
	copy(b[3:3+TraceIDSize], t.TraceID[:])
	copy(b[3+TraceIDSize:], t.SpanID[:])
	return b
}

// String returns the string form of the tag, or an empty string for invalid
// tags.
func (t Tag) String() string {
	b := t.Bytes()
	if b == nil {
		return ""
	}
	return encoding.EncodeToString(b)
}

// Decode parses the binary form of a tag.
func Decode(b []byte) (Tag, error) {
	t, err := decode(b)
	if err != nil {
		return None, &DecodeError{Form: FormBinary, Err: err}
	}
	return t, nil
}

// Parse parses the string form of a tag.
func Parse(s string) (Tag, error) {
	if s == "" {
		return None, &DecodeError{Form: FormString, Err: ErrEmpty}
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		return None, &DecodeError{Form: FormString, Err: ErrUnknownFormat}
	}
	t, err := decode(b)
	if err != nil {
		return None, &DecodeError{Form: FormString, Err: err}
	}
	return t, nil
}

// FromBytes decodes the binary form of a tag and returns None if the value
// can not be decoded.
func FromBytes(b []byte) Tag {
	t, err := Decode(b)
	if err != nil {
		return None
	}
	return t
}

// FromString decodes the string form of a tag and returns None if the value
// can not be decoded.
func FromString(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		return None
	}
	return t
}

func decode(b []byte) (t Tag, err error) {
	switch {
	case len(b) == 0:
		return None, ErrEmpty
	case b[0] != Magic:
		return None, ErrUnknownFormat
	case len(b) < 2:
		return None, ErrTooShort
	case b[1] == 0:
		return None, ErrUnsupportedVersion
	case len(b) < Size:
		// all known versions share the version 1 prefix
		return None, ErrTooShort
	}
	t.Flags = Flags(b[2])
	copy(t.TraceID[:], b[3:3+TraceIDSize])
	copy(t.SpanID[:], b[3+TraceIDSize:Size])
	if !t.IsValid() {
		return None, ErrInvalidID
	}
	return t, nil
}

// IsZero reports whether all bytes of the id are zero.
func (id TraceID) IsZero() bool {
	return id == TraceID{}
}

// String returns the hex encoded trace id.
func (id TraceID) String() string {
	return hex.EncodeToString(id[:])
}

// High returns the most significant half of the trace id.
func (id TraceID) High() uint64 {
	return binary.BigEndian.Uint64(id[:8])
}

// Low returns the least significant half of the trace id.
func (id TraceID) Low() uint64 {
	return binary.BigEndian.Uint64(id[8:])
}

// TraceIDFromUint64 builds a trace id from its two halves.
func TraceIDFromUint64(high, low uint64) (id TraceID) {
	binary.BigEndian.PutUint64(id[:8], high)
	binary.BigEndian.PutUint64(id[8:], low)
	return id
}

// IsZero reports whether all bytes of the id are zero.
func (id SpanID) IsZero() bool {
	return id == SpanID{}
}

// String returns the hex encoded span id.
func (id SpanID) String() string {
	return hex.EncodeToString(id[:])
}

// Uint64 returns the span id as an integer.
func (id SpanID) Uint64() uint64 {
	return binary.BigEndian.Uint64(id[:])
}

// SpanIDFromUint64 builds a span id from an integer.
func SpanIDFromUint64(v uint64) (id SpanID) {
	binary.BigEndian.PutUint64(id[:], v)
	return id
}
