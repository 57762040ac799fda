// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when there is no tag data to decode.
	ErrEmpty = errors.New("empty tag")
	// ErrUnknownFormat is returned for data that was not produced by this
	// package, such as tags of foreign tracing systems.
	ErrUnknownFormat = errors.New("unknown tag format")
	// ErrUnsupportedVersion is returned for a tag with an invalid version byte.
	ErrUnsupportedVersion = errors.New("unsupported tag version")
	// ErrTooShort is returned when the data ends before all fields are read.
	ErrTooShort = errors.New("tag too short")
	// ErrInvalidID is returned when the trace or span id is all zeros.
	ErrInvalidID = errors.New("invalid tag id")
)

// Form names a tag representation.
type Form string

const (
	FormBinary Form = "binary"
	FormString Form = "string"
)

// DecodeError describes a failed tag decoding.
type DecodeError struct {
	Form Form
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s tag: %v", e.Form, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
