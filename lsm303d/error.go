// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lsm303d

// Error is the kind of failure reported by Dev. A nil error means success.
//
// Errors are returned as is and never wrapped, so they can be compared with
// == as well as errors.Is.
type Error uint8

const (
	// ErrInvalidArgument is returned when Read is given a nil Sample.
	ErrInvalidArgument Error = iota + 1
	// ErrIOCtrl is returned when the bus could not be enabled or reports a
	// failure when a transmission ends.
	ErrIOCtrl
	// ErrIORead is returned for any failure during a register read,
	// including a failed address select.
	ErrIORead
	// ErrIOWrite is returned for any failure during a register write.
	ErrIOWrite
	// ErrInvalidSignature is returned when WHO_AM_I doesn't match an LSM303D.
	ErrInvalidSignature
)

func (e Error) Error() string {
	switch e {
	case ErrInvalidArgument:
		return "lsm303d: invalid argument"
	case ErrIOCtrl:
		return "lsm303d: bus transmission failed"
	case ErrIORead:
		return "lsm303d: register read failed"
	case ErrIOWrite:
		return "lsm303d: register write failed"
	case ErrInvalidSignature:
		return "lsm303d: invalid device signature"
	default:
		return "lsm303d: unknown error"
	}
}
