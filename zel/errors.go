// Copyright (c) 2026 The ZEL Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of zel.
//
// zel is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zel is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zel.  If not, see <https://www.gnu.org/licenses/>.

package zel

import "errors"

// Result classifies the outcome of a decoder operation. The zero value is OK.
type Result uint8

// Result kinds, in the order the decoder discovers them during validation.
const (
	OK Result = iota
	ErrInvalidArgument
	ErrInvalidMagic
	ErrUnsupportedVersion
	ErrUnsupportedFormat
	ErrCorruptData
	ErrOutOfMemory
	ErrOutOfBounds
	ErrIO
	ErrInternal
)

// resultNames mirrors the order of the Result constants.
var resultNames = [...]string{
	"ZEL_OK",
	"ZEL_ERR_INVALID_ARGUMENT",
	"ZEL_ERR_INVALID_MAGIC",
	"ZEL_ERR_UNSUPPORTED_VERSION",
	"ZEL_ERR_UNSUPPORTED_FORMAT",
	"ZEL_ERR_CORRUPT_DATA",
	"ZEL_ERR_OUT_OF_MEMORY",
	"ZEL_ERR_OUT_OF_BOUNDS",
	"ZEL_ERR_IO",
	"ZEL_ERR_INTERNAL",
}

// String returns the canonical name of a Result, matching resultToString in
// the reference C implementation.
func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "ZEL_ERR_UNKNOWN"
}

// Error wraps a Result with a human-readable message, satisfying the error
// interface so callers can use errors.Is/errors.As against the sentinels
// below.
type Error struct {
	Result  Result
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Result.String()
	}
	return e.Result.String() + ": " + e.Message
}

// Is reports whether target is an *Error carrying the same Result, so
// errors.Is(err, &zel.Error{Result: zel.ErrCorruptData}) matches any error
// of that kind regardless of its message.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Result == other.Result
	}
	return false
}

func newErr(result Result, message string) *Error {
	return &Error{Result: result, Message: message}
}

// sentinel wraps a bare Result so it can be compared with errors.Is without
// allocating a message.
func sentinel(result Result) error {
	return &Error{Result: result}
}

// ResultToString returns the canonical name of a Result. It is provided
// alongside Result.String for parity with the reference C API surface
// (zelResultToString).
func ResultToString(result Result) string {
	return result.String()
}
