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

// StreamReadFunc reads exactly len(dst) bytes at offset from an opaque
// backing store and returns the number of bytes actually read. Callers
// always know the expected length; there is no "read until end" semantic,
// so any return value other than len(dst) is treated as an IO failure. The
// callback is expected to return synchronously.
type StreamReadFunc func(userData any, offset uint64, dst []byte) int

// StreamCloseFunc releases resources held by userData. It may be nil.
type StreamCloseFunc func(userData any)

// StreamSource describes a read-at-offset backing store of bounded, known
// size, used by OpenStream for sources too large or inconvenient to hold
// entirely in memory.
type StreamSource struct {
	Read     StreamReadFunc
	Close    StreamCloseFunc
	UserData any
	Size     uint64
}

// byteSource is the polymorphic abstraction described in section 4.1: a
// whole-buffer borrow (zero-copy) or an opaque streamed source (owning
// copies). Exactly one of whole or stream is set.
type byteSource struct {
	whole  []byte
	stream *StreamSource
	size   uint64
}

func newWholeSource(data []byte) *byteSource {
	return &byteSource{whole: data, size: uint64(len(data))}
}

func newStreamSource(s *StreamSource) *byteSource {
	return &byteSource{stream: s, size: s.Size}
}

// isWhole reports whether reads may be served as zero-copy borrows into the
// backing buffer.
func (s *byteSource) isWhole() bool {
	return s.whole != nil
}

// borrow returns a zero-copy slice into the whole-buffer backing store. The
// caller must only call this when isWhole() is true and the range has
// already been validated with fits.
func (s *byteSource) borrow(offset, length uint64) []byte {
	return s.whole[offset : offset+length]
}

// readInto copies length bytes starting at offset into dst, which must be at
// least length bytes long. It is used for both whole-buffer reads (a plain
// copy, no allocation) and streamed reads (the stream's Read callback).
func (s *byteSource) readInto(offset uint64, dst []byte) Result {
	if !fits(offset, uint64(len(dst)), s.size) {
		return ErrCorruptData
	}
	if s.isWhole() {
		copy(dst, s.whole[offset:offset+uint64(len(dst))])
		return OK
	}
	if s.stream == nil || s.stream.Read == nil {
		return ErrInternal
	}
	n := s.stream.Read(s.stream.UserData, offset, dst)
	if n != len(dst) {
		return ErrIO
	}
	return OK
}

// close invokes the stream's optional close hook. It is a no-op for
// whole-buffer sources.
func (s *byteSource) close() {
	if s.stream != nil && s.stream.Close != nil {
		s.stream.Close(s.stream.UserData)
	}
}
