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

// Package binary provides small helpers for decoding the little-endian
// fixed-offset records used by the ZEL container format and for searching
// byte patterns. Each fixed-offset reader trusts that the caller has already range-checked src against the
// record's static size; it never reads outside [0, len(src)).
package binary

import "encoding/binary"

// Uint16LE reads a little-endian uint16 at the given offset.
func Uint16LE(src []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(src[offset : offset+2])
}

// Uint32LE reads a little-endian uint32 at the given offset.
func Uint32LE(src []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(src[offset : offset+4])
}

// Uint16SliceLE decodes count consecutive little-endian uint16 values
// starting at offset into a newly allocated slice.
func Uint16SliceLE(src []byte, offset int, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = Uint16LE(src, offset+2*i)
	}
	return out
}

// Uint16SliceBE decodes count consecutive big-endian uint16 values starting
// at offset into a newly allocated slice.
func Uint16SliceBE(src []byte, offset int, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(src[offset+2*i : offset+2*i+2])
	}
	return out
}

// SwapRGB565 reverses the byte order of a single 16-bit color word.
func SwapRGB565(v uint16) uint16 {
	return (v&0x00FF)<<8 | (v&0xFF00)>>8
}
