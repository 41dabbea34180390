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

import (
	"math"

	"github.com/pierrec/lz4/v4"
)

// accessZonePixels turns one zone chunk into zonePixelBytes worth of raw
// index pixels, either returning the chunk directly (None) or decompressing
// it into ctx's zone scratch arena (LZ4). Any other compression tag is
// rejected: RLE is reserved in the taxonomy but unimplemented, and must
// never be treated as None.
func (ctx *Context) accessZonePixels(stream *frameZoneStream, chunk []byte) ([]byte, Result) {
	switch CompressionType(stream.header.CompressionType) {
	case CompressionNone:
		if uint64(len(chunk)) != stream.layout.zonePixelBytes {
			return nil, ErrCorruptData
		}
		return chunk, OK

	case CompressionLZ4:
		if stream.layout.zonePixelBytes > math.MaxInt32 {
			return nil, ErrUnsupportedFormat
		}
		if len(chunk) > math.MaxInt32 {
			return nil, ErrUnsupportedFormat
		}
		dst := ctx.acquireZoneScratch(stream.layout.zonePixelBytes)
		n, err := lz4.UncompressBlock(chunk, dst)
		if err != nil || uint64(n) != stream.layout.zonePixelBytes {
			return nil, ErrCorruptData
		}
		return dst, OK

	default:
		return nil, ErrUnsupportedFormat
	}
}
