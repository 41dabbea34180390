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

// DecodeFrameIndex8 decodes every zone of frameIndex into dst, a
// width x height Indexed8 plane with the given row stride in bytes. dst
// must be at least dstStrideBytes * Height() bytes long.
func (ctx *Context) DecodeFrameIndex8(frameIndex uint32, dst []byte, dstStrideBytes uint32) error {
	if dst == nil {
		return newErr(ErrInvalidArgument, "decode index8: nil destination")
	}
	if uint64(dstStrideBytes) < uint64(ctx.header.Width) {
		return newErr(ErrInvalidArgument, "decode index8: stride narrower than width")
	}

	stream, result := ctx.openFrameZoneStream(frameIndex)
	if result != OK {
		return newErr(result, "decode index8")
	}

	cursor := stream.zoneDataOffset
	for zoneIndex := uint32(0); zoneIndex < stream.layout.zoneCount; zoneIndex++ {
		chunk, result := readZoneChunkAtCursor(&stream, &cursor)
		if result != OK {
			return newErr(result, "decode index8: zone chunk")
		}
		pixels, result := ctx.accessZonePixels(&stream, chunk)
		if result != OK {
			return newErr(result, "decode index8: zone pixels")
		}
		blitZoneIndices(&stream.layout, zoneIndex, pixels, dst, dstStrideBytes)
	}

	if cursor != stream.frameDataEnd {
		return newErr(ErrCorruptData, "decode index8: trailing zone data")
	}
	return nil
}

// DecodeFrameIndex8Zone decodes a single zone of frameIndex into dst, a
// zoneWidth x zoneHeight Indexed8 plane (row stride equal to zone width).
func (ctx *Context) DecodeFrameIndex8Zone(frameIndex, zoneIndex uint32, dst []byte) error {
	if dst == nil {
		return newErr(ErrInvalidArgument, "decode index8 zone: nil destination")
	}

	stream, result := ctx.openFrameZoneStream(frameIndex)
	if result != OK {
		return newErr(result, "decode index8 zone")
	}
	if zoneIndex >= stream.layout.zoneCount {
		return newErr(ErrOutOfBounds, "decode index8 zone")
	}

	chunk, result := locateZoneChunk(&stream, zoneIndex)
	if result != OK {
		return newErr(result, "decode index8 zone: locate chunk")
	}
	pixels, result := ctx.accessZonePixels(&stream, chunk)
	if result != OK {
		return newErr(result, "decode index8 zone: zone pixels")
	}

	soloLayout := stream.layout
	blitZoneIndices(&soloLayout, 0, pixels, dst, uint32(soloLayout.zoneWidth))
	return nil
}

// DecodeFrameRgb565 decodes every zone of frameIndex into dst, a
// width x height RGB565 plane with the given row stride in pixels, using
// the frame's own palette (local if present, else global) converted to the
// current output encoding.
func (ctx *Context) DecodeFrameRgb565(frameIndex uint32, dst []uint16, dstStridePixels uint32) error {
	if dst == nil {
		return newErr(ErrInvalidArgument, "decode rgb565: nil destination")
	}
	if uint64(dstStridePixels) < uint64(ctx.header.Width) {
		return newErr(ErrInvalidArgument, "decode rgb565: stride narrower than width")
	}

	palette, err := ctx.GetFramePalette(frameIndex)
	if err != nil {
		return err
	}

	stream, result := ctx.openFrameZoneStream(frameIndex)
	if result != OK {
		return newErr(result, "decode rgb565")
	}

	cursor := stream.zoneDataOffset
	for zoneIndex := uint32(0); zoneIndex < stream.layout.zoneCount; zoneIndex++ {
		chunk, result := readZoneChunkAtCursor(&stream, &cursor)
		if result != OK {
			return newErr(result, "decode rgb565: zone chunk")
		}
		pixels, result := ctx.accessZonePixels(&stream, chunk)
		if result != OK {
			return newErr(result, "decode rgb565: zone pixels")
		}
		if result := blitZoneRgb(&stream.layout, zoneIndex, pixels, palette, dst, dstStridePixels); result != OK {
			return newErr(result, "decode rgb565: palette index out of range")
		}
	}

	if cursor != stream.frameDataEnd {
		return newErr(ErrCorruptData, "decode rgb565: trailing zone data")
	}
	return nil
}

// DecodeFrameRgb565Zone decodes a single zone of frameIndex into dst, a
// zoneWidth x zoneHeight RGB565 plane (row stride equal to zone width).
func (ctx *Context) DecodeFrameRgb565Zone(frameIndex, zoneIndex uint32, dst []uint16) error {
	if dst == nil {
		return newErr(ErrInvalidArgument, "decode rgb565 zone: nil destination")
	}

	palette, err := ctx.GetFramePalette(frameIndex)
	if err != nil {
		return err
	}

	stream, result := ctx.openFrameZoneStream(frameIndex)
	if result != OK {
		return newErr(result, "decode rgb565 zone")
	}
	if zoneIndex >= stream.layout.zoneCount {
		return newErr(ErrOutOfBounds, "decode rgb565 zone")
	}

	chunk, result := locateZoneChunk(&stream, zoneIndex)
	if result != OK {
		return newErr(result, "decode rgb565 zone: locate chunk")
	}
	pixels, result := ctx.accessZonePixels(&stream, chunk)
	if result != OK {
		return newErr(result, "decode rgb565 zone: zone pixels")
	}

	soloLayout := stream.layout
	if result := blitZoneRgb(&soloLayout, 0, pixels, palette, dst, uint32(soloLayout.zoneWidth)); result != OK {
		return newErr(result, "decode rgb565 zone: palette index out of range")
	}
	return nil
}
