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

// frameZoneStream is the ephemeral value bound to a single decode call: it
// locates a frame's block, skips any local palette, and exposes the zone
// chunk sequence that follows.
type frameZoneStream struct {
	header         FrameHeader
	frameOffset    uint64
	frameSize      uint64
	zoneDataOffset uint64
	frameDataEnd   uint64
	layout         zoneLayout
	frameBytes     []byte // relative to frameOffset: frameBytes[0] is byte frameOffset
}

// openFrameZoneStream performs section 4.6's per-decode sequence: look up
// the frame-index entry, materialize the frame bytes (borrow or read-and-own
// via frame scratch), parse the frame header, and skip any local palette to
// find the zone-chunk region.
func (ctx *Context) openFrameZoneStream(frameIndex uint32) (frameZoneStream, Result) {
	if frameIndex >= ctx.header.FrameCount {
		return frameZoneStream{}, ErrOutOfBounds
	}

	entry := ctx.frameIndex[frameIndex]
	frameOffset := uint64(entry.FrameOffset)
	frameSize := uint64(entry.FrameSize)

	if frameSize == 0 {
		return frameZoneStream{}, ErrCorruptData
	}
	if !fits(frameOffset, sizeFrameHeader, ctx.size) || !fits(frameOffset, frameSize, ctx.size) {
		return frameZoneStream{}, ErrCorruptData
	}

	frameBytes, result := ctx.materializeFrameBytes(frameOffset, frameSize)
	if result != OK {
		return frameZoneStream{}, result
	}

	if frameSize < sizeFrameHeader {
		return frameZoneStream{}, ErrCorruptData
	}
	fh := parseFrameHeader(frameBytes[:sizeFrameHeader])

	if uint64(fh.HeaderSize) < sizeFrameHeader || uint64(fh.HeaderSize) > frameSize {
		return frameZoneStream{}, ErrCorruptData
	}

	relOffset := uint64(fh.HeaderSize)

	if fh.Flags.HasLocalPalette {
		next, result := skipLocalPalette(frameBytes, relOffset, frameSize)
		if result != OK {
			return frameZoneStream{}, result
		}
		relOffset = next
	}

	if relOffset > frameSize {
		return frameZoneStream{}, ErrCorruptData
	}

	if ctx.layout.zoneCount == 0 || uint32(fh.ZoneCount) != ctx.layout.zoneCount {
		return frameZoneStream{}, ErrCorruptData
	}

	return frameZoneStream{
		header:         fh,
		frameOffset:    frameOffset,
		frameSize:      frameSize,
		zoneDataOffset: frameOffset + relOffset,
		frameDataEnd:   frameOffset + frameSize,
		layout:         ctx.layout,
		frameBytes:     frameBytes,
	}, OK
}

// materializeFrameBytes returns the frame block's bytes: a zero-copy borrow
// for whole-buffer sources, or a read into the grow-only frame scratch arena
// for streamed sources.
func (ctx *Context) materializeFrameBytes(frameOffset, frameSize uint64) ([]byte, Result) {
	if ctx.source.isWhole() {
		return ctx.source.borrow(frameOffset, frameSize), OK
	}
	buf := ctx.acquireFrameScratch(frameSize)
	if result := ctx.source.readInto(frameOffset, buf); result != OK {
		return nil, result
	}
	return buf, OK
}

// skipLocalPalette validates the embedded PaletteHeader at relOffset within
// frameBytes and returns the relative offset immediately following its
// entries.
func skipLocalPalette(frameBytes []byte, relOffset, frameSize uint64) (uint64, Result) {
	if frameSize-relOffset < sizePaletteHeader {
		return 0, ErrCorruptData
	}
	ph := parsePaletteHeader(frameBytes[relOffset : relOffset+sizePaletteHeader])

	if uint64(ph.HeaderSize) < sizePaletteHeader || ph.EntryCount == 0 {
		return 0, ErrCorruptData
	}
	if uint64(ph.HeaderSize) > frameSize-relOffset {
		return 0, ErrCorruptData
	}

	paletteDataRel := relOffset + uint64(ph.HeaderSize)
	paletteBytes := uint64(ph.EntryCount) * 2
	if paletteBytes > frameSize-paletteDataRel {
		return 0, ErrCorruptData
	}

	return paletteDataRel + paletteBytes, OK
}

// readZoneChunkAtCursor reads one {u32 chunkSize; chunkSize bytes} record at
// *cursor (an absolute file offset) and advances it past the record.
func readZoneChunkAtCursor(stream *frameZoneStream, cursor *uint64) ([]byte, Result) {
	if *cursor < stream.frameOffset || *cursor > stream.frameDataEnd {
		return nil, ErrCorruptData
	}

	relOffset := *cursor - stream.frameOffset
	remaining := stream.frameSize - relOffset
	if remaining < sizeZoneChunkSizeHdr {
		return nil, ErrCorruptData
	}

	chunkSize := uint32(stream.frameBytes[relOffset]) |
		uint32(stream.frameBytes[relOffset+1])<<8 |
		uint32(stream.frameBytes[relOffset+2])<<16 |
		uint32(stream.frameBytes[relOffset+3])<<24

	relOffset += sizeZoneChunkSizeHdr
	*cursor += sizeZoneChunkSizeHdr

	if chunkSize == 0 {
		return nil, ErrCorruptData
	}
	if relOffset > stream.frameSize || uint64(chunkSize) > stream.frameSize-relOffset {
		return nil, ErrCorruptData
	}

	chunk := stream.frameBytes[relOffset : relOffset+uint64(chunkSize)]
	*cursor += uint64(chunkSize)
	return chunk, OK
}

// locateZoneChunk advances the chunk iterator sequentially from the start
// of the zone-data region to targetZone, returning its chunk. There is no
// chunk-offset cache; the default is a sequential scan, per section 4.6.1.
func locateZoneChunk(stream *frameZoneStream, targetZone uint32) ([]byte, Result) {
	cursor := stream.zoneDataOffset
	var chunk []byte
	var result Result
	for idx := uint32(0); idx <= targetZone; idx++ {
		chunk, result = readZoneChunkAtCursor(stream, &cursor)
		if result != OK {
			return nil, result
		}
	}
	return chunk, OK
}
