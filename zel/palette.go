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

import lebin "github.com/zelformat/zel/internal/binary"

// resolveGlobalPalette returns the file's global palette in the current
// output encoding. If the requested encoding matches the palette's on-disk
// encoding the raw entries are returned unchanged (no copy, invariant 9);
// otherwise a byte-swapped copy is memoized in ctx.globalConverted and
// reused until SetOutputColorEncoding/ClearOutputColorEncoding invalidates
// it.
func (ctx *Context) resolveGlobalPalette() ([]uint16, Result) {
	if !ctx.HasGlobalPalette() {
		return nil, ErrOutOfBounds
	}

	desired := ctx.selectOutputEncoding(ctx.globalPaletteEncoding)
	if desired == ctx.globalPaletteEncoding {
		return ctx.globalPaletteRaw[:ctx.globalPaletteCount], OK
	}

	if len(ctx.globalConverted) < int(ctx.globalPaletteCount) {
		ctx.globalConverted = make([]uint16, ctx.globalPaletteCount)
		ctx.globalConvertedEncoding = noEncoding
	}
	if ctx.globalConvertedEncoding != desired {
		for i, v := range ctx.globalPaletteRaw[:ctx.globalPaletteCount] {
			ctx.globalConverted[i] = lebin.SwapRGB565(v)
		}
		ctx.globalConvertedEncoding = desired
	}

	return ctx.globalConverted[:ctx.globalPaletteCount], OK
}

// GetGlobalPalette returns the file's global palette in the current output
// encoding, or ErrOutOfBounds if the file carries none.
func (ctx *Context) GetGlobalPalette() ([]uint16, error) {
	palette, result := ctx.resolveGlobalPalette()
	if result != OK {
		return nil, newErr(result, "get global palette")
	}
	return palette, nil
}

// resolveLocalPalette converts entries read from a frame's embedded
// PaletteHeader into the current output encoding, using the palette scratch
// arena when a conversion is needed. The scratch's contents are overwritten
// by the next call that touches it.
func (ctx *Context) resolveLocalPalette(entries []uint16, sourceEncoding ColorEncoding) []uint16 {
	desired := ctx.selectOutputEncoding(sourceEncoding)
	if desired == sourceEncoding {
		return entries
	}
	scratch := ctx.acquirePaletteScratch(uint16(len(entries)))
	for i, v := range entries {
		scratch[i] = lebin.SwapRGB565(v)
	}
	return scratch
}

// GetFramePalette returns the palette a frame actually uses: its embedded
// local palette if FrameIndexEntry.Flags.HasLocalPalette is set, else the
// file's global palette. When a local palette needs byte-swapping, the
// returned slice is the Context's palette scratch, which the next call that
// uses it overwrites; the caller must not retain it past that call.
func (ctx *Context) GetFramePalette(frameIndex uint32) ([]uint16, error) {
	if frameIndex >= ctx.header.FrameCount {
		return nil, newErr(ErrOutOfBounds, "get frame palette")
	}

	entry := ctx.frameIndex[frameIndex]
	if !entry.Flags.HasLocalPalette {
		palette, result := ctx.resolveGlobalPalette()
		if result != OK {
			return nil, newErr(result, "get frame palette")
		}
		return palette, nil
	}

	palette, result := ctx.readLocalPalette(entry)
	if result != OK {
		return nil, newErr(result, "get frame palette")
	}
	return palette, nil
}

// readLocalPalette locates and decodes the PaletteHeader embedded in a
// frame block, then resolves it to the current output encoding.
func (ctx *Context) readLocalPalette(entry FrameIndexEntry) ([]uint16, Result) {
	frameOffset := uint64(entry.FrameOffset)
	frameSize := uint64(entry.FrameSize)

	if frameSize == 0 || !fits(frameOffset, frameSize, ctx.size) {
		return nil, ErrCorruptData
	}
	frameEnd := frameOffset + frameSize

	if !fits(frameOffset, sizeFrameHeader, ctx.size) {
		return nil, ErrCorruptData
	}
	var fhBuf [sizeFrameHeader]byte
	if result := ctx.source.readInto(frameOffset, fhBuf[:]); result != OK {
		return nil, result
	}
	fh := parseFrameHeader(fhBuf[:])

	if fh.LocalPaletteEntryCount == 0 {
		return nil, ErrCorruptData
	}

	phOffset := frameOffset + uint64(fh.HeaderSize)
	if phOffset > frameEnd {
		return nil, ErrCorruptData
	}
	if !fits(phOffset, sizePaletteHeader, ctx.size) || sizePaletteHeader > frameEnd-phOffset {
		return nil, ErrCorruptData
	}

	var phBuf [sizePaletteHeader]byte
	if result := ctx.source.readInto(phOffset, phBuf[:]); result != OK {
		return nil, result
	}
	ph := parsePaletteHeader(phBuf[:])

	if uint64(ph.HeaderSize) < sizePaletteHeader {
		return nil, ErrCorruptData
	}
	if !isValidColorEncoding(ph.ColorEncoding) {
		return nil, ErrUnsupportedFormat
	}
	if ph.EntryCount == 0 {
		return nil, ErrCorruptData
	}

	paletteDataOffset := phOffset + uint64(ph.HeaderSize)
	paletteBytes := uint64(ph.EntryCount) * 2
	if !fits(paletteDataOffset, paletteBytes, ctx.size) {
		return nil, ErrCorruptData
	}
	if paletteDataOffset > frameEnd || paletteBytes > frameEnd-paletteDataOffset {
		return nil, ErrCorruptData
	}

	entries, result := ctx.readPaletteEntries(paletteDataOffset, ph.EntryCount)
	if result != OK {
		return nil, result
	}

	return ctx.resolveLocalPalette(entries, ColorEncoding(ph.ColorEncoding)), OK
}
