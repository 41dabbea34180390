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

// Context is the root decoder handle: a single-owner value built once from a
// bounded byte source and then queried repeatedly. It is not safe for
// concurrent use by multiple goroutines; distinct Contexts over the same
// bytes share no mutable state.
type Context struct {
	source *byteSource
	size   uint64
	header FileHeader
	layout zoneLayout

	frameIndex []FrameIndexEntry

	globalPaletteRaw      []uint16
	globalPaletteCount    uint16
	globalPaletteEncoding ColorEncoding

	globalConverted         []uint16
	globalConvertedEncoding ColorEncoding

	hasCustomOutputEncoding bool
	outputColorEncoding     ColorEncoding

	zoneScratch    []byte
	frameScratch   []byte
	paletteScratch []uint16
}

// Open builds a Context from an in-memory blob. The returned Context borrows
// data for its entire lifetime: the caller must keep the slice alive and
// must not mutate it while the Context is in use.
func Open(data []byte) (*Context, error) {
	if data == nil || uint64(len(data)) < sizeFileHeader {
		return nil, newErr(ErrInvalidArgument, "input buffer smaller than file header")
	}
	ctx := newContext(newWholeSource(data))
	if result := ctx.init(); result != OK {
		return nil, newErr(result, "open memory")
	}
	return ctx, nil
}

// OpenStream builds a Context from a bounded, read-at-offset source. Bytes
// are copied into owned memory as needed rather than borrowed.
func OpenStream(stream *StreamSource) (*Context, error) {
	if stream == nil || stream.Read == nil || stream.Size < sizeFileHeader {
		return nil, newErr(ErrInvalidArgument, "stream missing read callback or too small")
	}
	ctx := newContext(newStreamSource(stream))
	if result := ctx.init(); result != OK {
		return nil, newErr(result, "open stream")
	}
	return ctx, nil
}

func newContext(source *byteSource) *Context {
	return &Context{
		source:                  source,
		size:                    source.size,
		globalPaletteEncoding:   ColorEncodingLE,
		globalConvertedEncoding: noEncoding,
		outputColorEncoding:     ColorEncodingLE,
	}
}

// Close invokes the stream's close hook, if any; scratch buffers are left to
// the garbage collector. Close does not guard against repeated calls: on a
// streamed Context a second call invokes the close hook again, while on a
// whole-buffer Context it is a no-op.
func (ctx *Context) Close() {
	ctx.source.close()
}

// init validates the file header, optionally ingests the global palette,
// and loads the required frame-index table. Each step aborts with the most
// specific Result on first failure, per section 4.4.
func (ctx *Context) init() Result {
	var hdrBuf [sizeFileHeader]byte
	if result := ctx.source.readInto(0, hdrBuf[:]); result != OK {
		return result
	}
	header := parseFileHeader(hdrBuf[:])

	if header.Magic != fileMagic {
		return ErrInvalidMagic
	}
	if header.Version != 1 {
		return ErrInvalidMagic
	}
	if header.Width == 0 || header.Height == 0 {
		return ErrInvalidMagic
	}
	if header.ColorFormat != uint8(ColorFormatIndexed8) {
		return ErrUnsupportedFormat
	}

	// Every header-shape failure collapses to InvalidMagic: the reference
	// decoder treats a structurally invalid header as "not a ZEL file"
	// rather than distinguishing which field was wrong.
	layout, result := computeZoneLayout(&header)
	if result != OK {
		return ErrInvalidMagic
	}

	if uint64(header.HeaderSize) < sizeFileHeader || uint64(header.HeaderSize) > ctx.size {
		return ErrCorruptData
	}

	ctx.header = header
	ctx.layout = layout

	offset := uint64(header.HeaderSize)
	if offset > ctx.size {
		return ErrCorruptData
	}

	if header.Flags.HasGlobalPalette {
		next, result := ctx.loadGlobalPalette(offset)
		if result != OK {
			return result
		}
		offset = next
	}

	if !header.Flags.HasFrameIndexTable {
		return ErrUnsupportedFormat
	}

	return ctx.loadFrameIndexTable(offset)
}

// loadGlobalPalette reads the PaletteHeader at offset and its entries,
// returning the offset immediately following the palette.
func (ctx *Context) loadGlobalPalette(offset uint64) (uint64, Result) {
	if !fits(offset, sizePaletteHeader, ctx.size) {
		return 0, ErrCorruptData
	}
	var phBuf [sizePaletteHeader]byte
	if result := ctx.source.readInto(offset, phBuf[:]); result != OK {
		return 0, result
	}
	ph := parsePaletteHeader(phBuf[:])

	if !isValidColorEncoding(ph.ColorEncoding) {
		return 0, ErrUnsupportedFormat
	}
	if ph.EntryCount == 0 {
		return 0, ErrCorruptData
	}
	if ph.HeaderSize < sizePaletteHeader {
		return 0, ErrCorruptData
	}

	paletteDataOffset := offset + uint64(ph.HeaderSize)
	paletteBytes := uint64(ph.EntryCount) * 2
	if !fits(paletteDataOffset, paletteBytes, ctx.size) {
		return 0, ErrCorruptData
	}

	entries, result := ctx.readPaletteEntries(paletteDataOffset, ph.EntryCount)
	if result != OK {
		return 0, result
	}

	ctx.globalPaletteRaw = entries
	ctx.globalPaletteCount = ph.EntryCount
	ctx.globalPaletteEncoding = ColorEncoding(ph.ColorEncoding)

	return paletteDataOffset + paletteBytes, OK
}

// readPaletteEntries decodes entryCount palette entries at offset into a new
// slice, reading each entry as a little-endian u16. Both source kinds are
// copied through readInto; whole-buffer entries are not borrowed.
func (ctx *Context) readPaletteEntries(offset uint64, entryCount uint16) ([]uint16, Result) {
	raw := make([]byte, uint64(entryCount)*2)
	if result := ctx.source.readInto(offset, raw); result != OK {
		return nil, result
	}
	out := make([]uint16, entryCount)
	for i := range out {
		out[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	return out, OK
}

// loadFrameIndexTable reads the required frame-index table at offset.
func (ctx *Context) loadFrameIndexTable(offset uint64) Result {
	indexBytes := uint64(ctx.header.FrameCount) * sizeFrameIndexEntry
	if !fits(offset, indexBytes, ctx.size) {
		return ErrCorruptData
	}

	raw := make([]byte, indexBytes)
	if result := ctx.source.readInto(offset, raw); result != OK {
		return result
	}
	ctx.frameIndex = parseFrameIndexTable(raw, ctx.header.FrameCount)
	return OK
}

// Metadata getters.

func (ctx *Context) Width() uint16                    { return ctx.header.Width }
func (ctx *Context) Height() uint16                   { return ctx.header.Height }
func (ctx *Context) FrameCount() uint32               { return ctx.header.FrameCount }
func (ctx *Context) DefaultFrameDurationMs() uint16   { return ctx.header.DefaultFrameDuration }
func (ctx *Context) ZoneWidth() uint16                { return ctx.header.ZoneWidth }
func (ctx *Context) ZoneHeight() uint16               { return ctx.header.ZoneHeight }
func (ctx *Context) ColorFormat() ColorFormat         { return ColorFormat(ctx.header.ColorFormat) }

// SetOutputColorEncoding overrides the encoding used by palette resolution
// and RGB565 decode. Passing an invalid encoding is a no-op, matching the
// reference API's defensive behavior. Switching encoding invalidates the
// memoized global-palette conversion.
func (ctx *Context) SetOutputColorEncoding(encoding ColorEncoding) {
	if !isValidColorEncoding(uint8(encoding)) {
		return
	}
	if !ctx.hasCustomOutputEncoding || ctx.outputColorEncoding != encoding {
		ctx.outputColorEncoding = encoding
		ctx.hasCustomOutputEncoding = true
		ctx.globalConvertedEncoding = noEncoding
	}
}

// ClearOutputColorEncoding removes any override, reverting to each
// palette's native on-disk encoding.
func (ctx *Context) ClearOutputColorEncoding() {
	if ctx.hasCustomOutputEncoding {
		ctx.hasCustomOutputEncoding = false
		ctx.globalConvertedEncoding = noEncoding
	}
}

// OutputColorEncoding returns the encoding applied to the global palette:
// the override if one is set, else the global palette's own encoding.
func (ctx *Context) OutputColorEncoding() ColorEncoding {
	if ctx.hasCustomOutputEncoding {
		return ctx.outputColorEncoding
	}
	return ctx.globalPaletteEncoding
}

// selectOutputEncoding resolves the effective encoding for a palette whose
// on-disk encoding is sourceEncoding: the override if set, else the source
// encoding unchanged (invariant 9).
func (ctx *Context) selectOutputEncoding(sourceEncoding ColorEncoding) ColorEncoding {
	if ctx.hasCustomOutputEncoding {
		return ctx.outputColorEncoding
	}
	return sourceEncoding
}

// HasGlobalPalette reports whether the file declares a global palette.
func (ctx *Context) HasGlobalPalette() bool {
	return ctx.globalPaletteRaw != nil && ctx.globalPaletteCount > 0
}

// acquireZoneScratch grows the zone scratch arena to at least neededBytes
// and returns it. The arena is grow-only and reused across calls.
func (ctx *Context) acquireZoneScratch(neededBytes uint64) []byte {
	if neededBytes == 0 {
		return nil
	}
	if uint64(len(ctx.zoneScratch)) < neededBytes {
		ctx.zoneScratch = make([]byte, neededBytes)
	}
	return ctx.zoneScratch[:neededBytes]
}

// acquireFrameScratch grows the frame-bytes scratch arena, used only for
// streamed sources to materialize a frame block before parsing it.
func (ctx *Context) acquireFrameScratch(neededBytes uint64) []byte {
	if uint64(len(ctx.frameScratch)) < neededBytes {
		ctx.frameScratch = make([]byte, neededBytes)
	}
	return ctx.frameScratch[:neededBytes]
}

// acquirePaletteScratch grows the palette scratch arena, used to hold a
// byte-swapped local palette. Its contents are overwritten by the next call
// that touches it and must not be retained by the caller.
func (ctx *Context) acquirePaletteScratch(neededEntries uint16) []uint16 {
	if neededEntries == 0 {
		return nil
	}
	if len(ctx.paletteScratch) < int(neededEntries) {
		ctx.paletteScratch = make([]uint16, neededEntries)
	}
	return ctx.paletteScratch[:neededEntries]
}
