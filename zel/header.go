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

// fileMagic is the required FileHeader.Magic value.
var fileMagic = [4]byte{'Z', 'E', 'L', '0'}

// parseFileHeader decodes a 32-byte FileHeader. The caller must pass exactly
// sizeFileHeader bytes; parsers never bounds-check beyond their fixed record
// length since the caller has already verified the range.
//
//	Offset 0x00: magic[4]
//	Offset 0x04: version u16
//	Offset 0x06: headerSize u16
//	Offset 0x08: width u16
//	Offset 0x0A: height u16
//	Offset 0x0C: zoneWidth u16
//	Offset 0x0E: zoneHeight u16
//	Offset 0x10: colorFormat u8
//	Offset 0x11: flags u8
//	Offset 0x12: frameCount u32
//	Offset 0x16: defaultFrameDuration u16
//	Offset 0x18: reserved[10]
func parseFileHeader(src []byte) FileHeader {
	var h FileHeader
	copy(h.Magic[:], src[0:4])
	h.Version = lebin.Uint16LE(src, 4)
	h.HeaderSize = lebin.Uint16LE(src, 6)
	h.Width = lebin.Uint16LE(src, 8)
	h.Height = lebin.Uint16LE(src, 0x0A)
	h.ZoneWidth = lebin.Uint16LE(src, 0x0C)
	h.ZoneHeight = lebin.Uint16LE(src, 0x0E)
	h.ColorFormat = src[0x10]
	h.Flags = parseFileHeaderFlags(src[0x11])
	h.FrameCount = lebin.Uint32LE(src, 0x12)
	h.DefaultFrameDuration = lebin.Uint16LE(src, 0x16)
	return h
}

// parsePaletteHeader decodes an 8-byte PaletteHeader.
//
//	Offset 0x00: type u8
//	Offset 0x01: headerSize u8
//	Offset 0x02: entryCount u16
//	Offset 0x04: colorEncoding u8
//	Offset 0x05: reserved[3]
func parsePaletteHeader(src []byte) PaletteHeader {
	return PaletteHeader{
		Type:          src[0],
		HeaderSize:    src[1],
		EntryCount:    lebin.Uint16LE(src, 2),
		ColorEncoding: src[4],
	}
}

// parseFrameHeader decodes a 14-byte FrameHeader.
//
//	Offset 0x00: blockType u8
//	Offset 0x01: headerSize u8
//	Offset 0x02: flags u8
//	Offset 0x03: zoneCount u16
//	Offset 0x05: compressionType u8
//	Offset 0x06: referenceFrameIndex u16
//	Offset 0x08: localPaletteEntryCount u16
//	Offset 0x0A: reserved[4]
func parseFrameHeader(src []byte) FrameHeader {
	return FrameHeader{
		BlockType:              src[0],
		HeaderSize:             src[1],
		Flags:                  parseFrameFlags(src[2]),
		ZoneCount:              lebin.Uint16LE(src, 3),
		CompressionType:        src[5],
		ReferenceFrameIndex:    lebin.Uint16LE(src, 6),
		LocalPaletteEntryCount: lebin.Uint16LE(src, 8),
	}
}

// parseFrameIndexEntry decodes an 11-byte FrameIndexEntry.
//
//	Offset 0x00: frameOffset u32
//	Offset 0x04: frameSize u32
//	Offset 0x08: flags u8
//	Offset 0x09: frameDuration u16
func parseFrameIndexEntry(src []byte) FrameIndexEntry {
	return FrameIndexEntry{
		FrameOffset:   lebin.Uint32LE(src, 0),
		FrameSize:     lebin.Uint32LE(src, 4),
		Flags:         parseFrameFlags(src[8]),
		FrameDuration: lebin.Uint16LE(src, 9),
	}
}

// parseFrameIndexTable decodes count consecutive FrameIndexEntry records.
func parseFrameIndexTable(src []byte, count uint32) []FrameIndexEntry {
	out := make([]FrameIndexEntry, count)
	for i := range out {
		off := int(i) * sizeFrameIndexEntry
		out[i] = parseFrameIndexEntry(src[off : off+sizeFrameIndexEntry])
	}
	return out
}
