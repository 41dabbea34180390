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
	"encoding/binary"
	"testing"

	"github.com/pierrec/lz4/v4"
)

// fixtureBuilder assembles a byte-exact ZEL blob by hand, the same way the
// testable properties in section 8 describe one: no encoder exists in this
// package, only the decoder under test.
type fixtureBuilder struct {
	t testing.TB

	width, height         uint16
	zoneWidth, zoneHeight uint16
	frameCount            uint32
	defaultDuration       uint16

	hasGlobalPalette bool
	globalPalette    []uint16
	globalEncoding   uint8

	frames []fixtureFrame
}

type fixtureFrame struct {
	keyframe        bool
	compression     CompressionType
	duration        uint16
	localPalette    []uint16
	localEncoding   uint8
	zones           [][]byte // raw index pixels per zone, zoneWidth*zoneHeight each
	forceChunkBytes [][]byte // when non-nil, used verbatim as the on-disk chunk payload for the corresponding zone (for corruption tests)
}

func newFixture(t testing.TB, width, height, zoneWidth, zoneHeight uint16) *fixtureBuilder {
	return &fixtureBuilder{
		t:               t,
		width:           width,
		height:          height,
		zoneWidth:       zoneWidth,
		zoneHeight:      zoneHeight,
		defaultDuration: 100,
	}
}

func (b *fixtureBuilder) withGlobalPalette(encoding uint8, entries ...uint16) *fixtureBuilder {
	b.hasGlobalPalette = true
	b.globalEncoding = encoding
	b.globalPalette = entries
	return b
}

func (b *fixtureBuilder) addFrame(f fixtureFrame) *fixtureBuilder {
	b.frames = append(b.frames, f)
	return b
}

func le16(v uint16) []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	return buf
}

func le32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

func encodePalette(entries []uint16) []byte {
	buf := make([]byte, len(entries)*2)
	for i, v := range entries {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return buf
}

// build assembles the full file. Frame blocks are laid out in frame order
// immediately following the global palette and frame-index table.
func (b *fixtureBuilder) build() []byte {
	b.t.Helper()

	flags := uint8(0x04) // HasFrameIndexTable
	if b.hasGlobalPalette {
		flags |= 0x01
	}

	header := make([]byte, 32)
	copy(header[0:4], "ZEL0")
	copy(header[4:6], le16(1))    // version
	copy(header[6:8], le16(32))   // headerSize
	copy(header[8:10], le16(b.width))
	copy(header[10:12], le16(b.height))
	copy(header[12:14], le16(b.zoneWidth))
	copy(header[14:16], le16(b.zoneHeight))
	header[16] = uint8(ColorFormatIndexed8)
	header[17] = flags
	copy(header[18:22], le32(uint32(len(b.frames))))
	copy(header[22:24], le16(b.defaultDuration))

	var globalPaletteBlock []byte
	if b.hasGlobalPalette {
		ph := make([]byte, 8)
		ph[0] = uint8(PaletteTypeGlobal)
		ph[1] = 8
		copy(ph[2:4], le16(uint16(len(b.globalPalette))))
		ph[4] = b.globalEncoding
		globalPaletteBlock = append(ph, encodePalette(b.globalPalette)...)
	}

	frameBlocks := make([][]byte, len(b.frames))
	for i, f := range b.frames {
		frameBlocks[i] = b.buildFrameBlock(f)
	}

	indexTable := make([]byte, 11*len(b.frames))
	offset := uint32(len(header)) + uint32(len(globalPaletteBlock)) + uint32(len(indexTable))
	for i, blk := range frameBlocks {
		entryFlags := uint8(0)
		if b.frames[i].keyframe {
			entryFlags |= 0x01
		}
		if len(b.frames[i].localPalette) > 0 {
			entryFlags |= 0x02
		}
		rec := indexTable[i*11 : i*11+11]
		copy(rec[0:4], le32(offset))
		copy(rec[4:8], le32(uint32(len(blk))))
		rec[8] = entryFlags
		copy(rec[9:11], le16(b.frames[i].duration))
		offset += uint32(len(blk))
	}

	out := append([]byte{}, header...)
	out = append(out, globalPaletteBlock...)
	out = append(out, indexTable...)
	for _, blk := range frameBlocks {
		out = append(out, blk...)
	}
	return out
}

func (b *fixtureBuilder) buildFrameBlock(f fixtureFrame) []byte {
	hasLocal := len(f.localPalette) > 0

	fhFlags := uint8(0)
	if f.keyframe {
		fhFlags |= 0x01
	}
	if hasLocal {
		fhFlags |= 0x02
	}

	fh := make([]byte, 14)
	fh[0] = 0 // blockType
	fh[1] = 14
	fh[2] = fhFlags
	copy(fh[3:5], le16(uint16(len(f.zones))))
	fh[5] = uint8(f.compression)
	copy(fh[6:8], le16(0xFFFF)) // no reference frame
	if hasLocal {
		copy(fh[8:10], le16(uint16(len(f.localPalette))))
	}

	body := append([]byte{}, fh...)

	if hasLocal {
		ph := make([]byte, 8)
		ph[0] = uint8(PaletteTypeLocal)
		ph[1] = 8
		copy(ph[2:4], le16(uint16(len(f.localPalette))))
		ph[4] = f.localEncoding
		body = append(body, ph...)
		body = append(body, encodePalette(f.localPalette)...)
	}

	for zi, zone := range f.zones {
		var chunk []byte
		if f.forceChunkBytes != nil && f.forceChunkBytes[zi] != nil {
			chunk = f.forceChunkBytes[zi]
		} else {
			switch f.compression {
			case CompressionNone:
				chunk = zone
			case CompressionLZ4:
				dst := make([]byte, lz4.CompressBlockBound(len(zone)))
				var ht [1 << 16]int
				n, err := lz4.CompressBlock(zone, dst, ht[:])
				if err != nil {
					b.t.Fatalf("lz4 compress: %v", err)
				}
				if n == 0 {
					b.t.Fatalf("lz4 compress: zone data too small/incompressible for this fixture, choose a more repetitive pattern")
				}
				chunk = dst[:n]
			default:
				chunk = zone
			}
		}
		body = append(body, le32(uint32(len(chunk)))...)
		body = append(body, chunk...)
	}

	return body
}
