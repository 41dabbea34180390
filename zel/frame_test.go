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
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
)

// TestDecodeIndex8SingleZoneNoCompression is scenario S1.
func TestDecodeIndex8SingleZoneNoCompression(t *testing.T) {
	t.Parallel()
	ctx, err := Open(simpleFixture(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]byte, 8)
	if err := ctx.DecodeFrameIndex8(0, buf, 4); err != nil {
		t.Fatalf("DecodeFrameIndex8: %v", err)
	}

	want := []byte{0, 1, 0, 1, 1, 0, 1, 0}
	if !bytes.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}
}

// TestDecodeRgb565SingleZoneLESource is scenario S2.
func TestDecodeRgb565SingleZoneLESource(t *testing.T) {
	t.Parallel()
	data := newFixture(t, 4, 2, 4, 2).
		withGlobalPalette(uint8(ColorEncodingLE), 0x0000, 0xFFFF).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionNone,
			duration:    100,
			zones:       [][]byte{{0, 1, 0, 1, 1, 0, 1, 0}},
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]uint16, 8)
	if err := ctx.DecodeFrameRgb565(0, buf, 4); err != nil {
		t.Fatalf("DecodeFrameRgb565: %v", err)
	}

	want := []uint16{0x0000, 0xFFFF, 0x0000, 0xFFFF, 0xFFFF, 0x0000, 0xFFFF, 0x0000}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("pixel %d = %#04x, want %#04x", i, buf[i], want[i])
		}
	}
}

// TestMultiZoneEquivalence is scenario S4: the full-frame decode and four
// sequential per-zone decodes assembled at their quadrant offsets must
// produce byte-identical frames.
func TestMultiZoneEquivalence(t *testing.T) {
	t.Parallel()

	zones := [][]byte{
		{0, 1},
		{2, 3},
		{4, 5},
		{6, 7},
	}
	data := newFixture(t, 4, 2, 2, 1).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionNone,
			duration:    100,
			zones:       zones,
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	full := make([]byte, 8)
	if err := ctx.DecodeFrameIndex8(0, full, 4); err != nil {
		t.Fatalf("DecodeFrameIndex8: %v", err)
	}

	assembled := make([]byte, 8)
	// zone (x,y) on this 4x2 plane: 0=(0,0) 1=(2,0) 2=(0,1) 3=(2,1), stride 4
	rows := []int{0, 0, 1, 1}
	cols := []int{0, 2, 0, 2}
	for zi := range zones {
		zoneBuf := make([]byte, 2)
		if err := ctx.DecodeFrameIndex8Zone(0, uint32(zi), zoneBuf); err != nil {
			t.Fatalf("DecodeFrameIndex8Zone(%d): %v", zi, err)
		}
		dstOff := rows[zi]*4 + cols[zi]
		copy(assembled[dstOff:dstOff+2], zoneBuf)
	}

	if !bytes.Equal(full, assembled) {
		t.Fatalf("full decode %v != assembled per-zone decode %v", full, assembled)
	}
}

// TestDecodeLZ4Compressed exercises the LZ4 zone codec path end to end.
func TestDecodeLZ4Compressed(t *testing.T) {
	t.Parallel()
	zone := bytes.Repeat([]byte{7}, 4*4)
	data := newFixture(t, 4, 4, 4, 4).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionLZ4,
			duration:    100,
			zones:       [][]byte{zone},
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]byte, 16)
	if err := ctx.DecodeFrameIndex8(0, buf, 4); err != nil {
		t.Fatalf("DecodeFrameIndex8: %v", err)
	}
	if !bytes.Equal(buf, zone) {
		t.Fatalf("pixels = %v, want %v", buf, zone)
	}
}

// TestDecodeRejectsRLECompression confirms the reserved RLE tag is rejected
// rather than silently treated as None.
func TestDecodeRejectsRLECompression(t *testing.T) {
	t.Parallel()
	data := newFixture(t, 2, 1, 2, 1).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionRLE,
			duration:    100,
			zones:       [][]byte{{0, 1}},
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]byte, 2)
	err = ctx.DecodeFrameIndex8(0, buf, 2)
	requireResult(t, err, ErrUnsupportedFormat)
}

// TestDecodeRejectsMisDecompressedLZ4Size is part of scenario S6: an LZ4
// chunk that decompresses to the wrong number of bytes is CorruptData.
func TestDecodeRejectsMisDecompressedLZ4Size(t *testing.T) {
	t.Parallel()

	// zoneWidth*zoneHeight = 4, but the injected chunk actually decompresses
	// to 6 bytes: DecodeFrameIndex8 must reject the mismatch as CorruptData.
	wrongSizePayload := bytes.Repeat([]byte{9}, 6)
	compressed := make([]byte, lz4.CompressBlockBound(len(wrongSizePayload)))
	var ht [1 << 16]int
	n, err := lz4.CompressBlock(wrongSizePayload, compressed, ht[:])
	if err != nil || n == 0 {
		t.Fatalf("lz4 compress: n=%d err=%v", n, err)
	}

	data := newFixture(t, 2, 2, 2, 2).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionLZ4,
			duration:    100,
			zones:       [][]byte{{0, 0, 0, 0}},
			forceChunkBytes: [][]byte{
				compressed[:n],
			},
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]byte, 4)
	err = ctx.DecodeFrameIndex8(0, buf, 2)
	requireResult(t, err, ErrCorruptData)
}

// TestDecodeRejectsPaletteIndexOutOfRange is part of scenario S6.
func TestDecodeRejectsPaletteIndexOutOfRange(t *testing.T) {
	t.Parallel()
	data := newFixture(t, 2, 1, 2, 1).
		withGlobalPalette(uint8(ColorEncodingLE), 0x0000).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionNone,
			duration:    100,
			zones:       [][]byte{{0, 5}}, // index 5 has no palette entry
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]uint16, 2)
	err = ctx.DecodeFrameRgb565(0, buf, 2)
	requireResult(t, err, ErrCorruptData)
}

// TestDecodeRejectsWrongChunkLengthUncompressed is part of scenario S6: an
// uncompressed zone chunk whose length differs from zoneWidth*zoneHeight is
// CorruptData.
func TestDecodeRejectsWrongChunkLengthUncompressed(t *testing.T) {
	t.Parallel()
	data := newFixture(t, 2, 1, 2, 1).
		addFrame(fixtureFrame{
			keyframe:    true,
			compression: CompressionNone,
			duration:    100,
			zones:       [][]byte{{0, 1}},
			forceChunkBytes: [][]byte{
				{0, 1, 2}, // one byte too many for zonePixelBytes == 2
			},
		}).
		build()

	ctx, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	buf := make([]byte, 2)
	err = ctx.DecodeFrameIndex8(0, buf, 2)
	requireResult(t, err, ErrCorruptData)
}

func TestFramePaletteAndFlagGetters(t *testing.T) {
	t.Parallel()
	ctx, err := Open(simpleFixture(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ctx.Close()

	keyframe, err := ctx.GetFrameIsKeyframe(0)
	if err != nil || !keyframe {
		t.Fatalf("GetFrameIsKeyframe(0) = %v, %v; want true, nil", keyframe, err)
	}

	local, err := ctx.GetFrameUsesLocalPalette(0)
	if err != nil || local {
		t.Fatalf("GetFrameUsesLocalPalette(0) = %v, %v; want false, nil", local, err)
	}

	if _, err := ctx.GetFrameIsKeyframe(1); err == nil {
		t.Fatalf("expected OutOfBounds for frame 1")
	}
}
