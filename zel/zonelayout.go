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

// zoneLayout is the tiling geometry derived once from (width, height,
// zoneWidth, zoneHeight); it is identical for every frame in the file.
type zoneLayout struct {
	zoneWidth     uint16
	zoneHeight    uint16
	zonesPerRow   uint32
	zonesPerCol   uint32
	zoneCount     uint32
	zonePixelBytes uint64
}

// computeZoneLayout derives the zone geometry from the file header,
// enforcing invariant 1: width/height must divide evenly by the zone size
// and the resulting zone count must fit in a uint16 (on-disk zoneCount
// fields are u16).
func computeZoneLayout(h *FileHeader) (zoneLayout, Result) {
	if h.ZoneWidth == 0 || h.ZoneHeight == 0 {
		return zoneLayout{}, ErrCorruptData
	}
	if h.Width%h.ZoneWidth != 0 || h.Height%h.ZoneHeight != 0 {
		return zoneLayout{}, ErrCorruptData
	}

	zonesPerRow := uint32(h.Width) / uint32(h.ZoneWidth)
	zonesPerCol := uint32(h.Height) / uint32(h.ZoneHeight)
	zoneCount := zonesPerRow * zonesPerCol

	if zonesPerRow == 0 || zonesPerCol == 0 || zoneCount == 0 {
		return zoneLayout{}, ErrCorruptData
	}
	if zoneCount > 65535 {
		return zoneLayout{}, ErrUnsupportedFormat
	}

	zonePixelBytes := uint64(h.ZoneWidth) * uint64(h.ZoneHeight)
	if zonePixelBytes == 0 {
		return zoneLayout{}, ErrCorruptData
	}

	return zoneLayout{
		zoneWidth:      h.ZoneWidth,
		zoneHeight:     h.ZoneHeight,
		zonesPerRow:    zonesPerRow,
		zonesPerCol:    zonesPerCol,
		zoneCount:      zoneCount,
		zonePixelBytes: zonePixelBytes,
	}, OK
}

// zoneCoordinates maps a zone index to its pixel offset within the frame.
func zoneCoordinates(layout *zoneLayout, zoneIndex uint32) (x, y uint32) {
	x = (zoneIndex % layout.zonesPerRow) * uint32(layout.zoneWidth)
	y = (zoneIndex / layout.zonesPerRow) * uint32(layout.zoneHeight)
	return x, y
}
