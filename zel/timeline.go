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

// GetFrameDurationMs returns a frame's effective duration: its own
// FrameIndexEntry.FrameDuration if nonzero, else the file's default.
func (ctx *Context) GetFrameDurationMs(frameIndex uint32) (uint16, error) {
	if frameIndex >= ctx.header.FrameCount {
		return 0, newErr(ErrOutOfBounds, "get frame duration")
	}
	entry := ctx.frameIndex[frameIndex]
	if entry.FrameDuration != 0 {
		return entry.FrameDuration, nil
	}
	return ctx.header.DefaultFrameDuration, nil
}

// GetFrameIsKeyframe reports a frame's keyframe flag.
func (ctx *Context) GetFrameIsKeyframe(frameIndex uint32) (bool, error) {
	if frameIndex >= ctx.header.FrameCount {
		return false, newErr(ErrOutOfBounds, "get frame keyframe flag")
	}
	return ctx.frameIndex[frameIndex].Flags.Keyframe, nil
}

// GetFrameUsesLocalPalette reports whether a frame carries its own embedded
// palette rather than using the file's global one.
func (ctx *Context) GetFrameUsesLocalPalette(frameIndex uint32) (bool, error) {
	if frameIndex >= ctx.header.FrameCount {
		return false, newErr(ErrOutOfBounds, "get frame local palette flag")
	}
	return ctx.frameIndex[frameIndex].Flags.HasLocalPalette, nil
}

// TotalDurationMs sums every frame's effective duration. A file with a zero
// total (e.g. zero frames) is accepted here; FindFrameByTimeMs is the one
// that rejects it, since only it divides by the total.
func (ctx *Context) TotalDurationMs() uint32 {
	var total uint32
	for i := range ctx.frameIndex {
		d := ctx.frameIndex[i].FrameDuration
		if d == 0 {
			d = ctx.header.DefaultFrameDuration
		}
		total += uint32(d)
	}
	return total
}

// FindFrameByTimeMs maps a playback position to the frame active at that
// time, looping the timeline modulo its total duration. It returns the
// frame index and the absolute start time (mod total) of that frame.
func (ctx *Context) FindFrameByTimeMs(timeMs uint64) (uint32, uint64, error) {
	total := uint64(ctx.TotalDurationMs())
	if total == 0 {
		return 0, 0, newErr(ErrCorruptData, "find frame by time: zero total duration")
	}

	target := timeMs % total
	var accum uint64
	for i := range ctx.frameIndex {
		d := ctx.frameIndex[i].FrameDuration
		if d == 0 {
			d = ctx.header.DefaultFrameDuration
		}
		next := accum + uint64(d)
		if target < next {
			return uint32(i), accum, nil
		}
		accum = next
	}

	// Unreachable given total > 0, but mirrors the reference's defensive
	// fallback rather than panicking on a rounding edge case.
	return ctx.header.FrameCount - 1, total - 1, nil
}
