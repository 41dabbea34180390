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

// Package zel decodes ZEL container files: palette-indexed animated raster
// imagery built from fixed-size frames partitioned into rectangular zones,
// aimed at embedded LCD/OLED panels that consume RGB565 pixel data.
//
// A Context is built once from an in-memory blob (Open) or a bounded
// read-at-offset source (OpenStream) and then queried repeatedly: metadata
// getters, palette resolution, per-frame timing, and zone-granular
// decompression into either 8-bit indexed or RGB565 destination buffers. A
// Context is not safe for concurrent use from multiple goroutines; distinct
// Contexts over the same bytes share no state and may be used concurrently.
package zel
