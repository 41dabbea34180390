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

// fits reports whether a range [offset, offset+length) lies within
// [0, limit) without ever computing offset+length, which would overflow for
// untrusted length values near the platform's uint maximum.
func fits(offset, length, limit uint64) bool {
	if length > limit {
		return false
	}
	return offset <= limit-length
}
