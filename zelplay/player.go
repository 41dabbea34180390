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

// Package zelplay implements a decoded-frame cache on top of package zel.
// The core decoder never caches a decoded frame's pixels (only the
// converted global palette and scratch buffers survive a call); repeated
// playback of the same frame, such as a looping animation or seeking
// backward, would otherwise redecode and re-blit every zone each time.
// Player adds that cache as a layer outside the decoder rather than
// changing its contract.
package zelplay

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/zelformat/zel/zel"
)

// RGBAFrame is a fully decoded, palette-expanded frame, ready to hand to a
// renderer. Pix is row-major RGB565, Stride pixels per row.
type RGBAFrame struct {
	Pix    []uint16
	Stride int
	Width  int
	Height int
}

// Player wraps a *zel.Context with an LRU cache of decoded frames, keyed by
// frame index and the output color encoding in effect when it was decoded
// (a cached frame decoded under one encoding is not valid under another).
type Player struct {
	ctx *zel.Context

	mu    sync.Mutex
	cache *lru.Cache[frameCacheKey, *RGBAFrame]
}

type frameCacheKey struct {
	frame    uint32
	encoding zel.ColorEncoding
}

// defaultCacheFrames bounds memory use for typical animations (a few dozen
// frames) without forcing a redecode on every step of a short loop.
const defaultCacheFrames = 32

// NewPlayer builds a Player over an already-open Context, caching up to
// cacheFrames decoded frames. A cacheFrames of 0 uses defaultCacheFrames.
func NewPlayer(ctx *zel.Context, cacheFrames int) (*Player, error) {
	if ctx == nil {
		return nil, fmt.Errorf("zelplay: nil context")
	}
	if cacheFrames <= 0 {
		cacheFrames = defaultCacheFrames
	}
	cache, err := lru.New[frameCacheKey, *RGBAFrame](cacheFrames)
	if err != nil {
		return nil, fmt.Errorf("zelplay: create frame cache: %w", err)
	}
	return &Player{ctx: ctx, cache: cache}, nil
}

// Frame returns the decoded, palette-expanded pixels for frameIndex,
// decoding and caching them on first access. The returned RGBAFrame must
// not be mutated by the caller: it may be shared with later cache hits.
func (p *Player) Frame(frameIndex uint32) (*RGBAFrame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := frameCacheKey{frame: frameIndex, encoding: p.ctx.OutputColorEncoding()}
	if frame, ok := p.cache.Get(key); ok {
		return frame, nil
	}

	width := int(p.ctx.Width())
	height := int(p.ctx.Height())
	pix := make([]uint16, width*height)
	if err := p.ctx.DecodeFrameRgb565(frameIndex, pix, uint32(width)); err != nil {
		return nil, err
	}

	frame := &RGBAFrame{Pix: pix, Stride: width, Width: width, Height: height}
	p.cache.Add(key, frame)
	return frame, nil
}

// AtTime returns the frame active at timeMs on the animation's looping
// timeline, along with that frame's start time within the current loop.
func (p *Player) AtTime(timeMs uint64) (*RGBAFrame, uint64, error) {
	frameIndex, startMs, err := p.ctx.FindFrameByTimeMs(timeMs)
	if err != nil {
		return nil, 0, err
	}
	frame, err := p.Frame(frameIndex)
	if err != nil {
		return nil, 0, err
	}
	return frame, startMs, nil
}

// Invalidate drops every cached frame. The cache key already includes the
// output encoding, so switching encodings never serves a stale frame; this
// is only useful to reclaim memory, e.g. after a long playback session.
func (p *Player) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Purge()
}

// Len reports how many decoded frames are currently cached.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache.Len()
}
