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

// Command zelinfo inspects ZEL animation files and prints their metadata.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/zelformat/zel/zel"
	lebin "github.com/zelformat/zel/internal/binary"
)

var (
	inputFile  = flag.String("i", "", "input file path (required)")
	jsonOutput = flag.Bool("json", false, "output as JSON")
	locate     = flag.Bool("locate", false, "search the file for an embedded ZEL magic instead of parsing it as one")
	version    = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

// fs is the filesystem zelinfo reads through; callers may swap it for any
// other afero.Fs, such as an in-memory one.
var fs afero.Fs = afero.NewOsFs()

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -i <file> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Inspects ZEL animation files and prints their metadata.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i anim.zel\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i anim.zel -json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i blob.bin -locate\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("zelinfo version %s\n", appVersion)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	if *locate {
		runLocate(*inputFile)
		return
	}

	data, err := afero.ReadFile(fs, *inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	info, err := inspect(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		outputJSON(info)
	} else {
		outputText(info)
	}
}

// fileInfo is the metadata zelinfo prints about a ZEL file.
type fileInfo struct {
	Width              uint16 `json:"width"`
	Height             uint16 `json:"height"`
	ZoneWidth          uint16 `json:"zoneWidth"`
	ZoneHeight         uint16 `json:"zoneHeight"`
	FrameCount         uint32 `json:"frameCount"`
	DefaultFrameMs     uint16 `json:"defaultFrameDurationMs"`
	TotalDurationMs    uint32 `json:"totalDurationMs"`
	HasGlobalPalette   bool   `json:"hasGlobalPalette"`
	GlobalPaletteCount int    `json:"globalPaletteCount,omitempty"`
}

func inspect(data []byte) (*fileInfo, error) {
	ctx, err := zel.Open(data)
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	info := &fileInfo{
		Width:           ctx.Width(),
		Height:          ctx.Height(),
		ZoneWidth:       ctx.ZoneWidth(),
		ZoneHeight:      ctx.ZoneHeight(),
		FrameCount:      ctx.FrameCount(),
		DefaultFrameMs:  ctx.DefaultFrameDurationMs(),
		TotalDurationMs: ctx.TotalDurationMs(),
	}

	if ctx.HasGlobalPalette() {
		info.HasGlobalPalette = true
		palette, err := ctx.GetGlobalPalette()
		if err != nil {
			return nil, fmt.Errorf("read global palette: %w", err)
		}
		info.GlobalPaletteCount = len(palette)
	}

	return info, nil
}

func outputJSON(info *fileInfo) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func outputText(info *fileInfo) {
	fmt.Printf("Dimensions: %dx%d\n", info.Width, info.Height)
	fmt.Printf("Zone size: %dx%d\n", info.ZoneWidth, info.ZoneHeight)
	fmt.Printf("Frames: %d\n", info.FrameCount)
	fmt.Printf("Default frame duration: %d ms\n", info.DefaultFrameMs)
	fmt.Printf("Total duration: %d ms\n", info.TotalDurationMs)
	if info.HasGlobalPalette {
		fmt.Printf("Global palette: %d entries\n", info.GlobalPaletteCount)
	} else {
		fmt.Printf("Global palette: none\n")
	}
}

// runLocate scans a file for an embedded ZEL magic at an unknown offset,
// for ZEL payloads bundled inside another container.
func runLocate(path string) {
	f, err := fs.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error stating file: %v\n", err)
		os.Exit(1)
	}

	offset, err := lebin.FindBytesInRange(f, 0, stat.Size(), []byte("ZEL0"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning file: %v\n", err)
		os.Exit(1)
	}
	if offset < 0 {
		fmt.Println("No ZEL magic found")
		os.Exit(1)
	}
	fmt.Printf("Found ZEL magic at offset %d\n", offset)
}
