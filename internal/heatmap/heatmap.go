// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heatmap renders a per-line "bytes saved" image of the main file
// across passes C through E, gated behind the CLI's "--savings-image" flag.
// It is new relative to the original tool, added to give golang/freetype (+
// indirect golang.org/x/image) a job: cmd/memanim rasterizes a memory-access
// heatmap with freetype.NewContext/ParseFont/DrawString drawing panel
// labels over image.NRGBA panels; this package repoints that same
// rasterization path at source lines instead of memory pages, drawing one
// row per source line and a legend with two labels, "remaining" and
// "saved".
//
// Unlike memanim, which hard-codes a path into a desktop font directory,
// this package cannot assume one exists (the CLI may run in a minimal
// container), so a missing or unparsable font degrades to bars without
// labels rather than failing the render.
package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/golang/freetype"
)

// LineSavings is one source line's byte count before and after the
// minification passes, keyed by its 1-based line number in the original
// file.
type LineSavings struct {
	Line   int
	Before int
	After  int
}

const (
	rowHeight    = 4
	legendHeight = 16
	barWidth     = 256
)

// Render writes a PNG to path: one row per entry in lines (in order), a
// gray bar sized to the line's remaining bytes with a red cap showing bytes
// saved, and — if fontPath names a loadable TrueType font — a legend
// row drawn with freetype labeling the axis. A failure to load the font is
// not an error; the image is still written, just without the legend text.
func Render(path string, lines []LineSavings, fontPath string) error {
	if len(lines) == 0 {
		return fmt.Errorf("rendering savings heatmap: no lines to render")
	}

	maxBefore := 1
	for _, l := range lines {
		if l.Before > maxBefore {
			maxBefore = l.Before
		}
	}

	height := legendHeight + rowHeight*len(lines)
	img := image.NewNRGBA(image.Rect(0, 0, barWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for i, l := range lines {
		y0 := legendHeight + i*rowHeight
		y1 := y0 + rowHeight
		afterW := scaleWidth(l.After, maxBefore)
		beforeW := scaleWidth(l.Before, maxBefore)
		for y := y0; y < y1; y++ {
			for x := 0; x < afterW; x++ {
				img.Set(x, y, color.Gray{Y: 96})
			}
			for x := afterW; x < beforeW; x++ {
				img.Set(x, y, color.RGBA{R: 200, A: 255})
			}
		}
	}

	drawLegend(img, fontPath)

	return writePNG(path, img)
}

func scaleWidth(n, max int) int {
	if max <= 0 {
		return 0
	}
	w := n * barWidth / max
	if w > barWidth {
		w = barWidth
	}
	if w < 0 {
		w = 0
	}
	return w
}

// drawLegend draws "bytes remaining | bytes saved" across the top of img
// using fontPath, if it names a font freetype can parse. Any failure to
// load or use the font silently leaves the legend blank: the bars
// themselves carry the information the flag promises.
func drawLegend(img *image.NRGBA, fontPath string) {
	if fontPath == "" {
		return
	}
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return
	}
	font, err := freetype.ParseFont(fontData)
	if err != nil {
		return
	}

	ctx := freetype.NewContext()
	ctx.SetFontSize(10)
	ctx.SetFont(font)
	ctx.SetSrc(image.Black)
	ctx.SetDst(img)
	ctx.SetClip(img.Bounds())

	ctx.DrawString("remaining", freetype.Pt(2, 10))
	ctx.DrawString("saved", freetype.Pt(barWidth-40, 10))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rendering savings heatmap: %w", err)
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("rendering savings heatmap: %w", err)
	}
	return f.Close()
}
