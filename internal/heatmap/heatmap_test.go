// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heatmap

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderWritesValidPNGOfExpectedDimensions(t *testing.T) {
	lines := []LineSavings{
		{Line: 1, Before: 10, After: 4},
		{Line: 2, Before: 20, After: 20},
		{Line: 3, Before: 5, After: 0},
	}
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Render(path, lines, ""); err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening rendered image: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding rendered image: %v", err)
	}

	wantHeight := legendHeight + rowHeight*len(lines)
	b := img.Bounds()
	if b.Dx() != barWidth || b.Dy() != wantHeight {
		t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), barWidth, wantHeight)
	}
}

func TestRenderWithMissingFontStillSucceeds(t *testing.T) {
	lines := []LineSavings{{Line: 1, Before: 10, After: 5}}
	path := filepath.Join(t.TempDir(), "out.png")

	if err := Render(path, lines, filepath.Join(t.TempDir(), "no-such-font.ttf")); err != nil {
		t.Fatalf("Render with missing font: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected image to exist despite missing font: %v", err)
	}
}

func TestRenderRejectsEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Render(path, nil, ""); err == nil {
		t.Error("Render(nil lines) succeeded, want error")
	}
}

func TestScaleWidthClampsToBarWidth(t *testing.T) {
	if w := scaleWidth(1000, 10); w != barWidth {
		t.Errorf("scaleWidth(1000, 10) = %d, want %d", w, barWidth)
	}
	if w := scaleWidth(5, 10); w != barWidth/2 {
		t.Errorf("scaleWidth(5, 10) = %d, want %d", w, barWidth/2)
	}
	if w := scaleWidth(5, 0); w != 0 {
		t.Errorf("scaleWidth(5, 0) = %d, want 0", w)
	}
}
