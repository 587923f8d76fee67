// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a per-pass size ledger as a terminal bar chart. It
// is new relative to the original tool (the C++ original never reports
// anything beyond the minified file itself), gated behind the CLI's
// "--report" flag so the default pipeline behavior is untouched.
//
// It is grounded in cmd/memlat's latency histogram: that command builds a
// log-scaled axis with scale.NewLog, rounds it to human ticks with
// scaler.Nice, and projects data points onto it with vec.Map. Here the data
// points are "bytes remaining in the main file after each pass" instead of
// "requests per latency bucket," but the axis-building code is the same
// shape.
package report

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

// Entry is one pipeline stage's contribution to the ledger: its name and the
// size in bytes of the overlay layer it produced.
type Entry struct {
	Stage string
	Bytes int
}

// Ledger accumulates one Entry per pipeline stage, in the order the stages
// ran.
type Ledger struct {
	Entries []Entry
}

// Record appends an entry. Passes that didn't run (e.g. ExpandMacros when
// --expand-all wasn't given) are simply never recorded, rather than
// recorded with a zero delta.
func (l *Ledger) Record(stage string, bytes int) {
	l.Entries = append(l.Entries, Entry{Stage: stage, Bytes: bytes})
}

// barWidth is the character width of the longest bar in the rendered chart.
const barWidth = 40

// Render formats l as a log-scaled horizontal bar chart, one line per
// recorded stage, each bar's length proportional to that stage's log-scaled
// byte count. The axis always runs from 1 byte up to the largest size (at
// least 1), and sizes below 1 are drawn as 1; an error is returned only if
// scale.NewLog rejects that axis.
func Render(l *Ledger) (string, error) {
	if len(l.Entries) == 0 {
		return "", nil
	}

	max := 1
	for _, e := range l.Entries {
		if e.Bytes > max {
			max = e.Bytes
		}
	}

	scaler, err := scale.NewLog(1, float64(max), 10)
	if err != nil {
		return "", fmt.Errorf("building report scale: %w", err)
	}
	scaler.Nice(scale.TickOptions{Max: 6})

	sizes := make([]float64, len(l.Entries))
	for i, e := range l.Entries {
		n := e.Bytes
		if n < 1 {
			n = 1
		}
		sizes[i] = float64(n)
	}
	fracs := vec.Map(scaler.Map, sizes)

	nameWidth := 0
	for _, e := range l.Entries {
		if len(e.Stage) > nameWidth {
			nameWidth = len(e.Stage)
		}
	}

	var out strings.Builder
	for i, e := range l.Entries {
		barLen := int(fracs[i] * barWidth)
		if barLen < 0 {
			barLen = 0
		}
		if barLen > barWidth {
			barLen = barWidth
		}
		fmt.Fprintf(&out, "%-*s %s %d bytes\n", nameWidth, e.Stage, strings.Repeat("#", barLen), e.Bytes)
	}
	return out.String(), nil
}
