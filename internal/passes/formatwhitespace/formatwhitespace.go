// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package formatwhitespace implements pass E, FormatWhitespace, per spec
// §4.5: it re-lexes the current source and replaces the gap between every
// adjacent pair of tokens according to a small set of rules, removing every
// byte of whitespace the earlier passes left behind (or introduced via
// AddDefines' space-separated token dump).
//
// This pass deliberately does NOT go through internal/classify: the
// original's MinifyFormatter::process walks clang's raw token stream one
// token at a time, never aggregating a "#"-line into one unit the way
// AddDefinesAction::getTokens does, and recognizes a directive only by
// asking whether the individual token in hand is "#" at the start of a
// line. Aggregating first would hide exactly the boundary this pass needs
// — the point between the macro name and whatever follows it — so Run
// lexes src itself via internal/lexer and tracks its own in_pp flag and a
// three-slot trailing window, per spec §4.5.
package formatwhitespace

import (
	"cminify/internal/lexer"
	"cminify/internal/replace"
	"cminify/internal/token"
)

// Run re-lexes src and returns the byte-range replacements that collapse
// its whitespace down to the minimum ISO C99 requires, per spec §4.5's
// pairwise rules.
func Run(src []byte) ([]replace.Replacement, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}

	var reps []replace.Replacement
	prevEnd := 0
	inPP := false
	var window [3]token.Token
	windowLen := 0

	for i, cur := range toks {
		var text string
		switch {
		case i == 0:
			// Before the first token: delete.
		case cur.Kind == token.EOF:
			// After the final token to EOF: delete.
		default:
			prev := toks[i-1]
			beginsDirective := cur.AtLineStart && cur.Spelling == "#"
			switch {
			case beginsDirective || (inPP && cur.AtLineStart):
				text = "\n"
			case prev.IsPunctuator() || cur.IsPunctuator():
				if windowLen == 3 && window[0].Spelling == "#" && window[1].Spelling == "define" &&
					window[2].Kind == token.Identifier && cur.IsPunctuator() && cur.Range.Start > prevEnd {
					// ISO C99 requires whitespace between a macro
					// name and what follows it; without this, a
					// preserved "#define NAME (" would collapse to
					// "#defineNAME(", turning an object-like macro
					// into a function-like one.
					text = " "
				}
			default:
				text = " "
			}
		}

		if cur.Range.Start > prevEnd || text != "" {
			reps = append(reps, replace.Replacement{
				Range: token.Range{Start: prevEnd, End: cur.Range.Start},
				Text:  text,
			})
		}

		if cur.AtLineStart && cur.Spelling == "#" {
			inPP = true
		} else if cur.AtLineStart {
			inPP = false
		}

		if cur.Kind != token.EOF {
			window[0], window[1], window[2] = window[1], window[2], cur
			if windowLen < 3 {
				windowLen++
			}
		}

		prevEnd = cur.Range.End
	}

	return reps, nil
}
