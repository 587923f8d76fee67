// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lexer is cminify's concrete instance of the "library that can
// enumerate the raw tokens of a translation unit" spec.md §1 and §6 assume
// as an external collaborator. It is adapted from the teacher's
// internal/cparse raw lexer, extended with byte ranges and an
// at-line-start flag because the passes built on top of it (internal/
// classify, internal/passes/...) emit byte-range replacements rather than
// just re-printing a token list.
package lexer

import (
	"cminify/internal/token"
	"fmt"
)

// keywords is the complete set of C99 (+ _Bool/_Complex/_Imaginary)
// reserved words, matching the original util/symbols.cpp list rather than
// the later, accidentally-incomplete minifyAction.cpp copy that dropped
// "auto".
var keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"_Bool": true, "_Complex": true, "_Imaginary": true,
}

// IsKeyword reports whether name is a reserved C keyword.
func IsKeyword(name string) bool { return keywords[name] }

var puncTab map[string]bool

func init() {
	puncTab = make(map[string]bool)
	for _, p := range []string{
		"[", "]", "(", ")", "{", "}", ".", "->",
		"++", "--", "&", "*", "+", "-", "~", "!",
		"/", "%", "<<", ">>", "<", ">", "<=", ">=", "!=",
		"^", "|", "&&", "||",
		"?", ":", ";", "...",
		"=", "*=", "/=", "%=", "+=", "-=", "<<=", ">>=", "&=", "^=", "|=",
		",", "#", "##",
	} {
		puncTab[p] = true
	}
}

type chProps uint8

const (
	chNonDigit chProps = 1 << iota
	chDigit
	chHex
	chOct
	chChars
	chPunct
)

var charTab [256]chProps

func init() {
	for i := range charTab {
		if i == '_' || 'a' <= i && i <= 'z' || 'A' <= i && i <= 'Z' {
			charTab[i] |= chNonDigit
			if 'a' <= i && i <= 'f' || 'A' <= i && i <= 'F' {
				charTab[i] |= chHex
			}
		} else if '0' <= i && i <= '9' {
			charTab[i] |= chDigit | chHex
			if i <= '7' {
				charTab[i] |= chOct
			}
		} else if i == '\'' || i == '"' {
			charTab[i] |= chChars
		}
	}
	for p := range puncTab {
		charTab[p[0]] |= chPunct
	}
}

// reader implements translation phases 1 and 2: deleting "\\\n" line splices
// while tracking a byte offset for Token ranges.
type reader struct {
	src    []byte
	offset int
	line   int
	col    int

	// atLineStart tracks clang's notion of "start of line": true from
	// just after a newline (or the start of the file) until the next
	// non-whitespace character is consumed, independent of how much
	// horizontal whitespace precedes it. A naive "col == 1" check would
	// misfire on indented preprocessor directives.
	atLineStart bool
}

func (r *reader) errorf(f string, args ...interface{}) error {
	return fmt.Errorf("%d:%d: %s", r.line, r.col, fmt.Sprintf(f, args...))
}

func (r *reader) readByte() byte {
	for len(r.src) >= 2 && r.src[0] == '\\' && r.src[1] == '\n' {
		r.src = r.src[2:]
		r.offset += 2
		r.line++
		r.col = 0
	}
	if len(r.src) == 0 {
		return 0
	}
	next := r.src[0]
	r.src = r.src[1:]
	r.offset++
	r.col++
	if next == '\n' {
		r.line++
		r.col = 0
		r.atLineStart = true
	}
	return next
}

func (r *reader) eof() bool { return len(r.src) == 0 }

// Lex tokenizes an already-preprocessed (or, for pass A/B's own use of the
// raw lexer, not-yet-preprocessed but still translation-phase-1/2-clean) C
// source into a flat token stream. It does not fold preprocessor lines into
// a single token; that's internal/classify's job, per spec §3 ("this
// collapse is performed by the token classifier before any downstream pass
// sees it").
func Lex(src []byte) ([]token.Token, error) {
	var toks []token.Token
	r := &reader{src: src, line: 1, col: 0, atLineStart: true}

	var buf []byte
	var ch byte
	haveCh := false

	// tokEnd is the end offset of a token whose scan stopped on the
	// lookahead byte ch: that read advanced the offset past ch, unless it
	// hit the end of input and consumed nothing.
	tokEnd := func() int {
		if ch == 0 && r.eof() {
			return r.offset
		}
		return r.offset - 1
	}

	for {
		if !haveCh {
			ch = r.readByte()
		}
		haveCh = false

		if ch == 0 && r.eof() {
			toks = append(toks, token.Token{
				Kind:        token.EOF,
				AtLineStart: r.atLineStart,
				Range:       token.Range{Start: r.offset, End: r.offset},
			})
			return toks, nil
		}

		// Skip whitespace (it carries no information the downstream
		// passes need: ranges already capture token boundaries).
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\v' || ch == '\f' {
			continue
		}

		atLineStart := r.atLineStart
		r.atLineStart = false
		start := r.offset - 1
		buf = append(buf[:0], ch)

		switch {
		case charTab[ch]&chNonDigit != 0:
			for {
				ch = r.readByte()
				if charTab[ch]&(chNonDigit|chDigit) == 0 {
					haveCh = true
					break
				}
				buf = append(buf, ch)
			}
			text := string(buf)
			kind := token.Identifier
			if IsKeyword(text) {
				kind = token.Keyword
			}
			toks = append(toks, token.Token{Spelling: text, Kind: kind, AtLineStart: atLineStart, Range: token.Range{Start: start, End: tokEnd()}})

		case charTab[ch]&chDigit != 0:
			hex, oct := false, false
			for i := 0; ; i++ {
				ch = r.readByte()
				switch {
				case i == 0 && ch == 'x':
					hex = true
				case i == 0 && ch == '0':
					oct = true
				case hex && charTab[ch]&chHex != 0:
				case oct && charTab[ch]&chOct != 0:
				case charTab[ch]&chDigit != 0:
				case ch == '.' || ch == 'e' || ch == 'E' || ch == 'f' || ch == 'F' || ch == 'l' || ch == 'L' || ch == 'u' || ch == 'U':
					// Accept the remaining floating-point /
					// integer-suffix characters without trying
					// to fully validate them; that's the
					// compiler's job, not the minifier's.
				default:
					haveCh = true
				}
				if haveCh {
					break
				}
				buf = append(buf, ch)
			}
			toks = append(toks, token.Token{Spelling: string(buf), Kind: token.Literal, AtLineStart: atLineStart, Range: token.Range{Start: start, End: tokEnd()}})

		case charTab[ch]&chChars != 0:
			// Character constant or string literal. Unlike the
			// teacher's cparse.Tokenize, we keep the verbatim
			// source bytes (escapes and all) instead of decoding
			// them: spec §3 requires Spelling to be the exact
			// source bytes, since later passes reproduce it
			// byte-for-byte rather than re-encoding a value.
			term := ch
			buf = append(buf[:0], ch)
			esc := false
			for {
				ch = r.readByte()
				if r.eof() && ch == 0 {
					return nil, r.errorf("unterminated literal")
				}
				buf = append(buf, ch)
				switch {
				case esc:
					esc = false
				case ch == '\\':
					esc = true
				case ch == '\n':
					return nil, r.errorf("newline in literal")
				case ch == term:
					goto literalDone
				}
			}
		literalDone:
			toks = append(toks, token.Token{Spelling: string(buf), Kind: token.Literal, AtLineStart: atLineStart, Range: token.Range{Start: start, End: r.offset}})

		case charTab[ch]&chPunct != 0:
			for {
				ch = r.readByte()
				buf = append(buf, ch)
				if !puncTab[string(buf)] {
					buf = buf[:len(buf)-1]
					haveCh = true
					break
				}
			}
			toks = append(toks, token.Token{Spelling: string(buf), Kind: token.Punctuator, AtLineStart: atLineStart, Range: token.Range{Start: start, End: tokEnd()}})

		default:
			return nil, r.errorf("unexpected character %q", string(ch))
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
