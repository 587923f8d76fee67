// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astwalk defines the AST walker interface pass C
// (MinifyIdentifiers) is built against, per spec §4.3 and §6: "an AST
// walker that visits declarations and references with canonical keys and
// source locations, and distinguishes main-file from header locations."
// spec.md treats a real walker (a clang-tooling RecursiveASTVisitor, in the
// original) as an external collaborator outside the core's scope — this
// package only pins down the shape pass C consumes.
//
// A second file in this package, textwalk.go, supplies the concrete walker
// internal/pipeline uses to drive pass C end to end. It is a deliberately
// simplified line-and-bracket scanner, not a conforming C parser; it covers
// the small translation units this module's own tests exercise.
package astwalk

import "cminify/internal/token"

// Kind identifies which row of spec §4.3's table a Node corresponds to.
type Kind int

const (
	EnumDecl Kind = iota
	EnumConstant
	RecordDecl
	FieldDecl
	Typedef
	CompoundStmt
	FunctionDecl
	VarDecl
	DeclRef
	MemberRef
	DesignatedInitField
	TypeRef
)

func (k Kind) String() string {
	switch k {
	case EnumDecl:
		return "EnumDecl"
	case EnumConstant:
		return "EnumConstant"
	case RecordDecl:
		return "RecordDecl"
	case FieldDecl:
		return "FieldDecl"
	case Typedef:
		return "Typedef"
	case CompoundStmt:
		return "CompoundStmt"
	case FunctionDecl:
		return "FunctionDecl"
	case VarDecl:
		return "VarDecl"
	case DeclRef:
		return "DeclRef"
	case MemberRef:
		return "MemberRef"
	case DesignatedInitField:
		return "DesignatedInitField"
	case TypeRef:
		return "TypeRef"
	}
	return "unknown"
}

// Key is the canonical identity of a declaration or type: two occurrences
// of the same entity (a forward declaration and its definition, a
// declaration and a later reference to it) compare equal under this key.
type Key interface{}

// Node is one event in the traversal: a declaration, a reference, or a
// scope-affecting construct. Which fields are meaningful depends on Kind,
// mirroring spec §4.3's table.
type Node struct {
	Kind Kind

	// Key is the canonical key for declarations (EnumDecl, EnumConstant,
	// RecordDecl, FieldDecl, Typedef, FunctionDecl, VarDecl) and for the
	// declaration a reference resolves to (DeclRef, MemberRef,
	// DesignatedInitField, TypeRef). Unused for CompoundStmt.
	Key Key

	// Name is the original spelling: the declared name for a declaration,
	// or the referenced name for a reference.
	Name string

	// NameRange is the byte range of Name at this node's site: the
	// declarator for a declaration, the reference expression for a
	// reference. Unused for CompoundStmt.
	NameRange token.Range

	// At is this node's own position, fed to the scope manager's
	// on_location before any add/register/lookup the node triggers (spec
	// §4.2). For most declarations and references it equals
	// NameRange.Start; for CompoundStmt, and for the RecordDecl event that
	// opens a tag body, it is the position of the construct itself (there
	// is no Name to derive it from).
	At int

	// End is the position scope-affecting nodes (RecordDecl,
	// FunctionDecl, CompoundStmt) push a scope up to, per spec §4.2: the
	// start of the construct's closing "}" (or ";" for a prototype), the
	// last position still inside it, so the scope manager pops the scope
	// at the first node located after that token. It is
	// known in full before the node is visited (computed by a lookahead
	// bracket match), so the push happens in the same event that declares
	// the construct rather than needing a separate close event.
	End int

	// InMainFile reports whether this node's spelling location lies in the
	// file being minified, per spec §4.3's "in main file" test. A node
	// with InMainFile false is registered as external rather than renamed.
	InMainFile bool
}

// Visitor receives one Visit call per Node, in the source-order,
// depth-first pre-order the AST walker guarantees (spec §5's ordering
// guarantee).
type Visitor interface {
	Visit(n Node)
}

// VisitorFunc adapts a plain function to Visitor.
type VisitorFunc func(Node)

func (f VisitorFunc) Visit(n Node) { f(n) }

// Walker traverses a translation unit's AST, in source order, calling
// v.Visit once per node.
type Walker interface {
	Walk(v Visitor) error
}
