// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline orchestrates passes A through E over a single source
// file, per spec §2 and §5: each pass runs to completion before the next
// begins, reading the overlay's current layer and pushing the next one.
package pipeline

import (
	"fmt"

	"cminify/internal/astwalk"
	"cminify/internal/classify"
	"cminify/internal/compdb"
	"cminify/internal/lexer"
	"cminify/internal/overlay"
	"cminify/internal/passes/adddefines"
	"cminify/internal/passes/collectmacros"
	"cminify/internal/passes/expandmacros"
	"cminify/internal/passes/formatwhitespace"
	"cminify/internal/passes/minifyident"
	"cminify/internal/replace"
	"cminify/internal/report"
	"cminify/internal/symbol"
)

// FailureKind classifies a pipeline failure per spec §7, so main can map it
// to a distinct nonzero exit code.
type FailureKind int

const (
	// InputError: the source (file or stdin) could not be read. Reported
	// by the caller before Run is ever invoked; kept here only so main has
	// one enum to switch on.
	InputError FailureKind = iota + 1
	// CompilationOptionsError: no compilation database was supplied, and
	// a pass that shells out to the preprocessor cannot proceed without one.
	CompilationOptionsError
	// LexError: the lexer, preprocessor, or AST walker rejected the file;
	// the failing pass is named in StageError.Stage.
	LexError
	// ReplacementConflictError: two replacements emitted by the same pass
	// overlapped, or fell outside the file — a defect in that pass.
	ReplacementConflictError
)

// StageError reports which pass failed and why.
type StageError struct {
	Stage string
	Kind  FailureKind
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Options selects which optional passes run, per spec §6's flags.
type Options struct {
	ExpandAll    bool // run pass B before pass C.
	NoAddMacros  bool // skip pass D entirely.
	NoNiceMacros bool // disable pass D's bracket-balance filter.

	// Ledger, if non-nil, is populated with one entry per pass that ran,
	// recording the byte size of the overlay's top layer immediately after
	// that pass — the data internal/report renders as a bar chart behind
	// the CLI's "--report" flag. Passes that did not run (a skipped
	// ExpandMacros, a suppressed AddDefines) are simply never recorded.
	Ledger *report.Ledger
}

// Run executes passes A–E over src (the contents of the file at path) per
// db's compilation flags and opts, returning the final minified source.
func Run(db *compdb.Database, path string, src []byte, opts Options) ([]byte, error) {
	if db == nil {
		return nil, &StageError{Stage: "CompilationDatabase", Kind: CompilationOptionsError, Err: fmt.Errorf("no compilation database supplied")}
	}

	ov := overlay.New(path, src)

	record := func(stage string) {
		if opts.Ledger != nil {
			opts.Ledger.Record(stage, len(ov.Current()))
		}
	}

	// Pass A: CollectMacroNames.
	macros, err := collectmacros.Run(db, ov.Current())
	if err != nil {
		return nil, &StageError{Stage: "CollectMacroNames", Kind: LexError, Err: err}
	}
	record("CollectMacroNames")

	// Pass B: ExpandMacros (opt-in).
	if opts.ExpandAll {
		expanded, err := expandmacros.Run(db, path, ov.Current())
		if err != nil {
			return nil, &StageError{Stage: "ExpandMacros", Kind: LexError, Err: err}
		}
		ov.Push(expanded)
		record("ExpandMacros")
	}

	// Pass C: MinifyIdentifiers.
	raw, err := lexer.Lex(ov.Current())
	if err != nil {
		return nil, &StageError{Stage: "MinifyIdentifiers", Kind: LexError, Err: err}
	}
	fileEnd := len(ov.Current())

	declGen := symbol.NewGenerator([]string{"main"}, macros)
	typeGen := symbol.NewGenerator(nil, macros)
	// TextWalker expects the classifier's aggregated preprocessor-line
	// tokens, same as pass D: see internal/classify's doc comment.
	walker := astwalk.NewTextWalker(classify.Classify(raw))
	reps, err := minifyident.Run(walker, fileEnd, declGen, typeGen)
	if err != nil {
		return nil, &StageError{Stage: "MinifyIdentifiers", Kind: LexError, Err: err}
	}
	next, err := replace.Apply(ov.Current(), reps)
	if err != nil {
		return nil, &StageError{Stage: "MinifyIdentifiers", Kind: ReplacementConflictError, Err: err}
	}
	ov.Push(next)
	record("MinifyIdentifiers")

	// Pass D: AddDefines.
	if !opts.NoAddMacros {
		raw, err := lexer.Lex(ov.Current())
		if err != nil {
			return nil, &StageError{Stage: "AddDefines", Kind: LexError, Err: err}
		}
		classified := classify.Classify(raw)
		ov.Push([]byte(adddefines.Run(classified, declGen, !opts.NoNiceMacros)))
		record("AddDefines")
	}

	// Pass E: FormatWhitespace.
	reps, err = formatwhitespace.Run(ov.Current())
	if err != nil {
		return nil, &StageError{Stage: "FormatWhitespace", Kind: LexError, Err: err}
	}
	next, err = replace.Apply(ov.Current(), reps)
	if err != nil {
		return nil, &StageError{Stage: "FormatWhitespace", Kind: ReplacementConflictError, Err: err}
	}
	ov.Push(next)
	record("FormatWhitespace")

	return ov.Current(), nil
}
