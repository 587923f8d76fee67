// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cminify is a source-to-source minifier for C translation units:
// it renames user-introduced declarations to the shortest legal identifier,
// lifts repeated token runs into macros, and removes avoidable whitespace,
// per spec §1.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cminify/internal/compdb"
	"cminify/internal/heatmap"
	"cminify/internal/pipeline"
	"cminify/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	toolArgs, compilerArgs := compdb.SplitCompilerArgs(args)

	fs := flag.NewFlagSet("cminify", flag.ContinueOnError)
	inPlace := fs.Bool("i", false, "edit the source file in place")
	expandAll := fs.Bool("expand-all", false, "run macro expansion (pass B) before identifier minification")
	noAddMacros := fs.Bool("no-add-macros", false, "skip the macro-introduction pass (pass D)")
	noNiceMacros := fs.Bool("no-nice-macros", false, "disable the bracket-balance filter in pass D")
	showReport := fs.Bool("report", false, "print a per-pass byte-size bar chart to stderr")
	savingsImage := fs.String("savings-image", "", "write a per-line byte-savings heatmap PNG to `path`")
	savingsFont := fs.String("savings-font", "", "TrueType font `path` used to label the --savings-image legend")
	var extraArgs []string
	fs.Var(compdb.ExtraArgs{Args: &extraArgs}, "extra-arg", "extra compiler `flag`, forwarded to the compilation database (repeatable)")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(toolArgs); err != nil {
		log.Fatal(err)
	}

	if fs.NArg() > 1 {
		fs.Usage()
		log.Fatal("too many arguments")
	}
	if *inPlace && fs.NArg() == 0 {
		log.Fatal("-i requires a file argument")
	}

	var path string
	var src []byte
	if fs.NArg() == 1 {
		path = fs.Arg(0)
		var err error
		src, err = os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		path = "<stdin>"
		var err error
		src, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("reading stdin: %v", err)
		}
	}

	var ledger *report.Ledger
	if *showReport {
		ledger = &report.Ledger{}
	}

	db := compdb.New(extraArgs, compilerArgs)
	out, err := pipeline.Run(db, path, src, pipeline.Options{
		ExpandAll:    *expandAll,
		NoAddMacros:  *noAddMacros,
		NoNiceMacros: *noNiceMacros,
		Ledger:       ledger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cminify: %v\n", err)
		return exitCode(err)
	}

	if ledger != nil {
		text, err := report.Render(ledger)
		if err != nil {
			log.Print(err)
		} else {
			fmt.Fprint(os.Stderr, text)
		}
	}

	if *savingsImage != "" {
		if err := writeSavingsImage(*savingsImage, *savingsFont, src, out); err != nil {
			log.Print(err)
		}
	}

	if *inPlace {
		if err := os.WriteFile(path, out, 0644); err != nil {
			log.Fatal(err)
		}
		return 0
	}
	os.Stdout.Write(out)
	return 0
}

// writeSavingsImage renders a heatmap.Render image to path from before and
// after byte sizes.
//
// The pipeline doesn't track which output bytes a given input line produced
// — identifiers get renamed, macros get lifted out from under several
// lines, whitespace gets dropped — so there's no exact per-line mapping to
// report. Instead each original line's "after" size is its own length
// scaled by the file's overall before/after ratio: an estimate of where the
// savings landed, not a measurement of it.
func writeSavingsImage(path, fontPath string, before, after []byte) error {
	lines := bytes.Split(before, []byte("\n"))
	ratio := 1.0
	if len(before) > 0 {
		ratio = float64(len(after)) / float64(len(before))
	}

	savings := make([]heatmap.LineSavings, len(lines))
	for i, line := range lines {
		b := len(line)
		a := int(float64(b) * ratio)
		if a > b {
			a = b
		}
		savings[i] = heatmap.LineSavings{Line: i + 1, Before: b, After: a}
	}

	return heatmap.Render(path, savings, fontPath)
}

// exitCode maps a pipeline failure to one of the nonzero exit codes spec §7
// requires: "nonzero indicates which stage failed".
func exitCode(err error) int {
	se, ok := err.(*pipeline.StageError)
	if !ok {
		return 1
	}
	switch se.Kind {
	case pipeline.CompilationOptionsError:
		return 3
	case pipeline.ReplacementConflictError:
		return 5
	case pipeline.LexError:
		return 4
	default:
		return 1
	}
}
