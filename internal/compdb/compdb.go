// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compdb models the fixed compilation database consumed by the
// preprocessor and (in a full clang-tooling-backed deployment) the AST
// walker: the include paths, -D macros, and other compiler flags needed to
// parse the main file the way the target toolchain would.
package compdb

import "fmt"

// Database is the compilation database for a single translation unit: the
// compiler flags a real invocation of the toolchain would have used, split
// out from the tool's own flags by a leading "--" on the command line.
//
// This mirrors clang::tooling::CommonOptionsParser's split between "my-tool
// options" and the compiler flags that follow "--", translated to the
// stdlib flag package's conventions.
type Database struct {
	// CCArgs are the compiler flags forwarded verbatim to the
	// preprocessor: include paths, -D defines, -std=, etc.
	CCArgs []string
}

// ExtraArgs is a repeatable flag.Value that accumulates --extra-arg flags,
// one entry appended to CCArgs per occurrence.
type ExtraArgs struct {
	Args *[]string
}

func (e ExtraArgs) String() string {
	if e.Args == nil {
		return ""
	}
	return fmt.Sprint(*e.Args)
}

func (e ExtraArgs) Set(v string) error {
	*e.Args = append(*e.Args, v)
	return nil
}

// SplitCompilerArgs splits args (typically os.Args[1:]) at the first bare
// "--" into the tool's own arguments and the trailing compiler flags. If no
// "--" is present, compilerArgs is nil and toolArgs is all of args.
func SplitCompilerArgs(args []string) (toolArgs, compilerArgs []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// New builds a Database from the extra args collected via ExtraArgs and the
// compiler flags captured after "--".
func New(extraArgs, compilerArgs []string) *Database {
	db := &Database{}
	db.CCArgs = append(db.CCArgs, extraArgs...)
	db.CCArgs = append(db.CCArgs, compilerArgs...)
	return db
}
