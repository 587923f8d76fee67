// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ppshell is cminify's concrete instance of the "C preprocessor"
// external collaborator spec.md §1 and §6 delegate macro expansion to. It is
// adapted from the teacher's internal/cparse/pp.go, which shells out to the
// system "cc" for the same two jobs (enumerate macro names, preprocess a
// translation unit); we generalize BuildEnv into compdb.Database and give
// Preprocess a real file path so downstream callers can match the
// linemarkers `cc -E` emits against the main file.
package ppshell

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"cminify/internal/compdb"
)

// CC is the compiler driver invoked for preprocessing. It is a var, not a
// constant, so tests can point it at a stub.
var CC = "cc"

var macroRe = regexp.MustCompile(`^#define ([_a-zA-Z][_a-zA-Z0-9]*)`)

// FindMacros returns the names of every macro defined while preprocessing
// src, directly or via an #include. This backs pass A, CollectMacroNames.
func FindMacros(db *compdb.Database, src []byte) ([]string, error) {
	args := append(append([]string(nil), db.CCArgs...), "-x", "c", "-E", "-dM", "-")
	cc := exec.Command(CC, args...)
	cc.Stdin = bytes.NewReader(src)
	cc.Stderr = os.Stderr
	out, err := cc.Output()
	if err != nil {
		return nil, fmt.Errorf("collecting macro names: %w", err)
	}
	var macros []string
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		m := macroRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("failed to parse macro definition %q", line)
		}
		macros = append(macros, m[1])
	}
	return macros, nil
}

// Preprocess invokes the C preprocessor on the named file (path is used only
// so linemarkers in the output name the file the caller expects; content is
// the actual bytes to preprocess, which need not be on disk at path at all).
// It backs pass B, ExpandMacros.
func Preprocess(db *compdb.Database, path string, content []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "cminify-*-"+sanitizeBase(path))
	if err != nil {
		return nil, fmt.Errorf("preprocessing: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("preprocessing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("preprocessing: %w", err)
	}

	args := append(append([]string(nil), db.CCArgs...), "-x", "c", "-E", tmp.Name())
	cc := exec.Command(CC, args...)
	cc.Stderr = os.Stderr
	out, err := cc.Output()
	if err != nil {
		return nil, fmt.Errorf("preprocessing: %w", err)
	}
	return bytes.ReplaceAll(out, []byte(tmp.Name()), []byte(path)), nil
}

func sanitizeBase(path string) string {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	if base == "" {
		base = "stdin.c"
	}
	return base
}
