// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppshell

import (
	"bytes"
	"os/exec"
	"testing"

	"cminify/internal/compdb"
)

var defaultDB = &compdb.Database{}

func needCC(t *testing.T) {
	t.Helper()
	const bin = "cc"
	if _, err := exec.LookPath(bin); err != nil {
		t.Skipf("need %s binary in PATH", bin)
	}
}

func TestFindMacros(t *testing.T) {
	needCC(t)

	src := []byte("#define TEST 123\n#define EMPTY\n")
	macros, err := FindMacros(defaultDB, src)
	if err != nil {
		t.Fatal(err)
	}
outer:
	for _, want := range []string{"EMPTY", "TEST", "__STDC__"} {
		for _, have := range macros {
			if have == want {
				continue outer
			}
		}
		t.Errorf("%q is not defined", want)
	}
}

func TestFindMacrosRejectsMalformedOutput(t *testing.T) {
	orig := CC
	defer func() { CC = orig }()
	// Point CC at a stub that prints a line FindMacros' parser can't
	// recognize as a #define, exercising the parse-failure path without
	// needing a real compiler installed.
	CC = "echo"
	_, err := FindMacros(defaultDB, nil)
	if err == nil {
		t.Fatal("expected an error parsing echo's output as -dM macro list")
	}
}

func TestPreprocessSubstitutesOriginalPath(t *testing.T) {
	needCC(t)

	out, err := Preprocess(defaultDB, "myfile.c", []byte("int x;\n"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(out, []byte("cminify-")) {
		t.Errorf("preprocessed output still references the temp file name: %s", out)
	}
	if !bytes.Contains(out, []byte("myfile.c")) {
		t.Errorf("preprocessed output does not mention the caller's path: %s", out)
	}
}
