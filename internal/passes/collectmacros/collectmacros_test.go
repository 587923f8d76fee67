// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collectmacros

import (
	"os/exec"
	"testing"

	"cminify/internal/compdb"
)

func needCC(t *testing.T) {
	t.Helper()
	const bin = "cc"
	if _, err := exec.LookPath(bin); err != nil {
		t.Skipf("need %s binary in PATH", bin)
	}
}

func TestRunFindsDefinedMacros(t *testing.T) {
	needCC(t)

	db := &compdb.Database{}
	macros, err := Run(db, []byte("#define FOO 1\nint x;\n"))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range macros {
		if m == "FOO" {
			found = true
		}
	}
	if !found {
		t.Errorf("macros = %v, want FOO among them", macros)
	}
}
