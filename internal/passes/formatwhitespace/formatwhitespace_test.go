// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package formatwhitespace

import (
	"testing"

	"cminify/internal/replace"
)

func format(t *testing.T, src string) string {
	t.Helper()
	reps, err := Run([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := replace.Apply([]byte(src), reps)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestFormatCollapsesExtraWhitespace(t *testing.T) {
	got := format(t, "int   main ( )  {  return   0 ;  }")
	want := "int main(){return 0;}"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}

func TestFormatPreservesSpaceAfterDefineName(t *testing.T) {
	got := format(t, "#define FOO (x+1)\nint a=FOO;")
	want := "#define FOO (x+1)\nint a=FOO;"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}

func TestFormatObjectLikeDefineWithoutParenBody(t *testing.T) {
	got := format(t, "#define   N   10\nint a[N];")
	want := "#define N 10\nint a[N];"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}

func TestFormatNewlineInsideDirectiveCollapsesToOne(t *testing.T) {
	// Extra blank lines inside a still-open directive's own line boundary
	// collapse the same as any other gap once the directive has actually
	// closed at a real newline.
	got := format(t, "#define N 1\n\n\nint x;")
	want := "#define N 1\nint x;"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}
