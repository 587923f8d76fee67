// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minifyident

import (
	"testing"

	"cminify/internal/astwalk"
	"cminify/internal/classify"
	"cminify/internal/lexer"
	"cminify/internal/replace"
	"cminify/internal/symbol"
)

func minify(t *testing.T, src string) string {
	t.Helper()
	raw, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	w := astwalk.NewTextWalker(classify.Classify(raw))
	declGen := symbol.NewGenerator([]string{"main"}, nil)
	typeGen := symbol.NewGenerator(nil, nil)
	reps, err := Run(w, len(src), declGen, typeGen)
	if err != nil {
		t.Fatal(err)
	}
	out, err := replace.Apply([]byte(src), reps)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestMinifyFunctionAndLocals(t *testing.T) {
	got := minify(t, `int foo(int bar){int baz=bar;return baz;}int main(){return foo(3);}`)
	// foo's own name mints in the file scope ("a"); its parameter and body
	// locals mint in the inheriting function scope, which starts where the
	// file scope left off, so bar and baz get "b" and "c".
	want := `int a(int b){int c=b;return c;}int main(){return a(3);}`
	if got != want {
		t.Errorf("minify = %q, want %q", got, want)
	}
}

func TestMinifyNeverRenamesMain(t *testing.T) {
	got := minify(t, `int main(){return 0;}`)
	if got != `int main(){return 0;}` {
		t.Errorf("minify = %q, want main untouched", got)
	}
}

func TestMinifySeparateScopesReuseNames(t *testing.T) {
	// Two sibling compound statements each declare one local; since neither
	// is visible to the other, both get the scope's first name.
	got := minify(t, `int main(){{int x;}{int y;}}`)
	want := `int main(){{int a;}{int a;}}`
	if got != want {
		t.Errorf("minify = %q, want %q", got, want)
	}
}

func TestMinifyStructFieldsUseDeclNamespace(t *testing.T) {
	got := minify(t, `int main(){struct Point{int x;int y;};struct Point p;p.x=1;}`)
	// Point mints in the type namespace ("a"); its fields mint in their own
	// fresh scope ("a", "b"); p is the function scope's first decl ("a"),
	// independent of both.
	want := `int main(){struct a{int a;int b;};struct a a;a.a=1;}`
	if got != want {
		t.Errorf("minify = %q, want %q", got, want)
	}
}

func TestMinifyEnumTagAndRecordTagMintIndependently(t *testing.T) {
	got := minify(t, `enum E{X,Y};struct S{int v;};`)
	// E mints in the enum-tag namespace ("a"); X and Y mint in the file
	// scope's decl namespace ("a", "b"); S mints in the record-tag
	// namespace, independently of E already having taken "a" there, so S
	// also gets "a".
	want := `enum a{a,b};struct a{int a;};`
	if got != want {
		t.Errorf("minify = %q, want %q", got, want)
	}
}

func TestMinifyTypedefSharesDeclNamespace(t *testing.T) {
	got := minify(t, `typedef int myint;myint x;`)
	want := `typedef int a;a b;`
	if got != want {
		t.Errorf("minify = %q, want %q", got, want)
	}
}
