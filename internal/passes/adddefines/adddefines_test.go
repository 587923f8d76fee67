// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adddefines

import (
	"reflect"
	"strings"
	"testing"

	"cminify/internal/classify"
	"cminify/internal/lexer"
	"cminify/internal/symbol"
)

func TestConstructSuffixArrayBanana(t *testing.T) {
	// "banana" with codes assigned in alphabetical order (a=0, b=1, n=2) so
	// the well-known suffix array for "banana" applies directly.
	arr := []int{1, 0, 2, 0, 2, 0}
	got := constructSuffixArray(arr)
	want := []int{5, 3, 1, 0, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("constructSuffixArray(banana) = %v, want %v", got, want)
	}
}

func TestConstructLCPArrayBanana(t *testing.T) {
	arr := []int{1, 0, 2, 0, 2, 0}
	sa := constructSuffixArray(arr)
	got := constructLCPArray(arr, sa)
	want := []int{0, 1, 3, 0, 0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("constructLCPArray(banana) = %v, want %v", got, want)
	}
}

func TestResultingLengthSumsWeightsAndSeparators(t *testing.T) {
	infos := []info{
		{spelling: "foo", weight: 3},
		{spelling: "(", weight: 1, isPunctuator: true},
		{spelling: "bar", weight: 3},
	}
	// foo ( bar : "foo" then "(" adjacent to identifier-weight "foo" needs
	// no separator (punctuator involved), "(" then "bar" likewise no
	// separator. Total = 3 + 1 + 3 = 7.
	codes := []int{0, 1, 2}
	if got := resultingLength(codes, infos); got != 7 {
		t.Errorf("resultingLength = %d, want 7", got)
	}
}

func TestResultingLengthAddsSeparatorBetweenIdentifiers(t *testing.T) {
	infos := []info{
		{spelling: "foo", weight: 3},
		{spelling: "bar", weight: 3},
	}
	codes := []int{0, 1}
	// Both identifier-like, neither punctuator nor PP: one separating byte.
	if got := resultingLength(codes, infos); got != 7 {
		t.Errorf("resultingLength = %d, want 7 (3+1+3)", got)
	}
}

func TestAddNormalCodeIsIdempotent(t *testing.T) {
	normalCodes := map[string]int{}
	var infos []info
	next := 0
	c1, infos := addNormalCode("mac", infos, normalCodes, &next)
	c2, infos := addNormalCode("mac", infos, normalCodes, &next)
	if c1 != c2 {
		t.Errorf("addNormalCode not idempotent: %d != %d", c1, c2)
	}
	if len(infos) != 1 {
		t.Errorf("addNormalCode appended a duplicate info entry: %d", len(infos))
	}
	if infos[c1].weight != len("mac") {
		t.Errorf("weight = %d, want %d", infos[c1].weight, len("mac"))
	}
}

func TestReplaceOccurrencesNonOverlapping(t *testing.T) {
	// source: a b a b a b, part: a b, replacement: 9.
	source := []int{0, 1, 0, 1, 0, 1}
	part := []int{0, 1}
	got := replaceOccurrences(source, part, 9)
	want := []int{9, 9, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("replaceOccurrences = %v, want %v", got, want)
	}
}

func TestReplaceOccurrencesForbidsOverlap(t *testing.T) {
	// source: a a a, part: a a -- only one non-overlapping match fits,
	// leaving the third 'a' untouched.
	source := []int{0, 0, 0}
	part := []int{0, 0}
	got := replaceOccurrences(source, part, 9)
	want := []int{9, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("replaceOccurrences = %v, want %v", got, want)
	}
}

func TestRunEmptyInput(t *testing.T) {
	gen := symbol.NewGenerator([]string{"main"}, nil)
	got := Run(nil, gen, true)
	if got != "" {
		t.Errorf("Run(nil) = %q, want empty", got)
	}
}

func TestRunSingleTokenPassesThrough(t *testing.T) {
	raw, err := lexer.Lex([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	classified := classify.Classify(raw)
	gen := symbol.NewGenerator([]string{"main"}, nil)
	got := Run(classified, gen, true)
	if got != "x " {
		t.Errorf("Run(single token) = %q, want %q", got, "x ")
	}
}

func TestRunNoRepeatsProducesNoDefines(t *testing.T) {
	raw, err := lexer.Lex([]byte("int a;float b"))
	if err != nil {
		t.Fatal(err)
	}
	classified := classify.Classify(raw)
	gen := symbol.NewGenerator([]string{"main"}, nil)
	got := Run(classified, gen, true)
	if strings.Contains(got, "#define") {
		t.Errorf("Run produced a define for a stream with no repeated runs: %q", got)
	}
}

func TestRunNiceMacrosKeepsDefineBodiesBracketBalanced(t *testing.T) {
	raw, err := lexer.Lex([]byte(
		`void f(){g(a,b,c);}void h(){g(a,b,c);}void k(){g(a,b,c);}`))
	if err != nil {
		t.Fatal(err)
	}
	classified := classify.Classify(raw)
	gen := symbol.NewGenerator([]string{"main"}, nil)
	got := Run(classified, gen, true)

	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "#define") {
			continue
		}
		bal := 0
		for _, r := range line {
			switch r {
			case '(', '[', '{':
				bal++
			case ')', ']', '}':
				bal--
			}
			if bal < 0 {
				t.Fatalf("define line went bracket-negative: %q", line)
			}
		}
		if bal != 0 {
			t.Errorf("define line %q is not bracket-balanced (end balance %d)", line, bal)
		}
	}
}
