// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collectmacros implements pass A, CollectMacroNames, per spec
// §4.6: it registers every macro name visible after preprocessing into the
// reserved set passes C and D consult so a minted or generated identifier
// never shadows a macro a header provides.
package collectmacros

import (
	"cminify/internal/compdb"
	"cminify/internal/ppshell"
)

// Run returns the name of every macro defined while preprocessing src,
// directly or via an #include — the set pass C's and pass D's symbol
// generators must treat as reserved.
func Run(db *compdb.Database, src []byte) ([]string, error) {
	return ppshell.FindMacros(db, src)
}
