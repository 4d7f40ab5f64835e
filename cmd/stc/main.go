// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The stc command parses Structured Text expressions and builds global
// indexes from directive scripts.
//
// With no arguments, it starts a read-parse-print loop (REPL).
package main // import "github.com/stlang/stc/cmd/stc"

import (
	"log"
	"os"
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("stc: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}
