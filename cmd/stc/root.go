// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/stlang/stc/internal/compile"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stc",
		Short: "Structured Text front end: expression parser and global index",
		Long: `stc parses IEC 61131-3 Structured Text expressions and maintains the
global index that code generation resolves names through.

Commands:
  parse  Print the parse tree of an expression
  repl   Parse expressions and query an index interactively
  index  Build an index from a directive script and print it
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// With no subcommand, behave like "stc repl".
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
	root.PersistentFlags().BoolVar(&compile.Trace, "trace", compile.Trace, "log each artifact the declaration pass associates")

	root.AddCommand(newParseCmd(), newREPLCmd(), newIndexCmd())
	return root
}
