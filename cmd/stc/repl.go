// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stlang/stc/repl"
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse expressions and query an index interactively",
		Long: `Repl reads expressions and index directives line by line.
When standard input is not a terminal, it runs them as a script.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	st := repl.NewState()
	defer st.Close()

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Println("Welcome to stc (github.com/stlang/stc)")
		repl.REPL(st)
		return nil
	}
	return repl.Run(cmd.InOrStdin(), cmd.OutOrStdout(), st)
}
