// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stlang/stc/syntax"
)

func newParseCmd() *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the parse tree of an expression",
		Long: `Parse reads one expression from file, from the -e flag, or from
standard input, and prints its tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				filename string
				src      interface{}
			)
			switch {
			case expr != "" && len(args) > 0:
				return errors.New("want a file or -e, not both")
			case expr != "":
				filename, src = "cmdline", expr
			case len(args) == 1:
				filename = args[0]
			default:
				filename, src = "<stdin>", cmd.InOrStdin()
			}

			e, err := syntax.ParseExpr(filename, src)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), syntax.TreeString(e))
			return nil
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse expression `expr`")
	return cmd
}
