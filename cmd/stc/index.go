// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"

	"github.com/stlang/stc/repl"
)

func newIndexCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "index [script]",
		Short: "Build an index from a directive script and print it",
		Long: `Index runs the directives and expressions of script (or standard
input) and prints the resulting index. Output of the script itself goes
to standard error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var marshal func(proto.Message) ([]byte, error)
			switch format {
			case "wire":
				marshal = proto.Marshal
			case "text":
				marshal = prototext.MarshalOptions{Multiline: true, Indent: "\t"}.Marshal
			case "json":
				marshal = protojson.MarshalOptions{Multiline: true, Indent: "\t"}.Marshal
			default:
				return errors.Errorf("unsupported --format: %s", format)
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			st := repl.NewState()
			defer st.Close()
			if err := repl.Run(in, cmd.ErrOrStderr(), st); err != nil {
				return err
			}

			snap, err := st.Index.Snapshot()
			if err != nil {
				return errors.Wrap(err, "snapshot")
			}
			data, err := marshal(snap)
			if err != nil {
				return errors.Wrapf(err, "encoding %s", format)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json, wire)")
	return cmd
}
