// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/parse/print loop for Structured Text
// expressions over a global index.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// Each input line is either an index directive, which starts with a
// colon, or an expression. The REPL parses an expression, prints its
// tree, and prints what each name in it resolves to in the current
// index and context. Directives populate and query the index:
//
//	:global NAME TYPE           register a global variable
//	:local UNIT NAME ROLE TYPE  register a variable of UNIT (ROLE is Local, Input, ...)
//	:type NAME [KIND]           register a type (KIND is Struct, FunctionBlock, ...)
//	:impl TYPE                  generate an implementation, making TYPE callable
//	:context [UNIT]             resolve names as seen from UNIT, or from nowhere
//	:find NAME                  look up a variable
//	:callable NAME              look up a callable instance variable
//	:gen                        run the declaration pass
//	:dump                       print the index
package repl // import "github.com/stlang/stc/repl"

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/prototext"

	"github.com/stlang/stc/index"
	"github.com/stlang/stc/internal/compile"
	"github.com/stlang/stc/syntax"
)

var interrupted = make(chan os.Signal, 1)

// State is the index, code-generation session and resolution context
// shared by the lines of one REPL or script.
type State struct {
	Index   *index.Index
	Session *compile.Session
	Context string // unit that names are resolved from; empty for none
}

// NewState returns a state with an empty index and an open session.
func NewState() *State {
	idx := index.New()
	return &State{Index: idx, Session: compile.NewSession(idx)}
}

// Close closes the state's session.
func (st *State) Close() { st.Session.Close() }

// REPL executes a read, parse, print loop.
//
// A SIGINT (Control-C) while a line is being processed stops printing
// its output.
func REPL(st *State) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := readline.New("st> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, st); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, processes, and prints one line.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Other errors are printed.
func rep(rl *readline.Instance, st *State) error {
	// Each line gets its own context,
	// which is cancelled by a SIGINT.
	//
	// Note: during Readline calls, Control-C causes Readline to return
	// ErrInterrupt but does not generate a SIGINT.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()

	line, err := rl.Readline()
	if err != nil {
		return err
	}
	if err := st.Exec(ctx, "<stdin>", line, os.Stdout); err != nil {
		PrintError(err)
	}
	return nil
}

// Run executes each line of r as the REPL would and writes the output
// to w. Errors are written to w as well, and do not stop the script.
// Run reports whether any line failed.
func Run(r io.Reader, w io.Writer, st *State) error {
	var failed int
	in := bufio.NewScanner(r)
	for n := 1; in.Scan(); n++ {
		if err := st.Exec(context.Background(), "<script>", in.Text(), w); err != nil {
			failed++
			fmt.Fprintf(w, "line %d: %v\n", n, err)
		}
	}
	if err := in.Err(); err != nil {
		return errors.Wrap(err, "reading script")
	}
	if failed > 0 {
		return errors.Errorf("%d of the script's lines failed", failed)
	}
	return nil
}

// Exec processes one line: a directive, an expression, or a blank or
// comment line, which does nothing. Expression errors are reported
// against filename.
func (st *State) Exec(ctx context.Context, filename, line string, w io.Writer) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "", strings.HasPrefix(line, "//"):
		return nil
	case strings.HasPrefix(line, ":"):
		return st.directive(strings.Fields(line[1:]), w)
	}

	e, err := syntax.ParseExpr(filename, line)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, syntax.TreeString(e))

	resolutions, err := st.Session.ResolveExpr(st.Context, e)
	if err != nil {
		return err
	}
	for _, r := range resolutions {
		if ctx.Err() != nil {
			return errors.New("interrupted")
		}
		fmt.Fprintf(w, "  %s\n", r)
	}
	return nil
}

func (st *State) directive(args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("empty directive")
	}
	name, args := args[0], args[1:]
	usage := func() error { return errors.Errorf("usage: %s", strings.TrimSpace(":"+name+" "+directiveUsage[name])) }

	switch name {
	case "global":
		if len(args) != 2 {
			return usage()
		}
		st.Index.RegisterGlobalVariable(args[0], args[1])

	case "local":
		if len(args) != 4 {
			return usage()
		}
		role, ok := index.ParseVariableType(args[2])
		if !ok {
			return errors.Errorf("unknown role %q", args[2])
		}
		st.Index.RegisterLocalVariable(args[0], args[1], role, args[3])

	case "type":
		switch len(args) {
		case 1:
			st.Index.RegisterType(args[0])
		case 2:
			kind, ok := index.ParseDataTypeType(args[1])
			if !ok {
				return errors.Errorf("unknown type kind %q", args[1])
			}
			st.Index.RegisterTypeKind(args[0], kind)
		default:
			return usage()
		}

	case "impl":
		if len(args) != 1 {
			return usage()
		}
		if _, err := st.Session.Implement(args[0]); err != nil {
			if hint := st.Index.SuggestType(args[0]); hint != "" {
				return errors.Errorf("%v; did you mean %s?", err, hint)
			}
			return err
		}

	case "context":
		switch len(args) {
		case 0:
			st.Context = ""
			fmt.Fprintln(w, "context: none")
		case 1:
			st.Context = args[0]
			fmt.Fprintf(w, "context: %s\n", args[0])
		default:
			return usage()
		}

	case "find", "callable":
		if len(args) != 1 {
			return usage()
		}
		var v *index.VariableIndexEntry
		if name == "find" {
			v = st.Index.FindVariable(st.Context, args[0])
		} else {
			v = st.Index.FindCallableInstanceVariable(st.Context, args[0])
		}
		if v == nil {
			if hint := st.Index.SuggestVariable(st.Context, args[0]); hint != "" {
				fmt.Fprintf(w, "%s: not found; did you mean %s?\n", args[0], hint)
			} else {
				fmt.Fprintf(w, "%s: not found\n", args[0])
			}
			return nil
		}
		fmt.Fprintln(w, describe(v))

	case "gen":
		if len(args) != 0 {
			return usage()
		}
		counts, err := st.Session.DeclarePass()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "declared %s\n", counts)

	case "dump":
		if len(args) != 0 {
			return usage()
		}
		snap, err := st.Index.Snapshot()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, prototext.MarshalOptions{Multiline: true}.Format(snap))

	default:
		return errors.Errorf("unknown directive :%s", name)
	}
	return nil
}

var directiveUsage = map[string]string{
	"global":   "NAME TYPE",
	"local":    "UNIT NAME ROLE TYPE",
	"type":     "NAME [KIND]",
	"impl":     "TYPE",
	"context":  "[UNIT]",
	"find":     "NAME",
	"callable": "NAME",
	"gen":      "",
	"dump":     "",
}

func describe(v *index.VariableIndexEntry) string {
	name := v.Name
	if q := v.Information.Qualifier; q != "" {
		name = q + "." + name
	}
	s := fmt.Sprintf("%s %s : %s", v.Information.Role, name, v.TypeName())
	if _, ok := v.GeneratedReference(); ok {
		s += " [storage]"
	}
	return s
}

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
