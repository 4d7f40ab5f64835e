// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exprtest extracts parse-tree test cases from Markdown.
//
// A test case starts at a heading whose text begins with "Test: ".
// It contains exactly one ```st fence holding the input expression,
// followed by either a ```tree fence holding the expected tree string
// or an ```error fence holding a regular expression that the parse
// error must match:
//
//	## Test: subtraction groups to the right
//
//	```st
//	a - b - c
//	```
//
//	```tree
//	(BinaryExpression Op=- Left=a Right=(BinaryExpression Op=- Left=b Right=c))
//	```
//
// Prose and unlabelled code blocks between cases are ignored.
package exprtest // import "github.com/stlang/stc/internal/exprtest"

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages.
const (
	InputFence = "st"
	TreeFence  = "tree"
	ErrorFence = "error"
)

// A Case is one parse-tree test case.
type Case struct {
	Name  string
	Line  int    // line of the input fence
	Input string // expression source
	Tree  string // expected TreeString, if the case expects success
	Error string // expected error pattern, if the case expects failure
}

// ReadFile extracts the test cases of the named Markdown file.
func ReadFile(filename string) ([]Case, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cases, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", filename, err)
	}
	return cases, nil
}

// Extract parses a Markdown document and returns its test cases in
// document order.
func Extract(source []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases   []Case
		current *Case
	)
	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			if lang == "" {
				return ast.WalkContinue, nil
			}
			line := lineOf(n, source)
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, lang)
			}
			content := strings.TrimRight(blockText(n, source), "\n")
			switch lang {
			case InputFence:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second input fence in test %q", line, current.Name)
				}
				current.Input, current.Line = content, line
			case TreeFence:
				current.Tree = content
			case ErrorFence:
				current.Error = content
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, lang, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(c *Case) error {
	switch {
	case c.Input == "":
		return fmt.Errorf("test %q has no input fence", c.Name)
	case c.Tree == "" && c.Error == "":
		return fmt.Errorf("test %q has no tree or error fence", c.Name)
	case c.Tree != "" && c.Error != "":
		return fmt.Errorf("test %q has both a tree and an error fence", c.Name)
	}
	return nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockText(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line of the first content line of node.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return 1 + bytes.Count(source[:start], []byte("\n"))
}
