// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"strings"
)

// TreeString prints a syntax node as a parenthesized tree.
// References and literals are printed as their source text.
// Other nodes are printed as (Type Field=value ...), omitting
// absent fields; a call without arguments has no Parameters.
func TreeString(n Node) string {
	var buf strings.Builder
	writeTree(&buf, n)
	return buf.String()
}

func writeTree(out *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		out.WriteString("nil")
	case *Reference:
		out.WriteString(n.Name)
	case *LiteralInteger:
		out.WriteString(n.Value)
	case *LiteralReal:
		out.WriteString(n.Value)
	case *LiteralBool:
		if n.Value {
			out.WriteString("TRUE")
		} else {
			out.WriteString("FALSE")
		}
	case *CallStatement:
		out.WriteString("(CallStatement Operator=")
		writeTree(out, n.Operator)
		if n.Parameters != nil {
			out.WriteString(" Parameters=")
			writeTree(out, n.Parameters)
		}
		out.WriteByte(')')
	case *BinaryExpression:
		fmt.Fprintf(out, "(BinaryExpression Op=%s Left=", n.Op)
		writeTree(out, n.Left)
		out.WriteString(" Right=")
		writeTree(out, n.Right)
		out.WriteByte(')')
	case *UnaryExpression:
		fmt.Fprintf(out, "(UnaryExpression Op=%s Value=", n.Op)
		writeTree(out, n.Value)
		out.WriteByte(')')
	case *Assignment:
		out.WriteString("(Assignment Left=")
		writeTree(out, n.Left)
		out.WriteString(" Right=")
		writeTree(out, n.Right)
		out.WriteByte(')')
	case *RangeStatement:
		out.WriteString("(RangeStatement Start=")
		writeTree(out, n.Start)
		out.WriteString(" End=")
		writeTree(out, n.End)
		out.WriteByte(')')
	case *ExpressionList:
		out.WriteString("(ExpressionList Expressions=(")
		for i, x := range n.Expressions {
			if i > 0 {
				out.WriteByte(' ')
			}
			writeTree(out, x)
		}
		out.WriteString("))")
	default:
		fmt.Fprintf(out, "%T", n)
	}
}
