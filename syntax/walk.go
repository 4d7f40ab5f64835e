// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself
// recursively for each non-nil child of n.
// Walk then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *Reference, *LiteralInteger, *LiteralReal, *LiteralBool:
		// no-op

	case *CallStatement:
		Walk(n.Operator, f)
		if n.Parameters != nil {
			Walk(n.Parameters, f)
		}

	case *BinaryExpression:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *UnaryExpression:
		Walk(n.Value, f)

	case *Assignment:
		Walk(n.Left, f)
		Walk(n.Right, f)

	case *RangeStatement:
		Walk(n.Start, f)
		Walk(n.End, f)

	case *ExpressionList:
		for _, x := range n.Expressions {
			Walk(x, f)
		}

	default:
		panic(n)
	}

	f(nil)
}
