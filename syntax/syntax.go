// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a Structured Text expression parser and
// abstract syntax tree.
package syntax

// A Node is a node in a Structured Text syntax tree.
type Node interface {
	// Span returns the start and end position of the expression.
	Span() (start, end Position)
}

// Start returns the start position of the expression.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the expression.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// An Expr is a Structured Text expression.
type Expr interface {
	Node
	expr()
}

func (*Assignment) expr()       {}
func (*BinaryExpression) expr() {}
func (*CallStatement) expr()    {}
func (*ExpressionList) expr()   {}
func (*LiteralBool) expr()      {}
func (*LiteralInteger) expr()   {}
func (*LiteralReal) expr()      {}
func (*RangeStatement) expr()   {}
func (*Reference) expr()        {}
func (*UnaryExpression) expr()  {}

// A Reference is a use of a variable, POU, or type name.
type Reference struct {
	NamePos Position
	Name    string
}

func (x *Reference) Span() (start, end Position) {
	return x.NamePos, x.NamePos.add(x.Name)
}

// A CallStatement represents a call: Operator(Parameters).
// Parameters is nil for a call without arguments; a call with
// several arguments holds them in an *ExpressionList.
type CallStatement struct {
	Operator   *Reference
	Lparen     Position
	Parameters Expr // may be nil
	Rparen     Position
}

func (x *CallStatement) Span() (start, end Position) {
	start, _ = x.Operator.Span()
	return start, x.Rparen.add(")")
}

// A BinaryExpression represents a binary expression: Left Op Right.
type BinaryExpression struct {
	Left  Expr
	OpPos Position
	Op    Token
	Right Expr
}

func (x *BinaryExpression) Span() (start, end Position) {
	start, _ = x.Left.Span()
	_, end = x.Right.Span()
	return start, end
}

// A UnaryExpression represents a prefix expression: Op Value.
// Op is NOT or MINUS.
type UnaryExpression struct {
	OpPos Position
	Op    Token
	Value Expr
}

func (x *UnaryExpression) Span() (start, end Position) {
	_, end = x.Value.Span()
	return x.OpPos, end
}

// An Assignment represents Left := Right used as an expression.
type Assignment struct {
	Left      Expr
	AssignPos Position
	Right     Expr
}

func (x *Assignment) Span() (start, end Position) {
	start, _ = x.Left.Span()
	_, end = x.Right.Span()
	return start, end
}

// A RangeStatement represents a subrange: Start..End.
type RangeStatement struct {
	Start  Expr
	DotDot Position
	End    Expr
}

func (x *RangeStatement) Span() (start, end Position) {
	start, _ = x.Start.Span()
	_, end = x.End.Span()
	return start, end
}

// An ExpressionList represents two or more comma-separated expressions.
type ExpressionList struct {
	Expressions []Expr
}

func (x *ExpressionList) Span() (start, end Position) {
	return Start(x.Expressions[0]), End(x.Expressions[len(x.Expressions)-1])
}

// A LiteralInteger represents an integer literal.
// Value is the uninterpreted source text.
type LiteralInteger struct {
	ValuePos Position
	Value    string
}

func (x *LiteralInteger) Span() (start, end Position) {
	return x.ValuePos, x.ValuePos.add(x.Value)
}

// A LiteralReal represents a real literal.
// Value is "{integer}.{fraction}{exponent}".
type LiteralReal struct {
	ValuePos Position
	Value    string
}

func (x *LiteralReal) Span() (start, end Position) {
	return x.ValuePos, x.ValuePos.add(x.Value)
}

// A LiteralBool represents TRUE or FALSE.
type LiteralBool struct {
	ValuePos Position
	Value    bool
}

func (x *LiteralBool) Span() (start, end Position) {
	if x.Value {
		return x.ValuePos, x.ValuePos.add("TRUE")
	}
	return x.ValuePos, x.ValuePos.add("FALSE")
}
