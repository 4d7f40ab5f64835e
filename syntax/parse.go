// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines a recursive-descent parser for Structured Text
// expressions. Binary operator tiers are described by a table; every
// tier parses its right operand at the same tier, so chains of equal
// precedence group to the right: a - b - c is a - (b - c).

import "fmt"

// ParseExpr parses a Structured Text expression.
// The source must contain nothing after the expression.
//
// The filename and src values are used as for NewScanner: if src is
// not nil, it may be a string, []byte, or io.Reader; otherwise the
// named file is read.
func ParseExpr(filename string, src interface{}) (expr Expr, err error) {
	in, err := NewScanner(filename, src)
	if err != nil {
		return nil, err
	}
	p := parser{in: in}
	defer p.recover(&err)

	x := p.parseExpressionList()
	if p.tok() != EOF {
		p.errorf("got %#v after expression, want end of file", p.tok())
	}
	return x, nil
}

// ParsePrimaryExpression parses one expression starting at the current
// token of in, leaving in positioned at the first token after it.
//
// On failure it returns an Error and in remains at the offending
// token. No partial tree is returned.
func ParsePrimaryExpression(in TokenSource) (expr Expr, err error) {
	p := parser{in: in}
	defer p.recover(&err)
	x := p.parseExpressionList()
	return x, nil
}

type parser struct {
	in TokenSource
}

func (p *parser) tok() Token { return p.in.Token() }

// next advances past the current token and returns its position.
func (p *parser) next() Position {
	pos := p.in.Pos()
	p.in.Advance()
	return pos
}

// consume advances past the current token, which must be t,
// and returns its position.
func (p *parser) consume(t Token) Position {
	if p.tok() != t {
		p.errorf("got %#v, want %#v", p.tok(), t)
	}
	return p.next()
}

func (p *parser) errorf(format string, args ...interface{}) {
	panic(Error{p.in.Pos(), fmt.Sprintf(format, args...)})
}

// unexpected reports the current token as the wrong thing in an
// expression position.
func (p *parser) unexpected() {
	switch tok := p.tok(); tok {
	case ILLEGAL:
		p.errorf("unexpected input %q", p.in.Raw())
	case IDENT, INT, EXPONENT:
		p.errorf("unexpected %s %q", tok, p.in.Raw())
	default:
		p.errorf("unexpected %#v", tok)
	}
}

// recover converts a panic raised by errorf into an error result.
func (p *parser) recover(err *error) {
	switch e := recover().(type) {
	case nil:
		return
	case Error:
		*err = e
	default:
		panic(e)
	}
}

// list = range {',' range}
//
// A single element is returned as is.
func (p *parser) parseExpressionList() Expr {
	x := p.parseRange()
	if p.tok() != COMMA {
		return x
	}
	list := []Expr{x}
	for p.tok() == COMMA {
		p.next()
		list = append(list, p.parseRange())
	}
	return &ExpressionList{Expressions: list}
}

// range = binop ['..' binop]
func (p *parser) parseRange() Expr {
	start := p.parseBinary(0)
	if p.tok() != DOTDOT {
		return start
	}
	dotdot := p.next()
	end := p.parseBinary(0)
	return &RangeStatement{Start: start, DotDot: dotdot, End: end}
}

// preclevels groups binary operators by tier, loosest first.
var preclevels = [...][]Token{
	{OR},
	{XOR},
	{AND},
	{EQ, NEQ},
	{LT, GT, LE, GE},
	{PLUS, MINUS},
	{STAR, SLASH, MOD},
}

// precedence maps each binary operator to its tier, or -1.
var precedence [maxToken]int8

func init() {
	for i := range precedence {
		precedence[i] = -1
	}
	for level, tokens := range preclevels {
		for _, tok := range tokens {
			precedence[tok] = int8(level)
		}
	}
}

// binop = next-tier [op binop]    (same tier on the right)
func (p *parser) parseBinary(level int) Expr {
	if level == len(preclevels) {
		return p.parseUnary()
	}
	x := p.parseBinary(level + 1)
	op := p.tok()
	if int(precedence[op]) != level {
		return x
	}
	opPos := p.next()
	y := p.parseBinary(level)
	return &BinaryExpression{Left: x, OpPos: opPos, Op: op, Right: y}
}

// unary = ('NOT' | '-') paren
//       | paren
//
// The operand is not itself a unary expression, so NOT NOT x
// must be written NOT (NOT x).
func (p *parser) parseUnary() Expr {
	if op := p.tok(); op == NOT || op == MINUS {
		opPos := p.next()
		x := p.parseParenthesized()
		return &UnaryExpression{OpPos: opPos, Op: op, Value: x}
	}
	return p.parseParenthesized()
}

// paren = '(' list ')' | leaf
func (p *parser) parseParenthesized() Expr {
	if p.tok() != LPAREN {
		return p.parseLeaf()
	}
	p.next()
	x := p.parseExpressionList()
	p.consume(RPAREN)
	return x
}

// leaf = (reference | call | number | TRUE | FALSE) [':=' range]
func (p *parser) parseLeaf() Expr {
	var x Expr
	switch p.tok() {
	case IDENT:
		x = p.parseReference()
	case INT:
		x = p.parseNumber()
	case TRUE, FALSE:
		value := p.tok() == TRUE
		x = &LiteralBool{ValuePos: p.next(), Value: value}
	default:
		p.unexpected()
	}

	if p.tok() == ASSIGN {
		assign := p.next()
		rhs := p.parseRange()
		return &Assignment{Left: x, AssignPos: assign, Right: rhs}
	}
	return x
}

// reference = IDENT ['(' [list] ')']
func (p *parser) parseReference() Expr {
	ref := &Reference{NamePos: p.in.Pos(), Name: p.in.Raw()}
	p.next()
	if p.tok() != LPAREN {
		return ref
	}
	call := &CallStatement{Operator: ref, Lparen: p.next()}
	if p.tok() != RPAREN {
		call.Parameters = p.parseExpressionList()
	}
	call.Rparen = p.consume(RPAREN)
	return call
}

// number = INT ['.' INT [EXPONENT]]
func (p *parser) parseNumber() Expr {
	pos := p.in.Pos()
	integer := p.in.Raw()
	p.next()
	if p.tok() != DOT {
		return &LiteralInteger{ValuePos: pos, Value: integer}
	}
	p.next()
	if p.tok() != INT {
		p.errorf("got %#v in real literal, want %s", p.tok(), INT)
	}
	fraction := p.in.Raw()
	p.next()
	var exponent string
	if p.tok() == EXPONENT {
		exponent = p.in.Raw()
		p.next()
	}
	return &LiteralReal{ValuePos: pos, Value: integer + "." + fraction + exponent}
}
