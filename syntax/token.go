// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"strings"
)

// A Token represents a Structured Text lexical token.
type Token int8

const (
	ILLEGAL Token = iota
	EOF

	// tokens with values
	IDENT    // x
	INT      // 123
	EXPONENT // e10, E-3 (only directly after an INT)

	// punctuation
	COMMA     // ,
	DOTDOT    // ..
	DOT       // .
	LPAREN    // (
	RPAREN    // )
	ASSIGN    // :=
	EQ        // =
	NEQ       // <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	SEMICOLON // ;
	COLON     // :

	// keywords
	OR
	XOR
	AND
	MOD
	NOT
	TRUE
	FALSE

	maxToken
)

func (tok Token) String() string {
	if 0 <= tok && int(tok) < len(tokenNames) {
		return tokenNames[tok]
	}
	return fmt.Sprintf("Token(%d)", tok)
}

// GoString is like String but quotes punctuation tokens.
// Use Sprintf("%#v", tok) when constructing error messages.
func (tok Token) GoString() string {
	if tok >= COMMA && tok <= COLON {
		return "'" + tokenNames[tok] + "'"
	}
	return tok.String()
}

var tokenNames = [...]string{
	ILLEGAL:   "illegal token",
	EOF:       "end of file",
	IDENT:     "identifier",
	INT:       "int literal",
	EXPONENT:  "exponent",
	COMMA:     ",",
	DOTDOT:    "..",
	DOT:       ".",
	LPAREN:    "(",
	RPAREN:    ")",
	ASSIGN:    ":=",
	EQ:        "=",
	NEQ:       "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	SEMICOLON: ";",
	COLON:     ":",
	OR:        "OR",
	XOR:       "XOR",
	AND:       "AND",
	MOD:       "MOD",
	NOT:       "NOT",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
}

// keywords are matched case-insensitively.
var keywordToken = map[string]Token{
	"OR":    OR,
	"XOR":   XOR,
	"AND":   AND,
	"MOD":   MOD,
	"NOT":   NOT,
	"TRUE":  TRUE,
	"FALSE": FALSE,
}

func lookupKeyword(ident string) Token {
	if tok, ok := keywordToken[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENT
}

// A Position describes the location of a rune of input.
type Position struct {
	file *string // filename (indirect for compactness)
	Line int32   // 1-based line number; 0 if line unknown
	Col  int32   // 1-based column (rune) number; 0 if column unknown
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.file != nil }

// Filename returns the name of the file containing this position.
func (p Position) Filename() string {
	if p.file != nil {
		return *p.file
	}
	return "<invalid>"
}

// MakePosition returns position with the specified components.
func MakePosition(file *string, line, col int32) Position { return Position{file, line, col} }

// add returns the position at the end of s, assuming it starts at p.
func (p Position) add(s string) Position {
	if n := strings.Count(s, "\n"); n > 0 {
		p.Line += int32(n)
		s = s[strings.LastIndex(s, "\n")+1:]
		p.Col = 1
	}
	p.Col += int32(len([]rune(s)))
	return p
}

func (p Position) String() string {
	file := p.Filename()
	if p.Line > 0 {
		if p.Col > 0 {
			return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
		}
		return fmt.Sprintf("%s:%d", file, p.Line)
	}
	return file
}

// An Error describes the nature and position of a scanner or parser error.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }
