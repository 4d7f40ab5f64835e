// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A scanner for Structured Text expressions.

import (
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"
)

// A TokenSource supplies tokens to the parser.
//
// The parser is its only client during a parse; it inspects the
// current token, reads its raw text, and then calls Advance.
type TokenSource interface {
	Token() Token  // kind of the current token
	Pos() Position // position of the current token
	Raw() string   // raw text of the current token
	Advance()      // moves to the next token; at EOF it stays there
}

// A Scanner is the TokenSource for Structured Text source text.
type Scanner struct {
	filename *string
	src      []byte
	offset   int   // byte offset of the next unread rune
	line     int32 // position of the next unread rune
	col      int32

	tok    Token
	tokPos Position
	raw    string
	end    int // byte offset just past the current token
}

// NewScanner returns a scanner positioned at the first token of src.
//
// The src parameter is interpreted as by ParseExpr.
func NewScanner(filename string, src interface{}) (*Scanner, error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}
	sc := &Scanner{
		filename: &filename,
		src:      data,
		line:     1,
		col:      1,
		tok:      ILLEGAL,
	}
	sc.Advance()
	return sc, nil
}

func readSource(filename string, src interface{}) ([]byte, error) {
	switch src := src.(type) {
	case string:
		return []byte(src), nil
	case []byte:
		return src, nil
	case io.Reader:
		data, err := io.ReadAll(src)
		if err != nil {
			err = &os.PathError{Op: "read", Path: filename, Err: err}
			return nil, err
		}
		return data, nil
	case nil:
		return os.ReadFile(filename)
	default:
		return nil, fmt.Errorf("invalid source: %T", src)
	}
}

func (sc *Scanner) Token() Token  { return sc.tok }
func (sc *Scanner) Pos() Position { return sc.tokPos }
func (sc *Scanner) Raw() string   { return sc.raw }

func (sc *Scanner) pos() Position { return Position{sc.filename, sc.line, sc.col} }

func (sc *Scanner) eof() bool { return sc.offset >= len(sc.src) }

// peekRune returns the next unread rune without consuming it,
// or -1 at end of input.
func (sc *Scanner) peekRune() rune {
	if sc.eof() {
		return -1
	}
	r, _ := utf8.DecodeRune(sc.src[sc.offset:])
	return r
}

// peekByte returns the byte n positions after the next unread one,
// or 0 past the end of input.
func (sc *Scanner) peekByte(n int) byte {
	if sc.offset+n >= len(sc.src) {
		return 0
	}
	return sc.src[sc.offset+n]
}

func (sc *Scanner) readRune() rune {
	r, size := utf8.DecodeRune(sc.src[sc.offset:])
	sc.offset += size
	if r == '\n' {
		sc.line++
		sc.col = 1
	} else {
		sc.col++
	}
	return r
}

// Advance moves to the next token.
func (sc *Scanner) Advance() {
	if sc.tok == EOF {
		return
	}
	prev, prevEnd := sc.tok, sc.end

	unterminated := sc.skipSpace()
	sc.tokPos = sc.pos()
	start := sc.offset

	switch c := sc.peekRune(); {
	case unterminated >= 0:
		sc.offset = len(sc.src)
		sc.tok = ILLEGAL
		start = unterminated
	case c < 0:
		sc.tok = EOF
	case prev == INT && start == prevEnd && (c == 'e' || c == 'E') && sc.exponentAhead():
		sc.readRune()
		if c := sc.peekRune(); c == '+' || c == '-' {
			sc.readRune()
		}
		for isDigit(sc.peekRune()) {
			sc.readRune()
		}
		sc.tok = EXPONENT
	case isDigit(c):
		for c := sc.peekRune(); isDigit(c) || c == '_'; c = sc.peekRune() {
			sc.readRune()
		}
		sc.tok = INT
	case isIdentStart(c):
		for c := sc.peekRune(); isIdentStart(c) || isDigit(c); c = sc.peekRune() {
			sc.readRune()
		}
		sc.tok = lookupKeyword(string(sc.src[start:sc.offset]))
	default:
		sc.tok = sc.punct()
	}
	sc.end = sc.offset
	sc.raw = string(sc.src[start:sc.offset])
}

// exponentAhead reports whether the input continues with [eE][+-]?[0-9].
func (sc *Scanner) exponentAhead() bool {
	n := 1
	if c := sc.peekByte(n); c == '+' || c == '-' {
		n++
	}
	c := sc.peekByte(n)
	return '0' <= c && c <= '9'
}

// skipSpace consumes white space and comments. It returns the offset
// of an unterminated block comment, or -1.
func (sc *Scanner) skipSpace() int {
	for !sc.eof() {
		c := sc.peekRune()
		switch {
		case unicode.IsSpace(c):
			sc.readRune()
		case c == '/' && sc.peekByte(1) == '/':
			for !sc.eof() && sc.peekRune() != '\n' {
				sc.readRune()
			}
		case c == '(' && sc.peekByte(1) == '*':
			start := sc.offset
			sc.readRune()
			sc.readRune()
			for {
				if sc.eof() {
					return start
				}
				if sc.readRune() == '*' && sc.peekRune() == ')' {
					sc.readRune()
					break
				}
			}
		default:
			return -1
		}
	}
	return -1
}

func (sc *Scanner) punct() Token {
	c := sc.readRune()
	switch c {
	case ',':
		return COMMA
	case '.':
		if sc.peekRune() == '.' {
			sc.readRune()
			return DOTDOT
		}
		return DOT
	case '(':
		return LPAREN
	case ')':
		return RPAREN
	case ':':
		if sc.peekRune() == '=' {
			sc.readRune()
			return ASSIGN
		}
		return COLON
	case '=':
		return EQ
	case '<':
		switch sc.peekRune() {
		case '=':
			sc.readRune()
			return LE
		case '>':
			sc.readRune()
			return NEQ
		}
		return LT
	case '>':
		if sc.peekRune() == '=' {
			sc.readRune()
			return GE
		}
		return GT
	case '+':
		return PLUS
	case '-':
		return MINUS
	case '*':
		return STAR
	case '/':
		return SLASH
	case ';':
		return SEMICOLON
	}
	return ILLEGAL
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c >= utf8.RuneSelf && unicode.IsLetter(c)
}
