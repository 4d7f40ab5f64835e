// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
	"testing"
)

func scan(src interface{}) (tokens string, err error) {
	sc, err := NewScanner("foo.st", src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for {
		tok := sc.Token()
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		switch tok {
		case EOF:
			buf.WriteString("EOF")
		case IDENT, INT, EXPONENT:
			buf.WriteString(sc.Raw())
		case ILLEGAL:
			fmt.Fprintf(&buf, "illegal(%s)", sc.Raw())
		default:
			buf.WriteString(tok.String())
		}
		if tok == EOF {
			break
		}
		sc.Advance()
	}
	return buf.String(), nil
}

func TestScanner(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{``, "EOF"},
		{`   `, "EOF"},
		{`a`, "a EOF"},
		{`foo(a, b); c: d`, "foo ( a , b ) ; c : d EOF"},
		{`a:=b`, "a := b EOF"},
		{`a<>b<=c>=d<e>f=g`, "a <> b <= c >= d < e > f = g EOF"},
		{`a+-*/b`, "a + - * / b EOF"},
		{`not TRUE and False xor x or y mod z`, "NOT TRUE AND FALSE XOR x OR y MOD z EOF"},
		{`_x1 Äb`, "_x1 Äb EOF"},
		{`AND_x`, "AND_x EOF"},
		// numbers
		{`123`, "123 EOF"},
		{`1_000`, "1_000 EOF"},
		{`1.25`, "1 . 25 EOF"},
		{`1.25e3`, "1 . 25 e3 EOF"},
		{`1.25E-3`, "1 . 25 E-3 EOF"},
		{`1.25e+3`, "1 . 25 e+3 EOF"},
		{`1 e3`, "1 e3 EOF"}, // not adjacent: an identifier
		{`1e`, "1 e EOF"},
		{`1e+`, "1 e + EOF"},
		{`x e3`, "x e3 EOF"},
		{`1..10`, "1 .. 10 EOF"},
		{`a.b`, "a . b EOF"},
		// comments
		{`(* comment *) a // rest of line`, "a EOF"},
		{"a // one\n// two\nb", "a b EOF"},
		{`(* a *)(b)`, "( b ) EOF"},
		{`(* ** ) *)x`, "x EOF"},
		{`a/b`, "a / b EOF"},
		{`a (* unterminated`, "a illegal((* unterminated) EOF"},
		// bad input
		{`a$b`, "a illegal($) b EOF"},
		{`#`, "illegal(#) EOF"},
	} {
		got, err := scan(test.input)
		if err != nil {
			got = err.Error()
		}
		if got != test.want {
			t.Errorf("scan `%s` = [%s], want [%s]", test.input, got, test.want)
		}
	}
}

func TestScannerPositions(t *testing.T) {
	sc, err := NewScanner("foo.st", "a\n  bb :=\n\t(* c *) 1")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for sc.Token() != EOF {
		got = append(got, fmt.Sprintf("%s@%d:%d", sc.Raw(), sc.Pos().Line, sc.Pos().Col))
		sc.Advance()
	}
	want := "[a@1:1 bb@2:3 :=@2:6 1@3:10]"
	if fmt.Sprint(got) != want {
		t.Errorf("positions = %v, want %s", got, want)
	}
}

func TestScannerStaysAtEOF(t *testing.T) {
	sc, err := NewScanner("foo.st", "a")
	if err != nil {
		t.Fatal(err)
	}
	sc.Advance()
	pos := sc.Pos()
	for i := 0; i < 3; i++ {
		sc.Advance()
		if sc.Token() != EOF || sc.Pos() != pos {
			t.Fatalf("after %d extra advances: %s at %s, want EOF at %s", i+1, sc.Token(), sc.Pos(), pos)
		}
	}
}

func TestTokenNames(t *testing.T) {
	for tok := ILLEGAL; tok < maxToken; tok++ {
		if tokenNames[tok] == "" {
			t.Errorf("token %d has no name", tok)
		}
	}
	if got := fmt.Sprintf("%#v %#v %#v", RPAREN, NOT, EOF); got != "')' NOT end of file" {
		t.Errorf("GoString = %q", got)
	}
	for _, tok := range []Token{maxToken, -1} {
		want := fmt.Sprintf("Token(%d)", int(tok))
		if got := tok.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
		if got := fmt.Sprintf("%#v", tok); got != want {
			t.Errorf("GoString() = %q, want %q", got, want)
		}
	}
}

func TestDeclarationKindNames(t *testing.T) {
	for _, test := range []struct {
		got, want string
	}{
		{Program.String(), "PROGRAM"},
		{PouKind(7).String(), "PouKind(7)"},
		{VariableBlockKind(200).String(), "VariableBlockKind(200)"},
	} {
		if test.got != test.want {
			t.Errorf("got %q, want %q", test.got, test.want)
		}
	}
}

func BenchmarkScan(b *testing.B) {
	src := bytes.Repeat([]byte("x := a + b * (c - 1.25e3) MOD 7; // note\n"), 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc, err := NewScanner("bench.st", src)
		if err != nil {
			b.Fatal(err)
		}
		for sc.Token() != EOF {
			sc.Advance()
		}
	}
}
