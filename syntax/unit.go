// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// This file defines the declaration shapes produced by the statement
// and declaration parser. The index visitor consumes them.

// A CompilationUnit is the parsed content of one source file.
type CompilationUnit struct {
	GlobalVars []VariableBlock
	Units      []*POU
	Types      []*DataTypeDecl
}

// A PouKind distinguishes the three kinds of program organization unit.
type PouKind uint8

const (
	Program PouKind = iota
	Function
	FunctionBlock
)

var pouKindNames = [...]string{
	Program:       "PROGRAM",
	Function:      "FUNCTION",
	FunctionBlock: "FUNCTION_BLOCK",
}

func (k PouKind) String() string {
	if int(k) < len(pouKindNames) {
		return pouKindNames[k]
	}
	return fmt.Sprintf("PouKind(%d)", k)
}

// A POU is a program, function, or function block declaration.
type POU struct {
	Name           string
	Kind           PouKind
	ReturnType     string // functions only; may be empty
	VariableBlocks []VariableBlock
}

// A VariableBlockKind is the keyword that opens a variable block.
type VariableBlockKind uint8

const (
	VarLocal  VariableBlockKind = iota // VAR
	VarInput                           // VAR_INPUT
	VarOutput                          // VAR_OUTPUT
	VarInOut                           // VAR_IN_OUT
	VarGlobal                          // VAR_GLOBAL
)

var variableBlockNames = [...]string{
	VarLocal:  "VAR",
	VarInput:  "VAR_INPUT",
	VarOutput: "VAR_OUTPUT",
	VarInOut:  "VAR_IN_OUT",
	VarGlobal: "VAR_GLOBAL",
}

func (k VariableBlockKind) String() string {
	if int(k) < len(variableBlockNames) {
		return variableBlockNames[k]
	}
	return fmt.Sprintf("VariableBlockKind(%d)", k)
}

// A VariableBlock is a VAR ... END_VAR section.
type VariableBlock struct {
	Kind      VariableBlockKind
	Variables []Variable
}

// A Variable is a declaration name : TypeName.
type Variable struct {
	Name     string
	TypeName string
}

// A DataTypeKind distinguishes user-defined type declarations.
type DataTypeKind uint8

const (
	StructDecl DataTypeKind = iota
	AliasDecl
)

// A DataTypeDecl is a TYPE ... END_TYPE declaration.
type DataTypeDecl struct {
	Name   string
	Kind   DataTypeKind
	Target string     // aliased type name (AliasDecl)
	Fields []Variable // members (StructDecl)
}
