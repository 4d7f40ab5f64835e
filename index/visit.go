// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "github.com/stlang/stc/syntax"

// Visit registers every declaration of unit: global variables, one
// type per POU together with its variables, and user-defined data
// types. Later declarations of the same name replace earlier ones.
//
// Visit registers names only. Generated artifacts are associated
// separately by the code generator.
func (idx *Index) Visit(unit *syntax.CompilationUnit) {
	for _, block := range unit.GlobalVars {
		for _, v := range block.Variables {
			idx.RegisterGlobalVariable(v.Name, v.TypeName)
		}
	}
	for _, pou := range unit.Units {
		idx.visitPOU(pou)
	}
	for _, decl := range unit.Types {
		idx.visitDataType(decl)
	}
}

func (idx *Index) visitPOU(pou *syntax.POU) {
	idx.RegisterTypeKind(pou.Name, FunctionBlock)
	for _, block := range pou.VariableBlocks {
		role := blockRole(block.Kind)
		for _, v := range block.Variables {
			if role == Global {
				// VAR_GLOBAL inside a POU declares program-wide names.
				idx.RegisterGlobalVariable(v.Name, v.TypeName)
				continue
			}
			idx.RegisterLocalVariable(pou.Name, v.Name, role, v.TypeName)
		}
	}
	switch pou.Kind {
	case syntax.Function:
		if pou.ReturnType != "" {
			idx.RegisterLocalVariable(pou.Name, pou.Name, Return, pou.ReturnType)
		}
	case syntax.Program:
		// A program has exactly one instance, named after it.
		idx.RegisterGlobalVariable(pou.Name, pou.Name)
	}
}

func (idx *Index) visitDataType(decl *syntax.DataTypeDecl) {
	switch decl.Kind {
	case syntax.StructDecl:
		idx.RegisterTypeKind(decl.Name, Struct)
		for _, f := range decl.Fields {
			idx.RegisterLocalVariable(decl.Name, f.Name, Local, f.TypeName)
		}
	case syntax.AliasDecl:
		idx.RegisterTypeKind(decl.Name, AliasType)
	}
}

func blockRole(kind syntax.VariableBlockKind) VariableType {
	switch kind {
	case syntax.VarInput:
		return Input
	case syntax.VarOutput:
		return Output
	case syntax.VarInOut:
		return InOut
	case syntax.VarGlobal:
		return Global
	}
	return Local
}
