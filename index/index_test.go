// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"testing"

	"github.com/nalgeon/be"
	"google.golang.org/protobuf/proto"
)

func TestGlobalRegistration(t *testing.T) {
	idx := New()
	idx.RegisterGlobalVariable("x", "Int")

	v := idx.FindGlobalVariable("x")
	be.True(t, v != nil)
	be.Equal(t, v.Name, "x")
	be.Equal(t, v.Information.Role, Global)
	be.Equal(t, v.TypeName(), "Int")
	be.Equal(t, v.Information.Qualifier, "")
	_, ok := v.GeneratedReference()
	be.Equal(t, ok, false)

	be.True(t, idx.FindGlobalVariable("y") == nil)
}

func TestRegisterReplaces(t *testing.T) {
	idx := New()
	idx.RegisterGlobalVariable("x", "Int")
	be.True(t, idx.AssociateGlobalVariable("x", 7))
	idx.RegisterGlobalVariable("x", "Bool")

	v := idx.FindGlobalVariable("x")
	be.Equal(t, v.TypeName(), "Bool")
	_, ok := v.GeneratedReference()
	be.Equal(t, ok, false)
	be.Equal(t, len(idx.GlobalVariables()), 1)
}

func TestLocalScopesAreIndependent(t *testing.T) {
	idx := New()
	idx.RegisterLocalVariable("prg", "a", Local, "Int")
	idx.RegisterLocalVariable("fb", "a", Input, "Bool")

	p := idx.FindMember("prg", "a")
	f := idx.FindMember("fb", "a")
	be.True(t, p != nil && f != nil)
	be.True(t, p != f)
	be.Equal(t, p.TypeName(), "Int")
	be.Equal(t, p.Information.Qualifier, "prg")
	be.Equal(t, f.Information.Role, Input)
	be.Equal(t, f.Information.Qualifier, "fb")

	be.True(t, idx.FindMember("prg", "b") == nil)
	be.True(t, idx.FindMember("other", "a") == nil)
	be.True(t, idx.FindGlobalVariable("a") == nil)
}

func TestFindVariable(t *testing.T) {
	idx := New()
	idx.RegisterGlobalVariable("a", "Int")
	idx.RegisterGlobalVariable("g", "Int")
	idx.RegisterLocalVariable("prg", "a", Local, "Bool")

	// Locals shadow globals.
	v := idx.FindVariable("prg", "a")
	be.Equal(t, v.Information.Role, Local)
	be.Equal(t, v.TypeName(), "Bool")

	// Fall back to globals.
	be.True(t, idx.FindVariable("prg", "g") == idx.FindGlobalVariable("g"))

	// No context: globals only.
	be.Equal(t, idx.FindVariable("", "a").Information.Role, Global)

	// Unknown context behaves like no context.
	be.Equal(t, idx.FindVariable("nope", "a").Information.Role, Global)

	be.True(t, idx.FindVariable("prg", "missing") == nil)
}

func TestBuiltinTypes(t *testing.T) {
	idx := New()
	for _, name := range []string{IntType, BoolType} {
		typ := idx.FindType(name)
		be.True(t, typ != nil)
		be.Equal(t, typ.Information.Kind, Scalar)
		be.Equal(t, typ.IsCallable(), false)
		_, ok := typ.GeneratedType()
		be.Equal(t, ok, false)
	}
	be.True(t, idx.FindType("Real") == nil)
}

func TestRegisterType(t *testing.T) {
	idx := New()
	idx.RegisterType("Point")
	be.Equal(t, idx.FindType("Point").Information.Kind, Struct)

	idx.RegisterTypeKind("Celsius", AliasType)
	be.Equal(t, idx.FindType("Celsius").Information.Kind, AliasType)
}

func TestCallableInstance(t *testing.T) {
	idx := New()
	idx.RegisterType("fb")
	idx.RegisterGlobalVariable("inst", "fb")
	idx.RegisterGlobalVariable("n", "Int")

	// Not callable before an implementation is associated.
	be.True(t, idx.FindCallableInstanceVariable("", "inst") == nil)

	be.True(t, idx.AssociateCallableImplementation("fb", 3))
	v := idx.FindCallableInstanceVariable("", "inst")
	be.True(t, v != nil)
	be.Equal(t, v.Name, "inst")
	impl, ok := idx.FindType("fb").Implementation()
	be.Equal(t, ok, true)
	be.Equal(t, impl, ImplementationID(3))

	// Variables of non-callable or unknown types are never callable.
	be.True(t, idx.FindCallableInstanceVariable("", "n") == nil)
	idx.RegisterGlobalVariable("u", "Unknown")
	be.True(t, idx.FindCallableInstanceVariable("", "u") == nil)
	be.True(t, idx.FindCallableInstanceVariable("", "missing") == nil)
}

func TestCallableInstanceInContext(t *testing.T) {
	idx := New()
	idx.RegisterType("timer")
	be.True(t, idx.AssociateCallableImplementation("timer", 1))
	idx.RegisterLocalVariable("prg", "t", Local, "timer")
	idx.RegisterGlobalVariable("t", "Int")

	be.Equal(t, idx.FindCallableInstanceVariable("prg", "t").Information.Qualifier, "prg")
	// The global of the same name is not callable.
	be.True(t, idx.FindCallableInstanceVariable("", "t") == nil)
}

func TestAssociate(t *testing.T) {
	idx := New()
	idx.RegisterGlobalVariable("g", "Int")
	idx.RegisterLocalVariable("prg", "l", Local, "Int")

	be.True(t, idx.AssociateGlobalVariable("g", 1))
	be.True(t, idx.AssociateLocalVariable("prg", "l", 2))
	be.True(t, idx.AssociateType("Int", 3))

	s, ok := idx.FindGlobalVariable("g").GeneratedReference()
	be.Equal(t, ok, true)
	be.Equal(t, s, StorageID(1))
	s, ok = idx.FindMember("prg", "l").GeneratedReference()
	be.Equal(t, ok, true)
	be.Equal(t, s, StorageID(2))
	typ, ok := idx.FindType("Int").GeneratedType()
	be.Equal(t, ok, true)
	be.Equal(t, typ, TypeID(3))

	// Re-association replaces.
	be.True(t, idx.AssociateGlobalVariable("g", 4))
	s, _ = idx.FindGlobalVariable("g").GeneratedReference()
	be.Equal(t, s, StorageID(4))
}

func TestAssociateUnknownIsIgnored(t *testing.T) {
	idx := New()
	idx.RegisterGlobalVariable("g", "Int")
	idx.RegisterLocalVariable("prg", "l", Local, "Int")
	before, err := idx.Snapshot()
	be.Err(t, err, nil)

	be.Equal(t, idx.AssociateGlobalVariable("nope", 1), false)
	be.Equal(t, idx.AssociateGlobalVariable("l", 1), false)
	be.Equal(t, idx.AssociateLocalVariable("prg", "g", 1), false)
	be.Equal(t, idx.AssociateLocalVariable("nope", "l", 1), false)
	be.Equal(t, idx.AssociateType("Real", 1), false)
	be.Equal(t, idx.AssociateCallableImplementation("Real", 1), false)

	// Nothing was created or changed.
	be.True(t, idx.FindGlobalVariable("nope") == nil)
	be.True(t, idx.FindType("Real") == nil)
	be.True(t, idx.FindMember("nope", "l") == nil)
	after, err := idx.Snapshot()
	be.Err(t, err, nil)
	be.True(t, proto.Equal(after, before))
}

func TestEnumerationIsSorted(t *testing.T) {
	idx := New()
	for _, name := range []string{"c", "a", "b"} {
		idx.RegisterGlobalVariable(name, "Int")
		idx.RegisterLocalVariable("u2", name, Local, "Int")
		idx.RegisterType("T" + name)
	}
	idx.RegisterLocalVariable("u1", "x", Local, "Int")

	var globals []string
	for _, v := range idx.GlobalVariables() {
		globals = append(globals, v.Name)
	}
	be.Equal(t, globals, []string{"a", "b", "c"})

	be.Equal(t, idx.Units(), []string{"u1", "u2"})

	var locals []string
	for _, v := range idx.LocalVariables("u2") {
		locals = append(locals, v.Name)
	}
	be.Equal(t, locals, []string{"a", "b", "c"})
	be.Equal(t, len(idx.LocalVariables("none")), 0)

	var types []string
	for _, d := range idx.Types() {
		types = append(types, d.Name)
	}
	be.Equal(t, types, []string{"Bool", "Int", "Ta", "Tb", "Tc"})
}

func TestKindNames(t *testing.T) {
	for _, role := range []VariableType{Local, Input, Output, InOut, Global, Return} {
		got, ok := ParseVariableType(role.String())
		be.True(t, ok)
		be.Equal(t, got, role)
	}
	_, ok := ParseVariableType("Static")
	be.Equal(t, ok, false)

	for _, kind := range []DataTypeType{Scalar, Struct, FunctionBlock, AliasType} {
		got, ok := ParseDataTypeType(kind.String())
		be.True(t, ok)
		be.Equal(t, got, kind)
	}
	_, ok = ParseDataTypeType("Enum")
	be.Equal(t, ok, false)

	be.Equal(t, VariableType(42).String(), "VariableType(42)")
	be.Equal(t, DataTypeType(9).String(), "DataTypeType(9)")
}
