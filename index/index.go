// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index defines the global index of a compilation: the table
// of every variable and data type a compilation declares, and the
// handles that code generation later attaches to them.
//
// The index is populated by registration calls (see Visit) before code
// generation starts, and consulted by the code generator, which
// resolves names through it and associates the artifacts it generates
// with the entries. Lookups of unknown names return nil; associations
// with unknown names are dropped and report false. Entries are never
// removed.
//
// An Index is not safe for concurrent use. It is owned by a single
// compilation and passed explicitly from the registration pass to the
// code generator.
package index // import "github.com/stlang/stc/index"

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Handles identify artifacts owned by a code-generation session.
// The zero value of each means "not generated yet". A handle is
// meaningful only while the session that produced it is open.
type (
	StorageID        uint32 // a typed storage location of a variable
	TypeID           uint32 // the generated representation of a data type
	ImplementationID uint32 // the generated executable body of a data type
)

// IsValid reports whether the handle refers to a generated artifact.
func (id StorageID) IsValid() bool        { return id != 0 }
func (id TypeID) IsValid() bool           { return id != 0 }
func (id ImplementationID) IsValid() bool { return id != 0 }

// A VariableType is the role with which a variable was declared.
type VariableType uint8

const (
	Local VariableType = iota
	Input
	Output
	InOut
	Global
	Return
)

var variableTypeNames = [...]string{
	Local:  "Local",
	Input:  "Input",
	Output: "Output",
	InOut:  "InOut",
	Global: "Global",
	Return: "Return",
}

func (t VariableType) String() string {
	if int(t) < len(variableTypeNames) {
		return variableTypeNames[t]
	}
	return fmt.Sprintf("VariableType(%d)", t)
}

// ParseVariableType returns the role named s, as printed by String.
func ParseVariableType(s string) (VariableType, bool) {
	for t, name := range variableTypeNames {
		if name == s {
			return VariableType(t), true
		}
	}
	return 0, false
}

// A DataTypeType classifies a data type. It is informational only;
// resolution does not depend on it.
type DataTypeType uint8

const (
	Scalar        DataTypeType = iota // built in: Int, Bool, ...
	Struct                            // a structured data type
	FunctionBlock                     // a POU whose instances are variables
	AliasType                         // a user-defined alias of another type
)

var dataTypeTypeNames = [...]string{
	Scalar:        "Scalar",
	Struct:        "Struct",
	FunctionBlock: "FunctionBlock",
	AliasType:     "AliasType",
}

func (t DataTypeType) String() string {
	if int(t) < len(dataTypeTypeNames) {
		return dataTypeTypeNames[t]
	}
	return fmt.Sprintf("DataTypeType(%d)", t)
}

// ParseDataTypeType returns the kind named s, as printed by String.
func ParseDataTypeType(s string) (DataTypeType, bool) {
	for t, name := range dataTypeTypeNames {
		if name == s {
			return DataTypeType(t), true
		}
	}
	return 0, false
}

// VariableInformation describes how a variable was declared.
type VariableInformation struct {
	Role         VariableType
	DataTypeName string
	Qualifier    string // owning POU or struct; empty for globals
}

// A VariableIndexEntry is the index entry of one variable.
type VariableIndexEntry struct {
	Name        string
	Information VariableInformation

	generated StorageID
}

// TypeName returns the name of the variable's declared data type.
func (v *VariableIndexEntry) TypeName() string { return v.Information.DataTypeName }

// GeneratedReference returns the storage handle associated with the
// variable, or false if code generation has not associated one yet.
func (v *VariableIndexEntry) GeneratedReference() (StorageID, bool) {
	return v.generated, v.generated.IsValid()
}

// DataTypeInformation describes a data type declaration.
type DataTypeInformation struct {
	Kind DataTypeType
}

// A DataTypeIndexEntry is the index entry of one data type.
type DataTypeIndexEntry struct {
	Name        string
	Information DataTypeInformation

	generatedType  TypeID
	implementation ImplementationID
}

// GeneratedType returns the handle of the type's generated
// representation, if any.
func (d *DataTypeIndexEntry) GeneratedType() (TypeID, bool) {
	return d.generatedType, d.generatedType.IsValid()
}

// Implementation returns the handle of the type's generated
// executable body, if any.
func (d *DataTypeIndexEntry) Implementation() (ImplementationID, bool) {
	return d.implementation, d.implementation.IsValid()
}

// IsCallable reports whether the type has an implementation, which
// makes every variable of this type invocable.
func (d *DataTypeIndexEntry) IsCallable() bool { return d.implementation.IsValid() }

// Index is the global index of a compilation.
type Index struct {
	globals map[string]*VariableIndexEntry
	locals  map[string]map[string]*VariableIndexEntry // by owning POU
	types   map[string]*DataTypeIndexEntry
}

// Names of the built-in scalar types registered by New.
const (
	IntType  = "Int"
	BoolType = "Bool"
)

// New returns an empty index holding the built-in scalar types.
func New() *Index {
	idx := &Index{
		globals: make(map[string]*VariableIndexEntry),
		locals:  make(map[string]map[string]*VariableIndexEntry),
		types:   make(map[string]*DataTypeIndexEntry),
	}
	idx.RegisterTypeKind(IntType, Scalar)
	idx.RegisterTypeKind(BoolType, Scalar)
	return idx
}

// RegisterGlobalVariable adds or replaces the global variable name.
func (idx *Index) RegisterGlobalVariable(name, typeName string) {
	idx.globals[name] = &VariableIndexEntry{
		Name: name,
		Information: VariableInformation{
			Role:         Global,
			DataTypeName: typeName,
		},
	}
}

// RegisterLocalVariable adds or replaces the variable name in the
// local scope of unit. Scopes of different units are independent.
func (idx *Index) RegisterLocalVariable(unit, name string, role VariableType, typeName string) {
	locals, ok := idx.locals[unit]
	if !ok {
		locals = make(map[string]*VariableIndexEntry)
		idx.locals[unit] = locals
	}
	locals[name] = &VariableIndexEntry{
		Name: name,
		Information: VariableInformation{
			Role:         role,
			DataTypeName: typeName,
			Qualifier:    unit,
		},
	}
}

// RegisterType adds or replaces a user-defined struct type without
// generated artifacts.
func (idx *Index) RegisterType(name string) {
	idx.RegisterTypeKind(name, Struct)
}

// RegisterTypeKind is like RegisterType but records the kind of type.
func (idx *Index) RegisterTypeKind(name string, kind DataTypeType) {
	idx.types[name] = &DataTypeIndexEntry{
		Name:        name,
		Information: DataTypeInformation{Kind: kind},
	}
}

// AssociateGlobalVariable attaches a storage handle to the global
// variable name, replacing any earlier one. It reports whether the
// variable exists; if not, nothing changes.
func (idx *Index) AssociateGlobalVariable(name string, storage StorageID) bool {
	v := idx.globals[name]
	if v == nil {
		return false
	}
	v.generated = storage
	return true
}

// AssociateLocalVariable is like AssociateGlobalVariable for the
// variable name in the local scope of unit.
func (idx *Index) AssociateLocalVariable(unit, name string, storage StorageID) bool {
	v := idx.FindMember(unit, name)
	if v == nil {
		return false
	}
	v.generated = storage
	return true
}

// AssociateType attaches a generated type representation to the type
// name. It reports whether the type exists; if not, nothing changes.
func (idx *Index) AssociateType(name string, typ TypeID) bool {
	d := idx.types[name]
	if d == nil {
		return false
	}
	d.generatedType = typ
	return true
}

// AssociateCallableImplementation attaches an implementation to the
// type name, making its instances callable. It reports whether the
// type exists; if not, nothing changes.
func (idx *Index) AssociateCallableImplementation(name string, impl ImplementationID) bool {
	d := idx.types[name]
	if d == nil {
		return false
	}
	d.implementation = impl
	return true
}

// FindGlobalVariable returns the global variable name, or nil.
func (idx *Index) FindGlobalVariable(name string) *VariableIndexEntry {
	return idx.globals[name]
}

// FindMember returns the variable name of the local scope of unit,
// or nil. Globals are not consulted.
func (idx *Index) FindMember(unit, name string) *VariableIndexEntry {
	return idx.locals[unit][name]
}

// FindVariable resolves name as seen from the unit context: a local
// of context if there is one, otherwise a global. An empty context
// consults globals only.
func (idx *Index) FindVariable(context, name string) *VariableIndexEntry {
	if context != "" {
		if v := idx.FindMember(context, name); v != nil {
			return v
		}
	}
	return idx.FindGlobalVariable(name)
}

// FindType returns the data type name, or nil.
func (idx *Index) FindType(name string) *DataTypeIndexEntry {
	return idx.types[name]
}

// FindCallableInstanceVariable resolves name as FindVariable does but
// returns the variable only if its declared type has an
// implementation, that is, if the variable can be invoked.
func (idx *Index) FindCallableInstanceVariable(context, name string) *VariableIndexEntry {
	v := idx.FindVariable(context, name)
	if v == nil {
		return nil
	}
	if typ := idx.FindType(v.TypeName()); typ == nil || !typ.IsCallable() {
		return nil
	}
	return v
}

// GlobalVariables returns all global variables, sorted by name.
func (idx *Index) GlobalVariables() []*VariableIndexEntry {
	return sortedEntries(idx.globals)
}

// Units returns the names of all units that have local variables,
// sorted.
func (idx *Index) Units() []string {
	units := make([]string, 0, len(idx.locals))
	for unit := range idx.locals {
		units = append(units, unit)
	}
	slices.Sort(units)
	return units
}

// LocalVariables returns the local variables of unit, sorted by name.
func (idx *Index) LocalVariables(unit string) []*VariableIndexEntry {
	return sortedEntries(idx.locals[unit])
}

// Types returns all data types, sorted by name.
func (idx *Index) Types() []*DataTypeIndexEntry {
	types := make([]*DataTypeIndexEntry, 0, len(idx.types))
	for _, d := range idx.types {
		types = append(types, d)
	}
	slices.SortFunc(types, func(x, y *DataTypeIndexEntry) int { return strings.Compare(x.Name, y.Name) })
	return types
}

func sortedEntries(m map[string]*VariableIndexEntry) []*VariableIndexEntry {
	entries := make([]*VariableIndexEntry, 0, len(m))
	for _, v := range m {
		entries = append(entries, v)
	}
	slices.SortFunc(entries, func(x, y *VariableIndexEntry) int { return strings.Compare(x.Name, y.Name) })
	return entries
}
