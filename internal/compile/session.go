// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile defines the code-generation session that turns the
// entries of a global index into backend artifacts.
//
// A Session owns every artifact it generates: storage for variables,
// representations of types, and implementations of POUs. The index
// refers to them only by handle (see index.StorageID and friends), and
// the handles are valid only until the session is closed.
package compile // import "github.com/stlang/stc/internal/compile"

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/stlang/stc/index"
)

// Trace causes each association made by a session to be logged.
var Trace = false

// ErrSessionClosed is the cause of errors from a closed session.
var ErrSessionClosed = errors.New("session closed")

// Storage is the typed storage location of one variable.
type Storage struct {
	Name      string
	Qualifier string // owning unit; empty for globals
	TypeName  string
}

// A TypeRepr is the generated representation of a data type.
type TypeRepr struct {
	Name string
}

// An Implementation is the generated executable body of a POU.
type Implementation struct {
	Name string
}

// A handle holds the generation of the session that minted it above the
// artifact's slot. Generation zero is never used.
const (
	slotBits = 20
	slotMask = 1<<slotBits - 1
	genMask  = 1<<(32-slotBits) - 1
)

var lastGeneration uint32 // accessed atomically

func nextGeneration() uint32 {
	for {
		if g := atomic.AddUint32(&lastGeneration, 1) & genMask; g != 0 {
			return g
		}
	}
}

// A Session generates artifacts for the entries of one index.
// The zero Session is not usable; call NewSession.
type Session struct {
	idx    *index.Index
	gen    uint32
	closed bool

	// Slot n refers to element n-1.
	storage []*Storage
	types   []*TypeRepr
	impls   []*Implementation
}

// NewSession returns a session generating artifacts for idx.
func NewSession(idx *index.Index) *Session {
	return &Session{idx: idx, gen: nextGeneration()}
}

// Index returns the index the session generates artifacts for.
func (s *Session) Index() *index.Index { return s.idx }

// Close releases every artifact of the session. Handles associated
// with the index by this session remain in the index but no longer
// resolve to anything. Close is idempotent.
func (s *Session) Close() {
	s.closed = true
	s.storage, s.types, s.impls = nil, nil, nil
}

// mint returns the handle of slot n, the artifact just appended.
func (s *Session) mint(kind string, n int) (uint32, error) {
	if n > slotMask {
		return 0, errors.Errorf("too many %s artifacts in one session", kind)
	}
	return s.gen<<slotBits | uint32(n), nil
}

// slot returns the index into a slice of n artifacts of the artifact
// with handle h.
func (s *Session) slot(kind string, h uint32, n int) (int, error) {
	switch {
	case s.closed:
		return 0, errors.Wrapf(ErrSessionClosed, "%s %#x", kind, h)
	case h == 0:
		return 0, errors.Errorf("no %s handle", kind)
	case h>>slotBits != s.gen:
		return 0, errors.Errorf("%s %#x belongs to another session", kind, h)
	}
	i := int(h & slotMask)
	if i == 0 || i > n {
		return 0, errors.Errorf("unknown %s #%d", kind, i)
	}
	return i - 1, nil
}

// Storage returns the storage artifact with the given handle.
func (s *Session) Storage(id index.StorageID) (*Storage, error) {
	i, err := s.slot("storage", uint32(id), len(s.storage))
	if err != nil {
		return nil, err
	}
	return s.storage[i], nil
}

// Type returns the type representation with the given handle.
func (s *Session) Type(id index.TypeID) (*TypeRepr, error) {
	i, err := s.slot("type", uint32(id), len(s.types))
	if err != nil {
		return nil, err
	}
	return s.types[i], nil
}

// Implementation returns the implementation with the given handle.
func (s *Session) Implementation(id index.ImplementationID) (*Implementation, error) {
	i, err := s.slot("implementation", uint32(id), len(s.impls))
	if err != nil {
		return nil, err
	}
	return s.impls[i], nil
}

// Counts reports how many artifacts a declaration pass generated.
type Counts struct {
	Types, Implementations, Variables int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d types, %d implementations, %d variables", c.Types, c.Implementations, c.Variables)
}

// DeclarePass generates a representation for every type of the index,
// an implementation for every POU type, and storage for every global
// and local variable, and associates each with its index entry.
// Artifacts of an earlier pass stay valid but are no longer referenced
// by the index.
func (s *Session) DeclarePass() (Counts, error) {
	var counts Counts
	if s.closed {
		return counts, errors.Wrap(ErrSessionClosed, "declaration pass")
	}

	for _, typ := range s.idx.Types() {
		s.types = append(s.types, &TypeRepr{Name: typ.Name})
		id, err := s.mint("type", len(s.types))
		if err != nil {
			return counts, err
		}
		s.idx.AssociateType(typ.Name, index.TypeID(id))
		counts.Types++
		if Trace {
			log.Printf("type %s = #%d", typ.Name, len(s.types))
		}

		if typ.Information.Kind != index.FunctionBlock {
			continue
		}
		if _, err := s.Implement(typ.Name); err != nil {
			return counts, err
		}
		counts.Implementations++
	}

	for _, v := range s.idx.GlobalVariables() {
		id, err := s.allocate(v)
		if err != nil {
			return counts, err
		}
		s.idx.AssociateGlobalVariable(v.Name, id)
		counts.Variables++
	}
	for _, unit := range s.idx.Units() {
		for _, v := range s.idx.LocalVariables(unit) {
			id, err := s.allocate(v)
			if err != nil {
				return counts, err
			}
			s.idx.AssociateLocalVariable(unit, v.Name, id)
			counts.Variables++
		}
	}
	return counts, nil
}

// Implement generates an implementation for the type name and
// associates it, which makes every variable of that type callable.
func (s *Session) Implement(name string) (index.ImplementationID, error) {
	if s.closed {
		return 0, errors.Wrapf(ErrSessionClosed, "implement %s", name)
	}
	if s.idx.FindType(name) == nil {
		return 0, errors.Errorf("implement %s: no such type", name)
	}
	s.impls = append(s.impls, &Implementation{Name: name})
	h, err := s.mint("implementation", len(s.impls))
	if err != nil {
		return 0, err
	}
	id := index.ImplementationID(h)
	s.idx.AssociateCallableImplementation(name, id)
	if Trace {
		log.Printf("implementation %s = #%d", name, len(s.impls))
	}
	return id, nil
}

func (s *Session) allocate(v *index.VariableIndexEntry) (index.StorageID, error) {
	s.storage = append(s.storage, &Storage{
		Name:      v.Name,
		Qualifier: v.Information.Qualifier,
		TypeName:  v.TypeName(),
	})
	id, err := s.mint("storage", len(s.storage))
	if err != nil {
		return 0, err
	}
	if Trace {
		n := len(s.storage)
		if v.Information.Qualifier != "" {
			log.Printf("storage %s.%s %s = #%d", v.Information.Qualifier, v.Name, v.TypeName(), n)
		} else {
			log.Printf("storage %s %s = #%d", v.Name, v.TypeName(), n)
		}
	}
	return index.StorageID(id), nil
}
