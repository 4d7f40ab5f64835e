// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pkg/errors"

	"github.com/stlang/stc/index"
)

func newTestIndex() *index.Index {
	idx := index.New()
	idx.RegisterGlobalVariable("g", "Int")
	idx.RegisterTypeKind("counter", index.FunctionBlock)
	idx.RegisterLocalVariable("counter", "count", index.InOut, "Int")
	idx.RegisterTypeKind("main", index.FunctionBlock)
	idx.RegisterGlobalVariable("main", "main")
	idx.RegisterLocalVariable("main", "c", index.Local, "counter")
	idx.RegisterType("Point")
	return idx
}

func TestDeclarePass(t *testing.T) {
	idx := newTestIndex()
	s := NewSession(idx)
	defer s.Close()

	counts, err := s.DeclarePass()
	be.Err(t, err, nil)
	be.Equal(t, counts, Counts{Types: 5, Implementations: 2, Variables: 4})
	be.Equal(t, counts.String(), "5 types, 2 implementations, 4 variables")

	for _, typ := range idx.Types() {
		id, ok := typ.GeneratedType()
		be.True(t, ok)
		repr, err := s.Type(id)
		be.Err(t, err, nil)
		be.Equal(t, repr.Name, typ.Name)
	}

	// Only POUs get implementations.
	be.Equal(t, idx.FindType("counter").IsCallable(), true)
	be.Equal(t, idx.FindType("main").IsCallable(), true)
	be.Equal(t, idx.FindType("Point").IsCallable(), false)
	be.Equal(t, idx.FindType("Int").IsCallable(), false)

	id, ok := idx.FindMember("main", "c").GeneratedReference()
	be.True(t, ok)
	storage, err := s.Storage(id)
	be.Err(t, err, nil)
	be.Equal(t, *storage, Storage{Name: "c", Qualifier: "main", TypeName: "counter"})

	id, ok = idx.FindGlobalVariable("g").GeneratedReference()
	be.True(t, ok)
	storage, err = s.Storage(id)
	be.Err(t, err, nil)
	be.Equal(t, *storage, Storage{Name: "g", TypeName: "Int"})

	// Instances become callable through their type's implementation.
	be.True(t, idx.FindCallableInstanceVariable("main", "c") != nil)
	be.True(t, idx.FindCallableInstanceVariable("", "main") != nil)
}

func TestUnknownHandles(t *testing.T) {
	s := NewSession(index.New())
	defer s.Close()

	_, err := s.Storage(0)
	be.Err(t, err, "no storage handle")
	_, err = s.Type(9)
	be.Err(t, err, "type 0x9 belongs to another session")
	_, err = s.Implementation(index.ImplementationID(s.gen<<slotBits | 1))
	be.Err(t, err, "unknown implementation #1")
	_, err = s.Storage(index.StorageID(s.gen << slotBits))
	be.Err(t, err, "unknown storage #0")
}

func TestHandlesOfAnotherSession(t *testing.T) {
	idx := newTestIndex()
	s1 := NewSession(idx)
	_, err := s1.DeclarePass()
	be.Err(t, err, nil)
	sid, _ := idx.FindGlobalVariable("g").GeneratedReference()
	tid, _ := idx.FindType("Int").GeneratedType()
	iid, _ := idx.FindType("counter").Implementation()

	s2 := NewSession(idx)
	defer s2.Close()
	_, err = s2.DeclarePass()
	be.Err(t, err, nil)

	// s1 is still open, but each session only accepts its own handles.
	_, err = s2.Storage(sid)
	be.Err(t, err, "belongs to another session")
	_, err = s2.Type(tid)
	be.Err(t, err, "belongs to another session")
	_, err = s2.Implementation(iid)
	be.Err(t, err, "belongs to another session")
	_, err = s1.Implementation(iid)
	be.Err(t, err, nil)

	s1.Close()
	_, err = s1.Storage(sid)
	be.Equal(t, errors.Cause(err), ErrSessionClosed)

	// The second pass replaced the handles in the index.
	sid, _ = idx.FindGlobalVariable("g").GeneratedReference()
	storage, err := s2.Storage(sid)
	be.Err(t, err, nil)
	be.Equal(t, storage.Name, "g")
}

func TestImplement(t *testing.T) {
	idx := index.New()
	idx.RegisterType("fb")
	idx.RegisterGlobalVariable("inst", "fb")
	s := NewSession(idx)
	defer s.Close()

	id, err := s.Implement("fb")
	be.Err(t, err, nil)
	be.True(t, id.IsValid())
	impl, err := s.Implementation(id)
	be.Err(t, err, nil)
	be.Equal(t, impl.Name, "fb")
	be.True(t, idx.FindCallableInstanceVariable("", "inst") != nil)

	_, err = s.Implement("nope")
	be.Err(t, err, "implement nope: no such type")
	be.True(t, idx.FindType("nope") == nil)
}

func TestClosedSession(t *testing.T) {
	idx := newTestIndex()
	s := NewSession(idx)
	_, err := s.DeclarePass()
	be.Err(t, err, nil)

	sid, _ := idx.FindGlobalVariable("g").GeneratedReference()
	tid, _ := idx.FindType("Int").GeneratedType()
	iid, _ := idx.FindType("main").Implementation()

	s.Close()
	s.Close() // idempotent

	_, err = s.Storage(sid)
	be.Equal(t, errors.Cause(err), ErrSessionClosed)
	_, err = s.Type(tid)
	be.Equal(t, errors.Cause(err), ErrSessionClosed)
	_, err = s.Implementation(iid)
	be.Equal(t, errors.Cause(err), ErrSessionClosed)
	_, err = s.DeclarePass()
	be.Equal(t, errors.Cause(err), ErrSessionClosed)
	_, err = s.Implement("main")
	be.Equal(t, errors.Cause(err), ErrSessionClosed)
	be.Err(t, err, "implement main: session closed")

	// The index keeps its entries and handles.
	_, ok := idx.FindGlobalVariable("g").GeneratedReference()
	be.True(t, ok)
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	Trace = true
	defer func() {
		Trace = false
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}()

	idx := index.New()
	idx.RegisterGlobalVariable("g", "Int")
	idx.RegisterLocalVariable("prg", "x", index.Local, "Bool")
	s := NewSession(idx)
	defer s.Close()
	_, err := s.DeclarePass()
	be.Err(t, err, nil)

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	be.Equal(t, got, []string{
		"type Bool = #1",
		"type Int = #2",
		"storage g Int = #1",
		"storage prg.x Bool = #2",
	})
}
