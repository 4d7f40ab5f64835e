// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/stlang/stc/index"
	"github.com/stlang/stc/syntax"
)

// A ResolutionKind says how a name was used.
type ResolutionKind uint8

const (
	VariableRef  ResolutionKind = iota // a reference to a variable
	InstanceCall                       // a call through a callable instance variable
	DirectCall                         // a call of a POU by its type name
	UnknownCall                        // a call whose operator resolved to nothing
)

var resolutionKindNames = [...]string{
	VariableRef:  "var",
	InstanceCall: "instance call",
	DirectCall:   "call",
	UnknownCall:  "unknown call",
}

func (k ResolutionKind) String() string {
	if int(k) < len(resolutionKindNames) {
		return resolutionKindNames[k]
	}
	return fmt.Sprintf("ResolutionKind(%d)", k)
}

// A Resolution records what one name in an expression refers to.
// A name that resolves to nothing has Found == false; that is not an
// error.
type Resolution struct {
	Pos   syntax.Position
	Name  string
	Kind  ResolutionKind
	Found bool

	Variable       *index.VariableIndexEntry // VariableRef, InstanceCall
	Type           *index.DataTypeIndexEntry // InstanceCall, DirectCall
	Storage        *Storage                  // nil until declared
	Implementation *Implementation           // calls; nil until declared
}

func (r Resolution) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d:%d %s %s", r.Pos.Line, r.Pos.Col, r.Kind, r.Name)
	if !r.Found {
		buf.WriteString(": unresolved")
		return buf.String()
	}
	buf.WriteString(" ->")
	if v := r.Variable; v != nil {
		if v.Information.Qualifier != "" {
			fmt.Fprintf(&buf, " %s %s.%s : %s", v.Information.Role, v.Information.Qualifier, v.Name, v.TypeName())
		} else {
			fmt.Fprintf(&buf, " %s %s : %s", v.Information.Role, v.Name, v.TypeName())
		}
	} else if r.Type != nil {
		fmt.Fprintf(&buf, " %s %s", r.Type.Information.Kind, r.Type.Name)
	}
	if r.Storage != nil {
		buf.WriteString(" [storage]")
	}
	if r.Implementation != nil {
		fmt.Fprintf(&buf, " [impl %s]", r.Implementation.Name)
	}
	return buf.String()
}

// ResolveExpr resolves every name of e as seen from the unit context
// (empty for none), in source order. References resolve to variables.
// A call operator resolves first to a callable instance variable and
// otherwise to a POU called by name.
func (s *Session) ResolveExpr(context string, e syntax.Expr) ([]Resolution, error) {
	if s.closed {
		return nil, errors.Wrap(ErrSessionClosed, "resolve")
	}

	var (
		resolutions []Resolution
		err         error
		visit       func(n syntax.Node) bool
	)
	visit = func(n syntax.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *syntax.Reference:
			var r Resolution
			r, err = s.resolveVariable(context, n)
			resolutions = append(resolutions, r)
		case *syntax.CallStatement:
			var r Resolution
			r, err = s.resolveCall(context, n.Operator)
			resolutions = append(resolutions, r)
			if n.Parameters != nil {
				syntax.Walk(n.Parameters, visit)
			}
			return false // operator already resolved
		}
		return true
	}
	syntax.Walk(e, visit)
	if err != nil {
		return nil, err
	}
	return resolutions, nil
}

func (s *Session) resolveVariable(context string, ref *syntax.Reference) (Resolution, error) {
	r := Resolution{Pos: ref.NamePos, Name: ref.Name, Kind: VariableRef}
	v := s.idx.FindVariable(context, ref.Name)
	if v == nil {
		return r, nil
	}
	r.Found, r.Variable = true, v
	return r, s.attachStorage(&r)
}

func (s *Session) resolveCall(context string, op *syntax.Reference) (Resolution, error) {
	r := Resolution{Pos: op.NamePos, Name: op.Name, Kind: UnknownCall}
	if v := s.idx.FindCallableInstanceVariable(context, op.Name); v != nil {
		r.Kind, r.Found, r.Variable = InstanceCall, true, v
		r.Type = s.idx.FindType(v.TypeName())
		if err := s.attachStorage(&r); err != nil {
			return r, err
		}
	} else if typ := s.idx.FindType(op.Name); typ != nil && typ.IsCallable() {
		r.Kind, r.Found, r.Type = DirectCall, true, typ
	} else {
		return r, nil
	}
	id, _ := r.Type.Implementation()
	impl, err := s.Implementation(id)
	if err != nil {
		return r, errors.Wrapf(err, "call of %s", op.Name)
	}
	r.Implementation = impl
	return r, nil
}

func (s *Session) attachStorage(r *Resolution) error {
	id, ok := r.Variable.GeneratedReference()
	if !ok {
		return nil
	}
	storage, err := s.Storage(id)
	if err != nil {
		return errors.Wrapf(err, "variable %s", r.Name)
	}
	r.Storage = storage
	return nil
}
