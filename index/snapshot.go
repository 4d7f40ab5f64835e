// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "google.golang.org/protobuf/types/known/structpb"

// Snapshot returns a protobuf view of the index, for tools that
// display or store it. Entries are listed in the order of
// GlobalVariables, Units, LocalVariables and Types. Handles are
// reported by presence only; their values mean nothing outside the
// session that produced them.
//
//	{
//	  "globals": [{"name": "x", "role": "Global", "type": "Int", "generated": false}],
//	  "locals":  {"prog": [...]},
//	  "types":   [{"name": "Bool", "kind": "Scalar", "generated": false, "callable": false}]
//	}
func (idx *Index) Snapshot() (*structpb.Struct, error) {
	globals := variableList(idx.GlobalVariables())

	locals := make(map[string]interface{})
	for _, unit := range idx.Units() {
		locals[unit] = variableList(idx.LocalVariables(unit))
	}

	var types []interface{}
	for _, d := range idx.Types() {
		_, generated := d.GeneratedType()
		types = append(types, map[string]interface{}{
			"name":      d.Name,
			"kind":      d.Information.Kind.String(),
			"generated": generated,
			"callable":  d.IsCallable(),
		})
	}

	return structpb.NewStruct(map[string]interface{}{
		"globals": globals,
		"locals":  locals,
		"types":   types,
	})
}

func variableList(entries []*VariableIndexEntry) []interface{} {
	list := make([]interface{}, 0, len(entries))
	for _, v := range entries {
		_, generated := v.GeneratedReference()
		m := map[string]interface{}{
			"name":      v.Name,
			"role":      v.Information.Role.String(),
			"type":      v.TypeName(),
			"generated": generated,
		}
		if v.Information.Qualifier != "" {
			m["qualifier"] = v.Information.Qualifier
		}
		list = append(list, m)
	}
	return list
}
