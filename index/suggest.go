// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

// This file defines a simple spell checker for lookups of unknown
// names ("x: not found; did you mean y?").

import (
	"strings"
	"unicode"
)

// SuggestVariable returns the variable visible from context whose name
// is nearest to name, or "" if none is near enough. Like FindVariable,
// it considers the locals of context and the globals.
func (idx *Index) SuggestVariable(context, name string) string {
	var candidates []string
	if context != "" {
		for _, v := range idx.LocalVariables(context) {
			candidates = append(candidates, v.Name)
		}
	}
	for _, v := range idx.GlobalVariables() {
		candidates = append(candidates, v.Name)
	}
	return nearest(name, candidates)
}

// SuggestType returns the type whose name is nearest to name, or "".
func (idx *Index) SuggestType(name string) string {
	var candidates []string
	for _, d := range idx.Types() {
		candidates = append(candidates, d.Name)
	}
	return nearest(name, candidates)
}

// nearest returns the element of candidates nearest to x using the
// Levenshtein metric, ignoring case and underscores. A candidate equal
// to x is never suggested; one equal after folding always is.
func nearest(x string, candidates []string) string {
	fold := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == '_' {
				return -1
			}
			return unicode.ToLower(r)
		}, s)
	}

	name := x
	x = fold(x)

	var best string
	bestD := (len(x) + 1) / 2 // allow up to 50% typos
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(x, fold(c), bestD)
		if d < bestD || d == 0 {
			bestD = d
			best = c
		}
		if d == 0 {
			break
		}
	}
	return best
}

// levenshtein returns the edit distance between the byte strings x
// and y. If the distance exceeds max, it may return early with an
// approximate value > max.
func levenshtein(x, y string, max int) int {
	// Let x be the shorter string.
	if len(x) > len(y) {
		x, y = y, x
	}

	// Remove common prefix.
	i := 0
	for i < len(x) && x[i] == y[i] {
		i++
	}
	x, y = x[i:], y[i:]
	if x == "" {
		return len(y)
	}

	row := make([]int, len(y)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(x); i++ {
		row[0] = i
		best := i
		prev := i - 1
		for j := 1; j <= len(y); j++ {
			a := prev
			if x[i-1] != y[j-1] {
				a++ // substitution
			}
			b := 1 + row[j-1] // deletion
			c := 1 + row[j]   // insertion
			k := min(a, b, c)
			prev, row[j] = row[j], k
			best = min(best, k)
		}
		if best > max {
			return best
		}
	}
	return row[len(y)]
}
