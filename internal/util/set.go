// Package util holds small generic containers used by the grammar and
// engine packages: an ordered string set and a LIFO
// stack. Neither is exported outside the module; they exist purely to keep
// the fixed-point and worklist algorithms in the parser-generator pipeline
// free of ad-hoc map/slice bookkeeping.
package util

import "sort"

// StringSet is a set of strings that also supports deterministic iteration.
// Worklist algorithms (closure, FIRST and FOLLOW) rely on Ordered to
// guarantee the same traversal order across runs.
type StringSet map[string]struct{}

// NewStringSet returns a StringSet containing the given elements.
func NewStringSet(elems ...string) StringSet {
	s := make(StringSet, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Add inserts element into the set. Has no effect if already present.
func (s StringSet) Add(element string) {
	s[element] = struct{}{}
}

// AddAll inserts every element of o into s.
func (s StringSet) AddAll(o StringSet) {
	for k := range o {
		s[k] = struct{}{}
	}
}

// Has returns whether element is in the set.
func (s StringSet) Has(element string) bool {
	_, ok := s[element]
	return ok
}

// Ordered returns the set's elements sorted alphabetically. Used anywhere
// iteration order must be deterministic (table export, closure lookaheads).
func (s StringSet) Ordered() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
