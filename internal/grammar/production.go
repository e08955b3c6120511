package grammar

import "strings"

// Production is an ordered pair (LHS, RHS); RHS may be empty to denote an
// epsilon production. Index is assigned at Grammar construction time and is
// the stable target of reduce actions — it never changes afterward.
type Production struct {
	LHS   Symbol
	RHS   []Symbol
	Index int
}

// IsEpsilon reports whether this production's RHS is empty.
func (p Production) IsEpsilon() bool { return len(p.RHS) == 0 }

func (p Production) String() string {
	if p.IsEpsilon() {
		return p.LHS.Name + " -> " + EpsilonSymbolName
	}
	names := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		names[i] = s.Name
	}
	return p.LHS.Name + " -> " + strings.Join(names, " ")
}

// Equal reports whether p and o have the same LHS and RHS. Index is not
// compared: two productions parsed from equal grammar text are equal
// regardless of where the grammar happened to place them.
func (p Production) Equal(o Production) bool {
	if p.LHS != o.LHS || len(p.RHS) != len(o.RHS) {
		return false
	}
	for i := range p.RHS {
		if p.RHS[i] != o.RHS[i] {
			return false
		}
	}
	return true
}
