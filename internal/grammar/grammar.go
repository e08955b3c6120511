package grammar

import (
	"fmt"

	"github.com/lkndy/lr1-visualizer/internal/lrerr"
	"github.com/lkndy/lr1-visualizer/internal/util"
)

// Grammar is an augmented, immutable context-free grammar. Construct one
// with New; the zero value is not usable. Once built, a Grammar's
// productions, terminals, non-terminals, and FIRST/FOLLOW sets never
// change — callers may share a *Grammar across goroutines for read-only
// queries.
type Grammar struct {
	// Productions is the full production list, augmented production
	// first. Productions[i].Index == i always holds.
	Productions []Production

	// Start is the user-declared start symbol, S (not the augmented S′).
	Start Symbol

	// AugmentedStart is the fresh non-terminal S′ introduced by New.
	AugmentedStart Symbol

	terminals    util.StringSet
	nonTerminals util.StringSet

	byLHS map[string][]Production

	// Unreachable holds non-terminals with productions that are never
	// reached from AugmentedStart. Reported, never fatal (spec §4.1).
	Unreachable []string

	firstCache  map[string]util.StringSet
	firstInProg map[string]bool

	followCache  map[string]util.StringSet
	followInProg map[string]bool
}

// New builds an augmented Grammar from an ordered production list and a
// start symbol. It prepends S′ → S (a fresh S′ that does not clash with any
// existing symbol name), derives terminals/non-terminals, validates that
// every non-terminal used on some RHS has a production, and flags
// (non-fatally) any non-terminal unreachable from S′. FIRST/FOLLOW are
// warmed eagerly so that later concurrent reads never race a cache fill
// (spec §5).
func New(prods []Production, start Symbol) (*Grammar, error) {
	augStartName := start.Name + "'"
	for nameClashes(prods, start, augStartName) {
		augStartName += "'"
	}
	augStart := NewNonTerminal(augStartName)

	all := make([]Production, 0, len(prods)+1)
	all = append(all, Production{LHS: augStart, RHS: []Symbol{start}})
	all = append(all, prods...)
	for i := range all {
		all[i].Index = i
	}

	g := &Grammar{
		Productions:  all,
		Start:        start,
		AugmentedStart: augStart,
		terminals:    util.NewStringSet(End.Name),
		nonTerminals: util.NewStringSet(augStart.Name),
		byLHS:        map[string][]Production{},
		firstCache:   map[string]util.StringSet{},
		firstInProg:  map[string]bool{},
		followCache:  map[string]util.StringSet{},
		followInProg: map[string]bool{},
	}

	hasEpsilon := false
	for _, p := range all {
		g.nonTerminals.Add(p.LHS.Name)
		g.byLHS[p.LHS.Name] = append(g.byLHS[p.LHS.Name], p)
		if p.IsEpsilon() {
			hasEpsilon = true
		}
		for _, s := range p.RHS {
			switch s.Kind {
			case Terminal:
				g.terminals.Add(s.Name)
			case NonTerminal:
				g.nonTerminals.Add(s.Name)
			}
		}
	}
	if hasEpsilon {
		g.terminals.Add(Eps.Name)
	}

	var errs []error
	for _, nt := range g.nonTerminals.Ordered() {
		if nt == augStart.Name {
			continue
		}
		if _, ok := g.byLHS[nt]; !ok {
			errs = append(errs, lrerr.New(lrerr.ErrUndefinedNonTerminal,
				fmt.Sprintf("non-terminal %q is used but has no production", nt)))
		}
	}
	if len(errs) > 0 {
		return nil, errs[0]
	}

	g.Unreachable = g.findUnreachable()

	g.warmCaches()

	return g, nil
}

// findUnreachable returns, sorted, every non-terminal with productions that
// cannot be reached from AugmentedStart by repeatedly expanding
// non-terminals appearing on some production's RHS.
func (g *Grammar) findUnreachable() []string {
	reached := util.NewStringSet(g.AugmentedStart.Name)
	worklist := []string{g.AugmentedStart.Name}
	for len(worklist) > 0 {
		nt := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, p := range g.byLHS[nt] {
			for _, s := range p.RHS {
				if s.Kind == NonTerminal && !reached.Has(s.Name) {
					reached.Add(s.Name)
					worklist = append(worklist, s.Name)
				}
			}
		}
	}

	var unreached []string
	for _, nt := range g.nonTerminals.Ordered() {
		if !reached.Has(nt) {
			unreached = append(unreached, nt)
		}
	}
	return unreached
}

// warmCaches computes FIRST and FOLLOW for every non-terminal once, up
// front, so that concurrent read-only callers never observe a partially
// filled cache (spec §5).
func (g *Grammar) warmCaches() {
	for _, nt := range g.nonTerminals.Ordered() {
		g.FirstOfSymbol(NewNonTerminal(nt))
	}
	for _, nt := range g.nonTerminals.Ordered() {
		g.Follow(NewNonTerminal(nt))
	}
}

// Terminals returns the grammar's terminal names, sorted, including "$"
// and, if any epsilon production exists, "ε".
func (g *Grammar) Terminals() []string { return g.terminals.Ordered() }

// NonTerminals returns the grammar's non-terminal names, sorted, including
// the augmented start symbol.
func (g *Grammar) NonTerminals() []string { return g.nonTerminals.Ordered() }

// IsTerminal reports whether name is a known terminal.
func (g *Grammar) IsTerminal(name string) bool { return g.terminals.Has(name) }

// IsNonTerminal reports whether name is a known non-terminal.
func (g *Grammar) IsNonTerminal(name string) bool { return g.nonTerminals.Has(name) }

// ProductionsFor returns, in construction order, every production with the
// given non-terminal on its LHS.
func (g *Grammar) ProductionsFor(nt string) []Production { return g.byLHS[nt] }

// FirstOfSymbol returns FIRST(X) for a single symbol X, memoized.
func (g *Grammar) FirstOfSymbol(x Symbol) util.StringSet {
	switch x.Kind {
	case Terminal:
		return util.NewStringSet(x.Name)
	case Epsilon:
		return util.NewStringSet(Eps.Name)
	}

	if cached, ok := g.firstCache[x.Name]; ok {
		return cached
	}
	if g.firstInProg[x.Name] {
		// Re-entry on an in-progress non-terminal contributes nothing to
		// this branch; the paths that would add to it complete through
		// some other, non-cyclic production (spec §4.1 "Termination").
		return util.NewStringSet()
	}
	g.firstInProg[x.Name] = true

	result := util.NewStringSet()
	for _, p := range g.byLHS[x.Name] {
		result.AddAll(g.FirstOfSequence(p.RHS))
	}

	delete(g.firstInProg, x.Name)
	g.firstCache[x.Name] = result
	return result
}

// FirstOfSequence returns FIRST(α) for a symbol sequence α, per spec §4.1:
// scan left to right, accumulating FIRST(Xi)\{ε} and stopping at the first
// Xi whose FIRST set excludes ε; if every symbol in the sequence can
// derive ε, ε is included in the result.
func (g *Grammar) FirstOfSequence(alpha []Symbol) util.StringSet {
	result := util.NewStringSet()
	if len(alpha) == 0 {
		result.Add(Eps.Name)
		return result
	}

	for _, x := range alpha {
		xFirst := g.FirstOfSymbol(x)
		hasEps := xFirst.Has(Eps.Name)
		for _, t := range xFirst.Ordered() {
			if t != Eps.Name {
				result.Add(t)
			}
		}
		if !hasEps {
			return result
		}
	}
	// every symbol in alpha can derive ε
	result.Add(Eps.Name)
	return result
}

// Follow returns FOLLOW(A) for a non-terminal A, memoized. FOLLOW(S) always
// contains "$" (spec §4.1).
func (g *Grammar) Follow(a Symbol) util.StringSet {
	if cached, ok := g.followCache[a.Name]; ok {
		return cached
	}
	if g.followInProg[a.Name] {
		return util.NewStringSet()
	}
	g.followInProg[a.Name] = true

	result := util.NewStringSet()
	if a.Name == g.Start.Name {
		result.Add(End.Name)
	}

	for _, nt := range g.nonTerminals.Ordered() {
		for _, p := range g.byLHS[nt] {
			for i, sym := range p.RHS {
				if sym.Name != a.Name || sym.Kind != NonTerminal {
					continue
				}
				beta := p.RHS[i+1:]
				betaFirst := g.FirstOfSequence(beta)
				for _, t := range betaFirst.Ordered() {
					if t != Eps.Name {
						result.Add(t)
					}
				}
				if len(beta) == 0 || betaFirst.Has(Eps.Name) {
					if p.LHS.Name != a.Name {
						result.AddAll(g.Follow(p.LHS))
					}
				}
			}
		}
	}

	delete(g.followInProg, a.Name)
	g.followCache[a.Name] = result
	return result
}

// nameClashes reports whether candidate collides with the start symbol's
// name or any symbol appearing in prods, so New can keep appending "'"
// until the augmented start symbol is guaranteed fresh.
func nameClashes(prods []Production, start Symbol, candidate string) bool {
	if start.Name == candidate {
		return true
	}
	for _, p := range prods {
		if p.LHS.Name == candidate {
			return true
		}
		for _, s := range p.RHS {
			if s.Name == candidate {
				return true
			}
		}
	}
	return false
}
