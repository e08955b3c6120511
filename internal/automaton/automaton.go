// Package automaton builds the canonical collection of LR(1) item sets —
// the states and transitions of the LR(1) recognizer — from a *grammar.Grammar,
// and enumerates the shift/reduce and reduce/reduce conflicts present before
// any ACTION/GOTO table is synthesized.
package automaton

import (
	"context"
	"fmt"
	"sort"

	"github.com/lkndy/lr1-visualizer/internal/grammar"
	"github.com/lkndy/lr1-visualizer/internal/lrerr"
)

// ConflictKind classifies a pre-table conflict (spec §4.3).
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift_reduce"
	case ReduceReduce:
		return "reduce_reduce"
	default:
		return "unknown"
	}
}

// Conflict records a terminal contested by two or more actions within a
// single state, discovered by scanning items directly (independent of, and
// prior to, ACTION/GOTO synthesis).
type Conflict struct {
	State  int
	Symbol string
	Kind   ConflictKind
	Items  []grammar.Item
}

// Transition records a GOTO edge discovered while expanding the collection.
type Transition struct {
	From   int
	Symbol grammar.Symbol
	To     int
}

// Automaton is the canonical collection of LR(1) item sets plus the
// transitions between them. State 0 is always CLOSURE({[S′ → •S, $]}).
type Automaton struct {
	Grammar     *grammar.Grammar
	States      []grammar.ItemSet
	Transitions []Transition
	Conflicts   []Conflict

	// transitionIndex maps (from state, symbol name) to the destination
	// state for O(1) lookup by table synthesis.
	transitionIndex map[string]int
}

// Build constructs the canonical collection via worklist expansion (spec
// §4.3): state 0 seeds the worklist; each newly discovered state is
// expanded over every symbol appearing immediately after a dot in it, in
// deterministic sorted-symbol order, so that state numbering is stable
// across runs for grammars compared structurally equal (spec §9
// "Determinism"). ctx is checked once per worklist iteration; a cancelled
// context aborts construction with lrerr.ErrCancelled (spec §5).
func Build(ctx context.Context, g *grammar.Grammar) (*Automaton, error) {
	a := &Automaton{
		Grammar:         g,
		transitionIndex: map[string]int{},
	}

	start, err := grammar.Closure(ctx, g, grammar.NewItemSet(grammar.Item{
		Prod:      0,
		Dot:       0,
		Lookahead: grammar.End,
	}))
	if err != nil {
		return nil, err
	}

	indexOf := map[string]int{}
	a.States = append(a.States, start)
	indexOf[start.Key(g)] = 0

	worklist := []int{0}
	for len(worklist) > 0 {
		select {
		case <-ctx.Done():
			return nil, lrerr.New(lrerr.ErrCancelled, "canonical-collection construction cancelled: "+ctx.Err().Error())
		default:
		}

		stateIdx := worklist[0]
		worklist = worklist[1:]

		for _, symName := range symbolsAfterDots(g, a.States[stateIdx]) {
			sym := symbolByName(g, symName)
			next, ok, err := grammar.Goto(ctx, g, a.States[stateIdx], sym)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			key := next.Key(g)
			toIdx, exists := indexOf[key]
			if !exists {
				a.States = append(a.States, next)
				toIdx = len(a.States) - 1
				indexOf[key] = toIdx
				worklist = append(worklist, toIdx)
			}
			a.Transitions = append(a.Transitions, Transition{From: stateIdx, Symbol: sym, To: toIdx})
			a.transitionIndex[transKey(stateIdx, symName)] = toIdx
		}
	}

	a.Conflicts = a.enumerateConflicts()

	return a, nil
}

// Goto returns the destination state index for (state, symbolName), if a
// transition was recorded for it during Build.
func (a *Automaton) Goto(state int, symbolName string) (int, bool) {
	to, ok := a.transitionIndex[transKey(state, symbolName)]
	return to, ok
}

// IsLR1 reports whether the collection has no conflicts.
func (a *Automaton) IsLR1() bool { return len(a.Conflicts) == 0 }

// Classification gives a one-line, human-readable summary of the
// collection's conflict status for diagnostic output only (spec §4.3:
// "informational label only"; SPEC_FULL §13).
func (a *Automaton) Classification() string {
	if a.IsLR1() {
		return "LR(1)"
	}
	kinds := map[ConflictKind]bool{}
	for _, c := range a.Conflicts {
		kinds[c.Kind] = true
	}
	label := "not LR(1):"
	if kinds[ShiftReduce] {
		label += " shift/reduce"
	}
	if kinds[ReduceReduce] {
		if kinds[ShiftReduce] {
			label += ","
		}
		label += " reduce/reduce"
	}
	label += " conflict(s)"
	return label
}

// enumerateConflicts scans every state for a terminal that is both the
// symbol after a dot in some incomplete item and the lookahead of a
// complete item (shift_reduce), or the lookahead of two distinct complete
// items (reduce_reduce) — spec §4.3.
func (a *Automaton) enumerateConflicts() []Conflict {
	g := a.Grammar
	var conflicts []Conflict

	for si, state := range a.States {
		shiftsOn := map[string]bool{}
		for _, it := range state.Items {
			if !it.IsComplete(g) {
				sym := it.SymbolAfterDot(g)
				if sym.Kind == grammar.Terminal {
					shiftsOn[sym.Name] = true
				}
			}
		}

		reducesOn := map[string][]grammar.Item{}
		for _, it := range state.Items {
			if it.IsComplete(g) {
				reducesOn[it.Lookahead.Name] = append(reducesOn[it.Lookahead.Name], it)
			}
		}

		for term, items := range reducesOn {
			if shiftsOn[term] {
				conflicts = append(conflicts, Conflict{
					State: si, Symbol: term, Kind: ShiftReduce, Items: items,
				})
			}
			if len(items) > 1 {
				conflicts = append(conflicts, Conflict{
					State: si, Symbol: term, Kind: ReduceReduce, Items: items,
				})
			}
		}
	}

	return conflicts
}

// symbolsAfterDots returns, sorted, the distinct symbol names appearing
// immediately after a dot in any incomplete item of state — the set of
// symbols to expand GOTO over (spec §9 "Determinism").
func symbolsAfterDots(g *grammar.Grammar, state grammar.ItemSet) []string {
	seen := map[string]bool{}
	var names []string
	for _, it := range state.Items {
		if it.IsComplete(g) {
			continue
		}
		name := it.SymbolAfterDot(g).Name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func symbolByName(g *grammar.Grammar, name string) grammar.Symbol {
	if g.IsTerminal(name) {
		return grammar.NewTerminal(name)
	}
	return grammar.NewNonTerminal(name)
}

func transKey(state int, symbol string) string {
	return fmt.Sprintf("%d\x00%s", state, symbol)
}
