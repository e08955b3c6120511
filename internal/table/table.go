// Package table synthesizes ACTION and GOTO from an *automaton.Automaton,
// records any conflicting assignments, and renders the two tabular export
// views spec.md §4.4/§6 describe.
package table

import (
	"fmt"
	"sort"

	"github.com/lkndy/lr1-visualizer/internal/automaton"
	"github.com/lkndy/lr1-visualizer/internal/grammar"
)

// ActionKind classifies a driver action.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is one ACTION table cell: a shift target state, a reduce
// production index, or accept.
type Action struct {
	Kind   ActionKind
	Target int // state to shift to, or production index to reduce by
}

// Cell renders an Action using the well-known encodings from spec §4.4/§6:
// sN, rN, or acc.
func (a Action) Cell() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Target)
	case Accept:
		return "acc"
	default:
		return ""
	}
}

// ConflictKind mirrors automaton.ConflictKind plus the degenerate cases
// that can only be detected once actions are actually installed into the
// table (shift_shift, accept_conflict) — spec §3.
type ConflictKind string

const (
	ShiftReduce    ConflictKind = "shift_reduce"
	ReduceReduce   ConflictKind = "reduce_reduce"
	ShiftShift     ConflictKind = "shift_shift"
	AcceptConflict ConflictKind = "accept_conflict"
)

// Conflict is a recorded (state, symbol, competing actions, kind) tuple.
// The table keeps whichever action was installed first; both actions are
// preserved here for diagnostics (spec §4.4 "Conflict recording").
type Conflict struct {
	State     int
	Symbol    string
	Kept      Action
	Attempted Action
	Kind      ConflictKind
}

// Table holds the synthesized ACTION/GOTO maps plus any conflicts found
// while installing them. A Table with a non-empty Conflicts is not valid
// for use by an engine (spec §4.4, §7 table.has_conflicts).
type Table struct {
	Automaton *automaton.Automaton
	Grammar   *grammar.Grammar

	action map[string]Action // key: state\x00terminal
	goTo   map[string]int    // key: state\x00non-terminal

	Conflicts []Conflict
}

// Valid reports whether the table has no conflicts (spec §4.4).
func (t *Table) Valid() bool { return len(t.Conflicts) == 0 }

// ActionAt returns ACTION[state, terminal], if defined.
func (t *Table) ActionAt(state int, terminal string) (Action, bool) {
	a, ok := t.action[cellKey(state, terminal)]
	return a, ok
}

// GotoAt returns GOTO[state, nonTerminal], if defined.
func (t *Table) GotoAt(state int, nonTerminal string) (int, bool) {
	s, ok := t.goTo[cellKey(state, nonTerminal)]
	return s, ok
}

// Build synthesizes ACTION and GOTO from a, following spec §4.4's per-item
// rule set exactly: complete augmented items accept; other complete items
// reduce; incomplete items with a terminal after the dot shift along the
// recorded transition; non-terminal transitions populate GOTO. Any
// assignment attempting to overwrite an existing, different entry is
// recorded as a conflict and the first-installed action is kept — the Open
// Question of preferring shift over reduce is deliberately not resolved
// here (DESIGN.md).
func Build(a *automaton.Automaton) *Table {
	g := a.Grammar
	t := &Table{
		Automaton: a,
		Grammar:   g,
		action:    map[string]Action{},
		goTo:      map[string]int{},
	}

	for si, state := range a.States {
		for _, it := range state.Items {
			if it.IsComplete(g) {
				p := g.Productions[it.Prod]
				if p.Index == 0 && it.Lookahead == grammar.End {
					t.install(si, grammar.End.Name, Action{Kind: Accept}, AcceptConflict)
					continue
				}
				t.install(si, it.Lookahead.Name, Action{Kind: Reduce, Target: p.Index}, ReduceReduce)
				continue
			}

			sym := it.SymbolAfterDot(g)
			if sym.Kind != grammar.Terminal {
				continue
			}
			to, ok := a.Goto(si, sym.Name)
			if !ok {
				continue
			}
			t.install(si, sym.Name, Action{Kind: Shift, Target: to}, ShiftShift)
		}

		for _, symName := range nonTerminalSymbolsAfterDots(g, state) {
			to, ok := a.Goto(si, symName)
			if ok {
				t.goTo[cellKey(si, symName)] = to
			}
		}
	}

	return t
}

// install assigns ACTION[state, symbol] = act, or records a conflict if a
// different action is already installed there. defaultKind is used unless
// the two competing actions are a shift/reduce pair, which is always
// classified as ShiftReduce regardless of insertion order.
func (t *Table) install(state int, symbol string, act Action, defaultKind ConflictKind) {
	key := cellKey(state, symbol)
	existing, ok := t.action[key]
	if !ok {
		t.action[key] = act
		return
	}
	if existing == act {
		return
	}

	kind := defaultKind
	if isShiftReducePair(existing, act) {
		kind = ShiftReduce
	}
	t.Conflicts = append(t.Conflicts, Conflict{
		State: state, Symbol: symbol, Kept: existing, Attempted: act, Kind: kind,
	})
}

func isShiftReducePair(a, b Action) bool {
	return (a.Kind == Shift && b.Kind == Reduce) || (a.Kind == Reduce && b.Kind == Shift)
}

func nonTerminalSymbolsAfterDots(g *grammar.Grammar, state grammar.ItemSet) []string {
	seen := map[string]bool{}
	var names []string
	for _, it := range state.Items {
		if it.IsComplete(g) {
			continue
		}
		sym := it.SymbolAfterDot(g)
		if sym.Kind == grammar.NonTerminal && !seen[sym.Name] {
			seen[sym.Name] = true
			names = append(names, sym.Name)
		}
	}
	sort.Strings(names)
	return names
}

func cellKey(state int, symbol string) string {
	return fmt.Sprintf("%d\x00%s", state, symbol)
}

// ActionTableView is the exported ACTION tabular view: Header is
// ["State", sorted terminal names...], Rows is one row per state ascending,
// cells rendered via Action.Cell or "" when undefined (spec §4.4/§6).
type ActionTableView struct {
	Header []string
	Rows   [][]string
}

// GotoTableView is the GOTO analogue, over sorted non-terminal names.
type GotoTableView struct {
	Header []string
	Rows   [][]string
}

// ActionView renders the ACTION export view.
func (t *Table) ActionView() ActionTableView {
	terms := t.Grammar.Terminals()
	header := append([]string{"State"}, terms...)

	rows := make([][]string, len(t.Automaton.States))
	for si := range t.Automaton.States {
		row := make([]string, len(header))
		row[0] = fmt.Sprintf("%d", si)
		for i, term := range terms {
			if a, ok := t.ActionAt(si, term); ok {
				row[i+1] = a.Cell()
			}
		}
		rows[si] = row
	}
	return ActionTableView{Header: header, Rows: rows}
}

// GotoView renders the GOTO export view.
func (t *Table) GotoView() GotoTableView {
	var nts []string
	for _, nt := range t.Grammar.NonTerminals() {
		if nt == t.Grammar.AugmentedStart.Name {
			continue
		}
		nts = append(nts, nt)
	}
	sort.Strings(nts)
	header := append([]string{"State"}, nts...)

	rows := make([][]string, len(t.Automaton.States))
	for si := range t.Automaton.States {
		row := make([]string, len(header))
		row[0] = fmt.Sprintf("%d", si)
		for i, nt := range nts {
			if to, ok := t.GotoAt(si, nt); ok {
				row[i+1] = fmt.Sprintf("%d", to)
			}
		}
		rows[si] = row
	}
	return GotoTableView{Header: header, Rows: rows}
}
