package grammar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lkndy/lr1-visualizer/internal/lrerr"
)

// Item is an LR(1) item `[A → α•β, a]`: a production, a dot position, and a
// lookahead terminal. Item is a value type; two items with equal fields
// compare equal.
type Item struct {
	Prod      int // index into Grammar.Productions
	Dot       int
	Lookahead Symbol
}

// IsComplete reports whether the dot has reached the end of the
// production's RHS.
func (it Item) IsComplete(g *Grammar) bool {
	return it.Dot == len(g.Productions[it.Prod].RHS)
}

// SymbolAfterDot returns the symbol immediately following the dot. It
// panics if the item is complete; callers must check IsComplete first
// (spec §4.2: "symbol_after_dot is defined only when incomplete").
func (it Item) SymbolAfterDot(g *Grammar) Symbol {
	return g.Productions[it.Prod].RHS[it.Dot]
}

// AdvanceDot returns a copy of it with the dot moved one position to the
// right. It panics if the item is already complete (spec §4.2:
// "advance_dot fails on complete items").
func (it Item) AdvanceDot(g *Grammar) Item {
	if it.IsComplete(g) {
		panic("grammar: AdvanceDot called on a complete item")
	}
	return Item{Prod: it.Prod, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

func (it Item) key(g *Grammar) string {
	return fmt.Sprintf("%d.%d,%s", it.Prod, it.Dot, it.Lookahead.Name)
}

// String renders an item as "A -> α . β, a", matching the canonical
// dragon-book notation.
func (it Item) String(g *Grammar) string {
	p := g.Productions[it.Prod]
	names := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		names[i] = s.Name
	}
	left := strings.Join(names[:it.Dot], " ")
	right := strings.Join(names[it.Dot:], " ")
	return fmt.Sprintf("%s -> %s . %s, %s", p.LHS.Name, left, right, it.Lookahead.Name)
}

// ItemSet is an unordered set of items, frozen for use as a map key via its
// Key method. Two ItemSets with the same items (in any order) produce the
// same Key.
type ItemSet struct {
	Items []Item
}

// NewItemSet returns an ItemSet containing exactly the given items, deduped.
func NewItemSet(items ...Item) ItemSet {
	seen := map[Item]bool{}
	var out []Item
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return ItemSet{Items: out}
}

// Add appends it to the set if not already present, returning whether it
// was newly added.
func (s *ItemSet) Add(it Item) bool {
	for _, existing := range s.Items {
		if existing == it {
			return false
		}
	}
	s.Items = append(s.Items, it)
	return true
}

// Key returns a structural hash key: items sorted by their canonical
// string form and joined. Two ItemSets with equal contents always produce
// equal keys regardless of insertion order (spec §9 "Identity of item
// sets").
func (s ItemSet) Key(g *Grammar) string {
	keys := make([]string, len(s.Items))
	for i, it := range s.Items {
		keys[i] = it.key(g)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// Closure computes CLOSURE(I): the least fixed point under the expansion
// rule "for every item [A → α•Bβ, a], and every production B → γ, and every
// terminal b in FIRST(βa), add [B → •γ, b]" (spec §4.2). Implemented as a
// worklist so each item is expanded exactly once. ctx is checked once per
// worklist iteration; a cancelled context aborts with lrerr.ErrCancelled
// (spec §5).
func Closure(ctx context.Context, g *Grammar, items ItemSet) (ItemSet, error) {
	result := NewItemSet(items.Items...)
	worklist := append([]Item(nil), items.Items...)

	for len(worklist) > 0 {
		select {
		case <-ctx.Done():
			return ItemSet{}, lrerr.New(lrerr.ErrCancelled, "closure expansion cancelled: "+ctx.Err().Error())
		default:
		}

		it := worklist[0]
		worklist = worklist[1:]

		if it.IsComplete(g) {
			continue
		}
		b := it.SymbolAfterDot(g)
		if b.Kind != NonTerminal {
			continue
		}

		prod := g.Productions[it.Prod]
		beta := prod.RHS[it.Dot+1:]
		lookaheads := g.FirstOfSequence(append(append([]Symbol(nil), beta...), it.Lookahead))

		for _, gamma := range g.ProductionsFor(b.Name) {
			for _, la := range lookaheads.Ordered() {
				if la == Eps.Name {
					continue
				}
				newItem := Item{Prod: gamma.Index, Dot: 0, Lookahead: NewTerminal(la)}
				if result.Add(newItem) {
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return result, nil
}

// Goto computes GOTO(I, X): advance every item in I whose symbol-after-dot
// is X, then close the result. Callers must distinguish an undefined GOTO
// (no item advances, ok == false) from a GOTO that happens to close back
// to the empty set, which cannot occur in practice but is still handled as
// "undefined" (spec §4.2). ctx is forwarded to the closure step.
func Goto(ctx context.Context, g *Grammar, items ItemSet, x Symbol) (ItemSet, bool, error) {
	var advanced []Item
	for _, it := range items.Items {
		if it.IsComplete(g) {
			continue
		}
		if it.SymbolAfterDot(g) == x {
			advanced = append(advanced, it.AdvanceDot(g))
		}
	}
	if len(advanced) == 0 {
		return ItemSet{}, false, nil
	}
	closed, err := Closure(ctx, g, NewItemSet(advanced...))
	if err != nil {
		return ItemSet{}, false, err
	}
	return closed, true, nil
}
