package grammar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_AdvanceDotAndComplete(t *testing.T) {
	g := g1(t)
	// production index 2 is the augmented-adjusted E -> T (after aug at 0
	// shifts everything by one); locate it by content instead of index.
	var idx int
	for _, p := range g.Productions {
		if p.LHS.Name == "E" && len(p.RHS) == 1 && p.RHS[0].Name == "T" {
			idx = p.Index
		}
	}

	it := Item{Prod: idx, Dot: 0, Lookahead: End}
	assert.False(t, it.IsComplete(g))
	assert.Equal(t, "T", it.SymbolAfterDot(g).Name)

	it2 := it.AdvanceDot(g)
	assert.True(t, it2.IsComplete(g))
	assert.Panics(t, func() { it2.AdvanceDot(g) })
}

func TestClosure_StateZero(t *testing.T) {
	g := g1(t)
	start, err := Closure(context.Background(), g, NewItemSet(Item{Prod: 0, Dot: 0, Lookahead: End}))
	require.NoError(t, err)

	// Closure of [E' -> .E, $] must include [E -> .E + T, $/+ ] etc. and
	// ultimately reach F -> .( E ) and F -> .id with the right lookaheads.
	found := false
	for _, it := range start.Items {
		p := g.Productions[it.Prod]
		if p.LHS.Name == "F" && len(p.RHS) == 1 && p.RHS[0].Name == "id" {
			found = true
		}
	}
	assert.True(t, found, "closure should reach F -> . id")
}

func TestGoto_UndefinedWhenNoAdvance(t *testing.T) {
	g := g1(t)
	start, err := Closure(context.Background(), g, NewItemSet(Item{Prod: 0, Dot: 0, Lookahead: End}))
	require.NoError(t, err)

	_, ok, err := Goto(context.Background(), g, start, NewTerminal("nonexistent-token"))
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = Goto(context.Background(), g, start, NewTerminal("id"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestItemSet_KeyIsOrderIndependent(t *testing.T) {
	g := g1(t)
	a := Item{Prod: 0, Dot: 0, Lookahead: End}
	b := Item{Prod: 0, Dot: 0, Lookahead: NewTerminal("id")}

	s1 := NewItemSet(a, b)
	s2 := NewItemSet(b, a)

	assert.Equal(t, s1.Key(g), s2.Key(g))
}
