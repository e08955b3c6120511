package table

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkndy/lr1-visualizer/internal/automaton"
	"github.com/lkndy/lr1-visualizer/internal/grammar"
)

func prod(lhs string, rhs ...string) grammar.Production {
	p := grammar.Production{LHS: grammar.NewNonTerminal(lhs)}
	for _, s := range rhs {
		if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
			p.RHS = append(p.RHS, grammar.NewNonTerminal(s))
		} else {
			p.RHS = append(p.RHS, grammar.NewTerminal(s))
		}
	}
	return p
}

func g1(t *testing.T) *grammar.Grammar {
	t.Helper()
	prods := []grammar.Production{
		prod("E", "E", "+", "T"),
		prod("E", "T"),
		prod("T", "T", "*", "F"),
		prod("T", "F"),
		prod("F", "(", "E", ")"),
		prod("F", "id"),
	}
	g, err := grammar.New(prods, grammar.NewNonTerminal("E"))
	require.NoError(t, err)
	return g
}

func TestBuild_AcceptOnAugmentedReduceAtEnd(t *testing.T) {
	g := g1(t)
	a, err := automaton.Build(context.Background(), g)
	require.NoError(t, err)
	tbl := Build(a)
	require.True(t, tbl.Valid())

	act, ok := tbl.ActionAt(0, grammar.End.Name)
	// state 0 has no accept directly (need to shift first); just assert no
	// conflicts and that some accept action exists somewhere in the table.
	_ = act
	_ = ok

	foundAccept := false
	for si := range a.States {
		if act, ok := tbl.ActionAt(si, grammar.End.Name); ok && act.Kind == Accept {
			foundAccept = true
		}
	}
	assert.True(t, foundAccept)
}

func TestAction_CellEncoding(t *testing.T) {
	assert.Equal(t, "s3", Action{Kind: Shift, Target: 3}.Cell())
	assert.Equal(t, "r2", Action{Kind: Reduce, Target: 2}.Cell())
	assert.Equal(t, "acc", Action{Kind: Accept}.Cell())
}

func TestBuild_ConflictOnAmbiguousGrammar(t *testing.T) {
	prods := []grammar.Production{
		prod("S", "S", "S"),
		prod("S", "a"),
	}
	g, err := grammar.New(prods, grammar.NewNonTerminal("S"))
	require.NoError(t, err)

	a, err := automaton.Build(context.Background(), g)
	require.NoError(t, err)
	tbl := Build(a)
	assert.False(t, tbl.Valid())
	assert.NotEmpty(t, tbl.Conflicts)
}

func TestViews_HeaderSortedAndStateOrdered(t *testing.T) {
	g := g1(t)
	a, err := automaton.Build(context.Background(), g)
	require.NoError(t, err)
	tbl := Build(a)

	av := tbl.ActionView()
	assert.Equal(t, "State", av.Header[0])
	for i := 2; i < len(av.Header); i++ {
		assert.LessOrEqual(t, av.Header[i-1], av.Header[i])
	}
	for i, row := range av.Rows {
		assert.Equal(t, row[0], strconv.Itoa(i))
	}
}
