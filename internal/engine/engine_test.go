package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkndy/lr1-visualizer/internal/automaton"
	"github.com/lkndy/lr1-visualizer/internal/grammar"
	"github.com/lkndy/lr1-visualizer/internal/lrerr"
	"github.com/lkndy/lr1-visualizer/internal/table"
	"github.com/lkndy/lr1-visualizer/internal/token"
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

func buildEngine(t *testing.T, prods []grammar.Production, start string) *Engine {
	t.Helper()
	g, err := grammar.New(prods, grammar.NewNonTerminal(start))
	require.NoError(t, err)
	a, err := automaton.Build(context.Background(), g)
	require.NoError(t, err)
	tbl := table.Build(a)
	require.True(t, tbl.Valid(), "expected conflict-free table, got %d conflicts", len(tbl.Conflicts))
	eng, err := New(g, tbl)
	require.NoError(t, err)
	return eng
}

func g1Engine(t *testing.T) *Engine {
	t.Helper()
	return buildEngine(t, []grammar.Production{
		prod("E", "E", "+", "T"),
		prod("E", "T"),
		prod("T", "T", "*", "F"),
		prod("T", "F"),
		prod("F", "(", "E", ")"),
		prod("F", "id"),
	}, "E")
}

func TestParse_G1_SingleIDAccepts(t *testing.T) {
	eng := g1Engine(t)
	result := eng.Parse(context.Background(), token.Tokenize("id"))

	require.True(t, result.Accepted)
	assert.Equal(t, "E", result.Tree.Nodes[result.Tree.Root].Symbol)
}

func TestParse_G1_PrecedenceOfMultiplicationOverAddition(t *testing.T) {
	eng := g1Engine(t)
	result := eng.Parse(context.Background(), token.Tokenize("id + id * id"))
	require.True(t, result.Accepted)

	root := result.Tree.Nodes[result.Tree.Root]
	require.Equal(t, "E", root.Symbol)
	require.Len(t, root.Children, 3)

	left := result.Tree.Nodes[root.Children[0]]
	plus := result.Tree.Nodes[root.Children[1]]
	right := result.Tree.Nodes[root.Children[2]]
	assert.Equal(t, "E", left.Symbol)
	assert.Equal(t, "+", plus.Symbol)
	assert.Equal(t, "T", right.Symbol)
	// the right T must itself contain the multiplication, i.e. have
	// children (not a bare pass-through to F).
	assert.Len(t, right.Children, 3)
}

func TestParse_G1_DanglingPlusErrorsWithNoAction(t *testing.T) {
	eng := g1Engine(t)
	result := eng.Parse(context.Background(), token.Tokenize("id +"))

	require.False(t, result.Accepted)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, lrerr.ErrNoAction)
	last := result.Steps[len(result.Steps)-1]
	assert.Equal(t, StepError, last.Kind)
}

// g3 is spec.md's G3: S -> A B ; A -> a | ε ; B -> b | ε
func g3Engine(t *testing.T) *Engine {
	t.Helper()
	return buildEngine(t, []grammar.Production{
		prod("S", "A", "B"),
		prod("A", "a"),
		{LHS: grammar.NewNonTerminal("A")},
		prod("B", "b"),
		{LHS: grammar.NewNonTerminal("B")},
	}, "S")
}

func TestParse_G3_EpsilonCombinationsAllAccept(t *testing.T) {
	eng := g3Engine(t)
	for _, input := range []string{"a b", "a", "b", ""} {
		result := eng.Parse(context.Background(), token.Tokenize(input))
		assert.True(t, result.Accepted, "input %q should accept", input)
	}
}

// g5 is spec.md's G5: S -> ( S ) | ( )
func g5Engine(t *testing.T) *Engine {
	t.Helper()
	return buildEngine(t, []grammar.Production{
		prod("S", "(", "S", ")"),
		prod("S", "(", ")"),
	}, "S")
}

func TestParse_G5_NestedParensAccept(t *testing.T) {
	eng := g5Engine(t)
	result := eng.Parse(context.Background(), token.Tokenize("( ( ) )"))
	assert.True(t, result.Accepted)
}

func TestParse_G5_DanglingOpenErrors(t *testing.T) {
	eng := g5Engine(t)
	result := eng.Parse(context.Background(), token.Tokenize("( ("))
	assert.False(t, result.Accepted)
	require.Error(t, result.Err)
}

func TestNew_RefusesConflictingTable(t *testing.T) {
	prods := []grammar.Production{
		prod("S", "S", "S"),
		prod("S", "a"),
	}
	g, err := grammar.New(prods, grammar.NewNonTerminal("S"))
	require.NoError(t, err)
	a, err := automaton.Build(context.Background(), g)
	require.NoError(t, err)
	tbl := table.Build(a)
	require.False(t, tbl.Valid())

	_, err = New(g, tbl)
	assert.Error(t, err)
}

func TestParse_ShiftAndReduceStepsEachCreateOneASTNode(t *testing.T) {
	eng := g1Engine(t)
	result := eng.Parse(context.Background(), token.Tokenize("id"))
	require.True(t, result.Accepted)

	for _, step := range result.Steps {
		switch step.Kind {
		case StepShift:
			assert.Len(t, step.ASTNodesCreated, 1)
		case StepReduce:
			assert.Len(t, step.ASTNodesCreated, 1)
		}
	}
}
