package gtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkndy/lr1-visualizer/internal/grammar"
)

func TestParse_G1(t *testing.T) {
	src := `
		E -> E + T | T ;
		T -> T * F | F ;
		F -> ( E ) | id ;
	`
	prods, start, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "E", start.Name)
	assert.True(t, start.IsNonTerminal())
	require.Len(t, prods, 6)

	g, err := grammar.New(prods, start)
	require.NoError(t, err)
	assert.True(t, g.IsTerminal("id"))
	assert.True(t, g.IsNonTerminal("F"))
}

func TestParse_EpsilonAlternative(t *testing.T) {
	src := `S -> A B ; A -> a | ε ; B -> b | epsilon ;`
	prods, start, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "S", start.Name)

	var epsilonCount int
	for _, p := range prods {
		if p.IsEpsilon() {
			epsilonCount++
		}
	}
	assert.Equal(t, 2, epsilonCount)
}

func TestParse_MissingArrowIsError(t *testing.T) {
	_, _, err := Parse("S A B ;")
	assert.Error(t, err)
}

func TestParse_LowercaseHeadIsError(t *testing.T) {
	_, _, err := Parse("s -> a ;")
	assert.Error(t, err)
}

func TestParse_EmptyInputIsError(t *testing.T) {
	_, _, err := Parse("   ")
	assert.Error(t, err)
}
