package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_WhitespaceSplit(t *testing.T) {
	assert.Equal(t, []string{"id", "+", "id", End}, Tokenize("id + id"))
}

func TestTokenize_PunctuationWithoutSpaces(t *testing.T) {
	assert.Equal(t, []string{"(", "id", ")", End}, Tokenize("(id)"))
}

func TestTokenize_EndMarkerAppendedExactlyOnce(t *testing.T) {
	tokens := Tokenize("a b c")
	assert.Equal(t, End, tokens[len(tokens)-1])

	count := 0
	for _, tok := range tokens {
		if tok == End {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Equal(t, []string{End}, Tokenize(""))
}
