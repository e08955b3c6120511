package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSet_OrderedIsSorted(t *testing.T) {
	s := NewStringSet("c", "a", "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.Ordered())
}

func TestStringSet_AddAll(t *testing.T) {
	s := NewStringSet("a")
	s.AddAll(NewStringSet("b", "c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Ordered())
}

func TestStack_PushPopLIFO(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)

	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, 2, s.Pop())
	assert.Equal(t, 1, s.Len())
}

func TestStack_PopNReturnsBottomToTop(t *testing.T) {
	var s Stack[string]
	s.Push("a")
	s.Push("b")
	s.Push("c")

	popped := s.PopN(2)
	assert.Equal(t, []string{"b", "c"}, popped)
	assert.Equal(t, 1, s.Len())
}
