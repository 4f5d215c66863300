package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := NewStack[string]()
	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push("a")
	s.Push("b")
	s.Push("c")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("d"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())

	top, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, "c", top)

	v, _ := s.Pop()
	assert.Equal(t, "c", v)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains("c"))
}
