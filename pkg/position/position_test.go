package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphql-toolkit/core/pkg/position"
)

func TestSpan_Merge(t *testing.T) {
	a := position.NewSpan(5, 10)
	b := position.NewSpan(2, 7)
	merged := a.Merge(b)
	assert.Equal(t, position.NewSpan(2, 10), merged)
}

func TestSpan_Contains(t *testing.T) {
	s := position.NewSpan(5, 10)
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(10))
	assert.False(t, s.Contains(4))
}

func TestSpan_LenAndIsZero(t *testing.T) {
	assert.Equal(t, uint32(5), position.NewSpan(5, 10).Len())
	assert.Equal(t, uint32(0), position.Span{}.Len())
	assert.True(t, position.Span{}.IsZero())
	assert.False(t, position.NewSpan(0, 1).IsZero())
}

func TestIndex_LineColumn(t *testing.T) {
	src := "line one\nline two\nline three"
	idx := position.NewIndex(src)

	pos := idx.LineColumn(0)
	assert.Equal(t, position.Position{Line: 1, Column: 1}, pos)

	// "line two" starts right after the first newline, at offset 9.
	pos = idx.LineColumn(9)
	assert.Equal(t, position.Position{Line: 2, Column: 1}, pos)

	// offset 18 is the start of "line three".
	pos = idx.LineColumn(18)
	assert.Equal(t, uint32(3), pos.Line)
	assert.Equal(t, uint32(1), pos.Column)
}

func TestIndex_LineColumnOfSpan(t *testing.T) {
	src := "abc\ndef"
	idx := position.NewIndex(src)
	pos := idx.LineColumnOfSpan(position.NewSpan(4, 7))
	assert.Equal(t, uint32(2), pos.Line)
	assert.Equal(t, uint32(1), pos.Column)
}
