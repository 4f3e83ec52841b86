package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Stream {
	return NewStream([]Token{
		{Kind: KindOpenTag, Text: "<?php\n"},
		{Kind: KindPublic, Text: "public"},
		{Kind: KindWhitespace, Text: " "},
		{Kind: KindVariable, Text: "$bindings"},
		{Kind: KindSemicolon, Text: ";"},
	})
}

func TestNewStreamRenumbers(t *testing.T) {
	s := NewStream([]Token{{Kind: KindIdent, Index: 42}, {Kind: KindComma, Index: 7}})
	for i, tok := range s.Tokens() {
		assert.Equal(t, i, tok.Index)
	}
}

func TestAtOutOfRange(t *testing.T) {
	s := sample()

	_, ok := s.At(-1)
	assert.False(t, ok)
	_, ok = s.At(s.Len())
	assert.False(t, ok)

	assert.Equal(t, KindNone, s.Kind(100))
	assert.Equal(t, "", s.Text(100))
	assert.False(t, s.Is(100, KindVariable, "$bindings"))
}

func TestIs(t *testing.T) {
	s := sample()
	assert.True(t, s.Is(3, KindVariable, "$bindings"))
	assert.False(t, s.Is(3, KindVariable, "$defer"))
	assert.False(t, s.Is(3, KindIdent, "$bindings"))
}

func TestFindNext(t *testing.T) {
	s := sample()

	i, ok := s.FindNext(0, KindVariable)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = s.FindNext(3, KindVariable, KindSemicolon)
	require.True(t, ok)
	assert.Equal(t, 3, i)

	i, ok = s.FindNext(4, KindVariable)
	assert.False(t, ok)
	assert.Equal(t, -1, i)

	i, ok = s.FindNext(-5, KindOpenTag)
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestTokensIsACopy(t *testing.T) {
	s := sample()
	toks := s.Tokens()
	toks[1].Text = "private"
	assert.Equal(t, "public", s.Text(1))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "DOUBLE_ARROW", KindDoubleArrow.String())
	assert.Equal(t, "Kind(999)", Kind(999).String())

	b, err := KindIdent.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "STRING", string(b))
}
