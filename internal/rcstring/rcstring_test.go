package rcstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolInternReusesEqualStrings(t *testing.T) {
	p := NewPool()

	a := p.Intern("data/player.json")
	b := p.Intern("data/player.json")

	require.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, "data/player.json", a.String())
}

func TestRcStringEqualRejectsDifferentText(t *testing.T) {
	a := New("en_US")
	b := New("ru_RU")

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestEmptyIsEmpty(t *testing.T) {
	assert.True(t, Empty.IsEmpty())
	assert.True(t, New("").IsEmpty())
}
