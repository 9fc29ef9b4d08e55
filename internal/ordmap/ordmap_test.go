package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertionOrderPreservedAcrossUpdatesAndDeletes(t *testing.T) {
	m := New[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	require.Equal(t, []string{"c", "a", "b"}, m.Keys())

	m.Set("a", 10) // update, not reorder
	require.Equal(t, []string{"c", "a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	m.Delete("c")
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, []int{10, 2}, m.Values())
}

func TestGetOrInsertOnlyCallsFactoryOnce(t *testing.T) {
	m := New[string, int]()
	calls := 0
	make1 := func() int { calls++; return 5 }

	v1 := m.GetOrInsert("x", make1)
	v2 := m.GetOrInsert("x", make1)

	assert.Equal(t, 5, v1)
	assert.Equal(t, 5, v2)
	assert.Equal(t, 1, calls)
}
