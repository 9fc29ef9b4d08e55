package backend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDAllocatorSkipsZeroAndWraps(t *testing.T) {
	a := newIDAllocator()
	assert.Equal(t, uint32(1), a.Next())
	assert.Equal(t, uint32(2), a.Next())
	assert.Equal(t, uint32(3), a.Next())

	a.next = math.MaxUint32
	assert.Equal(t, uint32(math.MaxUint32), a.Next())
	assert.Equal(t, uint32(1), a.Next(), "wraps past MaxUint32 back to 1, never 0")
}
