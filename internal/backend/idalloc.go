package backend

import "math"

// idAllocator hands out project ids from a monotonic pool that wraps at
// math.MaxUint32, skipping 0 so that 0 is always free to mean "no
// project" on the wire.
type idAllocator struct {
	next uint32
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: 1}
}

func (a *idAllocator) Next() uint32 {
	id := a.next
	if a.next == math.MaxUint32 {
		a.next = 1
	} else {
		a.next++
	}
	return id
}
