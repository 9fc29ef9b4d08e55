// Package rcstring provides a small interned-string handle used for the
// path fragments and locale identifiers that flow through every layer of
// a translation project (file paths, json paths, locale codes). The
// original implementation shares these strings via Rc<String>; Go strings
// are already immutable and cheaply shared (a string header is just a
// pointer and a length), so instead of reimplementing reference counting
// we intern the value once and hand out a small comparable handle whose
// equality check is hash-first, the same trick the teacher's StringRef
// uses for substring comparisons.
package rcstring

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// RcString is a handle to an interned string. The zero value is the empty
// string. Two RcStrings compare equal (via Equal) iff their underlying
// text is equal; comparing the Hash first avoids a string compare on the
// common case where two handles come from different pools.
type RcString struct {
	hash uint64
	s    string
}

// Empty is the interned empty string.
var Empty = RcString{}

func (r RcString) String() string { return r.s }

func (r RcString) Hash() uint64 { return r.hash }

func (r RcString) IsEmpty() bool { return len(r.s) == 0 }

// Equal performs a hash-first comparison, then falls back to a full
// string compare only when the hashes collide.
func (r RcString) Equal(other RcString) bool {
	if r.hash != other.hash {
		return false
	}
	return r.s == other.s
}

// Pool interns strings so repeated path fragments and locale codes share
// one allocation instead of being copied at every call site that builds
// them.
type Pool struct {
	mu      sync.Mutex
	entries map[uint64][]RcString
}

// NewPool creates an empty interning pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[uint64][]RcString)}
}

// Intern returns the RcString for s, reusing an existing entry when the
// pool has already interned the same text.
func (p *Pool) Intern(s string) RcString {
	h := xxhash.Sum64String(s)

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.entries[h] {
		if existing.s == s {
			return existing
		}
	}
	rc := RcString{hash: h, s: s}
	p.entries[h] = append(p.entries[h], rc)
	return rc
}

// New builds an RcString without going through a shared pool, for
// one-off values (e.g. computed export paths) that aren't expected to be
// interned repeatedly.
func New(s string) RcString {
	return RcString{hash: xxhash.Sum64String(s), s: s}
}
