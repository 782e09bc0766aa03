// Package interner assigns stable integer ids to identifier strings, per
// spec.md §4.1. Equality of StrId implies equality of the underlying
// string; the table is append-only for the lifetime of a compilation.
package interner

import (
	"fmt"
	"sync"
)

// StrId is an opaque integer identifying an interned string. The zero value
// is never issued by Intern, so it doubles as an "unset" sentinel.
type StrId uint32

// Interner is a mapping StrId <-> string, safe for concurrent insertion.
// The teacher's own singleton state (symbol registries guarded for
// concurrent mutation) is the model here; unlike a package-level global we
// keep Interner an explicit value so tests can construct a fresh one instead
// of fighting over shared state (spec.md §9, "test isolation requires
// either resetting between test cases or confining the interner to an
// explicit context object").
type Interner struct {
	mu      sync.RWMutex
	strings []string
	ids     map[string]StrId
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{ids: make(map[string]StrId)}
}

// Intern returns the existing id for s if already present, else assigns and
// returns the next id.
func (in *Interner) Intern(s string) StrId {
	in.mu.RLock()
	if id, ok := in.ids[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[s]; ok {
		return id
	}
	in.strings = append(in.strings, s)
	id := StrId(len(in.strings))
	in.ids[s] = id
	return id
}

// Get resolves id back to its string. It fails if id was never issued by
// this Interner.
func (in *Interner) Get(id StrId) (string, error) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == 0 || int(id) > len(in.strings) {
		return "", fmt.Errorf("interner: id %d was never issued", id)
	}
	return in.strings[id-1], nil
}

// MustGet panics if id is unknown; used where the caller already proved the
// id came from this Interner (e.g. walking a namespace path it built).
func (in *Interner) MustGet(id StrId) string {
	s, err := in.Get(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns how many distinct strings have been interned.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}

var (
	defaultOnce sync.Once
	defaultIn   *Interner
)

// Default returns a process-wide Interner, lazily initialized on first use
// (spec.md §3.3: "valid for the life of the process"). The CLI driver and
// the language-server backend do not use it: they create a fresh Interner
// with New() for every file or document they analyze.
func Default() *Interner {
	defaultOnce.Do(func() { defaultIn = New() })
	return defaultIn
}
