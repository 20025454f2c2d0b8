// Package source provides stable, tree-structured identities for layout nodes.
//
// Identities live in a Registry arena and are addressed by ID. An ID is made of a
// slot index and a generation, so a released identity can never be confused with the
// one that later reuses its slot: lookups through a stale ID fail instead of
// returning the wrong node.
package source

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID addresses an identity in a Registry. The zero ID is the root of every registry.
type ID struct {
	index uint32
	gen   uint32
}

// Root is the implicit root identity every tree hangs from.
var Root = ID{}

// IsRoot reports whether id is the registry root.
func (id ID) IsRoot() bool {
	return id == Root
}

func (id ID) String() string {
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// KeyKind discriminates the variants of Key.
type KeyKind uint8

const (
	KeyInt KeyKind = iota
	KeyName
	KeyToken
	KeyOpaque
)

// Key distinguishes siblings under the same parent.
type Key struct {
	kind   KeyKind
	n      int64
	name   string
	opaque any
}

// Int returns an integer key, typically a child index.
func Int(n int64) Key {
	return Key{kind: KeyInt, n: n}
}

// Name returns a key for a static name.
func Name(s string) Key {
	return Key{kind: KeyName, name: s}
}

// Token returns a fresh random key. Two calls never return equal keys.
func Token() Key {
	return Key{kind: KeyToken, opaque: uuid.New()}
}

// Opaque wraps any comparable value as a key. Interning a key built from a
// non-comparable value panics.
func Opaque(v any) Key {
	return Key{kind: KeyOpaque, opaque: v}
}

// Kind returns the key variant.
func (k Key) Kind() KeyKind {
	return k.kind
}

func (k Key) String() string {
	switch k.kind {
	case KeyInt:
		return fmt.Sprintf("%d", k.n)
	case KeyName:
		return k.name
	case KeyToken:
		return k.opaque.(uuid.UUID).String()
	default:
		return fmt.Sprintf("%v", k.opaque)
	}
}

type entry struct {
	parent ID
	key    Key
	gen    uint32
	live   bool
}

type internKey struct {
	parent ID
	key    Key
}

// Registry is the arena of identities. It is not safe for concurrent use; layout is
// single threaded and the caller owns the registry.
type Registry struct {
	entries []entry
	free    []uint32
	byKey   map[internKey]ID
}

// NewRegistry creates a registry holding only the root identity.
func NewRegistry() *Registry {
	return &Registry{
		entries: []entry{{live: true}},
		byKey:   make(map[internKey]ID),
	}
}

// Intern returns the identity of key under parent, creating it on first use. The
// same (parent, key) pair always maps to the same ID while it is live, which keeps
// identities stable across rebuilds.
func (r *Registry) Intern(parent ID, key Key) ID {
	if !r.Live(parent) {
		panic(fmt.Sprintf("source: Intern under stale parent %v", parent))
	}
	ik := internKey{parent: parent, key: key}
	if id, ok := r.byKey[ik]; ok {
		return id
	}

	var id ID
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		e := &r.entries[idx]
		e.gen++
		e.parent, e.key, e.live = parent, key, true
		id = ID{index: idx, gen: e.gen}
	} else {
		r.entries = append(r.entries, entry{parent: parent, key: key, live: true})
		id = ID{index: uint32(len(r.entries) - 1)}
	}
	r.byKey[ik] = id
	return id
}

// Child is shorthand for Intern(parent, Int(n)).
func (r *Registry) Child(parent ID, n int) ID {
	return r.Intern(parent, Int(int64(n)))
}

// Live reports whether id still refers to an identity.
func (r *Registry) Live(id ID) bool {
	if int(id.index) >= len(r.entries) {
		return false
	}
	e := r.entries[id.index]
	return e.live && e.gen == id.gen
}

// Lookup returns the parent and key of id. It fails for stale or unknown IDs.
func (r *Registry) Lookup(id ID) (parent ID, key Key, ok bool) {
	if !r.Live(id) || id.IsRoot() {
		return ID{}, Key{}, false
	}
	e := r.entries[id.index]
	return e.parent, e.key, true
}

// Parent returns the parent of id, failing for the root and for stale IDs.
func (r *Registry) Parent(id ID) (ID, bool) {
	p, _, ok := r.Lookup(id)
	return p, ok
}

// Release frees id and every live identity below it. Later lookups through any of
// the released IDs fail.
func (r *Registry) Release(id ID) {
	if id.IsRoot() || !r.Live(id) {
		return
	}
	for idx := range r.entries {
		child := ID{index: uint32(idx), gen: r.entries[idx].gen}
		if r.entries[idx].live && r.entries[idx].parent == id {
			r.Release(child)
		}
	}
	e := &r.entries[id.index]
	delete(r.byKey, internKey{parent: e.parent, key: e.key})
	e.live = false
	e.key = Key{}
	r.free = append(r.free, id.index)
}

// Len returns the number of live identities, the root included.
func (r *Registry) Len() int {
	return len(r.entries) - len(r.free)
}

// Chain returns the IDs from id up to, but excluding, the root. It returns nil when
// id is stale.
func (r *Registry) Chain(id ID) []ID {
	var chain []ID
	for !id.IsRoot() {
		p, ok := r.Parent(id)
		if !ok {
			return nil
		}
		chain = append(chain, id)
		id = p
	}
	return chain
}

// Path renders id as a slash separated list of keys from the root, e.g. "/app/3".
func (r *Registry) Path(id ID) string {
	chain := r.Chain(id)
	if chain == nil {
		if id.IsRoot() {
			return "/"
		}
		return "<stale " + id.String() + ">"
	}
	var b strings.Builder
	for i := len(chain) - 1; i >= 0; i-- {
		_, k, _ := r.Lookup(chain[i])
		b.WriteByte('/')
		b.WriteString(k.String())
	}
	return b.String()
}
