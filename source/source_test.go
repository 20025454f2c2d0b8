package source

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestInternIsStable(t *testing.T) {
	r := NewRegistry()
	app := r.Intern(Root, Name("app"))
	a := r.Child(app, 0)
	b := r.Child(app, 1)

	assert.Assert(t, a != b)
	assert.Equal(t, r.Child(app, 0), a)
	assert.Equal(t, r.Intern(Root, Name("app")), app)
	assert.Equal(t, r.Len(), 4)

	p, ok := r.Parent(a)
	assert.Assert(t, ok)
	assert.Equal(t, p, app)
}

func TestKeysOfDifferentKindsDoNotCollide(t *testing.T) {
	r := NewRegistry()
	byInt := r.Intern(Root, Int(1))
	byName := r.Intern(Root, Name("1"))
	byOpaque := r.Intern(Root, Opaque(int64(1)))

	assert.Assert(t, byInt != byName)
	assert.Assert(t, byInt != byOpaque)
	assert.Assert(t, byName != byOpaque)
}

func TestTokenKeysAreUnique(t *testing.T) {
	r := NewRegistry()
	a := r.Intern(Root, Token())
	b := r.Intern(Root, Token())
	assert.Assert(t, a != b)

	_, k, ok := r.Lookup(a)
	assert.Assert(t, ok)
	assert.Equal(t, k.Kind(), KeyToken)
	assert.Equal(t, len(k.String()), 36)
}

func TestReleaseInvalidatesSubtree(t *testing.T) {
	r := NewRegistry()
	panel := r.Intern(Root, Name("panel"))
	row := r.Child(panel, 0)
	cell := r.Child(row, 2)
	other := r.Intern(Root, Name("other"))

	r.Release(panel)

	for _, id := range []ID{panel, row, cell} {
		_, ok := r.Parent(id)
		assert.Assert(t, !ok, "expected %v to be stale", id)
	}
	assert.Assert(t, r.Live(other))

	// Slot reuse must not resurrect the stale IDs.
	again := r.Intern(Root, Name("panel"))
	assert.Assert(t, again != panel)
	assert.Assert(t, !r.Live(panel))
	assert.Equal(t, r.Path(again), "/panel")
}

func TestPathAndChain(t *testing.T) {
	r := NewRegistry()
	app := r.Intern(Root, Name("app"))
	list := r.Intern(app, Name("list"))
	item := r.Child(list, 3)

	assert.Equal(t, r.Path(item), "/app/list/3")
	assert.Equal(t, r.Path(Root), "/")
	chain := r.Chain(item)
	assert.Equal(t, len(chain), 3)
	assert.Equal(t, chain[0], item)
	assert.Equal(t, chain[1], list)
	assert.Equal(t, chain[2], app)

	r.Release(list)
	assert.Assert(t, r.Chain(item) == nil)
}

func TestInternUnderStaleParentPanics(t *testing.T) {
	r := NewRegistry()
	p := r.Intern(Root, Name("p"))
	r.Release(p)

	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	r.Intern(p, Int(0))
}
