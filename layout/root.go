package layout

import (
	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout/unit"
)

// Root stages a tree against a window sized rect and caches the result until the
// size changes or the tree is invalidated.
type Root struct {
	Node *Node
	Env  *Env

	dim    unit.AbsDim
	staged *Staged
}

// NewRoot creates a root for n. A nil env uses NewEnv(1).
func NewRoot(n *Node, env *Env) *Root {
	if env == nil {
		env = NewEnv(1)
	}
	return &Root{Node: n, Env: env}
}

// Stage stages the tree against an origin-anchored rect of size dim,
// unconditionally, and caches the result.
func (r *Root) Stage(dim unit.AbsDim) *Staged {
	outer := unit.RectAt(unit.AbsPoint{}, dim)
	r.staged = Stage(r.Node, r.Env, outer, childLimits(r.Node, dim))
	r.dim = dim
	r.Env.debug("root staged", func() []zap.Field {
		return []zap.Field{
			zap.Float32("w", dim.Width),
			zap.Float32("h", dim.Height),
			zap.Int("nodes", r.Node.Count()),
		}
	})
	return r.staged
}

// Layout returns the cached staged tree if it was staged for dim, staging it
// otherwise.
func (r *Root) Layout(dim unit.AbsDim) *Staged {
	if r.staged != nil && r.dim == dim {
		return r.staged
	}
	return r.Stage(dim)
}

// SetNode replaces the tree and drops the cached result.
func (r *Root) SetNode(n *Node) {
	r.Node = n
	r.Invalidate()
}

// Invalidate drops the cached result so the next Layout call restages.
func (r *Root) Invalidate() {
	r.staged = nil
}

// Staged returns the cached result, or nil if the tree has not been staged since
// the last invalidation.
func (r *Root) Staged() *Staged {
	return r.staged
}

// Render flattens the cached result into render instructions. The domain, if any,
// is reset first so stale publications from a previous frame cannot leak in.
func (r *Root) Render() []Instruction {
	if r.staged == nil {
		return nil
	}
	if r.Env.Domain != nil {
		r.Env.Domain.Reset()
	}
	return r.staged.Flatten(r.Env)
}
