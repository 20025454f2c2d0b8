package layout

import (
	"github.com/agiangrant/stagelayout/unit"
)

// stageFixed positions every child independently; the node never distributes space.
//
// An unsized axis is measured first: each child is staged against an
// origin-anchored, unbounded rect and the largest bottom-right corner becomes the
// content size. Children are then staged a second time against the real inner
// rect. If a child's size depends on the resolved parent size, the two passes can
// disagree; no attempt is made to iterate to a fixed point.
func stageFixed(n *Node, env *Env, outer unit.AbsRect, limits unit.AbsLimits) *Staged {
	f := prepare(n, env, limits)

	var content unit.AbsDim
	if f.area.AnyUnsized() {
		probe := unit.Unbounded()
		var extent unit.AbsPoint
		for _, child := range n.Children {
			s := Stage(child, env, probe, unit.NoLimits())
			extent = extent.Max(s.Area.BottomRight)
		}
		content = f.padded(extent.Dim())
	}

	r := f.final(outer, content)
	inner := f.inner(r)

	var children []*Staged
	if len(n.Children) > 0 {
		children = make([]*Staged, len(n.Children))
		for i, child := range n.Children {
			children[i] = Stage(child, env, inner, childLimits(child, inner.Dim()))
		}
	}
	return finish(n, env, f, outer, r, children)
}
