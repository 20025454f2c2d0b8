package layout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout/rtree"
	"github.com/agiangrant/stagelayout/unit"
)

// Stage resolves n against the outer rect and limits its parent hands down and
// returns the staged subtree. outer is in the parent's coordinate space; an axis of
// outer extending to unit.Inf means the parent is itself measuring content and has
// no size to offer on that axis.
//
// Staging is synchronous, single threaded and deterministic. Malformed trees panic.
func Stage(n *Node, env *Env, outer unit.AbsRect, limits unit.AbsLimits) *Staged {
	switch n.Kind {
	case KindLeaf:
		return stageLeaf(n, env, outer, limits)
	case KindFixed:
		return stageFixed(n, env, outer, limits)
	case KindFlex:
		return stageFlex(n, env, outer, limits)
	case KindGrid:
		return stageGrid(n, env, outer, limits)
	case KindList:
		return stageList(n, env, outer, limits)
	}
	panic(fmt.Sprintf("layout: unknown node kind %d", n.Kind))
}

// frame holds the DPI resolved properties of the node being staged.
type frame struct {
	area    unit.URect
	padding unit.URect
	anchor  unit.UPoint
	limits  unit.AbsLimits
}

func prepare(n *Node, env *Env, limits unit.AbsLimits) frame {
	dpi := env.dpi()
	own := unit.NoLimits()
	if n.Limits != nil {
		own = n.Limits.Resolve(dpi)
	}
	return frame{
		area:    n.Area.Resolve(dpi),
		padding: n.Padding.Resolve(dpi),
		anchor:  n.Anchor.Resolve(dpi),
		limits:  limits.Add(own),
	}
}

// provisional resolves the sized axes of the area against outer and clamps them.
// Unsized axes extend to unit.Inf, so the result can seed probe rects for children.
func (f frame) provisional(outer unit.AbsRect) unit.AbsRect {
	area := f.area
	for _, a := range [2]unit.Axis{unit.AxisX, unit.AxisY} {
		if area.Unsized(a) {
			area = area.Collapse(a)
		}
	}
	r := area.Resolve(outer.Neutralize())
	r = unit.RectAt(r.TopLeft, f.limits.Clamp(r.Dim()))
	for _, a := range [2]unit.Axis{unit.AxisX, unit.AxisY} {
		if f.area.Unsized(a) {
			r.BottomRight = r.BottomRight.With(a, unit.Inf)
		}
	}
	return r
}

// final resolves the area against outer, sizing unsized axes to content, and clamps
// the result to the limits. The anchor is not applied yet.
func (f frame) final(outer unit.AbsRect, content unit.AbsDim) unit.AbsRect {
	area := f.area
	for _, a := range [2]unit.Axis{unit.AxisX, unit.AxisY} {
		if area.Unsized(a) {
			area = area.SizeTo(a, content.Get(a))
		}
	}
	r := area.Resolve(outer.Neutralize())
	return unit.RectAt(r.TopLeft, f.limits.Clamp(r.Dim()))
}

// edges resolves the padding against a dimension. Unbounded axes only contribute
// their absolute part.
func (f frame) edges(d unit.AbsDim) unit.AbsRect {
	return f.padding.ResolveEdges(bounded(d))
}

// inner returns the rect children are placed in, in the node's own coordinate space
// (its top-left corner is the origin). Unbounded axes stay unbounded.
func (f frame) inner(r unit.AbsRect) unit.AbsRect {
	d := r.Dim()
	pad := f.edges(d)
	in := unit.AbsRect{
		TopLeft:     pad.TopLeft,
		BottomRight: d.Point().Sub(pad.BottomRight),
	}
	for _, a := range [2]unit.Axis{unit.AxisX, unit.AxisY} {
		if unit.IsUnbounded(d.Get(a)) {
			in.BottomRight = in.BottomRight.With(a, unit.Inf)
		} else if in.BottomRight.Get(a) < in.TopLeft.Get(a) {
			in.BottomRight = in.BottomRight.With(a, in.TopLeft.Get(a))
		}
	}
	return in
}

// padded adds the absolute padding on both sides of each axis to a content size.
func (f frame) padded(content unit.AbsDim) unit.AbsDim {
	pad := f.edges(unit.AbsDim{})
	return unit.AbsDim{
		Width:  content.Width + pad.TopLeft.X + pad.BottomRight.X,
		Height: content.Height + pad.TopLeft.Y + pad.BottomRight.Y,
	}
}

// childLimits resolves a child's relative limits against the parent's inner
// dimension.
func childLimits(child *Node, inner unit.AbsDim) unit.AbsLimits {
	if child.RLimits == nil {
		return unit.NoLimits()
	}
	return child.RLimits.Resolve(inner)
}

// finish applies the anchor and builds the staged result. The anchor is only
// applied on axes where outer is sized; on an unbounded axis the parent is still
// measuring, and offsetting by a fraction of our own size would feed back into that
// measurement.
func finish(n *Node, env *Env, f frame, outer, r unit.AbsRect, children []*Staged) *Staged {
	a := f.anchor.Resolve(r.Dim())
	if outer.Unsized(unit.AxisX) {
		a.X = 0
	}
	if outer.Unsized(unit.AxisY) {
		a.Y = 0
	}
	r = r.Translate(unit.AbsPoint{X: -a.X, Y: -a.Y})

	var index []*rtree.Node
	if len(children) > 0 {
		index = make([]*rtree.Node, len(children))
		for i, c := range children {
			index[i] = c.Index
		}
	}

	env.debug("staged", func() []zap.Field {
		return []zap.Field{
			zap.Stringer("kind", n.Kind),
			zap.Stringer("id", n.ID),
			zap.Float32("x", r.TopLeft.X),
			zap.Float32("y", r.TopLeft.Y),
			zap.Float32("w", r.Width()),
			zap.Float32("h", r.Height()),
			zap.Int("children", len(children)),
		}
	})

	return &Staged{
		Area:     r,
		Render:   n.Render,
		Index:    rtree.New(r, n.ZIndex, index, n.ID),
		ID:       n.ID,
		Kind:     n.Kind,
		Publish:  n.Publish,
		Children: children,
	}
}

// ============================================================================
// Leaf
// ============================================================================

// stageLeaf sizes a terminal node. Unsized axes fall back to zero since there is
// nothing to measure; unbounded outer axes count as zero-sized.
func stageLeaf(n *Node, env *Env, outer unit.AbsRect, limits unit.AbsLimits) *Staged {
	f := prepare(n, env, limits)
	r := f.final(outer, unit.AbsDim{})
	return finish(n, env, f, outer, r, nil)
}
