// Package unit provides the coordinate model used by the layout engine.
//
// Three kinds of values exist:
//   - absolute pixels (AbsPoint, AbsDim, AbsRect)
//   - fractions of a parent dimension (RelPoint, RelDim, RelRect)
//   - device independent points, which only become pixels once a DPI is known
//
// UPoint and URect combine an absolute and a relative component. DPoint, DRect and
// DValue additionally carry a device independent component so author intent such as
// "8dp" survives DPI changes. UnsizedAxis marks an axis whose size has to be derived
// from content.
package unit

import "math"

// UnsizedAxis is the reserved sentinel stored in the relative bottom-right component
// of a URect or DRect to mark an axis as unsized. It is the largest finite float32,
// so "unsized" stays distinguishable from a true +Inf, which is always a caller bug.
const UnsizedAxis float32 = math.MaxFloat32

// Inf is positive infinity as a float32. Unbounded probe rects use it for their
// bottom-right corner.
var Inf = float32(math.Inf(1))

// IsUnbounded reports whether v is the unsized sentinel or beyond it.
func IsUnbounded(v float32) bool {
	return v >= UnsizedAxis
}

// IsInf reports whether v is positive or negative infinity.
func IsInf(v float32) bool {
	return math.IsInf(float64(v), 0)
}

// IsNaN reports whether v is not a number.
func IsNaN(v float32) bool {
	return v != v
}

// scale multiplies a relative component by a parent length. A zero relative
// component contributes nothing regardless of the parent, including an infinite one,
// so absolute-only values resolve identically everywhere.
func scale(rel, length float32) float32 {
	if rel == 0 {
		return 0
	}
	return rel * length
}

// Axis selects the horizontal or vertical axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// ============================================================================
// Absolute values
// ============================================================================

// AbsPoint is a point in absolute pixels.
type AbsPoint struct {
	X, Y float32
}

// Pt creates an AbsPoint.
func Pt(x, y float32) AbsPoint {
	return AbsPoint{X: x, Y: y}
}

func (p AbsPoint) Add(o AbsPoint) AbsPoint { return AbsPoint{p.X + o.X, p.Y + o.Y} }
func (p AbsPoint) Sub(o AbsPoint) AbsPoint { return AbsPoint{p.X - o.X, p.Y - o.Y} }

// Max returns the component-wise maximum.
func (p AbsPoint) Max(o AbsPoint) AbsPoint {
	return AbsPoint{max(p.X, o.X), max(p.Y, o.Y)}
}

// Min returns the component-wise minimum.
func (p AbsPoint) Min(o AbsPoint) AbsPoint {
	return AbsPoint{min(p.X, o.X), min(p.Y, o.Y)}
}

// Get returns the component on the given axis.
func (p AbsPoint) Get(a Axis) float32 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// With returns a copy of p with the component on axis a replaced.
func (p AbsPoint) With(a Axis, v float32) AbsPoint {
	if a == AxisX {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}

// Swap exchanges X and Y. Direction agnostic code stores (main, aux) in an AbsPoint
// and swaps when the main axis is vertical.
func (p AbsPoint) Swap() AbsPoint {
	return AbsPoint{p.Y, p.X}
}

// Dim converts the point to a dimension.
func (p AbsPoint) Dim() AbsDim {
	return AbsDim{Width: p.X, Height: p.Y}
}

// AbsDim is a width and height in absolute pixels.
type AbsDim struct {
	Width, Height float32
}

// Dim creates an AbsDim.
func Dim(w, h float32) AbsDim {
	return AbsDim{Width: w, Height: h}
}

// Point converts the dimension to a point.
func (d AbsDim) Point() AbsPoint {
	return AbsPoint{d.Width, d.Height}
}

// Get returns the length on the given axis.
func (d AbsDim) Get(a Axis) float32 {
	if a == AxisX {
		return d.Width
	}
	return d.Height
}

// With returns a copy of d with the length on axis a replaced.
func (d AbsDim) With(a Axis, v float32) AbsDim {
	if a == AxisX {
		d.Width = v
	} else {
		d.Height = v
	}
	return d
}

// AbsRect is a rectangle in absolute pixels. Outside of unsized computations
// BottomRight is never less than TopLeft.
type AbsRect struct {
	TopLeft, BottomRight AbsPoint
}

// Rect creates an AbsRect from its edges.
func Rect(left, top, right, bottom float32) AbsRect {
	return AbsRect{TopLeft: AbsPoint{left, top}, BottomRight: AbsPoint{right, bottom}}
}

// RectAt creates an AbsRect from a top-left corner and a dimension.
func RectAt(p AbsPoint, d AbsDim) AbsRect {
	return AbsRect{TopLeft: p, BottomRight: AbsPoint{p.X + d.Width, p.Y + d.Height}}
}

// Unbounded returns an origin-anchored rect extending to +Inf on both axes.
func Unbounded() AbsRect {
	return AbsRect{BottomRight: AbsPoint{Inf, Inf}}
}

func (r AbsRect) Width() float32  { return r.BottomRight.X - r.TopLeft.X }
func (r AbsRect) Height() float32 { return r.BottomRight.Y - r.TopLeft.Y }

// Dim returns the rect dimension.
func (r AbsRect) Dim() AbsDim {
	return AbsDim{r.Width(), r.Height()}
}

// Unsized reports whether the rect is unbounded on the given axis.
func (r AbsRect) Unsized(a Axis) bool {
	return IsUnbounded(r.BottomRight.Get(a))
}

// Neutralize collapses every unbounded axis to zero size at its top-left edge.
func (r AbsRect) Neutralize() AbsRect {
	if IsUnbounded(r.BottomRight.X) {
		r.BottomRight.X = r.TopLeft.X
	}
	if IsUnbounded(r.BottomRight.Y) {
		r.BottomRight.Y = r.TopLeft.Y
	}
	return r
}

// Translate moves the rect by p.
func (r AbsRect) Translate(p AbsPoint) AbsRect {
	return AbsRect{r.TopLeft.Add(p), r.BottomRight.Add(p)}
}

// Inset shrinks the rect by padding. Padding.TopLeft holds the left and top amounts,
// Padding.BottomRight the right and bottom amounts.
func (r AbsRect) Inset(padding AbsRect) AbsRect {
	return AbsRect{r.TopLeft.Add(padding.TopLeft), r.BottomRight.Sub(padding.BottomRight)}
}

// Contains reports whether p lies inside the rect. Edges are inclusive.
func (r AbsRect) Contains(p AbsPoint) bool {
	return p.X >= r.TopLeft.X && p.X <= r.BottomRight.X &&
		p.Y >= r.TopLeft.Y && p.Y <= r.BottomRight.Y
}

// ContainsRect reports whether o lies completely inside r.
func (r AbsRect) ContainsRect(o AbsRect) bool {
	return o.TopLeft.X >= r.TopLeft.X && o.TopLeft.Y >= r.TopLeft.Y &&
		o.BottomRight.X <= r.BottomRight.X && o.BottomRight.Y <= r.BottomRight.Y
}

// Intersects reports whether the rects overlap. Touching edges do not overlap.
func (r AbsRect) Intersects(o AbsRect) bool {
	return r.TopLeft.X < o.BottomRight.X && o.TopLeft.X < r.BottomRight.X &&
		r.TopLeft.Y < o.BottomRight.Y && o.TopLeft.Y < r.BottomRight.Y
}

// Union returns the smallest rect containing both rects.
func (r AbsRect) Union(o AbsRect) AbsRect {
	return AbsRect{r.TopLeft.Min(o.TopLeft), r.BottomRight.Max(o.BottomRight)}
}

// Area returns width*height, or 0 for degenerate rects.
func (r AbsRect) Area() float32 {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// ============================================================================
// Relative values
// ============================================================================

// RelPoint is a point expressed as fractions of a parent dimension.
type RelPoint struct {
	X, Y float32
}

// Get returns the component on the given axis.
func (p RelPoint) Get(a Axis) float32 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// With returns a copy of p with the component on axis a replaced.
func (p RelPoint) With(a Axis, v float32) RelPoint {
	if a == AxisX {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}

// Resolve multiplies the fractions by a parent dimension.
func (p RelPoint) Resolve(d AbsDim) AbsPoint {
	return AbsPoint{scale(p.X, d.Width), scale(p.Y, d.Height)}
}

// RelDim is a width and height expressed as fractions of a parent dimension.
type RelDim struct {
	Width, Height float32
}

// RelRect is a rectangle expressed as fractions of a parent dimension.
type RelRect struct {
	TopLeft, BottomRight RelPoint
}

// ============================================================================
// Unified values
// ============================================================================

// UPoint is an absolute offset plus a relative fraction of a parent dimension.
type UPoint struct {
	Abs AbsPoint
	Rel RelPoint
}

// Resolve applies the point to a parent dimension.
func (u UPoint) Resolve(d AbsDim) AbsPoint {
	return u.Abs.Add(u.Rel.Resolve(d))
}

// URect is a pair of unified points. Setting Rel.BottomRight on an axis to
// UnsizedAxis marks that axis as unsized.
type URect struct {
	Abs AbsRect
	Rel RelRect
}

// Unsized reports whether the rect is unsized on the given axis.
func (u URect) Unsized(a Axis) bool {
	return u.Rel.BottomRight.Get(a) == UnsizedAxis
}

// AnyUnsized reports whether either axis is unsized.
func (u URect) AnyUnsized() bool {
	return u.Unsized(AxisX) || u.Unsized(AxisY)
}

// Collapse replaces an unsized axis by a zero-length one at the top-left edge.
func (u URect) Collapse(a Axis) URect {
	u.Rel.BottomRight = u.Rel.BottomRight.With(a, u.Rel.TopLeft.Get(a))
	u.Abs.BottomRight = u.Abs.BottomRight.With(a, u.Abs.TopLeft.Get(a))
	return u
}

// SizeTo turns an unsized axis into a sized one of the given length. The bottom-right
// edge copies the top-left relative anchor so both edges move together, and the
// length is added to the absolute top-left offset.
func (u URect) SizeTo(a Axis, length float32) URect {
	u.Rel.BottomRight = u.Rel.BottomRight.With(a, u.Rel.TopLeft.Get(a))
	u.Abs.BottomRight = u.Abs.BottomRight.With(a, u.Abs.TopLeft.Get(a)+length)
	return u
}

// Resolve applies the rect to a parent rect. Both corners are offset by the parent
// top-left; relative components scale with the parent dimension. Unsized axes must be
// collapsed or sized before calling Resolve.
func (u URect) Resolve(parent AbsRect) AbsRect {
	d := parent.Dim()
	return AbsRect{
		TopLeft:     parent.TopLeft.Add(u.Abs.TopLeft).Add(u.Rel.TopLeft.Resolve(d)),
		BottomRight: parent.TopLeft.Add(u.Abs.BottomRight).Add(u.Rel.BottomRight.Resolve(d)),
	}
}

// ResolveEdges resolves the rect as a set of edge insets (padding or margin) against
// a dimension. The result uses AbsRect.Inset conventions.
func (u URect) ResolveEdges(d AbsDim) AbsRect {
	return AbsRect{
		TopLeft:     u.Abs.TopLeft.Add(u.Rel.TopLeft.Resolve(d)),
		BottomRight: u.Abs.BottomRight.Add(u.Rel.BottomRight.Resolve(d)),
	}
}
