package unit

// DValue is a single length made of pixels, device independent points and a
// fraction of a parent length. Rel set to UnsizedAxis marks the value as unsized.
type DValue struct {
	Px  float32
	Dp  float32
	Rel float32
}

// Px returns a DValue of absolute pixels.
func Px(v float32) DValue { return DValue{Px: v} }

// Dp returns a DValue of device independent points.
func Dp(v float32) DValue { return DValue{Dp: v} }

// Frac returns a DValue relative to the parent length.
func Frac(v float32) DValue { return DValue{Rel: v} }

// UnsizedValue returns a DValue that asks to be derived from content.
func UnsizedValue() DValue { return DValue{Rel: UnsizedAxis} }

// Unsized reports whether the value is unsized.
func (v DValue) Unsized() bool {
	return v.Rel == UnsizedAxis
}

// Abs returns the absolute component for the given DPI.
func (v DValue) Abs(dpi float32) float32 {
	return v.Px + v.Dp*dpi
}

// Resolve returns the length in pixels against a parent length. An unbounded parent
// contributes nothing to the relative component. Calling Resolve on an unsized value
// is a caller bug.
func (v DValue) Resolve(dpi, parent float32) float32 {
	if v.Unsized() {
		panic("unit: Resolve called on an unsized DValue")
	}
	if IsUnbounded(parent) {
		parent = 0
	}
	return v.Abs(dpi) + scale(v.Rel, parent)
}

// DPoint is a point with pixel, device independent and relative components.
type DPoint struct {
	Px  AbsPoint
	Dp  AbsPoint
	Rel RelPoint
}

// Resolve converts the point into a UPoint for the given DPI.
func (p DPoint) Resolve(dpi float32) UPoint {
	return UPoint{
		Abs: AbsPoint{p.Px.X + p.Dp.X*dpi, p.Px.Y + p.Dp.Y*dpi},
		Rel: p.Rel,
	}
}

// RelAnchor returns a DPoint anchored at the fraction (x, y) of the node's own size.
func RelAnchor(x, y float32) DPoint {
	return DPoint{Rel: RelPoint{x, y}}
}

// DRect is a rect with pixel, device independent and relative components.
type DRect struct {
	Px  AbsRect
	Dp  AbsRect
	Rel RelRect
}

// Resolve converts the rect into a URect for the given DPI. The unsized sentinel in
// the relative component survives resolution.
func (r DRect) Resolve(dpi float32) URect {
	return URect{
		Abs: AbsRect{
			TopLeft:     AbsPoint{r.Px.TopLeft.X + r.Dp.TopLeft.X*dpi, r.Px.TopLeft.Y + r.Dp.TopLeft.Y*dpi},
			BottomRight: AbsPoint{r.Px.BottomRight.X + r.Dp.BottomRight.X*dpi, r.Px.BottomRight.Y + r.Dp.BottomRight.Y*dpi},
		},
		Rel: r.Rel,
	}
}

// Fill is a DRect covering the whole parent.
func Fill() DRect {
	return DRect{Rel: RelRect{BottomRight: RelPoint{1, 1}}}
}

// Auto is a DRect anchored at the parent origin and unsized on both axes.
func Auto() DRect {
	return DRect{Rel: RelRect{BottomRight: RelPoint{UnsizedAxis, UnsizedAxis}}}
}

// PxRect is a DRect of absolute pixel edges.
func PxRect(left, top, right, bottom float32) DRect {
	return DRect{Px: Rect(left, top, right, bottom)}
}

// DpRect is a DRect of device independent edges.
func DpRect(left, top, right, bottom float32) DRect {
	return DRect{Dp: Rect(left, top, right, bottom)}
}

// Sized is a DRect at the parent origin with a fixed pixel size.
func Sized(w, h float32) DRect {
	return PxRect(0, 0, w, h)
}

// Edges is a DRect used as uniform insets in pixels.
func Edges(v float32) DRect {
	return PxRect(v, v, v, v)
}

// WithUnsized marks the given axis of r as unsized.
func (r DRect) WithUnsized(a Axis) DRect {
	r.Rel.BottomRight = r.Rel.BottomRight.With(a, UnsizedAxis)
	return r
}
