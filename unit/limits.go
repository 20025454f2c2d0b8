package unit

var negInf = -Inf

// AbsLimits clamps a dimension between Min and Max in absolute pixels.
type AbsLimits struct {
	Min, Max AbsDim
}

// NoLimits returns limits that clamp nothing. It is the identity of Add.
func NoLimits() AbsLimits {
	return AbsLimits{
		Min: AbsDim{negInf, negInf},
		Max: AbsDim{Inf, Inf},
	}
}

// Limits creates AbsLimits from explicit bounds.
func Limits(minW, minH, maxW, maxH float32) AbsLimits {
	return AbsLimits{Min: AbsDim{minW, minH}, Max: AbsDim{maxW, maxH}}
}

// Add composes two limits: the larger minimum and the smaller maximum win.
// Composition is commutative and associative, so outer+own equals own+outer.
func (l AbsLimits) Add(o AbsLimits) AbsLimits {
	return AbsLimits{
		Min: AbsDim{max(l.Min.Width, o.Min.Width), max(l.Min.Height, o.Min.Height)},
		Max: AbsDim{min(l.Max.Width, o.Max.Width), min(l.Max.Height, o.Max.Height)},
	}
}

// Clamp clamps d into the limits. When min exceeds max the minimum wins.
func (l AbsLimits) Clamp(d AbsDim) AbsDim {
	return AbsDim{
		Width:  clamp(d.Width, l.Min.Width, l.Max.Width),
		Height: clamp(d.Height, l.Min.Height, l.Max.Height),
	}
}

// ClampAxis clamps a single length on the given axis.
func (l AbsLimits) ClampAxis(a Axis, v float32) float32 {
	return clamp(v, l.Min.Get(a), l.Max.Get(a))
}

// ToRel converts the limits into fractions of a parent dimension. Infinite bounds
// stay infinite.
func (l AbsLimits) ToRel(parent AbsDim) RelLimits {
	div := func(v, p float32) float32 {
		if IsInf(v) || p == 0 {
			return v
		}
		return v / p
	}
	return RelLimits{
		Min: RelDim{div(l.Min.Width, parent.Width), div(l.Min.Height, parent.Height)},
		Max: RelDim{div(l.Max.Width, parent.Width), div(l.Max.Height, parent.Height)},
	}
}

func clamp(v, lo, hi float32) float32 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// RelLimits are limits expressed as fractions of a parent dimension.
type RelLimits struct {
	Min, Max RelDim
}

// NoRelLimits returns relative limits that clamp nothing.
func NoRelLimits() RelLimits {
	return RelLimits{
		Min: RelDim{negInf, negInf},
		Max: RelDim{Inf, Inf},
	}
}

// Resolve multiplies the limits by a parent dimension. An unbounded parent axis
// cannot constrain anything, so that axis resolves to no limit at all.
func (r RelLimits) Resolve(parent AbsDim) AbsLimits {
	out := NoLimits()
	if !IsUnbounded(parent.Width) {
		out.Min.Width = relBound(r.Min.Width, parent.Width)
		out.Max.Width = relBound(r.Max.Width, parent.Width)
	}
	if !IsUnbounded(parent.Height) {
		out.Min.Height = relBound(r.Min.Height, parent.Height)
		out.Max.Height = relBound(r.Max.Height, parent.Height)
	}
	return out
}

func relBound(rel, length float32) float32 {
	if IsInf(rel) {
		return rel
	}
	return scale(rel, length)
}

// DDim is a dimension with pixel and device independent components.
type DDim struct {
	Px AbsDim
	Dp AbsDim
}

// Resolve converts the dimension into pixels for the given DPI.
func (d DDim) Resolve(dpi float32) AbsDim {
	return AbsDim{d.Px.Width + d.Dp.Width*dpi, d.Px.Height + d.Dp.Height*dpi}
}

// DLimits are limits with pixel and device independent components. Use NoDLimits
// as the starting point; the zero value clamps everything to zero.
type DLimits struct {
	Min, Max DDim
}

// NoDLimits returns DLimits that clamp nothing.
func NoDLimits() DLimits {
	return DLimits{
		Min: DDim{Px: AbsDim{negInf, negInf}},
		Max: DDim{Px: AbsDim{Inf, Inf}},
	}
}

// Resolve converts the limits into pixels for the given DPI.
func (l DLimits) Resolve(dpi float32) AbsLimits {
	return AbsLimits{Min: l.Min.Resolve(dpi), Max: l.Max.Resolve(dpi)}
}

// MinPx returns a copy with the pixel minimum set.
func (l DLimits) MinPx(w, h float32) DLimits {
	l.Min.Px = AbsDim{w, h}
	return l
}

// MaxPx returns a copy with the pixel maximum set.
func (l DLimits) MaxPx(w, h float32) DLimits {
	l.Max.Px = AbsDim{w, h}
	return l
}
