package layout

import (
	"fmt"

	"github.com/agiangrant/stagelayout/unit"
)

// stageGrid implements the grid policy. Explicit tracks are resolved up front;
// unsized tracks are sized from the largest child placed in them. When a child spans
// several tracks, whatever the known tracks and spacing do not cover is attributed
// to the first unsized track of the span.
func stageGrid(n *Node, env *Env, outer unit.AbsRect, limits unit.AbsLimits) *Staged {
	props := n.Grid
	if props == nil {
		props = &Grid{}
	}
	f := prepare(n, env, limits)
	dpi := env.dpi()
	nr, nc := len(props.Rows), len(props.Columns)

	probeInner := f.inner(f.provisional(outer)).Dim()
	space := bounded(probeInner)
	rowGap := max(0, props.RowSpacing.Resolve(dpi, space.Height))
	colGap := max(0, props.ColumnSpacing.Resolve(dpi, space.Width))

	// One buffer holds sizes, measured maxima and offsets, rows first.
	buf := acquireTracks(3 * (nr + nc))
	defer releaseTracks(buf)
	sizes, measured, offsets := buf[:nr+nc], buf[nr+nc:2*(nr+nc)], buf[2*(nr+nc):]
	rows, cols := sizes[:nr], sizes[nr:]
	rowMax, colMax := measured[:nr], measured[nr:]
	rowOff, colOff := offsets[:nr], offsets[nr:]

	resolveTracks(rows, props.Rows, dpi, probeInner.Height)
	resolveTracks(cols, props.Columns, dpi, probeInner.Width)

	for i, child := range n.Children {
		r0, r1, c0, c1 := cellRange(child, i, nr, nc)
		rowsPending := anyPending(rows[r0:r1])
		colsPending := anyPending(cols[c0:c1])
		if !rowsPending && !colsPending {
			continue
		}
		w, wKnown := spanLength(cols[c0:c1], colGap)
		h, hKnown := spanLength(rows[r0:r1], rowGap)
		if !wKnown {
			w = unit.Inf
		}
		if !hKnown {
			h = unit.Inf
		}
		cell := unit.RectAt(unit.AbsPoint{}, unit.Dim(w, h))
		natural := Stage(child, env, cell, childLimits(child, cell.Dim())).Area.Dim()
		if colsPending {
			foldPending(cols[c0:c1], colMax[c0:c1], natural.Width, colGap)
		}
		if rowsPending {
			foldPending(rows[r0:r1], rowMax[r0:r1], natural.Height, rowGap)
		}
	}

	totalW := settleTracks(cols, colMax, colOff, colGap)
	totalH := settleTracks(rows, rowMax, rowOff, rowGap)

	var content unit.AbsDim
	if f.area.AnyUnsized() {
		content = f.padded(unit.Dim(totalW, totalH))
	}
	r := f.final(outer, content)
	inner := f.inner(r)
	innerDim := inner.Dim()

	var children []*Staged
	if len(n.Children) > 0 {
		children = make([]*Staged, len(n.Children))
	}
	for i, child := range n.Children {
		r0, r1, c0, c1 := cellRange(child, i, nr, nc)
		x := colOff[c0]
		w := colOff[c1-1] + cols[c1-1] - x
		y := rowOff[r0]
		h := rowOff[r1-1] + rows[r1-1] - y
		if props.ReverseColumns {
			x = max(innerDim.Width, totalW) - x - w
		}
		if props.ReverseRows {
			y = max(innerDim.Height, totalH) - y - h
		}
		slot := unit.RectAt(inner.TopLeft.Add(unit.Pt(x, y)), unit.Dim(w, h))
		children[i] = Stage(child, env, slot, childLimits(child, innerDim))
	}
	return finish(n, env, f, outer, r, children)
}

// pendingTrack marks a track whose size comes from its children.
const pendingTrack float32 = -1

func resolveTracks(dst []float32, tracks []unit.DValue, dpi, length float32) {
	for i, t := range tracks {
		if t.Unsized() {
			dst[i] = pendingTrack
			continue
		}
		dst[i] = max(0, t.Resolve(dpi, length))
	}
}

// cellRange returns the half-open row and column ranges a child occupies.
// It panics if the cell lies outside the grid.
func cellRange(child *Node, i, nr, nc int) (r0, r1, c0, c1 int) {
	rs, cs := child.Cell.spans()
	r0, c0 = child.Cell.Row, child.Cell.Column
	r1, c1 = r0+rs, c0+cs
	if r0 < 0 || c0 < 0 || r1 > nr || c1 > nc {
		panic(fmt.Sprintf("layout: grid child %d (%v) occupies rows [%d,%d) columns [%d,%d) of a %dx%d grid",
			i, child.ID, r0, r1, c0, c1, nr, nc))
	}
	return r0, r1, c0, c1
}

func anyPending(tracks []float32) bool {
	for _, t := range tracks {
		if t == pendingTrack {
			return true
		}
	}
	return false
}

// spanLength sums the known tracks of a span plus the spacing between them. known
// is false if any track is pending.
func spanLength(tracks []float32, gap float32) (length float32, known bool) {
	known = true
	for _, t := range tracks {
		if t == pendingTrack {
			known = false
			continue
		}
		length += t
	}
	return length + gap*float32(len(tracks)-1), known
}

// foldPending attributes the part of a measured span length not covered by known
// tracks to the first pending track of the span.
func foldPending(tracks, measured []float32, length, gap float32) {
	rest, _ := spanLength(tracks, gap)
	for k, t := range tracks {
		if t == pendingTrack {
			measured[k] = max(measured[k], length-rest)
			return
		}
	}
}

// settleTracks replaces pending tracks with their measured size, fills in the
// offsets and returns the total extent including spacing.
func settleTracks(tracks, measured, offsets []float32, gap float32) float32 {
	var pos float32
	for i := range tracks {
		if tracks[i] == pendingTrack {
			tracks[i] = measured[i]
		}
		if i > 0 {
			pos += gap
		}
		offsets[i] = pos
		pos += tracks[i]
	}
	return pos
}
