package layout

import (
	"fmt"
	"math"

	"github.com/agiangrant/stagelayout/unit"
)

// flexItem holds intermediate calculation state for a child.
// It lives in a pooled scratch slice for the duration of one stage call.
//
// All lengths are logical: "main" runs along the flow direction and "aux" across
// it. Start margins are on the side the flow starts from, so a right-to-left row
// puts the right margin first.
type flexItem struct {
	node *Node

	basis            float32
	aux              float32
	mainStart        float32
	mainEnd          float32
	auxStart         float32
	auxEnd           float32
	minMain, maxMain float32
	grow, shrink     float32

	// Set by breakLines. skip is the main position an obstacle pushed the cursor to
	// right before this item.
	skip    float32
	skipped bool

	// Set by placeLine. frozen items have reached a limit and take no further share
	// of the free space.
	main   float32
	pos    float32
	frozen bool
}

func (it *flexItem) outerAux() float32 {
	return it.aux + it.auxStart + it.auxEnd
}

// flexLine is a run of items [start, end) sharing one line.
type flexLine struct {
	start, end int
	// used is the main length consumed by the line's items, collapsed margins and
	// obstacle skips.
	used float32
	// aux is the largest outer aux size of the line's items.
	aux float32
}

// logicalPoint maps a (main, aux) pair onto screen axes.
func logicalPoint(main, aux float32, mainAx unit.Axis) unit.AbsPoint {
	p := unit.AbsPoint{X: main, Y: aux}
	if mainAx == unit.AxisY {
		return p.Swap()
	}
	return p
}

func logicalDim(main, aux float32, mainAx unit.Axis) unit.AbsDim {
	return logicalPoint(main, aux, mainAx).Dim()
}

// bounded replaces unbounded lengths with zero.
func bounded(d unit.AbsDim) unit.AbsDim {
	if unit.IsUnbounded(d.Width) {
		d.Width = 0
	}
	if unit.IsUnbounded(d.Height) {
		d.Height = 0
	}
	return d
}

// stageFlex implements the flex policy:
//
//  1. measure every child's basis and aux size against a main-unbounded probe
//  2. fold the items into a single line to size unsized axes of the node itself
//  3. break items into lines, flowing around obstacles when wrapping
//  4. grow or shrink items within each line and justify them on the main axis
//  5. distribute the lines on the aux axis with Align
func stageFlex(n *Node, env *Env, outer unit.AbsRect, limits unit.AbsLimits) *Staged {
	props := n.Flex
	if props == nil {
		props = &Flex{}
	}
	f := prepare(n, env, limits)
	mainAx, auxAx := props.Direction.axes()
	dpi := env.dpi()

	probeInner := f.inner(f.provisional(outer)).Dim()

	items := acquireFlexItems(len(n.Children))
	defer releaseFlexItems(items)
	measureFlex(items, n.Children, env, props, probeInner)

	var content unit.AbsDim
	if f.area.AnyUnsized() {
		usedMain, usedAux := foldLine(items)
		if props.Wrap && !f.area.Unsized(mainAx) && len(items) > 0 {
			obstacles := logicalObstacles(props, dpi, probeInner)
			lines := breakLines(items, probeInner.Get(mainAx), obstacles, 0, 0)
			usedMain, usedAux = 0, 0
			for _, l := range lines {
				usedMain = max(usedMain, l.used)
				usedAux += l.aux
			}
		}
		content = f.padded(logicalDim(usedMain, usedAux, mainAx))
	}

	r := f.final(outer, content)
	inner := f.inner(r)
	innerDim := inner.Dim()
	total := innerDim.Get(mainAx)
	auxAvail := innerDim.Get(auxAx)

	var lines []flexLine
	if props.Wrap {
		obstacles := logicalObstacles(props, dpi, innerDim)
		lines = wrapFlex(items, total, auxAvail, obstacles, props.Align, env)
	} else if len(items) > 0 {
		lines = breakLines(items, unit.Inf, nil, 0, 0)
		// A single line spans the whole aux axis.
		lines[0].aux = max(lines[0].aux, auxAvail)
	}

	lineAux, auxGap := distribute(props.Align, auxAvail-sumLineAux(lines), len(lines))

	var children []*Staged
	if len(items) > 0 {
		children = make([]*Staged, len(items))
	}
	reversed := props.Direction.reversed()
	for _, line := range lines {
		placeLine(items[line.start:line.end], line, total, props.Justify)
		for i := line.start; i < line.end; i++ {
			it := &items[i]
			auxPos, auxSize := alignItem(it, props.Items, lineAux, line.aux)
			mainPos := it.pos
			if reversed {
				mainPos = total - it.pos - it.main
			}
			tl := logicalPoint(mainPos, auxPos, mainAx).Add(inner.TopLeft)
			slot := unit.RectAt(tl, logicalDim(it.main, auxSize, mainAx))
			children[i] = Stage(it.node, env, slot, childLimits(it.node, innerDim))
		}
		lineAux += line.aux + auxGap
	}
	return finish(n, env, f, outer, r, children)
}

// measureFlex stages every child once against a probe that is unbounded on the main
// axis and as large as the known inner size on the aux axis, then caches basis, aux
// size, margins and main-axis limits.
func measureFlex(items []flexItem, children []*Node, env *Env, props *Flex, inner unit.AbsDim) {
	dpi := env.dpi()
	mainAx, auxAx := props.Direction.axes()
	reversed := props.Direction.reversed()
	probe := unit.AbsRect{BottomRight: logicalPoint(unit.Inf, inner.Get(auxAx), mainAx)}
	neutral := bounded(inner)

	for i, child := range children {
		it := &items[i]
		it.node = child

		s := Stage(child, env, probe, childLimits(child, probe.Dim()))
		natural := s.Area.Dim()

		if b := child.Item.Basis; b == nil || b.Unsized() {
			it.basis = natural.Get(mainAx)
		} else {
			it.basis = b.Resolve(dpi, inner.Get(mainAx))
		}
		if math.IsInf(float64(it.basis), 1) {
			panic(fmt.Sprintf("layout: flex item %d of %v resolved to an infinite basis", i, child.ID))
		}

		lim := childLimits(child, inner)
		if child.Limits != nil {
			lim = lim.Add(child.Limits.Resolve(dpi))
		}
		it.minMain, it.maxMain = lim.Min.Get(mainAx), lim.Max.Get(mainAx)
		it.basis = lim.ClampAxis(mainAx, it.basis)
		it.aux = natural.Get(auxAx)

		m := child.Margin.Resolve(dpi).ResolveEdges(neutral)
		it.mainStart, it.mainEnd = m.TopLeft.Get(mainAx), m.BottomRight.Get(mainAx)
		if reversed {
			it.mainStart, it.mainEnd = it.mainEnd, it.mainStart
		}
		it.auxStart, it.auxEnd = m.TopLeft.Get(auxAx), m.BottomRight.Get(auxAx)
		it.grow, it.shrink = child.Item.Grow, child.Item.Shrink
	}
}

// foldLine returns the main length and largest outer aux size of items laid out on
// a single line. Adjacent margins collapse to the larger of the two.
func foldLine(items []flexItem) (used, aux float32) {
	var prevEnd float32
	for i := range items {
		it := &items[i]
		lead := it.mainStart
		if i > 0 {
			lead = max(prevEnd, lead)
		}
		used += lead + it.basis
		prevEnd = it.mainEnd
		aux = max(aux, it.outerAux())
	}
	return used + prevEnd, aux
}

// placeLine grows or shrinks the items of one line to fill total, then assigns
// their main positions according to justify.
func placeLine(items []flexItem, line flexLine, total float32, justify Justify) {
	for i := range items {
		items[i].main = items[i].basis
		items[i].frozen = false
	}
	for resolveFlexible(items, total-line.used) {
		// Another pass over the items that did not hit a limit.
	}

	used := line.used
	for i := range items {
		used += items[i].main - items[i].basis
	}

	cursor, gap := distribute(justify, total-used, len(items))
	var prevEnd float32
	for i := range items {
		it := &items[i]
		lead := it.mainStart
		if i > 0 {
			lead = max(prevEnd, lead) + gap
		}
		start := cursor + lead
		if it.skipped {
			start = max(start, it.skip+it.mainStart)
		}
		it.pos = start
		cursor = start + it.main
		prevEnd = it.mainEnd
	}
}

// resolveFlexible runs one pass of grow or shrink over the items that are not
// frozen yet. free is the space left on the line at basis size. Items the pass
// pushes past a limit are frozen at that limit and resolveFlexible reports true, so
// the caller runs another pass that hands the remaining space to the others. When
// limits are violated in both directions only the side with the larger total
// adjustment freezes.
func resolveFlexible(items []flexItem, free float32) bool {
	var grow, shrink float32
	for i := range items {
		it := &items[i]
		if it.frozen {
			free -= it.main - it.basis
			continue
		}
		grow += it.grow
		shrink += it.shrink
	}

	target := func(it *flexItem) float32 {
		switch {
		case free > 0 && grow > 0:
			return it.basis + free*it.grow/grow
		case free < 0 && shrink > 0:
			return it.basis + free*it.shrink/shrink
		}
		return it.basis
	}

	// adjust > 0 means items were held up by a minimum, adjust < 0 by a maximum.
	var adjust float32
	for i := range items {
		it := &items[i]
		if !it.frozen {
			t := target(it)
			it.main = max(min(t, it.maxMain), it.minMain, 0)
			adjust += it.main - t
		}
	}
	if adjust == 0 {
		return false
	}
	for i := range items {
		it := &items[i]
		if it.frozen {
			continue
		}
		t := target(it)
		if (adjust > 0 && it.main > t) || (adjust < 0 && it.main < t) {
			it.frozen = true
		}
	}
	return true
}

// alignItem returns the aux position and size of an item inside a line that starts
// at lineAux and is lineSize long.
func alignItem(it *flexItem, align ItemAlign, lineAux, lineSize float32) (pos, size float32) {
	switch align {
	case AlignStretch:
		return lineAux + it.auxStart, max(0, lineSize-it.auxStart-it.auxEnd)
	case AlignCenter:
		return lineAux + it.auxStart + (lineSize-it.outerAux())/2, it.aux
	case AlignEnd:
		return lineAux + lineSize - it.auxEnd - it.aux, it.aux
	}
	return lineAux + it.auxStart, it.aux
}

// distribute splits free space among n items into a leading gap and a gap between
// items. Negative free space only shifts center and end; the spacing variants fall
// back to start.
func distribute(j Justify, free float32, n int) (outer, inner float32) {
	if n == 0 {
		return 0, 0
	}
	switch j {
	case JustifyCenter:
		return free / 2, 0
	case JustifyEnd:
		return free, 0
	case JustifySpaceBetween:
		if free <= 0 || n < 2 {
			return 0, 0
		}
		return 0, free / float32(n-1)
	case JustifySpaceAround:
		if free <= 0 {
			return 0, 0
		}
		return free / float32(2*n), free / float32(n)
	case JustifySpaceEvenly:
		if free <= 0 {
			return 0, 0
		}
		g := free / float32(n+1)
		return g, g
	}
	return 0, 0
}
