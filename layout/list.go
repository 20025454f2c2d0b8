package layout

import (
	"github.com/agiangrant/stagelayout/unit"
)

type listItem struct {
	main, aux          float32
	mainStart, mainEnd float32
	auxStart, auxEnd   float32
}

func (it listItem) outerMain() float32 { return it.mainStart + it.main + it.mainEnd }
func (it listItem) outerAux() float32  { return it.auxStart + it.aux + it.auxEnd }

type listLine struct {
	start, end int
	main, aux  float32
}

// stageList stacks children along the main axis at their natural size. With Wrap
// set, a child that would run past the inner main length starts a new line.
//
// On an axis where the list has a size, relative children resolve against the
// inner size, as under a Fixed parent. On an unsized axis they measure 0 and are
// placed in a slot of their natural main size, stretched across the line on the
// aux axis.
func stageList(n *Node, env *Env, outer unit.AbsRect, limits unit.AbsLimits) *Staged {
	props := n.List
	if props == nil {
		props = &List{}
	}
	f := prepare(n, env, limits)
	dpi := env.dpi()
	mainAx, auxAx := props.Direction.axes()
	reversed := props.Direction.reversed()

	// Children measure against the inner size on the axes the list already knows,
	// so relative children resolve as they would under a Fixed parent. Unsized axes
	// stay unbounded.
	probeInner := f.inner(f.provisional(outer)).Dim()
	neutral := bounded(probeInner)
	measure := unit.AbsRect{BottomRight: probeInner.Point()}

	items := make([]listItem, len(n.Children))
	for i, child := range n.Children {
		d := Stage(child, env, measure, childLimits(child, probeInner)).Area.Dim()
		m := child.Margin.Resolve(dpi).ResolveEdges(neutral)
		it := listItem{
			main:      d.Get(mainAx),
			aux:       d.Get(auxAx),
			mainStart: m.TopLeft.Get(mainAx),
			mainEnd:   m.BottomRight.Get(mainAx),
			auxStart:  m.TopLeft.Get(auxAx),
			auxEnd:    m.BottomRight.Get(auxAx),
		}
		if reversed {
			it.mainStart, it.mainEnd = it.mainEnd, it.mainStart
		}
		items[i] = it
	}

	avail := func(d unit.AbsDim) float32 {
		if !props.Wrap {
			return unit.Inf
		}
		return d.Get(mainAx)
	}

	var content unit.AbsDim
	if f.area.AnyUnsized() {
		var usedMain, usedAux float32
		for _, l := range listLines(items, avail(probeInner)) {
			usedMain = max(usedMain, l.main)
			usedAux += l.aux
		}
		content = f.padded(logicalDim(usedMain, usedAux, mainAx))
	}

	r := f.final(outer, content)
	inner := f.inner(r)
	innerDim := inner.Dim()
	total := innerDim.Get(mainAx)

	var children []*Staged
	if len(items) > 0 {
		children = make([]*Staged, len(items))
	}
	var lineAux float32
	for _, l := range listLines(items, avail(innerDim)) {
		var cursor float32
		for i := l.start; i < l.end; i++ {
			it := items[i]
			pos := cursor + it.mainStart
			cursor += it.outerMain()
			if reversed {
				pos = total - pos - it.main
			}
			tl := logicalPoint(pos, lineAux+it.auxStart, mainAx).Add(inner.TopLeft)
			slotMain, slotAux := it.main, max(0, l.aux-it.auxStart-it.auxEnd)
			if !f.area.Unsized(mainAx) {
				slotMain = total
			}
			if !f.area.Unsized(auxAx) {
				slotAux = innerDim.Get(auxAx)
			}
			slot := unit.RectAt(tl, logicalDim(slotMain, slotAux, mainAx))
			children[i] = Stage(n.Children[i], env, slot, childLimits(n.Children[i], innerDim))
		}
		lineAux += l.aux
	}
	return finish(n, env, f, outer, r, children)
}

// listLines breaks items greedily: a line takes items until the next one would run
// past avail. The first item of a line is always taken.
func listLines(items []listItem, avail float32) []listLine {
	if len(items) == 0 {
		return nil
	}
	var lines []listLine
	line := listLine{}
	for i, it := range items {
		m := it.outerMain()
		if i > line.start && line.main+m > avail {
			line.end = i
			lines = append(lines, line)
			line = listLine{start: i}
		}
		line.main += m
		line.aux = max(line.aux, it.outerAux())
	}
	line.end = len(items)
	return append(lines, line)
}
