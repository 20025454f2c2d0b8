package layout

import (
	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout/unit"
)

// ============================================================================
// Line Breaking
// ============================================================================
//
// Lines are filled greedily. Obstacles are rectangles in logical (main, aux)
// coordinates; an item whose margin box would overlap one is moved past the
// obstacle's far main edge on the same line. Because the aux position of a line
// depends on how lines are distributed, which in turn depends on how many lines
// there are, wrapFlex repeats the break until the result stops changing.

// breakLines assigns items to lines. total is the main length of a line. Line k
// starts on the aux axis at auxStart plus the sizes of lines before it plus k*auxGap.
// A line always takes at least one item, even if it overflows. When an obstacle
// blocks the whole main extent of a line, that item is therefore placed past the
// far edge of the obstacle, outside the container, instead of moving to a clear
// line further along the aux axis.
func breakLines(items []flexItem, total float32, obstacles []unit.AbsRect, auxStart, auxGap float32) []flexLine {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].skip, items[i].skipped = 0, false
	}
	var (
		lines     []flexLine
		line      flexLine
		cursor    float32
		prevEnd   float32
		count     int
		afterSkip bool
	)
	lineAux := auxStart
	for i := 0; i < len(items); {
		it := &items[i]
		lead := it.mainStart
		if count > 0 && !afterSkip {
			lead = max(prevEnd, lead)
		}
		end := cursor + lead + it.basis

		if ob, ok := firstObstacle(obstacles, cursor, end+it.mainEnd, lineAux, lineAux+it.outerAux()); ok {
			cursor, prevEnd, afterSkip = ob.BottomRight.X, 0, true
			it.skip, it.skipped = cursor, true
			continue
		}

		if count > 0 && end+it.mainEnd > total {
			line.end = i
			line.used = cursor + prevEnd
			lines = append(lines, line)
			lineAux += line.aux + auxGap
			line = flexLine{start: i}
			cursor, prevEnd, count, afterSkip = 0, 0, 0, false
			it.skip, it.skipped = 0, false
			continue
		}

		cursor, prevEnd = end, it.mainEnd
		line.aux = max(line.aux, it.outerAux())
		count++
		afterSkip = false
		i++
	}
	line.end = len(items)
	line.used = cursor + prevEnd
	return append(lines, line)
}

// firstObstacle returns the obstacle with the smallest main start that overlaps the
// main range [from, to) and the aux range [auxFrom, auxTo).
func firstObstacle(obstacles []unit.AbsRect, from, to, auxFrom, auxTo float32) (unit.AbsRect, bool) {
	var (
		best  unit.AbsRect
		found bool
	)
	for _, o := range obstacles {
		if o.TopLeft.X >= to || o.BottomRight.X <= from {
			continue
		}
		if o.TopLeft.Y >= auxTo || o.BottomRight.Y <= auxFrom {
			continue
		}
		if !found || o.TopLeft.X < best.TopLeft.X {
			best, found = o, true
		}
	}
	return best, found
}

// wrapFlex breaks items into lines inside a main length of total and an aux length
// of auxAvail. Without obstacles, or with Align at start, a single pass is exact.
// Otherwise the line positions produced by Align are fed back into the break until
// the number of lines and their total aux size stop changing.
func wrapFlex(items []flexItem, total, auxAvail float32, obstacles []unit.AbsRect, align Justify, env *Env) []flexLine {
	lines := breakLines(items, total, obstacles, 0, 0)
	if align == JustifyStart || len(obstacles) == 0 {
		return lines
	}

	eps := env.epsilon()
	for pass := 1; ; pass++ {
		used := sumLineAux(lines)
		outer, gap := distribute(align, auxAvail-used, len(lines))
		next := breakLines(items, total, obstacles, outer, gap)
		delta := sumLineAux(next) - used
		converged := len(next) == len(lines) && delta <= eps && delta >= -eps
		lines = next
		if converged {
			env.debug("flex wrap converged", func() []zap.Field {
				return []zap.Field{zap.Int("passes", pass), zap.Int("lines", len(lines))}
			})
			return lines
		}
		if env != nil && env.MaxWrapPasses > 0 && pass >= env.MaxWrapPasses {
			env.logger().Warn("flex wrap did not converge",
				zap.Int("passes", pass),
				zap.Int("lines", len(lines)),
			)
			return lines
		}
	}
}

func sumLineAux(lines []flexLine) float32 {
	var s float32
	for _, l := range lines {
		s += l.aux
	}
	return s
}

// logicalObstacles resolves the obstacles against the inner dimension and maps them
// into logical coordinates: X holds the main axis and Y the aux axis, with the main
// axis mirrored for reversed directions.
func logicalObstacles(props *Flex, dpi float32, inner unit.AbsDim) []unit.AbsRect {
	if len(props.Obstacles) == 0 {
		return nil
	}
	mainAx, auxAx := props.Direction.axes()
	reversed := props.Direction.reversed()
	space := unit.RectAt(unit.AbsPoint{}, bounded(inner))
	total := inner.Get(mainAx)

	out := make([]unit.AbsRect, 0, len(props.Obstacles))
	for _, o := range props.Obstacles {
		r := o.Resolve(dpi).Resolve(space)
		m0, m1 := r.TopLeft.Get(mainAx), r.BottomRight.Get(mainAx)
		if reversed {
			m0, m1 = total-m1, total-m0
		}
		out = append(out, unit.Rect(m0, r.TopLeft.Get(auxAx), m1, r.BottomRight.Get(auxAx)))
	}
	return out
}
