package layout

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"github.com/agiangrant/stagelayout/unit"
)

// Validate reports geometry Stage would panic on or silently mishandle: NaN values,
// infinite flex bases, negative grow or shrink factors, grid cells outside their
// grid, payloads that do not match the node kind, and leaves with children. Every
// problem is reported, each prefixed with the index path of the offending node.
//
// Stage itself does not sanitize input; callers accepting geometry from outside the
// program should validate first.
func Validate(n *Node) error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	return validate(n, "root", nil, nil)
}

func validate(n *Node, path string, parent *Node, err error) error {
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%s (%s): %s", path, n.Kind, fmt.Sprintf(format, args...)))
	}

	if n.Kind > KindList {
		fail("unknown kind %d", uint8(n.Kind))
	}
	if n.Flex != nil && n.Kind != KindFlex {
		fail("flex properties on a non-flex node")
	}
	if n.Grid != nil && n.Kind != KindGrid {
		fail("grid properties on a non-grid node")
	}
	if n.List != nil && n.Kind != KindList {
		fail("list properties on a non-list node")
	}
	if n.Kind == KindLeaf && len(n.Children) > 0 {
		fail("leaf with %d children", len(n.Children))
	}

	if nanRect(n.Area) {
		fail("area contains NaN")
	}
	if nanRect(n.Padding) {
		fail("padding contains NaN")
	}
	if nanRect(n.Margin) {
		fail("margin contains NaN")
	}
	if nanPoint(n.Anchor.Px) || nanPoint(n.Anchor.Dp) || unit.IsNaN(n.Anchor.Rel.X) || unit.IsNaN(n.Anchor.Rel.Y) {
		fail("anchor contains NaN")
	}
	if n.Limits != nil && (nanDim(n.Limits.Min.Px) || nanDim(n.Limits.Min.Dp) || nanDim(n.Limits.Max.Px) || nanDim(n.Limits.Max.Dp)) {
		fail("limits contain NaN")
	}

	if parent != nil && parent.Kind == KindFlex {
		if b := n.Item.Basis; b != nil && nanValue(*b) {
			fail("flex basis is NaN")
		} else if b != nil && (unit.IsInf(b.Px) || unit.IsInf(b.Dp) || unit.IsInf(b.Rel)) {
			fail("flex basis is infinite")
		}
		if !(n.Item.Grow >= 0) {
			fail("flex grow %v is negative", n.Item.Grow)
		}
		if !(n.Item.Shrink >= 0) {
			fail("flex shrink %v is negative", n.Item.Shrink)
		}
	}

	if n.Kind == KindFlex && n.Flex != nil {
		for i, o := range n.Flex.Obstacles {
			if nanRect(o) {
				fail("obstacle %d contains NaN", i)
			}
		}
	}

	if n.Kind == KindGrid {
		var g Grid
		if n.Grid != nil {
			g = *n.Grid
		}
		for i, t := range g.Rows {
			if nanValue(t) {
				fail("row track %d is NaN", i)
			}
		}
		for i, t := range g.Columns {
			if nanValue(t) {
				fail("column track %d is NaN", i)
			}
		}
		for i, c := range n.Children {
			cell := c.Cell
			if cell.RowSpan < 0 || cell.ColSpan < 0 {
				fail("child %d has a negative span", i)
				continue
			}
			rs, cs := cell.spans()
			if cell.Row < 0 || cell.Column < 0 || cell.Row+rs > len(g.Rows) || cell.Column+cs > len(g.Columns) {
				fail("child %d occupies rows [%d,%d) columns [%d,%d) of a %dx%d grid",
					i, cell.Row, cell.Row+rs, cell.Column, cell.Column+cs, len(g.Rows), len(g.Columns))
			}
		}
	}

	for i, c := range n.Children {
		if c == nil {
			err = multierr.Append(err, fmt.Errorf("%s/%d: nil child", path, i))
			continue
		}
		err = validate(c, path+"/"+strconv.Itoa(i), n, err)
	}
	return err
}

func nanValue(v unit.DValue) bool {
	return unit.IsNaN(v.Px) || unit.IsNaN(v.Dp) || unit.IsNaN(v.Rel)
}

func nanPoint(p unit.AbsPoint) bool {
	return unit.IsNaN(p.X) || unit.IsNaN(p.Y)
}

func nanDim(d unit.AbsDim) bool {
	return unit.IsNaN(d.Width) || unit.IsNaN(d.Height)
}

func nanRect(r unit.DRect) bool {
	return nanPoint(r.Px.TopLeft) || nanPoint(r.Px.BottomRight) ||
		nanPoint(r.Dp.TopLeft) || nanPoint(r.Dp.BottomRight) ||
		unit.IsNaN(r.Rel.TopLeft.X) || unit.IsNaN(r.Rel.TopLeft.Y) ||
		unit.IsNaN(r.Rel.BottomRight.X) || unit.IsNaN(r.Rel.BottomRight.Y)
}
