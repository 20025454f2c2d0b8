package layout

import (
	"fmt"

	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// Kind selects the layout policy of a node. The set is closed: Stage dispatches on
// it and panics on anything else.
type Kind uint8

const (
	// KindLeaf is a terminal node. It sizes itself from its area alone.
	KindLeaf Kind = iota

	// KindFixed positions every child independently from the child's own area and
	// anchor.
	KindFixed

	// KindFlex flows children along a main axis with grow, shrink, wrapping,
	// obstacle avoidance and justify/align distribution.
	KindFlex

	// KindGrid places children into explicit row and column tracks.
	KindGrid

	// KindList stacks children along one axis and wraps on overflow.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindFixed:
		return "fixed"
	case KindFlex:
		return "flex"
	case KindGrid:
		return "grid"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindLeaf; k <= KindList; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown layout kind %q", s)
}

// Direction is the flow direction of flex and list children.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case TopToBottom:
		return "ttb"
	case BottomToTop:
		return "btt"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	for d := LeftToRight; d <= BottomToTop; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// axes returns the main and aux axis of the direction.
func (d Direction) axes() (main, aux unit.Axis) {
	if d == TopToBottom || d == BottomToTop {
		return unit.AxisY, unit.AxisX
	}
	return unit.AxisX, unit.AxisY
}

func (d Direction) reversed() bool {
	return d == RightToLeft || d == BottomToTop
}

// Justify distributes leftover space between items. Flex uses it on the main axis
// within a line (Flex.Justify) and on the aux axis across lines (Flex.Align).
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

var justifyNames = [...]string{"start", "center", "end", "space-between", "space-around", "space-evenly"}

func (j Justify) String() string {
	if int(j) < len(justifyNames) {
		return justifyNames[j]
	}
	return fmt.Sprintf("justify(%d)", uint8(j))
}

// ParseJustify is the inverse of Justify.String.
func ParseJustify(s string) (Justify, error) {
	for i, name := range justifyNames {
		if name == s {
			return Justify(i), nil
		}
	}
	return 0, fmt.Errorf("unknown justify %q", s)
}

// ItemAlign positions a flex item on the aux axis inside its line.
type ItemAlign uint8

const (
	AlignStart ItemAlign = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

var itemAlignNames = [...]string{"start", "center", "end", "stretch"}

func (a ItemAlign) String() string {
	if int(a) < len(itemAlignNames) {
		return itemAlignNames[a]
	}
	return fmt.Sprintf("align(%d)", uint8(a))
}

// ParseItemAlign is the inverse of ItemAlign.String.
func ParseItemAlign(s string) (ItemAlign, error) {
	for i, name := range itemAlignNames {
		if name == s {
			return ItemAlign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown item alignment %q", s)
}

// Flex configures a KindFlex node.
type Flex struct {
	Direction Direction
	Wrap      bool
	// Justify distributes leftover main-axis space within each line.
	Justify Justify
	// Align distributes leftover aux-axis space across lines.
	Align Justify
	// Items aligns each item inside its line.
	Items ItemAlign
	// Obstacles are rectangles, relative to the inner area, that wrapped content
	// flows around.
	Obstacles []unit.DRect
}

// Grid configures a KindGrid node. Tracks set to unit.UnsizedValue are sized from the
// largest child placed in them.
type Grid struct {
	Rows, Columns             []unit.DValue
	RowSpacing, ColumnSpacing unit.DValue
	ReverseRows               bool // rows flow bottom to top
	ReverseColumns            bool // columns flow right to left
}

// List configures a KindList node.
type List struct {
	Direction Direction
	Wrap      bool
}

// FlexItem holds the properties a flex parent reads from a child.
type FlexItem struct {
	// Basis is the main-axis size before grow and shrink. Nil or unit.UnsizedValue
	// measures the child instead.
	Basis  *unit.DValue
	Grow   float32
	Shrink float32
}

// GridCell holds the properties a grid parent reads from a child. Spans of zero
// count as one. Overlapping spans are not detected.
type GridCell struct {
	Row, Column      int
	RowSpan, ColSpan int
}

func (c GridCell) spans() (rows, cols int) {
	return max(c.RowSpan, 1), max(c.ColSpan, 1)
}

// Instruction is an opaque backend instruction. The engine stores and forwards
// instructions without looking at them.
type Instruction any

// RenderFactory builds the instructions of a node once its absolute area is known.
type RenderFactory func(area unit.AbsRect, env *Env) []Instruction

// Node is one element of the declarative layout tree. A tree is treated as
// immutable for the duration of a Stage call.
type Node struct {
	ID   source.ID
	Kind Kind

	// Area is resolved against the rect the parent hands down. Unsized axes are
	// derived from content.
	Area unit.DRect
	// Limits clamps the resolved dimension. Nil means no own limits.
	Limits *unit.DLimits
	// RLimits are limits relative to the parent's inner dimension. Nil means none.
	RLimits *unit.RelLimits
	// Anchor is the point, as a fraction of the node's own final size plus an
	// absolute offset, that lines up with the resolved position.
	Anchor unit.DPoint
	// ZIndex orders hit testing. Descendants are ranked at least as high as the
	// node itself.
	ZIndex int
	// Padding insets the area children are placed in. Ignored by leaves.
	Padding unit.DRect
	// Margin is read by flex and list parents.
	Margin unit.DRect

	Flex *Flex
	Grid *Grid
	List *List

	Item FlexItem
	Cell GridCell

	// Publish writes the node's absolute area into the Env domain during Flatten,
	// before any render factory runs.
	Publish bool
	Render  RenderFactory

	Children []*Node
}

// NewLeaf creates a leaf node.
func NewLeaf(area unit.DRect) *Node {
	return &Node{Kind: KindLeaf, Area: area}
}

// NewFixed creates a fixed node.
func NewFixed(area unit.DRect, children ...*Node) *Node {
	return &Node{Kind: KindFixed, Area: area, Children: children}
}

// NewFlex creates a flex node.
func NewFlex(area unit.DRect, flex Flex, children ...*Node) *Node {
	return &Node{Kind: KindFlex, Area: area, Flex: &flex, Children: children}
}

// NewGrid creates a grid node.
func NewGrid(area unit.DRect, grid Grid, children ...*Node) *Node {
	return &Node{Kind: KindGrid, Area: area, Grid: &grid, Children: children}
}

// NewList creates a list node.
func NewList(area unit.DRect, list List, children ...*Node) *Node {
	return &Node{Kind: KindList, Area: area, List: &list, Children: children}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	c := 1
	for _, child := range n.Children {
		c += child.Count()
	}
	return c
}
