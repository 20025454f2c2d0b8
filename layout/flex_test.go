package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agiangrant/stagelayout/unit"
)

func boxes(n int, w, h float32) []*Node {
	out := make([]*Node, n)
	for i := range out {
		out[i] = NewLeaf(unit.Sized(w, h))
	}
	return out
}

func growItem(basis, grow, shrink float32) *Node {
	n := NewLeaf(unit.Fill())
	n.Item = FlexItem{Basis: ptr(unit.Px(basis)), Grow: grow, Shrink: shrink}
	return n
}

func TestFlexGrow(t *testing.T) {
	n := NewFlex(unit.Sized(400, 50), Flex{},
		growItem(100, 1, 0),
		growItem(100, 1, 0),
		growItem(100, 1, 0),
	)
	s := stageIn(n, 1000, 1000)

	third := float32(400) / 3
	want := []unit.AbsRect{
		unit.Rect(0, 0, third, 50),
		unit.Rect(third, 0, 2*third, 50),
		unit.Rect(2*third, 0, 400, 50),
	}
	if diff := cmp.Diff(want, childAreas(s), approx); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexGrowWeights(t *testing.T) {
	n := NewFlex(unit.Sized(300, 10), Flex{},
		growItem(50, 1, 0),
		growItem(50, 3, 0),
	)
	s := stageIn(n, 1000, 1000)
	// 200 free: 50 and 150.
	want := []unit.AbsRect{
		unit.Rect(0, 0, 100, 10),
		unit.Rect(100, 0, 300, 10),
	}
	if diff := cmp.Diff(want, childAreas(s), approx); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexShrink(t *testing.T) {
	n := NewFlex(unit.Sized(100, 10), Flex{},
		growItem(80, 0, 1),
		growItem(80, 0, 1),
	)
	s := stageIn(n, 1000, 1000)
	want := []unit.AbsRect{
		unit.Rect(0, 0, 50, 10),
		unit.Rect(50, 0, 100, 10),
	}
	if diff := cmp.Diff(want, childAreas(s), approx); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexGrowRespectsLimits(t *testing.T) {
	capped := growItem(100, 1, 0)
	capped.Limits = ptr(unit.NoDLimits().MaxPx(120, math.MaxFloat32))
	n := NewFlex(unit.Sized(400, 10), Flex{}, capped, growItem(100, 1, 0))
	s := stageIn(n, 1000, 1000)
	// The 80 the capped item gives up goes to the other one.
	want := []unit.AbsRect{
		unit.Rect(0, 0, 120, 10),
		unit.Rect(120, 0, 400, 10),
	}
	if diff := cmp.Diff(want, childAreas(s), approx); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexShrinkRespectsLimits(t *testing.T) {
	floored := growItem(100, 0, 1)
	floored.Limits = ptr(unit.NoDLimits().MinPx(90, 0))
	n := NewFlex(unit.Sized(150, 10), Flex{}, floored, growItem(100, 0, 1))
	s := stageIn(n, 1000, 1000)
	// An even split would give 75 each. The floored item stops at 90 and the
	// other one absorbs the rest.
	want := []unit.AbsRect{
		unit.Rect(0, 0, 90, 10),
		unit.Rect(90, 0, 150, 10),
	}
	if diff := cmp.Diff(want, childAreas(s), approx); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexJustify(t *testing.T) {
	tests := []struct {
		justify Justify
		want    []float32
	}{
		{JustifyStart, []float32{0, 50, 100}},
		{JustifyEnd, []float32{150, 200, 250}},
		{JustifyCenter, []float32{75, 125, 175}},
		{JustifySpaceBetween, []float32{0, 125, 250}},
		{JustifySpaceAround, []float32{25, 125, 225}},
		{JustifySpaceEvenly, []float32{37.5, 125, 212.5}},
	}

	for _, tt := range tests {
		t.Run(tt.justify.String(), func(t *testing.T) {
			n := NewFlex(unit.Sized(300, 50), Flex{Justify: tt.justify}, boxes(3, 50, 20)...)
			s := stageIn(n, 1000, 1000)
			got := make([]float32, len(s.Children))
			for i, c := range s.Children {
				got[i] = c.Area.TopLeft.X
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("x positions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlexItemAlign(t *testing.T) {
	tests := []struct {
		align ItemAlign
		want  unit.AbsRect
	}{
		{AlignStart, unit.Rect(0, 0, 50, 20)},
		{AlignCenter, unit.Rect(0, 15, 50, 35)},
		{AlignEnd, unit.Rect(0, 30, 50, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			n := NewFlex(unit.Sized(300, 50), Flex{Items: tt.align}, boxes(1, 50, 20)...)
			got := stageIn(n, 1000, 1000).Children[0].Area
			if got != tt.want {
				t.Errorf("Area = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("stretch", func(t *testing.T) {
		n := NewFlex(unit.Sized(300, 50), Flex{Items: AlignStretch}, growItem(50, 0, 0))
		got := stageIn(n, 1000, 1000).Children[0].Area
		if want := unit.Rect(0, 0, 50, 50); got != want {
			t.Errorf("Area = %v, want %v", got, want)
		}
	})
}

func TestFlexDirections(t *testing.T) {
	tests := []struct {
		name  string
		flex  Flex
		area  unit.DRect
		wantA unit.AbsRect
		wantB unit.AbsRect
	}{
		{
			name:  "ltr",
			flex:  Flex{Direction: LeftToRight},
			area:  unit.Sized(300, 100),
			wantA: unit.Rect(0, 0, 30, 60),
			wantB: unit.Rect(30, 0, 60, 60),
		},
		{
			name:  "rtl",
			flex:  Flex{Direction: RightToLeft},
			area:  unit.Sized(300, 100),
			wantA: unit.Rect(270, 0, 300, 60),
			wantB: unit.Rect(240, 0, 270, 60),
		},
		{
			name:  "ttb",
			flex:  Flex{Direction: TopToBottom},
			area:  unit.Sized(100, 300),
			wantA: unit.Rect(0, 0, 30, 60),
			wantB: unit.Rect(0, 60, 30, 120),
		},
		{
			name:  "btt",
			flex:  Flex{Direction: BottomToTop},
			area:  unit.Sized(100, 300),
			wantA: unit.Rect(0, 240, 30, 300),
			wantB: unit.Rect(0, 180, 30, 240),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewFlex(tt.area, tt.flex, boxes(2, 30, 60)...)
			s := stageIn(n, 1000, 1000)
			if got := s.Children[0].Area; got != tt.wantA {
				t.Errorf("first = %v, want %v", got, tt.wantA)
			}
			if got := s.Children[1].Area; got != tt.wantB {
				t.Errorf("second = %v, want %v", got, tt.wantB)
			}
		})
	}
}

func TestFlexUnsizedCollapsesMargins(t *testing.T) {
	a := NewLeaf(unit.Sized(50, 20))
	a.Margin = unit.PxRect(5, 0, 10, 0)
	b := NewLeaf(unit.Sized(30, 40))
	b.Margin = unit.PxRect(8, 0, 0, 0)

	s := stageIn(NewFlex(unit.Auto(), Flex{}, a, b), 1000, 1000)

	// 5 + 50 + max(10, 8) + 30
	if want := unit.Rect(0, 0, 95, 40); s.Area != want {
		t.Errorf("Area = %v, want %v", s.Area, want)
	}
	want := []unit.AbsRect{
		unit.Rect(5, 0, 55, 20),
		unit.Rect(65, 0, 95, 40),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexPadding(t *testing.T) {
	n := NewFlex(unit.Sized(120, 40), Flex{}, growItem(0, 1, 0))
	n.Padding = unit.PxRect(10, 5, 10, 5)
	got := stageIn(n, 1000, 1000).Children[0].Area
	if want := unit.Rect(10, 5, 110, 35); got != want {
		t.Errorf("Area = %v, want %v", got, want)
	}
}

func TestFlexWrap(t *testing.T) {
	tests := []struct {
		name  string
		align Justify
		want  []unit.AbsPoint
	}{
		{
			name:  "start",
			align: JustifyStart,
			want:  []unit.AbsPoint{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 60, Y: 0}, {X: 0, Y: 20}, {X: 30, Y: 20}},
		},
		{
			name:  "center",
			align: JustifyCenter,
			want:  []unit.AbsPoint{{X: 0, Y: 80}, {X: 30, Y: 80}, {X: 60, Y: 80}, {X: 0, Y: 100}, {X: 30, Y: 100}},
		},
		{
			name:  "space-between",
			align: JustifySpaceBetween,
			want:  []unit.AbsPoint{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 60, Y: 0}, {X: 0, Y: 180}, {X: 30, Y: 180}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewFlex(unit.Sized(100, 200), Flex{Wrap: true, Align: tt.align}, boxes(5, 30, 20)...)
			s := stageIn(n, 1000, 1000)
			got := make([]unit.AbsPoint, len(s.Children))
			for i, c := range s.Children {
				got[i] = c.Area.TopLeft
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("positions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlexWrapUnsizedAux(t *testing.T) {
	n := NewFlex(unit.Sized(100, 0).WithUnsized(unit.AxisY), Flex{Wrap: true}, boxes(5, 30, 20)...)
	s := stageIn(n, 1000, 1000)
	if want := unit.Rect(0, 0, 100, 40); s.Area != want {
		t.Errorf("Area = %v, want %v", s.Area, want)
	}
}

func TestFlexWrapForcesOversizedItem(t *testing.T) {
	n := NewFlex(unit.Sized(100, 100), Flex{Wrap: true},
		NewLeaf(unit.Sized(150, 10)),
		NewLeaf(unit.Sized(20, 10)),
	)
	s := stageIn(n, 1000, 1000)
	want := []unit.AbsRect{
		unit.Rect(0, 0, 150, 10),
		unit.Rect(0, 10, 20, 20),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexObstacleSkip(t *testing.T) {
	n := NewFlex(unit.Sized(100, 100), Flex{
		Wrap:      true,
		Obstacles: []unit.DRect{unit.PxRect(40, 0, 60, 20)},
	}, boxes(4, 30, 20)...)
	s := stageIn(n, 1000, 1000)

	want := []unit.AbsRect{
		unit.Rect(0, 0, 30, 20),
		unit.Rect(60, 0, 90, 20),
		unit.Rect(0, 20, 30, 40),
		unit.Rect(30, 20, 60, 40),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexObstacleBlocksWholeLine(t *testing.T) {
	n := NewFlex(unit.Sized(100, 100), Flex{
		Wrap:      true,
		Obstacles: []unit.DRect{unit.PxRect(0, 0, 100, 20)},
	}, boxes(2, 30, 20)...)
	s := stageIn(n, 1000, 1000)

	// The first line still takes its first item, pushed past the obstacle and out
	// of the container. The next item wraps below.
	want := []unit.AbsRect{
		unit.Rect(100, 0, 130, 20),
		unit.Rect(0, 20, 30, 40),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexObstacleReversed(t *testing.T) {
	n := NewFlex(unit.Sized(100, 100), Flex{
		Direction: RightToLeft,
		Wrap:      true,
		Obstacles: []unit.DRect{unit.PxRect(40, 0, 60, 20)},
	}, boxes(2, 30, 20)...)
	s := stageIn(n, 1000, 1000)

	// The obstacle mirrors to logical [40, 60); the second item skips to 60 and
	// lands at screen x 100-60-30.
	want := []unit.AbsRect{
		unit.Rect(70, 0, 100, 20),
		unit.Rect(10, 0, 40, 20),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestFlexAlignWithObstaclesConverges(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	env := NewEnv(1)
	env.Log = zap.New(core)

	// The obstacle only blocks the lines once Align has pushed them to the bottom.
	n := NewFlex(unit.Sized(100, 100), Flex{
		Wrap:      true,
		Align:     JustifyEnd,
		Obstacles: []unit.DRect{unit.PxRect(0, 60, 40, 80)},
	}, boxes(4, 30, 20)...)
	s := NewRoot(n, env).Stage(unit.Dim(1000, 1000))

	want := []unit.AbsRect{
		unit.Rect(40, 60, 70, 80),
		unit.Rect(70, 60, 100, 80),
		unit.Rect(0, 80, 30, 100),
		unit.Rect(30, 80, 60, 100),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("flex wrap converged").Len() != 1 {
		t.Errorf("expected one convergence debug entry, got %d", logs.FilterMessage("flex wrap converged").Len())
	}
}

func TestFlexWrapPassCap(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	env := NewEnv(1)
	env.Log = zap.New(core)
	env.MaxWrapPasses = 4

	// Aligned to the end, the single line hits the obstacle and splits in two; two
	// lines move back up above it and merge again.
	n := NewFlex(unit.Sized(100, 100), Flex{
		Wrap:      true,
		Align:     JustifyEnd,
		Obstacles: []unit.DRect{unit.PxRect(0, 80, 50, 100)},
	}, boxes(3, 30, 20)...)
	s := NewRoot(n, env).Stage(unit.Dim(1000, 1000))

	if len(s.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(s.Children))
	}
	entries := logs.FilterMessage("flex wrap did not converge").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["passes"]; got != int64(4) {
		t.Errorf("passes = %v, want 4", got)
	}
}

func TestFlexInfiniteBasisPanics(t *testing.T) {
	child := NewLeaf(unit.Fill())
	child.Item.Basis = ptr(unit.Px(unit.Inf))
	expectPanic(t, "infinite basis", func() {
		stageIn(NewFlex(unit.Sized(100, 100), Flex{}, child), 100, 100)
	})
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		j          Justify
		free       float32
		n          int
		outer, gap float32
	}{
		{JustifyStart, 90, 3, 0, 0},
		{JustifyEnd, 90, 3, 90, 0},
		{JustifyEnd, -10, 3, -10, 0},
		{JustifyCenter, 90, 3, 45, 0},
		{JustifySpaceBetween, 90, 3, 0, 45},
		{JustifySpaceBetween, 90, 1, 0, 0},
		{JustifySpaceBetween, -5, 3, 0, 0},
		{JustifySpaceAround, 90, 3, 15, 30},
		{JustifySpaceEvenly, 80, 3, 20, 20},
		{JustifySpaceEvenly, 80, 0, 0, 0},
	}
	for _, tt := range tests {
		outer, gap := distribute(tt.j, tt.free, tt.n)
		if outer != tt.outer || gap != tt.gap {
			t.Errorf("distribute(%v, %v, %d) = (%v, %v), want (%v, %v)",
				tt.j, tt.free, tt.n, outer, gap, tt.outer, tt.gap)
		}
	}
}
