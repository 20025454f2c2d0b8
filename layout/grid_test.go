package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agiangrant/stagelayout/unit"
)

func inCell(n *Node, row, col, rowSpan, colSpan int) *Node {
	n.Cell = GridCell{Row: row, Column: col, RowSpan: rowSpan, ColSpan: colSpan}
	return n
}

func TestGridUnsizedColumnTakesWidestChild(t *testing.T) {
	unsized := unit.UnsizedValue()
	n := NewGrid(unit.Auto(), Grid{
		Rows:    []unit.DValue{unsized, unsized},
		Columns: []unit.DValue{unsized, unsized},
	},
		inCell(NewLeaf(unit.Sized(40, 10)), 0, 0, 1, 1),
		inCell(NewLeaf(unit.Sized(60, 10)), 1, 0, 1, 1),
		inCell(NewLeaf(unit.Fill()), 0, 0, 1, 1),
	)
	s := stageIn(n, 1000, 1000)

	// The second column has no children and collapses to zero.
	if want := unit.Rect(0, 0, 60, 20); s.Area != want {
		t.Errorf("Area = %v, want %v", s.Area, want)
	}
	if got, want := s.Children[2].Area, unit.Rect(0, 0, 60, 10); got != want {
		t.Errorf("fill child = %v, want %v", got, want)
	}
	if got, want := s.Children[1].Area, unit.Rect(0, 10, 60, 20); got != want {
		t.Errorf("second row = %v, want %v", got, want)
	}
}

func TestGridTracksAndSpacing(t *testing.T) {
	n := NewGrid(unit.Sized(200, 100), Grid{
		Rows:          []unit.DValue{unit.Px(30), unit.Frac(0.5)},
		Columns:       []unit.DValue{unit.Px(50), unit.UnsizedValue()},
		RowSpacing:    unit.Px(10),
		ColumnSpacing: unit.Px(10),
	},
		inCell(NewLeaf(unit.Fill()), 0, 0, 1, 1),
		inCell(NewLeaf(unit.Sized(70, 20)), 1, 1, 1, 1),
		inCell(NewLeaf(unit.Fill()), 0, 0, 1, 2),
	)
	s := stageIn(n, 1000, 1000)

	want := []unit.AbsRect{
		unit.Rect(0, 0, 50, 30),
		unit.Rect(60, 40, 130, 60),
		unit.Rect(0, 0, 130, 30),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestGridSpanFoldsIntoPendingTrack(t *testing.T) {
	// A 100 wide child spans a 30 column, 10 spacing and an unsized column, so the
	// unsized column needs 60.
	n := NewGrid(unit.Auto(), Grid{
		Rows:          []unit.DValue{unit.Px(10)},
		Columns:       []unit.DValue{unit.Px(30), unit.UnsizedValue()},
		ColumnSpacing: unit.Px(10),
	},
		inCell(NewLeaf(unit.Sized(100, 10)), 0, 0, 1, 2),
	)
	s := stageIn(n, 1000, 1000)
	if want := unit.Rect(0, 0, 100, 10); s.Area != want {
		t.Errorf("Area = %v, want %v", s.Area, want)
	}
}

func TestGridTrackCoverage(t *testing.T) {
	n := NewGrid(unit.Auto(), Grid{
		Rows:          []unit.DValue{unit.Px(30), unit.Px(50), unit.Px(5)},
		Columns:       []unit.DValue{unit.Px(20), unit.Px(20)},
		RowSpacing:    unit.Px(10),
		ColumnSpacing: unit.Px(4),
	})
	n.Padding = unit.Edges(5)
	s := stageIn(n, 1000, 1000)

	rows := float32(30+50+5) + 2*10
	cols := float32(20+20) + 4
	if got := s.Area.Height() - 10; got != rows {
		t.Errorf("content height = %v, want %v", got, rows)
	}
	if got := s.Area.Width() - 10; got != cols {
		t.Errorf("content width = %v, want %v", got, cols)
	}
}

func TestGridReverse(t *testing.T) {
	n := NewGrid(unit.Sized(100, 60), Grid{
		Rows:           []unit.DValue{unit.Px(20), unit.Px(40)},
		Columns:        []unit.DValue{unit.Px(30), unit.Px(70)},
		ReverseRows:    true,
		ReverseColumns: true,
	},
		inCell(NewLeaf(unit.Fill()), 0, 0, 1, 1),
		inCell(NewLeaf(unit.Fill()), 1, 1, 1, 1),
	)
	s := stageIn(n, 1000, 1000)

	want := []unit.AbsRect{
		unit.Rect(70, 40, 100, 60),
		unit.Rect(0, 0, 70, 40),
	}
	if diff := cmp.Diff(want, childAreas(s)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestGridCellOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		cell *Node
	}{
		{"row", inCell(NewLeaf(unit.Fill()), 1, 0, 1, 1)},
		{"column", inCell(NewLeaf(unit.Fill()), 0, -1, 1, 1)},
		{"span", inCell(NewLeaf(unit.Fill()), 0, 0, 1, 2)},
	}
	for _, tt := range tests {
		n := NewGrid(unit.Fill(), Grid{
			Rows:    []unit.DValue{unit.Px(10)},
			Columns: []unit.DValue{unit.Px(10)},
		}, tt.cell)
		expectPanic(t, tt.name, func() { stageIn(n, 100, 100) })
	}
}
