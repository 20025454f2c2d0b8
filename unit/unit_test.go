package unit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestURectResolve(t *testing.T) {
	tests := []struct {
		name   string
		rect   URect
		parent AbsRect
		want   AbsRect
	}{
		{
			name:   "absolute only",
			rect:   URect{Abs: Rect(10, 20, 30, 40)},
			parent: Rect(0, 0, 200, 100),
			want:   Rect(10, 20, 30, 40),
		},
		{
			name:   "offset by parent top-left",
			rect:   URect{Abs: Rect(10, 20, 30, 40)},
			parent: Rect(5, 5, 200, 100),
			want:   Rect(15, 25, 35, 45),
		},
		{
			name:   "fill parent",
			rect:   Fill().Resolve(1),
			parent: Rect(0, 0, 200, 100),
			want:   Rect(0, 0, 200, 100),
		},
		{
			name: "half width centered",
			rect: URect{
				Rel: RelRect{TopLeft: RelPoint{0.25, 0}, BottomRight: RelPoint{0.75, 1}},
			},
			parent: Rect(0, 0, 200, 100),
			want:   Rect(50, 0, 150, 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Resolve(tt.parent)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestURectResolveAbsoluteIgnoresParentSize(t *testing.T) {
	u := URect{Abs: Rect(3, 4, 13, 24)}
	parents := []AbsRect{
		Rect(0, 0, 0, 0),
		Rect(0, 0, 1000, 1000),
		Unbounded(),
	}
	for _, p := range parents {
		got := u.Resolve(p)
		if got != Rect(3, 4, 13, 24) {
			t.Errorf("Resolve(%v) = %v, want %v", p, got, Rect(3, 4, 13, 24))
		}
	}
}

func TestDRectResolveDpi(t *testing.T) {
	r := DRect{
		Px: Rect(1, 1, 1, 1),
		Dp: Rect(8, 8, 16, 16),
	}
	got := r.Resolve(2)
	want := URect{Abs: Rect(17, 17, 33, 33)}
	if got != want {
		t.Errorf("Resolve(2) = %v, want %v", got, want)
	}

	if got := r.Resolve(1).Abs; got != Rect(9, 9, 17, 17) {
		t.Errorf("Resolve(1).Abs = %v, want %v", got, Rect(9, 9, 17, 17))
	}
}

func TestUnsizedSurvivesResolve(t *testing.T) {
	u := Auto().Resolve(1.5)
	if !u.Unsized(AxisX) || !u.Unsized(AxisY) {
		t.Fatalf("Auto().Resolve() lost the unsized marker: %+v", u)
	}

	sized := u.SizeTo(AxisX, 40)
	if sized.Unsized(AxisX) {
		t.Error("SizeTo(AxisX) should clear the unsized marker")
	}
	if !sized.Unsized(AxisY) {
		t.Error("SizeTo(AxisX) should leave AxisY unsized")
	}
	got := sized.Collapse(AxisY).Resolve(Rect(10, 10, 500, 500))
	if got != Rect(10, 10, 50, 10) {
		t.Errorf("resolved = %v, want %v", got, Rect(10, 10, 50, 10))
	}
}

func TestSizeToCopiesTopLeftAnchor(t *testing.T) {
	// Anchored to the right edge of the parent, unsized width.
	u := URect{
		Abs: Rect(-5, 0, 0, 20),
		Rel: RelRect{TopLeft: RelPoint{1, 0}, BottomRight: RelPoint{UnsizedAxis, 0}},
	}
	got := u.SizeTo(AxisX, 30).Resolve(Rect(0, 0, 100, 100))
	want := Rect(95, 0, 125, 20)
	if got != want {
		t.Errorf("resolved = %v, want %v", got, want)
	}
}

func TestAbsRectNeutralize(t *testing.T) {
	r := AbsRect{TopLeft: Pt(5, 6), BottomRight: Pt(Inf, 50)}
	got := r.Neutralize()
	if got != Rect(5, 6, 5, 50) {
		t.Errorf("Neutralize() = %v, want %v", got, Rect(5, 6, 5, 50))
	}
	if !r.Unsized(AxisX) || r.Unsized(AxisY) {
		t.Errorf("Unsized() = (%v, %v), want (true, false)", r.Unsized(AxisX), r.Unsized(AxisY))
	}
}

func TestAbsRectOps(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(5, 5, 20, 15)

	if got := a.Union(b); got != Rect(0, 0, 20, 15) {
		t.Errorf("Union = %v", got)
	}
	if !a.Intersects(b) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(Rect(10, 0, 20, 10)) {
		t.Error("touching edges should not intersect")
	}
	if !a.Contains(Pt(10, 10)) {
		t.Error("Contains should include the bottom-right edge")
	}
	if got := b.Inset(Rect(1, 2, 3, 4)); got != Rect(6, 7, 17, 11) {
		t.Errorf("Inset = %v", got)
	}
	if got := a.Area(); got != 100 {
		t.Errorf("Area = %v, want 100", got)
	}
}

func TestDValueResolve(t *testing.T) {
	tests := []struct {
		name   string
		v      DValue
		dpi    float32
		parent float32
		want   float32
	}{
		{"pixels", Px(12), 2, 100, 12},
		{"dp", Dp(8), 1.5, 100, 12},
		{"relative", Frac(0.5), 1, 300, 150},
		{"relative against unbounded parent", Frac(0.5), 1, Inf, 0},
		{"mixed", DValue{Px: 2, Dp: 4, Rel: 0.1}, 2, 100, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Resolve(tt.dpi, tt.parent); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDValueResolveUnsizedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic resolving an unsized value")
		}
	}()
	UnsizedValue().Resolve(1, 100)
}
