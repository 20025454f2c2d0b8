package layout

import (
	"github.com/agiangrant/stagelayout/rtree"
	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// Staged is the frozen result of staging one node.
type Staged struct {
	// Area is relative to the parent's origin, not to the screen.
	Area unit.AbsRect
	// Render is the node's render factory, forwarded untouched.
	Render RenderFactory
	// Index is the node's entry in the spatial index. Its children are the index
	// entries of Children, in the same order.
	Index *rtree.Node
	ID    source.ID
	Kind  Kind
	// Publish is copied from the node; see Node.Publish.
	Publish  bool
	Children []*Staged
}

// Walk visits s and its descendants depth-first, parents before children.
// offset is the absolute position of s's parent origin; fn receives each staged
// node with its area translated into absolute coordinates.
func (s *Staged) Walk(offset unit.AbsPoint, fn func(st *Staged, abs unit.AbsRect)) {
	abs := s.Area.Translate(offset)
	fn(s, abs)
	for _, c := range s.Children {
		c.Walk(abs.TopLeft, fn)
	}
}

// Flatten produces the ordered render instruction sequence of the tree. The first
// phase publishes the absolute area of every Publish node into env.Domain; the
// second runs the render factories, so any factory can read any published area
// regardless of tree order.
func (s *Staged) Flatten(env *Env) []Instruction {
	if env != nil && env.Domain != nil {
		s.Walk(unit.AbsPoint{}, func(st *Staged, abs unit.AbsRect) {
			if st.Publish {
				env.Domain.Write(st.ID, abs)
			}
		})
	}

	var out []Instruction
	s.Walk(unit.AbsPoint{}, func(st *Staged, abs unit.AbsRect) {
		if st.Render != nil {
			out = append(out, st.Render(abs, env)...)
		}
	})
	return out
}

// Find returns the first staged node with the given identity, searching depth-first,
// together with its absolute area.
func (s *Staged) Find(id source.ID) (*Staged, unit.AbsRect, bool) {
	var (
		found *Staged
		area  unit.AbsRect
	)
	s.Walk(unit.AbsPoint{}, func(st *Staged, abs unit.AbsRect) {
		if found == nil && st.ID == id {
			found, area = st, abs
		}
	})
	return found, area, found != nil
}
