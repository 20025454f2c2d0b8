// Package rtree provides the spatial index built during layout and queried for hit
// testing.
//
// Every Node stores its area relative to its parent's origin, the extent of its whole
// subtree in the same coordinate space, and the z-range folded from its own z-index
// and every descendant. Both let a query skip whole subtrees: a point outside the
// extent cannot hit anything below.
package rtree

import (
	"sort"

	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// Node is one entry of the spatial index.
type Node struct {
	// Area is the node's own rectangle, relative to its parent's origin.
	Area unit.AbsRect
	// Extent bounds Area and every descendant area, in the same space as Area.
	Extent unit.AbsRect
	// ZTop and ZBottom bound the z-index of the node and all descendants.
	ZTop, ZBottom int
	// Z is the node's own z-index.
	Z int
	// Source is the owning identity. It is only an index into a source.Registry and
	// may have gone stale by the time the index is queried.
	Source source.ID

	Children []*Node
}

// New builds an index node and folds the extent and z-range of its children. The
// children's areas are relative to area's top-left corner.
func New(area unit.AbsRect, z int, children []*Node, id source.ID) *Node {
	n := &Node{
		Area:     area,
		Extent:   area,
		Z:        z,
		ZTop:     z,
		ZBottom:  z,
		Source:   id,
		Children: children,
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.Extent = n.Extent.Union(c.Extent.Translate(area.TopLeft))
		n.ZTop = max(n.ZTop, c.ZTop)
		n.ZBottom = min(n.ZBottom, c.ZBottom)
	}
	return n
}

// Hit is a query match.
type Hit struct {
	Node *Node
	// Area is the matched node's area translated into the query's coordinate space.
	Area unit.AbsRect
	// Local is the query point relative to the matched node's top-left corner.
	Local unit.AbsPoint
	// Depth is the number of ancestors between the query root and the node.
	Depth int
	// Z is the stacking z-index the match ranks by: the largest z-index on the path
	// from the query root down to the node. A child never sinks below the layer its
	// ancestors put it on.
	Z     int
	order int
}

// Query returns every node containing p, p being in the coordinate space of n.Area.
// Matches are ordered front to back: higher stacking z-index first (see Hit.Z),
// then the smallest containing area, then deeper nodes, then nodes visited later
// (drawn later).
func (n *Node) Query(p unit.AbsPoint) []Hit {
	var hits []Hit
	n.query(p, unit.AbsPoint{}, 0, n.Z, &hits)
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Z != b.Z {
			return a.Z > b.Z
		}
		if aa, ba := a.Area.Area(), b.Area.Area(); aa != ba {
			return aa < ba
		}
		if a.Depth != b.Depth {
			return a.Depth > b.Depth
		}
		return a.order > b.order
	})
	return hits
}

func (n *Node) query(p, offset unit.AbsPoint, depth, z int, hits *[]Hit) {
	if !n.Extent.Translate(offset).Contains(p) {
		return
	}
	z = max(z, n.Z)
	area := n.Area.Translate(offset)
	if area.Contains(p) {
		*hits = append(*hits, Hit{
			Node:  n,
			Area:  area,
			Local: p.Sub(area.TopLeft),
			Depth: depth,
			Z:     z,
			order: len(*hits),
		})
	}
	for _, c := range n.Children {
		if c != nil {
			c.query(p, area.TopLeft, depth+1, z, hits)
		}
	}
}

// HitTest returns the frontmost node containing p, using the same ordering as Query.
func (n *Node) HitTest(p unit.AbsPoint) (Hit, bool) {
	hits := n.Query(p)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// Walk visits n and its descendants depth-first. offset is the position of n's
// parent origin; fn receives each node with its area translated by the accumulated
// offset. Returning false from fn skips the node's children.
func (n *Node) Walk(offset unit.AbsPoint, fn func(node *Node, abs unit.AbsRect) bool) {
	abs := n.Area.Translate(offset)
	if !fn(n, abs) {
		return
	}
	for _, c := range n.Children {
		if c != nil {
			c.Walk(abs.TopLeft, fn)
		}
	}
}
