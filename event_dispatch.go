package stagelayout

import (
	"slices"

	"github.com/agiangrant/stagelayout/layout"
	"github.com/agiangrant/stagelayout/rtree"
	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// ============================================================================
// Event Dispatcher
// ============================================================================

// EventDispatcher resolves screen points against the last staged tree of a root.
// It tracks hover state across calls.
type EventDispatcher struct {
	root *layout.Root
	// Registry used to build chains. Nil falls back to the spatial index.
	reg *source.Registry

	hovered      source.ID
	hoveredChain []source.ID

	// Current frame number, stamped onto results so callers can drop stale hits
	currentFrame uint64
}

// NewEventDispatcher creates an event dispatcher for the given root. reg may be nil.
func NewEventDispatcher(root *layout.Root, reg *source.Registry) *EventDispatcher {
	return &EventDispatcher{root: root, reg: reg}
}

// SetCurrentFrame updates the frame counter stamped onto hit results.
func (d *EventDispatcher) SetCurrentFrame(frame uint64) {
	d.currentFrame = frame
}

// ============================================================================
// Hit Testing
// ============================================================================

// HitTestResult contains the result of a hit test.
type HitTestResult struct {
	Target source.ID
	// Area is the target's absolute area.
	Area   unit.AbsRect
	LocalX float32
	LocalY float32
	// Chain is the path from the outermost ancestor to the target.
	Chain []source.ID
	Frame uint64
}

// HitTest finds the frontmost node at the given screen coordinates, using the
// spatial index of the last stage call. Returns nil if nothing is there or the root
// has not been staged.
func (d *EventDispatcher) HitTest(screenX, screenY float32) *HitTestResult {
	staged := d.root.Staged()
	if staged == nil || staged.Index == nil {
		return nil
	}
	hit, ok := staged.Index.HitTest(unit.Pt(screenX, screenY))
	if !ok {
		return nil
	}
	return &HitTestResult{
		Target: hit.Node.Source,
		Area:   hit.Area,
		LocalX: hit.Local.X,
		LocalY: hit.Local.Y,
		Chain:  d.buildChain(staged.Index, hit.Node),
		Frame:  d.currentFrame,
	}
}

// buildChain returns the identities from the outermost ancestor down to target.
// The registry is authoritative while the identity is live; a stale identity falls
// back to the path through the spatial index.
func (d *EventDispatcher) buildChain(index, target *rtree.Node) []source.ID {
	if d.reg != nil && d.reg.Live(target.Source) {
		chain := d.reg.Chain(target.Source)
		slices.Reverse(chain)
		return chain
	}
	var path []source.ID
	indexPath(index, target, &path)
	return path
}

func indexPath(n, target *rtree.Node, path *[]source.ID) bool {
	*path = append(*path, n.Source)
	if n == target {
		return true
	}
	for _, c := range n.Children {
		if c != nil && indexPath(c, target, path) {
			return true
		}
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// ============================================================================
// Hover State Management
// ============================================================================

// Hover moves the pointer to the given screen coordinates and reports the
// transition of the hover chain. Nodes that left the chain are listed deepest
// first, nodes that entered it outermost first, so parents stay hovered while the
// pointer moves onto a child.
func (d *EventDispatcher) Hover(screenX, screenY float32) (entered, left []source.ID) {
	var newHovered source.ID
	var newChain []source.ID
	if res := d.HitTest(screenX, screenY); res != nil {
		newHovered, newChain = res.Target, res.Chain
	}
	oldChain := d.hoveredChain
	if chainsEqual(oldChain, newChain) {
		return nil, nil
	}

	for i := len(oldChain) - 1; i >= 0; i-- {
		if !slices.Contains(newChain, oldChain[i]) {
			left = append(left, oldChain[i])
		}
	}
	for _, id := range newChain {
		if !slices.Contains(oldChain, id) {
			entered = append(entered, id)
		}
	}

	d.hovered = newHovered
	d.hoveredChain = newChain
	return entered, left
}

// Hovered returns the deepest hovered node, if any.
func (d *EventDispatcher) Hovered() (source.ID, bool) {
	return d.hovered, len(d.hoveredChain) > 0
}

// Reset forgets the hover state, e.g. after the tree was replaced.
func (d *EventDispatcher) Reset() {
	d.hovered = source.ID{}
	d.hoveredChain = nil
}

// chainsEqual compares two chains for equality.
func chainsEqual(a, b []source.ID) bool {
	return slices.Equal(a, b)
}
