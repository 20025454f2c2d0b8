package scene

import (
	"github.com/agiangrant/stagelayout/layout"
	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// Box is the instruction emitted for a labeled node.
type Box struct {
	ID    source.ID
	Label string
	Area  unit.AbsRect
}

// Line is the instruction emitted for a connect attribute. It joins the centers of
// two nodes.
type Line struct {
	From, To source.ID
	A, B     unit.AbsPoint
}

func center(r unit.AbsRect) unit.AbsPoint {
	return unit.Pt((r.TopLeft.X+r.BottomRight.X)/2, (r.TopLeft.Y+r.BottomRight.Y)/2)
}

func boxFactory(id source.ID, label string) layout.RenderFactory {
	return func(area unit.AbsRect, _ *layout.Env) []layout.Instruction {
		return []layout.Instruction{Box{ID: id, Label: label, Area: area}}
	}
}

// connectorFactory draws the node's box followed by a line to the published area
// of target. The line is dropped if target has not been published.
func connectorFactory(id source.ID, label string, target source.ID) layout.RenderFactory {
	return func(area unit.AbsRect, env *layout.Env) []layout.Instruction {
		out := []layout.Instruction{Box{ID: id, Label: label, Area: area}}
		if env == nil || env.Domain == nil {
			return out
		}
		to, ok := env.Domain.Read(target)
		if !ok {
			return out
		}
		return append(out, Line{From: id, To: target, A: center(area), B: center(to)})
	}
}
