package scene

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agiangrant/stagelayout/unit"
)

// Length is a scalar length written as a sum of terms: "12", "12px", "4dp", "50%",
// "100%-8dp". "auto" asks for the length to be derived from content.
type Length struct {
	Px, Dp, Rel float32
	Auto        bool
}

// ParseLength parses the textual form of a Length.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	if s == "auto" {
		return Length{Auto: true}, nil
	}

	var l Length
	// Split into signed terms, keeping exponents like 1e-3 intact.
	var terms []string
	start := 0
	for i := 1; i < len(s); i++ {
		if (s[i] == '+' || s[i] == '-') && s[i-1] != 'e' && s[i-1] != 'E' {
			terms = append(terms, s[start:i])
			start = i
		}
	}
	terms = append(terms, s[start:])

	for _, term := range terms {
		term = strings.TrimSpace(strings.TrimPrefix(term, "+"))
		num, dst := term, &l.Px
		switch {
		case strings.HasSuffix(term, "%"):
			num, dst = strings.TrimSuffix(term, "%"), &l.Rel
		case strings.HasSuffix(term, "dp"):
			num, dst = strings.TrimSuffix(term, "dp"), &l.Dp
		case strings.HasSuffix(term, "px"):
			num = strings.TrimSuffix(term, "px")
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(num), 32)
		if err != nil {
			return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
		}
		if dst == &l.Rel {
			v /= 100
		}
		*dst += float32(v)
	}
	return l, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Length) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: length must be a scalar", value.Line)
	}
	parsed, err := ParseLength(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = parsed
	return nil
}

// Value converts the length to a unit.DValue.
func (l Length) Value() unit.DValue {
	if l.Auto {
		return unit.UnsizedValue()
	}
	return unit.DValue{Px: l.Px, Dp: l.Dp, Rel: l.Rel}
}

// Area is a node rectangle: "fill", "auto", or a mapping of x, y, width and height
// lengths. A missing width or height is auto.
type Area struct {
	unit.DRect
}

type areaSpec struct {
	X      Length  `yaml:"x"`
	Y      Length  `yaml:"y"`
	Width  *Length `yaml:"width"`
	Height *Length `yaml:"height"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Area) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		switch value.Value {
		case "fill":
			a.DRect = unit.Fill()
			return nil
		case "auto":
			a.DRect = unit.Auto()
			return nil
		}
		return fmt.Errorf("line %d: area must be fill, auto or a mapping, got %q", value.Line, value.Value)
	}

	var spec areaSpec
	if err := value.Decode(&spec); err != nil {
		return err
	}
	if spec.X.Auto || spec.Y.Auto {
		return fmt.Errorf("line %d: area position cannot be auto", value.Line)
	}
	auto := Length{Auto: true}
	if spec.Width == nil {
		spec.Width = &auto
	}
	if spec.Height == nil {
		spec.Height = &auto
	}
	w, h := *spec.Width, *spec.Height

	a.DRect = unit.DRect{
		Px: unit.Rect(spec.X.Px, spec.Y.Px, spec.X.Px+w.Px, spec.Y.Px+h.Px),
		Dp: unit.Rect(spec.X.Dp, spec.Y.Dp, spec.X.Dp+w.Dp, spec.Y.Dp+h.Dp),
		Rel: unit.RelRect{
			TopLeft:     unit.RelPoint{X: spec.X.Rel, Y: spec.Y.Rel},
			BottomRight: unit.RelPoint{X: spec.X.Rel + w.Rel, Y: spec.Y.Rel + h.Rel},
		},
	}
	if w.Auto {
		a.DRect = a.DRect.WithUnsized(unit.AxisX)
	}
	if h.Auto {
		a.DRect = a.DRect.WithUnsized(unit.AxisY)
	}
	return nil
}

// Edges are insets written like CSS: one length for all sides, two for vertical
// and horizontal, or four in top, right, bottom, left order.
type Edges struct {
	unit.DRect
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Edges) UnmarshalYAML(value *yaml.Node) error {
	var ls []Length
	switch value.Kind {
	case yaml.ScalarNode:
		var l Length
		if err := value.Decode(&l); err != nil {
			return err
		}
		ls = []Length{l}
	case yaml.SequenceNode:
		if err := value.Decode(&ls); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: edges must be a length or a list of lengths", value.Line)
	}

	var top, right, bottom, left Length
	switch len(ls) {
	case 1:
		top, right, bottom, left = ls[0], ls[0], ls[0], ls[0]
	case 2:
		top, right, bottom, left = ls[0], ls[1], ls[0], ls[1]
	case 4:
		top, right, bottom, left = ls[0], ls[1], ls[2], ls[3]
	default:
		return fmt.Errorf("line %d: edges take 1, 2 or 4 lengths, got %d", value.Line, len(ls))
	}
	for _, l := range []Length{top, right, bottom, left} {
		if l.Auto {
			return fmt.Errorf("line %d: edges cannot be auto", value.Line)
		}
	}
	e.DRect = unit.DRect{
		Px: unit.Rect(left.Px, top.Px, right.Px, bottom.Px),
		Dp: unit.Rect(left.Dp, top.Dp, right.Dp, bottom.Dp),
		Rel: unit.RelRect{
			TopLeft:     unit.RelPoint{X: left.Rel, Y: top.Rel},
			BottomRight: unit.RelPoint{X: right.Rel, Y: bottom.Rel},
		},
	}
	return nil
}
