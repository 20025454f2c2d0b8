// Package scene decodes layout trees from YAML documents.
//
// A document has a single root node:
//
//	root:
//	  id: app
//	  kind: flex
//	  area: fill
//	  padding: 8
//	  flex: {direction: ttb, items: stretch}
//	  children:
//	    - {id: header, area: {x: 0, y: 0, width: 100%, height: 40}, label: Header}
//	    - {kind: list, list: {wrap: true}, item: {grow: 1}, children: [...]}
//
// Node kinds default to fixed when a node has children and leaf otherwise. Lengths
// are described by Length, areas by Area and insets by Edges.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/agiangrant/stagelayout/layout"
	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// Scene is a decoded document.
type Scene struct {
	Root     *layout.Node
	Registry *source.Registry
	// IDs maps the id attribute of nodes to their identity.
	IDs map[string]source.ID
	// Labels maps identities to the label attribute of nodes that have one.
	Labels map[source.ID]string
}

// Lookup returns the identity of the node with the given id attribute.
func (s *Scene) Lookup(name string) (source.ID, bool) {
	id, ok := s.IDs[name]
	return id, ok
}

// Name returns a printable name for id: its label, its registry path, or both.
func (s *Scene) Name(id source.ID) string {
	path := s.Registry.Path(id)
	if l, ok := s.Labels[id]; ok && l != "" {
		return l + " " + path
	}
	return path
}

type document struct {
	Root *nodeSpec `yaml:"root"`
}

type nodeSpec struct {
	ID       string      `yaml:"id"`
	Kind     string      `yaml:"kind"`
	Area     *Area       `yaml:"area"`
	Limits   *limitsSpec `yaml:"limits"`
	Anchor   []Length    `yaml:"anchor"`
	Z        int         `yaml:"z"`
	Padding  *Edges      `yaml:"padding"`
	Margin   *Edges      `yaml:"margin"`
	Flex     *flexSpec   `yaml:"flex"`
	Grid     *gridSpec   `yaml:"grid"`
	List     *listSpec   `yaml:"list"`
	Item     *itemSpec   `yaml:"item"`
	Cell     *cellSpec   `yaml:"cell"`
	Publish  bool        `yaml:"publish"`
	Label    string      `yaml:"label"`
	Connect  string      `yaml:"connect"`
	Children []*nodeSpec `yaml:"children"`
}

type limitsSpec struct {
	MinWidth  *Length `yaml:"min_width"`
	MinHeight *Length `yaml:"min_height"`
	MaxWidth  *Length `yaml:"max_width"`
	MaxHeight *Length `yaml:"max_height"`
}

type flexSpec struct {
	Direction string `yaml:"direction"`
	Wrap      bool   `yaml:"wrap"`
	Justify   string `yaml:"justify"`
	Align     string `yaml:"align"`
	Items     string `yaml:"items"`
	Obstacles []Area `yaml:"obstacles"`
}

type gridSpec struct {
	Rows           []Length `yaml:"rows"`
	Columns        []Length `yaml:"columns"`
	RowSpacing     *Length  `yaml:"row_spacing"`
	ColumnSpacing  *Length  `yaml:"column_spacing"`
	ReverseRows    bool     `yaml:"reverse_rows"`
	ReverseColumns bool     `yaml:"reverse_columns"`
}

type listSpec struct {
	Direction string `yaml:"direction"`
	Wrap      bool   `yaml:"wrap"`
}

type itemSpec struct {
	Basis  *Length `yaml:"basis"`
	Grow   float32 `yaml:"grow"`
	Shrink float32 `yaml:"shrink"`
}

type cellSpec struct {
	Row     int `yaml:"row"`
	Column  int `yaml:"column"`
	RowSpan int `yaml:"row_span"`
	ColSpan int `yaml:"col_span"`
}

// Load decodes the scene file at path into reg. A nil reg creates a new registry.
func Load(path string, reg *source.Registry) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads one scene document from r. Node identities are interned into reg
// under source.Root: a node with an id attribute gets a source.Name key, any other
// node is keyed by its index among its siblings. A nil reg creates a new registry.
func Decode(r io.Reader, reg *source.Registry) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene document")
		}
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("scene has no root node")
	}

	if reg == nil {
		reg = source.NewRegistry()
	}
	b := &builder{
		scene: &Scene{
			Registry: reg,
			IDs:      make(map[string]source.ID),
			Labels:   make(map[source.ID]string),
		},
		nodes: make(map[source.ID]*layout.Node),
	}
	root, err := b.build(doc.Root, source.Root, 0, "root")
	if err != nil {
		return nil, err
	}
	if err := b.connect(); err != nil {
		return nil, err
	}
	b.scene.Root = root
	return b.scene, nil
}

type pendingConnect struct {
	from   *layout.Node
	target string
	path   string
}

type builder struct {
	scene    *Scene
	nodes    map[source.ID]*layout.Node
	connects []pendingConnect
}

func (b *builder) build(spec *nodeSpec, parent source.ID, index int, path string) (*layout.Node, error) {
	if spec == nil {
		return nil, fmt.Errorf("%s: empty node", path)
	}
	fail := func(err error) (*layout.Node, error) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	n := &layout.Node{
		Area:    unit.Fill(),
		ZIndex:  spec.Z,
		Publish: spec.Publish,
	}

	reg := b.scene.Registry
	if spec.ID != "" {
		if _, dup := b.scene.IDs[spec.ID]; dup {
			return fail(fmt.Errorf("duplicate id %q", spec.ID))
		}
		n.ID = reg.Intern(parent, source.Name(spec.ID))
		b.scene.IDs[spec.ID] = n.ID
	} else {
		n.ID = reg.Child(parent, index)
	}
	b.nodes[n.ID] = n

	kind := spec.Kind
	if kind == "" {
		kind = layout.KindLeaf.String()
		if len(spec.Children) > 0 {
			kind = layout.KindFixed.String()
		}
	}
	k, err := layout.ParseKind(kind)
	if err != nil {
		return fail(err)
	}
	n.Kind = k

	if spec.Area != nil {
		n.Area = spec.Area.DRect
	}
	if spec.Padding != nil {
		n.Padding = spec.Padding.DRect
	}
	if spec.Margin != nil {
		n.Margin = spec.Margin.DRect
	}
	if err := applyAnchor(n, spec.Anchor); err != nil {
		return fail(err)
	}
	if err := applyLimits(n, spec.Limits); err != nil {
		return fail(err)
	}
	if err := applyPayload(n, spec); err != nil {
		return fail(err)
	}
	if spec.Item != nil {
		n.Item.Grow, n.Item.Shrink = spec.Item.Grow, spec.Item.Shrink
		if spec.Item.Basis != nil && !spec.Item.Basis.Auto {
			basis := spec.Item.Basis.Value()
			n.Item.Basis = &basis
		}
	}
	if spec.Cell != nil {
		n.Cell = layout.GridCell{
			Row:     spec.Cell.Row,
			Column:  spec.Cell.Column,
			RowSpan: spec.Cell.RowSpan,
			ColSpan: spec.Cell.ColSpan,
		}
	}

	if spec.Label != "" {
		b.scene.Labels[n.ID] = spec.Label
	}
	if spec.Label != "" || spec.Connect != "" {
		n.Render = boxFactory(n.ID, spec.Label)
	}
	if spec.Connect != "" {
		b.connects = append(b.connects, pendingConnect{from: n, target: spec.Connect, path: path})
	}

	if len(spec.Children) > 0 {
		n.Children = make([]*layout.Node, len(spec.Children))
		for i, c := range spec.Children {
			child, err := b.build(c, n.ID, i, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			n.Children[i] = child
		}
	}
	return n, nil
}

// connect resolves connect attributes once every id is known, so a connector may
// point at a node declared after it.
func (b *builder) connect() error {
	for _, c := range b.connects {
		to, ok := b.scene.IDs[c.target]
		if !ok {
			return fmt.Errorf("%s: connect target %q does not exist", c.path, c.target)
		}
		b.nodes[to].Publish = true
		c.from.Render = connectorFactory(c.from.ID, b.scene.Labels[c.from.ID], to)
	}
	return nil
}

func applyAnchor(n *layout.Node, anchor []Length) error {
	switch len(anchor) {
	case 0:
		return nil
	case 2:
	default:
		return fmt.Errorf("anchor takes 2 lengths, got %d", len(anchor))
	}
	x, y := anchor[0], anchor[1]
	if x.Auto || y.Auto {
		return fmt.Errorf("anchor cannot be auto")
	}
	n.Anchor = unit.DPoint{
		Px:  unit.Pt(x.Px, y.Px),
		Dp:  unit.Pt(x.Dp, y.Dp),
		Rel: unit.RelPoint{X: x.Rel, Y: y.Rel},
	}
	return nil
}

// applyLimits splits limit lengths into absolute limits and limits relative to the
// parent's inner size.
func applyLimits(n *layout.Node, spec *limitsSpec) error {
	if spec == nil {
		return nil
	}
	abs := unit.NoDLimits()
	rel := unit.NoRelLimits()
	var hasAbs, hasRel bool

	set := func(l *Length, px, dp, r *float32) error {
		if l == nil {
			return nil
		}
		if l.Auto {
			return fmt.Errorf("limits cannot be auto")
		}
		if l.Rel != 0 {
			if l.Px != 0 || l.Dp != 0 {
				return fmt.Errorf("a limit is either absolute or relative, not both")
			}
			*r, hasRel = l.Rel, true
			return nil
		}
		*px, *dp, hasAbs = l.Px, l.Dp, true
		return nil
	}
	for _, s := range []struct {
		l         *Length
		px, dp, r *float32
	}{
		{spec.MinWidth, &abs.Min.Px.Width, &abs.Min.Dp.Width, &rel.Min.Width},
		{spec.MinHeight, &abs.Min.Px.Height, &abs.Min.Dp.Height, &rel.Min.Height},
		{spec.MaxWidth, &abs.Max.Px.Width, &abs.Max.Dp.Width, &rel.Max.Width},
		{spec.MaxHeight, &abs.Max.Px.Height, &abs.Max.Dp.Height, &rel.Max.Height},
	} {
		if err := set(s.l, s.px, s.dp, s.r); err != nil {
			return err
		}
	}
	if hasAbs {
		n.Limits = &abs
	}
	if hasRel {
		n.RLimits = &rel
	}
	return nil
}

func applyPayload(n *layout.Node, spec *nodeSpec) error {
	if spec.Flex != nil && n.Kind != layout.KindFlex {
		return fmt.Errorf("flex properties on a %s node", n.Kind)
	}
	if spec.Grid != nil && n.Kind != layout.KindGrid {
		return fmt.Errorf("grid properties on a %s node", n.Kind)
	}
	if spec.List != nil && n.Kind != layout.KindList {
		return fmt.Errorf("list properties on a %s node", n.Kind)
	}

	switch n.Kind {
	case layout.KindFlex:
		f := layout.Flex{}
		if s := spec.Flex; s != nil {
			var err error
			if f.Direction, err = direction(s.Direction); err != nil {
				return err
			}
			if f.Justify, err = justify(s.Justify); err != nil {
				return err
			}
			if f.Align, err = justify(s.Align); err != nil {
				return err
			}
			if s.Items != "" {
				if f.Items, err = layout.ParseItemAlign(s.Items); err != nil {
					return err
				}
			}
			f.Wrap = s.Wrap
			for _, o := range s.Obstacles {
				f.Obstacles = append(f.Obstacles, o.DRect)
			}
		}
		n.Flex = &f

	case layout.KindGrid:
		g := layout.Grid{}
		if s := spec.Grid; s != nil {
			for _, r := range s.Rows {
				g.Rows = append(g.Rows, r.Value())
			}
			for _, c := range s.Columns {
				g.Columns = append(g.Columns, c.Value())
			}
			if s.RowSpacing != nil {
				g.RowSpacing = s.RowSpacing.Value()
			}
			if s.ColumnSpacing != nil {
				g.ColumnSpacing = s.ColumnSpacing.Value()
			}
			if g.RowSpacing.Unsized() || g.ColumnSpacing.Unsized() {
				return fmt.Errorf("grid spacing cannot be auto")
			}
			g.ReverseRows, g.ReverseColumns = s.ReverseRows, s.ReverseColumns
		}
		n.Grid = &g

	case layout.KindList:
		l := layout.List{}
		if s := spec.List; s != nil {
			var err error
			if l.Direction, err = direction(s.Direction); err != nil {
				return err
			}
			l.Wrap = s.Wrap
		}
		n.List = &l
	}
	return nil
}

func direction(s string) (layout.Direction, error) {
	if s == "" {
		return layout.LeftToRight, nil
	}
	return layout.ParseDirection(s)
}

func justify(s string) (layout.Justify, error) {
	if s == "" {
		return layout.JustifyStart, nil
	}
	return layout.ParseJustify(s)
}
