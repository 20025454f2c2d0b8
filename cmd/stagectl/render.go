package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/agiangrant/stagelayout/layout"
	"github.com/agiangrant/stagelayout/scene"
	"github.com/agiangrant/stagelayout/unit"
)

// styles holds the lipgloss styles of the command output.
type styles struct {
	Kind       lipgloss.Style
	Name       lipgloss.Style
	Rect       lipgloss.Style
	Enumerator lipgloss.Style
	Problem    lipgloss.Style
}

func defaultStyles() styles {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	return styles{
		Kind:       lipgloss.NewStyle().Foreground(subtle),
		Name:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Rect:       lipgloss.NewStyle().Foreground(subtle),
		Enumerator: lipgloss.NewStyle().Foreground(subtle).PaddingRight(1),
		Problem:    lipgloss.NewStyle().Foreground(lipgloss.Color("#CC6666")),
	}
}

// formatRect prints a rect as origin and size.
func formatRect(r unit.AbsRect) string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.TopLeft.X, r.TopLeft.Y, r.Width(), r.Height())
}

// renderTree draws the staged tree with absolute areas.
func renderTree(st *layout.Staged, s *scene.Scene, sty styles) string {
	if st == nil {
		return ""
	}
	return buildTree(st, unit.AbsPoint{}, s, sty).String()
}

func buildTree(st *layout.Staged, offset unit.AbsPoint, s *scene.Scene, sty styles) *tree.Tree {
	abs := st.Area.Translate(offset)
	t := tree.Root(nodeLabel(st, abs, s, sty)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(sty.Enumerator)
	for _, c := range st.Children {
		if len(c.Children) == 0 {
			t.Child(nodeLabel(c, c.Area.Translate(abs.TopLeft), s, sty))
			continue
		}
		t.Child(buildTree(c, abs.TopLeft, s, sty))
	}
	return t
}

func nodeLabel(st *layout.Staged, abs unit.AbsRect, s *scene.Scene, sty styles) string {
	return sty.Kind.Render(st.Kind.String()) + " " +
		sty.Name.Render(s.Name(st.ID)) + " " +
		sty.Rect.Render(formatRect(abs))
}

// describe prints one render instruction.
func describe(inst layout.Instruction, s *scene.Scene, sty styles) string {
	switch in := inst.(type) {
	case scene.Box:
		return fmt.Sprintf("box  %s %s", sty.Name.Render(s.Name(in.ID)), formatRect(in.Area))
	case scene.Line:
		return fmt.Sprintf("line %s -> %s (%g,%g)-(%g,%g)",
			sty.Name.Render(s.Name(in.From)), sty.Name.Render(s.Name(in.To)),
			in.A.X, in.A.Y, in.B.X, in.B.Y)
	}
	return fmt.Sprintf("%T", inst)
}
