// Package stagelayout resolves declarative layout trees into absolute rectangles.
//
// The engine owns one layout tree, stages it against the window whenever the size
// or the tree changes, flattens it into render instructions once per frame and
// answers hit tests against the last staged result. The layout policies live in
// the layout package; the engine is the façade a host application drives.
package stagelayout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/agiangrant/stagelayout/config"
	"github.com/agiangrant/stagelayout/layout"
	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

// Version is the engine version.
const Version = "0.3.0"

// Engine represents the layout engine
type Engine struct {
	root       *layout.Root
	dispatcher *EventDispatcher
	log        *zap.Logger

	width  float32
	height float32
	frame  uint64
}

// NewEngine creates a new engine with the given configuration. A nil logger
// discards all output.
func NewEngine(cfg config.Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	root := layout.NewRoot(nil, cfg.Env(log))
	return &Engine{
		root:       root,
		dispatcher: NewEventDispatcher(root, nil),
		log:        log,
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
	}, nil
}

// SetRoot replaces the layout tree. reg, if not nil, is the registry the tree's
// identities were interned in and is used to build hit test chains. The tree is
// not validated; see layout.Validate.
func (e *Engine) SetRoot(n *layout.Node, reg *source.Registry) {
	e.root.SetNode(n)
	e.dispatcher = NewEventDispatcher(e.root, reg)
	if n != nil {
		e.log.Debug("root replaced", zap.Int("nodes", n.Count()))
	}
}

// Resize resizes the window. The tree is restaged on the next frame.
func (e *Engine) Resize(width, height float32) error {
	if !(width >= 0) || !(height >= 0) || unit.IsInf(width) || unit.IsInf(height) {
		return fmt.Errorf("failed to resize: invalid size %vx%v", width, height)
	}
	e.width = width
	e.height = height
	return nil
}

// Size returns the current width and height
func (e *Engine) Size() (float32, float32) {
	return e.width, e.height
}

// Invalidate forces the next frame to restage the tree, e.g. after it was mutated
// in place.
func (e *Engine) Invalidate() {
	e.root.Invalidate()
}

// Frame stages the tree if needed and returns the frame's render instructions.
// This is the primary API - one call per frame.
func (e *Engine) Frame() ([]layout.Instruction, error) {
	if e.root.Node == nil {
		return nil, fmt.Errorf("no root node set")
	}
	e.root.Layout(unit.Dim(e.width, e.height))
	e.frame++
	e.dispatcher.SetCurrentFrame(e.frame)

	out := e.root.Render()
	e.log.Debug("frame",
		zap.Uint64("frame", e.frame),
		zap.Int("instructions", len(out)),
	)
	return out, nil
}

// Staged returns the result of the last stage call, or nil.
func (e *Engine) Staged() *layout.Staged {
	return e.root.Staged()
}

// Env returns the environment the tree is staged with.
func (e *Engine) Env() *layout.Env {
	return e.root.Env
}

// FrameNumber returns the number of frames produced so far.
func (e *Engine) FrameNumber() uint64 {
	return e.frame
}

// HitTest finds the frontmost node at the given window coordinates in the last
// staged frame.
func (e *Engine) HitTest(x, y float32) *HitTestResult {
	return e.dispatcher.HitTest(x, y)
}

// Dispatcher returns the event dispatcher of the current tree.
func (e *Engine) Dispatcher() *EventDispatcher {
	return e.dispatcher
}
