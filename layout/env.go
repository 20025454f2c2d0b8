package layout

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agiangrant/stagelayout/source"
	"github.com/agiangrant/stagelayout/unit"
)

const (
	// DefaultEpsilon is the tolerance the flex wrap loop uses to decide it converged.
	DefaultEpsilon float32 = 0.001

	// DefaultMaxWrapPasses bounds the flex wrap loop of environments created by
	// NewEnv. Obstacles placed so that aligning the lines moves them onto and off an
	// obstacle make the loop oscillate; hitting the bound logs a warning.
	DefaultMaxWrapPasses = 64
)

// Env carries what a stage call needs besides the tree itself. It is read-only
// during staging except for the Domain.
type Env struct {
	// DPI scales device independent components into pixels.
	DPI float32
	// Domain is the cross-reference store shared by the nodes of one tree.
	Domain *Domain
	// Log receives debug output. Nil is treated as a no-op logger.
	Log *zap.Logger
	// Epsilon is the convergence tolerance of the flex wrap loop.
	Epsilon float32
	// MaxWrapPasses bounds the flex wrap loop. Zero leaves it unbounded.
	MaxWrapPasses int
}

// NewEnv creates an Env with an empty domain and a no-op logger.
func NewEnv(dpi float32) *Env {
	return &Env{
		DPI:     dpi,
		Domain:  NewDomain(),
		Log:     zap.NewNop(),
		Epsilon: DefaultEpsilon,

		MaxWrapPasses: DefaultMaxWrapPasses,
	}
}

func (e *Env) dpi() float32 {
	if e == nil || e.DPI == 0 {
		return 1
	}
	return e.DPI
}

func (e *Env) epsilon() float32 {
	if e == nil || e.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return e.Epsilon
}

func (e *Env) logger() *zap.Logger {
	if e == nil || e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// debug writes a debug entry if the logger has debug enabled. Callers pass fields
// lazily through fn so a disabled logger costs one level check.
func (e *Env) debug(msg string, fn func() []zap.Field) {
	if ce := e.logger().Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(fn()...)
	}
}

// Domain maps identities to absolute rectangles so one node can refer to where
// another ended up, e.g. to draw a connector between them. Writes must complete
// before the matching reads; Flatten guarantees that for Publish nodes.
type Domain struct {
	rects map[source.ID]unit.AbsRect
}

// NewDomain creates an empty domain.
func NewDomain() *Domain {
	return &Domain{rects: make(map[source.ID]unit.AbsRect)}
}

// Write records the absolute area of id, replacing any previous value.
func (d *Domain) Write(id source.ID, area unit.AbsRect) {
	d.rects[id] = area
}

// Read returns the area recorded for id.
func (d *Domain) Read(id source.ID) (unit.AbsRect, bool) {
	r, ok := d.rects[id]
	return r, ok
}

// Reset forgets every recorded area.
func (d *Domain) Reset() {
	clear(d.rects)
}

// Len returns the number of recorded areas.
func (d *Domain) Len() int {
	return len(d.rects)
}
