package engine

import (
	"time"

	"github.com/prime-run/vimrs/internal/keycode"
	"github.com/prime-run/vimrs/internal/mapping"
)

// ActiveRule is a rule that matched a press and is still contributing to
// output, pending release of one of its inputs. For DualRole and Remap,
// Outputs holds the substituted key set (hold keys or remap outputs,
// respectively); ModeSwitch leaves it empty.
type ActiveRule struct {
	Kind    mapping.Kind
	Inputs  []keycode.Code
	Outputs []keycode.Code
	Mode    mapping.Mode
}

func (ar *ActiveRule) hasInput(k keycode.Code) bool {
	for _, in := range ar.Inputs {
		if in == k {
			return true
		}
	}
	return false
}

// Engine is the remap state machine. Zero value is not usable; construct
// with New.
type Engine struct {
	index *mapping.Index
	sink  Sink

	held       map[keycode.Code]time.Duration
	emitted    map[keycode.Code]bool
	suppressed map[keycode.Code]bool
	engaged    []ActiveRule

	tapCandidate    keycode.Code
	tapCandidateSet bool
	tapPressedAt    time.Duration

	mode mapping.Mode
	err  error
}

// New constructs an engine over a fixed lookup index, starting in
// mapping.ModeDefault, writing output through sink.
func New(index *mapping.Index, sink Sink) *Engine {
	return &Engine{
		index:      index,
		sink:       sink,
		held:       make(map[keycode.Code]time.Duration),
		emitted:    make(map[keycode.Code]bool),
		suppressed: make(map[keycode.Code]bool),
		mode:       mapping.ModeDefault,
	}
}

// Mode returns the currently active mode, for diagnostics.
func (e *Engine) Mode() mapping.Mode {
	return e.mode
}

// Emitted reports whether code is currently reported as pressed on the
// synthetic output device.
func (e *Engine) Emitted(code keycode.Code) bool {
	return e.emitted[code]
}

// Err returns the first error the sink reported, if any. Once set it is
// sticky: the engine keeps dispatching (there's no safe way to unwind a
// half-applied key diff), but a caller should treat it as fatal and stop
// feeding the engine further events.
func (e *Engine) Err() error {
	return e.err
}

// recordErr keeps the first non-nil error seen, so a later successful
// write can't mask an earlier failure.
func (e *Engine) recordErr(err error) {
	if err != nil && e.err == nil {
		e.err = err
	}
}
