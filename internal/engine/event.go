// Package engine implements the remap state machine: a single-threaded
// press/release/repeat dispatcher that maintains the held/emitted/
// suppressed/engaged sets and emits a minimal diff of output events
// through a Sink.
package engine

import (
	"time"

	"github.com/prime-run/vimrs/internal/keycode"
)

// Value mirrors the evdev key event value: 0 release, 1 press, 2 repeat.
type Value int32

const (
	Release Value = 0
	Press   Value = 1
	Repeat  Value = 2
)

// Sink is the write side the engine drives: one Emit per key event,
// one Sync per batch. Implementations adapt this to a real or virtual
// evdev device. A write failure is reported back up through Engine.Err,
// which callers must treat as fatal.
type Sink interface {
	Emit(code keycode.Code, value Value, t time.Duration) error
	Sync(t time.Duration) error
}

// tapWindow is the fixed threshold, measured from event timestamps (not
// wall clock), within which a dual-role release emits its tap sequence
// instead of having already contributed a hold.
const tapWindow = 200 * time.Millisecond
