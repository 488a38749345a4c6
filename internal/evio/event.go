// Package evio is the evdev transport: opening and grabbing the
// physical device, creating a synthetic output device with a
// widened key capability set, and converting between raw evdev events
// and the engine's Value/time.Duration vocabulary.
package evio

import (
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/keycode"
)

// Event is a single decoded evdev event: a key event (Type == EV_KEY)
// dispatches into the engine; anything else passes through unchanged.
type Event struct {
	Type  evdev.EvType
	Code  keycode.Code
	Value int32
	Time  time.Duration
}

// IsKey reports whether this event is a keyboard key event.
func (e Event) IsKey() bool {
	return e.Type == evdev.EV_KEY
}

// EngineValue maps the raw evdev value (0/1/2) to engine.Value.
func (e Event) EngineValue() engine.Value {
	return engine.Value(e.Value)
}

func fromRaw(ev *evdev.InputEvent) Event {
	return Event{
		Type:  ev.Type,
		Code:  ev.Code,
		Value: ev.Value,
		Time:  time.Duration(ev.Time.Sec)*time.Second + time.Duration(ev.Time.Usec)*time.Microsecond,
	}
}

func toRaw(e Event) *evdev.InputEvent {
	return &evdev.InputEvent{
		Type:  e.Type,
		Code:  e.Code,
		Value: e.Value,
	}
}
