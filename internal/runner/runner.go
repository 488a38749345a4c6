// Package runner wires an evio.Device to an engine.Engine: the
// single-threaded loop that reads physical events, dispatches key events
// into the engine, passes everything else straight through, and exits
// cleanly on cancellation or a fatal device error.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/evio"
	"github.com/prime-run/vimrs/internal/keycode"
	"github.com/prime-run/vimrs/internal/log"
)

// LoggingSink wraps an engine.Sink, recording every outgoing event
// through events before delegating, so debug-events can show both sides
// of the remap without the engine knowing it's being observed.
type LoggingSink struct {
	engine.Sink
	Events log.EventLogger
}

func (s LoggingSink) Emit(code keycode.Code, value engine.Value, t time.Duration) error {
	if s.Events != nil {
		s.Events.LogSynthetic(code, int32(value), t)
	}
	return s.Sink.Emit(code, value, t)
}

// ErrOutOfSync is returned by Run when the kernel reports SYN_DROPPED:
// the engine's held-key state can no longer be trusted to match the
// device's, and the caller should treat this as fatal rather than limp
// on with a state machine that has silently desynced from hardware.
var ErrOutOfSync = errors.New("evdev reported SYN_DROPPED: input stream out of sync")

// Run drains dev until ctx is cancelled, a read fails, or eng reports a
// write failure through Err after dispatching an event (a failed write
// to the synthetic device is as fatal as a failed read from the real
// one). Key events are dispatched into eng; every other event (mouse
// motion, LEDs, SYN_REPORT) is written through to the synthetic device
// unchanged. events, if non-nil, receives a line per physical event for
// debug-events.
func Run(ctx context.Context, dev *evio.Device, eng *engine.Engine, events log.EventLogger) error {
	done := make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		defer close(done)
		for {
			e, err := dev.NextEvent()
			if err != nil {
				errCh <- fmt.Errorf("reading input event: %w", err)
				return
			}

			if events != nil {
				events.LogPhysical(e.Code, e.Value, e.Time)
			}

			if e.Type == evdev.EV_SYN && e.Code == evdev.SYN_DROPPED {
				errCh <- ErrOutOfSync
				return
			}

			if !e.IsKey() {
				if err := dev.PassThrough(e); err != nil {
					slog.Warn("pass-through write failed", "error", err)
				}
				continue
			}

			switch e.EngineValue() {
			case engine.Release:
				eng.OnRelease(e.Code, e.Time)
			case engine.Press:
				eng.OnPress(e.Code, e.Time)
			case engine.Repeat:
				eng.OnRepeat(e.Code, e.Time)
			}

			if err := eng.Err(); err != nil {
				errCh <- fmt.Errorf("writing to synthetic device: %w", err)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	case <-done:
		// The reader only exits after queueing its error, so both cases
		// can be ready at once; never let done hide that error.
		select {
		case err := <-errCh:
			return err
		default:
			return nil
		}
	}
}
