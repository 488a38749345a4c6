package engine

import (
	"time"

	"github.com/prime-run/vimrs/internal/keycode"
	"github.com/prime-run/vimrs/internal/mapping"
)

// computeDesired is the pure function of state producing the key set that
// should be pressed on the output device right now.
//
// A dual-role trigger that is still the pending tap candidate contributes
// nothing here (not itself, not its hold keys): whether it resolves to a
// tap or a hold is undecided until a later event forces the question, so
// nothing should hit the wire in the meantime. The trigger resolves to
// hold the moment another key's press clears tapCandidate (OnPress) or
// this same key autorepeats (OnRepeat); it resolves to tap if it is released
// inside the window with nothing having intervened.
func (e *Engine) computeDesired() map[keycode.Code]bool {
	desired := make(map[keycode.Code]bool, len(e.held))
	for k := range e.held {
		desired[k] = true
	}
	for k := range e.suppressed {
		delete(desired, k)
	}

	for _, r := range e.index.Rules() {
		if r.Kind != mapping.KindDualRole {
			continue
		}
		if !r.Eligible(e.mode) {
			continue
		}
		if !desired[r.Trigger] {
			continue
		}
		if e.tapCandidateSet && e.tapCandidate == r.Trigger {
			delete(desired, r.Trigger)
			continue
		}
		delete(desired, r.Trigger)
		for _, h := range r.Hold {
			desired[h] = true
		}
	}

	for _, ar := range e.engaged {
		if ar.Kind != mapping.KindRemap {
			continue
		}
		if !eligibleMode(ar.Mode, e.mode) {
			continue
		}
		for _, in := range ar.Inputs {
			delete(desired, in)
		}
		for _, out := range ar.Outputs {
			desired[out] = true
		}
	}

	return desired
}

func eligibleMode(ruleMode, activeMode mapping.Mode) bool {
	if ruleMode == "" {
		return true
	}
	return ruleMode == activeMode
}

// pruneSuppressed drops any suppressed key that is no longer physically
// held, garbage-collecting stale suppression entries.
func (e *Engine) pruneSuppressed() {
	for k := range e.suppressed {
		if _, held := e.held[k]; !held {
			delete(e.suppressed, k)
		}
	}
}

// OnPress handles a physical key-down at time t.
func (e *Engine) OnPress(k keycode.Code, t time.Duration) {
	// A pending dual-role candidate for some other key resolves to
	// hold the moment any key is pressed. Flush that resolution
	// through its own apply, before k joins e.held, so the hold
	// substitution and whatever k's own press produces land in two
	// separate sync batches rather than one combined one.
	if e.tapCandidateSet && e.tapCandidate != k {
		e.tapCandidateSet = false
		e.apply(t)
	}

	e.held[k] = t
	e.pruneSuppressed()

	if e.suppressed[k] {
		e.apply(t)
		return
	}

	if r, ok := e.index.DualRole(k, e.mode); ok {
		e.engaged = append(e.engaged, ActiveRule{
			Kind:    mapping.KindDualRole,
			Inputs:  []keycode.Code{k},
			Outputs: r.Hold,
			Mode:    r.Mode,
		})
		e.tapCandidate = k
		e.tapCandidateSet = true
		e.tapPressedAt = t
		e.apply(t)
		return
	}

	if r, ok := e.index.Chord(e.heldSet(), k, e.mode); ok {
		switch r.Kind {
		case mapping.KindRemap:
			if !e.hasIdenticalEngaged(mapping.KindRemap, r.Inputs) {
				e.engaged = append(e.engaged, ActiveRule{
					Kind:    mapping.KindRemap,
					Inputs:  r.Inputs,
					Outputs: r.Outputs,
					Mode:    r.Mode,
				})
			}
			e.tapCandidate = k
			e.tapCandidateSet = true
			e.tapPressedAt = t
			e.apply(t)
		case mapping.KindModeSwitch:
			e.mode = r.Target
			if !e.hasIdenticalEngaged(mapping.KindModeSwitch, r.Inputs) {
				e.engaged = append(e.engaged, ActiveRule{
					Kind:   mapping.KindModeSwitch,
					Inputs: r.Inputs,
					Mode:   r.Scope,
				})
			}
			for _, in := range r.Inputs {
				if !keycode.IsModifier(in) {
					e.suppressed[in] = true
				}
			}
			e.apply(t)
		}
		return
	}

	e.apply(t)
}

func (e *Engine) hasIdenticalEngaged(kind mapping.Kind, inputs []keycode.Code) bool {
	for _, ar := range e.engaged {
		if ar.Kind != kind || len(ar.Inputs) != len(inputs) {
			continue
		}
		match := true
		for _, in := range inputs {
			if !ar.hasInput(in) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (e *Engine) heldSet() map[keycode.Code]bool {
	s := make(map[keycode.Code]bool, len(e.held))
	for k := range e.held {
		s[k] = true
	}
	return s
}

// OnRelease handles a physical key-up at time t.
func (e *Engine) OnRelease(k keycode.Code, t time.Duration) {
	pressedAt, wasHeld := e.held[k]
	delete(e.held, k)
	e.pruneSuppressed()

	var broken []ActiveRule
	kept := e.engaged[:0:0]
	for _, ar := range e.engaged {
		if ar.hasInput(k) {
			broken = append(broken, ar)
			continue
		}
		kept = append(kept, ar)
	}
	e.engaged = kept

	for _, ar := range broken {
		for _, residual := range ar.Inputs {
			if residual == k || keycode.IsModifier(residual) {
				continue
			}
			if _, stillHeld := e.held[residual]; stillHeld {
				e.suppressed[residual] = true
			}
		}
	}

	e.apply(t)

	if wasHeld && e.tapCandidateSet && e.tapCandidate == k {
		if r, ok := e.index.DualRole(k, e.mode); ok && t-pressedAt <= tapWindow {
			for _, x := range r.Tap {
				e.recordErr(e.sink.Emit(x, Press, t))
				e.recordErr(e.sink.Sync(t))
				e.recordErr(e.sink.Emit(x, Release, t))
				e.recordErr(e.sink.Sync(t))
			}
		}
		e.tapCandidateSet = false
	}
}

// OnRepeat handles a physical key-repeat at time t.
func (e *Engine) OnRepeat(k keycode.Code, t time.Duration) {
	if e.suppressed[k] {
		return
	}

	if e.tapCandidateSet && e.tapCandidate == k {
		// The kernel only autorepeats a key held well past the tap
		// window, so a self-repeat always resolves a pending dual-role
		// trigger to hold.
		e.tapCandidateSet = false
		e.apply(t)
	}

	if e.emitRepeatForEngaged(k, t) {
		return
	}

	if r, ok := e.index.DualRole(k, e.mode); ok {
		for _, h := range r.Hold {
			e.recordErr(e.sink.Emit(h, Repeat, t))
		}
		if len(r.Hold) > 0 {
			e.recordErr(e.sink.Sync(t))
		}
		return
	}
	if r, ok := e.index.Chord(e.heldSet(), k, e.mode); ok && r.Kind == mapping.KindRemap {
		for _, out := range r.Outputs {
			e.recordErr(e.sink.Emit(out, Repeat, t))
		}
		if len(r.Outputs) > 0 {
			e.recordErr(e.sink.Sync(t))
		}
		return
	}

	e.recordErr(e.sink.Emit(k, Repeat, t))
	e.recordErr(e.sink.Sync(t))
}

// emitRepeatForEngaged looks for an engaged rule covering k and, if
// found, emits its repeat output: the most recently engaged rule whose
// inputs contain k wins, regardless of whether it's a DualRole or a
// Remap. ModeSwitch entries never repeat. Reports whether it emitted
// anything, so the caller can fall back to the lookup index.
func (e *Engine) emitRepeatForEngaged(k keycode.Code, t time.Duration) bool {
	idx := -1

	for i, ar := range e.engaged {
		if ar.Kind == mapping.KindModeSwitch {
			continue
		}
		if !eligibleMode(ar.Mode, e.mode) || !ar.hasInput(k) {
			continue
		}
		idx = i
	}

	if idx == -1 {
		return false
	}

	for _, out := range e.engaged[idx].Outputs {
		e.recordErr(e.sink.Emit(out, Repeat, t))
	}
	e.recordErr(e.sink.Sync(t))
	return true
}
