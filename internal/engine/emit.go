package engine

import (
	"sort"
	"time"

	"github.com/prime-run/vimrs/internal/keycode"
)

// apply diffs the freshly computed desired set against emitted and
// drives the sink: releases first (non-modifiers before modifiers, so a
// mapped combo like Ctrl-C doesn't leave a bare C visible even for an
// instant), then presses (modifiers before non-modifiers, for the
// opposite reason).
func (e *Engine) apply(t time.Duration) {
	desired := e.computeDesired()

	var toRelease, toPress []keycode.Code
	for k := range e.emitted {
		if !desired[k] {
			toRelease = append(toRelease, k)
		}
	}
	for k := range desired {
		if !e.emitted[k] {
			toPress = append(toPress, k)
		}
	}

	if len(toRelease) > 0 {
		sort.Slice(toRelease, func(i, j int) bool {
			return modifiersLast(toRelease[i], toRelease[j])
		})
		for _, k := range toRelease {
			e.recordErr(e.sink.Emit(k, Release, t))
		}
		e.recordErr(e.sink.Sync(t))
	}

	if len(toPress) > 0 {
		sort.Slice(toPress, func(i, j int) bool {
			return modifiersFirst(toPress[i], toPress[j])
		})
		for _, k := range toPress {
			e.recordErr(e.sink.Emit(k, Press, t))
		}
		e.recordErr(e.sink.Sync(t))
	}

	e.emitted = desired
}

// modifiersLast orders non-modifiers before modifiers.
func modifiersLast(a, b keycode.Code) bool {
	am, bm := keycode.IsModifier(a), keycode.IsModifier(b)
	if am == bm {
		return a < b
	}
	return bm
}

// modifiersFirst orders modifiers before non-modifiers.
func modifiersFirst(a, b keycode.Code) bool {
	am, bm := keycode.IsModifier(a), keycode.IsModifier(b)
	if am == bm {
		return a < b
	}
	return am
}
