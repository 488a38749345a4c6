package mapping

import "github.com/prime-run/vimrs/internal/keycode"

// Index is the rule set prepared for engine lookups: DualRole triggers
// resolve immediately, chord rules (Remap/ModeSwitch) resolve by largest
// matching input set, with ModeSwitch breaking ties over Remap and
// original file order breaking any tie that remains.
type Index struct {
	rules []Rule
}

// NewIndex wraps a flattened rule set (as produced by Load) for lookup.
func NewIndex(rules []Rule) *Index {
	return &Index{rules: rules}
}

// Rules returns the rule set backing this index, in original file order.
func (ix *Index) Rules() []Rule {
	return ix.rules
}

// DualRole returns the DualRole rule whose trigger is code and whose mode
// gate admits activeMode, if any. At most one such rule is expected to
// match a given (code, activeMode) pair; the first in file order wins if
// a mapping file declares more than one.
func (ix *Index) DualRole(code keycode.Code, activeMode Mode) (*Rule, bool) {
	for i := range ix.rules {
		r := &ix.rules[i]
		if r.Kind != KindDualRole {
			continue
		}
		if r.Trigger != code {
			continue
		}
		if !eligible(r.Mode, activeMode) {
			continue
		}
		return r, true
	}
	return nil, false
}

// Chord returns the best Remap or ModeSwitch rule triggered by code given
// the full set of currently held keys: a candidate must name code among
// its inputs, have every one of its inputs held, and pass its mode/scope
// gate. The candidate with the most inputs wins; ModeSwitch beats Remap
// on a tie; file order breaks any tie that remains.
func (ix *Index) Chord(held map[keycode.Code]bool, code keycode.Code, activeMode Mode) (*Rule, bool) {
	var best *Rule
	for i := range ix.rules {
		r := &ix.rules[i]
		switch r.Kind {
		case KindRemap:
			if !eligible(r.Mode, activeMode) {
				continue
			}
		case KindModeSwitch:
			if !eligible(r.Scope, activeMode) {
				continue
			}
		default:
			continue
		}

		if !chordMatches(r, held, code) {
			continue
		}

		if best == nil || chordBeats(r, best) {
			best = r
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

func chordMatches(r *Rule, held map[keycode.Code]bool, code keycode.Code) bool {
	containsCode := false
	for _, k := range r.Inputs {
		if k == code {
			containsCode = true
		}
		if !held[k] {
			return false
		}
	}
	return containsCode
}

// chordBeats reports whether candidate should replace incumbent as the
// best chord match: more inputs wins outright; on a tie ModeSwitch beats
// Remap; a full tie keeps the incumbent (preserving file order, since
// candidates are walked in that order).
func chordBeats(candidate, incumbent *Rule) bool {
	if len(candidate.Inputs) != len(incumbent.Inputs) {
		return len(candidate.Inputs) > len(incumbent.Inputs)
	}
	return candidate.Kind == KindModeSwitch && incumbent.Kind != KindModeSwitch
}
