package mapping

import "github.com/prime-run/vimrs/internal/keycode"

// Mode names an active modal layer. The zero value is never used as a
// live mode; engines start in ModeDefault.
type Mode string

// ModeDefault is the mode every engine starts in and the mode implicit
// [[remap]] entries (no mode table) belong to.
const ModeDefault Mode = "default"

// Kind tags which of the three rule shapes a Rule is.
type Kind int

const (
	KindDualRole Kind = iota
	KindRemap
	KindModeSwitch
)

// Rule is one entry of a mapping set, one of DualRole, Remap, or
// ModeSwitch. Mode/Scope being the zero Mode means "globally applicable";
// a non-zero value means "only when the active mode equals this value".
type Rule struct {
	Kind Kind

	// DualRole fields.
	Trigger keycode.Code
	Hold    []keycode.Code
	Tap     []keycode.Code

	// Remap / ModeSwitch fields.
	Inputs []keycode.Code

	// Remap output / ModeSwitch target.
	Outputs []keycode.Code
	Target  Mode

	// Mode is the DualRole/Remap eligibility gate; Scope is the same gate
	// for ModeSwitch. Only one is ever set for a given Kind, but both are
	// plain Mode values so zero means "global" for either.
	Mode  Mode
	Scope Mode
}

// inputSet returns the keys this rule's chord is keyed on, for the rule
// kinds that have one (Remap, ModeSwitch). DualRole's trigger is a single
// key and is not represented as a set.
func (r *Rule) inputSet() map[keycode.Code]bool {
	s := make(map[keycode.Code]bool, len(r.Inputs))
	for _, k := range r.Inputs {
		s[k] = true
	}
	return s
}

func eligible(ruleMode, activeMode Mode) bool {
	if ruleMode == "" {
		return true
	}
	return ruleMode == activeMode
}

// Eligible reports whether this rule applies under activeMode: DualRole
// and Remap are gated by Mode, ModeSwitch by Scope.
func (r *Rule) Eligible(activeMode Mode) bool {
	if r.Kind == KindModeSwitch {
		return eligible(r.Scope, activeMode)
	}
	return eligible(r.Mode, activeMode)
}
