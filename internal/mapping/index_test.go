package mapping_test

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime-run/vimrs/internal/mapping"
)

func TestIndexChordPrefersLargerInputSet(t *testing.T) {
	rules := []mapping.Rule{
		{
			Kind:    mapping.KindRemap,
			Inputs:  []evdev.EvCode{evdev.KEY_A, evdev.KEY_S},
			Outputs: []evdev.EvCode{evdev.KEY_TAB},
			Mode:    mapping.ModeDefault,
		},
		{
			Kind:    mapping.KindRemap,
			Inputs:  []evdev.EvCode{evdev.KEY_A, evdev.KEY_S, evdev.KEY_D},
			Outputs: []evdev.EvCode{evdev.KEY_ESC},
			Mode:    mapping.ModeDefault,
		},
	}
	ix := mapping.NewIndex(rules)

	held := map[evdev.EvCode]bool{evdev.KEY_A: true, evdev.KEY_S: true, evdev.KEY_D: true}
	best, ok := ix.Chord(held, evdev.KEY_D, mapping.ModeDefault)
	require.True(t, ok)
	assert.Equal(t, []evdev.EvCode{evdev.KEY_ESC}, best.Outputs)
}

func TestIndexChordModeSwitchBeatsRemapOnTie(t *testing.T) {
	rules := []mapping.Rule{
		{
			Kind:   mapping.KindRemap,
			Inputs: []evdev.EvCode{evdev.KEY_A, evdev.KEY_S},
			Mode:   mapping.ModeDefault,
		},
		{
			Kind:   mapping.KindModeSwitch,
			Inputs: []evdev.EvCode{evdev.KEY_A, evdev.KEY_S},
			Target: "nav",
			Scope:  "",
		},
	}
	ix := mapping.NewIndex(rules)

	held := map[evdev.EvCode]bool{evdev.KEY_A: true, evdev.KEY_S: true}
	best, ok := ix.Chord(held, evdev.KEY_A, mapping.ModeDefault)
	require.True(t, ok)
	assert.Equal(t, mapping.KindModeSwitch, best.Kind)
}

func TestIndexChordRequiresCodeAmongInputs(t *testing.T) {
	rules := []mapping.Rule{
		{Kind: mapping.KindRemap, Inputs: []evdev.EvCode{evdev.KEY_A, evdev.KEY_S}, Mode: mapping.ModeDefault},
	}
	ix := mapping.NewIndex(rules)

	held := map[evdev.EvCode]bool{evdev.KEY_A: true, evdev.KEY_S: true}
	_, ok := ix.Chord(held, evdev.KEY_D, mapping.ModeDefault)
	assert.False(t, ok)
}

func TestIndexDualRoleRespectsModeGate(t *testing.T) {
	rules := []mapping.Rule{
		{Kind: mapping.KindDualRole, Trigger: evdev.KEY_CAPSLOCK, Mode: "nav"},
	}
	ix := mapping.NewIndex(rules)

	_, ok := ix.DualRole(evdev.KEY_CAPSLOCK, mapping.ModeDefault)
	assert.False(t, ok)

	r, ok := ix.DualRole(evdev.KEY_CAPSLOCK, "nav")
	require.True(t, ok)
	assert.Equal(t, evdev.EvCode(evdev.KEY_CAPSLOCK), r.Trigger)
}
