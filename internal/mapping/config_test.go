package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime-run/vimrs/internal/mapping"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTopLevelRemapIsModeDefault(t *testing.T) {
	path := writeConfig(t, `
device_name = "Test Keyboard"

[[dual_role]]
input = "KEY_CAPSLOCK"
hold = ["KEY_LEFTCTRL"]
tap = ["KEY_ESC"]

[[remap]]
input = ["KEY_A", "KEY_S"]
output = ["KEY_TAB"]
`)

	cfg, err := mapping.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Keyboard", cfg.DeviceName)
	require.Len(t, cfg.Rules, 2)

	dr := cfg.Rules[0]
	assert.Equal(t, mapping.KindDualRole, dr.Kind)
	assert.Equal(t, evdev.EvCode(evdev.KEY_CAPSLOCK), dr.Trigger)
	assert.Equal(t, mapping.Mode(""), dr.Mode)

	rm := cfg.Rules[1]
	assert.Equal(t, mapping.KindRemap, rm.Kind)
	assert.Equal(t, mapping.ModeDefault, rm.Mode)
	assert.ElementsMatch(t, []evdev.EvCode{evdev.KEY_A, evdev.KEY_S}, rm.Inputs)
}

func TestLoadModeSwitchStaysGlobalAtTopLevel(t *testing.T) {
	path := writeConfig(t, `
[[mode_switch]]
input = ["KEY_LEFTCTRL", "KEY_LEFTALT"]
mode = "nav"

[modes.nav]
remap = [{ input = ["KEY_H"], output = ["KEY_LEFT"] }]
switch = [{ input = ["KEY_ESC"], mode = "default" }]
`)

	cfg, err := mapping.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 3)

	var global, scoped *mapping.Rule
	for i := range cfg.Rules {
		r := &cfg.Rules[i]
		if r.Kind != mapping.KindModeSwitch {
			continue
		}
		if r.Target == "nav" {
			global = r
		} else if r.Target == "default" {
			scoped = r
		}
	}

	require.NotNil(t, global)
	assert.Equal(t, mapping.Mode(""), global.Scope)

	require.NotNil(t, scoped)
	assert.Equal(t, mapping.Mode("nav"), scoped.Scope)
}

func TestLoadUnknownKeyFails(t *testing.T) {
	path := writeConfig(t, `
[[dual_role]]
input = "KEY_NOT_A_REAL_KEY"
hold = ["KEY_LEFTCTRL"]
tap = ["KEY_ESC"]
`)

	_, err := mapping.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KEY_NOT_A_REAL_KEY")
}

func TestLoadModeSwitchEmptyTargetFails(t *testing.T) {
	path := writeConfig(t, `
[[mode_switch]]
input = ["KEY_LEFTCTRL"]
mode = ""
`)

	_, err := mapping.Load(path)
	require.Error(t, err)
}
