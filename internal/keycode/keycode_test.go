package keycode_test

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime-run/vimrs/internal/keycode"
)

func TestParseKnownKey(t *testing.T) {
	c, err := keycode.Parse("KEY_CAPSLOCK")
	require.NoError(t, err)
	assert.Equal(t, keycode.Code(evdev.KEY_CAPSLOCK), c)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := keycode.Parse("KEY_DEFINITELY_NOT_REAL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KEY_DEFINITELY_NOT_REAL")
}

func TestNameRoundTrips(t *testing.T) {
	assert.Equal(t, "KEY_CAPSLOCK", keycode.Name(evdev.KEY_CAPSLOCK))
}

func TestIsModifier(t *testing.T) {
	assert.True(t, keycode.IsModifier(evdev.KEY_LEFTCTRL))
	assert.True(t, keycode.IsModifier(evdev.KEY_RIGHTSHIFT))
	assert.False(t, keycode.IsModifier(evdev.KEY_A))
}

func TestAllIncludesCommonKeys(t *testing.T) {
	names := keycode.All()
	assert.Contains(t, names, "KEY_A")
	assert.Contains(t, names, "KEY_CAPSLOCK")
}
