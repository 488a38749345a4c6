package evio_test

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/evio"
)

func TestEventIsKey(t *testing.T) {
	key := evio.Event{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1}
	assert.True(t, key.IsKey())
	assert.Equal(t, engine.Press, key.EngineValue())

	rel := evio.Event{Type: evdev.EV_REL}
	assert.False(t, rel.IsKey())
}

func TestErrDeviceNotFoundMessage(t *testing.T) {
	err := &evio.ErrDeviceNotFound{NameSubstring: "Keyboard"}
	assert.Contains(t, err.Error(), "Keyboard")

	err2 := &evio.ErrDeviceNotFound{NameSubstring: "Keyboard", Phys: "usb-0000:00:14.0-1"}
	assert.Contains(t, err2.Error(), "usb-0000:00:14.0-1")
}
