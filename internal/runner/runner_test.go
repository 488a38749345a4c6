package runner

import (
	"bytes"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/keycode"
	"github.com/prime-run/vimrs/internal/log"
)

type recordingSink struct {
	emitted []string
}

func (s *recordingSink) Emit(code keycode.Code, value engine.Value, t time.Duration) error {
	s.emitted = append(s.emitted, keycode.Name(code))
	return nil
}

func (s *recordingSink) Sync(t time.Duration) error { return nil }

func TestLoggingSinkDelegatesAndLogs(t *testing.T) {
	inner := &recordingSink{}
	var logged bytes.Buffer
	sink := LoggingSink{Sink: inner, Events: log.NewEvent(&logged)}

	sink.Emit(evdev.KEY_A, engine.Press, 0)

	assert.Equal(t, []string{"KEY_A"}, inner.emitted)
	assert.Contains(t, logged.String(), "out KEY_A")
}
