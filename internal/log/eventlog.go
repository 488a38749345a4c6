package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prime-run/vimrs/internal/keycode"
)

// EventLogger prints one line per physical/synthetic key event, the
// format debug-events writes to stdout. A nil writer makes it a no-op,
// so callers can construct one unconditionally and only wire a real
// writer in behind the flag that asked for it.
type EventLogger interface {
	LogPhysical(code keycode.Code, value int32, t time.Duration)
	LogSynthetic(code keycode.Code, value int32, t time.Duration)
}

type eventLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewEvent creates a new EventLogger. If w is nil, returns a no-op logger.
func NewEvent(w io.Writer) EventLogger {
	return &eventLogger{w: w}
}

func (l *eventLogger) LogPhysical(code keycode.Code, value int32, t time.Duration) {
	l.log("in ", code, value, t)
}

func (l *eventLogger) LogSynthetic(code keycode.Code, value int32, t time.Duration) {
	l.log("out", code, value, t)
}

func (l *eventLogger) log(dir string, code keycode.Code, value int32, t time.Duration) {
	if l.w == nil {
		return
	}

	line := fmt.Sprintf("%s %s %-16s value=%d\n", t, dir, keycode.Name(code), value)

	l.mu.Lock()
	_, _ = l.w.Write([]byte(line))
	l.mu.Unlock()
}
