package log

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminalFalseForRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	assert.NoError(t, err)
	defer f.Close()

	assert.False(t, isTerminal(f))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, LevelTrace < ParseLevel("debug"), true)
}
