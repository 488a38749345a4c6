package log

import (
	"os"

	"golang.org/x/sys/unix"
)

// isTerminal reports whether f is an interactive terminal, the same
// TCGETS-ioctl check golang.org/x/term builds its IsTerminal on. Setup
// uses it to decide the default console handler style when
// EVREMAP_LOG_STYLE is unset.
func isTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}
