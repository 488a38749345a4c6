// Package keycode names the opaque key tokens the remap engine operates
// on and classifies the modifier subset of them.
//
// Codes are the kernel's own evdev KEY_* numbering (github.com/holoplot/go-evdev),
// not a HID usage table: vimrs grabs /dev/input device nodes directly, so the
// vocabulary it speaks end to end is the one the kernel already uses.
package keycode

import (
	"fmt"

	"github.com/holoplot/go-evdev"
)

// Code is a single evdev key code, e.g. the value of evdev.KEY_CAPSLOCK.
type Code = evdev.EvCode

// ErrUnknownKey is returned by Parse when a config file names a key that
// does not exist in the kernel's KEY_* table.
type ErrUnknownKey struct {
	Name string
}

func (e *ErrUnknownKey) Error() string {
	return fmt.Sprintf("invalid key `%s`. Use `vimrs list-keys` to see possible keys", e.Name)
}

// Parse resolves a "KEY_*" literal (as it appears in a TOML mapping file)
// to its evdev code.
func Parse(name string) (Code, error) {
	code, ok := evdev.KEYFromString[name]
	if !ok {
		return 0, &ErrUnknownKey{Name: name}
	}
	return code, nil
}

// Name renders a code back to its canonical "KEY_*" literal, falling back
// to a numeric form for codes the library doesn't recognize.
func Name(c Code) string {
	if n, ok := evdev.KEYToString[c]; ok {
		return n
	}
	return fmt.Sprintf("KEY_%d", c)
}

// All returns every "KEY_*" literal known to the library, used by the
// list-keys CLI command. The order is not significant; callers sort it.
func All() []string {
	names := make([]string, 0, len(evdev.KEYToString))
	for _, n := range evdev.KEYToString {
		names = append(names, n)
	}
	return names
}

// modifiers is the Fn/Alt/Meta/Ctrl/Shift family, left and right variants,
// per spec. Modifiers are never suppressed and sort first on press / last
// on release in an emitted batch.
var modifiers = map[Code]bool{
	evdev.KEY_FN:         true,
	evdev.KEY_LEFTALT:    true,
	evdev.KEY_RIGHTALT:   true,
	evdev.KEY_LEFTMETA:   true,
	evdev.KEY_RIGHTMETA:  true,
	evdev.KEY_LEFTCTRL:   true,
	evdev.KEY_RIGHTCTRL:  true,
	evdev.KEY_LEFTSHIFT:  true,
	evdev.KEY_RIGHTSHIFT: true,
}

// IsModifier reports whether c belongs to the Fn/Alt/Meta/Ctrl/Shift family.
func IsModifier(c Code) bool {
	return modifiers[c]
}
