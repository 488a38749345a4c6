package evio

import (
	"fmt"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/keycode"
	"github.com/prime-run/vimrs/internal/mapping"
)

// Device pairs the grabbed physical input device with the synthetic
// output device the remapped stream is written to. It implements
// engine.Sink directly so the engine can write through it without an
// adapter type.
type Device struct {
	source *evdev.InputDevice
	sink   *evdev.InputDevice
}

// Open opens path, widens a capability set covering every key any rule
// in rules might emit, grabs path exclusively, and creates a synthetic
// uinput device advertising that widened set.
func Open(path string, rules []mapping.Rule) (*Device, error) {
	source, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	name, _ := source.Name()
	if name == "" {
		name = path
	}

	caps := capabilitiesFor(source, rules)

	if err := source.Grab(); err != nil {
		source.Close()
		return nil, fmt.Errorf("grabbing %s: %w", path, err)
	}

	sink, err := evdev.CreateDevice("vimrs virtual "+name, evdev.InputID{
		BusType: 0x06, // BUS_VIRTUAL
		Vendor:  0x1209,
		Product: 0x0001,
		Version: 1,
	}, caps)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("creating virtual device for %s: %w", path, err)
	}

	return &Device{source: source, sink: sink}, nil
}

// capabilitiesFor is the Go analogue of the original's enable_key_code
// pass over every DualRole.Hold/Tap and Remap.Output key before creating
// the synthetic device: it must be able to report any key the mapping
// set might emit, even when the physical keyboard itself doesn't have
// that key.
func capabilitiesFor(source *evdev.InputDevice, rules []mapping.Rule) map[evdev.EvType][]evdev.EvCode {
	caps := map[evdev.EvType][]evdev.EvCode{}
	for _, t := range source.CapableTypes() {
		caps[t] = source.CapableEvents(t)
	}

	extra := map[keycode.Code]bool{}
	for _, r := range rules {
		for _, k := range r.Hold {
			extra[k] = true
		}
		for _, k := range r.Tap {
			extra[k] = true
		}
		for _, k := range r.Outputs {
			extra[k] = true
		}
	}

	existing := map[keycode.Code]bool{}
	for _, k := range caps[evdev.EV_KEY] {
		existing[k] = true
	}
	for k := range extra {
		if !existing[k] {
			caps[evdev.EV_KEY] = append(caps[evdev.EV_KEY], k)
			existing[k] = true
		}
	}

	return caps
}

// NextEvent blocks for the next raw event on the physical device.
func (d *Device) NextEvent() (Event, error) {
	raw, err := d.source.ReadOne()
	if err != nil {
		return Event{}, err
	}
	return fromRaw(raw), nil
}

// PassThrough writes a non-key event (mouse, scroll, LEDs, ...) through
// to the synthetic device unchanged.
func (d *Device) PassThrough(e Event) error {
	return d.sink.WriteOne(toRaw(e))
}

// Emit implements engine.Sink: writes a single key event at time t.
func (d *Device) Emit(code keycode.Code, value engine.Value, t time.Duration) error {
	if err := d.sink.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_KEY,
		Code:  code,
		Value: int32(value),
	}); err != nil {
		return fmt.Errorf("writing key event to synthetic device: %w", err)
	}
	return nil
}

// Sync implements engine.Sink: writes a SYN_REPORT marker.
func (d *Device) Sync(t time.Duration) error {
	if err := d.sink.WriteOne(&evdev.InputEvent{
		Type: evdev.EV_SYN,
		Code: evdev.SYN_REPORT,
	}); err != nil {
		return fmt.Errorf("writing sync to synthetic device: %w", err)
	}
	return nil
}

// Close releases both devices.
func (d *Device) Close() error {
	sourceErr := d.source.Close()
	sinkErr := d.sink.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return sinkErr
}
