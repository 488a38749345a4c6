package evio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/holoplot/go-evdev"
)

// Info is the Name/Path/Phys triple list-devices prints.
type Info struct {
	Name string
	Path string
	Phys string
}

// ListDevices walks /dev/input/event* and returns Name/Path/Phys for
// every device node that opens successfully, sorted by path.
func ListDevices() ([]Info, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", entry.Name())
		d, err := evdev.OpenWithFlags(path, os.O_RDONLY)
		if err != nil {
			continue
		}
		name, _ := d.Name()
		phys, _ := d.PhysicalLocation()
		d.Close()
		infos = append(infos, Info{Name: name, Path: path, Phys: phys})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

// FindDevice returns the path of the first device whose name contains
// nameSubstring (case-sensitive, matching the original's substring
// match) and, when phys is non-empty, whose phys matches exactly.
func FindDevice(nameSubstring, phys string) (string, error) {
	infos, err := ListDevices()
	if err != nil {
		return "", err
	}

	for _, info := range infos {
		if nameSubstring != "" && !strings.Contains(info.Name, nameSubstring) {
			continue
		}
		if phys != "" && info.Phys != phys {
			continue
		}
		return info.Path, nil
	}

	return "", &ErrDeviceNotFound{NameSubstring: nameSubstring, Phys: phys}
}

// ErrDeviceNotFound is returned by FindDevice when no device node
// matches the requested name/phys; WaitForDevice retries on it instead.
type ErrDeviceNotFound struct {
	NameSubstring string
	Phys          string
}

func (e *ErrDeviceNotFound) Error() string {
	if e.Phys != "" {
		return "no input device found matching name \"" + e.NameSubstring + "\" and phys \"" + e.Phys + "\""
	}
	return "no input device found matching name \"" + e.NameSubstring + "\""
}
