package cli

import (
	"fmt"
	"log/slog"

	"github.com/prime-run/vimrs/internal/evio"
)

// ListDevicesCmd prints every /dev/input device node vimrs can see.
type ListDevicesCmd struct{}

func (c *ListDevicesCmd) Run(logger *slog.Logger) error {
	infos, err := evio.ListDevices()
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}

	for _, info := range infos {
		fmt.Printf("%-20s %-30s %s\n", info.Path, info.Name, info.Phys)
	}
	return nil
}
