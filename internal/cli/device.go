package cli

import (
	"fmt"
	"log/slog"

	"github.com/prime-run/vimrs/internal/evio"
)

// resolveDevicePath finds the /dev/input node to grab from name/phys as
// given (RemapCmd.Run has already let its flags win over the mapping
// file's device_name/phys); waitForDevice switches FindDevice's single
// lookup for WaitForDevice's backoff loop.
func resolveDevicePath(name, phys string, waitForDevice bool, logger *slog.Logger) (string, error) {
	if name == "" && phys == "" {
		return "", fmt.Errorf("no device selection given: set device_name/phys in the mapping file or pass --device-name/--phys")
	}

	if waitForDevice {
		logger.Info("waiting for device", "name", name, "phys", phys)
		return evio.WaitForDevice(name, phys)
	}

	path, err := evio.FindDevice(name, phys)
	if err != nil {
		return "", fmt.Errorf("finding device: %w", err)
	}
	return path, nil
}
