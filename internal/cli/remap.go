package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/evio"
	"github.com/prime-run/vimrs/internal/mapping"
	"github.com/prime-run/vimrs/internal/runner"
)

// RemapCmd grabs a device and applies a mapping file until interrupted.
type RemapCmd struct {
	ConfigFile string `arg:"" type:"existingfile" help:"Mapping TOML file."`

	DeviceName    string  `name:"device-name" help:"Device name substring to match (overrides the mapping file's device_name)."`
	Phys          string  `name:"phys" help:"Exact phys path to match (overrides the mapping file's phys)."`
	WaitForDevice bool    `help:"Retry with backoff until the device appears instead of failing immediately."`
	Delay         float64 `help:"Seconds to wait before grabbing, so you can release any keys you're holding." default:"2.0"`
}

// Run is called by kong when the remap command (or the bare positional
// form, see cmd/vimrs/main.go) is executed.
func (r *RemapCmd) Run(logger *slog.Logger) error {
	cfg, err := mapping.Load(r.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading mapping file: %w", err)
	}

	deviceName := r.DeviceName
	if deviceName == "" {
		deviceName = cfg.DeviceName
	}
	phys := r.Phys
	if phys == "" {
		phys = cfg.Phys
	}

	path, err := resolveDevicePath(deviceName, phys, r.WaitForDevice, logger)
	if err != nil {
		return err
	}

	logger.Warn("release any keys you are holding, grabbing device in", "delay_seconds", r.Delay, "device", path)
	time.Sleep(time.Duration(r.Delay * float64(time.Second)))

	dev, err := evio.Open(path, cfg.Rules)
	if err != nil {
		return fmt.Errorf("opening device: %w", err)
	}
	defer dev.Close()

	eng := engine.New(mapping.NewIndex(cfg.Rules), dev)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("remapping active", "device", path)
	return runner.Run(ctx, dev, eng, nil)
}
