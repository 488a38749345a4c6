package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prime-run/vimrs/internal/engine"
	"github.com/prime-run/vimrs/internal/evio"
	"github.com/prime-run/vimrs/internal/log"
	"github.com/prime-run/vimrs/internal/mapping"
	"github.com/prime-run/vimrs/internal/runner"
)

// DebugEventsCmd grabs a device with an identity mapping (no rules) and
// prints every physical and synthetic event to stdout, for diagnosing a
// mapping file against real hardware before trusting it.
type DebugEventsCmd struct {
	DeviceName string `help:"Device name substring to match."`
	Phys       string `help:"Exact phys path to match."`
}

func (c *DebugEventsCmd) Run(logger *slog.Logger) error {
	path, err := resolveDevicePath(c.DeviceName, c.Phys, false, logger)
	if err != nil {
		return err
	}

	dev, err := evio.Open(path, nil)
	if err != nil {
		return fmt.Errorf("opening device: %w", err)
	}
	defer dev.Close()

	events := log.NewEvent(os.Stdout)
	sink := runner.LoggingSink{Sink: dev, Events: events}
	eng := engine.New(mapping.NewIndex(nil), sink)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("streaming events, no mapping applied", "device", path)
	return runner.Run(ctx, dev, eng, events)
}
