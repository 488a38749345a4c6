package evio

import (
	"log/slog"
	"time"
)

// WaitForDevice retries FindDevice with a 1s-doubling-to-10s backoff
// until a matching device appears. Acquisition errors are logged at
// debug level, not surfaced, while waiting; this never returns until it
// finds a match.
func WaitForDevice(nameSubstring, phys string) (string, error) {
	delay := time.Second
	const maxDelay = 10 * time.Second

	for {
		path, err := FindDevice(nameSubstring, phys)
		if err == nil {
			return path, nil
		}

		slog.Debug("device not yet present, retrying", "name", nameSubstring, "phys", phys, "delay", delay, "error", err)
		time.Sleep(delay)

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}
