package cli

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/prime-run/vimrs/internal/keycode"
)

// ListKeysCmd prints every KEY_* literal a mapping file can reference.
type ListKeysCmd struct{}

func (c *ListKeysCmd) Run(logger *slog.Logger) error {
	names := keycode.All()
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
