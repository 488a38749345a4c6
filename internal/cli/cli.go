// Package cli defines the kong command structs vimrs's subcommands are
// built from. Each command is a plain struct with a Run method; shared
// dependencies (the logger) are injected by kong.Bind in cmd/vimrs, the
// same wiring the teacher's cmd/viiper/viiper.go uses.
package cli

// CLI is the top-level kong command set. Remap is also the implicit
// command a bare "vimrs some-file.toml" invocation resolves to (see
// cmd/vimrs/main.go's argument preprocessing).
type CLI struct {
	Remap       RemapCmd       `cmd:"" help:"Grab an input device and apply a mapping file."`
	ListDevices ListDevicesCmd `cmd:"" name:"list-devices" help:"Print every /dev/input device with its name and phys path."`
	ListKeys    ListKeysCmd    `cmd:"" name:"list-keys" help:"Print every KEY_* name vimrs understands."`
	DebugEvents DebugEventsCmd `cmd:"" name:"debug-events" help:"Grab a device and print its raw event stream without applying a mapping."`
}

// CommandNames lists every subcommand cmd/vimrs's argument preprocessing
// needs to recognize, so it can tell a subcommand name from a bare
// mapping-file path.
func CommandNames() []string {
	return []string{"remap", "list-devices", "list-keys", "debug-events"}
}
