package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"

	"github.com/prime-run/vimrs/internal/cli"
	"github.com/prime-run/vimrs/internal/log"
)

func main() {
	args := preprocessArgs(os.Args[1:])

	opts := []kong.Option{
		kong.Name("vimrs"),
		kong.Description("Remaps keyboard input at the evdev layer."),
		kong.UsageOnError(),
	}
	if configFile := findConfigFile(args); configFile != "" {
		opts = append(opts, kong.Configuration(kongtoml.Loader, configFile))
	}

	var c cli.CLI
	parser, err := kong.New(&c, opts...)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	logger := log.Setup()
	ctx.Bind(logger)

	if err := ctx.Run(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// preprocessArgs inserts the "remap" subcommand when the first argument
// is neither a known subcommand nor a flag: "vimrs foo.toml" is shorthand
// for "vimrs remap foo.toml", the same bare-path convenience the
// original evremap CLI offered via clap's optional top-level argument.
func preprocessArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	first := args[0]
	if strings.HasPrefix(first, "-") {
		return args
	}
	for _, name := range cli.CommandNames() {
		if first == name {
			return args
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, "remap")
	out = append(out, args...)
	return out
}

// findConfigFile returns the mapping file path so kong-toml can source
// --device-name/--phys flag defaults from its device_name/phys keys.
// Only the remap command takes a mapping file; every other subcommand
// returns "" (no config file) even if one of its flag values happens to
// look like a path.
func findConfigFile(args []string) string {
	if len(args) == 0 || args[0] != "remap" {
		return ""
	}
	for i := 1; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
