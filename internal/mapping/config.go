package mapping

import (
	"fmt"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"

	"github.com/prime-run/vimrs/internal/keycode"
)

// Config is the decoded form of a mapping TOML file: the device selection
// hints plus the flattened, ordered rule set the engine consumes.
type Config struct {
	DeviceName string
	Phys       string
	Rules      []Rule
}

// tomlDualRole mirrors a [[dual_role]] (or [modes.<name>] dual_role[]) entry.
type tomlDualRole struct {
	Input string   `toml:"input"`
	Hold  []string `toml:"hold"`
	Tap   []string `toml:"tap"`
}

// tomlRemap mirrors a [[remap]] (or [modes.<name>] remap[]) entry.
type tomlRemap struct {
	Input  []string `toml:"input"`
	Output []string `toml:"output"`
}

// tomlModeSwitch mirrors a [[mode_switch]] entry.
type tomlModeSwitch struct {
	Input []string `toml:"input"`
	Mode  string   `toml:"mode"`
}

// tomlModeSection mirrors a [modes.<name>] table: its own dual_role/remap
// arrays, plus "switch" (the mode_switch concept, scoped to this mode).
type tomlModeSection struct {
	DualRole []tomlDualRole   `toml:"dual_role"`
	Remap    []tomlRemap      `toml:"remap"`
	Switch   []tomlModeSwitch `toml:"switch"`
}

type tomlConfig struct {
	DeviceName string                     `toml:"device_name"`
	Phys       string                     `toml:"phys"`
	DualRole   []tomlDualRole             `toml:"dual_role"`
	Remap      []tomlRemap                `toml:"remap"`
	ModeSwitch []tomlModeSwitch           `toml:"mode_switch"`
	Modes      map[string]tomlModeSection `toml:"modes"`
}

// ConfigError is the fatal, user-actionable error class for a malformed
// mapping file: a bad key name or a structural constraint violation.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// Load reads and validates a mapping TOML file, in file order:
// top-level dual_role, then remap (implicitly mode "default"), then
// mode_switch, then each [modes.<name>] block's own dual_role/remap/switch,
// tagged with that mode name. Within each array, entries keep their file
// order; the [modes.<name>] blocks themselves decode into a map and are
// appended in map iteration order, not in the order the file lists them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var tc tomlConfig
	if err := toml.Unmarshal(data, &tc); err != nil {
		return nil, configErrorf("parsing toml from %s: %w", path, err)
	}

	cfg := &Config{DeviceName: tc.DeviceName, Phys: tc.Phys}

	for _, d := range tc.DualRole {
		r, err := dualRoleRule(d, "")
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, r)
	}
	for _, rm := range tc.Remap {
		r, err := remapRule(rm, ModeDefault)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, r)
	}
	for _, ms := range tc.ModeSwitch {
		r, err := modeSwitchRule(ms, "")
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, r)
	}

	for modeName, section := range tc.Modes {
		if modeName == "" {
			return nil, configErrorf("mode table name must be non-empty")
		}
		mode := Mode(modeName)
		for _, d := range section.DualRole {
			r, err := dualRoleRule(d, mode)
			if err != nil {
				return nil, err
			}
			cfg.Rules = append(cfg.Rules, r)
		}
		for _, rm := range section.Remap {
			r, err := remapRule(rm, mode)
			if err != nil {
				return nil, err
			}
			cfg.Rules = append(cfg.Rules, r)
		}
		for _, ms := range section.Switch {
			r, err := modeSwitchRule(ms, mode)
			if err != nil {
				return nil, err
			}
			cfg.Rules = append(cfg.Rules, r)
		}
	}

	warnOnOverlap(cfg.Rules)

	return cfg, nil
}

func parseKeys(names []string) ([]keycode.Code, error) {
	out := make([]keycode.Code, 0, len(names))
	for _, n := range names {
		c, err := keycode.Parse(n)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		out = append(out, c)
	}
	return out, nil
}

func dualRoleRule(d tomlDualRole, mode Mode) (Rule, error) {
	trigger, err := keycode.Parse(d.Input)
	if err != nil {
		return Rule{}, &ConfigError{Err: err}
	}
	hold, err := parseKeys(d.Hold)
	if err != nil {
		return Rule{}, err
	}
	tap, err := parseKeys(d.Tap)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Kind:    KindDualRole,
		Trigger: trigger,
		Hold:    hold,
		Tap:     tap,
		Mode:    mode,
	}, nil
}

func remapRule(rm tomlRemap, mode Mode) (Rule, error) {
	if len(rm.Input) == 0 {
		return Rule{}, configErrorf("remap rule has no inputs")
	}
	inputs, err := parseKeys(rm.Input)
	if err != nil {
		return Rule{}, err
	}
	outputs, err := parseKeys(rm.Output)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Kind:    KindRemap,
		Inputs:  inputs,
		Outputs: outputs,
		Mode:    mode,
	}, nil
}

func modeSwitchRule(ms tomlModeSwitch, scope Mode) (Rule, error) {
	if ms.Mode == "" {
		return Rule{}, configErrorf("mode_switch rule has an empty target mode")
	}
	if len(ms.Input) == 0 {
		return Rule{}, configErrorf("mode_switch rule has no inputs")
	}
	inputs, err := parseKeys(ms.Input)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Kind:   KindModeSwitch,
		Inputs: inputs,
		Target: Mode(ms.Mode),
		Scope:  scope,
	}, nil
}

// warnOnOverlap logs, rather than rejects, duplicate dual-role triggers and
// chords that share inputs: precedence at runtime (see Index.Chord)
// resolves the overlap deterministically.
func warnOnOverlap(rules []Rule) {
	seenTrigger := map[keycode.Code]bool{}
	for _, r := range rules {
		if r.Kind != KindDualRole {
			continue
		}
		if seenTrigger[r.Trigger] {
			slog.Warn("duplicate dual-role trigger in mapping config",
				"trigger", keycode.Name(r.Trigger))
		}
		seenTrigger[r.Trigger] = true
	}

	for i := range rules {
		a := &rules[i]
		if a.Kind != KindRemap && a.Kind != KindModeSwitch {
			continue
		}
		for j := i + 1; j < len(rules); j++ {
			b := &rules[j]
			if b.Kind != KindRemap && b.Kind != KindModeSwitch {
				continue
			}
			if chordsOverlap(a, b) {
				slog.Warn("overlapping chord inputs in mapping config",
					"a", keyNames(a.Inputs), "b", keyNames(b.Inputs))
			}
		}
	}
}

func chordsOverlap(a, b *Rule) bool {
	bSet := b.inputSet()
	for _, k := range a.Inputs {
		if bSet[k] {
			return true
		}
	}
	return false
}

func keyNames(codes []keycode.Code) []string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = keycode.Name(c)
	}
	return names
}
