package target

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// targetsFile mirrors the on-disk layout:
//
//	[targets.myboard]
//	xlen = 32
//	flen = 64
type targetsFile struct {
	Targets map[string]targetSpec `toml:"targets"`
}

type targetSpec struct {
	XLen int `toml:"xlen"`
	FLen int `toml:"flen"`
}

// LoadFile parses user-defined targets from a TOML file. Every entry is
// validated by constructing its machine; the result is sorted by name.
func LoadFile(path string) ([]Target, error) {
	var cfg targetsFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("targets") {
		return nil, nil
	}
	out := make([]Target, 0, len(cfg.Targets))
	for name, spec := range cfg.Targets {
		t := Target{Name: name, XLen: spec.XLen, FLen: spec.FLen}
		if _, err := t.Machine(); err != nil {
			return nil, fmt.Errorf("%s: target %q: %w", path, name, err)
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Resolve finds a target among builtins first, then in an optional TOML file.
func Resolve(name, path string) (Target, error) {
	if t, ok := Lookup(name); ok {
		return t, nil
	}
	if path != "" {
		custom, err := LoadFile(path)
		if err != nil {
			return Target{}, err
		}
		for _, t := range custom {
			if t.Name == name {
				return t, nil
			}
		}
	}
	return Target{}, fmt.Errorf("unknown target %q (builtins: %v)", name, Names())
}
