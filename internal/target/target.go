// Package target names machine configurations for the classifier: an XLEN,
// an optional FLEN, and a label. Builtins cover the common RISC-V profiles;
// extra targets can be declared in a TOML file.
package target

import (
	"sort"

	"rvcc/internal/cc"
)

// Target is a named register-width configuration. FLen 0 means the machine
// passes no arguments in FP registers.
type Target struct {
	Name string
	XLen int
	FLen int
}

// Machine builds a validated classification engine for the target.
func (t Target) Machine() (*cc.Machine, error) {
	return cc.NewMachine(t.XLen, t.FLen)
}

var builtins = map[string]Target{
	"rv32i":   {Name: "rv32i", XLen: 32},
	"rv32if":  {Name: "rv32if", XLen: 32, FLen: 32},
	"rv32ifd": {Name: "rv32ifd", XLen: 32, FLen: 64},
	"rv64i":   {Name: "rv64i", XLen: 64},
	"rv64if":  {Name: "rv64if", XLen: 64, FLen: 32},
	"rv64ifd": {Name: "rv64ifd", XLen: 64, FLen: 64},
	"rv64ifq": {Name: "rv64ifq", XLen: 64, FLen: 128},
	"rv128i":  {Name: "rv128i", XLen: 128},
}

// Lookup finds a builtin target by name.
func Lookup(name string) (Target, bool) {
	t, ok := builtins[name]
	return t, ok
}

// Names returns the builtin target names in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
