// Package report renders finished classification states: plain text for
// diagnostics and golden comparisons, a colorized table for terminals, JSON
// and msgpack for tooling. Everything here is read-only over cc.State.
package report

import (
	"fmt"
	"strings"

	"rvcc/internal/cc"
)

// Render produces the canonical plain-text view: the named argument list,
// the register files, and the stack with caller-SP-relative byte offsets.
func Render(s *cc.State) string {
	var b strings.Builder

	named := s.NamedArgs()
	if len(named) > 0 {
		b.WriteString("Args:\n")
		for _, na := range named {
			fmt.Fprintf(&b, "%s: %s\n", na.Name, na.Type)
		}
		b.WriteString("\n")
	}

	b.WriteString("GPRs:\n")
	for i, ty := range s.Gprs {
		fmt.Fprintf(&b, "GPR[a%d]: %s\n", i, s.Name(ty))
	}

	if s.HasFloat() {
		b.WriteString("\nFPRs:\n")
		for i, ty := range s.Fprs {
			fmt.Fprintf(&b, "FPR[fa%d]: %s\n", i, s.Name(ty))
		}
	}

	b.WriteString("\nStack:\n")
	offs := s.StackOffsets()
	for i, ty := range s.Stack {
		fmt.Fprintf(&b, "%s (oldsp+%d)\n", s.Name(ty), offs[i])
	}
	return b.String()
}
