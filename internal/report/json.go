package report

import (
	"encoding/json"
	"io"

	"rvcc/internal/cc"
)

// Payload is the machine-readable form of a classification result. Register
// slots hold display labels; "?" marks an empty register.
type Payload struct {
	XLen  int        `json:"xlen"`
	FLen  int        `json:"flen,omitempty"`
	Args  []ArgEntry `json:"args,omitempty"`
	Gprs  []string   `json:"gprs"`
	Fprs  []string   `json:"fprs,omitempty"`
	Stack []StackObj `json:"stack"`
}

// ArgEntry pairs a named argument with its descriptor notation.
type ArgEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// StackObj is one stack-passed object with its byte offset relative to the
// caller's stack pointer at call entry.
type StackObj struct {
	Name     string `json:"name"`
	Offset   int    `json:"offset"`
	SizeBits int    `json:"size_bits"`
}

// BuildPayload extracts the read-only view of a state.
func BuildPayload(s *cc.State) Payload {
	p := Payload{XLen: s.XLen, FLen: s.FLen}
	for _, na := range s.NamedArgs() {
		p.Args = append(p.Args, ArgEntry{Name: na.Name, Type: na.Type.String()})
	}
	p.Gprs = make([]string, cc.NumArgRegs)
	for i, ty := range s.Gprs {
		p.Gprs[i] = s.Name(ty)
	}
	if s.HasFloat() {
		p.Fprs = make([]string, cc.NumArgRegs)
		for i, ty := range s.Fprs {
			p.Fprs[i] = s.Name(ty)
		}
	}
	p.Stack = make([]StackObj, 0, len(s.Stack))
	offs := s.StackOffsets()
	for i, ty := range s.Stack {
		p.Stack = append(p.Stack, StackObj{Name: s.Name(ty), Offset: offs[i], SizeBits: ty.Size})
	}
	return p
}

// WriteJSON writes the payload as indented JSON.
func WriteJSON(w io.Writer, s *cc.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildPayload(s))
}
