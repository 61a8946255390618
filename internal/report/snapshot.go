package report

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"rvcc/internal/cc"
)

// Current schema version - increment when Snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the msgpack-serializable form of a classification result, for
// caching and cross-tool comparison.
type Snapshot struct {
	Schema uint16

	XLen int
	FLen int

	ArgNames []string
	ArgTypes []string

	Gprs []string
	Fprs []string

	StackNames   []string
	StackOffsets []int
	StackSizes   []int
}

// BuildSnapshot extracts a snapshot from a finished state.
func BuildSnapshot(s *cc.State) *Snapshot {
	snap := &Snapshot{
		Schema: snapshotSchemaVersion,
		XLen:   s.XLen,
		FLen:   s.FLen,
	}
	for _, na := range s.NamedArgs() {
		snap.ArgNames = append(snap.ArgNames, na.Name)
		snap.ArgTypes = append(snap.ArgTypes, na.Type.String())
	}
	snap.Gprs = make([]string, cc.NumArgRegs)
	for i, ty := range s.Gprs {
		snap.Gprs[i] = s.Name(ty)
	}
	if s.HasFloat() {
		snap.Fprs = make([]string, cc.NumArgRegs)
		for i, ty := range s.Fprs {
			snap.Fprs[i] = s.Name(ty)
		}
	}
	offs := s.StackOffsets()
	for i, ty := range s.Stack {
		snap.StackNames = append(snap.StackNames, s.Name(ty))
		snap.StackOffsets = append(snap.StackOffsets, offs[i])
		snap.StackSizes = append(snap.StackSizes, ty.Size)
	}
	return snap
}

// EncodeSnapshot writes the msgpack encoding of a state.
func EncodeSnapshot(w io.Writer, s *cc.State) error {
	return msgpack.NewEncoder(w).Encode(BuildSnapshot(s))
}

// DecodeSnapshot reads a snapshot back, rejecting unknown schema versions.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot schema mismatch: got %d, want %d", snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}
