package cc

import (
	"fmt"
	"sort"

	"rvcc/internal/cctype"
)

// NumArgRegs is the size of each argument register file: a0..a7 for the
// integer convention, fa0..fa7 when hardware floating-point is configured.
const NumArgRegs = 8

// State is the allocation state of one classified call. One instance is built
// per Call and mutated by exactly one sequential classification pass; consumers
// treat the finished value as read-only.
type State struct {
	XLen int
	FLen int // 0 when no FP register file is configured

	Gprs     [NumArgRegs]*cctype.Type
	GprsLeft int
	Fprs     [NumArgRegs]*cctype.Type
	FprsLeft int

	// Stack is the ordered list of stack-passed objects. Offsets are derived
	// on demand by StackOffsets, not stored.
	Stack []*cctype.Type

	// InArgs is the normalized argument list (unwrapped, empties dropped,
	// varargs promoted). Arguments at or past VarArgsIndex are variadic.
	InArgs       []*cctype.Type
	VarArgsIndex int
	OutArg       *cctype.Type

	names    map[*cctype.Type]string
	promoted map[*cctype.Type]*cctype.Type
}

func newState(xlen, flen int, inArgs []*cctype.Type, varArgsIndex int, outArg *cctype.Type, promoted map[*cctype.Type]*cctype.Type) *State {
	s := &State{
		XLen:         xlen,
		FLen:         flen,
		GprsLeft:     NumArgRegs,
		InArgs:       inArgs,
		VarArgsIndex: varArgsIndex,
		OutArg:       outArg,
		names:        make(map[*cctype.Type]string, len(inArgs)+2),
		promoted:     promoted,
	}
	if flen > 0 {
		s.FprsLeft = NumArgRegs
	}
	argIdx, vargIdx := 0, 0
	for i, ty := range inArgs {
		if i >= varArgsIndex {
			s.names[ty] = fmt.Sprintf("varg%02d", vargIdx)
			vargIdx++
		} else {
			s.names[ty] = fmt.Sprintf("arg%02d", argIdx)
			argIdx++
		}
	}
	if outArg != nil {
		s.names[outArg] = "ret"
	}
	return s
}

// HasFloat reports whether an FP register file is configured.
func (s *State) HasFloat() bool { return s.FLen > 0 }

func (s *State) nextGprIndex() int { return NumArgRegs - s.GprsLeft }
func (s *State) nextFprIndex() int { return NumArgRegs - s.FprsLeft }

// skipGpr burns one integer register without assigning anything to it, for
// the aligned-register-pair vararg rule.
func (s *State) skipGpr() error {
	if s.GprsLeft == 0 {
		return errf(ErrInternal, "all integer argument registers already assigned")
	}
	s.GprsLeft--
	return nil
}

func (s *State) assignToGpr(ty *cctype.Type) error {
	if ty.Size > s.XLen {
		return errf(ErrInternal, "object %s is larger than XLEN", s.Name(ty))
	}
	if s.GprsLeft <= 0 {
		return errf(ErrInternal, "all integer argument registers already assigned")
	}
	s.Gprs[s.nextGprIndex()] = ty
	s.GprsLeft--
	return nil
}

func (s *State) assignToGprOrStack(ty *cctype.Type) error {
	if ty.Size > s.XLen {
		return errf(ErrInternal, "object %s is larger than XLEN", s.Name(ty))
	}
	if s.GprsLeft >= 1 {
		return s.assignToGpr(ty)
	}
	return s.assignToStack(ty)
}

func (s *State) assignToFpr(ty *cctype.Type) error {
	if !s.HasFloat() {
		return errf(ErrInternal, "no FP register file configured")
	}
	if ty.Size > s.FLen {
		return errf(ErrInternal, "object %s is larger than FLEN", s.Name(ty))
	}
	if s.FprsLeft <= 0 {
		return errf(ErrInternal, "all FP argument registers already assigned")
	}
	s.Fprs[s.nextFprIndex()] = ty
	s.FprsLeft--
	return nil
}

func (s *State) assignToStack(ty *cctype.Type) error {
	if ty.Size > 2*s.XLen {
		return errf(ErrInternal, "object %s should be passed by reference", s.Name(ty))
	}
	s.Stack = append(s.Stack, ty)
	return nil
}

// passByReference synthesizes a pointer to owner and routes it through the
// integer convention. The pointer is named "&<owner>" for diagnostics.
func (s *State) passByReference(owner *cctype.Type) error {
	ptr := cctype.Ptr(s.XLen)
	if name, ok := s.names[owner]; ok {
		s.names[ptr] = "&" + name
	}
	return s.assignToGprOrStack(ptr)
}

// Name returns the stable display label of a descriptor: argNN/vargNN/ret for
// classified arguments, "&name" for synthesized by-ref pointers,
// "name[lo:hi]" for slices of a named owner, the descriptor notation
// otherwise, and "?" for nil (an empty register).
func (s *State) Name(ty *cctype.Type) string {
	if ty == nil {
		return "?"
	}
	if ty.Kind == cctype.KindSlice {
		if n, ok := s.names[ty.Owner]; ok {
			return fmt.Sprintf("%s[%d:%d]", n, ty.Lo, ty.Hi)
		}
		return ty.String()
	}
	if n, ok := s.names[ty]; ok {
		return n
	}
	return ty.String()
}

// PromotedCopy returns the widened copy that replaced a variadic scalar, if
// the argument was promoted.
func (s *State) PromotedCopy(orig *cctype.Type) (*cctype.Type, bool) {
	c, ok := s.promoted[orig]
	return c, ok
}

// NamedArg pairs a display label with its descriptor.
type NamedArg struct {
	Name string
	Type *cctype.Type
}

// NamedArgs lists every named argument and return descriptor sorted by label.
// Synthesized by-ref pointers ("&...") are excluded; they alias an entry that
// is already listed.
func (s *State) NamedArgs() []NamedArg {
	out := make([]NamedArg, 0, len(s.names))
	for ty, name := range s.names {
		if len(name) > 0 && name[0] == '&' {
			continue
		}
		out = append(out, NamedArg{Name: name, Type: ty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StackOffsets returns each stack object's byte offset relative to the stack
// pointer value at call entry. The first object sits at offset 0; every next
// offset is the previous offset plus the previous object's size, rounded up
// to XLEN and then to the object's own alignment.
func (s *State) StackOffsets() []int {
	offs := make([]int, len(s.Stack))
	bits := 0
	for i, ty := range s.Stack {
		if i == 0 {
			continue
		}
		bits += s.Stack[i-1].Size
		bits = cctype.AlignTo(bits, s.XLen)
		bits = cctype.AlignTo(bits, ty.Align)
		offs[i] = bits / 8
	}
	return offs
}

// StackOffset returns the byte offset of one stack object.
func (s *State) StackOffset(idx int) (int, error) {
	if idx < 0 || idx >= len(s.Stack) {
		return 0, errf(ErrUsage, "invalid stack object %d", idx)
	}
	return s.StackOffsets()[idx], nil
}

func (s *State) rename(ty *cctype.Type, name string) {
	s.names[ty] = name
}
