// Package cc models the RISC-V procedure-call argument classification: given
// an ordered argument list and an optional return type, it computes which
// integer registers, FP registers, and stack slots each argument occupies
// under the integer convention plus the optional hardware floating-point
// extension.
package cc

import (
	"rvcc/internal/cctype"
)

// Machine is a classification engine for one XLEN/FLEN configuration. It is
// immutable and safe for concurrent use; every Call builds its own State.
type Machine struct {
	XLen int
	FLen int // 0 when the machine has no FP argument registers
}

// NewMachine validates the register widths and returns an engine. FLen 0
// selects the plain integer convention.
func NewMachine(xlen, flen int) (*Machine, error) {
	switch xlen {
	case 32, 64, 128:
	default:
		return nil, errf(ErrConfig, "unsupported XLEN %d", xlen)
	}
	switch flen {
	case 0, 32, 64, 128:
	default:
		return nil, errf(ErrConfig, "unsupported FLEN %d", flen)
	}
	return &Machine{XLen: xlen, FLen: flen}, nil
}

// Call classifies a full call: every argument in order, plus the return type
// when present. Caller-owned descriptors are never mutated; variadic scalars
// needing promotion are replaced by widened copies.
func (m *Machine) Call(inArgs []*cctype.Type, outArg *cctype.Type) (*State, error) {
	// Unwrap a trailing variadic marker. varArgsIndex points one past the end
	// of the list when there are no varargs.
	args := append([]*cctype.Type(nil), inArgs...)
	varArgsIndex := len(args)
	if len(args) >= 1 && args[len(args)-1] != nil && args[len(args)-1].Kind == cctype.KindVarArgs {
		wrapper := args[len(args)-1]
		args = args[:len(args)-1]
		varArgsIndex = len(args)
		args = append(args, wrapper.Args...)
	}

	if err := verifyArgList(args, outArg); err != nil {
		return nil, err
	}

	// Empty aggregates consume nothing; drop them. The variadic boundary
	// follows the surviving arguments.
	filtered := make([]*cctype.Type, 0, len(args))
	adjusted := varArgsIndex
	for i, ty := range args {
		if ty.Size == 0 {
			if i < varArgsIndex {
				adjusted--
			}
			continue
		}
		filtered = append(filtered, ty)
	}
	args, varArgsIndex = filtered, adjusted

	// Promote variadic scalars on copies: integers below XLEN widen to XLEN,
	// floats below FLEN widen to FLEN when an FP file is configured.
	promoted := make(map[*cctype.Type]*cctype.Type)
	for i := varArgsIndex; i < len(args); i++ {
		ty := args[i]
		var width int
		switch {
		case ty.Kind == cctype.KindInt && ty.Size < m.XLen:
			width = m.XLen
		case ty.Kind == cctype.KindFloat && m.FLen > 0 && ty.Size < m.FLen:
			width = m.FLen
		default:
			continue
		}
		c := ty.Copy()
		c.Size = width
		c.Align = width
		promoted[ty] = c
		args[i] = c
	}

	// Arrays decay in C; only struct members may be fixed arrays.
	if outArg != nil && outArg.Kind == cctype.KindArray {
		return nil, errf(ErrUnsupported, "arrays cannot be returned by value")
	}
	for _, ty := range args {
		if ty.Kind == cctype.KindArray {
			return nil, errf(ErrUnsupported, "arrays cannot be passed by value")
		}
	}

	state := newState(m.XLen, m.FLen, args, varArgsIndex, outArg, promoted)

	if err := m.classifyReturnType(state, outArg); err != nil {
		return nil, err
	}

	for i, ty := range args {
		isVarArg := i >= varArgsIndex
		if state.HasFloat() && !isVarArg {
			done, err := m.tryFloatConvention(state, ty)
			if err != nil {
				return nil, err
			}
			if done {
				continue
			}
		}
		if err := m.integerConvention(state, ty, isVarArg); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Return classifies a return value: it is placed the way a sole argument of
// the same type would be. A by-ref return reports no register used, since the
// hidden pointer is the first argument of the enclosing call, outside this
// call's own register file.
func (m *Machine) Return(ty *cctype.Type) (*State, error) {
	var inArgs []*cctype.Type
	if ty != nil {
		inArgs = []*cctype.Type{ty}
	}
	state, err := m.Call(inArgs, nil)
	if err != nil {
		return nil, err
	}
	if g := state.Gprs[0]; g != nil {
		if name := state.Name(g); len(name) > 0 && name[0] == '&' {
			state.Gprs[0] = nil
		}
	}
	if len(state.InArgs) > 0 {
		placed := state.InArgs[0]
		old := state.names[placed]
		state.rename(placed, "ret")
		for k, v := range state.names {
			if v == "&"+old {
				state.rename(k, "&ret")
			}
		}
	}
	return state, nil
}

func verifyArgList(args []*cctype.Type, outArg *cctype.Type) error {
	seen := make(map[*cctype.Type]struct{}, len(args)+1)
	for _, ty := range args {
		if ty == nil {
			return errf(ErrUsage, "nil argument descriptor")
		}
		if ty.Kind == cctype.KindVarArgs {
			return errf(ErrVarArgs, "variadic wrapper must be the last argument")
		}
		if _, dup := seen[ty]; dup {
			return errf(ErrUsage, "arguments must be unique instances (%s used twice)", ty)
		}
		seen[ty] = struct{}{}
	}
	if outArg != nil {
		if outArg.Kind == cctype.KindVarArgs {
			return errf(ErrVarArgs, "return type cannot be variadic")
		}
		if _, dup := seen[outArg]; dup {
			return errf(ErrUsage, "arguments must be unique instances (%s used as argument and return)", outArg)
		}
	}
	return nil
}

// classifyReturnType decides whether the return value needs a hidden pointer
// argument. Returns eligible for the hardware floating-point struct rule stay
// in registers; everything else too wide for a register pair is by-ref, with
// the pointer consuming the first integer argument slot of this call.
func (m *Machine) classifyReturnType(state *State, outArg *cctype.Type) error {
	if outArg == nil {
		return nil
	}
	if m.FLen > 0 && outArg.Kind == cctype.KindStruct && outArg.Size <= 2*m.FLen {
		leaves := withoutPadding(cctype.StructOf(outArg.Flatten()...).Members)
		if len(leaves) == 2 && m.floatPairKind(leaves[0], leaves[1]) != pairNone {
			return nil
		}
		return state.passByReference(outArg)
	}
	if outArg.Size > 2*m.XLen {
		return state.passByReference(outArg)
	}
	return nil
}

type pairKind uint8

const (
	pairNone pairKind = iota
	pairFloatFloat
	pairFloatInt
	pairIntFloat
)

// floatPairKind matches two flattened leaves against the eligible
// float+float / float+int / int+float patterns, each leaf within its
// register-width limit.
func (m *Machine) floatPairKind(ty1, ty2 *cctype.Type) pairKind {
	isFP := func(t *cctype.Type) bool { return t.Kind == cctype.KindFloat && t.Size <= m.FLen }
	isInt := func(t *cctype.Type) bool { return t.Kind == cctype.KindInt && t.Size <= m.XLen }
	switch {
	case isFP(ty1) && isFP(ty2):
		return pairFloatFloat
	case isFP(ty1) && isInt(ty2):
		return pairFloatInt
	case isInt(ty1) && isFP(ty2):
		return pairIntFloat
	default:
		return pairNone
	}
}

// tryFloatConvention applies the hardware floating-point rules to one
// non-variadic argument. It reports whether the argument was fully placed.
func (m *Machine) tryFloatConvention(s *State, ty *cctype.Type) (bool, error) {
	// Flatten the struct if there is any chance it is passed in FP registers.
	flat := ty
	if ty.Kind == cctype.KindStruct && ty.Size <= max(2*m.FLen, 2*m.XLen) {
		flat = cctype.StructOf(ty.Flatten()...)
	}

	if flat.Kind == cctype.KindFloat && flat.Size <= m.FLen && s.FprsLeft >= 1 {
		return true, s.assignToFpr(ty)
	}
	if flat.Kind != cctype.KindStruct || flat.Size > 2*m.FLen {
		return false, nil
	}

	leaves := withoutPadding(flat.Members)
	if len(leaves) == 1 {
		leaf := leaves[0]
		if leaf.Kind == cctype.KindFloat && leaf.Size <= m.FLen && ty.Size <= m.FLen && s.FprsLeft >= 1 {
			return true, s.assignToFpr(ty)
		}
		return false, nil
	}
	if len(leaves) != 2 {
		return false, nil
	}

	ty1, ty2 := leaves[0], leaves[1]
	loView := cctype.SliceOf(ty, 0, ty1.Size-1)
	hiOff := max(ty1.Size, ty2.Align)
	hiView := cctype.SliceOf(ty, hiOff, hiOff+ty2.Size-1)

	switch m.floatPairKind(ty1, ty2) {
	case pairFloatFloat:
		if s.FprsLeft >= 2 {
			if err := s.assignToFpr(loView); err != nil {
				return false, err
			}
			return true, s.assignToFpr(hiView)
		}
	case pairFloatInt:
		if s.FprsLeft >= 1 && s.GprsLeft >= 1 {
			if err := s.assignToFpr(loView); err != nil {
				return false, err
			}
			return true, s.assignToGpr(hiView)
		}
	case pairIntFloat:
		if s.GprsLeft >= 1 && s.FprsLeft >= 1 {
			if err := s.assignToGpr(loView); err != nil {
				return false, err
			}
			return true, s.assignToFpr(hiView)
		}
	}
	return false, nil
}

// integerConvention places one argument under the plain integer rules:
// register-sized values fill a0..a7 then the stack; values up to two
// registers wide split into independently routed halves; anything larger is
// passed by reference.
func (m *Machine) integerConvention(s *State, ty *cctype.Type, isVarArg bool) error {
	switch {
	case ty.Size <= m.XLen:
		return s.assignToGprOrStack(ty)
	case ty.Size <= 2*m.XLen:
		// 2*XLEN-aligned varargs must occupy an aligned register pair.
		if isVarArg && ty.Align == 2*m.XLen && s.GprsLeft%2 == 1 {
			if err := s.skipGpr(); err != nil {
				return err
			}
		}
		if s.GprsLeft > 0 {
			if err := s.assignToGprOrStack(cctype.SliceOf(ty, 0, m.XLen-1)); err != nil {
				return err
			}
			return s.assignToGprOrStack(cctype.SliceOf(ty, m.XLen, 2*m.XLen-1))
		}
		return s.assignToStack(ty)
	default:
		return s.passByReference(ty)
	}
}

func withoutPadding(members []*cctype.Type) []*cctype.Type {
	out := make([]*cctype.Type, 0, len(members))
	for _, mem := range members {
		if mem.Kind != cctype.KindPadding {
			out = append(out, mem)
		}
	}
	return out
}
