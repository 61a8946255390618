package cctype

import (
	"fmt"
	"strings"
)

// String renders a descriptor in the compact notation used by diagnostics and
// tests: SInt32, UInt8, FP64, Ptr32, Pad24, Struct([SInt8, Pad24, FP32], s64,
// a32), Array(FP32*2, s64, a32), owner[lo:hi] for slices.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindInt:
		if t.Signed {
			return fmt.Sprintf("SInt%d", t.Size)
		}
		return fmt.Sprintf("UInt%d", t.Size)
	case KindFloat:
		return fmt.Sprintf("FP%d", t.Size)
	case KindPointer:
		return fmt.Sprintf("Ptr%d", t.Size)
	case KindPadding:
		return fmt.Sprintf("Pad%d", t.Size)
	case KindStruct:
		return fmt.Sprintf("Struct([%s], s%d, a%d)", memberList(t.Members), t.Size, t.Align)
	case KindUnion:
		return fmt.Sprintf("Union([%s], s%d, a%d)", memberList(t.Members), t.Size, t.Align)
	case KindArray:
		return fmt.Sprintf("Array(%s*%d, s%d, a%d)", t.Elem, t.Count, t.Size, t.Align)
	case KindSlice:
		return fmt.Sprintf("%s[%d:%d]", t.Owner, t.Lo, t.Hi)
	case KindVarArgs:
		return fmt.Sprintf("VarArgs([%s])", memberList(t.Args))
	default:
		return fmt.Sprintf("Invalid(s%d, a%d)", t.Size, t.Align)
	}
}

func memberList(members []*Type) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ", ")
}
