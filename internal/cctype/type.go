package cctype

// All sizes and alignments in this package are measured in bits.

// Kind enumerates the closed set of type descriptors understood by the
// calling-convention model.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindPointer
	KindPadding
	KindStruct
	KindUnion
	KindArray
	KindSlice
	KindVarArgs
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPointer:
		return "pointer"
	case KindPadding:
		return "padding"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindArray:
		return "array"
	case KindSlice:
		return "slice"
	case KindVarArgs:
		return "varargs"
	default:
		return "Kind(?)"
	}
}

// Type is a calling-convention type descriptor. Descriptor identity matters:
// the classifier keys its naming map on the pointer, so two structurally
// identical descriptors stay distinguishable. Build a fresh instance for every
// argument position.
type Type struct {
	Kind   Kind
	Size   int // bits
	Align  int // bits
	Signed bool // KindInt only

	Members []*Type // KindStruct (with inserted padding), KindUnion
	Elem    *Type   // KindArray
	Count   int     // KindArray

	Owner  *Type // KindSlice
	Lo, Hi int   // KindSlice inclusive bit range

	Args []*Type // KindVarArgs
}

// AlignTo rounds x up to the next multiple of align.
func AlignTo(x, align int) int {
	if align <= 1 {
		return x
	}
	return (x + align - 1) / align * align
}

// Int builds a signed integer descriptor of the given bit width.
func Int(size int) *Type {
	return &Type{Kind: KindInt, Size: size, Align: size, Signed: true}
}

// UInt builds an unsigned integer descriptor of the given bit width.
func UInt(size int) *Type {
	return &Type{Kind: KindInt, Size: size, Align: size}
}

// Float builds a floating-point descriptor of the given bit width.
func Float(size int) *Type {
	return &Type{Kind: KindFloat, Size: size, Align: size}
}

// Ptr builds a pointer descriptor; size is the machine's register width.
func Ptr(size int) *Type {
	return &Type{Kind: KindPointer, Size: size, Align: size}
}

// Pad builds a synthetic filler descriptor. Padding is never an argument on
// its own; StructOf inserts it to keep member offsets aligned.
func Pad(size int) *Type {
	return &Type{Kind: KindPadding, Size: size, Align: 1}
}

// StructOf builds a struct descriptor, inserting padding members so every
// member's offset is a multiple of its alignment. Size is the padded total
// rounded up to the struct alignment (the maximum member alignment).
//
// A zero-member struct is legal: size 0, byte alignment. It represents an
// empty aggregate, which the classifier drops from argument lists.
func StructOf(members ...*Type) *Type {
	if len(members) == 0 {
		return &Type{Kind: KindStruct, Size: 0, Align: 8}
	}
	padded := make([]*Type, 0, len(members))
	offset := 0
	align := 1
	for _, m := range members {
		if m.Align > 1 && offset%m.Align != 0 {
			pad := AlignTo(offset, m.Align) - offset
			padded = append(padded, Pad(pad))
			offset += pad
		}
		padded = append(padded, m)
		offset += m.Size
		if m.Align > align {
			align = m.Align
		}
	}
	return &Type{
		Kind:    KindStruct,
		Members: padded,
		Size:    AlignTo(offset, align),
		Align:   align,
	}
}

// UnionOf builds a union descriptor: alignment is the maximum member
// alignment, size the maximum member size rounded up to that alignment.
// A union with no members has no defined size and panics.
func UnionOf(members ...*Type) *Type {
	if len(members) == 0 {
		panic("cctype: union requires at least one member")
	}
	size := 0
	align := 1
	for _, m := range members {
		if m.Size > size {
			size = m.Size
		}
		if m.Align > align {
			align = m.Align
		}
	}
	return &Type{
		Kind:    KindUnion,
		Members: members,
		Size:    AlignTo(size, align),
		Align:   align,
	}
}

// ArrayOf builds a fixed-length array descriptor.
func ArrayOf(elem *Type, count int) *Type {
	return &Type{
		Kind:  KindArray,
		Elem:  elem,
		Count: count,
		Size:  elem.Size * count,
		Align: elem.Align,
	}
}

// SliceOf builds a non-owning view over the inclusive bit range [lo, hi] of
// owner. The classifier uses slices to represent one half of a value split
// across two locations.
func SliceOf(owner *Type, lo, hi int) *Type {
	return &Type{
		Kind:  KindSlice,
		Owner: owner,
		Lo:    lo,
		Hi:    hi,
		Size:  hi - lo + 1,
		Align: hi - lo + 1,
	}
}

// VarArgsOf wraps the trailing variadic portion of an argument list. The
// wrapper is unwrapped and discarded before classification begins.
func VarArgsOf(args ...*Type) *Type {
	return &Type{Kind: KindVarArgs, Args: args}
}

// Flatten expands a struct or array into its ordered sequence of
// non-aggregate leaf descriptors, recursing through nested structs and
// arrays. Padding members are kept. Every other kind flattens to itself.
func (t *Type) Flatten() []*Type {
	switch t.Kind {
	case KindStruct:
		out := make([]*Type, 0, len(t.Members))
		for _, m := range t.Members {
			out = append(out, m.Flatten()...)
		}
		return out
	case KindArray:
		elem := t.Elem.Flatten()
		out := make([]*Type, 0, len(elem)*t.Count)
		for i := 0; i < t.Count; i++ {
			out = append(out, elem...)
		}
		return out
	default:
		return []*Type{t}
	}
}

// Copy returns a shallow copy of t with a distinct identity. The classifier
// promotes variadic scalars on copies so caller-owned descriptors stay
// untouched.
func (t *Type) Copy() *Type {
	c := *t
	return &c
}
