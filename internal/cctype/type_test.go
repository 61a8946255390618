package cctype_test

import (
	"testing"

	"rvcc/internal/cctype"
)

func TestAlignTo(t *testing.T) {
	cases := []struct {
		x, align, want int
	}{
		{0, 32, 0},
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{40, 32, 64},
		{5, 1, 5},
		{7, 8, 8},
	}
	for _, c := range cases {
		if got := cctype.AlignTo(c.x, c.align); got != c.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", c.x, c.align, got, c.want)
		}
	}
}

func TestScalarDescriptors(t *testing.T) {
	i := cctype.Int(32)
	if i.Size != 32 || i.Align != 32 || !i.Signed || i.Kind != cctype.KindInt {
		t.Fatalf("Int(32) = %+v", i)
	}
	u := cctype.UInt(16)
	if u.Size != 16 || u.Signed {
		t.Fatalf("UInt(16) = %+v", u)
	}
	f := cctype.Float(64)
	if f.Size != 64 || f.Align != 64 || f.Kind != cctype.KindFloat {
		t.Fatalf("Float(64) = %+v", f)
	}
	p := cctype.Ptr(32)
	if p.Size != 32 || p.Kind != cctype.KindPointer {
		t.Fatalf("Ptr(32) = %+v", p)
	}
	pad := cctype.Pad(24)
	if pad.Size != 24 || pad.Align != 1 {
		t.Fatalf("Pad(24) = %+v", pad)
	}
}

func TestStructPaddingInsertion(t *testing.T) {
	s := cctype.StructOf(cctype.Int(8), cctype.Float(32))
	if s.Size != 64 || s.Align != 32 {
		t.Fatalf("size/align = %d/%d, want 64/32", s.Size, s.Align)
	}
	if len(s.Members) != 3 {
		t.Fatalf("expected inserted padding member, got %v", s.Members)
	}
	if s.Members[1].Kind != cctype.KindPadding || s.Members[1].Size != 24 {
		t.Fatalf("middle member = %v, want Pad24", s.Members[1])
	}
}

func TestStructSizeIncludesInteriorPadding(t *testing.T) {
	// {i8, i32, i8}: 8 + pad24 + 32 + 8 = 72, rounded to a32 = 96.
	s := cctype.StructOf(cctype.Int(8), cctype.Int(32), cctype.Int(8))
	if s.Size != 96 || s.Align != 32 {
		t.Fatalf("size/align = %d/%d, want 96/32", s.Size, s.Align)
	}
}

func TestEmptyStruct(t *testing.T) {
	s := cctype.StructOf()
	if s.Size != 0 || len(s.Members) != 0 {
		t.Fatalf("empty struct = %+v", s)
	}
	if got := s.Flatten(); len(got) != 0 {
		t.Fatalf("empty struct flattens to %v", got)
	}
}

func TestUnion(t *testing.T) {
	u := cctype.UnionOf(cctype.Int(8), cctype.Float(64), cctype.Int(32))
	if u.Size != 64 || u.Align != 64 {
		t.Fatalf("size/align = %d/%d, want 64/64", u.Size, u.Align)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("empty union should panic")
		}
	}()
	cctype.UnionOf()
}

func TestArray(t *testing.T) {
	a := cctype.ArrayOf(cctype.Float(32), 3)
	if a.Size != 96 || a.Align != 32 {
		t.Fatalf("size/align = %d/%d, want 96/32", a.Size, a.Align)
	}
}

func TestFlatten(t *testing.T) {
	// {i8, f32[1]} flattens to [SInt8, Pad24, FP32].
	s := cctype.StructOf(cctype.Int(8), cctype.ArrayOf(cctype.Float(32), 1))
	leaves := s.Flatten()
	if len(leaves) != 3 {
		t.Fatalf("got %d leaves: %v", len(leaves), leaves)
	}
	if leaves[0].Kind != cctype.KindInt || leaves[1].Kind != cctype.KindPadding || leaves[2].Kind != cctype.KindFloat {
		t.Fatalf("leaves = %v", leaves)
	}

	// Arrays repeat the element's leaves.
	a := cctype.ArrayOf(cctype.StructOf(cctype.Int(16)), 2)
	if got := a.Flatten(); len(got) != 2 || got[0].Size != 16 {
		t.Fatalf("array flatten = %v", got)
	}

	// Unions are leaves: no struct-like splitting rule applies.
	u := cctype.UnionOf(cctype.Int(32), cctype.Float(32))
	if got := u.Flatten(); len(got) != 1 || got[0] != u {
		t.Fatalf("union flatten = %v", got)
	}
}

func TestSliceView(t *testing.T) {
	owner := cctype.Int(64)
	lo := cctype.SliceOf(owner, 0, 31)
	hi := cctype.SliceOf(owner, 32, 63)
	if lo.Size != 32 || lo.Align != 32 || hi.Size != 32 {
		t.Fatalf("slice sizes = %d/%d", lo.Size, hi.Size)
	}
	if lo.Owner != owner || hi.Owner != owner {
		t.Fatal("slice must reference its owner")
	}
}

func TestCopyHasDistinctIdentity(t *testing.T) {
	orig := cctype.Int(8)
	c := orig.Copy()
	if c == orig {
		t.Fatal("Copy returned the same instance")
	}
	c.Size = 32
	if orig.Size != 8 {
		t.Fatal("Copy must not share storage with the original")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		ty   *cctype.Type
		want string
	}{
		{cctype.Int(32), "SInt32"},
		{cctype.UInt(8), "UInt8"},
		{cctype.Float(64), "FP64"},
		{cctype.Ptr(32), "Ptr32"},
		{cctype.Pad(24), "Pad24"},
		{
			cctype.StructOf(cctype.Int(8), cctype.ArrayOf(cctype.Float(32), 1)),
			"Struct([SInt8, Pad24, Array(FP32*1, s32, a32)], s64, a32)",
		},
		{cctype.SliceOf(cctype.Int(64), 0, 31), "SInt64[0:31]"},
	}
	for _, c := range cases {
		if got := c.ty.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
