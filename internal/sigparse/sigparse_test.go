package sigparse_test

import (
	"strings"
	"testing"

	"rvcc/internal/cctype"
	"rvcc/internal/sigparse"
)

func TestParseScalars(t *testing.T) {
	sig, err := sigparse.Parse("i32, u8, f64, ptr", 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig.Args) != 4 || sig.Ret != nil {
		t.Fatalf("sig = %+v", sig)
	}
	if sig.Args[0].Kind != cctype.KindInt || sig.Args[0].Size != 32 || !sig.Args[0].Signed {
		t.Fatalf("args[0] = %v", sig.Args[0])
	}
	if sig.Args[1].Signed {
		t.Fatalf("args[1] = %v, want unsigned", sig.Args[1])
	}
	if sig.Args[2].Kind != cctype.KindFloat || sig.Args[2].Size != 64 {
		t.Fatalf("args[2] = %v", sig.Args[2])
	}
	if sig.Args[3].Kind != cctype.KindPointer || sig.Args[3].Size != 32 {
		t.Fatalf("args[3] = %v, want Ptr32", sig.Args[3])
	}
}

func TestParseReturn(t *testing.T) {
	sig, err := sigparse.Parse("void -> i64", 64)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig.Args) != 0 || sig.Ret == nil || sig.Ret.Size != 64 {
		t.Fatalf("sig = %+v", sig)
	}

	sig, err = sigparse.Parse("-> f32", 64)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig.Args) != 0 || sig.Ret.Kind != cctype.KindFloat {
		t.Fatalf("sig = %+v", sig)
	}
}

func TestParseAggregates(t *testing.T) {
	sig, err := sigparse.Parse("{i8, f32[1]}, union{i32, f64}, {}", 32)
	if err != nil {
		t.Fatal(err)
	}
	s := sig.Args[0]
	if s.Kind != cctype.KindStruct || s.String() != "Struct([SInt8, Pad24, Array(FP32*1, s32, a32)], s64, a32)" {
		t.Fatalf("args[0] = %v", s)
	}
	u := sig.Args[1]
	if u.Kind != cctype.KindUnion || u.Size != 64 {
		t.Fatalf("args[1] = %v", u)
	}
	if sig.Args[2].Size != 0 {
		t.Fatalf("args[2] = %v, want empty struct", sig.Args[2])
	}
}

func TestParseNestedArrays(t *testing.T) {
	sig, err := sigparse.Parse("{i16[2][3]}", 32)
	if err != nil {
		t.Fatal(err)
	}
	inner := sig.Args[0].Members[0]
	if inner.Kind != cctype.KindArray || inner.Count != 3 || inner.Elem.Count != 2 {
		t.Fatalf("member = %v", inner)
	}
	if inner.Size != 96 {
		t.Fatalf("size = %d, want 96", inner.Size)
	}
}

func TestParseVarArgs(t *testing.T) {
	sig, err := sigparse.Parse("i32, ..., f64, i8 -> i32", 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig.Args) != 2 {
		t.Fatalf("args = %v", sig.Args)
	}
	wrapper := sig.Args[1]
	if wrapper.Kind != cctype.KindVarArgs || len(wrapper.Args) != 2 {
		t.Fatalf("wrapper = %v", wrapper)
	}
	if wrapper.Args[0].Kind != cctype.KindFloat || wrapper.Args[1].Size != 8 {
		t.Fatalf("variadic args = %v", wrapper.Args)
	}
	if sig.Ret == nil {
		t.Fatal("missing return type")
	}
}

func TestParseFreshInstances(t *testing.T) {
	sig, err := sigparse.Parse("i32, i32", 32)
	if err != nil {
		t.Fatal(err)
	}
	if sig.Args[0] == sig.Args[1] {
		t.Fatal("every parse position must yield a distinct descriptor instance")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"i7", "unsupported integer width"},
		{"f16", "unsupported float width"},
		{"i32,", "expected a type"},
		{"{i32", "expected \",\" or \"}\""},
		{"union{}", "union requires at least one member"},
		{"i32 i32", "unexpected"},
		{"i32[", "expected a number"},
		{"..., ...", "duplicate"},
		{"bogus", "expected a type"},
	}
	for _, c := range cases {
		_, err := sigparse.Parse(c.input, 32)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Errorf("Parse(%q) err = %v, want substring %q", c.input, err, c.want)
		}
	}
}
