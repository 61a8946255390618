package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rvcc/internal/cc"
	"rvcc/internal/cctype"
	"rvcc/internal/report"
)

func classified(t *testing.T) *cc.State {
	t.Helper()
	m, err := cc.NewMachine(32, 64)
	if err != nil {
		t.Fatal(err)
	}
	// a0..a5 take the six ints, the struct splits into fa0 + a6, the i128
	// goes by-ref into a7, and the i64 overflows whole onto the stack.
	args := make([]*cctype.Type, 0, 9)
	for i := 0; i < 6; i++ {
		args = append(args, cctype.Int(32))
	}
	args = append(args,
		cctype.StructOf(cctype.Float(64), cctype.Int(16)),
		cctype.Int(128),
		cctype.Int(64),
	)
	state, err := m.Call(args, cctype.Int(8))
	if err != nil {
		t.Fatal(err)
	}
	return state
}

func TestRender(t *testing.T) {
	m, err := cc.NewMachine(32, 64)
	if err != nil {
		t.Fatal(err)
	}
	state, err := m.Call([]*cctype.Type{
		cctype.Int(32),
		cctype.Float(64),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := report.Render(state)
	want := `Args:
arg00: SInt32
arg01: FP64

GPRs:
GPR[a0]: arg00
GPR[a1]: ?
GPR[a2]: ?
GPR[a3]: ?
GPR[a4]: ?
GPR[a5]: ?
GPR[a6]: ?
GPR[a7]: ?

FPRs:
FPR[fa0]: arg01
FPR[fa1]: ?
FPR[fa2]: ?
FPR[fa3]: ?
FPR[fa4]: ?
FPR[fa5]: ?
FPR[fa6]: ?
FPR[fa7]: ?

Stack:
`
	if got != want {
		t.Fatalf("Render mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderStackOffsets(t *testing.T) {
	state := classified(t)
	got := report.Render(state)
	if !strings.Contains(got, "arg08 (oldsp+0)") {
		t.Fatalf("missing stack entry:\n%s", got)
	}
	if !strings.Contains(got, "FPR[fa0]: arg06[0:63]") {
		t.Fatalf("missing FP slice:\n%s", got)
	}
	if !strings.Contains(got, "GPR[a7]: &arg07") {
		t.Fatalf("missing by-ref pointer:\n%s", got)
	}
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	report.WritePretty(&buf, classified(t), false)
	out := buf.String()
	for _, want := range []string{"GPRs", "FPRs", "Stack", "a0", "fa0", "oldsp+0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("colorize=false must not emit escape sequences")
	}
}

func TestJSONPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, classified(t)); err != nil {
		t.Fatal(err)
	}
	var p report.Payload
	if err := json.Unmarshal(buf.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.XLen != 32 || p.FLen != 64 {
		t.Fatalf("widths = %d/%d", p.XLen, p.FLen)
	}
	if len(p.Gprs) != cc.NumArgRegs || p.Gprs[0] != "arg00" {
		t.Fatalf("gprs = %v", p.Gprs)
	}
	if len(p.Stack) != 1 || p.Stack[0].Offset != 0 {
		t.Fatalf("stack = %+v", p.Stack)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	state := classified(t)
	var buf bytes.Buffer
	if err := report.EncodeSnapshot(&buf, state); err != nil {
		t.Fatal(err)
	}
	snap, err := report.DecodeSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if snap.XLen != 32 || snap.FLen != 64 {
		t.Fatalf("widths = %d/%d", snap.XLen, snap.FLen)
	}
	if snap.Gprs[0] != "arg00" || snap.Fprs[0] != "arg06[0:63]" {
		t.Fatalf("registers = %v / %v", snap.Gprs, snap.Fprs)
	}
	if len(snap.StackNames) != 1 || snap.StackNames[0] != "arg08" {
		t.Fatalf("stack = %v", snap.StackNames)
	}
}
