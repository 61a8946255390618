package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSignatureLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigs.txt")
	content := `# fixture signatures
i32, f64

{f32, f32} -> i64
  # indented comment
i128
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	sigs, err := readSignatureLines(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"i32, f64", "{f32, f32} -> i64", "i128"}
	if len(sigs) != len(want) {
		t.Fatalf("got %d signatures: %v", len(sigs), sigs)
	}
	for i := range want {
		if sigs[i] != want[i] {
			t.Fatalf("sigs[%d] = %q, want %q", i, sigs[i], want[i])
		}
	}
}

func TestReadSignatureLinesMissingFile(t *testing.T) {
	if _, err := readSignatureLines(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
