package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "report.md")
	if err := SafeWriteFile(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "second" {
		t.Fatalf("content = %q", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	if err := SafeWriteFile(filepath.Join(t.TempDir(), "nope", "x"), []byte("x")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"g989": 13})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"g989\": 13\n}" {
		t.Fatalf("got %q", b)
	}
}
