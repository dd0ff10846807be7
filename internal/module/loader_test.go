package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bollmeier/boli/internal/value"
)

func TestResolveFindsPlainFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "util.boli"), []byte("(def x 1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Resolve([]string{dir}, nil, "util")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Source != "(def x 1)" {
		t.Fatalf("got %q", r.Source)
	}
}

func TestResolveTriesEachRootInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirB, "util.boli"), []byte("(def x 2)"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Resolve([]string{dirA, dirB}, nil, "util")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Source != "(def x 2)" {
		t.Fatalf("got %q, want to find it in the second root", r.Source)
	}
}

func TestResolveDescendsIntoSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "core"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "core", "list.boli"), []byte("(def y 3)"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Resolve([]string{dir}, nil, "core::list")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Source != "(def y 3)" {
		t.Fatalf("got %q", r.Source)
	}
}

func TestResolveFallsBackToExtension(t *testing.T) {
	dir := t.TempDir()
	ext := NewExtensionDir("root")
	ext.AddExtension(NewExtension("native", map[string]value.Value{"x": value.Int(1)}))
	_, err := Resolve([]string{dir}, ext, "native")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

func TestResolveNotFoundReportsModuleError(t *testing.T) {
	dir := t.TempDir()
	_, err := Resolve([]string{dir}, nil, "nope")
	if err == nil {
		t.Fatal("expected a not-found error")
	}
}
