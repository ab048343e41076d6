package fontload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"Roboto.ttf":        true,
		"Roboto-Bold.OTF":   true,
		"fonts/Inter.woff2": false,
		"Helvetica.ttc":     false,
		"README":            false,
	} {
		if got := Supported(name); got != want {
			t.Errorf("Supported(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ttf")
	if err := os.WriteFile(path, []byte{0, 1, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Binary) != 4 || f.Filepath != path {
		t.Errorf("unexpected font file %+v", f)
	}
	if _, err := Load(filepath.Join(dir, "test.woff")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.otf")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
