package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p != Default() {
		t.Fatalf("Load = %#v, want defaults %#v", p, Default())
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "citadel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("theme = \"Citadel\"\ndetail_pane = true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Citadel" || !p.DetailPane {
		t.Fatalf("Load = %#v, want Citadel with detail pane", p)
	}
}

func TestLoad_BrokenFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if p := Load(path); p != Default() {
		t.Fatalf("Load = %#v, want defaults", p)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \"  \"\ndetail_pane = true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme || !p.DetailPane {
		t.Fatalf("Load = %#v, want default theme and detail pane kept", p)
	}
}

func TestSave_RoundTripsAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir")
	path := filepath.Join(dir, "prefs.toml")

	want := Prefs{Theme: "Citadel", DetailPane: true}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	if got := Load(path); got != want {
		t.Fatalf("Load = %#v, want %#v", got, want)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want only prefs.toml", len(entries))
	}
}
