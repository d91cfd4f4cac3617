package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_RejectsMalformedAPIBase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CITADEL_LOG_PATH", filepath.Join(dir, "state", "citadel.log"))

	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		APIBase:    "http://",
	})
	if err == nil {
		t.Fatalf("Run() error = nil, want error for missing host")
	}
	if !strings.Contains(err.Error(), "init api client") {
		t.Fatalf("Run() error = %q, want init api client context", err)
	}
}

func TestRun_ReportsConfigErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("search_debounce = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := Run(context.Background(), Options{ConfigPath: path})
	if err == nil || !strings.HasPrefix(err.Error(), "load config:") {
		t.Fatalf("Run() error = %v, want load config error", err)
	}
}

func TestOpenLog_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "citadel.log")
	f, err := openLog(path)
	if err != nil {
		t.Fatalf("openLog() error = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
