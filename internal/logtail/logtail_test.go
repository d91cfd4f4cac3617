package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "citadel.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	logPath := writeLog(t, content.String())

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 5, expected: all[5:]},
		{name: "exactly all", maxLines: 10, expected: all},
		{name: "more than exists", maxLines: 20, expected: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestRead_NoTrailingNewlineAndCRLF(t *testing.T) {
	path := writeLog(t, "a\r\nb\r\nc")
	got, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Read() = %q, want %q", got, want)
	}
}

func TestRead_SpansChunks(t *testing.T) {
	var content strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&content, "citadel 2026/10/18 12:00:00 list: line %04d %s\n", i, strings.Repeat("x", 20))
	}
	path := writeLog(t, content.String())

	got, err := Read(path, 3)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 3 || !strings.Contains(got[0], "line 4997") || !strings.Contains(got[2], "line 4999") {
		t.Fatalf("Read() = %q, want lines 4997..4999", got)
	}

	got, err = Read(path, 4000)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 4000 || !strings.Contains(got[0], "line 1000 ") {
		t.Fatalf("Read(4000) returned %d lines starting %q", len(got), got[0])
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Level
	}{
		{"citadel 2026/10/18 12:00:00 list: normal page 3 failed: Server error, please try again later", LevelError},
		{"citadel 2026/10/18 12:00:00 list: discarding stale search results for \"rick\"", LevelWarn},
		{"citadel 2026/10/18 12:00:00 citadel: browsing https://rickandmortyapi.com/api/", LevelInfo},
		{"citadel 2026/10/18 12:00:00 ui: save prefs: permission denied ERROR", LevelError},
	}
	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
