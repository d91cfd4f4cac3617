package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const chunkSize = 32 * 1024

// Read returns at most maxLines lines from the end of the file at path,
// oldest first. The file is read backwards in chunks, so only the tail is
// ever loaded. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	var buf []byte
	offset := info.Size()
	// One extra newline marks the start of the oldest wanted line.
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= maxLines {
		n := min(int64(chunkSize), offset)
		offset -= n
		chunk := make([]byte, n, int(n)+len(buf))
		if _, err := file.ReadAt(chunk, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(chunk, buf...)
	}

	text := strings.TrimRight(string(buf), "\r\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// Level is the severity a log line is displayed with.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Classify guesses a line's severity from its wording. citadel logs through
// the standard logger, which carries no level field.
func Classify(line string) Level {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "failed"), strings.Contains(lower, "error"):
		return LevelError
	case strings.Contains(lower, "discarding"), strings.Contains(lower, "stale"):
		return LevelWarn
	default:
		return LevelInfo
	}
}
