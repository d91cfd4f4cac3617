// Package logtail reads the newest lines of citadel's log file for the
// activity view.
//
// The TUI owns the terminal, so everything citadel logs (fetch failures,
// stale responses the list store discarded, preference save errors) goes to
// a file. Read returns the last N lines of that file without scanning it
// from the start, and Classify assigns each line a display severity.
//
//	lines, err := logtail.Read(cfg.LogPath, 200)
//	if err != nil {
//		log.Printf("read activity log: %v", err)
//	}
package logtail
