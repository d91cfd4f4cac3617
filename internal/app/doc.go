// Package app is citadel's composition root.
//
// Run loads the configuration, routes the standard logger to the log file,
// builds the API client and the list store, requests the first page and hands
// the terminal to the UI. When the UI exits, or the context passed to Run is
// cancelled, the store is closed: in-flight fetches are cancelled and pending
// timers stopped.
//
// Startup problems (an unreadable config, a malformed API base, an unwritable
// log directory) are returned to the caller. Nothing after startup is fatal;
// fetch failures surface in the list state instead.
package app
