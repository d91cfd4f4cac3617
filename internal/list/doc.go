// Package list implements the character list screen as a state machine.
//
// Reduce is a pure function from (State, Event) to a new State plus a list of
// Effects. Effects are plain values: a Fetch asks for a page, a Schedule arms
// a one-shot timer, a Note is a log line. Store is the runtime that owns the
// only goroutine allowed to call Reduce, executes the effects it returns, and
// feeds their results back in as events.
//
// # Pagination
//
// The active Mode picks the pagination strategy. Normal pages through the
// full catalog into Items. Search pages through the server-side search for
// Query into SearchResults. A failed page sets PageError and disables further
// pagination until the retry cooldown fires or RetryLastPage is dispatched.
//
// # Search
//
// Search filters the cached Items immediately and offers the query to a
// single-slot Debouncer. When the quiet period passes without a newer query,
// and the query differs from the last one sent, a server search is issued.
// Its results replace the local ones only if the query is still current;
// search failures are logged and otherwise ignored.
//
// # Staleness
//
// Nothing is cancelled when it is superseded. Every result carries the
// counters that were current when its fetch was issued and is dropped on
// arrival if they have moved on. The same applies to timers, so an old
// cooldown cannot end a newer one early.
package list
