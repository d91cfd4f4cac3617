package list

import "time"

// Debouncer holds at most one pending query. Offering a new query replaces the
// pending one and restarts the quiet period; only a query that differs from the
// last dispatched one is released when the period ends.
type Debouncer struct {
	pending        string
	seq            uint64
	lastDispatched string
}

// Offer replaces the pending query and returns the timer that releases it.
func (d *Debouncer) Offer(query string, after time.Duration) Schedule {
	d.pending = query
	d.seq++
	return Schedule{Timer: TimerDebounce, After: after, Seq: d.seq}
}

// Elapsed consumes the pending query when seq belongs to the latest Offer.
func (d *Debouncer) Elapsed(seq uint64) (string, bool) {
	if seq != d.seq || d.pending == "" {
		return "", false
	}
	query := d.pending
	d.pending = ""
	if query == d.lastDispatched {
		return "", false
	}
	d.lastDispatched = query
	return query, true
}

// Reset drops the pending query, invalidates armed timers and forgets the
// last dispatched query.
func (d *Debouncer) Reset() {
	d.pending = ""
	d.lastDispatched = ""
	d.seq++
}
