// Package character holds the record types shared by the list store, the REST
// client and the fixture server.
package character

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Character is one list record. Records are never mutated after a fetch; a
// re-fetch replaces them wholesale.
type Character struct {
	ID      int
	Name    string
	Species string
	Image   string
	Status  string
}

// Page is one page of records as returned by a fetch.
type Page struct {
	Items   []Character
	HasNext bool
	Count   int // total records reported by the API, zero when unknown
	Pages   int
}

// Detail carries the extra fields shown on the detail view.
type Detail struct {
	Character
	Type     string
	Gender   string
	Origin   string
	Location string
	Episodes int
	URL      string
	Created  time.Time
}

// Fold returns the case-folded form of s used for case-insensitive matching.
// A Caser is stateful, so each call builds its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NameContains reports whether the character's name contains query, ignoring case.
// An empty query matches everything.
func (c Character) NameContains(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(Fold(c.Name), Fold(query))
}

// FilterByName returns the records whose name contains query, preserving order.
// The result never aliases items.
func FilterByName(items []Character, query string) []Character {
	out := make([]Character, 0, len(items))
	for _, item := range items {
		if item.NameContains(query) {
			out = append(out, item)
		}
	}
	return out
}

// Clone returns a copy of items, or nil when items is empty.
func Clone(items []Character) []Character {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Character, len(items))
	copy(dup, items)
	return dup
}
