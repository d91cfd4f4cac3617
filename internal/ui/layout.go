package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops labels.
	LayoutCompactWidth = 100

	// LayoutSplitWidth is the minimum width for the list/summary split.
	LayoutSplitWidth = 110
)

// Fixed chrome heights.
const (
	headerLines = 2 // status line + command bar
	boxChrome   = 2 // top and bottom border
)

// DetailFetchTimeout bounds the character/{id} request made when a detail
// view opens.
const DetailFetchTimeout = 5 * time.Second

// ActivityLogLines is how much of the log tail the activity view shows.
const ActivityLogLines = 400
