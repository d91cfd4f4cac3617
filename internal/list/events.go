package list

import "github.com/five82/citadel/internal/character"

// Event is anything the reducer reacts to: intents from the view and the
// results of effects the store executed.
type Event interface {
	isEvent()
}

// Intent is an Event the view may submit through Store.Dispatch.
type Intent interface {
	Event
	isIntent()
}

type (
	// LoadInitial fetches page 1 and replaces the cached records.
	LoadInitial struct{}
	// LoadNextPage fetches the next page of the active mode.
	LoadNextPage struct{}
	// RetryLastPage clears a pagination error and lifts the cooldown.
	RetryLastPage struct{}
	// Search filters the cached records and schedules a server search.
	Search struct{ Query string }
	// ClearSearch leaves search mode.
	ClearSearch struct{}
)

func (LoadInitial) isEvent()   {}
func (LoadNextPage) isEvent()  {}
func (RetryLastPage) isEvent() {}
func (Search) isEvent()        {}
func (ClearSearch) isEvent()   {}

func (LoadInitial) isIntent()   {}
func (LoadNextPage) isIntent()  {}
func (RetryLastPage) isIntent() {}
func (Search) isIntent()        {}
func (ClearSearch) isIntent()   {}

// InitialLoaded carries the result of a FetchInitial effect.
type InitialLoaded struct {
	Seq    uint64
	Result character.Page
	Err    error
}

// PageLoaded carries the result of a FetchNext effect.
type PageLoaded struct {
	Mode   Mode
	Page   int
	Seq    uint64
	Gen    uint64
	Result character.Page
	Err    error
}

// SearchLoaded carries the result of a FetchSearch effect.
type SearchLoaded struct {
	Query  string
	Result character.Page
	Err    error
}

// CooldownElapsed fires when the retry cooldown scheduled with Seq ends.
type CooldownElapsed struct{ Seq uint64 }

// DebounceElapsed fires when the search quiet period scheduled with Seq ends.
type DebounceElapsed struct{ Seq uint64 }

func (InitialLoaded) isEvent()   {}
func (PageLoaded) isEvent()      {}
func (SearchLoaded) isEvent()    {}
func (CooldownElapsed) isEvent() {}
func (DebounceElapsed) isEvent() {}
