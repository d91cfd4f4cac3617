package list

import "github.com/five82/citadel/internal/character"

// Mode selects which record set is visible and which pagination strategy runs.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "normal"
}

// State is the full list-screen state. Values are replaced wholesale by Reduce;
// callers never mutate a State they did not produce themselves.
type State struct {
	Items         []character.Character
	SearchResults []character.Character
	Query         string
	Mode          Mode

	LoadingInitial bool
	LoadingMore    bool
	Searching      bool

	Error     string // initial load failure, shown full screen
	PageError string // pagination failure, shown at the end of the list

	Page              int
	SearchPage        int
	HasNextPage       bool
	HasNextSearchPage bool
	CanLoadMore       bool
	TotalCount        int

	debounce       Debouncer
	epoch          uint64 // bumped by LoadInitial, guards normal-mode results
	ticket         uint64 // identifies the pagination fetch in flight
	searchSeq      uint64 // bumped whenever SearchResults is rebuilt
	cooldownSeq    uint64
	searchInFlight string // query of the newest server search
}

// NewState returns the state a freshly mounted screen starts from.
func NewState() State {
	return State{
		Page:              1,
		SearchPage:        1,
		HasNextPage:       true,
		HasNextSearchPage: false,
		CanLoadMore:       true,
	}
}

// Visible returns the records the screen should render for the current mode.
func (s State) Visible() []character.Character {
	if s.Mode == ModeSearch {
		return s.SearchResults
	}
	return s.Items
}

// HasNext reports whether the active mode has another page to fetch.
func (s State) HasNext() bool {
	return canLoad(s, s.Mode)
}

// ShouldLoadMore reports whether a view showing index as its last visible row
// should request the next page.
func (s State) ShouldLoadMore(index int) bool {
	visible := len(s.Visible())
	if visible == 0 || index < visible-prefetchDistance {
		return false
	}
	return s.HasNext() && !s.LoadingMore && !s.LoadingInitial && s.CanLoadMore
}

// prefetchDistance is how close to the end of the list the view may get
// before the next page is requested.
const prefetchDistance = 3

func (s State) clone() State {
	dup := s
	dup.Items = character.Clone(s.Items)
	dup.SearchResults = character.Clone(s.SearchResults)
	return dup
}
