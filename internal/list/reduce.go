package list

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/citadel/internal/character"
)

const (
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultRetryCooldown  = 3 * time.Second
)

// Timing holds the delays the reducer writes into Schedule effects.
type Timing struct {
	SearchDebounce time.Duration
	RetryCooldown  time.Duration
}

// DefaultTiming is used by Reduce.
var DefaultTiming = Timing{
	SearchDebounce: DefaultSearchDebounce,
	RetryCooldown:  DefaultRetryCooldown,
}

func (t Timing) withDefaults() Timing {
	if t.SearchDebounce <= 0 {
		t.SearchDebounce = DefaultSearchDebounce
	}
	if t.RetryCooldown <= 0 {
		t.RetryCooldown = DefaultRetryCooldown
	}
	return t
}

// Reduce applies ev to s using DefaultTiming.
func Reduce(s State, ev Event) (State, []Effect) {
	return DefaultTiming.Reduce(s, ev)
}

// Reduce returns the state that follows s after ev, plus the effects the
// caller must execute. It never mutates the slices of s.
func (t Timing) Reduce(s State, ev Event) (State, []Effect) {
	t = t.withDefaults()
	switch ev := ev.(type) {
	case LoadInitial:
		return loadInitial(s)
	case LoadNextPage:
		return loadNextPage(s)
	case RetryLastPage:
		s.PageError = ""
		s.CanLoadMore = true
		return loadNextPage(s)
	case Search:
		return t.search(s, ev.Query)
	case ClearSearch:
		return clearSearch(s), nil
	case InitialLoaded:
		return initialLoaded(s, ev)
	case PageLoaded:
		return t.pageLoaded(s, ev)
	case SearchLoaded:
		return searchLoaded(s, ev)
	case DebounceElapsed:
		return debounceElapsed(s, ev)
	case CooldownElapsed:
		if ev.Seq == s.cooldownSeq && !s.CanLoadMore {
			s.CanLoadMore = true
		}
		return s, nil
	}
	return s, nil
}

func loadInitial(s State) (State, []Effect) {
	if s.LoadingInitial {
		return s, nil
	}
	s.LoadingInitial = true
	s.Error = ""
	// A pagination still in flight belongs to the list being replaced.
	s.LoadingMore = false
	s.ticket++
	s.epoch++
	return s, []Effect{Fetch{Kind: FetchInitial, Mode: ModeNormal, Page: 1, Seq: s.epoch}}
}

func initialLoaded(s State, ev InitialLoaded) (State, []Effect) {
	if ev.Seq != s.epoch || !s.LoadingInitial {
		return s, []Effect{Note{Text: fmt.Sprintf("discarding stale initial page (seq %d, current %d)", ev.Seq, s.epoch)}}
	}
	s.LoadingInitial = false
	if ev.Err != nil {
		s.Error = ev.Err.Error()
		s.Items = nil
		return s, []Effect{Note{Text: fmt.Sprintf("initial load failed: %v", ev.Err)}}
	}
	s.Items = character.Clone(ev.Result.Items)
	s.HasNextPage = ev.Result.HasNext
	s.Page = 1
	s.Error = ""
	s.PageError = ""
	s.CanLoadMore = true
	s.TotalCount = ev.Result.Count
	return s, nil
}

func loadNextPage(s State) (State, []Effect) {
	if s.LoadingMore || s.LoadingInitial || !s.CanLoadMore || !canLoad(s, s.Mode) {
		return s, nil
	}
	s.LoadingMore = true
	s.PageError = ""
	s.ticket++
	return s, []Effect{fetchEffect(s, s.Mode)}
}

func (t Timing) pageLoaded(s State, ev PageLoaded) (State, []Effect) {
	if ev.Seq != s.ticket {
		return s, []Effect{Note{Text: fmt.Sprintf("discarding superseded %s page %d", ev.Mode, ev.Page)}}
	}
	s.LoadingMore = false
	if ev.Gen != generation(s, ev.Mode) {
		return s, []Effect{Note{Text: fmt.Sprintf("discarding stale %s page %d", ev.Mode, ev.Page)}}
	}
	if ev.Err != nil {
		s.PageError = ev.Err.Error()
		s.CanLoadMore = false
		s.cooldownSeq++
		return s, []Effect{
			Schedule{Timer: TimerCooldown, After: t.RetryCooldown, Seq: s.cooldownSeq},
			Note{Text: fmt.Sprintf("%s page %d failed: %v", ev.Mode, ev.Page, ev.Err)},
		}
	}
	return merge(s, ev.Mode, ev.Page, ev.Result), nil
}

func (t Timing) search(s State, query string) (State, []Effect) {
	query = strings.TrimSpace(query)
	if query == "" {
		return clearSearch(s), nil
	}
	if s.Mode == ModeSearch && query == s.Query {
		return s, nil
	}
	s.Query = query
	s.Mode = ModeSearch
	s.SearchResults = character.FilterByName(s.Items, query)
	s.HasNextSearchPage = false
	s.SearchPage = 1
	s.searchSeq++
	return s, []Effect{s.debounce.Offer(query, t.SearchDebounce)}
}

func clearSearch(s State) State {
	s.Query = ""
	s.Mode = ModeNormal
	s.Searching = false
	s.SearchResults = nil
	s.SearchPage = 1
	s.HasNextSearchPage = true
	s.PageError = ""
	s.searchSeq++
	s.searchInFlight = ""
	s.debounce.Reset()
	return s
}

func debounceElapsed(s State, ev DebounceElapsed) (State, []Effect) {
	query, ok := s.debounce.Elapsed(ev.Seq)
	if !ok {
		return s, nil
	}
	s.Searching = true
	s.searchInFlight = query
	return s, []Effect{Fetch{Kind: FetchSearch, Mode: ModeSearch, Page: 1, Query: query}}
}

func searchLoaded(s State, ev SearchLoaded) (State, []Effect) {
	if ev.Query == s.searchInFlight {
		s.Searching = false
		s.searchInFlight = ""
	}
	if s.Mode != ModeSearch || ev.Query != s.Query {
		return s, []Effect{Note{Text: fmt.Sprintf("discarding stale search results for %q", ev.Query)}}
	}
	if ev.Err != nil {
		return s, []Effect{Note{Text: fmt.Sprintf("search %q failed, keeping local results: %v", ev.Query, ev.Err)}}
	}
	results := make([]character.Character, len(ev.Result.Items))
	copy(results, ev.Result.Items)
	s.SearchResults = results
	s.HasNextSearchPage = ev.Result.HasNext
	s.SearchPage = 1
	s.searchSeq++
	return s, nil
}
