package list

import (
	"context"

	"github.com/five82/citadel/internal/character"
)

// Pagination is selected per Mode. Normal pages through the full catalog into
// Items; Search pages through the server search for Query into SearchResults.

func canLoad(s State, mode Mode) bool {
	switch mode {
	case ModeSearch:
		return s.HasNextSearchPage
	default:
		return s.HasNextPage
	}
}

func nextPage(s State, mode Mode) int {
	switch mode {
	case ModeSearch:
		return s.SearchPage + 1
	default:
		return s.Page + 1
	}
}

// generation is the counter a page result for mode must still match to be
// merged.
func generation(s State, mode Mode) uint64 {
	switch mode {
	case ModeSearch:
		return s.searchSeq
	default:
		return s.epoch
	}
}

func fetchEffect(s State, mode Mode) Fetch {
	f := Fetch{
		Kind: FetchNext,
		Mode: mode,
		Page: nextPage(s, mode),
		Seq:  s.ticket,
		Gen:  generation(s, mode),
	}
	if mode == ModeSearch {
		f.Query = s.Query
	}
	return f
}

func merge(s State, mode Mode, page int, result character.Page) State {
	switch mode {
	case ModeSearch:
		s.SearchResults = appendRecords(s.SearchResults, result.Items)
		s.SearchPage = page
		s.HasNextSearchPage = result.HasNext
	default:
		s.Items = appendRecords(s.Items, result.Items)
		s.Page = page
		s.HasNextPage = result.HasNext
		if result.Count > 0 {
			s.TotalCount = result.Count
		}
	}
	return s
}

// appendRecords never writes into the backing array of dst, so earlier State
// values stay intact.
func appendRecords(dst, src []character.Character) []character.Character {
	out := make([]character.Character, 0, len(dst)+len(src))
	out = append(out, dst...)
	return append(out, src...)
}

// Fetcher is the collaborator that performs page fetches. Both calls take
// page numbers starting at 1.
type Fetcher interface {
	FetchPage(ctx context.Context, page int) (character.Page, error)
	SearchPage(ctx context.Context, query string, page int) (character.Page, error)
}

// run performs f and wraps the outcome in the matching result event.
func (f Fetch) run(ctx context.Context, fetcher Fetcher) Event {
	switch f.Kind {
	case FetchInitial:
		page, err := fetcher.FetchPage(ctx, 1)
		return InitialLoaded{Seq: f.Seq, Result: page, Err: err}
	case FetchSearch:
		page, err := fetcher.SearchPage(ctx, f.Query, 1)
		return SearchLoaded{Query: f.Query, Result: page, Err: err}
	default:
		var (
			page character.Page
			err  error
		)
		switch f.Mode {
		case ModeSearch:
			page, err = fetcher.SearchPage(ctx, f.Query, f.Page)
		default:
			page, err = fetcher.FetchPage(ctx, f.Page)
		}
		return PageLoaded{Mode: f.Mode, Page: f.Page, Seq: f.Seq, Gen: f.Gen, Result: page, Err: err}
	}
}
