package fixture

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json"

	"github.com/five82/citadel/internal/rickmorty"
)

// PageSize matches the public API.
const PageSize = 20

const (
	msgNothingHere = "There is nothing here"
	msgMissingID   = "Hey! you must provide an id"
	msgNotFound    = "Character not found"
	msgServerError = "Internal server error"
)

// Build mounts the character API on a new box. Callers add AccessLog and
// other cross-cutting interceptors themselves.
func Build(c *Catalog, opts Options) *box.B {
	b := box.NewBox()

	api := b.Resource("/api")
	api.Resource("/health").
		WithActions(box.Get(health(c)).WithName("health"))

	characters := api.Resource("/character")
	characters.
		WithActions(
			box.Get(listCharacters(c)).WithName("listCharacters").
				WithInterceptors(FaultInjection(opts)),
		)
	characters.Resource("/{id}").
		WithActions(
			box.Get(getCharacter(c)).WithName("getCharacter").
				WithInterceptors(FaultInjection(Options{Latency: opts.Latency})),
		)

	// Registered last so it only catches what nothing else matched.
	b.Resource("/*").
		WithActions(
			box.Get(nothingHere).WithName("nothingHere"),
			box.Post(nothingHere),
			box.Put(nothingHere),
			box.Patch(nothingHere),
			box.Delete(nothingHere),
		)

	return b
}

func health(c *Catalog) func(ctx context.Context) {
	return func(ctx context.Context) {
		writeJSON(box.GetResponse(ctx), http.StatusOK, map[string]any{
			"status":     "ok",
			"characters": c.Len(),
		})
	}
}

func listCharacters(c *Catalog) func(ctx context.Context) {
	return func(ctx context.Context) {
		r := box.GetRequest(ctx)
		w := box.GetResponse(ctx)
		query := r.URL.Query()

		matches, err := c.Find(Filter{
			Name:    strings.TrimSpace(query.Get("name")),
			Status:  strings.TrimSpace(query.Get("status")),
			Species: strings.TrimSpace(query.Get("species")),
			Gender:  strings.TrimSpace(query.Get("gender")),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}

		page := parsePage(query.Get("page"))
		pages := (len(matches) + PageSize - 1) / PageSize
		if len(matches) == 0 || page > pages {
			writeError(w, http.StatusNotFound, msgNothingHere)
			return
		}

		start := (page - 1) * PageSize
		end := min(start+PageSize, len(matches))

		resp := rickmorty.CharacterListResponse{
			Info: rickmorty.ResponseInfo{
				Count: len(matches),
				Pages: pages,
			},
			Results: matches[start:end],
		}
		if page < pages {
			resp.Info.Next = pageURL(r, page+1)
		}
		if page > 1 {
			resp.Info.Prev = pageURL(r, page-1)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getCharacter(c *Catalog) func(ctx context.Context) {
	return func(ctx context.Context) {
		w := box.GetResponse(ctx)
		id, err := strconv.Atoi(box.GetUrlParameter(ctx, "id"))
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, msgMissingID)
			return
		}
		record, ok := c.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func nothingHere(ctx context.Context) {
	writeError(box.GetResponse(ctx), http.StatusNotFound, msgNothingHere)
}

// parsePage treats a missing or malformed page as the first one.
func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageURL returns the absolute URL of the same listing at page, keeping the
// request's filters.
func pageURL(r *http.Request, page int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(page))
	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}
	s := u.String()
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.MarshalWrite(w, v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, rickmorty.ErrorResponse{Error: message})
}
