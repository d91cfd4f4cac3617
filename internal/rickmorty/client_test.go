package rickmorty

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
)

func strPtr(s string) *string { return &s }

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultAPIBase+"/" {
		t.Fatalf("base = %q, want %q", u.String(), DefaultAPIBase+"/")
	}

	u, err = parseBaseURL("127.0.0.1:7488/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host error")
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotPaths []string
	var gotQueries []url.Values
	var gotUserAgent, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get(requestIDHeader)
		gotPaths = append(gotPaths, r.URL.Path)
		gotQueries = append(gotQueries, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/character":
			resp := CharacterListResponse{
				Info:    ResponseInfo{Count: 2, Pages: 2, Next: strPtr("http://x/api/character?page=2")},
				Results: []CharacterDTO{{ID: 1, Name: "Rick Sanchez", Species: "Human", Status: "Alive", Image: "http://x/1.jpeg"}},
			}
			if r.URL.Query().Get("name") != "" {
				resp.Info.Next = nil
			}
			_ = json.MarshalWrite(w, resp)
		case "/api/character/2":
			_ = json.MarshalWrite(w, CharacterDTO{
				ID:       2,
				Name:     "Morty Smith",
				Gender:   "Male",
				Origin:   LocationRef{Name: "unknown"},
				Location: LocationRef{Name: "Citadel of Ricks"},
				Episode:  []string{"e1", "e2", "e3"},
				Created:  "2017-11-04T18:50:21.651Z",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.FetchPage(ctx, 1)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Rick Sanchez" || !page.HasNext || page.Count != 2 {
		t.Fatalf("FetchPage = %#v, want 1 item with next page", page)
	}
	if gotQueries[0].Get("page") != "1" || gotQueries[0].Has("name") {
		t.Fatalf("FetchPage query = %v, want page=1 without name", gotQueries[0])
	}

	page, err = c.SearchPage(ctx, "  rick ", 3)
	if err != nil {
		t.Fatalf("SearchPage returned error: %v", err)
	}
	if page.HasNext {
		t.Fatalf("SearchPage HasNext = true, want false when info.next is null")
	}
	if gotQueries[1].Get("name") != "rick" || gotQueries[1].Get("page") != "3" {
		t.Fatalf("SearchPage query = %v, want name=rick page=3", gotQueries[1])
	}

	detail, err := c.FetchCharacter(ctx, 2)
	if err != nil {
		t.Fatalf("FetchCharacter returned error: %v", err)
	}
	if detail.Name != "Morty Smith" || detail.Location != "Citadel of Ricks" || detail.Episodes != 3 {
		t.Fatalf("FetchCharacter = %#v, want Morty at the Citadel with 3 episodes", detail)
	}
	if detail.Created.IsZero() {
		t.Fatalf("FetchCharacter Created is zero, want parsed timestamp")
	}

	if gotPaths[0] != "/api/character" || gotPaths[2] != "/api/character/2" {
		t.Fatalf("paths = %v, want /api/character and /api/character/2", gotPaths)
	}
	if !strings.HasPrefix(gotUserAgent, "citadel/") {
		t.Fatalf("User-Agent = %q, want citadel/*", gotUserAgent)
	}
	if len(gotRequestID) != 36 {
		t.Fatalf("X-Request-Id = %q, want a uuid", gotRequestID)
	}
}

func TestClient_MapsStatusCodesToFetchErrors(t *testing.T) {
	t.Parallel()

	statuses := map[string]int{
		"1": http.StatusNotFound,
		"2": http.StatusInternalServerError,
		"3": http.StatusBadGateway,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := statuses[r.URL.Query().Get("page")]
		if status == 0 {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
			return
		}
		w.WriteHeader(status)
		_ = json.MarshalWrite(w, ErrorResponse{Error: "There is nothing here"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	tests := []struct {
		page    int
		kind    Kind
		message string
	}{
		{1, KindNotFound, "Character not found"},
		{2, KindServer, "Server error, please try again later"},
		{3, KindUnknown, "Something went wrong"},
		{4, KindNetwork, "Network error: decode response"},
	}
	for _, tt := range tests {
		_, err := c.FetchPage(context.Background(), tt.page)
		if err == nil {
			t.Fatalf("FetchPage(%d) returned nil error", tt.page)
		}
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("FetchPage(%d) error = %T, want *FetchError", tt.page, err)
		}
		if fe.Kind != tt.kind || KindOf(err) != tt.kind {
			t.Fatalf("FetchPage(%d) kind = %v, want %v", tt.page, fe.Kind, tt.kind)
		}
		if !strings.HasPrefix(err.Error(), tt.message) {
			t.Fatalf("FetchPage(%d) message = %q, want prefix %q", tt.page, err.Error(), tt.message)
		}
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 200*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchPage(context.Background(), 1)
	if KindOf(err) != KindNetwork {
		t.Fatalf("FetchPage error kind = %v, want network error (%v)", KindOf(err), err)
	}
	if !strings.HasPrefix(err.Error(), "Network error: ") {
		t.Fatalf("FetchPage error = %q, want Network error prefix", err.Error())
	}
}

func TestClient_RejectsInvalidArguments(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchPage(context.Background(), 0); err == nil {
		t.Fatalf("FetchPage(0) returned nil error, want error")
	}
	if _, err := c.SearchPage(context.Background(), "   ", 1); err == nil {
		t.Fatalf("SearchPage(blank) returned nil error, want error")
	}
	if _, err := c.FetchCharacter(context.Background(), 0); err == nil {
		t.Fatalf("FetchCharacter(0) returned nil error, want error")
	}
}
