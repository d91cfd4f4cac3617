package rickmorty

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/five82/citadel/internal/character"
)

// Client talks to a Rick and Morty style character API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultAPIBase        = "https://rickandmortyapi.com/api"
	defaultUserAgent      = "citadel/0.1"
	defaultRequestTimeout = 10 * time.Second
	requestIDHeader       = "X-Request-Id"
)

// NewClient builds a Client for apiBase. A zero timeout uses the default.
func NewClient(apiBase string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API base.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchPage retrieves one page of the unfiltered character list.
func (c *Client) FetchPage(ctx context.Context, page int) (character.Page, error) {
	return c.listCharacters(ctx, "", page)
}

// SearchPage retrieves one page of characters whose name matches query.
func (c *Client) SearchPage(ctx context.Context, query string, page int) (character.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return character.Page{}, fmt.Errorf("search query is empty")
	}
	return c.listCharacters(ctx, query, page)
}

// FetchCharacter retrieves a single character by id.
func (c *Client) FetchCharacter(ctx context.Context, id int) (character.Detail, error) {
	if c == nil {
		return character.Detail{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return character.Detail{}, fmt.Errorf("character id required")
	}
	rel := &url.URL{Path: "character/" + strconv.Itoa(id)}
	var payload CharacterDTO
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return character.Detail{}, err
	}
	return payload.ToDetail(), nil
}

func (c *Client) listCharacters(ctx context.Context, name string, page int) (character.Page, error) {
	if c == nil {
		return character.Page{}, fmt.Errorf("client is nil")
	}
	if page < 1 {
		return character.Page{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	if name != "" {
		values.Set("name", name)
	}
	rel := &url.URL{Path: "character", RawQuery: values.Encode()}
	var payload CharacterListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return character.Page{}, err
	}
	return payload.ToPage(), nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, rel.String())
	}
	if dest == nil {
		return nil
	}
	if err := json.UnmarshalRead(resp.Body, dest); err != nil {
		return networkError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = DefaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", apiBase)
	}
	// ResolveReference drops the last path segment unless it ends in a slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
