package rickmorty

import (
	"strings"
	"time"

	"github.com/five82/citadel/internal/character"
)

// ResponseInfo mirrors the paging envelope of /character.
type ResponseInfo struct {
	Count int     `json:"count"`
	Pages int     `json:"pages"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

// CharacterListResponse mirrors /character and /character?name=.
type CharacterListResponse struct {
	Info    ResponseInfo   `json:"info"`
	Results []CharacterDTO `json:"results"`
}

// LocationRef is the name/url pair used for origin and location.
type LocationRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CharacterDTO describes a character in transport form.
type CharacterDTO struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Status   string      `json:"status"`
	Species  string      `json:"species"`
	Type     string      `json:"type"`
	Gender   string      `json:"gender"`
	Origin   LocationRef `json:"origin"`
	Location LocationRef `json:"location"`
	Image    string      `json:"image"`
	Episode  []string    `json:"episode"`
	URL      string      `json:"url"`
	Created  string      `json:"created"`
}

// ErrorResponse is the body the API sends alongside 4xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToCharacter maps the DTO to the list record.
func (d CharacterDTO) ToCharacter() character.Character {
	return character.Character{
		ID:      d.ID,
		Name:    d.Name,
		Species: d.Species,
		Image:   d.Image,
		Status:  d.Status,
	}
}

// ToDetail maps the DTO to the detail view model.
func (d CharacterDTO) ToDetail() character.Detail {
	return character.Detail{
		Character: d.ToCharacter(),
		Type:      d.Type,
		Gender:    d.Gender,
		Origin:    d.Origin.Name,
		Location:  d.Location.Name,
		Episodes:  len(d.Episode),
		URL:       d.URL,
		Created:   parseTime(d.Created),
	}
}

// ToPage maps the list response to a page. HasNext follows info.next.
func (r CharacterListResponse) ToPage() character.Page {
	items := make([]character.Character, 0, len(r.Results))
	for _, dto := range r.Results {
		items = append(items, dto.ToCharacter())
	}
	return character.Page{
		Items:   items,
		HasNext: r.Info.Next != nil && strings.TrimSpace(*r.Info.Next) != "",
		Count:   r.Info.Count,
		Pages:   r.Info.Pages,
	}
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
