package fixture

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/five82/citadel/internal/rickmorty"
)

type JSON = map[string]interface{}

func newTestAPI(t *testing.T, opts Options, logs *bytes.Buffer) *apitest.Apitest {
	t.Helper()
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog returned error: %v", err)
	}
	b := Build(c, opts)
	if logs != nil {
		b.WithInterceptors(AccessLog(log.New(logs, "ACCESS: ", 0)))
	}
	api := apitest.NewWithHandler(b)
	t.Cleanup(api.Destroy)
	return api
}

func results(body JSON) []interface{} {
	list, _ := body["results"].([]interface{})
	return list
}

func TestAcceptance(t *testing.T) {
	biff.Alternative("Fixture API", func(a *biff.A) {
		api := newTestAPI(t, Options{}, nil)

		a.Alternative("First page", func(a *biff.A) {
			resp := api.Request("GET", "/api/character").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJsonMap()
			info := body["info"].(JSON)
			biff.AssertEqualJson(info["count"], 50)
			biff.AssertEqualJson(info["pages"], 3)
			biff.AssertEqual(info["prev"], nil)
			biff.AssertEqual(info["next"], api.Base+"/api/character?page=2")
			biff.AssertEqual(len(results(body)), PageSize)
		})

		a.Alternative("Last page", func(a *biff.A) {
			resp := api.Request("GET", "/api/character").WithQuery("page", "3").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJsonMap()
			info := body["info"].(JSON)
			biff.AssertEqual(info["next"], nil)
			biff.AssertEqual(info["prev"], api.Base+"/api/character?page=2")
			biff.AssertEqual(len(results(body)), 10)
		})

		a.Alternative("Page out of range", func(a *biff.A) {
			resp := api.Request("GET", "/api/character").WithQuery("page", "4").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "There is nothing here"})
		})

		a.Alternative("Search by name", func(a *biff.A) {
			resp := api.Request("GET", "/api/character").WithQuery("name", "rick").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJsonMap()
			biff.AssertEqual(len(results(body)), 6)
			biff.AssertEqual(body["info"].(JSON)["next"], nil)
		})

		a.Alternative("Search keeps filters in next link", func(a *biff.A) {
			resp := api.Request("GET", "/api/character").WithQuery("status", "alive").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			next, _ := resp.BodyJsonMap()["info"].(JSON)["next"].(string)
			biff.AssertTrue(strings.Contains(next, "status=alive"))
			biff.AssertTrue(strings.Contains(next, "page=2"))
		})

		a.Alternative("Search without matches", func(a *biff.A) {
			resp := api.Request("GET", "/api/character").WithQuery("name", "jessica").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "There is nothing here"})
		})

		a.Alternative("Single character", func(a *biff.A) {
			resp := api.Request("GET", "/api/character/47").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJsonMap()
			biff.AssertEqual(body["name"], "Birdperson")
			biff.AssertEqual(body["species"], "Alien")
		})

		a.Alternative("Unknown character", func(a *biff.A) {
			resp := api.Request("GET", "/api/character/9999").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Character not found"})
		})

		a.Alternative("Bad character id", func(a *biff.A) {
			resp := api.Request("GET", "/api/character/abc").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"error": "Hey! you must provide an id"})
		})

		a.Alternative("Unknown route", func(a *biff.A) {
			resp := api.Request("GET", "/api/episode").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Health", func(a *biff.A) {
			resp := api.Request("GET", "/api/health").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"status": "ok", "characters": 50})
		})
	})
}

func TestFaultInjection_FailsEveryNthListRequest(t *testing.T) {
	api := newTestAPI(t, Options{FailEvery: 2}, nil)

	var statuses []int
	for i := 0; i < 4; i++ {
		resp := api.Request("GET", "/api/character").Do()
		resp.BodyClose()
		statuses = append(statuses, resp.StatusCode)
	}
	want := []int{200, 500, 200, 500}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", statuses, want)
		}
	}

	resp := api.Request("GET", "/api/character/1").Do()
	resp.BodyClose()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail status = %d, want 200 (faults only hit the list)", resp.StatusCode)
	}
}

func TestAccessLog_RecordsStatusAndRequestID(t *testing.T) {
	var logs bytes.Buffer
	api := newTestAPI(t, Options{}, &logs)

	resp := api.Request("GET", "/api/character/9999").WithHeader("X-Request-Id", "req-42").Do()
	resp.BodyClose()
	if got := resp.Header.Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("X-Request-Id echo = %q, want req-42", got)
	}

	line := logs.String()
	for _, want := range []string{"ACCESS: ", "GET", "/api/character/9999", "404", "req-42"} {
		if !strings.Contains(line, want) {
			t.Fatalf("access log %q missing %q", line, want)
		}
	}
}

func TestClientAgainstFixture(t *testing.T) {
	api := newTestAPI(t, Options{}, nil)

	client, err := rickmorty.NewClient(api.Base+"/api", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	page, err := client.FetchPage(ctx, 3)
	if err != nil {
		t.Fatalf("FetchPage(3) returned error: %v", err)
	}
	if len(page.Items) != 10 || page.HasNext || page.Count != 50 {
		t.Fatalf("FetchPage(3) = %d items hasNext=%v count=%d, want 10 false 50", len(page.Items), page.HasNext, page.Count)
	}

	page, err = client.SearchPage(ctx, "morty", 1)
	if err != nil {
		t.Fatalf("SearchPage returned error: %v", err)
	}
	for _, c := range page.Items {
		if !c.NameContains("morty") {
			t.Fatalf("search result %q does not contain morty", c.Name)
		}
	}

	if _, err := client.SearchPage(ctx, "jessica", 1); rickmorty.KindOf(err) != rickmorty.KindNotFound {
		t.Fatalf("SearchPage(no match) kind = %v, want not found", rickmorty.KindOf(err))
	}

	detail, err := client.FetchCharacter(ctx, 242)
	if err != nil {
		t.Fatalf("FetchCharacter returned error: %v", err)
	}
	if detail.Name != "Mr. Meeseeks" || detail.Type != "Meeseeks" {
		t.Fatalf("FetchCharacter = %#v, want Mr. Meeseeks", detail)
	}
}
