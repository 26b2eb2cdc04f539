// Package scryfall wraps the card lookup and search endpoints of the
// Scryfall API needed to resolve decklist entries and gather candidate
// pools for substitute discovery.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"
)

const (
	scryfallBaseURL = "https://api.scryfall.com"

	userAgent = "go-mtgswap/1.0"
)

type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient returns a catalog client honoring the API courtesy limit of
// roughly 10 requests per second. Requests are never retried: a failed
// exchange is a hard failure of the operation that issued it.
func NewClient() *Client {
	sc := Client{}
	sc.baseURL = scryfallBaseURL
	sc.client = cleanhttp.DefaultClient()
	sc.client.Transport = &throttledTransport{
		Parent:  sc.client.Transport,
		Limiter: rate.NewLimiter(10, 10),
	}
	return &sc
}

type throttledTransport struct {
	Parent  http.RoundTripper
	Limiter *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := t.Limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	return t.Parent.RoundTrip(req)
}

// LookupError reports a failed single-card resolution, preserving the
// name that was queried.
type LookupError struct {
	Name       string
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lookup failed for %q: %s", e.Name, e.Err.Error())
	}
	return fmt.Sprintf("lookup failed for %q: status code %d", e.Name, e.StatusCode)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// SearchError reports a failed search, preserving the query that was
// submitted. A failure on any page discards the whole pool.
type SearchError struct {
	Query      string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("search failed for %q: %s", e.Query, e.Err.Error())
	}
	return fmt.Sprintf("search failed for %q: status code %d", e.Query, e.StatusCode)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

type searchResponse struct {
	Data       []Card `json:"data"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page"`
	TotalCards int    `json:"total_cards"`
}

// LookupByName resolves a single card through the fuzzy name endpoint.
func (sc *Client) LookupByName(ctx context.Context, name string) (*Card, error) {
	link := sc.baseURL + "/cards/named?fuzzy=" + url.QueryEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, http.NoBody)
	if err != nil {
		return nil, &LookupError{Name: name, Err: err}
	}
	resp, err := sc.client.Do(req)
	if err != nil {
		return nil, &LookupError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LookupError{Name: name, StatusCode: resp.StatusCode}
	}

	var card Card
	err = json.NewDecoder(resp.Body).Decode(&card)
	if err != nil {
		return nil, &LookupError{Name: name, Err: err}
	}

	return &card, nil
}

// SearchMany runs a full-text search and follows pagination links until
// either maxCards are accumulated or the service reports no more pages.
// Page fetches are strictly sequential since each next link is only
// known after the previous page resolves.
func (sc *Client) SearchMany(ctx context.Context, query string, maxCards int) ([]Card, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("unique", "cards")
	v.Set("order", "usd")
	v.Set("dir", "asc")
	next := sc.baseURL + "/cards/search?" + v.Encode()

	var out []Card
	for next != "" && len(out) < maxCards {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, http.NoBody)
		if err != nil {
			return nil, &SearchError{Query: query, Err: err}
		}
		resp, err := sc.client.Do(req)
		if err != nil {
			return nil, &SearchError{Query: query, Err: err}
		}

		// 404 means zero matches, not a service failure
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			break
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &SearchError{Query: query, StatusCode: resp.StatusCode}
		}

		var page searchResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, &SearchError{Query: query, Err: err}
		}

		out = append(out, page.Data...)

		next = ""
		if page.HasMore && page.NextPage != "" {
			next = page.NextPage
		}
	}

	if len(out) > maxCards {
		out = out[:maxCards]
	}

	return out, nil
}
