// Package geocode resolves free-text place names to coordinates using a
// Nominatim (OpenStreetMap) search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrNoMatch is returned when the search succeeds but finds no place.
var ErrNoMatch = errors.New("geocode: no match")

// Result is the best match for a query.
type Result struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// Client queries Nominatim. Outbound requests are spaced at least
// minInterval apart (Nominatim's usage policy allows one per second), and
// concurrent lookups of the same query share one request.
type Client struct {
	baseURL     string
	userAgent   string
	http        *http.Client
	minInterval time.Duration
	// lookupTimeout bounds a shared lookup, which outlives the caller that
	// started it.
	lookupTimeout time.Duration

	mu   sync.Mutex
	next time.Time

	group singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMinInterval sets the minimum spacing between outbound requests.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// WithLookupTimeout bounds how long one shared lookup may take, throttle wait
// included.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *Client) { c.lookupTimeout = d }
}

// New constructs a Client for the Nominatim instance at baseURL.
// userAgent is sent on every request, as Nominatim requires.
func New(baseURL, userAgent string, timeout time.Duration, opts ...Option) *Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		userAgent:     userAgent,
		http:          &http.Client{Timeout: timeout},
		minInterval:   time.Second,
		lookupTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the best match for query.
// Returns ErrNoMatch when nothing matches or query is blank.
//
// Concurrent callers with the same query share one lookup. The lookup runs
// on a context detached from any single caller, so one caller giving up does
// not fail the others; each caller still returns as soon as its own ctx ends.
func (c *Client) Search(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrNoMatch
	}

	ch := c.group.DoChan(query, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout)
		defer cancel()
		return c.search(lookupCtx, query)
	})
	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("geocode.Search: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	}
}

// CityCountry searches for "city, country".
func (c *Client) CityCountry(ctx context.Context, city, country string) (Result, error) {
	return c.Search(ctx, strings.TrimSpace(city)+", "+strings.TrimSpace(country))
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) search(ctx context.Context, query string) (Result, error) {
	if err := c.wait(ctx); err != nil {
		return Result{}, fmt.Errorf("geocode.Search: %w", err)
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode.Search: unexpected status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Result{}, fmt.Errorf("geocode.Search: decode: %w", err)
	}
	if len(places) == 0 {
		return Result{}, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: lat: %w", err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocode.Search: lon: %w", err)
	}
	return Result{Lat: lat, Lng: lng, DisplayName: places[0].DisplayName}, nil
}

// wait reserves the next request slot and sleeps until it arrives.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	slot := c.next
	if slot.Before(now) {
		slot = now
	}
	c.next = slot.Add(c.minInterval)
	c.mu.Unlock()

	d := time.Until(slot)
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
