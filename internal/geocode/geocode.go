package geocode

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SangamithraMB/Sport-buddy-backend/lib/logger/sl"
)

// Client resolves free-text addresses against a Nominatim-style search
// endpoint. Lookups are best-effort: any transport, decode or empty-result
// condition collapses to found=false and playdate creation proceeds with
// zero coordinates.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) Lookup(ctx context.Context, address string) (lat, lng float64, found bool) {
	if c.baseURL == "" || address == "" {
		return 0, 0, false
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return 0, 0, false
	}
	req.Header.Set("User-Agent", "sport-buddy-backend")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("geocode request failed", sl.Err(err))
		return 0, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geocode request rejected", slog.Int("status", resp.StatusCode))
		return 0, 0, false
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.log.Warn("geocode decode failed", sl.Err(err))
		return 0, 0, false
	}
	if len(results) == 0 {
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
