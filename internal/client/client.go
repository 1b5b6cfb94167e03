// Package client provides an HTTP client for the estate JSON API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
)

// ErrNotFound is returned when the server has no such listing.
var ErrNotFound = errors.New("not found")

// Client is an HTTP client for the estate API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListResponse is the response from GET /api/listings.
type ListResponse struct {
	Total    int                `json:"total"`
	Query    string             `json:"query"`
	Listings []*listing.Listing `json:"listings"`
}

// ShowResponse is the response from GET /api/listings/{id}.
type ShowResponse struct {
	Listing *listing.Listing   `json:"listing"`
	Similar []*listing.Listing `json:"similar"`
}

// MarkersResponse is the response from GET /api/markers.
type MarkersResponse struct {
	Viewport geo.Viewport `json:"viewport"`
	Bounds   geo.Bounds   `json:"bounds"`
	Markers  []geo.Marker `json:"markers"`
}

// ListListings returns the listings matching c.
func (c *Client) ListListings(ctx context.Context, criteria listing.Criteria) (*ListResponse, error) {
	var resp ListResponse
	if err := c.get(ctx, withQuery("/api/listings", listing.EncodeQuery(criteria, listing.ViewGrid)), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetListing returns a listing with its similar listings.
func (c *Client) GetListing(ctx context.Context, id string) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get(ctx, "/api/listings/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Markers returns the markers of the listings matching criteria, projected
// onto vp. A zero viewport uses the server's default size. The marker for
// selected, if any, is flagged.
func (c *Client) Markers(ctx context.Context, criteria listing.Criteria, vp geo.Viewport, selected string) (*MarkersResponse, error) {
	params := []string{listing.EncodeQuery(criteria, listing.ViewGrid)}
	if vp.Width > 0 && vp.Height > 0 {
		params = append(params,
			"width="+strconv.FormatFloat(vp.Width, 'f', -1, 64),
			"height="+strconv.FormatFloat(vp.Height, 'f', -1, 64))
	}
	if selected != "" {
		params = append(params, "selected="+url.QueryEscape(selected))
	}
	q := strings.Join(slices.DeleteFunc(params, func(s string) bool { return s == "" }), "&")

	var resp MarkersResponse
	if err := c.get(ctx, withQuery("/api/markers", q), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Options returns the values the filter panel offers.
func (c *Client) Options(ctx context.Context) (*listing.Options, error) {
	var opts listing.Options
	if err := c.get(ctx, "/api/options", &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) (err error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", msg, ErrNotFound)
		}
		return fmt.Errorf("server error: %s", msg)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
