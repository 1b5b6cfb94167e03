package web

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// ListResponse is the body of GET /api/listings.
type ListResponse struct {
	Total    int                `json:"total"`
	Query    string             `json:"query"`
	Listings []*listing.Listing `json:"listings"`
}

// DetailResponse is the body of GET /api/listings/{id}.
type DetailResponse struct {
	Listing *listing.Listing   `json:"listing"`
	Similar []*listing.Listing `json:"similar"`
}

// MarkersResponse is the body of GET /api/markers.
type MarkersResponse struct {
	Viewport geo.Viewport `json:"viewport"`
	Bounds   geo.Bounds   `json:"bounds"`
	Markers  []geo.Marker `json:"markers"`
}

// apiListListings returns the listings matching the query parameters.
func (s *Server) apiListListings(w http.ResponseWriter, r *http.Request) {
	criteria := listing.ParseCriteria(r.URL.Query())
	listings := s.engine.Search(r.Context(), criteria)

	apiJSON(w, ListResponse{
		Total:    len(listings),
		Query:    listing.EncodeQuery(criteria, listing.ViewGrid),
		Listings: listings,
	}, http.StatusOK)
}

// apiGetListing returns one listing and its similar listings.
func (s *Server) apiGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := s.catalog.Get(id)
	if !ok {
		apiError(w, "listing "+id+" not found", http.StatusNotFound)
		return
	}

	apiJSON(w, DetailResponse{
		Listing: l,
		Similar: s.catalog.Similar(id, listing.SimilarLimit),
	}, http.StatusOK)
}

// apiMarkers projects the filtered listings onto a viewport. Width and
// height default to the server's map size when missing or invalid.
func (s *Server) apiMarkers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vp := geo.Viewport{
		Width:  parseDimension(q.Get("width"), s.viewport.Width),
		Height: parseDimension(q.Get("height"), s.viewport.Height),
	}

	listings := s.engine.Search(r.Context(), listing.ParseCriteria(q))
	apiJSON(w, MarkersResponse{
		Viewport: vp,
		Bounds:   geo.ReferenceBounds,
		Markers:  geo.Markers(listings, vp, q.Get("selected")),
	}, http.StatusOK)
}

// apiOptions returns the values the filter panel offers.
func (s *Server) apiOptions(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.catalog.Options(), http.StatusOK)
}

func parseDimension(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v <= 0 || v > 1e6 {
		return fallback
	}
	return v
}
