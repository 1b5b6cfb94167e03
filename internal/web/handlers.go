package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
	"github.com/evcraddock/estate/internal/logging"
	"github.com/evcraddock/estate/internal/search"
)

// Price slider bounds offered by the filter panel.
const (
	PriceMax  = 5_000_000
	PriceStep = 50_000
)

var popularCities = []string{"San Francisco", "New York", "Los Angeles", "Miami", "Chicago"}

type homeData struct {
	Title    string
	Featured []*listing.Listing
	Cities   []string
	Total    int
}

type propertiesData struct {
	Title     string
	Criteria  listing.Criteria
	View      listing.View
	Listings  []*listing.Listing
	Options   listing.Options
	Markers   []geo.Marker
	Viewport  geo.Viewport
	Selected  *listing.Listing
	PriceMax  int64
	PriceStep int64
}

func (d propertiesData) Total() int { return len(d.Listings) }

func (d propertiesData) IsMap() bool { return d.View == listing.ViewMap }

func (d propertiesData) HasType(t listing.PropertyType) bool {
	return slices.Contains(d.Criteria.PropertyTypes, t)
}

func (d propertiesData) HasStatus(s listing.Status) bool {
	return slices.Contains(d.Criteria.Statuses, s)
}

func (d propertiesData) HasAmenity(a string) bool {
	return slices.Contains(d.Criteria.Amenities, a)
}

func (d propertiesData) MinPriceValue() string { return optionalInt64(d.Criteria.MinPrice) }
func (d propertiesData) MaxPriceValue() string { return optionalInt64(d.Criteria.MaxPrice) }

func (d propertiesData) MinBedrooms() int { return derefInt(d.Criteria.MinBedrooms) }
func (d propertiesData) MinBathrooms() int { return derefInt(d.Criteria.MinBathrooms) }

// PageURL is the canonical address of the current results.
func (d propertiesData) PageURL() string {
	q := listing.EncodeQuery(d.Criteria, d.View)
	if d.Selected != nil {
		if q != "" {
			q += "&"
		}
		q += "selected=" + url.QueryEscape(d.Selected.ID)
	}
	return withQuery("/properties", q)
}

// ViewURL keeps the current criteria and switches the view.
func (d propertiesData) ViewURL(v string) string {
	return withQuery("/properties", listing.EncodeQuery(d.Criteria, listing.ParseView(v)))
}

// SelectURL highlights a marker on the map view.
func (d propertiesData) SelectURL(id string) string {
	q := listing.EncodeQuery(d.Criteria, listing.ViewMap)
	return "/properties?" + q + "&selected=" + url.QueryEscape(id)
}

type detailData struct {
	Title     string
	Listing   *listing.Listing
	Image     int
	PrevImage int
	NextImage int
	Similar   []*listing.Listing
}

func (d detailData) ImageURL() string {
	if len(d.Listing.Images) == 0 {
		return ""
	}
	return d.Listing.Images[d.Image]
}

// ImageNumber is the one-based position of the current image.
func (d detailData) ImageNumber() int { return d.Image + 1 }

type notFoundData struct {
	Title   string
	Message string
}

// handleHome renders the landing page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home.html", homeData{
		Title:    "Find your next home",
		Featured: s.catalog.Featured(),
		Cities:   popularCities,
		Total:    s.catalog.Len(),
	})
}

// handleProperties renders the filter panel and results. HTMX filter
// updates get only the results partial, after the simulated search delay;
// an update that a newer one has overtaken answers 204 so nothing is
// swapped in.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := propertiesData{
		Title:     "Properties",
		Criteria:  listing.ParseCriteria(q),
		View:      listing.ParseView(q.Get(listing.ParamView)),
		Options:   s.catalog.Options(),
		Viewport:  s.viewport,
		PriceMax:  PriceMax,
		PriceStep: PriceStep,
	}
	sessionID := s.sessionID(w, r)

	if r.Header.Get("HX-Request") != "true" {
		data.Listings = s.engine.Search(r.Context(), data.Criteria)
		s.fillMap(&data, q.Get("selected"))
		s.render(w, "properties.html", data)
		return
	}

	res, err := s.sessions.Submit(r.Context(), sessionID, data.Criteria)
	if errors.Is(err, search.ErrSuperseded) {
		logging.FromContext(r.Context()).Debug("filter request superseded",
			"latest", s.sessions.Runner(sessionID).Latest())
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Debug("filter request abandoned", "error", err)
		return
	}

	data.Listings = res.Listings
	s.fillMap(&data, q.Get("selected"))
	w.Header().Set("HX-Push-Url", data.PageURL())
	s.renderPartial(w, "results", data)
}

// fillMap projects markers for the map view.
func (s *Server) fillMap(d *propertiesData, selectedID string) {
	if d.View != listing.ViewMap {
		return
	}
	for _, l := range d.Listings {
		if l.ID == selectedID {
			d.Selected = l
			break
		}
	}
	if d.Selected == nil {
		selectedID = ""
	}
	d.Markers = geo.Markers(d.Listings, d.Viewport, selectedID)
}

// handleDetail renders a single listing with its gallery and similar
// listings.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	l, ok := s.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		s.renderStatus(w, "notfound.html", notFoundData{
			Title:   "Property Not Found",
			Message: "The property you're looking for doesn't exist or has been removed.",
		}, http.StatusNotFound)
		return
	}

	img, err := strconv.Atoi(r.URL.Query().Get("img"))
	if err != nil {
		img = 0
	}
	img = l.ImageIndex(img)

	s.render(w, "detail.html", detailData{
		Title:     l.Title,
		Listing:   l,
		Image:     img,
		PrevImage: l.ImageIndex(img - 1),
		NextImage: l.ImageIndex(img + 1),
		Similar:   s.catalog.Similar(l.ID, listing.SimilarLimit),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, "notfound.html", notFoundData{
		Title:   "Page Not Found",
		Message: "We couldn't find the page you were looking for.",
	}, http.StatusNotFound)
}

// handleHealth reports liveness and the catalog size.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]interface{}{
		"status":   "ok",
		"listings": s.catalog.Len(),
	}, http.StatusOK)
}

// sessionID returns the browser's session id, issuing a cookie when the
// request has none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(search.SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := search.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     search.SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	s.renderStatus(w, name, data, http.StatusOK)
}

// renderStatus executes a page template into a buffer so a template error
// can still produce a clean 500.
func (s *Server) renderStatus(w http.ResponseWriter, name string, data interface{}, code int) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// renderPartial executes a named template block (no layout).
func (s *Server) renderPartial(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering partial: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func optionalInt64(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
