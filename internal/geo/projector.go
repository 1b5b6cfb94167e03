// Package geo projects listing coordinates onto the mock map viewport.
package geo

import (
	"github.com/mmcloughlin/geohash"

	"github.com/evcraddock/estate/internal/listing"
)

// GeohashPrecision is the number of geohash characters carried by a marker,
// roughly 150m of resolution.
const GeohashPrecision = 7

// Bounds is a latitude/longitude rectangle.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// ReferenceBounds is the fixed box the mock map is drawn over, roughly the
// continental United States.
var ReferenceBounds = Bounds{MinLat: 32, MaxLat: 43, MinLng: -123, MaxLng: -71}

// Contains reports whether loc lies inside b, edges included.
func (b Bounds) Contains(loc listing.Location) bool {
	return loc.Lat >= b.MinLat && loc.Lat <= b.MaxLat &&
		loc.Lng >= b.MinLng && loc.Lng <= b.MaxLng
}

// Viewport is the pixel size of the map surface.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a pixel position with the origin at the top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project maps loc linearly into vp using the reference box. Longitude
// grows to the right and latitude grows upward. Coordinates outside the box
// are not clamped and land outside the viewport.
func Project(loc listing.Location, vp Viewport) Point {
	return ReferenceBounds.Project(loc, vp)
}

// Project maps loc linearly from b into vp.
func (b Bounds) Project(loc listing.Location, vp Viewport) Point {
	x := (loc.Lng - b.MinLng) / (b.MaxLng - b.MinLng) * vp.Width
	y := (1 - (loc.Lat-b.MinLat)/(b.MaxLat-b.MinLat)) * vp.Height
	return Point{X: x, Y: y}
}

// Marker is a listing pinned to the map.
type Marker struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Geohash  string `json:"geohash"`
	Selected bool   `json:"selected"`
	InView   bool   `json:"inView"`
	Point
}

// Markers projects every listing, in order. The marker whose listing id
// equals selectedID is flagged; an empty selectedID selects nothing.
func Markers(listings []*listing.Listing, vp Viewport, selectedID string) []Marker {
	out := make([]Marker, 0, len(listings))
	for _, l := range listings {
		out = append(out, Marker{
			ID:       l.ID,
			Title:    l.Title,
			Price:    l.Price,
			Geohash:  geohash.EncodeWithPrecision(l.Location.Lat, l.Location.Lng, GeohashPrecision),
			Selected: selectedID != "" && l.ID == selectedID,
			InView:   ReferenceBounds.Contains(l.Location),
			Point:    Project(l.Location, vp),
		})
	}
	return out
}
