// Package listing provides the listing domain model, the filter engine, the
// URL query codec and the immutable catalog the site is served from.
package listing

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PropertyType is the category of a listing.
type PropertyType string

const (
	TypeHouse     PropertyType = "house"
	TypeApartment PropertyType = "apartment"
	TypeCondo     PropertyType = "condo"
	TypeTownhouse PropertyType = "townhouse"
)

// PropertyTypes is every property type in display order.
var PropertyTypes = []PropertyType{TypeHouse, TypeApartment, TypeCondo, TypeTownhouse}

// ValidPropertyType returns true if s is a known property type.
func ValidPropertyType(s string) bool {
	return slices.Contains(PropertyTypes, PropertyType(s))
}

// Label returns the display form, e.g. "Townhouse".
func (t PropertyType) Label() string {
	return cases.Title(language.English).String(string(t))
}

// Status is where a listing is in its market lifecycle.
type Status string

const (
	StatusForSale Status = "for-sale"
	StatusForRent Status = "for-rent"
	StatusSold    Status = "sold"
	StatusPending Status = "pending"
)

// Statuses is every status in display order.
var Statuses = []Status{StatusForSale, StatusForRent, StatusSold, StatusPending}

// ValidStatus returns true if s is a known status.
func ValidStatus(s string) bool {
	return slices.Contains(Statuses, Status(s))
}

// Label returns the display form, e.g. "For Sale".
func (s Status) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "-", " "))
}

// Location is a WGS84 coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is a single property record. Listings are never modified after
// the catalog is loaded.
type Listing struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zipCode"`
	Location     Location     `json:"location"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	SquareFeet   int64        `json:"squareFeet"`
	YearBuilt    int          `json:"yearBuilt"`
	PropertyType PropertyType `json:"propertyType"`
	Images       []string     `json:"images"`
	Featured     bool         `json:"featured,omitempty"`
	Amenities    []string     `json:"amenities"`
	Status       Status       `json:"status"`
}

// HasAmenity reports whether the listing offers the named amenity.
// Amenity labels match exactly.
func (l *Listing) HasAmenity(name string) bool {
	return slices.Contains(l.Amenities, name)
}

// FullAddress joins street, city, state and zip for display.
func (l *Listing) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", l.Address, l.City, l.State, l.ZipCode)
}

// CoverImage returns the first image, or "" when there are none.
func (l *Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// ImageIndex wraps i into the range of the listing's images so that
// stepping past either end of the gallery cycles around.
func (l *Listing) ImageIndex(i int) int {
	n := len(l.Images)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
