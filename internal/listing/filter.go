package listing

import (
	"slices"
	"strings"
)

// Criteria narrows the visible listing set. Every field is optional: a nil
// pointer, an empty query or an empty set places no constraint on that
// dimension, so the zero value matches every listing.
type Criteria struct {
	Query         string
	MinPrice      *int64
	MaxPrice      *int64
	MinBedrooms   *int
	MinBathrooms  *int
	PropertyTypes []PropertyType
	Amenities     []string
	Statuses      []Status
}

// Filter returns the listings that satisfy every constraint in c, in their
// original order. It never modifies its input and never fails: criteria that
// match nothing produce an empty slice.
func Filter(listings []*Listing, c Criteria) []*Listing {
	m := newMatcher(c)
	out := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if m.match(l) {
			out = append(out, l)
		}
	}
	return out
}

// matcher holds criteria with the query already lowercased.
type matcher struct {
	c     Criteria
	query string
}

func newMatcher(c Criteria) matcher {
	return matcher{c: c, query: strings.ToLower(c.Query)}
}

func (m matcher) match(l *Listing) bool {
	c := m.c

	if m.query != "" && !m.matchQuery(l) {
		return false
	}
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	// A minimum of zero is no constraint.
	if c.MinBedrooms != nil && *c.MinBedrooms > 0 && l.Bedrooms < *c.MinBedrooms {
		return false
	}
	if c.MinBathrooms != nil && *c.MinBathrooms > 0 && l.Bathrooms < float64(*c.MinBathrooms) {
		return false
	}
	if len(c.PropertyTypes) > 0 && !slices.Contains(c.PropertyTypes, l.PropertyType) {
		return false
	}
	// Amenities match if the listing has any one of them.
	if len(c.Amenities) > 0 && !slices.ContainsFunc(c.Amenities, l.HasAmenity) {
		return false
	}
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, l.Status) {
		return false
	}
	return true
}

func (m matcher) matchQuery(l *Listing) bool {
	for _, field := range []string{l.Title, l.Description, l.Address, l.City, l.State, l.ZipCode} {
		if strings.Contains(strings.ToLower(field), m.query) {
			return true
		}
	}
	return false
}
