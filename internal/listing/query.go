package listing

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query parameter names shared by the web pages, the JSON API and the CLI
// client.
const (
	ParamQuery        = "query"
	ParamMinPrice     = "minPrice"
	ParamMaxPrice     = "maxPrice"
	ParamMinBedrooms  = "minBedrooms"
	ParamMinBathrooms = "minBathrooms"
	ParamPropertyType = "propertyType"
	ParamAmenity      = "amenity"
	ParamStatus       = "status"
	ParamView         = "view"
)

// View is how the results page presents listings.
type View string

const (
	ViewGrid View = "grid"
	ViewMap  View = "map"
)

// ParseView returns ViewMap for "map" and ViewGrid for anything else.
func ParseView(s string) View {
	if View(s) == ViewMap {
		return ViewMap
	}
	return ViewGrid
}

// ParseCriteria rebuilds criteria from URL query values. Parameters that are
// missing, empty, malformed or not positive are treated as absent rather
// than rejected.
func ParseCriteria(v url.Values) Criteria {
	var c Criteria

	if q := v.Get(ParamQuery); strings.TrimSpace(q) != "" {
		c.Query = q
	}
	c.MinPrice = parsePositiveInt64(v, ParamMinPrice)
	c.MaxPrice = parsePositiveInt64(v, ParamMaxPrice)
	c.MinBedrooms = parsePositiveInt(v, ParamMinBedrooms)
	c.MinBathrooms = parsePositiveInt(v, ParamMinBathrooms)

	for _, s := range parseStrings(v, ParamPropertyType) {
		c.PropertyTypes = append(c.PropertyTypes, PropertyType(s))
	}
	c.Amenities = parseStrings(v, ParamAmenity)
	for _, s := range parseStrings(v, ParamStatus) {
		c.Statuses = append(c.Statuses, Status(s))
	}

	return c
}

// EncodeQuery serializes criteria and view into a query string (without the
// leading "?"). Only constrained fields are written, in a fixed order, with
// repeatable parameters emitted once per value. The grid view is the default
// and is omitted.
func EncodeQuery(c Criteria, view View) string {
	var b queryBuilder

	if view == ViewMap {
		b.add(ParamView, string(ViewMap))
	}
	if c.Query != "" {
		b.add(ParamQuery, c.Query)
	}
	if c.MinPrice != nil {
		b.add(ParamMinPrice, strconv.FormatInt(*c.MinPrice, 10))
	}
	if c.MaxPrice != nil {
		b.add(ParamMaxPrice, strconv.FormatInt(*c.MaxPrice, 10))
	}
	if c.MinBedrooms != nil {
		b.add(ParamMinBedrooms, strconv.Itoa(*c.MinBedrooms))
	}
	if c.MinBathrooms != nil {
		b.add(ParamMinBathrooms, strconv.Itoa(*c.MinBathrooms))
	}
	for _, t := range c.PropertyTypes {
		b.add(ParamPropertyType, string(t))
	}
	for _, a := range c.Amenities {
		b.add(ParamAmenity, a)
	}
	for _, s := range c.Statuses {
		b.add(ParamStatus, string(s))
	}

	return b.String()
}

// Key returns a canonical form of c: two criteria that select the same
// listings for any catalog share a key. Set-valued fields are sorted and
// deduplicated before encoding.
func (c Criteria) Key() string {
	k := c
	k.PropertyTypes = sortedUnique(c.PropertyTypes)
	k.Amenities = sortedUnique(c.Amenities)
	k.Statuses = sortedUnique(c.Statuses)
	return EncodeQuery(k, ViewGrid)
}

type queryBuilder struct {
	sb strings.Builder
}

func (b *queryBuilder) add(key, value string) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte('&')
	}
	b.sb.WriteString(url.QueryEscape(key))
	b.sb.WriteByte('=')
	b.sb.WriteString(url.QueryEscape(value))
}

func (b *queryBuilder) String() string {
	return b.sb.String()
}

// parsePositiveInt64 returns nil unless the parameter is a positive integer.
func parsePositiveInt64(v url.Values, key string) *int64 {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func parsePositiveInt(v url.Values, key string) *int {
	n := parsePositiveInt64(v, key)
	if n == nil || *n > math.MaxInt {
		return nil
	}
	i := int(*n)
	return &i
}

// parseStrings returns every non-empty value of a repeatable parameter.
func parseStrings(v url.Values, key string) []string {
	var out []string
	for _, s := range v[key] {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sortedUnique[T ~string](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}
