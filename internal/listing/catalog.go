package listing

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed catalog.json
var embeddedCatalog []byte

//go:embed listing.schema.json
var schemaJSON []byte

const schemaURL = "listing.schema.json"

// SimilarLimit is how many similar listings the detail page shows.
const SimilarLimit = 3

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding listing schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling listing schema: %w", err)
	}
	return s, nil
})

// Catalog is the immutable listing set the site is served from. It is safe
// for concurrent use; nothing mutates it after construction.
type Catalog struct {
	listings []*Listing
	byID     map[string]*Listing
}

// NewCatalog builds a catalog from listings in source order. Ids must be
// non-empty and unique.
func NewCatalog(listings []*Listing) (*Catalog, error) {
	c := &Catalog{
		listings: make([]*Listing, 0, len(listings)),
		byID:     make(map[string]*Listing, len(listings)),
	}
	for i, l := range listings {
		if l == nil {
			return nil, fmt.Errorf("listing %d is nil", i)
		}
		if l.ID == "" {
			return nil, fmt.Errorf("listing %d has no id", i)
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %q", l.ID)
		}
		c.byID[l.ID] = l
		c.listings = append(c.listings, l)
	}
	return c, nil
}

// LoadEmbedded returns the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedCatalog))
}

// EmbeddedJSON returns the raw embedded catalog document.
func EmbeddedJSON() []byte {
	return slices.Clone(embeddedCatalog)
}

// Load reads a JSON array of listings, validates it against the listing
// schema and builds a catalog.
func Load(r io.Reader) (*Catalog, error) {
	listings, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return NewCatalog(listings)
}

// Decode reads and validates a JSON array of listings without building a
// catalog.
func Decode(r io.Reader) ([]*Listing, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	var listings []*Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return listings, nil
}

// All returns every listing in source order. The slice is a copy; the
// listings themselves are shared and must not be modified.
func (c *Catalog) All() []*Listing {
	return slices.Clone(c.listings)
}

// Len returns the number of listings.
func (c *Catalog) Len() int {
	return len(c.listings)
}

// Get looks up a listing by id.
func (c *Catalog) Get(id string) (*Listing, bool) {
	l, ok := c.byID[id]
	return l, ok
}

// Featured returns the featured listings in source order.
func (c *Catalog) Featured() []*Listing {
	out := make([]*Listing, 0)
	for _, l := range c.listings {
		if l.Featured {
			out = append(out, l)
		}
	}
	return out
}

// Similar returns up to n listings with the same property type as id,
// excluding id itself, in source order. An unknown id has no similar
// listings.
func (c *Catalog) Similar(id string, n int) []*Listing {
	out := make([]*Listing, 0, max(n, 0))
	self, ok := c.byID[id]
	if !ok || n <= 0 {
		return out
	}
	for _, l := range c.listings {
		if l.ID == id || l.PropertyType != self.PropertyType {
			continue
		}
		out = append(out, l)
		if len(out) == n {
			break
		}
	}
	return out
}

// Options lists the values the filter panel offers.
type Options struct {
	PropertyTypes []PropertyType `json:"propertyTypes"`
	Statuses      []Status       `json:"statuses"`
	Amenities     []string       `json:"amenities"`
}

// Options returns the fixed type and status enumerations and every amenity
// offered by at least one listing, sorted.
func (c *Catalog) Options() Options {
	var amenities []string
	for _, l := range c.listings {
		amenities = append(amenities, l.Amenities...)
	}
	slices.Sort(amenities)
	amenities = slices.Compact(amenities)
	if amenities == nil {
		amenities = []string{}
	}
	return Options{
		PropertyTypes: slices.Clone(PropertyTypes),
		Statuses:      slices.Clone(Statuses),
		Amenities:     amenities,
	}
}
