package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate/internal/listing"
)

// filterFlags binds the listing criteria flags shared by list and markers.
type filterFlags struct {
	query     string
	minPrice  int64
	maxPrice  int64
	beds      int
	baths     int
	types     []string
	amenities []string
	statuses  []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.query, "query", "q", "", "text to search title, description and address")
	fs.Int64Var(&f.minPrice, "min-price", 0, "minimum price")
	fs.Int64Var(&f.maxPrice, "max-price", 0, "maximum price")
	fs.IntVar(&f.beds, "beds", 0, "minimum bedrooms")
	fs.IntVar(&f.baths, "baths", 0, "minimum bathrooms")
	fs.StringSliceVar(&f.types, "type", nil, "property type (house|apartment|condo|townhouse), repeatable")
	fs.StringSliceVar(&f.amenities, "amenity", nil, "amenity, repeatable; matches listings with any of them")
	fs.StringSliceVar(&f.statuses, "status", nil, "status (for-sale|for-rent|sold|pending), repeatable")
}

// criteria converts the flags to listing criteria. Zero numeric flags are
// left unconstrained.
func (f *filterFlags) criteria() (listing.Criteria, error) {
	c := listing.Criteria{
		Query:     f.query,
		Amenities: f.amenities,
	}
	if f.minPrice > 0 {
		c.MinPrice = &f.minPrice
	}
	if f.maxPrice > 0 {
		c.MaxPrice = &f.maxPrice
	}
	if f.beds > 0 {
		c.MinBedrooms = &f.beds
	}
	if f.baths > 0 {
		c.MinBathrooms = &f.baths
	}
	for _, t := range f.types {
		if !listing.ValidPropertyType(t) {
			return listing.Criteria{}, fmt.Errorf("invalid property type: %s", t)
		}
		c.PropertyTypes = append(c.PropertyTypes, listing.PropertyType(t))
	}
	for _, s := range f.statuses {
		if !listing.ValidStatus(s) {
			return listing.Criteria{}, fmt.Errorf("invalid status: %s", s)
		}
		c.Statuses = append(c.Statuses, listing.Status(s))
	}
	return c, nil
}
