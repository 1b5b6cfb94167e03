package listing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func testListings() []*Listing {
	return []*Listing{
		{
			ID: "a", Title: "Bay View Home", Description: "Sunny house near the park",
			Price: 500000, Address: "1 Vallejo St", City: "San Francisco", State: "CA", ZipCode: "94133",
			Bedrooms: 3, Bathrooms: 2, PropertyType: TypeHouse,
			Amenities: []string{"Pool", "Gym"}, Status: StatusForSale,
		},
		{
			ID: "b", Title: "Downtown Condo", Description: "High floor unit",
			Price: 800000, Address: "200 Main St", City: "Chicago", State: "IL", ZipCode: "60601",
			Bedrooms: 2, Bathrooms: 1.5, PropertyType: TypeCondo,
			Amenities: []string{"Doorman"}, Status: StatusPending,
		},
		{
			ID: "c", Title: "Garden Apartment", Description: "Quiet unit with a yard",
			Price: 3200, Address: "9 Elm Ave", City: "Brooklyn", State: "NY", ZipCode: "11201",
			Bedrooms: 1, Bathrooms: 1, PropertyType: TypeApartment,
			Amenities: []string{"Garden", "Laundry"}, Status: StatusForRent,
		},
		{
			ID: "d", Title: "Coastal Townhouse", Description: "Three levels",
			Price: 1200000, Address: "44 Ocean Blvd", City: "Santa Monica", State: "CA", ZipCode: "90405",
			Bedrooms: 4, Bathrooms: 3, PropertyType: TypeTownhouse,
			Amenities: []string{"Garage", "Pool"}, Status: StatusSold,
		},
	}
}

func ids(listings []*Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterEmptyCriteriaIsIdentity(t *testing.T) {
	all := testListings()
	got := Filter(all, Criteria{})
	if diff := cmp.Diff(ids(all), ids(got)); diff != "" {
		t.Errorf("Filter with empty criteria (-want +got):\n%s", diff)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, Criteria{Query: "anything"})
	if got == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"query matches city case-insensitively", Criteria{Query: "francisco"}, []string{"a"}},
		{"query matches title", Criteria{Query: "CONDO"}, []string{"b"}},
		{"query matches description", Criteria{Query: "yard"}, []string{"c"}},
		{"query matches address", Criteria{Query: "ocean blvd"}, []string{"d"}},
		{"query matches state", Criteria{Query: "il"}, []string{"b"}},
		{"query matches zip", Criteria{Query: "9040"}, []string{"d"}},
		{"query matches nothing", Criteria{Query: "castle"}, []string{}},
		{"min price excludes cheaper", Criteria{MinPrice: ptr(int64(600000))}, []string{"b", "d"}},
		{"price range includes", Criteria{MinPrice: ptr(int64(400000)), MaxPrice: ptr(int64(600000))}, []string{"a"}},
		{"max price", Criteria{MaxPrice: ptr(int64(500000))}, []string{"a", "c"}},
		{"price bounds are inclusive", Criteria{MinPrice: ptr(int64(800000)), MaxPrice: ptr(int64(800000))}, []string{"b"}},
		{"min bedrooms", Criteria{MinBedrooms: ptr(3)}, []string{"a", "d"}},
		{"zero bedrooms is no constraint", Criteria{MinBedrooms: ptr(0)}, []string{"a", "b", "c", "d"}},
		{"min bathrooms compares fractional", Criteria{MinBathrooms: ptr(2)}, []string{"a", "d"}},
		{"zero bathrooms is no constraint", Criteria{MinBathrooms: ptr(0)}, []string{"a", "b", "c", "d"}},
		{"amenity match", Criteria{Amenities: []string{"Pool"}}, []string{"a", "d"}},
		{"amenity miss", Criteria{Amenities: []string{"Sauna"}}, []string{}},
		{"amenities match any", Criteria{Amenities: []string{"Sauna", "Doorman", "Laundry"}}, []string{"b", "c"}},
		{"amenity is case-sensitive", Criteria{Amenities: []string{"pool"}}, []string{}},
		{"condo excluded by house and apartment", Criteria{PropertyTypes: []PropertyType{TypeHouse, TypeApartment}}, []string{"a", "c"}},
		{"unknown type matches nothing", Criteria{PropertyTypes: []PropertyType{"castle"}}, []string{}},
		{"status set", Criteria{Statuses: []Status{StatusForRent, StatusSold}}, []string{"c", "d"}},
		{
			"fields combine with and",
			Criteria{Query: "ca", Amenities: []string{"Pool"}, Statuses: []Status{StatusForSale}},
			[]string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(testListings(), tt.criteria))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterSubsetOrderAndIdempotence(t *testing.T) {
	all := testListings()
	criteria := []Criteria{
		{},
		{Query: "st"},
		{MinPrice: ptr(int64(1000)), MaxPrice: ptr(int64(900000))},
		{Amenities: []string{"Pool", "Garden"}},
		{PropertyTypes: []PropertyType{TypeHouse, TypeTownhouse}, MinBedrooms: ptr(4)},
	}

	for _, c := range criteria {
		once := Filter(all, c)

		// Subset and order: every result appears in the input after the
		// previous result.
		next := 0
		for _, l := range once {
			found := false
			for next < len(all) {
				if all[next] == l {
					found = true
					next++
					break
				}
				next++
			}
			if !found {
				t.Errorf("criteria %+v: %s is not an in-order member of the input", c, l.ID)
			}
		}

		twice := Filter(once, c)
		if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
			t.Errorf("criteria %+v: not idempotent (-once +twice):\n%s", c, diff)
		}
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	all := testListings()
	before := ids(all)
	Filter(all, Criteria{Statuses: []Status{StatusSold}})
	if diff := cmp.Diff(before, ids(all)); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestFilterSingleListing(t *testing.T) {
	l := testListings()[1]
	if got := Filter([]*Listing{l}, Criteria{Query: "chicago"}); len(got) != 1 {
		t.Error("expected match on city")
	}
	if got := Filter([]*Listing{l}, Criteria{PropertyTypes: []PropertyType{TypeHouse, TypeApartment}}); len(got) != 0 {
		t.Error("condo should not match house or apartment")
	}
}
