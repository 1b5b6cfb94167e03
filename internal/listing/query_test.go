package listing

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Criteria
	}{
		{"empty", "", Criteria{}},
		{"text query", "query=san+francisco", Criteria{Query: "san francisco"}},
		{"blank text query is absent", "query=+++", Criteria{}},
		{
			"numbers",
			"minPrice=400000&maxPrice=600000&minBedrooms=2&minBathrooms=1",
			Criteria{MinPrice: ptr(int64(400000)), MaxPrice: ptr(int64(600000)), MinBedrooms: ptr(2), MinBathrooms: ptr(1)},
		},
		{"malformed number is absent", "minPrice=cheap&maxPrice=1e6", Criteria{}},
		{"zero is absent", "minPrice=0&minBedrooms=0", Criteria{}},
		{"negative is absent", "maxPrice=-5", Criteria{}},
		{"empty number is absent", "minBathrooms=", Criteria{}},
		{
			"repeatable parameters",
			"propertyType=house&propertyType=condo&amenity=Pool&amenity=Gym&status=for-sale",
			Criteria{
				PropertyTypes: []PropertyType{TypeHouse, TypeCondo},
				Amenities:     []string{"Pool", "Gym"},
				Statuses:      []Status{StatusForSale},
			},
		},
		{"empty repeatable values dropped", "amenity=&amenity=Pool", Criteria{Amenities: []string{"Pool"}}},
		{"unknown parameter ignored", "sort=price", Criteria{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if diff := cmp.Diff(tt.want, ParseCriteria(v)); diff != "" {
				t.Errorf("ParseCriteria (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want View
	}{
		{"map", ViewMap},
		{"grid", ViewGrid},
		{"", ViewGrid},
		{"satellite", ViewGrid},
	}

	for _, tt := range tests {
		if got := ParseView(tt.in); got != tt.want {
			t.Errorf("ParseView(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		view     View
		want     string
	}{
		{"empty grid", Criteria{}, ViewGrid, ""},
		{"map view only", Criteria{}, ViewMap, "view=map"},
		{"escapes text", Criteria{Query: "san francisco & co"}, ViewGrid, "query=san+francisco+%26+co"},
		{
			"fixed order",
			Criteria{
				Statuses:      []Status{StatusSold},
				Amenities:     []string{"Rooftop Deck"},
				PropertyTypes: []PropertyType{TypeCondo, TypeHouse},
				MinBathrooms:  ptr(2),
				MinBedrooms:   ptr(3),
				MaxPrice:      ptr(int64(900000)),
				MinPrice:      ptr(int64(100000)),
				Query:         "loft",
			},
			ViewMap,
			"view=map&query=loft&minPrice=100000&maxPrice=900000&minBedrooms=3&minBathrooms=2" +
				"&propertyType=condo&propertyType=house&amenity=Rooftop+Deck&status=sold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeQuery(tt.criteria, tt.view); got != tt.want {
				t.Errorf("EncodeQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryRoundTrip(t *testing.T) {
	criteria := []Criteria{
		{},
		{Query: "Back Bay"},
		{MinPrice: ptr(int64(50000)), MaxPrice: ptr(int64(5000000))},
		{MinBedrooms: ptr(1), MinBathrooms: ptr(4)},
		{
			Query:         "ocean",
			PropertyTypes: []PropertyType{TypeTownhouse},
			Amenities:     []string{"Pool", "Pet Friendly"},
			Statuses:      []Status{StatusForSale, StatusPending},
		},
	}

	for _, c := range criteria {
		for _, view := range []View{ViewGrid, ViewMap} {
			v, err := url.ParseQuery(EncodeQuery(c, view))
			if err != nil {
				t.Fatalf("parse encoded query: %v", err)
			}
			if diff := cmp.Diff(c, ParseCriteria(v)); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
			if got := ParseView(v.Get(ParamView)); got != view {
				t.Errorf("view = %q, want %q", got, view)
			}
		}
	}
}

func TestCriteriaKey(t *testing.T) {
	a := Criteria{Amenities: []string{"Pool", "Gym", "Pool"}, Statuses: []Status{StatusSold, StatusForSale}}
	b := Criteria{Amenities: []string{"Gym", "Pool"}, Statuses: []Status{StatusForSale, StatusSold}}
	if a.Key() != b.Key() {
		t.Errorf("equivalent criteria have different keys: %q vs %q", a.Key(), b.Key())
	}

	c := Criteria{Amenities: []string{"Gym"}}
	if a.Key() == c.Key() {
		t.Errorf("different criteria share key %q", a.Key())
	}

	if (Criteria{}).Key() != "" {
		t.Errorf("empty criteria key = %q, want empty", (Criteria{}).Key())
	}

	// Key must not reorder the caller's slices.
	if a.Amenities[0] != "Pool" {
		t.Error("Key modified criteria")
	}
}
