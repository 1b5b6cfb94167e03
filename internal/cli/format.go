package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingSummary prints a single listing in text format.
func printListingSummary(w io.Writer, l *listing.Listing) {
	fmt.Fprintf(w, "Listing #%s: %s\n", l.ID, l.Title)
	fmt.Fprintf(w, "  Address:  %s, %s, %s %s\n", l.Address, l.City, l.State, l.ZipCode)
	fmt.Fprintf(w, "  Price:    %s\n", formatListingPrice(l))
	fmt.Fprintf(w, "  Beds:     %d\n", l.Bedrooms)
	fmt.Fprintf(w, "  Baths:    %s\n", formatBaths(l.Bathrooms))
	fmt.Fprintf(w, "  Sqft:     %s\n", formatPrice(l.SquareFeet))
	fmt.Fprintf(w, "  Built:    %d\n", l.YearBuilt)
	fmt.Fprintf(w, "  Type:     %s\n", l.PropertyType.Label())
	fmt.Fprintf(w, "  Status:   %s\n", l.Status.Label())
	if len(l.Amenities) > 0 {
		fmt.Fprintf(w, "  Features: %s\n", strings.Join(l.Amenities, ", "))
	}
	fmt.Fprintf(w, "  Images:   %d\n", len(l.Images))
}

// printListingTable prints listings as a formatted table.
func printListingTable(out io.Writer, listings []*listing.Listing) error {
	if len(listings) == 0 {
		fmt.Fprintln(out, "No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tCITY\tPRICE\tBED\tBATH\tSQFT\tSTATUS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t----\t-----\t---\t----\t----\t------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range listings {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			l.ID, truncate(l.Title, 32), l.City, formatListingPrice(l),
			l.Bedrooms, formatBaths(l.Bathrooms), formatPrice(l.SquareFeet), l.Status.Label()); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d listings\n", len(listings))
	return nil
}

// printMarkerTable prints projected markers as a formatted table.
func printMarkerTable(out io.Writer, markers []geo.Marker) error {
	if len(markers) == 0 {
		fmt.Fprintln(out, "No markers.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tX\tY\tGEOHASH\tIN VIEW\tPRICE\tSELECTED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, m := range markers {
		inView := "yes"
		if !m.InView {
			inView = "no"
		}
		sel := ""
		if m.Selected {
			sel = "*"
		}
		if _, err := fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%s\t%s\t$%s\t%s\n",
			m.ID, m.X, m.Y, m.Geohash, inView, formatPrice(m.Price), sel); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

// formatListingPrice formats a listing price, marking rentals as monthly.
func formatListingPrice(l *listing.Listing) string {
	s := "$" + formatPrice(l.Price)
	if l.Status == listing.StatusForRent {
		s += "/mo"
	}
	return s
}

// formatPrice formats an integer with comma thousands separators.
func formatPrice(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func formatBaths(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
