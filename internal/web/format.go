package web

import (
	"fmt"
	"html/template"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
)

// Template helper functions

// formatPrice renders whole dollars, e.g. "$1,250,000".
func formatPrice(n int64) string {
	return "$" + formatNumber(n)
}

// formatNumber groups digits, e.g. "2,850".
func formatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// formatBaths drops a trailing ".0": 2 -> "2", 2.5 -> "2.5".
func formatBaths(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func priceSuffix(s listing.Status) string {
	if s == listing.StatusForRent {
		return "/mo"
	}
	return ""
}

// markerStyle positions a marker pin on the map surface.
func markerStyle(m geo.Marker) template.CSS {
	return template.CSS(fmt.Sprintf("left: %.1fpx; top: %.1fpx;", m.X, m.Y))
}
