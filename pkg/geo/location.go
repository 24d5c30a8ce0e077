// Package geo turns the free-form location text stored on a service into a
// coordinate and a static map image URL.
package geo

import (
	"regexp"
	"strconv"
)

// pointPattern matches two signed decimals separated by a single space. The
// decimal point is required, so "35 33" does not match.
var pointPattern = regexp.MustCompile(`(-?\d+\.\d+) (-?\d+\.\d+)`)

// Coordinate is a point parsed from a location string. Locations are stored
// the way the backend writes a WKT point, "POINT (<lng> <lat>)", so the first
// number is the longitude and the second the latitude.
type Coordinate struct {
	Lng float64
	Lat float64

	// The matched texts, kept verbatim so a URL built from them is identical
	// to the stored value (no float reformatting).
	LngText string
	LatText string
}

// ParseLocation extracts the first "<decimal> <decimal>" pair from location.
// It reports false when location is empty or contains no such pair.
func ParseLocation(location string) (Coordinate, bool) {
	if location == "" {
		return Coordinate{}, false
	}
	m := pointPattern.FindStringSubmatch(location)
	if m == nil {
		return Coordinate{}, false
	}

	lng, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinate{}, false
	}
	return Coordinate{Lng: lng, Lat: lat, LngText: m[1], LatText: m[2]}, true
}
