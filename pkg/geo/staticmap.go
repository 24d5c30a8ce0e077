package geo

import "strings"

const (
	staticMapBase = "https://maps.googleapis.com/maps/api/staticmap?"

	// MapZoom, MapSize and MarkerColor are fixed for the service detail page.
	MapZoom     = "8"
	MapSize     = "640x150"
	MarkerColor = "red"
)

// StaticMapURL builds the static map image URL centered on c with a single
// marker. The API wants "lat,lng", which is the reverse of the stored order:
// the second matched number goes first. It returns "" when ok is false.
func StaticMapURL(c Coordinate, ok bool) string {
	if !ok {
		return ""
	}
	latLng := c.LatText + "," + c.LngText

	var b strings.Builder
	b.WriteString(staticMapBase)
	b.WriteString("center=" + latLng)
	b.WriteString("&zoom=" + MapZoom)
	b.WriteString("&size=" + MapSize)
	// %7C is the escaped "|" separating marker style from marker position.
	b.WriteString("&markers=color:" + MarkerColor + "%7C" + latLng)
	return b.String()
}

// MapURLForLocation parses location and builds its static map URL. A missing
// or malformed location yields "".
func MapURLForLocation(location string) string {
	return StaticMapURL(ParseLocation(location))
}
