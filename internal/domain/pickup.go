package domain

import (
	"sort"
)

// Coordinate is a geographic point in the longitude/latitude order the
// routing provider expects.
type Coordinate struct {
	Lon float64
	Lat float64
}

// pickupPoints maps campus pickup labels to their geocoded locations.
// Pure data; labels are matched exactly.
var pickupPoints = map[string]Coordinate{
	"SEC-A Lobby": {Lon: 29.0091, Lat: 41.0862},
	"SEC-B Lobby": {Lon: 29.0104, Lat: 41.0870},
	"Regis":       {Lon: 29.0031, Lat: 41.0846},
	"Library":     {Lon: 29.0068, Lat: 41.0883},
	"Main Gate":   {Lon: 29.0044, Lat: 41.0839},
}

// LookupPickupPoint resolves a pickup point label to its coordinates.
func LookupPickupPoint(label string) (Coordinate, bool) {
	c, ok := pickupPoints[label]
	return c, ok
}

// PickupPointLabels returns all known pickup point labels, sorted.
func PickupPointLabels() []string {
	labels := make([]string, 0, len(pickupPoints))
	for label := range pickupPoints {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
