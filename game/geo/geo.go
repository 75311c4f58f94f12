// Package geo provides the position type and distance math shared by
// both game engines. Distances are great-circle (haversine)
// approximations in kilometers; offsets use a flat-earth degrees-per-km
// conversion, which is accurate enough at course scale.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// KmPerDegree is the flat-earth approximation of kilometers per degree
// of latitude.
const KmPerDegree = 111.0

// Position is a latitude/longitude pair in decimal degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine distance between two positions in km.
func Distance(a, b Position) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Offset returns the position distKm away from center at the given
// angle (radians, 0 = north in latitude terms). Longitude degrees are
// scaled by cos(latitude) so the offset keeps roughly the same ground
// distance at any latitude.
func Offset(center Position, distKm, angle float64) Position {
	lat := center.Lat + (distKm/KmPerDegree)*math.Cos(angle)
	lng := center.Lng + (distKm/(KmPerDegree*math.Cos(center.Lat*math.Pi/180)))*math.Sin(angle)
	return Position{Lat: lat, Lng: lng}
}
