// Package haversine computes the reference great-circle distance used for every expected sum.
package haversine

import (
	"math"
)

const (
	// EarthRadius is the sphere radius, in kilometers, used for every reference distance.
	EarthRadius = 6372.8

	degreesToRadians = 0.01745329251994329577
)

// RadiansFromDegrees converts from degrees to radians using the fixed reference multiplier.
func RadiansFromDegrees(d float64) float64 {
	return degreesToRadians * d
}

// Reference returns the great-circle distance between (x0, y0) and (x1, y1) on a sphere of the
// given radius. X is longitude and Y is latitude, both in degrees.
func Reference(x0, y0, x1, y1, earthRadius float64) float64 {
	lat1, lat2 := y0, y1
	lon1, lon2 := x0, x1

	dLat := RadiansFromDegrees(lat2 - lat1)
	dLon := RadiansFromDegrees(lon2 - lon1)
	lat1 = RadiansFromDegrees(lat1)
	lat2 = RadiansFromDegrees(lat2)

	// Conversions keep the products rounded, so no platform fuses them into the sum.
	a := square(math.Sin(dLat/2)) + float64(math.Cos(lat1)*math.Cos(lat2)*square(math.Sin(dLon/2)))
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadius * c
}

func square(x float64) float64 {
	return float64(x * x)
}
