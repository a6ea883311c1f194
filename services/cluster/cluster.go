// Package cluster places random bounding boxes in coordinate space and samples points inside
// them, so that generated data is grouped instead of spread evenly over the globe.
package cluster

import (
	"math"

	"github.com/DIMO-Network/haversine-gen/services/sampler"
)

const (
	// CoordinateMin and CoordinateMax bound every cluster corner, on both axes.
	CoordinateMin = -180.0
	CoordinateMax = 180.0
)

// Point is a coordinate in degrees. X is longitude and Y is latitude; neither is validated.
type Point struct {
	X float64
	Y float64
}

// Cluster is the rectangle spanned by two corners. The corners are kept in draw order, not
// sorted.
type Cluster struct {
	P1 Point
	P2 Point
}

// Generate draws a cluster over the global range. Draws happen in the order P1.X, P1.Y, P2.X,
// P2.Y.
func Generate(src sampler.Source) Cluster {
	var c Cluster
	c.P1.X = sampler.Value(src, CoordinateMin, CoordinateMax)
	c.P1.Y = sampler.Value(src, CoordinateMin, CoordinateMax)
	c.P2.X = sampler.Value(src, CoordinateMin, CoordinateMax)
	c.P2.Y = sampler.Value(src, CoordinateMin, CoordinateMax)
	return c
}

// PointIn draws a point inside c, X first.
func PointIn(src sampler.Source, c Cluster) Point {
	var p Point
	p.X = sampler.Value(src, c.P1.X, c.P2.X)
	p.Y = sampler.Value(src, c.P1.Y, c.P2.Y)
	return p
}

// Contains reports whether p lies inside the rectangle, edges included.
func (c Cluster) Contains(p Point) bool {
	return within(p.X, c.P1.X, c.P2.X) && within(p.Y, c.P1.Y, c.P2.Y)
}

func within(v, a, b float64) bool {
	return v >= math.Min(a, b) && v <= math.Max(a, b)
}
