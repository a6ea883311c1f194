// Package sampler draws uniformly distributed values from a seeded, portable generator.
package sampler

import (
	"fmt"
	"math"
)

// Source is the generator state threaded through every sampling call.
type Source interface {
	Uint64() uint64
}

const (
	mantissaBits = 52
	exponentOne  = uint64(1023) << mantissaBits
	// largest value of a [0, 1) draw: 1 - 2^-52
	maxUnit = 1 - 1.0/(1<<mantissaBits)
)

// Value returns a float64 drawn uniformly from the closed interval spanned by low and high,
// which may be given in either order. Exactly one 64-bit word is consumed from src.
//
// Value panics when a bound is not finite or the interval is too wide to represent.
func Value(src Source, low, high float64) float64 {
	lo, hi := math.Min(low, high), math.Max(low, high)
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		panic(fmt.Sprintf("sampler: non-finite interval [%v, %v]", low, high))
	}

	scale := inclusiveScale(lo, hi)
	return float64(unit(src.Uint64())*scale) + lo
}

// inclusiveScale stretches the width so that the largest unit draw lands on hi, then shrinks it
// one ulp at a time until rounding can no longer carry a sample past hi.
func inclusiveScale(lo, hi float64) float64 {
	scale := (hi - lo) / maxUnit
	if math.IsInf(scale, 0) {
		panic(fmt.Sprintf("sampler: interval [%v, %v] overflows", lo, hi))
	}
	for float64(scale*maxUnit)+lo > hi {
		scale = math.Float64frombits(math.Float64bits(scale) - 1)
	}
	return scale
}

// unit maps the top 52 bits of u onto [0, 1) through a float in [1, 2).
func unit(u uint64) float64 {
	return math.Float64frombits(exponentOne|u>>(64-mantissaBits)) - 1
}
