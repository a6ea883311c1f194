package output

import (
	"bytes"
	"math"
	"strconv"
)

const (
	// decimal point positions written without an exponent: (minFixedPoint, maxFixedPoint]
	minFixedPoint = -5
	maxFixedPoint = 16
)

// appendFloat appends the shortest round-trip digits of v. Values whose decimal point falls in
// (minFixedPoint, maxFixedPoint] are written in fixed notation, integral ones with a ".0"
// suffix. Everything else uses an unpadded exponent, as in 1.5e-8 or 1e16.
func appendFloat(dst []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(dst, "null"...)
	}
	if math.Signbit(v) {
		dst = append(dst, '-')
		v = -v
	}
	if v == 0 {
		return append(dst, "0.0"...)
	}

	var scratch [32]byte
	b := strconv.AppendFloat(scratch[:0], v, 'e', -1, 64)
	e := bytes.IndexByte(b, 'e')
	exp, _ := strconv.Atoi(string(b[e+1:]))

	var digitBuf [24]byte
	digits := append(digitBuf[:0], b[0])
	if e > 1 {
		digits = append(digits, b[2:e]...)
	}

	// 10^(point-1) <= v < 10^point
	point := exp + 1
	n := len(digits)

	switch {
	case n <= point && point <= maxFixedPoint:
		dst = append(dst, digits...)
		for i := n; i < point; i++ {
			dst = append(dst, '0')
		}
		return append(dst, ".0"...)
	case 0 < point && point <= maxFixedPoint:
		dst = append(dst, digits[:point]...)
		dst = append(dst, '.')
		return append(dst, digits[point:]...)
	case minFixedPoint < point && point <= 0:
		dst = append(dst, "0."...)
		for i := point; i < 0; i++ {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	}

	dst = append(dst, digits[0])
	if n > 1 {
		dst = append(dst, '.')
		dst = append(dst, digits[1:]...)
	}
	dst = append(dst, 'e')
	return strconv.AppendInt(dst, int64(point-1), 10)
}
