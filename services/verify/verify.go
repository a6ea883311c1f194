// Package verify reads an emitted pairs document back and recomputes its reference sum.
package verify

import (
	"errors"
	"fmt"
	"os"

	"github.com/DIMO-Network/haversine-gen/services/generator"
	"github.com/montanaflynn/stats"
	"github.com/tidwall/gjson"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the relative tolerance for comparing a recomputed sum with the reported one.
const DefaultTolerance = 1e-9

var (
	ErrMalformed     = errors.New("malformed pairs document")
	ErrCountMismatch = errors.New("pair count mismatch")
	ErrSumMismatch   = errors.New("distance sum mismatch")
)

var coordinateFields = [4]string{"x0", "y0", "x1", "y1"}

// Report summarizes the distances found in a document.
type Report struct {
	Count int
	Sum   float64
	Mean  float64
	Max   float64
}

// File reads the document at path and recomputes its distances.
func File(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Document(data)
}

// Document recomputes every distance in data, in document order.
func Document(data []byte) (Report, error) {
	if !gjson.ValidBytes(data) {
		return Report{}, fmt.Errorf("%w: invalid json", ErrMalformed)
	}

	pairs := gjson.GetBytes(data, "pairs")
	if !pairs.IsArray() {
		return Report{}, fmt.Errorf("%w: pairs is not an array", ErrMalformed)
	}

	var (
		distances []float64
		err       error
	)
	pairs.ForEach(func(_, entry gjson.Result) bool {
		var p generator.Pair
		p, err = decodePair(entry, len(distances))
		if err != nil {
			return false
		}
		distances = append(distances, p.Distance())
		return true
	})
	if err != nil {
		return Report{}, err
	}

	if len(distances) == 0 {
		return Report{}, nil
	}

	r := Report{Count: len(distances)}
	// stats only fails on empty input.
	r.Sum, _ = stats.Sum(distances)
	r.Mean, _ = stats.Mean(distances)
	r.Max, _ = stats.Max(distances)
	return r, nil
}

func decodePair(entry gjson.Result, index int) (generator.Pair, error) {
	var v [4]float64
	for i, field := range coordinateFields {
		res := entry.Get(field)
		if res.Type != gjson.Number {
			return generator.Pair{}, fmt.Errorf("%w: entry %d has no numeric %q", ErrMalformed, index, field)
		}
		v[i] = res.Float()
	}
	return generator.Pair{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}

// Check compares a report with the count and sum reported at generation time.
func Check(r Report, count int, sum, tol float64) error {
	if r.Count != count {
		return fmt.Errorf("%w: document has %d, expected %d", ErrCountMismatch, r.Count, count)
	}
	if !scalar.EqualWithinRel(sum, r.Sum, tol) {
		return fmt.Errorf("%w: document sums to %v, expected %v", ErrSumMismatch, r.Sum, sum)
	}
	return nil
}
