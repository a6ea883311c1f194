// Package generator builds the clustered pair dataset and the running sum of reference
// haversine distances.
package generator

import (
	"github.com/DIMO-Network/haversine-gen/services/cluster"
	"github.com/DIMO-Network/haversine-gen/services/haversine"
	"github.com/DIMO-Network/haversine-gen/services/sampler"
)

// Clusters is the number of batches a dataset is split into. Each batch gets its own cluster.
const Clusters = 4

// Pair is one dataset entry. Its distance is summed but not stored.
type Pair struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Dataset holds the pairs in generation order.
type Dataset struct {
	Pairs []Pair `json:"pairs"`
}

// Distance returns the reference distance of the pair.
func (p Pair) Distance() float64 {
	return haversine.Reference(p.X0, p.Y0, p.X1, p.Y1, haversine.EarthRadius)
}

// BatchSize is the number of pairs drawn per cluster. The remainder of n/Clusters is dropped.
func BatchSize(n int) int {
	return n / Clusters
}

// PairCount is the number of pairs actually produced for a request of n.
func PairCount(n int) int {
	return Clusters * BatchSize(n)
}

// Stream draws the dataset for n and hands every pair to emit in generation order. It returns
// the number of pairs emitted and the running sum of their distances. Generation stops at the
// first error returned by emit; the rejected pair is not counted or summed.
//
// A cluster is drawn for every batch, even when the batch is empty, so the generator state
// always advances the same way for a given n.
func Stream(src sampler.Source, n int, emit func(Pair) error) (int, float64, error) {
	var (
		count int
		sum   float64
	)

	batch := BatchSize(n)
	for i := 0; i < Clusters; i++ {
		c := cluster.Generate(src)
		for j := 0; j < batch; j++ {
			p0 := cluster.PointIn(src, c)
			p1 := cluster.PointIn(src, c)

			pair := Pair{X0: p0.X, Y0: p0.Y, X1: p1.X, Y1: p1.Y}
			if err := emit(pair); err != nil {
				return count, sum, err
			}
			sum += pair.Distance()
			count++
		}
	}

	return count, sum, nil
}

// Entries generates the whole dataset in memory.
func Entries(src sampler.Source, n int) (int, float64, Dataset) {
	ds := Dataset{Pairs: make([]Pair, 0, PairCount(n))}
	count, sum, _ := Stream(src, n, func(p Pair) error {
		ds.Pairs = append(ds.Pairs, p)
		return nil
	})
	return count, sum, ds
}
