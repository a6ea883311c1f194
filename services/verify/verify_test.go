package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DIMO-Network/haversine-gen/services/generator"
	"github.com/DIMO-Network/haversine-gen/services/output"
	"github.com/DIMO-Network/haversine-gen/services/sampler"
	"github.com/stretchr/testify/require"
)

func TestDocument_RoundTrip(t *testing.T) {
	count, sum, ds := generator.Entries(sampler.NewChaCha8FromUint64(2), 2000)
	data, err := output.Marshal(ds)
	require.NoError(t, err)

	r, err := Document(data)
	require.NoError(t, err)
	require.Equal(t, count, r.Count)
	require.Equal(t, sum, r.Sum)
	require.InEpsilon(t, sum/float64(count), r.Mean, 1e-15)
	require.NoError(t, Check(r, count, sum, DefaultTolerance))

	for _, p := range ds.Pairs {
		require.LessOrEqual(t, p.Distance(), r.Max)
	}
}

func TestDocument_Golden(t *testing.T) {
	_, _, ds := generator.Entries(sampler.NewChaCha8FromUint64(2), 8)
	data, err := output.Marshal(ds)
	require.NoError(t, err)

	r, err := Document(data)
	require.NoError(t, err)
	require.Equal(t, 8, r.Count)
	require.InEpsilon(t, 45660.9461696762, r.Sum, 1e-12)
	require.InEpsilon(t, 10612.462660590885, r.Max, 1e-12)
}

func TestDocument_Empty(t *testing.T) {
	r, err := Document([]byte(`{"pairs":[]}`))
	require.NoError(t, err)
	require.Equal(t, Report{}, r)
	require.NoError(t, Check(r, 0, 0, DefaultTolerance))
}

func TestDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"pairs":[`},
		{"no pairs", `{"points":[]}`},
		{"pairs not array", `{"pairs":{}}`},
		{"missing coordinate", `{"pairs":[{"x0":1,"y0":2,"x1":3}]}`},
		{"string coordinate", `{"pairs":[{"x0":1,"y0":2,"x1":3,"y1":"4"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Document([]byte(tt.doc))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCheck(t *testing.T) {
	r := Report{Count: 4, Sum: 1000}

	require.NoError(t, Check(r, 4, 1000, DefaultTolerance))
	require.NoError(t, Check(r, 4, 1000*(1+1e-12), DefaultTolerance))
	require.ErrorIs(t, Check(r, 8, 1000, DefaultTolerance), ErrCountMismatch)
	require.ErrorIs(t, Check(r, 4, 1000.01, DefaultTolerance), ErrSumMismatch)
}

func TestFile(t *testing.T) {
	_, sum, ds := generator.Entries(sampler.NewChaCha8FromUint64(2), 40)
	data, err := output.Marshal(ds)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	r, err := File(path)
	require.NoError(t, err)
	require.Equal(t, 40, r.Count)
	require.Equal(t, sum, r.Sum)

	_, err = File(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
