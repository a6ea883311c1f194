package fixture

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DIMO-Network/haversine-gen/services/generator"
	"github.com/DIMO-Network/haversine-gen/services/output"
	"github.com/DIMO-Network/haversine-gen/services/sampler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRun_Golden(t *testing.T) {
	logger := zerolog.New(nil)
	dir := t.TempDir()
	opts := Options{
		Seed:       2,
		Count:      8,
		OutputPath: filepath.Join(dir, "resultado.json"),
		AnswerPath: filepath.Join(dir, "answer.json"),
		Verify:     true,
	}

	s, err := Run(context.Background(), &logger, opts)
	require.NoError(t, err)
	require.Equal(t, 8, s.Count)
	require.Equal(t, uint64(2), s.Seed)
	require.InEpsilon(t, 45660.9461696762, s.Sum, 1e-12)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	_, _, ds := generator.Entries(sampler.NewChaCha8FromUint64(2), 8)
	want, err := output.Marshal(ds)
	require.NoError(t, err)
	require.Equal(t, string(want), string(got))
	require.True(t, strings.HasPrefix(string(got), `{"pairs":[{"x0":111.49298138415246,"y0":92.5879740662607,`))

	answer, err := os.ReadFile(opts.AnswerPath)
	require.NoError(t, err)
	require.Equal(t, s.Sum, gjson.GetBytes(answer, "expectedSum").Float())
	require.Equal(t, int64(8), gjson.GetBytes(answer, "n").Int())
	require.Equal(t, uint64(2), gjson.GetBytes(answer, "seed").Uint())
	require.Equal(t, opts.OutputPath, gjson.GetBytes(answer, "output").String())
}

func TestRun_Deterministic(t *testing.T) {
	logger := zerolog.Nop()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	sa, err := Run(context.Background(), &logger, Options{Seed: 2, Count: 20_001, OutputPath: a})
	require.NoError(t, err)
	sb, err := Run(context.Background(), &logger, Options{Seed: 2, Count: 20_001, OutputPath: b})
	require.NoError(t, err)

	require.Equal(t, 20_000, sa.Count)
	require.Equal(t, sa.Count, sb.Count)
	require.Equal(t, sa.Sum, sb.Sum)

	ba, err := os.ReadFile(a)
	require.NoError(t, err)
	bb, err := os.ReadFile(b)
	require.NoError(t, err)
	require.Equal(t, ba, bb)
}

func TestRun_MatchesInMemorySum(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "pairs.json")

	s, err := Run(context.Background(), &logger, Options{Seed: 2, Count: 10_000, OutputPath: path, Verify: true})
	require.NoError(t, err)

	count, sum, _ := generator.Entries(sampler.NewChaCha8FromUint64(2), 10_000)
	require.Equal(t, count, s.Count)
	require.Equal(t, sum, s.Sum)
}

func TestRun_OverwritesExistingFile(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "resultado.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 10_000)), 0o644))

	_, err := Run(context.Background(), &logger, Options{Seed: 2, Count: 3, OutputPath: path})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"pairs":[]}`, string(got))
}

func TestRun_CreateFails(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "missing", "resultado.json")

	_, err := Run(context.Background(), &logger, Options{Seed: 2, Count: 8, OutputPath: path})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Canceled(t *testing.T) {
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &logger, Options{Seed: 2, Count: 100, OutputPath: filepath.Join(t.TempDir(), "out.json")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteAnswer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.json")
	require.NoError(t, WriteAnswer(path, Summary{Seed: 2, Count: 4, Sum: 0.5, Path: "resultado.json"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"expectedSum":0.5,"n":4,"seed":2,"output":"resultado.json"}`, string(b))
}

func TestWriteSummary(t *testing.T) {
	tests := []struct {
		name string
		s    Summary
		want string
	}{
		{"golden", Summary{Count: 8, Sum: 45660.9461696762}, "Expected sum: 45660.9461696762\nN: 8\n"},
		{"empty", Summary{}, "Expected sum: 0\nN: 0\n"},
		{"large", Summary{Count: 10_000_000, Sum: 1.2345678901234567e+11}, "Expected sum: 123456789012.34567\nN: 10000000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, WriteSummary(&sb, tt.s))
			require.Equal(t, tt.want, sb.String())
		})
	}
}
