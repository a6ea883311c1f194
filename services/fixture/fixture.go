// Package fixture writes a complete pairs document to disk and reports its reference sum.
package fixture

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/DIMO-Network/haversine-gen/services/generator"
	"github.com/DIMO-Network/haversine-gen/services/output"
	"github.com/DIMO-Network/haversine-gen/services/sampler"
	"github.com/DIMO-Network/haversine-gen/services/verify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const pairQueueDepth = 4096

// Options describes one generation run.
type Options struct {
	Seed       uint64
	Count      int
	OutputPath string
	// AnswerPath, when set, receives a small JSON document with the expected sum and count.
	AnswerPath string
	// Verify re-reads the output and recomputes the sum before returning.
	Verify bool
}

// Summary is the outcome of a completed run.
type Summary struct {
	Seed    uint64
	Count   int
	Sum     float64
	Path    string
	Elapsed time.Duration
}

// Run generates opts.Count pairs (truncated to a multiple of four) from opts.Seed and writes
// them to opts.OutputPath, replacing any existing file.
func Run(ctx context.Context, logger *zerolog.Logger, opts Options) (Summary, error) {
	start := time.Now()

	f, err := os.Create(opts.OutputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create output file: %w", err)
	}

	w := output.NewWriter(f)
	count, sum, err := generate(ctx, sampler.NewChaCha8FromUint64(opts.Seed), opts.Count, w)
	if err != nil {
		_ = f.Close()
		return Summary{}, fmt.Errorf("failed to write pairs to %s: %w", opts.OutputPath, err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return Summary{}, fmt.Errorf("failed to finish %s: %w", opts.OutputPath, err)
	}
	if err := f.Close(); err != nil {
		return Summary{}, fmt.Errorf("failed to close %s: %w", opts.OutputPath, err)
	}

	s := Summary{
		Seed:    opts.Seed,
		Count:   count,
		Sum:     sum,
		Path:    opts.OutputPath,
		Elapsed: time.Since(start),
	}
	logger.Info().Int("pairs", s.Count).Float64("sum", s.Sum).Str("path", s.Path).Dur("elapsed", s.Elapsed).Msg("Pairs written.")

	if opts.AnswerPath != "" {
		if err := WriteAnswer(opts.AnswerPath, s); err != nil {
			return Summary{}, err
		}
		logger.Debug().Str("path", opts.AnswerPath).Msg("Answer file written.")
	}

	if opts.Verify {
		r, err := verify.File(opts.OutputPath)
		if err != nil {
			return Summary{}, err
		}
		if err := verify.Check(r, s.Count, s.Sum, verify.DefaultTolerance); err != nil {
			return Summary{}, err
		}
		logger.Info().Int("pairs", r.Count).Float64("mean", r.Mean).Float64("max", r.Max).Msg("Output verified.")
	}

	return s, nil
}

// generate keeps every draw on a single goroutine; the writer only sees pairs in the order
// they were produced.
func generate(ctx context.Context, src sampler.Source, n int, w *output.Writer) (int, float64, error) {
	pairs := make(chan generator.Pair, pairQueueDepth)
	group, ctx := errgroup.WithContext(ctx)

	var (
		count int
		sum   float64
	)
	group.Go(func() error {
		defer close(pairs)
		var err error
		count, sum, err = generator.Stream(src, n, func(p generator.Pair) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case pairs <- p:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		return err
	})
	group.Go(func() error {
		for p := range pairs {
			if err := w.WritePair(p); err != nil {
				return err
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return 0, 0, err
	}
	return count, sum, nil
}
