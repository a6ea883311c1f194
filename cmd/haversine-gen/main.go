package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DIMO-Network/haversine-gen/internal/config"
	"github.com/DIMO-Network/haversine-gen/services/fixture"
	"github.com/DIMO-Network/haversine-gen/services/metrics"

	"github.com/DIMO-Network/shared"
	"github.com/rs/zerolog"
)

const (
	seed      uint64 = 2
	pairCount        = 10_000_000
)

func exportMetrics(path string, s fixture.Summary, logger *zerolog.Logger) {
	m := metrics.New()
	m.Observe(s.Count, s.Sum, s.Elapsed, time.Now())
	if err := m.WriteTextfile(path); err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("Failed writing metrics textfile.")
	}
	logger.Debug().Str("path", path).Msg("Metrics textfile written.")
}

func main() {
	// stdout carries only the summary lines.
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("app", "haversine-gen").Logger()

	settings, err := shared.LoadConfig[config.Settings]("settings.yaml")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed loading settings.")
	}
	settings = settings.WithDefaults()

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("level", settings.LogLevel).Msg("Invalid log level.")
	}
	logger = logger.Level(level)
	logger.Info().Interface("settings", settings).Msg("Settings loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := fixture.Run(ctx, &logger, fixture.Options{
		Seed:       seed,
		Count:      pairCount,
		OutputPath: settings.OutputPath,
		AnswerPath: settings.AnswerPath,
		Verify:     settings.VerifyOutput,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed generating pairs.")
	}

	if settings.MetricsTextfile != "" {
		exportMetrics(settings.MetricsTextfile, summary, &logger)
	}

	if err := fixture.WriteSummary(os.Stdout, summary); err != nil {
		logger.Fatal().Err(err).Msg("Failed printing summary.")
	}
}
