package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/klauspost/cpuid/v2"

	"github.com/born-ml/seqnet/internal/config"
	"github.com/born-ml/seqnet/internal/kafka"
	"github.com/born-ml/seqnet/internal/stream"
)

// consume runs the pipeline until SIGINT or SIGTERM.
func consume(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("consume", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "config.toml", "path to the TOML configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}

	logger.Info("starting seqnet",
		"version", version,
		"cpu", cpuid.CPU.BrandName,
		"physical_cores", cpuid.CPU.PhysicalCores,
		"avx2", cpuid.CPU.Supports(cpuid.AVX2),
	)

	network, err := config.BuildNetwork(cfg.Network)
	if err != nil {
		return err
	}
	logger.Info("network ready",
		"layers", network.Layers(),
		"input_width", network.InputWidth(),
		"output_width", network.OutputWidth(),
	)
	if network.InputWidth() != kafka.PayloadWidth {
		logger.Warn("network input width differs from payload width; every message will be skipped",
			"input_width", network.InputWidth(),
			"payload_width", kafka.PayloadWidth,
		)
	}

	reader, err := kafka.NewReader(cfg.Kafka(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			logger.Error("close reader", "error", cerr)
		}
	}()

	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	opts = append(opts, stream.WithLogger(logger))
	p := stream.New(network, reader, kafka.DecodePayload, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("subscribed", "topic", cfg.Topic.Name, "group", cfg.Group.ID, "brokers", cfg.Brokers())
	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	logStats(logger, p.Stats())
	return nil
}

func logStats(logger *slog.Logger, s stream.Stats) {
	logger.Info("pipeline stats",
		"received", s.Received,
		"processed", s.Processed,
		"decode_errors", s.DecodeErrors,
		"dimension_errors", s.DimensionErrors,
		"resets", s.Resets,
	)
}
