package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/config"
	"github.com/Krimson/cardio-risk/assessor/internal/emulator"
	"github.com/Krimson/cardio-risk/assessor/internal/observability"
)

func main() {
	target := flag.String("target", "http://localhost:8080", "Assessor base URL")
	output := flag.String("output", "", "Write records to this JSONL file instead of the assessor")
	duration := flag.Duration("duration", 30*time.Second, "How long to run (0 = until interrupted)")
	rate := flag.Duration("rate", time.Second, "Interval between records")
	count := flag.Int("count", 0, "Stop after this many records (0 = no limit)")
	invalidRate := flag.Float64("invalid-rate", 0, "Share of records made invalid on purpose (0..1)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := config.Load()
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, "emulator")
	if err != nil {
		log.Fatalf("[FATAL] Failed to build logger: %v", err)
	}
	defer logger.Sync()

	var sender emulator.Sender
	if *output != "" {
		jsonl, err := emulator.NewJSONLSender(*output)
		if err != nil {
			logger.Fatal("Failed to open output", zap.String("path", *output), zap.Error(err))
		}
		sender = jsonl
	} else {
		sender = emulator.NewHTTPSender(*target)
	}
	defer sender.Close()

	genCfg := emulator.DefaultGeneratorConfig()
	genCfg.InvalidRate = *invalidRate
	genCfg.Seed = *seed

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	em, err := emulator.NewEmulator(emulator.NewGenerator(genCfg), sender, emulator.Config{
		Duration: *duration,
		Rate:     *rate,
		Count:    *count,
	}, logger)
	if err != nil {
		logger.Fatal("Invalid emulator configuration", zap.Error(err))
	}
	em.Run(ctx)
}
