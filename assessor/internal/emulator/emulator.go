package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config задаёт длительность и темп выдачи записей.
type Config struct {
	Duration time.Duration
	Rate     time.Duration

	// Остановка после Count записей, 0 - без ограничения
	Count int
}

// Stats - итоги одного прогона.
type Stats struct {
	Sent     int
	Rejected int
	Failed   int
}

// Emulator передаёт сгенерированные записи отправителю с постоянным темпом.
type Emulator struct {
	generator *Generator
	sender    Sender
	config    Config
	logger    *zap.Logger
}

// ErrInvalidRate возвращается при нулевом или отрицательном интервале.
var ErrInvalidRate = errors.New("emulator: rate must be positive")

func NewEmulator(generator *Generator, sender Sender, cfg Config, logger *zap.Logger) (*Emulator, error) {
	if cfg.Rate <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRate, cfg.Rate)
	}
	return &Emulator{
		generator: generator,
		sender:    sender,
		config:    cfg,
		logger:    logger,
	}, nil
}

// Run выдаёт записи, пока не истечёт время, не наберётся Count или не отменится ctx.
func (e *Emulator) Run(ctx context.Context) Stats {
	if e.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Duration)
		defer cancel()
	}

	ticker := time.NewTicker(e.config.Rate)
	defer ticker.Stop()

	e.logger.Info("Starting emulator",
		zap.Duration("duration", e.config.Duration),
		zap.Duration("rate", e.config.Rate),
		zap.Int("count", e.config.Count),
	)

	var stats Stats
	for {
		select {
		case <-ticker.C:
			err := e.sender.Send(ctx, e.generator.Next())
			switch {
			case err == nil:
				stats.Sent++
			case errors.Is(err, ErrRejected):
				stats.Rejected++
			case ctx.Err() != nil:
				return e.stop(stats)
			default:
				stats.Failed++
				e.logger.Warn("Send error", zap.Error(err))
			}
			if e.config.Count > 0 && stats.Sent+stats.Rejected+stats.Failed >= e.config.Count {
				return e.stop(stats)
			}

		case <-ctx.Done():
			return e.stop(stats)
		}
	}
}

func (e *Emulator) stop(stats Stats) Stats {
	e.logger.Info("Emulator stopped",
		zap.Int("sent", stats.Sent),
		zap.Int("rejected", stats.Rejected),
		zap.Int("failed", stats.Failed),
	)
	return stats
}
