package telemetry

import (
	"log/slog"

	"turmites/internal/config"
	"turmites/internal/core"
	"turmites/internal/turmite"
)

// Observable is a simulation that reports ticks and resets.
type Observable interface {
	Observe(fn func(*turmite.SimulationState))
	OnReset(fn func())
}

// Attach hooks a collector onto sim according to cfg. It returns nil when
// telemetry is disabled.
func Attach(sim Observable, cfg config.TelemetryConfig, clock core.Clock, logger *slog.Logger) (*Collector, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	out, err := CreateFile[WindowStats](cfg.Path)
	if err != nil {
		return nil, err
	}
	c := NewCollector(cfg.Every, clock, out, logger)
	sim.Observe(c.Observe)
	sim.OnReset(c.Restart)
	logger.Info("telemetry enabled", "path", cfg.Path, "every", cfg.Every)
	return c, nil
}
