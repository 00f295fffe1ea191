package main

import (
	"log/slog"

	"pastel-notes/internal/config"

	"github.com/grafana/pyroscope-go"
)

// startProfiler pushes CPU and heap profiles to PYROSCOPE_ADDR. It returns a
// no-op stop func when profiling is disabled or the agent fails to start.
func startProfiler(cfg config.Config, log *slog.Logger) (stop func()) {
	if cfg.PyroscopeAddr == "" {
		return func() {}
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: "pastel-notes",
		ServerAddress:   cfg.PyroscopeAddr,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		log.Warn("profiler disabled", "addr", cfg.PyroscopeAddr, "error", err)
		return func() {}
	}

	log.Info("profiler started", "addr", cfg.PyroscopeAddr)
	return func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("profiler stop", "error", err)
		}
	}
}
