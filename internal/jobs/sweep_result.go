package jobs

import (
	"context"
	"log/slog"

	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/metrics"
)

func recordSweep(ctx context.Context, logger *slog.Logger, sweep string, result commands.SweepResult) {
	metrics.SweepRecordsTotal.WithLabelValues(sweep, "processed").Add(float64(result.Processed))
	metrics.SweepRecordsTotal.WithLabelValues(sweep, "skipped").Add(float64(result.Skipped))
	metrics.SweepRecordsTotal.WithLabelValues(sweep, "failed").Add(float64(result.Failed))

	if result.Processed+result.Skipped+result.Failed == 0 {
		return
	}
	logger.InfoContext(ctx, "Sweep finished",
		"processed", result.Processed, "skipped", result.Skipped, "failed", result.Failed)
}
