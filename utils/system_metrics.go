package utils

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUUsage samples host CPU usage as a percentage over interval.
func CPUUsage(ctx context.Context, interval time.Duration) float64 {
	percentage, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		slog.WarnContext(ctx, "cpu usage sample failed", slog.Any("err", err))
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}
