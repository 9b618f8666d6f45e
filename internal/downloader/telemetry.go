package downloader

import (
	"context"
	"fmt"
	"os"
	"time"
)

// StartTelemetry appends one CSV row per tick until ctx is done.
func StartTelemetry(ctx context.Context, stats *Stats, filename string, interval time.Duration) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create the telemetry CSV file %q - %w", filename, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Timestamp(s),TotalBytes,Speed(B/s)\n")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastDownloaded int64
	startTime := time.Now()
	lastTick := startTime

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			currentTotal := stats.BytesWritten.Load()

			delta := currentTotal - lastDownloaded
			speed := float64(delta) / t.Sub(lastTick).Seconds()

			lastDownloaded = currentTotal
			lastTick = t

			elapsed := t.Sub(startTime).Seconds()
			if _, err := fmt.Fprintf(f, "%.0f,%d,%.0f\n", elapsed, currentTotal, speed); err != nil {
				return fmt.Errorf("failed to write telemetry row - %w", err)
			}
		}
	}
}
