package downloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTelemetry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.csv")
	stats := &Stats{}
	stats.BytesWritten.Store(2048)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- StartTelemetry(ctx, stats, path, 10*time.Millisecond) }()

	time.Sleep(55 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "Timestamp(s),TotalBytes,Speed(B/s)", lines[0])
	assert.Equal(t, "2048", strings.Split(lines[1], ",")[1])
}

func TestStartTelemetry_BadPath(t *testing.T) {
	err := StartTelemetry(context.Background(), &Stats{}, filepath.Join(t.TempDir(), "no", "such", "dir.csv"), time.Second)
	assert.Error(t, err)
}
