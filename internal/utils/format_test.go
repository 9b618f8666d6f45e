package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleValue(t *testing.T) {
	tests := []struct {
		in         float64
		wantValue  float64
		wantPrefix string
	}{
		{0, 0, ""},
		{1023, 1023, ""},
		{1024, 1, "K"},
		{1536, 1.5, "K"},
		{3 * 1024 * 1024, 3, "M"},
		{5 * 1024 * 1024 * 1024, 5, "G"},
	}

	for _, tt := range tests {
		v, p := ScaleValue(tt.in)
		assert.InDelta(t, tt.wantValue, v, 1e-9)
		assert.Equal(t, tt.wantPrefix, p)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KiB", FormatBytes(1536))
	assert.Equal(t, "unknown", FormatBytes(-1))
	assert.Equal(t, "100 B/s", FormatRate(100))
	assert.Equal(t, "2.0 MiB/s", FormatRate(2*1024*1024))
}
