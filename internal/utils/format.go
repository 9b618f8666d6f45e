package utils

import (
	"fmt"
	"math"
)

// ScaleValue scales b into binary units, returning the value and the unit
// prefix ("" for plain bytes).
func ScaleValue(b float64) (float64, string) {
	const unit = 1024
	if b < unit {
		return b, ""
	}

	exp := int(math.Log(b) / math.Log(unit))

	prefixes := "KMGTPE"

	if exp > len(prefixes) {
		exp = len(prefixes)
	}

	scaledValue := b / math.Pow(unit, float64(exp))

	return scaledValue, string(prefixes[exp-1])
}

func FormatBytes(n int64) string {
	if n < 0 {
		return "unknown"
	}
	v, prefix := ScaleValue(float64(n))
	if prefix == "" {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %siB", v, prefix)
}

func FormatRate(bytesPerSec float64) string {
	v, prefix := ScaleValue(bytesPerSec)
	if prefix == "" {
		return fmt.Sprintf("%.0f B/s", v)
	}
	return fmt.Sprintf("%.1f %siB/s", v, prefix)
}
