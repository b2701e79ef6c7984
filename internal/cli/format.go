package cli

import (
	"fmt"
	"time"
)

// FormatZScore formats a z-score with sign and two decimals.
func FormatZScore(z float64) string {
	if z > 0 {
		return fmt.Sprintf("+%.2f", z)
	}
	return fmt.Sprintf("%.2f", z)
}

// FormatDuration formats a duration to whole seconds for display.
func FormatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

// orDash substitutes a dash for empty display fields.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
