package status

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	labelWidth = 16 // width of the summary label column
)

// 🎯 FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// ⏱️ FormatDuration renders d in whole milliseconds.
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// 🚀 FormatThroughput renders a bytes-per-second rate.
func FormatThroughput(bytesPerSecond float64) string {
	return fmt.Sprintf("%.0f bytes/sec", bytesPerSecond)
}

// 📐 FormatPercent renders a 0..1 ratio as a percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// 📝 formatSummaryRow renders one aligned summary line.
func formatSummaryRow(label, value string) string {
	padded := fmt.Sprintf("%-*s", labelWidth, label)
	return fmt.Sprintf("  %s %s", color.New(color.Faint).Sprint(padded), value)
}
