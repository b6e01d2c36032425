package service

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteTimesCSV renders the aggregated times as CSV: an Activity,Time header
// followed by one name,XhYm row per activity. Rows keep the order of times,
// which Totals already sorts by name. An empty aggregation yields just the
// header.
func WriteTimesCSV(w io.Writer, times []TimeView) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Activity", "Time"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range times {
		if err := writer.Write([]string{row.Name, FormatDuration(row.TotalSeconds)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FormatDuration renders a second count as XhYm, truncating leftover seconds.
func FormatDuration(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%dh%dm", hours, minutes)
}
