package importer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressReporter prints a bar during long commit runs.
type ProgressReporter struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
}

// NewProgressReporter creates a reporter for total rows.
func NewProgressReporter(w io.Writer, total int) *ProgressReporter {
	return &ProgressReporter{
		writer:    w,
		total:     total,
		startTime: time.Now(),
	}
}

// Update advances the bar by one row.
func (p *ProgressReporter) Update(label string) {
	p.current++
	if p.total <= 0 {
		return
	}

	pct := float64(p.current) / float64(p.total) * 100

	barWidth := 50
	filled := int(float64(barWidth) * float64(p.current) / float64(p.total))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	if len(label) > 40 {
		label = label[:37] + "..."
	}

	_, _ = fmt.Fprintf(p.writer, "\r[%s] %3.0f%% (%d/%d) %s",
		bar, pct, p.current, p.total, label)
}

// Finish completes the progress display.
func (p *ProgressReporter) Finish(inserted int) {
	elapsed := time.Since(p.startTime)
	_, _ = fmt.Fprintf(p.writer, "\nImported %d sessions in %s\n", inserted, elapsed.Round(time.Millisecond))
}
