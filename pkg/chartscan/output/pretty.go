package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// formatDuration trims a duration to a display-friendly precision.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

// PrettyFormatter formats output with colors and styling using
// lipgloss, for interactive terminal use.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Result) error {
	r.Sort()

	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")

	if err := f.formatTable(w, r); err != nil {
		return err
	}

	w.WriteString(f.formatSummary(r))

	if len(r.Skipped) > 0 {
		w.WriteString("\n")
		f.formatSkipped(w, r)
	}

	return nil
}

// formatHeader builds the header box with scan metadata.
func (f *PrettyFormatter) formatHeader(r *Result) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Root:"),
		ValueStyle.Render(r.Root)))

	info := fmt.Sprintf("%s %s  %s %s",
		LabelStyle.Render("Storage:"),
		ValueStyle.Render(r.Storage),
		LabelStyle.Render("Scanned:"),
		ValueStyle.Render(fmt.Sprintf("%d dirs in %s", r.DirsListed, formatDuration(r.Duration))))
	lines = append(lines, info)

	if r.Cancelled {
		lines = append(lines, WarningStyle.Bold(true).Render("Scan interrupted"))
	}

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatTable writes the aligned record table.
func (f *PrettyFormatter) formatTable(w *bytes.Buffer, r *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, rec := range r.Records {
		row := fmt.Sprintf("%s\t%s\t%s\n",
			ValueStyle.Render(rec.SizeHuman),
			MutedStyle.Render(rec.Fingerprint[:16]),
			PathStyle.Render(rec.RelativePath))
		if _, err := tw.Write([]byte(row)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// formatSummary builds the closing count line.
func (f *PrettyFormatter) formatSummary(r *Result) string {
	return MutedStyle.Render(fmt.Sprintf("\n%d charts, %s total",
		len(r.Records), humanize.IBytes(uint64(r.TotalSize()))))
}

// formatSkipped lists per-item failures.
func (f *PrettyFormatter) formatSkipped(w *bytes.Buffer, r *Result) {
	w.WriteString(WarningStyle.Render(fmt.Sprintf("%d items skipped:", len(r.Skipped))))
	w.WriteString("\n")
	for _, e := range r.Skipped {
		w.WriteString(WarningStyle.Render(fmt.Sprintf("  [%s] %s: %s", e.Kind, e.Path, e.Error)))
		w.WriteString("\n")
	}
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
