package output

import (
	"bytes"
	"encoding/json"
)

// jsonOutput represents the full JSON output structure.
type jsonOutput struct {
	Records []Record  `json:"records"`
	Stats   jsonStats `json:"stats"`
	Meta    jsonMeta  `json:"meta"`
}

// jsonStats represents scan statistics in JSON output.
type jsonStats struct {
	DirsListed int64  `json:"dirs_listed"`
	TotalFiles int    `json:"total_files"`
	TotalSize  int64  `json:"total_size"`
	Duration   string `json:"duration"`
	Skipped    int    `json:"skipped"`
}

// jsonMeta represents scan metadata in JSON output.
type jsonMeta struct {
	Root      string   `json:"root"`
	Storage   string   `json:"storage"`
	Cancelled bool     `json:"cancelled"`
	Warnings  []string `json:"warnings,omitempty"`
}

// JSONFormatter formats output as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Result) error {
	r.Sort()

	var warnings []string
	for _, e := range r.Skipped {
		warnings = append(warnings, e.Kind.String()+": "+e.Path+": "+e.Error)
	}

	out := jsonOutput{
		Records: r.Records,
		Stats: jsonStats{
			DirsListed: r.DirsListed,
			TotalFiles: len(r.Records),
			TotalSize:  r.TotalSize(),
			Duration:   r.Duration.String(),
			Skipped:    len(r.Skipped),
		},
		Meta: jsonMeta{
			Root:      r.Root,
			Storage:   r.Storage,
			Cancelled: r.Cancelled,
			Warnings:  warnings,
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
