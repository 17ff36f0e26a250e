// Package output provides formatters for displaying chartscan results
// in various output formats (pretty, plain, json).
//
// The package uses a registry pattern so formatters can be selected at
// runtime:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, result); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// Record is one discovered chart file prepared for display.
type Record struct {
	// RelativePath is the path relative to the scan root.
	RelativePath string `json:"relative_path"`

	// AbsolutePath is the absolute path to the file.
	AbsolutePath string `json:"absolute_path"`

	// Size is the content length in bytes.
	Size int64 `json:"size"`

	// SizeHuman is the human-readable content length.
	SizeHuman string `json:"size_human"`

	// Fingerprint is the hex SHA-256 of the content.
	Fingerprint string `json:"sha256"`
}

// Result contains the complete output data for formatting.
type Result struct {
	// Records contains all discovered files, sorted by relative path.
	Records []Record `json:"records"`

	// Root is the scanned directory.
	Root string `json:"root"`

	// Storage is the storage class the scan ran with.
	Storage string `json:"storage"`

	// DirsListed is the number of directories traversed.
	DirsListed int64 `json:"dirs_listed"`

	// Duration is the wall-clock scan time.
	Duration time.Duration `json:"duration"`

	// Skipped contains the per-item failures encountered.
	Skipped []types.ScanError `json:"skipped,omitempty"`

	// Cancelled indicates the scan was interrupted before finishing.
	Cancelled bool `json:"cancelled"`
}

// TotalSize returns the sum of all record sizes.
func (r *Result) TotalSize() int64 {
	var total int64
	for _, rec := range r.Records {
		total += rec.Size
	}
	return total
}

// NewRecord converts a scanner FileRecord for display.
func NewRecord(rec *types.FileRecord) Record {
	return Record{
		RelativePath: rec.RelativePath,
		AbsolutePath: rec.AbsolutePath,
		Size:         int64(len(rec.Content)),
		SizeHuman:    humanize.IBytes(uint64(len(rec.Content))),
		Fingerprint:  rec.Fingerprint(),
	}
}

// Sort orders the records by relative path. The scanner guarantees no
// discovery order, so formatters sort for stable output.
func (r *Result) Sort() {
	sort.Slice(r.Records, func(i, j int) bool {
		return r.Records[i].RelativePath < r.Records[j].RelativePath
	})
}

// Formatter is the interface all output formatters implement.
type Formatter interface {
	// Format writes the formatted output to the buffer.
	Format(w *bytes.Buffer, r *Result) error
}

// FormatterFactory creates a new Formatter instance.
type FormatterFactory func() Formatter

var (
	registryMu sync.RWMutex
	registry   = make(map[string]FormatterFactory)
)

// Register adds a formatter factory under the given name. Called from
// formatter init functions.
func Register(name string, factory FormatterFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get returns a new formatter for the given name.
func Get(name string) (Formatter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		names := make([]string, 0, len(registry))
		for n := range registry {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown output format %q (have %v)", name, names)
	}
	return factory(), nil
}

// Names returns the registered formatter names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
