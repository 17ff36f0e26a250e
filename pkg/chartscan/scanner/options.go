// Package scanner implements the chart-file discovery engine. It walks
// a directory tree with a queue of pending directories, throttles
// directory listings and file reads with a permit pool sized by the
// storage medium, fingerprints every matching file, and streams records
// to the caller through a Handle while the scan is still running.
package scanner

import (
	"github.com/chartkit/chartscan/pkg/chartscan/logging"
	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// maxWorkers caps the traversal worker count regardless of the permit
// budget.
const maxWorkers = 16

// Options configures a scan.
type Options struct {
	// Root is the directory tree to scan.
	Root string

	// Storage is the medium class of the volume holding Root. It sets
	// the I/O permit budget: 16 on solid-state, 1 otherwise.
	Storage types.StorageClass

	// Workers overrides the traversal worker count. Zero means one
	// worker per I/O permit, so solid-state media get parallel
	// directory listings as well as parallel reads.
	Workers int

	// Logger receives per-item failures and scan lifecycle events.
	// Nil uses the package logger.
	Logger *logging.Logger
}

// DefaultOptions returns options for scanning the current directory on
// an undetermined medium.
func DefaultOptions() Options {
	return Options{
		Root:    ".",
		Storage: types.Undetermined,
	}
}

// Validate fills defaults for unset or invalid fields.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = "."
	}
	if o.Workers <= 0 {
		o.Workers = o.Storage.Permits()
	}
	if o.Workers > maxWorkers {
		o.Workers = maxWorkers
	}
	if o.Logger == nil {
		o.Logger = logging.Get("scanner")
	}
	return nil
}
