package config

// Default configuration values.
const (
	// DefaultOutput is the default CLI output format.
	DefaultOutput = "pretty"

	// DefaultWorkers means one traversal worker per I/O permit.
	DefaultWorkers = 0

	// DefaultStorage probes the mount table for the medium class.
	DefaultStorage = "auto"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
)
