// Package storage classifies filesystem paths by the physical medium
// backing them. The scanner uses the class to pick its I/O concurrency
// budget: solid-state media tolerate many in-flight operations, while
// rotational media are throttled to a single permit to avoid seek
// thrashing.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// Mount describes one mounted volume as seen by the platform layer.
type Mount struct {
	// Point is the mount point path.
	Point string

	// Device is the backing device identifier (informational).
	Device string

	// Class is the medium class reported for the device.
	Class types.StorageClass
}

// Classify resolves path to its canonical form and maps it to the
// storage class of the most specific mounted volume containing it.
// It never returns an error: canonicalization failures fall back to
// the unresolved path, and an unmatched path yields Undetermined.
// The result is not cached; callers invoke this once per scan.
func Classify(path string) types.StorageClass {
	mounts, err := listMounts()
	if err != nil {
		return types.Undetermined
	}
	return classify(path, mounts)
}

// classify selects the deepest mount whose point is a path-prefix of
// the canonicalized target. Split out from Classify so tests can feed
// synthetic mount tables.
func classify(path string, mounts []Mount) types.StorageClass {
	target := canonicalize(path)

	best := -1
	bestDepth := -1
	for i, m := range mounts {
		point := canonicalize(m.Point)
		if !isPathPrefix(point, target) {
			continue
		}
		if d := pathDepth(point); d > bestDepth {
			best, bestDepth = i, d
		}
	}
	if best < 0 {
		return types.Undetermined
	}
	return mounts[best].Class
}

// canonicalize resolves symlinks in p, falling back to the cleaned
// input when resolution fails.
func canonicalize(p string) string {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return resolved
}

// isPathPrefix reports whether prefix contains target on a whole
// path-component basis.
func isPathPrefix(prefix, target string) bool {
	if prefix == target {
		return true
	}
	if prefix == string(filepath.Separator) {
		return strings.HasPrefix(target, prefix)
	}
	return strings.HasPrefix(target, prefix+string(filepath.Separator))
}

// pathDepth counts the path components of a cleaned path. The root
// directory has depth zero, so deeper mounts always win ties against
// it in classify.
func pathDepth(p string) int {
	p = filepath.Clean(p)
	if p == string(filepath.Separator) {
		return 0
	}
	return strings.Count(p, string(filepath.Separator))
}
