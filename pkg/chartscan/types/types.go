// Package types provides core data types for the chartscan library.
// It includes the storage-class enumeration that drives scan concurrency,
// the file record produced for every discovered chart file, and the
// per-item error values collected during a scan.
package types

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// StorageKind identifies the physical medium backing a filesystem path.
type StorageKind int

// Storage kinds reported by the classifier.
const (
	// KindUndetermined means classification failed or no mount matched.
	KindUndetermined StorageKind = iota

	// KindSolidState is flash-backed storage (SSD, NVMe).
	KindSolidState

	// KindRotational is spinning-platter storage (HDD).
	KindRotational

	// KindOther is a vendor/OS-reported kind that maps to neither of
	// the above. The vendor code is carried in StorageClass.Code.
	KindOther
)

// StorageClass is the result of classifying a path's storage medium.
// It is immutable once computed and drives the concurrency budget for
// a single scan invocation.
type StorageClass struct {
	// Kind is the medium class.
	Kind StorageKind

	// Code is the vendor/OS-reported device kind when Kind is KindOther.
	Code int64
}

// Convenience constructors for the closed set of classes.
var (
	SolidState   = StorageClass{Kind: KindSolidState}
	Rotational   = StorageClass{Kind: KindRotational}
	Undetermined = StorageClass{Kind: KindUndetermined}
)

// Other returns a StorageClass for a vendor-reported kind outside the
// solid-state/rotational split.
func Other(code int64) StorageClass {
	return StorageClass{Kind: KindOther, Code: code}
}

// Permit budget per storage class. Solid-state media tolerate deep I/O
// queues; everything else gets serialized to avoid seek thrashing.
const (
	SolidStatePermits = 16
	FallbackPermits   = 1
)

// Permits returns the concurrency budget for one scan on this medium.
func (c StorageClass) Permits() int {
	if c.Kind == KindSolidState {
		return SolidStatePermits
	}
	return FallbackPermits
}

// String returns a human-readable name for logging and CLI output.
func (c StorageClass) String() string {
	switch c.Kind {
	case KindSolidState:
		return "solid-state"
	case KindRotational:
		return "rotational"
	case KindOther:
		return "other"
	default:
		return "undetermined"
	}
}

// FileRecord describes one discovered chart file. It is constructed
// exactly once by the file processor and not mutated afterwards; the
// Content buffer is shared with the hashing step, never copied.
type FileRecord struct {
	// AbsolutePath is the absolute path to the file.
	AbsolutePath string `json:"absolute_path"`

	// RelativePath is the path relative to the scan root.
	RelativePath string `json:"relative_path"`

	// Content is the file's full byte content. Treat as immutable.
	Content []byte `json:"-"`

	// SHA256 is the content fingerprint over the full buffer.
	SHA256 [32]byte `json:"sha256"`
}

// Fingerprint returns the hex-encoded SHA-256 of the content.
func (r *FileRecord) Fingerprint() string {
	return hex.EncodeToString(r.SHA256[:])
}

// HumanSize returns the content length formatted for display.
func (r *FileRecord) HumanSize() string {
	return humanize.IBytes(uint64(len(r.Content)))
}

// ErrorKind classifies a per-item scan failure. No kind aborts an
// in-progress scan; failures are collected and the scan continues.
type ErrorKind int

// Per-item failure kinds.
const (
	// KindPathError: a discovered file sits outside the scan root, so
	// its relative path cannot be computed.
	KindPathError ErrorKind = iota

	// KindListingError: a directory could not be listed; its subtree
	// is omitted from results.
	KindListingError

	// KindReadError: a file could not be read.
	KindReadError

	// KindHashError: fingerprint computation failed.
	KindHashError
)

// String returns the kind's name for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindPathError:
		return "path"
	case KindListingError:
		return "listing"
	case KindReadError:
		return "read"
	case KindHashError:
		return "hash"
	default:
		return "unknown"
	}
}

// ScanError pairs a path with the failure that skipped it.
type ScanError struct {
	// Kind classifies the failure.
	Kind ErrorKind `json:"kind"`

	// Path is the file or directory where the failure occurred.
	Path string `json:"path"`

	// Error is the underlying error message.
	Error string `json:"error"`
}

// TargetExtensions is the fixed set of recognized chart-notation file
// extensions, lowercase without the leading dot. Matching is always
// case-insensitive.
var TargetExtensions = map[string]struct{}{
	"bms":   {},
	"bme":   {},
	"bml":   {},
	"pms":   {},
	"bmson": {},
}

// MatchesTarget reports whether path has a recognized chart extension.
// Files without an extension never match.
func MatchesTarget(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	_, ok := TargetExtensions[strings.ToLower(ext[1:])]
	return ok
}
