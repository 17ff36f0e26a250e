package scanner

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// ErrOutsideRoot means a discovered file does not sit under the scan
// root, so its relative path cannot be computed.
var ErrOutsideRoot = errors.New("file is outside the scan root")

// processFile reads one matching file and assembles its FileRecord.
// The read happens under one I/O permit, released before hashing so a
// large file's fingerprint never starves other I/O-bound workers. The
// content buffer is shared between the record and the hash, not copied.
//
// The returned kind classifies the failure for the caller, which skips
// the file and continues.
func (s *Scanner) processFile(ctx context.Context, path string) (types.FileRecord, types.ErrorKind, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return types.FileRecord{}, types.KindPathError, fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return types.FileRecord{}, types.KindPathError, fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}

	if err := s.permits.Acquire(ctx, 1); err != nil {
		return types.FileRecord{}, types.KindReadError, err
	}
	content, err := os.ReadFile(path)
	s.permits.Release(1)
	if err != nil {
		return types.FileRecord{}, types.KindReadError, fmt.Errorf("reading file: %w", err)
	}

	return types.FileRecord{
		AbsolutePath: path,
		RelativePath: rel,
		Content:      content,
		SHA256:       sha256.Sum256(content),
	}, 0, nil
}
