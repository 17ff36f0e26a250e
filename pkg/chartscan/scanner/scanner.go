package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/chartkit/chartscan/pkg/chartscan/logging"
	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// Scanner is the traversal engine for one scan invocation. Create one
// with New and launch it with Start; a Scanner is not reusable.
type Scanner struct {
	opts    Options
	root    string
	permits *semaphore.Weighted
	queue   *dirQueue
	handle  *Handle
	logger  *logging.Logger
}

// New creates a Scanner with the given options. Options are validated
// and defaults applied.
func New(opts Options) *Scanner {
	_ = opts.Validate()
	return &Scanner{opts: opts}
}

// Start validates the root, spawns the traversal workers in the
// background and returns the result Handle immediately. The only
// errors it returns are initialization errors: a root that cannot be
// resolved or is not a directory. Filesystem failures during the scan
// itself never surface here; they are collected on the Handle.
//
// Cancelling ctx stops the traversal at the next directory pop or
// permit acquisition; the Handle still completes its protocol (flag
// set, final wake fired) so consumers never hang.
func (s *Scanner) Start(ctx context.Context) (*Handle, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, os.ErrInvalid)
	}

	s.root = root
	s.queue = newDirQueue()
	s.handle = newHandle()
	s.permits = semaphore.NewWeighted(int64(s.opts.Storage.Permits()))
	s.logger = s.opts.Logger.With("scan_id", uuid.NewString()[:8])

	s.queue.push(root)

	s.logger.Info("scan started",
		"root", root,
		"storage", s.opts.Storage.String(),
		"permits", s.opts.Storage.Permits(),
		"workers", s.opts.Workers)

	go s.run(ctx)

	return s.handle, nil
}

// run drives the worker pool and completes the handle once every
// listing, read and hash has finished. Completion ordering: the last
// record is always pushed before the flag is set.
func (s *Scanner) run(ctx context.Context) {
	stop := context.AfterFunc(ctx, s.queue.interrupt)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx)
		}()
	}
	wg.Wait()

	s.handle.markDone()

	stats := s.handle.Stats()
	s.logger.Info("scan complete",
		"dirs_listed", stats.DirsListed,
		"files_matched", stats.FilesMatched,
		"bytes_read", stats.BytesRead,
		"skipped", len(s.handle.Errs()),
		"cancelled", ctx.Err() != nil)
}

// worker loops popping pending directories until traversal finishes or
// the scan is cancelled.
func (s *Scanner) worker(ctx context.Context) {
	for {
		dir, ok := s.queue.pop()
		if !ok {
			return
		}
		s.scanDir(ctx, dir)
		s.queue.done()
	}
}

// scanDir lists one directory under an I/O permit, queues its
// subdirectories and processes its matching files. A directory that
// cannot be listed contributes nothing: the subtree below it is simply
// not discovered.
func (s *Scanner) scanDir(ctx context.Context, dir string) {
	if ctx.Err() != nil {
		return
	}

	if err := s.permits.Acquire(ctx, 1); err != nil {
		return
	}
	entries, err := os.ReadDir(dir)
	s.permits.Release(1)
	if err != nil {
		s.handle.addError(types.KindListingError, dir, err)
		s.logger.Warn("skipping unlistable directory", "kind", types.KindListingError.String(), "path", dir, "err", err)
		return
	}
	s.handle.dirsListed.Add(1)

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			s.queue.push(path)

		case entry.Type().IsRegular() && types.MatchesTarget(entry.Name()):
			rec, kind, perr := s.processFile(ctx, path)
			if perr != nil {
				if ctx.Err() != nil {
					return
				}
				s.handle.addError(kind, path, perr)
				s.logger.Warn("skipping file", "kind", kind.String(), "path", path, "err", perr)
				continue
			}
			s.handle.push(rec)
		}
		// Symlinks, special files and entries whose type cannot be
		// determined are ignored.
	}
}
