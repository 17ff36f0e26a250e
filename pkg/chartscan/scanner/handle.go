package scanner

import (
	"sync"
	"sync/atomic"

	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// Handle is the streaming result channel for one scan. The engine owns
// the producer side; the caller owns the consumer side. It is
// constructed once per scan and never reused.
//
// Consumer protocol: wait on Wake(), drain Pop() until empty, check
// Done(); stop only after Done() is true and a final drain finds the
// queue empty. Wake signals coalesce, so several records may arrive
// per wake — drain to empty, never assume one record per signal.
//
// Every record is pushed strictly before Done() can observe true.
type Handle struct {
	mu      sync.Mutex
	records []types.FileRecord
	errs    []types.ScanError

	wake chan struct{}
	done atomic.Bool

	dirsListed   atomic.Int64
	filesMatched atomic.Int64
	bytesRead    atomic.Int64
}

// Stats is a snapshot of scan progress counters.
type Stats struct {
	// DirsListed is the number of directories successfully listed.
	DirsListed int64 `json:"dirs_listed"`

	// FilesMatched is the number of records pushed so far.
	FilesMatched int64 `json:"files_matched"`

	// BytesRead is the total content bytes read so far.
	BytesRead int64 `json:"bytes_read"`
}

func newHandle() *Handle {
	return &Handle{wake: make(chan struct{}, 1)}
}

// Pop returns one record if available. Safe for concurrent callers.
func (h *Handle) Pop() (types.FileRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) == 0 {
		return types.FileRecord{}, false
	}
	rec := h.records[0]
	h.records = h.records[1:]
	return rec, true
}

// Wake returns the channel a consumer parks on while waiting for more
// records or completion. Edge-triggered: signals sent before a receive
// collapse into one.
func (h *Handle) Wake() <-chan struct{} {
	return h.wake
}

// Done reports whether the scan has finished. It transitions to true
// at most once, only after the last record has been pushed.
func (h *Handle) Done() bool {
	return h.done.Load()
}

// Errs returns a snapshot of the per-item failures skipped during the
// scan. Failures never abort a scan; they are collected here for
// diagnostics.
func (h *Handle) Errs() []types.ScanError {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.ScanError, len(h.errs))
	copy(out, h.errs)
	return out
}

// Stats returns a snapshot of the progress counters.
func (h *Handle) Stats() Stats {
	return Stats{
		DirsListed:   h.dirsListed.Load(),
		FilesMatched: h.filesMatched.Load(),
		BytesRead:    h.bytesRead.Load(),
	}
}

// push enqueues one record and fires the wake signal.
func (h *Handle) push(rec types.FileRecord) {
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()

	h.filesMatched.Add(1)
	h.bytesRead.Add(int64(len(rec.Content)))
	h.signal()
}

// addError records a skipped item.
func (h *Handle) addError(kind types.ErrorKind, path string, err error) {
	h.mu.Lock()
	h.errs = append(h.errs, types.ScanError{
		Kind:  kind,
		Path:  path,
		Error: err.Error(),
	})
	h.mu.Unlock()
}

// markDone sets the completion flag and fires one final wake so a
// parked consumer is guaranteed to observe it. Called exactly once by
// the engine, after the last push.
func (h *Handle) markDone() {
	h.done.Store(true)
	h.signal()
}

// signal wakes at least one parked consumer. Non-blocking: a pending
// signal absorbs further ones.
func (h *Handle) signal() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}
