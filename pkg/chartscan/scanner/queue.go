package scanner

import "sync"

// dirQueue is the pending-directory work queue. It is unbounded and
// multi-producer/multi-consumer: any worker may push subdirectories it
// discovers while other workers are still listing.
//
// Traversal is complete exactly when the queue is empty and no popped
// directory is still being processed. The outstanding counter tracks
// directories pushed but not yet fully processed, so pop can tell
// "momentarily empty" apart from "finished".
type dirQueue struct {
	mu          sync.Mutex
	cond        *sync.Cond
	items       []string
	outstanding int
	interrupted bool
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues dir and records it as outstanding work.
func (q *dirQueue) push(dir string) {
	q.mu.Lock()
	q.items = append(q.items, dir)
	q.outstanding++
	q.mu.Unlock()
	q.cond.Signal()
}

// pop returns the next pending directory. It blocks while the queue is
// momentarily empty but other workers still hold outstanding
// directories that may yield more. ok=false means traversal is
// finished or the scan was interrupted.
func (q *dirQueue) pop() (dir string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.outstanding == 0 || q.interrupted {
			return "", false
		}
		q.cond.Wait()
	}
	if q.interrupted {
		return "", false
	}
	dir = q.items[0]
	q.items = q.items[1:]
	return dir, true
}

// done marks one previously popped directory as fully processed,
// including the reads and hashes of its matching files.
func (q *dirQueue) done() {
	q.mu.Lock()
	q.outstanding--
	finished := q.outstanding == 0
	q.mu.Unlock()
	if finished {
		q.cond.Broadcast()
	}
}

// interrupt wakes every blocked pop and makes all future pops report
// completion. Used for cancellation.
func (q *dirQueue) interrupt() {
	q.mu.Lock()
	q.interrupted = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
