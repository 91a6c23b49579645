package forwarder

import (
	"sync"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
)

// dropOldestQueue is a bounded, multi-producer single-consumer queue of
// documents awaiting forward. When full, the oldest queued document is
// discarded to make room for the new one rather than blocking the caller
// (§4.5 "forwarding must never back-pressure the action that produced the
// record"). Every drop is reported to a ProcessStats so queue pressure is
// observable instead of silent.
type dropOldestQueue struct {
	mu       sync.Mutex
	notEmpty chan struct{}
	items    []*actionlog.ActionDocument
	capacity int
}

func newDropOldestQueue(capacity int) *dropOldestQueue {
	if capacity <= 0 {
		capacity = 1
	}
	return &dropOldestQueue{
		notEmpty: make(chan struct{}, 1),
		items:    make([]*actionlog.ActionDocument, 0, capacity),
		capacity: capacity,
	}
}

// push appends doc, dropping the oldest queued document first if the
// queue is already at capacity. Returns true when a document was dropped.
func (q *dropOldestQueue) push(doc *actionlog.ActionDocument) (dropped bool) {
	q.mu.Lock()
	if len(q.items) >= q.capacity {
		q.items = q.items[1:]
		dropped = true
	}
	q.items = append(q.items, doc)
	q.mu.Unlock()

	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
	return dropped
}

// drain removes and returns every document currently queued. It never
// blocks; callers wait on notifications via wait().
func (q *dropOldestQueue) drain() []*actionlog.ActionDocument {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = make([]*actionlog.ActionDocument, 0, q.capacity)
	return out
}

// wait returns a channel that receives a value after a push. At most one
// notification is pending at a time; pushes made while one is pending do
// not add another.
func (q *dropOldestQueue) wait() <-chan struct{} {
	return q.notEmpty
}
