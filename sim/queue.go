// Implements the WaitQueue, which holds acquisition requests waiting for a station.
// Requests are enqueued when every server at the station is busy.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of pending station grants.
// Each entry is the event that resumes the waiting order once a server frees up.
type WaitQueue struct {
	queue []Event // FIFO queue of grant continuations
}

// Enqueue adds a pending grant to the back of the wait queue.
func (wq *WaitQueue) Enqueue(ev Event) {
	if ev == nil {
		panic("Enqueue: ev must not be nil")
	}
	wq.queue = append(wq.queue, ev)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of pending grants in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Dequeue removes and returns the longest-waiting grant.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() Event {
	if len(wq.queue) == 0 {
		return nil
	}
	next := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return next
}
