// Package registry collects execution events from every instrument worker
// and the rejection pass into one sequence ordered by sequence key alone, so
// the drained report is identical regardless of goroutine scheduling.
package registry

import (
	"container/heap"
	"sync"

	"github.com/crocusx/crocus/pkg/core/order"
)

type Registry struct {
	mu sync.Mutex
	h  eventHeap
}

func New() *Registry {
	r := &Registry{}
	heap.Init(&r.h)
	return r
}

// Submit inserts one event. Safe for concurrent use; each insertion is atomic
// with respect to other submitters.
func (r *Registry) Submit(ev *order.Event) {
	r.mu.Lock()
	heap.Push(&r.h, ev)
	r.mu.Unlock()
}

// Len returns the number of events currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h.Len()
}

// DrainAscending removes and returns all events in ascending sequence-key
// order. Callers invoke it only after every producer has finished; the
// barrier lives with the dispatcher, not here.
func (r *Registry) DrainAscending() []*order.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*order.Event, 0, r.h.Len())
	for r.h.Len() > 0 {
		out = append(out, heap.Pop(&r.h).(*order.Event))
	}
	return out
}

// eventHeap implements heap.Interface keyed by sequence key (min on top).
// Use container/heap to manipulate it (Init, Push, Pop).
type eventHeap []*order.Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].Key.Less(h[j].Key) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*order.Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}
