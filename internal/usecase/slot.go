package usecase

import (
	"sync"

	"marketplace/internal/domain/entity"
)

// Slot is one remote resource mirror plus its fetch status. Err holds the
// last failure and is cleared by the next successful fetch.
type Slot[T any] struct {
	Data   T
	Status entity.Status
	Err    error
}

func newSlot[T any]() Slot[T] {
	return Slot[T]{Status: entity.StatusIdle}
}

// tracked guards a Slot against out-of-order responses: only the most
// recently started fetch may write its result.
type tracked[T any] struct {
	slot Slot[T]
	seq  uint64
}

func (t *tracked[T]) begin() uint64 {
	t.seq++
	t.slot.Status = entity.StatusPending
	return t.seq
}

// finish applies a fetch result. Failures keep the previous Data.
func (t *tracked[T]) finish(seq uint64, data T, err error) bool {
	if seq != t.seq {
		return false
	}
	if err != nil {
		t.slot.Status = entity.StatusFailed
		t.slot.Err = err
		return true
	}
	t.slot.Data = data
	t.slot.Status = entity.StatusReady
	t.slot.Err = nil
	return true
}

// hub fans state snapshots out to subscribers. Callbacks run on the
// goroutine that changed the state, outside the store lock.
type hub[S any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(S)
}

func (h *hub[S]) subscribe(fn func(S)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = make(map[int]func(S))
	}
	id := h.next
	h.next++
	h.subs[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

func (h *hub[S]) publish(state S) {
	h.mu.Lock()
	fns := make([]func(S), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
