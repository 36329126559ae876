package ril

import "sync"

// Registrants is a list of handlers notified with a value of type T.
// Handlers run synchronously on the notifying goroutine, in registration
// order. It is safe for concurrent use.
type Registrants[T any] struct {
	mu       sync.Mutex
	next     int
	handlers []registrant[T]
}

type registrant[T any] struct {
	id int
	fn func(T)
}

// Register adds fn and returns a function removing it again. Calling the
// returned function more than once is harmless.
func (r *Registrants[T]) Register(fn func(T)) (unregister func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	id := r.next
	r.handlers = append(r.handlers, registrant[T]{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, h := range r.handlers {
			if h.id == id {
				r.handlers = append(r.handlers[:i:i], r.handlers[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every registered handler with v. The handler list is
// snapshotted first, so handlers may register or unregister freely.
func (r *Registrants[T]) Notify(v T) {
	r.mu.Lock()
	snapshot := make([]registrant[T], len(r.handlers))
	copy(snapshot, r.handlers)
	r.mu.Unlock()

	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of registered handlers.
func (r *Registrants[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}
