package store

import "sync"

// StateCell holds the latest immutable snapshot of a store's state.
// Update serializes read-modify-write; subscribers get latest-value
// delivery and never block the writer.
type StateCell[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
	closed bool
}

// NewStateCell creates a cell holding initial.
func NewStateCell[T any](initial T) *StateCell[T] {
	return &StateCell[T]{value: initial, subs: make(map[int]chan T)}
}

// Get returns the current snapshot.
func (c *StateCell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Update replaces the snapshot with fn(current). fn runs under the cell
// lock and must not call back into the cell. It reports false, without
// calling fn, once the cell is closed.
func (c *StateCell[T]) Update(fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.value = fn(c.value)
	for _, ch := range c.subs {
		offer(ch, c.value)
	}
	return true
}

// Subscribe returns a channel that always holds the most recent snapshot
// not yet received, starting with the current one, and a func to stop.
// The channel is closed when the cell closes or cancel is called.
func (c *StateCell[T]) Subscribe() (<-chan T, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan T, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.value

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops further updates and closes every subscription.
func (c *StateCell[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// offer replaces any unread value in ch with v. Callers hold the cell lock,
// so there is never a competing sender.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
