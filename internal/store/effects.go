package store

import "context"

const defaultEffectBuffer = 16

// EffectQueue delivers one-shot events to a single consumer. Each event is
// received at most once; a full queue blocks the sender instead of dropping.
type EffectQueue[E any] struct {
	ch chan E
}

func newEffectQueue[E any](size int) *EffectQueue[E] {
	if size < 0 {
		size = 0
	}
	return &EffectQueue[E]{ch: make(chan E, size)}
}

// C returns the receive side. It is closed when the owning store closes.
func (q *EffectQueue[E]) C() <-chan E { return q.ch }

// send blocks until the event is queued or ctx is done.
func (q *EffectQueue[E]) send(ctx context.Context, e E) bool {
	select {
	case q.ch <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// close must only be called once every sender has returned.
func (q *EffectQueue[E]) close() { close(q.ch) }
