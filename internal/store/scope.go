package store

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// scope owns the goroutines a store launches. Closing it cancels their
// context and waits for them, so no result is applied after Close returns.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
	locks  map[int]*entityLock
}

// entityLock serializes work on one id. refs counts the holders and
// waiters so the entry can be dropped once nobody uses it.
type entityLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newScope(parent context.Context) *scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &scope{ctx: ctx, cancel: cancel, locks: make(map[int]*entityLock)}
}

// launch runs fn on its own goroutine. It reports false once closed.
func (s *scope) launch(fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
	return true
}

// withEntity runs fn while holding the lock for id, so operations on one
// todo apply in the order they acquired it. It returns without calling fn
// if ctx ends first.
func (s *scope) withEntity(ctx context.Context, id int, fn func()) {
	lock := s.acquireRef(id)
	defer s.releaseRef(id, lock)
	if err := lock.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer lock.sem.Release(1)
	fn()
}

func (s *scope) acquireRef(id int) *entityLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &entityLock{sem: semaphore.NewWeighted(1)}
		s.locks[id] = lock
	}
	lock.refs++
	return lock
}

func (s *scope) releaseRef(id int, lock *entityLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, id)
	}
}

func (s *scope) wait() { s.wg.Wait() }

// close cancels in-flight work and waits for it. It reports whether this
// call did the closing.
func (s *scope) close() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return true
}
