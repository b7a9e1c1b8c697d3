package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

// fakeRepo answers from function fields and counts calls.
type fakeRepo struct {
	mu      sync.Mutex
	calls   map[string]int
	updates []model.Todo
	creates []model.Todo
	deletes []int

	list   func(ctx context.Context) result.Result[[]model.Todo]
	get    func(ctx context.Context, id int) result.Result[model.Todo]
	create func(ctx context.Context, draft model.Todo) result.Result[model.Todo]
	update func(ctx context.Context, todo model.Todo) result.Result[model.Todo]
	delete func(ctx context.Context, id int) result.Result[result.Unit]
}

func newFakeRepo(todos ...model.Todo) *fakeRepo {
	f := &fakeRepo{calls: map[string]int{}}
	f.list = func(context.Context) result.Result[[]model.Todo] {
		return result.Success(append([]model.Todo(nil), todos...))
	}
	f.get = func(_ context.Context, id int) result.Result[model.Todo] {
		for _, t := range todos {
			if t.ID == id {
				return result.Success(t)
			}
		}
		return result.Fail[model.Todo](result.NotFound())
	}
	f.create = func(_ context.Context, draft model.Todo) result.Result[model.Todo] {
		draft.ID = 42
		return result.Success(draft)
	}
	f.update = func(_ context.Context, todo model.Todo) result.Result[model.Todo] {
		return result.Success(todo)
	}
	f.delete = func(context.Context, int) result.Result[result.Unit] {
		return result.Success(result.Unit{})
	}
	return f
}

func (f *fakeRepo) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRepo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRepo) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeRepo) ListTodos(ctx context.Context) result.Result[[]model.Todo] {
	f.record("list")
	return f.list(ctx)
}

func (f *fakeRepo) GetTodo(ctx context.Context, id int) result.Result[model.Todo] {
	f.record("get")
	return f.get(ctx, id)
}

func (f *fakeRepo) CreateTodo(ctx context.Context, draft model.Todo) result.Result[model.Todo] {
	f.record("create")
	f.mu.Lock()
	f.creates = append(f.creates, draft)
	f.mu.Unlock()
	return f.create(ctx, draft)
}

func (f *fakeRepo) UpdateTodo(ctx context.Context, todo model.Todo) result.Result[model.Todo] {
	f.record("update")
	f.mu.Lock()
	f.updates = append(f.updates, todo)
	f.mu.Unlock()
	return f.update(ctx, todo)
}

func (f *fakeRepo) DeleteTodo(ctx context.Context, id int) result.Result[result.Unit] {
	f.record("delete")
	f.mu.Lock()
	f.deletes = append(f.deletes, id)
	f.mu.Unlock()
	return f.delete(ctx, id)
}

// drain returns every effect queued so far without blocking.
func drain[E any](ch <-chan E) []E {
	var out []E
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

// within fails the test if fn does not return in time.
func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("timed out after %s", d)
	}
}

// lockCount returns the number of ids with a live lock entry.
func (s *scope) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
