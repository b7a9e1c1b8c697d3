package store

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

// ListStatus is the coarse phase of the list screen.
type ListStatus int

const (
	ListIdle ListStatus = iota
	ListLoading
	ListLoaded
	ListLoadedWithError
)

func (s ListStatus) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListLoadedWithError:
		return "loaded_with_error"
	default:
		return "idle"
	}
}

// ListState is an immutable snapshot of the list screen. Items is never
// modified after publication.
type ListState struct {
	Items     []model.Todo
	IsLoading bool
	Error     string
	loaded    bool
}

// Status derives the phase from the flags.
func (s ListState) Status() ListStatus {
	switch {
	case s.IsLoading:
		return ListLoading
	case s.Error != "":
		return ListLoadedWithError
	case s.loaded:
		return ListLoaded
	default:
		return ListIdle
	}
}

// ListEffect is a one-shot event emitted by ListStore.
type ListEffect interface{ listEffect() }

// TodosLoaded follows every successful load.
type TodosLoaded struct{ Count int }

// StatusChanged follows a confirmed toggle.
type StatusChanged struct {
	ID        int
	Completed bool
}

// Deleted follows a confirmed delete of an item that was on screen.
type Deleted struct {
	ID    int
	Title string
}

// ShowError asks the consumer for an ephemeral error notification.
type ShowError struct{ Message string }

func (TodosLoaded) listEffect()   {}
func (StatusChanged) listEffect() {}
func (Deleted) listEffect()       {}
func (ShowError) listEffect()     {}

// ListStore drives the list screen.
type ListStore struct {
	repo    Repository
	logger  *slog.Logger
	scope   *scope
	state   *StateCell[ListState]
	effects *EffectQueue[ListEffect]

	// loads numbers Load calls; only the newest may apply its result.
	loads atomic.Uint64
}

// NewListStore creates the store and starts the initial load.
func NewListStore(repo Repository, opts ...Option) *ListStore {
	o := buildOptions(opts)
	s := &ListStore{
		repo:    repo,
		logger:  o.logger.With(logfields.Store("list")),
		scope:   newScope(o.ctx),
		state:   NewStateCell(ListState{}),
		effects: newEffectQueue[ListEffect](o.effectBuffer),
	}
	s.Load()
	return s
}

// State returns the current snapshot.
func (s *ListStore) State() ListState { return s.state.Get() }

// Subscribe streams snapshots with latest-value semantics.
func (s *ListStore) Subscribe() (<-chan ListState, func()) { return s.state.Subscribe() }

// Effects returns the one-shot event channel.
func (s *ListStore) Effects() <-chan ListEffect { return s.effects.C() }

// Wait blocks until every launched action has finished.
func (s *ListStore) Wait() { s.scope.wait() }

// Close discards in-flight actions and releases the store. State updates
// stop before in-flight actions are canceled.
func (s *ListStore) Close() {
	s.state.Close()
	if s.scope.close() {
		s.effects.close()
	}
}

// Load fetches the list. On failure the previous items are kept. When
// loads overlap only the most recent one applies its result and clears
// IsLoading.
func (s *ListStore) Load() {
	gen := s.loads.Add(1)
	s.scope.launch(func(ctx context.Context) {
		s.applyLoad(gen, func(st *ListState) { st.IsLoading = true })

		res := s.repo.ListTodos(ctx)
		if discard(ctx, res) {
			return
		}
		res.Match(func(todos []model.Todo) {
			applied := s.applyLoad(gen, func(st *ListState) {
				st.Items = todos
				st.IsLoading = false
				st.Error = ""
				st.loaded = true
			})
			if applied {
				s.effects.send(ctx, TodosLoaded{Count: len(todos)})
			}
		}, func(f *result.Failure) {
			msg := f.Message()
			applied := s.applyLoad(gen, func(st *ListState) {
				st.IsLoading = false
				st.Error = msg
			})
			if !applied {
				s.logger.Debug("stale load dropped", logfields.Error(f))
				return
			}
			s.logger.Debug("list action failed", logfields.Operation("load"), logfields.Error(f))
			s.effects.send(ctx, ShowError{Message: msg})
		})
	})
}

// applyLoad runs mutate unless a newer load has started since gen. The
// check happens under the cell lock so a stale result never lands after
// a newer one.
func (s *ListStore) applyLoad(gen uint64, mutate func(*ListState)) bool {
	applied := false
	s.state.Update(func(st ListState) ListState {
		if s.loads.Load() != gen {
			return st
		}
		mutate(&st)
		applied = true
		return st
	})
	return applied
}

// ToggleComplete flips the completed flag of an item on screen. The item
// is re-fetched first and the list only changes once the server confirms.
func (s *ListStore) ToggleComplete(id int) {
	s.scope.launch(func(ctx context.Context) {
		s.scope.withEntity(ctx, id, func() {
			if model.IndexOf(s.state.Get().Items, id) < 0 {
				return
			}

			current := s.repo.GetTodo(ctx, id)
			if discard(ctx, current) {
				return
			}
			if current.IsFailure() {
				s.fail(ctx, "toggle", id, current.Failure())
				return
			}

			res := s.repo.UpdateTodo(ctx, current.Value().Toggled())
			if discard(ctx, res) {
				return
			}
			res.Match(func(saved model.Todo) {
				s.state.Update(func(st ListState) ListState {
					st.Items = replaceByID(st.Items, id, saved)
					return st
				})
				s.effects.send(ctx, StatusChanged{ID: id, Completed: saved.Completed})
			}, func(f *result.Failure) {
				s.fail(ctx, "toggle", id, f)
			})
		})
	})
}

// Delete removes a todo on the server, whether or not it is on screen,
// and drops it from the list once confirmed.
func (s *ListStore) Delete(id int) {
	s.scope.launch(func(ctx context.Context) {
		s.scope.withEntity(ctx, id, func() {
			var title string
			items := s.state.Get().Items
			idx := model.IndexOf(items, id)
			if idx >= 0 {
				title = items[idx].Title
			}

			res := s.repo.DeleteTodo(ctx, id)
			if discard(ctx, res) {
				return
			}
			res.Match(func(result.Unit) {
				s.state.Update(func(st ListState) ListState {
					st.Items = removeByID(st.Items, id)
					return st
				})
				if idx >= 0 {
					s.effects.send(ctx, Deleted{ID: id, Title: title})
				}
			}, func(f *result.Failure) {
				s.fail(ctx, "delete", id, f)
			})
		})
	})
}

// ClearError resets the error message and nothing else.
func (s *ListStore) ClearError() {
	s.state.Update(func(st ListState) ListState {
		st.Error = ""
		return st
	})
}

func (s *ListStore) fail(ctx context.Context, op string, id int, f *result.Failure) {
	s.logger.Debug("list action failed", logfields.Operation(op), logfields.TodoID(id), logfields.Error(f))
	msg := f.Message()
	s.state.Update(func(st ListState) ListState {
		st.Error = msg
		return st
	})
	s.effects.send(ctx, ShowError{Message: msg})
}

// discard reports whether a result must not be applied: the store was
// closed or the call was canceled.
func discard[T any](ctx context.Context, r result.Result[T]) bool {
	return ctx.Err() != nil || r.IsCanceled()
}
