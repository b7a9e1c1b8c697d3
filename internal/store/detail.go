package store

import (
	"context"
	"log/slog"

	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

// DetailState is an immutable snapshot of the detail screen. Item is nil
// until the first successful load and must be treated as read-only.
type DetailState struct {
	Item       *model.Todo
	IsLoading  bool
	IsDeleting bool
	Error      string
}

// DetailEffect is a one-shot event emitted by DetailStore.
type DetailEffect interface{ detailEffect() }

// DeleteSuccess tells the consumer to leave the screen.
type DeleteSuccess struct{ ID int }

func (DeleteSuccess) detailEffect() {}

// DetailStore drives the detail screen of one todo. The id is fixed for
// the store's lifetime.
type DetailStore struct {
	todoID  int
	repo    Repository
	logger  *slog.Logger
	scope   *scope
	state   *StateCell[DetailState]
	effects *EffectQueue[DetailEffect]
}

// NewDetailStore creates the store for todoID and starts loading it.
func NewDetailStore(repo Repository, todoID int, opts ...Option) *DetailStore {
	o := buildOptions(opts)
	s := &DetailStore{
		todoID:  todoID,
		repo:    repo,
		logger:  o.logger.With(logfields.Store("detail"), logfields.TodoID(todoID)),
		scope:   newScope(o.ctx),
		state:   NewStateCell(DetailState{}),
		effects: newEffectQueue[DetailEffect](o.effectBuffer),
	}
	s.Load()
	return s
}

// TodoID returns the id the store is bound to.
func (s *DetailStore) TodoID() int { return s.todoID }

func (s *DetailStore) State() DetailState                      { return s.state.Get() }
func (s *DetailStore) Subscribe() (<-chan DetailState, func()) { return s.state.Subscribe() }
func (s *DetailStore) Effects() <-chan DetailEffect            { return s.effects.C() }
func (s *DetailStore) Wait()                                   { s.scope.wait() }

// Close discards in-flight actions and releases the store.
func (s *DetailStore) Close() {
	s.state.Close()
	if s.scope.close() {
		s.effects.close()
	}
}

// Load fetches the todo. A failure keeps any previously loaded item.
func (s *DetailStore) Load() {
	s.scope.launch(func(ctx context.Context) {
		s.state.Update(func(st DetailState) DetailState {
			st.IsLoading = true
			return st
		})

		res := s.repo.GetTodo(ctx, s.todoID)
		if discard(ctx, res) {
			return
		}
		res.Match(func(todo model.Todo) {
			s.state.Update(func(st DetailState) DetailState {
				st.Item = &todo
				st.IsLoading = false
				st.Error = ""
				return st
			})
		}, func(f *result.Failure) {
			s.fail("load", f.Message(), f, func(st *DetailState) { st.IsLoading = false })
		})
	})
}

// ToggleComplete re-fetches the todo, flips it and saves it. It does
// nothing until an item has been loaded.
func (s *DetailStore) ToggleComplete() {
	s.scope.launch(func(ctx context.Context) {
		s.scope.withEntity(ctx, s.todoID, func() {
			if s.state.Get().Item == nil {
				return
			}

			current := s.repo.GetTodo(ctx, s.todoID)
			if discard(ctx, current) {
				return
			}
			if current.IsFailure() {
				f := current.Failure()
				s.fail("toggle", "Failed to fetch todo: "+f.Message(), f, nil)
				return
			}

			res := s.repo.UpdateTodo(ctx, current.Value().Toggled())
			if discard(ctx, res) {
				return
			}
			res.Match(func(saved model.Todo) {
				s.state.Update(func(st DetailState) DetailState {
					st.Item = &saved
					return st
				})
			}, func(f *result.Failure) {
				s.fail("toggle", f.Message(), f, nil)
			})
		})
	})
}

// Delete removes the todo and emits DeleteSuccess. Navigation is left to
// the consumer; IsDeleting stays set on success.
func (s *DetailStore) Delete() {
	s.scope.launch(func(ctx context.Context) {
		s.state.Update(func(st DetailState) DetailState {
			st.IsDeleting = true
			return st
		})
		s.scope.withEntity(ctx, s.todoID, func() {
			res := s.repo.DeleteTodo(ctx, s.todoID)
			if discard(ctx, res) {
				return
			}
			res.Match(func(result.Unit) {
				s.effects.send(ctx, DeleteSuccess{ID: s.todoID})
			}, func(f *result.Failure) {
				s.fail("delete", f.Message(), f, func(st *DetailState) { st.IsDeleting = false })
			})
		})
	})
}

// ClearError resets the error message.
func (s *DetailStore) ClearError() {
	s.state.Update(func(st DetailState) DetailState {
		st.Error = ""
		return st
	})
}

func (s *DetailStore) fail(op, msg string, f *result.Failure, mutate func(*DetailState)) {
	s.logger.Debug("detail action failed", logfields.Operation(op), logfields.Error(f))
	s.state.Update(func(st DetailState) DetailState {
		if mutate != nil {
			mutate(&st)
		}
		st.Error = msg
		return st
	})
}
