package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

// EmptyTitleMessage is the validation error for a blank draft.
const EmptyTitleMessage = "Please enter a title"

// CreateState is an immutable snapshot of the create screen.
type CreateState struct {
	Title      string
	IsCreating bool
	Error      string
}

// CreateEffect is a one-shot event emitted by CreateStore.
type CreateEffect interface{ createEffect() }

// CreateSuccess carries the todo as stored by the server.
type CreateSuccess struct{ Todo model.Todo }

func (CreateSuccess) createEffect() {}

// CreateStore drives the create screen.
type CreateStore struct {
	repo    Repository
	logger  *slog.Logger
	scope   *scope
	state   *StateCell[CreateState]
	effects *EffectQueue[CreateEffect]
}

// NewCreateStore creates an empty draft.
func NewCreateStore(repo Repository, opts ...Option) *CreateStore {
	o := buildOptions(opts)
	return &CreateStore{
		repo:    repo,
		logger:  o.logger.With(logfields.Store("create")),
		scope:   newScope(o.ctx),
		state:   NewStateCell(CreateState{}),
		effects: newEffectQueue[CreateEffect](o.effectBuffer),
	}
}

func (s *CreateStore) State() CreateState                      { return s.state.Get() }
func (s *CreateStore) Subscribe() (<-chan CreateState, func()) { return s.state.Subscribe() }
func (s *CreateStore) Effects() <-chan CreateEffect            { return s.effects.C() }
func (s *CreateStore) Wait()                                   { s.scope.wait() }

// Close discards an in-flight create and releases the store.
func (s *CreateStore) Close() {
	s.state.Close()
	if s.scope.close() {
		s.effects.close()
	}
}

// UpdateTitle stores the draft title verbatim.
func (s *CreateStore) UpdateTitle(text string) {
	s.state.Update(func(st CreateState) CreateState {
		st.Title = text
		return st
	})
}

// Submit validates the trimmed title and creates the todo. A blank title
// sets Error without any network call; a submit while one is in flight is
// ignored.
func (s *CreateStore) Submit() {
	var draft model.Todo
	start := false
	s.state.Update(func(st CreateState) CreateState {
		if st.IsCreating {
			return st
		}
		title := strings.TrimSpace(st.Title)
		if title == "" {
			st.Error = EmptyTitleMessage
			return st
		}
		st.IsCreating = true
		draft = model.Todo{UserID: 0, ID: 0, Title: title, Completed: false}
		start = true
		return st
	})
	if !start {
		return
	}

	s.scope.launch(func(ctx context.Context) {
		res := s.repo.CreateTodo(ctx, draft)
		if discard(ctx, res) {
			return
		}
		res.Match(func(created model.Todo) {
			s.effects.send(ctx, CreateSuccess{Todo: created})
		}, func(f *result.Failure) {
			s.logger.Debug("create failed", logfields.Error(f))
			s.state.Update(func(st CreateState) CreateState {
				st.IsCreating = false
				st.Error = f.Message()
				return st
			})
		})
	})
}

// ClearError resets the error message.
func (s *CreateStore) ClearError() {
	s.state.Update(func(st CreateState) CreateState {
		st.Error = ""
		return st
	})
}
