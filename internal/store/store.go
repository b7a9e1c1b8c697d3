// Package store holds the view state for the list, detail and create
// screens. Each store is a single logical actor: it owns one StateCell,
// one EffectQueue, and the goroutines its actions launch. Stores share no
// mutable state; each one fetches its own copy of server truth.
package store

import (
	"context"
	"log/slog"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

// Repository is what the stores need from the todo repository.
type Repository interface {
	ListTodos(ctx context.Context) result.Result[[]model.Todo]
	GetTodo(ctx context.Context, id int) result.Result[model.Todo]
	CreateTodo(ctx context.Context, draft model.Todo) result.Result[model.Todo]
	UpdateTodo(ctx context.Context, todo model.Todo) result.Result[model.Todo]
	DeleteTodo(ctx context.Context, id int) result.Result[result.Unit]
}

// Option configures a store.
type Option func(*options)

type options struct {
	ctx          context.Context
	logger       *slog.Logger
	effectBuffer int
}

// WithContext sets the parent context of the store's scope.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the logger used for failed actions.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEffectBuffer sets how many undelivered effects may queue up before
// actions block.
func WithEffectBuffer(n int) Option {
	return func(o *options) { o.effectBuffer = n }
}

func buildOptions(opts []Option) options {
	o := options{
		ctx:          context.Background(),
		logger:       slog.Default(),
		effectBuffer: defaultEffectBuffer,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// replaceByID returns a new slice with the entry for id swapped for todo.
func replaceByID(todos []model.Todo, id int, todo model.Todo) []model.Todo {
	out := make([]model.Todo, len(todos))
	for i, t := range todos {
		if t.ID == id {
			out[i] = todo
		} else {
			out[i] = t
		}
	}
	return out
}

// removeByID returns a new slice without the entries for id.
func removeByID(todos []model.Todo, id int) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
