// Package repository exposes todo CRUD over the remote API as
// result.Result values.
package repository

import (
	"context"
	"net/http"

	"github.com/Makepad-fr/tada/internal/api"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
	"github.com/Makepad-fr/tada/internal/transport"
)

// API is the subset of api.Client the repository needs.
type API interface {
	ListTodos(ctx context.Context) (*http.Response, error)
	GetTodo(ctx context.Context, id int) (*http.Response, error)
	CreateTodo(ctx context.Context, body api.TodoRequest) (*http.Response, error)
	UpdateTodo(ctx context.Context, id int, body api.TodoRequest) (*http.Response, error)
	DeleteTodo(ctx context.Context, id int) (*http.Response, error)
}

// Operation names used for metrics and logs.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Repository performs exactly one attempt per call; retry policy belongs
// to the caller.
type Repository struct {
	api        API
	normalizer *transport.Normalizer
}

// New builds a Repository. A nil normalizer gets the defaults.
func New(client API, n *transport.Normalizer) *Repository {
	if n == nil {
		n = transport.NewNormalizer()
	}
	return &Repository{api: client, normalizer: n}
}

// ListTodos fetches every todo in server order.
func (r *Repository) ListTodos(ctx context.Context) result.Result[[]model.Todo] {
	res := transport.Execute[[]api.TodoResponse](ctx, r.normalizer, OpList, r.api.ListTodos)
	return result.Map(res, api.ToModels)
}

// GetTodo fetches one todo; an unknown id is a KindNotFound failure.
func (r *Repository) GetTodo(ctx context.Context, id int) result.Result[model.Todo] {
	res := transport.Execute[api.TodoResponse](ctx, r.normalizer, OpGet, func(ctx context.Context) (*http.Response, error) {
		return r.api.GetTodo(ctx, id)
	})
	return result.Map(res, api.TodoResponse.ToModel)
}

// CreateTodo posts a draft. The returned todo carries the server id.
func (r *Repository) CreateTodo(ctx context.Context, draft model.Todo) result.Result[model.Todo] {
	body := api.ToRequest(draft)
	res := transport.Execute[api.TodoResponse](ctx, r.normalizer, OpCreate, func(ctx context.Context) (*http.Response, error) {
		return r.api.CreateTodo(ctx, body)
	})
	return result.Map(res, api.TodoResponse.ToModel)
}

// UpdateTodo replaces the whole todo identified by todo.ID.
func (r *Repository) UpdateTodo(ctx context.Context, todo model.Todo) result.Result[model.Todo] {
	body := api.ToRequest(todo)
	res := transport.Execute[api.TodoResponse](ctx, r.normalizer, OpUpdate, func(ctx context.Context) (*http.Response, error) {
		return r.api.UpdateTodo(ctx, todo.ID, body)
	})
	return result.Map(res, api.TodoResponse.ToModel)
}

// DeleteTodo removes a todo. Deleting an already deleted id surfaces
// whatever the server answers, typically KindNotFound.
func (r *Repository) DeleteTodo(ctx context.Context, id int) result.Result[result.Unit] {
	return transport.ExecuteEmpty(ctx, r.normalizer, OpDelete, func(ctx context.Context) (*http.Response, error) {
		return r.api.DeleteTodo(ctx, id)
	})
}
