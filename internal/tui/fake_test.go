package tui

import (
	"context"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

// fakeEmpty answers every call with an empty success.
type fakeEmpty struct{}

func (fakeEmpty) ListTodos(context.Context) result.Result[[]model.Todo] {
	return result.Success([]model.Todo{})
}

func (fakeEmpty) GetTodo(_ context.Context, id int) result.Result[model.Todo] {
	return result.Success(model.Todo{ID: id})
}

func (fakeEmpty) CreateTodo(_ context.Context, d model.Todo) result.Result[model.Todo] {
	return result.Success(d)
}

func (fakeEmpty) UpdateTodo(_ context.Context, t model.Todo) result.Result[model.Todo] {
	return result.Success(t)
}

func (fakeEmpty) DeleteTodo(context.Context, int) result.Result[result.Unit] {
	return result.Success(result.Unit{})
}
