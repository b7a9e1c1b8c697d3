package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// TodoRequest is the body sent on create and update.
type TodoRequest struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TodoResponse is the todo shape returned by the server.
type TodoResponse struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON rejects a todo that lacks any of its four fields. Unknown
// fields are ignored.
func (r *TodoResponse) UnmarshalJSON(b []byte) error {
	var wire struct {
		UserID    *int    `json:"userId"`
		ID        *int    `json:"id"`
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	var missing []string
	if wire.UserID == nil {
		missing = append(missing, "userId")
	}
	if wire.ID == nil {
		missing = append(missing, "id")
	}
	if wire.Title == nil {
		missing = append(missing, "title")
	}
	if wire.Completed == nil {
		missing = append(missing, "completed")
	}
	if len(missing) > 0 {
		return fmt.Errorf("todo missing %s", strings.Join(missing, ", "))
	}
	*r = TodoResponse{UserID: *wire.UserID, ID: *wire.ID, Title: *wire.Title, Completed: *wire.Completed}
	return nil
}

// ToRequest maps a domain todo to its wire request.
func ToRequest(t model.Todo) TodoRequest {
	return TodoRequest{
		UserID:    t.UserID,
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}
}

// ToModel maps a wire response to a domain todo.
func (r TodoResponse) ToModel() model.Todo {
	return model.Todo{
		UserID:    r.UserID,
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
	}
}

// ToModels maps a list response, preserving order.
func ToModels(rs []TodoResponse) []model.Todo {
	out := make([]model.Todo, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ToModel())
	}
	return out
}
