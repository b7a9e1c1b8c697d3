package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Makepad-fr/tada/internal/api"
)

// ErrNotFound is returned for unknown ids.
var ErrNotFound = errors.New("todo not found")

// Store is the mock server's in-memory table. When loaded from a file it
// writes every mutation back. Single file, human-readable.
type Store struct {
	mu     sync.Mutex
	todos  []api.TodoResponse
	nextID int
	path   string
}

// NewStore seeds a store that never touches disk.
func NewStore(seed []api.TodoResponse) *Store {
	s := &Store{todos: append([]api.TodoResponse(nil), seed...)}
	for _, t := range seed {
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}
	return s
}

// LoadStore reads seed data from path. A missing file starts empty. With
// persist set, mutations are saved back to path.
func LoadStore(path string, persist bool) (*Store, error) {
	b, err := os.ReadFile(path)
	var seed []api.TodoResponse
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read file: %w", err)
	default:
		if err := json.Unmarshal(b, &seed); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	}
	s := NewStore(seed)
	if persist {
		s.path = path
	}
	return s, nil
}

func (s *Store) List() []api.TodoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.TodoResponse{}, s.todos...)
}

func (s *Store) Get(id int) (api.TodoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.todos[i], nil
	}
	return api.TodoResponse{}, ErrNotFound
}

// Create assigns the next id, ignoring the one in req.
func (s *Store) Create(req api.TodoRequest) (api.TodoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := api.TodoResponse(req)
	t.ID = s.nextID + 1
	next := append(append(make([]api.TodoResponse, 0, len(s.todos)+1), s.todos...), t)
	if err := s.commit(next); err != nil {
		return api.TodoResponse{}, err
	}
	s.nextID = t.ID
	return t, nil
}

// Update replaces the todo with the given id.
func (s *Store) Update(id int, req api.TodoRequest) (api.TodoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return api.TodoResponse{}, ErrNotFound
	}
	t := api.TodoResponse(req)
	t.ID = id
	next := append([]api.TodoResponse(nil), s.todos...)
	next[i] = t
	if err := s.commit(next); err != nil {
		return api.TodoResponse{}, err
	}
	return t, nil
}

func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	next := append(append(make([]api.TodoResponse, 0, len(s.todos)-1), s.todos[:i]...), s.todos[i+1:]...)
	return s.commit(next)
}

func (s *Store) index(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// commit saves todos and only then makes them current. It must be called
// with mu held.
func (s *Store) commit(todos []api.TodoResponse) error {
	if s.path != "" {
		b, err := json.MarshalIndent(todos, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		if err := os.WriteFile(s.path, b, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	}
	s.todos = todos
	return nil
}
