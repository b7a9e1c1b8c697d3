package model

// Todo is the domain model for a todo entry.
// Values are immutable by convention: use the With* helpers to derive a
// changed copy. ID 0 means the server has not assigned one yet.
type Todo struct {
	UserID    int
	ID        int
	Title     string
	Completed bool
}

// Toggled returns a copy with Completed flipped.
func (t Todo) Toggled() Todo {
	t.Completed = !t.Completed
	return t
}

// WithTitle returns a copy carrying the given title.
func (t Todo) WithTitle(title string) Todo {
	t.Title = title
	return t
}

// IsDraft reports whether the todo has not been assigned an id by the server.
func (t Todo) IsDraft() bool { return t.ID == 0 }

// Stats counts done and pending entries.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// IndexOf returns the position of the todo with the given id, or -1.
func IndexOf(todos []Todo, id int) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
