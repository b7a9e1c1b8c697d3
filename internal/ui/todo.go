package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

const maxTitle = 80

// Header is the "Todos ✔ 3 • 2 Total 5" line shown above lists.
func Header(todos []model.Todo) string {
	t := Current()
	d, p := model.Stats(todos)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)
}

// Summary is the header plus progress bar, ready to go into a Panel.
func Summary(todos []model.Todo) []string {
	d, _ := model.Stats(todos)
	return []string{
		Header(todos),
		Current().Muted.Render(ProgressBar(d, len(todos), 28)),
	}
}

// TodoLine renders one todo prefixed by its id.
func TodoLine(todo model.Todo) string {
	t := Current()
	box, title := t.Muted.Render(t.BoxUnchecked), Truncate(todo.Title, maxTitle)
	if todo.Completed {
		box, title = t.Success.Render(t.BoxChecked), t.Done.Render(title)
	}
	return fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%4d", todo.ID)), box, title)
}

// FlatLines renders todos in server order.
func FlatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{Current().Muted.Render("no todos")}
	}
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, TodoLine(todo))
	}
	return out
}

// GroupedLines renders pending todos first, then done ones.
func GroupedLines(todos []model.Todo) []string {
	var pend, done []model.Todo
	for _, todo := range todos {
		if todo.Completed {
			done = append(done, todo)
		} else {
			pend = append(pend, todo)
		}
	}
	t := Current()
	section := func(name string, items []model.Todo) []string {
		lines := []string{t.Accent.Render(name)}
		if len(items) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, FlatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

// DetailLines renders every field of one todo.
func DetailLines(todo model.Todo) []string {
	t := Current()
	status := t.Pending.Render(t.SymPending + " pending")
	if todo.Completed {
		status = t.Success.Render(t.SymDone + " done")
	}
	return []string{
		t.Title.Render(todo.Title),
		"",
		fmt.Sprintf("%s %d", t.Muted.Render("ID:     "), todo.ID),
		fmt.Sprintf("%s %d", t.Muted.Render("User:   "), todo.UserID),
		fmt.Sprintf("%s %s", t.Muted.Render("Status: "), status),
	}
}

// Truncate shortens s to at most n runes, ending in "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
