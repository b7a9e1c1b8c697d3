package ui

import (
	"fmt"
	"io"
)

func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// Toast renders a one-line notice for the TUI footer.
func Toast(msg string, isError bool) string {
	t := Current()
	if isError {
		return t.Error.Render(t.SymFail + " " + msg)
	}
	return t.Success.Render(t.SymOK + " " + msg)
}
