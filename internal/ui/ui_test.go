package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tada/internal/model"
)

func useTheme(t *testing.T, name string) {
	t.Helper()
	prev := current
	SetTheme(name)
	t.Cleanup(func() { current = prev })
}

func TestNewThemeNames(t *testing.T) {
	assert.Equal(t, "neon", NewTheme(" NEON ").Name)
	assert.Equal(t, "mono", NewTheme("mono").Name)
	assert.Equal(t, "classic", NewTheme("solarized").Name)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "██░░░░░░  25%", ProgressBar(1, 4, 8))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 2))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmno", 10))
	assert.Equal(t, "ééé...", Truncate("éééééééé", 6))
}

func TestTodoLineMono(t *testing.T) {
	useTheme(t, "mono")

	assert.Equal(t, "   3 [x] Buy milk", TodoLine(model.Todo{ID: 3, Title: "Buy milk", Completed: true}))
	assert.Equal(t, "  12 [ ] Walk dog", TodoLine(model.Todo{ID: 12, Title: "Walk dog"}))
}

func TestGroupedLinesPendingFirst(t *testing.T) {
	useTheme(t, "mono")
	todos := []model.Todo{
		{ID: 1, Title: "a", Completed: true},
		{ID: 2, Title: "b"},
	}

	got := GroupedLines(todos)

	assert.Equal(t, []string{
		"Pending",
		"   2 [ ] b",
		"",
		"Done",
		"   1 [x] a",
	}, got)
}

func TestFlatLinesEmpty(t *testing.T) {
	useTheme(t, "mono")

	assert.Equal(t, []string{"no todos"}, FlatLines(nil))
	assert.Contains(t, GroupedLines(nil), "(none)")
}

func TestHeaderCounts(t *testing.T) {
	useTheme(t, "mono")
	todos := []model.Todo{{ID: 1, Completed: true}, {ID: 2}, {ID: 3}}

	assert.Equal(t, "Todos  x 1  - 2  Total 3", Header(todos))
}

func TestPanelMono(t *testing.T) {
	useTheme(t, "mono")

	out := Panel([]string{"ab", "c"})

	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"+----+", "| ab |", "| c  |", "+----+"}, lines)
}

func TestStatusWriters(t *testing.T) {
	useTheme(t, "mono")
	var buf bytes.Buffer

	OK(&buf, "added")
	Fail(&buf, "boom")

	assert.Equal(t, "ok added\nerror: boom\n", buf.String())
	assert.Equal(t, "error: nope", Toast("nope", true))
}
