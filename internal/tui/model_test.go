package tui

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/api"
	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/mockapi"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

func newTestModel(t *testing.T) (Model, *mockapi.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ui.SetTheme("mono")

	backend := mockapi.NewStore([]api.TodoResponse{
		{UserID: 1, ID: 1, Title: "Buy milk"},
		{UserID: 1, ID: 2, Title: "Walk dog", Completed: true},
	})
	srv := httptest.NewServer(mockapi.NewRouter(backend, nil))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	m := New(context.Background(), app.New(cfg, app.WithLogOutput(io.Discard)))
	t.Cleanup(m.close)
	return m, backend
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded waits for the initial list load and feeds its snapshot.
func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m.home.store.Wait()
	m, _ = update(t, m, listStateMsg{src: m.home.store, state: m.home.store.State()})
	return m
}

func TestListScreenRendersTodos(t *testing.T) {
	m, _ := newTestModel(t)

	m = loaded(t, m)

	view := m.View()
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "[x] Walk dog")
	assert.Contains(t, view, "Total 2")
}

func TestToggleFromListShowsToast(t *testing.T) {
	m, backend := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, keyPress(" "))
	m.home.store.Wait()

	saved, err := backend.Get(1)
	require.NoError(t, err)
	assert.True(t, saved.Completed)

	// TodosLoaded from the initial load comes first.
	m, _ = update(t, m, m.home.listenEffects()())
	assert.Equal(t, "Loaded 2 todos", m.toast.text)
	m, _ = update(t, m, m.home.listenEffects()())
	assert.Equal(t, "Marked #1 done", m.toast.text)
	assert.False(t, m.toast.isErr)
}

func TestDetailDeleteReturnsToList(t *testing.T) {
	m, backend := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, keyPress("enter"))
	require.Equal(t, screenDetail, m.screen)
	m.detail.store.Wait()
	m, _ = update(t, m, detailStateMsg{src: m.detail.store, state: m.detail.store.State()})
	assert.Contains(t, m.View(), "Buy milk")
	assert.Contains(t, m.View(), "ID:")

	m, _ = update(t, m, keyPress("d"))
	m.detail.store.Wait()
	m, _ = update(t, m, m.detail.listenEffects()())

	assert.Equal(t, screenList, m.screen)
	assert.Nil(t, m.detail)
	assert.Equal(t, "Deleted #1", m.toast.text)
	_, err := backend.Get(1)
	assert.ErrorIs(t, err, mockapi.ErrNotFound)
}

func TestCreateFlow(t *testing.T) {
	m, backend := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, keyPress("a"))
	require.Equal(t, screenCreate, m.screen)
	m, _ = update(t, m, keyPress("Eggs"))
	assert.Equal(t, "Eggs", m.create.store.State().Title)

	m, _ = update(t, m, keyPress("enter"))
	m.create.store.Wait()
	m, _ = update(t, m, m.create.listenEffects()())

	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, "Created #3 Eggs", m.toast.text)
	assert.Len(t, backend.List(), 3)
}

func TestCreateBlankTitleShowsError(t *testing.T) {
	m, backend := newTestModel(t)
	m = loaded(t, m)

	m, _ = update(t, m, keyPress("a"))
	m, _ = update(t, m, keyPress("enter"))
	m, _ = update(t, m, createStateMsg{src: m.create.store, state: m.create.store.State()})

	assert.Equal(t, screenCreate, m.screen)
	assert.Contains(t, m.View(), store.EmptyTitleMessage)
	assert.Len(t, backend.List(), 2)
}

func TestCreateEscGoesBack(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, keyPress("a"))
	m, _ = update(t, m, keyPress("esc"))

	assert.Equal(t, screenList, m.screen)
	assert.Nil(t, m.create)
}

func TestStaleStoreMessagesAreIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	other := store.NewListStore(fakeEmpty{})
	t.Cleanup(other.Close)
	m, _ = update(t, m, listStateMsg{src: other, state: store.ListState{}})

	assert.Contains(t, m.View(), "Buy milk")
}

func TestToastExpiry(t *testing.T) {
	m, _ := newTestModel(t)

	cmd := m.notify("hello", false)
	require.NotNil(t, cmd)
	m, _ = update(t, m, toastExpiredMsg{seq: m.toast.seq - 1})
	assert.Equal(t, "hello", m.toast.text)
	m, _ = update(t, m, toastExpiredMsg{seq: m.toast.seq})
	assert.Empty(t, m.toast.text)
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, keyPress("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
