package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

type listScreen struct {
	store  *store.ListStore
	states <-chan store.ListState
	unsub  func()
	state  store.ListState
	list   list.Model
}

func newListScreen(ctx context.Context, stores Stores, keys keyMap) listScreen {
	s := stores.ListStore(ctx)
	states, unsub := s.Subscribe()

	l := list.New(nil, itemDelegate{}, 76, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp

	return listScreen{store: s, states: states, unsub: unsub, list: l}
}

func (s listScreen) listenState() tea.Cmd {
	src := s.store
	return listen(s.states, func(st store.ListState) tea.Msg { return listStateMsg{src: src, state: st} })
}

func (s listScreen) listenEffects() tea.Cmd {
	src := s.store
	return listen(s.store.Effects(), func(e store.ListEffect) tea.Msg { return listEffectMsg{src: src, effect: e} })
}

// selectedID reports the id under the cursor.
func (s listScreen) selectedID() (int, bool) {
	it, ok := s.list.SelectedItem().(todoItem)
	if !ok {
		return 0, false
	}
	return it.ID, true
}

func (s listScreen) view(spin string) string {
	s.list.Title = ui.Header(s.state.Items)
	if s.state.IsLoading {
		s.list.Title += " " + spin
	}
	return s.list.View()
}

func (s listScreen) close() {
	s.unsub()
	s.store.Close()
}

type detailScreen struct {
	store  *store.DetailStore
	states <-chan store.DetailState
	state  store.DetailState
}

func newDetailScreen(ctx context.Context, stores Stores, id int) *detailScreen {
	s := stores.DetailStore(ctx, id)
	states, _ := s.Subscribe()
	return &detailScreen{store: s, states: states}
}

func (d *detailScreen) listenState() tea.Cmd {
	src := d.store
	return listen(d.states, func(st store.DetailState) tea.Msg { return detailStateMsg{src: src, state: st} })
}

func (d *detailScreen) listenEffects() tea.Cmd {
	src := d.store
	return listen(d.store.Effects(), func(e store.DetailEffect) tea.Msg { return detailEffectMsg{src: src, effect: e} })
}

func (d *detailScreen) view(spin string) []string {
	t := ui.Current()
	st := d.state
	var lines []string
	switch {
	case st.Item != nil:
		lines = ui.DetailLines(*st.Item)
	case st.IsLoading:
		lines = []string{fmt.Sprintf("%s Loading todo #%d", spin, d.store.TodoID())}
	default:
		lines = []string{t.Muted.Render(fmt.Sprintf("Todo #%d", d.store.TodoID()))}
	}
	if st.IsDeleting {
		lines = append(lines, "", spin+" Deleting...")
	}
	if st.Error != "" {
		lines = append(lines, "", ui.Toast(st.Error, true))
	}
	return lines
}

type createScreen struct {
	store  *store.CreateStore
	states <-chan store.CreateState
	state  store.CreateState
	input  textinput.Model
}

func newCreateScreen(ctx context.Context, stores Stores) *createScreen {
	s := stores.CreateStore(ctx)
	states, _ := s.Subscribe()
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200
	return &createScreen{store: s, states: states, input: ti}
}

func (c *createScreen) listenState() tea.Cmd {
	src := c.store
	return listen(c.states, func(st store.CreateState) tea.Msg { return createStateMsg{src: src, state: st} })
}

func (c *createScreen) listenEffects() tea.Cmd {
	src := c.store
	return listen(c.store.Effects(), func(e store.CreateEffect) tea.Msg { return createEffectMsg{src: src, effect: e} })
}

func (c *createScreen) view(spin string) []string {
	t := ui.Current()
	lines := []string{t.Title.Render("Add new todo"), "", c.input.View()}
	if c.state.IsCreating {
		lines = append(lines, "", spin+" Creating...")
	}
	if c.state.Error != "" {
		lines = append(lines, "", ui.Toast(c.state.Error, true))
	}
	return lines
}
