// Package tui is the interactive terminal front end. Each screen renders
// the snapshots of one view store and forwards key presses to its actions.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Stores opens the view stores backing each screen.
type Stores interface {
	ListStore(ctx context.Context) *store.ListStore
	DetailStore(ctx context.Context, id int) *store.DetailStore
	CreateStore(ctx context.Context) *store.CreateStore
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenCreate
)

type toast struct {
	text  string
	isErr bool
	seq   int
}

// Model is the bubbletea model. The list screen lives for the whole
// program; detail and create screens are opened on top of it and closed
// when the user navigates back.
type Model struct {
	ctx    context.Context
	stores Stores
	keys   keyMap
	help   help.Model

	screen screen
	home   listScreen
	detail *detailScreen
	create *createScreen

	spinner spinner.Model
	toast   toast
	width   int
	height  int
}

// New opens the list screen, which starts loading immediately.
func New(ctx context.Context, stores Stores) Model {
	keys := newKeyMap()
	return Model{
		ctx:     ctx,
		stores:  stores,
		keys:    keys,
		help:    help.New(),
		home:    newListScreen(ctx, stores, keys),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   80,
		height:  24,
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, stores Stores) error {
	final, err := tea.NewProgram(New(ctx, stores), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if m, ok := final.(Model); ok {
		m.close()
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.home.listenState(), m.home.listenEffects(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.home.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		if msg.seq == m.toast.seq {
			m.toast.text = ""
		}
		return m, nil

	case listStateMsg:
		if msg.src != m.home.store {
			return m, nil
		}
		m.home.state = msg.state
		cmd := m.home.list.SetItems(toItems(msg.state.Items))
		return m, tea.Batch(cmd, m.home.listenState())

	case listEffectMsg:
		if msg.src != m.home.store {
			return m, nil
		}
		return m, tea.Batch(m.onListEffect(msg.effect), m.home.listenEffects())

	case detailStateMsg:
		if m.detail == nil || msg.src != m.detail.store {
			return m, nil
		}
		m.detail.state = msg.state
		return m, m.detail.listenState()

	case detailEffectMsg:
		if m.detail == nil || msg.src != m.detail.store {
			return m, nil
		}
		if del, ok := msg.effect.(store.DeleteSuccess); ok {
			m.closeDetail()
			m.home.store.Load()
			return m, m.notify(fmt.Sprintf("Deleted #%d", del.ID), false)
		}
		return m, m.detail.listenEffects()

	case createStateMsg:
		if m.create == nil || msg.src != m.create.store {
			return m, nil
		}
		m.create.state = msg.state
		return m, m.create.listenState()

	case createEffectMsg:
		if m.create == nil || msg.src != m.create.store {
			return m, nil
		}
		if created, ok := msg.effect.(store.CreateSuccess); ok {
			m.closeCreate()
			m.home.store.Load()
			return m, m.notify(fmt.Sprintf("Created #%d %s", created.Todo.ID, created.Todo.Title), false)
		}
		return m, m.create.listenEffects()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.close()
			return m, tea.Quit
		}
		switch m.screen {
		case screenDetail:
			return m.updateDetail(msg)
		case screenCreate:
			return m.updateCreate(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.screen == screenList {
		var cmd tea.Cmd
		m.home.list, cmd = m.home.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering every key belongs to the filter input.
	if m.home.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.home.list, cmd = m.home.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.home.selectedID(); ok {
			m.home.store.ToggleComplete(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.home.selectedID(); ok {
			m.home.store.Delete(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		id, ok := m.home.selectedID()
		if !ok {
			return m, nil
		}
		m.detail = newDetailScreen(m.ctx, m.stores, id)
		m.screen = screenDetail
		return m, tea.Batch(m.detail.listenState(), m.detail.listenEffects())
	case key.Matches(msg, m.keys.Add):
		m.create = newCreateScreen(m.ctx, m.stores)
		m.screen = screenCreate
		return m, tea.Batch(m.create.input.Focus(), m.create.listenState(), m.create.listenEffects())
	case key.Matches(msg, m.keys.Reload):
		m.home.store.Load()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.home.store.ClearError()
		return m, nil
	}

	var cmd tea.Cmd
	m.home.list, cmd = m.home.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.closeDetail()
		// Show whatever changed while the detail screen was open.
		m.home.store.Load()
	case key.Matches(msg, m.keys.Toggle):
		m.detail.store.ToggleComplete()
	case key.Matches(msg, m.keys.Delete):
		m.detail.store.Delete()
	case key.Matches(msg, m.keys.Clear):
		m.detail.store.ClearError()
	}
	return m, nil
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeCreate()
		return m, nil
	case tea.KeyEnter:
		m.create.store.Submit()
		return m, nil
	}
	var cmd tea.Cmd
	m.create.input, cmd = m.create.input.Update(msg)
	m.create.store.UpdateTitle(m.create.input.Value())
	return m, cmd
}

func (m *Model) onListEffect(e store.ListEffect) tea.Cmd {
	switch e := e.(type) {
	case store.TodosLoaded:
		return m.notify(fmt.Sprintf("Loaded %d todos", e.Count), false)
	case store.StatusChanged:
		state := "pending"
		if e.Completed {
			state = "done"
		}
		return m.notify(fmt.Sprintf("Marked #%d %s", e.ID, state), false)
	case store.Deleted:
		return m.notify("Deleted: "+e.Title, false)
	case store.ShowError:
		return m.notify(e.Message, true)
	}
	return nil
}

func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.toast.seq++
	m.toast.text = text
	m.toast.isErr = isErr
	return expireToast(m.toast.seq)
}

func (m *Model) closeDetail() {
	if m.detail != nil {
		m.detail.store.Close()
		m.detail = nil
	}
	m.screen = screenList
}

func (m *Model) closeCreate() {
	if m.create != nil {
		m.create.store.Close()
		m.create = nil
	}
	m.screen = screenList
}

func (m Model) close() {
	if m.detail != nil {
		m.detail.store.Close()
	}
	if m.create != nil {
		m.create.store.Close()
	}
	m.home.close()
}

func (m Model) View() string {
	spin := m.spinner.View()
	var lines []string
	switch m.screen {
	case screenDetail:
		lines = append(m.detail.view(spin), "", m.help.ShortHelpView(m.keys.detailHelp()))
	case screenCreate:
		lines = append(m.create.view(spin), "", m.help.ShortHelpView(m.keys.createHelp()))
	default:
		lines = []string{m.home.view(spin)}
	}
	if f := m.footer(); f != "" {
		lines = append(lines, f)
	}
	return ui.Panel(lines)
}

func (m Model) footer() string {
	if m.toast.text != "" {
		return ui.Toast(m.toast.text, m.toast.isErr)
	}
	if m.screen == screenList && m.home.state.Error != "" {
		return strings.Join([]string{
			ui.Toast(m.home.state.Error, true),
			ui.Current().Muted.Render("x to dismiss"),
		}, "  ")
	}
	return ""
}
