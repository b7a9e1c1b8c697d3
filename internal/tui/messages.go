package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/store"
)

const toastTTL = 3 * time.Second

// Messages carry the store they came from so that output of a store that
// has since been replaced is ignored.
type (
	listStateMsg struct {
		src   *store.ListStore
		state store.ListState
	}
	listEffectMsg struct {
		src    *store.ListStore
		effect store.ListEffect
	}
	detailStateMsg struct {
		src   *store.DetailStore
		state store.DetailState
	}
	detailEffectMsg struct {
		src    *store.DetailStore
		effect store.DetailEffect
	}
	createStateMsg struct {
		src   *store.CreateStore
		state store.CreateState
	}
	createEffectMsg struct {
		src    *store.CreateStore
		effect store.CreateEffect
	}
	toastExpiredMsg struct{ seq int }
)

// listen waits for the next value on ch. A closed channel ends the loop.
func listen[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(v)
	}
}

func expireToast(seq int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}
