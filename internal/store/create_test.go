package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/result"
)

func TestCreateBlankTitleSkipsNetwork(t *testing.T) {
	repo := newFakeRepo()
	s := NewCreateStore(repo)
	defer s.Close()

	s.UpdateTitle("   ")
	s.Submit()
	s.Wait()

	assert.Equal(t, 0, repo.total())
	assert.Equal(t, EmptyTitleMessage, s.State().Error)
	assert.False(t, s.State().IsCreating)
}

func TestCreateUpdateTitleIsVerbatim(t *testing.T) {
	s := NewCreateStore(newFakeRepo())
	defer s.Close()

	s.UpdateTitle("  padded  ")

	assert.Equal(t, "  padded  ", s.State().Title)
}

func TestCreateSubmitSendsTrimmedDraft(t *testing.T) {
	repo := newFakeRepo()
	s := NewCreateStore(repo)
	defer s.Close()

	s.UpdateTitle("  x ")
	s.Submit()
	s.Wait()

	require.Len(t, repo.creates, 1)
	assert.Equal(t, model.Todo{Title: "x"}, repo.creates[0])
	assert.Equal(t, []CreateEffect{CreateSuccess{Todo: model.Todo{ID: 42, Title: "x"}}}, drain(s.Effects()))
	assert.Empty(t, s.State().Error)
	assert.True(t, s.State().IsCreating)
}

func TestCreateFailureClearsCreating(t *testing.T) {
	repo := newFakeRepo()
	repo.create = func(context.Context, model.Todo) result.Result[model.Todo] {
		return result.Fail[model.Todo](result.Validation("duplicate title"))
	}
	s := NewCreateStore(repo)
	defer s.Close()

	s.UpdateTitle("Buy milk")
	s.Submit()
	s.Wait()

	st := s.State()
	assert.False(t, st.IsCreating)
	assert.Equal(t, "Validation failed: duplicate title", st.Error)
	assert.Equal(t, "Buy milk", st.Title)
	assert.Empty(t, drain(s.Effects()))

	s.ClearError()
	assert.Empty(t, s.State().Error)
}

func TestCreateIgnoresSubmitWhileCreating(t *testing.T) {
	repo := newFakeRepo()
	gate := make(chan struct{})
	repo.create = func(_ context.Context, draft model.Todo) result.Result[model.Todo] {
		<-gate
		draft.ID = 7
		return result.Success(draft)
	}
	s := NewCreateStore(repo)
	defer s.Close()

	s.UpdateTitle("once")
	s.Submit()
	s.Submit()
	close(gate)
	s.Wait()

	assert.Equal(t, 1, repo.count("create"))
	assert.Len(t, drain(s.Effects()), 1)
}

func TestCreateCloseDiscardsLateResults(t *testing.T) {
	repo := newFakeRepo()
	entered := make(chan struct{})
	repo.create = func(ctx context.Context, draft model.Todo) result.Result[model.Todo] {
		close(entered)
		<-ctx.Done()
		draft.ID = 9
		return result.Success(draft)
	}
	s := NewCreateStore(repo)

	s.UpdateTitle("Buy milk")
	s.Submit()
	<-entered

	within(t, time.Second, s.Close)

	_, open := <-s.Effects()
	assert.False(t, open, "effects channel is closed without events")
	assert.Empty(t, s.State().Error)

	s.UpdateTitle("again")
	s.Submit()
	s.Wait()
	assert.Equal(t, 1, repo.count("create"), "closed store launches nothing")
	assert.Equal(t, "Buy milk", s.State().Title)
}
