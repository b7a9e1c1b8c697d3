package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// maxParallel bounds concurrent requests for multi-id commands.
const maxParallel = 4

type env struct {
	ctx    context.Context
	app    *app.App
	out    io.Writer
	errOut io.Writer
}

type LsCmd struct {
	Group bool `short:"g" help:"Group output by pending/done"`
}

func (c *LsCmd) Run(e *env) error {
	s := e.app.ListStore(e.ctx)
	defer s.Close()
	s.Wait()

	st := s.State()
	if st.Status() != store.ListLoaded {
		return stateErr(e.ctx, st.Error)
	}

	lines := ui.Summary(st.Items)
	lines = append(lines, "")
	if c.Group {
		lines = append(lines, ui.GroupedLines(st.Items)...)
	} else {
		lines = append(lines, ui.FlatLines(st.Items)...)
	}
	lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
	fmt.Fprintln(e.out, ui.Panel(lines))
	return nil
}

type ShowCmd struct {
	ID int `arg:"" help:"Todo id"`
}

func (c *ShowCmd) Run(e *env) error {
	s := e.app.DetailStore(e.ctx, c.ID)
	defer s.Close()
	s.Wait()

	st := s.State()
	if st.Item == nil {
		return stateErr(e.ctx, st.Error)
	}
	fmt.Fprintln(e.out, ui.Panel(ui.DetailLines(*st.Item)))
	return nil
}

type AddCmd struct {
	Title []string `arg:"" help:"Title words"`
}

func (c *AddCmd) Run(e *env) error {
	s := e.app.CreateStore(e.ctx)
	defer s.Close()

	s.UpdateTitle(strings.Join(c.Title, " "))
	s.Submit()
	s.Wait()

	select {
	case eff := <-s.Effects():
		if created, ok := eff.(store.CreateSuccess); ok {
			ui.OK(e.out, fmt.Sprintf("added #%d %s", created.Todo.ID, created.Todo.Title))
			return nil
		}
	default:
	}
	st := s.State()
	if st.Error == store.EmptyTitleMessage {
		return usageError{msg: "add: " + st.Error}
	}
	return stateErr(e.ctx, st.Error)
}

type DoneCmd struct {
	IDs []int `arg:"" name:"id" help:"Todo ids"`
}

func (c *DoneCmd) Run(e *env) error {
	return e.each(c.IDs, func(ctx context.Context, id int) (string, error) {
		s := e.app.DetailStore(ctx, id)
		defer s.Close()
		s.Wait()
		if st := s.State(); st.Item == nil {
			return "", stateErr(ctx, st.Error)
		}

		s.ToggleComplete()
		s.Wait()
		st := s.State()
		if st.Error != "" {
			return "", errors.New(st.Error)
		}
		verb := "reopened"
		if st.Item.Completed {
			verb = "completed"
		}
		return fmt.Sprintf("%s #%d %s", verb, id, st.Item.Title), nil
	})
}

type RmCmd struct {
	IDs []int `arg:"" name:"id" help:"Todo ids"`
}

func (c *RmCmd) Run(e *env) error {
	return e.each(c.IDs, func(ctx context.Context, id int) (string, error) {
		s := e.app.DetailStore(ctx, id)
		defer s.Close()
		s.Wait()
		title := ""
		if st := s.State(); st.Item != nil {
			title = " " + st.Item.Title
		}

		s.Delete()
		s.Wait()
		select {
		case eff := <-s.Effects():
			if _, ok := eff.(store.DeleteSuccess); ok {
				return fmt.Sprintf("removed #%d%s", id, title), nil
			}
		default:
		}
		return "", stateErr(ctx, s.State().Error)
	})
}

type TuiCmd struct{}

func (c *TuiCmd) Run(e *env) error {
	return tui.Run(e.ctx, e.app)
}

// each runs fn for every id with bounded parallelism and reports results
// in argument order.
func (e *env) each(ids []int, fn func(context.Context, int) (string, error)) error {
	msgs := make([]string, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i, id := range ids {
		g.Go(func() error {
			msgs[i], errs[i] = fn(e.ctx, id)
			return errs[i]
		})
	}
	_ = g.Wait()

	failed := 0
	for i, id := range ids {
		if errs[i] != nil {
			failed++
			ui.Fail(e.errOut, fmt.Sprintf("#%d: %v", id, errs[i]))
			continue
		}
		ui.OK(e.out, msgs[i])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d failed", failed, len(ids))
	}
	return nil
}

// stateErr turns a store's error message into an error. An empty message
// means the action was canceled.
func stateErr(ctx context.Context, msg string) error {
	if msg != "" {
		return errors.New(msg)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("no response")
}
