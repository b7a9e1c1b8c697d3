package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options tune where output goes and how the app is built.
type Options struct {
	Context    context.Context
	Out, Err   io.Writer
	AppOptions []app.Option
}

// Root is the command line grammar. Global flags apply to every
// subcommand.
type Root struct {
	Config  string `short:"c" help:"Configuration file path (default ~/.tada/config.yaml)"`
	BaseURL string `name:"base-url" help:"Todo API base URL"`
	Theme   string `help:"UI theme: classic, neon or mono"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	MetricsAddr string `name:"metrics-addr" placeholder:"HOST:PORT" help:"Serve client metrics on this address while the command runs"`

	Ls   LsCmd   `cmd:"" help:"List todos"`
	Show ShowCmd `cmd:"" help:"Show one todo"`
	Add  AddCmd  `cmd:"" help:"Add a todo (title can be multiple words)"`
	Done DoneCmd `cmd:"" help:"Toggle done for the todos with the given ids"`
	Rm   RmCmd   `cmd:"" help:"Delete the todos with the given ids"`
	Tui  TuiCmd  `cmd:"" help:"Open the interactive list"`
}

type exitCode int

// usageError marks failures caused by bad input rather than the server.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// Run parses args, executes the subcommand and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) (code int) {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}

	var root Root
	parser, err := kong.New(&root,
		kong.Name("tada"),
		kong.Description("A tiny client for a remote todo API."),
		kong.Writers(opt.Out, opt.Err),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
	if err != nil {
		ui.Fail(opt.Err, err.Error())
		return 1
	}

	// kong exits after printing --help; turn that into a return value.
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		ui.Fail(opt.Err, err.Error())
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			fmt.Fprintln(opt.Err)
			_ = perr.Context.PrintUsage(true)
		}
		return 2
	}

	cfg, err := root.config()
	if err != nil {
		ui.Fail(opt.Err, "config: "+err.Error())
		return 1
	}
	ui.SetTheme(cfg.Theme)

	a := app.New(cfg, append([]app.Option{app.WithLogOutput(opt.Err)}, opt.AppOptions...)...)
	if root.MetricsAddr != "" {
		_, stop, err := serveMetrics(root.MetricsAddr, a)
		if err != nil {
			ui.Fail(opt.Err, "metrics: "+err.Error())
			return 1
		}
		defer stop()
	}
	defer a.LogCallSummary(opt.Context)

	e := &env{
		ctx:    opt.Context,
		app:    a,
		out:    opt.Out,
		errOut: opt.Err,
	}
	if err := kctx.Run(e); err != nil {
		ui.Fail(opt.Err, err.Error())
		var uerr usageError
		if errors.As(err, &uerr) {
			return 2
		}
		return 1
	}
	return 0
}

// config loads the layered configuration and applies flag overrides.
func (r *Root) config() (config.Config, error) {
	cfg, err := config.Load(r.Config)
	if err != nil {
		return cfg, err
	}
	if r.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(r.BaseURL), "/")
	}
	if r.Theme != "" {
		cfg.Theme = strings.ToLower(strings.TrimSpace(r.Theme))
	}
	if r.Verbose {
		cfg.LogLevel = config.LogLevelDebug
	}
	return cfg, cfg.Validate()
}
