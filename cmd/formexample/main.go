package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/formexample/internal/config"
	"github.com/smileynet/formexample/internal/form"
	"github.com/smileynet/formexample/internal/logging"
	"github.com/smileynet/formexample/internal/prompt"
	"github.com/smileynet/formexample/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errInvalidSubmission is returned by submit --strict when validation fails.
var errInvalidSubmission = errors.New("form is invalid")

// Globals holds flags shared by every command.
type Globals struct {
	Config    string `help:"Project config file." default:".formexample.yaml" type:"path"`
	LogLevel  string `help:"Override log level (debug, info, warn, error)."`
	LogFormat string `help:"Override log format (console, json)."`
}

// CLI is the top-level command structure for formexample.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Edit    EditCmd          `cmd:"" default:"1" help:"Fill the form in an interactive terminal view."`
	Prompt  PromptCmd        `cmd:"" help:"Fill the form one field at a time."`
	Submit  SubmitCmd        `cmd:"" help:"Submit field values given as flags."`
}

// loadConfig loads layered config from user and project paths with env and flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/formexample/config.yaml"),
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger builds the submission logger and a func that flushes it.
// With holdStream set, output bound for stderr or stdout is buffered until
// flush so it does not tear the full-screen view.
func openLogger(cfg config.Log, holdStream bool) (*zap.Logger, func(), error) {
	if holdStream && logging.IsStream(cfg.Output) {
		var buf bytes.Buffer
		logger, err := logging.NewWithWriter(cfg, &buf)
		if err != nil {
			return nil, nil, err
		}
		flush := func() {
			_ = logger.Sync()
			_, _ = streamWriter(cfg.Output).Write(buf.Bytes())
		}
		return logger, flush, nil
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func streamWriter(output string) io.Writer {
	if output == "stdout" {
		return os.Stdout
	}
	return os.Stderr
}

// --- Edit command ---

// EditCmd opens the interactive form view.
type EditCmd struct{}

// formRunner runs the form view to completion, returning the final model.
type formRunner func(ctx context.Context, m tui.Model) (tui.Model, error)

// Run builds real dependencies and launches the form view.
func (e *EditCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	logger, flush, err := openLogger(cfg.Log, true)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	defer flush()

	m := tui.NewModel(
		form.New(form.WithLogger(logger)),
		tui.WithHelp(cfg.UI.ShowHelp),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runFn := func(ctx context.Context, m tui.Model) (tui.Model, error) {
		return tui.Run(ctx, m, tui.RunOptions{AltScreen: cfg.UI.AltScreen})
	}
	return e.run(ctx, tui.IsTerminal(os.Stdout), m, runFn)
}

// run executes the form view, enabling testable wiring.
func (e *EditCmd) run(ctx context.Context, isTTY bool, m tui.Model, runFn formRunner) error {
	if !isTTY {
		return fmt.Errorf("edit: requires a terminal (TTY); use \"prompt\" or \"submit\" instead")
	}
	if _, err := runFn(ctx, m); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return nil
}

// --- Prompt command ---

// PromptCmd asks for each field in turn, then submits.
type PromptCmd struct{}

// Run builds real dependencies and runs the prompt flow.
func (p *PromptCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	logger, flush, err := openLogger(cfg.Log, false)
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return p.run(ctx, form.New(form.WithLogger(logger)), prompt.NewSurveyDriver())
}

// run executes the prompt flow with the given driver, enabling testable wiring.
func (p *PromptCmd) run(ctx context.Context, g *form.Group, d prompt.Driver) error {
	// prompt errors already carry the package prefix.
	_, err := prompt.NewRunner(d).Run(ctx, g)
	return err
}

// --- Submit command ---

// SubmitCmd fills the form from flags and submits it.
type SubmitCmd struct {
	FirstName string `help:"First name (at least 2 characters)."`
	LastName  string `help:"Last name (at least 2 characters)."`
	Country   string `help:"Country (at least 5 characters)."`
	Note      string `help:"Note (at least 10 characters)."`
	Strict    bool   `help:"Exit with a non-zero status when the form is invalid."`
}

// Run builds real dependencies and submits the flag values.
func (s *SubmitCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	logger, flush, err := openLogger(cfg.Log, false)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer flush()

	return s.run(form.New(form.WithLogger(logger)))
}

// run submits the flag values into g, enabling testable wiring.
// An invalid form is only an error in strict mode; otherwise the logged
// notice is the whole outcome.
func (s *SubmitCmd) run(g *form.Group) error {
	g.Patch(form.Record{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Country:   s.Country,
		Note:      s.Note,
	})
	sub := g.Submit()
	if !sub.Valid && s.Strict {
		return fmt.Errorf("submit: %w: %s", errInvalidSubmission, strings.Join(sub.InvalidFields, ", "))
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
	exitAborted = 130
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errInvalidSubmission):
		return exitInvalid
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		return exitAborted
	default:
		return exitSetup
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("formexample"),
		kong.Description("Collect and validate a contact form in the terminal."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
