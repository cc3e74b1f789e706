package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/console"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/menu"
	"github.com/smileynet/contactbook/internal/seed"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Menu    MenuCmd          `cmd:"" default:"1" help:"Open the interactive contact menu (default)."`
	List    ListCmd          `cmd:"" help:"List the preloaded contacts."`
	Search  SearchCmd        `cmd:"" help:"Search the preloaded contacts."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		"contactbook.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app bundles what every command needs: the book and its logger.
type app struct {
	book   *contact.Book
	logger *zap.Logger
	seeded int
}

// newApp builds the logger and book from cfg and loads the seed contacts.
func newApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	book := contact.NewBook(
		contact.WithLogger(logger),
		contact.WithValidation(cfg.Book.Validate),
	)
	a := &app{book: book, logger: logger}

	if !cfg.Seed.Enabled {
		return a, nil
	}

	fsys, name := seedSource(cfg.Seed.File)
	entries, err := seed.Read(fsys, name)
	if err != nil {
		return nil, err
	}
	n, err := seed.Load(book, entries)
	if err != nil {
		return nil, err
	}
	a.seeded = n
	logger.Info("seed loaded", zap.String("file", name), zap.Int("contacts", n))
	return a, nil
}

// seedSource returns where to read seed contacts from. An explicit file is
// read from disk as-is; otherwise .contactbook/contacts.yaml overrides the
// embedded default.
func seedSource(file string) (fs.FS, string) {
	if file != "" {
		return os.DirFS(filepath.Dir(file)), filepath.Base(file)
	}
	return contactbook.OverlayFS(".contactbook", contactbook.Seed), contactbook.SeedFile
}

// preloadBanner is the startup message shown once the seed is loaded.
func preloadBanner(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d contacts have been pre-loaded into the contact book.", n)
}

// --- Menu command ---

// MenuCmd opens the interactive menu.
type MenuCmd struct {
	Plain bool `help:"Force the line-oriented prompt even if stdout is a TTY." default:"false"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the book and launches the menu on the terminal, or the plain
// prompt when stdout is not a terminal.
func (c *MenuCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	a, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	defer a.logger.Sync() //nolint:errcheck // best-effort flush on exit

	banner := preloadBanner(a.seeded)

	if c.Plain || !console.IsTTY(os.Stdout) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		p := console.NewPlain(a.book, os.Stdin, os.Stdout,
			console.WithBanner(banner),
			console.WithTimeFormat(cfg.Book.TimeFormat),
		)
		return c.runPlain(ctx, p)
	}

	m := menu.NewModel(a.book,
		menu.WithBanner(banner),
		menu.WithTimeFormat(cfg.Book.TimeFormat),
	)
	return c.run(tea.NewProgram(m, tea.WithAltScreen()))
}

// plainRunner abstracts console.Plain for testing.
type plainRunner interface {
	Run(ctx context.Context) error
}

// runPlain runs the line-oriented prompt, treating interruption as a normal exit.
func (c *MenuCmd) runPlain(ctx context.Context, p plainRunner) error {
	err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("menu: %w: %w", errSession, err)
	}
	return nil
}

// run executes the tea program, enabling testable wiring.
func (c *MenuCmd) run(prog teaRunner) error {
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("menu: %w: %w", errSession, err)
	}
	return nil
}

// --- Query commands ---

// ListCmd prints every preloaded contact, or those carrying a tag.
type ListCmd struct {
	Tag string `help:"Only contacts with this tag." short:"t"`
}

// Run executes the list command.
func (l *ListCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	a, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer a.logger.Sync() //nolint:errcheck // best-effort flush on exit
	return l.run(os.Stdout, a.book, cfg.Book.TimeFormat)
}

// run prints the listing to w, enabling testable wiring.
func (l *ListCmd) run(w io.Writer, book console.Book, timeFormat string) error {
	var r console.Result
	if l.Tag != "" {
		r = console.Execute(book, console.ActionTag, []string{l.Tag})
	} else {
		r = console.Execute(book, console.ActionList, nil)
	}
	_, _ = fmt.Fprintln(w, console.Render(r, timeFormat))
	return nil
}

// SearchCmd prints the preloaded contacts matching every given field.
type SearchCmd struct {
	Name  string `help:"Substring of the contact name." short:"n"`
	Phone string `help:"Substring of the phone number." short:"p"`
	Email string `help:"Substring of the email address." short:"e"`
}

// Run executes the search command.
func (s *SearchCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	a, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	defer a.logger.Sync() //nolint:errcheck // best-effort flush on exit
	return s.run(os.Stdout, a.book, cfg.Book.TimeFormat)
}

// run prints the matches to w, enabling testable wiring.
func (s *SearchCmd) run(w io.Writer, book console.Book, timeFormat string) error {
	r := console.Execute(book, console.ActionSearch, []string{s.Name, s.Phone, s.Email})
	_, _ = fmt.Fprintln(w, console.Render(r, timeFormat))
	return nil
}

const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// errSession marks failures of a running menu session, as opposed to
// config, logging or seed setup.
var errSession = errors.New("session")

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errSession) {
		return exitRuntime
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("An in-memory contact book with an interactive menu."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
