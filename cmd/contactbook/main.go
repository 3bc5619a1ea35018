package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/smileynet/contactbook/internal/assistant"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/state"
	"github.com/smileynet/contactbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Version      kong.VersionFlag `help:"Show version." short:"V"`
	Repl         ReplCmd          `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Add          AddCmd           `cmd:"" help:"Add a contact, or another phone to an existing contact."`
	Change       ChangeCmd        `cmd:"" help:"Replace a contact's phone number."`
	Phone        PhoneCmd         `cmd:"" help:"Show a contact's phone numbers."`
	RemovePhone  RemovePhoneCmd   `cmd:"" help:"Remove a phone number from a contact."`
	Delete       DeleteCmd        `cmd:"" help:"Delete a contact."`
	All          AllCmd           `cmd:"" help:"List every contact."`
	AddBirthday  AddBirthdayCmd   `cmd:"" help:"Set a contact's birthday (DD.MM.YYYY)."`
	ShowBirthday ShowBirthdayCmd  `cmd:"" help:"Show a contact's birthday."`
	Birthdays    BirthdaysCmd     `cmd:"" help:"List birthdays in the coming week."`
}

// BookFlags are accepted by every command.
type BookFlags struct {
	Book string `help:"Address book file (overrides storage.path)." type:"path"`
}

// RejectedError reports a command the assistant refused, such as an unknown
// contact or an invalid phone number. Its message is the assistant's reply.
type RejectedError struct {
	Reply string
}

func (e *RejectedError) Error() string { return e.Reply }

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is the storage and logging wiring shared by every command.
type session struct {
	store   state.Store
	logger  *slog.Logger
	closers []io.Closer
}

// openSession loads config, applies the --book override, and opens the
// logger and store.
func openSession(ctx context.Context, flags BookFlags) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flags.Book != "" {
		cfg.Storage.Backend = config.BackendFile
		cfg.Storage.Path = flags.Book
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, storeCloser, err := state.Open(ctx, cfg.Storage)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	return &session{
		store:   store,
		logger:  logger,
		closers: []io.Closer{storeCloser, logCloser},
	}, nil
}

// Close releases the store, then the logger.
func (s *session) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

// execute loads the book, runs one assistant command, prints the reply to w,
// and saves the book if the command changed it.
func execute(ctx context.Context, w io.Writer, store state.Store, logger *slog.Logger, now func() time.Time, cmd string, args ...string) error {
	book, err := store.Load(ctx)
	if err != nil {
		return err
	}
	logger.Debug("book loaded", "contacts", book.Len())

	a := assistant.New(book, assistant.WithClock(now), assistant.WithLogger(logger))
	reply := a.Execute(cmd, args)
	if reply.Failed {
		return &RejectedError{Reply: reply.Text}
	}
	_, _ = fmt.Fprintln(w, reply.Text)

	if reply.Changed {
		if err := store.Save(ctx, book); err != nil {
			return err
		}
		logger.Info("book saved", "contacts", book.Len())
	}
	return nil
}

// oneShot runs a single command against the configured store.
func oneShot(flags BookFlags, now func() time.Time, cmd string, args ...string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := openSession(ctx, flags)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	defer s.Close()

	return execute(ctx, os.Stdout, s.store, s.logger, now, cmd, args...)
}

// ReplCmd runs the interactive assistant.
type ReplCmd struct {
	BookFlags
	NoTUI bool `help:"Force plain text prompt even if stdout is a TTY." default:"false"`
}

// Run executes the repl command.
func (c *ReplCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := openSession(ctx, c.BookFlags)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer s.Close()

	newREPL := func(h tui.Handler) tui.REPL {
		return tui.NewREPL(tui.Options{Handler: h, ForcePlain: c.NoTUI})
	}
	return c.run(ctx, s.store, s.logger, newREPL)
}

// run loads the book, hands it to a REPL, and saves it however the session
// ends, enabling testable wiring.
func (c *ReplCmd) run(ctx context.Context, store state.Store, logger *slog.Logger, newREPL func(tui.Handler) tui.REPL) error {
	book, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	logger.Debug("book loaded", "contacts", book.Len())

	a := assistant.New(book, assistant.WithLogger(logger))
	runErr := newREPL(a).Run(ctx)

	// Save even when interrupted.
	if err := store.Save(context.WithoutCancel(ctx), book); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	logger.Info("book saved", "contacts", book.Len())

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("repl: %w", runErr)
	}
	return nil
}

// AddCmd adds a contact or a phone.
type AddCmd struct {
	BookFlags
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Ten-digit phone number."`
}

// Run executes the add command.
func (c *AddCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "add", c.Name, c.Phone)
}

// ChangeCmd replaces one phone with another.
type ChangeCmd struct {
	BookFlags
	Name     string `arg:"" help:"Contact name."`
	OldPhone string `arg:"" help:"Phone number to replace."`
	NewPhone string `arg:"" help:"Replacement ten-digit phone number."`
}

// Run executes the change command.
func (c *ChangeCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "change", c.Name, c.OldPhone, c.NewPhone)
}

// PhoneCmd shows a contact's phones.
type PhoneCmd struct {
	BookFlags
	Name string `arg:"" help:"Contact name."`
}

// Run executes the phone command.
func (c *PhoneCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "phone", c.Name)
}

// RemovePhoneCmd removes a phone from a contact.
type RemovePhoneCmd struct {
	BookFlags
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to remove."`
}

// Run executes the remove-phone command.
func (c *RemovePhoneCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "remove-phone", c.Name, c.Phone)
}

// DeleteCmd deletes a contact.
type DeleteCmd struct {
	BookFlags
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "delete", c.Name)
}

// AllCmd lists every contact.
type AllCmd struct {
	BookFlags
}

// Run executes the all command.
func (c *AllCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "all")
}

// AddBirthdayCmd sets a birthday.
type AddBirthdayCmd struct {
	BookFlags
	Name     string `arg:"" help:"Contact name."`
	Birthday string `arg:"" help:"Birthday as DD.MM.YYYY."`
}

// Run executes the add-birthday command.
func (c *AddBirthdayCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "add-birthday", c.Name, c.Birthday)
}

// ShowBirthdayCmd shows a birthday.
type ShowBirthdayCmd struct {
	BookFlags
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show-birthday command.
func (c *ShowBirthdayCmd) Run() error {
	return oneShot(c.BookFlags, time.Now, "show-birthday", c.Name)
}

// BirthdaysCmd lists upcoming birthdays.
type BirthdaysCmd struct {
	BookFlags
	On string `help:"Reference date as DD.MM.YYYY (default: today)." placeholder:"DD.MM.YYYY"`
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run() error {
	now, err := c.clock()
	if err != nil {
		return err
	}
	return oneShot(c.BookFlags, now, "birthdays")
}

// clock returns the reference date source selected by --on.
func (c *BirthdaysCmd) clock() (func() time.Time, error) {
	if c.On == "" {
		return time.Now, nil
	}
	ref, err := time.ParseInLocation(contact.DateLayout, c.On, time.Local)
	if err != nil {
		return nil, &RejectedError{Reply: "Invalid date format. Use DD.MM.YYYY"}
	}
	return func() time.Time { return ref }, nil
}

// Exit codes.
const (
	exitSuccess  = 0
	exitRejected = 1
	exitSetup    = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *RejectedError
	if errors.As(err, &re) {
		return exitRejected
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("A command-line contact book with birthday reminders."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
