// Package assistant dispatches text commands against an address book and
// turns every outcome, including failures, into a reply for the user.
package assistant

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smileynet/contactbook/internal/contact"
)

// Reply is the outcome of one command.
type Reply struct {
	Text    string
	Changed bool // the book was modified and should be saved
	Quit    bool // the session should end
	Failed  bool // the command was rejected; Text explains why
}

// Assistant executes commands against a book. It is not safe for
// concurrent use.
type Assistant struct {
	book   *contact.Book
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock sets the source of the reference date for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// New creates an Assistant operating on book.
func New(book *contact.Book, opts ...Option) *Assistant {
	a := &Assistant{
		book:   book,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Book returns the book the assistant operates on.
func (a *Assistant) Book() *contact.Book {
	return a.book
}

// ParseInput splits a command line into a lower-cased command and its
// arguments. A blank line yields an empty command.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Handle parses and executes one line of input.
func (a *Assistant) Handle(line string) Reply {
	cmd, args := ParseInput(line)
	return a.Execute(cmd, args)
}

// Execute runs cmd with args. Unknown commands and failures are reported in
// the reply text; Execute never returns an error.
func (a *Assistant) Execute(cmd string, args []string) Reply {
	if cmd == "" {
		return Reply{}
	}

	c, ok := lookup(cmd)
	if !ok {
		a.logger.Debug("unknown command", "command", cmd)
		return Reply{Text: "Invalid command.", Failed: true}
	}

	if c.arity >= 0 && len(args) != c.arity {
		a.logger.Debug("wrong argument count", "command", cmd, "args", len(args), "want", c.arity)
		return Reply{Text: "Usage: " + c.usage, Failed: true}
	}

	reply, err := c.run(a, args)
	if err != nil {
		a.logger.Debug("command rejected", "command", cmd, "err", err)
		return Reply{Text: message(err, args), Failed: true}
	}
	if reply.Changed {
		a.logger.Info("book changed", "command", cmd, "contacts", a.book.Len())
	}
	return reply
}

// message converts a command failure into user-facing text. args are the
// command arguments; by convention args[0] is the contact name and args[1]
// the phone the command referred to.
func message(err error, args []string) string {
	switch {
	case errors.Is(err, contact.ErrInvalidPhone):
		return "Invalid phone number: must be exactly 10 digits."
	case errors.Is(err, contact.ErrInvalidDate):
		return "Invalid date format. Use DD.MM.YYYY"
	case errors.Is(err, contact.ErrPhoneNotFound) && len(args) >= 2:
		return fmt.Sprintf("Phone %s not found for %s.", args[1], args[0])
	case errors.Is(err, contact.ErrContactNotFound) && len(args) >= 1:
		return fmt.Sprintf("Contact %s not found.", args[0])
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// find returns the record for name or an ErrContactNotFound error.
func (a *Assistant) find(name string) (*contact.Record, error) {
	r, ok := a.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", contact.ErrContactNotFound, name)
	}
	return r, nil
}
