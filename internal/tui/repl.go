// Package tui runs the interactive command prompt, as a Bubble Tea terminal
// UI on a TTY or as plain line-oriented text otherwise.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// REPL reads commands until the user quits or input ends.
type REPL interface {
	Run(ctx context.Context) error
}

// Options configures REPL creation.
type Options struct {
	Handler    Handler   // Executes each line.
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewREPL returns a TUI prompt when Out is a TTY, or a plain text prompt
// otherwise. ForcePlain overrides TTY detection.
func NewREPL(opts Options) REPL {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Out) {
		return &PlainREPL{h: opts.Handler, in: opts.In, w: opts.Out}
	}

	return &TUIREPL{h: opts.Handler, in: opts.In, w: opts.Out}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainREPL prompts and prints replies as plain text lines.
type PlainREPL struct {
	h  Handler
	in io.Reader
	w  io.Writer
}

// Run prints the welcome line, then prompts for and executes one line at a
// time. It returns nil when a command quits or input ends, or the context
// error if ctx is cancelled first.
func (r *PlainREPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	_, _ = fmt.Fprintln(r.w, Welcome)
	for {
		_, _ = fmt.Fprint(r.w, "Enter a command: ")

		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(r.w)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(r.w)
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("repl: reading input: %w", err)
					}
				default:
				}
				return nil
			}

			reply := r.h.Handle(line)
			if reply.Text != "" {
				_, _ = fmt.Fprintln(r.w, reply.Text)
			}
			if reply.Quit {
				return nil
			}
		}
	}
}

// TUIREPL runs the prompt as a Bubble Tea program.
// Falls back to PlainREPL if the program fails to start.
type TUIREPL struct {
	h  Handler
	in io.Reader
	w  io.Writer
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (r *TUIREPL) Run(ctx context.Context) error {
	p := tea.NewProgram(NewModel(r.h),
		tea.WithContext(ctx),
		tea.WithInput(r.in),
		tea.WithOutput(r.w),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if m, ok := final.(Model); ok && len(m.transcript) > 0 {
			return fmt.Errorf("repl: %w", err)
		}
		plain := &PlainREPL{h: r.h, in: r.in, w: r.w}
		return plain.Run(ctx)
	}
	return nil
}
