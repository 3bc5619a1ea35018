package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/assistant"
)

// Welcome is printed when a session starts.
const Welcome = "Welcome to the assistant bot!"

// maxTranscript bounds the number of exchanges kept on screen.
const maxTranscript = 50

// Handler executes one line of input.
type Handler interface {
	Handle(line string) assistant.Reply
}

// exchange is one submitted line and its reply.
type exchange struct {
	input string
	reply string
}

// Model is the Bubble Tea model for the interactive command prompt.
type Model struct {
	handler    Handler
	input      textinput.Model
	help       help.Model
	keys       keyMap
	transcript []exchange
	changed    bool
	done       bool
}

// NewModel creates a Model that sends submitted lines to h.
func NewModel(h Handler) Model {
	in := textinput.New()
	in.Prompt = promptStyle.Render("Enter a command: ")
	in.Placeholder = "help"
	in.Focus()

	return Model{
		handler: h,
		input:   in,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

// Changed reports whether any submitted command modified the book.
func (m Model) Changed() bool {
	return m.changed
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.transcript = nil
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input line through the handler.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	reply := m.handler.Handle(line)
	if reply.Changed {
		m.changed = true
	}

	m.transcript = append(m.transcript, exchange{input: line, reply: reply.Text})
	if over := len(m.transcript) - maxTranscript; over > 0 {
		m.transcript = m.transcript[over:]
	}

	if reply.Quit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the transcript, prompt, and help bar.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(Welcome))
	b.WriteString("\n\n")

	for _, ex := range m.transcript {
		b.WriteString(echoStyle.Render("> " + ex.input))
		b.WriteString("\n")
		if ex.reply == "" {
			continue
		}
		b.WriteString(replyStyle.Render(ex.reply))
		b.WriteString("\n")
	}

	if m.done {
		return b.String()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		m.input.View(),
		"",
		m.help.View(m.keys),
	)
}
