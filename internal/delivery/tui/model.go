package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// Model drives one quiz session from the terminal.
type Model struct {
	ctx     context.Context
	session *service.Session
	request entities.SessionRequest
	keys    keyMap
	help    help.Model
	loading bool
	noColor bool
	width   int
}

// Options configures the trainer model.
type Options struct {
	NoColor bool
}

// NewModel creates a model that starts session with req on Init.
func NewModel(ctx context.Context, session *service.Session, req entities.SessionRequest, opts Options) Model {
	return Model{
		ctx:     ctx,
		session: session,
		request: req,
		keys:    defaultKeyMap(),
		help:    help.New(),
		loading: true,
		noColor: opts.NoColor,
	}
}

// startedMsg reports the end of a Start call.
type startedMsg struct {
	err error
}

// Init starts the first session.
func (m Model) Init() tea.Cmd {
	return m.startCmd()
}

// startCmd runs Session.Start off the UI loop. The model must not read the
// session while loading is set.
func (m Model) startCmd() tea.Cmd {
	ctx, session, req := m.ctx, m.session, m.request
	return func() tea.Msg {
		return startedMsg{err: session.Start(ctx, req)}
	}
}

// Update applies key presses to the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		return m, nil
	case startedMsg:
		m.loading = false
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Start):
		m.loading = true
		return m, m.startCmd()
	}

	q, ok := m.session.Current()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(q.Options) {
			m.session.SelectOption(q.ID, q.Options[i].ID)
		}
	case key.Matches(msg, m.keys.Check):
		m.session.Check(q.ID)
	case key.Matches(msg, m.keys.Reveal):
		m.session.Reveal(q.ID)
	case key.Matches(msg, m.keys.Prev):
		m.session.Prev()
	case key.Matches(msg, m.keys.Next):
		m.session.Next()
	case key.Matches(msg, m.keys.Finish):
		m.session.Finish()
	}

	return m, nil
}

// View renders the current question and the help line.
func (m Model) View() string {
	var body string
	switch {
	case m.loading:
		body = stylize("Loading questions…", m.noColor, colorMuted)
	case m.session.Status() == entities.StatusIdle:
		body = renderIdle(m.session.Err(), m.noColor)
	default:
		st := m.session.Snapshot()
		body = lipgloss.JoinVertical(lipgloss.Left,
			renderHeader(st, m.noColor),
			"",
			renderQuestion(st, m.noColor),
			"",
			renderScore(st, m.session.Summary(), m.noColor),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys)) + "\n"
}
