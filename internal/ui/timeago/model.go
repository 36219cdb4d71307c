// Package timeago renders a live relative time session as a bubbletea
// component: the text, and optionally its tooltip and ISO timestamp.
package timeago

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/reltime/internal/config"
	"github.com/zjrosen/reltime/internal/keys"
	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/pubsub"
	"github.com/zjrosen/reltime/internal/timeago"
	"github.com/zjrosen/reltime/internal/ui/logpanel"
	"github.com/zjrosen/reltime/internal/ui/styles"
	"github.com/zjrosen/reltime/internal/ui/toaster"
)

// InvalidText is shown in place of a timestamp that could not be parsed.
const InvalidText = "Invalid Date"

const toastDuration = 2 * time.Second

// ConfigReloadedMsg carries options re-read from the config file.
type ConfigReloadedMsg struct {
	Options config.Resolved
}

// ConfigErrorMsg reports a config file that failed to load.
type ConfigErrorMsg struct {
	Err error
}

// Model displays one session.
type Model struct {
	session  *timeago.Session
	listener *pubsub.ContinuousListener[timeago.Result]
	keys     keys.KeyMap
	help     help.Model
	toaster  toaster.Model
	logs     logpanel.Model

	text    string
	invalid bool
	width   int
}

// New subscribes to session until ctx is done. The session is not started;
// the caller owns Run and Close.
func New(ctx context.Context, session *timeago.Session) Model {
	return Model{
		session:  session,
		listener: pubsub.NewContinuousListener[timeago.Result](ctx, session),
		keys:     keys.DefaultKeyMap(),
		help:     help.New(),
		toaster:  toaster.New(),
		logs:     logpanel.New(ctx),
		text:     session.Current().Text,
	}
}

// NewInvalid renders InvalidText for an unparseable input.
func NewInvalid() Model {
	return Model{
		keys:    keys.DefaultKeyMap(),
		help:    help.New(),
		toaster: toaster.New(),
		invalid: true,
	}
}

// Init starts listening for results and log entries.
func (m Model) Init() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return tea.Batch(m.listener.Listen(), m.logs.Init())
}

// Text returns the displayed relative time.
func (m Model) Text() string {
	if m.invalid {
		return InvalidText
	}
	return m.text
}

// Update handles results, config reloads and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pubsub.Event[timeago.Result]:
		if msg.Type == pubsub.StoppedEvent {
			return m, nil
		}
		// Dropped events lose nothing: the latest result is always current.
		m.syncText()
		return m, m.listener.Listen()

	case ConfigReloadedMsg:
		if m.session == nil {
			return m, nil
		}
		m.session.Reconfigure(msg.Options)
		m.syncText()
		m.toaster = m.toaster.Show("config reloaded", toaster.StyleSuccess)
		return m, m.toaster.ScheduleDismiss(toastDuration)

	case ConfigErrorMsg:
		log.ErrorErr(log.CatUI, "config reload failed", msg.Err)
		m.toaster = m.toaster.Show(msg.Err.Error(), toaster.StyleError)
		return m, m.toaster.ScheduleDismiss(toastDuration)

	case log.LogEvent:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Dismiss(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.logs, _ = m.logs.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logs.Visible() {
		switch {
		case key.Matches(msg, m.keys.Logs), msg.Type == tea.KeyEsc:
			m.logs.Toggle()
			return m, nil
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logs):
		m.logs.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.session == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.session.Refresh()
		m.syncText()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSeconds):
		opts := m.session.Options()
		opts.HideSeconds = !opts.HideSeconds
		m.session.Reconfigure(opts)
		m.syncText()
		notice := "seconds shown"
		if opts.HideSeconds {
			notice = "seconds hidden"
		}
		m.toaster = m.toaster.Show(notice, toaster.StyleInfo)
		return m, m.toaster.ScheduleDismiss(toastDuration)

	case key.Matches(msg, m.keys.ToggleElement):
		opts := m.session.Options()
		opts.TimeElement = !opts.TimeElement
		m.session.Reconfigure(opts)
		m.syncText()
		return m, nil
	}
	return m, nil
}

func (m *Model) syncText() {
	if r := m.session.Current(); r.Text != "" {
		m.text = r.Text
	}
}

// View renders the text. With the time element enabled the tooltip and the
// ISO timestamp follow on their own lines.
func (m Model) View() string {
	var b strings.Builder
	if m.invalid {
		b.WriteString(styles.ErrorStyle.Render(InvalidText))
	} else {
		b.WriteString(styles.TextStyle.Render(m.text))
		if m.session.Options().TimeElement {
			title, iso := m.session.Title(), m.session.DateTime()
			if m.width > 0 {
				title = styles.TruncateString(title, m.width)
			}
			b.WriteString("\n")
			b.WriteString(styles.TooltipStyle.Render(title))
			b.WriteString("\n")
			b.WriteString(styles.DateTimeStyle.Render(iso))
		}
	}

	if toast := m.toaster.View(); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
	}
	if logs := m.logs.View(); logs != "" {
		b.WriteString("\n")
		b.WriteString(logs)
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
