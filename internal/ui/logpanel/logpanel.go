// Package logpanel shows recent debug log entries below the watch view.
package logpanel

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/reltime/internal/log"
	"github.com/zjrosen/reltime/internal/ui/styles"
)

const (
	maxEntries     = 500
	viewportHeight = 10
	boxMaxWidth    = 160
	boxMinWidth    = 40

	// timestampLayout matches the prefix written by internal/log.
	timestampLayout = "2006-01-02T15:04:05"
)

// Model buffers log entries from the global logger and renders them when
// visible. Entries are collected while hidden too.
type Model struct {
	listener *log.LogListener
	entries  []string
	visible  bool
	minLevel log.Level
	width    int
	viewport viewport.Model
}

// New subscribes to the global logger until ctx is done. Without an
// installed logger the panel only shows a hint.
func New(ctx context.Context) Model {
	m := Model{
		listener: log.NewListener(ctx),
		minLevel: log.LevelDebug,
	}
	m.refreshViewport()
	return m
}

// Init starts listening for log entries.
func (m Model) Init() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Update collects log events and, while visible, handles the filter and
// scroll keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		m.entries = append(m.entries, strings.TrimSuffix(msg.Payload, "\n"))
		if over := len(m.entries) - maxEntries; over > 0 {
			m.entries = m.entries[over:]
		}
		m.refreshViewport()
		return m, m.listener.Listen()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "c":
			m.entries = nil
		case "d":
			m.minLevel = log.LevelDebug
		case "i":
			m.minLevel = log.LevelInfo
		case "w":
			m.minLevel = log.LevelWarn
		case "e":
			m.minLevel = log.LevelError
		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil
		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		default:
			return m, nil
		}
		m.refreshViewport()
	}
	return m, nil
}

// Toggle shows or hides the panel.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Visible returns whether the panel is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Entries returns the buffered entries at or above the filter level.
func (m Model) Entries() []string {
	var filtered []string
	for _, entry := range m.entries {
		if levelOf(entry) >= m.minLevel {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// View renders the bordered panel, or nothing while hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	width := m.boxWidth()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).PaddingLeft(1)
	divider := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(strings.Repeat("─", width))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Logs"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.filterHint())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.TextMutedColor).
		Width(width).
		Render(b.String())
}

func (m Model) boxWidth() int {
	if m.width == 0 {
		return boxMinWidth
	}
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) refreshViewport() {
	contentWidth := m.boxWidth() - 2
	m.viewport = viewport.New(contentWidth, viewportHeight)
	m.viewport.SetContent(m.content(contentWidth))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true)
	if m.listener == nil {
		return muted.Render("Logging is off. Run with --debug or RELTIME_DEBUG=1.")
	}
	entries := m.Entries()
	if len(entries) == 0 {
		return muted.Render("No logs to display")
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = withoutTimestamp(entry)
		if ansi.StringWidth(entry) > width {
			entry = ansi.Truncate(entry, width-3, "...")
		}
		lines = append(lines, levelStyle(levelOf(entry)).Render(entry))
	}
	return strings.Join(lines, "\n")
}

// withoutTimestamp drops the logger's leading timestamp so the level,
// category and message fit the panel.
func withoutTimestamp(entry string) string {
	stamp, rest, ok := strings.Cut(entry, " ")
	if !ok {
		return entry
	}
	if _, err := time.Parse(timestampLayout, stamp); err != nil {
		return entry
	}
	return rest
}

// levelOf reads the level tag written by the logger. Untagged lines count
// as errors so that no filter hides them.
func levelOf(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	default:
		return log.LevelError
	}
}

func levelStyle(level log.Level) lipgloss.Style {
	switch level {
	case log.LevelError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	case log.LevelWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	case log.LevelInfo:
		return lipgloss.NewStyle().Foreground(styles.ToastBorderInfoColor)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	}
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
