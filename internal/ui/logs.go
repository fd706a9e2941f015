package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/cinedeck/internal/logtail"
)

func (m *Model) handleLogs(msg logsMsg) {
	if msg.err != nil {
		m.logErr = msg.err.Error()
		return
	}
	m.logErr = ""
	m.logEntries = msg.entries
	m.refreshLogViewport()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// refreshLogViewport re-renders the log lines, staying pinned to the bottom
// when the view was already there.
func (m *Model) refreshLogViewport() {
	follow := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, m.formatLogEntry(e))
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if follow {
		m.logViewport.GotoBottom()
	}
}

// formatLogEntry renders one entry as "15:04:05 LEVEL logger message k=v".
func (m Model) formatLogEntry(e logtail.Entry) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if !e.Structured() {
		return bg.Render(e.Raw, styles.MutedText)
	}

	parts := make([]string, 0, 5)
	if !e.Time.IsZero() {
		parts = append(parts, bg.Render(e.Time.Local().Format("15:04:05"), styles.FaintText))
	}
	parts = append(parts, bg.Render(padRight(e.Level, 5), m.levelStyle(e.Level).Background(lipgloss.Color(m.theme.FocusBg))))
	if e.Logger != "" {
		parts = append(parts, bg.Render(e.Logger, styles.InfoText))
	}
	parts = append(parts, bg.Render(e.Message, styles.Text))
	for _, k := range e.FieldKeys() {
		parts = append(parts, bg.Render(k+"=", styles.FaintText)+bg.Render(e.Fields[k], styles.MutedText))
	}
	return strings.Join(parts, bg.Space())
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.SuccessText
	}
}

func (m Model) renderLogs() (string, string) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	title := "Logs"
	if n := len(m.logEntries); n > 0 {
		if last := m.logEntries[n-1].Time; !last.IsZero() {
			title = "Logs · last entry " + humanize.Time(last)
		}
	}

	switch {
	case m.logErr != "":
		return title, bg.Space() + bg.Render(m.logErr, styles.DangerText)
	case m.logPath == "":
		return title, bg.Space() + bg.Render("Logging to file is disabled.", styles.MutedText)
	case len(m.logEntries) == 0:
		return title, bg.Space() + bg.Render("No log entries yet in "+m.logPath, styles.MutedText)
	}
	return title, m.logViewport.View()
}
