package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/citadel/internal/logtail"
)

// openActivity switches to the activity log view and reads the log tail.
func (m Model) openActivity() (tea.Model, tea.Cmd) {
	m.currentView = ViewActivity
	m.resizeViewports()
	return m, loadActivityCmd(m.logPath)
}

func (m Model) handleActivity(msg activityMsg) Model {
	m.activityLines = msg.lines
	m.activityErr = ""
	if msg.err != nil {
		m.activityErr = msg.err.Error()
	}
	m.refreshActivityContent()
	m.activityViewport.GotoBottom()
	return m
}

// handleActivityKey processes keyboard input for the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewList
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		return m, loadActivityCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshActivityContent() {
	m.activityViewport.SetContent(m.renderActivityContent(m.activityViewport.Width))
}

func (m Model) renderActivityView() string {
	return m.renderTitledBox("Activity log", m.activityViewport.View(), m.width, m.contentHeight(), true)
}

// renderActivityContent colors each log line by its classified severity.
func (m Model) renderActivityContent(width int) string {
	styles := m.theme.Styles()
	switch {
	case m.activityErr != "":
		return styles.DangerText.Render(" " + m.activityErr)
	case m.logPath == "":
		return styles.MutedText.Render(" Logging to a file is disabled")
	case len(m.activityLines) == 0:
		return styles.MutedText.Render(" Nothing logged yet")
	}

	lines := make([]string, len(m.activityLines))
	for i, line := range m.activityLines {
		style := styles.Text
		switch logtail.Classify(line) {
		case logtail.LevelError:
			style = styles.DangerText
		case logtail.LevelWarn:
			style = styles.WarningText
		}
		lines[i] = style.Render(" " + truncate(line, max(width-1, 10)))
	}
	return strings.Join(lines, "\n")
}

type activityMsg struct {
	lines []string
	err   error
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, ActivityLogLines)
		return activityMsg{lines: lines, err: err}
	}
}
