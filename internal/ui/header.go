package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/citadel/internal/list"
)

// renderMain renders the header, command bar, optional search bar and the
// active view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.showSearchBar() {
		b.WriteString(m.renderSearchBar())
		b.WriteString("\n")
	}

	switch m.currentView {
	case ViewDetail:
		b.WriteString(m.renderDetailView())
	case ViewActivity:
		b.WriteString(m.renderActivityView())
	default:
		b.WriteString(m.renderListView())
	}
	return b.String()
}

// renderHeader renders the status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	var parts []string
	parts = append(parts, bg.Render("citadel", styles.Logo))

	if m.apiHost != "" {
		host := m.apiHost
		if compact {
			host = truncate(host, 24)
			parts = append(parts, bg.Render(host, styles.MutedText))
		} else {
			parts = append(parts,
				bg.Render("API:", styles.FaintText)+bg.Space()+bg.Render(host, styles.MutedText))
		}
	}

	parts = append(parts, m.renderCounts(styles, bg))

	if m.state.Mode == list.ModeSearch {
		parts = append(parts,
			bg.Render("Mode:", styles.MutedText)+bg.Space()+bg.Render("search", styles.AccentText))
	}

	if label := m.busyLabel(); label != "" {
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.InfoText)+bg.Space()+bg.Render(label, styles.InfoText))
	}

	if m.state.Error != "" {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.state.Error, maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCounts renders "Characters: loaded/total", or the match count while
// searching.
func (m Model) renderCounts(styles Styles, bg BgStyle) string {
	if m.state.Mode == list.ModeSearch {
		return bg.Render("Matches:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", len(m.state.SearchResults)), styles.Text)
	}
	count := fmt.Sprintf("%d", len(m.state.Items))
	if m.state.TotalCount > 0 {
		count = fmt.Sprintf("%d/%d", len(m.state.Items), m.state.TotalCount)
	}
	return bg.Render("Characters:", styles.MutedText) + bg.Space() + bg.Render(count, styles.Text)
}

// busyLabel names whatever the store is waiting on, or "" when idle.
func (m Model) busyLabel() string {
	switch {
	case m.state.LoadingInitial:
		return "Loading"
	case m.state.Searching:
		return "Searching"
	case m.state.LoadingMore:
		return "Fetching page"
	}
	return ""
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
			{"q", "Quit"},
		}
	case ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"r", "Reload"},
			{"esc", "Back"},
			{"q", "Quit"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"/", "Search"},
			{"enter", "Open"},
		}
		if m.state.Mode == list.ModeSearch {
			commands = append(commands, cmd{"esc", "Clear"})
		}
		if m.state.Error != "" || m.state.PageError != "" {
			commands = append(commands, cmd{"r", "Retry"})
		}
		commands = append(commands,
			cmd{"L", "Activity"},
			cmd{"v", "Summary"},
			cmd{"?", "More"},
			cmd{"q", "Quit"},
		)
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

func (m Model) showSearchBar() bool {
	return m.search.Focused() || m.search.Value() != "" || m.state.Mode == list.ModeSearch
}

// renderSearchBar renders the search input on the background color.
func (m Model) renderSearchBar() string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(m.search.View())
}

// contentHeight is the number of lines left for the active view.
func (m Model) contentHeight() int {
	h := m.height - headerLines
	if m.showSearchBar() {
		h--
	}
	return max(h, boxChrome+1)
}
