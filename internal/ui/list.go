package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/citadel/internal/character"
	"github.com/five82/citadel/internal/list"
)

// renderListView renders the list pane, a full-screen state, or the
// list/summary split.
func (m Model) renderListView() string {
	width := m.width
	height := m.contentHeight()

	if placeholder, ok := m.listPlaceholder(); ok {
		return m.renderTitledBox(m.listTitle(), m.centered(placeholder, width-2, height-boxChrome), width, height, true)
	}

	if !m.detailPane || width < LayoutSplitWidth {
		return m.renderListPane(width, height)
	}

	listWidth := width * 3 / 5
	summaryWidth := width - listWidth
	listPane := m.renderListPane(listWidth, height)
	summaryPane := m.renderTitledBox("Summary", m.renderSummary(summaryWidth-4), summaryWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, summaryPane)
}

// listPlaceholder returns the full-screen message that replaces the list,
// if any: first load in progress, first load failed, or nothing to show.
func (m Model) listPlaceholder() (string, bool) {
	styles := m.theme.Styles()
	s := m.state

	if len(s.Visible()) > 0 {
		return "", false
	}

	if s.Mode == list.ModeSearch {
		lines := []string{styles.MutedText.Render(fmt.Sprintf("No characters match %q", s.Query))}
		if s.Searching {
			lines = append(lines, styles.InfoText.Render(m.spinner.View()+" Searching the server..."))
		}
		return strings.Join(lines, "\n"), true
	}

	switch {
	case s.LoadingInitial:
		return styles.InfoText.Render(m.spinner.View() + " Loading characters..."), true
	case s.Error != "":
		return strings.Join([]string{
			styles.DangerText.Render("Couldn't load characters"),
			styles.Text.Render(s.Error),
			"",
			styles.MutedText.Render("press r to retry"),
		}, "\n"), true
	default:
		return styles.MutedText.Render("No characters"), true
	}
}

func (m Model) listTitle() string {
	if m.state.Mode == list.ModeSearch {
		return fmt.Sprintf("Search %q (%d)", truncate(m.state.Query, 24), len(m.state.SearchResults))
	}
	return fmt.Sprintf("Characters (%d)", len(m.state.Items))
}

// listRows is the number of record rows that fit in the list pane.
func (m Model) listRows() int {
	return m.contentHeight() - boxChrome - 1 // footer line
}

// renderListPane renders the scrolled record rows and the footer in a box.
func (m Model) renderListPane(width, height int) string {
	innerWidth := width - 2
	bgColor := m.theme.FocusBg
	items := m.state.Visible()

	rows := max(height-boxChrome-1, 1)
	offset := 0
	if m.selected >= rows {
		offset = m.selected - rows + 1
	}
	end := min(offset+rows, len(items))

	lines := make([]string, 0, rows+1)
	for i := offset; i < end; i++ {
		lines = append(lines, m.renderRow(items[i], innerWidth, bgColor, i == m.selected))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderFooter(innerWidth, bgColor))

	return m.renderTitledBox(m.listTitle(), strings.Join(lines, "\n"), width, height, true)
}

// renderRow formats one record as "#ID Name · Species · Status".
// Selected rows use SelectionText for every part to keep contrast.
func (m Model) renderRow(c character.Character, width int, bgColor string, selected bool) string {
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	idStr := fmt.Sprintf("#%d", c.ID)
	species := orDash(c.Species)
	status := orDash(c.Status)
	const sepLen = 3 // " · "
	nameWidth := max(width-len(idStr)-len([]rune(species))-len([]rune(status))-2*sepLen-2, 10)

	var idStyle, nameStyle, sepStyle, speciesStyle, statusStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle, sepStyle, speciesStyle, statusStyle = selText, selText.Bold(true), selText, selText, selText
	} else {
		styles := m.theme.Styles()
		idStyle = styles.MutedText
		nameStyle = styles.Text
		sepStyle = styles.FaintText
		speciesStyle = styles.MutedText
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(c.Status)))
	}

	sep := bg.Render(" · ", sepStyle)
	content := bg.Render(idStr, idStyle) + bg.Space() +
		bg.Render(truncate(c.Name, nameWidth), nameStyle) + sep +
		bg.Render(species, speciesStyle) + sep +
		bg.Render(status, statusStyle)
	return bg.FillLine(content, width)
}

// renderFooter renders the line under the last record: pagination progress,
// the pagination error, or the end of the list.
func (m Model) renderFooter(width int, bgColor string) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(bgColor)
	s := m.state

	var content string
	switch {
	case s.LoadingMore:
		content = bg.Render(m.spinner.View()+" Loading more…", styles.InfoText)
	case s.PageError != "":
		msg := truncate(s.PageError, max(width-24, 10))
		content = bg.Render("! "+msg, styles.WarningText) +
			bg.Render(" · ", styles.FaintText) +
			bg.Render("press r to retry", styles.MutedText)
	case !s.HasNext():
		content = bg.Render("End of list", styles.FaintText)
	}
	return bg.FillLine(content, width)
}

// renderSummary renders the selected record for the split pane.
func (m Model) renderSummary(width int) string {
	styles := m.theme.Styles()
	c, ok := m.selectedCharacter()
	if !ok {
		return styles.MutedText.Render("Select a character")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(c.Name, width)))
	b.WriteString("\n\n")
	writeField(&b, styles, "ID", fmt.Sprintf("#%d", c.ID), width)
	b.WriteString(styles.MutedText.Render(padRight(" Status", detailLabelWidth)))
	b.WriteString(styles.StatusBadge(c.Status).Render(orDash(c.Status)))
	b.WriteString("\n")
	writeField(&b, styles, "Species", c.Species, width)
	writeField(&b, styles, "Image", c.Image, width)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter: full details"))
	return b.String()
}

// centered places content in the middle of a width×height area.
func (m Model) centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.FocusBg)))
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Focused boxes use BorderFocus and FocusBg.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-boxChrome, 0)

	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, topBorder)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottomBorder)
	return strings.Join(lines, "\n")
}
