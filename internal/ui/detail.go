package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/citadel/internal/character"
	"github.com/five82/citadel/internal/rickmorty"
)

const detailLabelWidth = 10

// openDetail switches to the detail view for the selected record and starts
// fetching its full entry.
func (m Model) openDetail() (tea.Model, tea.Cmd) {
	c, ok := m.selectedCharacter()
	if !ok {
		return m, nil
	}

	m.currentView = ViewDetail
	m.detail = character.Detail{Character: c}
	m.detailErr = ""
	m.detailLoading = m.details != nil
	m.resizeViewports()
	m.detailViewport.GotoTop()

	if m.details == nil {
		return m, nil
	}
	return m, fetchDetailCmd(m.ctx, m.details, c.ID)
}

// handleDetail applies a character/{id} response. Responses for a record
// that is no longer open are dropped.
func (m Model) handleDetail(msg detailMsg) Model {
	if m.currentView != ViewDetail || msg.id != m.detail.ID {
		return m
	}
	m.detailLoading = false
	if msg.err != nil {
		log.Printf("ui: fetch character %d: %s: %v", msg.id, rickmorty.KindOf(msg.err), msg.err)
		m.detailErr = msg.err.Error()
	} else {
		m.detail = msg.detail
	}
	m.refreshDetailContent()
	return m
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.currentView = ViewList
		m.detailLoading = false
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// resizeViewports fits the detail and activity viewports to the content area.
func (m *Model) resizeViewports() {
	width := max(m.width-4, 0)
	height := max(m.contentHeight()-boxChrome, 0)
	m.detailViewport.Width, m.detailViewport.Height = width, height
	m.activityViewport.Width, m.activityViewport.Height = width, height
	m.refreshDetailContent()
	m.refreshActivityContent()
}

func (m *Model) refreshDetailContent() {
	m.detailViewport.SetContent(m.renderDetailContent(m.detailViewport.Width))
}

// renderDetailView renders the scrolled detail viewport in a box.
func (m Model) renderDetailView() string {
	title := m.detail.Name
	if title == "" {
		title = "Character"
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, m.contentHeight(), true)
}

// renderDetailContent renders every known field of the open record.
func (m Model) renderDetailContent(width int) string {
	styles := m.theme.Styles()
	d := m.detail

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(styles.Text.Bold(true).Render(d.Name))
	b.WriteString(" ")
	b.WriteString(styles.StatusBadge(d.Status).Render(orDash(d.Status)))
	b.WriteString("\n\n")

	writeField(&b, styles, "ID", fmt.Sprintf("#%d", d.ID), width)
	writeField(&b, styles, "Species", d.Species, width)
	writeField(&b, styles, "Type", d.Type, width)
	writeField(&b, styles, "Gender", d.Gender, width)
	writeField(&b, styles, "Origin", d.Origin, width)
	writeField(&b, styles, "Location", d.Location, width)
	if d.Episodes > 0 {
		writeField(&b, styles, "Episodes", fmt.Sprintf("%d", d.Episodes), width)
	}
	if !d.Created.IsZero() {
		writeField(&b, styles, "Created", d.Created.Format("2006-01-02"), width)
	}
	writeField(&b, styles, "Image", d.Image, width)
	if d.URL != "" {
		writeField(&b, styles, "URL", d.URL, width)
	}

	switch {
	case m.detailLoading:
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(" Fetching full record..."))
	case m.detailErr != "":
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(" " + truncate("Showing list record: "+m.detailErr, width-1)))
	}
	return b.String()
}

func writeField(b *strings.Builder, styles Styles, label, value string, width int) {
	b.WriteString(styles.MutedText.Render(padRight(" "+label, detailLabelWidth)))
	b.WriteString(styles.Text.Render(truncate(orDash(value), max(width-detailLabelWidth, 10))))
	b.WriteString("\n")
}
