package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/state"
)

// EventsModel lists upcoming sky events and recent horizon crossings.
type EventsModel struct {
	width    int
	height   int
	scroll   int
	snapshot state.Snapshot
}

// NewEventsModel creates a new events view model.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m EventsModel) UpdateData(snapshot state.Snapshot) EventsModel {
	m.snapshot = snapshot
	if m.scroll >= len(snapshot.SkyEvents) {
		m.scroll = 0
	}
	return m
}

// Update handles messages.
func (m EventsModel) Update(msg tea.Msg) (EventsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			if m.scroll < len(m.snapshot.SkyEvents)-1 {
				m.scroll++
			}
		case "home":
			m.scroll = 0
		}
	}
	return m, nil
}

// View renders the events list.
func (m EventsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Upcoming Events"))
	b.WriteString("\n")

	if len(m.snapshot.SkyEvents) == 0 {
		b.WriteString("  No events computed yet\n")
	} else {
		b.WriteString(m.renderSkyEvents())
	}

	recent := m.snapshot.Events
	if len(recent) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent Horizon Crossings"))
		b.WriteString("\n")
		b.WriteString(m.renderCrossings(recent))
	}

	return b.String()
}

func (m EventsModel) renderSkyEvents() string {
	var b strings.Builder

	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	typeStyles := map[almanac.EventType]lipgloss.Style{
		almanac.EventMoonQuarter:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		almanac.EventLunarApsis:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		almanac.EventSeason:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		almanac.EventMaxElongation: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		almanac.EventOpposition:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		almanac.EventConjunction:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	}

	maxRows := m.height - 8
	if maxRows < 5 {
		maxRows = 5
	}

	events := m.snapshot.SkyEvents
	endIdx := m.scroll + maxRows
	if endIdx > len(events) {
		endIdx = len(events)
	}

	for i := m.scroll; i < endIdx; i++ {
		ev := events[i]
		style, ok := typeStyles[ev.Type]
		if !ok {
			style = rowStyle
		}
		b.WriteString("  ")
		b.WriteString(timeStyle.Render(ev.Time.String()))
		b.WriteString("  ")
		b.WriteString(style.Render(ev.Label))
		b.WriteString("\n")
	}

	if len(events) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d events", m.scroll+1, endIdx, len(events)))
	}

	return b.String()
}

func (m EventsModel) renderCrossings(events []state.Event) string {
	var b strings.Builder

	riseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	setStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	// Newest first, a handful only
	shown := 0
	for i := len(events) - 1; i >= 0 && shown < 5; i-- {
		ev := events[i]
		verb := "set"
		style := setStyle
		if ev.Type == state.EventBodyRisen {
			verb = "rose"
			style = riseStyle
		}
		line := fmt.Sprintf("%s %s %s at Az %.0f°",
			ev.Timestamp.Format("15:04:05"), ev.Body, verb, ev.Azimuth)
		b.WriteString("  " + style.Render(line) + "\n")
		shown++
	}

	return b.String()
}
