package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
	"github.com/litescript/ls-ephem/internal/state"
)

// Styles for the almanac table
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46"))

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// AlmanacModel is the almanac table view.
type AlmanacModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewAlmanacModel creates a new almanac view model.
func NewAlmanacModel() AlmanacModel {
	return AlmanacModel{}
}

// SetSize updates the viewport size.
func (m AlmanacModel) SetSize(width, height int) AlmanacModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m AlmanacModel) UpdateData(snapshot state.Snapshot) AlmanacModel {
	m.snapshot = snapshot
	if m.cursor >= len(snapshot.Entries) {
		m.cursor = 0
	}
	return m
}

// SetError sets the last error for display.
func (m AlmanacModel) SetError(err error) AlmanacModel {
	m.lastErr = err
	return m
}

// SelectedBody returns the almanac entry under the cursor, if any.
func (m AlmanacModel) SelectedBody() *almanac.Entry {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Entries) {
		return nil
	}
	return &m.snapshot.Entries[m.cursor]
}

// Update handles messages.
func (m AlmanacModel) Update(msg tea.Msg) (AlmanacModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.snapshot.Entries)
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		}
	}

	return m, nil
}

// View renders the almanac table.
func (m AlmanacModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if len(m.snapshot.Entries) == 0 && m.lastErr == nil {
		b.WriteString("Computing ephemeris...\n")
		return b.String()
	}

	b.WriteString(m.renderMoonSummary())
	b.WriteString("\n\n")
	b.WriteString(m.renderBodyTable())

	return b.String()
}

func (m AlmanacModel) renderMoonSummary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Observer"))
	b.WriteString("\n")

	obs := m.snapshot.Observer
	b.WriteString(fmt.Sprintf("  %.4f°N %.4f°E, %.0f m  @  %s\n",
		obs.Latitude, obs.Longitude, obs.Height, m.snapshot.ComputedAt))

	moon := m.snapshot.Moon
	if moon.PhaseName != "" {
		bar := m.renderIllumBar(moon.Illum, 10)
		b.WriteString(fmt.Sprintf("  Moon: %s %s %.0f%% illuminated", moon.PhaseName, bar, moon.Illum*100))
	}

	return b.String()
}

func (m AlmanacModel) renderIllumBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + upStyle.Render(bar) + "]"
}

func (m AlmanacModel) renderBodyTable() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bodies"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-9s %-10s %-9s %8s %8s %7s %6s %-12s %-12s",
		"Body", "RA", "Dec", "Az", "Alt", "Mag", "Illum", "Rise", "Set")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 8
	if maxRows < 5 {
		maxRows = 5
	}

	entries := m.snapshot.Entries
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(entries) {
		endIdx = len(entries)
	}

	for i := startIdx; i < endIdx; i++ {
		e := entries[i]

		rise := "—"
		if e.HasRise {
			rise = clockLabel(e.Rise)
		}
		set := "—"
		if e.HasSet {
			set = clockLabel(e.Set)
		}

		row := fmt.Sprintf("%-9s %-10s %-9s %8.2f %8.2f %7.2f %5.0f%% %-12s %-12s",
			e.Name,
			raLabel(e.RA),
			decLabel(e.Dec),
			e.Azimuth,
			e.Altitude,
			e.Mag,
			e.Illum*100,
			rise,
			set,
		)

		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(row))
		case e.Up():
			b.WriteString(rowStyle.Render(row))
		default:
			b.WriteString(downStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(entries) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d bodies", startIdx+1, endIdx, len(entries)))
	}

	return b.String()
}

func raLabel(ra float64) string {
	h := int(ra)
	mf := (ra - float64(h)) * 60.0
	return fmt.Sprintf("%02dh%04.1fm", h, mf)
}

func decLabel(dec float64) string {
	sign := "+"
	if dec < 0 {
		sign = "-"
		dec = -dec
	}
	d := int(dec)
	mn := int((dec - float64(d)) * 60.0)
	return fmt.Sprintf("%s%02d°%02d'", sign, d, mn)
}

// clockLabel renders a timestamp as "MM/DD HH:MM" UTC.
func clockLabel(t astro.Time) string {
	utc := t.UTC()
	return fmt.Sprintf("%02d/%02d %02d:%02d", utc.Month, utc.Day, utc.Hour, utc.Minute)
}
