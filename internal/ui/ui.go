// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/state"
	"github.com/litescript/ls-ephem/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewAlmanac ViewMode = iota
	ViewSky
	ViewOrrery
	ViewEvents
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a fresh almanac computation is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a compute error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	almanacView AlmanacModel
	skyView     SkyViewModel
	orrery      OrreryModel
	eventsView  EventsModel

	// Data snapshot (updated on DataUpdateMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:       stateMgr,
		viewMode:    ViewAlmanac,
		almanacView: NewAlmanacModel(),
		skyView:     NewSkyViewModel(),
		orrery:      NewOrreryModel(),
		eventsView:  NewEventsModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "a":
			m.viewMode = ViewAlmanac
		case "2", "s":
			if m.viewMode != ViewSky {
				m.skyView = m.skyView.SyncFromAlmanac(m.almanacView, m.snapshot)
			}
			m.viewMode = ViewSky
		case "3", "o":
			m.viewMode = ViewOrrery
		case "4", "e":
			m.viewMode = ViewEvents

		case "tab":
			m.viewMode = (m.viewMode + 1) % 4

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 14
		m.almanacView = m.almanacView.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)
		m.eventsView = m.eventsView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.almanacView = m.almanacView.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)
		m.orrery = m.orrery.UpdateData(m.snapshot)
		m.eventsView = m.eventsView.UpdateData(m.snapshot)

	case ErrorMsg:
		m.almanacView = m.almanacView.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewAlmanac:
		m.almanacView, cmd = m.almanacView.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	case ViewOrrery:
		m.orrery, cmd = m.orrery.Update(msg)
	case ViewEvents:
		m.eventsView, cmd = m.eventsView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewAlmanac:
		content = m.almanacView.View()
	case ViewSky:
		content = m.skyView.View()
	case ViewOrrery:
		content = m.orrery.View()
	case ViewEvents:
		content = m.eventsView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`  ██╗     ███████╗      ███████╗██████╗ ██╗  ██╗███████╗███╗   ███╗`,
		`  ██║     ██╔════╝      ██╔════╝██╔══██╗██║  ██║██╔════╝████╗ ████║`,
		`  ██║     ███████╗█████╗█████╗  ██████╔╝███████║█████╗  ██╔████╔██║`,
		`  ██║     ╚════██║╚════╝██╔══╝  ██╔═══╝ ██╔══██║██╔══╝  ██║╚██╔╝██║`,
		`  ███████╗███████║      ███████╗██║     ██║  ██║███████╗██║ ╚═╝ ██║`,
		`  ╚══════╝╚══════╝      ╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Solar System Almanac · Offline Ephemeris"))
	b.WriteString("\n")

	copyright := fmt.Sprintf("  (c) 2026 litescript.net | v%s", version.Version)
	b.WriteString(muted.Render(copyright))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Deep blue at the left warming to amber at the right, like dusk.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Violet (#8B5CF6) -> Orange (#F59E0B)
	var r, g, b float64

	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 139 + t*(245-139)
		g = 92 + t*(158-92)
		b = 246 + t*(11-246)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.5)
	r *= brightnessFactor
	g *= brightnessFactor
	b *= brightnessFactor

	ri := clampByte(int(r))
	gi := clampByte(int(g))
	bi := clampByte(int(b))

	return fmt.Sprintf("#%02X%02X%02X", ri, gi, bi)
}

func clampByte(v int) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Almanac", "[2] Sky", "[3] Orrery", "[4] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	if m.snapshot.LastError != nil {
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	} else if !m.snapshot.LastCompute.IsZero() {
		countdown := time.Until(m.snapshot.NextRefresh).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" recompute in %ds", int(countdown.Seconds())))
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Millisecond).String() + ")")
		}
	} else {
		status = accentStyle.Render(spinner) + dimStyle.Render(" Computing ephemeris...")
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = dimStyle.Render("j/k: focus | l: labels | t: stars")
	case ViewOrrery:
		help = dimStyle.Render("j/k: focus | +/-: zoom | arrows: pan | z: scale | l: labels | t: stars")
	case ViewEvents:
		help = dimStyle.Render("↑↓: scroll")
	default:
		help = dimStyle.Render("↑↓: navigate | tab: switch view")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
