package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
	"github.com/litescript/ls-ephem/internal/state"
)

// ScaleMode selects how heliocentric distance maps to the screen.
type ScaleMode int

const (
	// ScaleLog compresses the whole system with log(1+r).
	ScaleLog ScaleMode = iota
	// ScaleInner is linear, sized for Mercury through Mars.
	ScaleInner
	// ScaleOuter is linear, sized for the full system out to Pluto.
	ScaleOuter
)

// orreryBody is a body's heliocentric ecliptic position prepared for display.
type orreryBody struct {
	Body astro.Body
	Name string
	X, Y float64 // display units in the ecliptic plane
	R    float64 // heliocentric distance, AU
	Lon  float64 // ecliptic longitude, degrees
	Lat  float64 // ecliptic latitude, degrees
}

// orreryBodies lists the plotted bodies; Earth is included so the observer's
// planet shows among the rest.
var orreryBodies = []astro.Body{
	astro.Mercury,
	astro.Venus,
	astro.Earth,
	astro.Mars,
	astro.Jupiter,
	astro.Saturn,
	astro.Uranus,
	astro.Neptune,
	astro.Pluto,
}

var giantBodies = map[astro.Body]bool{
	astro.Jupiter: true,
	astro.Saturn:  true,
	astro.Uranus:  true,
	astro.Neptune: true,
}

// lightSecondsPerAu converts AU to one-way light travel seconds.
const lightSecondsPerAu = 499.004784

// OrreryModel renders a top-down view of the solar system.
type OrreryModel struct {
	width  int
	height int
	bodies []orreryBody
	when   astro.Time

	// View state
	focusIdx   int // index into bodies (-1 = Sun)
	zoomLevel  int // index into zoomLevels
	panX       float64
	panY       float64
	scaleMode  ScaleMode
	labelMode  LabelMode
	userPanned bool
	showStars  bool

	stars []almanac.Star
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

// NewOrreryModel creates a new orrery view model.
func NewOrreryModel() OrreryModel {
	return OrreryModel{
		focusIdx:  -1, // Start focused on Sun
		zoomLevel: 3,  // Index of 1.0 in zoomLevels
		scaleMode: ScaleLog,
		labelMode: LabelFocused,
		showStars: true,
		stars:     almanac.BrightStars(2.5),
	}
}

func (m OrreryModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData recomputes heliocentric positions for the snapshot time.
func (m OrreryModel) UpdateData(snapshot state.Snapshot) OrreryModel {
	m.when = snapshot.ComputedAt
	m.bodies = m.bodies[:0]

	eqjToEcl := astro.RotationEQJtoECL()
	for _, body := range orreryBodies {
		helio, err := astro.HelioVector(body, m.when)
		if err != nil {
			continue
		}
		ecl := astro.RotateVector(eqjToEcl, helio)

		r := helio.Length()
		lon := math.Atan2(ecl.Y, ecl.X) * 180.0 / math.Pi
		if lon < 0 {
			lon += 360.0
		}
		lat := math.Asin(ecl.Z/r) * 180.0 / math.Pi

		// Scale the in-plane direction to the display radius.
		planar := math.Hypot(ecl.X, ecl.Y)
		factor := 0.0
		if planar > 0 {
			factor = m.displayRadius(r) / planar
		}

		m.bodies = append(m.bodies, orreryBody{
			Body: body,
			Name: body.Name(),
			X:    ecl.X * factor,
			Y:    ecl.Y * factor,
			R:    r,
			Lon:  lon,
			Lat:  lat,
		})
	}

	if m.focusIdx >= len(m.bodies) {
		m.focusIdx = -1
	}
	return m
}

// displayRadius maps heliocentric distance in AU to display units, where
// ~1.5 display units reach the edge of the canvas at zoom 1.0x.
func (m OrreryModel) displayRadius(r float64) float64 {
	switch m.scaleMode {
	case ScaleInner:
		return r / 2.0 * 1.5
	case ScaleOuter:
		return r / 40.0 * 1.5
	default:
		return math.Log1p(r) / math.Log1p(40.0) * 1.5
	}
}

// Update handles input messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()

		// Viewport panning (arrow keys)
		case "up":
			m.panY -= 0.1 / m.scale()
			m.userPanned = true
		case "down":
			m.panY += 0.1 / m.scale()
			m.userPanned = true
		case "left":
			m.panX -= 0.1 / m.scale()
			m.userPanned = true
		case "right":
			m.panX += 0.1 / m.scale()
			m.userPanned = true
		case "c":
			m.panX, m.panY = 0, 0 // Center on Sun
			m.userPanned = false

		case "f":
			m.centerOnFocused()
			m.userPanned = false

		// Zoom - only auto-center if user hasn't panned
		case "+", "=":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "-":
			if m.zoomLevel > 0 {
				m.zoomLevel--
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "0":
			m.zoomLevel = 3
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "z":
			m.scaleMode = (m.scaleMode + 1) % 3
			m.bodies = m.rescaleBodies()
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "l":
			m.labelMode = (m.labelMode + 1) % 3

		case "t":
			m.showStars = !m.showStars

		case "r":
			m.panX, m.panY = 0, 0
			m.zoomLevel = 3
			m.userPanned = false
		}
	}
	return m, nil
}

// rescaleBodies reprojects bodies after a scale mode change.
func (m OrreryModel) rescaleBodies() []orreryBody {
	out := make([]orreryBody, len(m.bodies))
	copy(out, m.bodies)
	for i := range out {
		b := &out[i]
		planar := math.Hypot(b.X, b.Y)
		if planar == 0 {
			continue
		}
		// Direction is preserved; only the radius mapping changes.
		lonRad := math.Atan2(b.Y, b.X)
		dr := m.displayRadius(b.R)
		b.X = dr * math.Cos(lonRad)
		b.Y = dr * math.Sin(lonRad)
	}
	return out
}

func (m *OrreryModel) focusNext() {
	if len(m.bodies) == 0 {
		return
	}
	m.focusIdx++
	if m.focusIdx >= len(m.bodies) {
		m.focusIdx = -1 // Wrap to Sun
	}
	m.centerOnFocused()
	m.userPanned = false
}

func (m *OrreryModel) focusPrev() {
	if len(m.bodies) == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < -1 {
		m.focusIdx = len(m.bodies) - 1
	}
	m.centerOnFocused()
	m.userPanned = false
}

// centerOnFocused pans the view to center on the currently focused body.
func (m *OrreryModel) centerOnFocused() {
	if m.focusIdx < 0 || m.focusIdx >= len(m.bodies) {
		m.panX, m.panY = 0, 0
		return
	}
	body := m.bodies[m.focusIdx]
	m.panX = -body.X
	m.panY = -body.Y
}

// View renders the orrery.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}

	canvas := m.buildCanvas()
	hud := m.renderHUD()

	return lipgloss.JoinVertical(lipgloss.Left, canvas, hud)
}

// buildCanvas renders the solar system to a string canvas.
func (m OrreryModel) buildCanvas() string {
	canvasH := m.height - 5
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	screenCenterX := canvasW / 2
	screenCenterY := canvasH / 2

	// Map 1.5 display units to most of the half-canvas.
	maxDisplayR := float64(minInt(screenCenterX, screenCenterY*2)) * 0.9
	displayScale := maxDisplayR / 1.5 * m.scale()

	originX := screenCenterX + int(m.panX*displayScale)
	originY := screenCenterY - int(m.panY*displayScale)

	if m.showStars {
		m.drawStarfield(grid, originX, originY, displayScale)
	}

	m.drawOrbitRings(grid, originX, originY, displayScale)

	var positions []bodyPos

	for i, body := range m.bodies {
		sx := originX + int(body.X*displayScale)
		sy := originY - int(body.Y*displayScale*0.5) // Y flipped, aspect corrected

		if sx < 0 || sx >= canvasW || sy < 0 || sy >= canvasH {
			continue
		}

		grid[sy][sx] = m.bodyGlyph(body.Body, i == m.focusIdx)

		positions = append(positions, bodyPos{
			x:         sx,
			y:         sy,
			name:      body.Name,
			isFocused: i == m.focusIdx,
		})
	}

	// Draw Sun at panned origin LAST so it's always visible
	if originX >= 0 && originX < canvasW && originY >= 0 && originY < canvasH {
		grid[originY][originX] = '☉'
		positions = append(positions, bodyPos{
			x:         originX,
			y:         originY,
			name:      "Sun",
			isFocused: m.focusIdx == -1,
		})
	}

	m.renderGridLabels(grid, canvasW, canvasH, positions)

	return m.renderGrid(grid)
}

func (m OrreryModel) drawOrbitRings(grid [][]rune, cx, cy int, scale float64) {
	// Reference circles near Earth, Jupiter, Saturn, Uranus, Neptune orbits
	orbitAUs := []float64{1, 5, 10, 20, 30}

	for _, au := range orbitAUs {
		m.drawCircle(grid, cx, cy, m.displayRadius(au)*scale)
	}
}

func (m OrreryModel) drawCircle(grid [][]rune, cx, cy int, r float64) {
	if r < 1 {
		return
	}

	h := len(grid)
	w := len(grid[0])

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(r*math.Cos(theta))
		y := cy - int(r*math.Sin(theta)*0.5) // Aspect ratio correction

		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
	}
}

// drawStarfield renders background stars projected by ecliptic longitude
// onto a shell just inside the canvas edge, so they stay put as a backdrop
// at any zoom level.
func (m OrreryModel) drawStarfield(grid [][]rune, cx, cy int, displayScale float64) {
	h := len(grid)
	w := len(grid[0])

	eqjToEcl := astro.RotationEQJtoECL()
	shell := 1.45 / m.scale()

	for _, star := range m.stars {
		raRad := star.RAdeg * math.Pi / 180.0
		decRad := star.DecDeg * math.Pi / 180.0
		dir := astro.Vector{
			X: math.Cos(decRad) * math.Cos(raRad),
			Y: math.Cos(decRad) * math.Sin(raRad),
			Z: math.Sin(decRad),
		}
		ecl := astro.RotateVector(eqjToEcl, dir)

		planar := math.Hypot(ecl.X, ecl.Y)
		if planar < 0.3 {
			// Too close to the ecliptic pole to have a stable longitude.
			continue
		}

		sx := cx + int(ecl.X/planar*shell*displayScale)
		sy := cy - int(ecl.Y/planar*shell*displayScale*0.5)

		if sx < 0 || sx >= w || sy < 0 || sy >= h {
			continue
		}
		if grid[sy][sx] != ' ' {
			continue
		}

		if glyph := orreryStarGlyph(star.Mag); glyph != ' ' {
			grid[sy][sx] = glyph
		}
	}
}

// orreryStarGlyph returns a subtle glyph based on star magnitude.
func orreryStarGlyph(mag float64) rune {
	switch {
	case mag <= 1.0:
		return '∗'
	case mag <= 2.5:
		return '˙'
	default:
		return ' '
	}
}

// renderGridLabels draws body labels on the canvas based on label mode.
func (m OrreryModel) renderGridLabels(grid [][]rune, width, height int, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for _, pos := range positions {
		showLabel := false
		switch m.labelMode {
		case LabelFocused:
			showLabel = pos.isFocused
		case LabelAll:
			showLabel = true
		}
		if !showLabel {
			continue
		}

		labelX := pos.x + 2
		labelY := pos.y
		if labelY < 0 || labelY >= height || labelX >= width {
			continue
		}

		labelText := pos.name
		if pos.isFocused {
			labelText = "◄ " + pos.name
		}

		for i, r := range labelText {
			x := labelX + i
			if x >= width {
				break
			}
			// Labels may overwrite orbit rings but not bodies or stars.
			if grid[labelY][x] == ' ' || grid[labelY][x] == '·' {
				grid[labelY][x] = r
			}
		}
	}
}

func (m OrreryModel) bodyGlyph(body astro.Body, focused bool) rune {
	if giantBodies[body] {
		if focused {
			return '◉'
		}
		return '○'
	}
	if focused {
		return '●'
	}
	return '•'
}

func (m OrreryModel) renderGrid(grid [][]rune) string {
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	planetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	giantStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	for _, row := range grid {
		for _, ch := range row {
			var style lipgloss.Style

			switch ch {
			case ' ':
				b.WriteRune(ch)
				continue
			case '·':
				style = dimStyle
			case '∗', '˙':
				style = starStyle
			case '☉':
				style = sunStyle
			case '•':
				style = planetStyle
			case '○':
				style = giantStyle
			case '●', '◉', '◄':
				style = focusStyle
			default:
				style = labelStyle
			}

			b.WriteString(style.Render(string(ch)))
		}
		b.WriteRune('\n')
	}

	return b.String()
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	hudHeaderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var focused *orreryBody
	if m.focusIdx >= 0 && m.focusIdx < len(m.bodies) {
		focused = &m.bodies[m.focusIdx]
	}

	if focused != nil {
		b.WriteString(hudHeaderStyle.Render(fmt.Sprintf("◆ %s", focused.Name)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Distance:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f AU", focused.R)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Light Time:"))
		b.WriteString(valueStyle.Render(formatLightTime(focused.R * lightSecondsPerAu)))
	} else {
		b.WriteString(hudHeaderStyle.Render("☉ Sun"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(center of solar system)"))
	}
	b.WriteString("\n")

	if focused != nil {
		b.WriteString(labelStyle.Render("Ecl Lon:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", focused.Lon)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Ecl Lat:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", focused.Lat)))
		b.WriteString("  ")
	}

	modeName := ""
	switch m.scaleMode {
	case ScaleLog:
		modeName = "Log"
	case ScaleInner:
		modeName = "Inner"
	case ScaleOuter:
		modeName = "Outer"
	}

	labelName := ""
	switch m.labelMode {
	case LabelNone:
		labelName = "off"
	case LabelFocused:
		labelName = "focus"
	case LabelAll:
		labelName = "all"
	}

	starsName := "off"
	if m.showStars {
		starsName = "on"
	}

	b.WriteString(dimStyle.Render("Mode:"))
	b.WriteString(valueStyle.Render(modeName))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(labelName))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Stars:"))
	b.WriteString(valueStyle.Render(starsName))

	return b.String()
}

// FocusedBody returns the currently focused body, or nil for Sun.
func (m OrreryModel) FocusedBody() *orreryBody {
	if m.focusIdx >= 0 && m.focusIdx < len(m.bodies) {
		return &m.bodies[m.focusIdx]
	}
	return nil
}

// formatLightTime renders one-way light travel time human-readably.
func formatLightTime(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1f s", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f min", seconds/60)
	default:
		return fmt.Sprintf("%.2f hr", seconds/3600)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
