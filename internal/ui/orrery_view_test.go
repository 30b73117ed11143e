package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestOrreryUpdateData(t *testing.T) {
	m := NewOrreryModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	if len(m.bodies) != len(orreryBodies) {
		t.Fatalf("body count = %d, want %d", len(m.bodies), len(orreryBodies))
	}

	for _, b := range m.bodies {
		if b.R <= 0 {
			t.Errorf("%s: heliocentric distance %v, want > 0", b.Name, b.R)
		}
		if b.Lon < 0 || b.Lon >= 360 {
			t.Errorf("%s: ecliptic longitude %v out of [0, 360)", b.Name, b.Lon)
		}
		if math.Abs(b.Lat) > 20 {
			t.Errorf("%s: ecliptic latitude %v implausibly large", b.Name, b.Lat)
		}
	}

	// Earth sits close to 1 AU.
	var earthR float64
	for _, b := range m.bodies {
		if b.Name == "Earth" {
			earthR = b.R
		}
	}
	if math.Abs(earthR-1.0) > 0.02 {
		t.Errorf("Earth distance = %v AU, want ~1", earthR)
	}
}

func TestOrreryDisplayRadius(t *testing.T) {
	m := NewOrreryModel()

	m.scaleMode = ScaleInner
	if got := m.displayRadius(2.0); got != 1.5 {
		t.Errorf("inner displayRadius(2) = %v, want 1.5", got)
	}

	m.scaleMode = ScaleOuter
	if got := m.displayRadius(40.0); got != 1.5 {
		t.Errorf("outer displayRadius(40) = %v, want 1.5", got)
	}

	m.scaleMode = ScaleLog
	if got := m.displayRadius(40.0); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("log displayRadius(40) = %v, want 1.5", got)
	}
	// Log scale preserves ordering but compresses.
	inner := m.displayRadius(1.0)
	outer := m.displayRadius(30.0)
	if inner >= outer {
		t.Errorf("log scale ordering broken: %v >= %v", inner, outer)
	}
	if outer/inner >= 30.0 {
		t.Errorf("log scale should compress, ratio = %v", outer/inner)
	}
}

func TestOrreryFocusWrap(t *testing.T) {
	m := NewOrreryModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	if m.focusIdx != -1 {
		t.Fatalf("initial focus = %d, want -1 (Sun)", m.focusIdx)
	}

	m, _ = m.Update(keyRune(']'))
	if m.focusIdx != 0 {
		t.Errorf("focus after ] = %d, want 0", m.focusIdx)
	}

	// Step past the last body wraps back to Sun.
	for i := 0; i < len(m.bodies); i++ {
		m, _ = m.Update(keyRune(']'))
	}
	if m.focusIdx != -1 {
		t.Errorf("focus after full cycle = %d, want -1", m.focusIdx)
	}

	// Backwards from Sun lands on the last body.
	m, _ = m.Update(keyRune('['))
	if m.focusIdx != len(m.bodies)-1 {
		t.Errorf("focus before Sun = %d, want %d", m.focusIdx, len(m.bodies)-1)
	}
}

func TestOrreryZoomBounds(t *testing.T) {
	m := NewOrreryModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	for i := 0; i < len(zoomLevels)+3; i++ {
		m, _ = m.Update(keyRune('+'))
	}
	if m.zoomLevel != len(zoomLevels)-1 {
		t.Errorf("zoom level after max = %d, want %d", m.zoomLevel, len(zoomLevels)-1)
	}

	for i := 0; i < len(zoomLevels)+3; i++ {
		m, _ = m.Update(keyRune('-'))
	}
	if m.zoomLevel != 0 {
		t.Errorf("zoom level after min = %d, want 0", m.zoomLevel)
	}

	m, _ = m.Update(keyRune('0'))
	if m.scale() != 1.0 {
		t.Errorf("scale after reset = %v, want 1.0", m.scale())
	}
}

func TestOrreryPanAndReset(t *testing.T) {
	m := NewOrreryModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.panX == 0 || !m.userPanned {
		t.Errorf("right arrow should pan, panX = %v userPanned = %v", m.panX, m.userPanned)
	}

	m, _ = m.Update(keyRune('r'))
	if m.panX != 0 || m.panY != 0 || m.userPanned || m.zoomLevel != 3 {
		t.Error("r should reset pan, zoom, and pan flag")
	}
}

func TestOrreryScaleModeCycle(t *testing.T) {
	m := NewOrreryModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	var earth *orreryBody
	for i := range m.bodies {
		if m.bodies[i].Name == "Earth" {
			earth = &m.bodies[i]
		}
	}
	logR := math.Hypot(earth.X, earth.Y)

	m, _ = m.Update(keyRune('z'))
	if m.scaleMode != ScaleInner {
		t.Fatalf("scale mode after z = %v, want ScaleInner", m.scaleMode)
	}

	for i := range m.bodies {
		if m.bodies[i].Name == "Earth" {
			earth = &m.bodies[i]
		}
	}
	innerR := math.Hypot(earth.X, earth.Y)
	if math.Abs(innerR-logR) < 1e-9 {
		t.Error("scale mode change should reproject body positions")
	}
	if math.Abs(innerR-earth.R/2.0*1.5) > 1e-9 {
		t.Errorf("inner scale Earth display radius = %v, want %v", innerR, earth.R/2.0*1.5)
	}
}

func TestOrreryRender(t *testing.T) {
	m := NewOrreryModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	out := m.View()
	if !strings.Contains(out, "☉") {
		t.Error("view output missing Sun glyph")
	}
	if !strings.Contains(out, "Sun") {
		t.Error("view output missing Sun HUD line")
	}
	if !strings.Contains(out, "Mode:") || !strings.Contains(out, "Zoom:") {
		t.Error("view output missing HUD indicators")
	}

	// Focusing a planet switches the HUD to its stats.
	m, _ = m.Update(keyRune(']'))
	out = m.View()
	if !strings.Contains(out, "Mercury") {
		t.Error("view output missing focused body name")
	}
	if !strings.Contains(out, "Light Time:") {
		t.Error("view output missing light time")
	}
}

func TestOrreryTooSmall(t *testing.T) {
	m := NewOrreryModel().SetSize(20, 5)
	if out := m.View(); !strings.Contains(out, "too small") {
		t.Errorf("small view should warn, got %q", out)
	}
}

func TestFormatLightTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{30.0, "30.0 s"},
		{499.004784, "8.3 min"},
		{4 * 3600.0, "4.00 hr"},
	}
	for _, tt := range tests {
		if got := formatLightTime(tt.seconds); got != tt.want {
			t.Errorf("formatLightTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
