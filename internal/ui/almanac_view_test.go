package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
	"github.com/litescript/ls-ephem/internal/state"
)

func sampleSnapshot() state.Snapshot {
	return state.Snapshot{
		Entries: []almanac.Entry{
			{Body: astro.Sun, Name: "Sun", RA: 0.5, Dec: 3.1, Azimuth: 99.5, Altitude: 19.1, Mag: -26.7, Illum: 1.0},
			{Body: astro.Moon, Name: "Moon", RA: 20.5, Dec: -15.0, Azimuth: 250.0, Altitude: -40.0, Mag: -8.0, Illum: 0.15},
			{Body: astro.Mars, Name: "Mars", RA: 21.3, Dec: -14.5, Azimuth: 260.0, Altitude: -35.0, Mag: 1.1, Illum: 0.92},
		},
		Moon:       almanac.MoonInfo{PhaseName: "Waning Crescent", Illum: 0.15},
		ComputedAt: astro.MakeTime(2022, 3, 28, 15, 21, 41.0),
		Observer:   astro.Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0},
	}
}

func TestAlmanacViewRender(t *testing.T) {
	m := NewAlmanacModel().SetSize(120, 30).UpdateData(sampleSnapshot())

	out := m.View()
	for _, want := range []string{"Observer", "Bodies", "Sun", "Moon", "Mars", "Waning Crescent"} {
		if !strings.Contains(out, want) {
			t.Errorf("view output missing %q", want)
		}
	}
}

func TestAlmanacViewEmpty(t *testing.T) {
	m := NewAlmanacModel().SetSize(120, 30)

	out := m.View()
	if !strings.Contains(out, "Computing ephemeris") {
		t.Errorf("empty view should show loading state, got %q", out)
	}
}

func TestAlmanacViewCursor(t *testing.T) {
	m := NewAlmanacModel().SetSize(120, 30).UpdateData(sampleSnapshot())

	if sel := m.SelectedBody(); sel == nil || sel.Name != "Sun" {
		t.Fatalf("initial selection = %v, want Sun", sel)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if sel := m.SelectedBody(); sel == nil || sel.Name != "Moon" {
		t.Errorf("selection after j = %v, want Moon", sel)
	}

	// Cursor must not run past the last entry.
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	if sel := m.SelectedBody(); sel == nil || sel.Name != "Mars" {
		t.Errorf("selection after overshoot = %v, want Mars", sel)
	}
}

func TestRaLabel(t *testing.T) {
	tests := []struct {
		ra   float64
		want string
	}{
		{0.0, "00h00.0m"},
		{12.5, "12h30.0m"},
		{23.99, "23h59.4m"},
	}
	for _, tt := range tests {
		if got := raLabel(tt.ra); got != tt.want {
			t.Errorf("raLabel(%v) = %q, want %q", tt.ra, got, tt.want)
		}
	}
}

func TestDecLabel(t *testing.T) {
	tests := []struct {
		dec  float64
		want string
	}{
		{0.0, "+00°00'"},
		{-16.716, "-16°42'"},
		{89.264, "+89°15'"},
	}
	for _, tt := range tests {
		if got := decLabel(tt.dec); got != tt.want {
			t.Errorf("decLabel(%v) = %q, want %q", tt.dec, got, tt.want)
		}
	}
}

func TestRenderIllumBar(t *testing.T) {
	m := NewAlmanacModel()

	tests := []struct {
		name       string
		frac       float64
		width      int
		wantFilled int
	}{
		{"new", 0.0, 10, 0},
		{"full", 1.0, 10, 10},
		{"half", 0.5, 10, 5},
		{"over full", 1.5, 10, 10}, // capped at width
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := m.renderIllumBar(tt.frac, tt.width)
			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}
			if filled := strings.Count(bar, "█"); filled != tt.wantFilled {
				t.Errorf("filled count = %d, want %d", filled, tt.wantFilled)
			}
		})
	}
}
