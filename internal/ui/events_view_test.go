package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
	"github.com/litescript/ls-ephem/internal/state"
)

func eventsSnapshot() state.Snapshot {
	snap := sampleSnapshot()
	snap.SkyEvents = []almanac.Event{
		{Time: astro.MakeTime(2022, 4, 1, 6, 24, 0), Type: almanac.EventMoonQuarter, Body: astro.Moon, Label: "New Moon"},
		{Time: astro.MakeTime(2022, 4, 7, 19, 11, 0), Type: almanac.EventLunarApsis, Body: astro.Moon, Label: "Lunar apogee (404438 km)"},
		{Time: astro.MakeTime(2022, 4, 29, 20, 41, 0), Type: almanac.EventMaxElongation, Body: astro.Mercury, Label: "Mercury greatest elongation (20.6° evening)"},
	}
	snap.Events = []state.Event{
		{Type: state.EventBodyRisen, Timestamp: time.Date(2022, 3, 28, 13, 45, 0, 0, time.UTC), Body: "Sun", Azimuth: 99.5},
		{Type: state.EventBodySet, Timestamp: time.Date(2022, 3, 28, 14, 10, 0, 0, time.UTC), Body: "Moon", Azimuth: 250.0},
	}
	return snap
}

func TestEventsViewRender(t *testing.T) {
	m := NewEventsModel().SetSize(120, 40).UpdateData(eventsSnapshot())

	out := m.View()
	for _, want := range []string{
		"Upcoming Events",
		"New Moon",
		"Lunar apogee",
		"Mercury greatest elongation",
		"Recent Horizon Crossings",
		"Sun rose at Az 100°",
		"Moon set at Az 250°",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view output missing %q", want)
		}
	}
}

func TestEventsViewEmpty(t *testing.T) {
	m := NewEventsModel().SetSize(120, 40).UpdateData(sampleSnapshot())

	out := m.View()
	if !strings.Contains(out, "No events computed yet") {
		t.Errorf("empty view should show placeholder, got %q", out)
	}
	if strings.Contains(out, "Recent Horizon Crossings") {
		t.Error("crossings section should be hidden with no events")
	}
}

func TestEventsViewScroll(t *testing.T) {
	m := NewEventsModel().SetSize(120, 40).UpdateData(eventsSnapshot())

	m, _ = m.Update(keyRune('k'))
	if m.scroll != 0 {
		t.Errorf("scroll above top = %d, want 0", m.scroll)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.Update(keyRune('j'))
	}
	if m.scroll != len(m.snapshot.SkyEvents)-1 {
		t.Errorf("scroll past end = %d, want %d", m.scroll, len(m.snapshot.SkyEvents)-1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if m.scroll != 0 {
		t.Errorf("scroll after home = %d, want 0", m.scroll)
	}
}

func TestEventsViewScrollReset(t *testing.T) {
	m := NewEventsModel().SetSize(120, 40).UpdateData(eventsSnapshot())

	m, _ = m.Update(keyRune('j'))
	m, _ = m.Update(keyRune('j'))

	// A shorter event list must not leave the scroll dangling.
	snap := sampleSnapshot()
	snap.SkyEvents = []almanac.Event{
		{Time: astro.MakeTime(2022, 4, 1, 6, 24, 0), Type: almanac.EventMoonQuarter, Body: astro.Moon, Label: "New Moon"},
	}
	m = m.UpdateData(snap)
	if m.scroll != 0 {
		t.Errorf("scroll after shrink = %d, want 0", m.scroll)
	}
}
