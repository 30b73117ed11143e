package almanac

import (
	"math"
	"testing"

	"github.com/litescript/ls-ephem/internal/astro"
)

func findEvent(events []Event, typ EventType, label string) *Event {
	for i := range events {
		if events[i].Type == typ && events[i].Label == label {
			return &events[i]
		}
	}
	return nil
}

func TestUpcomingEvents(t *testing.T) {
	start := astro.MakeTime(2022, 1, 1, 0, 0, 0.0)

	events, err := UpcomingEvents(start, 90.0)
	if err != nil {
		t.Fatalf("UpcomingEvents error: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("no events found in a 90 day window")
	}

	tests := []struct {
		typ   EventType
		label string
		ut    float64
	}{
		{EventMoonQuarter, "New Moon", 8037.2737073754079},
		{EventMoonQuarter, "Full Moon", 8052.4925231823245},
		{EventLunarApsis, "Lunar perigee (358025 km)", 8036.4548530903367},
		{EventLunarApsis, "Lunar apogee (405792 km)", 8048.8926427740989},
		{EventMaxElongation, "Mercury greatest elongation (19.2° evening)", 8041.9587826759671},
		{EventSeason, "March equinox", 8114.1482244183726},
	}

	for _, tt := range tests {
		ev := findEvent(events, tt.typ, tt.label)
		if ev == nil {
			t.Errorf("event %q (%s) not found", tt.label, tt.typ)
			continue
		}
		if math.Abs(ev.Time.UT-tt.ut) > 3e-4 {
			t.Errorf("%q: UT = %.17g, want %.17g", tt.label, ev.Time.UT, tt.ut)
		}
	}
}

func TestUpcomingEventsSorted(t *testing.T) {
	events, err := UpcomingEvents(astro.MakeTime(2022, 1, 1, 0, 0, 0.0), 60.0)
	if err != nil {
		t.Fatalf("UpcomingEvents error: %v", err)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Time.UT < events[i-1].Time.UT {
			t.Errorf("events out of order at index %d: %v after %v", i, events[i].Time, events[i-1].Time)
		}
	}
}

func TestUpcomingEventsWindow(t *testing.T) {
	start := astro.MakeTime(2022, 1, 1, 0, 0, 0.0)
	days := 30.0
	end := start.AddDays(days)

	events, err := UpcomingEvents(start, days)
	if err != nil {
		t.Fatalf("UpcomingEvents error: %v", err)
	}
	for _, ev := range events {
		if ev.Time.UT < start.UT || ev.Time.UT > end.UT {
			t.Errorf("event %q at %v outside window", ev.Label, ev.Time)
		}
	}
}
