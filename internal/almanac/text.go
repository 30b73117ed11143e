package almanac

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-ephem/internal/astro"
)

// EntryExport is the JSON-serializable form of an almanac entry.
type EntryExport struct {
	Body       string  `json:"body"`
	RA         float64 `json:"ra_hours"`
	Dec        float64 `json:"dec_degrees"`
	Distance   float64 `json:"distance_au"`
	Azimuth    float64 `json:"azimuth"`
	Altitude   float64 `json:"altitude"`
	Magnitude  float64 `json:"magnitude"`
	PhaseAngle float64 `json:"phase_angle"`
	Illum      float64 `json:"illuminated_fraction"`
	RingTilt   float64 `json:"ring_tilt,omitempty"`
	Rise       string  `json:"rise,omitempty"`
	Set        string  `json:"set,omitempty"`
}

// AlmanacExport is the JSON-serializable almanac snapshot.
type AlmanacExport struct {
	Time      string        `json:"time"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Height    float64       `json:"height_m"`
	Entries   []EntryExport `json:"entries"`
	Events    []EventExport `json:"events,omitempty"`
}

// EventExport is the JSON-serializable form of a sky event.
type EventExport struct {
	Time  string `json:"time"`
	Type  string `json:"type"`
	Body  string `json:"body,omitempty"`
	Label string `json:"label"`
}

// Export converts entries and events into the JSON-friendly form.
func Export(time astro.Time, observer astro.Observer, entries []Entry, events []Event) *AlmanacExport {
	out := &AlmanacExport{
		Time:      time.String(),
		Latitude:  observer.Latitude,
		Longitude: observer.Longitude,
		Height:    observer.Height,
	}
	for _, e := range entries {
		exp := EntryExport{
			Body:       e.Name,
			RA:         e.RA,
			Dec:        e.Dec,
			Distance:   e.Dist,
			Azimuth:    e.Azimuth,
			Altitude:   e.Altitude,
			Magnitude:  e.Mag,
			PhaseAngle: e.PhaseAngle,
			Illum:      e.Illum,
			RingTilt:   e.RingTilt,
		}
		if e.HasRise {
			exp.Rise = e.Rise.String()
		}
		if e.HasSet {
			exp.Set = e.Set.String()
		}
		out.Entries = append(out.Entries, exp)
	}
	for _, ev := range events {
		exp := EventExport{
			Time:  ev.Time.String(),
			Type:  string(ev.Type),
			Label: ev.Label,
		}
		if ev.Body != astro.InvalidBody {
			exp.Body = ev.Body.Name()
		}
		out.Events = append(out.Events, exp)
	}
	return out
}

// WriteJSON writes the export as indented JSON.
func (a *AlmanacExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// WriteTable writes the almanac as a fixed-width text table.
func WriteTable(w io.Writer, time astro.Time, observer astro.Observer, entries []Entry) {
	fmt.Fprintf(w, "Almanac @ %s for %.4f°N %.4f°E\n", time, observer.Latitude, observer.Longitude)
	fmt.Fprintln(w, strings.Repeat("─", 96))
	fmt.Fprintf(w, "%-9s %9s %9s %11s %8s %8s %7s %6s %-12s %-12s\n",
		"Body", "RA", "Dec", "Dist (AU)", "Az", "Alt", "Mag", "Illum", "Rise", "Set")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	for _, e := range entries {
		rise := "—"
		if e.HasRise {
			rise = clockTime(e.Rise)
		}
		set := "—"
		if e.HasSet {
			set = clockTime(e.Set)
		}
		fmt.Fprintf(w, "%-9s %9s %9s %11.6f %8.2f %8.2f %7.2f %5.0f%% %-12s %-12s\n",
			e.Name,
			formatRA(e.RA),
			formatDec(e.Dec),
			e.Dist,
			e.Azimuth,
			e.Altitude,
			e.Mag,
			e.Illum*100,
			rise,
			set,
		)
	}
}

// WriteMoon writes a short moon phase card.
func WriteMoon(w io.Writer, time astro.Time, info MoonInfo) {
	fmt.Fprintf(w, "Moon @ %s\n", time)
	fmt.Fprintf(w, "  Phase:       %s (%.1f°)\n", info.PhaseName, info.PhaseAngle)
	fmt.Fprintf(w, "  Illuminated: %.0f%%\n", info.Illum*100)
}

// WriteEvents writes the event list as text, one event per line.
func WriteEvents(w io.Writer, events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events in window")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%s  %s\n", ev.Time, ev.Label)
	}
}

// formatRA renders sidereal hours as "HHhMMmSSs".
func formatRA(ra float64) string {
	h := int(ra)
	mf := (ra - float64(h)) * 60.0
	m := int(mf)
	s := (mf - float64(m)) * 60.0
	return fmt.Sprintf("%02dh%02dm%02.0fs", h, m, s)
}

// formatDec renders declination degrees as "±DD°MM'".
func formatDec(dec float64) string {
	sign := "+"
	if dec < 0 {
		sign = "-"
		dec = -dec
	}
	d := int(dec)
	m := int((dec - float64(d)) * 60.0)
	return fmt.Sprintf("%s%02d°%02d'", sign, d, m)
}

// clockTime renders just the time-of-day part of a timestamp.
func clockTime(t astro.Time) string {
	utc := t.UTC()
	return fmt.Sprintf("%02d/%02d %02d:%02d", utc.Month, utc.Day, utc.Hour, utc.Minute)
}
