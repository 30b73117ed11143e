// Package almanac derives observer-centric summaries from the astro package:
// where each body is in the sky right now, how bright it is, and when it
// rises and sets.
package almanac

import (
	"math"

	"github.com/litescript/ls-ephem/internal/astro"
)

// DefaultBodies lists the bodies an almanac covers, in display order.
var DefaultBodies = []astro.Body{
	astro.Sun,
	astro.Moon,
	astro.Mercury,
	astro.Venus,
	astro.Mars,
	astro.Jupiter,
	astro.Saturn,
	astro.Uranus,
	astro.Neptune,
	astro.Pluto,
}

// Entry is the almanac line for a single body at a single time and place.
type Entry struct {
	Body astro.Body
	Name string

	// Equator-of-date coordinates, corrected for aberration.
	RA   float64 // sidereal hours
	Dec  float64 // degrees
	Dist float64 // AU from the observer

	// Horizontal coordinates with standard atmospheric refraction.
	Azimuth  float64 // degrees clockwise from north
	Altitude float64 // degrees above the horizon

	Mag        float64 // apparent visual magnitude
	PhaseAngle float64 // Sun-body-Earth angle, degrees
	Illum      float64 // illuminated fraction of the disc, 0..1
	RingTilt   float64 // Saturn only, degrees

	// Next rise and set after the almanac time. A body that stays up or
	// stays down for the whole search window has HasRise/HasSet false.
	Rise    astro.Time
	Set     astro.Time
	HasRise bool
	HasSet  bool
}

// Up reports whether the body is above the horizon.
func (e Entry) Up() bool {
	return e.Altitude > 0.0
}

// riseSetWindowDays bounds the rise/set search. Two days covers bodies
// whose next rise is more than a day out (high-latitude Moon).
const riseSetWindowDays = 2.0

// ComputeEntry builds the almanac entry for one body.
func ComputeEntry(body astro.Body, time astro.Time, observer astro.Observer) (Entry, error) {
	entry := Entry{
		Body: body,
		Name: body.Name(),
	}

	equ, err := astro.Equator(body, time, observer, astro.EquatorOfDate, astro.WithAberration)
	if err != nil {
		return Entry{}, err
	}
	entry.RA = equ.RA
	entry.Dec = equ.Dec
	entry.Dist = equ.Dist

	hor := astro.Horizon(time, observer, equ.RA, equ.Dec, astro.RefractionNormal)
	entry.Azimuth = hor.Azimuth
	entry.Altitude = hor.Altitude

	illum, err := astro.Illumination(body, time)
	if err != nil {
		return Entry{}, err
	}
	entry.Mag = illum.Mag
	entry.PhaseAngle = illum.PhaseAngle
	entry.RingTilt = illum.RingTilt
	entry.Illum = (1.0 + math.Cos(illum.PhaseAngle*math.Pi/180.0)) / 2.0

	if rise, err := astro.SearchRiseSet(body, observer, astro.DirectionRise, time, riseSetWindowDays); err == nil {
		entry.Rise = rise
		entry.HasRise = true
	} else if err != astro.ErrSearchFailure {
		return Entry{}, err
	}
	if set, err := astro.SearchRiseSet(body, observer, astro.DirectionSet, time, riseSetWindowDays); err == nil {
		entry.Set = set
		entry.HasSet = true
	} else if err != astro.ErrSearchFailure {
		return Entry{}, err
	}

	return entry, nil
}

// Compute builds almanac entries for all of DefaultBodies.
func Compute(time astro.Time, observer astro.Observer) ([]Entry, error) {
	entries := make([]Entry, 0, len(DefaultBodies))
	for _, body := range DefaultBodies {
		entry, err := ComputeEntry(body, time, observer)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MoonInfo extends the Moon's almanac entry with its phase cycle.
type MoonInfo struct {
	PhaseAngle float64 // ecliptic longitude of Moon relative to Sun, degrees
	PhaseName  string
	Illum      float64
}

var phaseNames = []string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Third Quarter", "Waning Crescent",
}

// ComputeMoonInfo describes the Moon's phase at the given time.
func ComputeMoonInfo(time astro.Time) (MoonInfo, error) {
	phase, err := astro.MoonPhase(time)
	if err != nil {
		return MoonInfo{}, err
	}
	illum, err := astro.Illumination(astro.Moon, time)
	if err != nil {
		return MoonInfo{}, err
	}

	// Each named phase owns a 45 degree slice centered on its exact angle.
	slot := int(math.Floor(phase/45.0+0.5)) % 8

	return MoonInfo{
		PhaseAngle: phase,
		PhaseName:  phaseNames[slot],
		Illum:      (1.0 + math.Cos(illum.PhaseAngle*math.Pi/180.0)) / 2.0,
	}, nil
}
