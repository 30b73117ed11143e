package almanac

import (
	"fmt"
	"sort"

	"github.com/litescript/ls-ephem/internal/astro"
)

// EventType classifies an upcoming sky event.
type EventType string

const (
	EventMoonQuarter   EventType = "MOON_QUARTER"
	EventLunarApsis    EventType = "LUNAR_APSIS"
	EventSeason        EventType = "SEASON"
	EventMaxElongation EventType = "MAX_ELONGATION"
	EventOpposition    EventType = "OPPOSITION"
	EventConjunction   EventType = "CONJUNCTION"
)

// Event is a dated sky event with a human-readable label.
type Event struct {
	Time  astro.Time
	Type  EventType
	Body  astro.Body // InvalidBody for events without a single subject
	Label string
}

var quarterNames = [4]string{"New Moon", "First Quarter", "Full Moon", "Third Quarter"}

// UpcomingEvents scans the window [start, start+days] for moon quarters,
// lunar apsides, season changes, inner-planet elongations, and superior
// planet oppositions and conjunctions. Events are returned in time order.
func UpcomingEvents(start astro.Time, days float64) ([]Event, error) {
	end := start.AddDays(days)
	var events []Event

	within := func(t astro.Time) bool {
		return t.UT >= start.UT && t.UT <= end.UT
	}

	// Moon quarters repeat every ~7.4 days, so walk the chain.
	mq, err := astro.SearchMoonQuarter(start)
	if err != nil {
		return nil, err
	}
	for within(mq.Time) {
		events = append(events, Event{
			Time:  mq.Time,
			Type:  EventMoonQuarter,
			Body:  astro.Moon,
			Label: quarterNames[mq.Quarter],
		})
		mq, err = astro.NextMoonQuarter(mq)
		if err != nil {
			return nil, err
		}
	}

	apsis, err := astro.SearchLunarApsis(start)
	if err != nil {
		return nil, err
	}
	for within(apsis.Time) {
		label := fmt.Sprintf("Lunar perigee (%.0f km)", apsis.DistKM)
		if apsis.Kind == astro.Apocenter {
			label = fmt.Sprintf("Lunar apogee (%.0f km)", apsis.DistKM)
		}
		events = append(events, Event{
			Time:  apsis.Time,
			Type:  EventLunarApsis,
			Body:  astro.Moon,
			Label: label,
		})
		apsis, err = astro.NextLunarApsis(apsis)
		if err != nil {
			return nil, err
		}
	}

	// Season changes: the window can straddle a year boundary.
	startYear := start.UTC().Year
	endYear := end.UTC().Year
	for year := startYear; year <= endYear; year++ {
		seasons, err := astro.Seasons(year)
		if err != nil {
			return nil, err
		}
		checks := []struct {
			t     astro.Time
			label string
		}{
			{seasons.MarEquinox, "March equinox"},
			{seasons.JunSolstice, "June solstice"},
			{seasons.SepEquinox, "September equinox"},
			{seasons.DecSolstice, "December solstice"},
		}
		for _, c := range checks {
			if within(c.t) {
				events = append(events, Event{
					Time:  c.t,
					Type:  EventSeason,
					Body:  astro.InvalidBody,
					Label: c.label,
				})
			}
		}
	}

	for _, body := range []astro.Body{astro.Mercury, astro.Venus} {
		elong, err := astro.SearchMaxElongation(body, start)
		if err != nil {
			return nil, err
		}
		if within(elong.Time) {
			side := "morning"
			if elong.Visibility == astro.VisibleEvening {
				side = "evening"
			}
			events = append(events, Event{
				Time:  elong.Time,
				Type:  EventMaxElongation,
				Body:  body,
				Label: fmt.Sprintf("%s greatest elongation (%.1f° %s)", body.Name(), elong.Elongation, side),
			})
		}
	}

	for _, body := range []astro.Body{astro.Mars, astro.Jupiter, astro.Saturn} {
		if t, err := astro.SearchRelativeLongitude(body, 0.0, start); err == nil && within(t) {
			events = append(events, Event{
				Time:  t,
				Type:  EventOpposition,
				Body:  body,
				Label: body.Name() + " at opposition",
			})
		} else if err != nil {
			return nil, err
		}
		if t, err := astro.SearchRelativeLongitude(body, 180.0, start); err == nil && within(t) {
			events = append(events, Event{
				Time:  t,
				Type:  EventConjunction,
				Body:  body,
				Label: body.Name() + " at solar conjunction",
			})
		} else if err != nil {
			return nil, err
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Time.UT < events[j].Time.UT
	})
	return events, nil
}
