package astro

// ApsisKind distinguishes the nearest and farthest points of an orbit.
type ApsisKind int

const (
	// Pericenter is the closest approach: perigee for the Moon.
	Pericenter ApsisKind = iota
	// Apocenter is the farthest point: apogee for the Moon.
	Apocenter
)

// Apsis is a perigee or apogee event of the Moon's orbit.
type Apsis struct {
	Time   Time
	Kind   ApsisKind
	DistAU float64
	DistKM float64
}

func moonDistance(t Time) float64 {
	_, _, dist := calcMoon(t.TT / 36525.0)
	return dist
}

func distanceSlope(direction int) SearchFunc {
	const dt = 0.001
	return func(time Time) (float64, error) {
		t1 := time.AddDays(-dt / 2.0)
		t2 := time.AddDays(+dt / 2.0)
		dist1 := moonDistance(t1)
		dist2 := moonDistance(t2)
		return float64(direction) * (dist2 - dist1) / dt, nil
	}
}

// SearchLunarApsis finds the next perigee or apogee of the Moon after the
// given time, whichever comes first.
func SearchLunarApsis(startTime Time) (Apsis, error) {
	const increment = 5.0 // days to skip in each iteration

	// Check the rate of change of the distance dr/dt at the start time.
	// If positive, the Moon is currently getting farther away, so look for
	// apogee; if negative, look for perigee. Either way the polarity of
	// the slope will change, so the product goes negative. The corner case
	// of exactly touching zero is handled by checking for m1*m2 <= 0.
	slope := distanceSlope(+1)
	negSlope := distanceSlope(-1)

	t1 := startTime
	m1, err := slope(t1)
	if err != nil {
		return Apsis{}, err
	}

	for iter := 0; float64(iter)*increment < 2.0*MeanSynodicMonth; iter++ {
		t2 := t1.AddDays(increment)
		m2, err := slope(t2)
		if err != nil {
			return Apsis{}, err
		}

		if m1*m2 <= 0.0 {
			// The slope changes polarity within [t1, t2], so this time
			// range contains an apsis. Figure out which kind.
			var search Time
			var kind ApsisKind

			switch {
			case m1 < 0.0 || m2 > 0.0:
				// Minimum-distance event: perigee. Find where the slope
				// goes from negative to positive.
				search, err = Search(slope, t1, t2, 1.0)
				kind = Pericenter
			case m1 > 0.0 || m2 < 0.0:
				// Maximum-distance event: apogee. Find where the slope
				// goes from positive to negative.
				search, err = Search(negSlope, t1, t2, 1.0)
				kind = Apocenter
			default:
				// Both slopes are zero. Should not be possible.
				return Apsis{}, ErrInternal
			}
			if err != nil {
				return Apsis{}, err
			}

			distAU := moonDistance(search)
			return Apsis{
				Time:   search,
				Kind:   kind,
				DistAU: distAU,
				DistKM: distAU * KmPerAu,
			}, nil
		}

		t1 = t2
		m1 = m2
	}

	// It should not be possible to miss an apsis within 2 synodic months.
	return Apsis{}, ErrInternal
}

// NextLunarApsis finds the apsis event that follows the given one. The
// result always alternates between perigee and apogee; pass it back in to
// enumerate consecutive events.
func NextLunarApsis(apsis Apsis) (Apsis, error) {
	// Days to skip before looking for the next apsis event.
	const skip = 11.0

	time := apsis.Time.AddDays(skip)
	next, err := SearchLunarApsis(time)
	if err != nil {
		return Apsis{}, err
	}

	var expected ApsisKind
	switch apsis.Kind {
	case Apocenter:
		expected = Pericenter
	case Pericenter:
		expected = Apocenter
	default:
		return Apsis{}, ErrInvalidParameter
	}
	if next.Kind != expected {
		return Apsis{}, ErrInternal
	}
	return next, nil
}
