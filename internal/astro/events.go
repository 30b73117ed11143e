package astro

import "math"

// Visibility indicates whether a body is best seen in the morning or
// evening sky.
type Visibility int

const (
	// VisibleMorning means the body is best visible before sunrise.
	VisibleMorning Visibility = iota
	// VisibleEvening means the body is best visible after sunset.
	VisibleEvening
)

// Direction selects whether SearchRiseSet looks for a rise or a set event.
type Direction int

const (
	// DirectionRise searches for the body's rise above the horizon.
	DirectionRise Direction = 1
	// DirectionSet searches for the body's set below the horizon.
	DirectionSet Direction = -1
)

// SeasonsInfo holds the equinoxes and solstices of a calendar year.
type SeasonsInfo struct {
	MarEquinox  Time
	JunSolstice Time
	SepEquinox  Time
	DecSolstice Time
}

// MoonQuarter is a lunar quarter event: 0=new moon, 1=first quarter,
// 2=full moon, 3=third quarter.
type MoonQuarter struct {
	Quarter int
	Time    Time
}

// ElongationInfo describes a body's angular separation from the Sun as
// seen from the Earth, and which side of the Sun it is on.
type ElongationInfo struct {
	Time              Time
	Visibility        Visibility
	Elongation        float64
	RelativeLongitude float64
}

// HourAngleInfo is the result of SearchHourAngle: the time the body
// reached the given hour angle, and its horizontal coordinates then.
type HourAngleInfo struct {
	Time Time
	Hor  Horizontal
}

func planetOrbitalPeriod(body Body) float64 {
	switch body {
	case Mercury:
		return 87.969
	case Venus:
		return 224.701
	case Earth:
		return earthOrbitalPeriod
	case Mars:
		return 686.980
	case Jupiter:
		return 4332.589
	case Saturn:
		return 10759.22
	case Uranus:
		return 30685.4
	case Neptune:
		return 60189.0
	case Pluto:
		return 90560.0
	default:
		return 0.0
	}
}

func isSuperiorPlanet(body Body) bool {
	switch body {
	case Mars, Jupiter, Saturn, Uranus, Neptune, Pluto:
		return true
	}
	return false
}

func synodicPeriod(body Body) (float64, error) {
	// The Earth does not have a synodic period as seen from itself.
	if body == Earth {
		return 0, ErrEarthNotAllowed
	}
	if body == Moon {
		return MeanSynodicMonth, nil
	}
	tp := planetOrbitalPeriod(body)
	if tp <= 0.0 {
		return 0, ErrInvalidBody
	}
	const te = earthOrbitalPeriod
	return math.Abs(te / (te/tp - 1.0)), nil
}

func sunOffset(targetLon float64) SearchFunc {
	return func(time Time) (float64, error) {
		ecl := SunPosition(time)
		return longitudeOffset(ecl.Elon - targetLon), nil
	}
}

// SearchSunLongitude finds the next time the Sun reaches the given apparent
// ecliptic longitude, in degrees, within limitDays after dateStart. The
// search window must be short enough that the Sun reaches the longitude at
// most once within it; less than a month is safe.
func SearchSunLongitude(targetLon float64, dateStart Time, limitDays float64) (Time, error) {
	t2 := dateStart.AddDays(limitDays)
	return Search(sunOffset(targetLon), dateStart, t2, 1.0)
}

func findSeasonChange(targetLon float64, year, month, day int) (Time, error) {
	startDate := MakeTime(year, month, day, 0, 0, 0.0)
	return SearchSunLongitude(targetLon, startDate, 4.0)
}

// Seasons finds the equinoxes and solstices of the given calendar year:
// the times the apparent ecliptic longitude of the Sun reaches 0, 90, 180,
// and 270 degrees.
func Seasons(year int) (SeasonsInfo, error) {
	var seasons SeasonsInfo
	var err, firstErr error

	if seasons.MarEquinox, err = findSeasonChange(0, year, 3, 19); err != nil && firstErr == nil {
		firstErr = err
	}
	if seasons.JunSolstice, err = findSeasonChange(90, year, 6, 19); err != nil && firstErr == nil {
		firstErr = err
	}
	if seasons.SepEquinox, err = findSeasonChange(180, year, 9, 21); err != nil && firstErr == nil {
		firstErr = err
	}
	if seasons.DecSolstice, err = findSeasonChange(270, year, 12, 20); err != nil && firstErr == nil {
		firstErr = err
	}

	return seasons, firstErr
}

// AngleFromSun returns the angle in degrees between the body and the Sun
// as seen from the center of the Earth.
func AngleFromSun(body Body, time Time) (float64, error) {
	sv, err := GeoVector(Sun, time, NoAberration)
	if err != nil {
		return 0, err
	}
	bv, err := GeoVector(body, time, NoAberration)
	if err != nil {
		return 0, err
	}
	return AngleBetween(sv, bv)
}

// LongitudeFromSun returns the ecliptic longitude of the body relative to
// the Sun as seen from the Earth, in degrees [0, 360). A value of 0
// indicates conjunction with the Sun; 180 indicates opposition (or, for
// the Moon, full moon).
func LongitudeFromSun(body Body, time Time) (float64, error) {
	if body == Earth {
		return 0, ErrEarthNotAllowed
	}

	sv, err := GeoVector(Sun, time, NoAberration)
	if err != nil {
		return 0, err
	}
	se, err := EclipticFromEquatorial(sv)
	if err != nil {
		return 0, err
	}

	bv, err := GeoVector(body, time, NoAberration)
	if err != nil {
		return 0, err
	}
	be, err := EclipticFromEquatorial(bv)
	if err != nil {
		return 0, err
	}

	return normalizeLongitude(be.Elon - se.Elon), nil
}

// Elongation measures the body's visibility relative to the Sun at the
// given time: its angular separation from the Sun and whether it is a
// morning or evening object.
func Elongation(body Body, time Time) (ElongationInfo, error) {
	var result ElongationInfo

	angle, err := LongitudeFromSun(body, time)
	if err != nil {
		return ElongationInfo{}, err
	}
	if angle > 180.0 {
		result.Visibility = VisibleMorning
		result.RelativeLongitude = 360.0 - angle
	} else {
		result.Visibility = VisibleEvening
		result.RelativeLongitude = angle
	}

	result.Elongation, err = AngleFromSun(body, time)
	if err != nil {
		return ElongationInfo{}, err
	}
	result.Time = time
	return result, nil
}

func negElongSlope(body Body) SearchFunc {
	const dt = 0.1
	return func(time Time) (float64, error) {
		t1 := time.AddDays(-dt / 2.0)
		t2 := time.AddDays(+dt / 2.0)
		e1, err := AngleFromSun(body, t1)
		if err != nil {
			return 0, err
		}
		e2, err := AngleFromSun(body, t2)
		if err != nil {
			return 0, err
		}
		return (e1 - e2) / dt, nil
	}
}

// SearchMaxElongation finds the next maximum elongation event for Mercury
// or Venus after startDate. Maximum elongation is when the planet appears
// farthest from the Sun in the sky, making it the best time to observe it.
// Other bodies fail with ErrInvalidBody.
func SearchMaxElongation(body Body, startDate Time) (ElongationInfo, error) {
	// Range of heliocentric relative longitudes within which maximum
	// elongation can occur for this planet.
	var s1, s2 float64
	switch body {
	case Mercury:
		s1 = 50.0
		s2 = 85.0
	case Venus:
		s1 = 40.0
		s2 = 50.0
	default:
		return ElongationInfo{}, ErrInvalidBody
	}

	syn, err := synodicPeriod(body)
	if err != nil {
		return ElongationInfo{}, err
	}

	for iter := 1; iter <= 2; iter++ {
		plon, err := EclipticLongitude(body, startDate)
		if err != nil {
			return ElongationInfo{}, err
		}
		elon, err := EclipticLongitude(Earth, startDate)
		if err != nil {
			return ElongationInfo{}, err
		}
		rlon := longitudeOffset(plon - elon)

		// The slope function misbehaves when rlon is near 0 or 180
		// degrees: there is a cusp there that makes the derivative
		// discontinuous. Guard against searching near such times.
		var rlonLo, rlonHi, adjustDays float64
		switch {
		case rlon >= -s1 && rlon < +s1:
			// Seek to the window [+s1, +s2].
			adjustDays = 0.0
			rlonLo = +s1
			rlonHi = +s2
		case rlon > +s2 || rlon < -s2:
			// Seek to the next search window at [-s2, -s1].
			adjustDays = 0.0
			rlonLo = -s2
			rlonHi = -s1
		case rlon >= 0.0:
			// rlon is in the middle of the window [+s1, +s2];
			// back up and search forward from before the window.
			adjustDays = -syn / 4.0
			rlonLo = +s1
			rlonHi = +s2
		default:
			// rlon is in the middle of the window [-s2, -s1].
			adjustDays = -syn / 4.0
			rlonLo = -s2
			rlonHi = -s1
		}

		tStart := startDate.AddDays(adjustDays)

		t1, err := SearchRelativeLongitude(body, rlonLo, tStart)
		if err != nil {
			return ElongationInfo{}, err
		}
		t2, err := SearchRelativeLongitude(body, rlonHi, t1)
		if err != nil {
			return ElongationInfo{}, err
		}

		// [t1, t2] should bracket a maximum elongation event.
		// Confirm the bracketing.
		slope := negElongSlope(body)
		m1, err := slope(t1)
		if err != nil {
			return ElongationInfo{}, err
		}
		if m1 >= 0 {
			return ElongationInfo{}, ErrInternal
		}
		m2, err := slope(t2)
		if err != nil {
			return ElongationInfo{}, err
		}
		if m2 <= 0 {
			return ElongationInfo{}, ErrInternal
		}

		// Home in on where the slope crosses from negative to positive.
		tx, err := Search(slope, t1, t2, 10.0)
		if err != nil {
			return ElongationInfo{}, err
		}

		if tx.TT >= startDate.TT {
			return Elongation(body, tx)
		}

		// The event found is earlier than startDate. Search forward from
		// t2 for the next window; this never takes more than two passes.
		startDate = t2.AddDays(1.0)
	}

	return ElongationInfo{}, ErrSearchFailure
}

// MoonPhase returns the Moon's ecliptic phase angle at the given time, in
// degrees [0, 360): 0 is new moon, 90 first quarter, 180 full moon, 270
// third quarter.
func MoonPhase(time Time) (float64, error) {
	return LongitudeFromSun(Moon, time)
}

func moonOffset(targetLon float64) SearchFunc {
	return func(time Time) (float64, error) {
		angle, err := MoonPhase(time)
		if err != nil {
			return 0, err
		}
		return longitudeOffset(angle - targetLon), nil
	}
}

// SearchMoonPhase finds the next time the Moon reaches the given phase
// angle, within limitDays after dateStart. Fails with ErrNoMoonQuarter if
// the window is too short for the phase to occur, or ErrSearchFailure if
// the event lands beyond the window.
func SearchMoonPhase(targetLon float64, dateStart Time, limitDays float64) (Time, error) {
	// Every lunar phase repeats roughly every 29.5 days, so estimate the
	// event time from the current phase and bracket it. The eccentricity
	// of the Moon's orbit makes the timing surprisingly uncertain; it has
	// been observed up to 0.826 days away from the simple prediction, so
	// search +/- 0.9 days around the estimate.
	const uncertainty = 0.9

	offset := moonOffset(targetLon)
	ya, err := offset(dateStart)
	if err != nil {
		return Time{}, err
	}
	if ya > 0.0 {
		ya -= 360.0 // force searching forward in time, not backward
	}
	estDT := -(MeanSynodicMonth * ya) / 360.0
	dt1 := estDT - uncertainty
	if dt1 > limitDays {
		// Not possible for the phase to occur within the window.
		return Time{}, ErrNoMoonQuarter
	}
	dt2 := estDT + uncertainty
	if limitDays < dt2 {
		dt2 = limitDays
	}
	t1 := dateStart.AddDays(dt1)
	t2 := dateStart.AddDays(dt2)
	return Search(offset, t1, t2, 1.0)
}

// SearchMoonQuarter finds the first lunar quarter after dateStart.
func SearchMoonQuarter(dateStart Time) (MoonQuarter, error) {
	angle, err := MoonPhase(dateStart)
	if err != nil {
		return MoonQuarter{}, err
	}

	var mq MoonQuarter
	mq.Quarter = (1 + int(math.Floor(angle/90.0))) % 4
	mq.Time, err = SearchMoonPhase(90.0*float64(mq.Quarter), dateStart, 10.0)
	if err != nil {
		return MoonQuarter{}, err
	}
	return mq, nil
}

// NextMoonQuarter finds the lunar quarter that follows the given one.
// Pass its result back in to enumerate consecutive quarters.
func NextMoonQuarter(mq MoonQuarter) (MoonQuarter, error) {
	// Skip 6 days past the previous quarter to find the next one. This is
	// less than the minimum possible increment: the interval is well
	// contained by the range (6.5, 8.3) days.
	time := mq.Time.AddDays(6.0)
	next, err := SearchMoonQuarter(time)
	if err != nil {
		return MoonQuarter{}, err
	}
	if next.Quarter != (1+mq.Quarter)%4 {
		return MoonQuarter{}, ErrWrongMoonQuarter
	}
	return next, nil
}

func rlonOffset(body Body, time Time, direction int, targetRelLon float64) (float64, error) {
	plon, err := EclipticLongitude(body, time)
	if err != nil {
		return 0, err
	}
	elon, err := EclipticLongitude(Earth, time)
	if err != nil {
		return 0, err
	}
	diff := float64(direction) * (elon - plon)
	return longitudeOffset(diff - targetRelLon), nil
}

// SearchRelativeLongitude finds the next time the body's heliocentric
// ecliptic longitude differs from the Earth's by the given angle in
// degrees. A target of 0 finds opposition for a superior planet or
// inferior conjunction for an inferior planet; 180 finds conjunction
// behind the Sun or superior conjunction respectively. The Earth and the
// Moon are not allowed.
func SearchRelativeLongitude(body Body, targetRelLon float64, startDate Time) (Time, error) {
	if body == Earth {
		return Time{}, ErrEarthNotAllowed
	}
	if body == Moon {
		return Time{}, ErrInvalidBody
	}

	syn, err := synodicPeriod(body)
	if err != nil {
		return Time{}, err
	}

	direction := -1
	if isSuperiorPlanet(body) {
		direction = +1
	}

	// Iterate until we converge on the desired event. The error angle is
	// kept as a negative number of degrees, meaning we are "behind" the
	// target relative longitude.
	errorAngle, err := rlonOffset(body, startDate, direction, targetRelLon)
	if err != nil {
		return Time{}, err
	}
	if errorAngle > 0 {
		errorAngle -= 360 // force searching forward in time
	}

	time := startDate
	for iter := 0; iter < 100; iter++ {
		// Estimate how many days in the future (positive) or past
		// (negative) we have to go to get closer to the target.
		dayAdjust := (-errorAngle / 360.0) * syn
		time = time.AddDays(dayAdjust)
		if math.Abs(dayAdjust)*secondsPerDay < 1.0 {
			return time, nil
		}

		prevAngle := errorAngle
		errorAngle, err = rlonOffset(body, time, direction, targetRelLon)
		if err != nil {
			return Time{}, err
		}

		if math.Abs(prevAngle) < 30.0 && prevAngle != errorAngle {
			// Improve convergence for Mercury/Mars (eccentric orbits) by
			// adjusting the synodic period to more closely match the
			// variable speed of both planets in this part of their
			// respective orbits.
			ratio := prevAngle / (prevAngle - errorAngle)
			if ratio > 0.5 && ratio < 2.0 {
				syn *= ratio
			}
		}
	}

	return Time{}, ErrNoConverge
}

// SearchHourAngle finds the next time the body reaches the given hour
// angle, in sidereal hours [0, 24), for the given observer. An hour angle
// of 0 finds culmination, the body's highest point in the sky; 12 finds
// its lowest point below or above the horizon.
func SearchHourAngle(body Body, observer Observer, hourAngle float64, dateStart Time) (HourAngleInfo, error) {
	time := dateStart
	for iter := 1; ; iter++ {
		// Greenwich Apparent Sidereal Time at the current guess.
		gast := SiderealTime(time)

		ofdate, err := Equator(body, time, observer, EquatorOfDate, WithAberration)
		if err != nil {
			return HourAngleInfo{}, err
		}

		// Adjustment needed in sidereal time to bring the hour angle to
		// the desired value.
		deltaSiderealHours := math.Mod((hourAngle+ofdate.RA-observer.Longitude/15)-gast, 24.0)
		if iter == 1 {
			// On the first iteration, always search forward in time.
			if deltaSiderealHours < 0 {
				deltaSiderealHours += 24
			}
		} else {
			// On subsequent iterations, make the smallest possible
			// adjustment, either forward or backward in time.
			if deltaSiderealHours < -12.0 {
				deltaSiderealHours += 24.0
			} else if deltaSiderealHours > +12.0 {
				deltaSiderealHours -= 24.0
			}
		}

		// Tolerable error is less than 0.1 seconds.
		if math.Abs(deltaSiderealHours)*3600.0 < 0.1 {
			hor := Horizon(time, observer, ofdate.RA, ofdate.Dec, RefractionNormal)
			return HourAngleInfo{Time: time, Hor: hor}, nil
		}

		// Update the time, converting the sidereal adjustment to solar days.
		deltaDays := (deltaSiderealHours / 24.0) * solarDaysPerSidereal
		time = time.AddDays(deltaDays)
	}
}

// peakAltitude returns the angular altitude above or below the horizon of
// the highest part of the body: the apparent altitude of its center plus
// its angular radius. The direction parameter flips the sign so that rise
// and set events both become ascending zero crossings.
func peakAltitude(body Body, direction Direction, observer Observer, bodyRadiusAu float64) SearchFunc {
	return func(time Time) (float64, error) {
		ofdate, err := Equator(body, time, observer, EquatorOfDate, WithAberration)
		if err != nil {
			return 0, err
		}

		// Calculate altitude without refraction, then add the fixed
		// refraction lift near the horizon. This gives the rise/set time
		// without the extra work of the full refraction model.
		hor := Horizon(time, observer, ofdate.RA, ofdate.Dec, RefractionNone)
		alt := hor.Altitude + rad2deg*(bodyRadiusAu/ofdate.Dist) + refractionNearHorizon
		return float64(direction) * alt, nil
	}
}

// SearchRiseSet finds the next rise or set time of the body for the given
// observer, within limitDays after dateStart. Rise and set are when the
// body's apparent top edge crosses the refracted horizon. Failure with
// ErrSearchFailure means no such event occurs within the window, which is
// a normal outcome at extreme latitudes.
func SearchRiseSet(body Body, observer Observer, direction Direction, dateStart Time, limitDays float64) (Time, error) {
	var haBefore, haAfter float64
	switch direction {
	case DirectionRise:
		haBefore = 12.0 // minimum altitude (bottom) happens BEFORE the body rises
		haAfter = 0.0   // maximum altitude (culmination) happens AFTER the body rises
	case DirectionSet:
		haBefore = 0.0 // culmination happens BEFORE the body sets
		haAfter = 12.0 // bottom happens AFTER the body sets
	default:
		return Time{}, ErrInvalidParameter
	}

	var bodyRadiusAu float64
	switch body {
	case Sun:
		bodyRadiusAu = sunRadiusAu
	case Moon:
		bodyRadiusAu = moonRadiusAu
	}

	altitude := peakAltitude(body, direction, observer, bodyRadiusAu)

	// If the body is below the horizon (for a rise search), use the start
	// time as the lower bound and the next culmination as the upper bound.
	// If it is above, search for the next bottom and use that as the lower
	// bound, with the culmination after it as the upper bound. Set
	// searches swap the hour angles; the altitude function already
	// accounts for the direction.
	timeStart := dateStart
	altBefore, err := altitude(timeStart)
	if err != nil {
		return Time{}, err
	}

	var timeBefore Time
	if altBefore > 0.0 {
		// We are past the sought event; wait for the next "before" event.
		evtBefore, err := SearchHourAngle(body, observer, haBefore, timeStart)
		if err != nil {
			return Time{}, err
		}
		timeBefore = evtBefore.Time
		altBefore, err = altitude(timeBefore)
		if err != nil {
			return Time{}, err
		}
	} else {
		// We are before or at the sought event; the current time serves
		// as the "before" event.
		timeBefore = timeStart
	}

	evtAfter, err := SearchHourAngle(body, observer, haAfter, timeBefore)
	if err != nil {
		return Time{}, err
	}
	altAfter, err := altitude(evtAfter.Time)
	if err != nil {
		return Time{}, err
	}

	for {
		if altBefore <= 0.0 && altAfter > 0.0 {
			// Search between the two hour angle events for the crossing.
			result, err := Search(altitude, timeBefore, evtAfter.Time, 1.0)
			if err == nil {
				return result, nil
			}
			// ErrSearchFailure here just means this bracket did not
			// contain the event; any other error is fatal.
			if err != ErrSearchFailure {
				return Time{}, err
			}
		}

		// Use the after-event to find the next before-event and try again.
		evtBefore, err := SearchHourAngle(body, observer, haBefore, evtAfter.Time)
		if err != nil {
			return Time{}, err
		}
		evtAfter, err = SearchHourAngle(body, observer, haAfter, evtBefore.Time)
		if err != nil {
			return Time{}, err
		}

		if evtBefore.Time.UT >= timeStart.UT+limitDays {
			return Time{}, ErrSearchFailure
		}

		timeBefore = evtBefore.Time
		altBefore, err = altitude(evtBefore.Time)
		if err != nil {
			return Time{}, err
		}
		altAfter, err = altitude(evtAfter.Time)
		if err != nil {
			return Time{}, err
		}
	}
}
