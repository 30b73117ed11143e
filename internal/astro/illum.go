package astro

import "math"

// IllumInfo describes how a body is illuminated: its visual magnitude, the
// phase angle between the Earth and Sun as seen from the body, and its
// distance from the Sun. RingTilt is the tilt of Saturn's rings as seen
// from the Earth, in degrees; it is 0 for all other bodies.
type IllumInfo struct {
	Time       Time
	Mag        float64
	PhaseAngle float64
	HelioDist  float64
	RingTilt   float64
}

const auPerParsec = (180.0 * 60.0 * 60.0) / math.Pi

func moonMagnitude(phase, helioDist, geoDist float64) float64 {
	// An analytic fit to the lunar phase brightness curve.
	rad := phase * deg2rad
	rad2 := rad * rad
	rad4 := rad2 * rad2
	mag := -12.717 + 1.49*math.Abs(rad) + 0.0431*rad4
	moonMeanDistanceAu := 385000.6 / KmPerAu
	geoAu := geoDist / moonMeanDistanceAu
	mag += 5 * math.Log10(helioDist*geoAu)
	return mag
}

// saturnMagnitude includes the rings as a major component of Saturn's
// visual magnitude, using formulas by Paul Schlyter.
func saturnMagnitude(phase, helioDist, geoDist float64, gc Vector, time Time) (mag, ringTilt float64, err error) {
	// Geocentric ecliptic coordinates of Saturn.
	eclip, err := EclipticFromEquatorial(gc)
	if err != nil {
		return 0, 0, err
	}

	ir := deg2rad * 28.06                        // tilt of Saturn's rings to the ecliptic
	nr := deg2rad * (169.51 + 3.82e-5*time.TT)   // ascending node of Saturn's rings

	// Tilt of Saturn's rings as seen from the Earth.
	lat := deg2rad * eclip.Elat
	lon := deg2rad * eclip.Elon
	tilt := math.Asin(math.Sin(lat)*math.Cos(ir) - math.Cos(lat)*math.Sin(ir)*math.Sin(lon-nr))
	sinTilt := math.Sin(math.Abs(tilt))

	mag = -9.0 + 0.044*phase
	mag += sinTilt * (-2.6 + 1.2*sinTilt)
	mag += 5.0 * math.Log10(helioDist*geoDist)

	return mag, rad2deg * tilt, nil
}

func visualMagnitude(body Body, phase, helioDist, geoDist float64) (float64, error) {
	// Phase-angle polynomials; for Mercury and Venus see Hilton (2005).
	var c0, c1, c2, c3 float64
	switch body {
	case Mercury:
		c0, c1, c2, c3 = -0.60, +4.98, -4.88, +3.02
	case Venus:
		if phase < 163.6 {
			c0, c1, c2, c3 = -4.47, +1.03, +0.57, +0.13
		} else {
			c0, c1 = 0.98, -1.02
		}
	case Mars:
		c0, c1 = -1.52, +1.60
	case Jupiter:
		c0, c1 = -9.40, +0.50
	case Uranus:
		c0, c1 = -7.19, +0.25
	case Neptune:
		c0 = -6.87
	case Pluto:
		c0, c1 = -1.00, +4.00
	default:
		return 0, ErrInvalidBody
	}

	x := phase / 100
	mag := c0 + x*(c1+x*(c2+x*c3))
	mag += 5.0 * math.Log10(helioDist*geoDist)
	return mag, nil
}

// Illumination calculates the visual magnitude and illumination geometry of
// the body at the given time. The Earth is not allowed.
func Illumination(body Body, time Time) (IllumInfo, error) {
	if body == Earth {
		return IllumInfo{}, ErrEarthNotAllowed
	}

	earth := calcEarth(time)

	var gc, hc Vector // Earth-to-body and Sun-to-body vectors
	var phase float64 // angle between Earth and Sun as seen from the body
	var err error

	if body == Sun {
		gc = Vector{X: -earth.X, Y: -earth.Y, Z: -earth.Z, T: time}
		hc = Vector{T: time}
		// The Sun emits light instead of reflecting it,
		// so report a placeholder phase angle of 0.
		phase = 0.0
	} else {
		if body == Moon {
			// For extra numeric precision, use the geocentric Moon
			// formula directly.
			gc = GeoMoon(time)
			hc = Vector{
				X: earth.X + gc.X,
				Y: earth.Y + gc.Y,
				Z: earth.Z + gc.Z,
				T: time,
			}
		} else {
			// For planets, the heliocentric vector is more direct.
			hc, err = HelioVector(body, time)
			if err != nil {
				return IllumInfo{}, err
			}
			gc = Vector{
				X: hc.X - earth.X,
				Y: hc.Y - earth.Y,
				Z: hc.Z - earth.Z,
				T: time,
			}
		}

		phase, err = AngleBetween(gc, hc)
		if err != nil {
			return IllumInfo{}, err
		}
	}

	geoDist := gc.Length()
	helioDist := hc.Length()

	var mag, ringTilt float64
	switch body {
	case Sun:
		mag = -0.17 + 5.0*math.Log10(geoDist/auPerParsec)
	case Moon:
		mag = moonMagnitude(phase, helioDist, geoDist)
	case Saturn:
		mag, ringTilt, err = saturnMagnitude(phase, helioDist, geoDist, gc, time)
		if err != nil {
			return IllumInfo{}, err
		}
	default:
		mag, err = visualMagnitude(body, phase, helioDist, geoDist)
		if err != nil {
			return IllumInfo{}, err
		}
	}

	return IllumInfo{
		Time:       time,
		Mag:        mag,
		PhaseAngle: phase,
		HelioDist:  helioDist,
		RingTilt:   ringTilt,
	}, nil
}

func magSlope(body Body) SearchFunc {
	// Search finds a transition from negative to positive values. The
	// derivative of magnitude with respect to time is negative as an
	// object gets brighter (magnitude numbers get smaller), zero at peak
	// magnitude, and positive as the object dims again.
	const dt = 0.01
	return func(time Time) (float64, error) {
		t1 := time.AddDays(-dt / 2)
		t2 := time.AddDays(+dt / 2)
		y1, err := Illumination(body, t1)
		if err != nil {
			return 0, err
		}
		y2, err := Illumination(body, t2)
		if err != nil {
			return 0, err
		}
		return (y2.Mag - y1.Mag) / dt, nil
	}
}

// SearchPeakMagnitude finds the next time Venus reaches peak visual
// brightness after startDate. Only Venus is supported: it is the only body
// whose peak magnitude events are of common observational interest.
func SearchPeakMagnitude(body Body, startDate Time) (IllumInfo, error) {
	// Relative longitudes within which peak magnitude of Venus can occur.
	const s1 = 10.0
	const s2 = 30.0

	if body != Venus {
		return IllumInfo{}, ErrInvalidBody
	}

	for iter := 1; iter <= 2; iter++ {
		// Current heliocentric relative longitude between Venus and
		// the Earth.
		plon, err := EclipticLongitude(body, startDate)
		if err != nil {
			return IllumInfo{}, err
		}
		elon, err := EclipticLongitude(Earth, startDate)
		if err != nil {
			return IllumInfo{}, err
		}
		rlon := longitudeOffset(plon - elon)

		// The slope function misbehaves near rlon = 0 and 180 degrees
		// because of a cusp in the derivative, so pick a search window
		// that avoids those angles.
		var rlonLo, rlonHi, adjustDays float64
		switch {
		case rlon >= -s1 && rlon < +s1:
			adjustDays = 0.0
			rlonLo = +s1
			rlonHi = +s2
		case rlon >= +s2 || rlon < -s2:
			adjustDays = 0.0
			rlonLo = -s2
			rlonHi = -s1
		case rlon >= 0:
			syn, err := synodicPeriod(body)
			if err != nil {
				return IllumInfo{}, err
			}
			adjustDays = -syn / 4
			rlonLo = +s1
			rlonHi = +s2
		default:
			syn, err := synodicPeriod(body)
			if err != nil {
				return IllumInfo{}, err
			}
			adjustDays = -syn / 4
			rlonLo = -s2
			rlonHi = -s1
		}

		tStart := startDate.AddDays(adjustDays)
		t1, err := SearchRelativeLongitude(body, rlonLo, tStart)
		if err != nil {
			return IllumInfo{}, err
		}
		t2, err := SearchRelativeLongitude(body, rlonHi, t1)
		if err != nil {
			return IllumInfo{}, err
		}

		// [t1, t2] should bracket a peak magnitude event.
		// Confirm the bracketing.
		slope := magSlope(body)
		m1, err := slope(t1)
		if err != nil {
			return IllumInfo{}, err
		}
		if m1 >= 0.0 {
			return IllumInfo{}, ErrInternal
		}
		m2, err := slope(t2)
		if err != nil {
			return IllumInfo{}, err
		}
		if m2 <= 0.0 {
			return IllumInfo{}, ErrInternal
		}

		// Home in on where the slope crosses from negative to positive.
		tx, err := Search(slope, t1, t2, 10.0)
		if err != nil {
			return IllumInfo{}, err
		}

		if tx.TT >= startDate.TT {
			return Illumination(body, tx)
		}

		// The event found is earlier than startDate. Search forward from
		// t2 for the next window; this never takes more than two passes.
		startDate = t2.AddDays(1.0)
	}

	return IllumInfo{}, ErrSearchFailure
}
