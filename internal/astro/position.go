package astro

import "math"

// Aberration selects whether geocentric positions are corrected for the
// aberration of light caused by the Earth's motion.
type Aberration int

const (
	// NoAberration leaves positions uncorrected for aberration.
	NoAberration Aberration = iota
	// WithAberration corrects positions for aberration.
	WithAberration
)

// EquatorEpoch selects the Earth equator in which equatorial coordinates
// are expressed.
type EquatorEpoch int

const (
	// EquatorJ2000 uses the mean equator at the J2000 epoch.
	EquatorJ2000 EquatorEpoch = iota
	// EquatorOfDate uses the true equator at the time of observation.
	EquatorOfDate
)

// Equatorial holds equatorial coordinates: right ascension in sidereal
// hours, declination in degrees, distance in AU.
type Equatorial struct {
	RA   float64
	Dec  float64
	Dist float64
}

// Ecliptic holds ecliptic coordinates: a Cartesian position in AU and the
// corresponding ecliptic latitude and longitude in degrees.
type Ecliptic struct {
	Ex   float64
	Ey   float64
	Ez   float64
	Elat float64
	Elon float64
}

// Heliocentric gravitational parameters in au^3/day^2, used for the
// Solar System barycenter.
const (
	sunGM     = 0.2959122082855911e-03
	jupiterGM = 0.2825345909524226e-06
	saturnGM  = 0.8459715185680659e-07
	uranusGM  = 0.1292024916781969e-07
	neptuneGM = 0.1524358900784276e-07

	earthMoonMassRatio = 81.30056
)

func calcEarthMoonBarycenter(time Time) Vector {
	earth := calcEarth(time)
	moon := GeoMoon(time)
	return Vector{
		X: earth.X + moon.X/(1.0+earthMoonMassRatio),
		Y: earth.Y + moon.Y/(1.0+earthMoonMassRatio),
		Z: earth.Z + moon.Z/(1.0+earthMoonMassRatio),
		T: time,
	}
}

func calcSolarSystemBarycenter(time Time) Vector {
	j := calcVsop(&vsopModels[Jupiter], time)
	s := calcVsop(&vsopModels[Saturn], time)
	u := calcVsop(&vsopModels[Uranus], time)
	n := calcVsop(&vsopModels[Neptune], time)
	const gmSum = sunGM + jupiterGM + saturnGM + uranusGM + neptuneGM
	return Vector{
		X: (jupiterGM*j.X + saturnGM*s.X + uranusGM*u.X + neptuneGM*n.X) / gmSum,
		Y: (jupiterGM*j.Y + saturnGM*s.Y + uranusGM*u.Y + neptuneGM*n.Y) / gmSum,
		Z: (jupiterGM*j.Z + saturnGM*s.Z + uranusGM*u.Z + neptuneGM*n.Z) / gmSum,
		T: time,
	}
}

// HelioVector calculates the position of the given body relative to the
// center of the Sun, as a Cartesian vector in the J2000 equatorial system.
// The position is not corrected for light travel time or aberration; see
// GeoVector for that behavior.
//
// Fails with ErrInvalidBody for an unknown body, or ErrBadTime for Pluto
// outside the years 1700..2200.
func HelioVector(body Body, time Time) (Vector, error) {
	switch body {
	case Sun:
		return Vector{T: time}, nil
	case Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune:
		return calcVsop(&vsopModels[body], time), nil
	case Pluto:
		return calcPluto(time)
	case Moon:
		moon := GeoMoon(time)
		earth := calcEarth(time)
		return Vector{
			X: moon.X + earth.X,
			Y: moon.Y + earth.Y,
			Z: moon.Z + earth.Z,
			T: time,
		}, nil
	case EMB:
		return calcEarthMoonBarycenter(time), nil
	case SSB:
		return calcSolarSystemBarycenter(time), nil
	default:
		return Vector{T: time}, ErrInvalidBody
	}
}

// GeoVector calculates the position of the given body relative to the
// center of the Earth, as a Cartesian vector in the J2000 equatorial system.
// The position is always corrected for light travel time: it is back-dated
// by the time it takes light to travel from the body to the Earth. Passing
// WithAberration also corrects for the aberration of light.
func GeoVector(body Body, time Time, aberration Aberration) (Vector, error) {
	if aberration != WithAberration && aberration != NoAberration {
		return Vector{T: time}, ErrInvalidParameter
	}

	var vector Vector
	switch body {
	case Earth:
		// The Earth's geocentric coordinates are always (0,0,0).
		vector = Vector{}

	case Sun:
		// The Sun's heliocentric coordinates are always (0,0,0),
		// so no light travel correction is needed.
		vector = calcEarth(time)
		vector.X *= -1.0
		vector.Y *= -1.0
		vector.Z *= -1.0

	case Moon:
		vector = GeoMoon(time)

	default:
		// For all other bodies, solve for light travel time.
		var earth Vector
		if aberration == NoAberration {
			// Calculate Earth's position once, at the time of observation.
			earth = calcEarth(time)
		}

		ltime := time
		converged := false
		for iter := 0; iter < 10; iter++ {
			v, err := HelioVector(body, ltime)
			if err != nil {
				return Vector{T: time}, err
			}

			if aberration == WithAberration {
				// Include aberration, so make a good first-order
				// approximation by backdating the Earth's position also.
				// This is confusing, but it works for objects within the
				// Solar System because the distance the Earth moves in that
				// small amount of light travel time (a few minutes to a few
				// hours) is well approximated by a line segment that
				// subtends the angle seen from the remote body viewing
				// Earth. That angle is pretty close to the aberration angle
				// of the moving Earth viewing the remote body. In other
				// words, both of the following approximate the aberration
				// angle:
				//     (transverse distance Earth moves) / (distance to body)
				//     (transverse speed of Earth) / (speed of light)
				earth = calcEarth(ltime)
			}

			// Heliocentric vector to geocentric vector.
			vector = Vector{
				X: v.X - earth.X,
				Y: v.Y - earth.Y,
				Z: v.Z - earth.Z,
			}

			ltime2 := time.AddDays(-vector.Length() / CAuDay)
			if math.Abs(ltime2.TT-ltime.TT) < 1.0e-9 {
				converged = true
				break
			}
			ltime = ltime2
		}
		if !converged {
			return Vector{T: time}, ErrNoConverge
		}
	}

	// Tag with the observation time, not the back-dated time.
	vector.T = time
	return vector, nil
}

func vector2radec(pos [3]float64) (Equatorial, error) {
	var equ Equatorial

	xyproj := pos[0]*pos[0] + pos[1]*pos[1]
	equ.Dist = math.Sqrt(xyproj + pos[2]*pos[2])
	if xyproj == 0.0 {
		if pos[2] == 0.0 {
			// Indeterminate coordinates; the vector has zero length.
			return Equatorial{}, ErrBadVector
		}
		equ.RA = 0.0
		if pos[2] < 0 {
			equ.Dec = -90.0
		} else {
			equ.Dec = +90.0
		}
	} else {
		equ.RA = math.Atan2(pos[1], pos[0]) / (deg2rad * 15.0)
		if equ.RA < 0 {
			equ.RA += 24.0
		}
		equ.Dec = rad2deg * math.Atan2(pos[2], math.Sqrt(xyproj))
	}

	return equ, nil
}

// Equator calculates topocentric equatorial coordinates of a body as seen
// by an observer on the Earth's surface, in either the J2000 system or the
// true equator of date. The result corrects for light travel time and for
// topocentric parallax, which matters most for the Moon. Earth is not
// allowed as the body.
func Equator(body Body, time Time, observer Observer, equdate EquatorEpoch, aberration Aberration) (Equatorial, error) {
	gcObserver := geoPos(time, observer)
	gc, err := GeoVector(body, time, aberration)
	if err != nil {
		return Equatorial{}, err
	}

	j2000 := [3]float64{
		gc.X - gcObserver[0],
		gc.Y - gcObserver[1],
		gc.Z - gcObserver[2],
	}

	switch equdate {
	case EquatorOfDate:
		temp := precession(0.0, j2000, time.TT)
		datevect := nutation(time, 0, temp)
		return vector2radec(datevect)
	case EquatorJ2000:
		return vector2radec(j2000)
	default:
		return Equatorial{}, ErrInvalidParameter
	}
}

// Based on the NOVAS functions equ2ecl() and equ2ecl_vec().
func rotateEquatorialToEcliptic(pos [3]float64, obliqRadians float64) Ecliptic {
	cosOb := math.Cos(obliqRadians)
	sinOb := math.Sin(obliqRadians)

	var ecl Ecliptic
	ecl.Ex = +pos[0]
	ecl.Ey = +pos[1]*cosOb + pos[2]*sinOb
	ecl.Ez = -pos[1]*sinOb + pos[2]*cosOb

	xyproj := math.Sqrt(ecl.Ex*ecl.Ex + ecl.Ey*ecl.Ey)
	if xyproj > 0.0 {
		ecl.Elon = rad2deg * math.Atan2(ecl.Ey, ecl.Ex)
		if ecl.Elon < 0.0 {
			ecl.Elon += 360.0
		}
	} else {
		ecl.Elon = 0.0
	}
	ecl.Elat = rad2deg * math.Atan2(ecl.Ez, xyproj)
	return ecl
}

// EclipticFromEquatorial converts a J2000 equatorial vector to J2000
// ecliptic coordinates.
func EclipticFromEquatorial(equ Vector) (Ecliptic, error) {
	// Mean obliquity of the J2000 ecliptic in radians.
	const ob2000 = 0.40909260059599012
	pos := [3]float64{equ.X, equ.Y, equ.Z}
	return rotateEquatorialToEcliptic(pos, ob2000), nil
}

// EclipticLongitude calculates the heliocentric ecliptic longitude of a
// body in degrees, in the J2000 ecliptic. The Sun has no heliocentric
// longitude, so it fails with ErrInvalidBody.
func EclipticLongitude(body Body, time Time) (float64, error) {
	if body == Sun {
		return 0, ErrInvalidBody
	}

	hv, err := HelioVector(body, time)
	if err != nil {
		return 0, err
	}
	eclip, err := EclipticFromEquatorial(hv)
	if err != nil {
		return 0, err
	}
	return eclip.Elon, nil
}

// SunPosition calculates the geocentric ecliptic coordinates of the Sun,
// using the Earth's true equator of date. This is the quantity that drives
// season calculations: equinoxes and solstices.
func SunPosition(time Time) Ecliptic {
	// Correct for light travel time from the Sun. Otherwise season
	// calculations (equinox, solstice) would all be early by about 8 minutes.
	adjustedTime := time.AddDays(-1.0 / CAuDay)

	earth2000 := calcEarth(adjustedTime)

	// Heliocentric location of the Earth to geocentric location of the Sun.
	sun2000 := [3]float64{-earth2000.X, -earth2000.Y, -earth2000.Z}

	// Equatorial Cartesian coordinates of date.
	stemp := precession(0.0, sun2000, adjustedTime.TT)
	sunOfDate := nutation(adjustedTime, 0, stemp)

	trueObliq := deg2rad * eTilt(adjustedTime).tobl
	return rotateEquatorialToEcliptic(sunOfDate, trueObliq)
}
