// Package astro computes positions, motions, and visual characteristics of
// Solar System bodies, and finds astronomical events by root-finding over time.
//
// The models are closed-form: truncated VSOP87 series for the planets, an
// ELP2000-derived trigonometric theory for the Moon, and a piecewise Chebyshev
// fit for Pluto. No external planetary-data kernels are required. All
// functions are pure except CurrentTime.
package astro

import (
	"errors"
	"math"
)

const (
	// T0 is the Julian date of the J2000 epoch (2000-01-01T12:00:00Z).
	T0 = 2451545.0

	mjdBasis = 2400000.5
	y2000MJD = T0 - mjdBasis

	deg2rad = 0.017453292519943296
	rad2deg = 57.295779513082321
	asec360 = 1296000.0
	asec2rad = 4.848136811095359935899141e-6
	arc     = 3600.0 * 180.0 / math.Pi // arcseconds per radian

	// CAuDay is the speed of light in AU/day.
	CAuDay = 173.1446326846693

	earthRadiusMeters = 6378136.6
	auMeters          = 1.4959787069098932e+11

	// KmPerAu is the number of kilometers in one astronomical unit.
	KmPerAu = 1.4959787069098932e+8

	earthAngVel          = 7.2921150e-5
	secondsPerDay        = 24.0 * 3600.0
	solarDaysPerSidereal = 0.9972695717592592

	// MeanSynodicMonth is the average number of days for the Moon to return
	// to the same phase.
	MeanSynodicMonth = 29.530588

	earthOrbitalPeriod = 365.256

	refractionNearHorizon = 34.0 / 60.0

	sunRadiusAu  = 4.6505e-3
	moonRadiusAu = 1.15717e-5
)

// Errors reported by ephemeris and search operations. Search failures that
// mean "no such event in the given window" are reported as ErrSearchFailure
// and are a normal outcome for windowed searches like SearchRiseSet.
var (
	ErrInvalidBody      = errors.New("astro: invalid body")
	ErrEarthNotAllowed  = errors.New("astro: Earth is not allowed as the body")
	ErrInvalidParameter = errors.New("astro: invalid parameter")
	ErrBadVector        = errors.New("astro: vector is too short to be normalized")
	ErrBadTime          = errors.New("astro: time is outside the supported range")
	ErrNoConverge       = errors.New("astro: numeric solver did not converge")
	ErrSearchFailure    = errors.New("astro: search did not find the event in the given window")
	ErrInternal         = errors.New("astro: internal error")
	ErrNoMoonQuarter    = errors.New("astro: no moon quarter in the given window")
	ErrWrongMoonQuarter = errors.New("astro: wrong moon quarter found")
)

// Body identifies a Solar System body or barycenter.
type Body int

const (
	InvalidBody Body = iota - 1
	Mercury
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Sun
	Moon
	// EMB is the Earth/Moon barycenter.
	EMB
	// SSB is the Solar System barycenter.
	SSB
)

var bodyNames = map[Body]string{
	Mercury: "Mercury",
	Venus:   "Venus",
	Earth:   "Earth",
	Mars:    "Mars",
	Jupiter: "Jupiter",
	Saturn:  "Saturn",
	Uranus:  "Uranus",
	Neptune: "Neptune",
	Pluto:   "Pluto",
	Sun:     "Sun",
	Moon:    "Moon",
	EMB:     "EMB",
	SSB:     "SSB",
}

// Name returns the English name of the body, or "" if the body is not valid.
func (b Body) Name() string {
	return bodyNames[b]
}

// BodyCode finds the body with the given case-sensitive name,
// or InvalidBody if there is none.
func BodyCode(name string) Body {
	for b, n := range bodyNames {
		if n == name {
			return b
		}
	}
	return InvalidBody
}

// Observer is a location on or near the surface of the Earth.
// Latitude is degrees north of the equator, longitude degrees east of
// Greenwich, height meters above mean sea level.
type Observer struct {
	Latitude  float64
	Longitude float64
	Height    float64
}

func longitudeOffset(diff float64) float64 {
	offset := diff
	for offset <= -180.0 {
		offset += 360.0
	}
	for offset > 180.0 {
		offset -= 360.0
	}
	return offset
}

func normalizeLongitude(lon float64) float64 {
	for lon < 0.0 {
		lon += 360.0
	}
	for lon >= 360.0 {
		lon -= 360.0
	}
	return lon
}
