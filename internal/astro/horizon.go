package astro

import "math"

// Refraction selects an atmospheric refraction model for horizontal
// coordinate conversions.
type Refraction int

const (
	// RefractionNone performs no refraction correction.
	RefractionNone Refraction = iota
	// RefractionNormal corrects for atmospheric refraction using the
	// Meeus "Astronomical Algorithms" model. Recommended for most uses.
	RefractionNormal
	// RefractionJPLHor mimics the JPL Horizons refraction model, for
	// comparing against its output. Not recommended otherwise.
	RefractionJPLHor
)

// Horizontal holds apparent horizontal coordinates of a body: azimuth in
// degrees clockwise from north, altitude in degrees above the horizon, and
// the right ascension and declination the body appears to have after the
// refraction correction, if one was applied.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
	RA       float64
	Dec      float64
}

// Horizon converts equatorial coordinates of date to apparent horizontal
// coordinates for the given observer. The ra and dec arguments must be
// expressed in the true equator of date, as returned by Equator with
// EquatorOfDate. With RefractionNormal or RefractionJPLHor, all four output
// coordinates are adjusted for atmospheric refraction; with RefractionNone
// the output RA and Dec equal the inputs.
func Horizon(time Time, observer Observer, ra, dec float64, refraction Refraction) Horizontal {
	sinlat := math.Sin(observer.Latitude * deg2rad)
	coslat := math.Cos(observer.Latitude * deg2rad)
	sinlon := math.Sin(observer.Longitude * deg2rad)
	coslon := math.Cos(observer.Longitude * deg2rad)
	sindc := math.Sin(dec * deg2rad)
	cosdc := math.Cos(dec * deg2rad)
	sinra := math.Sin(ra * 15 * deg2rad)
	cosra := math.Cos(ra * 15 * deg2rad)

	// Observer's zenith, north, and west directions in terrestrial
	// coordinates, then rotated into celestial coordinates of date.
	uze := [3]float64{coslat * coslon, coslat * sinlon, sinlat}
	une := [3]float64{-sinlat * coslon, -sinlat * sinlon, coslat}
	uwe := [3]float64{sinlon, -coslon, 0.0}

	uz := ter2cel(time, uze)
	un := ter2cel(time, une)
	uw := ter2cel(time, uwe)

	p := [3]float64{cosdc * cosra, cosdc * sinra, sindc}

	pz := p[0]*uz[0] + p[1]*uz[1] + p[2]*uz[2]
	pn := p[0]*un[0] + p[1]*un[1] + p[2]*un[2]
	pw := p[0]*uw[0] + p[1]*uw[1] + p[2]*uw[2]

	proj := math.Sqrt(pn*pn + pw*pw)
	az := 0.0
	if proj > 0.0 {
		az = -math.Atan2(pw, pn) * rad2deg
		if az < 0 {
			az += 360
		}
		if az >= 360 {
			az -= 360
		}
	}
	zd := math.Atan2(proj, pz) * rad2deg

	hor := Horizontal{RA: ra, Dec: dec}

	if refraction == RefractionNormal || refraction == RefractionJPLHor {
		zd0 := zd

		// JPL Horizons uses the refraction model from Meeus,
		// "Astronomical Algorithms", 1991, p. 101-102, and clamps the
		// angle to 1 degree below the horizon. The clamp matters because
		// the formula blows up near hd = -5.11.
		hd := 90.0 - zd
		if hd < -1.0 {
			hd = -1.0
		}

		refr := (1.02 / math.Tan((hd+10.3/(hd+5.11))*deg2rad)) / 60.0

		if refraction == RefractionNormal && zd > 91.0 {
			// Gradually reduce refraction toward the nadir so the
			// altitude never drops below -90 degrees. At zd = 91 the
			// factor is exactly 1; it approaches 0 linearly at zd = 180.
			refr *= (180.0 - zd) / 89.0
		}

		zd -= refr

		if refr > 0.0 && zd > 3.0e-4 {
			sinzd := math.Sin(zd * deg2rad)
			coszd := math.Cos(zd * deg2rad)
			sinzd0 := math.Sin(zd0 * deg2rad)
			coszd0 := math.Cos(zd0 * deg2rad)

			var pr [3]float64
			for j := 0; j < 3; j++ {
				pr[j] = ((p[j]-coszd0*uz[j])/sinzd0)*sinzd + uz[j]*coszd
			}

			proj = math.Sqrt(pr[0]*pr[0] + pr[1]*pr[1])
			if proj > 0 {
				hor.RA = math.Atan2(pr[1], pr[0]) * rad2deg / 15
				if hor.RA < 0 {
					hor.RA += 24
				}
				if hor.RA >= 24 {
					hor.RA -= 24
				}
			} else {
				hor.RA = 0
			}
			hor.Dec = math.Atan2(pr[2], proj) * rad2deg
		}
	}

	hor.Azimuth = az
	hor.Altitude = 90.0 - zd
	return hor
}
