package astro

import "math"

// Vector is a Cartesian position in AU, tagged with the time it is valid for.
type Vector struct {
	X float64
	Y float64
	Z float64
	T Time
}

// Length returns the non-negative length of the vector in AU.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// AngleBetween returns the angle in degrees between two vectors.
// It fails with ErrBadVector if either vector is shorter than 1e-8 AU,
// where the direction is numerically meaningless.
func AngleBetween(a, b Vector) (float64, error) {
	r := a.Length() * b.Length()
	if r < 1.0e-8 {
		return 0, ErrBadVector
	}

	dot := (a.X*b.X + a.Y*b.Y + a.Z*b.Z) / r

	switch {
	case dot <= -1.0:
		return 180.0, nil
	case dot >= +1.0:
		return 0.0, nil
	default:
		return rad2deg * math.Acos(dot), nil
	}
}

// Spherical is an angular/radial coordinate triple: latitude and longitude
// in degrees, distance in AU.
type Spherical struct {
	Lat  float64
	Lon  float64
	Dist float64
}

// SphereFromVector converts a Cartesian vector to spherical coordinates.
// Fails with ErrBadVector for the zero vector, which has no direction.
func SphereFromVector(v Vector) (Spherical, error) {
	xyproj := v.X*v.X + v.Y*v.Y
	dist := math.Sqrt(xyproj + v.Z*v.Z)

	var lat, lon float64
	if xyproj == 0.0 {
		if v.Z == 0.0 {
			return Spherical{}, ErrBadVector
		}
		lon = 0.0
		if v.Z < 0.0 {
			lat = -90.0
		} else {
			lat = +90.0
		}
	} else {
		lon = rad2deg * math.Atan2(v.Y, v.X)
		if lon < 0.0 {
			lon += 360.0
		}
		lat = rad2deg * math.Atan2(v.Z, math.Sqrt(xyproj))
	}

	return Spherical{Lat: lat, Lon: lon, Dist: dist}, nil
}

// VectorFromSphere converts spherical coordinates to a Cartesian vector
// carrying the given time tag.
func VectorFromSphere(sphere Spherical, time Time) Vector {
	latrad := sphere.Lat * deg2rad
	lonrad := sphere.Lon * deg2rad
	rcoslat := sphere.Dist * math.Cos(latrad)

	return Vector{
		X: rcoslat * math.Cos(lonrad),
		Y: rcoslat * math.Sin(lonrad),
		Z: sphere.Dist * math.Sin(latrad),
		T: time,
	}
}
