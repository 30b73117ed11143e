package astro

import (
	"math"
	"testing"
)

func TestPivot(t *testing.T) {
	// Compose three pivots of the identity matrix and apply the result.
	rot := IdentityMatrix()
	var err error
	if rot, err = Pivot(rot, 2, 90.0); err != nil {
		t.Fatalf("Pivot(z, 90): %v", err)
	}
	if rot, err = Pivot(rot, 0, -30.0); err != nil {
		t.Fatalf("Pivot(x, -30): %v", err)
	}
	if rot, err = Pivot(rot, 1, 180.0); err != nil {
		t.Fatalf("Pivot(y, 180): %v", err)
	}

	v := RotateVector(rot, Vector{X: 1, Y: 2, Z: 3})
	want := Vector{X: 2.0, Y: 2.3660254037844384, Z: -2.098076211353316}

	const tol = 1e-12
	if math.Abs(v.X-want.X) > tol || math.Abs(v.Y-want.Y) > tol || math.Abs(v.Z-want.Z) > tol {
		t.Errorf("pivoted vector = {%.17g, %.17g, %.17g}, want {%.17g, %.17g, %.17g}",
			v.X, v.Y, v.Z, want.X, want.Y, want.Z)
	}
}

func TestPivotInvalidAxis(t *testing.T) {
	if _, err := Pivot(IdentityMatrix(), 3, 45.0); err != ErrInvalidParameter {
		t.Errorf("Pivot(axis=3) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Pivot(IdentityMatrix(), -1, 45.0); err != ErrInvalidParameter {
		t.Errorf("Pivot(axis=-1) error = %v, want ErrInvalidParameter", err)
	}
}

func TestInverseRotation(t *testing.T) {
	time := MakeTime(2022, 3, 28, 15, 21, 41.0)
	rot := RotationEQJtoEQD(time)
	inv := InverseRotation(rot)

	v := Vector{X: 0.9, Y: -0.2, Z: 0.4, T: time}
	round := RotateVector(inv, RotateVector(rot, v))

	const tol = 1e-14
	if math.Abs(round.X-v.X) > tol || math.Abs(round.Y-v.Y) > tol || math.Abs(round.Z-v.Z) > tol {
		t.Errorf("inverse round trip = {%.17g, %.17g, %.17g}, want {%.17g, %.17g, %.17g}",
			round.X, round.Y, round.Z, v.X, v.Y, v.Z)
	}
}

func TestCombineRotation(t *testing.T) {
	time := MakeTime(2022, 3, 28, 15, 21, 41.0)
	a := RotationEQJtoEQD(time)
	b := RotationEQDtoHOR(time, Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0})
	c := CombineRotation(a, b)

	v := Vector{X: 0.3, Y: 0.5, Z: -0.7, T: time}
	direct := RotateVector(b, RotateVector(a, v))
	combined := RotateVector(c, v)

	const tol = 1e-14
	if math.Abs(direct.X-combined.X) > tol || math.Abs(direct.Y-combined.Y) > tol || math.Abs(direct.Z-combined.Z) > tol {
		t.Errorf("CombineRotation mismatch: direct {%.17g, %.17g, %.17g}, combined {%.17g, %.17g, %.17g}",
			direct.X, direct.Y, direct.Z, combined.X, combined.Y, combined.Z)
	}
}

func TestEquatorialEclipticRoundTrip(t *testing.T) {
	toEcl := RotationEQJtoECL()
	toEqj := RotationECLtoEQJ()

	v := Vector{X: 0.25, Y: -0.95, Z: 0.18}
	round := RotateVector(toEqj, RotateVector(toEcl, v))

	const tol = 1e-15
	if math.Abs(round.X-v.X) > tol || math.Abs(round.Y-v.Y) > tol || math.Abs(round.Z-v.Z) > tol {
		t.Errorf("EQJ->ECL->EQJ round trip = {%.17g, %.17g, %.17g}, want {%.17g, %.17g, %.17g}",
			round.X, round.Y, round.Z, v.X, v.Y, v.Z)
	}
}

func TestHorizontalRotationAgreesWithHorizon(t *testing.T) {
	// Rotating an of-date direction vector into the horizontal frame must
	// agree with the direct horizontal conversion, absent refraction.
	time := MakeTime(2022, 3, 28, 15, 21, 41.0)
	observer := Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0}

	eqd, err := Equator(Sun, time, observer, EquatorOfDate, WithAberration)
	if err != nil {
		t.Fatalf("Equator: %v", err)
	}
	hor := Horizon(time, observer, eqd.RA, eqd.Dec, RefractionNone)

	sphere := Spherical{Lat: eqd.Dec, Lon: 15.0 * eqd.RA, Dist: 1.0}
	vec := VectorFromSphere(sphere, time)
	rot := RotationEQDtoHOR(time, observer)
	hvec := RotateVector(rot, vec)

	// In the horizontal frame: x=north, y=west, z=zenith.
	altitude := rad2deg * math.Asin(hvec.Z)
	azimuth := normalizeLongitude(rad2deg * math.Atan2(-hvec.Y, hvec.X))

	if math.Abs(altitude-hor.Altitude) > 1e-10 {
		t.Errorf("altitude via rotation = %.17g, via Horizon = %.17g", altitude, hor.Altitude)
	}
	if math.Abs(azimuth-hor.Azimuth) > 1e-10 {
		t.Errorf("azimuth via rotation = %.17g, via Horizon = %.17g", azimuth, hor.Azimuth)
	}
}
