package astro

import (
	"math"
	"testing"
)

// epoch2022 is the shared observation time for the position tests.
func epoch2022() Time {
	return MakeTime(2022, 3, 28, 15, 21, 41.0)
}

func TestHelioVector(t *testing.T) {
	time := epoch2022()

	tests := []struct {
		body    Body
		x, y, z float64
	}{
		{Mercury, 0.36012249279871816, -0.057028144448512272, -0.067786269063844079},
		{Venus, -0.41031185732322312, -0.55378906926903571, -0.22321778101739409},
		{Earth, -0.98932448489328739, -0.12148048663427363, -0.052657123357350427},
		{Mars, 0.33465854475188245, -1.2596468147521125, -0.58680327567032475},
		{Jupiter, 4.8430893980518883, -1.0038023259280744, -0.54812672727351464},
		{Saturn, 7.2700090081272215, -6.0967090016813543, -2.8318181878440329},
		{Uranus, 14.159512532354741, 12.631356274318666, 5.3319623067123727},
		{Neptune, 29.669167108790234, -3.2617260820156271, -2.0721795784387216},
		{Pluto, 15.377400780926905, -27.851716385993157, -13.322718557752992},
		{Sun, 0, 0, 0},
		{Moon, -0.98735468498172607, -0.12279851651114654, -0.053472937163092198},
		{EMB, -0.98930055067082812, -0.12149650146912862, -0.052667035972838602},
		{SSB, 0.0088373440548738282, -0.0023148021204442192, -0.0012052536016673042},
	}

	for _, tt := range tests {
		t.Run(tt.body.Name(), func(t *testing.T) {
			got, err := HelioVector(tt.body, time)
			if err != nil {
				t.Fatalf("HelioVector(%v) error: %v", tt.body, err)
			}
			const tol = 1e-10
			if math.Abs(got.X-tt.x) > tol || math.Abs(got.Y-tt.y) > tol || math.Abs(got.Z-tt.z) > tol {
				t.Errorf("HelioVector(%v) = {%.17g, %.17g, %.17g}, want {%.17g, %.17g, %.17g}",
					tt.body, got.X, got.Y, got.Z, tt.x, tt.y, tt.z)
			}
			if got.T != time {
				t.Errorf("HelioVector(%v) T = %v, want %v", tt.body, got.T, time)
			}
		})
	}
}

func TestHelioVectorInvalidBody(t *testing.T) {
	if _, err := HelioVector(InvalidBody, epoch2022()); err != ErrInvalidBody {
		t.Errorf("HelioVector(InvalidBody) error = %v, want ErrInvalidBody", err)
	}
}

func TestHelioVectorPlutoOutOfRange(t *testing.T) {
	// The Pluto model covers the years 1700..2200.
	past := MakeTime(1650, 1, 1, 0, 0, 0.0)
	if _, err := HelioVector(Pluto, past); err != ErrBadTime {
		t.Errorf("HelioVector(Pluto, 1650) error = %v, want ErrBadTime", err)
	}
}

func TestGeoMoon(t *testing.T) {
	got := GeoMoon(epoch2022())
	want := Vector{
		X: 0.0019697999115613745,
		Y: -0.001318029876872907,
		Z: -0.00081581380574176723,
	}
	const tol = 1e-14
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("GeoMoon() = {%.17g, %.17g, %.17g}, want {%.17g, %.17g, %.17g}",
			got.X, got.Y, got.Z, want.X, want.Y, want.Z)
	}
}

func TestGeoVector(t *testing.T) {
	time := epoch2022()

	tests := []struct {
		name       string
		body       Body
		aberration Aberration
		x, y, z    float64
	}{
		{"Mars with aberration", Mars, WithAberration,
			1.3238550636499258, -1.1383764200087227, -0.53423432040812968},
		{"Jupiter with aberration", Jupiter, WithAberration,
			5.8324259759623036, -0.88310173532220038, -0.49580513771686474},
		{"Venus without aberration", Venus, NoAberration,
			0.57894177241438882, -0.43226503870749272, -0.17053657942888667},
		{"Earth is origin", Earth, NoAberration, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GeoVector(tt.body, time, tt.aberration)
			if err != nil {
				t.Fatalf("GeoVector(%v) error: %v", tt.body, err)
			}
			const tol = 1e-10
			if math.Abs(got.X-tt.x) > tol || math.Abs(got.Y-tt.y) > tol || math.Abs(got.Z-tt.z) > tol {
				t.Errorf("GeoVector(%v) = {%.17g, %.17g, %.17g}, want {%.17g, %.17g, %.17g}",
					tt.body, got.X, got.Y, got.Z, tt.x, tt.y, tt.z)
			}
			if got.T != time {
				t.Errorf("GeoVector(%v) T not patched to observation time", tt.body)
			}
		})
	}
}

func TestEquator(t *testing.T) {
	time := epoch2022()
	observer := Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0}

	tests := []struct {
		name    string
		equdate EquatorEpoch
		ra      float64
		dec     float64
		dist    float64
	}{
		{"J2000", EquatorJ2000, 0.46681853093965331, 3.0227164666561599, 0.99813095427125265},
		{"of date", EquatorOfDate, 0.48562704694274883, 3.1442438190216153, 0.99813095427125287},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equator(Sun, time, observer, tt.equdate, WithAberration)
			if err != nil {
				t.Fatalf("Equator(Sun) error: %v", err)
			}
			if math.Abs(got.RA-tt.ra) > 1e-9 {
				t.Errorf("RA = %.17g, want %.17g", got.RA, tt.ra)
			}
			if math.Abs(got.Dec-tt.dec) > 1e-8 {
				t.Errorf("Dec = %.17g, want %.17g", got.Dec, tt.dec)
			}
			if math.Abs(got.Dist-tt.dist) > 1e-10 {
				t.Errorf("Dist = %.17g, want %.17g", got.Dist, tt.dist)
			}
		})
	}
}

func TestSunPosition(t *testing.T) {
	got := SunPosition(epoch2022())
	if math.Abs(got.Elat-5.944141728868546e-05) > 1e-10 {
		t.Errorf("Elat = %.17g, want 5.944141728868546e-05", got.Elat)
	}
	if math.Abs(got.Elon-7.9237380466833391) > 1e-8 {
		t.Errorf("Elon = %.17g, want 7.9237380466833391", got.Elon)
	}
	if math.Abs(got.Ex-0.9886133702035943) > 1e-10 {
		t.Errorf("Ex = %.17g, want 0.9886133702035943", got.Ex)
	}
}

func TestEclipticLongitude(t *testing.T) {
	got, err := EclipticLongitude(Mars, epoch2022())
	if err != nil {
		t.Fatalf("EclipticLongitude(Mars) error: %v", err)
	}
	if math.Abs(got-283.5452399807595) > 1e-8 {
		t.Errorf("EclipticLongitude(Mars) = %.17g, want 283.5452399807595", got)
	}

	if _, err := EclipticLongitude(Sun, epoch2022()); err != ErrInvalidBody {
		t.Errorf("EclipticLongitude(Sun) error = %v, want ErrInvalidBody", err)
	}
}

func TestEclipticFromEquatorial(t *testing.T) {
	gv, err := GeoVector(Moon, epoch2022(), NoAberration)
	if err != nil {
		t.Fatalf("GeoVector(Moon) error: %v", err)
	}
	ecl, err := EclipticFromEquatorial(gv)
	if err != nil {
		t.Fatalf("EclipticFromEquatorial error: %v", err)
	}
	if math.Abs(ecl.Elat-(-5.1319772693277752)) > 1e-8 {
		t.Errorf("Elat = %.17g, want -5.1319772693277752", ecl.Elat)
	}
	if math.Abs(ecl.Elon-322.09396175310542) > 1e-8 {
		t.Errorf("Elon = %.17g, want 322.09396175310542", ecl.Elon)
	}
}
