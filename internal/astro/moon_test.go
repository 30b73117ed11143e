package astro

import (
	"math"
	"testing"
)

func TestMoonContextZeroHarmonics(t *testing.T) {
	// The zero-multiple harmonic of every fundamental argument is the
	// identity rotation: cos = 1, sin = 0 for all four columns.
	m := &moonContext{t: 0.2226}
	m.init()

	for i := 0; i < 4; i++ {
		if m.co[0+6][i] != 1.0 {
			t.Errorf("co[0][%d] = %v, want 1", i, m.co[0+6][i])
		}
		if m.si[0+6][i] != 0.0 {
			t.Errorf("si[0][%d] = %v, want 0", i, m.si[0+6][i])
		}
	}
}

func TestMoonContextHarmonicSymmetry(t *testing.T) {
	// Negative multiples are the complex conjugates of positive ones.
	m := &moonContext{t: 0.2226}
	m.init()

	for i := 0; i < 4; i++ {
		for j := 1; j <= 3; j++ {
			if m.co[-j+6][i] != m.co[j+6][i] {
				t.Errorf("co[-%d][%d] = %v, want %v", j, i, m.co[-j+6][i], m.co[j+6][i])
			}
			if m.si[-j+6][i] != -m.si[j+6][i] {
				t.Errorf("si[-%d][%d] = %v, want %v", j, i, m.si[-j+6][i], -m.si[j+6][i])
			}
		}
	}
}

func TestCalcMoonReferenceEpoch(t *testing.T) {
	// Cross-check against the geocentric vector pinned in TestGeoMoon.
	lon, lat, dist := calcMoon(epoch2022().TT / 36525.0)

	if lon < 0 || lon >= 2*math.Pi {
		t.Errorf("geocentric longitude = %v, want within [0, 2pi)", lon)
	}
	if math.Abs(lat) > 0.1 {
		t.Errorf("geocentric latitude = %v, implausibly far from the ecliptic", lat)
	}
	// Distance stays within the orbit's perigee/apogee range.
	km := dist * KmPerAu
	if km < 356000 || km > 407000 {
		t.Errorf("distance = %v km, want within [356000, 407000]", km)
	}
}
