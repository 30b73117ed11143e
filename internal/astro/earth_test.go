package astro

import (
	"math"
	"testing"
)

func TestSiderealTime(t *testing.T) {
	time := MakeTime(2022, 3, 15, 21, 50, 0.0)
	got := SiderealTime(time)
	if math.Abs(got-9.3983684603952131) > 1e-9 {
		t.Errorf("SiderealTime() = %.17g, want 9.3983684603952131", got)
	}
	if got < 0 || got >= 24 {
		t.Errorf("SiderealTime() = %v, want within [0, 24)", got)
	}
}

func TestMeanObliquity(t *testing.T) {
	// The mean obliquity at J2000 is 23.43928 degrees to five decimals.
	got := meanObliquity(0.0)
	if math.Abs(got-23.43928) > 1e-5 {
		t.Errorf("meanObliquity(J2000) = %.6f, want 23.43928", got)
	}
}

func TestPrecessionRoundTrip(t *testing.T) {
	time := MakeTime(2022, 3, 28, 15, 21, 41.0)
	pos := [3]float64{0.5, -0.3, 0.8}

	fwd := precession(0.0, pos, time.TT)
	back := precession(time.TT, fwd, 0.0)

	const tol = 1e-14
	for i := 0; i < 3; i++ {
		if math.Abs(back[i]-pos[i]) > tol {
			t.Errorf("precession round trip [%d] = %.17g, want %.17g", i, back[i], pos[i])
		}
	}
}

func TestNutationRoundTrip(t *testing.T) {
	time := MakeTime(2022, 3, 28, 15, 21, 41.0)
	pos := [3]float64{0.5, -0.3, 0.8}

	fwd := nutation(time, 0, pos)
	back := nutation(time, -1, fwd)

	const tol = 1e-14
	for i := 0; i < 3; i++ {
		if math.Abs(back[i]-pos[i]) > tol {
			t.Errorf("nutation round trip [%d] = %.17g, want %.17g", i, back[i], pos[i])
		}
	}
}
