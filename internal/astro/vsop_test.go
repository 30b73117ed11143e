package astro

import (
	"math"
	"testing"
)

// Earth's ecliptic latitude series carries no zeroth-order terms; the
// leading contribution enters at the first power of time.
func TestEarthLatitudeLeadingOrder(t *testing.T) {
	if got := vsopFormula(vsopLonEarth, 0); got != 0 {
		t.Fatalf("Earth latitude at J2000 = %g, want 0", got)
	}

	var amp float64
	for _, series := range vsopLonEarth {
		for _, term := range series.term {
			amp += term.amplitude
		}
	}

	// With only a first-order series, |B(t)| <= |t| * sum of amplitudes.
	for _, tt := range []float64{-0.5, -0.01, 0.01, 0.2226, 0.5} {
		lat := vsopFormula(vsopLonEarth, tt)
		if bound := math.Abs(tt) * amp; math.Abs(lat) > bound+1e-15 {
			t.Errorf("Earth latitude at t=%v is %g, exceeds first-order bound %g", tt, lat, bound)
		}
	}
}
