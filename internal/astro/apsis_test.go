package astro

import (
	"math"
	"testing"
)

func TestLunarApsisSequence(t *testing.T) {
	// Perigees and apogees of January through March 2022, alternating.
	want := []struct {
		kind   ApsisKind
		ut     float64
		distAU float64
		distKM float64
	}{
		{Pericenter, 8036.4548530903367, 0.0023932524711824895, 358025.47371484869},
		{Apocenter, 8048.8926427740989, 0.002712551580633295, 405791.94060221832},
		{Pericenter, 8064.7993526896671, 0.0024214454882815662, 362243.0890412252},
		{Apocenter, 8076.6090955701511, 0.0027064852075781671, 404884.42411035404},
	}

	apsis, err := SearchLunarApsis(MakeTime(2022, 1, 1, 0, 0, 0.0))
	if err != nil {
		t.Fatalf("SearchLunarApsis error: %v", err)
	}
	for i, w := range want {
		if apsis.Kind != w.kind {
			t.Errorf("event %d: Kind = %v, want %v", i, apsis.Kind, w.kind)
		}
		if math.Abs(apsis.Time.UT-w.ut) > 3e-5 {
			t.Errorf("event %d: UT = %.17g, want %.17g", i, apsis.Time.UT, w.ut)
		}
		if math.Abs(apsis.DistAU-w.distAU) > 1e-9 {
			t.Errorf("event %d: DistAU = %.17g, want %.17g", i, apsis.DistAU, w.distAU)
		}
		if math.Abs(apsis.DistKM-w.distKM) > 1e-3 {
			t.Errorf("event %d: DistKM = %.17g, want %.17g", i, apsis.DistKM, w.distKM)
		}
		if i < len(want)-1 {
			apsis, err = NextLunarApsis(apsis)
			if err != nil {
				t.Fatalf("NextLunarApsis error at event %d: %v", i, err)
			}
		}
	}
}

func TestApsisDistanceConsistency(t *testing.T) {
	apsis, err := SearchLunarApsis(MakeTime(2022, 1, 1, 0, 0, 0.0))
	if err != nil {
		t.Fatalf("SearchLunarApsis error: %v", err)
	}
	if math.Abs(apsis.DistKM-apsis.DistAU*KmPerAu) > 1e-9 {
		t.Errorf("DistKM = %v inconsistent with DistAU = %v", apsis.DistKM, apsis.DistAU)
	}
}
