package almanac

import (
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-ephem/internal/astro"
)

var testObserver = astro.Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0}

func TestComputeEntrySun(t *testing.T) {
	// Start at midnight so the next sunrise and sunset fall within the day.
	time := astro.MakeTime(2022, 3, 15, 0, 0, 0.0)

	entry, err := ComputeEntry(astro.Sun, time, testObserver)
	if err != nil {
		t.Fatalf("ComputeEntry(Sun) error: %v", err)
	}

	if entry.Name != "Sun" {
		t.Errorf("Name = %q, want Sun", entry.Name)
	}
	if !entry.HasRise || !entry.HasSet {
		t.Fatalf("HasRise/HasSet = %v/%v, want true/true", entry.HasRise, entry.HasSet)
	}
	if math.Abs(entry.Rise.UT-8109.0854137264296) > 3e-5 {
		t.Errorf("Rise UT = %.17g, want 8109.0854137264296", entry.Rise.UT)
	}
	if math.Abs(entry.Set.UT-8108.5831813802988) > 3e-5 {
		t.Errorf("Set UT = %.17g, want 8108.5831813802988", entry.Set.UT)
	}
}

func TestComputeEntryCoordinates(t *testing.T) {
	// Mid-morning local time; the Sun is up in the southeast.
	time := astro.MakeTime(2022, 3, 28, 15, 21, 41.0)

	entry, err := ComputeEntry(astro.Sun, time, testObserver)
	if err != nil {
		t.Fatalf("ComputeEntry(Sun) error: %v", err)
	}

	if math.Abs(entry.RA-0.48562704694274883) > 1e-9 {
		t.Errorf("RA = %.17g, want 0.48562704694274883", entry.RA)
	}
	if math.Abs(entry.Dec-3.1442438190216153) > 1e-8 {
		t.Errorf("Dec = %.17g, want 3.1442438190216153", entry.Dec)
	}
	if math.Abs(entry.Azimuth-99.479941589553874) > 1e-8 {
		t.Errorf("Azimuth = %.17g, want 99.479941589553874", entry.Azimuth)
	}
	if math.Abs(entry.Altitude-19.113102594810911) > 1e-8 {
		t.Errorf("Altitude = %.17g, want 19.113102594810911", entry.Altitude)
	}
	if !entry.Up() {
		t.Error("Up() = false, want true for the Sun at mid-morning")
	}
}

func TestComputeEntryMagnitudes(t *testing.T) {
	time := astro.MakeTime(2022, 3, 28, 15, 21, 41.0)

	tests := []struct {
		name string
		body astro.Body
		mag  float64
	}{
		{"Venus", astro.Venus, -4.4323211026937619},
		{"Moon", astro.Moon, -7.9987054298223796},
		{"Saturn", astro.Saturn, 0.73064146998042823},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ComputeEntry(tt.body, time, testObserver)
			if err != nil {
				t.Fatalf("ComputeEntry error: %v", err)
			}
			if math.Abs(entry.Mag-tt.mag) > 1e-8 {
				t.Errorf("Mag = %.17g, want %.17g", entry.Mag, tt.mag)
			}
			if entry.Illum < 0.0 || entry.Illum > 1.0 {
				t.Errorf("Illum = %v, want within [0, 1]", entry.Illum)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	entries, err := Compute(astro.MakeTime(2022, 3, 28, 15, 21, 41.0), testObserver)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if len(entries) != len(DefaultBodies) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(DefaultBodies))
	}
	for i, entry := range entries {
		if entry.Body != DefaultBodies[i] {
			t.Errorf("entry %d: Body = %v, want %v", i, entry.Body, DefaultBodies[i])
		}
		if entry.Altitude < -90.0 || entry.Altitude > 90.0 {
			t.Errorf("%s: Altitude = %v, want within [-90, 90]", entry.Name, entry.Altitude)
		}
		if entry.Azimuth < 0.0 || entry.Azimuth >= 360.0 {
			t.Errorf("%s: Azimuth = %v, want within [0, 360)", entry.Name, entry.Azimuth)
		}
	}
}

func TestComputeMoonInfo(t *testing.T) {
	// Waning crescent a few days before the April 2022 new moon.
	info, err := ComputeMoonInfo(astro.MakeTime(2022, 3, 28, 15, 21, 41.0))
	if err != nil {
		t.Fatalf("ComputeMoonInfo error: %v", err)
	}
	if math.Abs(info.PhaseAngle-314.47132211327261) > 1e-8 {
		t.Errorf("PhaseAngle = %.17g, want 314.47132211327261", info.PhaseAngle)
	}
	if info.PhaseName != "Waning Crescent" {
		t.Errorf("PhaseName = %q, want Waning Crescent", info.PhaseName)
	}
	if info.Illum < 0.0 || info.Illum > 0.5 {
		t.Errorf("Illum = %v, want a crescent fraction below 0.5", info.Illum)
	}
}

func TestBrightStars(t *testing.T) {
	bright := BrightStars(1.5)
	if len(bright) == 0 {
		t.Fatal("BrightStars(1.5) returned no stars")
	}
	for _, s := range bright {
		if s.Mag > 1.5 {
			t.Errorf("%s: Mag = %v exceeds limit", s.Name, s.Mag)
		}
	}
	if bright[0].Name != "Sirius" {
		t.Errorf("brightest star = %q, want Sirius", bright[0].Name)
	}
	if len(BrightStars(5.0)) != len(StarCatalog()) {
		t.Error("BrightStars(5.0) should include the whole catalog")
	}
}

func TestStarHorizontal(t *testing.T) {
	// Polaris stays within a degree and a half of the celestial pole, so
	// its altitude is close to the observer's latitude.
	time := astro.MakeTime(2022, 3, 15, 6, 0, 0.0)
	for _, s := range StarCatalog() {
		if s.Name != "Polaris" {
			continue
		}
		hor := s.Horizontal(time, testObserver, astro.RefractionNone)
		if math.Abs(hor.Altitude-testObserver.Latitude) > 1.5 {
			t.Errorf("Polaris altitude = %v, want near %v", hor.Altitude, testObserver.Latitude)
		}
		return
	}
	t.Fatal("Polaris not found in catalog")
}

func TestWriteTable(t *testing.T) {
	time := astro.MakeTime(2022, 3, 28, 15, 21, 41.0)
	entries, err := Compute(time, testObserver)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	var b strings.Builder
	WriteTable(&b, time, testObserver, entries)
	out := b.String()

	for _, want := range []string{"Body", "Rise", "Sun", "Moon", "Neptune"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestExportJSON(t *testing.T) {
	time := astro.MakeTime(2022, 3, 28, 15, 21, 41.0)
	entries, err := Compute(time, testObserver)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	export := Export(time, testObserver, entries, nil)
	if len(export.Entries) != len(entries) {
		t.Fatalf("len(Entries) = %d, want %d", len(export.Entries), len(entries))
	}
	if export.Time != "2022-03-28T15:21:40.999Z" {
		t.Errorf("Time = %q, want 2022-03-28T15:21:40.999Z", export.Time)
	}

	var b strings.Builder
	if err := export.WriteJSON(&b); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	for _, want := range []string{`"body": "Sun"`, `"magnitude"`, `"latitude": 34.2`} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("JSON output missing %q", want)
		}
	}
}
