package astro

import (
	"math"
	"testing"
)

// Searched event times are found to within a second or so; allow a couple
// of seconds of slack when comparing against known event times.
const eventTol = 3e-5 // days

func TestMoonPhase(t *testing.T) {
	got, err := MoonPhase(MakeTime(2022, 3, 28, 15, 21, 41.0))
	if err != nil {
		t.Fatalf("MoonPhase error: %v", err)
	}
	if math.Abs(got-314.47132211327261) > 1e-8 {
		t.Errorf("MoonPhase() = %.17g, want 314.47132211327261", got)
	}
}

func TestMoonQuarterSequence(t *testing.T) {
	// Lunar quarters of January 2022, starting with the new moon on
	// January 2 and wrapping into the next cycle.
	want := []struct {
		quarter int
		ut      float64
	}{
		{0, 8037.2737073754079},
		{1, 8044.258362202233},
		{2, 8052.4925231823245},
		{3, 8060.070549458811},
		{0, 8066.7407366877942},
	}

	mq, err := SearchMoonQuarter(MakeTime(2022, 1, 1, 0, 0, 0.0))
	if err != nil {
		t.Fatalf("SearchMoonQuarter error: %v", err)
	}
	for i, w := range want {
		if mq.Quarter != w.quarter {
			t.Errorf("event %d: quarter = %d, want %d", i, mq.Quarter, w.quarter)
		}
		if math.Abs(mq.Time.UT-w.ut) > eventTol {
			t.Errorf("event %d: UT = %.17g, want %.17g", i, mq.Time.UT, w.ut)
		}
		if i < len(want)-1 {
			mq, err = NextMoonQuarter(mq)
			if err != nil {
				t.Fatalf("NextMoonQuarter error at event %d: %v", i, err)
			}
		}
	}
}

func TestSearchMoonPhase(t *testing.T) {
	// Full moon of March 2022.
	got, err := SearchMoonPhase(180.0, MakeTime(2022, 3, 1, 0, 0, 0.0), 40.0)
	if err != nil {
		t.Fatalf("SearchMoonPhase error: %v", err)
	}
	if math.Abs(got.UT-8111.8043450593941) > eventTol {
		t.Errorf("full moon UT = %.17g, want 8111.8043450593941", got.UT)
	}
}

func TestSearchMoonPhaseWindowTooShort(t *testing.T) {
	// The full moon is more than 10 days away from this start date.
	if _, err := SearchMoonPhase(180.0, MakeTime(2022, 3, 1, 0, 0, 0.0), 10.0); err != ErrNoMoonQuarter {
		t.Errorf("SearchMoonPhase error = %v, want ErrNoMoonQuarter", err)
	}
}

func TestSeasons(t *testing.T) {
	seasons, err := Seasons(2022)
	if err != nil {
		t.Fatalf("Seasons error: %v", err)
	}

	tests := []struct {
		name string
		got  Time
		ut   float64
	}{
		{"March equinox", seasons.MarEquinox, 8114.1482244183726},
		{"June solstice", seasons.JunSolstice, 8206.8845412142473},
		{"September equinox", seasons.SepEquinox, 8300.5445217178149},
		{"December solstice", seasons.DecSolstice, 8390.4083319412985},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got.UT-tt.ut) > eventTol {
				t.Errorf("UT = %.17g, want %.17g", tt.got.UT, tt.ut)
			}
		})
	}
}

func TestSearchRiseSet(t *testing.T) {
	observer := Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0}
	start := MakeTime(2022, 3, 15, 0, 0, 0.0)

	tests := []struct {
		name      string
		body      Body
		direction Direction
		ut        float64
	}{
		{"sunrise", Sun, DirectionRise, 8109.0854137264296},
		{"sunset", Sun, DirectionSet, 8108.5831813802988},
		{"moonrise", Moon, DirectionRise, 8109.4826072537553},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchRiseSet(tt.body, observer, tt.direction, start, 1.0)
			if err != nil {
				t.Fatalf("SearchRiseSet error: %v", err)
			}
			if math.Abs(got.UT-tt.ut) > eventTol {
				t.Errorf("UT = %.17g, want %.17g", got.UT, tt.ut)
			}
		})
	}
}

func TestSearchRiseSetInvalidDirection(t *testing.T) {
	observer := Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0}
	start := MakeTime(2022, 3, 15, 0, 0, 0.0)
	if _, err := SearchRiseSet(Sun, observer, Direction(0), start, 1.0); err != ErrInvalidParameter {
		t.Errorf("SearchRiseSet error = %v, want ErrInvalidParameter", err)
	}
}

func TestSearchHourAngle(t *testing.T) {
	// Solar transit: the Sun crossing the meridian at hour angle zero.
	observer := Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0}
	start := MakeTime(2022, 3, 15, 0, 0, 0.0)

	got, err := SearchHourAngle(Sun, observer, 0.0, start)
	if err != nil {
		t.Fatalf("SearchHourAngle error: %v", err)
	}
	if math.Abs(got.Time.UT-8109.3343866673349) > eventTol {
		t.Errorf("transit UT = %.17g, want 8109.3343866673349", got.Time.UT)
	}
	if math.Abs(got.Hor.Altitude-53.910528500752804) > 1e-4 {
		t.Errorf("transit altitude = %.17g, want 53.910528500752804", got.Hor.Altitude)
	}
	// At transit the Sun is due south from a northern observer.
	if math.Abs(got.Hor.Azimuth-180.0) > 1e-3 {
		t.Errorf("transit azimuth = %.17g, want ~180", got.Hor.Azimuth)
	}
}

func TestLongitudeFromSun(t *testing.T) {
	time := MakeTime(2022, 3, 28, 15, 21, 41.0)

	got, err := LongitudeFromSun(Mars, time)
	if err != nil {
		t.Fatalf("LongitudeFromSun error: %v", err)
	}
	if math.Abs(got-308.8661130723857) > 1e-8 {
		t.Errorf("LongitudeFromSun(Mars) = %.17g, want 308.8661130723857", got)
	}

	if _, err := LongitudeFromSun(Earth, time); err != ErrEarthNotAllowed {
		t.Errorf("LongitudeFromSun(Earth) error = %v, want ErrEarthNotAllowed", err)
	}
}

func TestAngleFromSun(t *testing.T) {
	got, err := AngleFromSun(Mars, MakeTime(2022, 3, 28, 15, 21, 41.0))
	if err != nil {
		t.Fatalf("AngleFromSun error: %v", err)
	}
	if math.Abs(got-51.143524197074164) > 1e-8 {
		t.Errorf("AngleFromSun(Mars) = %.17g, want 51.143524197074164", got)
	}
}

func TestElongation(t *testing.T) {
	got, err := Elongation(Mercury, MakeTime(2022, 3, 28, 15, 21, 41.0))
	if err != nil {
		t.Fatalf("Elongation error: %v", err)
	}
	if got.Visibility != VisibleMorning {
		t.Errorf("Visibility = %v, want VisibleMorning", got.Visibility)
	}
	if math.Abs(got.Elongation-5.6325317794787058) > 1e-8 {
		t.Errorf("Elongation = %.17g, want 5.6325317794787058", got.Elongation)
	}
	if math.Abs(got.RelativeLongitude-5.3780713275383505) > 1e-8 {
		t.Errorf("RelativeLongitude = %.17g, want 5.3780713275383505", got.RelativeLongitude)
	}
}

func TestSearchMaxElongation(t *testing.T) {
	got, err := SearchMaxElongation(Mercury, MakeTime(2022, 1, 1, 0, 0, 0.0))
	if err != nil {
		t.Fatalf("SearchMaxElongation error: %v", err)
	}
	// The slope search runs at a 10 second tolerance.
	if math.Abs(got.Time.UT-8041.9587826759671) > 3e-4 {
		t.Errorf("UT = %.17g, want 8041.9587826759671", got.Time.UT)
	}
	if math.Abs(got.Elongation-19.220474773853958) > 1e-4 {
		t.Errorf("Elongation = %.17g, want 19.220474773853958", got.Elongation)
	}
	if got.Visibility != VisibleEvening {
		t.Errorf("Visibility = %v, want VisibleEvening", got.Visibility)
	}
}

func TestSearchMaxElongationInvalidBody(t *testing.T) {
	if _, err := SearchMaxElongation(Mars, MakeTime(2022, 1, 1, 0, 0, 0.0)); err != ErrInvalidBody {
		t.Errorf("SearchMaxElongation(Mars) error = %v, want ErrInvalidBody", err)
	}
}

func TestSearchRelativeLongitude(t *testing.T) {
	// Mars opposition of December 2022.
	got, err := SearchRelativeLongitude(Mars, 0.0, MakeTime(2022, 1, 1, 0, 0, 0.0))
	if err != nil {
		t.Fatalf("SearchRelativeLongitude error: %v", err)
	}
	if math.Abs(got.UT-8376.7320405816881) > 1e-4 {
		t.Errorf("opposition UT = %.17g, want 8376.7320405816881", got.UT)
	}

	if _, err := SearchRelativeLongitude(Earth, 0.0, MakeTime(2022, 1, 1, 0, 0, 0.0)); err != ErrEarthNotAllowed {
		t.Errorf("SearchRelativeLongitude(Earth) error = %v, want ErrEarthNotAllowed", err)
	}
	if _, err := SearchRelativeLongitude(Moon, 0.0, MakeTime(2022, 1, 1, 0, 0, 0.0)); err != ErrInvalidBody {
		t.Errorf("SearchRelativeLongitude(Moon) error = %v, want ErrInvalidBody", err)
	}
}
