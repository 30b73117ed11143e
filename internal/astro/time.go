package astro

import (
	"fmt"
	"math"
	"time"
)

// Time is an instant expressed in two related time scales.
// UT is days since noon UTC on 2000-01-01 (Universal Time, tracking the
// Earth's rotation); TT is the corresponding Terrestrial Time in days
// (uniform time used by the orbital models). TT is derived from UT using a
// historical and predictive Delta-T table.
type Time struct {
	UT float64
	TT float64
}

type deltaTEntry struct {
	mjd float64
	dt  float64
}

// deltaT interpolates the Delta-T table at the given Modified Julian Date.
// Outside the table range it clamps to the first or last entry. The bracket
// search maintains lo <= hi by construction, so the lookup cannot fail.
func deltaT(mjd float64) float64 {
	if mjd <= deltaTTable[0].mjd {
		return deltaTTable[0].dt
	}
	last := len(deltaTTable) - 1
	if mjd >= deltaTTable[last].mjd {
		return deltaTTable[last].dt
	}
	lo := 0
	hi := last - 1
	for lo <= hi {
		c := (lo + hi) / 2
		switch {
		case mjd < deltaTTable[c].mjd:
			hi = c - 1
		case mjd > deltaTTable[c+1].mjd:
			lo = c + 1
		default:
			frac := (mjd - deltaTTable[c].mjd) / (deltaTTable[c+1].mjd - deltaTTable[c].mjd)
			return deltaTTable[c].dt + frac*(deltaTTable[c+1].dt-deltaTTable[c].dt)
		}
	}
	// Unreachable: the clamps above guarantee mjd lies inside the table.
	return deltaTTable[last].dt
}

func terrestrialTime(ut float64) float64 {
	return ut + deltaT(ut+y2000MJD)/secondsPerDay
}

func universalTime(ut float64) Time {
	return Time{UT: ut, TT: terrestrialTime(ut)}
}

// MakeTime creates a Time from a UTC calendar date and time.
// The fields are not validated; out-of-range values produce an
// arithmetically valid but semantically meaningless time.
func MakeTime(year, month, day, hour, minute int, second float64) Time {
	// Fliegel-Van Flandern formula, adapted from NOVAS C 3.1 julian_date().
	y := int64(year)
	m := int64(month)
	d := int64(day)
	jd12h := d - 32075 + 1461*(y+4800+(m-14)/12)/4 +
		367*(m-2-(m-14)/12*12)/12 -
		3*((y+4900+(m-14)/12)/100)/4

	y2000 := jd12h - 2451545

	ut := float64(y2000) - 0.5 + float64(hour)/24.0 + float64(minute)/(24.0*60.0) + second/(24.0*3600.0)

	return Time{UT: ut, TT: terrestrialTime(ut)}
}

// TerrestrialTime creates a Time with the given Terrestrial Time in days
// since the J2000 epoch, back-solving the Universal Time field. This is a
// rare constructor used to reproduce historical anchors pinned in TT.
func TerrestrialTime(tt float64) Time {
	ut := tt - deltaT(tt+y2000MJD)/secondsPerDay
	return Time{UT: ut, TT: tt}
}

// CurrentTime returns the current system date and time with 1-second
// granularity. This is the only non-deterministic operation in the package.
func CurrentTime() Time {
	ut := float64(time.Now().UTC().Unix())/secondsPerDay - 10957.5
	return universalTime(ut)
}

// AddDays returns the time `days` later than t (or earlier if negative).
// UT is adjusted exactly; TT is recomputed from the new UT. Strictly the
// offset should be applied in TT, but Delta-T drifts about one second per
// year, so the error is around 1e-7 times days.
func (t Time) AddDays(days float64) Time {
	return universalTime(t.UT + days)
}

// UTC is a calendar date and time in Coordinated Universal Time.
type UTC struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// TimeFromUTC converts a calendar date and time to a Time.
func TimeFromUTC(utc UTC) Time {
	return MakeTime(utc.Year, utc.Month, utc.Day, utc.Hour, utc.Minute, utc.Second)
}

// UTC breaks the time down into a UTC calendar date and time.
func (t Time) UTC() UTC {
	// Adapted from the NOVAS C 3.1 function cal_date().
	var utc UTC

	djd := t.UT + 2451545.5
	jd := int64(djd)

	x := 24.0 * math.Mod(djd, 1.0)
	utc.Hour = int(x)
	x = 60.0 * math.Mod(x, 1.0)
	utc.Minute = int(x)
	utc.Second = 60.0 * math.Mod(x, 1.0)

	k := jd + 68569
	n := 4 * k / 146097
	k = k - (146097*n+3)/4
	m := 4000 * (k + 1) / 1461001
	k = k - 1461*m/4 + 31

	month := 80 * k / 2447
	utc.Day = int(k - 2447*month/80)
	k = month / 11

	utc.Month = int(month + 2 - 12*k)
	utc.Year = int(100*(n-49) + m + k)

	return utc
}

// String formats the time as an ISO 8601 UTC timestamp with milliseconds,
// e.g. "2000-01-01T12:00:00.000Z". Fractional seconds are truncated, not
// rounded, so a time just before a minute boundary never rolls over.
func (t Time) String() string {
	utc := t.UTC()
	sec := int(utc.Second)
	milli := int(utc.Second*1000.0) - 1000*sec
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03dZ",
		utc.Year, utc.Month, utc.Day, utc.Hour, utc.Minute, sec, milli)
}

var deltaTTable = []deltaTEntry{
	{-72638.0, 38},
	{-65333.0, 26},
	{-58028.0, 21},
	{-50724.0, 21.1},
	{-43419.0, 13.5},
	{-39766.0, 13.7},
	{-36114.0, 14.8},
	{-32461.0, 15.7},
	{-28809.0, 15.6},
	{-25156.0, 13.3},
	{-21504.0, 12.6},
	{-17852.0, 11.2},
	{-14200.0, 11.13},
	{-10547.0, 7.95},
	{-6895.0, 6.22},
	{-3242.0, 6.55},
	{-1416.0, 7.26},
	{410.0, 7.35},
	{2237.0, 5.92},
	{4063.0, 1.04},
	{5889.0, -3.19},
	{7715.0, -5.36},
	{9542.0, -5.74},
	{11368.0, -5.86},
	{13194.0, -6.41},
	{15020.0, -2.70},
	{16846.0, 3.92},
	{18672.0, 10.38},
	{20498.0, 17.19},
	{22324.0, 21.41},
	{24151.0, 23.63},
	{25977.0, 24.02},
	{27803.0, 23.91},
	{29629.0, 24.35},
	{31456.0, 26.76},
	{33282.0, 29.15},
	{35108.0, 31.07},
	{36934.0, 33.150},
	{38761.0, 35.738},
	{40587.0, 40.182},
	{42413.0, 45.477},
	{44239.0, 50.540},
	{44605.0, 51.3808},
	{44970.0, 52.1668},
	{45335.0, 52.9565},
	{45700.0, 53.7882},
	{46066.0, 54.3427},
	{46431.0, 54.8712},
	{46796.0, 55.3222},
	{47161.0, 55.8197},
	{47527.0, 56.3000},
	{47892.0, 56.8553},
	{48257.0, 57.5653},
	{48622.0, 58.3092},
	{48988.0, 59.1218},
	{49353.0, 59.9845},
	{49718.0, 60.7853},
	{50083.0, 61.6287},
	{50449.0, 62.2950},
	{50814.0, 62.9659},
	{51179.0, 63.4673},
	{51544.0, 63.8285},
	{51910.0, 64.0908},
	{52275.0, 64.2998},
	{52640.0, 64.4734},
	{53005.0, 64.5736},
	{53371.0, 64.6876},
	{53736.0, 64.8452},
	{54101.0, 65.1464},
	{54466.0, 65.4573},
	{54832.0, 65.7768},
	{55197.0, 66.0699},
	{55562.0, 66.3246},
	{55927.0, 66.6030},
	{56293.0, 66.9069},
	{56658.0, 67.2810},
	{57023.0, 67.6439},
	{57388.0, 68.1024},
	{57754.0, 68.5927},
	{58119.0, 68.9676},
	{58484.0, 69.2201},
	{58849.0, 69.87},
	{59214.0, 70.39},
	{59580.0, 70.91},
	{59945.0, 71.40},
	{60310.0, 71.88},
	{60675.0, 72.36},
	{61041.0, 72.83},
	{61406.0, 73.32},
	{61680.0, 73.66},
}
