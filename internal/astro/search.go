package astro

import "math"

// SearchFunc is a function of time whose ascending zero crossing is to be
// located by Search.
type SearchFunc func(time Time) (float64, error)

// quadInterp fits a parabola through (tm-dt,fa), (tm,fm), (tm+dt,fb) and
// reports whether it has a unique root within [tm-dt, tm+dt]. On success it
// returns the root time and the slope of the parabola there.
func quadInterp(tm, dt, fa, fm, fb float64) (outT, outDfDt float64, ok bool) {
	q := (fb+fa)/2.0 - fm
	r := (fb - fa) / 2.0
	s := fm

	var x float64
	if q == 0.0 {
		// This is a line, not a parabola.
		if r == 0.0 {
			return 0, 0, false // horizontal line, no progress possible
		}
		x = -s / r
		if x < -1.0 || x > +1.0 {
			return 0, 0, false // out of bounds
		}
	} else {
		// This really is a parabola. Find roots x1, x2.
		u := r*r - 4*q*s
		if u <= 0.0 {
			return 0, 0, false // imaginary roots, or vertex tangent to zero
		}
		ru := math.Sqrt(u)
		x1 := (-r + ru) / (2.0 * q)
		x2 := (-r - ru) / (2.0 * q)
		if -1.0 <= x1 && x1 <= +1.0 {
			if -1.0 <= x2 && x2 <= +1.0 {
				// Two roots are within bounds; we require a unique crossing.
				return 0, 0, false
			}
			x = x1
		} else if -1.0 <= x2 && x2 <= +1.0 {
			x = x2
		} else {
			return 0, 0, false
		}
	}

	outT = tm + x*dt
	outDfDt = (2*q*x + r) / dt
	return outT, outDfDt, true
}

// Search finds the time within [t1, t2] when func transitions from negative
// to non-negative values. The window must contain exactly one such ascending
// zero crossing; if it contains none, or the function does not change sign
// in a way the search can bracket, Search fails with ErrSearchFailure.
// The search stops once the time is known to within dtToleranceSeconds.
//
// Search is the root finder underneath the event searches in this package:
// equinoxes, moon phases, rise/set times, and apsides all reduce to an
// ascending zero crossing of some function of time.
func Search(fn SearchFunc, t1, t2 Time, dtToleranceSeconds float64) (Time, error) {
	const iterLimit = 20

	dtDays := math.Abs(dtToleranceSeconds / secondsPerDay)

	f1, err := fn(t1)
	if err != nil {
		return Time{}, err
	}
	f2, err := fn(t2)
	if err != nil {
		return Time{}, err
	}

	var fmid float64
	calcFmid := true
	for iter := 1; ; iter++ {
		if iter > iterLimit {
			return Time{}, ErrNoConverge
		}

		dt := (t2.TT - t1.TT) / 2.0
		tmid := t1.AddDays(dt)
		if math.Abs(dt) < dtDays {
			// We are close enough to the event to stop the search.
			return tmid, nil
		}

		if calcFmid {
			fmid, err = fn(tmid)
			if err != nil {
				return Time{}, err
			}
		} else {
			// We already have the correct value of fmid from the
			// previous loop.
			calcFmid = true
		}

		// Try to find a parabola that passes through the 3 points we have
		// sampled: (t1,f1), (tmid,fmid), (t2,f2).
		if qUT, qDfDt, ok := quadInterp(tmid.UT, t2.UT-tmid.UT, f1, fmid, f2); ok {
			tq := universalTime(qUT)
			fq, err := fn(tq)
			if err != nil {
				return Time{}, err
			}
			if qDfDt != 0.0 {
				if math.Abs(fq/qDfDt) < dtDays {
					// The estimated time error is small enough to quit now.
					return tq, nil
				}

				// Try guessing a tighter boundary with the interpolated
				// root at the center.
				dtGuess := 1.2 * math.Abs(fq/qDfDt)
				if dtGuess < dt/10.0 {
					tleft := tq.AddDays(-dtGuess)
					tright := tq.AddDays(+dtGuess)
					if (tleft.UT-t1.UT)*(tleft.UT-t2.UT) < 0 {
						if (tright.UT-t1.UT)*(tright.UT-t2.UT) < 0 {
							fleft, err := fn(tleft)
							if err != nil {
								return Time{}, err
							}
							fright, err := fn(tright)
							if err != nil {
								return Time{}, err
							}
							if fleft < 0.0 && fright >= 0.0 {
								f1 = fleft
								f2 = fright
								t1 = tleft
								t2 = tright
								fmid = fq
								calcFmid = false
								continue
							}
						}
					}
				}
			}
		}

		// Quadratic interpolation did not help. Divide the region in two
		// parts and pick whichever one appears to contain a root.
		if f1 < 0.0 && fmid >= 0.0 {
			t2 = tmid
			f2 = fmid
			continue
		}
		if fmid < 0.0 && f2 >= 0.0 {
			t1 = tmid
			f1 = fmid
			continue
		}

		// Either there is no ascending zero crossing in this range,
		// or the window is too wide (more than one crossing).
		return Time{}, ErrSearchFailure
	}
}
