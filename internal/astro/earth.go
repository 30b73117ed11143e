package astro

import "math"

type nutationTerm struct {
	nals [5]int
	cls  [6]float64
}

// iau2000b sums the 77-term IAU 2000B luni-solar nutation series.
// Adapted from the NOVAS C 3.1 function of the same name.
// Results are in arcseconds.
func iau2000b(time Time) (dpsi, deps float64) {
	t := time.TT / 36525

	el := math.Mod(485868.249036+t*1717915923.2178, asec360) * asec2rad
	elp := math.Mod(1287104.79305+t*129596581.0481, asec360) * asec2rad
	f := math.Mod(335779.526232+t*1739527262.8478, asec360) * asec2rad
	d := math.Mod(1072260.70369+t*1602961601.2090, asec360) * asec2rad
	om := math.Mod(450160.398036-t*6962890.5431, asec360) * asec2rad

	dp := 0.0
	de := 0.0
	for i := 76; i >= 0; i-- {
		n := &nutationSeries[i]
		arg := math.Mod(float64(n.nals[0])*el+float64(n.nals[1])*elp+float64(n.nals[2])*f+float64(n.nals[3])*d+float64(n.nals[4])*om, 2.0*math.Pi)
		sarg := math.Sin(arg)
		carg := math.Cos(arg)
		dp += (n.cls[0]+n.cls[1]*t)*sarg + n.cls[2]*carg
		de += (n.cls[3]+n.cls[4]*t)*carg + n.cls[5]*sarg
	}

	dpsi = -0.000135 + dp*1.0e-7
	deps = +0.000388 + de*1.0e-7
	return dpsi, deps
}

func meanObliquity(tt float64) float64 {
	t := tt / 36525.0
	asec := ((((-0.0000000434*t-
		0.000000576)*t+
		0.00200340)*t-
		0.0001831)*t-
		46.836769)*t + 84381.406
	return asec / 3600.0
}

type earthTilt struct {
	tt   float64
	dpsi float64
	deps float64
	ee   float64
	mobl float64
	tobl float64
}

func eTilt(time Time) earthTilt {
	var et earthTilt
	et.dpsi, et.deps = iau2000b(time)
	et.mobl = meanObliquity(time.TT)
	et.tobl = et.mobl + et.deps/3600.0
	et.tt = time.TT
	et.ee = et.dpsi * math.Cos(et.mobl*deg2rad) / 15.0
	return et
}

func ecl2equVec(time Time, ecl [3]float64) [3]float64 {
	obl := meanObliquity(time.TT) * deg2rad
	cosObl := math.Cos(obl)
	sinObl := math.Sin(obl)

	return [3]float64{
		ecl[0],
		ecl[1]*cosObl - ecl[2]*sinObl,
		ecl[1]*sinObl + ecl[2]*cosObl,
	}
}

// precessionRot builds the precession rotation between the J2000 equator and
// the mean equator of another epoch. Exactly one of tt1, tt2 must be zero:
// precession always pivots through J2000. Both nonzero is a programming
// error, reported as a panic.
func precessionRot(tt1, tt2 float64) RotationMatrix {
	if tt1 != 0.0 && tt2 != 0.0 {
		panic("astro: precession: exactly one of (tt1, tt2) must be zero")
	}

	eps0 := 84381.406

	t := (tt2 - tt1) / 36525
	if tt2 == 0 {
		t = -t
	}

	psia := ((((-0.0000000951*t+
		0.000132851)*t-
		0.00114045)*t-
		1.0790069)*t +
		5038.481507) * t

	omegaa := ((((+0.0000003337*t-
		0.000000467)*t-
		0.00772503)*t+
		0.0512623)*t-
		0.025754)*t + eps0

	chia := ((((-0.0000000560*t+
		0.000170663)*t-
		0.00121197)*t-
		2.3814292)*t +
		10.556403) * t

	eps0 *= asec2rad
	psia *= asec2rad
	omegaa *= asec2rad
	chia *= asec2rad

	sa := math.Sin(eps0)
	ca := math.Cos(eps0)
	sb := math.Sin(-psia)
	cb := math.Cos(-psia)
	sc := math.Sin(-omegaa)
	cc := math.Cos(-omegaa)
	sd := math.Sin(chia)
	cd := math.Cos(chia)

	xx := cd*cb - sb*sd*cc
	yx := cd*sb*ca + sd*cc*cb*ca - sa*sd*sc
	zx := cd*sb*sa + sd*cc*cb*sa + ca*sd*sc
	xy := -sd*cb - sb*cd*cc
	yy := -sd*sb*ca + cd*cc*cb*ca - sa*cd*sc
	zy := -sd*sb*sa + cd*cc*cb*sa + ca*cd*sc
	xz := sb * sc
	yz := -sc*cb*ca - sa*cc
	zz := -sc*cb*sa + cc*ca

	var rot RotationMatrix
	if tt2 == 0.0 {
		// Rotation from the other epoch to J2000.
		rot.Rot[0][0] = xx
		rot.Rot[1][0] = xy
		rot.Rot[2][0] = xz
		rot.Rot[0][1] = yx
		rot.Rot[1][1] = yy
		rot.Rot[2][1] = yz
		rot.Rot[0][2] = zx
		rot.Rot[1][2] = zy
		rot.Rot[2][2] = zz
	} else {
		// Rotation from J2000 to the other epoch.
		rot.Rot[0][0] = xx
		rot.Rot[1][0] = yx
		rot.Rot[2][0] = zx
		rot.Rot[0][1] = xy
		rot.Rot[1][1] = yy
		rot.Rot[2][1] = zy
		rot.Rot[0][2] = xz
		rot.Rot[1][2] = yz
		rot.Rot[2][2] = zz
	}
	return rot
}

func precession(tt1 float64, pos1 [3]float64, tt2 float64) [3]float64 {
	rot := precessionRot(tt1, tt2)
	return rotatePos(rot, pos1)
}

func nutationRot(time Time, direction int) RotationMatrix {
	tilt := eTilt(time)
	oblm := tilt.mobl * deg2rad
	oblt := tilt.tobl * deg2rad
	psi := tilt.dpsi * asec2rad
	cobm := math.Cos(oblm)
	sobm := math.Sin(oblm)
	cobt := math.Cos(oblt)
	sobt := math.Sin(oblt)
	cpsi := math.Cos(psi)
	spsi := math.Sin(psi)

	xx := cpsi
	yx := -spsi * cobm
	zx := -spsi * sobm
	xy := spsi * cobt
	yy := cpsi*cobm*cobt + sobm*sobt
	zy := cpsi*sobm*cobt - cobm*sobt
	xz := spsi * sobt
	yz := cpsi*cobm*sobt - sobm*cobt
	zz := cpsi*sobm*sobt + cobm*cobt

	var rot RotationMatrix
	if direction == 0 {
		// forward rotation: mean of date to true of date
		rot.Rot[0][0] = xx
		rot.Rot[1][0] = yx
		rot.Rot[2][0] = zx
		rot.Rot[0][1] = xy
		rot.Rot[1][1] = yy
		rot.Rot[2][1] = zy
		rot.Rot[0][2] = xz
		rot.Rot[1][2] = yz
		rot.Rot[2][2] = zz
	} else {
		// inverse rotation: true of date to mean of date
		rot.Rot[0][0] = xx
		rot.Rot[1][0] = xy
		rot.Rot[2][0] = xz
		rot.Rot[0][1] = yx
		rot.Rot[1][1] = yy
		rot.Rot[2][1] = yz
		rot.Rot[0][2] = zx
		rot.Rot[1][2] = zy
		rot.Rot[2][2] = zz
	}
	return rot
}

func nutation(time Time, direction int, pos [3]float64) [3]float64 {
	rot := nutationRot(time, direction)
	return rotatePos(rot, pos)
}

// era returns the Earth Rotation Angle in degrees.
func era(time Time) float64 {
	thet1 := 0.7790572732640 + 0.00273781191135448*time.UT
	thet3 := math.Mod(time.UT, 1.0)
	theta := 360.0 * math.Mod(thet1+thet3, 1.0)
	if theta < 0.0 {
		theta += 360.0
	}
	return theta
}

// SiderealTime returns Greenwich Apparent Sidereal Time at the given time,
// in sidereal hours in the half-open range [0, 24).
func SiderealTime(time Time) float64 {
	t := time.TT / 36525.0
	eqeq := 15.0 * eTilt(time).ee // set eqeq=0 to get GMST instead of GAST
	theta := era(time)
	st := eqeq + 0.014506 +
		((((-0.0000000368*t-
			0.000029956)*t-
			0.00000044)*t+
			1.3915817)*t+
			4612.156534)*t

	gst := math.Mod(st/3600.0+theta, 360.0) / 15.0
	if gst < 0.0 {
		gst += 24.0
	}
	return gst
}

// terra computes the geocentric position and velocity of an observer on the
// oblate Earth, in the rotating frame, given sidereal time in hours.
func terra(observer Observer, st float64) (pos, vel [3]float64) {
	eradKm := earthRadiusMeters / 1000.0
	const df = 1.0 - 0.003352819697896 // flattening of the Earth
	const df2 = df * df
	phi := observer.Latitude * deg2rad
	sinphi := math.Sin(phi)
	cosphi := math.Cos(phi)
	c := 1.0 / math.Sqrt(cosphi*cosphi+df2*sinphi*sinphi)
	s := df2 * c
	htKm := observer.Height / 1000.0
	ach := eradKm*c + htKm
	ash := eradKm*s + htKm
	stlocl := (15.0*st + observer.Longitude) * deg2rad
	sinst := math.Sin(stlocl)
	cosst := math.Cos(stlocl)

	pos[0] = ach * cosphi * cosst / KmPerAu
	pos[1] = ach * cosphi * sinst / KmPerAu
	pos[2] = ash * sinphi / KmPerAu

	vel[0] = -earthAngVel * ach * cosphi * sinst * 86400.0
	vel[1] = +earthAngVel * ach * cosphi * cosst * 86400.0
	vel[2] = 0.0

	return pos, vel
}

func geoPos(time Time, observer Observer) [3]float64 {
	gast := SiderealTime(time)
	pos1, _ := terra(observer, gast)
	pos2 := nutation(time, -1, pos1)
	return precession(time.TT, pos2, 0.0)
}

func spin(angle float64, pos [3]float64) [3]float64 {
	angr := angle * deg2rad
	cosang := math.Cos(angr)
	sinang := math.Sin(angr)

	return [3]float64{
		cosang*pos[0] + sinang*pos[1],
		-sinang*pos[0] + cosang*pos[1],
		pos[2],
	}
}

func ter2cel(time Time, vec [3]float64) [3]float64 {
	gast := SiderealTime(time)
	return spin(-15.0*gast, vec)
}

var nutationSeries = [77]nutationTerm{
	{[5]int{0, 0, 0, 0, 1}, [6]float64{-172064161.0, -174666.0, 33386.0, 92052331.0, 9086.0, 15377.0}},
	{[5]int{0, 0, 2, -2, 2}, [6]float64{-13170906.0, -1675.0, -13696.0, 5730336.0, -3015.0, -4587.0}},
	{[5]int{0, 0, 2, 0, 2}, [6]float64{-2276413.0, -234.0, 2796.0, 978459.0, -485.0, 1374.0}},
	{[5]int{0, 0, 0, 0, 2}, [6]float64{2074554.0, 207.0, -698.0, -897492.0, 470.0, -291.0}},
	{[5]int{0, 1, 0, 0, 0}, [6]float64{1475877.0, -3633.0, 11817.0, 73871.0, -184.0, -1924.0}},
	{[5]int{0, 1, 2, -2, 2}, [6]float64{-516821.0, 1226.0, -524.0, 224386.0, -677.0, -174.0}},
	{[5]int{1, 0, 0, 0, 0}, [6]float64{711159.0, 73.0, -872.0, -6750.0, 0.0, 358.0}},
	{[5]int{0, 0, 2, 0, 1}, [6]float64{-387298.0, -367.0, 380.0, 200728.0, 18.0, 318.0}},
	{[5]int{1, 0, 2, 0, 2}, [6]float64{-301461.0, -36.0, 816.0, 129025.0, -63.0, 367.0}},
	{[5]int{0, -1, 2, -2, 2}, [6]float64{215829.0, -494.0, 111.0, -95929.0, 299.0, 132.0}},
	{[5]int{0, 0, 2, -2, 1}, [6]float64{128227.0, 137.0, 181.0, -68982.0, -9.0, 39.0}},
	{[5]int{-1, 0, 2, 0, 2}, [6]float64{123457.0, 11.0, 19.0, -53311.0, 32.0, -4.0}},
	{[5]int{-1, 0, 0, 2, 0}, [6]float64{156994.0, 10.0, -168.0, -1235.0, 0.0, 82.0}},
	{[5]int{1, 0, 0, 0, 1}, [6]float64{63110.0, 63.0, 27.0, -33228.0, 0.0, -9.0}},
	{[5]int{-1, 0, 0, 0, 1}, [6]float64{-57976.0, -63.0, -189.0, 31429.0, 0.0, -75.0}},
	{[5]int{-1, 0, 2, 2, 2}, [6]float64{-59641.0, -11.0, 149.0, 25543.0, -11.0, 66.0}},
	{[5]int{1, 0, 2, 0, 1}, [6]float64{-51613.0, -42.0, 129.0, 26366.0, 0.0, 78.0}},
	{[5]int{-2, 0, 2, 0, 1}, [6]float64{45893.0, 50.0, 31.0, -24236.0, -10.0, 20.0}},
	{[5]int{0, 0, 0, 2, 0}, [6]float64{63384.0, 11.0, -150.0, -1220.0, 0.0, 29.0}},
	{[5]int{0, 0, 2, 2, 2}, [6]float64{-38571.0, -1.0, 158.0, 16452.0, -11.0, 68.0}},
	{[5]int{0, -2, 2, -2, 2}, [6]float64{32481.0, 0.0, 0.0, -13870.0, 0.0, 0.0}},
	{[5]int{-2, 0, 0, 2, 0}, [6]float64{-47722.0, 0.0, -18.0, 477.0, 0.0, -25.0}},
	{[5]int{2, 0, 2, 0, 2}, [6]float64{-31046.0, -1.0, 131.0, 13238.0, -11.0, 59.0}},
	{[5]int{1, 0, 2, -2, 2}, [6]float64{28593.0, 0.0, -1.0, -12338.0, 10.0, -3.0}},
	{[5]int{-1, 0, 2, 0, 1}, [6]float64{20441.0, 21.0, 10.0, -10758.0, 0.0, -3.0}},
	{[5]int{2, 0, 0, 0, 0}, [6]float64{29243.0, 0.0, -74.0, -609.0, 0.0, 13.0}},
	{[5]int{0, 0, 2, 0, 0}, [6]float64{25887.0, 0.0, -66.0, -550.0, 0.0, 11.0}},
	{[5]int{0, 1, 0, 0, 1}, [6]float64{-14053.0, -25.0, 79.0, 8551.0, -2.0, -45.0}},
	{[5]int{-1, 0, 0, 2, 1}, [6]float64{15164.0, 10.0, 11.0, -8001.0, 0.0, -1.0}},
	{[5]int{0, 2, 2, -2, 2}, [6]float64{-15794.0, 72.0, -16.0, 6850.0, -42.0, -5.0}},
	{[5]int{0, 0, -2, 2, 0}, [6]float64{21783.0, 0.0, 13.0, -167.0, 0.0, 13.0}},
	{[5]int{1, 0, 0, -2, 1}, [6]float64{-12873.0, -10.0, -37.0, 6953.0, 0.0, -14.0}},
	{[5]int{0, -1, 0, 0, 1}, [6]float64{-12654.0, 11.0, 63.0, 6415.0, 0.0, 26.0}},
	{[5]int{-1, 0, 2, 2, 1}, [6]float64{-10204.0, 0.0, 25.0, 5222.0, 0.0, 15.0}},
	{[5]int{0, 2, 0, 0, 0}, [6]float64{16707.0, -85.0, -10.0, 168.0, -1.0, 10.0}},
	{[5]int{1, 0, 2, 2, 2}, [6]float64{-7691.0, 0.0, 44.0, 3268.0, 0.0, 19.0}},
	{[5]int{-2, 0, 2, 0, 0}, [6]float64{-11024.0, 0.0, -14.0, 104.0, 0.0, 2.0}},
	{[5]int{0, 1, 2, 0, 2}, [6]float64{7566.0, -21.0, -11.0, -3250.0, 0.0, -5.0}},
	{[5]int{0, 0, 2, 2, 1}, [6]float64{-6637.0, -11.0, 25.0, 3353.0, 0.0, 14.0}},
	{[5]int{0, -1, 2, 0, 2}, [6]float64{-7141.0, 21.0, 8.0, 3070.0, 0.0, 4.0}},
	{[5]int{0, 0, 0, 2, 1}, [6]float64{-6302.0, -11.0, 2.0, 3272.0, 0.0, 4.0}},
	{[5]int{1, 0, 2, -2, 1}, [6]float64{5800.0, 10.0, 2.0, -3045.0, 0.0, -1.0}},
	{[5]int{2, 0, 2, -2, 2}, [6]float64{6443.0, 0.0, -7.0, -2768.0, 0.0, -4.0}},
	{[5]int{-2, 0, 0, 2, 1}, [6]float64{-5774.0, -11.0, -15.0, 3041.0, 0.0, -5.0}},
	{[5]int{2, 0, 2, 0, 1}, [6]float64{-5350.0, 0.0, 21.0, 2695.0, 0.0, 12.0}},
	{[5]int{0, -1, 2, -2, 1}, [6]float64{-4752.0, -11.0, -3.0, 2719.0, 0.0, -3.0}},
	{[5]int{0, 0, 0, -2, 1}, [6]float64{-4940.0, -11.0, -21.0, 2720.0, 0.0, -9.0}},
	{[5]int{-1, -1, 0, 2, 0}, [6]float64{7350.0, 0.0, -8.0, -51.0, 0.0, 4.0}},
	{[5]int{2, 0, 0, -2, 1}, [6]float64{4065.0, 0.0, 6.0, -2206.0, 0.0, 1.0}},
	{[5]int{1, 0, 0, 2, 0}, [6]float64{6579.0, 0.0, -24.0, -199.0, 0.0, 2.0}},
	{[5]int{0, 1, 2, -2, 1}, [6]float64{3579.0, 0.0, 5.0, -1900.0, 0.0, 1.0}},
	{[5]int{1, -1, 0, 0, 0}, [6]float64{4725.0, 0.0, -6.0, -41.0, 0.0, 3.0}},
	{[5]int{-2, 0, 2, 0, 2}, [6]float64{-3075.0, 0.0, -2.0, 1313.0, 0.0, -1.0}},
	{[5]int{3, 0, 2, 0, 2}, [6]float64{-2904.0, 0.0, 15.0, 1233.0, 0.0, 7.0}},
	{[5]int{0, -1, 0, 2, 0}, [6]float64{4348.0, 0.0, -10.0, -81.0, 0.0, 2.0}},
	{[5]int{1, -1, 2, 0, 2}, [6]float64{-2878.0, 0.0, 8.0, 1232.0, 0.0, 4.0}},
	{[5]int{0, 0, 0, 1, 0}, [6]float64{-4230.0, 0.0, 5.0, -20.0, 0.0, -2.0}},
	{[5]int{-1, -1, 2, 2, 2}, [6]float64{-2819.0, 0.0, 7.0, 1207.0, 0.0, 3.0}},
	{[5]int{-1, 0, 2, 0, 0}, [6]float64{-4056.0, 0.0, 5.0, 40.0, 0.0, -2.0}},
	{[5]int{0, -1, 2, 2, 2}, [6]float64{-2647.0, 0.0, 11.0, 1129.0, 0.0, 5.0}},
	{[5]int{-2, 0, 0, 0, 1}, [6]float64{-2294.0, 0.0, -10.0, 1266.0, 0.0, -4.0}},
	{[5]int{1, 1, 2, 0, 2}, [6]float64{2481.0, 0.0, -7.0, -1062.0, 0.0, -3.0}},
	{[5]int{2, 0, 0, 0, 1}, [6]float64{2179.0, 0.0, -2.0, -1129.0, 0.0, -2.0}},
	{[5]int{-1, 1, 0, 1, 0}, [6]float64{3276.0, 0.0, 1.0, -9.0, 0.0, 0.0}},
	{[5]int{1, 1, 0, 0, 0}, [6]float64{-3389.0, 0.0, 5.0, 35.0, 0.0, -2.0}},
	{[5]int{1, 0, 2, 0, 0}, [6]float64{3339.0, 0.0, -13.0, -107.0, 0.0, 1.0}},
	{[5]int{-1, 0, 2, -2, 1}, [6]float64{-1987.0, 0.0, -6.0, 1073.0, 0.0, -2.0}},
	{[5]int{1, 0, 0, 0, 2}, [6]float64{-1981.0, 0.0, 0.0, 854.0, 0.0, 0.0}},
	{[5]int{-1, 0, 0, 1, 0}, [6]float64{4026.0, 0.0, -353.0, -553.0, 0.0, -139.0}},
	{[5]int{0, 0, 2, 1, 2}, [6]float64{1660.0, 0.0, -5.0, -710.0, 0.0, -2.0}},
	{[5]int{-1, 0, 2, 4, 2}, [6]float64{-1521.0, 0.0, 9.0, 647.0, 0.0, 4.0}},
	{[5]int{-1, 1, 0, 1, 1}, [6]float64{1314.0, 0.0, 0.0, -700.0, 0.0, 0.0}},
	{[5]int{0, -2, 2, -2, 1}, [6]float64{-1283.0, 0.0, 0.0, 672.0, 0.0, 0.0}},
	{[5]int{1, 0, 2, 2, 1}, [6]float64{-1331.0, 0.0, 8.0, 663.0, 0.0, 4.0}},
	{[5]int{-2, 0, 2, 2, 2}, [6]float64{1383.0, 0.0, -2.0, -594.0, 0.0, -2.0}},
	{[5]int{-1, 0, 0, 0, 2}, [6]float64{1405.0, 0.0, 4.0, -610.0, 0.0, 2.0}},
	{[5]int{1, 1, 2, -2, 2}, [6]float64{1290.0, 0.0, 0.0, -556.0, 0.0, 0.0}},
}
