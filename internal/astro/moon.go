package astro

import "math"

// Lunar theory based on the Nautical Almanac Office's Improved Lunar
// Ephemeris of 1954, deriving from E. W. Brown's lunar theory, as adapted by
// Montenbruck and Pfleger in "Astronomy on the Personal Computer".
//
// The co/si tables hold cos/sin of integer multiples of the four fundamental
// arguments, logically indexed [-6..6][1..4]; the Go arrays shift the first
// index by +6 and the second by -1.
type moonContext struct {
	t     float64
	dgam  float64
	dlam  float64
	n     float64
	gam1c float64
	sinpi float64

	l0, l, ls, f, d, s      float64
	dl0, dl, dls, df, dd, ds float64

	co [13][4]float64
	si [13][4]float64
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}

func addThe(c1, s1, c2, s2 float64) (c, s float64) {
	return c1*c2 - s1*s2, s1*c2 + c1*s2
}

// sine of phi given in revolutions, not radians
func sine(phi float64) float64 {
	return math.Sin(2.0 * math.Pi * phi)
}

func (m *moonContext) longPeriodic() {
	s1 := sine(0.19833 + 0.05611*m.t)
	s2 := sine(0.27869 + 0.04508*m.t)
	s3 := sine(0.16827 - 0.36903*m.t)
	s4 := sine(0.34734 - 5.37261*m.t)
	s5 := sine(0.10498 - 5.37899*m.t)
	s6 := sine(0.42681 - 0.41855*m.t)
	s7 := sine(0.14943 - 5.37511*m.t)

	m.dl0 = 0.84*s1 + 0.31*s2 + 14.27*s3 + 7.26*s4 + 0.28*s5 + 0.24*s6
	m.dl = 2.94*s1 + 0.31*s2 + 14.27*s3 + 9.34*s4 + 1.12*s5 + 0.83*s6
	m.dls = -6.40*s1 - 1.89*s6
	m.df = 0.21*s1 + 0.31*s2 + 14.27*s3 - 88.70*s4 - 15.30*s5 + 0.24*s6 - 1.86*s7
	m.dd = m.dl0 - m.dls
	m.dgam = -3332e-9*sine(0.59734-5.37261*m.t) -
		539e-9*sine(0.35498-5.37899*m.t) -
		64e-9*sine(0.39943-5.37511*m.t)
}

func (m *moonContext) init() {
	t2 := m.t * m.t
	m.dlam = 0
	m.ds = 0
	m.gam1c = 0
	m.sinpi = 3422.7000
	m.longPeriodic()
	m.l0 = 2.0*math.Pi*frac(0.60643382+1336.85522467*m.t-0.00000313*t2) + m.dl0/arc
	m.l = 2.0*math.Pi*frac(0.37489701+1325.55240982*m.t+0.00002565*t2) + m.dl/arc
	m.ls = 2.0*math.Pi*frac(0.99312619+99.99735956*m.t-0.00000044*t2) + m.dls/arc
	m.f = 2.0*math.Pi*frac(0.25909118+1342.22782980*m.t-0.00000892*t2) + m.df/arc
	m.d = 2.0*math.Pi*frac(0.82736186+1236.85308708*m.t-0.00000397*t2) + m.dd/arc

	for i := 1; i <= 4; i++ {
		var arg float64
		var max int
		var fac float64
		switch i {
		case 1:
			arg, max, fac = m.l, 4, 1.000002208
		case 2:
			arg, max, fac = m.ls, 3, 0.997504612-0.002495388*m.t
		case 3:
			arg, max, fac = m.f, 4, 1.000002708+139.978*m.dgam
		case 4:
			arg, max, fac = m.d, 6, 1.0
		}
		m.co[0+6][i-1] = 1.0
		m.co[1+6][i-1] = math.Cos(arg) * fac
		m.si[0+6][i-1] = 0.0
		m.si[1+6][i-1] = math.Sin(arg) * fac
		for j := 2; j <= max; j++ {
			m.co[j+6][i-1], m.si[j+6][i-1] = addThe(
				m.co[j-1+6][i-1], m.si[j-1+6][i-1],
				m.co[1+6][i-1], m.si[1+6][i-1])
		}
		for j := 1; j <= max; j++ {
			m.co[-j+6][i-1] = m.co[j+6][i-1]
			m.si[-j+6][i-1] = -m.si[j+6][i-1]
		}
	}
}

func (m *moonContext) term(p, q, r, s int) (x, y float64) {
	coeff := [4]int{p, q, r, s}
	x = 1.0
	y = 0.0
	for k := 1; k <= 4; k++ {
		if coeff[k-1] != 0 {
			x, y = addThe(x, y, m.co[coeff[k-1]+6][k-1], m.si[coeff[k-1]+6][k-1])
		}
	}
	return x, y
}

type moonTerm struct {
	cl, cs, cg, cp float64
	p, q, r, s     int
}

func (m *moonContext) addSolarTerms() {
	for _, term := range moonTerms {
		x, y := m.term(term.p, term.q, term.r, term.s)
		m.dlam += term.cl * y
		m.ds += term.cs * y
		m.gam1c += term.cg * x
		m.sinpi += term.cp * x
	}
}

type moonNTerm struct {
	coeffn     float64
	p, q, r, s int
}

func (m *moonContext) solarN() {
	m.n = 0.0
	for _, term := range moonNTerms {
		_, y := m.term(term.p, term.q, term.r, term.s)
		m.n += term.coeffn * y
	}
}

func (m *moonContext) planetary() {
	m.dlam +=
		+0.82*sine(0.7736-62.5512*m.t) + 0.31*sine(0.0466-125.1025*m.t) +
			0.35*sine(0.5785-25.1042*m.t) + 0.66*sine(0.4591+1335.8075*m.t) +
			0.64*sine(0.3130-91.5680*m.t) + 1.14*sine(0.1480+1331.2898*m.t) +
			0.21*sine(0.5918+1056.5859*m.t) + 0.44*sine(0.5784+1322.8595*m.t) +
			0.24*sine(0.2275-5.7374*m.t) + 0.28*sine(0.2965+2.6929*m.t) +
			0.33*sine(0.3132+6.3368*m.t)
}

// calcMoon returns the Moon's geocentric ecliptic longitude and latitude in
// radians (equinox of date) and its distance in AU, for the given number of
// centuries since J2000.
func calcMoon(centuriesSinceJ2000 float64) (geoEclipLon, geoEclipLat, distanceAu float64) {
	m := &moonContext{t: centuriesSinceJ2000}
	m.init()
	m.addSolarTerms()
	m.solarN()
	m.planetary()
	m.s = m.f + m.ds/arc

	latSeconds := (1.000002708+139.978*m.dgam)*(18518.511+1.189+m.gam1c)*math.Sin(m.s) -
		6.24*math.Sin(3*m.s) + m.n

	geoEclipLon = 2.0 * math.Pi * frac((m.l0+m.dlam/arc)/(2.0*math.Pi))
	geoEclipLat = latSeconds * (deg2rad / 3600.0)
	distanceAu = (arc * (earthRadiusMeters / auMeters)) / (0.999953253 * m.sinpi)
	return geoEclipLon, geoEclipLat, distanceAu
}

// GeoMoon calculates the geocentric position of the Moon at the given time,
// as a vector in J2000 Cartesian equatorial coordinates (AU).
func GeoMoon(time Time) Vector {
	geoEclipLon, geoEclipLat, distanceAu := calcMoon(time.TT / 36525.0)

	// Geocentric ecliptic spherical to Cartesian.
	distCosLat := distanceAu * math.Cos(geoEclipLat)
	gepos := [3]float64{
		distCosLat * math.Cos(geoEclipLon),
		distCosLat * math.Sin(geoEclipLon),
		distanceAu * math.Sin(geoEclipLat),
	}

	// Ecliptic to equatorial, both in mean equinox of date,
	// then mean of date to J2000.
	mpos1 := ecl2equVec(time, gepos)
	mpos2 := precession(time.TT, mpos1, 0)

	return Vector{X: mpos2[0], Y: mpos2[1], Z: mpos2[2], T: time}
}

var moonTerms = []moonTerm{
	{13.902, 14.06, -0.001, 0.2607, 0, 0, 0, 4},
	{0.403, -4.01, 0.394, 0.0023, 0, 0, 0, 3},
	{2369.912, 2373.36, 0.601, 28.2333, 0, 0, 0, 2},
	{-125.154, -112.79, -0.725, -0.9781, 0, 0, 0, 1},
	{1.979, 6.98, -0.445, 0.0433, 1, 0, 0, 4},
	{191.953, 192.72, 0.029, 3.0861, 1, 0, 0, 2},
	{-8.466, -13.51, 0.455, -0.1093, 1, 0, 0, 1},
	{22639.500, 22609.07, 0.079, 186.5398, 1, 0, 0, 0},
	{18.609, 3.59, -0.094, 0.0118, 1, 0, 0, -1},
	{-4586.465, -4578.13, -0.077, 34.3117, 1, 0, 0, -2},
	{3.215, 5.44, 0.192, -0.0386, 1, 0, 0, -3},
	{-38.428, -38.64, 0.001, 0.6008, 1, 0, 0, -4},
	{-0.393, -1.43, -0.092, 0.0086, 1, 0, 0, -6},
	{-0.289, -1.59, 0.123, -0.0053, 0, 1, 0, 4},
	{-24.420, -25.10, 0.040, -0.3000, 0, 1, 0, 2},
	{18.023, 17.93, 0.007, 0.1494, 0, 1, 0, 1},
	{-668.146, -126.98, -1.302, -0.3997, 0, 1, 0, 0},
	{0.560, 0.32, -0.001, -0.0037, 0, 1, 0, -1},
	{-165.145, -165.06, 0.054, 1.9178, 0, 1, 0, -2},
	{-1.877, -6.46, -0.416, 0.0339, 0, 1, 0, -4},
	{0.213, 1.02, -0.074, 0.0054, 2, 0, 0, 4},
	{14.387, 14.78, -0.017, 0.2833, 2, 0, 0, 2},
	{-0.586, -1.20, 0.054, -0.0100, 2, 0, 0, 1},
	{769.016, 767.96, 0.107, 10.1657, 2, 0, 0, 0},
	{1.750, 2.01, -0.018, 0.0155, 2, 0, 0, -1},
	{-211.656, -152.53, 5.679, -0.3039, 2, 0, 0, -2},
	{1.225, 0.91, -0.030, -0.0088, 2, 0, 0, -3},
	{-30.773, -34.07, -0.308, 0.3722, 2, 0, 0, -4},
	{-0.570, -1.40, -0.074, 0.0109, 2, 0, 0, -6},
	{-2.921, -11.75, 0.787, -0.0484, 1, 1, 0, 2},
	{1.267, 1.52, -0.022, 0.0164, 1, 1, 0, 1},
	{-109.673, -115.18, 0.461, -0.9490, 1, 1, 0, 0},
	{-205.962, -182.36, 2.056, 1.4437, 1, 1, 0, -2},
	{0.233, 0.36, 0.012, -0.0025, 1, 1, 0, -3},
	{-4.391, -9.66, -0.471, 0.0673, 1, 1, 0, -4},
	{0.283, 1.53, -0.111, 0.0060, 1, -1, 0, 4},
	{14.577, 31.70, -1.540, 0.2302, 1, -1, 0, 2},
	{147.687, 138.76, 0.679, 1.1528, 1, -1, 0, 0},
	{-1.089, 0.55, 0.021, 0.0, 1, -1, 0, -1},
	{28.475, 23.59, -0.443, -0.2257, 1, -1, 0, -2},
	{-0.276, -0.38, -0.006, -0.0036, 1, -1, 0, -3},
	{0.636, 2.27, 0.146, -0.0102, 1, -1, 0, -4},
	{-0.189, -1.68, 0.131, -0.0028, 0, 2, 0, 2},
	{-7.486, -0.66, -0.037, -0.0086, 0, 2, 0, 0},
	{-8.096, -16.35, -0.740, 0.0918, 0, 2, 0, -2},
	{-5.741, -0.04, 0.0, -0.0009, 0, 0, 2, 2},
	{0.255, 0.0, 0.0, 0.0, 0, 0, 2, 1},
	{-411.608, -0.20, 0.0, -0.0124, 0, 0, 2, 0},
	{0.584, 0.84, 0.0, 0.0071, 0, 0, 2, -1},
	{-55.173, -52.14, 0.0, -0.1052, 0, 0, 2, -2},
	{0.254, 0.25, 0.0, -0.0017, 0, 0, 2, -3},
	{0.025, -1.67, 0.0, 0.0031, 0, 0, 2, -4},
	{1.060, 2.96, -0.166, 0.0243, 3, 0, 0, 2},
	{36.124, 50.64, -1.300, 0.6215, 3, 0, 0, 0},
	{-13.193, -16.40, 0.258, -0.1187, 3, 0, 0, -2},
	{-1.187, -0.74, 0.042, 0.0074, 3, 0, 0, -4},
	{-0.293, -0.31, -0.002, 0.0046, 3, 0, 0, -6},
	{-0.290, -1.45, 0.116, -0.0051, 2, 1, 0, 2},
	{-7.649, -10.56, 0.259, -0.1038, 2, 1, 0, 0},
	{-8.627, -7.59, 0.078, -0.0192, 2, 1, 0, -2},
	{-2.740, -2.54, 0.022, 0.0324, 2, 1, 0, -4},
	{1.181, 3.32, -0.212, 0.0213, 2, -1, 0, 2},
	{9.703, 11.67, -0.151, 0.1268, 2, -1, 0, 0},
	{-0.352, -0.37, 0.001, -0.0028, 2, -1, 0, -1},
	{-2.494, -1.17, -0.003, -0.0017, 2, -1, 0, -2},
	{0.360, 0.20, -0.012, -0.0043, 2, -1, 0, -4},
	{-1.167, -1.25, 0.008, -0.0106, 1, 2, 0, 0},
	{-7.412, -6.12, 0.117, 0.0484, 1, 2, 0, -2},
	{-0.311, -0.65, -0.032, 0.0044, 1, 2, 0, -4},
	{0.757, 1.82, -0.105, 0.0112, 1, -2, 0, 2},
	{2.580, 2.32, 0.027, 0.0196, 1, -2, 0, 0},
	{2.533, 2.40, -0.014, -0.0212, 1, -2, 0, -2},
	{-0.344, -0.57, -0.025, 0.0036, 0, 3, 0, -2},
	{-0.992, -0.02, 0.0, 0.0, 1, 0, 2, 2},
	{-45.099, -0.02, 0.0, -0.0010, 1, 0, 2, 0},
	{-0.179, -9.52, 0.0, -0.0833, 1, 0, 2, -2},
	{-0.301, -0.33, 0.0, 0.0014, 1, 0, 2, -4},
	{-6.382, -3.37, 0.0, -0.0481, 1, 0, -2, 2},
	{39.528, 85.13, 0.0, -0.7136, 1, 0, -2, 0},
	{9.366, 0.71, 0.0, -0.0112, 1, 0, -2, -2},
	{0.202, 0.02, 0.0, 0.0, 1, 0, -2, -4},
	{0.415, 0.10, 0.0, 0.0013, 0, 1, 2, 0},
	{-2.152, -2.26, 0.0, -0.0066, 0, 1, 2, -2},
	{-1.440, -1.30, 0.0, 0.0014, 0, 1, -2, 2},
	{0.384, -0.04, 0.0, 0.0, 0, 1, -2, -2},
	{1.938, 3.60, -0.145, 0.0401, 4, 0, 0, 0},
	{-0.952, -1.58, 0.052, -0.0130, 4, 0, 0, -2},
	{-0.551, -0.94, 0.032, -0.0097, 3, 1, 0, 0},
	{-0.482, -0.57, 0.005, -0.0045, 3, 1, 0, -2},
	{0.681, 0.96, -0.026, 0.0115, 3, -1, 0, 0},
	{-0.297, -0.27, 0.002, -0.0009, 2, 2, 0, -2},
	{0.254, 0.21, -0.003, 0.0, 2, -2, 0, -2},
	{-0.250, -0.22, 0.004, 0.0014, 1, 3, 0, -2},
	{-3.996, 0.0, 0.0, 0.0004, 2, 0, 2, 0},
	{0.557, -0.75, 0.0, -0.0090, 2, 0, 2, -2},
	{-0.459, -0.38, 0.0, -0.0053, 2, 0, -2, 2},
	{-1.298, 0.74, 0.0, 0.0004, 2, 0, -2, 0},
	{0.538, 1.14, 0.0, -0.0141, 2, 0, -2, -2},
	{0.263, 0.02, 0.0, 0.0, 1, 1, 2, 0},
	{0.426, 0.07, 0.0, -0.0006, 1, 1, -2, -2},
	{-0.304, 0.03, 0.0, 0.0003, 1, -1, 2, 0},
	{-0.372, -0.19, 0.0, -0.0027, 1, -1, -2, 2},
	{0.418, 0.0, 0.0, 0.0, 0, 0, 4, 0},
	{-0.330, -0.04, 0.0, 0.0, 3, 0, 2, 0},
}

var moonNTerms = []moonNTerm{
	{-526.069, 0, 0, 1, -2},
	{-3.352, 0, 0, 1, -4},
	{44.297, 1, 0, 1, -2},
	{-6.000, 1, 0, 1, -4},
	{20.599, -1, 0, 1, 0},
	{-30.598, -1, 0, 1, -2},
	{-24.649, -2, 0, 1, 0},
	{-2.000, -2, 0, 1, -2},
	{-22.571, 0, 1, 1, -2},
	{10.985, 0, -1, 1, -2},
}
