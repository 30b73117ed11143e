package astro

import "math"

// RotationMatrix is a 3x3 orthonormal matrix expressing a rotation between
// two coordinate frames. Compose with CombineRotation, invert with
// InverseRotation (the transpose).
//
// Frame abbreviations used by the constructors:
//
//	EQJ - equatorial coordinates in the J2000 epoch
//	EQD - equatorial coordinates of date (true equator and equinox)
//	ECL - J2000 mean ecliptic coordinates
//	HOR - horizontal coordinates (x = north, y = west, z = zenith)
type RotationMatrix struct {
	Rot [3][3]float64
}

// IdentityMatrix returns the do-nothing rotation.
func IdentityMatrix() RotationMatrix {
	return RotationMatrix{Rot: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Pivot re-orients the rotation by rotating it around one coordinate axis.
// The single-axis rotation is composed onto the receiver, not returned as a
// fresh rotation. The axis is 0=x, 1=y, 2=z; the angle is in degrees,
// following the right-hand rule. An axis outside 0..2 fails with
// ErrInvalidParameter.
func Pivot(rotation RotationMatrix, axis int, angle float64) (RotationMatrix, error) {
	if axis < 0 || axis > 2 {
		return RotationMatrix{}, ErrInvalidParameter
	}

	radians := angle * deg2rad
	c := math.Cos(radians)
	s := math.Sin(radians)

	// Pick the (i, j, k) axis order that keeps i x j = k.
	i := (axis + 1) % 3
	j := (axis + 2) % 3
	k := axis

	var rot RotationMatrix
	r := &rotation.Rot

	rot.Rot[i][i] = c*r[i][i] - s*r[i][j]
	rot.Rot[i][j] = s*r[i][i] + c*r[i][j]
	rot.Rot[i][k] = r[i][k]

	rot.Rot[j][i] = c*r[j][i] - s*r[j][j]
	rot.Rot[j][j] = s*r[j][i] + c*r[j][j]
	rot.Rot[j][k] = r[j][k]

	rot.Rot[k][i] = c*r[k][i] - s*r[k][j]
	rot.Rot[k][j] = s*r[k][i] + c*r[k][j]
	rot.Rot[k][k] = r[k][k]

	return rot, nil
}

// CombineRotation returns the rotation equivalent to applying a, then b.
func CombineRotation(a, b RotationMatrix) RotationMatrix {
	var c RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c.Rot[i][j] = b.Rot[0][j]*a.Rot[i][0] + b.Rot[1][j]*a.Rot[i][1] + b.Rot[2][j]*a.Rot[i][2]
		}
	}
	return c
}

// InverseRotation returns the rotation in the opposite direction.
// Rotation matrices are orthonormal, so this is the transpose.
func InverseRotation(rotation RotationMatrix) RotationMatrix {
	var inv RotationMatrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv.Rot[i][j] = rotation.Rot[j][i]
		}
	}
	return inv
}

// RotateVector applies the rotation to a vector, reframing it while keeping
// its time tag.
func RotateVector(rotation RotationMatrix, vector Vector) Vector {
	r := &rotation.Rot
	return Vector{
		X: r[0][0]*vector.X + r[1][0]*vector.Y + r[2][0]*vector.Z,
		Y: r[0][1]*vector.X + r[1][1]*vector.Y + r[2][1]*vector.Z,
		Z: r[0][2]*vector.X + r[1][2]*vector.Y + r[2][2]*vector.Z,
		T: vector.T,
	}
}

func rotatePos(rotation RotationMatrix, pos [3]float64) [3]float64 {
	r := &rotation.Rot
	return [3]float64{
		r[0][0]*pos[0] + r[1][0]*pos[1] + r[2][0]*pos[2],
		r[0][1]*pos[0] + r[1][1]*pos[1] + r[2][1]*pos[2],
		r[0][2]*pos[0] + r[1][2]*pos[1] + r[2][2]*pos[2],
	}
}

// RotationEQJtoECL returns the rotation from J2000 equatorial to J2000 mean
// ecliptic coordinates.
func RotationEQJtoECL() RotationMatrix {
	// cos/sin of the mean obliquity at J2000: 23.4392911 degrees.
	const c = 0.9174821430670688
	const s = 0.3977769691083922
	return RotationMatrix{Rot: [3][3]float64{
		{1, 0, 0},
		{0, +c, +s},
		{0, -s, +c},
	}}
}

// RotationECLtoEQJ returns the rotation from J2000 mean ecliptic to J2000
// equatorial coordinates.
func RotationECLtoEQJ() RotationMatrix {
	const c = 0.9174821430670688
	const s = 0.3977769691083922
	return RotationMatrix{Rot: [3][3]float64{
		{1, 0, 0},
		{0, +c, -s},
		{0, +s, +c},
	}}
}

// RotationEQJtoEQD returns the rotation from J2000 equatorial coordinates to
// the true equator of date at the given time.
func RotationEQJtoEQD(time Time) RotationMatrix {
	prec := precessionRot(0.0, time.TT)
	nut := nutationRot(time, 0)
	return CombineRotation(prec, nut)
}

// RotationEQDtoEQJ returns the rotation from the true equator of date at the
// given time to J2000 equatorial coordinates.
func RotationEQDtoEQJ(time Time) RotationMatrix {
	nut := nutationRot(time, 1)
	prec := precessionRot(time.TT, 0.0)
	return CombineRotation(nut, prec)
}

// RotationEQDtoHOR returns the rotation from equator-of-date coordinates to
// the horizontal frame of the given observer. The resulting horizontal
// vector has x = north, y = west, z = zenith, and is not corrected for
// refraction.
func RotationEQDtoHOR(time Time, observer Observer) RotationMatrix {
	sinlat := math.Sin(observer.Latitude * deg2rad)
	coslat := math.Cos(observer.Latitude * deg2rad)
	sinlon := math.Sin(observer.Longitude * deg2rad)
	coslon := math.Cos(observer.Longitude * deg2rad)

	uze := [3]float64{coslat * coslon, coslat * sinlon, sinlat}
	une := [3]float64{-sinlat * coslon, -sinlat * sinlon, coslat}
	uwe := [3]float64{sinlon, -coslon, 0.0}

	spinAngle := -15.0 * SiderealTime(time)
	uz := spin(spinAngle, uze)
	un := spin(spinAngle, une)
	uw := spin(spinAngle, uwe)

	var rot RotationMatrix
	for i := 0; i < 3; i++ {
		rot.Rot[i][0] = un[i]
		rot.Rot[i][1] = uw[i]
		rot.Rot[i][2] = uz[i]
	}
	return rot
}

// RotationHORtoEQD returns the rotation from the observer's horizontal frame
// to equator-of-date coordinates.
func RotationHORtoEQD(time Time, observer Observer) RotationMatrix {
	return InverseRotation(RotationEQDtoHOR(time, observer))
}

// RotationEQJtoHOR returns the rotation from J2000 equatorial coordinates to
// the observer's horizontal frame.
func RotationEQJtoHOR(time Time, observer Observer) RotationMatrix {
	return CombineRotation(RotationEQJtoEQD(time), RotationEQDtoHOR(time, observer))
}

// RotationHORtoEQJ returns the rotation from the observer's horizontal frame
// to J2000 equatorial coordinates.
func RotationHORtoEQJ(time Time, observer Observer) RotationMatrix {
	return InverseRotation(RotationEQJtoHOR(time, observer))
}
