package geom

import "math"

// Mat3 is a 3x3 matrix in row-major order, used for rotations.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Euler builds a rotation matrix from Tait-Bryan angles in radians,
// composed as Rz(rz) * Ry(ry) * Rx(rx): roll about X first, then pitch
// about Y, then yaw about Z. The same composition order the sdfx
// kernel uses for solid rotation.
func Euler(rx, ry, rz float64) Mat3 {
	sx, cx := math.Sincos(rx)
	sy, cy := math.Sincos(ry)
	sz, cz := math.Sincos(rz)
	return Mat3{
		cz * cy, cz*sy*sx - sz*cx, cz*sy*cx + sz*sx,
		sz * cy, sz*sy*sx + cz*cx, sz*sy*cx - cz*sx,
		-sy, cy * sx, cy * cx,
	}
}

// Mul returns the matrix product m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3]*o[c] + m[r*3+1]*o[3+c] + m[r*3+2]*o[6+c]
		}
	}
	return out
}

// Transpose returns the transpose of m. For an orthonormal rotation
// matrix this is the inverse rotation.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Apply rotates v by m.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}
