// Package xform builds the voxel-to-world transforms of a NIfTI header.
//
// Based on the reference implementation in nifti1_io.c,
// https://github.com/afni/afni/blob/master/src/nifti/niftilib/nifti1_io.c
package xform

import "math"

// Mat44 is a 4x4 homogeneous transform, row major.
type Mat44 [4][4]float64

// Mat33 is a 3x3 matrix, row major.
type Mat33 [3][3]float64

// Identity44 returns the 4x4 identity matrix.
func Identity44() Mat44 {
	return Mat44{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Rotation returns the upper-left 3x3 block of m.
func (m Mat44) Rotation() Mat33 {
	var r Mat33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j]
		}
	}
	return r
}

// Apply maps the point (i, j, k) through m.
func (m Mat44) Apply(i, j, k float64) (x, y, z float64) {
	x = m[0][0]*i + m[0][1]*j + m[0][2]*k + m[0][3]
	y = m[1][0]*i + m[1][1]*j + m[1][2]*k + m[1][3]
	z = m[2][0]*i + m[2][1]*j + m[2][2]*k + m[2][3]
	return x, y, z
}

// QuaternionToAffine converts the quaternion parameters of a qform into a
// 4x4 affine. a is derived from (b, c, d) and clamped at zero when
// b²+c²+d² exceeds one; (b, c, d) is not renormalized, so such input does
// not yield a pure rotation. qfac flips the third axis only when it is exactly -1. Voxel spacings are used
// as given; non-finite input propagates into the result.
func QuaternionToAffine(b, c, d, qx, qy, qz, dx, dy, dz, qfac float64) Mat44 {
	a := math.Sqrt(math.Max(0, 1-(b*b+c*c+d*d)))

	if qfac != -1 {
		qfac = 1
	}
	zd := dz * qfac

	var r Mat44
	r[0][0] = (a*a + b*b - c*c - d*d) * dx
	r[0][1] = 2 * (b*c - a*d) * dy
	r[0][2] = 2 * (b*d + a*c) * zd
	r[1][0] = 2 * (b*c + a*d) * dx
	r[1][1] = (a*a + c*c - b*b - d*d) * dy
	r[1][2] = 2 * (c*d - a*b) * zd
	r[2][0] = 2 * (b*d - a*c) * dx
	r[2][1] = 2 * (c*d + a*b) * dy
	r[2][2] = (a*a + d*d - c*c - b*b) * zd

	r[0][3] = qx
	r[1][3] = qy
	r[2][3] = qz

	r[3] = [4]float64{0, 0, 0, 1}
	return r
}

// Mat33Mul returns a*b.
func Mat33Mul(a, b Mat33) Mat33 {
	var c Mat33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return c
}

// Mat33Determ returns the determinant of r.
func Mat33Determ(r Mat33) float64 {
	return r[0][0]*r[1][1]*r[2][2] -
		r[0][0]*r[2][1]*r[1][2] -
		r[1][0]*r[0][1]*r[2][2] +
		r[1][0]*r[2][1]*r[0][2] +
		r[2][0]*r[0][1]*r[1][2] -
		r[2][0]*r[1][1]*r[0][2]
}

// Inverse returns the inverse of an affine whose last row is 0,0,0,1.
// ok is false when the rotation block is singular.
func (m Mat44) Inverse() (inv Mat44, ok bool) {
	r := m.Rotation()
	det := Mat33Determ(r)
	if det == 0 {
		return Mat44{}, false
	}

	var ri Mat33
	ri[0][0] = (r[1][1]*r[2][2] - r[2][1]*r[1][2]) / det
	ri[0][1] = (r[2][1]*r[0][2] - r[0][1]*r[2][2]) / det
	ri[0][2] = (r[0][1]*r[1][2] - r[1][1]*r[0][2]) / det
	ri[1][0] = (r[2][0]*r[1][2] - r[1][0]*r[2][2]) / det
	ri[1][1] = (r[0][0]*r[2][2] - r[2][0]*r[0][2]) / det
	ri[1][2] = (r[1][0]*r[0][2] - r[0][0]*r[1][2]) / det
	ri[2][0] = (r[1][0]*r[2][1] - r[2][0]*r[1][1]) / det
	ri[2][1] = (r[2][0]*r[0][1] - r[0][0]*r[2][1]) / det
	ri[2][2] = (r[0][0]*r[1][1] - r[1][0]*r[0][1]) / det

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[i][j] = ri[i][j]
		}
		inv[i][3] = -(ri[i][0]*m[0][3] + ri[i][1]*m[1][3] + ri[i][2]*m[2][3])
	}
	inv[3] = [4]float64{0, 0, 0, 1}
	return inv, true
}

// HandednessMismatch reports whether the rotation blocks of a and b have
// determinants of opposite sign, i.e. one of them is left-handed relative to
// the other. Singular blocks never mismatch.
func HandednessMismatch(a, b Mat44) bool {
	da := Mat33Determ(a.Rotation())
	db := Mat33Determ(b.Rotation())
	return da*db < 0
}
