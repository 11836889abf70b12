package xform

import "math"

const orthoTolerance = 1e-4

// normalize scales v to unit length; ok is false for the zero vector.
func normalize(v [3]float64) ([3]float64, bool) {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return v, false
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}, true
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// orthogonalize removes the component of v along unit vector u when the two
// are not already (nearly) orthogonal, then renormalizes.
func orthogonalize(v, u [3]float64) ([3]float64, bool) {
	d := dot(u, v)
	if math.Abs(d) <= orthoTolerance {
		return v, true
	}
	return normalize([3]float64{v[0] - d*u[0], v[1] - d*u[1], v[2] - d*u[2]})
}

// SFormToNEMA finds the signed axis permutation closest to the rotation part
// of r and encodes it as three axis letters followed by three senses, e.g.
// "XYZ+--". ok is false when r has a zero or parallel column.
func SFormToNEMA(r Mat33) (code string, ok bool) {
	i := [3]float64{r[0][0], r[1][0], r[2][0]}
	j := [3]float64{r[0][1], r[1][1], r[2][1]}
	k := [3]float64{r[0][2], r[1][2], r[2][2]}

	if i, ok = normalize(i); !ok {
		return "", false
	}
	if j, ok = normalize(j); !ok {
		return "", false
	}
	if j, ok = orthogonalize(j, i); !ok {
		return "", false
	}

	// a missing k axis becomes i x j
	if kn, nonzero := normalize(k); nonzero {
		k = kn
	} else {
		k = [3]float64{
			i[1]*j[2] - i[2]*j[1],
			i[2]*j[0] - i[0]*j[2],
			i[0]*j[1] - i[1]*j[0],
		}
	}
	if k, ok = orthogonalize(k, i); !ok {
		return "", false
	}
	if k, ok = orthogonalize(k, j); !ok {
		return "", false
	}

	q := Mat33{
		{i[0], j[0], k[0]},
		{i[1], j[1], k[1]},
		{i[2], j[2], k[2]},
	}
	detQ := Mat33Determ(q)
	if detQ == 0 {
		return "", false
	}

	// Try every signed permutation P with det(P) matching det(Q) and keep the
	// one for which P*Q has the largest trace (smallest rotation angle).
	best := -666.0
	ib, jb, kb := 1, 2, 3
	pb, qb, rb := 1.0, 1.0, 1.0
	for pi := 1; pi <= 3; pi++ {
		for pj := 1; pj <= 3; pj++ {
			if pi == pj {
				continue
			}
			for pk := 1; pk <= 3; pk++ {
				if pi == pk || pj == pk {
					continue
				}
				for _, sp := range []float64{-1, 1} {
					for _, sq := range []float64{-1, 1} {
						for _, sr := range []float64{-1, 1} {
							var p Mat33
							p[0][pi-1] = sp
							p[1][pj-1] = sq
							p[2][pk-1] = sr
							if Mat33Determ(p)*detQ <= 0 {
								continue
							}
							m := Mat33Mul(p, q)
							if tr := m[0][0] + m[1][1] + m[2][2]; tr > best {
								best = tr
								ib, jb, kb = pi, pj, pk
								pb, qb, rb = sp, sq, sr
							}
						}
					}
				}
			}
		}
	}

	ic, is := axisCode(ib, pb)
	jc, js := axisCode(jb, qb)
	kc, ks := axisCode(kb, rb)
	return string([]byte{ic, jc, kc, is, js, ks}), true
}

func axisCode(axis int, sense float64) (letter, sign byte) {
	letter = "XYZ"[axis-1]
	sign = '+'
	if sense < 0 {
		sign = '-'
	}
	return letter, sign
}
