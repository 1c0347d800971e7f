package mathx

// Mat3 is a row-major integer 3x3 matrix. The assembly stage only ever
// holds signed axis permutations (the 24 cube symmetries), but the type
// does not enforce that.
type Mat3 struct {
	M [3][3]int
}

func Identity() Mat3 {
	return Mat3{M: [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0
			for k := 0; k < 3; k++ {
				s += m.M[i][k] * o.M[k][j]
			}
			out.M[i][j] = s
		}
	}
	return out
}

// Abs returns the matrix with every entry replaced by its absolute value.
// Applied to a rotation it turns "rotate this extent" into "how large is
// the rotated extent", which is what the rasterizer needs.
func (m Mat3) Abs() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.M[i][j] = AbsInt(m.M[i][j])
		}
	}
	return out
}

func (m Mat3) Det() int {
	a := m.M
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}
