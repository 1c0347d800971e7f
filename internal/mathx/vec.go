package mathx

import "fmt"

// Vec3 is an integer 3-vector. World positions, chunk keys, model sizes and
// translations are all exact integer quantities here; there is no float path.
type Vec3 struct {
	X, Y, Z int
}

func V3(x, y, z int) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s int) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Mul is the element-wise (Hadamard) product.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

func (v Vec3) Abs() Vec3 { return Vec3{AbsInt(v.X), AbsInt(v.Y), AbsInt(v.Z)} }

func (v Vec3) FloorDiv(s int) Vec3 {
	return Vec3{FloorDiv(v.X, s), FloorDiv(v.Y, s), FloorDiv(v.Z, s)}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Rgb is an 8-bit color triple. Replacement-table lookups compare these
// exactly, so it must stay a comparable value type.
type Rgb struct {
	R, G, B uint8
}

func NewRgb(r, g, b uint8) Rgb { return Rgb{R: r, G: g, B: b} }
