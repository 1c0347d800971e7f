package assemble

import (
	"errors"

	"voxplace.dev/internal/mathx"
)

// ErrInvalidRotation marks a rotation byte that does not describe one of
// the 24 cube symmetries. Callers substitute the identity.
var ErrInvalidRotation = errors.New("invalid rotation encoding")

// DecodeRotation expands the MagicaVoxel rotation byte into a signed
// axis-permutation matrix. Bits 0-1 select the input axis read by output
// row 0, bits 2-3 the axis for row 1; row 2 reads the remaining axis.
// Bits 4, 5 and 6 negate rows 0, 1 and 2.
//
// The byte is invalid when either selector is the reserved value 3, or
// when the selectors coincide (which would make the matrix singular).
func DecodeRotation(enc uint8) (mathx.Mat3, error) {
	sel0 := int(enc & 3)
	sel1 := int(enc >> 2 & 3)
	if sel0 == 3 || sel1 == 3 || sel0 == sel1 {
		return mathx.Identity(), ErrInvalidRotation
	}
	sel2 := int(^(enc | enc>>2) & 3)

	signs := [3]int{1, 1, 1}
	for i := 0; i < 3; i++ {
		if enc>>(4+i)&1 == 1 {
			signs[i] = -1
		}
	}

	var m mathx.Mat3
	m.M[0][sel0] = signs[0]
	m.M[1][sel1] = signs[1]
	m.M[2][sel2] = signs[2]
	return m, nil
}
