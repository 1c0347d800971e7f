package block

import "voxplace.dev/internal/mathx"

// Pack flattens a block into one integer for storage:
// kind in bits 32-39, sprite in 24-31, color in 0-23.
func (b Block) Pack() uint64 {
	return uint64(b.Kind)<<32 | uint64(b.Sprite)<<24 |
		uint64(b.Color.R)<<16 | uint64(b.Color.G)<<8 | uint64(b.Color.B)
}

// Unpack is the inverse of Pack.
func Unpack(v uint64) Block {
	return Block{
		Kind:   Kind(v >> 32 & 0xff),
		Sprite: SpriteKind(v >> 24 & 0xff),
		Color:  mathx.NewRgb(uint8(v>>16), uint8(v>>8), uint8(v)),
	}
}
