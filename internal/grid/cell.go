package grid

import "voxplace.dev/internal/mathx"

// Cell is the state of one world-grid position. The zero value is the
// empty cell; Filled distinguishes a genuinely black voxel from no voxel.
//
// Hollow/Glowy/Shiny are never derived from model data during rasterization.
// They exist so the classifier's fallback chain has somewhere to read from
// when a future override stage sets them.
type Cell struct {
	Color   mathx.Rgb
	Filled  bool
	Hollow  bool
	Glowy   bool
	Shiny   bool
	Special bool
}

// NewCell returns an occupied cell with the given color. special marks the
// reserved "invisible matter" palette slot (index 16).
func NewCell(color mathx.Rgb, special bool) Cell {
	return Cell{Color: color, Filled: true, Special: special}
}

func (c Cell) Empty() bool { return !c.Filled }
