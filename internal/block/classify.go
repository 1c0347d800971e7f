package block

import (
	"math/rand"

	"voxplace.dev/internal/grid"
	"voxplace.dev/internal/mathx"
)

// Spec describes how to produce a block for a matched color. It is a closed
// tagged variant: exactly one of the fields is set.
type Spec struct {
	// Sprite places SpriteVal in a medium (water when InWater, else air).
	Sprite bool
	// Solid produces a filled block of SolidKind and SolidColor.
	Solid bool
	// Random picks among Choices by weight.
	Random bool

	SpriteVal  SpriteKind
	InWater    bool
	SolidKind  Kind
	SolidColor mathx.Rgb
	Choices    []WeightedSpec
}

// WeightedSpec is one alternative of a random spec.
type WeightedSpec struct {
	Weight float64
	Spec   Spec
}

// SpriteSpec returns a sprite-in-medium spec.
func SpriteSpec(s SpriteKind, inWater bool) Spec {
	return Spec{Sprite: true, SpriteVal: s, InWater: inWater}
}

// SolidSpec returns a solid-block spec.
func SolidSpec(k Kind, color mathx.Rgb) Spec {
	return Spec{Solid: true, SolidKind: k, SolidColor: color}
}

// RandomSpec returns a weighted-random spec over choices.
func RandomSpec(choices ...WeightedSpec) Spec {
	return Spec{Random: true, Choices: choices}
}

// Eval produces the block a spec describes. rng is only consulted for
// random variants, one draw per level of nesting.
func (s Spec) Eval(rng *rand.Rand) Block {
	switch {
	case s.Sprite:
		if s.InWater {
			return Water(s.SpriteVal)
		}
		return Air(s.SpriteVal)
	case s.Solid:
		return Solid(s.SolidKind, s.SolidColor)
	case s.Random:
		return pickWeighted(s.Choices, rng).Eval(rng)
	}
	return Empty()
}

// pickWeighted scales one uniform draw to the total weight and returns the
// first choice whose cumulative weight exceeds it, so ties resolve in
// declaration order. Choices are validated non-empty at spec load time.
func pickWeighted(choices []WeightedSpec, rng *rand.Rand) Spec {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	draw := rng.Float64() * total
	acc := 0.0
	for _, c := range choices {
		acc += c.Weight
		if draw < acc {
			return c.Spec
		}
	}
	return choices[len(choices)-1].Spec
}

// Table maps exact cell colors to block specs. Nil is a valid empty table.
type Table map[mathx.Rgb]Spec

// Classify converts one grid cell into a block value. An empty cell yields
// the explicit empty block. Occupied cells first consult the replacement
// table by exact color; unmatched cells fall back to the flag chain:
// hollow beats glowy beats shiny beats plain misc.
func Classify(cell grid.Cell, table Table, rng *rand.Rand) Block {
	if cell.Empty() {
		return Empty()
	}
	if spec, ok := table[cell.Color]; ok {
		return spec.Eval(rng)
	}
	switch {
	case cell.Hollow:
		return Air(SpriteEmpty)
	case cell.Glowy:
		return Solid(KindGlowingRock, cell.Color)
	case cell.Shiny:
		return Water(SpriteEmpty)
	default:
		return Solid(KindMisc, cell.Color)
	}
}
