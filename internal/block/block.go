package block

import "voxplace.dev/internal/mathx"

// Kind is the coarse material class of a block.
type Kind uint8

const (
	KindAir Kind = iota
	KindWater
	KindLava
	KindGlowingRock
	KindMisc
)

var kindNames = map[Kind]string{
	KindAir:         "air",
	KindWater:       "water",
	KindLava:        "lava",
	KindGlowingRock: "glowing_rock",
	KindMisc:        "misc",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// SpriteKind is the decorative entity occupying a non-filled block.
type SpriteKind uint8

const (
	SpriteEmpty SpriteKind = iota
	SpriteStreetLamp
	SpriteLiana
	SpriteCookingPot
	SpriteJungleRedGrass
	SpriteJungleFern
	SpriteDungeonChest
	SpriteFireBowlGround
)

var spriteNames = map[SpriteKind]string{
	SpriteEmpty:          "empty",
	SpriteStreetLamp:     "street_lamp",
	SpriteLiana:          "liana",
	SpriteCookingPot:     "cooking_pot",
	SpriteJungleRedGrass: "jungle_red_grass",
	SpriteJungleFern:     "jungle_fern",
	SpriteDungeonChest:   "dungeon_chest",
	SpriteFireBowlGround: "fire_bowl_ground",
}

func (s SpriteKind) String() string {
	if n, ok := spriteNames[s]; ok {
		return n
	}
	return "unknown"
}

// Block is the value handed to the terrain store for one world position.
// Solid kinds carry a color; air and water kinds may carry a sprite.
type Block struct {
	Kind   Kind
	Color  mathx.Rgb
	Sprite SpriteKind
}

// Solid returns a filled block of the given kind and color.
func Solid(kind Kind, color mathx.Rgb) Block {
	return Block{Kind: kind, Color: color}
}

// Air returns an air block holding a sprite.
func Air(sprite SpriteKind) Block {
	return Block{Kind: KindAir, Sprite: sprite}
}

// Water returns a water block holding a sprite.
func Water(sprite SpriteKind) Block {
	return Block{Kind: KindWater, Sprite: sprite}
}

// Empty is the store's explicit "no block" value.
func Empty() Block {
	return Block{Kind: KindAir, Sprite: SpriteEmpty}
}

func (b Block) IsEmpty() bool {
	return b.Kind == KindAir && b.Sprite == SpriteEmpty
}
