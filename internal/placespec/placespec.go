// Package placespec loads the placement specification: which models to
// place where, plus the optional color replacement table driving block
// classification. Specs are YAML; .json files are accepted too and are
// validated against an embedded schema first.
package placespec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"voxplace.dev/internal/block"
	"voxplace.dev/internal/mathx"
)

// Piece is one placement: a model name and the world offset the model is
// centered on.
type Piece struct {
	Model  string `yaml:"model" json:"model"`
	Offset [3]int `yaml:"offset" json:"offset"`
}

func (p Piece) OffsetVec() mathx.Vec3 {
	return mathx.V3(p.Offset[0], p.Offset[1], p.Offset[2])
}

// Spec is a full placement specification.
type Spec struct {
	Pieces []Piece `yaml:"pieces" json:"pieces"`

	// FillBoundsOnly restricts output to cells covered by the placed
	// models' bounding regions (writing explicit empties inside them).
	// When false only occupied cells are written.
	FillBoundsOnly bool `yaml:"fill_bounds_only" json:"fill_bounds_only"`

	// Seed drives the classifier's weighted-random draws.
	Seed int64 `yaml:"seed" json:"seed"`

	Replacements []Replacement `yaml:"replacements" json:"replacements"`
}

// Replacement maps one exact cell color to a block spec.
type Replacement struct {
	Color    [3]uint8 `yaml:"color" json:"color"`
	SpecNode `yaml:",inline"`
}

// SpecNode is the file form of a block spec: exactly one variant set.
type SpecNode struct {
	Solid  *SolidNode   `yaml:"solid,omitempty" json:"solid,omitempty"`
	Sprite *SpriteNode  `yaml:"sprite,omitempty" json:"sprite,omitempty"`
	Random []ChoiceNode `yaml:"random,omitempty" json:"random,omitempty"`
}

type SolidNode struct {
	Kind  string   `yaml:"kind" json:"kind"`
	Color [3]uint8 `yaml:"color" json:"color"`
}

type SpriteNode struct {
	Kind    string `yaml:"kind" json:"kind"`
	InWater bool   `yaml:"in_water" json:"in_water"`
}

type ChoiceNode struct {
	Weight   float64 `yaml:"weight" json:"weight"`
	SpecNode `yaml:",inline"`
}

// Load reads and validates a spec file. JSON specs are schema-checked
// before decoding; both formats decode through the YAML path (JSON is a
// YAML subset).
func Load(path string) (Spec, error) {
	var s Spec
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := validateJSON(raw); err != nil {
			return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

func validateJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return placeSchema.Validate(v)
}

// Validate checks the structural rules that the schema cannot fully
// express and that YAML specs skip entirely.
func (s Spec) Validate() error {
	if len(s.Pieces) == 0 {
		return fmt.Errorf("no pieces to place")
	}
	for i, p := range s.Pieces {
		if strings.TrimSpace(p.Model) == "" {
			return fmt.Errorf("piece %d: empty model name", i)
		}
	}
	seen := map[[3]uint8]bool{}
	for i, r := range s.Replacements {
		if seen[r.Color] {
			return fmt.Errorf("replacement %d: duplicate color %v", i, r.Color)
		}
		seen[r.Color] = true
		if err := r.SpecNode.validate(); err != nil {
			return fmt.Errorf("replacement %d: %w", i, err)
		}
	}
	return nil
}

func (n SpecNode) validate() error {
	variants := 0
	if n.Solid != nil {
		variants++
		if _, err := block.KindFromString(n.Solid.Kind); err != nil {
			return err
		}
	}
	if n.Sprite != nil {
		variants++
		if _, err := block.SpriteFromString(n.Sprite.Kind); err != nil {
			return err
		}
	}
	if len(n.Random) > 0 {
		variants++
		for i, c := range n.Random {
			if c.Weight <= 0 {
				return fmt.Errorf("random choice %d: weight must be positive", i)
			}
			if err := c.SpecNode.validate(); err != nil {
				return fmt.Errorf("random choice %d: %w", i, err)
			}
		}
	}
	if variants != 1 {
		return fmt.Errorf("spec must set exactly one of solid, sprite, random (got %d)", variants)
	}
	return nil
}

// Table compiles the replacement list into the classifier's lookup table.
// Call only after Validate has passed.
func (s Spec) Table() block.Table {
	if len(s.Replacements) == 0 {
		return nil
	}
	t := make(block.Table, len(s.Replacements))
	for _, r := range s.Replacements {
		t[mathx.NewRgb(r.Color[0], r.Color[1], r.Color[2])] = r.SpecNode.compile()
	}
	return t
}

func (n SpecNode) compile() block.Spec {
	switch {
	case n.Solid != nil:
		kind, _ := block.KindFromString(n.Solid.Kind)
		return block.SolidSpec(kind, mathx.NewRgb(n.Solid.Color[0], n.Solid.Color[1], n.Solid.Color[2]))
	case n.Sprite != nil:
		sprite, _ := block.SpriteFromString(n.Sprite.Kind)
		return block.SpriteSpec(sprite, n.Sprite.InWater)
	default:
		choices := make([]block.WeightedSpec, 0, len(n.Random))
		for _, c := range n.Random {
			choices = append(choices, block.WeightedSpec{Weight: c.Weight, Spec: c.SpecNode.compile()})
		}
		return block.RandomSpec(choices...)
	}
}
