package block

import "fmt"

// KindFromString resolves the spec-file name of a block kind.
func KindFromString(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return KindAir, fmt.Errorf("unknown block kind %q", s)
}

// SpriteFromString resolves the spec-file name of a sprite kind.
func SpriteFromString(s string) (SpriteKind, error) {
	for k, n := range spriteNames {
		if n == s {
			return k, nil
		}
	}
	return SpriteEmpty, fmt.Errorf("unknown sprite kind %q", s)
}
