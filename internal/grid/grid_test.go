package grid

import (
	"testing"

	"voxplace.dev/internal/mathx"
)

func TestChunkCoordFloors(t *testing.T) {
	cases := []struct {
		wpos mathx.Vec3
		want ChunkKey
	}{
		{mathx.V3(0, 0, 0), ChunkKey{0, 0, 0}},
		{mathx.V3(31, 31, 31), ChunkKey{0, 0, 0}},
		{mathx.V3(32, 0, 0), ChunkKey{1, 0, 0}},
		{mathx.V3(-1, -32, -33), ChunkKey{-1, -1, -2}},
	}
	for _, c := range cases {
		if got := ChunkCoord(c.wpos); got != c.want {
			t.Fatalf("ChunkCoord(%v) = %v, want %v", c.wpos, got, c.want)
		}
	}
}

func TestOriginInvertsChunkCoord(t *testing.T) {
	for _, key := range []ChunkKey{{0, 0, 0}, {1, -2, 3}, {-4, 5, -6}} {
		if got := ChunkCoord(Origin(key)); got != key {
			t.Fatalf("ChunkCoord(Origin(%v)) = %v", key, got)
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	g := New()
	wpos := mathx.V3(-5, 40, 0)
	g.Ensure(ChunkCoord(wpos))

	cell := NewCell(mathx.NewRgb(4, 119, 191), false)
	g.Set(wpos, cell)

	got, ok := g.Get(wpos)
	if !ok {
		t.Fatalf("chunk should exist after Ensure")
	}
	if got != cell {
		t.Fatalf("got %+v, want %+v", got, cell)
	}
}

func TestMissingChunkDistinctFromEmptyCell(t *testing.T) {
	g := New()
	if _, ok := g.Get(mathx.V3(100, 100, 100)); ok {
		t.Fatalf("read of missing chunk should report no chunk")
	}

	g.Ensure(ChunkKey{0, 0, 0})
	cell, ok := g.Get(mathx.V3(1, 2, 3))
	if !ok {
		t.Fatalf("chunk present, read should succeed")
	}
	if !cell.Empty() {
		t.Fatalf("fresh chunk should hold empty cells")
	}
}

func TestSetWithoutChunkPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Set into a missing chunk must panic")
		}
	}()
	New().Set(mathx.V3(0, 0, 0), NewCell(mathx.NewRgb(1, 2, 3), false))
}

func TestEnsureIdempotent(t *testing.T) {
	g := New()
	key := ChunkKey{2, 2, 2}
	g.Ensure(key)
	g.Set(Origin(key), NewCell(mathx.NewRgb(9, 9, 9), false))
	g.Ensure(key)

	cell, _ := g.Get(Origin(key))
	if cell.Empty() {
		t.Fatalf("second Ensure must not replace an existing chunk")
	}
}

func TestKeysSorted(t *testing.T) {
	g := New()
	for _, k := range []ChunkKey{{3, 0, 0}, {-1, 2, 0}, {-1, 0, 5}, {0, 0, 0}} {
		g.Ensure(k)
	}
	keys := g.Keys()
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		a, b := keys[i-1], keys[i]
		less := a.X < b.X || (a.X == b.X && (a.Y < b.Y || (a.Y == b.Y && a.Z < b.Z)))
		if !less {
			t.Fatalf("keys out of order: %v before %v", a, b)
		}
	}
}
