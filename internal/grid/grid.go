package grid

import (
	"fmt"
	"sort"

	"voxplace.dev/internal/mathx"
)

// ChunkKey addresses a chunk: the per-axis floor division of any contained
// world position by ChunkSize.
type ChunkKey struct {
	X, Y, Z int
}

// Grid is a sparse chunked voxel volume. Chunks exist only once inserted;
// an absent chunk is distinct from a present chunk full of empty cells.
type Grid struct {
	chunks map[ChunkKey]*Chunk
}

func New() *Grid {
	return &Grid{chunks: map[ChunkKey]*Chunk{}}
}

// ChunkCoord returns the key of the chunk containing a world position.
func ChunkCoord(wpos mathx.Vec3) ChunkKey {
	c := wpos.FloorDiv(ChunkSize)
	return ChunkKey{X: c.X, Y: c.Y, Z: c.Z}
}

// Origin returns the minimum world position of a chunk, the inverse of
// ChunkCoord.
func Origin(key ChunkKey) mathx.Vec3 {
	return mathx.V3(key.X*ChunkSize, key.Y*ChunkSize, key.Z*ChunkSize)
}

// Ensure inserts an all-empty chunk at key if none exists. Idempotent.
func (g *Grid) Ensure(key ChunkKey) {
	if _, ok := g.chunks[key]; !ok {
		g.chunks[key] = NewChunk()
	}
}

// Chunk returns the chunk at key without allocating.
func (g *Grid) Chunk(key ChunkKey) (*Chunk, bool) {
	ch, ok := g.chunks[key]
	return ch, ok
}

func local(wpos mathx.Vec3) mathx.Vec3 {
	return mathx.V3(mathx.Mod(wpos.X, ChunkSize), mathx.Mod(wpos.Y, ChunkSize), mathx.Mod(wpos.Z, ChunkSize))
}

// Set writes a cell at a world position. The owning chunk must already
// exist: writers pre-allocate the full chunk range of whatever they are
// placing, so a miss here is a bug in that ordering, not a recoverable
// condition.
func (g *Grid) Set(wpos mathx.Vec3, cell Cell) {
	key := ChunkCoord(wpos)
	ch, ok := g.chunks[key]
	if !ok {
		panic(fmt.Sprintf("grid: set %v in missing chunk %v", wpos, key))
	}
	ch.Set(local(wpos), cell)
}

// Get reads the cell at a world position. ok is false when the owning
// chunk has never been inserted.
func (g *Grid) Get(wpos mathx.Vec3) (Cell, bool) {
	ch, ok := g.chunks[ChunkCoord(wpos)]
	if !ok {
		return Cell{}, false
	}
	return ch.Get(local(wpos)), true
}

// Len returns the number of inserted chunks.
func (g *Grid) Len() int { return len(g.chunks) }

// Keys returns every inserted chunk key in sorted order, so iteration is
// stable for the run.
func (g *Grid) Keys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(g.chunks))
	for k := range g.chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].Z < keys[j].Z
	})
	return keys
}
