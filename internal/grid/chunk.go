package grid

import "voxplace.dev/internal/mathx"

// ChunkSize is the edge length of a chunk in cells.
const ChunkSize = 32

// ChunkVolume is the cell count of one chunk.
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// Chunk is a fixed 32x32x32 block of cells. Chunks are allocated empty and
// live for the whole run.
type Chunk struct {
	cells []Cell

	// Meta is an auxiliary slot reserved for the storage backend; the
	// assembly core never touches it.
	Meta any
}

func NewChunk() *Chunk {
	return &Chunk{cells: make([]Cell, ChunkVolume)}
}

func index(local mathx.Vec3) int {
	return local.X + local.Y*ChunkSize + local.Z*ChunkSize*ChunkSize
}

// Get reads the cell at chunk-local coordinates (each in [0, ChunkSize)).
func (c *Chunk) Get(local mathx.Vec3) Cell {
	return c.cells[index(local)]
}

// Set writes the cell at chunk-local coordinates.
func (c *Chunk) Set(local mathx.Vec3, cell Cell) {
	c.cells[index(local)] = cell
}
