// Command voxplace converts MagicaVoxel scenes into blocks in a chunked
// terrain database. One shot: load the placement spec, assemble every
// piece into a sparse grid, classify the cells and flush them to storage.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"voxplace.dev/internal/assemble"
	"voxplace.dev/internal/block"
	"voxplace.dev/internal/grid"
	"voxplace.dev/internal/mathx"
	"voxplace.dev/internal/persist"
	"voxplace.dev/internal/placespec"
	"voxplace.dev/internal/vox"
)

func main() {
	var (
		specPath  = flag.String("spec", "./place.yaml", "placement spec path (.yaml or .json)")
		assetsDir = flag.String("assets", "./assets", "voxel model directory")
		dataDir   = flag.String("data", "./data", "output data directory")
		seed      = flag.Int64("seed", 0, "classifier rng seed (overrides the spec's seed when nonzero)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[voxplace] ", log.LstdFlags|log.Lmicroseconds)

	spec, err := placespec.Load(*specPath)
	if err != nil {
		logger.Fatalf("load placement spec: %v", err)
	}

	store, err := persist.Open(filepath.Join(*dataDir, "terrain.db"))
	if err != nil {
		logger.Fatalf("open terrain store: %v", err)
	}
	defer store.Close()

	cache := vox.NewCache(*assetsDir, logger)
	asm := assemble.New()
	for _, piece := range spec.Pieces {
		asm.Place(cache.Resolve(piece.Model), piece.OffsetVec())
	}
	logger.Printf("placed %d pieces into %d chunks", len(spec.Pieces), asm.Grid.Len())

	rngSeed := spec.Seed
	if *seed != 0 {
		rngSeed = *seed
	}
	rng := rand.New(rand.NewSource(rngSeed))
	table := spec.Table()

	for _, key := range asm.Grid.Keys() {
		logger.Printf("filling chunk (%d, %d, %d)", key.X, key.Y, key.Z)
		ch, _ := asm.Grid.Chunk(key)
		origin := grid.Origin(key)
		for z := 0; z < grid.ChunkSize; z++ {
			for y := 0; y < grid.ChunkSize; y++ {
				for x := 0; x < grid.ChunkSize; x++ {
					local := mathx.V3(x, y, z)
					wpos := origin.Add(local)
					cell := ch.Get(local)
					if spec.FillBoundsOnly {
						if !asm.Regions.Contains(wpos) {
							continue
						}
					} else if cell.Empty() {
						continue
					}
					if err := store.SetBlock(wpos, block.Classify(cell, table, rng)); err != nil {
						logger.Fatalf("set block at %v: %v", wpos, err)
					}
				}
			}
		}
	}

	if err := store.FlushAll(); err != nil {
		logger.Fatalf("flush terrain store: %v", err)
	}
	logger.Printf("wrote %d blocks (run %s)", store.BlocksWritten(), store.RunID())
}
