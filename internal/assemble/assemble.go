// Package assemble turns decoded voxel scenes into a sparse chunked grid.
// It walks each file's scene graph accumulating rigid transforms (one of
// the 24 cube rotations plus an integer translation), rasterizes shape
// models into world cells, and tracks a covering set of bounding boxes
// over everything placed.
package assemble

import (
	"voxplace.dev/internal/grid"
	"voxplace.dev/internal/mathx"
	"voxplace.dev/internal/vox"
)

// Provider resolves a model name to a decoded file, substituting a
// fallback for anything that cannot be loaded. The vox cache satisfies it.
type Provider interface {
	Resolve(name string) *vox.File
}

// Assembler owns the output volume for one run. Pieces are placed one
// after another into the shared grid; where two pieces touch the same
// cell, the later write wins.
type Assembler struct {
	Grid    *grid.Grid
	Regions *grid.RegionSet
}

func New() *Assembler {
	return &Assembler{
		Grid:    grid.New(),
		Regions: &grid.RegionSet{},
	}
}

// Place walks a file's scene graph starting from the root (node 0) and
// rasterizes every reachable shape, with offset as the requested
// placement point.
func (a *Assembler) Place(f *vox.File, offset mathx.Vec3) {
	if f.Node(0) == nil {
		return
	}
	a.walk(f, 0, mathx.Identity(), offset)
}

// walk carries the accumulated (rotation, translation) state by value, so
// sibling branches never observe each other's transforms. The node table
// is index-addressed; dangling indices are skipped.
func (a *Assembler) walk(f *vox.File, id int, rot mathx.Mat3, trans mathx.Vec3) {
	node := f.Node(id)
	if node == nil {
		return
	}
	switch node.Kind {
	case vox.NodeTransform:
		// Only the first animation frame participates in placement.
		if len(node.Frames) > 0 {
			fr := node.Frames[0]
			t := mathx.Vec3{}
			if fr.HasTranslation {
				t = fr.Translation
			}
			r := mathx.Identity()
			if fr.HasRotation {
				// Invalid encodings decode to the identity.
				r, _ = DecodeRotation(fr.Rotation)
			}
			// Local transforms live in the parent's rotated space:
			// rotate-then-translate, composed child under parent.
			trans = trans.Add(rot.MulVec(t))
			rot = rot.Mul(r)
		}
		a.walk(f, node.Child, rot, trans)
	case vox.NodeGroup:
		for _, child := range node.Children {
			a.walk(f, child, rot, trans)
		}
	case vox.NodeShape:
		for _, mid := range node.Models {
			if m := f.Model(mid); m != nil {
				a.rasterize(m, f.Palette, rot, trans)
			}
		}
	}
}

// rasterize writes one model into the grid at the accumulated transform
// and registers its world extent with the region set.
func (a *Assembler) rasterize(m *vox.Model, palette []mathx.Rgb, rot mathx.Mat3, trans mathx.Vec3) {
	if len(m.Voxels) == 0 {
		return
	}

	// Extent of the rotated model.
	size := rot.Abs().MulVec(m.Size)

	// Minimum corner such that the rotated model is centered on trans.
	// Rotation is defined around the model's corner, so an axis the
	// rotation flips shifts the footprint by one unit; flip compensates.
	rowSum := rot.MulVec(mathx.V3(1, 1, 1))
	flip := mathx.V3(negToOne(rowSum.X), negToOne(rowSum.Y), negToOne(rowSum.Z))
	pos := mathx.Vec3{
		X: trans.X - (size.X+flip.X)/2,
		Y: trans.Y - (size.Y+flip.Y)/2,
		Z: trans.Z - (size.Z+flip.Z)/2,
	}

	bounds := grid.Aabb{Min: pos, Max: pos.Add(size).Sub(mathx.V3(1, 1, 1))}
	a.Regions.Insert(bounds)

	// Every chunk the bounds touch must exist before any cell write.
	minKey := grid.ChunkCoord(bounds.Min)
	maxKey := grid.ChunkCoord(bounds.Max)
	for x := minKey.X; x <= maxKey.X; x++ {
		for y := minKey.Y; y <= maxKey.Y; y++ {
			for z := minKey.Z; z <= maxKey.Z; z++ {
				a.Grid.Ensure(grid.ChunkKey{X: x, Y: y, Z: z})
			}
		}
	}

	// Rotation is about the local origin corner; axes the rotation sends
	// negative need re-anchoring into non-negative local space.
	rs := rot.MulVec(m.Size)
	off := mathx.V3(reanchor(rs.X), reanchor(rs.Y), reanchor(rs.Z))

	for _, v := range m.Voxels {
		idx := int(v.Index)
		if idx >= len(palette) {
			continue
		}
		wpos := rot.MulVec(mathx.V3(int(v.X), int(v.Y), int(v.Z))).Add(off).Add(pos)
		a.Grid.Set(wpos, grid.NewCell(palette[idx], idx == 16))
	}
}

func negToOne(v int) int {
	if v < 0 {
		return 1
	}
	return 0
}

func reanchor(v int) int {
	if v > 0 {
		return 0
	}
	return -v - 1
}
