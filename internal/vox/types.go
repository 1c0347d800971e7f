package vox

import "voxplace.dev/internal/mathx"

// Voxel is one colored unit cube in model-local coordinates. Index selects
// a palette entry; index 16 is reserved by convention for invisible matter.
type Voxel struct {
	X, Y, Z uint8
	Index   uint8
}

// Model is one voxel model from a file: its unrotated size plus the sparse
// voxel list. Models are immutable once decoded.
type Model struct {
	Size   mathx.Vec3
	Voxels []Voxel
}

// NodeKind tags the three scene-graph node variants.
type NodeKind uint8

const (
	NodeTransform NodeKind = iota
	NodeGroup
	NodeShape
)

// Frame is one animation frame of a transform node. Only frame 0 is ever
// consulted during placement. Absent attributes stay at the zero value
// with the Has flag unset.
type Frame struct {
	Translation    mathx.Vec3
	HasTranslation bool
	Rotation       uint8
	HasRotation    bool
}

// Node is one scene-graph node. Nodes reference each other by index into
// the file's node arena, never by pointer; the graph is acyclic but shared
// (several shapes may reference the same model).
type Node struct {
	Kind NodeKind

	// Transform fields.
	Child  int
	Frames []Frame

	// Group fields.
	Children []int

	// Shape fields: indices into File.Models.
	Models []int
}

// File is a decoded .vox asset: models, a direct-indexed palette (a
// voxel's Index addresses Palette without shifting), and the scene node
// arena with node 0 as root.
type File struct {
	Version int
	Models  []Model
	Palette []mathx.Rgb
	Nodes   []Node
}

// Root returns the scene root, node 0.
func (f *File) Root() *Node {
	return &f.Nodes[0]
}

// Node returns the node at id, or nil when id is out of range.
func (f *File) Node(id int) *Node {
	if id < 0 || id >= len(f.Nodes) {
		return nil
	}
	return &f.Nodes[id]
}

// Model returns the model at id, or nil when id is out of range.
func (f *File) Model(id int) *Model {
	if id < 0 || id >= len(f.Models) {
		return nil
	}
	return &f.Models[id]
}
