package grid

import "voxplace.dev/internal/mathx"

// Aabb is an axis-aligned box with inclusive integer corners.
type Aabb struct {
	Min, Max mathx.Vec3
}

func (a Aabb) ContainsPoint(p mathx.Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// ContainsBox reports whether o lies entirely within a.
func (a Aabb) ContainsBox(o Aabb) bool {
	return o.Min.X >= a.Min.X && o.Max.X <= a.Max.X &&
		o.Min.Y >= a.Min.Y && o.Max.Y <= a.Max.Y &&
		o.Min.Z >= a.Min.Z && o.Max.Z <= a.Max.Z
}

// RegionSet is a covering set of Aabbs over everything placed so far. It
// deduplicates containment: a box fully inside another collapses into the
// larger one. Partially overlapping boxes are kept separately; this is a
// covering approximation, not a rectangle decomposition.
type RegionSet struct {
	boxes []Aabb
}

// Insert merges box into the set per the containment rule.
func (s *RegionSet) Insert(box Aabb) {
	for _, b := range s.boxes {
		if b.ContainsBox(box) {
			return
		}
	}
	kept := s.boxes[:0]
	for _, b := range s.boxes {
		if box.ContainsBox(b) {
			continue
		}
		kept = append(kept, b)
	}
	s.boxes = append(kept, box)
}

// Contains reports whether any box in the set covers p.
func (s *RegionSet) Contains(p mathx.Vec3) bool {
	for _, b := range s.boxes {
		if b.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// Boxes returns the current covering boxes.
func (s *RegionSet) Boxes() []Aabb { return s.boxes }
