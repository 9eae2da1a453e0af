package scene

import "math"

// Vec3 is a float64 3D vector in world units.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Cell rounds the ground-plane coordinates to the integer grid. Halves round
// toward positive infinity.
func (v Vec3) Cell() (x, z int) {
	return int(math.Floor(v.X + 0.5)), int(math.Floor(v.Z + 0.5))
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

func BoxFromCenterAndSize(center, size Vec3) Box {
	half := size.Scale(0.5)
	return Box{
		Min: Vec3{center.X - half.X, center.Y - half.Y, center.Z - half.Z},
		Max: Vec3{center.X + half.X, center.Y + half.Y, center.Z + half.Z},
	}
}

// CubeBox returns the local bounds of a cube of edge size centred on the origin.
func CubeBox(size float64) Box {
	return BoxFromCenterAndSize(Vec3{}, Vec3{size, size, size})
}

func (b Box) Translate(v Vec3) Box {
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

func (b Box) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Intersects reports whether the boxes share a volume. Boxes that only
// touch along a face do not intersect, so unit cubes on neighbouring grid
// cells never collide.
func (b Box) Intersects(o Box) bool {
	return o.Max.X > b.Min.X && o.Min.X < b.Max.X &&
		o.Max.Y > b.Min.Y && o.Min.Y < b.Max.Y &&
		o.Max.Z > b.Min.Z && o.Min.Z < b.Max.Z
}
