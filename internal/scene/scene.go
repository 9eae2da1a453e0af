// Package scene holds the boundary contracts between the simulation and the
// host's rendering and spatial-query layers, plus a headless in-memory
// implementation of both.
package scene

// Style selects the look of a visual representation.
type Style string

const (
	StyleGreen  Style = "green"
	StyleRed    Style = "red"
	StyleBlue   Style = "blue"
	StyleYellow Style = "yellow"
	StyleOrange Style = "orange"
)

// Node is a handle to a visual representation with a local transform.
// WorldPosition folds in the parent chain.
type Node interface {
	Position() Vec3
	SetPosition(Vec3)
	WorldPosition() Vec3
}

// Renderer creates visual representations and manages scene membership.
type Renderer interface {
	Create(style Style, scale float64) Node
	Attach(n Node)
	AttachChild(parent, child Node)
	Detach(n Node)
}

// Spatial turns collider shapes into world bounds and tests overlap.
type Spatial interface {
	Bounds(shape Box, at Vec3) Box
	Intersects(a, b Box) bool
}

// AABB is the axis-aligned Spatial implementation. Nodes carry no rotation,
// so a translation is the whole world transform.
type AABB struct{}

func (AABB) Bounds(shape Box, at Vec3) Box { return shape.Translate(at) }
func (AABB) Intersects(a, b Box) bool     { return a.Intersects(b) }
