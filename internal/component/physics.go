package component

import (
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/scene"
)

const DefaultGravity = -9.8

// Velocity is in world units per second.
type Velocity struct {
	X, Y, Z float64
}

// Gravity accelerates Velocity.Y by Force per second.
type Gravity struct {
	Force float64
}

// Mesh links an entity to its visual representation. Node is nil until a
// factory fills it in.
type Mesh struct {
	Node scene.Node
}

// Collider holds the local bounds and the partner recorded by the last
// collision pass (ecs.None when nothing overlapped).
type Collider struct {
	Shape    scene.Box
	Collided ecs.EntityID
}

// Explosive entities are removed when they fall below the floor or collide
// with an entity holding Explodes. KindNone in Explodes matches anything.
type Explosive struct {
	Destructible bool
	Explodes     ecs.Kind
}
