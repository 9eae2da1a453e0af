package event

import "github.com/lanedefense/sim/internal/core/ecs"

// EntityDestroyed is emitted by the removal system for every purged entity.
type EntityDestroyed struct {
	EntityID ecs.EntityID
	Enemy    bool
}

// WaveStarted is emitted when the wave schedule switches to a new wave.
type WaveStarted struct {
	Index   int
	Enemies int
	Elapsed float64
}

// StructurePlaced is emitted after a build request succeeds.
type StructurePlaced struct {
	EntityID ecs.EntityID
	Kind     string
	Cost     float64
	X, Z     int
}

type ProjectileFired struct {
	Turret     ecs.EntityID
	Projectile ecs.EntityID
}

// OutcomeSignaled is emitted once when the game is won or lost.
type OutcomeSignaled struct {
	Outcome string
	Elapsed float64
}
