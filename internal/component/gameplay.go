package component

import "github.com/lanedefense/sim/internal/core/ecs"

const (
	DefaultFiringRate    = 0.5
	DefaultVehicleSpeed  = 1.0
	DefaultCollectorRate = 20.0
)

// ToRemove marks an entity for destruction by the removal system.
type ToRemove struct{}

type Enemy struct{}

type Projectile struct{}

// Turret fires a projectile every 1/FiringRate seconds.
type Turret struct {
	FiringRate    float64
	TimeUntilFire float64
}

// Vehicle moves along x at Speed and carries Onboard (ecs.None when empty).
type Vehicle struct {
	Speed   float64
	Onboard ecs.EntityID
}

// Collector generates Rate power per second.
type Collector struct {
	Rate float64
}
