package component

import "github.com/lanedefense/sim/internal/core/ecs"

// Component kinds. The set is closed; tables are created by Register.
const (
	KindVelocity ecs.Kind = iota + 1
	KindGravity
	KindMesh
	KindCollider
	KindExplosive
	KindToRemove
	KindEnemy
	KindProjectile
	KindTurret
	KindVehicle
	KindCollector
)

// Tables holds the typed store for every component kind.
type Tables struct {
	Velocity   *ecs.Store[Velocity]
	Gravity    *ecs.Store[Gravity]
	Mesh       *ecs.Store[Mesh]
	Collider   *ecs.Store[Collider]
	Explosive  *ecs.Store[Explosive]
	ToRemove   *ecs.Store[ToRemove]
	Enemy      *ecs.Store[Enemy]
	Projectile *ecs.Store[Projectile]
	Turret     *ecs.Store[Turret]
	Vehicle    *ecs.Store[Vehicle]
	Collector  *ecs.Store[Collector]
}

// Register creates every component table in w with its default template.
func Register(w *ecs.World) (*Tables, error) {
	t := &Tables{}
	var err error
	if t.Velocity, err = ecs.Register(w, KindVelocity, "Velocity", Velocity{}); err != nil {
		return nil, err
	}
	if t.Gravity, err = ecs.Register(w, KindGravity, "Gravity", Gravity{Force: DefaultGravity}); err != nil {
		return nil, err
	}
	if t.Mesh, err = ecs.Register(w, KindMesh, "Mesh", Mesh{}); err != nil {
		return nil, err
	}
	if t.Collider, err = ecs.Register(w, KindCollider, "Collider", Collider{}); err != nil {
		return nil, err
	}
	if t.Explosive, err = ecs.Register(w, KindExplosive, "Explosive", Explosive{Destructible: true}); err != nil {
		return nil, err
	}
	if t.ToRemove, err = ecs.Register(w, KindToRemove, "ToRemove", ToRemove{}); err != nil {
		return nil, err
	}
	if t.Enemy, err = ecs.Register(w, KindEnemy, "Enemy", Enemy{}); err != nil {
		return nil, err
	}
	if t.Projectile, err = ecs.Register(w, KindProjectile, "Projectile", Projectile{}); err != nil {
		return nil, err
	}
	if t.Turret, err = ecs.Register(w, KindTurret, "Turret", Turret{FiringRate: DefaultFiringRate, TimeUntilFire: 1 / DefaultFiringRate}); err != nil {
		return nil, err
	}
	if t.Vehicle, err = ecs.Register(w, KindVehicle, "Vehicle", Vehicle{Speed: DefaultVehicleSpeed}); err != nil {
		return nil, err
	}
	if t.Collector, err = ecs.Register(w, KindCollector, "Collector", Collector{Rate: DefaultCollectorRate}); err != nil {
		return nil, err
	}
	return t, nil
}

// MustRegister is Register for setups where a failure is a programming error.
func MustRegister(w *ecs.World) *Tables {
	t, err := Register(w)
	if err != nil {
		panic(err)
	}
	return t
}
