// Package factory builds the scene's entity archetypes on top of the ECS world.
package factory

import (
	"errors"
	"fmt"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/scene"
)

// Build kinds accepted by Build.
const (
	BuildMine      = "mine"
	BuildTurret    = "turret"
	BuildVehicle   = "vehicle"
	BuildCollector = "collector"
)

var ErrUnknownBuild = errors.New("unknown build kind")

const (
	enemySpeed      = 1.5
	projectileSpeed = -20.0
	projectileScale = 0.2
	vehicleScale    = 0.9
	onboardHeight   = 0.5
	onboardRate     = 1.0
)

// Factory creates fully initialized entities and their visual representations.
type Factory struct {
	world  *ecs.World
	tables *component.Tables
	scene  scene.Renderer
}

func New(w *ecs.World, t *component.Tables, r scene.Renderer) *Factory {
	return &Factory{world: w, tables: t, scene: r}
}

// create panics on an unregistered kind; every kind used here is registered
// by component.Register, so a failure is a wiring bug.
func (f *Factory) create(kinds ...ecs.Kind) ecs.EntityID {
	id, err := f.world.CreateEntity(kinds...)
	if err != nil {
		panic(fmt.Errorf("factory: %w", err))
	}
	return id
}

func (f *Factory) mesh(id ecs.EntityID, style scene.Style, scale float64) scene.Node {
	n := f.scene.Create(style, scale)
	f.tables.Mesh.Must(id).Node = n
	return n
}

func (f *Factory) collider(id ecs.EntityID, scale float64) {
	f.tables.Collider.Must(id).Shape = scene.CubeBox(scale)
}

// Enemy walks toward the base and explodes on any contact without being
// destroyed itself.
func (f *Factory) Enemy() ecs.EntityID {
	id := f.create(component.KindEnemy, component.KindMesh, component.KindVelocity,
		component.KindCollider, component.KindExplosive)
	n := f.mesh(id, scene.StyleGreen, 1)
	f.tables.Velocity.Must(id).Z = enemySpeed
	f.collider(id, 1)
	f.tables.Explosive.Must(id).Destructible = false
	f.scene.Attach(n)
	return id
}

func (f *Factory) Mine() ecs.EntityID {
	id := f.create(component.KindMesh, component.KindCollider, component.KindExplosive)
	n := f.mesh(id, scene.StyleRed, 1)
	f.collider(id, 1)
	f.tables.Explosive.Must(id).Explodes = component.KindEnemy
	f.scene.Attach(n)
	return id
}

func (f *Factory) Projectile() ecs.EntityID {
	id := f.create(component.KindProjectile, component.KindMesh, component.KindVelocity,
		component.KindGravity, component.KindExplosive, component.KindCollider)
	n := f.mesh(id, scene.StyleRed, projectileScale)
	f.collider(id, projectileScale)
	f.tables.Explosive.Must(id).Explodes = component.KindEnemy
	f.tables.Velocity.Must(id).Z = projectileSpeed
	f.scene.Attach(n)
	return id
}

// Turret creates a turret. firingRate <= 0 keeps the component default.
func (f *Factory) Turret(withCollider bool, firingRate float64) ecs.EntityID {
	id := f.create(component.KindTurret, component.KindMesh)
	if firingRate > 0 {
		t := f.tables.Turret.Must(id)
		t.FiringRate = firingRate
		t.TimeUntilFire = 1 / firingRate
	}
	n := f.mesh(id, scene.StyleBlue, 1)
	if withCollider {
		if err := f.world.AddComponents(id, component.KindCollider); err != nil {
			panic(fmt.Errorf("factory: %w", err))
		}
		f.collider(id, 1)
	}
	f.scene.Attach(n)
	return id
}

// TurretVehicle creates a lane vehicle carrying a collider-less turret as a
// child node.
func (f *Factory) TurretVehicle() ecs.EntityID {
	id := f.create(component.KindVehicle, component.KindMesh, component.KindCollider)
	n := f.mesh(id, scene.StyleYellow, vehicleScale)
	f.collider(id, vehicleScale)

	turret := f.Turret(false, onboardRate)
	tn := f.tables.Mesh.Must(turret).Node
	tn.SetPosition(scene.Vec3{Y: onboardHeight})
	f.scene.AttachChild(n, tn)
	f.tables.Vehicle.Must(id).Onboard = turret

	f.scene.Attach(n)
	return id
}

func (f *Factory) Collector() ecs.EntityID {
	id := f.create(component.KindCollector, component.KindMesh, component.KindCollider)
	n := f.mesh(id, scene.StyleOrange, 1)
	f.collider(id, 1)
	f.scene.Attach(n)
	return id
}

// Build creates the structure named by kind.
func (f *Factory) Build(kind string) (ecs.EntityID, error) {
	switch kind {
	case BuildMine:
		return f.Mine(), nil
	case BuildTurret:
		return f.Turret(true, 0), nil
	case BuildVehicle:
		return f.TurretVehicle(), nil
	case BuildCollector:
		return f.Collector(), nil
	}
	return ecs.None, fmt.Errorf("%w: %q", ErrUnknownBuild, kind)
}

// Buildable reports whether Build accepts kind.
func Buildable(kind string) bool {
	switch kind {
	case BuildMine, BuildTurret, BuildVehicle, BuildCollector:
		return true
	}
	return false
}

// PerfGrid fills a 5x4 grid of turret vehicles used for load testing.
func (f *Factory) PerfGrid() []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, 20)
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			id := f.TurretVehicle()
			f.tables.Mesh.Must(id).Node.SetPosition(scene.Vec3{X: float64(i - 2), Z: float64(j + 2)})
			ids = append(ids, id)
		}
	}
	return ids
}
