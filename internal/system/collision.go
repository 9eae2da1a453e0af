package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/scene"
)

// broadPhaseMin is the collider count from which candidates come from a
// spatial grid instead of the full pair scan.
const broadPhaseMin = 32

// CollisionSystem runs the pairwise bounding-box test over every collider.
// Each entity records at most one partner per tick: a pair is recorded only
// if neither member is already paired, so the first overlapping pair in
// iteration order wins and partners always point at each other. As a
// consequence, when two projectiles hit one enemy in the same tick only the
// first is paired and removed; the second stays in flight and is tested
// again on the next tick.
//
// The Spatial implementation must report disjoint bounds as not
// intersecting; the grid broad phase skips such pairs without asking.
type CollisionSystem struct {
	t       *component.Tables
	spatial scene.Spatial
	grid    *scene.Grid

	ids   []ecs.EntityID
	boxes []scene.Box
	cols  []*component.Collider
	cand  []int
}

func NewCollisionSystem(t *component.Tables, spatial scene.Spatial) *CollisionSystem {
	return &CollisionSystem{t: t, spatial: spatial, grid: scene.NewGrid()}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.ids = s.ids[:0]
	s.boxes = s.boxes[:0]
	s.cols = s.cols[:0]

	s.t.Collider.Each(func(id ecs.EntityID, c *component.Collider) {
		c.Collided = ecs.None
		node := s.t.Mesh.Must(id).Node
		s.ids = append(s.ids, id)
		s.cols = append(s.cols, c)
		s.boxes = append(s.boxes, s.spatial.Bounds(c.Shape, node.WorldPosition()))
	})

	if len(s.ids) >= broadPhaseMin {
		s.pairGrid()
		return
	}
	for i := 0; i < len(s.ids); i++ {
		if s.cols[i].Collided != ecs.None {
			continue
		}
		for j := i + 1; j < len(s.ids); j++ {
			if s.tryPair(i, j) {
				break
			}
		}
	}
}

// pairGrid visits the same pairs in the same order as the full scan, minus
// pairs whose cells are not adjacent.
func (s *CollisionSystem) pairGrid() {
	s.grid.Reset(scene.Span(s.boxes))
	for i, b := range s.boxes {
		s.grid.Add(i, b)
	}
	for i := 0; i < len(s.ids); i++ {
		if s.cols[i].Collided != ecs.None {
			continue
		}
		s.cand = s.grid.Nearby(i, s.cand[:0])
		for _, j := range s.cand {
			if s.tryPair(i, j) {
				break
			}
		}
	}
}

func (s *CollisionSystem) tryPair(i, j int) bool {
	if s.cols[j].Collided != ecs.None {
		return false
	}
	if !s.spatial.Intersects(s.boxes[i], s.boxes[j]) {
		return false
	}
	s.cols[i].Collided = s.ids[j]
	s.cols[j].Collided = s.ids[i]
	return true
}
