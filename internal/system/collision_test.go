package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/scene"
)

func TestCollisionRecordsBothPartners(t *testing.T) {
	h := newHarness(t)
	a := h.f.Mine()
	b := h.f.Collector()
	c := h.f.Collector()
	h.place(a, 0, 0, 0)
	h.place(b, 0.5, 0, 0)
	h.place(c, 5, 0, 0)

	NewCollisionSystem(h.t, scene.AABB{}).Update(time.Second)

	if got := h.t.Collider.Must(a).Collided; got != b {
		t.Errorf("a collided with %s, want %s", got, b)
	}
	if got := h.t.Collider.Must(b).Collided; got != a {
		t.Errorf("b collided with %s, want %s", got, a)
	}
	if got := h.t.Collider.Must(c).Collided; got != ecs.None {
		t.Errorf("c collided with %s, want none", got)
	}
}

func TestCollisionResetsEachTick(t *testing.T) {
	h := newHarness(t)
	a := h.f.Mine()
	b := h.f.Collector()

	sys := NewCollisionSystem(h.t, scene.AABB{})
	sys.Update(time.Second)
	if h.t.Collider.Must(a).Collided != b {
		t.Fatal("expected initial collision")
	}

	h.place(b, 10, 0, 0)
	sys.Update(time.Second)
	if got := h.t.Collider.Must(a).Collided; got != ecs.None {
		t.Errorf("stale partner %s survived the reset", got)
	}
}

func TestCollisionFirstPairWins(t *testing.T) {
	h := newHarness(t)
	a := h.f.Mine()
	b := h.f.Collector()
	c := h.f.Collector()

	NewCollisionSystem(h.t, scene.AABB{}).Update(time.Second)

	if h.t.Collider.Must(a).Collided != b || h.t.Collider.Must(b).Collided != a {
		t.Error("expected a<->b as the first pair")
	}
	if got := h.t.Collider.Must(c).Collided; got != ecs.None {
		t.Errorf("c paired with %s although both candidates were taken", got)
	}
}

func TestCollisionIsSymmetric(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 40; i++ {
		var id ecs.EntityID
		if i%2 == 0 {
			id = h.f.Collector()
		} else {
			id = h.f.Mine()
		}
		h.place(id, rng.Float64()*6-3, 0, rng.Float64()*6-3)
	}

	NewCollisionSystem(h.t, scene.AABB{}).Update(time.Second)

	pairs := 0
	for _, id := range h.t.Collider.IDs() {
		partner := h.t.Collider.Must(id).Collided
		if partner == ecs.None {
			continue
		}
		pairs++
		if back := h.t.Collider.Must(partner).Collided; back != id {
			t.Errorf("%s -> %s but %s -> %s", id, partner, partner, back)
		}
	}
	if pairs == 0 {
		t.Fatal("fixture produced no collisions")
	}
}

func TestCollisionGridMatchesFullScan(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 3*broadPhaseMin; i++ {
		id := h.f.Collector()
		h.place(id, rng.Float64()*10-5, 0, rng.Float64()*10-5)
	}

	NewCollisionSystem(h.t, scene.AABB{}).Update(time.Second)

	// Reference pairing with the plain quadratic scan.
	ids := h.t.Collider.IDs()
	want := make(map[ecs.EntityID]ecs.EntityID, len(ids))
	box := func(id ecs.EntityID) scene.Box {
		return h.t.Collider.Must(id).Shape.Translate(h.t.Mesh.Must(id).Node.WorldPosition())
	}
	for i, a := range ids {
		if _, ok := want[a]; ok {
			continue
		}
		for _, b := range ids[i+1:] {
			if _, ok := want[b]; ok {
				continue
			}
			if box(a).Intersects(box(b)) {
				want[a], want[b] = b, a
				break
			}
		}
	}

	if len(want) == 0 {
		t.Fatal("fixture produced no collisions")
	}
	for _, id := range ids {
		if got := h.t.Collider.Must(id).Collided; got != want[id] {
			t.Errorf("%s paired with %s, full scan says %s", id, got, want[id])
		}
	}
}
