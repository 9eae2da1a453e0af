package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	coresys "github.com/lanedefense/sim/internal/core/system"
)

// DefaultStartingPower is the power available before any collector runs.
const DefaultStartingPower = 150

// ResourceSystem accrues power from collectors and publishes it to the HUD.
type ResourceSystem struct {
	t     *component.Tables
	hud   HUD
	power float64
}

func NewResourceSystem(t *component.Tables, h HUD, startingPower float64) *ResourceSystem {
	return &ResourceSystem{t: t, hud: h, power: startingPower}
}

func (s *ResourceSystem) Phase() coresys.Phase { return coresys.PhaseEconomy }

func (s *ResourceSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.t.Collector.Each(func(_ ecs.EntityID, c *component.Collector) {
		s.power += c.Rate * sec
	})
	s.hud.PublishPower(s.power)
}

func (s *ResourceSystem) Power() float64 { return s.power }

// Spend deducts cost. Power may go negative; affordability is the HUD's call.
func (s *ResourceSystem) Spend(cost float64) {
	s.power -= cost
}
