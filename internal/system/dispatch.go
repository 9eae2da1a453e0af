package system

import (
	"time"

	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
)

// EventDispatchSystem delivers the previous tick's events at tick start.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	if s.bus == nil {
		return
	}
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
