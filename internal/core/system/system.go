package system

import "time"

// Phase defines execution ordering within a single tick. Systems sharing a
// phase run in registration order.
type Phase int

const (
	PhaseDispatch  Phase = iota // 0: deliver last tick's events
	PhasePhysics                // 1: forces, then positions
	PhaseCollision              // 2: pairwise overlap
	PhaseResolve                // 3: explosions, cascading removal tags
	PhaseCleanup                // 4: destroy tagged entities
	PhaseEconomy                // 5: power accrual, placement
	PhaseGameplay               // 6: turrets, vehicles, waves
	PhaseOutcome                // 7: win/loss
)

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
