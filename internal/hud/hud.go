// Package hud carries the values exchanged with the host's HUD and a
// headless implementation for servers, benchmarks and tests.
package hud

import "github.com/lanedefense/sim/internal/scene"

// BuildOption is the structure currently selected in the build menu.
type BuildOption struct {
	Kind     string
	Cost     float64
	Disabled bool
}

// Placement is the preview published every tick. HasCell is false when the
// pointer misses the ground plane.
type Placement struct {
	Valid   bool
	HasCell bool
	X, Z    int
}

// BuildRequest asks the placement system to build Kind at the previewed cell.
type BuildRequest struct {
	Kind string
	Cost float64
}

// Outcome is the end-of-game signal.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Headless is an in-memory HUD. The pointer is unset until SetPointer is called.
type Headless struct {
	power     float64
	placement Placement
	pointer   scene.Vec3
	hasPtr    bool
	selected  BuildOption
}

func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) PublishPower(p float64)       { h.power = p }
func (h *Headless) PublishPlacement(p Placement) { h.placement = p }

func (h *Headless) PointerGroundIntersection() (scene.Vec3, bool) {
	return h.pointer, h.hasPtr
}

func (h *Headless) SelectedBuildOption() BuildOption { return h.selected }

func (h *Headless) SetPointer(p scene.Vec3) {
	h.pointer = p
	h.hasPtr = true
}

func (h *Headless) ClearPointer()           { h.hasPtr = false }
func (h *Headless) Select(opt BuildOption)  { h.selected = opt }
func (h *Headless) Power() float64          { return h.power }
func (h *Headless) LastPlacement() Placement { return h.placement }
