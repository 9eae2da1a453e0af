// Package term is a tcell terminal host: it draws the scene graph top-down,
// maps the mouse onto the ground plane and turns clicks into build requests.
package term

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lanedefense/sim/internal/data"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/scene"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	eventQueueSize   = 100
	requestQueueSize = 16
)

// Host implements the gameplay HUD on a terminal screen. All methods except
// Events must be called from the goroutine that runs the tick loop.
type Host struct {
	screen  tcell.Screen
	graph   *scene.Graph
	catalog []data.BuildEntry
	printer *message.Printer
	log     *zap.Logger

	requests chan hud.BuildRequest
	events   chan tcell.Event
	done     chan struct{}
	pollOnce sync.Once
	stopOnce sync.Once

	power     float64
	placement hud.Placement
	pointer   scene.Vec3
	hasPtr    bool
	selected  int // index into catalog, -1 = nothing selected
	buttons   tcell.ButtonMask
	outcome   hud.Outcome
}

// Open creates and initialises the real terminal screen.
func Open(g *scene.Graph, catalog *data.BuildCatalog, log *zap.Logger) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, g, catalog, log)
}

// New initialises screen and wraps it. Tests pass a simulation screen.
func New(screen tcell.Screen, g *scene.Graph, catalog *data.BuildCatalog, log *zap.Logger) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	h := &Host{
		screen:   screen,
		graph:    g,
		printer:  message.NewPrinter(language.English),
		log:      log,
		requests: make(chan hud.BuildRequest, requestQueueSize),
		events:   make(chan tcell.Event, eventQueueSize),
		done:     make(chan struct{}),
		selected: -1,
	}
	if catalog != nil {
		h.catalog = catalog.Entries()
	}
	return h, nil
}

// Requests is the build request stream consumed by the placement system.
func (h *Host) Requests() <-chan hud.BuildRequest { return h.requests }

// Events starts polling the screen on first call and returns the event stream.
func (h *Host) Events() <-chan tcell.Event {
	h.pollOnce.Do(func() {
		go func() {
			for {
				ev := h.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case h.events <- ev:
				case <-h.done:
					return
				}
			}
		}()
	})
	return h.events
}

// Close restores the terminal.
func (h *Host) Close() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.screen.Fini()
	})
}

func (h *Host) PublishPower(p float64)           { h.power = p }
func (h *Host) PublishPlacement(p hud.Placement) { h.placement = p }

func (h *Host) PointerGroundIntersection() (scene.Vec3, bool) {
	return h.pointer, h.hasPtr
}

// SelectedBuildOption reports the highlighted menu entry. An option costing
// more than the current power is disabled; with nothing selected the
// returned option is disabled as well.
func (h *Host) SelectedBuildOption() hud.BuildOption {
	if h.selected < 0 || h.selected >= len(h.catalog) {
		return hud.BuildOption{Disabled: true}
	}
	e := h.catalog[h.selected]
	return hud.BuildOption{Kind: e.Kind, Cost: e.Cost, Disabled: e.Cost > h.power}
}

// ShowOutcome displays the end-of-game banner.
func (h *Host) ShowOutcome(o hud.Outcome) { h.outcome = o }

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	if r == 'q' {
		return false
	}
	if r >= '1' && r <= '9' {
		if i := int(r - '1'); i < len(h.catalog) {
			h.selected = i
		}
		return true
	}
	for i, e := range h.catalog {
		if e.Key != "" && []rune(e.Key)[0] == r {
			h.selected = i
			return true
		}
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	h.pointer, h.hasPtr = screenToWorld(x, y)

	pressed := ev.Buttons()&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0
	h.buttons = ev.Buttons()
	if !pressed || !h.hasPtr {
		return
	}

	opt := h.SelectedBuildOption()
	if opt.Kind == "" || opt.Disabled {
		h.log.Debug("build click ignored", zap.String("kind", opt.Kind))
		return
	}
	select {
	case h.requests <- hud.BuildRequest{Kind: opt.Kind, Cost: opt.Cost}:
	default:
		h.log.Warn("build request dropped, queue full", zap.String("kind", opt.Kind))
	}
}

// formatPower renders power as a grouped whole number ("1,250").
func (h *Host) formatPower() string {
	return h.printer.Sprintf("%d", int64(math.Floor(h.power)))
}
