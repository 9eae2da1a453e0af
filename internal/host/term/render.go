package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/scene"
)

// Visible ground area and its placement on screen. One world unit is
// cellWidth columns across and one row deep.
const (
	viewMinX  = -3.0
	viewMaxX  = 3.0
	viewMinZ  = -13.0
	viewMaxZ  = 7.0
	cellWidth = 3

	boardLeft = 2
	boardTop  = 2

	baseZ = 6
)

var (
	styleDefault = tcell.StyleDefault
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleValid   = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	styleInvalid = tcell.StyleDefault.Background(tcell.ColorDarkRed)
	styleMenuOff = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLoss    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func boardCols() int { return int((viewMaxX - viewMinX) * cellWidth) }
func boardRows() int { return int(viewMaxZ - viewMinZ) }

func worldToScreen(p scene.Vec3) (int, int, bool) {
	if p.X < viewMinX || p.X > viewMaxX || p.Z < viewMinZ || p.Z > viewMaxZ {
		return 0, 0, false
	}
	col := boardLeft + int(math.Floor((p.X-viewMinX)*cellWidth+0.5))
	row := boardTop + int(math.Floor(p.Z-viewMinZ+0.5))
	return col, row, true
}

// screenToWorld projects a terminal cell onto the ground plane (y = 0).
func screenToWorld(col, row int) (scene.Vec3, bool) {
	dc, dr := col-boardLeft, row-boardTop
	if dc < 0 || dc > boardCols() || dr < 0 || dr > boardRows() {
		return scene.Vec3{}, false
	}
	return scene.Vec3{
		X: viewMinX + float64(dc)/cellWidth,
		Z: viewMinZ + float64(dr),
	}, true
}

func glyph(o *scene.Object) (rune, tcell.Style) {
	switch o.Style() {
	case scene.StyleGreen:
		return 'E', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case scene.StyleRed:
		if o.Scale() < 0.5 {
			return '•', tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		return 'M', tcell.StyleDefault.Foreground(tcell.ColorRed)
	case scene.StyleBlue:
		return 'T', tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case scene.StyleYellow:
		return 'V', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case scene.StyleOrange:
		return 'C', tcell.StyleDefault.Foreground(tcell.ColorOrange)
	}
	return '?', styleDefault
}

// Draw renders one frame.
func (h *Host) Draw() {
	h.screen.Clear()

	h.drawText(0, 0, "Power: "+h.formatPower(), styleDefault)
	switch h.outcome {
	case hud.OutcomeWin:
		h.drawText(20, 0, "YOU WIN", styleWin)
	case hud.OutcomeLoss:
		h.drawText(20, 0, "BASE OVERRUN", styleLoss)
	}

	for x := -2; x <= 2; x++ {
		if col, row, ok := worldToScreen(scene.Vec3{X: float64(x), Z: baseZ}); ok {
			h.screen.SetContent(col, row, '=', nil, styleBase)
		}
	}

	if p := h.placement; p.HasCell {
		if col, row, ok := worldToScreen(scene.Vec3{X: float64(p.X), Z: float64(p.Z)}); ok {
			st := styleInvalid
			if p.Valid {
				st = styleValid
			}
			h.screen.SetContent(col, row, ' ', nil, st)
		}
	}

	h.graph.Walk(func(o *scene.Object) {
		// Children ride on their parent's cell.
		if o.Parent() != nil {
			return
		}
		col, row, ok := worldToScreen(o.WorldPosition())
		if !ok {
			return
		}
		r, st := glyph(o)
		if p := h.placement; p.HasCell {
			if pc, pr, _ := worldToScreen(scene.Vec3{X: float64(p.X), Z: float64(p.Z)}); pc == col && pr == row {
				_, bg, _ := styleInvalid.Decompose()
				if p.Valid {
					_, bg, _ = styleValid.Decompose()
				}
				st = st.Background(bg)
			}
		}
		h.screen.SetContent(col, row, r, nil, st)
	})

	h.drawMenu(boardTop + boardRows() + 2)
	h.screen.Show()
}

func (h *Host) drawMenu(row int) {
	col := 0
	for i, e := range h.catalog {
		label := h.printer.Sprintf("[%d] %s %d", i+1, e.Label, int64(e.Cost))
		st := styleDefault
		if e.Cost > h.power {
			st = styleMenuOff
		}
		if i == h.selected {
			st = st.Reverse(true)
		}
		col = h.drawText(col, row, label, st) + 2
	}
}

func (h *Host) drawText(col, row int, s string, st tcell.Style) int {
	for _, r := range s {
		h.screen.SetContent(col, row, r, nil, st)
		col++
	}
	return col
}
