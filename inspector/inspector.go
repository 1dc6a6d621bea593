// Package inspector shows the state of a single selected dot.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/camera"
	"github.com/pthm-cable/dots/game"
)

// Panel dimensions
const (
	PanelWidth   = 220
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSelection   = rl.Color{R: 255, G: 200, B: 100, A: 255}
)

// Inspector manages dot selection and panel rendering.
// The selection is a population index, so it follows the slot across generations.
type Inspector struct {
	cam         *camera.Camera
	hitRadius   float32 // world units
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector that picks dots through cam.
func NewInspector(cam *camera.Camera, hitRadius float32) *Inspector {
	ins := &Inspector{
		cam:       cam,
		hitRadius: hitRadius,
		panelY:    10,
	}
	ins.Layout(int32(cam.ViewportW))
	return ins
}

// Layout anchors the panel to the right edge of the screen.
func (ins *Inspector) Layout(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput selects the dot under a left click.
func (ins *Inspector) HandleInput(snap *game.Snapshot) {
	if snap == nil || !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouse.X) >= closeX && int32(mouse.X) <= closeX+20 &&
			int32(mouse.Y) >= closeY && int32(mouse.Y) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks inside the panel are ignored
		if int32(mouse.X) >= ins.panelX && int32(mouse.X) <= ins.panelX+PanelWidth &&
			int32(mouse.Y) >= ins.panelY && int32(mouse.Y) <= ins.panelY+panelHeight {
			return
		}
	}

	// Keep the hit area usable when zoomed out
	radius := max(ins.hitRadius, 6/ins.cam.Scale())
	wx, wy := ins.cam.ScreenToWorld(mouse.X, mouse.Y)
	if idx, ok := snap.Nearest(float64(wx), float64(wy), float64(radius)); ok {
		ins.selected = idx
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected population index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

const panelHeight = HeaderHeight + PanelPadding*2 + 4*20 + 44

// Draw highlights the selected dot and renders its panel.
func (ins *Inspector) Draw(snap *game.Snapshot) {
	if !ins.hasSelected || snap == nil {
		return
	}
	if ins.selected >= len(snap.Agents) {
		ins.Deselect()
		return
	}
	a := snap.Agents[ins.selected]

	sx, sy := ins.cam.WorldToScreen(float32(a.X), float32(a.Y))
	rl.DrawCircleLines(int32(sx), int32(sy), max(ins.hitRadius*ins.cam.Scale(), 6), ColorSelection)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: panelHeight},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("Dot #%d", ins.selected), ins.panelX+PanelPadding, ins.panelY+8, 16, ColorHeaderText)
	closeX := ins.panelX + PanelWidth - 25
	rl.DrawText("x", closeX+6, ins.panelY+6, 16, ColorCloseBtn)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	y += DrawLabel(x, y, "Status", a.Category.String())
	y += DrawLabel(x, y, "Position", fmt.Sprintf("%.0f, %.0f", a.X, a.Y))
	y += DrawLabel(x, y, "Steps", fmt.Sprintf("%d", a.Steps))
	y += DrawLabel(x, y, "Generation", fmt.Sprintf("%d", snap.Generation))
	DrawHeading(x, y, "Heading", a.Heading)
}
