package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Generation          int
	Dead                int
	Population          int
	ReachedGoal         int
	BestEverReachedGoal int
	MaxFitness          float64
	Elapsed             time.Duration
	FPS                 float64
	HallBestSteps       int // 0 when no path has been recorded
	Paused              bool
	ShowHeadings        bool
}

// Action is a request from the on-screen controls.
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionRestart
	ActionToggleHeadings
)

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    230,
	}
}

// line is one label/value row of the HUD.
type line struct {
	label, value string
}

func (h *HUD) lines(data HUDData) []line {
	out := []line{
		{"Generation", fmt.Sprintf("%d", data.Generation)},
		{"Dead", fmt.Sprintf("%d / %d", data.Dead, data.Population)},
		{"Reached goal", fmt.Sprintf("%d", data.ReachedGoal)},
		{"Best reached", fmt.Sprintf("%d", data.BestEverReachedGoal)},
		{"Max fitness", fmt.Sprintf("%.5f", data.MaxFitness)},
		{"Elapsed", data.Elapsed.Truncate(time.Second).String()},
		{"FPS", fmt.Sprintf("%.0f", data.FPS)},
	}
	if data.HallBestSteps > 0 {
		out = append(out, line{"Shortest path", fmt.Sprintf("%d steps", data.HallBestSteps)})
	}
	return out
}

// Draw renders the HUD panel and its buttons. Returns the action requested this frame.
func (h *HUD) Draw(data HUDData) Action {
	r := h.renderer
	th := r.Theme
	rows := h.lines(data)

	// Title, rows, status line, button row
	height := th.Padding*2 + (th.LineHeight+2) + int32(len(rows))*th.LineHeight + th.LineHeight + int32(th.ButtonHeight) + th.Padding
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + th.Padding
	y := r.DrawSectionHeader(x, h.y+th.Padding, "Dots")
	for _, row := range rows {
		y = r.DrawLabelValue(x, y, row.label, row.value)
	}

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, x, y, th.FontSize, th.StatusColor)
	y += th.LineHeight

	return h.drawButtons(float32(x), float32(y+th.Padding/2), data)
}

// drawButtons draws the control row and reports which button was pressed.
func (h *HUD) drawButtons(x, y float32, data HUDData) Action {
	th := h.renderer.Theme
	w, bh := th.ButtonWidth, th.ButtonHeight

	pauseText := "Pause"
	if data.Paused {
		pauseText = "Resume"
	}

	action := ActionNone
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: bh}, pauseText) {
		action = ActionPause
	}
	if gui.Button(rl.Rectangle{X: x + w + 10, Y: y, Width: w, Height: bh}, "Restart") {
		action = ActionRestart
	}
	return action
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText("[Space] restart  [P] pause  [L] headings  [Click] inspect  [Wheel] zoom  [RMB] pan  [R] reset",
		10, screenHeight-25, 14, rl.Gray)
}

// HandleKeys maps keyboard input to an action.
func HandleKeys() Action {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		return ActionRestart
	case rl.IsKeyPressed(rl.KeyP):
		return ActionPause
	case rl.IsKeyPressed(rl.KeyL):
		return ActionToggleHeadings
	}
	return ActionNone
}
