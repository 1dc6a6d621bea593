// Package renderer draws simulation snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dots/agent"
	"github.com/pthm-cable/dots/camera"
	"github.com/pthm-cable/dots/game"
)

// Palette holds the colors used for the world view.
type Palette struct {
	Background rl.Color
	Border     rl.Color
	Goal       rl.Color
	Alive      rl.Color
	Dead       rl.Color
	Reached    rl.Color
	Best       rl.Color
	Heading    rl.Color
}

// DefaultPalette draws white dots on black with a red goal.
func DefaultPalette() Palette {
	return Palette{
		Background: rl.Black,
		Border:     rl.Color{R: 40, G: 40, B: 40, A: 255},
		Goal:       rl.Red,
		Alive:      rl.White,
		Dead:       rl.Gray,
		Reached:    rl.Green,
		Best:       rl.Blue,
		Heading:    rl.Color{R: 120, G: 120, B: 120, A: 160},
	}
}

// CategoryColor returns the dot color for an agent category.
func (p Palette) CategoryColor(c agent.Category) rl.Color {
	switch c {
	case agent.CategoryBest:
		return p.Best
	case agent.CategoryReachedGoal:
		return p.Reached
	case agent.CategoryDead:
		return p.Dead
	}
	return p.Alive
}

// Viewer draws snapshots of the population.
type Viewer struct {
	cam       *camera.Camera
	palette   Palette
	dotRadius float32

	// ShowHeadings draws a short line along each living agent's heading.
	ShowHeadings bool
}

// NewViewer creates a viewer that draws through cam.
func NewViewer(cam *camera.Camera, dotRadius float32) *Viewer {
	return &Viewer{
		cam:       cam,
		palette:   DefaultPalette(),
		dotRadius: dotRadius,
	}
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *camera.Camera { return v.cam }

// Draw renders a snapshot. Call between rl.BeginDrawing and rl.EndDrawing.
func (v *Viewer) Draw(snap *game.Snapshot) {
	rl.ClearBackground(v.palette.Background)
	if snap == nil {
		return
	}

	v.drawBorder(snap.World)
	v.drawGoal(snap.Goal)

	scale := v.cam.Scale()
	radius := max(v.dotRadius*scale, 1)

	// Best last so it stays on top
	bestIdx := -1
	for i, a := range snap.Agents {
		if a.Category == agent.CategoryBest {
			bestIdx = i
			continue
		}
		v.drawAgent(a, radius)
	}
	if bestIdx >= 0 {
		v.drawAgent(snap.Agents[bestIdx], radius*1.5)
	}
}

func (v *Viewer) drawBorder(world r2.Vec) {
	x0, y0 := v.cam.WorldToScreen(0, 0)
	x1, y1 := v.cam.WorldToScreen(float32(world.X), float32(world.Y))
	rl.DrawRectangleLines(int32(min(x0, x1)), int32(min(y0, y1)),
		int32(abs(x1-x0)), int32(abs(y1-y0)), v.palette.Border)
}

// drawGoal draws the arrival region, which has half the configured radius.
func (v *Viewer) drawGoal(g agent.Goal) {
	sx, sy := v.cam.WorldToScreen(float32(g.Center.X), float32(g.Center.Y))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, float32(g.Radius/2)*v.cam.Scale(), v.palette.Goal)
}

func (v *Viewer) drawAgent(a game.AgentView, radius float32) {
	sx, sy := v.cam.WorldToScreen(float32(a.X), float32(a.Y))
	pos := rl.Vector2{X: sx, Y: sy}

	if v.ShowHeadings && a.Category == agent.CategoryAlive {
		d := agent.Direction(a.Heading, v.cam.YDown)
		tip := r2.Add(r2.Vec{X: a.X, Y: a.Y}, r2.Scale(float64(3*v.dotRadius), d))
		ex, ey := v.cam.WorldToScreen(float32(tip.X), float32(tip.Y))
		rl.DrawLineV(pos, rl.Vector2{X: ex, Y: ey}, v.palette.Heading)
	}

	rl.DrawCircleV(pos, radius, v.palette.CategoryColor(a.Category))
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
