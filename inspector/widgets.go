package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dots/agent"
)

// Widget colors
var (
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
)

// DrawLabel renders a text value. Returns the row height.
func DrawLabel(x, y int32, name, value string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(value, x+90, y, 14, ColorText)
	return 20
}

// DrawHeading renders a compass needle for a heading in degrees, 90 pointing up.
func DrawHeading(x, y int32, name string, degrees float64) int32 {
	size := int32(40)
	centerX := x + 90 + size/2
	centerY := y + size/2

	// Label
	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	// Circle background
	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	// Needle in screen space
	d := agent.Direction(degrees, true)
	needleLen := float64(size/2 - 4)
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: float32(centerX) + float32(needleLen*d.X), Y: float32(centerY) + float32(needleLen*d.Y)},
		2,
		ColorAngleNeedle,
	)

	rl.DrawText(fmt.Sprintf("%.0f", degrees), centerX+size/2+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}
