// Package camera maps the bounded simulation world onto the window.
package camera

// Camera controls the viewport into the simulation world.
// The world is fitted into the viewport and can be zoomed and panned inside it.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom is relative to the fitted scale (1.0 = whole world visible)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions
	WorldW, WorldH float32

	// YDown is true when world y grows downward like screen y.
	// Otherwise the camera flips the y axis.
	YDown bool

	// Zoom constraints
	MinZoom, MaxZoom float32

	fit float32 // world units to pixels at Zoom 1
}

// New creates a camera that shows the whole world centered in the viewport.
func New(viewportW, viewportH, worldW, worldH float32, yDown bool) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		YDown:     yDown,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
	c.refit()
	return c
}

// refit recomputes the scale that fits the whole world into the viewport.
func (c *Camera) refit() {
	c.fit = min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// Scale returns pixels per world unit at the current zoom.
func (c *Camera) Scale() float32 {
	return c.fit * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	dx := (wx - c.X) * s
	dy := (wy - c.Y) * s
	if !c.YDown {
		dy = -dy
	}
	return c.ViewportW/2 + dx, c.ViewportH/2 + dy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	dx := (sx - c.ViewportW/2) / s
	dy := (sy - c.ViewportH/2) / s
	if !c.YDown {
		dy = -dy
	}
	return c.X + dx, c.Y + dy
}

// Resize updates viewport dimensions and refits the world.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.refit()
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays inside the world.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	if !c.YDown {
		dy = -dy
	}
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// clampCenter keeps the visible area inside the world where possible.
func (c *Camera) clampCenter() {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	c.X = clampAxis(c.X, halfW, c.WorldW)
	c.Y = clampAxis(c.Y, halfH, c.WorldH)
}

// clampAxis clamps a center coordinate so [v-half, v+half] stays in [0, size].
// If the view is wider than the world the center is fixed mid-world.
func clampAxis(v, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(v, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
