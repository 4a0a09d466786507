// Package camera maps between screen pixels and world units.
package camera

// Camera maps a fixed-height world onto the window.
// World Y points up with 0 at the bottom edge; screen Y points down.
// The visible world width follows the window aspect ratio.
type Camera struct {
	// Viewport dimensions (screen size in pixels)
	ViewportW, ViewportH float32

	// World extent; WorldH is always fully visible
	WorldW, WorldH float32
}

// New creates a camera for the given viewport and world size.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{WorldW: worldW, WorldH: worldH, ViewportW: 1, ViewportH: 1}
	c.Resize(viewportW, viewportH)
	return c
}

// Aspect returns viewport width over height.
func (c *Camera) Aspect() float32 {
	return c.ViewportW / c.ViewportH
}

// scale returns world units per pixel along each axis.
func (c *Camera) scale() (sx, sy float32) {
	return c.WorldW / c.ViewportW * c.Aspect(), c.WorldH / c.ViewportH
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	scaleX, scaleY := c.scale()
	return sx * scaleX, c.WorldH - sy*scaleY
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	scaleX, scaleY := c.scale()
	return wx / scaleX, (c.WorldH - wy) / scaleY
}

// PixelsPerUnit returns the screen length of one world unit.
func (c *Camera) PixelsPerUnit() float32 {
	return c.ViewportH / c.WorldH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX && wy+radius >= minY && wy-radius <= maxY
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	maxX, _ = c.ScreenToWorld(c.ViewportW, 0)
	return 0, 0, maxX, c.WorldH
}

// Resize updates viewport dimensions. Non-positive sizes (minimized windows) are ignored.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}
