// Package render composites the grid, its indicators and the HUD into a buffer
// and flushes it to a tcell screen once per frame.
package render

// SystemRenderer is implemented by each visual layer
type SystemRenderer interface {
	Render(ctx RenderContext, buf *Buffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
