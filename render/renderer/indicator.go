package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/render"
)

// IndicatorRenderer marks clickable cells of the current row
type IndicatorRenderer struct{}

func NewIndicatorRenderer() *IndicatorRenderer {
	return &IndicatorRenderer{}
}

// Render implements SystemRenderer
func (r *IndicatorRenderer) Render(ctx render.RenderContext, buf *render.Buffer) {
	for _, cv := range ctx.Grid.Cells {
		ind := cv.Indicator
		if !ind.Visible {
			continue
		}
		cx, cy := ind.Rect.X+ind.Rect.W/2, ind.Rect.Y+ind.Rect.H/2

		glyph, fg, attrs := parameter.GlyphTarget, render.RgbIndicator, tcell.AttrNone
		if ind.Hovered {
			glyph = parameter.GlyphHover
			fg = render.Scale(render.RgbIndicatorHover, parameter.HoverBoost)
			attrs = tcell.AttrBold
			// Lift the background toward the highlight
			buf.SetBgOnly(cx, cy, render.Max(buf.Get(cx, cy).Bg, render.RgbIndicator, 0.5))
		}
		buf.SetFgOnly(cx, cy, glyph, fg, attrs)
	}
}
