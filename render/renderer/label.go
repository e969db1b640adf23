package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/render"
)

// LabelRenderer draws row multipliers right of each row
type LabelRenderer struct{}

func NewLabelRenderer() *LabelRenderer {
	return &LabelRenderer{}
}

// Render implements SystemRenderer
func (r *LabelRenderer) Render(ctx render.RenderContext, buf *render.Buffer) {
	for _, l := range ctx.Grid.Labels {
		fg, attrs := render.RgbLabel, tcell.AttrNone
		switch {
		case ctx.IsActiveRow(l.Row):
			fg, attrs = render.RgbLabelActive, tcell.AttrBold
		case ctx.Started && l.Row > ctx.CurrentRow:
			fg = render.Scale(fg, parameter.TintFactor)
		}
		buf.DrawText(l.Pos.X, l.Pos.Y, l.Text(), fg, render.RgbBackground, attrs)
	}
}
