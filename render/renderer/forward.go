package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/render"
)

// ForwardRenderer sweeps a highlight from the cleared row to the next one
type ForwardRenderer struct{}

func NewForwardRenderer() *ForwardRenderer {
	return &ForwardRenderer{}
}

// Render implements SystemRenderer
// CurrentRow already points at the destination row while the sweep runs
func (r *ForwardRenderer) Render(ctx render.RenderContext, buf *render.Buffer) {
	if !ctx.Forwarding {
		return
	}
	snap := ctx.Grid
	to := ctx.CurrentRow
	from := to + 1
	if from >= snap.Rows || to < 0 {
		return
	}

	alpha := 1 - ctx.Forward
	for col := 0; col < snap.Cols; col++ {
		src, ok1 := snap.At(from, col)
		dst, ok2 := snap.At(to, col)
		if !ok1 || !ok2 {
			continue
		}

		// Position interpolated between the two cells' centers
		sx, sy := src.Rect.X+src.Rect.W/2, src.Rect.Y+src.Rect.H/2
		dx, dy := dst.Rect.X+dst.Rect.W/2, dst.Rect.Y+dst.Rect.H/2
		x := sx + int(float64(dx-sx)*ctx.Forward)
		y := sy + int(float64(dy-sy)*ctx.Forward)

		buf.SetBgOnly(x, y, render.Add(buf.Get(x, y).Bg, render.RgbSweep, 0.3+0.7*alpha))
		buf.SetFgOnly(x, y, parameter.GlyphSweep, render.RgbSweep, tcell.AttrBold)

		for yy := dst.Rect.Y; yy < dst.Rect.Bottom(); yy++ {
			for xx := dst.Rect.X; xx < dst.Rect.Right(); xx++ {
				buf.BlendBg(xx, yy, render.RgbSweep, 0.25*ctx.Forward)
			}
		}
	}
}
