// Package renderer holds the visual layers registered with the render orchestrator.
package renderer

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/grid"
	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/render"
)

// CellRenderer draws cell borders, fills and overlays
type CellRenderer struct{}

func NewCellRenderer() *CellRenderer {
	return &CellRenderer{}
}

// Render draws upper rows last, matching the grid's hit-test order
func (r *CellRenderer) Render(ctx render.RenderContext, buf *render.Buffer) {
	snap := ctx.Grid
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			cv, ok := snap.At(row, col)
			if !ok {
				continue
			}
			r.drawCell(ctx, buf, cv)
		}
	}
}

func (r *CellRenderer) drawCell(ctx render.RenderContext, buf *render.Buffer, cv grid.CellView) {
	rect := cv.Rect
	st := cv.State
	elapsed := ctx.Now.Sub(st.AnimationStart)

	if st.Animation == grid.AnimShake && elapsed < parameter.NamedAnimationDuration {
		if (elapsed/(50*time.Millisecond))%2 == 0 {
			rect.X++
		} else {
			rect.X--
		}
	}

	fill := render.RgbCellFill
	border := render.RgbCellBorder
	switch {
	case st.Mine:
		fill = render.RgbMineBg
		border = render.RgbMine
	case st.Pressed:
		fill = render.RgbCellPressed
	case st.Animated:
		fill = render.Lerp(render.RgbCellFillActive, render.RgbCellPulse, pulse(ctx.Now))
	}
	if st.Animation == grid.AnimPulse && elapsed < parameter.NamedAnimationDuration {
		border = render.Scale(border, parameter.HoverBoost)
	}

	drawBox(buf, rect, border, fill)

	cx, cy := rect.X+rect.W/2, rect.Y+rect.H/2
	if g, fg, ok := overlayGlyph(st, elapsed); ok {
		buf.SetFgOnly(cx, cy, g, fg, tcell.AttrBold)
	} else if st.Pressed {
		buf.SetFgOnly(cx, cy, parameter.GlyphPressed, render.RgbCellPressedGlyph, tcell.AttrNone)
	}

	if st.Tinted {
		buf.ScaleRect(rect.X, rect.Y, rect.W, rect.H, parameter.TintFactor)
	}
}

// overlayGlyph picks the top-most overlay; the blast plays before the mine settles
func overlayGlyph(st grid.CellState, elapsed time.Duration) (rune, render.RGB, bool) {
	switch {
	case st.Blasted && st.Animation == grid.AnimBlast && elapsed < parameter.BlastDuration:
		return BlastFrame(elapsed)
	case st.Mine:
		return parameter.GlyphMine, render.RgbMine, true
	case st.Bomb:
		return parameter.GlyphBomb, render.RgbBomb, true
	case st.Flag:
		return parameter.GlyphFlag, render.RgbFlag, true
	}
	return 0, render.RGB{}, false
}

// BlastFrame maps elapsed blast time to a glyph cooling from hot to dark
func BlastFrame(elapsed time.Duration) (rune, render.RGB, bool) {
	n := len(parameter.BlastFrames)
	if elapsed < 0 {
		elapsed = 0
	}
	t := float64(elapsed) / float64(parameter.BlastDuration)
	i := min(int(t*float64(n)), n-1)
	return parameter.BlastFrames[i], render.Lerp(render.RgbBlastHot, render.RgbBlastCool, t), true
}

// pulse returns a [0, 1] shimmer phase for animated backgrounds
func pulse(now time.Time) float64 {
	period := float64(parameter.BackgroundPulsePeriod)
	phase := math.Mod(float64(now.UnixNano()), period) / period
	return 0.5 - 0.5*math.Cos(2*math.Pi*phase)
}

func drawBox(buf *render.Buffer, rect core.Rect, border, fill render.RGB) {
	if rect.W < 2 || rect.H < 2 {
		for y := rect.Y; y < rect.Bottom(); y++ {
			for x := rect.X; x < rect.Right(); x++ {
				buf.SetWithBg(x, y, ' ', border, fill)
			}
		}
		return
	}

	right, bottom := rect.Right()-1, rect.Bottom()-1
	for y := rect.Y; y <= bottom; y++ {
		for x := rect.X; x <= right; x++ {
			var g rune
			switch {
			case x == rect.X && y == rect.Y:
				g = parameter.GlyphCornerTL
			case x == right && y == rect.Y:
				g = parameter.GlyphCornerTR
			case x == rect.X && y == bottom:
				g = parameter.GlyphCornerBL
			case x == right && y == bottom:
				g = parameter.GlyphCornerBR
			case y == rect.Y || y == bottom:
				g = parameter.GlyphBorderH
			case x == rect.X || x == right:
				g = parameter.GlyphBorderV
			default:
				g = ' '
			}
			buf.SetWithBg(x, y, g, border, fill)
		}
	}
}
