package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minetower/hud"
	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/render"
)

// HUDRenderer draws the title, the buttons, the status line and the audio marker
type HUDRenderer struct{}

func NewHUDRenderer() *HUDRenderer {
	return &HUDRenderer{}
}

// Render implements SystemRenderer
func (r *HUDRenderer) Render(ctx render.RenderContext, buf *render.Buffer) {
	w, h := ctx.ScreenWidth, ctx.ScreenHeight

	title := parameter.TitleText
	buf.DrawText((w-len([]rune(title)))/2, 0, title, render.RgbTitle, render.RgbBackground, tcell.AttrBold)

	audioFg := render.RgbAudioOn
	if ctx.Muted {
		audioFg = render.RgbAudioOff
	}
	buf.DrawText(w-len([]rune(parameter.AudioStr)), 0, parameter.AudioStr, audioFg, render.RgbBackground, tcell.AttrNone)

	for _, b := range ctx.Buttons {
		if !b.Visible {
			continue
		}
		bg := render.RgbButtonStart
		if b.ID == hud.ButtonCollect {
			bg = render.RgbButtonCollect
		}
		buf.DrawText(b.Rect.X, b.Rect.Y, buttonText(b.Label), render.Contrast(bg), bg, tcell.AttrBold)
	}

	fg := render.RgbStatusText
	switch ctx.Tone {
	case hud.ToneGood:
		fg = render.RgbStatusGood
	case hud.ToneBad:
		fg = render.RgbStatusBad
	}
	status := []rune(ctx.Status)
	if len(status) > w {
		status = status[:w]
	}
	buf.DrawText((w-len(status))/2, h-parameter.StatusLineOffset, string(status), fg, render.RgbBackground, tcell.AttrNone)
}

// buttonText pads and brackets a label: "[ START ]"
func buttonText(label string) string {
	pad := ""
	for i := 0; i < parameter.ButtonPadding; i++ {
		pad += " "
	}
	return "[" + pad + label + pad + "]"
}
