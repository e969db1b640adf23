package renderer

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/clock"
	"github.com/lixenwraith/minetower/grid"
	"github.com/lixenwraith/minetower/hud"
	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/render"
)

const (
	screenW = 120
	screenH = 50
)

func newTestGrid(t *testing.T, mock *clock.MockTimeProvider) *grid.Grid {
	t.Helper()
	g, err := grid.New(grid.Options{
		Width:    screenW,
		Height:   screenH,
		Rows:     3,
		Cols:     2,
		CellSize: 8,
		Multipliers: []decimal.Decimal{
			decimal.RequireFromString("1.2"),
			decimal.RequireFromString("1.5"),
			decimal.RequireFromString("2"),
		},
		Clock: mock,
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newFrame(t *testing.T, g *grid.Grid, now time.Time) (*render.RenderOrchestrator, tcell.SimulationScreen, render.RenderContext) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(screenW, screenH)
	t.Cleanup(screen.Fini)

	o := render.NewRenderOrchestrator(screen)
	o.Register(NewCellRenderer(), render.PriorityGrid)
	o.Register(NewIndicatorRenderer(), render.PriorityIndicator)
	o.Register(NewLabelRenderer(), render.PriorityLabel)
	o.Register(NewForwardRenderer(), render.PriorityEffect)
	o.Register(NewHUDRenderer(), render.PriorityUI)

	ctx := render.RenderContext{
		Now:          now,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		Grid:         g.Snapshot(),
	}
	return o, screen, ctx
}

func cellAt(screen tcell.SimulationScreen, x, y int) (rune, render.RGB, render.RGB) {
	r, _, st, _ := screen.GetContent(x, y)
	fg, bg, _ := st.Decompose()
	return r, rgbOf(fg), rgbOf(bg)
}

func rgbOf(c tcell.Color) render.RGB {
	r, g, b := c.RGB()
	if r < 0 {
		return render.RGB{}
	}
	return render.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

func TestTintedRowsDrawDimmer(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	g := newTestGrid(t, mock)
	g.UpdateTints(0)

	o, screen, ctx := newFrame(t, g, mock.Now())
	o.RenderFrame(ctx)

	active, _ := ctx.Grid.At(0, 0)
	tinted, _ := ctx.Grid.At(2, 0)

	r1, fgActive, _ := cellAt(screen, active.Rect.X, active.Rect.Y)
	r2, fgTinted, _ := cellAt(screen, tinted.Rect.X, tinted.Rect.Y)
	if r1 != parameter.GlyphCornerTL || r2 != parameter.GlyphCornerTL {
		t.Fatalf("Expected cell corners, got %q and %q", r1, r2)
	}
	if fgTinted.Luma() >= fgActive.Luma() {
		t.Errorf("Tinted row luma %d must be below active row luma %d", fgTinted.Luma(), fgActive.Luma())
	}
}

func TestOverlayGlyphs(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	g := newTestGrid(t, mock)
	g.AddGreenFlag(0, 0)
	g.AddBombOverlay(1, 1)
	g.AddMineOverlay(2, 0)
	g.PlayBlast(2, 0)
	g.SetPressed(2, 1, true)

	center := func(cv grid.CellView) (int, int) {
		return cv.Rect.X + cv.Rect.W/2, cv.Rect.Y + cv.Rect.H/2
	}

	o, screen, ctx := newFrame(t, g, mock.Now())
	o.RenderFrame(ctx)

	cases := []struct {
		row, col int
		want     rune
	}{
		{0, 0, parameter.GlyphFlag},
		{1, 1, parameter.GlyphBomb},
		{2, 0, parameter.BlastFrames[0]},
		{2, 1, parameter.GlyphPressed},
	}
	for _, tc := range cases {
		cv, _ := ctx.Grid.At(tc.row, tc.col)
		x, y := center(cv)
		if r, _, _ := cellAt(screen, x, y); r != tc.want {
			t.Errorf("Cell (%d,%d): expected %q, got %q", tc.row, tc.col, tc.want, r)
		}
	}

	// Blast settles into the mine glyph
	ctx.Now = mock.Now().Add(parameter.BlastDuration)
	o.RenderFrame(ctx)
	cv, _ := ctx.Grid.At(2, 0)
	x, y := center(cv)
	if r, _, _ := cellAt(screen, x, y); r != parameter.GlyphMine {
		t.Errorf("Expected mine after blast, got %q", r)
	}
}

func TestIndicatorsOnlyWhenVisible(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	g := newTestGrid(t, mock)
	g.ShowRowIndicators(2)

	c0, _ := g.Snapshot().At(2, 0)
	g.SetHover(c0.Rect.X+1, c0.Rect.Y+1)

	o, screen, ctx := newFrame(t, g, mock.Now())
	o.RenderFrame(ctx)

	for col, want := range []rune{parameter.GlyphHover, parameter.GlyphTarget} {
		cv, _ := ctx.Grid.At(2, col)
		if r, _, _ := cellAt(screen, cv.Rect.X+cv.Rect.W/2, cv.Rect.Y+cv.Rect.H/2); r != want {
			t.Errorf("Col %d: expected %q, got %q", col, want, r)
		}
	}
	cv, _ := ctx.Grid.At(0, 0)
	if r, _, _ := cellAt(screen, cv.Rect.X+cv.Rect.W/2, cv.Rect.Y+cv.Rect.H/2); r != ' ' {
		t.Errorf("Hidden indicator drawn: %q", r)
	}
}

func TestLabelsAndHUD(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	g := newTestGrid(t, mock)

	buttons := hud.NewButtons(mock)
	buttons.Layout(screenW, screenH)

	o, screen, ctx := newFrame(t, g, mock.Now())
	ctx.Started = true
	ctx.CurrentRow = 1
	ctx.Buttons = buttons.Views()
	ctx.Status = "Pick a cell"
	ctx.Tone = hud.ToneGood
	o.RenderFrame(ctx)

	for _, l := range ctx.Grid.Labels {
		r, fg, _ := cellAt(screen, l.Pos.X, l.Pos.Y)
		if r != 'x' {
			t.Errorf("Row %d: expected label prefix, got %q", l.Row, r)
		}
		if l.Row == 1 && fg != render.RgbLabelActive {
			t.Errorf("Active row label color %v", fg)
		}
		if l.Row == 2 && fg.Luma() >= render.RgbLabel.Luma() {
			t.Error("Passed row label must be dimmed")
		}
	}

	start := ctx.Buttons[0]
	if r, _, bg := cellAt(screen, start.Rect.X, start.Rect.Y); r != '[' || bg != render.RgbButtonStart {
		t.Errorf("Expected start button, got %q bg=%v", r, bg)
	}

	statusY := screenH - parameter.StatusLineOffset
	x := (screenW - len(ctx.Status)) / 2
	if r, fg, _ := cellAt(screen, x, statusY); r != 'P' || fg != render.RgbStatusGood {
		t.Errorf("Expected status text, got %q fg=%v", r, fg)
	}
}

func TestForwardSweepOnlyWhileForwarding(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	g := newTestGrid(t, mock)

	o, screen, ctx := newFrame(t, g, mock.Now())
	ctx.Started = true
	ctx.CurrentRow = 1
	o.RenderFrame(ctx)

	from, _ := ctx.Grid.At(2, 0)
	x, y := from.Rect.X+from.Rect.W/2, from.Rect.Y+from.Rect.H/2
	if r, _, _ := cellAt(screen, x, y); r == parameter.GlyphSweep {
		t.Fatal("Sweep drawn without forward movement")
	}

	ctx.Forwarding = true
	ctx.Forward = 0
	o.RenderFrame(ctx)
	if r, _, _ := cellAt(screen, x, y); r != parameter.GlyphSweep {
		t.Errorf("Expected sweep at the cleared row, got %q", r)
	}
}

func TestRenderAfterDestroy(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	g := newTestGrid(t, mock)
	g.ShowRowIndicators(2)
	g.Destroy()

	o, _, ctx := newFrame(t, g, mock.Now())
	ctx.Started = true
	ctx.CurrentRow = 1
	ctx.Forwarding = true
	ctx.Forward = 0.5
	o.RenderFrame(ctx)
}

func TestBlastFrameProgression(t *testing.T) {
	first, _, _ := BlastFrame(0)
	last, _, _ := BlastFrame(parameter.BlastDuration)
	if first != parameter.BlastFrames[0] || last != parameter.BlastFrames[len(parameter.BlastFrames)-1] {
		t.Errorf("Unexpected blast frames %q..%q", first, last)
	}
}
