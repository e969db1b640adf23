package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Simulation screen init failed: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// rgbOf converts a tcell color back to RGB; non-RGB colors map to black
func rgbOf(c tcell.Color) RGB {
	r, g, b := c.RGB()
	if r < 0 {
		return RGB{}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

type markRenderer struct {
	r     rune
	x     int
	order *[]rune
	shown bool
}

func (m *markRenderer) Render(ctx RenderContext, buf *Buffer) {
	*m.order = append(*m.order, m.r)
	buf.SetWithBg(m.x, 0, m.r, RgbWhite, RgbBlack)
}

func (m *markRenderer) IsVisible() bool { return m.shown }

func TestOrchestratorPriorityOrder(t *testing.T) {
	screen := newSimScreen(t, 10, 2)
	o := NewRenderOrchestrator(screen)

	var order []rune
	o.Register(&markRenderer{r: 'c', x: 0, order: &order, shown: true}, PriorityUI)
	o.Register(&markRenderer{r: 'a', x: 0, order: &order, shown: true}, PriorityGrid)
	o.Register(&markRenderer{r: 'b', x: 1, order: &order, shown: true}, PriorityGrid)
	o.Register(&markRenderer{r: 'x', x: 2, order: &order, shown: false}, PriorityBackground)

	o.RenderFrame(RenderContext{ScreenWidth: 10, ScreenHeight: 2})

	if string(order) != "abc" {
		t.Errorf("Expected render order abc, got %q", string(order))
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != 'c' {
		t.Errorf("Higher priority must draw last, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(2, 0); r == 'x' {
		t.Error("Hidden renderer must be skipped")
	}
}

func TestFlushDefaultsUntouchedBackground(t *testing.T) {
	screen := newSimScreen(t, 4, 1)
	buf := NewBuffer(4, 1)
	buf.SetWithBg(0, 0, 'A', RgbWhite, RgbMine)
	buf.SetFgOnly(1, 0, 'B', RgbWhite, tcell.AttrBold)
	buf.FlushToScreen(screen)

	_, _, st, _ := screen.GetContent(0, 0)
	if _, bg, _ := st.Decompose(); rgbOf(bg) != RgbMine {
		t.Errorf("Expected explicit background, got %v", rgbOf(bg))
	}
	r, _, st, _ := screen.GetContent(1, 0)
	_, bg, attrs := st.Decompose()
	if r != 'B' || rgbOf(bg) != RgbBackground || attrs&tcell.AttrBold == 0 {
		t.Errorf("Unexpected fg-only cell %q bg=%v attrs=%v", r, rgbOf(bg), attrs)
	}
}

func TestBufferBoundsAndResize(t *testing.T) {
	buf := NewBuffer(3, 2)
	buf.SetWithBg(-1, 0, 'x', RgbWhite, RgbBlack)
	buf.SetWithBg(3, 1, 'x', RgbWhite, RgbBlack)
	buf.DrawText(1, 1, "abc", RgbWhite, RgbBlack, tcell.AttrNone)

	if got := buf.Get(2, 1).Rune; got != 'b' {
		t.Errorf("Expected clipped text, got %q", got)
	}

	buf.Resize(5, 5)
	if w, h := buf.Bounds(); w != 5 || h != 5 {
		t.Errorf("Unexpected bounds %dx%d", w, h)
	}
	if got := buf.Get(2, 1).Rune; got != ' ' {
		t.Errorf("Resize must clear, got %q", got)
	}
}

func TestScaleRectDims(t *testing.T) {
	buf := NewBuffer(2, 1)
	buf.SetWithBg(0, 0, '#', RgbCellBorder, RgbCellFill)
	buf.SetWithBg(1, 0, '#', RgbCellBorder, RgbCellFill)
	buf.ScaleRect(1, 0, 1, 1, 0.5)

	if buf.Get(1, 0).Fg.Luma() >= buf.Get(0, 0).Fg.Luma() {
		t.Error("Scaled cell must be dimmer")
	}
}

func TestColorOps(t *testing.T) {
	a, b := RGB{0, 0, 0}, RGB{200, 100, 50}
	if got := Lerp(a, b, 0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Lerp midpoint %v", got)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Full alpha must return src, got %v", got)
	}
	if got := Scale(b, 2); got.R != 255 || got.G != 200 {
		t.Errorf("Scale must clamp, got %v", got)
	}
	if got := Add(b, b, 1); got.R != 255 || got.B != 100 {
		t.Errorf("Add must clamp, got %v", got)
	}
	if got := Max(a, b, 1); got != b {
		t.Errorf("Max %v", got)
	}
	if got := rgbOf(b.Color()); got != b {
		t.Errorf("Round trip through tcell color %v", got)
	}
	if Contrast(RgbButtonStart) != RgbBlack || Contrast(RgbBackground) != RgbWhite {
		t.Error("Contrast must pick dark text on light backgrounds and light text on dark ones")
	}
}
