package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/clock"
	"github.com/lixenwraith/minetower/config"
	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/hud"
	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/remote"
	"github.com/lixenwraith/minetower/status"
)

type fakeRemote struct {
	mu       sync.Mutex
	observer remote.Observer

	startResp  remote.Response
	startErr   error
	mines      map[core.Pos]bool
	revealed   core.RevealedMatrix
	reward     decimal.Decimal
	collectErr error
	// hold parks ResolveCell until closed
	hold chan struct{}

	resolves   int
	endReasons []string
}

func (f *fakeRemote) SetObserver(fn remote.Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observer = fn
}

func (f *fakeRemote) notify(op remote.Op, resp remote.Response) {
	f.mu.Lock()
	fn := f.observer
	f.mu.Unlock()
	if fn != nil {
		fn(op, resp)
	}
}

func (f *fakeRemote) StartRound(ctx context.Context, bet decimal.Decimal, rows, cols int) (remote.Response, error) {
	if f.startErr != nil {
		return remote.Response{}, f.startErr
	}
	resp := f.startResp
	resp.OK = true
	f.notify(remote.OpStart, resp)
	return resp, nil
}

func (f *fakeRemote) ResolveCell(ctx context.Context, row, col int) (core.Outcome, error) {
	f.mu.Lock()
	f.resolves++
	hit := f.mines[core.Pos{Row: row, Col: col}]
	reward := f.reward
	hold := f.hold
	f.mu.Unlock()

	if hold != nil {
		<-hold
	}

	resp := remote.Response{OK: true, HitMine: hit, Revealed: f.revealed, Reward: &reward}
	f.notify(remote.OpResolve, resp)
	return core.Outcome{HitMine: hit, Response: resp}, nil
}

func (f *fakeRemote) EndRound(ctx context.Context, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endReasons = append(f.endReasons, reason)
	return nil
}

func (f *fakeRemote) Collect(ctx context.Context) (remote.Response, error) {
	if f.collectErr != nil {
		return remote.Response{}, f.collectErr
	}
	reward := f.reward
	resp := remote.Response{OK: true, Reward: &reward}
	f.notify(remote.OpCollect, resp)
	return resp, nil
}

func (f *fakeRemote) resolveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolves
}

type fakeAudio struct {
	mu     sync.Mutex
	muted  bool
	played []core.SoundType
}

func (f *fakeAudio) Play(s core.SoundType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, s)
}

func (f *fakeAudio) ToggleMute() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = !f.muted
	return f.muted
}

func (f *fakeAudio) IsMuted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

type harness struct {
	app    *App
	screen tcell.SimulationScreen
	remote *fakeRemote
	audio  *fakeAudio
	clock  *clock.MockTimeProvider
}

func mults(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

// newHarness builds a 3x2 game on a 120x50 simulation screen
func newHarness(t *testing.T) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Simulation screen init failed: %v", err)
	}
	screen.SetSize(120, 50)
	t.Cleanup(screen.Fini)

	revealed, err := core.ParseRevealed([][]string{
		{"SAFE", "MINE"},
		{"SAFE", "HIDDEN"},
		{"MINE", "SAFE"},
	})
	if err != nil {
		t.Fatal(err)
	}

	h := &harness{
		screen: screen,
		remote: &fakeRemote{
			startResp: remote.Response{Multipliers: mults("1.45", "2.11", "3.07")},
			mines:     map[core.Pos]bool{},
			revealed:  revealed,
			reward:    decimal.RequireFromString("1.45"),
		},
		audio: &fakeAudio{},
		clock: clock.NewMockTimeProvider(time.Unix(0, 0)),
	}
	h.app, err = New(Options{
		Screen: screen,
		Remote: h.remote,
		Audio:  h.audio,
		Grid: config.GridConfig{
			Rows:     3,
			Cols:     2,
			CellSize: 6,
			Bet:      decimal.NewFromInt(1),
		},
		Clock: h.clock,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(h.app.Close)
	return h
}

// settle waits for background work, ticking the animator so forward movements end
func (h *harness) settle(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		h.app.Wait()
		close(done)
	}()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("Timed out waiting for background work")
		case <-time.After(5 * time.Millisecond):
			h.app.animator.Update(h.clock.Advance(100 * time.Millisecond))
		}
	}
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	if !h.app.StartRound() {
		t.Fatal("StartRound refused")
	}
	h.settle(t)
}

// press sends a left-button press then release over (row, col)
func (h *harness) press(t *testing.T, row, col int) {
	t.Helper()
	snap := h.app.grid.Snapshot()
	cell, ok := snap.At(row, col)
	if !ok {
		t.Fatalf("No cell at (%d,%d)", row, col)
	}
	x, y := cell.Rect.X+1, cell.Rect.Y+1
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func visibleRows(h *harness) map[int]int {
	out := map[int]int{}
	snap := h.app.grid.Snapshot()
	for _, c := range snap.Cells {
		if c.Indicator.Visible {
			out[c.Pos.Row]++
		}
	}
	return out
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Options{Remote: &fakeRemote{}}); !errors.Is(err, ErrNoScreen) {
		t.Errorf("Expected ErrNoScreen, got %v", err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if _, err := New(Options{Screen: screen}); !errors.Is(err, ErrNoRemote) {
		t.Errorf("Expected ErrNoRemote, got %v", err)
	}
}

func TestStartRoundArmsTopRow(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	if !h.app.session.Started() {
		t.Fatal("Expected started session")
	}
	if got := h.app.session.CurrentRow(); got != 2 {
		t.Errorf("Expected current row 2, got %d", got)
	}
	if rows := visibleRows(h); len(rows) != 1 || rows[2] != 2 {
		t.Errorf("Expected only row 2 indicators visible, got %v", rows)
	}

	snap := h.app.grid.Snapshot()
	if len(snap.Labels) != 3 || snap.Labels[2].Text() != "x3.07" {
		t.Errorf("Expected server multipliers as labels, got %+v", snap.Labels)
	}
	if c, _ := snap.At(2, 0); c.State.Tinted {
		t.Error("Current row must not be tinted")
	}
	if text, _ := h.app.status.Text(); text != parameter.TextPickCell {
		t.Errorf("Unexpected status %q", text)
	}
	if got := h.app.registry.Int(status.KeyRoundsStarted); got != 1 {
		t.Errorf("Expected 1 round started, got %d", got)
	}

	if h.app.StartRound() {
		t.Error("Second start during a round must be refused")
	}
}

func TestStartFailureShowsStatus(t *testing.T) {
	h := newHarness(t)
	h.remote.startErr = errors.New("offline")
	h.start(t)

	if h.app.session.Started() {
		t.Error("Session must stay stopped")
	}
	text, _ := h.app.status.Text()
	if !strings.Contains(text, "offline") {
		t.Errorf("Expected failure in status, got %q", text)
	}
	if len(visibleRows(h)) != 0 {
		t.Error("No indicator may show after a failed start")
	}
}

func TestSafeClickAdvancesRow(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.press(t, 2, 0)
	h.settle(t)

	if got := h.app.session.CurrentRow(); got != 1 {
		t.Fatalf("Expected current row 1, got %d", got)
	}
	if rows := visibleRows(h); len(rows) != 1 || rows[1] != 2 {
		t.Errorf("Expected row 1 indicators after forward movement, got %v", rows)
	}
	if !h.app.gate.Enabled() {
		t.Error("Gate must be enabled after animations complete")
	}
	if got := h.app.registry.Int(status.KeyResultPrefix + "advanced"); got != 1 {
		t.Errorf("Expected one advanced result, got %d", got)
	}
	if h.app.phase.InFlight() {
		t.Error("No animation may remain in flight")
	}
}

func TestMineHitEndsRound(t *testing.T) {
	h := newHarness(t)
	h.remote.mines[core.Pos{Row: 2, Col: 1}] = true
	h.start(t)

	h.press(t, 2, 1)
	h.settle(t)

	if h.app.session.Started() {
		t.Error("Mine hit must stop the round")
	}
	if got := h.app.registry.Int(status.KeyRoundsLost); got != 1 {
		t.Errorf("Expected one lost round, got %d", got)
	}
	if len(h.remote.endReasons) != 1 || h.remote.endReasons[0] != core.ReasonMineHit {
		t.Errorf("Expected mine_hit round end, got %v", h.remote.endReasons)
	}
	snap := h.app.grid.Snapshot()
	if c, _ := snap.At(2, 1); !c.State.Mine {
		t.Error("Expected mine overlay on the clicked cell")
	}
}

func TestClosedGateIgnoresTaps(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.app.gate.DisableContainer()
	h.press(t, 2, 0)
	h.settle(t)

	if n := h.remote.resolveCount(); n != 0 {
		t.Errorf("Expected no resolve with a closed gate, got %d", n)
	}
}

func TestClickOnHiddenRowIgnored(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.press(t, 0, 0)
	h.settle(t)

	if n := h.remote.resolveCount(); n != 0 {
		t.Errorf("Expected no resolve for a hidden row, got %d", n)
	}
}

func TestCollect(t *testing.T) {
	h := newHarness(t)
	if h.app.Collect() {
		t.Error("Collect without a round must be refused")
	}

	h.start(t)
	h.press(t, 2, 0)
	h.settle(t)

	if !h.app.Collect() {
		t.Fatal("Collect refused")
	}
	h.settle(t)

	if h.app.session.Started() {
		t.Error("Collect must stop the round")
	}
	text, tone := h.app.status.Text()
	if !strings.Contains(text, "1.45") || tone != hud.ToneGood {
		t.Errorf("Expected collected status with reward, got %q", text)
	}
	if got := h.app.registry.Int(status.KeyCollects); got != 1 {
		t.Errorf("Expected one collect, got %d", got)
	}
	for _, c := range h.app.grid.Snapshot().Cells {
		if c.State.Tinted || c.Indicator.Visible {
			t.Fatalf("Cell %v not cleared after collect", c.Pos)
		}
	}
	if len(h.audio.played) == 0 || h.audio.played[len(h.audio.played)-1] != core.SoundGameComplete {
		t.Errorf("Expected completion sound on collect, got %v", h.audio.played)
	}
}

func TestCollectRefusedWhileClickLaunched(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	hold := make(chan struct{})
	h.remote.mu.Lock()
	h.remote.hold = hold
	h.remote.mu.Unlock()

	h.press(t, 2, 0)
	if h.app.Collect() {
		t.Error("Collect must be refused once a click is launched")
	}
	if h.app.StartRound() {
		t.Error("Start must be refused once a click is launched")
	}
	close(hold)
	h.settle(t)

	if got := h.app.session.CurrentRow(); got != 1 {
		t.Fatalf("Expected the click to advance to row 1, got %d", got)
	}
	if !h.app.Collect() {
		t.Error("Collect must be accepted after the click completes")
	}
	h.settle(t)
	if h.app.session.Started() {
		t.Error("Expected round collected")
	}
}

func TestCollectFailureKeepsRound(t *testing.T) {
	h := newHarness(t)
	h.remote.collectErr = errors.New("declined")
	h.start(t)

	if !h.app.Collect() {
		t.Fatal("Collect refused")
	}
	h.settle(t)

	if !h.app.session.Started() {
		t.Error("Failed collect must keep the round")
	}
	if !h.app.gate.Enabled() {
		t.Error("Failed collect must re-open the gate")
	}
}

func TestKeys(t *testing.T) {
	h := newHarness(t)

	key := func(r rune) bool {
		return h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	if !key('m') || !h.audio.IsMuted() {
		t.Error("m must toggle mute on")
	}
	if !h.app.registry.Bools.Get(status.KeyAudioMuted).Load() {
		t.Error("Mute state must be recorded")
	}
	if !key('s') {
		t.Error("s must not quit")
	}
	h.settle(t)
	if !h.app.session.Started() {
		t.Error("s must start a round")
	}

	if key('q') {
		t.Error("q must quit")
	}
	if h.app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc must quit")
	}
	if h.app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)) {
		t.Error("Ctrl-C must quit")
	}
}

func TestResizeRelayout(t *testing.T) {
	h := newHarness(t)

	h.screen.SetSize(160, 60)
	h.app.HandleEvent(tcell.NewEventResize(160, 60))

	for _, b := range h.app.buttons.Views() {
		if b.Rect.Y != 60-parameter.ButtonRowOffset {
			t.Errorf("Button %v at y=%d after resize", b.ID, b.Rect.Y)
		}
	}
	if got := h.app.grid.CellSize(); got != 6 {
		t.Errorf("Configured cell size must survive resize, got %v", got)
	}
}

func TestFrameDrawsTitle(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.app.Frame()

	w, _ := h.screen.Size()
	var line strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := h.screen.GetContent(x, 0)
		line.WriteRune(r)
	}
	if !strings.Contains(line.String(), strings.TrimSpace(parameter.TitleText)) {
		t.Errorf("Expected title on the first row, got %q", line.String())
	}
}
