package play

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/session"
)

// recorder collects an ordered call log shared by every fake
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// index returns the position of the first matching call, -1 when absent
func (r *recorder) index(call string) int {
	for i, c := range r.log() {
		if c == call {
			return i
		}
	}
	return -1
}

func (r *recorder) has(call string) bool {
	return r.index(call) >= 0
}

type fakeBoard struct{ rec *recorder }

func (b *fakeBoard) SetRowPressed(row int, pressed bool) {
	b.rec.add("board.SetRowPressed(%d,%v)", row, pressed)
}
func (b *fakeBoard) SetRowBackground(row int, animated bool) {
	b.rec.add("board.SetRowBackground(%d,%v)", row, animated)
}
func (b *fakeBoard) ShowRowIndicators(row int) { b.rec.add("board.ShowRowIndicators(%d)", row) }
func (b *fakeBoard) HideIndicator(row, col int) {
	b.rec.add("board.HideIndicator(%d,%d)", row, col)
}
func (b *fakeBoard) PlayBlast(row, col int) { b.rec.add("board.PlayBlast(%d,%d)", row, col) }
func (b *fakeBoard) AddMineOverlay(row, col int) {
	b.rec.add("board.AddMineOverlay(%d,%d)", row, col)
}
func (b *fakeBoard) AddBombOverlay(row, col int) {
	b.rec.add("board.AddBombOverlay(%d,%d)", row, col)
}
func (b *fakeBoard) AddGreenFlag(row, col int) {
	b.rec.add("board.AddGreenFlag(%d,%d)", row, col)
}
func (b *fakeBoard) UpdateTints(currentRow int) { b.rec.add("board.UpdateTints(%d)", currentRow) }

// trackedSession records writes on top of the real session
type trackedSession struct {
	*session.Session
	rec *recorder
}

func (s *trackedSession) SetCurrentRow(row int) {
	s.rec.add("session.SetCurrentRow(%d)", row)
	s.Session.SetCurrentRow(row)
}

func (s *trackedSession) Reset() {
	s.rec.add("session.Reset")
	s.Session.Reset()
}

type fakeAdjudicator struct {
	rec      *recorder
	outcome  core.Outcome
	err      error
	endErr   error
	onsolve  func()
	reasons  []string
	resolved int
}

func (a *fakeAdjudicator) ResolveCell(_ context.Context, row, col int) (core.Outcome, error) {
	a.rec.add("remote.ResolveCell(%d,%d)", row, col)
	a.resolved++
	if a.onsolve != nil {
		a.onsolve()
	}
	return a.outcome, a.err
}

func (a *fakeAdjudicator) EndRound(_ context.Context, reason string) error {
	a.rec.add("remote.EndRound(%s)", reason)
	a.reasons = append(a.reasons, reason)
	return a.endErr
}

// fakeHost hands out a forward-movement handle the test closes
type fakeHost struct {
	rec     *recorder
	forward chan struct{}
	started chan struct{}
}

func (h *fakeHost) MarkAnimationsStarting() { h.rec.add("host.MarkAnimationsStarting") }
func (h *fakeHost) MarkAnimationsComplete() { h.rec.add("host.MarkAnimationsComplete") }
func (h *fakeHost) ForwardMovement(context.Context) <-chan struct{} {
	h.rec.add("host.ForwardMovement")
	if h.started != nil {
		close(h.started)
	}
	if h.forward == nil {
		return nil
	}
	return h.forward
}

type fakeGate struct{ rec *recorder }

func (g *fakeGate) DisableContainer() { g.rec.add("gate.DisableContainer") }

type fakeSound struct{ rec *recorder }

func (s *fakeSound) Play(t core.SoundType) { s.rec.add("sound.Play(%s)", t) }

type fakeStatus struct {
	rec    *recorder
	reward decimal.Decimal
}

func (s *fakeStatus) PressStart() { s.rec.add("status.PressStart") }
func (s *fakeStatus) CanWin(r decimal.Decimal) {
	s.rec.add("status.CanWin(%s)", r.StringFixed(2))
}
func (s *fakeStatus) YouWin(r decimal.Decimal) {
	s.reward = r
	s.rec.add("status.YouWin(%s)", r.StringFixed(2))
}

type fakeActivity struct {
	mu     sync.Mutex
	clicks []core.Pos
}

func (a *fakeActivity) RecordClick(row, col int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clicks = append(a.clicks, core.Pos{Row: row, Col: col})
}

type fakeButtons struct{ rec *recorder }

func (b *fakeButtons) TemporarilyHideButtons(d time.Duration) {
	b.rec.add("buttons.TemporarilyHideButtons(%s)", d)
}
