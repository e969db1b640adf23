// Package play orchestrates one cell click from validation to row progression.
//
// A ClickHandler validates the click against the session, locks input, asks the
// adjudicator for the outcome and drives either the mine-hit or the safe-cell
// sequence on the board. Input is re-enabled by the host once it receives the
// animations-complete signal; the handler never does it itself.
package play

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/fsm"
	"github.com/lixenwraith/minetower/parameter"
)

// ClickHandler runs click sequences, one at a time
type ClickHandler struct {
	deps Deps
	log  *zap.Logger

	busy atomic.Bool

	mu    sync.Mutex // guards phase
	phase *fsm.Machine[*sequence]
}

// New validates the capability context and builds a handler
func New(deps Deps) (*ClickHandler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	log := deps.Logger.Named("play")

	phase, err := newPhaseMachine(log)
	if err != nil {
		return nil, fmt.Errorf("phase machine: %w", err)
	}

	return &ClickHandler{
		deps:  deps,
		log:   log,
		phase: phase,
	}, nil
}

// Phase returns the name of the current click phase
func (h *ClickHandler) Phase() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.phase.CurrentName()
}

// Busy reports whether a sequence is running
func (h *ClickHandler) Busy() bool {
	return h.busy.Load()
}

// HandleClick runs one click sequence to completion and returns how it ended
// Blocks on the remote call and on the forward movement; run it off the UI loop
func (h *ClickHandler) HandleClick(ctx context.Context, row, col int) (result Result) {
	h.deps.Activity.RecordClick(row, col)

	if !h.busy.CompareAndSwap(false, true) {
		h.log.Debug("click ignored, sequence in flight", zap.Int("row", row), zap.Int("col", col))
		return ResultRejected
	}
	defer h.busy.Store(false)

	seq := &sequence{row: row, col: col}
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("click sequence panicked",
				zap.Any("panic", r),
				zap.Int("row", row),
				zap.Int("col", col),
				zap.Stack("stack"),
			)
			h.recoverPanic(seq)
			result = ResultRecovered
		}
	}()

	h.fire(seq, evClick)

	if !h.validate(row) {
		h.fire(seq, evReject)
		return ResultRejected
	}

	h.prime(seq)
	h.fire(seq, evAccept)

	outcome, err := h.deps.Adjudicator.ResolveCell(ctx, row, col)
	if err != nil {
		h.fire(seq, evFail)
		h.log.Warn("cell resolution failed",
			zap.Error(err),
			zap.Int("row", row),
			zap.Int("col", col),
		)
		h.deps.Board.SetRowPressed(row, false)
		h.deps.Board.SetRowBackground(row, true)
		h.deps.Host.MarkAnimationsComplete()
		h.fire(seq, evDone)
		return ResultRecovered
	}

	if outcome.HitMine {
		h.fire(seq, evMine)
		h.mineHit(ctx, row, col)
		h.fire(seq, evDone)
		return ResultMineHit
	}

	h.fire(seq, evSafe)
	result = h.safeCell(ctx, row, col)
	h.fire(seq, evDone)
	return result
}

// validate accepts only the current row of a started round
func (h *ClickHandler) validate(row int) bool {
	s := h.deps.Session
	if !s.Started() {
		h.log.Debug("click rejected, round not started", zap.Int("row", row))
		return false
	}
	if current := s.CurrentRow(); row != current {
		h.log.Debug("click rejected, not the current row",
			zap.Int("row", row),
			zap.Int("currentRow", current),
		)
		return false
	}
	return true
}

// prime locks input and presses the clicked row before the remote call
func (h *ClickHandler) prime(seq *sequence) {
	h.deps.Gate.DisableContainer()
	h.deps.Host.MarkAnimationsStarting()
	h.deps.Board.SetRowPressed(seq.row, true)
	h.deps.Board.SetRowBackground(seq.row, false)
	seq.primed = true
}

func (h *ClickHandler) mineHit(ctx context.Context, row, col int) {
	d := h.deps

	d.Sound.Play(core.SoundBombExplode)
	d.Status.PressStart()
	d.Board.PlayBlast(row, col)
	d.Board.AddMineOverlay(row, col)

	h.endRound(ctx)

	total := d.Session.TotalRows()
	current := d.Session.CurrentRow()
	cols := d.Session.Cols()
	revealed := d.Session.Revealed()

	// Every mine from the clicked row up to the top
	for m := core.MatrixRow(total, current); m < len(revealed); m++ {
		classes := revealed[m]
		for c := 0; c < min(cols, len(classes)); c++ {
			if classes[c] == core.ClassMine {
				d.Board.AddBombOverlay(core.VisualRow(total, m), c)
			}
		}
	}

	// Pre-reset row keeps the trail of cleared rows untinted
	d.Board.UpdateTints(current)
	d.Session.Reset()

	d.Host.MarkAnimationsComplete()
	d.Buttons.TemporarilyHideButtons(parameter.ButtonHideDuration)

	h.log.Info("mine hit", zap.Int("row", row), zap.Int("col", col))
}

func (h *ClickHandler) safeCell(ctx context.Context, row, col int) Result {
	d := h.deps

	d.Sound.Play(core.SoundFlagReveal)
	d.Status.CanWin(d.Session.Reward())
	d.Board.AddGreenFlag(row, col)

	total := d.Session.TotalRows()
	current := d.Session.CurrentRow()
	cols := d.Session.Cols()
	classes := d.Session.Revealed().Row(core.MatrixRow(total, current))
	for c := 0; c < min(cols, len(classes)); c++ {
		switch classes[c] {
		case core.ClassMine:
			d.Board.AddBombOverlay(current, c)
		case core.ClassHidden:
			d.Board.HideIndicator(current, c)
		}
	}

	next := current - 1
	if next >= 0 {
		d.Session.SetCurrentRow(next)
		if done := d.Host.ForwardMovement(ctx); done != nil {
			<-done
		}
		d.Board.ShowRowIndicators(next)
		d.Board.SetRowBackground(next, true)
		d.Board.UpdateTints(next)
		d.Host.MarkAnimationsComplete()

		h.log.Debug("row cleared", zap.Int("row", row), zap.Int("nextRow", next))
		return ResultAdvanced
	}

	d.Sound.Play(core.SoundGameComplete)
	d.Board.UpdateTints(-1)
	d.Session.Reset()
	// Backend expects the same reason on a cleared tower
	h.endRound(ctx)
	d.Status.YouWin(d.Session.Reward())
	d.Host.MarkAnimationsComplete()
	d.Buttons.TemporarilyHideButtons(parameter.ButtonHideDuration)

	h.log.Info("round completed", zap.String("reward", d.Session.Reward().String()))
	return ResultCompleted
}

// endRound is best effort; failures never block local state correction
func (h *ClickHandler) endRound(ctx context.Context) {
	if err := h.deps.Adjudicator.EndRound(ctx, core.ReasonMineHit); err != nil {
		h.log.Warn("round end notification failed", zap.Error(err))
	}
}

// recoverPanic restores input and returns the phase machine to Idle
func (h *ClickHandler) recoverPanic(seq *sequence) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("panic recovery failed", zap.Any("panic", r))
		}
	}()

	if seq.primed {
		h.deps.Board.SetRowPressed(seq.row, false)
		h.deps.Board.SetRowBackground(seq.row, true)
		h.deps.Host.MarkAnimationsComplete()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.phase.Reset(seq); err != nil {
		h.log.Error("phase reset failed", zap.Error(err))
	}
}

func (h *ClickHandler) fire(seq *sequence, ev fsm.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.phase.Fire(seq, ev); err != nil {
		h.log.Error("phase transition failed", zap.Error(err))
	}
}
