package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/core"
)

// ErrMissingCapability is returned by New when a required collaborator is nil
var ErrMissingCapability = errors.New("missing required capability")

// Board is the grid control surface driven during a sequence
type Board interface {
	SetRowPressed(row int, pressed bool)
	SetRowBackground(row int, animated bool)
	ShowRowIndicators(row int)
	HideIndicator(row, col int)
	PlayBlast(row, col int)
	AddMineOverlay(row, col int)
	AddBombOverlay(row, col int)
	AddGreenFlag(row, col int)
	UpdateTints(currentRow int)
}

// Session is the game state read and written by a sequence
type Session interface {
	Started() bool
	CurrentRow() int
	SetCurrentRow(row int)
	TotalRows() int
	Cols() int
	Reward() decimal.Decimal
	Revealed() core.RevealedMatrix
	Reset()
}

// Adjudicator resolves clicks and receives round-end notices
type Adjudicator interface {
	ResolveCell(ctx context.Context, row, col int) (core.Outcome, error)
	EndRound(ctx context.Context, reason string) error
}

// Host owns animation phases and the forward movement between rows
type Host interface {
	MarkAnimationsStarting()
	MarkAnimationsComplete()
	// ForwardMovement starts the climb animation; the channel closes once it finished
	ForwardMovement(ctx context.Context) <-chan struct{}
}

// Gate is the container-level input switch; re-enabling it is the host's job
type Gate interface {
	DisableContainer()
}

// Sound plays one-shot effects
type Sound interface {
	Play(s core.SoundType)
}

// Status shows round prompts
type Status interface {
	PressStart()
	CanWin(reward decimal.Decimal)
	YouWin(reward decimal.Decimal)
}

// Activity is notified of every click attempt
type Activity interface {
	RecordClick(row, col int)
}

// Buttons hides start/collect controls for a while after a round ends
type Buttons interface {
	TemporarilyHideButtons(d time.Duration)
}

// Deps is the capability context of a ClickHandler
type Deps struct {
	// Required
	Board       Board
	Session     Session
	Adjudicator Adjudicator
	Host        Host
	Gate        Gate

	// Optional, replaced by no-ops when nil
	Sound    Sound
	Status   Status
	Activity Activity
	Buttons  Buttons
	Logger   *zap.Logger
}

// validate fails on missing required capabilities and fills optional ones
func (d *Deps) validate() error {
	required := []struct {
		name    string
		missing bool
	}{
		{"board", d.Board == nil},
		{"session", d.Session == nil},
		{"adjudicator", d.Adjudicator == nil},
		{"host", d.Host == nil},
		{"gate", d.Gate == nil},
	}
	for _, r := range required {
		if r.missing {
			return fmt.Errorf("%w: %s", ErrMissingCapability, r.name)
		}
	}

	if d.Sound == nil {
		d.Sound = nopSound{}
	}
	if d.Status == nil {
		d.Status = nopStatus{}
	}
	if d.Activity == nil {
		d.Activity = nopActivity{}
	}
	if d.Buttons == nil {
		d.Buttons = nopButtons{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return nil
}

type nopSound struct{}

func (nopSound) Play(core.SoundType) {}

type nopStatus struct{}

func (nopStatus) PressStart()            {}
func (nopStatus) CanWin(decimal.Decimal) {}
func (nopStatus) YouWin(decimal.Decimal) {}

type nopActivity struct{}

func (nopActivity) RecordClick(int, int) {}

type nopButtons struct{}

func (nopButtons) TemporarilyHideButtons(time.Duration) {}
