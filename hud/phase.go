package hud

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/anim"
	"github.com/lixenwraith/minetower/parameter"
)

// AnimForward names the climb transition between rows
const AnimForward = "forward"

// Phase receives animation-phase signals from click sequences
// Completion re-enables the grid gate and the collect button
type Phase struct {
	gate     *Gate
	buttons  *Buttons
	animator *anim.Animator
	log      *zap.Logger

	inFlight atomic.Bool
}

// NewPhase wires the gate, buttons and animator; buttons may be nil
func NewPhase(gate *Gate, buttons *Buttons, animator *anim.Animator, log *zap.Logger) *Phase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Phase{
		gate:     gate,
		buttons:  buttons,
		animator: animator,
		log:      log.Named("hud"),
	}
}

func (p *Phase) MarkAnimationsStarting() {
	p.inFlight.Store(true)
	if p.buttons != nil {
		p.buttons.SetCollectLocked(true)
	}
}

func (p *Phase) MarkAnimationsComplete() {
	p.inFlight.Store(false)
	if p.buttons != nil {
		p.buttons.SetCollectLocked(false)
	}
	p.gate.EnableContainer()
}

// InFlight reports whether a sequence is between starting and complete
func (p *Phase) InFlight() bool {
	return p.inFlight.Load()
}

// ForwardMovement starts the climb animation; the channel closes when it ends
// or when ctx is cancelled
func (p *Phase) ForwardMovement(ctx context.Context) <-chan struct{} {
	a := p.animator.Start(AnimForward, parameter.ForwardMovementDuration)
	go func() {
		select {
		case <-ctx.Done():
			p.log.Debug("forward movement cancelled")
			p.animator.Cancel(AnimForward)
		case <-a.Done():
		}
	}()
	return a.Done()
}
