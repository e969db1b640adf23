package hud

import (
	"sync"
	"time"

	"github.com/lixenwraith/minetower/clock"
	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/parameter"
)

// ButtonID identifies a HUD button
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonStart
	ButtonCollect
)

func (b ButtonID) String() string {
	switch b {
	case ButtonStart:
		return "start"
	case ButtonCollect:
		return "collect"
	default:
		return "none"
	}
}

// ButtonView is a read-only copy for rendering
type ButtonView struct {
	ID      ButtonID
	Label   string
	Rect    core.Rect
	Visible bool
}

type button struct {
	id    ButtonID
	label string
	rect  core.Rect
}

// Buttons holds the start and collect controls
type Buttons struct {
	clock clock.TimeProvider

	mu            sync.RWMutex
	start         button
	collect       button
	hiddenUntil   time.Time
	collectLocked bool
}

// NewButtons creates both buttons, unplaced until Layout
func NewButtons(tp clock.TimeProvider) *Buttons {
	if tp == nil {
		tp = clock.NewRealTimeProvider()
	}
	return &Buttons{
		clock:   tp,
		start:   button{id: ButtonStart, label: parameter.StartButtonText},
		collect: button{id: ButtonCollect, label: parameter.CollectButtonText},
	}
}

// Layout centers the button row near the bottom edge
func (b *Buttons) Layout(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sw := buttonWidth(b.start.label)
	cw := buttonWidth(b.collect.label)
	x := (width - sw - parameter.ButtonGap - cw) / 2
	y := height - parameter.ButtonRowOffset

	b.start.rect = core.Rect{X: x, Y: y, W: sw, H: 1}
	b.collect.rect = core.Rect{X: x + sw + parameter.ButtonGap, Y: y, W: cw, H: 1}
}

// buttonWidth includes brackets and padding: "[ START ]"
func buttonWidth(label string) int {
	return len(label) + 2*parameter.ButtonPadding + 2
}

// TemporarilyHideButtons hides both buttons for d
func (b *Buttons) TemporarilyHideButtons(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hiddenUntil = b.clock.Now().Add(d)
}

// SetCollectLocked hides collect while animations run
func (b *Buttons) SetCollectLocked(locked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.collectLocked = locked
}

func (b *Buttons) visible(id ButtonID, now time.Time) bool {
	if now.Before(b.hiddenUntil) {
		return false
	}
	return id != ButtonCollect || !b.collectLocked
}

// ButtonAt returns the visible button under (x, y)
func (b *Buttons) ButtonAt(x, y int) ButtonID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	now := b.clock.Now()
	for _, btn := range []button{b.start, b.collect} {
		if btn.rect.Contains(x, y) && b.visible(btn.id, now) {
			return btn.id
		}
	}
	return ButtonNone
}

// Views returns both buttons with their current visibility
func (b *Buttons) Views() []ButtonView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	now := b.clock.Now()
	out := make([]ButtonView, 0, 2)
	for _, btn := range []button{b.start, b.collect} {
		out = append(out, ButtonView{
			ID:      btn.id,
			Label:   btn.label,
			Rect:    btn.rect,
			Visible: b.visible(btn.id, now),
		})
	}
	return out
}
