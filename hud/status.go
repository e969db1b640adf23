package hud

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/parameter"
)

// Tone selects the color of the status line
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
)

// StatusLine is the one-line prompt under the grid
type StatusLine struct {
	mu   sync.RWMutex
	text string
	tone Tone
}

// NewStatusLine creates a status line showing the idle prompt
func NewStatusLine() *StatusLine {
	return &StatusLine{text: parameter.TextIdle}
}

// Set replaces the text
func (s *StatusLine) Set(text string, tone Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.tone = tone
}

// Text returns the current text and tone
func (s *StatusLine) Text() (string, Tone) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text, s.tone
}

func (s *StatusLine) PressStart() {
	s.Set(parameter.TextPressStart, ToneBad)
}

func (s *StatusLine) CanWin(reward decimal.Decimal) {
	s.Set(fmt.Sprintf(parameter.TextCanWin, formatAmount(reward)), ToneGood)
}

func (s *StatusLine) YouWin(reward decimal.Decimal) {
	s.Set(fmt.Sprintf(parameter.TextYouWin, formatAmount(reward)), ToneGood)
}

func (s *StatusLine) PickCell() {
	s.Set(parameter.TextPickCell, ToneNeutral)
}

func (s *StatusLine) Collected(reward decimal.Decimal) {
	s.Set(fmt.Sprintf(parameter.TextCollected, formatAmount(reward)), ToneGood)
}

func (s *StatusLine) Failed(format string, err error) {
	s.Set(fmt.Sprintf(format, err), ToneBad)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
