// Package session holds the authoritative state of one game instance.
//
// A Session is created once and reset in place; the click orchestrator is its only
// writer during a click sequence, the host writes it when a round starts or the
// server reports progress.
package session

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/core"
)

// Update carries the server-owned fields of a response
type Update struct {
	Revealed core.RevealedMatrix
	Reward   *decimal.Decimal // nil leaves the reward unchanged
}

// Session is the mutex-guarded game state
type Session struct {
	mu sync.RWMutex

	started    bool
	currentRow int
	totalRows  int
	cols       int

	bet      decimal.Decimal
	reward   decimal.Decimal
	revealed core.RevealedMatrix
}

// New creates a stopped session for a rows x cols board
func New(totalRows, cols int) *Session {
	return &Session{
		totalRows:  totalRows,
		cols:       cols,
		currentRow: totalRows - 1,
	}
}

// Start arms a round on a fresh board; the current row is the topmost one
func (s *Session) Start(totalRows, cols int, bet decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalRows = totalRows
	s.cols = cols
	s.bet = bet
	s.started = true
	s.currentRow = totalRows - 1
	s.revealed = nil
	s.reward = decimal.Zero
}

// Reset ends the round: not started, current row back to the top
// Reward and revealed matrix are kept for the end-of-round status text
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.currentRow = s.totalRows - 1
}

// Apply folds a server response into the session
func (s *Session) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Revealed != nil {
		s.revealed = u.Revealed.Clone()
	}
	if u.Reward != nil {
		s.reward = *u.Reward
	}
}

func (s *Session) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Session) SetStarted(started bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = started
}

// CurrentRow returns the visual index of the only clickable row
func (s *Session) CurrentRow() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRow
}

func (s *Session) SetCurrentRow(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentRow = row
}

func (s *Session) TotalRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalRows
}

func (s *Session) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cols
}

func (s *Session) Bet() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bet
}

func (s *Session) Reward() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reward
}

// Revealed returns a copy of the server view of the board
func (s *Session) Revealed() core.RevealedMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revealed.Clone()
}

// Snapshot is a consistent copy for the renderer
type Snapshot struct {
	Started    bool
	CurrentRow int
	TotalRows  int
	Cols       int
	Bet        decimal.Decimal
	Reward     decimal.Decimal
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Started:    s.started,
		CurrentRow: s.currentRow,
		TotalRows:  s.totalRows,
		Cols:       s.cols,
		Bet:        s.bet,
		Reward:     s.reward,
	}
}
