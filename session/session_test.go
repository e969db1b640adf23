package session

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/minetower/core"
)

func TestNewSessionStopped(t *testing.T) {
	s := New(9, 3)
	if s.Started() {
		t.Error("Expected new session to be stopped")
	}
	if s.CurrentRow() != 8 {
		t.Errorf("Expected current row 8, got %d", s.CurrentRow())
	}
	if s.TotalRows() != 9 || s.Cols() != 3 {
		t.Errorf("Expected 9x3, got %dx%d", s.TotalRows(), s.Cols())
	}
}

func TestStartAndReset(t *testing.T) {
	s := New(3, 3)
	reward := decimal.RequireFromString("2.50")
	s.Apply(Update{Reward: &reward})

	s.Start(6, 4, decimal.NewFromInt(1))
	if !s.Started() || s.CurrentRow() != 5 || s.Cols() != 4 {
		t.Errorf("Unexpected started state %+v", s.Snapshot())
	}
	if !s.Reward().IsZero() {
		t.Errorf("Expected reward cleared on start, got %s", s.Reward())
	}

	s.SetCurrentRow(2)
	reward = decimal.RequireFromString("3.10")
	s.Apply(Update{Reward: &reward})

	s.Reset()
	if s.Started() {
		t.Error("Expected stopped after reset")
	}
	if s.CurrentRow() != 5 {
		t.Errorf("Expected current row 5 after reset, got %d", s.CurrentRow())
	}
	if !s.Reward().Equal(reward) {
		t.Errorf("Expected reward kept across reset, got %s", s.Reward())
	}

	before := s.Snapshot()
	s.Reset()
	if s.Snapshot() != before {
		t.Error("Reset not idempotent")
	}
}

func TestApplyRevealedIsCopied(t *testing.T) {
	s := New(3, 2)
	m := core.RevealedMatrix{{core.ClassMine, core.ClassHidden}}
	s.Apply(Update{Revealed: m})

	m[0][0] = core.ClassSafe
	if s.Revealed().At(0, 0) != core.ClassMine {
		t.Error("Session aliases the applied matrix")
	}

	got := s.Revealed()
	got[0][1] = core.ClassSafe
	if s.Revealed().At(0, 1) != core.ClassHidden {
		t.Error("Session leaks its matrix to readers")
	}

	s.Apply(Update{})
	if s.Revealed() == nil {
		t.Error("Empty update cleared the matrix")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New(9, 3)
	s.Start(9, 3, decimal.NewFromInt(1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(row int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.SetCurrentRow(row)
				r := decimal.NewFromInt(int64(j))
				s.Apply(Update{Reward: &r})
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Snapshot()
				_ = s.Revealed()
			}
		}()
	}
	wg.Wait()
}
