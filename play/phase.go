package play

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/fsm"
)

// Click phases; Active groups every phase of an accepted or pending click
const (
	PhaseIdle fsm.StateID = iota + 2
	PhaseActive
	PhaseValidating
	PhaseRemoteResolving
	PhaseMineHit
	PhaseSafeCell
	PhaseErrorRecovery
)

const (
	evClick fsm.Event = iota + 1
	evAccept
	evReject
	evMine
	evSafe
	evFail
	evDone
)

// sequence is the per-click context handed to the phase machine
type sequence struct {
	row, col int
	primed   bool
}

// newPhaseMachine wires the click lifecycle
// Idle -> Validating -> RemoteResolving -> {MineHit | SafeCell | ErrorRecovery} -> Idle
func newPhaseMachine(log *zap.Logger) (*fsm.Machine[*sequence], error) {
	m := fsm.NewMachine[*sequence]()
	m.AddState(PhaseIdle, "Idle", fsm.StateNone)
	m.AddState(PhaseActive, "Active", fsm.StateNone)
	m.AddState(PhaseValidating, "Validating", PhaseActive)
	m.AddState(PhaseRemoteResolving, "RemoteResolving", PhaseActive)
	m.AddState(PhaseMineHit, "MineHit", PhaseActive)
	m.AddState(PhaseSafeCell, "SafeCell", PhaseActive)
	m.AddState(PhaseErrorRecovery, "ErrorRecovery", PhaseActive)

	m.AddTransition(PhaseIdle, evClick, PhaseValidating, nil)
	m.AddTransition(PhaseValidating, evReject, PhaseIdle, nil)
	m.AddTransition(PhaseValidating, evAccept, PhaseRemoteResolving, nil)
	m.AddTransition(PhaseRemoteResolving, evMine, PhaseMineHit, isPrimed)
	m.AddTransition(PhaseRemoteResolving, evSafe, PhaseSafeCell, isPrimed)
	m.AddTransition(PhaseRemoteResolving, evFail, PhaseErrorRecovery, nil)
	m.AddTransition(PhaseActive, evDone, PhaseIdle, nil)

	for _, id := range []fsm.StateID{PhaseValidating, PhaseRemoteResolving, PhaseMineHit, PhaseSafeCell, PhaseErrorRecovery} {
		name := m.StateName(id)
		m.OnEnter(id, func(s *sequence) {
			log.Debug("click phase",
				zap.String("phase", name),
				zap.Int("row", s.row),
				zap.Int("col", s.col),
			)
		})
	}

	if err := m.Init(&sequence{}, PhaseIdle); err != nil {
		return nil, err
	}
	return m, nil
}

// isPrimed keeps outcome phases unreachable unless the row was locked first
func isPrimed(s *sequence) bool {
	return s.primed
}
