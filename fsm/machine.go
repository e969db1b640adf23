package fsm

import "fmt"

// Machine is the generic state machine runtime
// T is the context passed to actions and guards
type Machine[T any] struct {
	nodes    map[StateID]*Node[T]
	compiled bool

	initialID  StateID
	activeID   StateID
	activePath []StateID
}

// NewMachine creates a machine holding only the root node
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
	m.AddState(StateRoot, "Root", StateNone)
	return m
}

// Init enters initialID, running enter actions from the root down
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if !m.compiled {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state %d: %w", initialID, ErrUnknownState)
	}

	m.initialID = initialID
	m.activeID = initialID
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, fn := range m.nodes[id].OnEnter {
			fn(ctx)
		}
	}
	return nil
}

// Fire routes an event from the active leaf upwards and takes the first passing transition
func (m *Machine[T]) Fire(ctx T, ev Event) error {
	if m.activeID == StateNone {
		return ErrNotInitialized
	}

	for currID := m.activeID; currID != StateNone; {
		node := m.nodes[currID]
		for _, tr := range node.Transitions {
			if tr.Event != ev {
				continue
			}
			if tr.Guard == nil || tr.Guard(ctx) {
				m.transition(ctx, tr.TargetID)
				return nil
			}
		}
		currID = node.ParentID
	}

	return fmt.Errorf("%w: event %d in %s", ErrNoTransition, ev, m.nodes[m.activeID].Name)
}

// transition performs the exit/enter walk around the lowest common ancestor
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	target := m.nodes[targetID]

	lca := -1
	for i := 0; i < min(len(m.activePath), len(target.Path)); i++ {
		if m.activePath[i] != target.Path[i] {
			break
		}
		lca = i
	}
	// Self transition re-enters the leaf
	if targetID == m.activeID {
		lca = len(m.activePath) - 2
	}

	for i := len(m.activePath) - 1; i > lca; i-- {
		for _, fn := range m.nodes[m.activePath[i]].OnExit {
			fn(ctx)
		}
	}
	for i := lca + 1; i < len(target.Path); i++ {
		for _, fn := range m.nodes[target.Path[i]].OnEnter {
			fn(ctx)
		}
	}

	m.activeID = targetID
	m.activePath = append(m.activePath[:0], target.Path...)
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.activeID == StateNone {
		return ErrNotInitialized
	}
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, fn := range m.nodes[m.activePath[i]].OnExit {
			fn(ctx)
		}
	}
	return m.Init(ctx, m.initialID)
}

// Current returns the active leaf
func (m *Machine[T]) Current() StateID {
	return m.activeID
}

// CurrentName returns the active leaf name, empty before Init
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeID]; ok && m.activeID != StateNone {
		return node.Name
	}
	return ""
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// StateName returns the name of any node
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}
