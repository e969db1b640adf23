package fsm

import "fmt"

// AddState adds a node; parentID StateNone attaches it to the root
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	if parentID == StateNone && id != StateRoot {
		parentID = StateRoot
	}
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, ev Event, targetID StateID, guard GuardFunc[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, Transition[T]{
			Event:    ev,
			TargetID: targetID,
			Guard:    guard,
		})
	}
}

// OnEnter appends an enter action to a node
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, fn)
	}
}

// OnExit appends an exit action to a node
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, fn)
	}
}

// CompilePaths calculates the root-to-node path of every node
// Runs implicitly on Init; call directly to surface graph errors early
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node
		for depth := 0; ; depth++ {
			if depth > len(m.nodes) {
				return fmt.Errorf("node %d: parent cycle", id)
			}
			path = append(path, curr.ID)
			if curr.ID == StateRoot {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d: %w", id, curr.ParentID, ErrUnknownState)
			}
			curr = parent
		}

		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path
	}

	for id, node := range m.nodes {
		for _, tr := range node.Transitions {
			if _, ok := m.nodes[tr.TargetID]; !ok {
				return fmt.Errorf("node %d transition to %d: %w", id, tr.TargetID, ErrUnknownState)
			}
		}
	}

	m.compiled = true
	return nil
}
