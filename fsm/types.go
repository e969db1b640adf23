// Package fsm is a small generic hierarchical state machine.
//
// Nodes form a tree under an implicit root; events bubble from the active leaf to
// its ancestors until a transition with a passing guard is found. Exit actions run
// from the leaf up to the lowest common ancestor, enter actions run down to the
// target. A Machine is not safe for concurrent use; callers serialize access.
package fsm

import "errors"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Event triggers transitions; zero is reserved
type Event int

const EventNone Event = 0

var (
	ErrNotInitialized = errors.New("fsm not initialized")
	ErrUnknownState   = errors.New("unknown state")
	ErrNoTransition   = errors.New("no transition for event")
)

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from root to this node, filled by CompilePaths
	Path []StateID

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	Event    Event
	TargetID StateID
	Guard    GuardFunc[T] // nil = always
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect on enter or exit
type ActionFunc[T any] func(ctx T)
