// Package status keeps counters and last-seen values of a running game.
//
// Writers cache metric pointers once and update atomics directly; the debug
// overlay and the exit log read them through Lines.
package status

import (
	"fmt"
	"sync/atomic"
)

// Metric names
const (
	KeyClickAttempts = "click.attempts"
	KeyClickLast     = "click.last"
	KeyResultPrefix  = "result."
	KeyRoundsStarted = "round.started"
	KeyRoundsWon     = "round.won"
	KeyRoundsLost    = "round.lost"
	KeyCollects      = "round.collected"
	KeyLastReward    = "round.reward"
	KeyPhase         = "click.phase"
	KeyAudioMuted    = "audio.muted"
)

// Registry is the metrics facade
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]

	attempts *atomic.Int64
	last     *AtomicString
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	r := &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
	r.attempts = r.Ints.Get(KeyClickAttempts)
	r.last = r.Strings.Get(KeyClickLast)
	return r
}

// RecordClick counts a click attempt, valid or not
func (r *Registry) RecordClick(row, col int) {
	r.attempts.Add(1)
	r.last.Store(fmt.Sprintf("%d,%d", row, col))
}

// RecordResult counts how a click sequence ended
func (r *Registry) RecordResult(result fmt.Stringer) {
	r.Ints.Get(KeyResultPrefix + result.String()).Add(1)
}

// Inc bumps a named counter
func (r *Registry) Inc(key string) {
	r.Ints.Get(key).Add(1)
}

// Int reads a named counter
func (r *Registry) Int(key string) int64 {
	return r.Ints.Get(key).Load()
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// Lines renders every metric as "key=value", sorted per kind
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s=%v", k, v.Load()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, fmt.Sprintf("%s=%s", k, v.Load()))
	})
	return out
}
