// Package anim drives time-based animations and hands out completion handles.
//
// An Animation completes exactly once: when Update observes that its duration
// elapsed, when it is cancelled, or when the Animator stops. Callers wait on Done
// instead of registering callbacks.
package anim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/minetower/clock"
)

// Animation is one running transition
type Animation struct {
	Name     string
	Start    time.Time
	Duration time.Duration

	done     chan struct{}
	doneOnce sync.Once
}

// Done is closed when the animation finished or was cancelled
func (a *Animation) Done() <-chan struct{} {
	return a.done
}

// Progress returns the completed fraction in [0, 1] at now
func (a *Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.Start)) / float64(a.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (a *Animation) finish() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Animator tracks running animations by name; starting a name again replaces it
type Animator struct {
	clock clock.TimeProvider

	mu     sync.RWMutex
	active map[string]*Animation

	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewAnimator creates an animator reading time from tp
func NewAnimator(tp clock.TimeProvider) *Animator {
	if tp == nil {
		tp = clock.NewRealTimeProvider()
	}
	return &Animator{
		clock:  tp,
		active: make(map[string]*Animation),
		stopCh: make(chan struct{}),
	}
}

// Start begins an animation; a zero duration completes on the next Update
// A replaced animation of the same name completes immediately
func (an *Animator) Start(name string, d time.Duration) *Animation {
	a := &Animation{
		Name:     name,
		Start:    an.clock.Now(),
		Duration: d,
		done:     make(chan struct{}),
	}

	an.mu.Lock()
	prev := an.active[name]
	an.active[name] = a
	an.mu.Unlock()

	if prev != nil {
		prev.finish()
	}

	select {
	case <-an.stopCh:
		an.Cancel(name)
	default:
	}
	return a
}

// Update completes every animation whose duration elapsed at now
func (an *Animator) Update(now time.Time) {
	var finished []*Animation

	an.mu.Lock()
	for name, a := range an.active {
		if now.Sub(a.Start) >= a.Duration {
			finished = append(finished, a)
			delete(an.active, name)
		}
	}
	an.mu.Unlock()

	for _, a := range finished {
		a.finish()
	}
}

// Cancel completes a running animation early
func (an *Animator) Cancel(name string) {
	an.mu.Lock()
	a := an.active[name]
	delete(an.active, name)
	an.mu.Unlock()

	if a != nil {
		a.finish()
	}
}

// Progress returns the fraction of a running animation, false when not running
func (an *Animator) Progress(name string) (float64, bool) {
	an.mu.RLock()
	a := an.active[name]
	an.mu.RUnlock()

	if a == nil {
		return 0, false
	}
	return a.Progress(an.clock.Now()), true
}

// Active reports whether any animation is running
func (an *Animator) Active() bool {
	an.mu.RLock()
	defer an.mu.RUnlock()
	return len(an.active) > 0
}

// Run ticks Update every interval until ctx ends or Stop is called
func (an *Animator) Run(ctx context.Context, interval time.Duration) {
	if !an.running.CompareAndSwap(false, true) {
		return
	}
	an.wg.Add(1)
	go func() {
		defer an.wg.Done()
		defer an.running.Store(false)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				an.Stop()
				return
			case <-an.stopCh:
				return
			case <-ticker.C:
				an.Update(an.clock.Now())
			}
		}
	}()
}

// Stop completes every running animation and halts Run
// Later Start calls return already completed animations
func (an *Animator) Stop() {
	an.stopOnce.Do(func() {
		close(an.stopCh)

		an.mu.Lock()
		all := an.active
		an.active = make(map[string]*Animation)
		an.mu.Unlock()

		for _, a := range all {
			a.finish()
		}
	})
}

// Wait blocks until Run returned
func (an *Animator) Wait() {
	an.wg.Wait()
}
