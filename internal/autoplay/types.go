package autoplay

import (
	"sync"
	"time"
)

// DefaultInterval is how often a playing engine advances the playhead.
const DefaultInterval = 100 * time.Millisecond

type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Clock supplies wall time. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads time.Now.
var SystemClock Clock = systemClock{}

// Seeker is the playhead the engine drives.
type Seeker interface {
	Value() float64
	Set(v float64) float64
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithLocker makes the ticker goroutine hold l while it advances the playhead, so ticks
// serialize with every other mutation guarded by the same lock.
func WithLocker(l sync.Locker) Option {
	return func(e *Engine) { e.locker = l }
}

// WithOnStop registers a hook fired when playback reaches the end of the match.
func WithOnStop(fn func()) Option {
	return func(e *Engine) { e.onStop = fn }
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}
