package autoplay

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/fieldtime"
)

// Engine advances a Seeker at one field second per real second.
//
// Start, Stop and Tick are not safe for concurrent use on their own. The owner calls
// them while holding the locker passed via WithLocker, which the ticker goroutine
// also takes before each tick.
type Engine struct {
	seeker   Seeker
	clock    Clock
	locker   sync.Locker
	interval time.Duration
	rate     float64
	onStop   func()

	state      State
	startWall  time.Time
	startField float64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func New(seeker Seeker, opts ...Option) *Engine {
	e := &Engine{
		seeker:   seeker,
		clock:    SystemClock,
		locker:   noopLocker{},
		interval: DefaultInterval,
		rate:     1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State    { return e.state }
func (e *Engine) IsPlaying() bool { return e.state == Playing }

// Start anchors playback at the current position and starts the ticker. It reports
// false when already playing.
func (e *Engine) Start() bool {
	if e.state == Playing {
		return false
	}
	e.state = Playing
	e.startWall = e.clock.Now()
	e.startField = e.seeker.Value()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.wg.Add(1)
	go e.run(ctx)

	log.Debug("Autoplay started", "field_seconds", e.startField)
	return true
}

// Stop halts playback and cancels the ticker. It reports false when already stopped.
func (e *Engine) Stop() bool {
	if e.state == Stopped {
		return false
	}
	e.state = Stopped
	e.startWall = time.Time{}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	log.Debug("Autoplay stopped", "field_seconds", e.seeker.Value())
	return true
}

// Tick advances the playhead to match the wall time elapsed since Start. Reaching the
// end of the match clamps the playhead and stops playback. It reports whether the
// engine stopped on this tick.
func (e *Engine) Tick(now time.Time) bool {
	if e.state != Playing {
		return false
	}
	elapsed := now.Sub(e.startWall).Seconds()
	next := e.startField + elapsed*e.rate
	if next >= fieldtime.MaxFieldSeconds {
		e.seeker.Set(fieldtime.MaxFieldSeconds)
		e.Stop()
		log.Info("Autoplay reached end of match")
		if e.onStop != nil {
			e.onStop()
		}
		return true
	}
	e.seeker.Set(next)
	return false
}

// Wait blocks until every ticker goroutine has exited. Call it after Stop without
// holding the locker.
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) run(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.locker.Lock()
			// A Stop may have landed while this goroutine waited for the lock.
			if ctx.Err() != nil {
				e.locker.Unlock()
				return
			}
			e.Tick(e.clock.Now())
			e.locker.Unlock()
		}
	}
}
