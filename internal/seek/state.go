package seek

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/storage"
)

const (
	// FineStep and CoarseStep are the wheel and arrow key steps in field seconds.
	FineStep   = 5
	CoarseStep = 30
)

// Observer is called with the new position after every Set.
type Observer func(fieldSec float64)

// State is the playhead. Every mutation goes through Set, which clamps and persists.
type State struct {
	value     float64
	store     storage.KeyValueStore
	observers []Observer
}

func New(store storage.KeyValueStore) *State {
	return &State{store: store}
}

// Subscribe registers an observer. Observers run synchronously in the caller's goroutine.
func (s *State) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *State) Value() float64 {
	return s.value
}

// Set clamps v to [0, MaxFieldSeconds], stores it and returns the stored value.
func (s *State) Set(v float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	s.value = Clamp(v)
	s.store.Set(storage.KeySeekPosition, strconv.Itoa(int(math.Floor(s.value))))
	for _, o := range s.observers {
		o(s.value)
	}
	return s.value
}

// Add moves the playhead by delta seconds.
func (s *State) Add(delta float64) float64 {
	return s.Set(s.value + delta)
}

// Nudge steps the playhead forward (direction > 0) or back (direction < 0).
func (s *State) Nudge(direction int, coarse bool) float64 {
	step := FineStep
	if coarse {
		step = CoarseStep
	}
	switch {
	case direction > 0:
		return s.Add(float64(step))
	case direction < 0:
		return s.Add(-float64(step))
	}
	return s.value
}

// Load restores a persisted position. Fractional values are floored; anything outside
// the valid range is ignored.
func (s *State) Load() bool {
	raw, ok := s.store.Get(storage.KeySeekPosition)
	if !ok {
		return false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		log.Warn("Ignoring stored seek position", "value", raw)
		return false
	}
	position := math.Floor(v)
	if position < 0 || position > fieldtime.MaxFieldSeconds {
		log.Warn("Ignoring stored seek position", "value", raw)
		return false
	}
	s.value = position
	return true
}

// Clamp bounds v to the valid field range.
func Clamp(v float64) float64 {
	return math.Max(0, math.Min(v, fieldtime.MaxFieldSeconds))
}
