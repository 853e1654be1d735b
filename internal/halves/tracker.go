package halves

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/storage"
)

var (
	// ErrInvalidStart is returned for kickoff times outside 00:00-23:59.
	ErrInvalidStart = errors.New("invalid kickoff time")
	// ErrBeforeRegulationEnd is returned when a half would end before its 45 minutes are up.
	ErrBeforeRegulationEnd = errors.New("half cannot end before regulation time")
)

// Tracker owns the match configuration: both kickoffs and the recorded half ends.
// Callers recompute tick and bookmark layout after a change; the tracker does not notify.
type Tracker struct {
	cfg   fieldtime.MatchConfig
	store storage.KeyValueStore
}

// New creates a Tracker with nothing configured.
func New(store storage.KeyValueStore) *Tracker {
	return &Tracker{store: store}
}

// Config returns a copy of the current configuration.
func (t *Tracker) Config() fieldtime.MatchConfig {
	return fieldtime.MatchConfig{
		FirstHalfStart:  copyInt(t.cfg.FirstHalfStart),
		SecondHalfStart: copyInt(t.cfg.SecondHalfStart),
		FirstHalfEnd:    copyInt(t.cfg.FirstHalfEnd),
		SecondHalfEnd:   copyInt(t.cfg.SecondHalfEnd),
	}
}

// EffectiveFirstHalfMax is the split point between the two timelines.
func (t *Tracker) EffectiveFirstHalfMax() int {
	return fieldtime.EffectiveFirstHalfMax(t.cfg)
}

// SetFirstHalfStart records the first kickoff and persists it.
func (t *Tracker) SetFirstHalfStart(hour, minute int) error {
	if err := validateStart(hour, minute); err != nil {
		return err
	}
	t.cfg.FirstHalfStart = fieldtime.Ptr(fieldtime.StartOfDay(hour, minute))
	t.store.Set(storage.KeyFirstHalfHour, strconv.Itoa(hour))
	t.store.Set(storage.KeyFirstHalfMinute, strconv.Itoa(minute))
	log.Info("First half kickoff set", "hour", hour, "minute", minute)
	return nil
}

// SetSecondHalfStart records the second kickoff and persists it.
func (t *Tracker) SetSecondHalfStart(hour, minute int) error {
	if err := validateStart(hour, minute); err != nil {
		return err
	}
	t.cfg.SecondHalfStart = fieldtime.Ptr(fieldtime.StartOfDay(hour, minute))
	t.store.Set(storage.KeySecondHalfHour, strconv.Itoa(hour))
	t.store.Set(storage.KeySecondHalfMinute, strconv.Itoa(minute))
	log.Info("Second half kickoff set", "hour", hour, "minute", minute)
	return nil
}

// EndFirstHalf fixes the first half length at atFieldSec. It only takes effect while the
// half is open; the returned bool reports whether anything changed.
func (t *Tracker) EndFirstHalf(atFieldSec int) (bool, error) {
	if t.cfg.FirstHalfEnd != nil {
		log.Debug("First half already ended", "at", *t.cfg.FirstHalfEnd)
		return false, nil
	}
	if atFieldSec < fieldtime.RegulationHalf {
		return false, fmt.Errorf("end first half at %d: %w", atFieldSec, ErrBeforeRegulationEnd)
	}
	t.cfg.FirstHalfEnd = fieldtime.Ptr(atFieldSec)
	t.store.Set(storage.KeyFirstHalfEnd, strconv.Itoa(atFieldSec))
	log.Info("First half ended", "field_seconds", atFieldSec)
	return true, nil
}

// EndSecondHalf records the end of the match. Like EndFirstHalf it is a one-shot value.
func (t *Tracker) EndSecondHalf(atFieldSec int) (bool, error) {
	if t.cfg.SecondHalfEnd != nil {
		log.Debug("Second half already ended", "at", *t.cfg.SecondHalfEnd)
		return false, nil
	}
	if minimum := t.EffectiveFirstHalfMax() + fieldtime.RegulationHalf; atFieldSec < minimum {
		return false, fmt.Errorf("end second half at %d (minimum %d): %w", atFieldSec, minimum, ErrBeforeRegulationEnd)
	}
	t.cfg.SecondHalfEnd = fieldtime.Ptr(atFieldSec)
	t.store.Set(storage.KeySecondHalfEnd, strconv.Itoa(atFieldSec))
	log.Info("Second half ended", "field_seconds", atFieldSec)
	return true, nil
}

// ResetFirstHalf reopens the first half. Callers confirm with the operator first.
func (t *Tracker) ResetFirstHalf() bool {
	if t.cfg.FirstHalfEnd == nil {
		return false
	}
	t.cfg.FirstHalfEnd = nil
	t.store.Remove(storage.KeyFirstHalfEnd)
	log.Info("First half end reset")
	return true
}

// ResetSecondHalf reopens the match. Callers confirm with the operator first.
func (t *Tracker) ResetSecondHalf() bool {
	if t.cfg.SecondHalfEnd == nil {
		return false
	}
	t.cfg.SecondHalfEnd = nil
	t.store.Remove(storage.KeySecondHalfEnd)
	log.Info("Second half end reset")
	return true
}

// LoadStarts restores both kickoffs. All four hour/minute values must be present and
// valid, otherwise nothing is restored.
func (t *Tracker) LoadStarts() bool {
	keys := []storage.Key{
		storage.KeyFirstHalfHour, storage.KeyFirstHalfMinute,
		storage.KeySecondHalfHour, storage.KeySecondHalfMinute,
	}
	values := make([]int, 0, len(keys))
	for _, key := range keys {
		raw, ok := t.store.Get(key)
		if !ok {
			return false
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Ignoring corrupt kickoff value", "key", key, "value", raw)
			return false
		}
		values = append(values, v)
	}
	if validateStart(values[0], values[1]) != nil || validateStart(values[2], values[3]) != nil {
		log.Warn("Ignoring out of range kickoff values", "values", values)
		return false
	}
	t.cfg.FirstHalfStart = fieldtime.Ptr(fieldtime.StartOfDay(values[0], values[1]))
	t.cfg.SecondHalfStart = fieldtime.Ptr(fieldtime.StartOfDay(values[2], values[3]))
	return true
}

// LoadHalfEnds restores whichever half ends were persisted. Values that could not have
// been recorded by EndFirstHalf or EndSecondHalf are ignored.
func (t *Tracker) LoadHalfEnds() bool {
	restored := false
	if v, ok := t.loadInt(storage.KeyFirstHalfEnd); ok {
		if v < fieldtime.RegulationHalf {
			log.Warn("Ignoring first half end before regulation time", "value", v)
		} else {
			t.cfg.FirstHalfEnd = fieldtime.Ptr(v)
			restored = true
		}
	}
	if v, ok := t.loadInt(storage.KeySecondHalfEnd); ok {
		if minimum := t.EffectiveFirstHalfMax() + fieldtime.RegulationHalf; v < minimum {
			log.Warn("Ignoring second half end before regulation time", "value", v, "minimum", minimum)
		} else {
			t.cfg.SecondHalfEnd = fieldtime.Ptr(v)
			restored = true
		}
	}
	return restored
}

func (t *Tracker) loadInt(key storage.Key) (int, bool) {
	raw, ok := t.store.Get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Warn("Ignoring corrupt half end value", "key", key, "value", raw)
		return 0, false
	}
	return v, true
}

func validateStart(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%02d:%02d: %w", hour, minute, ErrInvalidStart)
	}
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
