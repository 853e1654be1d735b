package fieldtime

import (
	"fmt"
	"math"
	"time"
)

// Ptr returns a pointer to v. It keeps MatchConfig literals short.
func Ptr(v int) *int {
	return &v
}

// EffectiveFirstHalfMax returns the split point between the first and second half timelines.
// Until the operator ends the first half, the default 75 minute cap is used.
func EffectiveFirstHalfMax(cfg MatchConfig) int {
	if cfg.FirstHalfEnd != nil {
		return *cfg.FirstHalfEnd
	}
	return DefaultFirstHalfCap
}

// FieldToReal maps a field time to seconds of day. The second return value is false
// when either kickoff has not been configured. The result is not wrapped at midnight.
func FieldToReal(fieldSec float64, cfg MatchConfig) (float64, bool) {
	if cfg.FirstHalfStart == nil || cfg.SecondHalfStart == nil {
		return 0, false
	}
	h := float64(EffectiveFirstHalfMax(cfg))
	if fieldSec <= h {
		return float64(*cfg.FirstHalfStart) + fieldSec, true
	}
	return float64(*cfg.SecondHalfStart) + (fieldSec - h), true
}

// RealToField maps seconds of day to the field time the playhead should show.
// It returns 0 before kickoff or when the kickoffs are not configured.
func RealToField(realSec float64, cfg MatchConfig) float64 {
	if cfg.FirstHalfStart == nil || cfg.SecondHalfStart == nil {
		return 0
	}
	h := float64(EffectiveFirstHalfMax(cfg))
	start1 := float64(*cfg.FirstHalfStart)
	start2 := float64(*cfg.SecondHalfStart)

	switch {
	case realSec >= start1 && realSec < start2:
		return math.Min(realSec-start1, h)
	case realSec >= start2:
		return h + (realSec - start2)
	default:
		return 0
	}
}

// HalfOf reports which timeline the field time is drawn on.
func HalfOf(fieldSec float64, cfg MatchConfig) Half {
	if fieldSec <= float64(EffectiveFirstHalfMax(cfg)) {
		return FirstHalf
	}
	return SecondHalf
}

// TimelineOffset returns the seconds from the start of the owning half's timeline.
func TimelineOffset(fieldSec float64, cfg MatchConfig) float64 {
	h := float64(EffectiveFirstHalfMax(cfg))
	if fieldSec <= h {
		return fieldSec
	}
	return fieldSec - h
}

// PhaseOf classifies the field time using the same boundaries as Format.
func PhaseOf(fieldSec float64, cfg MatchConfig) Phase {
	h := float64(EffectiveFirstHalfMax(cfg))
	switch {
	case fieldSec <= RegulationHalf:
		return PhaseRegular1
	case fieldSec <= h:
		return PhaseStoppage1
	case fieldSec <= h+RegulationHalf:
		return PhaseRegular2
	default:
		return PhaseStoppage2
	}
}

// Format renders a field time label. Every displayed or exported time goes through here:
//
//	0 .. 45:00          "MM:SS"
//	45:00 .. H          "45+M:SS"
//	H .. H+45:00        "MM:SS" counted from 45
//	beyond              "90+M:SS"
func Format(fieldSec float64, cfg MatchConfig) string {
	if fieldSec < 0 {
		fieldSec = 0
	}
	h := float64(EffectiveFirstHalfMax(cfg))

	switch PhaseOf(fieldSec, cfg) {
	case PhaseRegular1:
		return fmt.Sprintf("%02d:%02d", minutes(fieldSec), seconds(fieldSec))
	case PhaseStoppage1:
		extra := fieldSec - RegulationHalf
		return fmt.Sprintf("45+%d:%02d", minutes(extra), seconds(extra))
	case PhaseRegular2:
		second := fieldSec - h
		return fmt.Sprintf("%02d:%02d", 45+minutes(second), seconds(second))
	default:
		extra := fieldSec - (h + RegulationHalf)
		return fmt.Sprintf("90+%d:%02d", minutes(extra), seconds(extra))
	}
}

// FormatClock renders seconds of day as "HH:MM", wrapping values outside one day.
func FormatClock(realSec float64) string {
	sec := int(math.Floor(realSec))
	sec = ((sec % SecondsPerDay) + SecondsPerDay) % SecondsPerDay
	return fmt.Sprintf("%02d:%02d", sec/3600, (sec%3600)/60)
}

// SecondsOfDay returns the seconds elapsed since local midnight of t.
func SecondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// StartOfDay converts an hour/minute kickoff into seconds of day.
func StartOfDay(hour, minute int) int {
	return hour*3600 + minute*60
}

func minutes(sec float64) int {
	return int(math.Floor(sec / 60))
}

func seconds(sec float64) int {
	return int(math.Floor(math.Mod(sec, 60)))
}
