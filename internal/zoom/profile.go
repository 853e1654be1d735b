package zoom

import (
	"fmt"

	"github.com/mauv0809/field-clock/internal/fieldtime"
)

// Profile is an ordered level table with a saturating cursor. It never touches the seek
// position; only the seconds to pixels mapping changes.
type Profile struct {
	levels       []Level
	index        int
	defaultIndex int
}

// MultiplicativeLevels returns the six 0.25x to 8x levels of base px/s. Tick density
// thins out when zoomed out and tightens when zoomed in.
func MultiplicativeLevels(base float64) []Level {
	factors := []float64{0.25, 0.5, 1, 2, 4, 8}
	levels := make([]Level, 0, len(factors))
	for _, f := range factors {
		level := Level{
			Name:              fmt.Sprintf("%gx", f),
			TickInterval:      120,
			MajorTickInterval: 600,
			PixelsPerSecond:   base * f,
		}
		switch {
		case f <= 0.5:
			level.TickInterval, level.MajorTickInterval = 300, 900
		case f >= 4:
			level.TickInterval, level.MajorTickInterval = 30, 300
		case f >= 2:
			level.TickInterval, level.MajorTickInterval = 60, 300
		}
		levels = append(levels, level)
	}
	return levels
}

// New creates a profile positioned at defaultIndex, which is clamped into range.
func New(levels []Level, defaultIndex int) *Profile {
	if len(levels) == 0 {
		levels = DefaultLevels
	}
	defaultIndex = max(0, min(defaultIndex, len(levels)-1))
	return &Profile{levels: levels, index: defaultIndex, defaultIndex: defaultIndex}
}

// NewNamed builds one of the known profiles. Unknown names fall back to the default table.
func NewNamed(name ProfileName) *Profile {
	if name == ProfileMultiplicative {
		return New(MultiplicativeLevels(BasePixelsPerSecond), 2)
	}
	return New(DefaultLevels, 0)
}

func (p *Profile) ZoomIn() bool {
	if !p.CanZoomIn() {
		return false
	}
	p.index++
	return true
}

func (p *Profile) ZoomOut() bool {
	if !p.CanZoomOut() {
		return false
	}
	p.index--
	return true
}

// Reset returns to the level the profile was created with.
func (p *Profile) Reset() {
	p.index = p.defaultIndex
}

func (p *Profile) CanZoomIn() bool  { return p.index < len(p.levels)-1 }
func (p *Profile) CanZoomOut() bool { return p.index > 0 }
func (p *Profile) Index() int       { return p.index }
func (p *Profile) Current() Level   { return p.levels[p.index] }

// Levels returns a copy of the level table.
func (p *Profile) Levels() []Level {
	out := make([]Level, len(p.levels))
	copy(out, p.levels)
	return out
}

func (p *Profile) PixelsPerSecond() float64 {
	return p.levels[p.index].PixelsPerSecond
}

// PixelsToSeconds converts a drag or wheel delta into field seconds.
func (p *Profile) PixelsToSeconds(px float64) float64 {
	return px / p.PixelsPerSecond()
}

func (p *Profile) SecondsToPixels(sec float64) float64 {
	return sec * p.PixelsPerSecond()
}

// TimelineWidth is the pixel width of one half's timeline.
func (p *Profile) TimelineWidth(firstHalfMax int) float64 {
	return p.SecondsToPixels(float64(firstHalfMax))
}

// Ticks lays out the markers of one half's timeline. Both timelines span firstHalfMax
// seconds; labels switch to the stoppage form past 45 minutes.
func (p *Profile) Ticks(firstHalfMax int, half fieldtime.Half) []Tick {
	level := p.Current()
	ticks := make([]Tick, 0, firstHalfMax/level.TickInterval+1)
	for s := 0; s <= firstHalfMax; s += level.TickInterval {
		tick := Tick{
			Offset: s,
			X:      p.SecondsToPixels(float64(s)),
			Major:  s%level.MajorTickInterval == 0,
		}
		regular := s <= fieldtime.RegulationHalf
		stoppageMinutes := (s - fieldtime.RegulationHalf) / 60
		switch {
		case half == fieldtime.FirstHalf && regular:
			tick.Label, tick.Class = fmt.Sprintf("%d'", s/60), LabelRegular1
		case half == fieldtime.FirstHalf:
			tick.Label, tick.Class = fmt.Sprintf("45+%d'", stoppageMinutes), LabelStoppage1
		case regular:
			tick.Label, tick.Class = fmt.Sprintf("%d'", 45+s/60), LabelRegular2
		default:
			tick.Label, tick.Class = fmt.Sprintf("90+%d'", stoppageMinutes), LabelStoppage2
		}
		ticks = append(ticks, tick)
	}
	return ticks
}
