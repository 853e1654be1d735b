package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/mauv0809/field-clock/internal/autoplay"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/pubsub"
	"github.com/mauv0809/field-clock/internal/report"
	"github.com/mauv0809/field-clock/internal/storage"
	"github.com/mauv0809/field-clock/internal/teams"
	"github.com/mauv0809/field-clock/internal/zoom"
)

var (
	ErrDuplicate            = errors.New("a bookmark already exists near this time")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnknownQuickJump     = errors.New("unknown quick jump")
	ErrUnknownBookmark      = errors.New("bookmark not found")
	ErrInvalidSeek          = errors.New("invalid seek position")
	ErrReportsDisabled      = errors.New("no report destination configured")
)

// DuplicateError carries the bookmark that blocked an add.
type DuplicateError struct {
	Existing bookmarks.Bookmark
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: id %d at %.0fs", ErrDuplicate, e.Existing.ID, e.Existing.Time)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// DefaultHalfTimeGap is the assumed distance between kickoffs when none were saved.
const DefaultHalfTimeGap = 55 * time.Minute

// Seek sources reported to metrics.
const (
	SourceExplicit = "explicit"
	SourceQuick    = "quick"
	SourceNudge    = "nudge"
	SourceWheel    = "wheel"
	SourceDrag     = "drag"
	SourceBookmark = "bookmark"
	SourceLive     = "live"
)

// quickJumps are the preset field times offered next to minute:second entry.
var quickJumps = map[string]float64{
	"0":     0,
	"45":    2700,
	"90":    5400,
	"45+5":  3000,
	"90+5":  7500,
	"90+10": 7800,
}

// QuickJumps lists the accepted quick jump names.
func QuickJumps() map[string]float64 {
	out := make(map[string]float64, len(quickJumps))
	for k, v := range quickJumps {
		out[k] = v
	}
	return out
}

// ReportSender delivers an exported report somewhere outside the process.
type ReportSender interface {
	SendReport(report.Snapshot) error
}

// Options configures New. Store is required; everything else has a usable default.
type Options struct {
	Store     storage.KeyValueStore
	Metrics   metrics.Metrics
	Stats     metrics.MetricsStore
	Notifier  notifier.Notifier
	Publisher pubsub.PubSubClient
	Reports   ReportSender
	Zoom      *zoom.Profile
	Location  *time.Location
	Now       func() time.Time
	Clock     autoplay.Clock

	AutoplayInterval time.Duration
	HalfTimeGap      time.Duration
	TeamA            teams.Team
	TeamB            teams.Team
}

// RestoreResult reports which pieces of state were found in storage.
type RestoreResult struct {
	Starts    bool `json:"starts"`
	Seek      bool `json:"seek"`
	Bookmarks int  `json:"bookmarks"`
	Teams     bool `json:"teams"`
	HalfEnds  bool `json:"halfEnds"`
}

// Any reports whether anything was restored.
func (r RestoreResult) Any() bool {
	return r.Starts || r.Seek || r.Bookmarks > 0 || r.Teams || r.HalfEnds
}

// ZoomView describes the active zoom level.
type ZoomView struct {
	Index           int     `json:"index"`
	Name            string  `json:"name"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
	CanZoomIn       bool    `json:"canZoomIn"`
	CanZoomOut      bool    `json:"canZoomOut"`
	TimelineWidth   float64 `json:"timelineWidth"`
}

// StateView is the read model a UI renders from.
type StateView struct {
	Seek           float64                     `json:"seek"`
	FieldLabel     string                      `json:"fieldLabel"`
	RealClock      string                      `json:"realClock"`
	Half           string                      `json:"half"`
	Phase          fieldtime.Phase             `json:"phase"`
	TimelineOffset float64                     `json:"timelineOffset"`
	PlayheadX      float64                     `json:"playheadX"`
	FirstHalfMax   int                         `json:"firstHalfMax"`
	Config         fieldtime.MatchConfig       `json:"config"`
	Autoplay       string                      `json:"autoplay"`
	Zoom           ZoomView                    `json:"zoom"`
	TeamA          teams.Team                  `json:"teamA"`
	TeamB          teams.Team                  `json:"teamB"`
	BookmarkCount  int                         `json:"bookmarkCount"`
	Counts         map[bookmarks.EventKind]int `json:"counts"`
}

// LiveStatus is what the once-a-second refresh shows.
type LiveStatus struct {
	Now        time.Time `json:"now"`
	WallClock  string    `json:"wallClock"`
	LiveField  float64   `json:"liveField"`
	LiveLabel  string    `json:"liveLabel"`
	SeekClock  string    `json:"seekClock"`
	Configured bool      `json:"configured"`
}
