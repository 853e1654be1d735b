package report

import (
	"errors"
	"time"

	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/teams"
)

// EventsPerPage is how many events fit on one report page.
const EventsPerPage = 15

// NotSet is shown for a half that has not been ended.
const NotSet = "not set"

var ErrUnknownFormat = errors.New("unknown report format")

// Format is an export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Input is everything a snapshot is assembled from. It is a copy of core state.
type Input struct {
	Config    fieldtime.MatchConfig
	TeamA     teams.Team
	TeamB     teams.Team
	Bookmarks []bookmarks.Bookmark
	Counts    map[bookmarks.EventKind]int
	Seek      float64
	Now       time.Time
}

// Entry is one event row of the report.
type Entry struct {
	Index     int                 `json:"index" yaml:"index" msgpack:"index"`
	ID        int64               `json:"id" yaml:"id" msgpack:"id"`
	Time      float64             `json:"time" yaml:"time" msgpack:"time"`
	FieldTime string              `json:"fieldTime" yaml:"fieldTime" msgpack:"fieldTime"`
	RealTime  string              `json:"realTime" yaml:"realTime" msgpack:"realTime"`
	Half      string              `json:"half" yaml:"half" msgpack:"half"`
	Type      bookmarks.EventKind `json:"type" yaml:"type" msgpack:"type"`
	Icon      string              `json:"icon" yaml:"icon" msgpack:"icon"`
	Label     string              `json:"label" yaml:"label" msgpack:"label"`
	Note      string              `json:"note,omitempty" yaml:"note,omitempty" msgpack:"note,omitempty"`
	TeamName  string              `json:"teamName,omitempty" yaml:"teamName,omitempty" msgpack:"teamName,omitempty"`
	TeamColor string              `json:"teamColor,omitempty" yaml:"teamColor,omitempty" msgpack:"teamColor,omitempty"`
}

// Snapshot is the read-only view handed to a report assembler.
type Snapshot struct {
	ExportID        string         `json:"exportId" yaml:"exportId" msgpack:"exportId"`
	MatchTitle      string         `json:"matchTitle" yaml:"matchTitle" msgpack:"matchTitle"`
	MatchDate       string         `json:"matchDate" yaml:"matchDate" msgpack:"matchDate"`
	TeamA           teams.Team     `json:"teamA" yaml:"teamA" msgpack:"teamA"`
	TeamB           teams.Team     `json:"teamB" yaml:"teamB" msgpack:"teamB"`
	FirstHalfStart  string         `json:"firstHalfStart" yaml:"firstHalfStart" msgpack:"firstHalfStart"`
	SecondHalfStart string         `json:"secondHalfStart" yaml:"secondHalfStart" msgpack:"secondHalfStart"`
	FirstHalfEnd    string         `json:"firstHalfEnd" yaml:"firstHalfEnd" msgpack:"firstHalfEnd"`
	SecondHalfEnd   string         `json:"secondHalfEnd" yaml:"secondHalfEnd" msgpack:"secondHalfEnd"`
	CurrentPosition string         `json:"currentPosition" yaml:"currentPosition" msgpack:"currentPosition"`
	Bookmarks       []Entry        `json:"bookmarks" yaml:"bookmarks" msgpack:"bookmarks"`
	PerTypeCounts   map[string]int `json:"perTypeCounts" yaml:"perTypeCounts" msgpack:"perTypeCounts"`
	TotalEvents     int            `json:"totalEvents" yaml:"totalEvents" msgpack:"totalEvents"`
	Pages           int            `json:"pages" yaml:"pages" msgpack:"pages"`
	ExportedAt      time.Time      `json:"exportedAt" yaml:"exportedAt" msgpack:"exportedAt"`
}

// Page is one slice of events.
type Page struct {
	Number  int     `json:"number" yaml:"number" msgpack:"number"`
	Total   int     `json:"total" yaml:"total" msgpack:"total"`
	Entries []Entry `json:"entries" yaml:"entries" msgpack:"entries"`
}
