package bookmarks

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrNothingToClear   = errors.New("no bookmarks to clear")
	ErrUnknownKind      = errors.New("unknown event kind")
	ErrInvalidSelection = errors.New("selection not offered for this event kind")
)

// DefaultTolerance is the window, in field seconds, inside which two bookmarks count as
// the same moment.
const DefaultTolerance = 5.0

// EventKind is the closed set of annotatable match events.
type EventKind string

const (
	Yellow       EventKind = "yellow"
	SecondYellow EventKind = "secondYellow"
	Red          EventKind = "red"
	Penalty      EventKind = "penalty"
	Goal         EventKind = "goal"
	Substitution EventKind = "substitution"
	Important    EventKind = "important"
	Custom       EventKind = "custom"
)

// Review options offered for Important events.
const (
	OnFieldReview = "OFR (onfield review)"
	OnlyReview    = "ONR (only review)"
)

// KindInfo is the display metadata of an EventKind.
type KindInfo struct {
	Kind          EventKind `json:"kind"`
	Icon          string    `json:"icon"`
	Label         string    `json:"label"`
	TeamOptions   bool      `json:"teamOptions"`
	ReviewOptions []string  `json:"reviewOptions,omitempty"`
}

var kinds = []KindInfo{
	{Kind: Yellow, Icon: "🟨", Label: "Yellow card", TeamOptions: true},
	{Kind: SecondYellow, Icon: "🟨²🟥", Label: "Second yellow", TeamOptions: true},
	{Kind: Red, Icon: "🟥", Label: "Red card", TeamOptions: true},
	{Kind: Penalty, Icon: "🔴", Label: "Penalty", TeamOptions: true},
	{Kind: Goal, Icon: "⚽", Label: "Goal", TeamOptions: true},
	{Kind: Substitution, Icon: "🔄", Label: "Substitution", TeamOptions: true},
	{Kind: Important, Icon: "⭐", Label: "Important", ReviewOptions: []string{OnFieldReview, OnlyReview}},
	{Kind: Custom, Icon: "📝", Label: "Custom"},
}

// Kinds lists every event kind in display order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kinds))
	copy(out, kinds)
	return out
}

// Info returns the metadata for k.
func (k EventKind) Info() (KindInfo, bool) {
	for _, info := range kinds {
		if info.Kind == k {
			return info, true
		}
	}
	return KindInfo{}, false
}

func (k EventKind) Valid() bool {
	_, ok := k.Info()
	return ok
}

// CheckSelection reports whether selection may accompany an event of kind k. Kinds with
// team options take any team name; the others only their review options, if any.
func (k EventKind) CheckSelection(selection string) error {
	info, ok := k.Info()
	if !ok {
		return fmt.Errorf("%q: %w", k, ErrUnknownKind)
	}
	selection = strings.TrimSpace(selection)
	if selection != "" && !info.TeamOptions && !slices.Contains(info.ReviewOptions, selection) {
		return fmt.Errorf("%q for %s: %w", selection, k, ErrInvalidSelection)
	}
	return nil
}

// Bookmark is one annotated moment. The JSON form is what gets persisted.
type Bookmark struct {
	ID        int64     `json:"id"`
	Time      float64   `json:"time"`
	Type      EventKind `json:"type"`
	Note      string    `json:"note"`
	TeamColor *string   `json:"teamColor"`
	TeamName  *string   `json:"teamName"`
	Created   string    `json:"created"`
}

// NoteInput is what the operator entered alongside an event: an optional selection
// (a team name or a review option), free text, and the color of the selected team.
type NoteInput struct {
	Selection string `json:"selection,omitempty"`
	Text      string `json:"text,omitempty"`
	TeamColor string `json:"teamColor,omitempty"`
}

// Observer is told the bookmark count after every change.
type Observer func(count int)
