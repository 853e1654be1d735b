package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/fieldtime"
)

const unknownClock = "--:--"

// Build assembles a snapshot from a copy of the core state.
func Build(in Input) Snapshot {
	cfg := in.Config
	s := Snapshot{
		ExportID:        uuid.NewString(),
		MatchTitle:      fmt.Sprintf("%s VS %s", in.TeamA.Name, in.TeamB.Name),
		MatchDate:       in.Now.Format("2 January 2006"),
		TeamA:           in.TeamA,
		TeamB:           in.TeamB,
		FirstHalfStart:  clockOrUnknown(cfg.FirstHalfStart),
		SecondHalfStart: clockOrUnknown(cfg.SecondHalfStart),
		FirstHalfEnd:    endOrNotSet(cfg.FirstHalfEnd, cfg),
		SecondHalfEnd:   endOrNotSet(cfg.SecondHalfEnd, cfg),
		CurrentPosition: fieldtime.Format(in.Seek, cfg),
		PerTypeCounts:   make(map[string]int, len(in.Counts)),
		TotalEvents:     len(in.Bookmarks),
		ExportedAt:      in.Now,
	}
	for kind, n := range in.Counts {
		s.PerTypeCounts[string(kind)] = n
	}

	s.Bookmarks = make([]Entry, 0, len(in.Bookmarks))
	for i, b := range in.Bookmarks {
		s.Bookmarks = append(s.Bookmarks, entryFor(i+1, b, cfg))
	}
	s.Pages = pageCount(len(s.Bookmarks), EventsPerPage)
	return s
}

// Paginate splits entries into pages of perPage. An empty list yields no pages.
func Paginate(entries []Entry, perPage int) []Page {
	if perPage <= 0 {
		perPage = EventsPerPage
	}
	total := pageCount(len(entries), perPage)
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		end := min((i+1)*perPage, len(entries))
		pages = append(pages, Page{Number: i + 1, Total: total, Entries: entries[i*perPage : end]})
	}
	return pages
}

// Summary is a short plain text rendering for chat.
func (s Snapshot) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.MatchTitle)
	fmt.Fprintf(&b, "Kick-off %s / %s, position %s\n", s.FirstHalfStart, s.SecondHalfStart, s.CurrentPosition)
	fmt.Fprintf(&b, "First half end: %s, second half end: %s\n", s.FirstHalfEnd, s.SecondHalfEnd)
	fmt.Fprintf(&b, "Events: %d", s.TotalEvents)
	for _, info := range bookmarks.Kinds() {
		if n := s.PerTypeCounts[string(info.Kind)]; n > 0 {
			fmt.Fprintf(&b, ", %s %d", info.Icon, n)
		}
	}
	return b.String()
}

func entryFor(index int, b bookmarks.Bookmark, cfg fieldtime.MatchConfig) Entry {
	e := Entry{
		Index:     index,
		ID:        b.ID,
		Time:      b.Time,
		FieldTime: fieldtime.Format(b.Time, cfg),
		RealTime:  unknownClock,
		Half:      fieldtime.HalfOf(b.Time, cfg).String(),
		Type:      b.Type,
		Note:      b.Note,
	}
	if info, ok := b.Type.Info(); ok {
		e.Icon, e.Label = info.Icon, info.Label
	}
	if realSec, ok := fieldtime.FieldToReal(b.Time, cfg); ok {
		e.RealTime = fieldtime.FormatClock(realSec)
	}
	if b.TeamName != nil {
		e.TeamName = *b.TeamName
	}
	if b.TeamColor != nil {
		e.TeamColor = *b.TeamColor
	}
	return e
}

func clockOrUnknown(startOfDay *int) string {
	if startOfDay == nil {
		return unknownClock
	}
	return fieldtime.FormatClock(float64(*startOfDay))
}

func endOrNotSet(end *int, cfg fieldtime.MatchConfig) string {
	if end == nil {
		return NotSet
	}
	return fieldtime.Format(float64(*end), cfg)
}

func pageCount(n, perPage int) int {
	return (n + perPage - 1) / perPage
}
