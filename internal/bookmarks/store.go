package bookmarks

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/storage"
)

const createdLayout = "2006-01-02T15:04:05.000Z"

// Store is the time-ordered bookmark collection. Bookmarks at equal times keep their
// insertion order. Every change is persisted as one JSON array.
type Store struct {
	items     []Bookmark
	kv        storage.KeyValueStore
	now       func() time.Time
	lastID    int64
	observers []Observer
}

func New(kv storage.KeyValueStore) *Store {
	return NewWithClock(kv, time.Now)
}

// NewWithClock is New with a custom time source for ids and creation stamps.
func NewWithClock(kv storage.KeyValueStore, now func() time.Time) *Store {
	return &Store{kv: kv, now: now}
}

func (s *Store) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// CombineNote joins a selection and free text the way they are shown on the timeline.
func CombineNote(selection, text string) string {
	selection = strings.TrimSpace(selection)
	text = strings.TrimSpace(text)
	switch {
	case selection != "" && text != "":
		return selection + " - " + text
	case selection != "":
		return selection
	default:
		return text
	}
}

// Add inserts a bookmark at fieldSec. A team is attached only when both a selection and
// its color are present.
func (s *Store) Add(fieldSec float64, kind EventKind, note NoteInput) (Bookmark, error) {
	if err := kind.CheckSelection(note.Selection); err != nil {
		return Bookmark{}, err
	}
	selection := strings.TrimSpace(note.Selection)

	now := s.now()
	b := Bookmark{
		ID:      s.nextID(now),
		Time:    fieldSec,
		Type:    kind,
		Note:    CombineNote(selection, note.Text),
		Created: now.UTC().Format(createdLayout),
	}
	if color := strings.TrimSpace(note.TeamColor); color != "" && selection != "" {
		b.TeamColor = &color
		b.TeamName = &selection
	}

	s.items = append(s.items, b)
	s.sort()
	s.changed()
	log.Info("Bookmark added", "id", b.ID, "type", b.Type, "time", b.Time)
	return b, nil
}

// FindNear returns the earliest bookmark within tolerance seconds of fieldSec.
func (s *Store) FindNear(fieldSec, tolerance float64) (Bookmark, bool) {
	for _, b := range s.items {
		if math.Abs(b.Time-fieldSec) <= tolerance {
			return b, true
		}
	}
	return Bookmark{}, false
}

func (s *Store) Get(id int64) (Bookmark, bool) {
	for _, b := range s.items {
		if b.ID == id {
			return b, true
		}
	}
	return Bookmark{}, false
}

// Remove deletes the bookmark with id. Missing ids are a no-op and report false.
func (s *Store) Remove(id int64) bool {
	idx := slices.IndexFunc(s.items, func(b Bookmark) bool { return b.ID == id })
	if idx < 0 {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	s.changed()
	log.Info("Bookmark removed", "id", id)
	return true
}

// Clear removes every bookmark. Callers confirm with the operator first.
func (s *Store) Clear() error {
	if len(s.items) == 0 {
		return ErrNothingToClear
	}
	count := len(s.items)
	s.items = nil
	s.changed()
	log.Info("Bookmarks cleared", "count", count)
	return nil
}

// List returns a copy in time order.
func (s *Store) List() []Bookmark {
	return slices.Clone(s.items)
}

func (s *Store) Count() int {
	return len(s.items)
}

// CountsByType counts bookmarks per kind. Every kind is present.
func (s *Store) CountsByType() map[EventKind]int {
	counts := make(map[EventKind]int, len(kinds))
	for _, info := range kinds {
		counts[info.Kind] = 0
	}
	for _, b := range s.items {
		counts[b.Type]++
	}
	return counts
}

// Load restores persisted bookmarks. A malformed value restores as an empty list, and
// entries of unknown kinds are dropped.
func (s *Store) Load() bool {
	raw, ok := s.kv.Get(storage.KeyBookmarks)
	if !ok {
		return false
	}
	var loaded []Bookmark
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		log.Warn("Discarding malformed bookmarks", "error", err)
		s.items = nil
		return false
	}
	s.items = s.items[:0]
	for _, b := range loaded {
		if !b.Type.Valid() {
			log.Warn("Dropping bookmark of unknown kind", "id", b.ID, "type", b.Type)
			continue
		}
		s.items = append(s.items, b)
		s.lastID = max(s.lastID, b.ID)
	}
	s.sort()
	s.notify()
	return len(s.items) > 0
}

// nextID uses the creation millisecond, bumped past the last id when the clock repeats.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) sort() {
	slices.SortStableFunc(s.items, func(a, b Bookmark) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
}

func (s *Store) changed() {
	s.persist()
	s.notify()
}

func (s *Store) persist() {
	items := s.items
	if items == nil {
		items = []Bookmark{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		log.Error("Failed to encode bookmarks", "error", err)
		return
	}
	s.kv.Set(storage.KeyBookmarks, string(data))
}

func (s *Store) notify() {
	for _, o := range s.observers {
		o(len(s.items))
	}
}
