package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/config"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/database"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/storage"
	"github.com/mauv0809/field-clock/internal/teams"
)

// demoEvent is a bookmark placed at a fixed field second.
type demoEvent struct {
	at        float64
	kind      bookmarks.EventKind
	selection string
	note      string
}

func main() {
	events := flag.Int("random", 0, "Add this many random events on top of the scripted ones")
	flag.Parse()

	log.Info("Starting match seeder...")
	cfg := config.Load()

	dialect := database.DialectSQLite
	if cfg.Turso.PrimaryURL != "" {
		dialect = database.DialectTurso
	}
	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve match timezone: %s", err)
	}

	store := storage.NewSQL(db, dialect, metrics.NewMock())
	ctrl := controller.New(controller.Options{
		Store:    store,
		Stats:    metrics.New(db, dialect),
		Location: loc,
	})
	defer ctrl.Close()
	ctrl.Restore()

	startTime := time.Now()
	if err := ctrl.SetTeams(teams.Team{Name: "Red Lions", Color: "#c62828"}, teams.Team{Name: "Blue Sharks", Color: "#1565c0"}); err != nil {
		log.Fatalf("Failed to set teams: %s", err)
	}
	if err := ctrl.SetFirstHalfStart(15, 0); err != nil {
		log.Fatalf("Failed to set first kickoff: %s", err)
	}
	if err := ctrl.SetSecondHalfStart(16, 0); err != nil {
		log.Fatalf("Failed to set second kickoff: %s", err)
	}
	if err := ctrl.ClearBookmarks(true); err != nil {
		log.Info("No previous events to clear")
	}

	script := []demoEvent{
		{at: 734, kind: bookmarks.Yellow, selection: "Blue Sharks"},
		{at: 1502, kind: bookmarks.Goal, selection: "Red Lions", note: "Header from a corner"},
		{at: 2310, kind: bookmarks.Important, selection: bookmarks.OnFieldReview},
		{at: 2805, kind: bookmarks.Substitution, selection: "Blue Sharks"},
		{at: 3900, kind: bookmarks.Penalty, selection: "Blue Sharks"},
		{at: 3930, kind: bookmarks.Goal, selection: "Blue Sharks", note: "Penalty converted"},
		{at: 4820, kind: bookmarks.Red, selection: "Red Lions"},
		{at: 5510, kind: bookmarks.Custom, note: "Floodlight failure"},
	}
	for i := 0; i < *events; i++ {
		script = append(script, randomEvent())
	}

	added := 0
	for _, e := range script {
		ctrl.Seek(e.at)
		_, err := ctrl.AddBookmark(e.kind, bookmarks.NoteInput{Selection: e.selection, Text: e.note}, false)
		if err != nil {
			log.Warn("Skipped event", "kind", e.kind, "at", e.at, "error", err)
			continue
		}
		added++
	}
	ctrl.Seek(0)

	log.Info("Successfully seeded match.", "events", added, "duration", time.Since(startTime))
}

func randomEvent() demoEvent {
	kinds := []bookmarks.EventKind{bookmarks.Yellow, bookmarks.Goal, bookmarks.Substitution}
	sides := []string{"Red Lions", "Blue Sharks"}
	return demoEvent{
		at:        float64(rand.Intn(5400)),
		kind:      kinds[rand.Intn(len(kinds))],
		selection: sides[rand.Intn(len(sides))],
	}
}
