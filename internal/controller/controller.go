package controller

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/autoplay"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/halves"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/pubsub"
	"github.com/mauv0809/field-clock/internal/report"
	"github.com/mauv0809/field-clock/internal/seek"
	"github.com/mauv0809/field-clock/internal/teams"
	"github.com/mauv0809/field-clock/internal/zoom"
)

const unknownClock = "--:--"

// Controller owns the match state. Every exported method takes mu, and the autoplay
// ticker takes the same lock before each tick.
type Controller struct {
	mu sync.Mutex

	halves    *halves.Tracker
	seek      *seek.State
	zoom      *zoom.Profile
	autoplay  *autoplay.Engine
	bookmarks *bookmarks.Store
	teams     *teams.Registry

	notifier  notifier.Notifier
	metrics   metrics.Metrics
	stats     metrics.MetricsStore
	publisher pubsub.PubSubClient
	reports   ReportSender

	loc         *time.Location
	now         func() time.Time
	halfTimeGap time.Duration
	defaultA    teams.Team
	defaultB    teams.Team
}

// New builds a controller around opts.Store. Call Restore before serving requests.
func New(opts Options) *Controller {
	c := &Controller{
		halves:      halves.New(opts.Store),
		seek:        seek.New(opts.Store),
		zoom:        opts.Zoom,
		notifier:    opts.Notifier,
		metrics:     opts.Metrics,
		stats:       opts.Stats,
		publisher:   opts.Publisher,
		reports:     opts.Reports,
		loc:         opts.Location,
		now:         opts.Now,
		halfTimeGap: opts.HalfTimeGap,
		defaultA:    opts.TeamA,
		defaultB:    opts.TeamB,
	}
	if c.zoom == nil {
		c.zoom = zoom.New(zoom.DefaultLevels, 0)
	}
	if c.notifier == nil {
		c.notifier = notifier.NewBus()
	}
	if c.metrics == nil {
		c.metrics = metrics.NewMock()
	}
	if c.publisher == nil {
		c.publisher = pubsub.Noop{}
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.halfTimeGap <= 0 {
		c.halfTimeGap = DefaultHalfTimeGap
	}

	c.bookmarks = bookmarks.NewWithClock(opts.Store, c.now)
	c.teams = teams.New(opts.Store)

	engineOpts := []autoplay.Option{
		autoplay.WithLocker(&c.mu),
		autoplay.WithOnStop(c.onAutoplayEnd),
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, autoplay.WithClock(opts.Clock))
	}
	if opts.AutoplayInterval > 0 {
		engineOpts = append(engineOpts, autoplay.WithInterval(opts.AutoplayInterval))
	}
	c.autoplay = autoplay.New(c.seek, engineOpts...)

	c.seek.Subscribe(c.metrics.SetSeekPosition)
	c.bookmarks.Subscribe(c.metrics.SetBookmarkCount)
	return c
}

// Restore loads everything persisted and fills in defaults for what is missing.
// Without saved kickoffs the first half starts now and the second one HalfTimeGap later.
func (c *Controller) Restore() RestoreResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res RestoreResult
	res.Starts = c.halves.LoadStarts()
	res.Teams = c.teams.Load()
	res.HalfEnds = c.halves.LoadHalfEnds()

	if !res.Starts {
		now := c.localNow()
		second := now.Add(c.halfTimeGap)
		if err := c.halves.SetFirstHalfStart(now.Hour(), now.Minute()); err != nil {
			log.Error("Failed to default first half kickoff", "error", err)
		}
		if err := c.halves.SetSecondHalfStart(second.Hour(), second.Minute()); err != nil {
			log.Error("Failed to default second half kickoff", "error", err)
		}
	}
	if !res.Teams && (c.defaultA != teams.Team{} || c.defaultB != teams.Team{}) {
		if err := c.teams.Set(c.defaultA, c.defaultB); err != nil {
			log.Warn("Ignoring configured team defaults", "error", err)
		}
	}

	c.bookmarks.Load()
	res.Bookmarks = c.bookmarks.Count()
	res.Seek = c.seek.Load()
	if !res.Seek {
		c.seek.Set(0)
	}

	log.Info("State restored", "starts", res.Starts, "seek", res.Seek, "bookmarks", res.Bookmarks, "teams", res.Teams, "half_ends", res.HalfEnds)
	if res.Any() {
		c.notify(notifier.NewWithDuration(notifier.Success, 3*time.Second, "Restored: %s", restoredSummary(res)))
	}
	return res
}

// Close stops autoplay and waits for the ticker to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	c.autoplay.Stop()
	c.mu.Unlock()
	c.autoplay.Wait()
}

// Seek moves the playhead to v after stopping autoplay.
func (c *Controller) Seek(v float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekTo(v, SourceExplicit)
}

// SeekMinuteSecond seeks to minute*60+second, clamped to the valid range.
func (c *Controller) SeekMinuteSecond(minute, second int) (float64, error) {
	if minute < 0 || second < 0 || second > 59 {
		return 0, fmt.Errorf("%d:%02d: %w", minute, second, ErrInvalidSeek)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekTo(float64(minute*60+second), SourceExplicit), nil
}

// QuickJump seeks to one of the preset positions.
func (c *Controller) QuickJump(name string) (float64, error) {
	v, ok := quickJumps[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownQuickJump)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekTo(v, SourceQuick), nil
}

// Nudge steps the playhead by the fine or coarse step.
func (c *Controller) Nudge(direction int, coarse bool) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoplay()
	c.metrics.IncSeeks(SourceNudge)
	return c.seek.Nudge(direction, coarse)
}

// Wheel steps forward for a positive delta and back otherwise.
func (c *Controller) Wheel(delta float64, coarse bool) float64 {
	direction := -1
	if delta > 0 {
		direction = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoplay()
	c.metrics.IncSeeks(SourceWheel)
	return c.seek.Nudge(direction, coarse)
}

// Drag moves the playhead against the drag direction: dragging right shows earlier time.
func (c *Controller) Drag(dx float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoplay()
	c.metrics.IncSeeks(SourceDrag)
	return c.seek.Add(-c.zoom.PixelsToSeconds(dx))
}

// Play starts autoplay from the current position.
func (c *Controller) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startAutoplay()
}

// Pause stops autoplay.
func (c *Controller) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopAutoplay()
}

// TogglePlay flips autoplay and returns the new state.
func (c *Controller) TogglePlay() autoplay.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.autoplay.IsPlaying() {
		c.stopAutoplay()
	} else {
		c.startAutoplay()
	}
	return c.autoplay.State()
}

// GoLive seeks to the field time matching now and starts autoplay from there.
func (c *Controller) GoLive(now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopAutoplay()
	live := fieldtime.RealToField(float64(fieldtime.SecondsOfDay(now.In(c.loc))), c.halves.Config())
	v := c.seek.Set(live)
	c.metrics.IncSeeks(SourceLive)
	c.startAutoplay()
	c.notify(notifier.New(notifier.Info, "Live at %s", fieldtime.Format(v, c.halves.Config())))
	return v
}

func (c *Controller) ZoomIn() ZoomView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom.ZoomIn()
	return c.zoomView()
}

func (c *Controller) ZoomOut() ZoomView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom.ZoomOut()
	return c.zoomView()
}

// Ticks returns the tick layout of one timeline half at the current zoom.
func (c *Controller) Ticks(half fieldtime.Half) []zoom.Tick {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom.Ticks(c.halves.EffectiveFirstHalfMax(), half)
}

// SetFirstHalfStart sets the first half kickoff clock time.
func (c *Controller) SetFirstHalfStart(hour, minute int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halves.SetFirstHalfStart(hour, minute)
}

// SetSecondHalfStart sets the second half kickoff clock time.
func (c *Controller) SetSecondHalfStart(hour, minute int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halves.SetSecondHalfStart(hour, minute)
}

// EndFirstHalf fixes the first half length at the current position.
func (c *Controller) EndFirstHalf() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := int(math.Floor(c.seek.Value()))
	changed, err := c.halves.EndFirstHalf(at)
	if err != nil || !changed {
		return changed, err
	}
	c.halfEnded(fieldtime.FirstHalf, at)
	c.notify(notifier.NewWithDuration(notifier.Warning, 3*time.Second, "First half ended at %s", fieldtime.Format(float64(at), c.halves.Config())))
	return true, nil
}

// EndSecondHalf records the end of the match at the current position and stops autoplay.
func (c *Controller) EndSecondHalf() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := int(math.Floor(c.seek.Value()))
	changed, err := c.halves.EndSecondHalf(at)
	if err != nil || !changed {
		return changed, err
	}
	c.stopAutoplay()
	c.halfEnded(fieldtime.SecondHalf, at)
	c.notify(notifier.NewWithDuration(notifier.Success, 3*time.Second, "Match ended at %s", fieldtime.Format(float64(at), c.halves.Config())))
	return true, nil
}

// ResetFirstHalf clears the recorded first half end once the operator confirms.
func (c *Controller) ResetFirstHalf(confirm bool) (bool, error) {
	if !confirm {
		return false, fmt.Errorf("reset first half end: %w", ErrConfirmationRequired)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.halves.ResetFirstHalf() {
		return false, nil
	}
	c.notify(notifier.New(notifier.Info, "First half end reset"))
	return true, nil
}

// ResetSecondHalf clears the recorded match end once the operator confirms.
func (c *Controller) ResetSecondHalf(confirm bool) (bool, error) {
	if !confirm {
		return false, fmt.Errorf("reset second half end: %w", ErrConfirmationRequired)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.halves.ResetSecondHalf() {
		return false, nil
	}
	c.notify(notifier.New(notifier.Info, "Match end reset"))
	return true, nil
}

// AddBookmark records an event at the current position. When another bookmark sits
// within the tolerance window the add is refused with a *DuplicateError unless
// overwrite is set, in which case the existing one is replaced.
func (c *Controller) AddBookmark(kind bookmarks.EventKind, in bookmarks.NoteInput, overwrite bool) (bookmarks.Bookmark, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := kind.CheckSelection(in.Selection); err != nil {
		return bookmarks.Bookmark{}, err
	}
	at := c.seek.Value()
	existing, found := c.bookmarks.FindNear(at, bookmarks.DefaultTolerance)
	if found && !overwrite {
		return bookmarks.Bookmark{}, &DuplicateError{Existing: existing}
	}

	info, _ := kind.Info()
	if info.TeamOptions && in.Selection != "" && in.TeamColor == "" {
		if color, ok := c.teams.ColorOf(in.Selection); ok {
			in.TeamColor = color
		}
	}
	if !info.TeamOptions {
		in.TeamColor = ""
	}

	if found {
		c.bookmarks.Remove(existing.ID)
		c.metrics.IncBookmarksRemoved()
		c.publish(pubsub.EventBookmarkRemoved, existing)
	}
	b, err := c.bookmarks.Add(at, kind, in)
	if err != nil {
		return bookmarks.Bookmark{}, err
	}
	c.metrics.IncBookmarksAdded(string(kind))
	c.increment("bookmarks_added")
	c.publish(pubsub.EventBookmarkAdded, b)
	c.notify(notifier.New(notifier.Success, "%s %s saved at %s", info.Icon, info.Label, fieldtime.Format(at, c.halves.Config())))
	return b, nil
}

// RemoveBookmark deletes a bookmark. Unknown ids report ErrUnknownBookmark.
func (c *Controller) RemoveBookmark(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bookmarks.Get(id)
	if !ok || !c.bookmarks.Remove(id) {
		return fmt.Errorf("id %d: %w", id, ErrUnknownBookmark)
	}
	c.metrics.IncBookmarksRemoved()
	c.publish(pubsub.EventBookmarkRemoved, b)
	c.notify(notifier.New(notifier.Info, "Bookmark removed"))
	return nil
}

// ClearBookmarks removes every bookmark once the operator confirms. Clearing an empty
// list only warns.
func (c *Controller) ClearBookmarks(confirm bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.bookmarks.Count()
	if count == 0 {
		c.notify(notifier.New(notifier.Warning, "No bookmarks to clear"))
		return bookmarks.ErrNothingToClear
	}
	if !confirm {
		return fmt.Errorf("clear %d bookmarks: %w", count, ErrConfirmationRequired)
	}
	if err := c.bookmarks.Clear(); err != nil {
		return err
	}
	c.publish(pubsub.EventBookmarksClear, map[string]int{"count": count})
	c.notify(notifier.New(notifier.Info, "Cleared %d bookmarks", count))
	return nil
}

// GoToBookmark seeks to a bookmark's time.
func (c *Controller) GoToBookmark(id int64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bookmarks.Get(id)
	if !ok {
		return 0, fmt.Errorf("id %d: %w", id, ErrUnknownBookmark)
	}
	return c.seekTo(b.Time, SourceBookmark), nil
}

func (c *Controller) Bookmarks() []bookmarks.Bookmark {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bookmarks.List()
}

// SetTeams replaces both team names and colors.
func (c *Controller) SetTeams(a, b teams.Team) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.teams.Set(a, b); err != nil {
		return err
	}
	c.notify(notifier.New(notifier.Info, "Teams updated: %s VS %s", c.teams.A().Name, c.teams.B().Name))
	return nil
}

// State returns the read model at the current instant.
func (c *Controller) State() StateView {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.halves.Config()
	v := c.seek.Value()
	offset := fieldtime.TimelineOffset(v, cfg)
	return StateView{
		Seek:           v,
		FieldLabel:     fieldtime.Format(v, cfg),
		RealClock:      c.realClock(v, cfg),
		Half:           fieldtime.HalfOf(v, cfg).String(),
		Phase:          fieldtime.PhaseOf(v, cfg),
		TimelineOffset: offset,
		PlayheadX:      c.zoom.SecondsToPixels(offset),
		FirstHalfMax:   fieldtime.EffectiveFirstHalfMax(cfg),
		Config:         cfg,
		Autoplay:       c.autoplay.State().String(),
		Zoom:           c.zoomView(),
		TeamA:          c.teams.A(),
		TeamB:          c.teams.B(),
		BookmarkCount:  c.bookmarks.Count(),
		Counts:         c.bookmarks.CountsByType(),
	}
}

// FieldLabel formats fieldSec under the current match configuration. It does not read
// the playhead, so a value returned by Seek keeps its own label while autoplay runs.
func (c *Controller) FieldLabel(fieldSec float64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fieldtime.Format(fieldSec, c.halves.Config())
}

// LiveStatus computes the clock values the once-a-second refresh displays. It never
// changes state.
func (c *Controller) LiveStatus(now time.Time) LiveStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.halves.Config()
	local := now.In(c.loc)
	live := seek.Clamp(fieldtime.RealToField(float64(fieldtime.SecondsOfDay(local)), cfg))
	return LiveStatus{
		Now:        local,
		WallClock:  local.Format("15:04:05"),
		LiveField:  live,
		LiveLabel:  fieldtime.Format(live, cfg),
		SeekClock:  c.realClock(c.seek.Value(), cfg),
		Configured: cfg.FirstHalfStart != nil && cfg.SecondHalfStart != nil,
	}
}

// RefreshLive is the periodic job body. It publishes the live field time as a gauge.
func (c *Controller) RefreshLive() {
	status := c.LiveStatus(c.now())
	c.metrics.SetLiveFieldTime(status.LiveField)
	log.Debug("Live refresh", "wall", status.WallClock, "live", status.LiveLabel, "seek_clock", status.SeekClock)
}

// Now is the controller's clock.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Snapshot copies the state a report is built from.
func (c *Controller) Snapshot(now time.Time) report.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(now)
}

// ExportReport builds a snapshot for format and records the export.
func (c *Controller) ExportReport(format report.Format) report.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.snapshot(c.now())
	c.metrics.IncReportsExported(string(format))
	c.increment("reports_exported")
	c.publish(pubsub.EventReportExported, pubsub.ReportExported{
		ExportID:    s.ExportID,
		Format:      string(format),
		TotalEvents: s.TotalEvents,
	})
	return s
}

// PublishReport sends the current report to the configured destination.
func (c *Controller) PublishReport() (report.Snapshot, error) {
	if c.reports == nil {
		return report.Snapshot{}, ErrReportsDisabled
	}
	s := c.ExportReport("slack")
	if err := c.reports.SendReport(s); err != nil {
		c.notify(notifier.New(notifier.Error, "Report could not be sent"))
		return s, fmt.Errorf("publish report %s: %w", s.ExportID, err)
	}
	c.notify(notifier.New(notifier.Success, "Report sent (%d events)", s.TotalEvents))
	return s, nil
}

func (c *Controller) snapshot(now time.Time) report.Snapshot {
	return report.Build(report.Input{
		Config:    c.halves.Config(),
		TeamA:     c.teams.A(),
		TeamB:     c.teams.B(),
		Bookmarks: c.bookmarks.List(),
		Counts:    c.bookmarks.CountsByType(),
		Seek:      c.seek.Value(),
		Now:       now.In(c.loc),
	})
}

// seekTo is an explicit seek: autoplay stops before the position changes.
func (c *Controller) seekTo(v float64, source string) float64 {
	c.stopAutoplay()
	c.metrics.IncSeeks(source)
	return c.seek.Set(v)
}

func (c *Controller) startAutoplay() bool {
	if !c.autoplay.Start() {
		return false
	}
	c.metrics.IncAutoplayStarts()
	return true
}

func (c *Controller) stopAutoplay() bool {
	return c.autoplay.Stop()
}

// onAutoplayEnd runs from the ticker with mu held.
func (c *Controller) onAutoplayEnd() {
	c.notify(notifier.New(notifier.Info, "Reached the end of the match clock"))
}

func (c *Controller) halfEnded(half fieldtime.Half, at int) {
	c.increment("halves_ended")
	c.publish(pubsub.EventHalfEnded, pubsub.HalfEnded{
		Half:         half.String(),
		FieldSeconds: at,
		Label:        fieldtime.Format(float64(at), c.halves.Config()),
	})
}

func (c *Controller) zoomView() ZoomView {
	level := c.zoom.Current()
	return ZoomView{
		Index:           c.zoom.Index(),
		Name:            level.Name,
		PixelsPerSecond: level.PixelsPerSecond,
		CanZoomIn:       c.zoom.CanZoomIn(),
		CanZoomOut:      c.zoom.CanZoomOut(),
		TimelineWidth:   c.zoom.TimelineWidth(c.halves.EffectiveFirstHalfMax()),
	}
}

func (c *Controller) realClock(fieldSec float64, cfg fieldtime.MatchConfig) string {
	realSec, ok := fieldtime.FieldToReal(fieldSec, cfg)
	if !ok {
		return unknownClock
	}
	return fieldtime.FormatClock(realSec)
}

func (c *Controller) localNow() time.Time {
	return c.now().In(c.loc)
}

func (c *Controller) notify(n notifier.Notification) {
	c.notifier.Notify(n)
}

func (c *Controller) publish(event pubsub.EventType, payload any) {
	if err := c.publisher.SendMessage(event, payload); err != nil {
		log.Error("Failed to publish event", "event", event, "error", err)
	}
}

func (c *Controller) increment(key string) {
	if c.stats != nil {
		c.stats.Increment(key)
	}
}

func restoredSummary(res RestoreResult) string {
	var parts []string
	if res.Starts {
		parts = append(parts, "kickoff times")
	}
	if res.Seek {
		parts = append(parts, "position")
	}
	if res.Bookmarks > 0 {
		parts = append(parts, fmt.Sprintf("%d events", res.Bookmarks))
	}
	if res.Teams {
		parts = append(parts, "teams")
	}
	if res.HalfEnds {
		parts = append(parts, "half ends")
	}
	return strings.Join(parts, ", ")
}
