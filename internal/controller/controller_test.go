package controller_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/field-clock/internal/autoplay"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/halves"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/pubsub"
	"github.com/mauv0809/field-clock/internal/report"
	"github.com/mauv0809/field-clock/internal/storage"
	"github.com/mauv0809/field-clock/internal/teams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeReports struct {
	sent []report.Snapshot
	err  error
}

func (f *fakeReports) SendReport(s report.Snapshot) error {
	f.sent = append(f.sent, s)
	return f.err
}

type harness struct {
	ctrl     *controller.Controller
	store    *storage.Mock
	metrics  *metrics.Mock
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	clock    *manualClock
}

func newHarness(t *testing.T, mutate ...func(*controller.Options)) *harness {
	t.Helper()
	h := &harness{
		store:    storage.NewMock(),
		metrics:  metrics.NewMock(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(),
		clock:    &manualClock{now: kickoff},
	}
	opts := controller.Options{
		Store:            h.store,
		Metrics:          h.metrics,
		Notifier:         h.notifier,
		Publisher:        h.pubsub,
		Location:         time.UTC,
		Now:              h.clock.Now,
		Clock:            h.clock,
		AutoplayInterval: time.Hour,
	}
	for _, m := range mutate {
		m(&opts)
	}
	h.ctrl = controller.New(opts)
	t.Cleanup(h.ctrl.Close)
	return h
}

// restored returns a harness whose kickoffs are 15:00 and 16:00.
func restored(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	h.ctrl.Restore()
	require.NoError(t, h.ctrl.SetFirstHalfStart(15, 0))
	require.NoError(t, h.ctrl.SetSecondHalfStart(16, 0))
	h.notifier.Reset()
	return h
}

func TestRestore_Defaults(t *testing.T) {
	h := newHarness(t)
	res := h.ctrl.Restore()

	assert.False(t, res.Any())
	cfg := h.ctrl.State().Config
	require.NotNil(t, cfg.FirstHalfStart)
	require.NotNil(t, cfg.SecondHalfStart)
	assert.Equal(t, 15*3600, *cfg.FirstHalfStart)
	assert.Equal(t, 15*3600+55*60, *cfg.SecondHalfStart)

	v, ok := h.store.Get(storage.KeySecondHalfMinute)
	require.True(t, ok)
	assert.Equal(t, "55", v)
	assert.Equal(t, 0.0, h.ctrl.State().Seek)
	assert.Empty(t, h.notifier.Notifications(), "nothing restored, nothing announced")
}

func TestRestore_RoundTrip(t *testing.T) {
	h := restored(t)
	require.NoError(t, h.ctrl.SetTeams(teams.Team{Name: "Buriram", Color: "#1e3a8a"}, teams.Team{Name: "Port"}))
	h.ctrl.Seek(3120)
	_, err := h.ctrl.EndFirstHalf()
	require.NoError(t, err)
	_, err = h.ctrl.AddBookmark(bookmarks.Goal, bookmarks.NoteInput{Selection: "Port"}, false)
	require.NoError(t, err)
	h.ctrl.Seek(4000)

	next := controller.New(controller.Options{Store: h.store, Location: time.UTC, Now: h.clock.Now, Notifier: h.notifier})
	t.Cleanup(next.Close)
	res := next.Restore()

	assert.Equal(t, controller.RestoreResult{Starts: true, Seek: true, Bookmarks: 1, Teams: true, HalfEnds: true}, res)
	state := next.State()
	assert.Equal(t, 4000.0, state.Seek)
	assert.Equal(t, 3120, state.FirstHalfMax)
	assert.Equal(t, "Buriram", state.TeamA.Name)
	assert.Equal(t, 1, state.BookmarkCount)

	last, ok := h.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, notifier.Success, last.Kind)
	assert.Contains(t, last.Message, "1 events")
}

func TestRestore_MalformedBookmarks(t *testing.T) {
	h := newHarness(t)
	h.store.Put(storage.KeyBookmarks, "[{broken")
	res := h.ctrl.Restore()
	assert.Equal(t, 0, res.Bookmarks)
	assert.Empty(t, h.ctrl.Bookmarks())
}

func TestSeek_StopsAutoplay(t *testing.T) {
	h := restored(t)

	require.True(t, h.ctrl.Play())
	assert.Equal(t, autoplay.Playing.String(), h.ctrl.State().Autoplay)

	assert.Equal(t, 100.0, h.ctrl.Seek(100))
	assert.Equal(t, autoplay.Stopped.String(), h.ctrl.State().Autoplay)
	assert.Equal(t, 1, h.metrics.Seeks(controller.SourceExplicit))
	assert.Equal(t, 100.0, h.metrics.SeekPosition())

	assert.Equal(t, 9000.0, h.ctrl.Seek(12000))
	assert.Equal(t, 0.0, h.ctrl.Seek(-5))
}

func TestSeekMinuteSecond(t *testing.T) {
	h := restored(t)

	v, err := h.ctrl.SeekMinuteSecond(47, 30)
	require.NoError(t, err)
	assert.Equal(t, 2850.0, v)

	v, err = h.ctrl.SeekMinuteSecond(200, 0)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, v)

	_, err = h.ctrl.SeekMinuteSecond(1, 60)
	assert.ErrorIs(t, err, controller.ErrInvalidSeek)
}

func TestQuickJump(t *testing.T) {
	h := restored(t)
	for name, want := range controller.QuickJumps() {
		v, err := h.ctrl.QuickJump(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, v, name)
	}

	v, _ := h.ctrl.QuickJump("45+5")
	assert.Equal(t, 3000.0, v)

	_, err := h.ctrl.QuickJump("120")
	assert.ErrorIs(t, err, controller.ErrUnknownQuickJump)
}

func TestRelativeSeeks(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(100)

	assert.Equal(t, 105.0, h.ctrl.Nudge(1, false))
	assert.Equal(t, 75.0, h.ctrl.Nudge(-1, true))
	assert.Equal(t, 80.0, h.ctrl.Wheel(120, false))
	assert.Equal(t, 50.0, h.ctrl.Wheel(-3, true))

	pps := h.ctrl.State().Zoom.PixelsPerSecond
	assert.InDelta(t, 40.0, h.ctrl.Drag(10*pps), 1e-9, "dragging right moves back in time")
	assert.InDelta(t, 60.0, h.ctrl.Drag(-20*pps), 1e-9)

	h.ctrl.Seek(2)
	assert.Equal(t, 0.0, h.ctrl.Nudge(-1, true))
}

func TestTogglePlay(t *testing.T) {
	h := restored(t)
	assert.Equal(t, autoplay.Playing, h.ctrl.TogglePlay())
	assert.False(t, h.ctrl.Play(), "already playing")
	assert.Equal(t, autoplay.Stopped, h.ctrl.TogglePlay())
	assert.False(t, h.ctrl.Pause())
	assert.Equal(t, 1, h.metrics.AutoplayStarts())
}

func TestGoLive(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"before kickoff", kickoff.Add(-10 * time.Minute), 0},
		{"first half", kickoff.Add(10 * time.Minute), 600},
		{"half time caps at the first half length", kickoff.Add(59 * time.Minute), 3540},
		{"second half", kickoff.Add(70 * time.Minute), 4500 + 600},
		{"after full time clamps", kickoff.Add(4 * time.Hour), 9000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := restored(t)
			got := h.ctrl.GoLive(tt.at)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, autoplay.Playing.String(), h.ctrl.State().Autoplay)
			assert.Equal(t, 1, h.metrics.Seeks(controller.SourceLive))
		})
	}
}

func TestFieldLabel_FollowsValueNotPlayhead(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(100)

	v := h.ctrl.GoLive(kickoff.Add(20 * time.Minute))
	require.Equal(t, 1200.0, v)
	h.ctrl.Seek(1500)

	assert.Equal(t, "20:00", h.ctrl.FieldLabel(v))
	assert.Equal(t, "45+5:00", h.ctrl.FieldLabel(3000))
	assert.Equal(t, "25:00", h.ctrl.State().FieldLabel)
}

func TestAutoplay_StopsAtEnd(t *testing.T) {
	h := newHarness(t, func(o *controller.Options) { o.AutoplayInterval = 5 * time.Millisecond })
	h.ctrl.Restore()
	h.ctrl.Seek(8998)
	require.True(t, h.ctrl.Play())

	h.clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool {
		s := h.ctrl.State()
		return s.Seek == 9000 && s.Autoplay == autoplay.Stopped.String()
	}, time.Second, 5*time.Millisecond)

	last, ok := h.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, notifier.Info, last.Kind)
}

func TestEndFirstHalf(t *testing.T) {
	h := restored(t)

	h.ctrl.Seek(2000)
	_, err := h.ctrl.EndFirstHalf()
	assert.ErrorIs(t, err, halves.ErrBeforeRegulationEnd)

	h.ctrl.Seek(3120)
	changed, err := h.ctrl.EndFirstHalf()
	require.NoError(t, err)
	assert.True(t, changed)

	state := h.ctrl.State()
	assert.Equal(t, 3120, state.FirstHalfMax)
	assert.Equal(t, "first", state.Half)

	h.ctrl.Seek(3121)
	state = h.ctrl.State()
	assert.Equal(t, "second", state.Half)
	assert.Equal(t, 1.0, state.TimelineOffset)
	assert.Equal(t, "16:00", state.RealClock)

	changed, err = h.ctrl.EndFirstHalf()
	require.NoError(t, err)
	assert.False(t, changed, "half ends are one-shot")

	require.Len(t, h.pubsub.SendMessageCalls, 1)
	call := h.pubsub.SendMessageCalls[0]
	assert.Equal(t, pubsub.EventHalfEnded, call.Topic)
	assert.Equal(t, pubsub.HalfEnded{Half: "first", FieldSeconds: 3120, Label: "45+7:00"}, call.Data)

	last, _ := h.notifier.Last()
	assert.Equal(t, notifier.Warning, last.Kind)
}

func TestEndSecondHalf_StopsAutoplay(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(7500)
	h.ctrl.Play()

	changed, err := h.ctrl.EndSecondHalf()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, autoplay.Stopped.String(), h.ctrl.State().Autoplay)
	assert.Equal(t, 7500, *h.ctrl.State().Config.SecondHalfEnd)
}

func TestResetHalves_RequireConfirmation(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(3000)
	_, err := h.ctrl.EndFirstHalf()
	require.NoError(t, err)

	_, err = h.ctrl.ResetFirstHalf(false)
	assert.ErrorIs(t, err, controller.ErrConfirmationRequired)
	assert.Equal(t, 3000, h.ctrl.State().FirstHalfMax)

	changed, err := h.ctrl.ResetFirstHalf(true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, fieldtime.DefaultFirstHalfCap, h.ctrl.State().FirstHalfMax)
	_, ok := h.store.Get(storage.KeyFirstHalfEnd)
	assert.False(t, ok)

	changed, err = h.ctrl.ResetSecondHalf(true)
	require.NoError(t, err)
	assert.False(t, changed, "nothing to reset")
	_, err = h.ctrl.ResetSecondHalf(false)
	assert.ErrorIs(t, err, controller.ErrConfirmationRequired)
}

func TestAddBookmark_DuplicateFlow(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(1000)
	first, err := h.ctrl.AddBookmark(bookmarks.Yellow, bookmarks.NoteInput{}, false)
	require.NoError(t, err)

	h.ctrl.Seek(1003)
	_, err = h.ctrl.AddBookmark(bookmarks.Red, bookmarks.NoteInput{}, false)
	require.ErrorIs(t, err, controller.ErrDuplicate)
	var dup *controller.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, first.ID, dup.Existing.ID)
	assert.Len(t, h.ctrl.Bookmarks(), 1)

	b, err := h.ctrl.AddBookmark(bookmarks.Red, bookmarks.NoteInput{}, true)
	require.NoError(t, err)
	list := h.ctrl.Bookmarks()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, bookmarks.Red, list[0].Type)
	assert.Equal(t, 1003.0, list[0].Time)

	assert.Equal(t, []pubsub.EventType{
		pubsub.EventBookmarkAdded,
		pubsub.EventBookmarkRemoved,
		pubsub.EventBookmarkAdded,
	}, h.pubsub.Topics())
	assert.Equal(t, 1, h.metrics.BookmarksRemoved())
	assert.Equal(t, 1, h.metrics.BookmarkCount())
}

func TestAddBookmark_InvalidSelectionKeepsExisting(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(500)
	_, err := h.ctrl.AddBookmark(bookmarks.Goal, bookmarks.NoteInput{}, false)
	require.NoError(t, err)

	_, err = h.ctrl.AddBookmark(bookmarks.Important, bookmarks.NoteInput{Selection: "Home"}, true)
	assert.ErrorIs(t, err, bookmarks.ErrInvalidSelection)
	assert.Len(t, h.ctrl.Bookmarks(), 1)
}

func TestAddBookmark_ResolvesTeamColor(t *testing.T) {
	h := restored(t)
	require.NoError(t, h.ctrl.SetTeams(teams.Team{Name: "Buriram", Color: "#1e3a8a"}, teams.Team{Name: "Port", Color: "#ff6600"}))
	h.ctrl.Seek(600)

	b, err := h.ctrl.AddBookmark(bookmarks.Goal, bookmarks.NoteInput{Selection: "Port", Text: "header"}, false)
	require.NoError(t, err)
	require.NotNil(t, b.TeamColor)
	assert.Equal(t, "#ff6600", *b.TeamColor)
	assert.Equal(t, "Port - header", b.Note)
	assert.Equal(t, 1, h.metrics.BookmarksAdded(string(bookmarks.Goal)))

	h.ctrl.Seek(700)
	b, err = h.ctrl.AddBookmark(bookmarks.Important, bookmarks.NoteInput{Selection: bookmarks.OnFieldReview}, false)
	require.NoError(t, err)
	assert.Nil(t, b.TeamColor)
}

func TestRemoveAndGoToBookmark(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(1234)
	b, err := h.ctrl.AddBookmark(bookmarks.Penalty, bookmarks.NoteInput{}, false)
	require.NoError(t, err)

	h.ctrl.Seek(0)
	h.ctrl.Play()
	v, err := h.ctrl.GoToBookmark(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1234.0, v)
	assert.Equal(t, autoplay.Stopped.String(), h.ctrl.State().Autoplay)

	_, err = h.ctrl.GoToBookmark(b.ID + 1)
	assert.ErrorIs(t, err, controller.ErrUnknownBookmark)

	require.NoError(t, h.ctrl.RemoveBookmark(b.ID))
	assert.ErrorIs(t, h.ctrl.RemoveBookmark(b.ID), controller.ErrUnknownBookmark)
}

func TestClearBookmarks(t *testing.T) {
	h := restored(t)

	assert.ErrorIs(t, h.ctrl.ClearBookmarks(true), bookmarks.ErrNothingToClear)
	last, ok := h.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, notifier.Warning, last.Kind)

	h.ctrl.Seek(10)
	h.ctrl.AddBookmark(bookmarks.Goal, bookmarks.NoteInput{}, false)
	h.ctrl.Seek(100)
	h.ctrl.AddBookmark(bookmarks.Goal, bookmarks.NoteInput{}, false)

	assert.ErrorIs(t, h.ctrl.ClearBookmarks(false), controller.ErrConfirmationRequired)
	assert.Len(t, h.ctrl.Bookmarks(), 2)

	require.NoError(t, h.ctrl.ClearBookmarks(true))
	assert.Empty(t, h.ctrl.Bookmarks())
	assert.Contains(t, h.pubsub.Topics(), pubsub.EventBookmarksClear)
}

func TestZoom_DoesNotMoveSeek(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(1500)

	before := h.ctrl.State().Zoom
	after := h.ctrl.ZoomIn()
	assert.Equal(t, before.Index+1, after.Index)
	h.ctrl.ZoomIn()
	h.ctrl.ZoomIn()
	assert.False(t, h.ctrl.State().Zoom.CanZoomIn)
	h.ctrl.ZoomOut()

	assert.Equal(t, 1500.0, h.ctrl.State().Seek)
	assert.NotEmpty(t, h.ctrl.Ticks(fieldtime.SecondHalf))
}

func TestLiveStatus_IsReadOnly(t *testing.T) {
	h := restored(t)
	h.ctrl.Seek(300)

	status := h.ctrl.LiveStatus(kickoff.Add(20 * time.Minute))
	assert.True(t, status.Configured)
	assert.Equal(t, 1200.0, status.LiveField)
	assert.Equal(t, "20:00", status.LiveLabel)
	assert.Equal(t, "15:05", status.SeekClock)
	assert.Equal(t, "15:20:00", status.WallClock)
	assert.Equal(t, 300.0, h.ctrl.State().Seek)

	h.clock.Advance(30 * time.Minute)
	h.ctrl.RefreshLive()
	assert.Equal(t, 1800.0, h.metrics.LiveFieldTime())
	assert.Equal(t, 300.0, h.ctrl.State().Seek)
}

func TestExportAndPublishReport(t *testing.T) {
	sender := &fakeReports{}
	h := newHarness(t, func(o *controller.Options) { o.Reports = sender })
	h.ctrl.Restore()
	h.ctrl.Seek(90)
	h.ctrl.AddBookmark(bookmarks.Yellow, bookmarks.NoteInput{}, false)

	s := h.ctrl.ExportReport(report.FormatYAML)
	assert.Equal(t, "Home VS Away", s.MatchTitle)
	assert.Equal(t, 1, s.TotalEvents)
	assert.Equal(t, report.NotSet, s.FirstHalfEnd)
	assert.Equal(t, 1, h.metrics.ReportsExported(string(report.FormatYAML)))
	assert.Contains(t, h.pubsub.Topics(), pubsub.EventReportExported)

	published, err := h.ctrl.PublishReport()
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, published.ExportID, sender.sent[0].ExportID)

	sender.err = errors.New("slack down")
	_, err = h.ctrl.PublishReport()
	assert.Error(t, err)
	last, _ := h.notifier.Last()
	assert.Equal(t, notifier.Error, last.Kind)

	_, err = restored(t).ctrl.PublishReport()
	assert.ErrorIs(t, err, controller.ErrReportsDisabled)
}
