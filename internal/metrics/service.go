package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Seeks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldclock_seeks_total",
			Help: "The total number of playhead moves, by source.",
		}, []string{"source"}),
		BookmarksAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldclock_bookmarks_added_total",
			Help: "The total number of bookmarks added, by event type.",
		}, []string{"type"}),
		BookmarksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldclock_bookmarks_removed_total",
			Help: "The total number of bookmarks removed individually.",
		}),
		AutoplayStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldclock_autoplay_starts_total",
			Help: "The total number of times autoplay was started.",
		}),
		StorageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldclock_storage_failures_total",
			Help: "The total number of swallowed persistence failures, by operation.",
		}, []string{"op"}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldclock_notifications_sent_total",
			Help: "The total number of chat notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldclock_notifications_failed_total",
			Help: "The total number of chat notifications that failed to send.",
		}),
		ReportsExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldclock_reports_exported_total",
			Help: "The total number of report snapshots exported, by format.",
		}, []string{"format"}),
		SeekPosition: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fieldclock_seek_position_seconds",
			Help: "The current playhead position in field seconds.",
		}),
		BookmarkCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fieldclock_bookmarks",
			Help: "The number of bookmarks currently stored.",
		}),
		LiveFieldTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fieldclock_live_field_seconds",
			Help: "The field time matching the current wall clock, refreshed every second.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fieldclock_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Seeks,
		s.BookmarksAdded,
		s.BookmarksRemoved,
		s.AutoplayStarts,
		s.StorageFailures,
		s.NotifSent,
		s.NotifFailed,
		s.ReportsExported,
		s.SeekPosition,
		s.BookmarkCount,
		s.LiveFieldTime,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSeeks(source string) {
	s.Seeks.WithLabelValues(source).Inc()
}

func (s *Service) IncBookmarksAdded(kind string) {
	s.BookmarksAdded.WithLabelValues(kind).Inc()
}

func (s *Service) IncBookmarksRemoved() {
	s.BookmarksRemoved.Inc()
}

func (s *Service) IncAutoplayStarts() {
	s.AutoplayStarts.Inc()
}

func (s *Service) IncStorageFailures(op string) {
	s.StorageFailures.WithLabelValues(op).Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) IncReportsExported(format string) {
	s.ReportsExported.WithLabelValues(format).Inc()
}

func (s *Service) SetSeekPosition(fieldSeconds float64) {
	s.SeekPosition.Set(fieldSeconds)
}

func (s *Service) SetBookmarkCount(count int) {
	s.BookmarkCount.Set(float64(count))
}

func (s *Service) SetLiveFieldTime(fieldSeconds float64) {
	s.LiveFieldTime.Set(fieldSeconds)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
