package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/field-clock/internal/config"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/http/handlers"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/pubsub"
)

func NewServer(ctrl *controller.Controller, bus *notifier.Bus, stats metrics.MetricsStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Controller:     ctrl,
		Notifications:  bus,
		Stats:          stats,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		Now:            time.Now,
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	c := s.Controller
	now := func() time.Time { return s.Now() }
	handle := func(pattern string, h http.Handler) {
		s.Router.Handle(pattern, Chain(h, requestIDMiddleware, paramsMiddleware))
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	handle("GET /health", handlers.HealthCheckHandler())
	handle("GET /stats", handlers.StatsHandler(s.Stats))

	handle("GET /state", handlers.StateHandler(c))
	handle("GET /live", handlers.LiveStatusHandler(c, now))
	handle("POST /live", handlers.GoLiveHandler(c, now))

	handle("POST /seek", handlers.SeekHandler(c))
	handle("POST /seek/quick/{name}", handlers.QuickJumpHandler(c))
	handle("POST /seek/nudge", handlers.NudgeHandler(c))
	handle("POST /seek/wheel", handlers.WheelHandler(c))
	handle("POST /seek/drag", handlers.DragHandler(c))
	handle("POST /play", handlers.PlayHandler(c))
	handle("POST /pause", handlers.PauseHandler(c))

	handle("POST /zoom/in", handlers.ZoomInHandler(c))
	handle("POST /zoom/out", handlers.ZoomOutHandler(c))
	handle("GET /zoom/ticks", handlers.TicksHandler(c))

	handle("POST /halves/{half}/start", handlers.HalfStartHandler(c))
	handle("POST /halves/{half}/end", handlers.HalfEndHandler(c))
	handle("POST /halves/{half}/reset", handlers.HalfResetHandler(c))

	handle("GET /bookmarks", handlers.ListBookmarksHandler(c))
	handle("GET /bookmarks/kinds", handlers.BookmarkKindsHandler())
	handle("POST /bookmarks", handlers.AddBookmarkHandler(c))
	handle("POST /bookmarks/clear", handlers.ClearBookmarksHandler(c))
	handle("DELETE /bookmarks/{id}", handlers.RemoveBookmarkHandler(c))
	handle("POST /bookmarks/{id}/goto", handlers.GoToBookmarkHandler(c))
	handle("PUT /teams", handlers.SetTeamsHandler(c))

	handle("GET /report", handlers.ReportHandler(c))
	handle("GET /report/pages", handlers.ReportPagesHandler(c))
	handle("POST /report/publish", handlers.PublishReportHandler(c))

	if s.Notifications != nil {
		handle("GET /notifications", handlers.RecentNotificationsHandler(s.Notifications))
		handle("GET /notifications/stream", handlers.NotificationStreamHandler(s.Notifications))
	}
	if s.pubsub != nil {
		handle("POST /pubsub/events", handlers.EventPushHandler(s.pubsub, s.Stats))
	}
	if s.Cfg.Slack.SigningSecret != "" {
		handle("POST /slack/command/clock", handlers.ClockCommandHandler(c, s.Cfg.Slack.SigningSecret, now))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
