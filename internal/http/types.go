package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/field-clock/internal/config"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/pubsub"
)

type Server struct {
	Controller     *controller.Controller
	Notifications  *notifier.Bus
	Stats          metrics.MetricsStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	Now            func() time.Time
	pubsub         pubsub.PubSubClient
}
