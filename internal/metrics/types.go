package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Seeks              *prometheus.CounterVec
	BookmarksAdded     *prometheus.CounterVec
	BookmarksRemoved   prometheus.Counter
	AutoplayStarts     prometheus.Counter
	StorageFailures    *prometheus.CounterVec
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	ReportsExported    *prometheus.CounterVec
	SeekPosition       prometheus.Gauge
	BookmarkCount      prometheus.Gauge
	LiveFieldTime      prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}
