package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSeeks(source string)
	IncBookmarksAdded(kind string)
	IncBookmarksRemoved()
	IncAutoplayStarts()
	IncStorageFailures(op string)
	IncNotifSent()
	IncNotifFailed()
	IncReportsExported(format string)
	SetSeekPosition(fieldSeconds float64)
	SetBookmarkCount(count int)
	SetLiveFieldTime(fieldSeconds float64)
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters in the database so they survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
