package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/metrics"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the lifetime counters kept in the database.
func StatsHandler(store metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusOK, map[string]int{})
			return
		}
		stats, err := store.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get stats from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
