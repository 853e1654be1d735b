package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/notifier"
)

const defaultRecent = 20

// RecentNotificationsHandler returns the latest notifications, ?limit=N.
func RecentNotificationsHandler(bus *notifier.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRecent
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, r, fmt.Errorf("limit %q: %w", raw, errBadRequest))
				return
			}
			limit = n
		}
		writeJSON(w, http.StatusOK, bus.Recent(limit))
	}
}

// NotificationStreamHandler streams notifications as server-sent events until the
// client goes away.
func NotificationStreamHandler(bus *notifier.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}
		ch, cancel := bus.Subscribe()
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()
		log.Debug("Notification stream opened", "request_id", RequestIDFromContext(r))

		for {
			select {
			case <-r.Context().Done():
				log.Debug("Notification stream closed", "request_id", RequestIDFromContext(r))
				return
			case n, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(n)
				if err != nil {
					log.Error("Failed to encode notification", "error", err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Kind, data)
				flusher.Flush()
			}
		}
	}
}
