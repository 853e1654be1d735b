package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/pubsub"
)

// EventPushHandler receives Pub/Sub push deliveries of our own domain events and keeps
// a per-type tally of what was delivered.
func EventPushHandler(pubsubClient pubsub.PubSubClient, stats metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received pushed event", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data       string            `json:"data"`
				Attributes map[string]string `json:"attributes"`
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.Event
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		if event.Type == "" {
			event.Type = pubsub.EventType(pubsubMsg.Message.Attributes["type"])
		}
		log.Info("Event delivered", "type", event.Type, "occurred_at", event.OccurredAt, "subscription", pubsubMsg.Subscription)
		if stats != nil {
			stats.Increment("events_delivered_" + string(event.Type))
		}
		w.Write([]byte("OK"))
	}
}
