package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client      *pubsub.Client
	topicPrefix string
	teardown    func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventBookmarkAdded   EventType = "bookmark-added"
	EventBookmarkRemoved EventType = "bookmark-removed"
	EventBookmarksClear  EventType = "bookmarks-cleared"
	EventHalfEnded       EventType = "half-ended"
	EventReportExported  EventType = "report-exported"
)

// Event is the envelope every message carries.
type Event struct {
	Type       EventType `msgpack:"type"`
	OccurredAt time.Time `msgpack:"occurredAt"`
	Payload    any       `msgpack:"payload"`
}

// HalfEnded is the payload of EventHalfEnded.
type HalfEnded struct {
	Half         string `msgpack:"half"`
	FieldSeconds int    `msgpack:"fieldSeconds"`
	Label        string `msgpack:"label"`
}

// ReportExported is the payload of EventReportExported.
type ReportExported struct {
	ExportID    string `msgpack:"exportId"`
	Format      string `msgpack:"format"`
	TotalEvents int    `msgpack:"totalEvents"`
}
