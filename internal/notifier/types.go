package notifier

import "time"

// DefaultDuration is how long a notification stays visible unless told otherwise.
const DefaultDuration = 2 * time.Second

// Kind is the severity of a notification.
type Kind string

const (
	Success Kind = "success"
	Info    Kind = "info"
	Warning Kind = "warning"
	Error   Kind = "error"
)

// Notification is an ephemeral operator message. Presenting and expiring it is up to
// the consumer.
type Notification struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Message    string    `json:"message"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Duration returns how long the notification should be shown.
func (n Notification) Duration() time.Duration {
	if n.DurationMs <= 0 {
		return DefaultDuration
	}
	return time.Duration(n.DurationMs) * time.Millisecond
}
