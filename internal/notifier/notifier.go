package notifier

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notifier receives operator notifications. Implementations must not block the caller.
type Notifier interface {
	Notify(n Notification)
}

// New builds a notification with the default duration.
func New(kind Kind, format string, args ...any) Notification {
	return NewWithDuration(kind, DefaultDuration, format, args...)
}

// NewWithDuration builds a notification shown for d.
func NewWithDuration(kind Kind, d time.Duration, format string, args ...any) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		DurationMs: d.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
}
