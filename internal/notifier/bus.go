package notifier

import (
	"sync"

	"github.com/charmbracelet/log"
)

const (
	defaultHistory = 50
	subscriberBuf  = 16
)

// Bus fans notifications out to subscribers and sinks and keeps a short history.
// Slow subscribers lose notifications rather than stall the sender.
type Bus struct {
	mu          sync.Mutex
	history     []Notification
	limit       int
	subscribers map[int]chan Notification
	nextSub     int
	sinks       []Notifier
}

var _ Notifier = (*Bus)(nil)

func NewBus(sinks ...Notifier) *Bus {
	return &Bus{
		limit:       defaultHistory,
		subscribers: make(map[int]chan Notification),
		sinks:       sinks,
	}
}

// Notify records n, delivers it to every subscriber that has room and hands it to
// each sink on its own goroutine.
func (b *Bus) Notify(n Notification) {
	b.mu.Lock()
	b.history = append(b.history, n)
	if len(b.history) > b.limit {
		b.history = b.history[len(b.history)-b.limit:]
	}
	for id, ch := range b.subscribers {
		select {
		case ch <- n:
		default:
			log.Warn("Dropping notification for slow subscriber", "subscriber", id, "kind", n.Kind)
		}
	}
	sinks := b.sinks
	b.mu.Unlock()

	log.Debug("Notification", "kind", n.Kind, "message", n.Message)
	for _, sink := range sinks {
		go sink.Notify(n)
	}
}

// Subscribe returns a channel of future notifications and a func that ends the
// subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan Notification, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	ch := make(chan Notification, subscriberBuf)
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			close(ch)
		})
	}
}

// Recent returns up to limit of the latest notifications, oldest first.
func (b *Bus) Recent(limit int) []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := 0
	if limit > 0 && len(b.history) > limit {
		start = len(b.history) - limit
	}
	out := make([]Notification, len(b.history)-start)
	copy(out, b.history[start:])
	return out
}
