package notifier_test

import (
	"testing"
	"time"

	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultDuration(t *testing.T) {
	n := notifier.New(notifier.Info, "Zoom %s", "5min")
	assert.Equal(t, "Zoom 5min", n.Message)
	assert.Equal(t, notifier.DefaultDuration, n.Duration())
	assert.NotEmpty(t, n.ID)

	n = notifier.NewWithDuration(notifier.Warning, 3*time.Second, "First half ended")
	assert.Equal(t, int64(3000), n.DurationMs)
	assert.Equal(t, 2*time.Second, notifier.Notification{}.Duration())
}

func TestBus_FanOut(t *testing.T) {
	sink := notifier.NewMock()
	bus := notifier.NewBus(sink)

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Notify(notifier.New(notifier.Success, "Bookmark added"))

	select {
	case n := <-ch:
		assert.Equal(t, "Bookmark added", n.Message)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the notification")
	}

	assert.Eventually(t, func() bool {
		return len(sink.Notifications()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := notifier.NewBus()
	_, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Notify(notifier.New(notifier.Info, "tick %d", i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full subscriber")
	}
}

func TestBus_Recent(t *testing.T) {
	bus := notifier.NewBus()
	for i := 0; i < 60; i++ {
		bus.Notify(notifier.New(notifier.Info, "n%d", i))
	}

	all := bus.Recent(0)
	require.Len(t, all, 50, "history is bounded")
	assert.Equal(t, "n10", all[0].Message)

	last := bus.Recent(3)
	require.Len(t, last, 3)
	assert.Equal(t, "n59", last[2].Message)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := notifier.NewBus()
	ch, cancel := bus.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { bus.Notify(notifier.New(notifier.Info, "after")) })
}
