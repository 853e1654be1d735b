package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/mauv0809/field-clock/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJob(t *testing.T) {
	var runs atomic.Int32
	s, err := scheduler.New(scheduler.Job{
		Name: "live-refresh",
		Spec: "@every 1s",
		Run:  func() { runs.Add(1) },
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	_, err := scheduler.New(scheduler.Job{Name: "broken", Spec: "every second", Run: func() {}})
	assert.Error(t, err)
}
