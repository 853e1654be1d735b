package halves_test

import (
	"testing"

	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/halves"
	"github.com/mauv0809/field-clock/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Starts(t *testing.T) {
	store := storage.NewMock()
	tracker := halves.New(store)

	require.NoError(t, tracker.SetFirstHalfStart(16, 0))
	require.NoError(t, tracker.SetSecondHalfStart(16, 55))

	cfg := tracker.Config()
	require.NotNil(t, cfg.FirstHalfStart)
	assert.Equal(t, 57600, *cfg.FirstHalfStart)
	assert.Equal(t, 60900, *cfg.SecondHalfStart)

	v, ok := store.Get(storage.KeySecondHalfMinute)
	require.True(t, ok)
	assert.Equal(t, "55", v)

	assert.ErrorIs(t, tracker.SetFirstHalfStart(24, 0), halves.ErrInvalidStart)
	assert.ErrorIs(t, tracker.SetSecondHalfStart(10, 60), halves.ErrInvalidStart)
	assert.Equal(t, 57600, *tracker.Config().FirstHalfStart, "invalid input leaves state untouched")
}

func TestTracker_ConfigIsACopy(t *testing.T) {
	tracker := halves.New(storage.NewMock())
	require.NoError(t, tracker.SetFirstHalfStart(10, 0))

	cfg := tracker.Config()
	*cfg.FirstHalfStart = 0
	assert.Equal(t, 36000, *tracker.Config().FirstHalfStart)
}

func TestTracker_EndFirstHalf(t *testing.T) {
	store := storage.NewMock()
	tracker := halves.New(store)
	assert.Equal(t, fieldtime.DefaultFirstHalfCap, tracker.EffectiveFirstHalfMax())

	changed, err := tracker.EndFirstHalf(3120)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3120, tracker.EffectiveFirstHalfMax())

	t.Run("second call is a no-op", func(t *testing.T) {
		changed, err := tracker.EndFirstHalf(3300)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 3120, tracker.EffectiveFirstHalfMax())
	})

	t.Run("reset then end again", func(t *testing.T) {
		assert.True(t, tracker.ResetFirstHalf())
		_, ok := store.Get(storage.KeyFirstHalfEnd)
		assert.False(t, ok, "reset removes the persisted value")
		assert.Equal(t, fieldtime.DefaultFirstHalfCap, tracker.EffectiveFirstHalfMax())

		changed, err := tracker.EndFirstHalf(3300)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 3300, tracker.EffectiveFirstHalfMax())
	})

	t.Run("reset when open reports nothing to do", func(t *testing.T) {
		fresh := halves.New(storage.NewMock())
		assert.False(t, fresh.ResetFirstHalf())
	})
}

func TestTracker_EndBeforeRegulation(t *testing.T) {
	tracker := halves.New(storage.NewMock())

	_, err := tracker.EndFirstHalf(2699)
	assert.ErrorIs(t, err, halves.ErrBeforeRegulationEnd)
	assert.Nil(t, tracker.Config().FirstHalfEnd)

	changed, err := tracker.EndFirstHalf(2700)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = tracker.EndSecondHalf(2700 + 2699)
	assert.ErrorIs(t, err, halves.ErrBeforeRegulationEnd)
}

func TestTracker_EndSecondHalf(t *testing.T) {
	store := storage.NewMock()
	tracker := halves.New(store)
	_, err := tracker.EndFirstHalf(3000)
	require.NoError(t, err)

	changed, err := tracker.EndSecondHalf(6000)
	require.NoError(t, err)
	assert.True(t, changed)
	v, ok := store.Get(storage.KeySecondHalfEnd)
	require.True(t, ok)
	assert.Equal(t, "6000", v)

	changed, err = tracker.EndSecondHalf(6100)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.True(t, tracker.ResetSecondHalf())
	assert.Nil(t, tracker.Config().SecondHalfEnd)
	assert.False(t, tracker.ResetSecondHalf())
}

func TestTracker_Load(t *testing.T) {
	t.Run("restores everything", func(t *testing.T) {
		store := storage.NewMock()
		store.Put(storage.KeyFirstHalfHour, "16")
		store.Put(storage.KeyFirstHalfMinute, "0")
		store.Put(storage.KeySecondHalfHour, "16")
		store.Put(storage.KeySecondHalfMinute, "55")
		store.Put(storage.KeyFirstHalfEnd, "3120")
		store.Put(storage.KeySecondHalfEnd, "6000")

		tracker := halves.New(store)
		assert.True(t, tracker.LoadStarts())
		assert.True(t, tracker.LoadHalfEnds())

		cfg := tracker.Config()
		assert.Equal(t, 57600, *cfg.FirstHalfStart)
		assert.Equal(t, 60900, *cfg.SecondHalfStart)
		assert.Equal(t, 3120, *cfg.FirstHalfEnd)
		assert.Equal(t, 6000, *cfg.SecondHalfEnd)
	})

	t.Run("partial kickoffs are not restored", func(t *testing.T) {
		store := storage.NewMock()
		store.Put(storage.KeyFirstHalfHour, "16")
		store.Put(storage.KeyFirstHalfMinute, "0")

		tracker := halves.New(store)
		assert.False(t, tracker.LoadStarts())
		assert.Nil(t, tracker.Config().FirstHalfStart)
	})

	t.Run("corrupt values fall back to defaults", func(t *testing.T) {
		store := storage.NewMock()
		store.Put(storage.KeyFirstHalfHour, "sixteen")
		store.Put(storage.KeyFirstHalfMinute, "0")
		store.Put(storage.KeySecondHalfHour, "16")
		store.Put(storage.KeySecondHalfMinute, "55")
		store.Put(storage.KeyFirstHalfEnd, "late")

		tracker := halves.New(store)
		assert.False(t, tracker.LoadStarts())
		assert.False(t, tracker.LoadHalfEnds())
		assert.Equal(t, fieldtime.DefaultFirstHalfCap, tracker.EffectiveFirstHalfMax())
	})

	t.Run("half ends before regulation time are ignored", func(t *testing.T) {
		tests := []struct {
			name       string
			first      string
			second     string
			restored   bool
			wantFirst  *int
			wantSecond *int
		}{
			{"first end too early", "100", "", false, nil, nil},
			{"first end at regulation", "2700", "", true, fieldtime.Ptr(2700), nil},
			{"second end before first plus regulation", "3120", "5000", true, fieldtime.Ptr(3120), nil},
			{"second end at minimum", "3120", "5820", true, fieldtime.Ptr(3120), fieldtime.Ptr(5820)},
			{"second end checked against default cap", "", "7000", false, nil, nil},
			{"second end after default cap", "", "7200", true, nil, fieldtime.Ptr(7200)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := storage.NewMock()
				if tt.first != "" {
					store.Put(storage.KeyFirstHalfEnd, tt.first)
				}
				if tt.second != "" {
					store.Put(storage.KeySecondHalfEnd, tt.second)
				}
				tracker := halves.New(store)
				assert.Equal(t, tt.restored, tracker.LoadHalfEnds())

				cfg := tracker.Config()
				assert.Equal(t, tt.wantFirst, cfg.FirstHalfEnd)
				assert.Equal(t, tt.wantSecond, cfg.SecondHalfEnd)
			})
		}
	})

	t.Run("too early first half end keeps the default split", func(t *testing.T) {
		store := storage.NewMock()
		store.Put(storage.KeyFirstHalfEnd, "100")

		tracker := halves.New(store)
		tracker.LoadHalfEnds()
		assert.Equal(t, fieldtime.DefaultFirstHalfCap, tracker.EffectiveFirstHalfMax())
	})
}
