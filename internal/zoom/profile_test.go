package zoom_test

import (
	"testing"

	"github.com/mauv0809/field-clock/internal/fieldtime"
	"github.com/mauv0809/field-clock/internal/zoom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Saturates(t *testing.T) {
	p := zoom.New(zoom.DefaultLevels, 0)
	assert.False(t, p.CanZoomOut())
	assert.False(t, p.ZoomOut(), "zoom out at the first level is a no-op")
	assert.Equal(t, 0, p.Index())

	assert.True(t, p.ZoomIn())
	assert.True(t, p.ZoomIn())
	assert.False(t, p.CanZoomIn())
	assert.False(t, p.ZoomIn())
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, "10min", p.Current().Name)

	assert.True(t, p.ZoomOut())
	assert.True(t, p.ZoomOut())
	assert.Equal(t, 0, p.Index(), "in twice then out twice returns to the start")
	assert.Equal(t, 3.0, p.PixelsPerSecond())
}

func TestProfile_PixelConversion(t *testing.T) {
	p := zoom.New(zoom.DefaultLevels, 0)
	assert.Equal(t, 10.0, p.PixelsToSeconds(30))
	assert.Equal(t, 30.0, p.SecondsToPixels(10))

	p.ZoomIn()
	assert.Equal(t, 20.0, p.PixelsToSeconds(30))
	assert.Equal(t, 4500*1.5, p.TimelineWidth(4500))
}

func TestNew_ClampsDefaultIndex(t *testing.T) {
	assert.Equal(t, 2, zoom.New(zoom.DefaultLevels, 10).Index())
	assert.Equal(t, 0, zoom.New(zoom.DefaultLevels, -1).Index())
	assert.Equal(t, "1min", zoom.New(nil, 0).Current().Name)
}

func TestMultiplicativeLevels(t *testing.T) {
	levels := zoom.MultiplicativeLevels(zoom.BasePixelsPerSecond)
	require.Len(t, levels, 6)
	assert.Equal(t, "0.25x", levels[0].Name)
	assert.Equal(t, 0.75, levels[0].PixelsPerSecond)
	assert.Equal(t, 300, levels[0].TickInterval)
	assert.Equal(t, 120, levels[2].TickInterval)
	assert.Equal(t, 60, levels[3].TickInterval)
	assert.Equal(t, 30, levels[5].TickInterval)
	assert.Equal(t, 24.0, levels[5].PixelsPerSecond)

	p := zoom.NewNamed(zoom.ProfileMultiplicative)
	assert.Equal(t, "1x", p.Current().Name)
	p.ZoomIn()
	p.Reset()
	assert.Equal(t, 2, p.Index())
}

func TestProfile_Ticks(t *testing.T) {
	p := zoom.New(zoom.DefaultLevels, 0)

	t.Run("first half", func(t *testing.T) {
		ticks := p.Ticks(3120, fieldtime.FirstHalf)
		require.Len(t, ticks, 53)

		assert.Equal(t, zoom.Tick{Offset: 0, X: 0, Major: true, Label: "0'", Class: zoom.LabelRegular1}, ticks[0])
		assert.Equal(t, "1'", ticks[1].Label)
		assert.False(t, ticks[1].Major)
		assert.Equal(t, "45'", ticks[45].Label)
		assert.Equal(t, zoom.LabelRegular1, ticks[45].Class)
		assert.Equal(t, "45+1'", ticks[46].Label)
		assert.Equal(t, zoom.LabelStoppage1, ticks[46].Class)
		assert.Equal(t, "45+7'", ticks[52].Label)
		assert.Equal(t, 3120.0*3, ticks[52].X)
	})

	t.Run("second half", func(t *testing.T) {
		ticks := p.Ticks(3120, fieldtime.SecondHalf)
		assert.Equal(t, "45'", ticks[0].Label)
		assert.Equal(t, zoom.LabelRegular2, ticks[0].Class)
		assert.Equal(t, "90'", ticks[45].Label)
		assert.Equal(t, "90+1'", ticks[46].Label)
		assert.Equal(t, zoom.LabelStoppage2, ticks[46].Class)
	})

	t.Run("coarse level", func(t *testing.T) {
		p := zoom.New(zoom.DefaultLevels, 2)
		ticks := p.Ticks(fieldtime.DefaultFirstHalfCap, fieldtime.FirstHalf)
		require.Len(t, ticks, 8)
		assert.True(t, ticks[3].Major)
		assert.Equal(t, "30'", ticks[3].Label)
		assert.Equal(t, "45+25'", ticks[7].Label)
	})
}
