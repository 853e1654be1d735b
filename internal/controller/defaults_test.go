package controller

import (
	"fmt"
	"testing"

	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/storage"
	"github.com/mauv0809/field-clock/internal/teams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultNotifierKeepsShortHistory(t *testing.T) {
	c := New(Options{Store: storage.NewMock()})
	t.Cleanup(c.Close)

	bus, ok := c.notifier.(*notifier.Bus)
	require.True(t, ok, "default notifier should be a Bus, got %T", c.notifier)

	for i := 0; i < 60; i++ {
		require.NoError(t, c.SetTeams(teams.Team{Name: fmt.Sprintf("Home %d", i)}, teams.Team{Name: "Away"}))
	}
	recent := bus.Recent(0)
	assert.Len(t, recent, 50)
	assert.Equal(t, "Teams updated: Home 59 VS Away", recent[len(recent)-1].Message)
}
