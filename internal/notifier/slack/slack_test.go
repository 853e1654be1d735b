package slack

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/report"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	mu                     sync.Mutex
	calls                  int
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	sender := NewNotifierWithAPI(nil, "C123", metrics).DryRun(true)

	_, _, err := sender.sendMessage(slackapi.NewBlockMessage())
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	sender := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := sender.sendMessage(message)

	require.NoError(t, err)
	assert.Equal(t, 1, api.calls, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	sender := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := sender.sendMessage(slackapi.NewBlockMessage())
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

func TestNotify_FiltersKinds(t *testing.T) {
	api := &mockSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	n.Notify(notifier.New(notifier.Info, "Zoom 5min"))
	assert.Equal(t, 0, api.calls, "info is not posted by default")

	n.Notify(notifier.New(notifier.Warning, "First half ended at 45+7:00"))
	assert.Equal(t, 1, api.calls)

	verbose := NewNotifierWithAPI(api, "C123", metrics.NewMock(), notifier.Info)
	verbose.Notify(notifier.New(notifier.Info, "Zoom 5min"))
	assert.Equal(t, 2, api.calls)
}

func TestFormatNotification(t *testing.T) {
	msg := formatNotification(notifier.New(notifier.Error, "Storage unavailable"))
	require.Len(t, msg.Blocks.BlockSet, 1)
	section := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Equal(t, "❌ Storage unavailable", section.Text.Text)
}

func TestFormatReport(t *testing.T) {
	snapshot := report.Snapshot{
		MatchTitle:      "Home VS Away",
		FirstHalfStart:  "16:00",
		SecondHalfStart: "16:55",
		FirstHalfEnd:    "45+2:00",
		SecondHalfEnd:   report.NotSet,
		CurrentPosition: "60:00",
		Bookmarks: []report.Entry{
			{FieldTime: "12:30", Icon: "⚽", Label: "Goal", Note: "Home - header"},
			{FieldTime: "44:00", Icon: "🟨", Label: "Yellow card"},
		},
		PerTypeCounts: map[string]int{"goal": 1, "yellow": 1},
		TotalEvents:   2,
	}

	msg := formatReport(snapshot)
	require.Len(t, msg.Blocks.BlockSet, 4)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Contains(t, header.Text.Text, "Home VS Away")

	details := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Contains(t, details.Text.Text, "Second half end: not set")

	events := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Equal(t, "12:30 ⚽ Goal - Home - header\n44:00 🟨 Yellow card", events.Text.Text)

	footer := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.Len(t, footer.ContextElements.Elements, 3)
	assert.Equal(t, "🟨 1", footer.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
	assert.Equal(t, "Total: 2", footer.ContextElements.Elements[2].(*slackapi.TextBlockObject).Text)
}

func TestFormatReport_Truncates(t *testing.T) {
	entries := make([]report.Entry, 25)
	for i := range entries {
		entries[i] = report.Entry{FieldTime: "10:00", Icon: "📝", Label: "Custom"}
	}
	msg := formatReport(report.Snapshot{Bookmarks: entries, TotalEvents: 25})
	events := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Contains(t, events.Text.Text, "… and 5 more")
}

func TestSendReport(t *testing.T) {
	api := &mockSlackAPI{}
	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	require.NoError(t, n.SendReport(report.Snapshot{MatchTitle: "Home VS Away"}))
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, metrics.NotifSent())
}
