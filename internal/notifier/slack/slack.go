package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/metrics"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/report"
	"github.com/slack-go/slack"
)

const postTimeout = 10 * time.Second

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier mirrors operator notifications and report summaries into a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	kinds     []notifier.Kind
	dryRun    bool
}

// NewNotifier creates a new Notifier. Only the given kinds are posted; with none, only
// success, warning and error notifications are.
func NewNotifier(token, channelID string, metrics metrics.Metrics, kinds ...notifier.Kind) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics, kinds...)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics, kinds ...notifier.Kind) *Notifier {
	if len(kinds) == 0 {
		kinds = []notifier.Kind{notifier.Success, notifier.Warning, notifier.Error}
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		kinds:     kinds,
	}
}

// DryRun logs messages instead of posting them.
func (s *Notifier) DryRun(enabled bool) *Notifier {
	s.dryRun = enabled
	return s
}

// Notify posts n if its kind is enabled. Failures are logged and counted.
func (s *Notifier) Notify(n notifier.Notification) {
	if !slices.Contains(s.kinds, n.Kind) {
		return
	}
	_, _, _ = s.sendMessage(formatNotification(n))
}

// SendReport posts a match report summary.
func (s *Notifier) SendReport(snapshot report.Snapshot) error {
	_, _, err := s.sendMessage(formatReport(snapshot))
	return err
}

func (s *Notifier) sendMessage(message slack.Message) (string, string, error) {
	if s.dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}
