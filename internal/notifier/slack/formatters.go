package slack

import (
	"fmt"
	"strings"

	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/notifier"
	"github.com/mauv0809/field-clock/internal/report"
	"github.com/slack-go/slack"
)

var kindIcons = map[notifier.Kind]string{
	notifier.Success: "✅",
	notifier.Info:    "ℹ️",
	notifier.Warning: "⚠️",
	notifier.Error:   "❌",
}

// maxReportLines bounds the event list in a report message; Slack rejects long sections.
const maxReportLines = 20

func formatNotification(n notifier.Notification) slack.Message {
	text := fmt.Sprintf("%s %s", kindIcons[n.Kind], n.Message)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	)
}

// formatReport creates the report summary message using Block Kit.
func formatReport(s report.Snapshot) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⚽ %s ⚽", s.MatchTitle), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := fmt.Sprintf("Kick-off: %s / %s\nFirst half end: %s\nSecond half end: %s\nPosition: %s",
		s.FirstHalfStart, s.SecondHalfStart, s.FirstHalfEnd, s.SecondHalfEnd, s.CurrentPosition)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	if len(s.Bookmarks) > 0 {
		lines := make([]string, 0, min(len(s.Bookmarks), maxReportLines)+1)
		for i, e := range s.Bookmarks {
			if i == maxReportLines {
				lines = append(lines, fmt.Sprintf("… and %d more", len(s.Bookmarks)-maxReportLines))
				break
			}
			line := fmt.Sprintf("%s %s %s", e.FieldTime, e.Icon, e.Label)
			if e.Note != "" {
				line += " - " + e.Note
			}
			lines = append(lines, line)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	var counts []slack.MixedElement
	for _, info := range bookmarks.Kinds() {
		if n := s.PerTypeCounts[string(info.Kind)]; n > 0 {
			counts = append(counts, slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s %d", info.Icon, n), true, false))
		}
	}
	counts = append(counts, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Total: %d", s.TotalEvents), true, false))
	blocks = append(blocks, slack.NewContextBlock("", counts...))

	return slack.NewBlockMessage(blocks...)
}
