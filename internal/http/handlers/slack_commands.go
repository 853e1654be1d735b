package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/slack-go/slack"
)

const slackHelp = "Usage: `/clock [status|live|play|pause|report|mark <type> [team or review]]`"

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func slackText(text string) slack.Message {
	return slack.Message{Msg: slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: text}}
}

// ClockCommandHandler serves the /clock slash command. Requests must carry a valid
// Slack signature for signingSecret.
func ClockCommandHandler(ctrl *controller.Controller, signingSecret string, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
		if err != nil {
			log.Warn("Rejected slack command without signature headers", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		r.Body = io.NopCloser(io.TeeReader(r.Body, &verifier))
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if err := verifier.Ensure(); err != nil {
			log.Warn("Rejected slack command with bad signature", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		log.Info("Received clock command", "user", cmd.UserName, "text", cmd.Text)
		respondWithSlackMsg(w, slackText(runClockCommand(ctrl, cmd.Text, now)))
	}
}

func runClockCommand(ctrl *controller.Controller, text string, now func() time.Time) string {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return statusLine(ctrl)
	}
	switch strings.ToLower(parts[0]) {
	case "status":
		return statusLine(ctrl)
	case "live":
		ctrl.GoLive(now())
		return "🔴 " + statusLine(ctrl)
	case "play":
		ctrl.Play()
		return statusLine(ctrl)
	case "pause":
		ctrl.Pause()
		return statusLine(ctrl)
	case "report":
		return ctrl.Snapshot(now()).Summary()
	case "mark":
		if len(parts) < 2 {
			return slackHelp
		}
		kind := bookmarks.EventKind(parts[1])
		selection := strings.Join(parts[2:], " ")
		b, err := ctrl.AddBookmark(kind, bookmarks.NoteInput{Selection: selection}, false)
		var dup *controller.DuplicateError
		switch {
		case errors.As(err, &dup):
			return fmt.Sprintf("An event (%s) already exists near this time.", dup.Existing.Type)
		case err != nil:
			return "Could not save the event: " + err.Error()
		}
		info, _ := b.Type.Info()
		return fmt.Sprintf("%s %s saved at %s", info.Icon, info.Label, ctrl.State().FieldLabel)
	default:
		return slackHelp
	}
}

func statusLine(ctrl *controller.Controller) string {
	s := ctrl.State()
	return fmt.Sprintf("⏱ %s (%s), %s half, %s. %d events. %s VS %s",
		s.FieldLabel, s.RealClock, s.Half, strings.ToLower(s.Autoplay), s.BookmarkCount, s.TeamA.Name, s.TeamB.Name)
}
