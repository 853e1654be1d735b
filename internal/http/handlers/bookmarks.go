package handlers

import (
	"net/http"
	"strconv"

	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/teams"
)

type addBookmarkRequest struct {
	Type      bookmarks.EventKind `json:"type"`
	Selection string              `json:"selection"`
	Note      string              `json:"note"`
	TeamColor string              `json:"teamColor"`
	Overwrite bool                `json:"overwrite"`
}

type teamsRequest struct {
	TeamA teams.Team `json:"teamA"`
	TeamB teams.Team `json:"teamB"`
}

func ListBookmarksHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.Bookmarks())
	}
}

func BookmarkKindsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bookmarks.Kinds())
	}
}

// AddBookmarkHandler records an event at the current position. A near duplicate answers
// 409 with the existing bookmark; repeat with overwrite set to replace it.
func AddBookmarkHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBookmarkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if v, err := strconv.ParseBool(r.URL.Query().Get("overwrite")); err == nil {
			req.Overwrite = v
		}
		b, err := ctrl.AddBookmark(req.Type, bookmarks.NoteInput{
			Selection: req.Selection,
			Text:      req.Note,
			TeamColor: req.TeamColor,
		}, req.Overwrite)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

func RemoveBookmarkHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err == nil {
			err = ctrl.RemoveBookmark(id)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GoToBookmarkHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		v, err := ctrl.GoToBookmark(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respondSeek(w, ctrl, v)
	}
}

func ClearBookmarksHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.ClearBookmarks(confirmed(r)); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func SetTeamsHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if err := ctrl.SetTeams(req.TeamA, req.TeamB); err != nil {
			writeError(w, r, err)
			return
		}
		state := ctrl.State()
		writeJSON(w, http.StatusOK, teamsRequest{TeamA: state.TeamA, TeamB: state.TeamB})
	}
}
