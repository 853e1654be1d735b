package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/bookmarks"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/halves"
	"github.com/mauv0809/field-clock/internal/report"
	"github.com/mauv0809/field-clock/internal/teams"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
)

// RequestIDFromContext returns the id the middleware attached to the request.
func RequestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}

var errBadRequest = errors.New("bad request")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error    string              `json:"error"`
	Existing *bookmarks.Bookmark `json:"existing,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBody{Error: err.Error()}
	status := http.StatusInternalServerError

	var dup *controller.DuplicateError
	switch {
	case errors.As(err, &dup):
		status = http.StatusConflict
		body.Existing = &dup.Existing
	case errors.Is(err, controller.ErrConfirmationRequired):
		status = http.StatusPreconditionFailed
	case errors.Is(err, bookmarks.ErrNothingToClear):
		status = http.StatusConflict
	case errors.Is(err, controller.ErrUnknownBookmark):
		status = http.StatusNotFound
	case errors.Is(err, controller.ErrReportsDisabled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errBadRequest),
		errors.Is(err, controller.ErrInvalidSeek),
		errors.Is(err, controller.ErrUnknownQuickJump),
		errors.Is(err, halves.ErrInvalidStart),
		errors.Is(err, halves.ErrBeforeRegulationEnd),
		errors.Is(err, bookmarks.ErrUnknownKind),
		errors.Is(err, bookmarks.ErrInvalidSelection),
		errors.Is(err, teams.ErrInvalidColor),
		errors.Is(err, report.ErrUnknownFormat):
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "path", r.URL.Path, "request_id", RequestIDFromContext(r), "error", err)
	} else {
		log.Debug("Request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %v: %w", err, errBadRequest)
	}
	return nil
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bookmark id %q: %w", raw, errBadRequest)
	}
	return id, nil
}
