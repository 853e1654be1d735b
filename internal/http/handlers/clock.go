package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/fieldtime"
)

type seekRequest struct {
	Seconds *float64 `json:"seconds"`
	Minute  *int     `json:"minute"`
	Second  *int     `json:"second"`
}

type nudgeRequest struct {
	Direction int  `json:"direction"`
	Coarse    bool `json:"coarse"`
}

type wheelRequest struct {
	Delta  float64 `json:"delta"`
	Coarse bool    `json:"coarse"`
}

type dragRequest struct {
	DX float64 `json:"dx"`
}

type halfStartRequest struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type seekResponse struct {
	Seek  float64 `json:"seek"`
	Label string  `json:"label"`
}

func StateHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.State())
	}
}

func LiveStatusHandler(ctrl *controller.Controller, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.LiveStatus(now()))
	}
}

// SeekHandler accepts either {"seconds"} or {"minute","second"}.
func SeekHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seekRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		switch {
		case req.Seconds != nil:
			respondSeek(w, ctrl, ctrl.Seek(*req.Seconds))
		case req.Minute != nil:
			second := 0
			if req.Second != nil {
				second = *req.Second
			}
			v, err := ctrl.SeekMinuteSecond(*req.Minute, second)
			if err != nil {
				writeError(w, r, err)
				return
			}
			respondSeek(w, ctrl, v)
		default:
			writeError(w, r, fmt.Errorf("seconds or minute is required: %w", errBadRequest))
		}
	}
}

func QuickJumpHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ctrl.QuickJump(r.PathValue("name"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		respondSeek(w, ctrl, v)
	}
}

func NudgeHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nudgeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		respondSeek(w, ctrl, ctrl.Nudge(req.Direction, req.Coarse))
	}
}

func WheelHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req wheelRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		respondSeek(w, ctrl, ctrl.Wheel(req.Delta, req.Coarse))
	}
}

func DragHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dragRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		respondSeek(w, ctrl, ctrl.Drag(req.DX))
	}
}

func PlayHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("toggle") == "true" {
			ctrl.TogglePlay()
		} else {
			ctrl.Play()
		}
		writeJSON(w, http.StatusOK, ctrl.State())
	}
}

func PauseHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.Pause()
		writeJSON(w, http.StatusOK, ctrl.State())
	}
}

func GoLiveHandler(ctrl *controller.Controller, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := ctrl.GoLive(now())
		log.Info("Jumped to live", "field_seconds", v)
		respondSeek(w, ctrl, v)
	}
}

func ZoomInHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.ZoomIn())
	}
}

func ZoomOutHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.ZoomOut())
	}
}

// TicksHandler returns the tick layout for ?half=first|second (first by default).
func TicksHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		half, err := parseHalf(r.URL.Query().Get("half"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ctrl.Ticks(half))
	}
}

func HalfStartHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		half, err := parseHalf(r.PathValue("half"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req halfStartRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if half == fieldtime.FirstHalf {
			err = ctrl.SetFirstHalfStart(req.Hour, req.Minute)
		} else {
			err = ctrl.SetSecondHalfStart(req.Hour, req.Minute)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ctrl.State())
	}
}

func HalfEndHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		half, err := parseHalf(r.PathValue("half"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		var changed bool
		if half == fieldtime.FirstHalf {
			changed, err = ctrl.EndFirstHalf()
		} else {
			changed, err = ctrl.EndSecondHalf()
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"changed": changed, "state": ctrl.State()})
	}
}

func HalfResetHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		half, err := parseHalf(r.PathValue("half"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		var changed bool
		if half == fieldtime.FirstHalf {
			changed, err = ctrl.ResetFirstHalf(confirmed(r))
		} else {
			changed, err = ctrl.ResetSecondHalf(confirmed(r))
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"changed": changed, "state": ctrl.State()})
	}
}

func respondSeek(w http.ResponseWriter, ctrl *controller.Controller, v float64) {
	writeJSON(w, http.StatusOK, seekResponse{Seek: v, Label: ctrl.FieldLabel(v)})
}

func parseHalf(s string) (fieldtime.Half, error) {
	switch s {
	case "", "first", "1":
		return fieldtime.FirstHalf, nil
	case "second", "2":
		return fieldtime.SecondHalf, nil
	}
	return 0, fmt.Errorf("half %q: %w", s, errBadRequest)
}
