package handlers

import (
	"bytes"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/controller"
	"github.com/mauv0809/field-clock/internal/report"
)

// ReportHandler exports the match report as ?format=json|yaml|msgpack.
func ReportHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := report.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		snapshot := ctrl.ExportReport(format)

		var buf bytes.Buffer
		if err := report.Encode(&buf, snapshot, format); err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("X-Export-ID", snapshot.ExportID)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Error("Failed to write report", "error", err)
		}
	}
}

// ReportPagesHandler returns the events split into printable pages.
func ReportPagesHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := ctrl.Snapshot(ctrl.Now())
		writeJSON(w, http.StatusOK, report.Paginate(snapshot.Bookmarks, report.EventsPerPage))
	}
}

func PublishReportHandler(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := ctrl.PublishReport()
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.Info("Report published", "export_id", snapshot.ExportID, "events", snapshot.TotalEvents)
		writeJSON(w, http.StatusAccepted, map[string]any{"exportId": snapshot.ExportID, "totalEvents": snapshot.TotalEvents})
	}
}
