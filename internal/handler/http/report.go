package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// Downloads, archived as a side effect
	ExportAttendance(w http.ResponseWriter, r *http.Request)
	ExportTransactions(w http.ResponseWriter, r *http.Request)
	ExportCalendar(w http.ResponseWriter, r *http.Request)

	// Archive
	ListArchive(w http.ResponseWriter, r *http.Request)
	DownloadArchived(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance handles GET /attendance/report/export
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doc, err := h.reportService.ExportAttendance(r.Context(), report.AttendanceExportRequest{
		Month:     q.Get("month"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Format:    q.Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeDocument(w, doc)
}

// ExportTransactions handles GET /transactions/export
func (h *reportHandlerImpl) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doc, err := h.reportService.ExportTransactions(r.Context(), report.TransactionExportRequest{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Type:      q.Get("type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Format:    q.Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeDocument(w, doc)
}

// ExportCalendar handles GET /calendar/grid/export
func (h *reportHandlerImpl) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doc, err := h.reportService.ExportCalendar(r.Context(), report.CalendarExportRequest{
		Month:      q.Get("month"),
		ClientName: q.Get("client_name"),
		Format:     q.Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeDocument(w, doc)
}

// ListArchive handles GET /reports
func (h *reportHandlerImpl) ListArchive(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListArchive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, reports)
}

// DownloadArchived handles GET /reports/{name}
func (h *reportHandlerImpl) DownloadArchived(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rc, contentType, err := h.reportService.OpenArchived(r.Context(), name)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		slog.Error("Failed to read archived report", "name", name, "error", err)
		response.InternalServerError(w, "Failed to read archived report")
		return
	}
	response.File(w, name, contentType, content)
}

func writeDocument(w http.ResponseWriter, doc report.Document) {
	if doc.ArchiveURL != "" {
		w.Header().Set("X-Archive-URL", doc.ArchiveURL)
	}
	response.File(w, doc.Filename, doc.ContentType, doc.Content)
}
