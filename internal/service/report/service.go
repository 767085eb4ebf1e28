package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/storage"
)

const (
	archiveDir = "reports"
	dateLayout = "2006-01-02"
)

type ReportServiceImpl struct {
	attendance attendance.AttendanceService
	ledger     ledger.TransactionService
	events     calendar.EventService
	archive    storage.FileStorage
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(
	attendanceService attendance.AttendanceService,
	transactionService ledger.TransactionService,
	eventService calendar.EventService,
	archive storage.FileStorage,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		attendance: attendanceService,
		ledger:     transactionService,
		events:     eventService,
		archive:    archive,
		loc:        loc,
		now:        time.Now,
	}
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, req report.AttendanceExportRequest) (report.Document, error) {
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		return report.Document{}, err
	}

	rep, err := s.attendance.PeriodReport(ctx, attendance.ReportQuery{
		Month:     req.Month,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return report.Document{}, err
	}

	label, slug := periodLabel(rep.PeriodStart, rep.PeriodEnd)
	subtitle := fmt.Sprintf("As of %s, %d staff", displayDate(rep.AsOf), rep.Rollup.TotalStaff)
	if rep.Rollup.Date == nil {
		subtitle = "Period has not started"
	}

	table := export.Table{
		Title:    "Attendance Report for " + label,
		Subtitle: subtitle,
		Header:   AttendanceHeader,
		Rows:     AttendanceRows(rep.Summaries),
	}
	return s.render(ctx, table, "Attendance_Report_"+slug, format)
}

// ExportTransactions implements report.ReportService.
func (s *ReportServiceImpl) ExportTransactions(ctx context.Context, req report.TransactionExportRequest) (report.Document, error) {
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		return report.Document{}, err
	}

	query := ledger.ListTransactionsQuery{
		Search:    req.Search,
		Category:  req.Category,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	txs, err := s.ledger.Matching(ctx, query)
	if err != nil {
		return report.Document{}, err
	}

	table := export.Table{
		Title:    "Transactions Report",
		Subtitle: query.DateRangeLabel(),
		Header:   TransactionHeader,
		Rows:     TransactionRows(txs),
	}
	return s.render(ctx, table, "transactions-report", format)
}

// ExportCalendar implements report.ReportService.
func (s *ReportServiceImpl) ExportCalendar(ctx context.Context, req report.CalendarExportRequest) (report.Document, error) {
	format, err := report.ParseFormat(req.Format)
	if err != nil {
		return report.Document{}, err
	}

	grid, err := s.events.MonthGrid(ctx, calendar.GridQuery{Month: req.Month, ClientName: req.ClientName})
	if err != nil {
		return report.Document{}, err
	}

	title := grid.Title
	if name := strings.TrimSpace(req.ClientName); name != "" {
		title += " - " + name
	}
	table := export.Table{
		Title:  title,
		Header: grid.Weekdays,
		Rows:   CalendarRows(grid),
	}
	return s.render(ctx, table, fmt.Sprintf("Calendar_%04d-%02d", grid.Year, grid.Month), format)
}

// render writes the table and archives a copy. A failed archive write is logged and
// the document is still returned.
func (s *ReportServiceImpl) render(ctx context.Context, table export.Table, basename string, format report.Format) (report.Document, error) {
	generatedAt := s.now().In(s.loc)
	table.GeneratedAt = generatedAt

	var buf bytes.Buffer
	var err error
	switch format {
	case report.FormatXLSX:
		err = export.XLSX(&buf, table)
	default:
		err = export.PDF(&buf, table)
	}
	if err != nil {
		slog.Error("Report rendering failed", "report", basename, "format", format, "error", err)
		return report.Document{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	doc := report.Document{
		Filename:    basename + format.Extension(),
		ContentType: format.ContentType(),
		Content:     buf.Bytes(),
	}

	if s.archive != nil {
		key := path.Join(archiveDir, generatedAt.Format("20060102T150405")+"_"+doc.Filename)
		stored, err := s.archive.Upload(ctx, bytes.NewReader(doc.Content), key)
		if err != nil {
			slog.Warn("Failed to archive report", "key", key, "error", err)
		} else {
			doc.ArchiveKey = stored
			doc.ArchiveURL = s.archive.GetURL(stored)
		}
	}
	return doc, nil
}

// ListArchive implements report.ReportService.
func (s *ReportServiceImpl) ListArchive(ctx context.Context) ([]report.ArchivedReport, error) {
	if s.archive == nil {
		return []report.ArchivedReport{}, nil
	}
	files, err := s.archive.List(ctx, archiveDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived reports: %w", err)
	}
	out := make([]report.ArchivedReport, 0, len(files))
	for _, f := range files {
		out = append(out, report.ArchivedReport{
			Key:       f.Key,
			Name:      f.Name,
			Size:      f.Size,
			URL:       f.URL,
			CreatedAt: f.CreatedAt,
		})
	}
	return out, nil
}

// OpenArchived implements report.ReportService. It returns the content and its type.
func (s *ReportServiceImpl) OpenArchived(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if s.archive == nil || name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, "", report.ErrArchivedReportNotFound
	}

	rc, err := s.archive.Download(ctx, path.Join(archiveDir, name))
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return nil, "", report.ErrArchivedReportNotFound
		}
		return nil, "", err
	}

	contentType := report.FormatPDF.ContentType()
	if strings.HasSuffix(name, report.FormatXLSX.Extension()) {
		contentType = report.FormatXLSX.ContentType()
	}
	return rc, contentType, nil
}

// periodLabel names a period for titles and filenames: "March 2024" and "2024-03" for a
// whole month, otherwise the two dates.
func periodLabel(start, end string) (string, string) {
	s, err1 := time.Parse(dateLayout, start)
	e, err2 := time.Parse(dateLayout, end)
	if err1 != nil || err2 != nil {
		return start + " - " + end, start + "_" + end
	}
	if s.Day() == 1 && e.Equal(s.AddDate(0, 1, -1)) {
		return s.Format("January 2006"), s.Format("2006-01")
	}
	return displayDate(start) + " - " + displayDate(end), start + "_" + end
}

func displayDate(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
