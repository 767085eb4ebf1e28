package report

import (
	"context"
	"io"
)

// ReportService renders printable reports and keeps a copy of each in the archive.
type ReportService interface {
	ExportAttendance(ctx context.Context, req AttendanceExportRequest) (Document, error)
	ExportTransactions(ctx context.Context, req TransactionExportRequest) (Document, error)
	ExportCalendar(ctx context.Context, req CalendarExportRequest) (Document, error)

	ListArchive(ctx context.Context) ([]ArchivedReport, error)
	OpenArchived(ctx context.Context, name string) (io.ReadCloser, string, error)
}
