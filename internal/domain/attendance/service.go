package attendance

import (
	"context"
)

type AttendanceService interface {
	// Raw clock events
	Record(ctx context.Context, req RecordRequest) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error

	// Derived views
	Daily(ctx context.Context, date string) (Report, error)
	Today(ctx context.Context) (Report, error)
	PeriodReport(ctx context.Context, query ReportQuery) (Report, error)
	StaffReport(ctx context.Context, staffID string, month string) (StaffReportResponse, error)
	HoursWorked(ctx context.Context, staffID string, query ReportQuery) ([]HoursWorkedResponse, error)
}
