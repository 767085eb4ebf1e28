package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const maxPeriodDays = 366

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	staff.StaffRepository
	aggregator *Aggregator
	loc        *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	aggregator *Aggregator,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		StaffRepository:      staffRepo,
		aggregator:           aggregator,
		loc:                  loc,
		now:                  time.Now,
	}
}

// today is the current calendar day in the configured zone.
func (s *AttendanceServiceImpl) today() time.Time {
	return attendance.DateOf(s.now().In(s.loc))
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.StaffRepository.GetByID(ctx, req.StaffID); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.loc)
	record := attendance.Record{
		StaffID: req.StaffID,
		Date:    attendance.DateOf(now),
		Time:    timeofday.Format(timeofday.Of(now)),
	}
	if req.Date != "" {
		record.Date, _ = time.Parse(dateLayout, req.Date)
	}
	if req.Time != "" {
		m, _ := timeofday.Parse(req.Time)
		record.Time = timeofday.Format(m)
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		slog.Error("Failed to record clock event", "staff_id", req.StaffID, "error", err)
		return attendance.RecordResponse{}, fmt.Errorf("failed to record clock event: %w", err)
	}
	return attendance.ToRecordResponse(created), nil
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	start, _ := time.Parse(dateLayout, filter.StartDate)
	end, _ := time.Parse(dateLayout, filter.EndDate)
	if err := checkPeriod(attendance.Period{Start: start, End: end}); err != nil {
		return nil, err
	}

	var (
		records []attendance.Record
		err     error
	)
	if filter.StaffID != nil && *filter.StaffID != "" {
		records, err = s.AttendanceRepository.ListByStaffAndRange(ctx, *filter.StaffID, start, end)
	} else {
		records, err = s.AttendanceRepository.ListByRange(ctx, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	resp := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.ToRecordResponse(r))
	}
	return resp, nil
}

// DeleteRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return s.AttendanceRepository.Delete(ctx, id)
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.Report, error) {
	return s.aggregate(ctx, attendance.DayPeriod(s.today()))
}

// Daily implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Daily(ctx context.Context, date string) (attendance.Report, error) {
	if date == "" {
		return s.Today(ctx)
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return attendance.Report{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return s.aggregate(ctx, attendance.DayPeriod(d))
}

// PeriodReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PeriodReport(ctx context.Context, query attendance.ReportQuery) (attendance.Report, error) {
	p, err := s.resolvePeriod(query)
	if err != nil {
		return attendance.Report{}, err
	}
	return s.aggregate(ctx, p)
}

// StaffReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StaffReport(ctx context.Context, staffID string, month string) (attendance.StaffReportResponse, error) {
	query := attendance.ReportQuery{Month: month}
	p, err := s.resolvePeriod(query)
	if err != nil {
		return attendance.StaffReportResponse{}, err
	}

	member, records, err := s.fetchMember(ctx, staffID, p)
	if err != nil {
		return attendance.StaffReportResponse{}, err
	}

	report := s.aggregator.Aggregate([]staff.StaffMember{member}, records, p, s.today())
	summary := report.Summaries[0]

	byDate := make(map[string]attendance.Status, len(summary.Days))
	for _, d := range summary.Days {
		byDate[d.Date] = d.Status
	}

	today := s.today()
	marks := make([]attendance.CalendarMark, 0, 31)
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		mark := attendance.CalendarMark{Day: d.Day(), Date: key}
		status, counted := byDate[key]
		switch {
		case d.After(today):
			mark.Status = "future"
		case !counted:
			mark.Status = "not_counted"
		default:
			mark.Status = strings.ToLower(string(status))
		}
		marks = append(marks, mark)
	}

	return attendance.StaffReportResponse{
		Month:    p.Start.Format("2006-01"),
		Summary:  summary,
		Calendar: marks,
	}, nil
}

// HoursWorked implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) HoursWorked(ctx context.Context, staffID string, query attendance.ReportQuery) ([]attendance.HoursWorkedResponse, error) {
	p, err := s.resolvePeriod(query)
	if err != nil {
		return nil, err
	}

	member, records, err := s.fetchMember(ctx, staffID, p)
	if err != nil {
		return nil, err
	}

	report := s.aggregator.Aggregate([]staff.StaffMember{member}, records, p, s.today())

	hours := make([]attendance.HoursWorkedResponse, 0)
	for _, d := range report.Summaries[0].Days {
		if d.CheckIn == nil || d.CheckOut == nil {
			continue
		}
		in, _ := timeofday.Parse(*d.CheckIn)
		out, _ := timeofday.Parse(*d.CheckOut)
		hours = append(hours, attendance.HoursWorkedResponse{
			Date:        d.Date,
			CheckIn:     *d.CheckIn,
			CheckOut:    *d.CheckOut,
			HoursWorked: math.Round(float64(out-in)/60*100) / 100,
		})
	}
	return hours, nil
}

// aggregate fetches the roster and the period's records concurrently. Either failure
// abandons the whole report.
func (s *AttendanceServiceImpl) aggregate(ctx context.Context, p attendance.Period) (attendance.Report, error) {
	var (
		roster  []staff.StaffMember
		records []attendance.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.StaffRepository.List(gctx, staff.StaffFilter{})
		if err != nil {
			return fmt.Errorf("fetch roster: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByRange(gctx, p.Start, p.End)
		if err != nil {
			return fmt.Errorf("fetch attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Attendance aggregation abandoned", "period_start", p.Start.Format(dateLayout), "period_end", p.End.Format(dateLayout), "error", err)
		return attendance.Report{}, err
	}

	return s.aggregator.Aggregate(roster, records, p, s.today()), nil
}

func (s *AttendanceServiceImpl) fetchMember(ctx context.Context, staffID string, p attendance.Period) (staff.StaffMember, []attendance.Record, error) {
	var (
		member  staff.StaffMember
		records []attendance.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		member, err = s.StaffRepository.GetByID(gctx, staffID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByStaffAndRange(gctx, staffID, p.Start, p.End)
		if err != nil {
			return fmt.Errorf("fetch attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Staff attendance fetch failed", "staff_id", staffID, "error", err)
		return staff.StaffMember{}, nil, err
	}
	return member, records, nil
}

func (s *AttendanceServiceImpl) resolvePeriod(query attendance.ReportQuery) (attendance.Period, error) {
	if err := query.Validate(); err != nil {
		return attendance.Period{}, err
	}

	var p attendance.Period
	switch {
	case query.Month != "":
		m, _ := time.Parse("2006-01", query.Month)
		p = attendance.MonthPeriod(m)
	case query.StartDate != "":
		start, _ := time.Parse(dateLayout, query.StartDate)
		end, _ := time.Parse(dateLayout, query.EndDate)
		p = attendance.Period{Start: start, End: end}
	default:
		p = attendance.MonthPeriod(s.today())
	}

	if err := checkPeriod(p); err != nil {
		return attendance.Period{}, err
	}
	return p, nil
}

func checkPeriod(p attendance.Period) error {
	if p.End.Before(p.Start) {
		return attendance.ErrInvalidPeriod
	}
	if p.End.Sub(p.Start) >= maxPeriodDays*24*time.Hour {
		return attendance.ErrPeriodTooLong
	}
	return nil
}
