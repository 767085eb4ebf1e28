package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
	listErr error
	created []attendance.Record
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	r.ID = "rec-new"
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeAttendanceRepo) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []attendance.Record
	for _, r := range f.records {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]attendance.Record, error) {
	all, err := f.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	var out []attendance.Record
	for _, r := range all {
		if r.StaffID == staffID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	members []staff.StaffMember
	listErr error
}

func (f *fakeStaffRepo) Create(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	return m, nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return staff.StaffMember{}, staff.ErrStaffNotFound
}

func (f *fakeStaffRepo) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffMember, error) {
	return f.members, f.listErr
}

func (f *fakeStaffRepo) Update(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	return m, nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeStaffRepo) HasAttendance(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func newTestService(records *fakeAttendanceRepo, roster *fakeStaffRepo, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(records, roster, NewAggregator(timeofday.MustParse("10:00"), attendance.AbsentFullPeriod), time.UTC).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestToday(t *testing.T) {
	roster := &fakeStaffRepo{members: []staff.StaffMember{{ID: "1", Name: "Asha"}, {ID: "2", Name: "Ravi"}}}
	records := &fakeAttendanceRepo{records: []attendance.Record{
		rec("1", "2024-03-05", "09:40"),
		rec("1", "2024-03-04", "09:40"),
	}}
	svc := newTestService(records, roster, time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC))

	report, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", report.AsOf)
	assert.Equal(t, 2, report.Rollup.TotalStaff)
	assert.Equal(t, 1, report.Rollup.Present)
	assert.Equal(t, 1, report.Rollup.Absent)
}

func TestTodayUsesConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	roster := &fakeStaffRepo{members: []staff.StaffMember{{ID: "1"}}}
	svc := newTestService(&fakeAttendanceRepo{}, roster, time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC))
	svc.loc = loc

	report, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-06", report.AsOf)
}

func TestAggregationAbandonedOnFetchFailure(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	failingRoster := &fakeStaffRepo{listErr: errors.New("connection reset")}
	_, err := newTestService(&fakeAttendanceRepo{}, failingRoster, now).PeriodReport(context.Background(), attendance.ReportQuery{Month: "2024-03"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch roster")

	failingRecords := &fakeAttendanceRepo{listErr: errors.New("timeout")}
	report, err := newTestService(failingRecords, &fakeStaffRepo{members: []staff.StaffMember{{ID: "1"}}}, now).Today(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch attendance")
	assert.Empty(t, report.Summaries)
}

func TestPeriodReportValidation(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeStaffRepo{}, time.Now())

	_, err := svc.PeriodReport(context.Background(), attendance.ReportQuery{Month: "March"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.PeriodReport(context.Background(), attendance.ReportQuery{StartDate: "2024-03-10", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, attendance.ErrInvalidPeriod)

	_, err = svc.PeriodReport(context.Background(), attendance.ReportQuery{StartDate: "2023-01-01", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, attendance.ErrPeriodTooLong)
}

func TestPeriodReportDefaultsToCurrentMonth(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeStaffRepo{members: []staff.StaffMember{{ID: "1"}}}, time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC))

	report, err := svc.PeriodReport(context.Background(), attendance.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", report.PeriodStart)
	assert.Equal(t, "2024-02-29", report.PeriodEnd)
	assert.Equal(t, 10, report.Summaries[0].DaysAbsent)
}

func TestRecordDefaultsToNow(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo, &fakeStaffRepo{members: []staff.StaffMember{{ID: "1"}}}, time.Date(2024, 3, 5, 9, 7, 45, 0, time.UTC))

	resp, err := svc.Record(context.Background(), attendance.RecordRequest{StaffID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", resp.Date)
	assert.Equal(t, "09:07", resp.Time)

	resp, err = svc.Record(context.Background(), attendance.RecordRequest{StaffID: "1", Date: "2024-03-01", Time: "9:5"})
	assert.Error(t, err, "single digit minutes are rejected")

	resp, err = svc.Record(context.Background(), attendance.RecordRequest{StaffID: "1", Date: "2024-03-01", Time: "9:05"})
	require.NoError(t, err)
	assert.Equal(t, "09:05", resp.Time)

	_, err = svc.Record(context.Background(), attendance.RecordRequest{StaffID: "404"})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestStaffReport(t *testing.T) {
	roster := &fakeStaffRepo{members: []staff.StaffMember{{ID: "1", Name: "Asha"}}}
	records := &fakeAttendanceRepo{records: []attendance.Record{
		rec("1", "2024-03-01", "09:50"),
		rec("1", "2024-03-02", "10:30"),
	}}
	svc := newTestService(records, roster, time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC))

	resp, err := svc.StaffReport(context.Background(), "1", "2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Month)
	assert.Equal(t, 2, resp.Summary.DaysPresent)
	assert.Equal(t, 1, resp.Summary.DaysAbsent)
	require.Len(t, resp.Calendar, 31)
	assert.Equal(t, "present", resp.Calendar[0].Status)
	assert.Equal(t, "late", resp.Calendar[1].Status)
	assert.Equal(t, "absent", resp.Calendar[2].Status)
	assert.Equal(t, "future", resp.Calendar[3].Status)

	_, err = svc.StaffReport(context.Background(), "missing", "2024-03")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestHoursWorked(t *testing.T) {
	roster := &fakeStaffRepo{members: []staff.StaffMember{{ID: "1"}}}
	records := &fakeAttendanceRepo{records: []attendance.Record{
		rec("1", "2024-03-01", "09:50"),
		rec("1", "2024-03-01", "18:30"),
		rec("1", "2024-03-02", "10:00"),
	}}
	svc := newTestService(records, roster, time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC))

	hours, err := svc.HoursWorked(context.Background(), "1", attendance.ReportQuery{StartDate: "2024-03-01", EndDate: "2024-03-03"})
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, 8.67, hours[0].HoursWorked)
	assert.Equal(t, 0.0, hours[1].HoursWorked)
}
