package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/session"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendance    attendance.AttendanceService
	events        calendar.EventService
	notifications notification.Service
	bills         bill.BillService
	ledger        ledger.TransactionService
	loc           *time.Location
	now           func() time.Time
}

func NewDashboardService(
	attendanceService attendance.AttendanceService,
	eventService calendar.EventService,
	notificationService notification.Service,
	billService bill.BillService,
	transactionService ledger.TransactionService,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		attendance:    attendanceService,
		events:        eventService,
		notifications: notificationService,
		bills:         billService,
		ledger:        transactionService,
		loc:           loc,
		now:           time.Now,
	}
}

// Overview implements dashboard.DashboardService. Each section is one goroutine; any
// failure fails the whole overview.
func (s *DashboardServiceImpl) Overview(ctx context.Context) (dashboard.OverviewResponse, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return dashboard.OverviewResponse{}, auth.ErrSessionMissing
	}

	today := s.now().In(s.loc)
	date := today.Format("2006-01-02")
	resp := dashboard.OverviewResponse{Date: date, Events: []calendar.EventResponse{}}

	g, gctx := errgroup.WithContext(ctx)

	if sess.Can(user.PermissionAttendanceView) {
		g.Go(func() error {
			report, err := s.attendance.Today(gctx)
			if err != nil {
				return fmt.Errorf("attendance: %w", err)
			}
			resp.Attendance = &report.Rollup
			return nil
		})
	}

	if sess.Can(user.PermissionCalendarView) {
		g.Go(func() error {
			events, err := s.events.List(gctx, calendar.ListEventsQuery{Start: date, End: date})
			if err != nil {
				return fmt.Errorf("events: %w", err)
			}
			resp.Events = events
			return nil
		})
	}

	g.Go(func() error {
		count, err := s.notifications.UnreadCount(gctx)
		if err != nil {
			return fmt.Errorf("notifications: %w", err)
		}
		resp.UnreadNotifications = count
		return nil
	})

	if sess.Can(user.PermissionBillManage) {
		g.Go(func() error {
			reminders, err := s.bills.Reminders(gctx)
			if err != nil {
				return fmt.Errorf("bills: %w", err)
			}
			resp.Bills = billStanding(reminders)
			return nil
		})
	}

	if sess.Can(user.PermissionLedgerManage) {
		g.Go(func() error {
			first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
			summary, err := s.ledger.Summary(gctx, ledger.SummaryQuery{
				ListTransactionsQuery: ledger.ListTransactionsQuery{
					StartDate: first.Format("2006-01-02"),
					EndDate:   first.AddDate(0, 1, -1).Format("2006-01-02"),
				},
				Months: "1",
			})
			if err != nil {
				return fmt.Errorf("ledger: %w", err)
			}
			resp.Ledger = &dashboard.LedgerMonth{
				Month:   first.Format("2006-01"),
				Income:  summary.Income,
				Expense: summary.Expense,
				Balance: summary.Balance,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Dashboard overview failed", "user_id", sess.UserID, "error", err)
		return dashboard.OverviewResponse{}, err
	}
	return resp, nil
}

func billStanding(reminders []bill.ReminderResponse) *dashboard.BillStanding {
	standing := &dashboard.BillStanding{Outstanding: decimal.Zero}
	for _, r := range reminders {
		standing.Unsent++
		if r.Overdue {
			standing.Overdue++
		}
		standing.Outstanding = standing.Outstanding.Add(r.Total)
	}
	return standing
}
