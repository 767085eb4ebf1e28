package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/sse"
	authService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeUserRepo struct {
	user.UserRepository
	users []user.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeStaffService struct {
	staff.StaffService
	members []staff.StaffResponse
}

func (f *fakeStaffService) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffResponse, error) {
	return f.members, nil
}

func (f *fakeStaffService) GetByID(ctx context.Context, id string) (staff.StaffResponse, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return staff.StaffResponse{}, staff.ErrStaffNotFound
}

func (f *fakeStaffService) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.StaffResponse{ID: "s-new", Name: req.Name}, nil
}

func (f *fakeStaffService) Delete(ctx context.Context, id string) error {
	return staff.ErrStaffHasAttendance
}

type fakeAttendanceService struct {
	attendance.AttendanceService
}

func (f *fakeAttendanceService) Today(ctx context.Context) (attendance.Report, error) {
	return attendance.Report{AsOf: "2024-03-05", Rollup: attendance.Rollup{TotalStaff: 2, Present: 1, Absent: 1}}, nil
}

type fakeTransactionService struct {
	ledger.TransactionService
}

func (f *fakeTransactionService) List(ctx context.Context, query ledger.ListTransactionsQuery) ([]ledger.TransactionResponse, error) {
	return nil, nil
}

type fakeReportService struct {
	report.ReportService
	lastAttendance report.AttendanceExportRequest
}

func (f *fakeReportService) ExportAttendance(ctx context.Context, req report.AttendanceExportRequest) (report.Document, error) {
	f.lastAttendance = req
	return report.Document{
		Filename:    "Attendance_Report_March_2024.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.3 test"),
		ArchiveURL:  "/files/reports/20240305T183000_Attendance_Report_March_2024.pdf",
	}, nil
}

func (f *fakeReportService) OpenArchived(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return nil, "", report.ErrArchivedReportNotFound
}

type fakeReminderService struct {
	reminder.Service
	calls atomic.Int32
	err   error
}

func (f *fakeReminderService) List(ctx context.Context) ([]reminder.ReminderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := f.calls.Add(1)
	return []reminder.ReminderResponse{{ID: fmt.Sprint(n), Title: "Call the printer"}}, nil
}

type fakeNotificationService struct {
	notification.Service
}

func (f *fakeNotificationService) List(ctx context.Context, req notification.ListNotificationsRequest) (notification.NotificationListResponse, error) {
	return notification.NotificationListResponse{Notifications: []notification.NotificationResponse{}}, nil
}

func (f *fakeNotificationService) UnreadCount(ctx context.Context) (int, error) {
	return 3, nil
}

type testEnv struct {
	router  *chi.Mux
	jwt     jwt.Service
	hub     *sse.Hub
	reports *fakeReportService
}

func newTestEnv(t *testing.T) *testEnv {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUserRepo{users: []user.User{
		{ID: "u-1", Username: "owner", PasswordHash: string(hash), Role: user.RoleAdmin},
	}}

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	hub := sse.NewHub()
	reports := &fakeReportService{}
	staffService := &fakeStaffService{members: []staff.StaffResponse{{ID: "s-1", Name: "Asha"}}}

	router := NewRouter(RouterConfig{Env: "test", LogLevel: slog.LevelError}, jwtService, Handlers{
		Auth:         NewAuthHandler(authService.NewAuthService(users, jwtService)),
		User:         NewUserHandler(nil),
		Dashboard:    NewDashboardHandler(nil),
		Staff:        NewStaffHandler(staffService),
		Attendance:   NewAttendanceHandler(&fakeAttendanceService{}),
		Event:        NewEventHandler(nil),
		Transaction:  NewTransactionHandler(&fakeTransactionService{}),
		Client:       NewClientHandler(nil),
		Bill:         NewBillHandler(nil),
		Reminder:     NewReminderHandler(&fakeReminderService{}),
		Notification: NewNotificationHandler(&fakeNotificationService{}, &fakeReminderService{}, jwtService, hub),
		Report:       NewReportHandler(reports),
	})
	return &testEnv{router: router, jwt: jwtService, hub: hub, reports: reports}
}

func (e *testEnv) token(t *testing.T, role user.Role) string {
	token, _, err := e.jwt.GenerateAccessToken("u-"+string(role), string(role)+"-user", nil, role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "owner", "password": "correct horse"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "admin", data["session"].(map[string]interface{})["role"])

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "owner", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid username or password", decodeResponse(t, rec).Error.Message)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/session", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/session", env.token(t, user.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "staff", data["role"])
	assert.Equal(t, "staff-user", data["username"])
}

func TestSSETokenIsNotAnAccessToken(t *testing.T) {
	env := newTestEnv(t)
	sseToken, _, err := env.jwt.GenerateSSEToken("u-1")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/session", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, user.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPermissions(t *testing.T) {
	env := newTestEnv(t)
	staffToken := env.token(t, user.RoleStaff)
	adminToken := env.token(t, user.RoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"staff reads roster", http.MethodGet, "/api/v1/staff", staffToken, http.StatusOK},
		{"staff cannot edit roster", http.MethodPost, "/api/v1/staff", staffToken, http.StatusForbidden},
		{"staff cannot see ledger", http.MethodGet, "/api/v1/transactions", staffToken, http.StatusForbidden},
		{"admin sees ledger", http.MethodGet, "/api/v1/transactions", adminToken, http.StatusOK},
		{"staff cannot manage clients", http.MethodGet, "/api/v1/clients", staffToken, http.StatusForbidden},
		{"staff cannot manage bills", http.MethodGet, "/api/v1/bills", staffToken, http.StatusForbidden},
		{"staff cannot export attendance", http.MethodGet, "/api/v1/attendance/report/export", staffToken, http.StatusForbidden},
		{"staff cannot delete clock events", http.MethodDelete, "/api/v1/attendance/records/r-1", staffToken, http.StatusForbidden},
		{"staff sees today", http.MethodGet, "/api/v1/attendance/today", staffToken, http.StatusOK},
		{"staff sees notifications", http.MethodGet, "/api/v1/notifications/unread-count", staffToken, http.StatusOK},
		{"staff cannot list users", http.MethodGet, "/api/v1/users", staffToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestStaffEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, user.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/api/v1/staff", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)

	rec = env.do(t, http.MethodPost, "/api/v1/staff", token, map[string]string{"department": "Studio"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp = decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "name")

	rec = env.do(t, http.MethodPost, "/api/v1/staff", token, map[string]string{"name": "Ravi"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/staff/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/staff/s-1", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/transactions", env.token(t, user.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestAttendanceExport(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/attendance/report/export?month=2024-03&format=pdf", env.token(t, user.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Attendance_Report_March_2024.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "/files/reports/20240305T183000_Attendance_Report_March_2024.pdf", rec.Header().Get("X-Archive-URL"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
	assert.Equal(t, "2024-03", env.reports.lastAttendance.Month)
	assert.Equal(t, "pdf", env.reports.lastAttendance.Format)

	rec = env.do(t, http.MethodGet, "/api/v1/reports/missing.pdf", env.token(t, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreamTables(t *testing.T) {
	tables, err := streamTables("")
	require.NoError(t, err)
	assert.Equal(t, []string{"reminders", "notifications"}, tables)

	tables, err = streamTables("notifications, notifications")
	require.NoError(t, err)
	assert.Equal(t, []string{"notifications"}, tables)

	_, err = streamTables("users")
	assert.Error(t, err)
}

func TestRealtimeStreamRejectsBadRequests(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/realtime/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/realtime/stream?token="+env.token(t, user.RoleAdmin), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "access tokens are not stream tokens")

	sseToken, _, err := env.jwt.GenerateSSEToken("u-1")
	require.NoError(t, err)
	rec = env.do(t, http.MethodGet, "/api/v1/realtime/stream?tables=users&token="+sseToken, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRealtimeToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/realtime/token", env.token(t, user.RoleStaff), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]interface{})
	token, _ := data["token"].(string)
	userID, err := env.jwt.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-staff", userID)
}

// readEvent reads one SSE frame.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if name != "" {
				return name, data
			}
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestRealtimeStreamReplacesCollectionOnChange(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	sseToken, _, err := env.jwt.GenerateSSEToken("u-1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/realtime/stream?tables=reminders&token="+sseToken, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, _ := readEvent(t, reader)
	assert.Equal(t, "connected", name)

	name, data := readEvent(t, reader)
	assert.Equal(t, "reminders", name)
	assert.Contains(t, data, `"id":"1"`)

	env.hub.Publish(reminder.Table, sse.Event{Event: "change", Data: reminder.Table})

	name, data = readEvent(t, reader)
	assert.Equal(t, "reminders", name)
	assert.Contains(t, data, `"id":"2"`)
}

func TestSendSnapshotsKeepsOrderAndSkipsFailedTables(t *testing.T) {
	reminders := &fakeReminderService{}
	h := NewNotificationHandler(&fakeNotificationService{}, reminders, nil, sse.NewHub()).(*notificationHandlerImpl)

	rec := httptest.NewRecorder()
	h.sendSnapshots(context.Background(), rec, []string{notification.Table, reminder.Table})
	reader := bufio.NewReader(strings.NewReader(rec.Body.String()))
	name, _ := readEvent(t, reader)
	assert.Equal(t, notification.Table, name)
	name, data := readEvent(t, reader)
	assert.Equal(t, reminder.Table, name)
	assert.Contains(t, data, "Call the printer")

	reminders.err = errors.New("connection reset")
	rec = httptest.NewRecorder()
	h.sendSnapshots(context.Background(), rec, []string{reminder.Table, notification.Table})
	assert.NotContains(t, rec.Body.String(), "event: reminders")
	assert.Contains(t, rec.Body.String(), "event: notifications")
}
