package handler_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barberbook/internal/application/dto"
	"barberbook/internal/application/service"
	"barberbook/internal/interfaces/api/handler"
	apimiddleware "barberbook/internal/interfaces/api/middleware"
	"barberbook/internal/interfaces/api/router"
	appErrors "barberbook/internal/pkg/errors"
	"barberbook/internal/pkg/logger"
)

type stubSchedule struct {
	createErr error
	created   *dto.AppointmentResponse
}

func (s *stubSchedule) Create(ctx context.Context, userID, dateKey string, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}
func (s *stubSchedule) EditTime(ctx context.Context, userID, dateKey, id string, req dto.EditAppointmentTimeRequest) error {
	return nil
}
func (s *stubSchedule) Delete(ctx context.Context, userID, dateKey, id string) error { return nil }
func (s *stubSchedule) DuplicateToNextWeek(ctx context.Context, userID, dateKey, id string) (*dto.DuplicateResponse, error) {
	return &dto.DuplicateResponse{TargetDate: "2024-04-01"}, nil
}

type stubDaybook struct {
	snapshot dto.DaySnapshot
}

func (s *stubDaybook) Snapshot(ctx context.Context, userID, dateKey string) (*dto.DaySnapshot, error) {
	snap := s.snapshot
	snap.UserID = userID
	snap.Date = dateKey
	return &snap, nil
}
func (s *stubDaybook) NewWatch(fn service.SnapshotFunc) service.DaybookWatch {
	return &stubWatch{daybook: s, fn: fn}
}
func (s *stubDaybook) Invalidate(userID, dateKey string)   {}
func (s *stubDaybook) SuppressLock(userID, dateKey string) {}

// stubWatch delivers the daybook's canned snapshot once on SetDay.
type stubWatch struct {
	daybook *stubDaybook
	fn      service.SnapshotFunc
}

func (w *stubWatch) SetDay(ctx context.Context, userID, dateKey string) error {
	snap := w.daybook.snapshot
	snap.UserID = userID
	snap.Date = dateKey
	w.fn(snap)
	return nil
}
func (w *stubWatch) Close() {}

type stubDispatch struct {
	status *dto.DispatchStatus
	err    error
}

func (s *stubDispatch) RequestSend(ctx context.Context, userID, dateKey string) (*dto.DispatchStatus, error) {
	return s.status, s.err
}
func (s *stubDispatch) Confirm(ctx context.Context, userID, dateKey string, resendAck bool) (*dto.DispatchStatus, error) {
	return s.status, s.err
}
func (s *stubDispatch) Cancel(userID, dateKey string) (*dto.DispatchStatus, error) {
	return s.status, s.err
}
func (s *stubDispatch) Status(userID, dateKey string) *dto.DispatchStatus { return s.status }
func (s *stubDispatch) ComposeManual(ctx context.Context, userID, dateKey, id string) (*dto.ComposeResponse, error) {
	return &dto.ComposeResponse{Phone: "+972501", URI: "sms:+972501?body=x"}, nil
}
func (s *stubDispatch) Attempted(userID, phone string) bool { return false }

type stubSettings struct{}

func (s *stubSettings) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	return &dto.SettingsResponse{Name: "רון"}, nil
}
func (s *stubSettings) Save(ctx context.Context, userID string, req dto.SaveSettingsRequest) (*dto.SettingsResponse, error) {
	return &dto.SettingsResponse{Name: req.Name, Template: req.Template}, nil
}
func (s *stubSettings) ResolveTemplate(ctx context.Context, userID string) (string, string) {
	return "t", "רון"
}

func newTestRouter(sched *stubSchedule, daybook *stubDaybook, disp *stubDispatch) http.Handler {
	log := logger.New()
	return router.NewRouter(&router.Config{
		ScheduleHandler: handler.NewScheduleHandler(sched, daybook, log),
		DispatchHandler: handler.NewDispatchHandler(disp, log),
		SettingsHandler: handler.NewSettingsHandler(&stubSettings{}, log),
		DispatchLimiter: apimiddleware.NewRateLimiter(100, 100),
		Logger:          log,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetDayReturnsSnapshot(t *testing.T) {
	daybook := &stubDaybook{snapshot: dto.DaySnapshot{
		Count:  1,
		Locked: true,
		Appointments: []dto.AppointmentResponse{
			{ID: "a", Time: "09:00", Phone: "+972501", Sent: true},
		},
	}}
	h := newTestRouter(&stubSchedule{}, daybook, &stubDispatch{})

	rec := doJSON(t, h, http.MethodGet, "/api/users/u1/days/2024-03-25", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var snap dto.DaySnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if snap.Date != "2024-03-25" || !snap.Locked || snap.Count != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestWatchDayStreamsSnapshotEvents(t *testing.T) {
	daybook := &stubDaybook{snapshot: dto.DaySnapshot{
		Count:  1,
		Locked: true,
		Appointments: []dto.AppointmentResponse{
			{ID: "a", Time: "09:00", Phone: "+972501", Sent: true},
		},
	}}
	srv := httptest.NewServer(newTestRouter(&stubSchedule{}, daybook, &stubDispatch{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/users/u1/days/2024-03-25/watch")
	if err != nil {
		t.Fatalf("GET watch: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading event line: %v", err)
	}
	if strings.TrimSpace(event) != "event: snapshot" {
		t.Fatalf("event line = %q", event)
	}
	data, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading data line: %v", err)
	}
	var snap dto.DaySnapshot
	if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(data), "data: ")), &snap); err != nil {
		t.Fatalf("bad frame payload: %v", err)
	}
	if snap.Date != "2024-03-25" || snap.UserID != "u1" || !snap.Locked || snap.Count != 1 {
		t.Errorf("streamed snapshot = %+v", snap)
	}
}

func TestWatchDayRejectsBadDate(t *testing.T) {
	h := newTestRouter(&stubSchedule{}, &stubDaybook{}, &stubDispatch{})
	rec := doJSON(t, h, http.MethodGet, "/api/users/u1/days/march-25/watch", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetDayRejectsBadDate(t *testing.T) {
	h := newTestRouter(&stubSchedule{}, &stubDaybook{}, &stubDispatch{})
	rec := doJSON(t, h, http.MethodGet, "/api/users/u1/days/march-25", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateAppointmentErrorMapping(t *testing.T) {
	h := newTestRouter(&stubSchedule{createErr: appErrors.ErrInvalidContact}, &stubDaybook{}, &stubDispatch{})
	rec := doJSON(t, h, http.MethodPost, "/api/users/u1/days/2024-03-25/appointments",
		`{"name":"דוד","phone":"---","time":"09:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("error body missing: %s", rec.Body.String())
	}
}

func TestCreateAppointmentSuccess(t *testing.T) {
	h := newTestRouter(&stubSchedule{created: &dto.AppointmentResponse{ID: "a", Time: "09:00"}}, &stubDaybook{}, &stubDispatch{})
	rec := doJSON(t, h, http.MethodPost, "/api/users/u1/days/2024-03-25/appointments",
		`{"name":"דוד","phone":"0501234567","time":"09:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestDispatchBusyMapsToConflict(t *testing.T) {
	h := newTestRouter(&stubSchedule{}, &stubDaybook{}, &stubDispatch{err: appErrors.ErrDispatchBusy})
	rec := doJSON(t, h, http.MethodPost, "/api/users/u1/days/2024-03-25/dispatch",
		`{"action":"confirm"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	h := newTestRouter(&stubSchedule{}, &stubDaybook{}, &stubDispatch{})
	rec := doJSON(t, h, http.MethodPost, "/api/users/u1/days/2024-03-25/dispatch",
		`{"action":"yolo"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDispatchRequestFlow(t *testing.T) {
	h := newTestRouter(&stubSchedule{}, &stubDaybook{}, &stubDispatch{
		status: &dto.DispatchStatus{State: "confirming", Locked: true},
	})
	rec := doJSON(t, h, http.MethodPost, "/api/users/u1/days/2024-03-25/dispatch",
		`{"action":"request"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status dto.DispatchStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if status.State != "confirming" || !status.Locked {
		t.Errorf("status = %+v", status)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h := newTestRouter(&stubSchedule{}, &stubDaybook{}, &stubDispatch{})
	rec := doJSON(t, h, http.MethodPut, "/api/users/u1/settings",
		`{"name":"רון","template":"תזכורת: {{time}}"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodGet, "/api/users/u1/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
