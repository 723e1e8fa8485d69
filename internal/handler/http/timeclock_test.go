package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/clockwork-hr/timeclock-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTimeclockService lets handler tests inject service outcomes without a
// database behind them.
type stubTimeclockService struct {
	day     timeclock.DayResponse
	today   timeclock.TodayResponse
	history timeclock.HistoryResponse
	weekly  timeclock.WeeklySummaryResponse
	err     error

	lastClockIn    *timeclock.ClockInRequest
	lastBreakStart *timeclock.BreakStartRequest
	lastFilter     *timeclock.HistoryFilter
	lastWeekStart  string
}

func (s *stubTimeclockService) ClockIn(_ context.Context, req timeclock.ClockInRequest) (timeclock.DayResponse, error) {
	s.lastClockIn = &req
	return s.day, s.err
}

func (s *stubTimeclockService) ClockOut(_ context.Context, _ timeclock.ClockOutRequest) (timeclock.DayResponse, error) {
	return s.day, s.err
}

func (s *stubTimeclockService) StartBreak(_ context.Context, req timeclock.BreakStartRequest) (timeclock.DayResponse, error) {
	s.lastBreakStart = &req
	return s.day, s.err
}

func (s *stubTimeclockService) EndBreak(_ context.Context, _ timeclock.BreakEndRequest) (timeclock.DayResponse, error) {
	return s.day, s.err
}

func (s *stubTimeclockService) GetToday(_ context.Context) (timeclock.TodayResponse, error) {
	return s.today, s.err
}

func (s *stubTimeclockService) GetHistory(_ context.Context, filter timeclock.HistoryFilter) (timeclock.HistoryResponse, error) {
	s.lastFilter = &filter
	return s.history, s.err
}

func (s *stubTimeclockService) GetWeeklySummary(_ context.Context, weekStart string) (timeclock.WeeklySummaryResponse, error) {
	s.lastWeekStart = weekStart
	return s.weekly, s.err
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestTimeclockHandler_ClockIn_Success(t *testing.T) {
	stub := &stubTimeclockService{day: timeclock.DayResponse{ID: "day-1", Status: "CLOCKED_IN"}}
	handler := NewTimeclockHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeclock/clock-in", strings.NewReader(`{"location":"HQ"}`))
	req.Header.Set("Idempotency-Key", "req-42")
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Clock in successful", resp.Message)

	require.NotNil(t, stub.lastClockIn)
	require.NotNil(t, stub.lastClockIn.Location)
	assert.Equal(t, "HQ", *stub.lastClockIn.Location)
	require.NotNil(t, stub.lastClockIn.IdempotencyKey)
	assert.Equal(t, "req-42", *stub.lastClockIn.IdempotencyKey)
}

func TestTimeclockHandler_ClockIn_EmptyBody(t *testing.T) {
	stub := &stubTimeclockService{day: timeclock.DayResponse{Status: "CLOCKED_IN"}}
	handler := NewTimeclockHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeclock/clock-in", nil)
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stub.lastClockIn)
	assert.Nil(t, stub.lastClockIn.Location)
	assert.Nil(t, stub.lastClockIn.IdempotencyKey)
}

func TestTimeclockHandler_ClockIn_MalformedBody(t *testing.T) {
	handler := NewTimeclockHandler(&stubTimeclockService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeclock/clock-in", strings.NewReader(`{"location":`))
	w := httptest.NewRecorder()

	handler.ClockIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestTimeclockHandler_ClockOut_WhileOnBreak(t *testing.T) {
	handler := NewTimeclockHandler(&stubTimeclockService{err: timeclock.ErrOnBreak})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeclock/clock-out", nil)
	w := httptest.NewRecorder()

	handler.ClockOut(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestTimeclockHandler_StartBreak_PassesBreakType(t *testing.T) {
	stub := &stubTimeclockService{day: timeclock.DayResponse{Status: "ON_BREAK"}}
	handler := NewTimeclockHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeclock/breaks/start", strings.NewReader(`{"break_type":"lunch"}`))
	w := httptest.NewRecorder()

	handler.StartBreak(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.lastBreakStart)
	assert.Equal(t, "lunch", stub.lastBreakStart.BreakType)
}

func TestTimeclockHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"role not permitted", timeclock.ErrRoleNotPermitted, http.StatusForbidden},
		{"employee record missing", employee.ErrEmployeeRecordMissing, http.StatusForbidden},
		{"not clocked in", timeclock.ErrNotClockedIn, http.StatusConflict},
		{"version conflict", timeclock.ErrVersionConflict, http.StatusConflict},
		{"store unavailable", timeclock.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			handler := NewTimeclockHandler(&stubTimeclockService{err: c.err})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/timeclock/clock-in", nil)
			w := httptest.NewRecorder()

			handler.ClockIn(w, req)

			assert.Equal(t, c.wantCode, w.Code)
		})
	}
}

func TestTimeclockHandler_GetToday(t *testing.T) {
	stub := &stubTimeclockService{today: timeclock.TodayResponse{
		Date:   "2026-03-09",
		Status: "NOT_CLOCKED_IN",
	}}
	handler := NewTimeclockHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeclock/today", nil)
	w := httptest.NewRecorder()

	handler.GetToday(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
}

func TestTimeclockHandler_GetHistory_PassesFilter(t *testing.T) {
	stub := &stubTimeclockService{}
	handler := NewTimeclockHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeclock/history?start_date=2026-03-01&end_date=2026-03-07", nil)
	w := httptest.NewRecorder()

	handler.GetHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.lastFilter)
	assert.Equal(t, "2026-03-01", stub.lastFilter.StartDate)
	assert.Equal(t, "2026-03-07", stub.lastFilter.EndDate)
}

func TestTimeclockHandler_GetWeeklySummary_PassesWeekStart(t *testing.T) {
	stub := &stubTimeclockService{}
	handler := NewTimeclockHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timeclock/weekly-summary?week_start=2026-03-09", nil)
	w := httptest.NewRecorder()

	handler.GetWeeklySummary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-03-09", stub.lastWeekStart)
}
