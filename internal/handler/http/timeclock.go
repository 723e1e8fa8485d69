package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/clockwork-hr/timeclock-backend-go/internal/handler/http/response"
)

type TimeclockHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetWeeklySummary(w http.ResponseWriter, r *http.Request)
}

type timeclockHandlerImpl struct {
	timeclockService timeclock.TimeclockService
}

func NewTimeclockHandler(timeclockService timeclock.TimeclockService) TimeclockHandler {
	return &timeclockHandlerImpl{
		timeclockService: timeclockService,
	}
}

// decodeBody unmarshals an optional JSON body into dst. Mutation bodies
// carry only metadata, so an empty body is fine.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func idempotencyKey(r *http.Request) *string {
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		return &key
	}
	return nil
}

// ClockIn implements TimeclockHandler.
func (h *timeclockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req timeclock.ClockInRequest
	if err := decodeBody(r, &req); err != nil {
		slog.Error("Failed to decode clock-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IdempotencyKey = idempotencyKey(r)

	result, err := h.timeclockService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements TimeclockHandler.
func (h *timeclockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req timeclock.ClockOutRequest
	if err := decodeBody(r, &req); err != nil {
		slog.Error("Failed to decode clock-out request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IdempotencyKey = idempotencyKey(r)

	result, err := h.timeclockService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// StartBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req timeclock.BreakStartRequest
	if err := decodeBody(r, &req); err != nil {
		slog.Error("Failed to decode break-start request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IdempotencyKey = idempotencyKey(r)

	result, err := h.timeclockService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements TimeclockHandler.
func (h *timeclockHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	var req timeclock.BreakEndRequest
	if err := decodeBody(r, &req); err != nil {
		slog.Error("Failed to decode break-end request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IdempotencyKey = idempotencyKey(r)

	result, err := h.timeclockService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// GetToday implements TimeclockHandler.
func (h *timeclockHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeclockService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements TimeclockHandler.
func (h *timeclockHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	filter := timeclock.HistoryFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.timeclockService.GetHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklySummary implements TimeclockHandler.
func (h *timeclockHandlerImpl) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	weekStart := r.URL.Query().Get("week_start")

	result, err := h.timeclockService.GetWeeklySummary(r.Context(), weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
