package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingService struct {
	createFunc func(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	cancelFunc func(ctx context.Context, id string) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.Booking{}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return &model.Booking{ID: id, Status: model.BookingStatusCancelled}, nil
}

func (m *mockBookingService) Complete(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) ExpireOld(ctx context.Context) (int64, error) {
	return 0, nil
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate_AcceptsCalendarDates(t *testing.T) {
	var received *model.CreateBookingRequest
	svc := &mockBookingService{
		createFunc: func(_ context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
			received = req
			return &model.Booking{ID: "b1", Status: model.BookingStatusConfirmed}, nil
		},
	}

	body := `{"hotel_id":"h","room_type_id":"r","user_id":"u","check_in_date":"2026-03-01","check_out_date":"2026-03-03T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, received)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *received.CheckInDate)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), *received.CheckOutDate)
}

func TestCreate_MissingDatesReachValidation(t *testing.T) {
	var received *model.CreateBookingRequest
	svc := &mockBookingService{
		createFunc: func(_ context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
			received = req
			return nil, apperrors.Validation("Booking validation failed", nil)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"hotel_id":"h"}`))
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, received)
	assert.Nil(t, received.CheckInDate)
	assert.Nil(t, received.CheckOutDate)
}

func TestCreate_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"hotel_id":`},
		{name: "unparseable date", body: `{"check_in_date":"next tuesday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			newRouter(&mockBookingService{}).ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, apperrors.CodeInvalidInput, resp["code"])
		})
	}
}

func TestCreate_ConflictStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "capacity exceeded", err: apperrors.CapacityExceeded("No rooms available for the selected dates")},
		{name: "concurrency conflict", err: apperrors.ConcurrencyConflict("busy")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(context.Context, *model.CreateBookingRequest) (*model.Booking, error) {
					return nil, tt.err
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusConflict, w.Code)
		})
	}
}

func TestCancel_Routes(t *testing.T) {
	svc := &mockBookingService{
		cancelFunc: func(_ context.Context, id string) (*model.Booking, error) {
			if id == "done" {
				return nil, apperrors.InvalidState("Only CONFIRMED bookings can be cancelled, booking is CANCELLED")
			}
			return &model.Booking{ID: id, Status: model.BookingStatusCancelled}, nil
		},
	}
	router := newRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/abc/cancel", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"CANCELLED"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/done/cancel", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/id/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
