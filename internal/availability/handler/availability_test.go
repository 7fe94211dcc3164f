package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomledger/pkg/daterange"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type mockCalculator struct {
	checkFunc func(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]*model.RoomAvailability, error)
}

func (m *mockCalculator) CountActiveOverlaps(context.Context, string, daterange.Range) (int64, error) {
	return 0, nil
}

func (m *mockCalculator) Compute(context.Context, *model.RoomType, daterange.Range) (int, error) {
	return 0, nil
}

func (m *mockCalculator) CheckAvailability(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]*model.RoomAvailability, error) {
	return m.checkFunc(ctx, hotelID, checkIn, checkOut)
}

func TestCheck(t *testing.T) {
	var gotHotel string
	var gotIn, gotOut time.Time
	calc := &mockCalculator{
		checkFunc: func(_ context.Context, hotelID string, checkIn, checkOut time.Time) ([]*model.RoomAvailability, error) {
			gotHotel, gotIn, gotOut = hotelID, checkIn, checkOut
			return []*model.RoomAvailability{{RoomType: &model.RoomType{ID: "rt"}, AvailableCount: 2}}, nil
		},
	}
	router := httprouter.New()
	NewAvailabilityHandler(calc, logger.Discard()).RegisterRoutes(router)

	tests := []struct {
		name       string
		query      string
		expectCode int
	}{
		{name: "ok", query: "?hotel_id=h1&check_in=2026-04-01&check_out=2026-04-03", expectCode: http.StatusOK},
		{name: "missing hotel", query: "?check_in=2026-04-01&check_out=2026-04-03", expectCode: http.StatusBadRequest},
		{name: "missing check_out", query: "?hotel_id=h1&check_in=2026-04-01", expectCode: http.StatusBadRequest},
		{name: "bad date", query: "?hotel_id=h1&check_in=01/04/2026&check_out=2026-04-03", expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/availability"+tt.query, nil))
			assert.Equal(t, tt.expectCode, w.Code)
		})
	}

	assert.Equal(t, "h1", gotHotel)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), gotIn)
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), gotOut)
}
