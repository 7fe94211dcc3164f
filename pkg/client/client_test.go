package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomledger/internal/bootstrap"
	"roomledger/internal/storage/memory"
	"roomledger/pkg/app"
	"roomledger/pkg/client"
	"roomledger/pkg/config"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guestID = "64b7f0c2a1b2c3d4e5f6a7b8"

func newServer(t *testing.T) string {
	t.Helper()

	cfg := config.Default(logger.Discard())
	repos, err := bootstrap.NewRepositories(cfg, memory.NewStore())
	require.NoError(t, err)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(bootstrap.NewServices(cfg, repos, nil).Handlers(cfg)...)
	t.Cleanup(serverApp.Close)

	srv := httptest.NewServer(serverApp.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, status, apiErr.StatusCode)
	assert.Equal(t, code, apiErr.Code)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	baseURL := newServer(t)
	ctx := context.Background()
	hotels := client.NewHotelClient(baseURL)
	bookings := client.NewBookingClient(baseURL)

	require.NoError(t, client.NewHttpClient(baseURL).WaitForHealthy(ctx, 2*time.Second))

	resp, err := hotels.CreateHotel(ctx, &model.Hotel{Name: "Lakeside Inn", Location: "Lake Geneva"})
	require.NoError(t, err)
	hotel, err := hotels.DecodeHotel(resp)
	require.NoError(t, err)

	resp, err = hotels.CreateRoomType(ctx, &model.RoomType{HotelID: hotel.ID, Name: "Lake view", Price: 210, TotalRooms: 1})
	require.NoError(t, err)
	roomType, err := hotels.DecodeRoomType(resp)
	require.NoError(t, err)

	checkIn := time.Now().UTC().AddDate(0, 0, 20).Format(time.DateOnly)
	checkOut := time.Now().UTC().AddDate(0, 0, 23).Format(time.DateOnly)

	resp, err = bookings.Availability(ctx, hotel.ID, checkIn, checkOut)
	require.NoError(t, err)
	available, err := bookings.DecodeAvailability(resp)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, 1, available[0].AvailableCount)

	body := client.CreateBookingBody{
		HotelID:      hotel.ID,
		RoomTypeID:   roomType.ID,
		UserID:       guestID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}

	resp, err = bookings.Create(ctx, body, "retry-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.ToString())
	booking, err := bookings.DecodeBooking(resp)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)

	resp, err = bookings.Create(ctx, body, "retry-1")
	require.NoError(t, err)
	replayed, err := bookings.DecodeBooking(resp)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, replayed.ID, "retry with the same idempotency key must not book twice")

	resp, err = bookings.Create(ctx, body, "")
	require.NoError(t, err)
	_, err = bookings.DecodeBooking(resp)
	requireAPIError(t, err, http.StatusConflict, apperrors.CodeCapacityExceeded)

	resp, err = bookings.Availability(ctx, hotel.ID, checkIn, checkOut)
	require.NoError(t, err)
	available, err = bookings.DecodeAvailability(resp)
	require.NoError(t, err)
	assert.Empty(t, available)

	resp, err = bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	cancelled, err := bookings.DecodeBooking(resp)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	resp, err = bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	_, err = bookings.DecodeBooking(resp)
	requireAPIError(t, err, http.StatusConflict, apperrors.CodeInvalidState)

	resp, err = bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	fetched, err := bookings.DecodeBooking(resp)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, fetched.Status)

	resp, err = hotels.Confidence(ctx, hotel.ID)
	require.NoError(t, err)
	result, err := hotels.DecodeConfidence(resp)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Breakdown.TotalBookings)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0)
	assert.LessOrEqual(t, result.ConfidenceScore, 100)

	resp, err = hotels.Search(ctx, "geneva")
	require.NoError(t, err)
	results, err := hotels.DecodeSearchResults(resp)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, hotel.ID, results[0].Hotel.ID)
	assert.Len(t, results[0].RoomTypes, 1)
	assert.NotNil(t, results[0].Confidence)
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	baseURL := newServer(t)
	ctx := context.Background()
	bookings := client.NewBookingClient(baseURL)
	hotels := client.NewHotelClient(baseURL)

	resp, err := bookings.CreateRaw(ctx, []byte(`{"hotel_id":`))
	require.NoError(t, err)
	_, err = bookings.DecodeBooking(resp)
	requireAPIError(t, err, http.StatusBadRequest, apperrors.CodeInvalidInput)

	resp, err = bookings.Create(ctx, client.CreateBookingBody{UserID: guestID}, "")
	require.NoError(t, err)
	_, err = bookings.DecodeBooking(resp)
	requireAPIError(t, err, http.StatusUnprocessableEntity, apperrors.CodeValidation)

	resp, err = bookings.GetByID(ctx, "64b7f0c2a1b2c3d4e5f60000")
	require.NoError(t, err)
	_, err = bookings.DecodeBooking(resp)
	requireAPIError(t, err, http.StatusNotFound, apperrors.CodeNotFound)

	resp, err = hotels.Search(ctx, "   ")
	require.NoError(t, err)
	_, err = hotels.DecodeSearchResults(resp)
	requireAPIError(t, err, http.StatusBadRequest, apperrors.CodeInvalidInput)
}

func TestListHotelsPagination(t *testing.T) {
	baseURL := newServer(t)
	ctx := context.Background()
	hotels := client.NewHotelClient(baseURL)

	for _, name := range []string{"Alpine Lodge", "Birch House", "Cedar Court"} {
		resp, err := hotels.CreateHotel(ctx, &model.Hotel{Name: name, Location: "Zermatt"})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.ToString())
	}

	resp, err := hotels.ListHotels(ctx, 2, 1)
	require.NoError(t, err)
	page, meta, err := hotels.DecodeHotels(resp)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, int64(3), meta.TotalCount)
	assert.Equal(t, 2, meta.Limit)
	assert.Equal(t, int64(1), meta.Offset)
}
