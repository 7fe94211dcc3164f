package client

import (
	"context"
	"net/url"
	"roomledger/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// CreateBookingBody mirrors the JSON accepted by POST /api/v1/bookings.
// Dates are RFC3339 timestamps or YYYY-MM-DD calendar days.
type CreateBookingBody struct {
	HotelID      string `json:"hotel_id"`
	RoomTypeID   string `json:"room_type_id"`
	UserID       string `json:"user_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// Create sends the booking. A non-empty idempotencyKey makes retries replay
// the first successful response.
func (c *BookingClient) Create(ctx context.Context, body CreateBookingBody, idempotencyKey string) (*Response, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	return c.httpClient.POST(ctx, "/api/v1/bookings", body, headers)
}

func (c *BookingClient) CreateRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/api/v1/bookings", rawBody)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id), nil)
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
}

func (c *BookingClient) Availability(ctx context.Context, hotelID, checkIn, checkOut string) (*Response, error) {
	q := url.Values{}
	q.Set("hotel_id", hotelID)
	q.Set("check_in", checkIn)
	q.Set("check_out", checkOut)
	return c.httpClient.GET(ctx, "/api/v1/availability", q)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	return Decode[*model.Booking](resp)
}

func (c *BookingClient) DecodeAvailability(resp *Response) ([]*model.RoomAvailability, error) {
	return Decode[[]*model.RoomAvailability](resp)
}
