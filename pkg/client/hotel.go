package client

import (
	"context"
	"net/url"
	"roomledger/pkg/model"
	"strconv"
)

type HotelClient struct {
	httpClient *HttpClient
}

func NewHotelClient(baseURL string) *HotelClient {
	return &HotelClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *HotelClient) CreateHotel(ctx context.Context, hotel *model.Hotel) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/admin/hotels", hotel, nil)
}

func (c *HotelClient) GetHotel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/admin/hotels/id/"+url.PathEscape(id), nil)
}

func (c *HotelClient) ListHotels(ctx context.Context, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.FormatInt(offset, 10))
	return c.httpClient.GET(ctx, "/api/v1/admin/hotels", q)
}

func (c *HotelClient) CreateRoomType(ctx context.Context, roomType *model.RoomType) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/admin/room-types", roomType, nil)
}

func (c *HotelClient) ListRoomTypes(ctx context.Context, hotelID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/admin/hotels/id/"+url.PathEscape(hotelID)+"/room-types", nil)
}

func (c *HotelClient) Confidence(ctx context.Context, hotelID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/hotels/id/"+url.PathEscape(hotelID)+"/confidence", nil)
}

func (c *HotelClient) Search(ctx context.Context, location string) (*Response, error) {
	q := url.Values{}
	q.Set("location", location)
	return c.httpClient.GET(ctx, "/api/v1/search/hotels", q)
}

func (c *HotelClient) DecodeHotel(resp *Response) (*model.Hotel, error) {
	return Decode[*model.Hotel](resp)
}

func (c *HotelClient) DecodeHotels(resp *Response) ([]*model.Hotel, *Metadata, error) {
	return DecodePage[*model.Hotel](resp)
}

func (c *HotelClient) DecodeRoomType(resp *Response) (*model.RoomType, error) {
	return Decode[*model.RoomType](resp)
}

func (c *HotelClient) DecodeRoomTypes(resp *Response) ([]*model.RoomType, error) {
	return Decode[[]*model.RoomType](resp)
}

func (c *HotelClient) DecodeConfidence(resp *Response) (*model.ConfidenceResult, error) {
	return Decode[*model.ConfidenceResult](resp)
}

func (c *HotelClient) DecodeSearchResults(resp *Response) ([]*model.HotelSearchResult, error) {
	return Decode[[]*model.HotelSearchResult](resp)
}
