package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultRequestTimeout = 10 * time.Second

// HttpClient is a thin JSON client for the bookings API.
type HttpClient struct {
	rest *resty.Client
}

func NewHttpClient(baseURL string) *HttpClient {
	return &HttpClient{
		rest: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultRequestTimeout).
			SetHeader("Accept", "application/json"),
	}
}

// Response keeps the raw body so callers can decode either the success
// envelope or the error envelope.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) ToString() string {
	return fmt.Sprintf("status=%d body=%s", r.StatusCode, string(r.Body))
}

type Metadata struct {
	TotalCount int64
	Limit      int
	Offset     int64
}

func (c *HttpClient) GET(ctx context.Context, path string, query url.Values) (*Response, error) {
	req := c.rest.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	return wrap(req.Get(path))
}

func (c *HttpClient) POST(ctx context.Context, path string, body any, headers map[string]string) (*Response, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(headers)
	if body != nil {
		req.SetBody(body)
	}
	return wrap(req.Post(path))
}

func (c *HttpClient) PATCH(ctx context.Context, path string, body any) (*Response, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	return wrap(req.Patch(path))
}

// POSTRaw sends rawBody untouched, for exercising malformed payloads.
func (c *HttpClient) POSTRaw(ctx context.Context, path string, rawBody []byte) (*Response, error) {
	return wrap(c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rawBody).
		Post(path))
}

func wrap(resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

func (c *HttpClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		resp, err := c.GET(ctx, "/health", nil)
		if err == nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("service did not become healthy within %v", maxWait)
		case <-ticker.C:
		}
	}
}

// APIError is the decoded error envelope of a non 2xx response.
type APIError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"error"`
	Code       string         `json:"code"`
	Details    map[string]any `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Decode unwraps the {"data": ...} envelope into T, or returns an *APIError
// for non 2xx responses.
func Decode[T any](resp *Response) (T, error) {
	var zero T
	if err := checkStatus(resp); err != nil {
		return zero, err
	}

	var wrapper struct {
		Data T `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return zero, fmt.Errorf("could not decode response:\n%s\n%w", resp.ToString(), err)
	}
	return wrapper.Data, nil
}

func DecodePage[T any](resp *Response) ([]T, *Metadata, error) {
	if err := checkStatus(resp); err != nil {
		return nil, nil, err
	}

	var wrapper struct {
		Data       []T   `json:"data"`
		TotalCount int64 `json:"total_count"`
		Limit      int   `json:"limit"`
		Offset     int64 `json:"offset"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated response:\n%s\n%w", resp.ToString(), err)
	}

	return wrapper.Data, &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}, nil
}

func checkStatus(resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := resp.DecodeJSON(apiErr); err != nil {
		apiErr.Message = string(resp.Body)
	}
	return apiErr
}
