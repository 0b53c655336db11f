package client

import (
	"context"
	"househunt/pkg/model"
	"net/url"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(httpClient *HttpClient) *BookingClient {
	return &BookingClient{httpClient: httpClient}
}

func (c *BookingClient) Create(ctx context.Context, req model.CreateBookingRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/bookings", req)
}

func (c *BookingClient) CreateWithIdempotencyKey(ctx context.Context, req model.CreateBookingRequest, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/bookings", req, map[string]string{"Idempotency-Key": key})
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/bookings/"+url.PathEscape(id))
}

func (c *BookingClient) ByOwner(ctx context.Context, token, email string) (*Response, error) {
	return c.httpClient.WithToken(token).GET(ctx, "/bookings/"+url.PathEscape(email))
}

func (c *BookingClient) ByRenter(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, "/bookings/renter/"+url.PathEscape(email))
}

func (c *BookingClient) CountByRenter(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, "/bookings/renter-number/"+url.PathEscape(email))
}
