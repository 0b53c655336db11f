package client

import (
	"context"
	"househunt/pkg/model"
	"net/url"
	"strconv"
)

type HouseClient struct {
	httpClient *HttpClient
}

func NewHouseClient(httpClient *HttpClient) *HouseClient {
	return &HouseClient{httpClient: httpClient}
}

func (c *HouseClient) Create(ctx context.Context, req model.CreateHouseRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/houses", req)
}

func (c *HouseClient) CreateRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/houses", rawBody)
}

func (c *HouseClient) All(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/allHouses")
}

// Search passes query through unchanged, so callers can send malformed values.
func (c *HouseClient) Search(ctx context.Context, query url.Values) (*Response, error) {
	path := "/houses"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.httpClient.GET(ctx, path)
}

func (c *HouseClient) ByOwner(ctx context.Context, token, email string) (*Response, error) {
	return c.httpClient.WithToken(token).GET(ctx, "/houses/"+url.PathEscape(email))
}

func (c *HouseClient) ForEdit(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/houses/edit/"+url.PathEscape(id))
}

func (c *HouseClient) Update(ctx context.Context, id string, update model.HouseUpdate) (*Response, error) {
	return c.httpClient.PUT(ctx, "/houses/"+url.PathEscape(id), update)
}

func (c *HouseClient) Delete(ctx context.Context, token, id string) (*Response, error) {
	return c.httpClient.WithToken(token).DELETE(ctx, "/houses/"+url.PathEscape(id))
}

// TotalCount reads X-Total-Count from a search response, or -1 when absent.
func TotalCount(resp *Response) int64 {
	n, err := strconv.ParseInt(resp.Header.Get("X-Total-Count"), 10, 64)
	if err != nil {
		return -1
	}
	return n
}
