package client

import (
	"context"
	"fmt"
	"househunt/pkg/model"
	"net/http"
	"net/url"
)

type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(httpClient *HttpClient) *UserClient {
	return &UserClient{httpClient: httpClient}
}

func (c *UserClient) Register(ctx context.Context, req model.RegisterRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/users", req)
}

func (c *UserClient) Login(ctx context.Context, email, password string) (*Response, error) {
	return c.httpClient.POST(ctx, "/users/login", model.LoginRequest{Email: email, Password: password})
}

func (c *UserClient) Get(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, "/users?email="+url.QueryEscape(email))
}

func (c *UserClient) Logout(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, "/users/logout/"+url.PathEscape(email))
}

func (c *UserClient) IssueToken(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.POST(ctx, "/jwt", model.TokenRequest{Email: email})
}

// Token is IssueToken for callers that only need the token string.
func (c *UserClient) Token(ctx context.Context, email string) (string, error) {
	resp, err := c.IssueToken(ctx, email)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed: %s", resp)
	}

	var token model.TokenResponse
	if err := resp.DecodeJSON(&token); err != nil {
		return "", fmt.Errorf("could not decode token response: %w", err)
	}
	return token.Token, nil
}
