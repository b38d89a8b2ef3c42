package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// UserClient looks up user existence in the user service, which is the
// source of truth for accounts.
type UserClient interface {
	// CheckByUsername asks whether a user exists
	CheckByUsername(ctx context.Context, accessToken, username string) (*CheckResponse, error)
}

// HTTPUserClient is an HTTP implementation of UserClient
type HTTPUserClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUserClient creates a new UserClient against the given base URL
func NewUserClient(baseURL string) UserClient {
	return &HTTPUserClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPUserClient) CheckByUsername(ctx context.Context, accessToken, username string) (*CheckResponse, error) {
	url := fmt.Sprintf("%s/api/v1/user/check/%s", c.baseURL, username)

	var response CheckResponse
	if err := getJSON(ctx, c.httpClient, url, accessToken, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
