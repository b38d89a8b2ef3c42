package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ProjectClient looks up project existence and ownership in the project
// service, which is the source of truth for projects.
type ProjectClient interface {
	// CheckByProjectCode asks whether a project exists
	CheckByProjectCode(ctx context.Context, accessToken, projectCode string) (*CheckResponse, error)

	// ManagerByProjectCode resolves the username of the project's manager
	ManagerByProjectCode(ctx context.Context, accessToken, projectCode string) (*ManagerResponse, error)
}

// HTTPProjectClient is an HTTP implementation of ProjectClient
type HTTPProjectClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProjectClient creates a new ProjectClient against the given base URL
func NewProjectClient(baseURL string) ProjectClient {
	return &HTTPProjectClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPProjectClient) CheckByProjectCode(ctx context.Context, accessToken, projectCode string) (*CheckResponse, error) {
	url := fmt.Sprintf("%s/api/v1/project/check/%s", c.baseURL, projectCode)

	var response CheckResponse
	if err := getJSON(ctx, c.httpClient, url, accessToken, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *HTTPProjectClient) ManagerByProjectCode(ctx context.Context, accessToken, projectCode string) (*ManagerResponse, error) {
	url := fmt.Sprintf("%s/api/v1/project/read/manager/%s", c.baseURL, projectCode)

	var response ManagerResponse
	if err := getJSON(ctx, c.httpClient, url, accessToken, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// getJSON performs an authorized GET and decodes the response envelope.
// Non-2xx statuses and undecodable bodies surface as errors so callers can
// treat them as transport-level failures.
func getJSON(ctx context.Context, httpClient *http.Client, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
