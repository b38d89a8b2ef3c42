package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// KeycloakDirectory answers role-membership questions through the Keycloak
// admin REST API, authenticating with the service account of this client.
type KeycloakDirectory struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	adminToken  string
	tokenExpiry time.Time
}

// NewKeycloakDirectory creates a RoleDirectory backed by Keycloak.
func NewKeycloakDirectory(baseURL, realm, clientID, clientSecret string) *KeycloakDirectory {
	return &KeycloakDirectory{
		baseURL:      strings.TrimRight(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// UserHasRole reports whether the named user holds the named realm role.
func (d *KeycloakDirectory) UserHasRole(ctx context.Context, username, role string) (bool, error) {
	token, err := d.serviceAccountToken(ctx)
	if err != nil {
		return false, err
	}

	userID, err := d.lookupUserID(ctx, token, username)
	if err != nil {
		return false, err
	}
	if userID == "" {
		return false, nil
	}

	roles, err := d.realmRoles(ctx, token, userID)
	if err != nil {
		return false, err
	}

	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// serviceAccountToken returns a cached client-credentials token, refreshing
// it shortly before expiry.
func (d *KeycloakDirectory) serviceAccountToken(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.adminToken != "" && time.Now().Before(d.tokenExpiry) {
		return d.adminToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", d.clientID)
	form.Set("client_secret", d.clientSecret)

	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", d.baseURL, d.realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	d.adminToken = body.AccessToken
	// Refresh a little early so in-flight requests never carry a stale token.
	d.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-10) * time.Second)
	return d.adminToken, nil
}

func (d *KeycloakDirectory) lookupUserID(ctx context.Context, token, username string) (string, error) {
	lookupURL := fmt.Sprintf("%s/admin/realms/%s/users?username=%s&exact=true",
		d.baseURL, d.realm, url.QueryEscape(username))

	var users []struct {
		ID string `json:"id"`
	}
	if err := d.getJSON(ctx, token, lookupURL, &users); err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].ID, nil
}

func (d *KeycloakDirectory) realmRoles(ctx context.Context, token, userID string) ([]string, error) {
	rolesURL := fmt.Sprintf("%s/admin/realms/%s/users/%s/role-mappings/realm", d.baseURL, d.realm, userID)

	var mappings []struct {
		Name string `json:"name"`
	}
	if err := d.getJSON(ctx, token, rolesURL, &mappings); err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(mappings))
	for _, m := range mappings {
		roles = append(roles, m.Name)
	}
	return roles, nil
}

func (d *KeycloakDirectory) getJSON(ctx context.Context, token, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
