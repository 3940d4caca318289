package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const httpCallTimeout = 10 * time.Second

// Metadata describes the tenant hosting a room.
type Metadata struct {
	// TenantID identifies the tenant (customer) hosting the room.
	TenantID string `json:"tenant_id"`

	// Hosted reports whether the room is a managed/hosted tenant room.
	// Non-hosted rooms never need token provisioning.
	Hosted bool `json:"hosted"`

	// TokenEndpoint is where tenant tokens are issued.
	TokenEndpoint string `json:"token_endpoint"`
}

// Provisioner resolves tenant metadata and issues tenant tokens.
// Implemented by Client; tests use fakes.
type Provisioner interface {
	FetchMetadata(ctx context.Context, room string) (*Metadata, error)
	IssueToken(ctx context.Context, room string, meta *Metadata) (string, error)
}

// Client is the production Provisioner backed by the tenant HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a tenant API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: httpCallTimeout},
	}
}

// FetchMetadata looks up the tenant metadata for a room.
func (c *Client) FetchMetadata(ctx context.Context, room string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/v1/rooms/%s/tenant", c.baseURL, url.PathEscape(room))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create metadata request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tenant metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tenant API returned status %d", resp.StatusCode)
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode tenant metadata: %w", err)
	}
	return &meta, nil
}

// tokenResponse is the token endpoint's reply.
type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken requests a tenant-issued JWT for the room. The token is an
// opaque string to this driver; it is forwarded verbatim in the connect
// request.
func (c *Client) IssueToken(ctx context.Context, room string, meta *Metadata) (string, error) {
	endpoint := meta.TokenEndpoint
	if endpoint == "" {
		endpoint = c.baseURL + "/v1/token"
	}

	data := url.Values{}
	data.Set("room", room)
	data.Set("tenant_id", meta.TenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.URL.RawQuery = data.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("issue tenant token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.Token == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}
	return tr.Token, nil
}

// Compile-time interface satisfaction check.
var _ Provisioner = (*Client)(nil)
