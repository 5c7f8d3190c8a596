// Package authprovider is the external collaborator port for authentication.
// The core never stores credentials; it receives a Principal resolved by
// this client from a bearer token and trusts it for the rest of the request.
package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/riskibarqy/hoopscheduler/internal/domain/tenant"
	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

// Client introspects bearer tokens against an external identity provider and
// resolves them to a tenant.Principal, caching successful lookups.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	cache         *principalCache
}

func NewClient(httpClient *http.Client, baseURL, introspectPath string, cache *principalCache) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		cache:         cache,
	}
}

// VerifyAccessToken resolves a bearer token to an authenticated principal.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (tenant.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return tenant.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if c.cache != nil {
		if principal, ok := c.cache.Get(token); ok {
			return principal, nil
		}
	}

	payload := introspectRequest{Token: token}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return tenant.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return tenant.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tenant.Principal{}, fmt.Errorf("%w: request introspection: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return tenant.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return tenant.Principal{}, fmt.Errorf("read introspect response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Default().WarnContext(ctx, "authprovider: introspection non-200", "status_code", resp.StatusCode)
		return tenant.Principal{}, fmt.Errorf("%w: introspection failed with status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return tenant.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return tenant.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.TenantID) == "" || strings.TrimSpace(decoded.UserID) == "" {
		return tenant.Principal{}, fmt.Errorf("invalid introspect response: tenant_id/user_id empty")
	}

	roles := make([]tenant.Role, 0, len(decoded.Roles))
	for _, r := range decoded.Roles {
		roles = append(roles, tenant.Role(strings.ToUpper(strings.TrimSpace(r))))
	}

	principal := tenant.Principal{
		TenantID:     decoded.TenantID,
		UserID:       decoded.UserID,
		Roles:        roles,
		FeatureFlags: decoded.FeatureFlags,
	}

	if c.cache != nil {
		c.cache.Set(token, principal)
	}
	return principal, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active       bool            `json:"active"`
	TenantID     string          `json:"tenant_id"`
	UserID       string          `json:"user_id"`
	Roles        []string        `json:"roles"`
	FeatureFlags map[string]bool `json:"feature_flags"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
