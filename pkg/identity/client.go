package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-talentmatch-backend/internal/domain"
)

// Client fetches candidate identity profiles from the auth service. Used only
// to backfill placeholder name/email; callers treat failure as "unavailable"
// and fall back to token claims.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch forwards the caller's own bearer token verbatim to GET /auth/profile.
func (c *Client) Fetch(ctx context.Context, bearerToken string) (*domain.IdentityProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity: profile fetch returned status %d", resp.StatusCode)
	}

	var profile domain.IdentityProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("identity: decode profile: %w", err)
	}
	return &profile, nil
}
