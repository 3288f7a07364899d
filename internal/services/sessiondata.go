package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultSessionDataURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"

// SessionDataClient exchanges an upstream session id for the identity and
// bearer token of the user who completed the OAuth flow. The provider is the
// only party that can mint session tokens; this service just stores them.
type SessionDataClient struct {
	baseURL string
	client  *http.Client
}

// SessionData is the provider's response payload.
type SessionData struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Picture      *string `json:"picture"`
	SessionToken string  `json:"session_token"`
}

func NewSessionDataClient() *SessionDataClient {
	baseURL := os.Getenv("SESSION_DATA_URL")
	if baseURL == "" {
		baseURL = defaultSessionDataURL
	}

	return &SessionDataClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Exchange resolves the session id with the provider. A non-200 response
// means the id is unknown or already consumed.
func (c *SessionDataClient) Exchange(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session data request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("session data provider returned %d: %s", resp.StatusCode, string(body))
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode session data: %w", err)
	}
	if data.Email == "" || data.SessionToken == "" {
		return nil, fmt.Errorf("session data provider returned incomplete payload")
	}
	return &data, nil
}
