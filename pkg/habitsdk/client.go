package habitsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the habits API. It covers the public endpoints and hands
// out Sessions for the authenticated ones.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the API served at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account. A taken username or email fails with ErrConflict.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token. Wrong passwords and unknown
// emails both fail with ErrUnauthorized.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthenticateWithPassword logs in and returns a Session for the account.
func (c *Client) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	auth, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(auth.Token, auth.User), nil
}

// NewSession wraps an existing token, e.g. one returned by Register.
func (c *Client) NewSession(token string, user User) *Session {
	return &Session{client: c, token: token, user: user}
}

// GetLiveness calls /livez.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness calls /readyz. A degraded service answers 503, which is
// returned as an error.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
