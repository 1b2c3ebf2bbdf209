package lecternsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Lectern server. It covers the public endpoints and opens
// Sessions for everything else.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Lang is sent as Accept-Language when set, e.g. "es".
	Lang string
}

// NewClient creates a client with a 10 second timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an inactive student account and triggers the
// verification mail.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail activates the account with the mailed code.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/verify-email", "",
		VerifyEmailRequest{Email: email, Code: code}, nil, http.StatusOK)
}

// ResendVerification asks for a new verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/resend-verification", "",
		EmailRequest{Email: email}, nil, http.StatusAccepted)
}

// Login authenticates with e-mail and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "",
		LoginRequest{Email: email, Password: password}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, &out), nil
}

// Refresh exchanges a refresh token for a new pair. The presented token
// stops working.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", "",
		RefreshRequest{RefreshToken: refreshToken}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", "",
		RefreshRequest{RefreshToken: refreshToken}, nil, http.StatusOK)
}

// ForgotPassword requests a reset code. The answer is the same whether or
// not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/password/forgot", "",
		EmailRequest{Email: email}, nil, http.StatusAccepted)
}

// ResetPassword sets a new password with the mailed code.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/password/reset", "", req, nil, http.StatusOK)
}

// NewSessionFromTokens resumes a session from stored tokens.
func (c *Client) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})
}
