package lecternsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshMargin renews access tokens slightly before they expire.
const refreshMargin = 30 * time.Second

var ErrNoRefreshToken = errors.New("lectern: access token expired and no refresh token available")

// Session is an authenticated client. Its methods refresh the access token
// when it is about to expire; the server rotates the refresh token each time.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *Client, tok *TokenResponse) *Session {
	s := &Session{client: client}
	s.store(tok)
	return s
}

// store must be called with mu held or before the session is shared.
func (s *Session) store(tok *TokenResponse) {
	s.accessToken = tok.AccessToken
	s.refreshToken = tok.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshMargin)
}

// getValidToken returns a usable access token, refreshing it if needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	tok, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	s.store(tok)
	return s.accessToken, nil
}

// do is Client.do with the session's bearer token.
func (s *Session) do(ctx context.Context, method, path string, body, out any, want int) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	return s.client.do(ctx, method, path, token, body, out, want)
}

// AccessToken returns the current access token without checking expiry.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Logout revokes the refresh token. The access token stays valid until it
// expires.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.refreshToken = ""
	s.mu.Unlock()

	if refreshToken == "" {
		return ErrNoRefreshToken
	}
	return s.client.Logout(ctx, refreshToken)
}

// ChangePassword replaces the password. Every other session of the account
// is ended; this one continues with the pair the server hands back.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	var tok TokenResponse
	err := s.do(ctx, http.MethodPost, "/v1/auth/password/change",
		ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, &tok, http.StatusOK)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.store(&tok)
	s.mu.Unlock()
	return nil
}
