package lecternsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Me returns the caller's profile.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the caller's display name.
func (s *Session) UpdateProfile(ctx context.Context, fullName string) (*UserResponse, error) {
	var out UserResponse
	err := s.do(ctx, http.MethodPatch, "/v1/users/me", UpdateProfileRequest{FullName: fullName}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AvatarUploadURL reserves an avatar key and returns a presigned PUT URL.
func (s *Session) AvatarUploadURL(ctx context.Context) (*AvatarUploadResponse, error) {
	var out AvatarUploadResponse
	if err := s.do(ctx, http.MethodPost, "/v1/users/me/avatar", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAvatar confirms an uploaded avatar.
func (s *Session) SetAvatar(ctx context.Context, key string) (*UserResponse, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodPut, "/v1/users/me/avatar", SetAvatarRequest{Key: key}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount deactivates the caller's own account.
func (s *Session) DeleteAccount(ctx context.Context) error {
	return s.do(ctx, http.MethodDelete, "/v1/users/me", nil, nil, http.StatusNoContent)
}

// ============================================================================
// Administration
// ============================================================================

// ListUsers pages through all users. Requires the admin role.
func (s *Session) ListUsers(ctx context.Context, limit, offset int) ([]UserResponse, error) {
	var out []UserResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users"+pageQuery(limit, offset), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// SetRole changes another user's role. Requires the admin role.
func (s *Session) SetRole(ctx context.Context, userID, role string) (*UserResponse, error) {
	var out UserResponse
	err := s.do(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(userID)+"/role", SetRoleRequest{Role: role}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateUser disables another account. Requires the admin role.
func (s *Session) DeactivateUser(ctx context.Context, userID string) error {
	return s.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(userID), nil, nil, http.StatusNoContent)
}

func pageQuery(limit, offset int) string {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
