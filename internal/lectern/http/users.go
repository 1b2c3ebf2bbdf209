package http

import (
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// UsersHandler serves the caller's own account and the admin user endpoints.
type UsersHandler struct {
	Users *service.UserService
}

// render presigns the avatar download. A storage failure only drops the URL.
func (h *UsersHandler) render(r *http.Request, u domain.User) lecternsdk.UserResponse {
	url, err := h.Users.AvatarURL(r.Context(), u)
	if err != nil {
		slogx.FromContext(r.Context()).Warn("avatar presign failed", slogx.Err(err))
	}
	return toUserResponse(u, url)
}

// HandleMe handles GET /v1/users/me
//
//	@Summary		Current user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	lecternsdk.UserResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Get(r.Context(), actor(r).UserID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(r, u))
}

// HandleUpdateProfile handles PATCH /v1/users/me
//
//	@Summary		Update profile
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		lecternsdk.UpdateProfileRequest	true	"Profile"
//	@Success		200		{object}	lecternsdk.UserResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/v1/users/me [patch].
func (h *UsersHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	u, err := h.Users.UpdateProfile(r.Context(), actor(r).UserID, req.FullName)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(r, u))
}

// HandleAvatarUpload handles POST /v1/users/me/avatar
//
//	@Summary		Start an avatar upload
//	@Description	Returns a presigned URL to PUT the image to. Confirm the key afterwards with PUT /v1/users/me/avatar.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	lecternsdk.AvatarUploadResponse
//	@Failure		503	{object}	httpx.ErrorResponse	"object storage not configured"
//	@Router			/v1/users/me/avatar [post].
func (h *UsersHandler) HandleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	up, err := h.Users.AvatarUploadURL(r.Context(), actor(r).UserID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lecternsdk.AvatarUploadResponse{
		Key:       up.Key,
		UploadURL: up.URL,
		ExpiresAt: up.ExpiresAt,
	})
}

// HandleSetAvatar handles PUT /v1/users/me/avatar
//
//	@Summary		Confirm an avatar upload
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		lecternsdk.SetAvatarRequest	true	"Uploaded key"
//	@Success		200		{object}	lecternsdk.UserResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"key not issued to this user"
//	@Failure		503		{object}	httpx.ErrorResponse	"object storage not configured"
//	@Router			/v1/users/me/avatar [put].
func (h *UsersHandler) HandleSetAvatar(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.SetAvatarRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	u, err := h.Users.SetAvatar(r.Context(), actor(r).UserID, req.Key)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(r, u))
}

// HandleDeleteMe handles DELETE /v1/users/me
//
//	@Summary		Deactivate own account
//	@Tags			Users
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/v1/users/me [delete].
func (h *UsersHandler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Deactivate(r.Context(), actor(r).UserID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /v1/users
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Page size (default 50, max 200)"
//	@Param			offset	query		int	false	"Rows to skip"
//	@Success		200		{array}		lecternsdk.UserResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	users, err := h.Users.List(r.Context(), page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(users, func(u domain.User) lecternsdk.UserResponse {
		return h.render(r, u)
	}))
}

// HandleSetRole handles PUT /v1/users/{id}/role
//
//	@Summary		Change a user's role
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		lecternsdk.SetRoleRequest	true	"New role"
//	@Success		200		{object}	lecternsdk.UserResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		422		{object}	httpx.ErrorResponse	"own role"
//	@Router			/v1/users/{id}/role [put].
func (h *UsersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.SetRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	u, err := h.Users.SetRole(r.Context(), actor(r), id, domain.Role(req.Role))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(r, u))
}

// HandleDeactivate handles DELETE /v1/users/{id}
//
//	@Summary		Deactivate a user
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.Users.Deactivate(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
