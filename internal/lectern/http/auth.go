package http

import (
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

// AuthHandler serves registration, login and password management.
type AuthHandler struct {
	Auth *service.AuthService
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register
//	@Description	Creates an inactive student account and e-mails a six digit verification code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	lecternsdk.UserResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"invalid fields"
//	@Failure		409		{object}	httpx.ErrorResponse	"e-mail already registered"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	u, err := h.Auth.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u, ""))
}

// HandleVerifyEmail handles POST /v1/auth/verify-email
//
//	@Summary		Verify e-mail
//	@Description	Activates the account with the code from the verification e-mail.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.VerifyEmailRequest	true	"E-mail and code"
//	@Success		200		{object}	httpx.MessageResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		422		{object}	httpx.ErrorResponse	"invalid or expired code"
//	@Router			/v1/auth/verify-email [post].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.VerifyEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.Auth.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusOK, "auth.email_verified")
}

// HandleResendVerification handles POST /v1/auth/resend-verification
//
//	@Summary		Resend verification code
//	@Description	Replaces the verification code. The answer does not reveal whether the address is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.EmailRequest	true	"E-mail"
//	@Success		202		{object}	httpx.MessageResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/resend-verification [post].
func (h *AuthHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.EmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.Auth.ResendVerification(r.Context(), req.Email); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusAccepted, "auth.verification_sent")
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Login
//	@Description	Exchanges e-mail and password for an access token and a refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	lecternsdk.TokenResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	pair, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh handles POST /v1/auth/refresh
//
//	@Summary		Refresh tokens
//	@Description	Rotates a refresh token. The presented token stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	lecternsdk.TokenResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"invalid or expired refresh token"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Logout
//	@Description	Revokes the refresh token. Unknown tokens are accepted.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	httpx.MessageResponse
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.Auth.Logout(r.Context(), req.RefreshToken); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusOK, "auth.logged_out")
}

// HandleForgotPassword handles POST /v1/auth/password/forgot
//
//	@Summary		Request a password reset
//	@Description	E-mails a reset code. The answer does not reveal whether the address is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.EmailRequest	true	"E-mail"
//	@Success		202		{object}	httpx.MessageResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/password/forgot [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.EmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.Auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusAccepted, "auth.reset_requested")
}

// HandleResetPassword handles POST /v1/auth/password/reset
//
//	@Summary		Reset password
//	@Description	Sets a new password with the mailed reset code and ends every session of the account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lecternsdk.ResetPasswordRequest	true	"E-mail, code and new password"
//	@Success		200		{object}	httpx.MessageResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		422		{object}	httpx.ErrorResponse	"invalid or expired code"
//	@Router			/v1/auth/password/reset [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusOK, "auth.password_reset")
}

// HandleChangePassword handles POST /v1/auth/password/change
//
//	@Summary		Change password
//	@Description	Changes the password of the caller. Other sessions are ended and a fresh token pair is returned.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		lecternsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	lecternsdk.TokenResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		422		{object}	httpx.ErrorResponse	"current password does not match"
//	@Router			/v1/auth/password/change [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	pair, err := h.Auth.ChangePassword(r.Context(), actor(r).UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}
