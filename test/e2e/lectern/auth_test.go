package lectern_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

// TestRegisterVerifyLoginRefresh walks a new account from registration to a
// rotated token pair and back out.
func TestRegisterVerifyLoginRefresh(t *testing.T) {
	s := setupStack(t, stackOptions{relaxedLimits: true})
	ctx := t.Context()

	const email, password = "ada@example.com", "Analytic1"

	_, err := s.Client.Register(ctx, lecternsdk.RegisterRequest{Email: email, Password: password, FullName: "Ada Lovelace"})
	require.NoError(t, err)

	_, err = s.Client.Login(ctx, email, password)
	assertKind(t, err, lecternsdk.KindUnauthorized, http.StatusUnauthorized)

	// Registering again is a conflict; resend replaces the first code.
	_, err = s.Client.Register(ctx, lecternsdk.RegisterRequest{Email: email, Password: password, FullName: "Ada"})
	assertKind(t, err, lecternsdk.KindConflict, http.StatusConflict)

	stale := s.Mail.Code(t, email, "verify_email")
	require.NoError(t, s.Client.ResendVerification(ctx, email))
	fresh := s.Mail.Code(t, email, "verify_email")
	if stale != fresh {
		assertKind(t, s.Client.VerifyEmail(ctx, email, stale), lecternsdk.KindUnprocessable, http.StatusUnprocessableEntity)
	}
	require.NoError(t, s.Client.VerifyEmail(ctx, email, fresh))

	session, err := s.Client.Login(ctx, email, password)
	require.NoError(t, err)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, email, me.Email)
	require.Equal(t, "student", me.Role)
	require.True(t, me.Active)

	oldRefresh := session.RefreshToken()
	pair, err := s.Client.Refresh(ctx, oldRefresh)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.NotEqual(t, oldRefresh, pair.RefreshToken, "refresh token should rotate")

	_, err = s.Client.Refresh(ctx, oldRefresh)
	assertKind(t, err, lecternsdk.KindUnauthorized, http.StatusUnauthorized)

	require.NoError(t, s.Client.Logout(ctx, pair.RefreshToken))
	_, err = s.Client.Refresh(ctx, pair.RefreshToken)
	assertKind(t, err, lecternsdk.KindUnauthorized, http.StatusUnauthorized)
}

// TestPasswordResetAndChange covers both ways of replacing a password.
func TestPasswordResetAndChange(t *testing.T) {
	s := setupStack(t, stackOptions{relaxedLimits: true})
	ctx := t.Context()

	const email = "grace@example.com"
	_, session := registerAndVerify(t, s, email, "Compiler1", "Grace Hopper")

	// Unknown addresses get the same answer and no mail.
	require.NoError(t, s.Client.ForgotPassword(ctx, "nobody@example.com"))

	require.NoError(t, s.Client.ForgotPassword(ctx, email))
	code := s.Mail.Code(t, email, "password_reset")

	err := s.Client.ResetPassword(ctx, lecternsdk.ResetPasswordRequest{Email: email, Code: code, NewPassword: "short"})
	assertKind(t, err, lecternsdk.KindValidation, http.StatusBadRequest)

	require.NoError(t, s.Client.ResetPassword(ctx, lecternsdk.ResetPasswordRequest{Email: email, Code: code, NewPassword: "Cobol1959"}))

	// The reset ended every session.
	_, err = s.Client.Refresh(ctx, session.RefreshToken())
	assertKind(t, err, lecternsdk.KindUnauthorized, http.StatusUnauthorized)

	_, err = s.Client.Login(ctx, email, "Compiler1")
	assertKind(t, err, lecternsdk.KindUnauthorized, http.StatusUnauthorized)

	session, err = s.Client.Login(ctx, email, "Cobol1959")
	require.NoError(t, err)

	err = session.ChangePassword(ctx, "wrong-one1", "Nanosecond1")
	assertKind(t, err, lecternsdk.KindUnprocessable, http.StatusUnprocessableEntity)

	require.NoError(t, session.ChangePassword(ctx, "Cobol1959", "Nanosecond1"))
	_, err = session.Me(ctx)
	require.NoError(t, err, "the changing session continues with its new pair")

	_, err = s.Client.Login(ctx, email, "Nanosecond1")
	require.NoError(t, err)
}
