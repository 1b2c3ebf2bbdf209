package domain

import "time"

// CodePurpose scopes a one-time code to the flow that issued it.
type CodePurpose string

const (
	PurposeVerification  CodePurpose = "verification"
	PurposePasswordReset CodePurpose = "password_reset"
)

// MaxCodeAttempts is how many wrong guesses a code survives.
const MaxCodeAttempts = 5

// OneTimeCode is a short numeric code e-mailed to prove control of an
// address. It is valid while now < ExpiresAt and Attempts < MaxCodeAttempts,
// and is deleted on use.
type OneTimeCode struct {
	ID        string
	Email     string
	Code      string
	Purpose   CodePurpose
	CreatedAt time.Time
	ExpiresAt time.Time
	Attempts  int
}

// RefreshToken is the stored side of an opaque refresh token. Only the
// fingerprint is kept.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // base64url SHA-256
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair is what login and refresh hand back to clients.
type TokenPair struct {
	AccessToken      string        `json:"access_token"`
	RefreshToken     string        `json:"refresh_token"`
	TokenType        string        `json:"token_type"`
	ExpiresIn        time.Duration `json:"-"`
	RefreshExpiresAt time.Time     `json:"-"`
}
