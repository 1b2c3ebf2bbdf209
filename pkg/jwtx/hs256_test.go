package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "lectern-test"

var (
	secretA = []byte(strings.Repeat("a", 32))
	secretB = []byte(strings.Repeat("b", 40))
)

func newClaims(now time.Time, ttl time.Duration) jwtx.Claims {
	return jwtx.NewAccessClaims("user-123", "student", "s@x.com", "Stu Dent", exampleIssuer, ttl, now)
}

func TestHS256SignAndVerify(t *testing.T) {
	ring, err := jwtx.NewKeyRing(secretA)
	require.NoError(t, err)

	claims := newClaims(time.Now().UTC(), 5*time.Minute)
	token, err := jwtx.NewSignerHS256(ring).Sign(claims)
	require.NoError(t, err)

	got, err := jwtx.NewVerifierHS256(ring, exampleIssuer, 0).Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, got.Subject)
	require.Equal(t, claims.Role, got.Role)
	require.Equal(t, claims.Email, got.Email)
	require.Equal(t, claims.Name, got.Name)
	require.Equal(t, claims.ID, got.ID)
}

func TestHS256VerifyFailures(t *testing.T) {
	ring, err := jwtx.NewKeyRing(secretA)
	require.NoError(t, err)
	signer := jwtx.NewSignerHS256(ring)
	verifier := jwtx.NewVerifierHS256(ring, exampleIssuer, 0)

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(newClaims(time.Now(), time.Minute))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierHS256(ring, "other", 0).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Sign(newClaims(time.Now().Add(-time.Hour), time.Minute))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("signed by unknown secret", func(t *testing.T) {
		other, err := jwtx.NewKeyRing(secretB)
		require.NoError(t, err)
		token, err := jwtx.NewSignerHS256(other).Sign(newClaims(time.Now(), time.Minute))
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("tampered signature", func(t *testing.T) {
		token, err := signer.Sign(newClaims(time.Now(), time.Minute))
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		_, err = verifier.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("other algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS512, newClaims(time.Now(), time.Minute))
		tok.Header["kid"] = jwtx.KeyID(secretA)
		signed, err := tok.SignedString(secretA)
		require.NoError(t, err)

		_, err = verifier.Verify(signed)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestKeyRingRotation(t *testing.T) {
	ring, err := jwtx.NewKeyRing(secretA)
	require.NoError(t, err)
	signer := jwtx.NewSignerHS256(ring)
	verifier := jwtx.NewVerifierHS256(ring, exampleIssuer, 0)

	before, err := signer.Sign(newClaims(time.Now(), time.Minute))
	require.NoError(t, err)

	require.NoError(t, ring.Rotate(secretB))
	after, err := signer.Sign(newClaims(time.Now(), time.Minute))
	require.NoError(t, err)

	// Both generations verify while the old secret is in the ring.
	_, err = verifier.Verify(before)
	require.NoError(t, err)
	_, err = verifier.Verify(after)
	require.NoError(t, err)

	require.Equal(t, []string{jwtx.KeyID(secretA), jwtx.KeyID(secretB)}, ring.KIDs())

	// A secret is retired by leaving it out of the next ring.
	next, err := jwtx.NewKeyRing(secretB)
	require.NoError(t, err)
	_, err = jwtx.NewVerifierHS256(next, exampleIssuer, 0).Verify(before)
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	require.Equal(t, []string{jwtx.KeyID(secretB)}, next.KIDs())
}

func TestKeyRingRejectsWeakSecrets(t *testing.T) {
	_, err := jwtx.NewKeyRing([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewKeyRing(secretA, []byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestKeyRingPreviousSecrets(t *testing.T) {
	ring, err := jwtx.NewKeyRing(secretB, secretA)
	require.NoError(t, err)

	kid, _, err := ring.Active()
	require.NoError(t, err)
	require.Equal(t, jwtx.KeyID(secretB), kid)
	require.Len(t, ring.KIDs(), 2)
	require.True(t, ring.IsReady())
}
