package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/lectern/pkg/jwtx"
)

// InitAuthKeys builds the HS256 key ring from JWT_SECRET and
// JWT_PREVIOUS_SECRETS.
//
// Only the active secret signs. Previous secrets keep verifying tokens issued
// before a rotation until they expire, so rotating is: move the old secret to
// JWT_PREVIOUS_SECRETS, set a new JWT_SECRET, restart. Drop the old secret
// once REFRESH_TOKEN_TTL has passed.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyRing, error) {
	var previous [][]byte
	for _, s := range cfg.JWTPreviousSecrets {
		if s = strings.TrimSpace(s); s != "" {
			previous = append(previous, []byte(s))
		}
	}

	ring, err := jwtx.NewKeyRing([]byte(cfg.JWTSecret), previous...)
	if err != nil {
		return nil, fmt.Errorf("build key ring: %w", err)
	}

	active, _, _ := ring.Active()
	logger.Info("jwt keys loaded",
		slog.String("active_kid", active),
		slog.Int("verification_keys", len(ring.KIDs())),
	)
	return ring, nil
}
