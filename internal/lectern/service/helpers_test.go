package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/mail"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "lectern-test"

// outbox records sent mails.
type outbox struct {
	mu   sync.Mutex
	msgs []mail.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
	return o.err
}

func (o *outbox) last(t *testing.T) mail.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.msgs, "no mail sent")
	return o.msgs[len(o.msgs)-1]
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.msgs)
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type env struct {
	store    *sqlite.Store
	clock    *clock
	mail     *outbox
	hasher   *cryptox.PasswordHasher
	verifier *jwtx.HS256Verifier

	codes      *CodeService
	tokens     *TokenService
	auth       *AuthService
	users      *UserService
	classrooms *ClassroomService
	lectures   *LectureService
	quizzes    *QuizService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ring, err := jwtx.NewKeyRing([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)

	clk := &clock{now: time.Now().UTC().Truncate(time.Second)}
	box := &outbox{}
	hasher := cryptox.NewPasswordHasher("pepper").WithParams(cryptox.Argon2Params{
		Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8,
	})

	codes := &CodeService{Store: st, TTL: 5 * time.Minute, Now: clk.Now}
	tokens := &TokenService{
		Signer:     jwtx.NewSignerHS256(ring),
		Store:      st,
		Issuer:     testIssuer,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		Now:        clk.Now,
	}

	return &env{
		store:    st,
		clock:    clk,
		mail:     box,
		hasher:   hasher,
		verifier: jwtx.NewVerifierHS256(ring, testIssuer, time.Minute),
		codes:    codes,
		tokens:   tokens,
		auth: &AuthService{
			Store: st, Codes: codes, Tokens: tokens, Hasher: hasher, Mailer: box, Now: clk.Now,
		},
		users:      &UserService{Store: st, Tokens: tokens, Now: clk.Now},
		classrooms: &ClassroomService{Store: st, Now: clk.Now},
		lectures:   &LectureService{Store: st, Now: clk.Now},
		quizzes:    &QuizService{Store: st, Now: clk.Now},
	}
}

// user inserts an active account with password "P@ss1234".
func (e *env) user(t *testing.T, email string, role domain.Role) domain.User {
	t.Helper()
	hash, err := e.hasher.Hash("P@ss1234")
	require.NoError(t, err)

	now := e.clock.Now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     strings.Split(email, "@")[0],
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

func actorOf(u domain.User) Actor { return Actor{UserID: u.ID, Role: u.Role} }
