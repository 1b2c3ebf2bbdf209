package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/mail"
	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite"
	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"github.com/aussiebroadwan/lectern/pkg/idx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type mailbox struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (m *mailbox) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *mailbox) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.msgs)
	return m.msgs[len(m.msgs)-1].Data["code"]
}

type harness struct {
	router *Router
	store  *sqlite.Store
	tokens *service.TokenService
	hasher *cryptox.PasswordHasher
	mail   *mailbox
}

func newHarness(t *testing.T, configure ...func(*Router)) *harness {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ring, err := jwtx.NewKeyRing([]byte(strings.Repeat("s", 32)))
	require.NoError(t, err)

	hasher := cryptox.NewPasswordHasher("pepper").WithParams(cryptox.Argon2Params{
		Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8,
	})
	tokens := &service.TokenService{
		Signer:     jwtx.NewSignerHS256(ring),
		Store:      st,
		Issuer:     "lectern-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	}
	box := &mailbox{}

	r := NewRouter(ring, jwtx.NewVerifierHS256(ring, "lectern-test", time.Minute), "test", st, slogx.Discard())
	r.AuthService = &service.AuthService{
		Store:  st,
		Codes:  &service.CodeService{Store: st, TTL: 5 * time.Minute},
		Tokens: tokens,
		Hasher: hasher,
		Mailer: box,
	}
	r.UserService = &service.UserService{Store: st, Tokens: tokens}
	r.ClassroomService = &service.ClassroomService{Store: st}
	r.LectureService = &service.LectureService{Store: st}
	r.QuizService = &service.QuizService{Store: st}
	for _, fn := range configure {
		fn(r)
	}
	r.ApplyRoutes()

	return &harness{router: r, store: st, tokens: tokens, hasher: hasher, mail: box}
}

// user inserts an active account and returns it with an access token.
func (h *harness) user(t *testing.T, email string, role domain.Role) (domain.User, string) {
	t.Helper()
	hash, err := h.hasher.Hash("P@ss1234")
	require.NoError(t, err)

	now := time.Now().UTC()
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
	require.NoError(t, h.store.Users().CreateUser(context.Background(), u))

	token, err := h.tokens.IssueAccessToken(u)
	require.NoError(t, err)
	return u, token
}

type call struct {
	method, path, token, lang string
	body                      any
}

func (h *harness) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &body)
	req.RemoteAddr = "192.0.2.1:1234"
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRolePolicy(t *testing.T) {
	h := newHarness(t)
	_, admin := h.user(t, "admin@x.com", domain.RoleAdmin)
	_, teacher := h.user(t, "teacher@x.com", domain.RoleTeacher)
	_, student := h.user(t, "student@x.com", domain.RoleStudent)

	classroom := lecternsdk.ClassroomRequest{Name: "Algebra"}

	tests := []struct {
		name   string
		call   call
		status int
	}{
		{"anonymous create", call{method: "POST", path: "/v1/classrooms", body: classroom}, http.StatusUnauthorized},
		{"garbage token", call{method: "POST", path: "/v1/classrooms", token: "nope", body: classroom}, http.StatusUnauthorized},
		{"student create", call{method: "POST", path: "/v1/classrooms", token: student, body: classroom}, http.StatusForbidden},
		{"teacher create", call{method: "POST", path: "/v1/classrooms", token: teacher, body: classroom}, http.StatusCreated},
		{"admin create", call{method: "POST", path: "/v1/classrooms", token: admin, body: classroom}, http.StatusCreated},
		{"student lists users", call{method: "GET", path: "/v1/users", token: student}, http.StatusForbidden},
		{"teacher lists users", call{method: "GET", path: "/v1/users", token: teacher}, http.StatusForbidden},
		{"admin lists users", call{method: "GET", path: "/v1/users", token: admin}, http.StatusOK},
		{"anyone reads self", call{method: "GET", path: "/v1/users/me", token: student}, http.StatusOK},
		{"teacher joins", call{method: "POST", path: "/v1/classrooms/" + idx.New().String() + "/join-requests", token: teacher}, http.StatusForbidden},
		{"student blocks", call{method: "POST", path: "/v1/classrooms/" + idx.New().String() + "/members/" + idx.New().String() + "/deactivate", token: student}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(t, tt.call)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec := h.do(t, call{method: "GET", path: "/v1/users/me"})
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	require.Equal(t, "unauthorized", decode[httpx.ErrorResponse](t, rec).Error)
}

func TestRegisterVerifyLogin(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, call{method: "POST", path: "/v1/auth/register", body: lecternsdk.RegisterRequest{
		Email: "A@x.com", Password: "P@ss1234", FullName: "Ada",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[lecternsdk.UserResponse](t, rec)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "student", user.Role)
	require.False(t, user.Active)

	rec = h.do(t, call{method: "POST", path: "/v1/auth/login", body: lecternsdk.LoginRequest{Email: "a@x.com", Password: "P@ss1234"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, call{method: "POST", path: "/v1/auth/verify-email", body: lecternsdk.VerifyEmailRequest{
		Email: "a@x.com", Code: h.mail.lastCode(t),
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, i18n.Translate(language.English, "auth.email_verified"),
		decode[lecternsdk.MessageResponse](t, rec).Message)

	rec = h.do(t, call{method: "POST", path: "/v1/auth/login", body: lecternsdk.LoginRequest{Email: "a@x.com", Password: "P@ss1234"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	tokens := decode[lecternsdk.TokenResponse](t, rec)
	require.Equal(t, "Bearer", tokens.TokenType)
	require.Equal(t, 900, tokens.ExpiresIn)

	rec = h.do(t, call{method: "GET", path: "/v1/users/me", token: tokens.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[lecternsdk.UserResponse](t, rec).Active)

	rec = h.do(t, call{method: "POST", path: "/v1/auth/refresh", body: lecternsdk.RefreshRequest{RefreshToken: tokens.RefreshToken}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEqual(t, tokens.RefreshToken, decode[lecternsdk.TokenResponse](t, rec).RefreshToken)

	rec = h.do(t, call{method: "POST", path: "/v1/auth/refresh", body: lecternsdk.RefreshRequest{RefreshToken: tokens.RefreshToken}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlockStudentMessageIsLocalized(t *testing.T) {
	h := newHarness(t)
	_, teacher := h.user(t, "teacher@x.com", domain.RoleTeacher)
	student, studentToken := h.user(t, "student@x.com", domain.RoleStudent)

	rec := h.do(t, call{method: "POST", path: "/v1/classrooms", token: teacher, body: lecternsdk.ClassroomRequest{Name: "Algebra"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	classroom := decode[lecternsdk.ClassroomResponse](t, rec)
	base := "/v1/classrooms/" + classroom.ID

	rec = h.do(t, call{method: "POST", path: base + "/join-requests", token: studentToken})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, call{method: "POST", path: base + "/members/" + student.ID + "/deactivate", token: teacher, lang: "es-ES,es;q=0.9"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "es", rec.Header().Get("Content-Language"))
	require.Equal(t, "estudiante bloqueado en el aula", decode[lecternsdk.MessageResponse](t, rec).Message)

	rec = h.do(t, call{method: "GET", path: base + "/join-requests", token: teacher})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]lecternsdk.JoinRequestResponse](t, rec))

	rec = h.do(t, call{method: "GET", path: base, token: studentToken})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, call{method: "POST", path: base + "/members/" + student.ID + "/activate", token: teacher, lang: "en"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "student unblocked in classroom", decode[lecternsdk.MessageResponse](t, rec).Message)
}

func TestErrorResponses(t *testing.T) {
	h := newHarness(t)
	_, teacher := h.user(t, "teacher@x.com", domain.RoleTeacher)

	t.Run("invalid path id", func(t *testing.T) {
		rec := h.do(t, call{method: "GET", path: "/v1/classrooms/not-an-id", token: teacher})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[httpx.ErrorResponse](t, rec)
		require.Equal(t, "validation", body.Error)
		require.Equal(t, i18n.Translate(language.English, "validation.invalid_id"), body.Fields["id"])
		require.NotEmpty(t, body.RequestID)
		require.Equal(t, body.RequestID, rec.Header().Get("X-Request-ID"))
	})

	t.Run("unknown classroom", func(t *testing.T) {
		rec := h.do(t, call{method: "GET", path: "/v1/classrooms/" + idx.New().String(), token: teacher})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "not_found", decode[httpx.ErrorResponse](t, rec).Error)
	})

	t.Run("fields in spanish", func(t *testing.T) {
		rec := h.do(t, call{method: "POST", path: "/v1/auth/register?lang=es", body: lecternsdk.RegisterRequest{}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[httpx.ErrorResponse](t, rec)
		require.Equal(t, "Este campo es obligatorio.", body.Fields["full_name"])
		require.Contains(t, body.Fields, "email")
		require.Contains(t, body.Fields, "password")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/auth/login", strings.NewReader(`{"email":`))
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decode[httpx.ErrorResponse](t, rec).Fields, "body")
	})

	t.Run("bad page", func(t *testing.T) {
		rec := h.do(t, call{method: "GET", path: "/v1/classrooms?limit=-1", token: teacher})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decode[httpx.ErrorResponse](t, rec).Fields, "limit")
	})

	t.Run("duplicate registration", func(t *testing.T) {
		rec := h.do(t, call{method: "POST", path: "/v1/auth/register", body: lecternsdk.RegisterRequest{
			Email: "teacher@x.com", Password: "P@ss1234", FullName: "Again",
		}})
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestQuizAnswersHiddenFromStudents(t *testing.T) {
	h := newHarness(t)
	_, teacher := h.user(t, "teacher@x.com", domain.RoleTeacher)
	student, studentToken := h.user(t, "student@x.com", domain.RoleStudent)

	rec := h.do(t, call{method: "POST", path: "/v1/classrooms", token: teacher, body: lecternsdk.ClassroomRequest{Name: "Algebra"}})
	classroomID := decode[lecternsdk.ClassroomResponse](t, rec).ID

	rec = h.do(t, call{method: "POST", path: "/v1/classrooms/" + classroomID + "/join-requests", token: studentToken})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = h.do(t, call{method: "POST", path: "/v1/classrooms/" + classroomID + "/join-requests/" + student.ID + "/approve", token: teacher})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, call{method: "POST", path: "/v1/classrooms/" + classroomID + "/lectures", token: teacher,
		body: lecternsdk.LectureRequest{Title: "Equations"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	lectureID := decode[lecternsdk.LectureResponse](t, rec).ID

	rec = h.do(t, call{method: "POST", path: "/v1/lectures/" + lectureID + "/quizzes", token: teacher, body: lecternsdk.QuizRequest{
		Title: "Warm-up",
		Questions: []lecternsdk.QuestionRequest{{
			Prompt: "2 + 2",
			OptionGroups: []lecternsdk.OptionGroupRequest{{
				Options: []lecternsdk.AnswerOptionRequest{
					{Text: "4", IsCorrect: true},
					{Text: "5", Position: 1},
				},
			}},
		}},
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	quizID := decode[lecternsdk.QuizResponse](t, rec).ID

	rec = h.do(t, call{method: "GET", path: "/v1/quizzes/" + quizID, token: teacher})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"is_correct":true`)

	rec = h.do(t, call{method: "GET", path: "/v1/quizzes/" + quizID, token: studentToken})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "is_correct")
	quiz := decode[lecternsdk.QuizResponse](t, rec)
	require.Len(t, quiz.Questions, 1)
	require.Len(t, quiz.Questions[0].OptionGroups[0].Options, 2)

	rec = h.do(t, call{method: "DELETE", path: "/v1/quizzes/" + quizID, token: studentToken})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimitPerRoute(t *testing.T) {
	h := newHarness(t, func(r *Router) {
		r.Limits.Strict = httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	})
	login := lecternsdk.LoginRequest{Email: "nobody@x.com", Password: "wrong-pass1"}

	for range 2 {
		rec := h.do(t, call{method: "POST", path: "/v1/auth/login", body: login})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := h.do(t, call{method: "POST", path: "/v1/auth/login", body: login})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "rate_limited", decode[httpx.ErrorResponse](t, rec).Error)

	// Another address has its own budget.
	login.Email = "other@x.com"
	rec = h.do(t, call{method: "POST", path: "/v1/auth/login", body: login})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Another route too.
	rec = h.do(t, call{method: "POST", path: "/v1/auth/password/forgot", body: lecternsdk.EmailRequest{Email: "nobody@x.com"}})
	require.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHealthProbes(t *testing.T) {
	h := newHarness(t, func(r *Router) {
		r.MailProbe = PingFunc(func(context.Context) error { return errors.New("broker down") })
		r.MediaProbe = PingFunc(func(context.Context) error { return nil })
	})

	rec := h.do(t, call{method: "GET", path: "/livez"})
	require.Equal(t, http.StatusOK, rec.Code)
	live := decode[lecternsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	rec = h.do(t, call{method: "GET", path: "/readyz"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ready := decode[lecternsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Schema)
	require.Equal(t, "ok", ready.Checks.Signer)
	require.Equal(t, "error: broker down", ready.Checks.Mail)
	require.Equal(t, "ok", ready.Checks.Media)
	require.Equal(t, "disabled", ready.Checks.Limiter)

	require.NoError(t, h.store.Close())
	rec = h.do(t, call{method: "GET", path: "/readyz"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", decode[lecternsdk.HealthResponse](t, rec).Status)
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
		bad    string
	}{
		{"", defaultPageLimit, 0, ""},
		{"limit=10&offset=20", 10, 20, ""},
		{"limit=0", defaultPageLimit, 0, ""},
		{"limit=100000", maxPageLimit, 0, ""},
		{"limit=ten", 0, 0, "limit"},
		{"offset=-3", 0, 0, "offset"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, err := parsePage(httptest.NewRequest("GET", "/?"+tt.query, nil))
			if tt.bad != "" {
				require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
				require.Equal(t, "validation.page", apperr.As(err).Fields[tt.bad])
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.limit, page.Limit)
			require.Equal(t, tt.offset, page.Offset)
		})
	}
}

func TestLimiterName(t *testing.T) {
	require.Equal(t, "post.v1.auth.login", limiterName("POST /v1/auth/login"))
	require.Equal(t, "get.v1.classrooms.id.members", limiterName("GET /v1/classrooms/{id}/members"))
	require.Equal(t, "get.livez", limiterName("GET /livez"))
}
