package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
	"golang.org/x/text/language"

	_ "github.com/aussiebroadwan/lectern/api/lectern" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is an optional dependency reported by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyRing
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService      *service.AuthService
	UserService      *service.UserService
	ClassroomService *service.ClassroomService
	LectureService   *service.LectureService
	QuizService      *service.QuizService

	// Limits and Limiters default to the built-in profiles and in-memory
	// limiters.
	Limits   httpx.RateLimitProfiles
	Limiters httpx.LimiterFactory

	// Locale is the fallback response language.
	Locale language.Tag

	// Optional dependencies reported by /readyz; nil means disabled.
	MailProbe    Pinger
	MediaProbe   Pinger
	LimiterProbe Pinger
}

func NewRouter(
	keys *jwtx.KeyRing,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       httpx.DefaultRateLimitProfiles(),
		Limiters:     httpx.MemoryLimiterFactory,
		Locale:       language.English,
	}
}

// policy says who may call a route. The zero value is a public route.
type policy struct {
	authenticated bool
	roles         []string
}

var (
	public   = policy{}
	signedIn = policy{authenticated: true}
	admins   = policy{authenticated: true, roles: []string{string(domain.RoleAdmin)}}
	teachers = policy{authenticated: true, roles: []string{string(domain.RoleTeacher), string(domain.RoleAdmin)}}
	students = policy{authenticated: true, roles: []string{string(domain.RoleStudent)}}
)

type tier int

const (
	strict tier = iota
	moderate
	lenient
	probes
)

// route is one row of the routing table. Public routes are limited by client
// address, optionally combined with the e-mail in the body; authenticated
// routes are limited per user.
type route struct {
	pattern    string
	policy     policy
	tier       tier
	emailField bool
	handler    http.HandlerFunc
}

func (r *Router) routes() []route {
	auth := &AuthHandler{Auth: r.AuthService}
	users := &UsersHandler{Users: r.UserService}
	classrooms := &ClassroomsHandler{Classrooms: r.ClassroomService}
	lectures := &LecturesHandler{Lectures: r.LectureService}
	quizzes := &QuizzesHandler{Quizzes: r.QuizService}

	return []route{
		{"POST /v1/auth/register", public, strict, false, auth.HandleRegister},
		{"POST /v1/auth/verify-email", public, strict, true, auth.HandleVerifyEmail},
		{"POST /v1/auth/resend-verification", public, strict, false, auth.HandleResendVerification},
		{"POST /v1/auth/login", public, strict, true, auth.HandleLogin},
		{"POST /v1/auth/refresh", public, strict, false, auth.HandleRefresh},
		{"POST /v1/auth/logout", public, moderate, false, auth.HandleLogout},
		{"POST /v1/auth/password/forgot", public, strict, false, auth.HandleForgotPassword},
		{"POST /v1/auth/password/reset", public, strict, true, auth.HandleResetPassword},
		{"POST /v1/auth/password/change", signedIn, strict, false, auth.HandleChangePassword},

		{"GET /v1/users/me", signedIn, lenient, false, users.HandleMe},
		{"PATCH /v1/users/me", signedIn, moderate, false, users.HandleUpdateProfile},
		{"POST /v1/users/me/avatar", signedIn, moderate, false, users.HandleAvatarUpload},
		{"PUT /v1/users/me/avatar", signedIn, moderate, false, users.HandleSetAvatar},
		{"DELETE /v1/users/me", signedIn, strict, false, users.HandleDeleteMe},
		{"GET /v1/users", admins, moderate, false, users.HandleList},
		{"PUT /v1/users/{id}/role", admins, moderate, false, users.HandleSetRole},
		{"DELETE /v1/users/{id}", admins, moderate, false, users.HandleDeactivate},

		{"POST /v1/classrooms", teachers, moderate, false, classrooms.HandleCreate},
		{"GET /v1/classrooms", signedIn, lenient, false, classrooms.HandleList},
		{"GET /v1/classrooms/{id}", signedIn, lenient, false, classrooms.HandleGet},
		{"PATCH /v1/classrooms/{id}", teachers, moderate, false, classrooms.HandleUpdate},
		{"DELETE /v1/classrooms/{id}", teachers, moderate, false, classrooms.HandleDelete},
		{"POST /v1/classrooms/{id}/join-requests", students, moderate, false, classrooms.HandleRequestJoin},
		{"GET /v1/classrooms/{id}/join-requests", teachers, lenient, false, classrooms.HandleListJoinRequests},
		{"POST /v1/classrooms/{id}/join-requests/{studentId}/approve", teachers, moderate, false, classrooms.HandleApproveJoin},
		{"DELETE /v1/classrooms/{id}/join-requests/{studentId}", teachers, moderate, false, classrooms.HandleRejectJoin},
		{"GET /v1/classrooms/{id}/members", teachers, lenient, false, classrooms.HandleListMembers},
		{"POST /v1/classrooms/{id}/members/{studentId}/deactivate", teachers, moderate, false, classrooms.HandleDeactivateMember},
		{"POST /v1/classrooms/{id}/members/{studentId}/activate", teachers, moderate, false, classrooms.HandleActivateMember},

		{"POST /v1/classrooms/{id}/lectures", teachers, moderate, false, lectures.HandleCreate},
		{"GET /v1/classrooms/{id}/lectures", signedIn, lenient, false, lectures.HandleList},
		{"GET /v1/lectures/{id}", signedIn, lenient, false, lectures.HandleGet},
		{"PATCH /v1/lectures/{id}", teachers, moderate, false, lectures.HandleUpdate},
		{"DELETE /v1/lectures/{id}", teachers, moderate, false, lectures.HandleDelete},

		{"POST /v1/lectures/{id}/quizzes", teachers, moderate, false, quizzes.HandleCreate},
		{"GET /v1/lectures/{id}/quizzes", signedIn, lenient, false, quizzes.HandleList},
		{"GET /v1/quizzes/{id}", signedIn, lenient, false, quizzes.HandleGet},
		{"PATCH /v1/quizzes/{id}", teachers, moderate, false, quizzes.HandleUpdate},
		{"DELETE /v1/quizzes/{id}", teachers, moderate, false, quizzes.HandleDelete},
		{"POST /v1/quizzes/{id}/questions", teachers, moderate, false, quizzes.HandleAddQuestion},
		{"PATCH /v1/questions/{id}", teachers, moderate, false, quizzes.HandleUpdateQuestion},
		{"DELETE /v1/questions/{id}", teachers, moderate, false, quizzes.HandleDeleteQuestion},
		{"POST /v1/questions/{id}/option-groups", teachers, moderate, false, quizzes.HandleAddOptionGroup},
		{"PATCH /v1/option-groups/{id}", teachers, moderate, false, quizzes.HandleUpdateOptionGroup},
		{"DELETE /v1/option-groups/{id}", teachers, moderate, false, quizzes.HandleDeleteOptionGroup},
		{"POST /v1/option-groups/{id}/options", teachers, moderate, false, quizzes.HandleAddAnswerOption},
		{"PATCH /v1/options/{id}", teachers, moderate, false, quizzes.HandleUpdateAnswerOption},
		{"DELETE /v1/options/{id}", teachers, moderate, false, quizzes.HandleDeleteAnswerOption},

		{"GET /livez", public, probes, false, LivezHandler(r.startTime, r.buildVersion)},
		{"GET /readyz", public, probes, false, r.readyz()},
	}
}

func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Localize(r.Locale),
	}

	for _, rt := range r.routes() {
		r.Mux.Handle(rt.pattern, r.secure(rt))
	}

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// secure wraps a route in its rate limiter and, for authenticated routes,
// token verification and the role check. Each route gets its own limiter.
func (r *Router) secure(rt route) http.Handler {
	limiter := r.Limiters(limiterName(rt.pattern), r.tierConfig(rt.tier))

	if !rt.policy.authenticated {
		if rt.emailField {
			return httpx.Chain(rt.handler, httpx.RateLimitByIPAndJSONField(limiter, "email"))
		}
		return httpx.Chain(rt.handler, httpx.RateLimitByIP(limiter))
	}

	return httpx.Chain(rt.handler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(rt.policy.roles...),
		httpx.RateLimitByUser(limiter),
	)
}

func (r *Router) tierConfig(t tier) httpx.RateLimitConfig {
	switch t {
	case strict:
		return r.Limits.Strict
	case moderate:
		return r.Limits.Moderate
	case probes:
		return r.Limits.Public
	default:
		return r.Limits.Lenient
	}
}

// limiterName turns "POST /v1/auth/login" into "post.v1.auth.login".
func limiterName(pattern string) string {
	method, path, _ := strings.Cut(pattern, " ")
	path = strings.NewReplacer("{", "", "}", "").Replace(strings.Trim(path, "/"))
	return strings.ToLower(method) + "." + strings.ReplaceAll(path, "/", ".")
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Lectern API
//	@version		0.1.0
//	@description	Classrooms, lectures and quizzes for teachers and their students.
//	@description
//	@description				Access tokens are HS256 JWTs; refresh tokens are opaque and rotate on every use.
//	@description				Messages are localized from ?lang=, the lang cookie or Accept-Language (en, es).
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/lectern
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
