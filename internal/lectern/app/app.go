package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/lectern/internal/lectern/http"
	"github.com/aussiebroadwan/lectern/internal/lectern/mail"
	"github.com/aussiebroadwan/lectern/internal/lectern/media"
	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite"
	"github.com/aussiebroadwan/lectern/pkg/cryptox"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	tokenLeeway = 30 * time.Second
)

// Application holds the server and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	keys   *jwtx.KeyRing
	hasher *cryptox.PasswordHasher

	mailer    mail.Sender
	publisher *mail.AMQPPublisher // nil without RABBITMQ_URL
	avatars   *media.AvatarStore  // nil without S3_ENDPOINT
	redis     *redis.Client       // nil without REDIS_ADDR

	authService         *service.AuthService
	userService         *service.UserService
	classroomService    *service.ClassroomService
	lectureService      *service.LectureService
	quizService         *service.QuizService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New builds the application. Nothing listens until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "lectern",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.keys, err = InitAuthKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}

	ctx := context.Background()
	if err := app.initIntegrations(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	if cfg.Bootstrap() {
		if err := app.bootstrap(ctx); err != nil {
			app.closeIntegrations()
			_ = app.db.Close()
			return nil, err
		}
	}

	app.initHTTP()
	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("lectern starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeIntegrations()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes every
// connection the application opened.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down lectern...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slogx.Err(err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slogx.Err(err))
		}
	}

	app.housekeepingService.Stop()
	app.closeIntegrations()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slogx.Err(err))
		return err
	}

	app.logger.Info("lectern stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initIntegrations connects the optional backends. Each one is enabled by its
// address variable; without it the server falls back to a local
// implementation.
func (app *Application) initIntegrations(ctx context.Context) error {
	if app.cfg.Mail.URL != "" {
		app.publisher = mail.NewAMQPPublisher(app.cfg.Mail.URL, app.cfg.Mail.Queue)
		app.mailer = app.publisher
		app.logger.Info("mail publisher enabled", "queue", app.publisher.Queue())
	} else {
		app.mailer = mail.LogSender{Logger: app.logger}
		app.logger.Warn("RABBITMQ_URL not set, e-mails will only be logged")
	}

	if app.cfg.S3.Endpoint != "" {
		avatars, err := media.NewAvatarStore(ctx, media.Config{
			Endpoint:  app.cfg.S3.Endpoint,
			Region:    app.cfg.S3.Region,
			Bucket:    app.cfg.S3.Bucket,
			AccessKey: app.cfg.S3.AccessKey,
			SecretKey: app.cfg.S3.SecretKey,
		})
		if err != nil {
			app.closeIntegrations()
			return fmt.Errorf("failed to initialize avatar storage: %w", err)
		}
		app.avatars = avatars
		app.logger.Info("avatar storage enabled", "bucket", app.cfg.S3.Bucket)
	}

	if app.cfg.Redis.Addr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.Redis.Addr,
			Password: app.cfg.Redis.Password,
			DB:       app.cfg.Redis.DB,
		})
		app.logger.Info("redis rate limiting enabled", "addr", app.cfg.Redis.Addr)
	}
	return nil
}

func (app *Application) closeIntegrations() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("error closing mail publisher", slogx.Err(err))
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slogx.Err(err))
		}
	}
}

func (app *Application) initServices() {
	tokens := &service.TokenService{
		Signer:     jwtx.NewSignerHS256(app.keys),
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}
	codes := &service.CodeService{Store: app.db, TTL: app.cfg.CodeTTL}

	app.authService = &service.AuthService{
		Store:  app.db,
		Codes:  codes,
		Tokens: tokens,
		Hasher: app.hasher,
		Mailer: app.mailer,
	}

	users := &service.UserService{Store: app.db, Tokens: tokens}
	if app.avatars != nil {
		users.Avatars = app.avatars
	}
	app.userService = users

	app.classroomService = &service.ClassroomService{Store: app.db}
	app.lectureService = &service.LectureService{Store: app.db}
	app.quizService = &service.QuizService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db, Hasher: app.hasher}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// bootstrap creates the configured admin on an empty database. Later starts
// find users and leave them alone.
func (app *Application) bootstrap(ctx context.Context) error {
	ctx = slogx.WithContext(ctx, app.logger)
	_, err := app.bootstrapService.Bootstrap(ctx, app.cfg.BootstrapData())
	if errors.Is(err, service.ErrBootstrapAlready) {
		app.logger.Debug("bootstrap skipped, users already exist")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		jwtx.NewVerifierHS256(app.keys, app.cfg.Issuer, tokenLeeway),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.ClassroomService = app.classroomService
	router.LectureService = app.lectureService
	router.QuizService = app.quizService

	router.Limits = httpx.RateLimitProfilesFromEnv()
	if tag, ok := i18n.ParseTag(app.cfg.DefaultLocale); ok {
		router.Locale = tag
	} else {
		app.logger.Warn("unsupported DEFAULT_LOCALE, using English", "locale", app.cfg.DefaultLocale)
	}

	if app.publisher != nil {
		router.MailProbe = app.publisher
	}
	if app.avatars != nil {
		router.MediaProbe = app.avatars
	}
	if app.redis != nil {
		router.Limiters = httpx.RedisLimiterFactory(app.redis)
		router.LimiterProbe = httpapi.PingFunc(func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		})
	}

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
