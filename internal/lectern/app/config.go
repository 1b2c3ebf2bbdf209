package app

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/pkg/jwtx"
)

type Config struct {
	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"lectern.db"`
	PepperFile   string `env:"PEPPER_FILE" envDefault:"pepper"`

	JWTSecret          string        `env:"JWT_SECRET,required,unset"`
	JWTPreviousSecrets []string      `env:"JWT_PREVIOUS_SECRETS" envSeparator:","`
	Issuer             string        `env:"JWT_ISSUER" envDefault:"lectern"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	CodeTTL            time.Duration `env:"CODE_TTL" envDefault:"5m"`

	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminName     string `env:"BOOTSTRAP_ADMIN_NAME"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD,unset"`

	Mail  MailConfig
	S3    S3Config
	Redis RedisConfig

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
}

// MailConfig enables the RabbitMQ publisher when URL is set.
type MailConfig struct {
	URL   string `env:"RABBITMQ_URL,unset"`
	Queue string `env:"MAIL_QUEUE" envDefault:"lectern.mail"`
}

// S3Config enables avatar storage when Endpoint is set.
type S3Config struct {
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"S3_BUCKET" envDefault:"avatars"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY,unset"`
}

// RedisConfig switches rate limiting to Redis when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD,unset"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", describeEnvError(err))
	}
	if len(cfg.JWTSecret) < jwtx.MinSecretLength {
		return Config{}, fmt.Errorf("parse config: JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("parse config: invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}

// describeEnvError rewrites field parse errors to name the variable instead
// of the Go field.
func describeEnvError(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}
	keys := map[string]string{}
	collectEnvKeys(reflect.TypeOf(Config{}), keys)

	errs := make([]error, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var pe env.ParseError
		if errors.As(e, &pe) {
			if key, ok := keys[pe.Name]; ok {
				errs = append(errs, fmt.Errorf("invalid %s: %w", key, pe.Err))
				continue
			}
		}
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

func collectEnvKeys(t reflect.Type, keys map[string]string) {
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Struct {
			collectEnvKeys(f.Type, keys)
			continue
		}
		if tag := f.Tag.Get("env"); tag != "" {
			keys[f.Name], _, _ = strings.Cut(tag, ",")
		}
	}
}

// BootstrapData is the admin created on first start.
func (c Config) BootstrapData() domain.BootstrapData {
	return domain.BootstrapData{
		AdminEmail:    c.BootstrapAdminEmail,
		AdminName:     c.BootstrapAdminName,
		AdminPassword: c.BootstrapAdminPassword,
	}
}

// Bootstrap reports whether an admin should be created at startup.
func (c Config) Bootstrap() bool {
	return c.BootstrapAdminEmail != "" && c.BootstrapAdminPassword != ""
}
