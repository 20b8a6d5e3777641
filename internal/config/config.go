package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"10m"`
	SessionValidDuration       time.Duration `env:"SESSION_VALID_DURATION" envDefault:"720h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	SentryDsn      *url.URL `env:"SENTRY_DSN"`

	AwsRegion                     string  `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
	PasswordResetBaseURL          url.URL `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/reset-password"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return cfg, nil
}
