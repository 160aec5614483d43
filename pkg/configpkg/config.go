// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
)

// LocalEnvFile holds developer overrides. It is optional and never committed.
const LocalEnvFile = ".env.local"

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBSource             string        `mapstructure:"DB_SOURCE"`
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	TokenMaker           string        `mapstructure:"TOKEN_MAKER"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	Environment          string        `mapstructure:"GO_ENV"`
	MigrateOnStart       bool          `mapstructure:"MIGRATE_ON_START"`
}

// Load reads configuration from the app.env file in path and environment variables.
//
// Variables from .env.local in the working directory, when present,
// take precedence over app.env.
func Load(path string) (Config, error) {
	var c Config

	if err := godotenv.Load(LocalEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load %s: %w", LocalEnvFile, err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("TOKEN_MAKER", tokenpkg.KindPaseto)
	v.SetDefault("ACCESS_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_DURATION", 24*time.Hour)
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("MIGRATE_ON_START", true)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshal config: %w", err)
	}

	return c, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Validate returns an error listing every invalid setting.
func (c Config) Validate() error {
	var problems []string

	if c.DBDriver == "" {
		problems = append(problems, "DB_DRIVER must not be empty")
	}

	if c.DBSource == "" {
		problems = append(problems, "DB_SOURCE must not be empty")
	}

	if c.ServerAddress == "" {
		problems = append(problems, "SERVER_ADDRESS must not be empty")
	}

	if len(c.TokenSymmetricKey) != 32 {
		problems = append(problems, fmt.Sprintf("TOKEN_SYMMETRIC_KEY must be exactly 32 characters, got %d", len(c.TokenSymmetricKey)))
	}

	switch c.TokenMaker {
	case tokenpkg.KindPaseto, tokenpkg.KindJWT:
	default:
		problems = append(problems, fmt.Sprintf("TOKEN_MAKER %q must be one of %q, %q", c.TokenMaker, tokenpkg.KindPaseto, tokenpkg.KindJWT))
	}

	if c.AccessTokenDuration <= 0 {
		problems = append(problems, "ACCESS_TOKEN_DURATION must be positive")
	}

	if c.RefreshTokenDuration < c.AccessTokenDuration {
		problems = append(problems, "REFRESH_TOKEN_DURATION must not be shorter than ACCESS_TOKEN_DURATION")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}
