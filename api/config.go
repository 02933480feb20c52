package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vr33ni-dev/mystic-cards-api/diag"
	"github.com/vr33ni-dev/mystic-cards-api/utils"
)

type Config struct {
	AppEnv      string        `mapstructure:"app_env" validate:"required"`
	Port        int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	LogLevel    string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	DBURL       string        `mapstructure:"db_url"`       // diagnostics collaborator, optional
	DiagTimeout time.Duration `mapstructure:"diag_timeout" validate:"gt=0"`
}

// Addr is the listen address on all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func LoadConfig() (*Config, error) {
	env := utils.AppEnv()

	// Env files are for laptops; in the cloud rely on real env vars.
	// Precedence: OS env > .env.{env} (specific) > .env (common).
	// godotenv.Load never overwrites a set variable, so load the
	// specific file first.
	if !utils.IsProd(env) {
		_ = godotenv.Load(".env." + env)
		_ = godotenv.Load(".env")
	}
	// .env may have set APP_ENV itself.
	env = utils.AppEnv()

	v := viper.New()
	v.SetDefault("app_env", env)
	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("db_url", "")
	v.SetDefault("diag_timeout", diag.DefaultTimeout)
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.AppEnv = env
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
