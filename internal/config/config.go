package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Server struct {
		Address string `mapstructure:"address"`
		Port    string `mapstructure:"port"`
	} `mapstructure:"server"`

	Auth struct {
		// SigningSecret feeds HMAC-SHA256; rotating it invalidates
		// every previously issued token.
		SigningSecret string        `mapstructure:"signing_secret"`
		TokenTTL      time.Duration `mapstructure:"token_ttl"`
		// ExemptPrefixes bypass the bearer-token filter entirely.
		ExemptPrefixes []string `mapstructure:"exempt_prefixes"`
	} `mapstructure:"auth"`

	Google struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		RedirectURL  string `mapstructure:"redirect_url"`
	} `mapstructure:"google"`

	Frontend struct {
		// CallbackURL receives the token as a query parameter after
		// a successful federated login.
		CallbackURL string `mapstructure:"callback_url"`
	} `mapstructure:"frontend"`

	Database struct {
		Driver string `mapstructure:"driver"` // "postgres" | "sqlite"
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Logging struct {
		Level  string `mapstructure:"level"`  // trace|debug|info|warn|error
		Format string `mapstructure:"format"` // text|json
	} `mapstructure:"logging"`
}

// Load reads configuration from env and an optional yaml file.
func Load() (*Config, error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("cinehall")
	viper.AutomaticEnv()

	viper.SetDefault("server.address", "0.0.0.0")
	viper.SetDefault("server.port", "8080")

	viper.SetDefault("auth.signing_secret", "")
	viper.SetDefault("auth.token_ttl", "24h")
	// trailing slashes keep sibling paths like /login-page filtered
	viper.SetDefault("auth.exempt_prefixes", []string{"/api/auth/", "/oauth2/", "/login/"})

	viper.SetDefault("frontend.callback_url", "http://localhost:3000/callback")

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/cinehall")
	}

	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	// 32 bytes of secret keeps HMAC-SHA256 at full strength
	if len(c.Auth.SigningSecret) < 32 {
		return fmt.Errorf("auth.signing_secret must be at least 32 characters")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}

// ListenAddr joins the configured address and port.
func (c *Config) ListenAddr() string {
	return c.Server.Address + ":" + c.Server.Port
}
