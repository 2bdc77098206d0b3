package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string `mapstructure:"PORT"`
	APIBasePath      string `mapstructure:"API_BASE_PATH"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	EmailServiceURL  string `mapstructure:"EMAIL_SERVICE_URL"`
	MaxRetries       int    `mapstructure:"MAX_RETRIES"`
	ConcurrencyLimit int    `mapstructure:"CONCURRENCY_LIMIT"`
	SweepWindowMS    int    `mapstructure:"SWEEP_WINDOW_MS"`
	SendTimeoutMS    int    `mapstructure:"SEND_TIMEOUT_MS"`
}

// DispatchConfig bundles the knobs the delivery pipeline needs.
type DispatchConfig struct {
	MaxRetries       int
	ConcurrencyLimit int
	SendTimeout      time.Duration
	SweepWindow      time.Duration
}

var cfg *Config

func NewConfig(path string) (*Config, error) {
	relativeURL, err := GetBasePath(path)
	if err != nil {
		return nil, fmt.Errorf("error getting base path: %v", err)
	}

	vip := viper.New()
	vip.SetConfigType("env")
	vip.SetConfigName(".env")
	vip.AddConfigPath(relativeURL)
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	vip.SetDefault("PORT", "3000")
	vip.SetDefault("API_BASE_PATH", "/api/v1")
	vip.SetDefault("EMAIL_SERVICE_URL", "https://email-service.digitalenvision.com.au/send-email")
	vip.SetDefault("MAX_RETRIES", 3)
	vip.SetDefault("CONCURRENCY_LIMIT", 10)
	vip.SetDefault("SWEEP_WINDOW_MS", 60000)
	vip.SetDefault("SEND_TIMEOUT_MS", 5000)

	vip.BindEnv("PORT")
	vip.BindEnv("API_BASE_PATH")
	vip.BindEnv("DATABASE_URL")
	vip.BindEnv("EMAIL_SERVICE_URL")
	vip.BindEnv("MAX_RETRIES")
	vip.BindEnv("CONCURRENCY_LIMIT")
	vip.BindEnv("SWEEP_WINDOW_MS")
	vip.BindEnv("SEND_TIMEOUT_MS")

	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %v", err)
	}

	return cfg, nil
}

func GetBasePath(path string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return filepath.Join(cwd, path), nil
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			return "", errors.New("go.mod not found")
		}
		cwd = parent
	}
}

func GetConfig() *Config {
	return cfg
}

func GetDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		MaxRetries:       cfg.MaxRetries,
		ConcurrencyLimit: cfg.ConcurrencyLimit,
		SendTimeout:      time.Duration(cfg.SendTimeoutMS) * time.Millisecond,
		SweepWindow:      time.Duration(cfg.SweepWindowMS) * time.Millisecond,
	}
}

// SetTestConfig allows tests to set the global config variable directly.
func SetTestConfig(testCfg *Config) {
	cfg = testCfg
}
