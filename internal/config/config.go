// Package config loads application settings from configs/config.yml,
// an optional .env file and BLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BLOG_DB_DRIVER.
const EnvPrefix = "BLOG"

type Config struct {
	Port string     `mapstructure:"port"`
	Log  LogConfig  `mapstructure:"log"`
	DB   DBConfig   `mapstructure:"db"`
	HTTP HTTPConfig `mapstructure:"http"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`

	// AllowedOrigins for the websocket feed. Empty means same origin only, "*" allows any.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Options controls where Load looks for its sources.
type Options struct {
	ConfigPaths []string // directories searched for config.yml
	ConfigName  string
	EnvFiles    []string // dotenv files, missing ones are skipped
}

// DefaultOptions matches the repository layout.
func DefaultOptions() Options {
	return Options{
		ConfigPaths: []string{"configs", "."},
		ConfigName:  "config",
		EnvFiles:    []string{".env"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "app.db")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.allowed_origins", []string{})
}

// Load reads configuration. A missing config file is not an error,
// defaults and environment still apply.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(opts.ConfigName)
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFiles does not override variables that are already set.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file %q: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %q: %w", f, err)
		}
	}
	return nil
}
