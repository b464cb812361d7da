package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DirName         = ".pet-walks"
	configFileName  = "config.yaml"
	credentialsFile = "credentials.db"

	defaultBackendURL = "http://localhost:8080"
	defaultTimeout    = 10 * time.Second
	defaultPort       = "8080"
	defaultTokenTTL   = 24 * time.Hour
)

// Config del cliente y del backend de desarrollo.
// Orden: defaults < <data_dir>/config.yaml < .env / variables de entorno.
type Config struct {
	BackendURL  string        `yaml:"backend_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	DataDir     string        `yaml:"-"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`

	// Solo backend de desarrollo
	Dev DevConfig `yaml:"dev"`
}

type DevConfig struct {
	Port      string        `yaml:"port"`
	DBDSN     string        `yaml:"db_dsn"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// CredentialsPath es el archivo SQLite del credential store.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.DataDir, credentialsFile)
}

func Default() *Config {
	return &Config{
		BackendURL:  defaultBackendURL,
		HTTPTimeout: defaultTimeout,
		LogLevel:    "info",
		LogFormat:   "text",
		Dev: DevConfig{
			Port:     defaultPort,
			TokenTTL: defaultTokenTTL,
		},
	}
}

// Load arma la config. Un .env en el cwd es opcional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	cfg.DataDir = dir

	if err := loadFile(filepath.Join(dir, configFileName), cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return errors.New("config: backend_url is required")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("config: http_timeout must be positive")
	}
	if c.Dev.TokenTTL <= 0 {
		return errors.New("config: dev.token_ttl must be positive")
	}
	return nil
}

func dataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("WALKS_DATA_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.BackendURL = getEnv("WALKS_BACKEND_URL", cfg.BackendURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Dev.Port = getEnv("PORT", cfg.Dev.Port)
	cfg.Dev.DBDSN = getEnv("DB_DSN", cfg.Dev.DBDSN)
	cfg.Dev.JWTSecret = getEnv("DEV_JWT_SECRET", cfg.Dev.JWTSecret)

	var err error
	if cfg.HTTPTimeout, err = getDurationEnv("WALKS_HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return err
	}
	if cfg.Dev.TokenTTL, err = getDurationEnv("DEV_TOKEN_TTL", cfg.Dev.TokenTTL); err != nil {
		return err
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getDurationEnv acepta "15s" o segundos pelados ("15").
func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
