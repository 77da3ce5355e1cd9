package utils

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// EnvPrefix Prefix of every environment override, e.g. ANNOSCOPE_API_BASE_URL
const EnvPrefix = "ANNOSCOPE_"

// Config Configuration shared by the web client and the reference API server
type Config struct {
	Server  ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	API     APIConfig     `yaml:"api" envPrefix:"API_"`
	Store   StoreConfig   `yaml:"store" envPrefix:"STORE_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Backend BackendConfig `yaml:"backend" envPrefix:"BACKEND_"`
}

// ServerConfig Where the web client listens
type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port string `yaml:"port" env:"PORT"`
}

// APIConfig How the web client reaches the backend
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// Bearer token sent on every request, empty for none
	Token string `yaml:"token" env:"TOKEN"`
	// Zero disables the client timeout
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// StoreConfig Client-side store behaviour
type StoreConfig struct {
	// Zero keeps loaded image collections until the session ends
	ImageTTL        time.Duration `yaml:"image_ttl" env:"IMAGE_TTL"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"CLEANUP_INTERVAL"`
}

// LogConfig Logrus level and formatter
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// BackendConfig Reference API server
type BackendConfig struct {
	Host       string          `yaml:"host" env:"HOST"`
	Port       string          `yaml:"port" env:"PORT"`
	Database   DatabaseConfig  `yaml:"database" envPrefix:"DATABASE_"`
	StorageDir string          `yaml:"storage_dir" env:"STORAGE_DIR"`
	Auth       AuthConfig      `yaml:"auth" envPrefix:"AUTH_"`
	Thumbnail  ThumbnailConfig `yaml:"thumbnail" envPrefix:"THUMBNAIL_"`
}

// DatabaseConfig Driver is one of sqlite, mysql, postgres
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	DSN    string `yaml:"dsn" env:"DSN"`
}

// AuthConfig An empty secret disables authentication
type AuthConfig struct {
	Secret   string        `yaml:"secret" env:"SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
}

// ThumbnailConfig Defaults for rendered thumbnails
type ThumbnailConfig struct {
	Size     int           `yaml:"size" env:"SIZE"`
	Quality  int           `yaml:"quality" env:"QUALITY"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
}

// DefaultConfig Configuration used when no file or variable overrides a value
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "", Port: "8080"},
		API:    APIConfig{BaseURL: "http://localhost:8000"},
		Store:  StoreConfig{CleanupInterval: time.Minute},
		Log:    LogConfig{Level: "info", Format: "text"},
		Backend: BackendConfig{
			Port:       "8000",
			Database:   DatabaseConfig{Driver: "sqlite", DSN: "annoscope.sqlite"},
			StorageDir: "static",
			Auth:       AuthConfig{TokenTTL: 24 * time.Hour},
			Thumbnail:  ThumbnailConfig{Size: 256, Quality: 75, CacheTTL: 10 * time.Minute},
		},
	}
}

// NewConfig Build the configuration: defaults, then the YAML file at
// configPath (skipped when empty), then environment variables.
func NewConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", configPath, err)
		}
	}

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(fmt.Sprintf("Cannot load .env: %s", err.Error()))
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate Reject values no component can work with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Store.ImageTTL < 0 || c.Store.CleanupInterval < 0 {
		return errors.New("store durations cannot be negative")
	}
	if c.Store.ImageTTL > 0 && c.Store.CleanupInterval == 0 {
		return errors.New("store.cleanup_interval is required when store.image_ttl is set")
	}
	if c.Backend.Thumbnail.Size <= 0 || c.Backend.Thumbnail.Size > MaxThumbnailSize {
		return fmt.Errorf("backend.thumbnail.size must be between 1 and %d", MaxThumbnailSize)
	}
	if c.Backend.Thumbnail.Quality < 1 || c.Backend.Thumbnail.Quality > 100 {
		return errors.New("backend.thumbnail.quality must be between 1 and 100")
	}
	return nil
}

// Addr Listen address of the web client
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Addr Listen address of the API server
func (b BackendConfig) Addr() string {
	return fmt.Sprintf("%s:%s", b.Host, b.Port)
}

// ValidateConfigPath Make sure the path is a readable file, not a directory
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a normal file", path)
	}
	return nil
}

// ParseFlags Parse the command line and return the config path and debug mode
func ParseFlags() (string, bool, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (string, bool, error) {
	var configPath string
	var debugMode bool

	fs.StringVar(&configPath, "config", "", "path to the YAML config file")
	fs.BoolVar(&debugMode, "debug", false, "enable debug logging and gin debug mode")
	if err := fs.Parse(args); err != nil {
		return "", false, err
	}

	if configPath != "" {
		if err := ValidateConfigPath(configPath); err != nil {
			return "", false, err
		}
	}
	return configPath, debugMode, nil
}
