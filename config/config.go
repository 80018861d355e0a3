// config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port               string        `yaml:"port"`
	SessionKey         string        `yaml:"session_key"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	PasswordIterations int           `yaml:"password_iterations"` // 0 uses the pbkdf2 default
	RequestTimeoutStr  string        `yaml:"request_timeout"`
	RequestTimeout     time.Duration `yaml:"-"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql, postgres or sqlite
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"` // postgres only
	Path     string `yaml:"path"`    // sqlite only
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type HTTPClientConfig struct {
	TimeoutStr string        `yaml:"timeout"`
	Retries    int           `yaml:"retries"`
	Timeout    time.Duration `yaml:"-"`
}

type CheckWXConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type SDMXConfig struct {
	BaseURL  string `yaml:"base_url"`
	Dataflow string `yaml:"dataflow"`
}

type AmadeusConfig struct {
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	MaxOffers    int    `yaml:"max_offers"`
}

type CountriesConfig struct {
	URL         string        `yaml:"url"`
	CacheTTLStr string        `yaml:"cache_ttl"`
	CacheTTL    time.Duration `yaml:"-"`
}

type PredictionConfig struct {
	ModelPath string `yaml:"model_path"`
}

// ReferenceConfig points reference tables at external CSV sources.
// Tables without an entry load from the embedded seed files.
type ReferenceConfig struct {
	Sources     map[string]string `yaml:"sources"` // table -> local path or http(s) URL
	DownloadDir string            `yaml:"download_dir"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	HTTPClient HTTPClientConfig `yaml:"http_client"`
	CheckWX    CheckWXConfig    `yaml:"checkwx"`
	SDMX       SDMXConfig       `yaml:"sdmx"`
	Amadeus    AmadeusConfig    `yaml:"amadeus"`
	Countries  CountriesConfig  `yaml:"countries"`
	Prediction PredictionConfig `yaml:"prediction"`
	Reference  ReferenceConfig  `yaml:"reference"`
}

// Default returns a configuration usable without any config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8080",
			SessionKey:        "change-me-session-key-32-bytes!!",
			RequestTimeoutStr: "60s",
		},
		Database: DatabaseConfig{
			Driver: "mysql",
			Host:   "localhost",
			Port:   "3306",
			User:   "flightops",
			DBName: "flightops",
			Path:   "flightops.db",
		},
		Log: LogConfig{Level: "info", MaxSizeMB: 64, MaxBackups: 3},
		HTTPClient: HTTPClientConfig{
			TimeoutStr: "15s",
			Retries:    1,
		},
		CheckWX: CheckWXConfig{BaseURL: "https://api.checkwx.com"},
		SDMX: SDMXConfig{
			BaseURL:  "https://sdmx.oecd.org/public/rest/data",
			Dataflow: "OECD.SDD.NAD.SEEA,DSD_AIR_TRANSPORT@DF_AIR_TRANSPORT,1.0",
		},
		Amadeus: AmadeusConfig{
			BaseURL:   "https://test.api.amadeus.com",
			TokenURL:  "https://test.api.amadeus.com/v1/security/oauth2/token",
			MaxOffers: 10,
		},
		Countries: CountriesConfig{
			URL:         "https://restcountries.com/v3.1/all?fields=cca3,name",
			CacheTTLStr: "24h",
		},
		Prediction: PredictionConfig{ModelPath: "data/fuel_model.msgpack"},
		Reference:  ReferenceConfig{DownloadDir: "temp_data"},
	}
}

// Load reads .env files, then the YAML file at configPath (if any), then
// environment overrides. An empty configPath searches the usual locations.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		log.Printf("Loading configuration from: %s", configPath)
	}

	applyEnv(cfg)

	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets secrets and deploy knobs come from the environment.
func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.SessionKey, "SESSION_KEY")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.Host, "DATABASE_HOST")
	setString(&cfg.Database.User, "DATABASE_USERNAME")
	setString(&cfg.Database.Password, "DATABASE_PASSWORD")
	setString(&cfg.Database.DBName, "DATABASE_NAME")
	setString(&cfg.Database.Path, "DATABASE_PATH")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.CheckWX.APIKey, "CX_WEATHER_API_KEY")
	setString(&cfg.Amadeus.ClientID, "AMADEUS_CLIENT_ID")
	setString(&cfg.Amadeus.ClientSecret, "AMADEUS_CLIENT_SECRET")
	setString(&cfg.Prediction.ModelPath, "PREDICTION_MODEL_PATH")

	if v := os.Getenv("HTTP_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPClient.Retries = n
		}
	}
}

func (cfg *Config) parseDurations() error {
	var err error
	if cfg.Server.RequestTimeout, err = parseDuration(cfg.Server.RequestTimeoutStr, 60*time.Second); err != nil {
		return fmt.Errorf("failed to parse server.request_timeout: %w", err)
	}
	if cfg.HTTPClient.Timeout, err = parseDuration(cfg.HTTPClient.TimeoutStr, 15*time.Second); err != nil {
		return fmt.Errorf("failed to parse http_client.timeout: %w", err)
	}
	if cfg.Countries.CacheTTL, err = parseDuration(cfg.Countries.CacheTTLStr, 24*time.Hour); err != nil {
		return fmt.Errorf("failed to parse countries.cache_ttl: %w", err)
	}
	return nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// Validate rejects configurations the application cannot start with.
func (cfg *Config) Validate() error {
	switch cfg.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if len(cfg.Server.SessionKey) < 32 {
		return fmt.Errorf("session key must be at least 32 bytes")
	}
	if cfg.HTTPClient.Retries < 0 {
		return fmt.Errorf("http_client.retries must not be negative")
	}
	return nil
}
