package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"marketfetch/internal/provider"
	"marketfetch/internal/provider/ratelimit"
)

type AlphaVantage struct {
	APIKey   string `json:"api_key" yaml:"api_key"`
	Endpoint string `json:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
}

type Yahoo struct {
	Endpoint string `json:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
}

type RateLimit struct {
	CallThreshold int `json:"call_threshold" yaml:"call_threshold" validate:"gte=0"`
	PauseSec      int `json:"pause_sec" yaml:"pause_sec" validate:"gte=0"`
}

type Server struct {
	Port              string `json:"port" yaml:"port" validate:"required,numeric"`
	RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec" validate:"gt=0"`
}

// Database is optional: an empty URL disables storing.
type Database struct {
	URL   string `json:"url" yaml:"url"`
	Table string `json:"table" yaml:"table" validate:"required_with=URL"`
}

type Log struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=json console"`
}

type Config struct {
	Provider     string       `json:"provider" yaml:"provider" validate:"required"`
	AlphaVantage AlphaVantage `json:"alphavantage" yaml:"alphavantage"`
	Yahoo        Yahoo        `json:"yahoo" yaml:"yahoo"`
	RateLimit    RateLimit    `json:"rate_limit" yaml:"rate_limit"`
	Server       Server       `json:"server" yaml:"server"`
	Database     Database     `json:"database" yaml:"database"`
	Log          Log          `json:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Provider: string(provider.AlphaVantage),
		RateLimit: RateLimit{
			CallThreshold: ratelimit.DefaultLimit,
			PauseSec:      int(ratelimit.DefaultPause.Seconds()),
		},
		Server:   Server{Port: "8080", RequestTimeoutSec: 10},
		Database: Database{Table: "stock_data"},
		Log:      Log{Level: "info", Format: "json"},
	}
}

// DotEnvFile is loaded into the environment before overrides are applied.
// Variables already set win over the file.
var DotEnvFile = ".env"

var defaultFiles = []string{"config.json", "config.yaml", "config.yml"}

// Load reads a JSON or YAML config from path (chosen by extension). If path is
// empty, the first existing default file is used; if none exists, defaults.
// A .env file and then environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", DotEnvFile, err)
	}
	if path == "" {
		for _, f := range defaultFiles {
			if _, err := os.Stat(f); err == nil {
				path = f
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PROVIDER"); v != "" { cfg.Provider = v }
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" { cfg.AlphaVantage.APIKey = v }
	if v := os.Getenv("ALPHA_VANTAGE_ENDPOINT"); v != "" { cfg.AlphaVantage.Endpoint = v }
	if v := os.Getenv("YAHOO_ENDPOINT"); v != "" { cfg.Yahoo.Endpoint = v }
	if x, ok := envInt("RATE_LIMIT_CALLS"); ok && x >= 0 { cfg.RateLimit.CallThreshold = x }
	if x, ok := envInt("RATE_LIMIT_PAUSE_SEC"); ok && x >= 0 { cfg.RateLimit.PauseSec = x }
	if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
	if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 { cfg.Server.RequestTimeoutSec = x }
	if v := os.Getenv("DATABASE_URL"); v != "" { cfg.Database.URL = v }
	if v := os.Getenv("DATABASE_TABLE"); v != "" { cfg.Database.Table = v }
	if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = strings.ToLower(v) }
	if v := os.Getenv("LOG_FORMAT"); v != "" { cfg.Log.Format = strings.ToLower(v) }
}

// envInt reads key as a decimal integer. ok is false when key is unset or
// malformed, so the caller keeps its current value.
func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	x, err := strconv.Atoi(v)
	return x, err == nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that the provider is supported and
// has the credential it needs.
func (c Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	if c.Provider != "" {
		id, err := provider.Parse(c.Provider)
		if err != nil {
			errs = append(errs, err)
		} else if id.RequiresCredential() && c.Credential() == "" {
			errs = append(errs, fmt.Errorf("%s: %w (set ALPHA_VANTAGE_API_KEY)", id.DisplayName(), provider.ErrMissingCredential))
		}
	}
	return errors.Join(errs...)
}

// ProviderID parses the configured provider.
func (c Config) ProviderID() (provider.ID, error) { return provider.Parse(c.Provider) }

// Credential returns the key of the configured provider, empty for keyless ones.
func (c Config) Credential() string {
	id, err := provider.Parse(c.Provider)
	if err != nil {
		return ""
	}
	return c.CredentialFor(id)
}

// CredentialFor returns the configured key for id.
func (c Config) CredentialFor(id provider.ID) string {
	if id == provider.AlphaVantage {
		return strings.TrimSpace(c.AlphaVantage.APIKey)
	}
	return ""
}
