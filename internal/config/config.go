package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageSQLite    = "sqlite"
	StorageFirestore = "firestore"

	VerifierStub = "stub"
	VerifierHMAC = "hmac"
)

// Config holds all configuration for the API server and the bot.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`
	// ClientURL is the web app origin allowed by CORS. Empty allows every origin.
	ClientURL string `mapstructure:"CLIENT_URL"`

	BotToken  string `mapstructure:"BOT_TOKEN"`
	WebAppURL string `mapstructure:"WEB_APP_URL"`

	StorageBackend                   string `mapstructure:"STORAGE_BACKEND"`
	DatabasePath                     string `mapstructure:"DATABASE_PATH"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	SheetID                string        `mapstructure:"SHEET_ID"`
	GSheetsCredentialsFile string        `mapstructure:"GSHEETS_CREDENTIALS_FILE"`
	SheetRange             string        `mapstructure:"SHEET_RANGE"`
	SheetTimeout           time.Duration `mapstructure:"SHEET_TIMEOUT"`

	AuthVerifier   string        `mapstructure:"AUTH_VERIFIER"`
	InitDataMaxAge time.Duration `mapstructure:"INIT_DATA_MAX_AGE"`
}

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"CLIENT_URL",
	"BOT_TOKEN",
	"WEB_APP_URL",
	"STORAGE_BACKEND",
	"DATABASE_PATH",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"SHEET_ID",
	"GSHEETS_CREDENTIALS_FILE",
	"SHEET_RANGE",
	"SHEET_TIMEOUT",
	"AUTH_VERIFIER",
	"INIT_DATA_MAX_AGE",
}

// LoadDotEnv loads a .env file from the working directory unless running in
// release mode. A missing file is not an error.
func LoadDotEnv(ginMode string) error {
	if strings.EqualFold(ginMode, "release") {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("WEB_APP_URL", "https://morachkovskiyapp.com")
	v.SetDefault("STORAGE_BACKEND", StorageSQLite)
	v.SetDefault("DATABASE_PATH", "mistermo.db")
	v.SetDefault("GSHEETS_CREDENTIALS_FILE", "gsheets.json")
	v.SetDefault("SHEET_RANGE", "A1")
	v.SetDefault("SHEET_TIMEOUT", 10*time.Second)
	v.SetDefault("AUTH_VERIFIER", VerifierStub)
	v.SetDefault("INIT_DATA_MAX_AGE", 24*time.Hour)

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and enumerated values.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if c.WebAppURL == "" {
		return errors.New("WEB_APP_URL must not be empty")
	}

	switch c.StorageBackend {
	case StorageSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite backend")
		}
	case StorageFirestore:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", c.StorageBackend, StorageSQLite, StorageFirestore)
	}

	switch c.AuthVerifier {
	case VerifierStub, VerifierHMAC:
	default:
		return fmt.Errorf("unknown AUTH_VERIFIER %q (want %q or %q)", c.AuthVerifier, VerifierStub, VerifierHMAC)
	}
	return nil
}

// IsRelease reports whether gin should run in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}

// SheetsEnabled reports whether the onboarding spreadsheet mirror has an id
// to write to. Credentials are checked when the client is built.
func (c *Config) SheetsEnabled() bool {
	return c.SheetID != "" && c.GSheetsCredentialsFile != ""
}
