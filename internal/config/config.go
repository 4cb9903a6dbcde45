package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for fitfocus.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Store      StoreConfig      `toml:"store"`
	Advisor    AdvisorConfig    `toml:"advisor"`
	Encryption EncryptionConfig `toml:"encryption"`
	Log        LogConfig        `toml:"log"`
}

// StoreConfig selects where tracked data lives.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "file" (default), "memory", "sqlite", "postgres" or "s3"

	// DataDir is used by type=file and type=sqlite.
	DataDir string `toml:"data_dir,omitempty"`

	// Postgres-specific fields (only used when Type == "postgres")
	PostgresDSN string `toml:"postgres_dsn,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"`
}

// AdvisorConfig selects the AI backend.
type AdvisorConfig struct {
	Type           string `toml:"type"`                  // "gemini" (default), "openai" or "offline"
	Model          string `toml:"model,omitempty"`       // provider default when empty
	BaseURL        string `toml:"base_url,omitempty"`    // provider default when empty
	APIKeyEnv      string `toml:"api_key_env,omitempty"` // env var holding the key
	TimeoutSeconds int    `toml:"timeout_seconds"`       // per call; defaults to 30
	Language       string `toml:"language,omitempty"`    // reply language; defaults to English
	Cuisine        string `toml:"cuisine,omitempty"`     // dishes to suggest; defaults to Salvadoran
}

// EncryptionConfig holds paths to the age key pair used to encrypt stored data.
type EncryptionConfig struct {
	Enabled        bool   `toml:"enabled"`
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// LogConfig controls the run log.
type LogConfig struct {
	Format string `toml:"format"`          // "text" (default) or "zap"
	Level  string `toml:"level,omitempty"` // "debug", "info" (default), "warn" or "error"
	Stderr bool   `toml:"stderr"`          // also mirror log lines to stderr
}

// Defaults applied by NewConfig and filled in by WithDefaults.
const (
	DefaultStoreType      = "file"
	DefaultAdvisorType    = "gemini"
	DefaultTimeoutSeconds = 30
	DefaultLanguage       = "English"
	DefaultCuisine        = "Salvadoran"
	DefaultLogFormat      = "text"
	DefaultLogLevel       = "info"
)

// NewConfig creates a new Config rooted at baseDir with default backends and key paths.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Store: StoreConfig{
			Type:    DefaultStoreType,
			DataDir: filepath.Join(baseDir, "data"),
		},
		Advisor: AdvisorConfig{
			Type:           DefaultAdvisorType,
			TimeoutSeconds: DefaultTimeoutSeconds,
			Language:       DefaultLanguage,
			Cuisine:        DefaultCuisine,
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "fitfocus.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "fitfocus.key"),
		},
		Log: LogConfig{
			Format: DefaultLogFormat,
			Level:  DefaultLogLevel,
		},
	}
}

// WithDefaults returns a copy of cfg with empty fields filled from NewConfig(cfg.BaseDir).
// Hand-edited config files may leave out whole sections.
func (cfg Config) WithDefaults() *Config {
	d := NewConfig(cfg.BaseDir)

	if cfg.LogDir == "" {
		cfg.LogDir = d.LogDir
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = d.Store.Type
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = d.Store.DataDir
	}
	if cfg.Advisor.Type == "" {
		cfg.Advisor.Type = d.Advisor.Type
	}
	if cfg.Advisor.TimeoutSeconds <= 0 {
		cfg.Advisor.TimeoutSeconds = d.Advisor.TimeoutSeconds
	}
	if cfg.Advisor.Language == "" {
		cfg.Advisor.Language = d.Advisor.Language
	}
	if cfg.Advisor.Cuisine == "" {
		cfg.Advisor.Cuisine = d.Advisor.Cuisine
	}
	if cfg.Encryption.PublicKeyPath == "" {
		cfg.Encryption.PublicKeyPath = d.Encryption.PublicKeyPath
	}
	if cfg.Encryption.PrivateKeyPath == "" {
		cfg.Encryption.PrivateKeyPath = d.Encryption.PrivateKeyPath
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	return &cfg
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: the file may carry a postgres DSN with a password.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
