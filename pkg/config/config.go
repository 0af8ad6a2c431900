/*
Package config manages the TOML config for wordlook.

Values come from three layers, later ones winning: built-in defaults, the
config.toml file, and the environment (a .env file in the working directory
is loaded first) for the source credentials.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/bastiangx/wordlook/internal/utils"
)

// Environment variables overriding the [source] section
const (
	EnvSheetID = "WORDLOOK_SHEET_ID"
	EnvGID     = "WORDLOOK_SHEET_GID"
	EnvURL     = "WORDLOOK_SHEET_URL"
	EnvToken   = "WORDLOOK_TOKEN"
)

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Source SourceConfig `toml:"source"`
	CLI    CliConfig    `toml:"cli"`
}

// DictConfig holds snapshot cache options.
type DictConfig struct {
	CachePath   string `toml:"cache_path"`
	CacheFormat string `toml:"cache_format"`
	Persist     bool   `toml:"persist"`
}

// SourceConfig locates the remote spreadsheet.
type SourceConfig struct {
	SheetID        string `toml:"sheet_id"`
	GID            string `toml:"gid"`
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CliConfig holds interactive screen options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
	BufferRow    int `toml:"buffer_row"`
	ResultOffset int `toml:"result_offset"`
	MaxQueryLen  int `toml:"max_query_len"`
}

// Timeout returns the fetch timeout as a duration
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			CachePath:   "zasospika.json",
			CacheFormat: "",
			Persist:     true,
		},
		Source: SourceConfig{
			SheetID:        "1QSqIbmShJiUiJWNB0x8dQzGbb6W1dqEz_LBlP363e_E",
			GID:            "0",
			TimeoutSeconds: 30,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			BufferRow:    0,
			ResultOffset: 1,
			MaxQueryLen:  0,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
// Environment overrides are applied in every case.
func InitConfig(configPath string) (*Config, error) {
	config := loadOrCreate(configPath)
	ApplyEnv(config)
	return config, nil
}

func loadOrCreate(configPath string) *Config {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig()
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig()
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig()
	}
	return config
}

// ApplyEnv overrides the source section from the environment and a .env file
func ApplyEnv(config *Config) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debugf("Could not read .env: %v", err)
	}

	if val := os.Getenv(EnvSheetID); val != "" {
		config.Source.SheetID = val
	}
	if val := os.Getenv(EnvGID); val != "" {
		config.Source.GID = val
	}
	if val := os.Getenv(EnvURL); val != "" {
		config.Source.URL = val
	}
	if val := os.Getenv(EnvToken); val != "" {
		config.Source.Token = val
	}
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file: %v. Attempting partial recovery...", err)
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every value of the right type and defaults the rest
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tables, err := utils.ReadTOMLTables(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration: %v. Using all defaults.", err)
		return config, nil
	}

	extractDictConfig(tables["dict"], &config.Dict)
	extractSourceConfig(tables["source"], &config.Source)
	extractCliConfig(tables["cli"], &config.CLI)
	return config, nil
}

func extractDictConfig(data utils.TOMLTable, dict *DictConfig) {
	if val, ok := utils.Lookup[string](data, "cache_path"); ok {
		dict.CachePath = val
	}
	if val, ok := utils.Lookup[string](data, "cache_format"); ok {
		dict.CacheFormat = val
	}
	if val, ok := utils.Lookup[bool](data, "persist"); ok {
		dict.Persist = val
	}
}

func extractSourceConfig(data utils.TOMLTable, source *SourceConfig) {
	if val, ok := utils.Lookup[string](data, "sheet_id"); ok {
		source.SheetID = val
	}
	if val, ok := utils.Lookup[string](data, "gid"); ok {
		source.GID = val
	}
	if val, ok := utils.Lookup[string](data, "url"); ok {
		source.URL = val
	}
	if val, ok := utils.Lookup[string](data, "token"); ok {
		source.Token = val
	}
	if val, ok := utils.Lookup[int](data, "timeout_seconds"); ok {
		source.TimeoutSeconds = val
	}
}

func extractCliConfig(data utils.TOMLTable, cli *CliConfig) {
	if val, ok := utils.Lookup[int](data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.Lookup[int](data, "buffer_row"); ok {
		cli.BufferRow = val
	}
	if val, ok := utils.Lookup[int](data, "result_offset"); ok {
		cli.ResultOffset = val
	}
	if val, ok := utils.Lookup[int](data, "max_query_len"); ok {
		cli.MaxQueryLen = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
