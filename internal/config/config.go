// Package config loads lockersheet settings from flags, environment, and files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet"
)

// EnvPrefix prefixes every environment variable (e.g. LOCKERSHEET_ADDR).
const EnvPrefix = "LOCKERSHEET"

// Keys
const (
	KeyAddr        = "addr"
	KeyLogoPath    = "logo_path"
	KeyMaxUploadMB = "max_upload_mb"
	KeySheet       = "sheet"
	KeyVerbose     = "verbose"
)

// Config holds the runtime settings.
type Config struct {
	// Addr is the listen address of the HTTP form.
	Addr string `mapstructure:"addr"`
	// LogoPath is the optional branding image.
	LogoPath string `mapstructure:"logo_path"`
	// MaxUploadMB bounds the size of an uploaded workbook.
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
	// Sheet overrides the sheet to read; empty reads the first sheet.
	Sheet   string `mapstructure:"sheet"`
	Verbose bool   `mapstructure:"verbose"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyLogoPath, lockersheet.DefaultLogoPath)
	v.SetDefault(KeyMaxUploadMB, 20)
	v.SetDefault(KeySheet, "")
	v.SetDefault(KeyVerbose, false)
}

// Init prepares v: .env file, config file search paths, and environment binding.
// cfgFile, when set, replaces the search paths.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lockersheet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lockersheet"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr must not be empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Options returns the conversion options described by the settings.
func (c *Config) Options() lockersheet.Options {
	return lockersheet.Options{
		SheetName: c.Sheet,
		LogoPath:  c.LogoPath,
	}
}
