package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"shelfmark/internal/domain"
)

const (
	DefaultDatabasePath = "~/.local/share/shelfmark/bookmarks.db"
	DefaultPollInterval = time.Second
)

// Config holds runtime settings shared by every shelfmark binary
type Config struct {
	DatabasePath     string
	DefaultParent    string
	HideEmptyFolders bool
	PollInterval     time.Duration
}

// Load reads settings from the environment, after loading a .env file from
// the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:  DatabasePath(),
		DefaultParent: domain.ToolbarID,
		PollInterval:  DefaultPollInterval,
	}

	switch os.Getenv("SHELFMARK_DEFAULT_PARENT") {
	case "menu":
		cfg.DefaultParent = domain.MenuID
	case "", "toolbar":
	default:
		cfg.DefaultParent = os.Getenv("SHELFMARK_DEFAULT_PARENT")
	}

	if v := os.Getenv("SHELFMARK_HIDE_EMPTY"); v != "" {
		hide, err := strconv.ParseBool(v)
		if err != nil {
			return nil, validation.Errors{"SHELFMARK_HIDE_EMPTY": err}
		}
		cfg.HideEmptyFolders = hide
	}

	if v := os.Getenv("SHELFMARK_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, validation.Errors{"SHELFMARK_POLL_INTERVAL": err}
		}
		cfg.PollInterval = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DatabasePath, validation.Required),
		validation.Field(&c.DefaultParent,
			validation.Required,
			validation.In(domain.MenuID, domain.ToolbarID).Error("must be menu or toolbar"),
		),
		validation.Field(&c.PollInterval, validation.Min(100*time.Millisecond)),
	)
}

// DatabasePath returns the database path from SHELFMARK_DB env var,
// falling back to DefaultDatabasePath.
func DatabasePath() string {
	if env := os.Getenv("SHELFMARK_DB"); env != "" {
		return env
	}
	return DefaultDatabasePath
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
