package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/codevault/internal/common"
	"github.com/Veraticus/codevault/internal/model"
	"github.com/Veraticus/codevault/internal/storage"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = storage.BackendSQLite
	BackendFile   = storage.BackendFile
)

// Viper keys.
const (
	KeyStorageBackend     = "storage.backend"
	KeyStoragePath        = "storage.path"
	KeyDefaultCategories  = "categories.defaults"
	KeyLogLevel           = "logging.level"
	KeyLogFormat          = "logging.format"
	defaultSQLiteFilename = "vault.db"
	defaultFileFilename   = "vault.json"
)

// Config is the resolved runtime configuration.
type Config struct {
	Storage    StorageConfig
	Logging    LoggingConfig
	Categories []string
}

// StorageConfig selects and locates the snapshot store.
type StorageConfig struct {
	Backend string
	Path    string
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values for every key Load reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageBackend, BackendSQLite)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDefaultCategories, model.CopyDefaultCategories())
}

// DataDir returns the directory holding vault data when no path is set.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "codevault")
	}
	return ExpandPath("~/.local/share/codevault")
}

// DefaultPath returns the storage path used for backend when none is
// configured.
func DefaultPath(backend string) string {
	if backend == BackendFile {
		return filepath.Join(DataDir(), defaultFileFilename)
	}
	return filepath.Join(DataDir(), defaultSQLiteFilename)
}

// Load reads and validates configuration from v.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, fmt.Errorf("%w: viper instance is nil", common.ErrMissingConfig)
	}

	cfg := Config{
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Path:    ExpandPath(strings.TrimSpace(v.GetString(KeyStoragePath))),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	switch cfg.Storage.Backend {
	case "":
		cfg.Storage.Backend = BackendSQLite
	case BackendSQLite, BackendFile:
	default:
		return Config{}, fmt.Errorf("%w: storage backend %q (want %s or %s)",
			common.ErrInvalidConfig, cfg.Storage.Backend, BackendSQLite, BackendFile)
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultPath(cfg.Storage.Backend)
	}

	if _, err := common.ParseLevel(cfg.Logging.Level); err != nil {
		return Config{}, err
	}
	switch cfg.Logging.Format {
	case "", "console", "json":
	default:
		return Config{}, fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, cfg.Logging.Format)
	}

	categories, err := normalizeCategories(v.GetStringSlice(KeyDefaultCategories))
	if err != nil {
		return Config{}, err
	}
	cfg.Categories = categories

	return cfg, nil
}

func normalizeCategories(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return model.CopyDefaultCategories(), nil
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("%w: blank default category", common.ErrInvalidConfig)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: duplicate default category %q", common.ErrInvalidConfig, c)
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
