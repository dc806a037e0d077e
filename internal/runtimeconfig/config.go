package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

var ErrStorageDialectUnknown = errors.New("approval config: storage dialect is invalid")
var ErrCacheRequiresBunStorage = errors.New("approval config: catalog cache requires bun storage")
var ErrCacheTTLInvalid = errors.New("approval config: cache ttl must be zero or positive")
var ErrSeedNameRequired = errors.New("approval config: seed status name is required")
var ErrSeedNameInvalid = errors.New("approval config: seed status name is invalid")
var ErrSeedNameDuplicate = errors.New("approval config: seed status name is duplicated")
var ErrWorkflowColumnInvalid = errors.New("approval config: workflow column name is invalid")
var ErrActivityChannelRequired = errors.New("approval config: activity channel is required when activity is enabled")
var ErrLoggingProviderRequired = errors.New("approval config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("approval config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("approval config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("approval config: logging format is invalid")

// Config aggregates the settings of the approval module.
type Config struct {
	Storage  StorageConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	Workflow WorkflowConfig
	Activity ActivityConfig
	Features Features
	Logging  LoggingConfig
}

// StorageConfig selects the persistence backend. Provider "memory" keeps the
// catalog and ledger in process; "bun" requires a *bun.DB and uses Dialect.
type StorageConfig struct {
	Provider string
	Dialect  string
}

// CacheConfig controls the go-repository-cache layer over the catalog.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// CatalogConfig lists the statuses ensured at bootstrap.
type CatalogConfig struct {
	Seed []StatusSeed
}

// StatusSeed describes one status created when missing.
type StatusSeed struct {
	Name    string
	Visible bool
}

// WorkflowConfig holds defaults applied to every subject workflow.
type WorkflowConfig struct {
	IDColumn     string
	StatusColumn string
}

// ActivityConfig controls emitted activity events.
type ActivityConfig struct {
	Enabled bool
	Channel string
}

// Features toggles optional module behaviour.
type Features struct {
	Logger   bool
	Activity bool
	Commands bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig seeds the classic approval statuses with only "published"
// visible in selection lists.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "bun",
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Catalog: CatalogConfig{
			Seed: []StatusSeed{
				{Name: "published", Visible: true},
				{Name: "draft"},
				{Name: "pending"},
				{Name: "declined"},
				{Name: "spam"},
				{Name: "edited"},
				{Name: "hidden"},
			},
		},
		Workflow: WorkflowConfig{
			IDColumn:     "id",
			StatusColumn: "approval_status_id",
		},
		Activity: ActivityConfig{
			Channel: "approval",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	provider := normalize(cfg.Storage.Provider)
	if provider != "" && provider != "bun" && provider != "memory" {
		return fmt.Errorf("%w: provider %s", ErrStorageDialectUnknown, provider)
	}
	if provider != "memory" {
		if dialect := normalize(cfg.Storage.Dialect); dialect != "" && !isSupportedDialect(dialect) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, dialect)
		}
	}
	if cfg.Cache.Enabled && provider == "memory" {
		return ErrCacheRequiresBunStorage
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	seen := make(map[string]struct{}, len(cfg.Catalog.Seed))
	for _, seed := range cfg.Catalog.Seed {
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			return ErrSeedNameRequired
		}
		if !slug.IsValid(name) {
			return fmt.Errorf("%w: %s", ErrSeedNameInvalid, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrSeedNameDuplicate, name)
		}
		seen[name] = struct{}{}
	}

	for _, column := range []string{cfg.Workflow.IDColumn, cfg.Workflow.StatusColumn} {
		if column != "" && !isIdentifier(column) {
			return fmt.Errorf("%w: %q", ErrWorkflowColumnInvalid, column)
		}
	}

	if cfg.Features.Activity && cfg.Activity.Enabled && strings.TrimSpace(cfg.Activity.Channel) == "" {
		return ErrActivityChannelRequired
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDialect(dialect string) bool {
	return slices.Contains([]string{"sqlite", "sqlite3", "postgres", "pg"}, dialect)
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return name != ""
}
