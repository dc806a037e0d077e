package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-approval/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if len(cfg.Catalog.Seed) != 7 {
		t.Fatalf("expected 7 seeded statuses, got %d", len(cfg.Catalog.Seed))
	}
	visible := 0
	for _, seed := range cfg.Catalog.Seed {
		if seed.Visible {
			visible++
			if seed.Name != "published" {
				t.Fatalf("only published should be visible, got %s", seed.Name)
			}
		}
	}
	if visible != 1 {
		t.Fatalf("expected exactly one visible seed, got %d", visible)
	}
}

func TestConfigValidate_RejectsUnknownDialect(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Dialect = "oracle"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDialectUnknown) {
		t.Fatalf("expected ErrStorageDialectUnknown, got %v", err)
	}
}

func TestConfigValidate_CacheRequiresBun(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Cache.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheRequiresBunStorage) {
		t.Fatalf("expected ErrCacheRequiresBunStorage, got %v", err)
	}
}

func TestConfigValidate_SeedNames(t *testing.T) {
	cases := []struct {
		name string
		seed []runtimeconfig.StatusSeed
		want error
	}{
		{name: "empty", seed: []runtimeconfig.StatusSeed{{Name: " "}}, want: runtimeconfig.ErrSeedNameRequired},
		{name: "invalid", seed: []runtimeconfig.StatusSeed{{Name: "In Review"}}, want: runtimeconfig.ErrSeedNameInvalid},
		{name: "duplicate", seed: []runtimeconfig.StatusSeed{{Name: "draft"}, {Name: "draft"}}, want: runtimeconfig.ErrSeedNameDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Catalog.Seed = tc.seed
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_WorkflowColumns(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Workflow.StatusColumn = "status; drop"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrWorkflowColumnInvalid) {
		t.Fatalf("expected ErrWorkflowColumnInvalid, got %v", err)
	}
}

func TestConfigValidate_ActivityChannel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Activity = true
	cfg.Activity.Enabled = true
	cfg.Activity.Channel = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrActivityChannelRequired) {
		t.Fatalf("expected ErrActivityChannelRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormatAndLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
