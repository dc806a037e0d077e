package approval

import "github.com/goliatone/go-approval/internal/runtimeconfig"

var (
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrCacheRequiresBunStorage = runtimeconfig.ErrCacheRequiresBunStorage
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrSeedNameRequired        = runtimeconfig.ErrSeedNameRequired
	ErrSeedNameInvalid         = runtimeconfig.ErrSeedNameInvalid
	ErrSeedNameDuplicate       = runtimeconfig.ErrSeedNameDuplicate
	ErrWorkflowColumnInvalid   = runtimeconfig.ErrWorkflowColumnInvalid
	ErrActivityChannelRequired = runtimeconfig.ErrActivityChannelRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	CatalogConfig  = runtimeconfig.CatalogConfig
	StatusSeed     = runtimeconfig.StatusSeed
	WorkflowConfig = runtimeconfig.WorkflowConfig
	ActivityConfig = runtimeconfig.ActivityConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
