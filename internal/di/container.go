package di

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-approval/internal/approvals"
	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/internal/logging/console"
	"github.com/goliatone/go-approval/internal/logging/gologger"
	"github.com/goliatone/go-approval/internal/runtimeconfig"
	"github.com/goliatone/go-approval/internal/statuses"
	"github.com/goliatone/go-approval/internal/workflow"
	"github.com/goliatone/go-approval/pkg/activity"
	"github.com/goliatone/go-approval/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// ErrBunDBRequired is returned when bun storage is selected without a database.
var ErrBunDBRequired = errors.New("di: bun storage requires a *bun.DB")

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	loggerProvider interfaces.LoggerProvider
	cacheTTL       time.Duration
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	activityHooks  activity.Hooks
	now            func() time.Time

	statusRepo   statuses.StatusRepository
	approvalRepo approvals.ApprovalRepository

	statusSvc   statuses.Service
	approvalSvc approvals.Service
	emitter     *activity.Emitter
	registry    *workflow.Registry
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB sets the database used by bun storage and workflows.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service used by the catalog repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivityHooks registers hooks notified after each transition.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		for _, hook := range hooks {
			if hook != nil {
				c.activityHooks = append(c.activityHooks, hook)
			}
		}
	}
}

// WithStatusService overrides the default catalog service binding.
func WithStatusService(svc statuses.Service) Option {
	return func(c *Container) {
		c.statusSvc = svc
	}
}

// WithClock overrides the time source of every service.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		now:      time.Now,
		registry: workflow.NewRegistry(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "memory") {
		c.statusRepo = statuses.NewMemoryRepository()
		c.approvalRepo = approvals.NewMemoryRepository()
		return nil
	}
	if c.bunDB == nil {
		return ErrBunDBRequired
	}
	if c.Config.Cache.Enabled {
		c.statusRepo = statuses.NewBunStatusRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.statusRepo = statuses.NewBunStatusRepository(c.bunDB)
	}
	c.approvalRepo = approvals.NewBunApprovalRepository(c.bunDB)
	return nil
}

func (c *Container) configureServices() {
	if c.statusSvc == nil {
		c.statusSvc = statuses.NewService(c.statusRepo,
			statuses.WithNow(c.now),
			statuses.WithLogger(logging.StatusesLogger(c.loggerProvider)),
		)
	}
	c.approvalSvc = approvals.NewService(c.approvalRepo,
		approvals.WithNow(c.now),
		approvals.WithLogger(logging.LedgerLogger(c.loggerProvider)),
	)

	enabled := c.Config.Features.Activity && c.Config.Activity.Enabled
	c.emitter = activity.NewEmitter(c.activityHooks, activity.Config{
		Enabled: enabled,
		Channel: c.Config.Activity.Channel,
	})
}

// Bootstrap ensures the configured seed statuses exist.
func (c *Container) Bootstrap(ctx context.Context) error {
	seeds := make([]statuses.Seed, 0, len(c.Config.Catalog.Seed))
	for _, seed := range c.Config.Catalog.Seed {
		seeds = append(seeds, statuses.Seed{Name: seed.Name, Visible: seed.Visible})
	}
	_, err := c.statusSvc.EnsureStatuses(ctx, seeds)
	return err
}

// WorkflowOptions returns the options every workflow built from this
// container receives.
func (c *Container) WorkflowOptions() []workflow.Option {
	return []workflow.Option{
		workflow.WithNow(c.now),
		workflow.WithLogger(logging.WorkflowLogger(c.loggerProvider)),
		workflow.WithActivityEmitter(c.emitter),
	}
}

// DB returns the bun database, nil for memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// StatusRepository returns the catalog repository binding.
func (c *Container) StatusRepository() statuses.StatusRepository {
	return c.statusRepo
}

// ApprovalRepository returns the ledger repository binding.
func (c *Container) ApprovalRepository() approvals.ApprovalRepository {
	return c.approvalRepo
}

// StatusService returns the configured catalog service.
func (c *Container) StatusService() statuses.Service {
	return c.statusSvc
}

// ApprovalService returns the ledger service.
func (c *Container) ApprovalService() approvals.Service {
	return c.approvalSvc
}

// ActivityEmitter returns the emitter shared by every workflow.
func (c *Container) ActivityEmitter() *activity.Emitter {
	return c.emitter
}

// Registry returns the subject workflow registry.
func (c *Container) Registry() *workflow.Registry {
	return c.registry
}
