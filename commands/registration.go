package commands

import (
	"errors"

	"github.com/goliatone/go-approval/internal/commands"
	approvalcmd "github.com/goliatone/go-approval/internal/commands/approvals"
	"github.com/goliatone/go-approval/internal/di"
	"github.com/goliatone/go-approval/pkg/interfaces"
)

// ErrCommandsFeatureDisabled is returned when Features.Commands is off.
var ErrCommandsFeatureDisabled = errors.New("commands: commands feature is disabled")

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the approval command handlers exposed by
// container and optionally registers them with registry and dispatcher.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}
	if !container.Config.Features.Commands {
		return &RegistrationResult{}, ErrCommandsFeatureDisabled
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	// Catalog commands.
	if service := container.StatusService(); service != nil {
		statusLogger := commands.CommandLogger(provider, "statuses")
		register(approvalcmd.NewCreateStatusHandler(service, statusLogger))
		register(approvalcmd.NewUpdateStatusHandler(service, statusLogger))
	}

	// Transition commands.
	if registry := container.Registry(); registry != nil {
		register(approvalcmd.NewMarkSubjectHandler(registry, commands.CommandLogger(provider, "workflow")))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured")
	}

	return result, errs
}
