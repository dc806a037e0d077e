package activity

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"time"
)

// ErrMissingVerb is returned when an event carries no verb.
var ErrMissingVerb = errors.New("activity: verb is required")

// Event describes something that happened to an approval subject.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives activity events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, event Event) error

func (f HookFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Hooks fans an event out to every hook. All hooks run; their errors are
// joined.
type Hooks []Hook

func (h Hooks) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, cloneEvent(event)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CaptureHook stores events in memory. Useful in tests.
type CaptureHook struct {
	Events []Event
}

func (c *CaptureHook) Notify(_ context.Context, event Event) error {
	c.Events = append(c.Events, cloneEvent(event))
	return nil
}

// Config controls an Emitter.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter stamps events with the configured channel and time before handing
// them to its hooks.
type Emitter struct {
	hooks Hooks
	cfg   Config
	now   func() time.Time
}

// NewEmitter builds an emitter. A nil hook list disables delivery.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg, now: time.Now}
}

// Enabled reports whether events will reach at least one hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit delivers event to the hooks. Disabled emitters drop events silently.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Verb) == "" {
		return ErrMissingVerb
	}
	if event.Channel == "" {
		event.Channel = e.cfg.Channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now().UTC()
	}
	return e.hooks.Notify(ctx, event)
}

func cloneEvent(event Event) Event {
	event.Recipients = slices.Clone(event.Recipients)
	event.Metadata = maps.Clone(event.Metadata)
	return event
}
