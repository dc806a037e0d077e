package workflow

import (
	"time"

	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/pkg/activity"
	"github.com/goliatone/go-approval/pkg/interfaces"
	"github.com/google/uuid"
)

type settings struct {
	logger   interfaces.Logger
	now      func() time.Time
	newID    func() uuid.UUID
	activity *activity.Emitter
}

// Option configures a Workflow.
type Option func(*settings)

// WithLogger sets the workflow logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *settings) {
		s.logger = logging.OrNoOp(logger)
	}
}

// WithNow overrides the time source used for approval timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides approval ID generation.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *settings) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithActivityEmitter wires the emitter notified after each transition.
func WithActivityEmitter(emitter *activity.Emitter) Option {
	return func(s *settings) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

type markSettings struct {
	actor     *uuid.UUID
	expiresAt *time.Time
}

// MarkOption configures a single transition.
type MarkOption func(*markSettings)

// WithActor records who performed the transition.
func WithActor(actor uuid.UUID) MarkOption {
	return func(s *markSettings) {
		if actor != uuid.Nil {
			s.actor = &actor
		}
	}
}

// WithExpiry sets when the recorded approval lapses.
func WithExpiry(at time.Time) MarkOption {
	return func(s *markSettings) {
		if !at.IsZero() {
			expires := at.UTC()
			s.expiresAt = &expires
		}
	}
}
