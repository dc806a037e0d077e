package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/pkg/interfaces"
)

// moduleRoot prefixes every approval logger name. Focus entries and logger
// names given without it are qualified, so "workflow" and "approval.workflow"
// select the same logger.
const moduleRoot = "approval"

// Config holds the go-logger options exposed through runtime configuration.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger children named approval.<module>. Children
// are built once per name; every workflow registered for a subject type asks
// for the same approval.workflow logger.
type Provider struct {
	child func(name string) glog.Logger

	mu     sync.Mutex
	byName map[string]interfaces.Logger
}

// NewProvider builds a go-logger backed provider.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{glog.WithName(moduleRoot)}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := normalizeFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return newProvider(func(name string) glog.Logger {
		if name == moduleRoot {
			return root
		}
		return root.GetLogger(name)
	}), nil
}

func newProvider(child func(name string) glog.Logger) *Provider {
	return &Provider{child: child, byName: map[string]interfaces.Logger{}}
}

// GetLogger returns the logger for name, qualified under approval.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.child == nil {
		return logging.NoOp()
	}
	name = qualify(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	if logger, ok := p.byName[name]; ok {
		return logger
	}
	logger := wrap(p.child(name))
	p.byName[name] = logger
	return logger
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}

	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(maps.Clone(fields)))
	}

	args := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, k, fields[k])
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return wrap(with.With(args...))
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}

func qualify(name string) string {
	name = strings.Trim(strings.TrimSpace(name), ".")
	switch {
	case name == "", name == moduleRoot:
		return moduleRoot
	case strings.HasPrefix(name, moduleRoot+"."):
		return name
	default:
		return moduleRoot + "." + name
	}
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

func normalizeFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if q := qualify(name); !slices.Contains(out, q) {
			out = append(out, q)
		}
	}
	return out
}
