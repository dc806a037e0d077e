package commands

import (
	"strings"

	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/pkg/interfaces"
)

const commandModuleRoot = "approval.commands"

// CommandLogger returns the logger for one command group, named
// approval.commands.<module>. Catalog handlers use "statuses" and transition
// handlers use "workflow".
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "workflow"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
