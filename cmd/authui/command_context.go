package main

import (
	"sync"

	"github.com/chorus-tre/authui/internal/logging"
	"github.com/spf13/cobra"
)

// commandExecutionContext describes the command being run, for the fatal
// error path in main.
type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	commandContextMu sync.RWMutex
	commandContext   = defaultCommandExecutionContext()
)

// structuredLogCommands are long-running commands whose errors are emitted as
// structured log records rather than plain text.
var structuredLogCommands = map[string]struct{}{
	"serve": {},
}

func defaultCommandExecutionContext() commandExecutionContext {
	return commandExecutionContext{CommandPath: logging.AppName}
}

func setCommandExecutionContext(ctx commandExecutionContext) {
	commandContextMu.Lock()
	defer commandContextMu.Unlock()
	commandContext = ctx
}

func currentCommandExecutionContext() commandExecutionContext {
	commandContextMu.RLock()
	defer commandContextMu.RUnlock()
	return commandContext
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(defaultCommandExecutionContext())
}

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	_, ok := structuredLogCommands[cmd.Name()]
	return ok
}

func recordCommandExecutionContext(cmd *cobra.Command, _ []string) {
	setCommandExecutionContext(commandExecutionContext{
		CommandPath:       cmd.CommandPath(),
		UsesStructuredLog: commandUsesStructuredLogging(cmd),
	})
}
