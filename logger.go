package welstory

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger is the minimal structured logging interface accepted by the client.
// Key/value pairs follow the message, alternating key then value.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// SimpleLogger is a console Logger writing level-prefixed lines to stderr.
type SimpleLogger struct {
	logger *log.Logger
}

// NewSimpleLogger creates a SimpleLogger.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{
		logger: log.New(os.Stderr, "[welstory] ", log.LstdFlags),
	}
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.print("DEBUG", msg, keysAndValues...)
}

func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.print("INFO", msg, keysAndValues...)
}

func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.print("WARN", msg, keysAndValues...)
}

func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.print("ERROR", msg, keysAndValues...)
}

func (l *SimpleLogger) print(level, msg string, keysAndValues ...interface{}) {
	if len(keysAndValues) == 0 {
		l.logger.Printf("%s %s", level, msg)
		return
	}
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v", keysAndValues[i])
		}
	}
	l.logger.Printf("%s %s %s", level, msg, b.String())
}

// DebugConfig controls which client events are logged when a Logger is set.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogResponses bool
	LogTransport bool
}

// DefaultDebugConfig returns a DebugConfig with all event classes enabled.
// Logging still requires DebugConfig.Enabled and a configured Logger.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogResponses: true,
		LogTransport: true,
	}
}
