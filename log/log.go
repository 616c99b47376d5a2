// Package log defines the logger engine.
// The logger can derive a child logger from the parent one,
// and each logger keeps its own color style for the message outputs.
//
// Create a child logger for every package that the facade calls.
package log

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/gamut"
)

const (
	WithTimestamp    = true
	WithoutTimestamp = false
)

// Logger is the wrapper over the logger and keeps the style.
// The style is generated randomly.
type Logger struct {
	logger log.Logger
	style  Style
}

// Style defines the colors of the prefix and the separator.
type Style struct {
	prefix    lipgloss.Style
	separator lipgloss.Style
}

func randomStyle() (Style, error) {
	rawPalette, err := gamut.Generate(2, gamut.PastelGenerator{})
	if err != nil {
		return Style{}, fmt.Errorf("gamut.Generate: %w", err)
	}
	palette := make([]lipgloss.Color, len(rawPalette))
	for i, raw := range rawPalette {
		lighter := gamut.Lighter(raw, 0.05)
		palette[i] = lipgloss.Color(gamut.ToHex(lighter))
	}

	// transparent background
	background := lipgloss.Color("49m")

	return Style{
		prefix: lipgloss.NewStyle().
			Bold(true).
			Faint(true).
			Background(background).
			Foreground(palette[0]),
		separator: lipgloss.NewStyle().
			Faint(true).
			Background(background).
			Foreground(palette[1]),
	}, nil
}

// the charm logger keeps the styles globally
func (style Style) apply() {
	log.PrefixStyle = style.prefix
	log.SeparatorStyle = style.separator
}

// New logger with the prefix and optional timestamp.
func New(prefix string, timestamp bool) (*Logger, error) {
	style, err := randomStyle()
	if err != nil {
		return nil, fmt.Errorf("randomStyle: %w", err)
	}

	logger := log.New()
	logger.SetPrefix(prefix)
	logger.SetReportCaller(false)
	logger.SetReportTimestamp(timestamp)

	return &Logger{
		logger: logger,
		style:  style,
	}, nil
}

// Fatal prints the message with the default logger, then calls os.Exit(1)
func Fatal(title string, kv ...interface{}) {
	log.Fatal(title, kv...)
}

func (logger *Logger) Prefix() string {
	return logger.logger.GetPrefix()
}

func (logger *Logger) Debug(title string, kv ...interface{}) {
	logger.style.apply()
	logger.logger.Debug(title, kv...)
}

// Info prints the information
func (logger *Logger) Info(title string, kv ...interface{}) {
	logger.style.apply()
	logger.logger.Info(title, kv...)
}

// Warn prints the warning message
func (logger *Logger) Warn(title string, kv ...interface{}) {
	logger.style.apply()
	logger.logger.Warn(title, kv...)
}

// Error prints the error message
func (logger *Logger) Error(title string, kv ...interface{}) {
	logger.style.apply()
	logger.logger.Error(title, kv...)
}

// Fatal prints the error message and then calls os.Exit(1)
func (logger *Logger) Fatal(title string, kv ...interface{}) {
	logger.style.apply()
	logger.logger.Fatal(title, kv...)
}

// Child logger from the parent. It shares the parent's color style.
//
// For example:
//
//	parent, _ := log.New("main", false)
//	node := parent.Child("client", "url", "http://127.0.0.1:7545")
//	contract := parent.Child("contract")
//
//	parent.Info("starting")
//	node.Info("connected", "chain_id", 1337)
//	contract.Info("bound")
//
//	// INFO main: starting
//	// INFO main/client: connected url=http://127.0.0.1:7545 chain_id=1337
//	// INFO main/contract: bound
func (logger *Logger) Child(prefix string, kv ...interface{}) *Logger {
	child := logger.logger.With(kv...)
	child.SetPrefix(logger.logger.GetPrefix() + "/" + prefix)

	return &Logger{
		logger: child,
		style:  logger.style,
	}
}
