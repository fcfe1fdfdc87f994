package runner

import "log/slog"

// Config holds runtime settings for a reporting run.
// Settings from multiple sources are merged with MergeConfigs (last
// wins); CLI flags always override code config.
type Config struct {
	// FeatureDirectories are the directories searched recursively for
	// .feature files. Defaults to the working directory.
	FeatureDirectories []string

	// TagExpression restricts the run to matching pickles,
	// e.g. "@smoke and not @wip". Empty means no filtering.
	TagExpression string

	// Logger sets a custom logger. If nil, the default slog logger is
	// used.
	Logger Logger
}

// MergeConfigs combines multiple configs into one.
// Later configs override earlier ones (last wins).
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if len(cfg.FeatureDirectories) > 0 {
			result.FeatureDirectories = cfg.FeatureDirectories
		}
		if cfg.TagExpression != "" {
			result.TagExpression = cfg.TagExpression
		}
		if cfg.Logger != nil {
			result.Logger = cfg.Logger
		}
	}

	return result
}

// Logger is the interface for structured logging during a run.
// Compatible with *slog.Logger and other structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

func defaultLogger() Logger {
	return slog.Default()
}

// NoopLogger discards all log messages.
type NoopLogger struct{}

func (NoopLogger) Debug(msg string, args ...any) {}
func (NoopLogger) Info(msg string, args ...any)  {}
func (NoopLogger) Warn(msg string, args ...any)  {}
func (NoopLogger) Error(msg string, args ...any) {}
