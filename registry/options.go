package registry

import (
	"io"
	"log/slog"
)

// Option configures a [Root] built by [New]. Mirrors the teacher's
// schema/load functional-options pattern.
type Option func(*config)

type config struct {
	path   string
	logger *slog.Logger
	parser Parser
}

func defaultConfig() *config {
	return &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// WithPath seeds the registry with every .n3 file found by recursively
// scanning path, in addition to the embedded standard library.
func WithPath(path string) Option {
	return func(c *config) { c.path = path }
}

// WithLogger provides a structured logger for registry diagnostics. If
// not provided, logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithParser provides the AST parser used to turn discovered .n3 source
// text into [ast.File] values, and is required by [New] and
// [Root.CompileFromSource]: parsing itself is outside this module's
// scope (spec's Non-goals), so the registry always depends on an
// injected implementation.
func WithParser(p Parser) Option {
	return func(c *config) { c.parser = p }
}
