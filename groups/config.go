// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package groups

type Config struct {
	blankWhitespace bool
	skipMalformed   bool
}

type Option func(c *Config) error

// WithBlankWhitespace treats a line holding only whitespace as blank.
// By default only a zero-length line separates groups.
func WithBlankWhitespace(flag bool) Option {
	return func(c *Config) error {
		c.blankWhitespace = flag
		return nil
	}
}

// WithSkipMalformed drops lines that are not integers instead of
// failing the split.
func WithSkipMalformed(flag bool) Option {
	return func(c *Config) error {
		c.skipMalformed = flag
		return nil
	}
}
