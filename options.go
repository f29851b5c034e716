package simtex

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	logger            zerolog.Logger
	listings          string
	copyAssets        bool
	normalizeLanguage bool
	now               func() time.Time
}

// WithLogger sets the logger for conversion events. The default discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = log
	}
}

// WithAssetLoader sets a custom asset loader for the listings style and the
// preamble template.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.loader = loader
	}
}

// WithListings selects the listings style: a style name resolved by the
// asset loader, or a path to a .tex file. Overrides Document.Listings.
func WithListings(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.listings = nameOrPath
	}
}

// WithAssetCopy enables copying referenced images into the output folder.
func WithAssetCopy(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.copyAssets = enabled
	}
}

// WithLanguageNormalization resolves code fence language tags to their
// canonical lexer names (py becomes Python).
func WithLanguageNormalization(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.normalizeLanguage = enabled
	}
}

// WithNow sets the clock used to resolve "auto" dates.
// Panics if now is nil (programmer error).
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("simtex: WithNow clock must not be nil")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}
