package calidoge

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/DOGE-network/cali-doge-sub006/pkg/errors"
	"github.com/DOGE-network/cali-doge-sub006/pkg/fuzzy"
	"github.com/DOGE-network/cali-doge-sub006/pkg/logging"
)

// Option is a function that configures an Engine instance
type Option func(*config) error

// config holds Engine configuration.
type config struct {
	logger         *zerolog.Logger
	collation      language.Tag
	rootName       string
	matchThreshold float64
	fuzzyOptions   *fuzzy.Options
}

// defaultConfig returns the Engine defaults.
func defaultConfig() *config {
	return &config{
		logger:         logging.Default(),
		collation:      language.AmericanEnglish,
		matchThreshold: 0.3,
	}
}

// WithLogger configures the logger diagnostics are mirrored to
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithCollation configures the language used for locale-aware child
// sorting in built trees
func WithCollation(tag language.Tag) Option {
	return func(c *config) error {
		c.collation = tag
		return nil
	}
}

// WithRootName configures the display name of a fabricated synthetic root
func WithRootName(name string) Option {
	return func(c *config) error {
		c.rootName = name
		return nil
	}
}

// WithMatchThreshold configures the minimum score for a plausible
// cross-dataset identification
func WithMatchThreshold(threshold float64) Option {
	return func(c *config) error {
		if threshold < 0 || threshold > 1 {
			return errors.NewValidationError("threshold", threshold, "must be in [0,1]")
		}
		c.matchThreshold = threshold
		return nil
	}
}

// WithFuzzyOptions configures the fuzzy engine used for weighted field
// scoring during resolution
func WithFuzzyOptions(opts *fuzzy.Options) Option {
	return func(c *config) error {
		if opts != nil {
			if err := opts.Validate(); err != nil {
				return err
			}
		}
		c.fuzzyOptions = opts
		return nil
	}
}
