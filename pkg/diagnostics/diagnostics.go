// Package diagnostics collects typed data-quality events emitted while
// reconciling organizational data. The engine never fails on messy input;
// instead it records an event here and continues. Callers receive the
// collector's contents alongside build results and decide how to surface
// them.
package diagnostics

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DOGE-network/cali-doge-sub006/pkg/logging"
)

// Kind classifies a data-quality event.
type Kind string

// Event kinds emitted by the engine.
const (
	// KindUnattached is a record whose parent reference matched nothing.
	KindUnattached Kind = "unattached"
	// KindDuplicateAlias is an alias registered by more than one entity.
	KindDuplicateAlias Kind = "duplicate-alias"
	// KindMalformedDistribution is a distribution bucket that could not be
	// interpreted (missing range, non-numeric count).
	KindMalformedDistribution Kind = "malformed-distribution"
	// KindSelfParent is a record naming itself as its own parent.
	KindSelfParent Kind = "self-parent"
	// KindFuzzyResolution is a parent reference resolved by fuzzy
	// containment rather than exact or alias lookup.
	KindFuzzyResolution Kind = "fuzzy-resolution"
	// KindSyntheticRoot records that no level-0 record existed and a
	// placeholder root was fabricated.
	KindSyntheticRoot Kind = "synthetic-root"
	// KindInvalidRecord is a record skipped at the input boundary.
	KindInvalidRecord Kind = "invalid-record"
	// KindDuplicateRoot is a second level-0 record; only the first becomes
	// the root.
	KindDuplicateRoot Kind = "duplicate-root"
)

// Event is one recorded data-quality observation.
type Event struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// String returns a human-readable form of the event.
func (e Event) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Name, e.Detail)
}

// level maps an event kind to its log level. Self-references are genuine
// data errors; everything else is a warning.
func (e Event) level() zerolog.Level {
	switch e.Kind {
	case KindSelfParent, KindDuplicateRoot:
		return zerolog.ErrorLevel
	case KindFuzzyResolution:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

// Collector accumulates events during a build. The zero value is not
// usable; construct with New. A nil *Collector is safe to record into
// (events are logged but not retained), so library code never needs a
// nil check.
type Collector struct {
	events []Event
	logger *zerolog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger events are mirrored to. Defaults to the
// package default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty Collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Record appends an event and mirrors it to the structured logger.
func (c *Collector) Record(e Event) {
	logger := logging.Default()
	if c != nil && c.logger != nil {
		logger = c.logger
	}
	logger.WithLevel(e.level()).
		Str("kind", string(e.Kind)).
		Str("name", e.Name).
		Str("detail", e.Detail).
		Msg("data quality event")

	if c != nil {
		c.events = append(c.events, e)
	}
}

// Recordf is shorthand for Record with a formatted detail string.
func (c *Collector) Recordf(kind Kind, name, format string, args ...any) {
	c.Record(Event{Kind: kind, Name: name, Detail: fmt.Sprintf(format, args...)})
}

// Events returns a copy of all recorded events in order.
func (c *Collector) Events() []Event {
	if c == nil {
		return nil
	}
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// ByKind returns the recorded events of one kind, in order.
func (c *Collector) ByKind(kind Kind) []Event {
	if c == nil {
		return nil
	}
	var out []Event
	for _, e := range c.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the total number of recorded events.
func (c *Collector) Count() int {
	if c == nil {
		return 0
	}
	return len(c.events)
}

// Reset clears all recorded events.
func (c *Collector) Reset() {
	if c != nil {
		c.events = c.events[:0]
	}
}
