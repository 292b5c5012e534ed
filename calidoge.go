// Package calidoge reconciles flat, inconsistently-named California
// government organizational records into a single hierarchy and resolves
// noisy cross-dataset references onto canonical entities. It is the
// top-level entry point tying together snapshot loading, hierarchy
// building, aggregation, and cross-dataset match resolution.
package calidoge

import (
	"fmt"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/hierarchy"
	"github.com/DOGE-network/cali-doge-sub006/pkg/resolve"
)

// Engine builds organizational hierarchies from entity snapshots and
// resolves foreign records against them.
type Engine interface {
	// Build reconstructs the hierarchy from a snapshot of records and
	// runs the aggregation post-pass. The returned tree is owned by the
	// caller; diagnostics travel in the report.
	Build(records []departments.Department) (*hierarchy.Tree, *hierarchy.Report, error)

	// BuildFromSnapshot loads a YAML snapshot file and builds from it.
	BuildFromSnapshot(path string) (*hierarchy.Tree, *hierarchy.Report, error)

	// Resolve identifies the best match for target within a foreign
	// record. A nil result means no plausible identification.
	Resolve(target resolve.Target, record departments.ExternalRecord) (*resolve.Result, error)

	// Diagnostics returns the data-quality events recorded by the most
	// recent Build or BuildFromSnapshot call.
	Diagnostics() []diagnostics.Event
}

// engine is the internal implementation of the Engine interface.
type engine struct {
	config    *config
	collector *diagnostics.Collector
}

// New creates a new Engine with the given options.
func New(opts ...Option) (Engine, error) {
	e := &engine{
		config: defaultConfig(),
	}

	if err := e.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	e.collector = diagnostics.New(diagnostics.WithLogger(e.config.logger))
	return e, nil
}

// options applies configuration options in order.
func (e *engine) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e.config); err != nil {
			return err
		}
	}
	return nil
}

// Build reconstructs and aggregates the hierarchy from records.
func (e *engine) Build(records []departments.Department) (*hierarchy.Tree, *hierarchy.Report, error) {
	e.collector.Reset()

	tree, report, err := hierarchy.Build(records,
		hierarchy.WithCollector(e.collector),
		hierarchy.WithCollation(e.config.collation),
		hierarchy.WithRootName(e.config.rootName),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("building hierarchy: %w", err)
	}

	tree.Aggregate(e.collector)
	report.Events = e.collector.Events()
	return tree, report, nil
}

// BuildFromSnapshot loads a snapshot file and builds from it.
func (e *engine) BuildFromSnapshot(path string) (*hierarchy.Tree, *hierarchy.Report, error) {
	e.collector.Reset()

	records, err := departments.LoadSnapshot(path, e.collector)
	if err != nil {
		return nil, nil, err
	}

	tree, report, err := hierarchy.Build(records,
		hierarchy.WithCollector(e.collector),
		hierarchy.WithCollation(e.config.collation),
		hierarchy.WithRootName(e.config.rootName),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("building hierarchy: %w", err)
	}

	tree.Aggregate(e.collector)
	report.Events = e.collector.Events()
	return tree, report, nil
}

// Resolve identifies target within a foreign record.
func (e *engine) Resolve(target resolve.Target, record departments.ExternalRecord) (*resolve.Result, error) {
	return resolve.Match(target, record, &resolve.Options{
		Threshold: e.config.matchThreshold,
		Fuzzy:     e.config.fuzzyOptions,
	})
}

// Diagnostics returns events from the most recent build.
func (e *engine) Diagnostics() []diagnostics.Event {
	return e.collector.Events()
}
