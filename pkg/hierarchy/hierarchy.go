// Package hierarchy reconstructs the organizational tree from a flat
// snapshot of entity records whose parent references are free-text names
// that may be misspelled or stale. Resolution falls back from exact name
// lookup to alias lookup to fuzzy containment against the level above;
// records that still resolve to nothing are reported as unattached, never
// guessed onto an arbitrary parent. A post-pass rolls distribution and
// scalar metric data up the finished tree.
package hierarchy

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
)

// noParent marks a node not attached under any parent.
const noParent = -1

// Node is one entity's place in the tree. Nodes live in the Tree's arena
// and reference each other by index, so the tree is built without shared
// mutable pointers and aggregation writes results beside, not into, the
// source records.
type Node struct {
	// Department is the record as supplied to Build. Aggregation never
	// mutates it, so it doubles as the node's pre-aggregation snapshot.
	Department departments.Department

	// Synthetic marks a fabricated placeholder root that was not present
	// in the input data.
	Synthetic bool

	// SubordinateCount is the number of descendants, computed by
	// Aggregate.
	SubordinateCount int

	// Aggregates holds subtree roll-ups, computed by Aggregate. Nil for
	// leaves and before aggregation runs.
	Aggregates *Aggregates

	tree     *Tree
	index    int
	parent   int
	children []int
}

// Aggregates holds the roll-ups of one node's full subtree, keyed by
// fiscal year. Scalars sum each direct child's effective value; the
// distribution sums every descendant's own buckets per identical range.
type Aggregates struct {
	Headcount     map[string]float64              `json:"headcount,omitempty" yaml:"headcount,omitempty"`
	Wages         map[string]float64              `json:"wages,omitempty" yaml:"wages,omitempty"`
	Distributions map[string][]departments.Bucket `json:"salary_distribution,omitempty" yaml:"salary_distribution,omitempty"`
}

// Parent returns the parent node, or nil for the root and for unattached
// nodes.
func (n *Node) Parent() *Node {
	if n.parent == noParent {
		return nil
	}
	return n.tree.nodes[n.parent]
}

// Children returns the child nodes in their sorted order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	for i, idx := range n.children {
		out[i] = n.tree.nodes[idx]
	}
	return out
}

// Original returns the node's own pre-aggregation record. The builder and
// aggregator never modify it, so the distinction between own data and
// aggregated data is always recoverable.
func (n *Node) Original() *departments.Department {
	return &n.Department
}

// EffectiveHeadcount returns the node's own headcount for the year when
// non-zero, otherwise the aggregated subtree sum. Never both.
func (n *Node) EffectiveHeadcount(year string) float64 {
	if v := n.Department.Headcount[year]; v != 0 {
		return v
	}
	if n.Aggregates != nil {
		return n.Aggregates.Headcount[year]
	}
	return 0
}

// EffectiveWages returns the node's own wages for the year when non-zero,
// otherwise the aggregated subtree sum.
func (n *Node) EffectiveWages(year string) float64 {
	if v := n.Department.Wages[year]; v != 0 {
		return v
	}
	if n.Aggregates != nil {
		return n.Aggregates.Wages[year]
	}
	return 0
}

// Tree is the reconstructed hierarchy. It owns its nodes exclusively:
// they are created fresh on each build and discarded with the tree.
// Reads are safe from multiple goroutines once Build and Aggregate have
// returned; mutation is not.
type Tree struct {
	nodes    []*Node
	collator *collate.Collator
}

// Root returns the tree root (org level 0).
func (t *Tree) Root() *Node {
	return t.nodes[0]
}

// Walk visits the attached tree in pre-order, children in sorted order.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	t.walk(t.Root(), 0, fn)
}

func (t *Tree) walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, idx := range n.children {
		t.walk(t.nodes[idx], depth+1, fn)
	}
}

// Size returns the number of nodes attached under (and including) the
// root.
func (t *Tree) Size() int {
	count := 0
	t.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Find returns the first attached node whose name or canonical name
// equals the given name case-insensitively, in walk order.
func (t *Tree) Find(name string) *Node {
	var found *Node
	t.Walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if equalFold(n.Department.Name, name) || equalFold(n.Department.Canonical(), name) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Unattached is one record that could not be placed in the tree, with
// the reason it was rejected.
type Unattached struct {
	Department departments.Department `json:"department" yaml:"department"`
	Reason     string                 `json:"reason" yaml:"reason"`
}

// Report carries the data-quality outcome of a build alongside the tree.
type Report struct {
	// Unattached lists records whose parent reference resolved to
	// nothing, in input order.
	Unattached []Unattached `json:"unattached,omitempty" yaml:"unattached,omitempty"`

	// SyntheticRoot is true when no level-0 record existed and a
	// placeholder root was fabricated.
	SyntheticRoot bool `json:"synthetic_root,omitempty" yaml:"synthetic_root,omitempty"`

	// Events are the diagnostics of a full run. Build leaves it empty;
	// the owner of the collector fills it once every pass that records
	// into the collector (build, aggregation) has finished.
	Events []diagnostics.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// Option configures a build.
type Option func(*builder)

// WithCollector sets the diagnostics collector build events are recorded
// into. Without one, events are still logged but not retained.
func WithCollector(c *diagnostics.Collector) Option {
	return func(b *builder) {
		b.collector = c
	}
}

// WithCollation sets the language used for the deterministic, locale-aware
// child sort. Defaults to American English.
func WithCollation(tag language.Tag) Option {
	return func(b *builder) {
		b.collation = tag
	}
}

// WithRootName sets the display name of a fabricated synthetic root.
func WithRootName(name string) Option {
	return func(b *builder) {
		if name != "" {
			b.rootName = name
		}
	}
}
