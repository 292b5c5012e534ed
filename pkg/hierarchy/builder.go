package hierarchy

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/fuzzy"
	"github.com/DOGE-network/cali-doge-sub006/pkg/lookup"
	"github.com/DOGE-network/cali-doge-sub006/pkg/normalize"
)

// defaultRootName names the fabricated root when no level-0 record
// exists in the snapshot.
const defaultRootName = "California State Government"

type builder struct {
	collector *diagnostics.Collector
	collation language.Tag
	rootName  string

	tree    *Tree
	indexOf map[*departments.Department]int
	lookup  *lookup.Context
}

// Build reconstructs the hierarchy from a flat snapshot. Every record
// ends up either attached under its resolved parent or listed in the
// report's unattached set; nothing is ever guessed. Building twice from
// the same input yields structurally identical trees.
func Build(records []departments.Department, opts ...Option) (*Tree, *Report, error) {
	b := &builder{
		collation: language.AmericanEnglish,
		rootName:  defaultRootName,
	}
	for _, opt := range opts {
		opt(b)
	}

	report := &Report{}

	b.tree = &Tree{collator: collate.New(b.collation, collate.IgnoreCase)}

	// The unique level-0 record becomes the root. With none present a
	// synthetic placeholder is fabricated; extra level-0 records are a
	// data-quality condition and end up unattached.
	root, rest, duplicateRoots := splitRoot(records)
	if root == nil {
		b.collector.Recordf(diagnostics.KindSyntheticRoot, b.rootName,
			"no level-0 record in snapshot")
		root = &departments.Department{Name: b.rootName, OrgLevel: 0}
		report.SyntheticRoot = true
	}
	rootNode := b.addNode(*root)
	rootNode.Synthetic = report.SyntheticRoot

	for _, dup := range duplicateRoots {
		b.collector.Recordf(diagnostics.KindDuplicateRoot, dup.Name,
			"level-0 already taken by %q", root.Name)
		report.Unattached = append(report.Unattached, Unattached{
			Department: dup,
			Reason:     "duplicate level-0 record",
		})
	}

	// Arena nodes for every remaining record, in input order.
	nodes := make([]*Node, 0, len(rest))
	for _, record := range rest {
		nodes = append(nodes, b.addNode(record))
	}

	// Alias index over all records plus the root.
	indexed := make([]*departments.Department, 0, len(b.tree.nodes))
	for _, n := range b.tree.nodes {
		indexed = append(indexed, &n.Department)
	}
	b.lookup = lookup.New(indexed, b.collector)

	// Group by org level and process levels in ascending order.
	byLevel := make(map[int][]*Node)
	var levels []int
	for _, n := range nodes {
		level := n.Department.OrgLevel
		if _, seen := byLevel[level]; !seen {
			levels = append(levels, level)
		}
		byLevel[level] = append(byLevel[level], n)
	}
	sort.Ints(levels)

	for _, level := range levels {
		for _, n := range byLevel[level] {
			if reason, ok := b.place(n, level, byLevel); !ok {
				report.Unattached = append(report.Unattached, Unattached{
					Department: n.Department,
					Reason:     reason,
				})
			}
		}
	}

	// A parent reference can resolve by exact name to a record that itself
	// never attached. Children linked under such an orphan are unreachable
	// from the root, so a final sweep reports them instead of losing them.
	for _, n := range b.tree.nodes[1:] {
		if n.parent == noParent || b.reachesRoot(n) {
			continue
		}
		b.collector.Recordf(diagnostics.KindUnattached, n.Department.Name,
			"parent %q never attached to the tree", n.Department.ParentName)
		report.Unattached = append(report.Unattached, Unattached{
			Department: n.Department,
			Reason:     "parent is unattached",
		})
	}

	b.sortChildren(rootNode)

	return b.tree, report, nil
}

// reachesRoot reports whether walking parent links from n terminates at
// the root. Parent chains are acyclic (safeAttach guards every link), so
// the walk always terminates.
func (b *builder) reachesRoot(n *Node) bool {
	walk := n
	for walk.parent != noParent {
		walk = b.tree.nodes[walk.parent]
	}
	return walk.index == 0
}

// addNode appends a node to the arena.
func (b *builder) addNode(record departments.Department) *Node {
	n := &Node{
		Department: record,
		tree:       b.tree,
		index:      len(b.tree.nodes),
		parent:     noParent,
	}
	b.tree.nodes = append(b.tree.nodes, n)
	if b.indexOf == nil {
		b.indexOf = make(map[*departments.Department]int)
	}
	b.indexOf[&n.Department] = n.index
	return n
}

// place resolves one record's parent and attaches it. The returned
// reason is meaningful only when ok is false.
func (b *builder) place(n *Node, level int, byLevel map[int][]*Node) (string, bool) {
	parentName := strings.TrimSpace(n.Department.ParentName)
	name := n.Department.Name

	// Records with no parent reference attach under the root at level 1
	// only. Deeper levels are ambiguous — an intermediate level could be
	// missing — so they are never guessed.
	if parentName == "" {
		if level == 1 {
			b.attach(b.tree.Root(), n)
			return "", true
		}
		b.collector.Recordf(diagnostics.KindUnattached, name,
			"no parent reference at level %d", level)
		return "no parent reference", false
	}

	// Self-reference guard.
	if equalFold(parentName, name) || equalFold(parentName, n.Department.Canonical()) {
		b.collector.Recordf(diagnostics.KindSelfParent, name,
			"parent reference %q names the record itself", parentName)
		return "self-referencing parent", false
	}

	// Exact name lookup, then alias lookup on the normalized reference.
	if dept, ok := b.lookup.Resolve(parentName); ok {
		if parent := b.tree.nodes[b.indexOf[dept]]; b.safeAttach(parent, n, parentName) {
			return "", true
		}
		return "parent reference resolves into own subtree", false
	}

	// Fuzzy fallback, restricted to candidates one level up.
	if parent := b.fallbackSearch(parentName, level, byLevel); parent != nil {
		b.collector.Recordf(diagnostics.KindFuzzyResolution, name,
			"parent %q resolved to %q by containment", parentName, parent.Department.Name)
		if b.safeAttach(parent, n, parentName) {
			return "", true
		}
		return "parent reference resolves into own subtree", false
	}

	b.collector.Recordf(diagnostics.KindUnattached, name,
		"parent %q matched nothing", parentName)
	return "unresolvable parent reference", false
}

// fuzzyAttachThreshold is the minimum fuzzy score for a scored fallback
// resolution. Attaching a child is a strong claim, so the bar sits well
// above the cross-dataset resolution threshold.
const fuzzyAttachThreshold = 0.8

// fallbackSearch scans candidates at level−1 for a parent. Containment
// is tried first: a candidate matches when its normalized name or alias
// contains, or is contained by, the normalized parent reference. When no
// candidate contains the reference (e.g. a misspelling), the fuzzy
// engine scores each candidate and the best score above the attach
// threshold wins. Candidates are scanned in input order so the result is
// deterministic.
func (b *builder) fallbackSearch(parentName string, level int, byLevel map[int][]*Node) *Node {
	ref := normalize.Name(parentName)
	if ref == "" {
		return nil
	}

	var candidates []*Node
	if level == 1 {
		candidates = []*Node{b.tree.Root()}
	} else {
		candidates = byLevel[level-1]
	}

	for _, candidate := range candidates {
		if nameContains(normalize.Name(candidate.Department.Name), ref) {
			return candidate
		}
		for _, alias := range candidate.Department.Aliases {
			if nameContains(normalize.Name(alias), ref) {
				return candidate
			}
		}
	}

	var best *Node
	bestScore := 0.0
	for _, candidate := range candidates {
		score := fuzzy.Match(parentName, candidate.Department.Name, nil).Score
		for _, alias := range candidate.Department.Aliases {
			if s := fuzzy.Match(parentName, alias, nil).Score; s > score {
				score = s
			}
		}
		// Strictly-greater keeps the earliest candidate on ties.
		if score >= fuzzyAttachThreshold && score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// safeAttach attaches child under parent unless doing so would create a
// cycle (the resolved parent already sits inside the child's subtree).
func (b *builder) safeAttach(parent, child *Node, parentName string) bool {
	for walk := parent; walk != nil; walk = walk.Parent() {
		if walk == child {
			b.collector.Recordf(diagnostics.KindUnattached, child.Department.Name,
				"parent %q resolves into own subtree", parentName)
			return false
		}
	}
	b.attach(parent, child)
	return true
}

// attach links child under parent. Idempotent: re-attaching under the
// same parent is a no-op.
func (b *builder) attach(parent, child *Node) {
	if child.parent == parent.index {
		return
	}
	child.parent = parent.index
	parent.children = append(parent.children, child.index)
}

// sortChildren orders every node's children alphabetically by display
// name with a locale-aware comparison, recursively.
func (b *builder) sortChildren(n *Node) {
	sort.SliceStable(n.children, func(i, j int) bool {
		a := b.tree.nodes[n.children[i]].Department.Name
		z := b.tree.nodes[n.children[j]].Department.Name
		return b.tree.collator.CompareString(a, z) < 0
	})
	for _, idx := range n.children {
		b.sortChildren(b.tree.nodes[idx])
	}
}

// splitRoot separates the first level-0 record from the rest.
func splitRoot(records []departments.Department) (*departments.Department, []departments.Department, []departments.Department) {
	var root *departments.Department
	rest := make([]departments.Department, 0, len(records))
	var duplicates []departments.Department

	for _, record := range records {
		switch {
		case record.OrgLevel != 0:
			rest = append(rest, record)
		case root == nil:
			r := record
			root = &r
		default:
			duplicates = append(duplicates, record)
		}
	}
	return root, rest, duplicates
}

// nameContains reports mutual containment of two normalized names.
func nameContains(candidate, ref string) bool {
	if candidate == "" {
		return false
	}
	return strings.Contains(candidate, ref) || strings.Contains(ref, candidate)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
