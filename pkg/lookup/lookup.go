// Package lookup builds the exact and alias indexes used for O(1) entity
// resolution before any fuzzy search runs. The Context is constructed
// explicitly by the caller once per build and passed into everything that
// needs it; there is no lazily-initialized global state.
package lookup

import (
	"strings"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/normalize"
)

// Context holds the lookup indexes over one snapshot of records. It is
// rebuilt fully on every hierarchy build and is read-only afterwards.
type Context struct {
	byName  map[string]*departments.Department
	byAlias map[string]*departments.Department
}

// New indexes the given records. Duplicate canonical names and duplicate
// aliases are a data-quality condition: the first registration wins and
// later ones are reported to the collector.
func New(records []*departments.Department, collector *diagnostics.Collector) *Context {
	ctx := &Context{
		byName:  make(map[string]*departments.Department, len(records)*2),
		byAlias: make(map[string]*departments.Department, len(records)*2),
	}

	for _, dept := range records {
		if dept == nil {
			continue
		}
		ctx.registerName(dept.Name, dept, collector)
		if dept.CanonicalName != "" && !strings.EqualFold(dept.CanonicalName, dept.Name) {
			ctx.registerName(dept.CanonicalName, dept, collector)
		}
		for _, alias := range dept.Aliases {
			ctx.registerAlias(alias, dept, collector)
		}
	}

	return ctx
}

// registerName indexes a display or canonical name for exact
// (case-insensitive) lookup.
func (c *Context) registerName(name string, dept *departments.Department, collector *diagnostics.Collector) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if existing, ok := c.byName[key]; ok {
		if existing != dept {
			collector.Recordf(diagnostics.KindDuplicateAlias, name,
				"name already registered by %q, keeping first", existing.Name)
		}
		return
	}
	c.byName[key] = dept
}

// registerAlias indexes a normalized alias.
func (c *Context) registerAlias(alias string, dept *departments.Department, collector *diagnostics.Collector) {
	key := normalize.Name(alias)
	if key == "" {
		return
	}
	if existing, ok := c.byAlias[key]; ok {
		if existing != dept {
			collector.Recordf(diagnostics.KindDuplicateAlias, alias,
				"alias already registered by %q, keeping first", existing.Name)
		}
		return
	}
	c.byAlias[key] = dept
}

// ByName returns the entity registered under the exact (case-insensitive)
// name, if any.
func (c *Context) ByName(name string) (*departments.Department, bool) {
	dept, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return dept, ok
}

// ByAlias returns the entity registered under the normalized alias, if
// any.
func (c *Context) ByAlias(name string) (*departments.Department, bool) {
	dept, ok := c.byAlias[normalize.Name(name)]
	return dept, ok
}

// Resolve tries exact name lookup first, then alias lookup on the
// normalized name.
func (c *Context) Resolve(name string) (*departments.Department, bool) {
	if dept, ok := c.ByName(name); ok {
		return dept, true
	}
	return c.ByAlias(name)
}

// Len returns the number of distinct name keys indexed.
func (c *Context) Len() int {
	return len(c.byName)
}
