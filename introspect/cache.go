package introspect

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ConflictGroup records distinct concrete types whose simple schema
// names collide (compared case-insensitively). Conflicts never block an
// insert: every member stays in the cache under a disambiguated output
// name, and the group is surfaced for diagnostic reporting.
type ConflictGroup struct {
	// Name is the colliding simple name as first seen.
	Name string

	// Members are the cache entries sharing the name, in insertion order.
	Members []*NamedSchema
}

// schemaCache stores every NamedSchema resolved during one pass, keyed
// by concrete type. It is owned by a single Engine and is not safe for
// concurrent use; independent passes use independent engines.
type schemaCache struct {
	entries   map[reflect.Type]*NamedSchema
	nameTypes map[string]reflect.Type   // output name -> type that claimed it
	conflicts map[string]*ConflictGroup // folded simple name -> group
	simples   map[string][]*NamedSchema // folded simple name -> entries
	firstSeen map[string]string         // folded simple name -> name as first seen
	log       []logRecord               // insertion order, for span rollback
}

// logRecord remembers one insert so a failed resolution can undo it.
type logRecord struct {
	t      reflect.Type
	simple string
}

func newSchemaCache() *schemaCache {
	return &schemaCache{
		entries:   make(map[reflect.Type]*NamedSchema),
		nameTypes: make(map[string]reflect.Type),
		conflicts: make(map[string]*ConflictGroup),
		simples:   make(map[string][]*NamedSchema),
		firstSeen: make(map[string]string),
	}
}

// get returns the cache entry for a type, or nil. A non-nil entry with
// a nil Node is a placeholder for an object currently being resolved.
func (c *schemaCache) get(t reflect.Type) *NamedSchema {
	return c.entries[t]
}

// insert creates an entry for the type under the given simple name and
// returns it. The output name is disambiguated when another type has
// already claimed the simple name: first with a capitalized package
// prefix, then with a numeric suffix. Name collisions between distinct
// types are additionally recorded as a ConflictGroup.
func (c *schemaCache) insert(t reflect.Type, simple string) *NamedSchema {
	entry := &NamedSchema{Type: t}

	folded := strings.ToLower(simple)
	if _, ok := c.firstSeen[folded]; !ok {
		c.firstSeen[folded] = simple
	}
	if prior := c.simples[folded]; len(prior) > 0 {
		group, ok := c.conflicts[folded]
		if !ok {
			group = &ConflictGroup{Name: c.firstSeen[folded], Members: append([]*NamedSchema{}, prior...)}
			c.conflicts[folded] = group
		}
		group.Members = append(group.Members, entry)
	}
	c.simples[folded] = append(c.simples[folded], entry)

	entry.Name = c.uniqueName(t, simple)
	c.entries[t] = entry
	c.nameTypes[entry.Name] = t
	c.log = append(c.log, logRecord{t: t, simple: simple})
	return entry
}

// mark returns a position in the insertion log for a later rollback.
func (c *schemaCache) mark() int {
	return len(c.log)
}

// rollback removes every entry inserted at or after the mark, newest
// first. A failed object takes down everything resolved beneath it:
// entries completed during its resolution may hold a Ref to its
// placeholder, and a dangling Ref must not survive into Schemas.
func (c *schemaCache) rollback(mark int) {
	for len(c.log) > mark {
		rec := c.log[len(c.log)-1]
		c.remove(rec.t, rec.simple)
	}
}

// remove rolls back an entry whose resolution failed, so no partial
// schema survives in the cache.
func (c *schemaCache) remove(t reflect.Type, simple string) {
	for i := len(c.log) - 1; i >= 0; i-- {
		if c.log[i].t == t {
			c.log = append(c.log[:i], c.log[i+1:]...)
			break
		}
	}

	entry := c.entries[t]
	if entry == nil {
		return
	}
	delete(c.entries, t)
	delete(c.nameTypes, entry.Name)

	folded := strings.ToLower(simple)
	c.simples[folded] = deleteEntry(c.simples[folded], entry)
	if group, ok := c.conflicts[folded]; ok {
		group.Members = deleteEntry(group.Members, entry)
		if len(group.Members) < 2 {
			delete(c.conflicts, folded)
		}
	}
}

func deleteEntry(entries []*NamedSchema, target *NamedSchema) []*NamedSchema {
	for i, e := range entries {
		if e == target {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

// uniqueName picks an unclaimed output name based on the simple name.
func (c *schemaCache) uniqueName(t reflect.Type, simple string) string {
	name := simple
	if existing, ok := c.nameTypes[name]; ok && existing != t {
		name = pkgPrefix(t.PkgPath()) + simple
		if existing, ok := c.nameTypes[name]; ok && existing != t {
			base := name
			for i := 2; ; i++ {
				candidate := base + strconv.Itoa(i)
				if _, ok := c.nameTypes[candidate]; !ok {
					name = candidate
					break
				}
			}
		}
	}
	return name
}

// all returns every complete entry sorted by output name.
func (c *schemaCache) all() []*NamedSchema {
	entries := make([]*NamedSchema, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Node != nil {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// conflictGroups returns recorded conflicts sorted by name.
func (c *schemaCache) conflictGroups() []ConflictGroup {
	groups := make([]ConflictGroup, 0, len(c.conflicts))
	for _, g := range c.conflicts {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// pkgPrefix extracts the last segment of a package path and capitalizes
// it for use as a schema name prefix (e.g., "net/http" -> "Http").
func pkgPrefix(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		pkgPath = pkgPath[idx+1:]
	}
	if len(pkgPath) == 0 {
		return ""
	}
	pkgPath = strings.ReplaceAll(pkgPath, "-", "_")
	pkgPath = strings.ReplaceAll(pkgPath, ".", "_")
	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}
