// Package catalog holds the static reference tables the checkup evaluators
// compare a save against: recipes, fish, shippable items, crops, museum
// pieces, monster categories, stardrops and Grandpa's evaluation flags.
//
// The tables are decoded once from embedded YAML and never mutated.
// Every accessor hands out copies, so a *Set is safe for unsynchronized
// concurrent reads.
package catalog

import (
	"fmt"
	"sort"
)

// Entry is a single catalog row.
type Entry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Catalog is an id-keyed table that remembers its declaration order.
type Catalog struct {
	label   string
	entries []Entry
	byID    map[string]string
	byName  map[string]string
}

// NewCatalog builds a Catalog from entries.
//
// Precondition: label names the table for error messages.
// Postcondition: Returns an error if any id or name is empty or duplicated.
func NewCatalog(label string, entries []Entry) (*Catalog, error) {
	c := &Catalog{
		label:   label,
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]string, len(entries)),
		byName:  make(map[string]string, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog %s: entry %d has an empty id", label, i)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("catalog %s: entry %q has an empty name", label, e.ID)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate id %q", label, e.ID)
		}
		if other, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("catalog %s: ids %q and %q share the name %q", label, other, e.ID, e.Name)
		}
		c.byID[e.ID] = e.Name
		c.byName[e.Name] = e.ID
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Label returns the table name.
func (c *Catalog) Label() string { return c.label }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Name returns the canonical name for id.
//
// Postcondition: ok is true iff id is in the catalog.
func (c *Catalog) Name(id string) (string, bool) {
	n, ok := c.byID[id]
	return n, ok
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IDByName returns the id whose canonical name equals name.
//
// Postcondition: ok is false when no entry carries that name.
func (c *Catalog) IDByName(name string) (string, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// NameList is an ordered, unindexed table of names.
type NameList struct {
	label string
	names []string
	set   map[string]struct{}
}

// NewNameList builds a NameList.
//
// Postcondition: Returns an error if a name is empty or duplicated.
func NewNameList(label string, names []string) (*NameList, error) {
	l := &NameList{
		label: label,
		names: make([]string, 0, len(names)),
		set:   make(map[string]struct{}, len(names)),
	}
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("catalog %s: entry %d is empty", label, i)
		}
		if _, dup := l.set[n]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate name %q", label, n)
		}
		l.set[n] = struct{}{}
		l.names = append(l.names, n)
	}
	return l, nil
}

// Label returns the table name.
func (l *NameList) Label() string { return l.label }

// Len returns the number of names.
func (l *NameList) Len() int { return len(l.names) }

// Contains reports whether name is listed.
func (l *NameList) Contains(name string) bool {
	_, ok := l.set[name]
	return ok
}

// Names returns a copy of the names in declaration order.
func (l *NameList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Aliases maps a spelling found in the save's known-recipe record to the
// canonical catalog spelling.
type Aliases struct {
	m map[string]string
}

// NewAliases copies m into an Aliases table.
func NewAliases(m map[string]string) Aliases {
	out := Aliases{m: make(map[string]string, len(m))}
	for k, v := range m {
		out.m[k] = v
	}
	return out
}

// Canonical returns the canonical spelling of name, or name itself when no
// override exists.
func (a Aliases) Canonical(name string) string {
	if c, ok := a.m[name]; ok {
		return c
	}
	return name
}

// Sources returns the overridden spellings sorted ascending.
func (a Aliases) Sources() []string {
	out := make([]string, 0, len(a.m))
	for k := range a.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
