package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuildEntry is one buildable structure in the build menu.
type BuildEntry struct {
	Kind  string  `yaml:"kind"`
	Label string  `yaml:"label"`
	Key   string  `yaml:"key"`
	Cost  float64 `yaml:"cost"`
}

// BuildCatalog lists the build menu in display order.
type BuildCatalog struct {
	entries []BuildEntry
	byKind  map[string]*BuildEntry
}

// LoadBuildCatalog loads build_catalog.yaml.
func LoadBuildCatalog(path string) (*BuildCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build catalog: %w", err)
	}
	return ParseBuildCatalog(raw)
}

func ParseBuildCatalog(raw []byte) (*BuildCatalog, error) {
	var file struct {
		Items []BuildEntry `yaml:"items"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse build catalog: %w", err)
	}
	c := &BuildCatalog{
		entries: file.Items,
		byKind:  make(map[string]*BuildEntry, len(file.Items)),
	}
	for i := range c.entries {
		e := &c.entries[i]
		if e.Kind == "" {
			return nil, fmt.Errorf("build catalog entry %d: missing kind", i)
		}
		if _, dup := c.byKind[e.Kind]; dup {
			return nil, fmt.Errorf("build catalog: duplicate kind %q", e.Kind)
		}
		if e.Label == "" {
			e.Label = e.Kind
		}
		c.byKind[e.Kind] = e
	}
	return c, nil
}

// Get returns the entry for kind, or nil if none.
func (c *BuildCatalog) Get(kind string) *BuildEntry {
	return c.byKind[kind]
}

// Entries returns the menu in display order.
func (c *BuildCatalog) Entries() []BuildEntry {
	return c.entries
}

// Count returns the total number of entries loaded.
func (c *BuildCatalog) Count() int {
	return len(c.entries)
}
