// Package legacy resolves the historical input names a hardware target
// kept for compatibility with older model files and scripts.
package legacy

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"
)

//go:embed data/legacy_inputs.yaml
var defaultTableYAML []byte

const defaultCacheSize = 32

// Input describes the legacy naming of one analog input.
type Input struct {
	YAML        string `yaml:"yaml" json:"yaml"`
	Lua         string `yaml:"lua" json:"lua"`
	Label       string `yaml:"label" json:"label"`
	ShortLabel  string `yaml:"short_label" json:"short_label"`
	Description string `yaml:"description" json:"description"`
}

// Mapping maps an input key (P1, SL1, ...) to its legacy names.
type Mapping map[string]Input

// Values converts the mapping into the shape templates address:
// {{ (index .legacy_inputs "P1").lua }}.
func (m Mapping) Values() map[string]map[string]string {
	out := make(map[string]map[string]string, len(m))
	for key, in := range m {
		out[key] = map[string]string{
			"yaml":        in.YAML,
			"lua":         in.Lua,
			"label":       in.Label,
			"short_label": in.ShortLabel,
			"description": in.Description,
		}
	}
	return out
}

// Resolver returns the legacy input mapping of a hardware target.
// Unknown targets yield an empty mapping.
type Resolver interface {
	InputsByTarget(target string) Mapping
}

type group struct {
	Targets []string         `yaml:"targets"`
	Inputs  map[string]Input `yaml:"inputs"`
}

// Table is a Resolver backed by a list of target groups.
type Table struct {
	groups   []group
	byTarget map[string]int
	cache    *lru.Cache[string, Mapping]
}

// NewDefaultTable loads the table compiled into the binary.
func NewDefaultTable(cacheSize int) (*Table, error) {
	return Parse(defaultTableYAML, cacheSize)
}

// LoadTable loads a table from a YAML file.
func LoadTable(path string, cacheSize int) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy table: %w", err)
	}

	table, err := Parse(data, cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return table, nil
}

// Parse builds a table from YAML data.
func Parse(data []byte, cacheSize int) (*Table, error) {
	var groups []group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal legacy table: %w", err)
	}

	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, Mapping](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	t := &Table{
		groups:   groups,
		byTarget: make(map[string]int),
		cache:    cache,
	}

	for i, g := range groups {
		if len(g.Targets) == 0 {
			return nil, fmt.Errorf("legacy group %d has no targets", i)
		}
		for _, target := range g.Targets {
			key := normalize(target)
			if _, exists := t.byTarget[key]; exists {
				// first group wins
				continue
			}
			t.byTarget[key] = i
		}
	}

	return t, nil
}

// InputsByTarget implements Resolver. The returned mapping is a copy.
func (t *Table) InputsByTarget(target string) Mapping {
	key := normalize(target)

	if cached, ok := t.cache.Get(key); ok {
		return maps.Clone(cached)
	}

	resolved := Mapping{}
	if i, ok := t.byTarget[key]; ok {
		resolved = Mapping(maps.Clone(t.groups[i].Inputs))
		if resolved == nil {
			resolved = Mapping{}
		}
	}

	t.cache.Add(key, resolved)
	return maps.Clone(resolved)
}

// Targets returns every target the table knows, sorted.
func (t *Table) Targets() []string {
	targets := make([]string, 0, len(t.byTarget))
	for target := range t.byTarget {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

func normalize(target string) string {
	return strings.ToLower(strings.TrimSpace(target))
}
