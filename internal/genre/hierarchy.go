// Package genre implements the genre canonicalization algorithm: collapsing
// a hierarchical genre mapping into a canonical lookup, then rewriting each
// track's (possibly multi-valued) genre string to a single chosen genre
// (spec §4.9).
package genre

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rockbox-tools/tagdb/internal/tagcache"
)

// Forest is the raw hierarchical genre description: a list whose entries
// are either bare strings (leaf genres) or single-key maps whose value is
// again a Forest (the node's children). Parsed directly from YAML.
type Forest []interface{}

// CanonicalMap maps a lowercase genre name to its lowercase canonical form.
type CanonicalMap map[string]string

// LoadHierarchy reads and parses a genre-hierarchy YAML file.
func LoadHierarchy(path string) (Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &tagcache.IoError{Path: path, Cause: err}
	}
	var forest Forest
	if err := yaml.Unmarshal(data, &forest); err != nil {
		return nil, &tagcache.YamlParseError{Path: path, Line: 0, Cause: err}
	}
	return forest, nil
}

// node is one flattened forest entry: its name, its parent's name (empty
// for a root), and its depth (0 for a root).
type node struct {
	name   string
	parent string
	depth  int
}

// walk flattens forest into a name-keyed node table plus each node's
// immediate children, both keyed by lowercase name.
func walk(forest Forest) (nodes map[string]*node, children map[string][]string) {
	nodes = make(map[string]*node)
	children = make(map[string][]string)

	var visit func(entries []interface{}, parent string, depth int)
	visit = func(entries []interface{}, parent string, depth int) {
		for _, raw := range entries {
			switch v := raw.(type) {
			case string:
				name := strings.ToLower(v)
				nodes[name] = &node{name: name, parent: parent, depth: depth}
				if parent != "" {
					children[parent] = append(children[parent], name)
				}
			case map[string]interface{}:
				for key, val := range v {
					name := strings.ToLower(key)
					nodes[name] = &node{name: name, parent: parent, depth: depth}
					if parent != "" {
						children[parent] = append(children[parent], name)
					}
					if sub, ok := val.([]interface{}); ok {
						visit(sub, name, depth+1)
					}
				}
			}
		}
	}
	visit(forest, "", 0)
	return nodes, children
}

// BuildCanonicalMap constructs the canonical lookup from forest. With
// threshold <= 0 every discovered node maps to itself (the base algorithm,
// spec §4.9 step 2): the hierarchy's shape is irrelevant, only the set of
// known names matters, and unknown names fall back to themselves anyway at
// rewrite time.
//
// With threshold > 0, the roll-up variant collapses a subtree smaller than
// threshold into its lowest ancestor whose own subtree meets threshold
// (spec §4.9 step 3, Open Question #4). A node whose ancestor chain never
// reaches threshold (including the ancestor chain running off the root)
// rolls up to its topmost ancestor — the chosen, documented rule for the
// "disconnected ancestor chain" case the spec leaves implementation-defined.
func BuildCanonicalMap(forest Forest, threshold int) CanonicalMap {
	nodes, children := walk(forest)

	m := make(CanonicalMap, len(nodes))
	for name := range nodes {
		m[name] = name
	}
	if threshold <= 0 {
		return m
	}

	size := make(map[string]int)
	var sizeOf func(name string) int
	sizeOf = func(name string) int {
		if s, ok := size[name]; ok {
			return s
		}
		total := 1
		for _, c := range children[name] {
			total += sizeOf(c)
		}
		size[name] = total
		return total
	}
	for name := range nodes {
		sizeOf(name)
	}

	for name, n := range nodes {
		if size[name] >= threshold {
			continue
		}
		ancestor := n.parent
		chosen := name
		for ancestor != "" {
			if size[ancestor] >= threshold {
				chosen = ancestor
				break
			}
			chosen = ancestor
			ancestor = nodes[ancestor].parent
		}
		m[name] = chosen
	}

	return m
}

// Canonicalize resolves name to its canonical form via m, case-folded.
// Unknown names map to themselves (spec §4.9 per-track rewrite step 3).
func (m CanonicalMap) Canonicalize(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canon, ok := m[lower]; ok {
		return canon
	}
	return lower
}
