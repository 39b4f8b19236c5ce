// Package mstrieconfig reads the hierarchical, indentation-structured
// configuration files consumed by the manager, CLI and benchmark
// drivers. It is grounded on original_source/src/lib/configurator.cpp's
// load_configuration/parse_parameter_identifier/get_value<T>, adapted
// to the teacher's line-scanning idiom (common/util.go) since no
// example in the retrieval pack wraps an existing YAML/TOML/INI
// library for this bespoke tab-indented, trailing-colon-group grammar.
package mstrieconfig

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/mstrie/mstrie-go/mstriefs"
)

// group is one node of the configuration tree: a set of named child
// groups and a set of named string parameters.
type group struct {
	groups map[string]*group
	params map[string]string
}

func newGroup() *group {
	return &group{groups: map[string]*group{}, params: map[string]string{}}
}

// Config is a parsed configuration tree, queried by colon-separated
// identifier such as "mstrie_A:alphabet_length".
type Config struct {
	root *group
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	content, err := mstriefs.ReadAll(path)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, ErrOpenFile)
	}
	return Parse(content)
}

// Parse builds a Config from the textual content of a configuration
// file. Lines are, in order of precedence: blank (ignored), a comment
// starting with '#' (ignored), a group header ending in ':', or a
// parameter of the form `name = "value"`. Leading tab characters fix
// the nesting depth of a line; a group header at depth d becomes the
// active ancestor at that depth until a shallower header replaces it.
func Parse(content string) (*Config, error) {
	root := newGroup()
	var ancestors []string

	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.Trim(raw, " \t\r")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		depth := leadingTabs(raw)

		if strings.HasSuffix(trimmed, ":") {
			name := strings.TrimSuffix(trimmed, ":")
			for len(ancestors) < depth+1 {
				ancestors = append(ancestors, "")
			}
			ancestors[depth] = name
			continue
		}

		name, value, err := parseParameter(trimmed)
		if err != nil {
			return nil, err
		}
		if depth > len(ancestors) {
			depth = len(ancestors)
		}
		id := strings.Join(append(append([]string{}, ancestors[:depth]...), name), ":")
		root.set(id, value)
	}

	return &Config{root: root}, nil
}

func parseParameter(line string) (name, value string, err error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", xerrors.Errorf("%q: %w", line, ErrMalformedLine)
	}
	name = strings.TrimSpace(line[:eq])
	rest := line[eq+1:]
	q1 := strings.Index(rest, `"`)
	q2 := strings.LastIndex(rest, `"`)
	if q1 < 0 || q2 <= q1 {
		return "", "", xerrors.Errorf("%q: %w", line, ErrMalformedLine)
	}
	return name, rest[q1+1 : q2], nil
}

func leadingTabs(s string) int {
	n := 0
	for n < len(s) && s[n] == '\t' {
		n++
	}
	return n
}

func (g *group) set(id, value string) {
	ids := strings.Split(id, ":")
	cur := g
	for _, name := range ids[:len(ids)-1] {
		child, ok := cur.groups[name]
		if !ok {
			child = newGroup()
			cur.groups[name] = child
		}
		cur = child
	}
	cur.params[ids[len(ids)-1]] = value
}

func (c *Config) lookup(id string) (string, error) {
	ids := strings.Split(id, ":")
	cur := c.root
	for _, name := range ids[:len(ids)-1] {
		child, ok := cur.groups[name]
		if !ok {
			return "", xerrors.Errorf("%s: %w", name, ErrGroupMissing)
		}
		cur = child
	}
	last := ids[len(ids)-1]
	v, ok := cur.params[last]
	if !ok {
		return "", xerrors.Errorf("%s: %w", last, ErrParameterMissing)
	}
	return v, nil
}

// String returns the raw string value stored at id.
func (c *Config) String(id string) (string, error) {
	return c.lookup(id)
}

// Int returns the value at id parsed as a signed integer.
func (c *Config) Int(id string) (int, error) {
	v, err := c.lookup(id)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, xerrors.Errorf("%s=%q: %w", id, v, ErrTypeConversion)
	}
	return n, nil
}

// Uint returns the value at id parsed as an unsigned integer.
func (c *Config) Uint(id string) (uint, error) {
	v, err := c.lookup(id)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("%s=%q: %w", id, v, ErrTypeConversion)
	}
	return uint(n), nil
}

// Has reports whether id resolves to a parameter without error.
func (c *Config) Has(id string) bool {
	_, err := c.lookup(id)
	return err == nil
}
