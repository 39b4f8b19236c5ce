// Package mstriemanager owns a named mstrie.Trie instance end to end:
// building it from configuration, loading and flushing it against the
// configured index file, and translating the small query/update/stats
// vocabulary used by the CLI and the benchmark driver into calls on
// the trie. Grounded on original_source/src/core/index_manager.hpp,
// supplemented with the file-backed init/flush behaviour implied by
// index_exists and the Configurator-driven constructor used by
// benchmark.cpp and cli.cpp, since index_manager.cpp itself only
// carries the constructor in the retrieved source.
package mstriemanager

import (
	"strconv"

	"golang.org/x/xerrors"

	"github.com/mstrie/mstrie-go/mstrie"
	"github.com/mstrie/mstrie-go/mstrieconfig"
	"github.com/mstrie/mstrie-go/mstriefs"
)

// Manager owns one mstrie.Trie, built from a Settings drawn out of a
// Config group, and keeps it in sync with its backing index file.
type Manager struct {
	settings mstrie.Settings
	unit     mstrie.TimeUnit
	trie     *mstrie.Trie
}

// New builds a Manager for the named group in cfg, expecting
// "<name>:alphabet_length", "<name>:max_multiplicity" and
// "<name>:mstrie_path" parameters, matching benchmark.cpp's
// construction of MstrieSettings from the configured mstrie name.
func New(cfg *mstrieconfig.Config, name string, unit mstrie.TimeUnit) (*Manager, error) {
	alphabet, err := cfg.Uint(name + ":alphabet_length")
	if err != nil {
		return nil, err
	}
	maxMultiplicity, err := cfg.Uint(name + ":max_multiplicity")
	if err != nil {
		return nil, err
	}
	path, err := cfg.String(name + ":mstrie_path")
	if err != nil {
		return nil, err
	}
	return &Manager{
		settings: mstrie.Settings{
			Alphabet:        alphabet,
			MaxMultiplicity: maxMultiplicity,
			IndexPath:       path,
		},
		unit: unit,
	}, nil
}

// IndexExists reports whether the manager's configured index file is
// already present on disk.
func (m *Manager) IndexExists() bool {
	return mstriefs.Exists(m.settings.IndexPath)
}

// InitIndex brings the trie instance up: loading it from the index
// file if one exists, otherwise creating an empty trie at the
// configured parametrization.
func (m *Manager) InitIndex() error {
	tr, err := mstrie.New(m.settings, m.unit)
	if err != nil {
		return err
	}
	m.trie = tr
	if !m.IndexExists() {
		return nil
	}
	content, err := mstriefs.ReadAll(m.settings.IndexPath)
	if err != nil {
		return err
	}
	return m.trie.Load(content)
}

// FlushIndex writes the trie's full contents out to its configured
// index file. When destroy is true the in-memory trie is discarded
// afterwards, mirroring flush_index(bool destroy).
func (m *Manager) FlushIndex(destroy bool) error {
	if m.trie == nil {
		return ErrNoIndexLoaded
	}
	if err := mstriefs.WriteAll(m.settings.IndexPath, m.trie.Dump()); err != nil {
		return err
	}
	if destroy {
		m.trie = nil
	}
	return nil
}

// SearchQuery answers a membership query of the given type ("=",
// "<=", ">=") against word, with limit applying to the approximate
// forms (pass a negative limit to use the trie's maximum).
func (m *Manager) SearchQuery(queryType, word string, limit int) (bool, error) {
	if m.trie == nil {
		return false, ErrNoIndexLoaded
	}
	switch queryType {
	case "=":
		return m.trie.Exact(word)
	case "<=":
		return m.trie.Subseteq(word, limit)
	case ">=":
		return m.trie.Superseteq(word, limit)
	default:
		return false, xerrors.Errorf("unknown search type: %s", queryType)
	}
}

// UpdateQuery inserts ("+") or removes ("-") word from the trie.
func (m *Manager) UpdateQuery(queryType, word string) error {
	if m.trie == nil {
		return ErrNoIndexLoaded
	}
	switch queryType {
	case "+":
		return m.trie.Insert(word)
	case "-":
		return m.trie.Delete(word)
	default:
		return xerrors.Errorf("unknown update type: %s", queryType)
	}
}

// RetrieveQuery returns a "|"-separated list of tokens matching word
// under the given retrieval type ("<=" or ">="). The benchmark driver
// also funnels its "=" mode through here, where the boolean Exact
// result is stringified instead of joining a result set.
func (m *Manager) RetrieveQuery(queryType, word string, limit int) (string, error) {
	if m.trie == nil {
		return "", ErrNoIndexLoaded
	}
	if queryType == "=" {
		ok, err := m.trie.Exact(word)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil
	}
	var results []string
	var err error
	switch queryType {
	case "<=":
		results, err = m.trie.GetSubseteq(word, limit)
	case ">=":
		results, err = m.trie.GetSuperseteq(word, limit)
	default:
		return "", xerrors.Errorf("unknown retrieve type: %s", queryType)
	}
	if err != nil {
		return "", err
	}
	return joinResults(results), nil
}

func joinResults(results []string) string {
	out := ""
	for i, r := range results {
		if i > 0 {
			out += "|"
		}
		out += r
	}
	return out
}

// PrintFullStats reports both the lifetime and the last-query stats.
func (m *Manager) PrintFullStats() (string, error) {
	if m.trie == nil {
		return "", ErrNoIndexLoaded
	}
	return m.trie.Stats().TotalReport() + m.trie.Stats().LastQueryReport(), nil
}

// PrintTotalStats reports the lifetime node and multiset counts.
func (m *Manager) PrintTotalStats() (string, error) {
	if m.trie == nil {
		return "", ErrNoIndexLoaded
	}
	return m.trie.Stats().TotalReport(), nil
}

// PrintLastQueryStats reports the name, time and traversed-node count
// of the most recently answered query.
func (m *Manager) PrintLastQueryStats() (string, error) {
	if m.trie == nil {
		return "", ErrNoIndexLoaded
	}
	return m.trie.Stats().LastQueryReport(), nil
}

// PrintBenchmarkStats reports the last query's elapsed time alone, in
// the configured unit, for the benchmark driver's CSV column.
func (m *Manager) PrintBenchmarkStats() (string, error) {
	if m.trie == nil {
		return "", ErrNoIndexLoaded
	}
	return m.trie.Stats().BenchmarkReport(), nil
}

// ParseLimit converts a CLI limit argument ("" meaning unset) to the
// int form the query methods expect, with a negative value meaning
// "use the trie's configured maximum".
func ParseLimit(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, xerrors.Errorf("invalid limit %q: %w", s, err)
	}
	return n, nil
}
