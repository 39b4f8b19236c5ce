package mstriemanager

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mstrie/mstrie-go/mstrieconfig"
)

func newTestConfig(t *testing.T, indexPath string) *mstrieconfig.Config {
	t.Helper()
	content := "a:\n" +
		"\talphabet_length = \"3\"\n" +
		"\tmax_multiplicity = \"4\"\n" +
		"\tmstrie_path = \"" + indexPath + "\"\n"
	cfg, err := mstrieconfig.Parse(content)
	require.NoError(t, err)
	return cfg
}

func TestManagerInitUpdateSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.False(t, m.IndexExists())

	require.NoError(t, m.InitIndex())
	require.NoError(t, m.UpdateQuery("+", "1,2"))

	ok, err := m.SearchQuery("=", "1,2", -1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.SearchQuery("=", "1,1", -1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManagerFlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.NoError(t, m.InitIndex())
	require.NoError(t, m.UpdateQuery("+", "0,1,2"))
	require.NoError(t, m.FlushIndex(true))
	require.True(t, m.IndexExists())

	reloaded, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.NoError(t, reloaded.InitIndex())

	ok, err := reloaded.SearchQuery("=", "0,1,2", -1)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestManagerRetrieveQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.NoError(t, m.InitIndex())
	require.NoError(t, m.UpdateQuery("+", "1,2"))
	require.NoError(t, m.UpdateQuery("+", "0,1,2"))

	out, err := m.RetrieveQuery("<=", "0,1,2", 4)
	require.NoError(t, err)
	require.Equal(t, "0,1,2|1,2", out)
}

func TestManagerRetrieveQueryExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.NoError(t, m.InitIndex())
	require.NoError(t, m.UpdateQuery("+", "1,2"))

	out, err := m.RetrieveQuery("=", "1,2", -1)
	require.NoError(t, err)
	require.Equal(t, "true", out)

	out, err = m.RetrieveQuery("=", "1,1", -1)
	require.NoError(t, err)
	require.Equal(t, "false", out)
}

func TestManagerErrNoIndexLoadedAcrossCallSites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)

	_, err = m.SearchQuery("=", "1,2", -1)
	require.ErrorIs(t, err, ErrNoIndexLoaded)

	err = m.UpdateQuery("+", "1,2")
	require.ErrorIs(t, err, ErrNoIndexLoaded)

	_, err = m.RetrieveQuery("<=", "1,2", -1)
	require.ErrorIs(t, err, ErrNoIndexLoaded)

	err = m.FlushIndex(false)
	require.ErrorIs(t, err, ErrNoIndexLoaded)

	_, err = m.PrintFullStats()
	require.ErrorIs(t, err, ErrNoIndexLoaded)
}

func TestManagerUnknownQueryType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.NoError(t, m.InitIndex())

	_, err = m.SearchQuery("~", "1,2", -1)
	require.Error(t, err)
}

func TestManagerStatsReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mstrie")
	cfg := newTestConfig(t, path)

	m, err := New(cfg, "a", "")
	require.NoError(t, err)
	require.NoError(t, m.InitIndex())
	require.NoError(t, m.UpdateQuery("+", "1,2"))

	_, err = m.SearchQuery("=", "1,2", -1)
	require.NoError(t, err)

	total, err := m.PrintTotalStats()
	require.NoError(t, err)
	require.Contains(t, total, "Total nodes")

	last, err := m.PrintLastQueryStats()
	require.NoError(t, err)
	require.Contains(t, last, "Last query")

	full, err := m.PrintFullStats()
	require.NoError(t, err)
	require.Contains(t, full, "Total nodes")
	require.Contains(t, full, "Last query")
}

func TestParseLimit(t *testing.T) {
	n, err := ParseLimit("")
	require.NoError(t, err)
	require.Equal(t, -1, n)

	n, err = ParseLimit("3")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = ParseLimit("nope")
	require.Error(t, err)
}
