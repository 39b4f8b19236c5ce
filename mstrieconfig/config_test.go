package mstrieconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `# sample configuration
mstrie_A:
	alphabet_length = "3"
	max_multiplicity = "4"
	index_path = "index/a.mstrie"
run_mode = "cli"
benchmark:
	mstrie_name = "a"
	run:
		type = "subset_search"
		test_file = "test.csv"
		result_file = "result.csv"
`

func TestParseGroupsAndParameters(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	v, err := cfg.String("run_mode")
	require.NoError(t, err)
	require.Equal(t, "cli", v)

	n, err := cfg.Uint("mstrie_A:alphabet_length")
	require.NoError(t, err)
	require.Equal(t, uint(3), n)

	n, err = cfg.Uint("mstrie_A:max_multiplicity")
	require.NoError(t, err)
	require.Equal(t, uint(4), n)

	v, err = cfg.String("mstrie_A:index_path")
	require.NoError(t, err)
	require.Equal(t, "index/a.mstrie", v)
}

func TestParseNestedGroups(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	v, err := cfg.String("benchmark:mstrie_name")
	require.NoError(t, err)
	require.Equal(t, "a", v)

	v, err = cfg.String("benchmark:run:type")
	require.NoError(t, err)
	require.Equal(t, "subset_search", v)

	v, err = cfg.String("benchmark:run:test_file")
	require.NoError(t, err)
	require.Equal(t, "test.csv", v)
}

func TestMissingGroupError(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	_, err = cfg.String("nope:whatever")
	require.ErrorIs(t, err, ErrGroupMissing)
}

func TestMissingParameterError(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	_, err = cfg.String("mstrie_A:nonexistent")
	require.ErrorIs(t, err, ErrParameterMissing)
}

func TestTypeConversionError(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)

	_, err = cfg.Uint("run_mode")
	require.ErrorIs(t, err, ErrTypeConversion)
}

func TestMalformedLineError(t *testing.T) {
	_, err := Parse("mstrie_A:\n\talphabet_length\n")
	require.ErrorIs(t, err, ErrMalformedLine)
}

func TestHas(t *testing.T) {
	cfg, err := Parse(sample)
	require.NoError(t, err)
	require.True(t, cfg.Has("run_mode"))
	require.False(t, cfg.Has("mstrie_A:nonexistent"))
	require.False(t, cfg.Has("nope:whatever"))
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	cfg, err := Parse("\n# leading comment\n\nrun_mode = \"benchmark\"\n\n# trailing\n")
	require.NoError(t, err)
	v, err := cfg.String("run_mode")
	require.NoError(t, err)
	require.Equal(t, "benchmark", v)
}
