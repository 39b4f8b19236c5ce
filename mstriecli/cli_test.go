package mstriecli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mstrie/mstrie-go/mstrieconfig"
)

func newTestCLI(t *testing.T, commands string) (*Cli, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.mstrie")
	content := "a:\n" +
		"\talphabet_length = \"3\"\n" +
		"\tmax_multiplicity = \"4\"\n" +
		"\tmstrie_path = \"" + path + "\"\n"
	cfg, err := mstrieconfig.Parse(content)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cli := New(cfg, "a", strings.NewReader(commands), out, errOut)
	return cli, out, errOut
}

func TestCliConfigureAndSearch(t *testing.T) {
	cli, out, errOut := newTestCLI(t, "configure\nupdate + 1,2\nsearch = 1,2\nexit\n")
	cli.CommandLoop()

	require.Empty(t, errOut.String())
	require.Contains(t, out.String(), "true")
}

func TestCliUnknownCommand(t *testing.T) {
	cli, out, _ := newTestCLI(t, "bogus\nexit\n")
	cli.CommandLoop()
	require.Contains(t, out.String(), "Unknown command: bogus")
}

func TestCliSearchWithoutConfigureReportsError(t *testing.T) {
	cli, _, errOut := newTestCLI(t, "search = 1,2\nexit\n")
	cli.CommandLoop()
	require.Contains(t, errOut.String(), "error:")
}

func TestCliManagersListsConfigured(t *testing.T) {
	cli, out, _ := newTestCLI(t, "configure a\nmanagers\nexit\n")
	cli.CommandLoop()
	require.Contains(t, out.String(), "* a")
}

func TestCliStatsAll(t *testing.T) {
	cli, out, errOut := newTestCLI(t, "configure\nupdate + 1,2\nsearch = 1,2\nstats_all\nexit\n")
	cli.CommandLoop()
	require.Empty(t, errOut.String())
	require.Contains(t, out.String(), "Total nodes")
	require.Contains(t, out.String(), "Last query")
}

func TestCliRetrieve(t *testing.T) {
	cli, out, errOut := newTestCLI(t, "configure\nupdate + 1,2\nupdate + 0,1,2\nretrieve <= 0,1,2 4\nexit\n")
	cli.CommandLoop()
	require.Empty(t, errOut.String())
	require.Contains(t, out.String(), "0,1,2|1,2")
}

func TestCliRetrieveExact(t *testing.T) {
	cli, out, errOut := newTestCLI(t, "configure\nupdate + 1,2\nretrieve = 1,2\nexit\n")
	cli.CommandLoop()
	require.Empty(t, errOut.String())
	require.Contains(t, out.String(), "true")
}

func TestCliHelp(t *testing.T) {
	cli, out, _ := newTestCLI(t, "help\nexit\n")
	cli.CommandLoop()
	require.Contains(t, out.String(), "Mstrie commands:")
}
