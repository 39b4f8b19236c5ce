// Package mstriecli implements the interactive command loop described
// by original_source/src/cli/cli.cpp: a prompt showing the active
// manager, a small fixed vocabulary of commands dispatched through a
// lookup table, and nested-cause error printing via print_exception.
// One session holds several named mstrie.Trie instances side by side:
// "configure" and "flush" take an optional manager name, and
// "managers" lists the configured ones.
package mstriecli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/mstrie/mstrie-go/mstrie"
	"github.com/mstrie/mstrie-go/mstrieconfig"
	"github.com/mstrie/mstrie-go/mstriemanager"
)

const helpText = `
Mstrie commands:
	help
		displays this dialog with commands description.

	configure [name]
		loads or creates a named Multiset-trie structure using configuration
		parameters such as maximal allowed multiplicity, maximal allowed
		alphabet size and file path for storage. Uses the default mstrie
		name when none is given.

	managers
		lists the configured managers and marks the active one.

	save
		saves the active Multiset-trie structure without destroying it.

	flush
		saves the active Multiset-trie structure into its configured file
		and destroys the instance.

	search < <= | = | >= > <word> [limit]
		gives an answer whether there is a matching multiset similar to
		word. The type of matching can be specified: '=' - exact matching;
		'<=' - submultiset matching; '>=' - supermultiset matching.

	retrieve < <= | >= > <word | *> [limit]
		retrieves the matched results similar to word or * = empty
		multiset. The type of matching can be specified: '<=' - submultiset
		matching; '>=' - supermultiset matching. The limit parameter sets
		the offset limit for the multiplicity changes during search.

	update < - | + > <word>
		updates the active Multiset-trie structure with word. The types of
		update: '-' - word removal; '+' - word insertion.

	stats_<all | total | last>
		prints statistics of the active Multiset-trie structure. all -
		prints both total and last statistics; total - prints the total
		number of nodes and the total number of multisets; last - prints
		the name, the time and the number of nodes traversed for the last
		performed query.

	exit
		performs flush and exits the program.
`

type taskFunc func(c *Cli, argv []string) error

// Cli is an interactive command loop over a set of named managers.
type Cli struct {
	cfg            *mstrieconfig.Config
	defaultManager string
	unit           mstrie.TimeUnit

	managers map[string]*mstriemanager.Manager
	current  string

	in      *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	doLoop  bool
	tasks   map[string]taskFunc
}

// New builds a Cli reading commands from in and writing output to out
// and errors to errOut, with defaultManagerName used by a bare
// "configure" command.
func New(cfg *mstrieconfig.Config, defaultManagerName string, in io.Reader, out, errOut io.Writer) *Cli {
	c := &Cli{
		cfg:            cfg,
		defaultManager: defaultManagerName,
		unit:           mstrie.UnitMicroseconds,
		managers:       map[string]*mstriemanager.Manager{},
		in:             bufio.NewScanner(in),
		out:            out,
		errOut:         errOut,
		doLoop:         true,
	}
	c.tasks = map[string]taskFunc{
		"help":        taskDisplayHelp,
		"configure":   taskConfigure,
		"managers":    taskManagers,
		"save":        taskSave,
		"flush":       taskFlush,
		"exit":        taskExit,
		"search":      taskSearch,
		"update":      taskUpdate,
		"retrieve":    taskRetrieve,
		"stats_all":   taskStatsAll,
		"stats_total": taskStatsTotal,
		"stats_last":  taskStatsLast,
	}
	return c
}

// CommandLoop reads and dispatches commands until "exit" is run or
// input is exhausted.
func (c *Cli) CommandLoop() {
	for c.doLoop {
		fmt.Fprintf(c.out, "%s> ", c.current)
		argv, ok := c.readCommand()
		if !ok {
			return
		}
		if len(argv) == 0 {
			continue
		}
		c.execTask(argv)
	}
}

func (c *Cli) readCommand() (argv []string, ok bool) {
	if !c.in.Scan() {
		return nil, false
	}
	line := strings.TrimSpace(c.in.Text())
	if line == "" {
		return nil, true
	}
	return strings.Fields(line), true
}

func (c *Cli) execTask(argv []string) {
	task, known := c.tasks[argv[0]]
	if !known {
		c.printMessage(fmt.Sprintf("Unknown command: %s", argv[0]))
		return
	}
	if err := task(c, argv); err != nil {
		c.printException(err, 0)
	}
}

func (c *Cli) printMessage(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *Cli) printException(err error, level int) {
	fmt.Fprintf(c.errOut, "%serror: %s\n", strings.Repeat(" ", level), err.Error())
	cause := xerrors.Unwrap(err)
	if cause != nil {
		c.printException(cause, level+1)
	}
}

func (c *Cli) activeManager() (*mstriemanager.Manager, error) {
	m, ok := c.managers[c.current]
	if !ok {
		return nil, xerrors.New("no manager configured; run \"configure\" first")
	}
	return m, nil
}

func taskDisplayHelp(c *Cli, _ []string) error {
	c.printMessage(helpText)
	return nil
}

func taskConfigure(c *Cli, argv []string) error {
	name := c.defaultManager
	if len(argv) > 1 {
		name = argv[1]
	}
	m, err := mstriemanager.New(c.cfg, name, c.unit)
	if err != nil {
		return xerrors.Errorf("configuring %s: %w", name, err)
	}
	if err := m.InitIndex(); err != nil {
		return xerrors.Errorf("initializing %s: %w", name, err)
	}
	c.managers[name] = m
	c.current = name
	return nil
}

func taskManagers(c *Cli, _ []string) error {
	names := make([]string, 0, len(c.managers))
	for name := range c.managers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		marker := " "
		if name == c.current {
			marker = "*"
		}
		c.printMessage(fmt.Sprintf("%s %s", marker, name))
	}
	return nil
}

func taskSave(c *Cli, _ []string) error {
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	return m.FlushIndex(false)
}

func taskFlush(c *Cli, argv []string) error {
	m, err := c.activeManager()
	name := c.current
	if len(argv) > 1 {
		name = argv[1]
		var ok bool
		if m, ok = c.managers[name]; !ok {
			return xerrors.Errorf("no manager named %s configured", name)
		}
	} else if err != nil {
		return err
	}
	if err := m.FlushIndex(true); err != nil {
		return err
	}
	delete(c.managers, name)
	if name == c.current {
		c.current = ""
	}
	return nil
}

func taskExit(c *Cli, _ []string) error {
	if m, err := c.activeManager(); err == nil {
		if err := m.FlushIndex(true); err != nil {
			return err
		}
	}
	c.doLoop = false
	return nil
}

func taskSearch(c *Cli, argv []string) error {
	if len(argv) < 3 {
		return xerrors.New("usage: search <=|=|>= word [limit]")
	}
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	limit, err := limitArg(argv, 3)
	if err != nil {
		return err
	}
	ok, err := m.SearchQuery(argv[1], argv[2], limit)
	if err != nil {
		return err
	}
	c.printMessage(fmt.Sprintf("%v", ok))
	return nil
}

func taskUpdate(c *Cli, argv []string) error {
	if len(argv) < 3 {
		return xerrors.New("usage: update +|- word")
	}
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	return m.UpdateQuery(argv[1], argv[2])
}

func taskRetrieve(c *Cli, argv []string) error {
	if len(argv) < 3 {
		return xerrors.New("usage: retrieve <=|>= word [limit]")
	}
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	limit, err := limitArg(argv, 3)
	if err != nil {
		return err
	}
	out, err := m.RetrieveQuery(argv[1], argv[2], limit)
	if err != nil {
		return err
	}
	c.printMessage(out)
	return nil
}

func taskStatsAll(c *Cli, _ []string) error {
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	report, err := m.PrintFullStats()
	if err != nil {
		return err
	}
	c.printMessage(report)
	return nil
}

func taskStatsTotal(c *Cli, _ []string) error {
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	report, err := m.PrintTotalStats()
	if err != nil {
		return err
	}
	c.printMessage(report)
	return nil
}

func taskStatsLast(c *Cli, _ []string) error {
	m, err := c.activeManager()
	if err != nil {
		return err
	}
	report, err := m.PrintLastQueryStats()
	if err != nil {
		return err
	}
	c.printMessage(report)
	return nil
}

func limitArg(argv []string, idx int) (int, error) {
	if len(argv) <= idx {
		return mstriemanager.ParseLimit("")
	}
	return mstriemanager.ParseLimit(argv[idx])
}
