// Package mstriebench drives the CSV-based benchmark mode described
// by original_source/src/benchmark/benchmark.cpp: build a manager from
// the configured benchmark mstrie, initialize its index, then replay
// one query per line of a test file and append a timed CSV row per
// query to a result file.
package mstriebench

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/xerrors"

	"github.com/mstrie/mstrie-go/mstrie"
	"github.com/mstrie/mstrie-go/mstrieconfig"
	"github.com/mstrie/mstrie-go/mstriemanager"
)

// Benchmark replays a test file of queries against a single manager
// and records timed results.
type Benchmark struct {
	cfg     *mstrieconfig.Config
	manager *mstriemanager.Manager
}

// New builds a Benchmark from the "benchmark:mstrie_name" group named
// in cfg.
func New(cfg *mstrieconfig.Config) (*Benchmark, error) {
	name, err := cfg.String("benchmark:mstrie_name")
	if err != nil {
		return nil, err
	}
	m, err := mstriemanager.New(cfg, name, mstrie.UnitMicroseconds)
	if err != nil {
		return nil, err
	}
	return &Benchmark{cfg: cfg, manager: m}, nil
}

var queryTypeByBenchmarkName = map[string]string{
	"exact_search":    "=",
	"subset_search":   "<=",
	"superset_search": ">=",
}

// Run initializes the manager's index and processes the configured
// test file, writing timed results to the configured result file.
func (b *Benchmark) Run() error {
	if err := b.manager.InitIndex(); err != nil {
		return err
	}

	benchmarkType, err := b.cfg.String("benchmark:run:type")
	if err != nil {
		return err
	}
	queryType, ok := queryTypeByBenchmarkName[benchmarkType]
	if !ok {
		return xerrors.Errorf("unknown benchmark type: %s", benchmarkType)
	}

	testFileName, err := b.cfg.String("benchmark:run:test_file")
	if err != nil {
		return err
	}
	testFile, err := os.Open(testFileName)
	if err != nil {
		return xerrors.Errorf("opening %s: %w", testFileName, err)
	}
	defer testFile.Close()

	resultFileName, err := b.cfg.String("benchmark:run:result_file")
	if err != nil {
		return err
	}
	resultFile, err := os.Create(resultFileName)
	if err != nil {
		return xerrors.Errorf("opening %s: %w", resultFileName, err)
	}
	defer resultFile.Close()

	return b.process(queryType, testFile, resultFile)
}

func (b *Benchmark) process(queryType string, testFile io.Reader, resultFile io.Writer) error {
	if _, err := fmt.Fprintln(resultFile, "test;output;time_μs"); err != nil {
		return err
	}

	scanner := bufio.NewScanner(testFile)
	for scanner.Scan() {
		test := scanner.Text()
		result, err := b.manager.RetrieveQuery(queryType, test, -1)
		if err != nil {
			return err
		}
		report, err := b.manager.PrintBenchmarkStats()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(resultFile, "%s;%s;%s\n", test, result, report); err != nil {
			return err
		}
	}
	return scanner.Err()
}
