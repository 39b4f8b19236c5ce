// Command mstrie is the entry point described by original_source's
// src/main.cpp: read a single configuration file argument, then
// either run the interactive CLI or the CSV benchmark driver
// depending on the configured run_mode.
package main

import (
	"fmt"
	"os"

	"github.com/mstrie/mstrie-go/mstriebench"
	"github.com/mstrie/mstrie-go/mstriecli"
	"github.com/mstrie/mstrie-go/mstrieconfig"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "No configuration file specified.")
		os.Exit(1)
	}

	cfg, err := mstrieconfig.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration exception: %s\n", err)
		os.Exit(1)
	}

	runMode, err := cfg.String("run_mode")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration exception: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Mstrie 0.1")
	switch runMode {
	case "benchmark":
		fmt.Println("Running benchmark...")
		b, err := mstriebench.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unhandled exception occurred: %s\n", err)
			os.Exit(1)
		}
		if err := b.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Unhandled exception occurred: %s\n", err)
			os.Exit(1)
		}
		fmt.Println("Done.")
	case "cli":
		fmt.Println(`Type "help" for more information.`)
		defaultName, err := cfg.String("default_mstrie_name")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration exception: %s\n", err)
			os.Exit(1)
		}
		cli := mstriecli.New(cfg, defaultName, os.Stdin, os.Stdout, os.Stderr)
		cli.CommandLoop()
	default:
		fmt.Fprintln(os.Stderr, "Unknown run mode for mstrie.")
		os.Exit(1)
	}
}
