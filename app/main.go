// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/term"

	"github.com/zdebska/Code-Analyzer/host"
	"github.com/zdebska/Code-Analyzer/parse"
	"github.com/zdebska/Code-Analyzer/stats"
	"github.com/zdebska/Code-Analyzer/xmlout"
)

func main() {
	args := os.Args[1:]

	if len(args) == 1 && args[0] == "--help" {
		usage()
		return
	}

	// Interactive analyzer session instead of the filter pipeline.
	if len(args) > 0 && args[0] == "-i" {
		runInteractive(args[1:])
		return
	}

	var req *stats.Request
	if len(args) > 0 {
		var err error
		req, err = stats.ParseParams(args)
		if err != nil {
			exitOnError(err)
		}
	}

	program, err := parse.Parse(os.Stdin, os.Stderr, 0)
	if err != nil {
		exitOnError(err)
	}

	if req != nil {
		report := stats.Collect(program)
		if err := stats.WriteTargets(req, report); err != nil {
			exitOnError(err)
		}
	}

	if err := xmlout.Write(os.Stdout, program); err != nil {
		exitOnError(err)
	}
}

// runInteractive starts the analyzer host. Command files named after
// the -i flag are executed first, then commands are read from standard
// input, with a prompt if it is attached to a terminal.
func runInteractive(scripts []string) {
	h := host.New()

	for _, filename := range scripts {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

func usage() {
	fmt.Println("Reads IPPcode24 source code from standard input, checks its lexical and")
	fmt.Println("syntactic correctness, and writes the program as XML to standard output.")
	fmt.Println()
	fmt.Println("Usage: analyzer [options] < input.src > output.xml")
	fmt.Println("Options:")
	fmt.Println("  --help             display this help and exit")
	fmt.Println("  -i [script ...]    start an interactive analyzer session")
	fmt.Println("  --stats=FILE       collect statistics into FILE; followed by any of:")
	fmt.Println("      --loc --comments --labels --jumps --fwjumps --backjumps")
	fmt.Println("      --badjumps --frequent --print=STRING --eol")
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process exit code for its class.
func exitCode(err error) int {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return perr.Code
	}
	var cerr *stats.ConfigError
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return 1
}
