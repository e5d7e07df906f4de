// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides an interactive session for the IPPcode24
// analyzer. Within the host it is possible to load and validate source
// files, list the parsed program, display code metrics, export the
// program as XML, and inspect the opcode table.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"

	"github.com/zdebska/Code-Analyzer/parse"
	"github.com/zdebska/Code-Analyzer/stats"
	"github.com/zdebska/Code-Analyzer/xmlout"
)

var errQuit = errors.New("exiting program")

// A Host is an interactive analyzer session holding the most recently
// loaded program and its statistics report.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	filename    string
	program     *parse.Program
	report      *stats.Report
	settings    *settings
	lastCmd     *cmd.Selection
}

// New creates a new analyzer host environment.
func New() *Host {
	return &Host{
		settings: newSettings(),
	}
}

// RunCommands accepts host commands from a reader and outputs the
// results to a writer. If the commands are interactive, a prompt is
// displayed while the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
		h.flush()
	}
}

func (h *Host) displayHelpText(c *cmd.Command) {
	h.printf("Usage: %s\n", c.Usage)
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		h.println("Commands:")
		h.println("    help      Display help for a command")
		h.println("    load      Load and validate a source file")
		h.println("    list      List the loaded program")
		h.println("    stats     Display code metrics")
		h.println("    xml       Write the program as XML")
		h.println("    opcodes   Inspect the opcode table")
		h.println("    set       Set a configuration variable")
		h.println("    quit      Quit the program")
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if s.Command.Usage != "" {
			h.printf("Usage: %s\n\n", s.Command.Usage)
		}
		switch {
		case s.Command.Description != "":
			h.printf("%s\n", s.Command.Description)
		case s.Command.Brief != "":
			h.printf("%s.\n", s.Command.Brief)
		}
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".src"
	}

	var options parse.Option
	if h.settings.Verbose {
		options |= parse.Verbose
	}

	program, err := parse.ParseFile(filename, h.output, options)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	h.filename = filename
	h.program = program
	h.report = stats.Collect(program)
	h.printf("Loaded '%s': %d instruction(s), %d comment line(s).\n",
		filepath.Base(filename), len(program.Instructions), program.CommentLines)
	return nil
}

func (h *Host) cmdList(c cmd.Selection) error {
	if h.program == nil {
		h.println("No program loaded.")
		return nil
	}

	lines := h.settings.ListLines
	for i, inst := range h.program.Instructions {
		if lines > 0 && i == lines {
			h.printf("... %d more instruction(s)\n", len(h.program.Instructions)-i)
			break
		}
		h.printf("%4d  %-10s%s\n", inst.Order, inst.Opcode, h.operandString(inst))
	}
	return nil
}

func (h *Host) operandString(inst parse.Instruction) string {
	var b strings.Builder
	for _, op := range inst.Operands {
		b.WriteString("  ")
		if h.settings.ShowTypes {
			b.WriteString(op.TypeString())
			b.WriteByte(':')
		}
		b.WriteString(op.Text)
	}
	return b.String()
}

func (h *Host) cmdStats(c cmd.Selection) error {
	if h.report == nil {
		h.println("No program loaded.")
		return nil
	}

	r := h.report
	h.printf("Instructions:    %d\n", r.Loc)
	h.printf("Comment lines:   %d\n", r.Comments)
	h.printf("Distinct labels: %d\n", r.Labels)
	h.printf("Jumps:           %d\n", r.Jumps)
	h.printf("  forward:       %d\n", r.FwJumps)
	h.printf("  backward:      %d\n", r.BackJumps)
	h.printf("  invalid:       %d\n", r.BadJumps)
	h.printf("Most frequent:   %s\n", r.MostFrequent())
	return nil
}

func (h *Host) cmdXML(c cmd.Selection) error {
	if h.program == nil {
		h.println("No program loaded.")
		return nil
	}

	if len(c.Args) == 0 {
		if err := xmlout.Write(h.output, h.program); err != nil {
			h.printf("Failed to write XML: %v\n", err)
		}
		h.flush()
		return nil
	}

	filename := c.Args[0]
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	if err := xmlout.Write(file, h.program); err != nil {
		h.printf("Failed to write '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	h.printf("Wrote '%s'.\n", filepath.Base(filename))
	return nil
}

func (h *Host) cmdOpcodes(c cmd.Selection) error {
	if len(c.Args) == 0 {
		for _, spec := range parse.Opcodes() {
			h.printf("    %-12s %s\n", spec.Name, spec.ShapeString())
		}
		return nil
	}

	spec, err := parse.FindOpcode(c.Args[0])
	switch err {
	case nil:
		h.printf("    %-12s %s\n", spec.Name, spec.ShapeString())
	case prefixtree.ErrPrefixAmbiguous:
		h.printf("Opcode '%s' is ambiguous.\n", c.Args[0])
	default:
		h.printf("Opcode '%s' not found.\n", c.Args[0])
	}
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v int
			v, err = strconv.Atoi(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}

	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}
