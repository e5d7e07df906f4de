// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse implements the IPPcode24 source code validator. It
// tokenizes raw source text, strips comments and blank lines, verifies
// the language header, enforces the per-opcode operand grammar, and
// builds a serialization-ready program tree.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LanguageTag is the language identifier carried by the program tree.
const LanguageTag = "IPPcode24"

// headerToken is the pseudo-instruction required on the first retained
// source line. The match is case-sensitive.
const headerToken = ".IPPcode24"

// Exit codes reported for the fatal error classes.
const (
	ErrCodeHeader = 21 // missing input or incorrect header
	ErrCodeOpcode = 22 // unknown or incorrect opcode
	ErrCodeSyntax = 23 // other lexical or syntactic error
)

// An Error is a fatal validation error. The first error encountered
// aborts the entire run; no partial output is produced.
type Error struct {
	Code int    // exit code identifying the error class
	Row  int    // 1-based source line, 0 if not line-specific
	Msg  string // human-readable message
}

func (e *Error) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("line %d: %s", e.Row, e.Msg)
	}
	return e.Msg
}

// Option type used by the Parse function.
type Option uint

// Options for the Parse function.
const (
	Verbose Option = 1 << iota // verbose output during parsing
)

// The parser is a state object used while converting source text into
// a program tree.
type parser struct {
	r        io.Reader   // the reader passed to Parse
	raw      []string    // raw input lines
	lines    [][]fstring // tokenized lines, one slice per input line
	stream   [][]fstring // instruction stream after stripping
	comments int         // raw lines containing a comment character
	program  *Program    // the resulting tree
	out      io.Writer   // output used for verbose logging
	verbose  bool        // verbose output
}

// Parse reads IPPcode24 source code from the provided stream and
// validates it. On success it returns the program tree; on failure it
// returns an *Error identifying the first violation.
func Parse(r io.Reader, out io.Writer, options Option) (*Program, error) {
	if out == nil {
		out = os.Stdout
	}

	p := &parser{
		r:       r,
		out:     out,
		verbose: (options & Verbose) != 0,
	}

	// Parsing consists of the following steps
	steps := []func(p *parser) error{
		(*parser).readSource,  // Read the raw source lines
		(*parser).tokenize,    // Split each line into tokens
		(*parser).strip,       // Remove comments and blank lines
		(*parser).checkHeader, // Verify and consume the language header
		(*parser).validate,    // Enforce the per-opcode operand grammar
		(*parser).build,       // Build the program tree
	}

	for _, step := range steps {
		if err := step(p); err != nil {
			return nil, err
		}
	}
	return p.program, nil
}

// ParseFile opens a source file and validates its contents.
func ParseFile(path string, out io.Writer, options Option) (*Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, out, options)
}

// Read the raw source lines and count comment lines. Comment counting
// happens here, on the raw text, because stripping discards the
// information.
func (p *parser) readSource() error {
	scanner := bufio.NewScanner(p.r)
	for scanner.Scan() {
		text := scanner.Text()
		p.raw = append(p.raw, text)
		if strings.IndexByte(text, '#') >= 0 {
			p.comments++
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(p.raw) == 0 {
		return &Error{Code: ErrCodeHeader, Msg: "missing source code on input"}
	}
	return nil
}

// Split every raw line into whitespace-separated tokens, preserving
// token order and source position. Empty lines produce empty token
// sequences.
func (p *parser) tokenize() error {
	p.logSection("Tokenizing source")
	p.lines = make([][]fstring, len(p.raw))
	for i, text := range p.raw {
		line := newFstring(i+1, text)
		var tokens []fstring
		for {
			line = line.consumeWhitespace()
			if line.isEmpty() {
				break
			}
			var tok fstring
			tok, line = line.consumeWhile(wordChar)
			tokens = append(tokens, tok)
		}
		p.lines[i] = tokens
	}
	return nil
}

// Remove comment suffixes and drop lines left without tokens. A token
// containing a comment character is truncated at it, and the rest of
// the line is discarded.
func (p *parser) strip() error {
	p.logSection("Stripping comments")
	for _, tokens := range p.lines {
		var kept []fstring
		for _, tok := range tokens {
			if n := tok.scanUntilChar('#'); n < len(tok.str) {
				if n > 0 {
					kept = append(kept, tok.trunc(n))
				}
				break
			}
			kept = append(kept, tok)
		}
		if len(kept) > 0 {
			p.logLine(kept[0], "instruction tokens=%d", len(kept))
			p.stream = append(p.stream, kept)
		}
	}
	return nil
}

// Verify that the first retained line is the language header and
// consume it. The remaining stream is the program body.
func (p *parser) checkHeader() error {
	if len(p.stream) == 0 {
		return &Error{Code: ErrCodeHeader, Msg: "incorrect or missing header in the source code"}
	}
	first := p.stream[0]
	if len(first) != 1 || first[0].str != headerToken {
		return &Error{
			Code: ErrCodeHeader,
			Row:  first[0].row,
			Msg:  "incorrect or missing header in the source code",
		}
	}
	p.logLine(first[0], "header")
	p.stream = p.stream[1:]
	return nil
}

// Validate every instruction in the program body against the opcode
// table: opcode lookup, operand count, and per-position operand
// grammar. Validation is all-or-nothing; the first violation aborts.
func (p *parser) validate() error {
	p.logSection("Validating instructions")
	for _, tokens := range p.stream {
		if err := p.validateInstruction(tokens); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) validateInstruction(tokens []fstring) error {
	head := tokens[0]
	opcode := strings.ToUpper(head.str)

	// The header pseudo-instruction is not a valid opcode.
	spec, ok := LookupOpcode(opcode)
	if !ok || opcode == strings.ToUpper(headerToken) {
		return &Error{
			Code: ErrCodeOpcode,
			Row:  head.row,
			Msg:  fmt.Sprintf("unknown or incorrect opcode '%s'", head.str),
		}
	}

	if len(tokens) != 1+len(spec.Args) {
		return &Error{
			Code: ErrCodeSyntax,
			Row:  head.row,
			Msg: fmt.Sprintf("opcode %s requires %d operand(s), found %d",
				opcode, len(spec.Args), len(tokens)-1),
		}
	}

	for i, kind := range spec.Args {
		tok := tokens[i+1]
		if !kind.valid(tok.str) {
			return &Error{
				Code: ErrCodeSyntax,
				Row:  tok.row,
				Msg: fmt.Sprintf("operand %d of %s: '%s' is not a valid %s",
					i+1, opcode, tok.str, kind),
			}
		}
		p.logLine(tok, "%s operand=%s", opcode, kind)
	}
	return nil
}

// Build the program tree from the validated body, assigning 1-based
// order numbers and classifying each operand. This is a pure, total
// transformation over already-validated input.
func (p *parser) build() error {
	p.logSection("Building program tree")
	p.program = &Program{
		Language:     LanguageTag,
		CommentLines: p.comments,
		Instructions: make([]Instruction, 0, len(p.stream)),
	}
	for n, tokens := range p.stream {
		inst := Instruction{
			Order:    n + 1,
			Opcode:   strings.ToUpper(tokens[0].str),
			Operands: make([]Operand, len(tokens)-1),
		}
		for i, tok := range tokens[1:] {
			inst.Operands[i] = classifyOperand(inst.Opcode, i+1, tok.str)
			p.log("%-4d %-10s arg%d type=%-6s text=%s",
				inst.Order, inst.Opcode, i+1,
				inst.Operands[i].TypeString(), inst.Operands[i].Text)
		}
		p.program.Instructions = append(p.program.Instructions, inst)
	}
	return nil
}

// In verbose mode, log a formatted line to the output writer.
func (p *parser) log(format string, args ...any) {
	if p.verbose {
		fmt.Fprintf(p.out, format, args...)
		fmt.Fprintf(p.out, "\n")
	}
}

// In verbose mode, log a string and its associated line of source code.
func (p *parser) logLine(tok fstring, format string, args ...any) {
	if p.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(p.out, "%-3d %-3d | %-24s | %s\n", tok.row, tok.column+1, detail, tok.str)
	}
}

// In verbose mode, log a section header to the output writer.
func (p *parser) logSection(name string) {
	if p.verbose {
		fmt.Fprintln(p.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(p.out, "-- %s --\n", name)
		fmt.Fprintln(p.out, strings.Repeat("-", len(name)+6))
	}
}
