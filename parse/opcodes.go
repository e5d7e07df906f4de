// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"sort"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// ArgKind identifies the operand shape required at one position of an
// instruction.
type ArgKind byte

// Operand shapes used by the opcode table.
const (
	ArgVar   ArgKind = iota // frame-qualified variable identifier
	ArgSymb                 // variable identifier or constant
	ArgLabel                // plain identifier
	ArgType                 // type-name literal
)

var argKindName = []string{
	"variable",
	"symbol",
	"label",
	"type",
}

func (k ArgKind) String() string {
	return argKindName[k]
}

// valid reports whether s satisfies the operand grammar for the kind.
func (k ArgKind) valid(s string) bool {
	switch k {
	case ArgVar:
		return validVariable(s)
	case ArgSymb:
		return validSymbol(s)
	case ArgLabel:
		return validIdent(s)
	default:
		return validTypeName(s)
	}
}

// An OpcodeSpec describes the operand shape required by one opcode. The
// opcode table is built once at startup and never mutated.
type OpcodeSpec struct {
	Name string
	Args []ArgKind
}

// ShapeString returns a human-readable rendering of the opcode's
// operand shape, e.g. "variable symbol symbol".
func (s *OpcodeSpec) ShapeString() string {
	if len(s.Args) == 0 {
		return "(no operands)"
	}
	parts := make([]string, len(s.Args))
	for i, k := range s.Args {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

var (
	opcodes    = make(map[string]*OpcodeSpec)
	opcodeTree = prefixtree.New[*OpcodeSpec]()
)

func addOpcodes(args []ArgKind, names ...string) {
	for _, n := range names {
		spec := &OpcodeSpec{Name: n, Args: args}
		opcodes[n] = spec
		opcodeTree.Add(strings.ToLower(n), spec)
	}
}

func init() {
	addOpcodes(nil,
		"CREATEFRAME", "PUSHFRAME", "POPFRAME", "RETURN", "BREAK")
	addOpcodes([]ArgKind{ArgVar},
		"DEFVAR", "POPS")
	addOpcodes([]ArgKind{ArgLabel},
		"CALL", "LABEL", "JUMP")
	addOpcodes([]ArgKind{ArgSymb},
		"PUSHS", "WRITE", "EXIT", "DPRINT")
	addOpcodes([]ArgKind{ArgVar, ArgSymb},
		"MOVE", "INT2CHAR", "STRLEN", "TYPE", "NOT")
	addOpcodes([]ArgKind{ArgVar, ArgType},
		"READ")
	addOpcodes([]ArgKind{ArgLabel, ArgSymb, ArgSymb},
		"JUMPIFEQ", "JUMPIFNEQ")
	addOpcodes([]ArgKind{ArgVar, ArgSymb, ArgSymb},
		"ADD", "SUB", "MUL", "IDIV", "LT", "GT", "EQ",
		"AND", "OR", "STRI2INT", "CONCAT", "GETCHAR", "SETCHAR")
}

// LookupOpcode finds the spec for an opcode name. The name is
// case-normalized before lookup.
func LookupOpcode(name string) (*OpcodeSpec, bool) {
	spec, ok := opcodes[strings.ToUpper(name)]
	return spec, ok
}

// FindOpcode finds an opcode spec by unique name prefix. It returns
// prefixtree.ErrPrefixNotFound or prefixtree.ErrPrefixAmbiguous when the
// prefix matches no opcode or more than one.
func FindOpcode(prefix string) (*OpcodeSpec, error) {
	return opcodeTree.FindValue(strings.ToLower(prefix))
}

// Opcodes returns all opcode specs sorted by name.
func Opcodes() []*OpcodeSpec {
	all := make([]*OpcodeSpec, 0, len(opcodes))
	for _, spec := range opcodes {
		all = append(all, spec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}
