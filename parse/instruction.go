// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "strings"

// OperandKind is the semantic kind of an instruction operand.
type OperandKind byte

// Operand kinds assigned by classification.
const (
	Variable OperandKind = iota // frame-qualified variable reference
	Constant                    // typed constant literal
	TypeName                    // type-name literal
	Label                       // label name
)

// An Operand is a single classified instruction argument.
type Operand struct {
	Pos     int         // 1-based position within the instruction
	Kind    OperandKind // semantic kind
	Subtype string      // constant subtype (int, bool, string, nil)
	Text    string      // canonical textual payload
}

// TypeString returns the operand's serialization type attribute. For
// constants this is the constant's subtype.
func (o Operand) TypeString() string {
	switch o.Kind {
	case Variable:
		return "var"
	case Constant:
		return o.Subtype
	case TypeName:
		return "type"
	default:
		return "label"
	}
}

// An Instruction is one validated source instruction. Instructions are
// immutable once the program tree has been built.
type Instruction struct {
	Order    int    // 1-based position in the validated stream
	Opcode   string // case-normalized opcode name
	Operands []Operand
}

// A Program is the serialization-ready tree built from a validated
// instruction stream.
type Program struct {
	Language     string        // source language tag
	CommentLines int           // raw input lines containing a comment
	Instructions []Instruction // ordered instruction list
}

// Opcodes that take a label operand. Used to disambiguate a label
// literally named after a type from the type-name literal.
func labelOpcode(opcode string) bool {
	return opcode == "CALL" || opcode == "LABEL" || opcode == "JUMP"
}

// classifyOperand determines the semantic kind and canonical text of a
// validated operand token. Classification is purely syntactic and
// assumes the token has already passed grammar validation.
func classifyOperand(opcode string, pos int, token string) Operand {
	if strings.Contains(token, "@") {
		if strings.HasPrefix(token, "GF") ||
			strings.HasPrefix(token, "LF") ||
			strings.HasPrefix(token, "TF") {
			return Operand{Pos: pos, Kind: Variable, Text: token}
		}
		subtype, text, _ := strings.Cut(token, "@")
		return Operand{Pos: pos, Kind: Constant, Subtype: subtype, Text: text}
	}

	switch token {
	case "int", "bool", "string":
		if !labelOpcode(opcode) {
			return Operand{Pos: pos, Kind: TypeName, Text: token}
		}
	}
	return Operand{Pos: pos, Kind: Label, Text: token}
}
