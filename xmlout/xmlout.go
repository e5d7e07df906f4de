// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xmlout serializes a validated program tree as an indented
// XML document.
package xmlout

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/zdebska/Code-Analyzer/parse"
)

type document struct {
	XMLName      xml.Name `xml:"program"`
	Language     string   `xml:"language,attr"`
	Instructions []instrElem
}

type instrElem struct {
	XMLName xml.Name `xml:"instruction"`
	Order   int      `xml:"order,attr"`
	Opcode  string   `xml:"opcode,attr"`
	Args    []argElem
}

// Operand elements are named positionally (arg1, arg2, arg3), so the
// element name is carried in the XMLName value rather than a tag.
type argElem struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

// Write serializes the program tree to the output stream as an
// XML document with a declaration header and tab indentation.
func Write(w io.Writer, prog *parse.Program) error {
	doc := document{
		Language:     prog.Language,
		Instructions: make([]instrElem, len(prog.Instructions)),
	}
	for i, inst := range prog.Instructions {
		elem := instrElem{
			Order:  inst.Order,
			Opcode: inst.Opcode,
			Args:   make([]argElem, len(inst.Operands)),
		}
		for j, op := range inst.Operands {
			elem.Args[j] = argElem{
				XMLName: xml.Name{Local: fmt.Sprintf("arg%d", op.Pos)},
				Type:    op.TypeString(),
				Text:    op.Text,
			}
		}
		doc.Instructions[i] = elem
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
