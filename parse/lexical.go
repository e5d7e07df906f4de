// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "strings"

// Memory frames that may qualify a variable name.
var frames = []string{"GF", "LF", "TF"}

// Type names accepted by the type-operand grammar. The READ instruction
// realistically reads only int, bool and string, but nil is accepted here
// to match the reference behavior.
var typeNames = []string{"int", "bool", "string", "nil"}

// validIdent reports whether s is a plain identifier: one character from
// the extended alphabetic set followed by any number of alphanumeric or
// special characters. Labels and variable names share this grammar.
func validIdent(s string) bool {
	if len(s) == 0 || !identStartChar(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !identChar(s[i]) {
			return false
		}
	}
	return true
}

// validVariable reports whether s is a frame-qualified variable
// identifier of the form frame@name.
func validVariable(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	frame, name, _ := strings.Cut(s, "@")
	for _, f := range frames {
		if frame == f {
			return validIdent(name)
		}
	}
	return false
}

// validConstant reports whether s is a typed constant literal of the
// form type@value.
func validConstant(s string) bool {
	switch {
	case strings.HasPrefix(s, "int@"):
		return validIntLiteral(s[4:])
	case strings.HasPrefix(s, "bool@"):
		return s[5:] == "true" || s[5:] == "false"
	case strings.HasPrefix(s, "string@"):
		return validStringLiteral(s[7:])
	case strings.HasPrefix(s, "nil@"):
		return s[4:] == "nil"
	}
	return false
}

// validIntLiteral reports whether s is a signed decimal, hexadecimal
// (0x) or octal (0o) integer literal.
func validIntLiteral(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	switch {
	case strings.HasPrefix(s, "0x"):
		return allChars(s[2:], hexadecimal)
	case strings.HasPrefix(s, "0o"):
		return allChars(s[2:], octal)
	default:
		return allChars(s, decimal)
	}
}

// validStringLiteral reports whether s is a valid string constant
// payload. The payload may be empty, must not contain a quote or a
// comment character, and every backslash must begin a three-digit
// numeric escape.
func validStringLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"' || comment(s[i]):
			return false
		case s[i] == '\\':
			if i+3 >= len(s) {
				return false
			}
			if !decimal(s[i+1]) || !decimal(s[i+2]) || !decimal(s[i+3]) {
				return false
			}
		}
	}
	return true
}

// validSymbol reports whether s is a variable identifier or a constant.
func validSymbol(s string) bool {
	return validVariable(s) || validConstant(s)
}

// validTypeName reports whether s is one of the type-name literals.
func validTypeName(s string) bool {
	for _, t := range typeNames {
		if s == t {
			return true
		}
	}
	return false
}

func allChars(s string, fn func(c byte) bool) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !fn(s[i]) {
			return false
		}
	}
	return true
}
