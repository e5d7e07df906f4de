// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "testing"

func checkPredicate(t *testing.T, name string, fn func(string) bool, s string, want bool) {
	t.Helper()
	if got := fn(s); got != want {
		t.Errorf("%s(%q) = %v, want %v", name, s, got, want)
	}
}

func TestValidIdent(t *testing.T) {
	valid := []string{"x", "_", "-", "&%*$!?", "label1", "while-loop", "_1x"}
	invalid := []string{"", "1x", "0", "a b", "a@b", "a.b", "náv"}

	for _, s := range valid {
		checkPredicate(t, "validIdent", validIdent, s, true)
	}
	for _, s := range invalid {
		checkPredicate(t, "validIdent", validIdent, s, false)
	}
}

func TestValidVariable(t *testing.T) {
	valid := []string{"GF@x", "LF@_tmp", "TF@-a?", "GF@x1"}
	invalid := []string{"", "GF@", "GF@1x", "gf@x", "XF@x", "GFx", "GF@x@y", "@x"}

	for _, s := range valid {
		checkPredicate(t, "validVariable", validVariable, s, true)
	}
	for _, s := range invalid {
		checkPredicate(t, "validVariable", validVariable, s, false)
	}
}

func TestValidConstant(t *testing.T) {
	valid := []string{
		"int@0", "int@+42", "int@-7", "int@0x1aF", "int@-0x2", "int@0o17",
		"bool@true", "bool@false",
		"string@", "string@hello", "string@with@at", "string@a\\123b",
		"nil@nil",
	}
	invalid := []string{
		"", "int@", "int@-", "int@1a", "int@0x", "int@0o9", "int@ 1",
		"bool@", "bool@True", "bool@1",
		"string@a\\12", "string@a\\", "string@\\abc", "string@a\"b", "string@a#b",
		"nil@", "nil@null",
		"float@1.5", "GF@x",
	}

	for _, s := range valid {
		checkPredicate(t, "validConstant", validConstant, s, true)
	}
	for _, s := range invalid {
		checkPredicate(t, "validConstant", validConstant, s, false)
	}
}

func TestValidStringLiteral(t *testing.T) {
	valid := []string{"", "abc", "a\\123", "\\000\\001", "x@y"}
	invalid := []string{"a\"b", "a#b", "a\\12", "tail\\", "\\12a"}

	for _, s := range valid {
		checkPredicate(t, "validStringLiteral", validStringLiteral, s, true)
	}
	for _, s := range invalid {
		checkPredicate(t, "validStringLiteral", validStringLiteral, s, false)
	}
}

func TestValidSymbol(t *testing.T) {
	checkPredicate(t, "validSymbol", validSymbol, "GF@x", true)
	checkPredicate(t, "validSymbol", validSymbol, "int@1", true)
	checkPredicate(t, "validSymbol", validSymbol, "label", false)
	checkPredicate(t, "validSymbol", validSymbol, "int", false)
}

func TestValidTypeName(t *testing.T) {
	for _, s := range []string{"int", "bool", "string", "nil"} {
		checkPredicate(t, "validTypeName", validTypeName, s, true)
	}
	for _, s := range []string{"", "INT", "float", "label"} {
		checkPredicate(t, "validTypeName", validTypeName, s, false)
	}
}
