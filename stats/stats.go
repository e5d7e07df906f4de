// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats computes static code metrics over a validated IPPcode24
// program: instruction and comment counts, label and jump statistics,
// and opcode frequencies.
package stats

import (
	"sort"
	"strings"

	"github.com/zdebska/Code-Analyzer/parse"
)

// A Report holds the metrics computed over one validated program.
type Report struct {
	Loc       int            // validated instructions
	Comments  int            // raw source lines containing a comment
	Labels    int            // distinct defined label names
	Jumps     int            // jump and call instructions
	FwJumps   int            // jumps to a label defined later
	BackJumps int            // jumps to a label already defined
	BadJumps  int            // jumps to a label never defined
	Frequency map[string]int // instruction count per opcode
}

func jumpOpcode(opcode string) bool {
	switch opcode {
	case "CALL", "JUMP", "JUMPIFEQ", "JUMPIFNEQ":
		return true
	}
	return false
}

// Collect computes a report over the program body. It makes one forward
// pass over the instructions, classifying backward jumps online against
// the labels defined so far, and a second resolution pass that
// classifies the remaining jumps as forward or invalid once the full
// label set is known. Forward references cannot be classified earlier.
func Collect(prog *parse.Program) *Report {
	r := &Report{
		Comments:  prog.CommentLines,
		Frequency: make(map[string]int),
	}

	var defined []string // label names in definition order, duplicates kept
	var pending []string // jump targets not yet defined at the jump site

	for _, inst := range prog.Instructions {
		r.Loc++
		r.Frequency[inst.Opcode]++

		if inst.Opcode == "LABEL" {
			defined = append(defined, inst.Operands[0].Text)
		}
		if jumpOpcode(inst.Opcode) {
			r.Jumps++
			target := inst.Operands[0].Text
			if containsLabel(defined, target) {
				r.BackJumps++
			} else {
				pending = append(pending, target)
			}
		}
	}

	// Resolve pending forward references against the completed label set.
	labelSet := make(map[string]bool, len(defined))
	for _, name := range defined {
		labelSet[name] = true
	}
	r.Labels = len(labelSet)

	for _, target := range pending {
		if labelSet[target] {
			r.FwJumps++
		} else {
			r.BadJumps++
		}
	}
	return r
}

// MostFrequent returns the names of the opcodes tied for the maximum
// occurrence count, sorted lexicographically and comma-joined. An empty
// program yields an empty string.
func (r *Report) MostFrequent() string {
	max := 0
	for _, n := range r.Frequency {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return ""
	}

	var names []string
	for opcode, n := range r.Frequency {
		if n == max {
			names = append(names, opcode)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func containsLabel(defined []string, name string) bool {
	for _, d := range defined {
		if d == name {
			return true
		}
	}
	return false
}
