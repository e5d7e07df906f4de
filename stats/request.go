// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Exit codes reported for statistics configuration failures.
const (
	ErrCodeParam  = 10 // bad or misplaced command-line parameter
	ErrCodeOutput = 12 // duplicate or unwritable output target
)

// A ConfigError is a fatal error in the statistics request.
type ConfigError struct {
	Code int
	Msg  string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// DirectiveKind identifies one statistics output directive.
type DirectiveKind byte

// Directive kinds, one per supported output line.
const (
	Print     DirectiveKind = iota // literal string
	EOL                            // blank line
	Loc                            // instruction count
	Comments                       // comment line count
	Labels                         // distinct label count
	Jumps                          // jump/call count
	FwJumps                        // forward jump count
	BackJumps                      // backward jump count
	BadJumps                       // invalid jump count
	Frequent                       // most frequent opcode(s)
)

// A Directive emits one line of a statistics output target.
type Directive struct {
	Kind DirectiveKind
	Arg  string // literal payload for Print
}

// A Target is a named output receiving an ordered list of directives.
type Target struct {
	Filename   string
	Directives []Directive
}

// A Request is an ordered list of statistics output targets.
type Request struct {
	Targets []Target
}

var metricParams = map[string]DirectiveKind{
	"--loc":       Loc,
	"--comments":  Comments,
	"--labels":    Labels,
	"--jumps":     Jumps,
	"--fwjumps":   FwJumps,
	"--backjumps": BackJumps,
	"--badjumps":  BadJumps,
	"--frequent":  Frequent,
}

// ParseParams builds a Request from command-line parameters. Directive
// parameters apply to the most recently named --stats target; a metric
// parameter before any target, an unrecognized parameter, or a
// duplicate target name is a configuration error.
func ParseParams(params []string) (*Request, error) {
	req := &Request{}
	current := -1

	for _, param := range params {
		switch {
		case strings.HasPrefix(param, "--stats="):
			name := param[len("--stats="):]
			for _, t := range req.Targets {
				if t.Filename == name {
					return nil, &ConfigError{
						Code: ErrCodeOutput,
						Msg:  fmt.Sprintf("duplicate --stats target '%s'", name),
					}
				}
			}
			req.Targets = append(req.Targets, Target{Filename: name})
			current = len(req.Targets) - 1

		case strings.HasPrefix(param, "--print="):
			if current < 0 {
				return nil, missingTargetErr(param)
			}
			d := Directive{Kind: Print, Arg: param[len("--print="):]}
			req.Targets[current].Directives = append(req.Targets[current].Directives, d)

		case param == "--eol":
			if current < 0 {
				return nil, missingTargetErr(param)
			}
			req.Targets[current].Directives = append(req.Targets[current].Directives, Directive{Kind: EOL})

		default:
			kind, ok := metricParams[param]
			if !ok {
				return nil, &ConfigError{
					Code: ErrCodeParam,
					Msg:  fmt.Sprintf("unknown parameter '%s'", param),
				}
			}
			if current < 0 {
				return nil, missingTargetErr(param)
			}
			req.Targets[current].Directives = append(req.Targets[current].Directives, Directive{Kind: kind})
		}
	}
	return req, nil
}

func missingTargetErr(param string) *ConfigError {
	return &ConfigError{
		Code: ErrCodeParam,
		Msg:  fmt.Sprintf("parameter '%s' requires a preceding --stats target", param),
	}
}

// Write writes the lines requested by one directive list.
func (r *Report) Write(w io.Writer, directives []Directive) error {
	for _, d := range directives {
		var err error
		switch d.Kind {
		case Print:
			_, err = fmt.Fprintln(w, d.Arg)
		case EOL:
			_, err = fmt.Fprintln(w)
		case Frequent:
			_, err = fmt.Fprintln(w, r.MostFrequent())
		default:
			_, err = fmt.Fprintln(w, r.metric(d.Kind))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) metric(kind DirectiveKind) int {
	switch kind {
	case Loc:
		return r.Loc
	case Comments:
		return r.Comments
	case Labels:
		return r.Labels
	case Jumps:
		return r.Jumps
	case FwJumps:
		return r.FwJumps
	case BackJumps:
		return r.BackJumps
	default:
		return r.BadJumps
	}
}

// WriteTargets writes the report to every requested output target.
// Each target is opened, written and closed independently, so a failure
// on one target does not prevent attempting the others. The first
// failure is reported after all targets have been attempted.
func WriteTargets(req *Request, r *Report) error {
	var firstErr error
	for _, t := range req.Targets {
		if err := writeTarget(t, r); err != nil && firstErr == nil {
			firstErr = &ConfigError{
				Code: ErrCodeOutput,
				Msg:  fmt.Sprintf("cannot write statistics to '%s': %v", t.Filename, err),
			}
		}
	}
	return firstErr
}

func writeTarget(t Target, r *Report) error {
	file, err := os.OpenFile(t.Filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()
	return r.Write(file, t.Directives)
}
