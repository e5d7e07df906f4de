// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func checkConfigError(t *testing.T, params []string, wantCode int) {
	t.Helper()
	_, err := ParseParams(params)
	if err == nil {
		t.Fatalf("expected error on %v, didn't get one", params)
	}
	cerr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("expected *ConfigError on %v, got %T: %v", params, err, err)
	}
	if cerr.Code != wantCode {
		t.Errorf("error code on %v: got %d, want %d", params, cerr.Code, wantCode)
	}
}

func TestParseParams(t *testing.T) {
	req, err := ParseParams([]string{
		"--stats=a.txt", "--loc", "--print=header", "--eol",
		"--stats=b.txt", "--frequent",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(req.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(req.Targets))
	}
	a, b := req.Targets[0], req.Targets[1]
	if a.Filename != "a.txt" || len(a.Directives) != 3 {
		t.Errorf("target a: got %q with %d directives", a.Filename, len(a.Directives))
	}
	if a.Directives[0].Kind != Loc || a.Directives[1].Kind != Print || a.Directives[2].Kind != EOL {
		t.Errorf("target a: unexpected directive order: %+v", a.Directives)
	}
	if a.Directives[1].Arg != "header" {
		t.Errorf("print payload: got %q, want %q", a.Directives[1].Arg, "header")
	}
	if b.Filename != "b.txt" || len(b.Directives) != 1 || b.Directives[0].Kind != Frequent {
		t.Errorf("target b: got %+v", b)
	}
}

func TestParseParamsEmptyTarget(t *testing.T) {
	req, err := ParseParams([]string{"--stats=only.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if len(req.Targets) != 1 || len(req.Targets[0].Directives) != 0 {
		t.Errorf("got %+v, want one empty target", req.Targets)
	}
}

func TestDuplicateTarget(t *testing.T) {
	checkConfigError(t, []string{"--stats=x", "--loc", "--stats=x"}, ErrCodeOutput)
}

func TestMetricBeforeTarget(t *testing.T) {
	checkConfigError(t, []string{"--loc"}, ErrCodeParam)
	checkConfigError(t, []string{"--print=hi", "--stats=x"}, ErrCodeParam)
	checkConfigError(t, []string{"--eol"}, ErrCodeParam)
}

func TestUnknownParam(t *testing.T) {
	checkConfigError(t, []string{"--stats=x", "--bogus"}, ErrCodeParam)
	checkConfigError(t, []string{"--frequency"}, ErrCodeParam)
}

func TestWriteDirectives(t *testing.T) {
	r := &Report{
		Loc:       5,
		Comments:  2,
		Labels:    1,
		Jumps:     3,
		FwJumps:   1,
		BackJumps: 1,
		BadJumps:  1,
		Frequency: map[string]int{"WRITE": 3, "MOVE": 3, "JUMP": 1},
	}

	var b strings.Builder
	err := r.Write(&b, []Directive{
		{Kind: Print, Arg: "code metrics"},
		{Kind: Loc},
		{Kind: Comments},
		{Kind: EOL},
		{Kind: Frequent},
		{Kind: BadJumps},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "code metrics\n5\n2\n\nMOVE,WRITE\n1\n"
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestWriteTargets(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.txt")
	bPath := filepath.Join(dir, "b.txt")

	req, err := ParseParams([]string{
		"--stats=" + aPath, "--loc", "--jumps",
		"--stats=" + bPath, "--print=done",
	})
	if err != nil {
		t.Fatal(err)
	}

	r := &Report{Loc: 7, Jumps: 2, Frequency: map[string]int{}}
	if err := WriteTargets(req, r); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(aPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != "7\n2\n" {
		t.Errorf("target a: got %q, want %q", a, "7\n2\n")
	}

	b, err := os.ReadFile(bPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "done\n" {
		t.Errorf("target b: got %q, want %q", b, "done\n")
	}
}

func TestWriteTargetFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "no-such-dir", "x.txt")
	goodPath := filepath.Join(dir, "good.txt")

	req, err := ParseParams([]string{
		"--stats=" + badPath, "--loc",
		"--stats=" + goodPath, "--loc",
	})
	if err != nil {
		t.Fatal(err)
	}

	r := &Report{Loc: 4, Frequency: map[string]int{}}
	err = WriteTargets(req, r)
	if err == nil {
		t.Fatal("expected error for unwritable target, didn't get one")
	}
	cerr, ok := err.(*ConfigError)
	if !ok || cerr.Code != ErrCodeOutput {
		t.Errorf("got %T %v, want *ConfigError with code %d", err, err, ErrCodeOutput)
	}

	// The failure on the first target must not prevent the second.
	good, err := os.ReadFile(goodPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(good) != "4\n" {
		t.Errorf("good target: got %q, want %q", good, "4\n")
	}
}
