package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type cliRunner struct {
	t      *testing.T
	dbPath string
}

func newCliRunner(t *testing.T) *cliRunner {
	return &cliRunner{t: t, dbPath: filepath.Join(t.TempDir(), "cli.db")}
}

func (r *cliRunner) run(args ...string) (string, error) {
	r.t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"option-go", "--db", r.dbPath}, args...))
	return out.String(), err
}

func (r *cliRunner) mustRun(args ...string) string {
	r.t.Helper()
	out, err := r.run(args...)
	if err != nil {
		r.t.Fatalf("%v unexpected error: %v", args, err)
	}
	return out
}

func TestDivideCommand(t *testing.T) {
	r := newCliRunner(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "some", args: []string{"divide", "10", "2"}, expected: "Some(5)\n"},
		{name: "none", args: []string{"divide", "10", "0"}, expected: "None\n"},
		{name: "unwrap or", args: []string{"divide", "--fallback", "0", "10", "2"}, expected: "Some(5)\n5\n"},
		{name: "fallback used", args: []string{"divide", "--fallback", "7", "10", "0"}, expected: "None\n7\n"},
		{name: "ok result", args: []string{"divide", "--result", "12", "4"}, expected: "Some(3)\nOk(3)\n"},
		{name: "err result", args: []string{"divide", "--result", "1", "0"}, expected: "None\nErr(division by zero)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.mustRun(tt.args...); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDivideCommandRejectsBadInput(t *testing.T) {
	r := newCliRunner(t)
	if _, err := r.run("divide", "1"); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
	if _, err := r.run("divide", "a", "1"); err == nil {
		t.Error("expected an error for a non-integer operand")
	}
}

func TestSettingCommands(t *testing.T) {
	r := newCliRunner(t)

	r.mustRun("set", "color", "blue")
	r.mustRun("set", "nothing")

	if got := r.mustRun("get", "color"); got != "Some(Some(\"blue\"))\nflattened: Some(\"blue\")\n" {
		t.Errorf("get color: unexpected output %q", got)
	}
	if got := r.mustRun("get", "nothing"); got != "Some(None)\nflattened: None\n" {
		t.Errorf("get nothing: unexpected output %q", got)
	}
	if got := r.mustRun("get", "missing"); got != "None\nflattened: None\n" {
		t.Errorf("get missing: unexpected output %q", got)
	}

	if got := r.mustRun("list"); got != "color\tSome(\"blue\")\nnothing\tNone\n" {
		t.Errorf("list: unexpected output %q", got)
	}

	if got := r.mustRun("fetch", "color"); got != "Ok(blue)\n" {
		t.Errorf("fetch color: unexpected output %q", got)
	}
	if got := r.mustRun("fetch", "nothing"); got != "Err(setting nothing is not set)\n" {
		t.Errorf("fetch nothing: unexpected output %q", got)
	}

	r.mustRun("unset", "color")
	if got := r.mustRun("unset", "color"); got != "color not found\n" {
		t.Errorf("second unset: unexpected output %q", got)
	}
}

func TestLogCommand(t *testing.T) {
	r := newCliRunner(t)
	r.mustRun("set", "color", "red")
	r.mustRun("maintain")

	got := r.mustRun("log", "--level", "info")
	if !strings.Contains(got, "setting stored") {
		t.Errorf("expected the stored setting to be logged, got %q", got)
	}
}
